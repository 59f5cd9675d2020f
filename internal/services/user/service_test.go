package user

import (
	"context"
	"errors"
	"testing"

	"perkpay/internal/models"
	"perkpay/internal/repositories"
	"perkpay/internal/services/issuing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	user.ID = 42
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) IncrementTokenVersion(userID uint) error {
	args := m.Called(userID)
	return args.Error(0)
}

type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Create(profile *models.Profile) error {
	args := m.Called(profile)
	return args.Error(0)
}

func (m *MockProfileRepository) GetByUserID(userID uint) (*models.Profile, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileRepository) Update(profile *models.Profile) error {
	args := m.Called(profile)
	return args.Error(0)
}

type MockCardholderRepository struct {
	mock.Mock
}

func (m *MockCardholderRepository) Create(ch *models.Cardholder) error {
	args := m.Called(ch)
	return args.Error(0)
}

func (m *MockCardholderRepository) GetByUserAndProvider(userID uint, provider string) (*models.Cardholder, error) {
	args := m.Called(userID, provider)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Cardholder), args.Error(1)
}

type MockPointsRepository struct {
	mock.Mock
}

func (m *MockPointsRepository) GetByUserID(userID uint) (*models.UserPoints, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserPoints), args.Error(1)
}

func (m *MockPointsRepository) Create(points *models.UserPoints) error {
	args := m.Called(points)
	return args.Error(0)
}

func (m *MockPointsRepository) AddPoints(userID uint, points float64) (*models.UserPoints, error) {
	args := m.Called(userID, points)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserPoints), args.Error(1)
}

func (m *MockPointsRepository) RedeemReward(userID uint, reward *models.RedeemedReward) error {
	args := m.Called(userID, reward)
	return args.Error(0)
}

func (m *MockPointsRepository) ListRedeemed(userID uint) ([]models.RedeemedReward, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RedeemedReward), args.Error(1)
}

type failingCardholderIssuer struct {
	err error
}

func (f failingCardholderIssuer) CreateCardholder(context.Context, issuing.CreateCardholderRequest) (*issuing.Cardholder, error) {
	return nil, f.err
}

func registrationInput() models.CreateUserInput {
	return models.CreateUserInput{
		Email:    "ada@example.com",
		Password: "s3cret!pass",
		Name:     "Ada Lovelace",
		Mobile:   "+15550001111",
		Address:  "12 Analytical Way",
		DOB:      "1990-12-10",
	}
}

func TestRegister(t *testing.T) {
	users := new(MockUserRepository)
	profiles := new(MockProfileRepository)
	cardholders := new(MockCardholderRepository)
	points := new(MockPointsRepository)

	users.On("GetByEmail", "ada@example.com").Return(nil, repositories.ErrUserNotFound)
	users.On("Create", mock.AnythingOfType("*models.User")).Return(nil)
	profiles.On("Create", mock.MatchedBy(func(p *models.Profile) bool {
		return p.UserID == 42 && p.Name == "Ada Lovelace" && !p.DOB.IsZero()
	})).Return(nil)
	points.On("Create", mock.MatchedBy(func(p *models.UserPoints) bool {
		return p.UserID == 42 && p.Points == 0
	})).Return(nil)
	cardholders.On("Create", mock.MatchedBy(func(ch *models.Cardholder) bool {
		return ch.UserID == 42 && ch.Provider == string(issuing.ProviderMock) && ch.CardholderID != ""
	})).Return(nil)

	svc := NewService(users, profiles, cardholders, points, issuing.NewMockCardholderIssuer(), issuing.ProviderMock)

	user, cardholder, err := svc.Register(context.Background(), registrationInput())
	require.NoError(t, err)
	assert.Equal(t, uint(42), user.ID)
	assert.Empty(t, user.Password)
	assert.Contains(t, cardholder.CardholderID, "mock_cardholder_")

	users.AssertExpectations(t)
	profiles.AssertExpectations(t)
	cardholders.AssertExpectations(t)
	points.AssertExpectations(t)
}

func TestRegister_EmailTaken(t *testing.T) {
	users := new(MockUserRepository)
	existing := &models.User{Email: "ada@example.com"}
	users.On("GetByEmail", "ada@example.com").Return(existing, nil)

	svc := NewService(users, new(MockProfileRepository), new(MockCardholderRepository), new(MockPointsRepository), issuing.NewMockCardholderIssuer(), issuing.ProviderMock)

	_, _, err := svc.Register(context.Background(), registrationInput())
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_ProviderFailure(t *testing.T) {
	users := new(MockUserRepository)
	profiles := new(MockProfileRepository)
	points := new(MockPointsRepository)

	users.On("GetByEmail", "ada@example.com").Return(nil, repositories.ErrUserNotFound)
	users.On("Create", mock.AnythingOfType("*models.User")).Return(nil)
	profiles.On("Create", mock.AnythingOfType("*models.Profile")).Return(nil)
	points.On("Create", mock.AnythingOfType("*models.UserPoints")).Return(nil)

	providerErr := &issuing.ProviderError{Op: "create cardholder", Err: errors.New("api down")}
	svc := NewService(users, profiles, new(MockCardholderRepository), points, failingCardholderIssuer{err: providerErr}, issuing.ProviderMock)

	_, _, err := svc.Register(context.Background(), registrationInput())
	var pErr *issuing.ProviderError
	assert.ErrorAs(t, err, &pErr)
}

func TestRegister_PointsRowFailureIsNonFatal(t *testing.T) {
	users := new(MockUserRepository)
	profiles := new(MockProfileRepository)
	cardholders := new(MockCardholderRepository)
	points := new(MockPointsRepository)

	users.On("GetByEmail", "ada@example.com").Return(nil, repositories.ErrUserNotFound)
	users.On("Create", mock.AnythingOfType("*models.User")).Return(nil)
	profiles.On("Create", mock.AnythingOfType("*models.Profile")).Return(nil)
	points.On("Create", mock.AnythingOfType("*models.UserPoints")).Return(repositories.ErrDatabaseOperation)
	cardholders.On("Create", mock.AnythingOfType("*models.Cardholder")).Return(nil)

	svc := NewService(users, profiles, cardholders, points, issuing.NewMockCardholderIssuer(), issuing.ProviderMock)

	user, _, err := svc.Register(context.Background(), registrationInput())
	require.NoError(t, err)
	assert.Equal(t, uint(42), user.ID)
}
