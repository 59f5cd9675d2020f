// Package user handles registration: the user record, its profile, the
// loyalty points row, and the cardholder identity at the selected provider.
package user

import (
	"context"
	"errors"
	"log"
	"time"

	"perkpay/internal/models"
	"perkpay/internal/repositories"
	"perkpay/internal/services/issuing"

	"golang.org/x/crypto/bcrypt"
)

var ErrEmailTaken = errors.New("email already registered")

type Service interface {
	Register(ctx context.Context, input models.CreateUserInput) (*models.User, *models.Cardholder, error)
	GetByID(userID uint) (*models.User, error)
}

type service struct {
	users       repositories.UserRepository
	profiles    repositories.ProfileRepository
	cardholders repositories.CardholderRepository
	points      repositories.PointsRepository
	issuer      issuing.CardholderIssuer
	provider    issuing.Provider
}

func NewService(
	users repositories.UserRepository,
	profiles repositories.ProfileRepository,
	cardholders repositories.CardholderRepository,
	points repositories.PointsRepository,
	issuer issuing.CardholderIssuer,
	provider issuing.Provider,
) Service {
	return &service{
		users:       users,
		profiles:    profiles,
		cardholders: cardholders,
		points:      points,
		issuer:      issuer,
		provider:    provider,
	}
}

// Register creates the local records and a cardholder with the provider.
// The user row is committed before the remote call, so a provider failure
// leaves a registered user without a cardholder mapping; the error still
// aborts the request so the client can retry.
func (s *service) Register(ctx context.Context, input models.CreateUserInput) (*models.User, *models.Cardholder, error) {
	if _, err := s.users.GetByEmail(input.Email); err == nil {
		return nil, nil, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, errors.New("password hashing failed")
	}

	user := &models.User{
		Email:    input.Email,
		Password: string(hashedPassword),
		Role:     "user",
		Status:   "active",
	}
	if err := s.users.Create(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateRecord) {
			return nil, nil, ErrEmailTaken
		}
		return nil, nil, err
	}

	profile := &models.Profile{
		UserID:          user.ID,
		Name:            input.Name,
		Mobile:          input.Mobile,
		Address:         input.Address,
		JobTitle:        input.JobTitle,
		MonthlyIncome:   input.MonthlyIncome,
		MonthlyExpenses: input.MonthlyExpenses,
	}
	if input.DOB != "" {
		if dob, err := time.Parse("2006-01-02", input.DOB); err == nil {
			profile.DOB = dob
		}
	}
	if err := s.profiles.Create(profile); err != nil {
		return nil, nil, err
	}

	if err := s.points.Create(&models.UserPoints{UserID: user.ID}); err != nil {
		log.Printf("failed to create points row for user %d: %v", user.ID, err)
	}

	created, err := s.issuer.CreateCardholder(ctx, issuing.CreateCardholderRequest{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Mobile,
		Address: input.Address,
	})
	if err != nil {
		return nil, nil, err
	}

	cardholder := &models.Cardholder{
		UserID:       user.ID,
		CardholderID: created.ID,
		Provider:     string(created.Provider),
	}
	if err := s.cardholders.Create(cardholder); err != nil {
		return nil, nil, err
	}

	user.Password = ""
	return user, cardholder, nil
}

func (s *service) GetByID(userID uint) (*models.User, error) {
	return s.users.GetByID(userID)
}
