package validation

import (
	"testing"

	"perkpay/internal/models"

	"github.com/stretchr/testify/assert"
)

func validInput() *models.CreateUserInput {
	return &models.CreateUserInput{
		Email:    "ada@example.com",
		Password: "s3cret!pass",
		Name:     "Ada Lovelace",
		Mobile:   "+15550001111",
		Address:  "12 Analytical Way",
	}
}

func TestUserRegistration(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*models.CreateUserInput)
		wantField string
	}{
		{
			name:   "valid input passes",
			mutate: func(*models.CreateUserInput) {},
		},
		{
			name:      "missing email",
			mutate:    func(in *models.CreateUserInput) { in.Email = "" },
			wantField: "email",
		},
		{
			name:      "malformed email",
			mutate:    func(in *models.CreateUserInput) { in.Email = "not-an-email" },
			wantField: "email",
		},
		{
			name:      "short password",
			mutate:    func(in *models.CreateUserInput) { in.Password = "a!b" },
			wantField: "password",
		},
		{
			name:      "password without special character",
			mutate:    func(in *models.CreateUserInput) { in.Password = "longenoughpass" },
			wantField: "password",
		},
		{
			name:      "blank name",
			mutate:    func(in *models.CreateUserInput) { in.Name = "   " },
			wantField: "name",
		},
		{
			name:      "blank mobile",
			mutate:    func(in *models.CreateUserInput) { in.Mobile = "" },
			wantField: "mobile",
		},
		{
			name:      "blank address",
			mutate:    func(in *models.CreateUserInput) { in.Address = "" },
			wantField: "address",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)

			v := New()
			v.UserRegistration(input)

			if tt.wantField == "" {
				assert.True(t, v.Valid())
				assert.Empty(t, v.First())
				return
			}
			assert.False(t, v.Valid())
			assert.Contains(t, v.Errors, tt.wantField)
			assert.NotEmpty(t, v.First())
		})
	}
}

func TestValidPassword(t *testing.T) {
	assert.True(t, ValidPassword("s3cret!pass"))
	assert.False(t, ValidPassword("short!"))
	assert.False(t, ValidPassword("nospecialchars"))
}

func TestHasSpecialChar(t *testing.T) {
	assert.True(t, HasSpecialChar("hello!"))
	assert.False(t, HasSpecialChar("hello"))
}
