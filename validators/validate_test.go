package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type signupPayload struct {
	FullName string `json:"full_name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func TestValidatePasses(t *testing.T) {
	errors := Validate(&signupPayload{
		FullName: "Jane Agent",
		Email:    "jane@example.com",
		Password: "supersecret",
	})
	assert.Nil(t, errors)
}

func TestValidateRequiredFields(t *testing.T) {
	errors := Validate(&signupPayload{})

	assert.Len(t, errors, 3)
	assert.Contains(t, errors, "fullname")
	assert.Contains(t, errors, "email")
	assert.Contains(t, errors, "password")
}

func TestValidateEmailFormat(t *testing.T) {
	errors := Validate(&signupPayload{
		FullName: "Jane Agent",
		Email:    "not-an-email",
		Password: "supersecret",
	})

	assert.Equal(t, map[string]string{"email": "Invalid email!"}, errors)
}

func TestValidateMinLength(t *testing.T) {
	errors := Validate(&signupPayload{
		FullName: "Jane Agent",
		Email:    "jane@example.com",
		Password: "short",
	})

	assert.Equal(t, "Password must be at least 8 characters long!", errors["password"])
}
