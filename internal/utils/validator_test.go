// internal/utils/validator_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type credentials struct {
	Name     string `validate:"required,person_name"`
	Password string `validate:"required,strong_password"`
}

func TestStrongPasswordValidation(t *testing.T) {
	valid := []string{"SuperSecret1!", "Aa1!aaaa", "pa55W0rd#"}
	for _, password := range valid {
		err := ValidateStruct(&credentials{Name: "Mei", Password: password})
		assert.NoError(t, err, "password %q should validate", password)
	}

	invalid := []string{
		"alllower1!",
		"ALLUPPER1!",
		"NoNumbers!",
		"NoSpecial12",
		"Aa1!a",
	}
	for _, password := range invalid {
		err := ValidateStruct(&credentials{Name: "Mei", Password: password})
		assert.Error(t, err, "password %q should fail", password)
	}
}

func TestPersonNameValidation(t *testing.T) {
	valid := []string{"Mei", "Jun Park", "O'Brien", "Anne-Marie"}
	for _, name := range valid {
		err := ValidateStruct(&credentials{Name: name, Password: "SuperSecret1!"})
		assert.NoError(t, err, "name %q should validate", name)
	}

	invalid := []string{"", "Mei123", "bad;name", "<script>"}
	for _, name := range invalid {
		err := ValidateStruct(&credentials{Name: name, Password: "SuperSecret1!"})
		assert.Error(t, err, "name %q should fail", name)
	}
}

func TestGetValidationErrors(t *testing.T) {
	err := ValidateStruct(&credentials{Name: "", Password: "weak"})
	errs := GetValidationErrors(err)

	assert.Len(t, errs, 2)
	assert.Equal(t, "name", errs[0].Field)
	assert.Equal(t, "required", errs[0].Tag)
	assert.Equal(t, "password", errs[1].Field)
	assert.Equal(t, "strong_password", errs[1].Tag)
	assert.NotEmpty(t, errs[1].Message)
}

func TestGetValidationErrorsIgnoresOtherErrors(t *testing.T) {
	assert.Empty(t, GetValidationErrors(nil))
	assert.Empty(t, GetValidationErrors(assert.AnError))
}
