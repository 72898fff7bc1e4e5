package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("rider@example.com"))
	assert.True(t, ValidateEmail("  rider@example.com  "))
	assert.False(t, ValidateEmail(""))
	assert.False(t, ValidateEmail("not-an-email"))
	assert.False(t, ValidateEmail("missing@tld"))
}

func TestValidatePhone(t *testing.T) {
	assert.True(t, ValidatePhone("+923001234567"))
	assert.True(t, ValidatePhone("923001234567"))
	assert.False(t, ValidatePhone(""))
	assert.False(t, ValidatePhone("0abc"))
}

func TestValidateUsername(t *testing.T) {
	assert.True(t, ValidateUsername("ali"))
	assert.False(t, ValidateUsername("ab"))
}

func TestValidatePassword(t *testing.T) {
	assert.True(t, ValidatePassword("secret"))
	assert.False(t, ValidatePassword("12345"))
}

func TestValidateCoordinates(t *testing.T) {
	assert.True(t, ValidateCoordinates(24.8607, 67.0011))
	assert.False(t, ValidateCoordinates(91, 0))
	assert.False(t, ValidateCoordinates(0, -181))
}

func TestErrorsCollect(t *testing.T) {
	var errs Errors
	assert.True(t, errs.OK())

	errs.Add("email", "must be a valid email address")
	assert.False(t, errs.OK())
	assert.Len(t, errs, 1)
	assert.Equal(t, "email", errs[0].Field)
}
