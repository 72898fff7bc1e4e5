package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := Init("test-secret", time.Hour); err != nil {
		panic(err)
	}
	m.Run()
}

func TestGenerateValidateRoundTrip(t *testing.T) {
	token, jti, err := Generate("u1", "sara", "user")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, jti)

	claims, err := Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "sara", claims.Username)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, jti, claims.ID)
}

func TestValidateRejectsTamperedToken(t *testing.T) {
	token, _, err := Generate("u1", "sara", "user")
	require.NoError(t, err)

	_, err = Validate(token + "x")
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	_, err := Validate("not-a-token")
	assert.Error(t, err)
}

func TestInitRequiresSecret(t *testing.T) {
	assert.Error(t, Init("", time.Hour))
}
