// internal/models/user_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserPassword(t *testing.T) {
	user := &User{}

	require.NoError(t, user.SetPassword("SuperSecret123!"))
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "SuperSecret123!", user.PasswordHash)

	assert.NoError(t, user.CheckPassword("SuperSecret123!"))
	assert.Error(t, user.CheckPassword("wrong-password"))
	assert.Error(t, user.CheckPassword(""))
}

func TestUserFullName(t *testing.T) {
	user := &User{FirstName: "Mei", LastName: "Lin"}
	assert.Equal(t, "Mei Lin", user.FullName())
}
