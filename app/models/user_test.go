package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	u, err := CreateUser("mona", "mona@example.com", "secret1")
	require.NoError(t, err)

	assert.Equal(t, "mona", u.Username)
	assert.Equal(t, ROLE_USER, u.Role)
	assert.NotEqual(t, "secret1", u.Password)
	assert.True(t, u.CheckPassword("secret1"))
	assert.False(t, u.CheckPassword("wrong"))
}

func TestCreateUserValidation(t *testing.T) {
	_, err := CreateUser("ab", "mona@example.com", "secret1")
	assert.Error(t, err)

	_, err = CreateUser("mona", "not-an-email", "secret1")
	assert.Error(t, err)

	_, err = CreateUser("mona", "mona@example.com", "short")
	assert.Error(t, err)
}

func TestSetPassword(t *testing.T) {
	u := &User{}
	require.NoError(t, u.SetPassword("changed-password"))
	assert.True(t, u.CheckPassword("changed-password"))
}

func TestIsAdmin(t *testing.T) {
	assert.False(t, (&User{Role: ROLE_USER}).IsAdmin())
	assert.True(t, (&User{Role: ROLE_ADMIN}).IsAdmin())
}
