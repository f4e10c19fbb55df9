// internal/services/auth_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avpetrescu/catalog-admin/internal/models"
)

func TestAuthenticateValidCredentials(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, newTestConfig())

	user := models.User{Username: "admin"}
	require.NoError(t, user.SetPassword("secret"))
	require.NoError(t, db.Create(&user).Error)

	result, err := svc.Authenticate(&LoginRequest{Username: "admin", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, result.User.ID)
	assert.Equal(t, "admin", result.User.Username)
	assert.NotEmpty(t, result.AccessToken)
	assert.Equal(t, 3600, result.ExpiresIn)
}

func TestAuthenticateFailuresAreIndistinguishable(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, newTestConfig())

	user := models.User{Username: "admin"}
	require.NoError(t, user.SetPassword("secret"))
	require.NoError(t, db.Create(&user).Error)

	// Wrong password, unknown username, and missing input must all
	// surface the exact same error value.
	cases := []LoginRequest{
		{Username: "admin", Password: "wrong"},
		{Username: "nobody", Password: "secret"},
		{Username: "", Password: "secret"},
		{Username: "admin", Password: ""},
	}

	for _, req := range cases {
		result, err := svc.Authenticate(&req)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, ErrInvalidCredentials, "username=%q password=%q", req.Username, req.Password)
	}
}

func TestAuthenticateDuplicateUsernamesFirstMatchWins(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, newTestConfig())

	first := models.User{Username: "admin"}
	require.NoError(t, first.SetPassword("secret"))
	require.NoError(t, db.Create(&first).Error)

	second := models.User{Username: "admin"}
	require.NoError(t, second.SetPassword("other"))
	require.NoError(t, db.Create(&second).Error)

	result, err := svc.Authenticate(&LoginRequest{Username: "admin", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, result.User.ID)

	// The second row is shadowed: its password does not authenticate.
	_, err = svc.Authenticate(&LoginRequest{Username: "admin", Password: "other"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetUserByID(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, newTestConfig())

	user := models.User{Username: "admin"}
	require.NoError(t, user.SetPassword("secret"))
	require.NoError(t, db.Create(&user).Error)

	found, err := svc.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin", found.Username)

	_, err = svc.GetUserByID(9999)
	assert.Error(t, err)
}
