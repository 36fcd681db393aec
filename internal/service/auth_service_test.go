package service

import (
	"quizdesk_backend/internal/config"
	"quizdesk_backend/internal/repository"
	"quizdesk_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB) *AuthService {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-for-auth-service-tests"
	cfg.JWT.ExpireTime = time.Hour
	return NewAuthService(repository.NewUserRepository(db), cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	resp, err := svc.Register(RegisterRequest{Email: "new@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "new@example.com", resp.User.Email)
	assert.False(t, resp.User.IsAdmin)

	// 密码以 bcrypt 存储，不落明文
	user, err := svc.GetUser(resp.User.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", user.Password)
	assert.NotEmpty(t, user.Password)

	login, err := svc.Login(LoginRequest{Email: "new@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)

	claims, err := util.ParseJWT(login.Token, "test-secret-for-auth-service-tests")
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "new@example.com", claims.Email)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	_, err := svc.Register(RegisterRequest{Email: "dup@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Register(RegisterRequest{Email: "dup@example.com", Password: "password2"})
	assert.ErrorIs(t, err, util.ErrEmailRegistered)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	_, err := svc.Register(RegisterRequest{Email: "user@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Login(LoginRequest{Email: "user@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	_, err = svc.Login(LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}
