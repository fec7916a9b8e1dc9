package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/motormarket/go-mobile-sync/internal/logger"
	"github.com/motormarket/go-mobile-sync/internal/mock"
	"github.com/motormarket/go-mobile-sync/internal/utils"
	"github.com/motormarket/go-mobile-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testHashKey = "hash-key"
	testSignKey = "sign-key"
	testIssuer  = "motormarket-sync"
)

func newTestAuthService(t *testing.T) (*authService, *mock.MockUserRepository) {
	ctrl := gomock.NewController(t)
	users := mock.NewMockUserRepository(ctrl)

	svc := &authService{
		userRepository: users,
		hashKey:        testHashKey,
		tokenSignKey:   testSignKey,
		tokenIssuer:    testIssuer,
		tokenDuration:  time.Hour,
		logger:         logger.Nop(),
	}
	return svc, users
}

func TestRegisterUser_HashesPasswordBeforeStorage(t *testing.T) {
	svc, users := newTestAuthService(t)
	ctx := context.Background()

	wantHash := utils.HashString("secret", testHashKey)

	users.EXPECT().
		CreateUser(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, u models.User) (models.User, error) {
			// The plain-text password must never reach the repository.
			assert.Equal(t, wantHash, u.AuthHash)
			u.UserID = 1
			return u, nil
		})

	registered, err := svc.RegisterUser(ctx, models.User{Login: "john", AuthHash: "secret"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), registered.UserID)
}

func TestRegisterUser_EmptyCredentials(t *testing.T) {
	svc, _ := newTestAuthService(t)

	tests := []struct {
		name string
		user models.User
	}{
		{"empty login", models.User{AuthHash: "secret"}},
		{"empty password", models.User{Login: "john"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RegisterUser(context.Background(), tt.user)
			require.ErrorIs(t, err, ErrInvalidDataProvided)
		})
	}
}

func TestLogin_Success(t *testing.T) {
	svc, users := newTestAuthService(t)
	ctx := context.Background()

	storedHash := utils.HashString("secret", testHashKey)
	users.EXPECT().
		FindUserByLogin(ctx, gomock.Any()).
		Return(models.User{UserID: 7, Login: "john", AuthHash: storedHash}, nil)

	user, err := svc.Login(ctx, models.User{Login: "john", AuthHash: "secret"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.UserID)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, users := newTestAuthService(t)
	ctx := context.Background()

	storedHash := utils.HashString("secret", testHashKey)
	users.EXPECT().
		FindUserByLogin(ctx, gomock.Any()).
		Return(models.User{UserID: 7, Login: "john", AuthHash: storedHash}, nil)

	_, err := svc.Login(ctx, models.User{Login: "john", AuthHash: "not-secret"})
	require.ErrorIs(t, err, ErrWrongPassword)
}

func TestLogin_RepositoryErrorIsWrapped(t *testing.T) {
	svc, users := newTestAuthService(t)
	ctx := context.Background()

	users.EXPECT().
		FindUserByLogin(ctx, gomock.Any()).
		Return(models.User{}, errors.New("connection reset"))

	_, err := svc.Login(ctx, models.User{Login: "john", AuthHash: "secret"})
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrWrongPassword)
}

func TestCreateToken_RoundTripsThroughParseToken(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	token, err := svc.CreateToken(ctx, models.User{UserID: 42})
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)

	parsed, err := svc.ParseToken(ctx, token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, int64(42), parsed.UserID)
}

func TestParseToken_InvalidToken(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.ParseToken(context.Background(), "not-a-jwt")
	require.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestParseToken_WrongSignKey(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	foreign, err := utils.GenerateJWTToken(testIssuer, 42, time.Hour, "other-key")
	require.NoError(t, err)

	_, err = svc.ParseToken(ctx, foreign.SignedString)
	require.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}
