package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pzaremba/worklog/internal/domain/user"
	"github.com/pzaremba/worklog/internal/repository"
	"github.com/pzaremba/worklog/internal/repository/mocks"
)

func TestUserService_RegisterIssuesToken(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.UserRepository{}
	repo.On("GetByEmail", ctx, "anna@example.com").Return(nil, repository.ErrNotFound)
	repo.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*user.User).ID = 1
	}).Return(nil)

	svc := user.NewService(repo, 0, nil)
	u, token, err := svc.Register(ctx, "Anna@Example.com", "secret-password")
	require.NoError(t, err)
	require.Equal(t, "anna@example.com", u.Email)
	require.NotEmpty(t, token)

	userID, err := svc.ResolveToken(ctx, token)
	require.NoError(t, err)
	require.Equal(t, int64(1), userID)
}

func TestUserService_RegisterValidation(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.UserRepository{}
	svc := user.NewService(repo, 0, nil)

	_, _, err := svc.Register(ctx, "not-an-email", "secret-password")
	require.ErrorIs(t, err, user.ErrInvalidInput)

	_, _, err = svc.Register(ctx, "anna@example.com", "short")
	require.ErrorIs(t, err, user.ErrInvalidInput)

	repo.AssertNotCalled(t, "Create")
}

func TestUserService_RegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.UserRepository{}
	repo.On("GetByEmail", ctx, "anna@example.com").Return(&user.User{ID: 1, Email: "anna@example.com"}, nil)

	svc := user.NewService(repo, 0, nil)
	_, _, err := svc.Register(ctx, "anna@example.com", "secret-password")
	require.ErrorIs(t, err, user.ErrEmailTaken)
}

func TestUserService_LoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	hash, err := user.HashPassword("secret-password")
	require.NoError(t, err)

	repo := &mocks.UserRepository{}
	repo.On("GetByEmail", ctx, "anna@example.com").Return(&user.User{ID: 1, Email: "anna@example.com", PasswordHash: hash}, nil)

	svc := user.NewService(repo, 0, nil)
	_, _, err = svc.Login(ctx, "anna@example.com", "wrong-password")
	require.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestUserService_LoginUnknownEmail(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.UserRepository{}
	repo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, repository.ErrNotFound)

	svc := user.NewService(repo, 0, nil)
	_, _, err := svc.Login(ctx, "ghost@example.com", "secret-password")
	require.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestUserService_LogoutRevokesToken(t *testing.T) {
	ctx := context.Background()
	hash, err := user.HashPassword("secret-password")
	require.NoError(t, err)

	repo := &mocks.UserRepository{}
	repo.On("GetByEmail", ctx, "anna@example.com").Return(&user.User{ID: 1, Email: "anna@example.com", PasswordHash: hash}, nil)

	svc := user.NewService(repo, 0, nil)
	_, token, err := svc.Login(ctx, "anna@example.com", "secret-password")
	require.NoError(t, err)

	svc.Logout(token)
	_, err = svc.ResolveToken(ctx, token)
	require.ErrorIs(t, err, user.ErrNotAuthenticated)
}

func TestUserService_TokenExpiry(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.UserRepository{}
	repo.On("GetByEmail", ctx, "anna@example.com").Return(nil, repository.ErrNotFound)
	repo.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*user.User).ID = 1
	}).Return(nil)

	svc := user.NewService(repo, time.Nanosecond, nil)
	_, token, err := svc.Register(ctx, "anna@example.com", "secret-password")
	require.NoError(t, err)

	time.Sleep(time.Millisecond)
	_, err = svc.ResolveToken(ctx, token)
	require.ErrorIs(t, err, user.ErrNotAuthenticated)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := user.HashPassword("secret-password")
	require.NoError(t, err)
	require.NotEqual(t, "secret-password", hash)

	require.NoError(t, user.VerifyPassword("secret-password", hash))
	require.Error(t, user.VerifyPassword("other", hash))
}
