package service_test

import (
	"context"
	"testing"

	"timetrack-backend/internal/model"
	"timetrack-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_CreateUser_DefaultsToUserRole(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.users.CreateUser(ctx, service.CreateUserRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, user.Role)

	_, err = env.users.CreateUser(ctx, service.CreateUserRequest{
		Name:     "Impostor",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.Error(t, err)
	assert.Equal(t, "email already exists", err.Error())
}

func TestUserService_Login_VerifiesPassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.users.CreateUser(ctx, service.CreateUserRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	tokens, err := env.users.Login(ctx, service.LoginUserRequest{
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	_, err = env.users.Login(ctx, service.LoginUserRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	})
	require.Error(t, err)
	assert.Equal(t, "invalid email or password", err.Error())
}

func TestUserService_Refresh_RotatesToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.users.CreateUser(ctx, service.CreateUserRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	tokens, err := env.users.Login(ctx, service.LoginUserRequest{
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	rotated, err := env.users.Refresh(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, tokens.RefreshToken, rotated.RefreshToken)

	// The consumed token is gone
	_, err = env.users.Refresh(ctx, tokens.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, "invalid or expired refresh token", err.Error())

	// The rotated one still works
	_, err = env.users.Refresh(ctx, rotated.RefreshToken)
	assert.NoError(t, err)
}

func TestUserService_Logout_RevokesRefreshToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.users.CreateUser(ctx, service.CreateUserRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	tokens, err := env.users.Login(ctx, service.LoginUserRequest{
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	require.NoError(t, env.users.Logout(ctx, tokens.RefreshToken))

	_, err = env.users.Refresh(ctx, tokens.RefreshToken)
	require.Error(t, err)
}

func TestUserService_UpdateAndDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.users.CreateUser(ctx, service.CreateUserRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	updated, err := env.users.UpdateUser(ctx, created.ID, service.UpdateUserRequest{
		Name: "Alice B.",
		Role: model.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice B.", updated.Name)
	assert.Equal(t, model.RoleAdmin, updated.Role)

	require.NoError(t, env.users.DeleteUser(ctx, created.ID))

	_, err = env.users.GetUserByID(ctx, created.ID)
	require.Error(t, err)
	assert.Equal(t, "user not found", err.Error())
}
