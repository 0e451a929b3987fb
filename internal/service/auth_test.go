package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/betterfund/betterfund-api/internal/domain"
	"github.com/betterfund/betterfund-api/internal/service"
)

func TestRegister(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.registerUser(t, "alice", "alice@x.com", "111122223333", "9998887777")

	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, domain.RoleDonor, user.Role.Name)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password1")))

	tests := []struct {
		name       string
		email      string
		nationalID string
		phone      string
		wantErr    error
	}{
		{"duplicate email", "alice@x.com", "444455556666", "1112223334", service.ErrUserEmailExists},
		{"duplicate national id", "bob@x.com", "111122223333", "1112223334", service.ErrUserNationalIDExists},
		{"duplicate phone", "bob@x.com", "444455556666", "9998887777", service.ErrUserPhoneExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.authSvc.Register(ctx, domain.User{
				Username:   "bob",
				Email:      tt.email,
				Password:   "password1",
				NationalID: tt.nationalID,
				Phone:      tt.phone,
			})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	// The first registration is the only row that made it in.
	_, err := env.authSvc.Login(ctx, "bob@x.com", "password1")
	assert.ErrorIs(t, err, service.ErrUserNotFound)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.registerUser(t, "alice", "alice@x.com", "111122223333", "9998887777")

	user, err := env.authSvc.Login(ctx, "alice@x.com", "password1")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = env.authSvc.Login(ctx, "alice@x.com", "wrongpass1")
	assert.ErrorIs(t, err, service.ErrWrongPassword)

	_, err = env.authSvc.Login(ctx, "nobody@x.com", "password1")
	assert.ErrorIs(t, err, service.ErrUserNotFound)
}

func TestChangeRole(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.registerUser(t, "root", "root@x.com", "000011112222", "0001112223")
	target := env.registerUser(t, "alice", "alice@x.com", "111122223333", "9998887777")

	adminRole, err := env.userRepo.FindRoleByName(ctx, domain.RoleAdmin)
	require.NoError(t, err)
	creatorRole, err := env.userRepo.FindRoleByName(ctx, domain.RoleCampaignCreator)
	require.NoError(t, err)

	// A plain donor cannot change roles.
	err = env.authSvc.ChangeRole(ctx, target, admin.Email, creatorRole.ID)
	assert.ErrorIs(t, err, service.ErrAccessDenied)

	// Promote the first account to admin directly, then exercise the
	// admin path.
	require.NoError(t, env.userRepo.UpdateRole(ctx, admin.ID, adminRole.ID))

	admin, err = env.userSvc.GetUser(ctx, admin.ID)
	require.NoError(t, err)
	require.True(t, admin.IsAdmin())

	require.NoError(t, env.authSvc.ChangeRole(ctx, admin, target.Email, creatorRole.ID))

	updated, err := env.userSvc.GetUser(ctx, target.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCampaignCreator, updated.Role.Name)
	assert.Equal(t, "CREATOR", updated.Role.Authority())

	err = env.authSvc.ChangeRole(ctx, admin, "nobody@x.com", creatorRole.ID)
	assert.ErrorIs(t, err, service.ErrUserNotFound)

	err = env.authSvc.ChangeRole(ctx, admin, target.Email, 999)
	assert.ErrorIs(t, err, service.ErrRoleNotFound)
}
