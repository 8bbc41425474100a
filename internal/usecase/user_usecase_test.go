package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civicport/internal/domain/entity"
)

func TestUpdateProfileMergesNonEmptyFields(t *testing.T) {
	repo := seedUsers()
	uc := NewUserUseCase(repo)

	updated, err := uc.UpdateProfile(context.Background(), "citizen-1", UpdateProfileInput{
		Phone: "+62811111111",
	})
	require.NoError(t, err)

	assert.Equal(t, "Citizen One", updated.FullName, "empty input fields leave the profile untouched")
	assert.Equal(t, "+62811111111", updated.Phone)
}

func TestListUsersAdminOnly(t *testing.T) {
	uc := NewUserUseCase(seedUsers())

	_, _, err := uc.ListUsers(context.Background(), "staff-1", 20, 0)
	require.Error(t, err)

	users, total, err := uc.ListUsers(context.Background(), "admin-1", 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Len(t, users, 4)
}

func TestUpdateRole(t *testing.T) {
	repo := seedUsers()
	uc := NewUserUseCase(repo)

	_, err := uc.UpdateRole(context.Background(), "citizen-1", "citizen-2", entity.RoleStaff)
	require.Error(t, err)

	_, err = uc.UpdateRole(context.Background(), "admin-1", "citizen-2", "superuser")
	require.Error(t, err)

	promoted, err := uc.UpdateRole(context.Background(), "admin-1", "citizen-2", entity.RoleStaff)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleStaff, promoted.Role)
	assert.True(t, promoted.IsStaff())
}
