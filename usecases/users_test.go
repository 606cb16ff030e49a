package usecases

import (
	"testing"

	"irrigation-server/db"
	"irrigation-server/entities"
	"irrigation-server/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserUC(database db.Database) *UserUseCase {
	return NewUserUseCase(repositories.NewUserPgRepository(database))
}

func viewerRoleID(t *testing.T, database db.Database) uint {
	t.Helper()
	var role entities.Role
	require.NoError(t, database.GetDB().Where("name = ?", entities.RoleViewer).First(&role).Error)
	return role.ID
}

func TestCreateUserRejectsDuplicateUsername(t *testing.T) {
	database := newTestDB(t)
	uc := newUserUC(database)
	roleID := viewerRoleID(t, database)

	_, err := uc.CreateUser(UserInput{Username: "olena", Password: "pw-one", RoleID: roleID})
	require.NoError(t, err)

	_, err = uc.CreateUser(UserInput{Username: "olena", Password: "pw-two", RoleID: roleID})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestCreateUserRejectsUnknownRole(t *testing.T) {
	database := newTestDB(t)
	uc := newUserUC(database)

	_, err := uc.CreateUser(UserInput{Username: "olena", Password: "pw", RoleID: 9999})
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestAuthenticate(t *testing.T) {
	database := newTestDB(t)
	uc := newUserUC(database)
	roleID := viewerRoleID(t, database)

	_, err := uc.CreateUser(UserInput{Username: "olena", Password: "correct-horse", RoleID: roleID})
	require.NoError(t, err)

	user, err := uc.Authenticate("olena", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, "olena", user.Username)

	_, err = uc.Authenticate("olena", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = uc.Authenticate("nobody", "correct-horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSeededAdminCanAuthenticate(t *testing.T) {
	database := newTestDB(t)
	uc := newUserUC(database)

	user, err := uc.Authenticate("admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, entities.RoleAdmin, user.Role.Name)
}

func TestUpdateUserKeepsHashOnBlankPassword(t *testing.T) {
	database := newTestDB(t)
	uc := newUserUC(database)
	roleID := viewerRoleID(t, database)

	created, err := uc.CreateUser(UserInput{Username: "olena", Password: "original", RoleID: roleID})
	require.NoError(t, err)
	originalHash := created.PasswordHash

	updated, err := uc.UpdateUser(created.ID, UserInput{Username: "olena-r", Password: "", RoleID: roleID})
	require.NoError(t, err)
	assert.Equal(t, "olena-r", updated.Username)
	assert.Equal(t, originalHash, updated.PasswordHash)

	// A non-blank password replaces the hash and the old one stops working.
	updated, err = uc.UpdateUser(created.ID, UserInput{Username: "olena-r", Password: "rotated", RoleID: roleID})
	require.NoError(t, err)
	assert.NotEqual(t, originalHash, updated.PasswordHash)

	_, err = uc.Authenticate("olena-r", "original")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = uc.Authenticate("olena-r", "rotated")
	assert.NoError(t, err)
}

func TestUpdateUserRejectsTakenUsername(t *testing.T) {
	database := newTestDB(t)
	uc := newUserUC(database)
	roleID := viewerRoleID(t, database)

	_, err := uc.CreateUser(UserInput{Username: "olena", Password: "pw", RoleID: roleID})
	require.NoError(t, err)
	petro, err := uc.CreateUser(UserInput{Username: "petro", Password: "pw", RoleID: roleID})
	require.NoError(t, err)

	_, err = uc.UpdateUser(petro.ID, UserInput{Username: "olena", RoleID: roleID})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	// Keeping the current username is not a rename.
	_, err = uc.UpdateUser(petro.ID, UserInput{Username: "petro", RoleID: roleID})
	assert.NoError(t, err)
}

func TestDeleteUser(t *testing.T) {
	database := newTestDB(t)
	uc := newUserUC(database)
	roleID := viewerRoleID(t, database)

	created, err := uc.CreateUser(UserInput{Username: "olena", Password: "pw", RoleID: roleID})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteUser(created.ID))
	assert.ErrorIs(t, uc.DeleteUser(created.ID), ErrNotFound)
}

func TestGetRolesListsSeededSet(t *testing.T) {
	database := newTestDB(t)
	uc := newUserUC(database)

	roles, err := uc.GetRoles()
	require.NoError(t, err)
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = r.Name
	}
	assert.ElementsMatch(t, []string{
		entities.RoleAdmin,
		entities.RoleMaintainer,
		entities.RoleViewer,
		entities.RoleEspNode,
	}, names)
}
