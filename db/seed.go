package db

import (
	"log"

	"irrigation-server/entities"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Defaults for the accounts created on an empty database. The admin
// password should be rotated right after first boot.
const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin123"
	defaultNodeUsername  = "esp-node"
	defaultNodePassword  = "esp-node-secret"
)

// Seed creates the fixed role set and, when missing, the default admin
// and controller device accounts.
func Seed(gormDB *gorm.DB) error {
	roleNames := []string{
		entities.RoleAdmin,
		entities.RoleMaintainer,
		entities.RoleViewer,
		entities.RoleEspNode,
	}
	for _, name := range roleNames {
		var role entities.Role
		err := gormDB.Where("name = ?", name).First(&role).Error
		if err == gorm.ErrRecordNotFound {
			if err := gormDB.Create(&entities.Role{Name: name}).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}

	if err := seedUser(gormDB, defaultAdminUsername, defaultAdminPassword, entities.RoleAdmin); err != nil {
		return err
	}
	return seedUser(gormDB, defaultNodeUsername, defaultNodePassword, entities.RoleEspNode)
}

func seedUser(gormDB *gorm.DB, username, password, roleName string) error {
	var existing entities.User
	err := gormDB.Where("username = ?", username).First(&existing).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	var role entities.Role
	if err := gormDB.Where("name = ?", roleName).First(&role).Error; err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := entities.User{
		Username:     username,
		PasswordHash: string(hash),
		RoleID:       role.ID,
	}
	if err := gormDB.Create(&user).Error; err != nil {
		return err
	}
	log.Printf("Default user created: username=%s role=%s", username, roleName)
	return nil
}
