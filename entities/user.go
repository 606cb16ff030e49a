package entities

// Role names are fixed and seeded at startup.
const (
	RoleAdmin      = "ROLE_ADMIN"
	RoleMaintainer = "ROLE_MAINTAINER"
	RoleViewer     = "ROLE_VIEWER"
	RoleEspNode    = "ROLE_ESP_NODE"
)

type Role struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:50;not null;uniqueIndex" json:"name"`
}

// User is an account with exactly one role. PasswordHash is a bcrypt
// hash and never leaves the server.
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"size:100;not null;uniqueIndex" json:"username"`
	PasswordHash string `gorm:"not null" json:"-"`
	RoleID       uint   `gorm:"not null" json:"roleId"`
	Role         Role   `json:"role"`
}
