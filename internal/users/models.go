package users

import (
	"time"

	"github.com/google/uuid"
)

// Role is the access level of a user account.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleStaff    Role = "STAFF"
	RoleManager  Role = "MANAGER"
)

type User struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	FullName  string    `json:"full_name" gorm:"not null"`
	Phone     string    `json:"phone" gorm:"size:20"`
	Password  string    `json:"-" gorm:"not null"` // hide in json
	Role      Role      `json:"role" gorm:"not null;default:'CUSTOMER'"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func IsValidRole(role string) bool {
	switch role {
	case string(RoleCustomer), string(RoleStaff), string(RoleManager):
		return true
	default:
		return false
	}
}

// IsBackOffice reports whether the role may access staff/manager screens.
func (r Role) IsBackOffice() bool {
	return r == RoleStaff || r == RoleManager
}
