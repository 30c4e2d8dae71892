package user

import (
	"errors"
	"time"
)

// Role tags. BOTH means a passenger account that can also drive.
const (
	RolePassenger = "PASSENGER"
	RoleDriver    = "DRIVER"
	RoleBoth      = "BOTH"
)

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never expose hash in JSON
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CanDrive reports whether the user may own cars and accept rides.
func (u User) CanDrive() bool {
	return u.Role == RoleDriver || u.Role == RoleBoth
}

func ValidRole(role string) bool {
	switch role {
	case RolePassenger, RoleDriver, RoleBoth:
		return true
	}
	return false
}

var ErrNotFound = errors.New("user not found")

// duplicate email on create
var ErrEmailTaken = errors.New("email already registered")
