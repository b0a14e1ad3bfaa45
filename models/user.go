package models

import "time"

// UserRole представляет роли пользователей, соответствующие ENUM в БД.
type UserRole string

const (
	RoleUser       UserRole = "user"
	RolePlayer     UserRole = "player"
	RoleAdmin      UserRole = "admin"
	RoleSuperAdmin UserRole = "super_admin"
)

type User struct {
	ID           int       `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         UserRole  `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	// PlayerCode is the 4-character code a verified player uses to bind
	// themselves to a roster slot. Assigned once on verification.
	PlayerCode *string `json:"player_code,omitempty" db:"player_code"`
}
