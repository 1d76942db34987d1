package model

import "time"

// Roles a user can carry. Deleting doctors and patients is restricted to admins.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// User represents an authenticated API user.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Login        string    `json:"login" gorm:"uniqueIndex;size:100;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         string    `json:"role" gorm:"size:50;default:'staff'"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
