package model

import "time"

// Patient represents a registered patient, soft-deleted via Active like Doctor.
type Patient struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:255;not null;index"`
	Email     string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Document  string    `json:"document" gorm:"uniqueIndex;size:14;not null"` // CPF
	Address   Address   `json:"address" gorm:"embedded;embeddedPrefix:address_"`
	Active    bool      `json:"active" gorm:"default:true;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
