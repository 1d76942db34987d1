package model

import "time"

// Doctor represents a registered doctor. Rows are never deleted while
// consultations reference them; Active=false retires a doctor from new
// bookings without breaking history.
type Doctor struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:255;not null;index"`
	Email     string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	CRM       string    `json:"crm" gorm:"uniqueIndex;size:20;not null"`
	Specialty Specialty `json:"specialty" gorm:"type:varchar(20);not null;index"`
	Address   Address   `json:"address" gorm:"embedded;embeddedPrefix:address_"`
	Active    bool      `json:"active" gorm:"default:true;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
