package model

import "time"

// Consultation represents a booked appointment. The only mutation after
// creation is setting CancelReason; a consultation with a nil CancelReason
// occupies its slot.
type Consultation struct {
	ID           uint          `json:"id" gorm:"primaryKey"`
	DoctorID     uint          `json:"doctor_id" gorm:"not null;index:idx_consultations_slot"`
	PatientID    uint          `json:"patient_id" gorm:"not null;index"`
	ScheduledAt  time.Time     `json:"scheduled_at" gorm:"not null;index:idx_consultations_slot"`
	CancelReason *CancelReason `json:"cancel_reason,omitempty" gorm:"type:varchar(30)"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`

	Doctor  Doctor  `json:"-" gorm:"foreignKey:DoctorID"`
	Patient Patient `json:"-" gorm:"foreignKey:PatientID"`
}

// IsActive reports whether the consultation still occupies its slot.
func (c *Consultation) IsActive() bool {
	return c.CancelReason == nil
}
