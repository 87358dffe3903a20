package models

import "time"

// Activity types accepted for daily exercise reports.
const (
	ActivityPushup = "pushup"
	ActivitySitup  = "situp"
	ActivityBackup = "backup"
)

// Activity lifecycle states. Pending is the only non-terminal state: once an
// activity is verified or rejected it never changes status again.
const (
	StatusPending  = "pending"
	StatusVerified = "verified"
	StatusRejected = "rejected"
)

// Activity is a single daily exercise report submitted by a student with a
// photo as proof. Verification fields stay empty until a reviewer decides.
type Activity struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	StudentID    uint       `gorm:"not null;index" json:"student_id"`
	Student      *User      `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	ActivityType string     `gorm:"size:32;not null" json:"activity_type"`
	Count        int        `gorm:"not null" json:"count"`
	ImageURL     string     `gorm:"size:512;not null" json:"image_url"`
	ImageProofID string     `gorm:"size:128" json:"image_proof_id,omitempty"`
	Status       string     `gorm:"size:16;not null;default:pending;index" json:"status"`
	Notes        string     `gorm:"size:1024" json:"notes,omitempty"`
	VerifiedByID *uint      `gorm:"index" json:"verified_by_id,omitempty"`
	VerifiedBy   *User      `gorm:"foreignKey:VerifiedByID" json:"verified_by,omitempty"`
	VerifiedAt   *time.Time `json:"verified_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// IsTerminal reports whether the activity has reached a final status.
func (a Activity) IsTerminal() bool {
	return a.Status == StatusVerified || a.Status == StatusRejected
}

// ValidActivityType reports whether the given exercise type is supported.
func ValidActivityType(t string) bool {
	switch t {
	case ActivityPushup, ActivitySitup, ActivityBackup:
		return true
	}
	return false
}
