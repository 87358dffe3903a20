package models

import "time"

// Roles recognised by the platform.
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

// User represents any account on the platform. Students log in with their
// NIS, teachers and admins with an email address.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Role         string    `gorm:"size:32;not null;index" json:"role"`
	NIS          string    `gorm:"size:32;uniqueIndex:idx_users_nis,where:nis <> ''" json:"nis,omitempty"`
	Email        string    `gorm:"size:255;uniqueIndex:idx_users_email,where:email <> ''" json:"email,omitempty"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	ClassID      *uint     `gorm:"index" json:"class_id,omitempty"`
	Class        *Class    `gorm:"foreignKey:ClassID" json:"class,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsStaff reports whether the user may review activity submissions.
func (u User) IsStaff() bool {
	return u.Role == RoleTeacher || u.Role == RoleAdmin
}
