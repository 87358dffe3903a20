package models

import "time"

// Class groups students under a homeroom teacher for one school year.
type Class struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:64;not null;uniqueIndex:idx_classes_name_year" json:"class_name"`
	GradeLevel int       `gorm:"not null" json:"grade_level"`
	SchoolYear string    `gorm:"size:16;not null;uniqueIndex:idx_classes_name_year" json:"school_year"`
	TeacherID  *uint     `gorm:"index" json:"teacher_id,omitempty"`
	Teacher    *User     `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
