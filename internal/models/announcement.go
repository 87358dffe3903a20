package models

import "time"

// Announcement target types.
const (
	TargetAll   = "all"
	TargetClass = "class"
)

// Announcement is a message published by staff to the whole school or to a
// single class.
type Announcement struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"size:255;not null" json:"title"`
	Content       string    `gorm:"type:text;not null" json:"content"`
	TargetType    string    `gorm:"size:16;not null;default:all" json:"target_type"`
	TargetClassID *uint     `gorm:"index" json:"target_class_id,omitempty"`
	TargetClass   *Class    `gorm:"foreignKey:TargetClassID" json:"target_class,omitempty"`
	AuthorID      uint      `gorm:"not null" json:"author_id"`
	Author        *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
