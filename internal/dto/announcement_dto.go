package dto

import (
	"time"

	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/models"
)

// AnnouncementCreateRequest publishes a message to the school or one class.
type AnnouncementCreateRequest struct {
	Title         string `json:"title" validate:"required,min=1,max=255"`
	Content       string `json:"content" validate:"required,min=1"`
	TargetType    string `json:"target_type" validate:"required,oneof=all class"`
	TargetClassID *uint  `json:"target_class_id" validate:"required_if=TargetType class"`
}

// AnnouncementResponse serializes an announcement.
type AnnouncementResponse struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	TargetType    string    `json:"target_type"`
	TargetClassID *uint     `json:"target_class_id,omitempty"`
	AuthorID      uint      `json:"author_id"`
	AuthorName    string    `json:"author_name,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// AnnouncementListResponse wraps a paginated announcement page.
type AnnouncementListResponse struct {
	Items      []AnnouncementResponse `json:"items"`
	Pagination PaginationMeta         `json:"pagination"`
	CacheHit   bool                   `json:"-"`
}

// NewAnnouncementResponse maps the model to its wire representation.
func NewAnnouncementResponse(a models.Announcement) AnnouncementResponse {
	resp := AnnouncementResponse{
		ID:            a.ID,
		Title:         a.Title,
		Content:       a.Content,
		TargetType:    a.TargetType,
		TargetClassID: a.TargetClassID,
		AuthorID:      a.AuthorID,
		CreatedAt:     a.CreatedAt,
	}
	if a.Author != nil {
		resp.AuthorName = a.Author.Name
	}
	return resp
}
