package dto

import (
	"time"

	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/models"
)

// ActivityListRequest narrows activity list queries.
type ActivityListRequest struct {
	ClassID   uint
	StudentID uint
	Status    string
	Search    string
	Page      int
	PageSize  int
}

// ActivitySubmitRequest carries a new daily exercise report.
type ActivitySubmitRequest struct {
	ActivityType string `json:"activity_type" validate:"required,oneof=pushup situp backup"`
	Count        int    `json:"count" validate:"required,gt=0"`
	ImageURL     string `json:"image_url" validate:"required,url"`
	ImageProofID string `json:"image_proof_id" validate:"omitempty,max=128"`
}

// VerifyRequest carries a reviewer decision for a pending activity.
type VerifyRequest struct {
	Status string `json:"status" validate:"required,oneof=verified rejected"`
	Notes  string `json:"notes" validate:"omitempty,max=1024"`
}

// ActivityStudentInfo nests the submitting student inside activity payloads.
type ActivityStudentInfo struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	NIS       string `json:"nis,omitempty"`
	ClassName string `json:"class_name,omitempty"`
}

// ActivityResponse serializes an activity for API consumers.
type ActivityResponse struct {
	ID           uint                 `json:"id"`
	Student      *ActivityStudentInfo `json:"student_id,omitempty"`
	ActivityType string               `json:"activity_type"`
	Count        int                  `json:"count"`
	ImageURL     string               `json:"image_url"`
	ImageProofID string               `json:"image_proof_id,omitempty"`
	Status       string               `json:"status"`
	Notes        string               `json:"notes,omitempty"`
	VerifiedByID *uint                `json:"verified_by_id,omitempty"`
	VerifiedAt   *time.Time           `json:"verified_at,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
}

// ActivityListResponse wraps a paginated activity page.
type ActivityListResponse struct {
	Items      []ActivityResponse `json:"items"`
	Pagination PaginationMeta     `json:"pagination"`
}

// NewActivityResponse maps the model to its wire representation.
func NewActivityResponse(a models.Activity) ActivityResponse {
	resp := ActivityResponse{
		ID:           a.ID,
		ActivityType: a.ActivityType,
		Count:        a.Count,
		ImageURL:     a.ImageURL,
		ImageProofID: a.ImageProofID,
		Status:       a.Status,
		Notes:        a.Notes,
		VerifiedByID: a.VerifiedByID,
		VerifiedAt:   a.VerifiedAt,
		CreatedAt:    a.CreatedAt,
	}

	if a.Student != nil {
		info := ActivityStudentInfo{
			ID:   a.Student.ID,
			Name: a.Student.Name,
			NIS:  a.Student.NIS,
		}
		if a.Student.Class != nil {
			info.ClassName = a.Student.Class.Name
		}
		resp.Student = &info
	}

	return resp
}
