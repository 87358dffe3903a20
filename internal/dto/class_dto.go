package dto

import "github.com/noxarianet-commits/olahraga-smk1-sragi/internal/models"

// ClassCreateRequest registers a new class for a school year.
type ClassCreateRequest struct {
	Name       string `json:"class_name" validate:"required,min=1,max=64"`
	GradeLevel int    `json:"grade_level" validate:"required,min=10,max=12"`
	SchoolYear string `json:"school_year" validate:"required,min=4,max=16"`
	TeacherID  *uint  `json:"teacher_id"`
}

// ClassResponse serializes a class with its student headcount.
type ClassResponse struct {
	ID           uint   `json:"id"`
	Name         string `json:"class_name"`
	GradeLevel   int    `json:"grade_level"`
	SchoolYear   string `json:"school_year"`
	TeacherID    *uint  `json:"teacher_id,omitempty"`
	TeacherName  string `json:"teacher_name,omitempty"`
	StudentCount int64  `json:"student_count"`
}

// ClassListResponse wraps a paginated class page.
type ClassListResponse struct {
	Items      []ClassResponse `json:"items"`
	Pagination PaginationMeta  `json:"pagination"`
}

// NewClassResponse maps the model and its headcount to the wire shape.
func NewClassResponse(c models.Class, studentCount int64) ClassResponse {
	resp := ClassResponse{
		ID:           c.ID,
		Name:         c.Name,
		GradeLevel:   c.GradeLevel,
		SchoolYear:   c.SchoolYear,
		TeacherID:    c.TeacherID,
		StudentCount: studentCount,
	}
	if c.Teacher != nil {
		resp.TeacherName = c.Teacher.Name
	}
	return resp
}
