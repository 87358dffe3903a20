package dto

// StudentDashboardResponse summarizes a student's own progress.
type StudentDashboardResponse struct {
	TotalActivities     int64                  `json:"total_activities"`
	VerifiedCount       int64                  `json:"verified_count"`
	PendingCount        int64                  `json:"pending_count"`
	RejectedCount       int64                  `json:"rejected_count"`
	TodayActivities     []ActivityResponse     `json:"todayActivities"`
	RecentAnnouncements []AnnouncementResponse `json:"recentAnnouncements"`
	CacheHit            bool                   `json:"-"`
}

// TeacherDashboardResponse summarizes the review queue for a teacher.
type TeacherDashboardResponse struct {
	PendingReviewCount int64              `json:"pending_review_count"`
	VerifiedToday      int64              `json:"verified_today"`
	ClassStudentCount  int64              `json:"class_student_count"`
	RecentPending      []ActivityResponse `json:"recent_pending"`
	CacheHit           bool               `json:"-"`
}

// AdminDashboardResponse summarizes platform-wide totals.
type AdminDashboardResponse struct {
	TotalStudents    int64 `json:"total_students"`
	TotalTeachers    int64 `json:"total_teachers"`
	TotalClasses     int64 `json:"total_classes"`
	TotalActivities  int64 `json:"total_activities"`
	PendingReview    int64 `json:"pending_review"`
	VerifiedOverall  int64 `json:"verified_overall"`
	RejectedOverall  int64 `json:"rejected_overall"`
	SubmissionsToday int64 `json:"submissions_today"`
	CacheHit         bool  `json:"-"`
}
