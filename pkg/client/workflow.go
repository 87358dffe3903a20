package client

// Role and lifecycle constants as they appear on the wire.
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"

	StatusPending  = "pending"
	StatusVerified = "verified"
	StatusRejected = "rejected"

	ActivityPushup = "pushup"
	ActivitySitup  = "situp"
	ActivityBackup = "backup"
)

// CanDelete is the single deletion capability rule, shared by every list
// view. Students may remove only their own still-pending reports; staff may
// remove any report regardless of status.
func CanDelete(role, status string, isOwner bool) bool {
	switch role {
	case RoleTeacher, RoleAdmin:
		return true
	case RoleStudent:
		return isOwner && status == StatusPending
	default:
		return false
	}
}

// CanVerify reports whether the caller's role may record verification
// decisions at all. The pending precondition is enforced server-side.
func CanVerify(role string) bool {
	return role == RoleTeacher || role == RoleAdmin
}
