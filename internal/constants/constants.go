package constants

// Session / context keys
const (
	SessionCookieName = "taskfocus_session"
	ContextKeyUserID  = "user_id"
	ContextKeyTask    = "task"
)

// Auth
const (
	MinPasswordLength = 8
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
