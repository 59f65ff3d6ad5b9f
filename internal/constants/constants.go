package constants

import "time"

// Context and session keys
const (
	ContextKeyUser  = "user"
	ContextKeyToken = "access_token"
	ContextKeyTask  = "task"

	SessionCookieName = "taskzen_session"
	SessionKeyToken   = "access_token"
)

// Validation limits
const (
	MinPasswordLength = 8
	MaxOutcomeLength  = 500
)

// Task defaults applied by the creation flow
const (
	DefaultTaskDuration = 7 * 24 * time.Hour
	DefaultAvailability = "Not specified"
)

// LoginPath is where clients are sent after their session is invalidated.
const LoginPath = "/login"

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"
