// Package advisor suggests an assignee for a new task by asking a
// text-generation model to pick from a roster of candidates.
package advisor

import (
	"context"
	"errors"
)

var (
	// ErrInvalidInput is returned before any model call when the description
	// or the candidate list is empty.
	ErrInvalidInput = errors.New("task description and at least one candidate are required")
	// ErrSuggestionFailed covers every failure of the model call itself.
	ErrSuggestionFailed = errors.New("failed to get task assignment suggestion")
)

// Candidate is one user the model may pick.
type Candidate struct {
	UserID       string   `json:"userId"`
	Role         string   `json:"role"`
	Availability string   `json:"availability"`
	Skills       []string `json:"skills"`
}

// Suggestion is the model's pick. SuggestedUserID is expected to be one of
// the candidates but that is not verified; callers treat it as advisory.
type Suggestion struct {
	SuggestedUserID string `json:"suggestedUserId" description:"The user ID of the suggested user to assign the task to."`
	Reason          string `json:"reason" description:"The reason for suggesting this user."`
}

// Advisor picks a likely assignee for a task.
type Advisor interface {
	Suggest(ctx context.Context, taskDescription string, candidates []Candidate) (*Suggestion, error)
}
