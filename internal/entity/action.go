package entity

import (
	"context"
	"time"
)

// Action types accepted by the tracker. Anything else is rejected before any
// state mutation.
const (
	ActionContacted         = "contacted"
	ActionViewed            = "viewed"
	ActionAddedToFocus      = "added_to_focus"
	ActionGeneratedOutreach = "generated_outreach"
)

func ValidActionType(t string) bool {
	switch t {
	case ActionContacted, ActionViewed, ActionAddedToFocus, ActionGeneratedOutreach:
		return true
	}
	return false
}

// LeadAction is an immutable, append-only event. It is the source of truth for
// cache invalidation and the contact cool-down.
type LeadAction struct {
	ID         string            `json:"id"`
	UserID     string            `json:"user_id"`
	LeadID     string            `json:"lead_id"`
	ActionType string            `json:"action_type"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}

type ActionLogStoreInterface interface {
	// Append must be idempotent on the action id so callers can safely retry.
	Append(ctx context.Context, action *LeadAction) error

	ListRecentByLead(ctx context.Context, userID, leadID string, limit int) ([]LeadAction, error)

	// ListContactedLeadIDsSince returns the ids of leads the user contacted at or
	// after the given instant.
	ListContactedLeadIDsSince(ctx context.Context, userID string, since time.Time) ([]string, error)
}
