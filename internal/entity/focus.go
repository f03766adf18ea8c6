package entity

import (
	"context"
	"time"
)

// FocusDateLayout is the calendar-date key format for DailyFocus rows.
const FocusDateLayout = "2006-01-02"

// DailyFocus is the persisted worklist for one user and one calendar day.
// Once committed it is returned as-is for the rest of the day unless a forced
// rebuild replaces it.
type DailyFocus struct {
	UserID      string    `json:"user_id"`
	FocusDate   string    `json:"focus_date"`
	LeadIDs     []string  `json:"lead_ids"`
	GeneratedAt time.Time `json:"generated_at"`
}

type DailyFocusRepositoryInterface interface {
	// Find returns (nil, nil) when no list exists for the date yet.
	Find(ctx context.Context, userID, focusDate string) (*DailyFocus, error)

	// SaveIfAbsent commits the list only if none exists for (user, date) and
	// returns the committed row either way, so the loser of a concurrent build
	// observes the winner's list.
	SaveIfAbsent(ctx context.Context, focus *DailyFocus) (*DailyFocus, error)

	Delete(ctx context.Context, userID, focusDate string) error
}
