package entity

import (
	"context"
	"time"
)

const (
	TierHigh   = "high"
	TierMedium = "medium"
	TierLow    = "low"
)

// Tier thresholds are fixed: a score is high from 70 and medium from 40.
const (
	TierHighThreshold   = 70.0
	TierMediumThreshold = 40.0
)

// TierForScore derives the tier from a score. It is the only place the
// thresholds live.
func TierForScore(score float64) string {
	switch {
	case score >= TierHighThreshold:
		return TierHigh
	case score >= TierMediumThreshold:
		return TierMedium
	default:
		return TierLow
	}
}

// TierRank orders tiers for ranking (higher is better).
func TierRank(tier string) int {
	switch tier {
	case TierHigh:
		return 2
	case TierMedium:
		return 1
	default:
		return 0
	}
}

// PriorityScore is derived, rebuildable state: the last computed score for a
// (user, lead) pair together with the fingerprint of the inputs that produced it.
type PriorityScore struct {
	UserID           string             `json:"user_id"`
	LeadID           string             `json:"lead_id"`
	Score            float64            `json:"score"`
	Tier             string             `json:"tier"`
	InputFingerprint string             `json:"input_fingerprint"`
	ComputedAt       time.Time          `json:"computed_at"`
	Breakdown        map[string]float64 `json:"breakdown,omitempty"`
}

type ScoreRepositoryInterface interface {
	Upsert(ctx context.Context, score *PriorityScore) error

	FindByUserAndLead(ctx context.Context, userID, leadID string) (*PriorityScore, error)
}
