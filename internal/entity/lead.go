package entity

import (
	"context"
	"errors"
	"time"
)

// ErrLeadNotFound is returned when a lead does not exist or belongs to another user.
var ErrLeadNotFound = errors.New("lead not found")

type Lead struct {
	ID                 string     `json:"id"`
	UserID             string     `json:"user_id"`
	Name               string     `json:"name"`
	Company            string     `json:"company,omitempty"`
	Industry           string     `json:"industry,omitempty"`
	CompanySize        string     `json:"company_size,omitempty"` // bucket: "1-10", "11-50", ..., "500-1000", "1000+"
	Email              string     `json:"email,omitempty"`
	Phone              string     `json:"phone,omitempty"`
	LinkedInURL        string     `json:"linkedin_url,omitempty"`
	BuyingSignals      bool       `json:"buying_signals"`
	LastBuyingSignalAt *time.Time `json:"last_buying_signal_at,omitempty"`
	LastResearchedAt   *time.Time `json:"last_researched_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// Researched reports whether the lead has ever been researched. Only researched
// leads enter the daily focus candidate pool.
func (l *Lead) Researched() bool {
	return l.LastResearchedAt != nil
}

type LeadRepositoryInterface interface {
	FindByIDForUser(ctx context.Context, leadID, userID string) (*Lead, error)

	ListResearchedByUser(ctx context.Context, userID string) ([]*Lead, error)
}
