package scoring

import (
	"context"
	"time"

	"github.com/xavierca1/leadfocus/internal/entity"
)

// recentActionLimit bounds how much history feeds the recency sub-score and the
// input fingerprint. Older actions cannot change the score anyway.
const recentActionLimit = 20

// Snapshot is the scoring-relevant view of a lead, frozen at read time.
type Snapshot struct {
	LeadID             string
	Industry           string
	CompanySize        string
	HasEmail           bool
	HasPhone           bool
	HasLinkedIn        bool
	BuyingSignals      bool
	LastBuyingSignalAt *time.Time
	LastResearchedAt   *time.Time
}

// SnapshotFromLead projects a lead onto its scoring-relevant attributes.
func SnapshotFromLead(lead *entity.Lead) Snapshot {
	return Snapshot{
		LeadID:             lead.ID,
		Industry:           lead.Industry,
		CompanySize:        lead.CompanySize,
		HasEmail:           lead.Email != "",
		HasPhone:           lead.Phone != "",
		HasLinkedIn:        lead.LinkedInURL != "",
		BuyingSignals:      lead.BuyingSignals,
		LastBuyingSignalAt: lead.LastBuyingSignalAt,
		LastResearchedAt:   lead.LastResearchedAt,
	}
}

// SignalReader assembles a lead's snapshot and recent action history from the
// owning repositories. It is the read-only leaf the cache recomputes from.
type SignalReader struct {
	Leads   entity.LeadRepositoryInterface
	Actions entity.ActionLogStoreInterface
}

func NewSignalReader(leads entity.LeadRepositoryInterface, actions entity.ActionLogStoreInterface) *SignalReader {
	return &SignalReader{Leads: leads, Actions: actions}
}

func (r *SignalReader) Read(ctx context.Context, userID, leadID string) (Snapshot, []entity.LeadAction, error) {
	lead, err := r.Leads.FindByIDForUser(ctx, leadID, userID)
	if err != nil {
		return Snapshot{}, nil, err
	}

	actions, err := r.Actions.ListRecentByLead(ctx, userID, leadID, recentActionLimit)
	if err != nil {
		return Snapshot{}, nil, err
	}

	return SnapshotFromLead(lead), actions, nil
}
