package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/xavierca1/leadfocus/internal/entity"
)

func TestFingerprintIsStable(t *testing.T) {
	snap := highValueSnapshot()
	actions := []entity.LeadAction{
		{ID: "a-1", ActionType: entity.ActionViewed, CreatedAt: time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)},
	}

	assert.Equal(t, Fingerprint(snap, actions), Fingerprint(snap, actions))
}

func TestFingerprintChangesWithAttributes(t *testing.T) {
	base := highValueSnapshot()
	changed := base
	changed.HasPhone = true

	assert.NotEqual(t, Fingerprint(base, nil), Fingerprint(changed, nil))
}

func TestFingerprintChangesWithNewAction(t *testing.T) {
	snap := highValueSnapshot()
	before := []entity.LeadAction{
		{ID: "a-1", ActionType: entity.ActionViewed, CreatedAt: time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)},
	}
	after := append([]entity.LeadAction{
		{ID: "a-2", ActionType: entity.ActionContacted, CreatedAt: time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)},
	}, before...)

	assert.NotEqual(t, Fingerprint(snap, before), Fingerprint(snap, after))
}
