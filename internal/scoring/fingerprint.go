package scoring

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/xavierca1/leadfocus/internal/entity"
)

// Fingerprint serializes every scoring-relevant input deterministically and
// hashes it. The cache compares fingerprints instead of scattering dirty-flag
// checks across call sites: a changed attribute or a newly appended action
// always yields a different hash.
func Fingerprint(snap Snapshot, actions []entity.LeadAction) string {
	var b strings.Builder

	b.WriteString(snap.LeadID)
	b.WriteByte('|')
	b.WriteString(snap.Industry)
	b.WriteByte('|')
	b.WriteString(snap.CompanySize)
	b.WriteByte('|')
	fmt.Fprintf(&b, "%t|%t|%t|%t|", snap.HasEmail, snap.HasPhone, snap.HasLinkedIn, snap.BuyingSignals)
	writeTime(&b, snap.LastBuyingSignalAt)
	writeTime(&b, snap.LastResearchedAt)

	fmt.Fprintf(&b, "%d|", len(actions))
	if latest := latestAction(actions); latest != nil {
		b.WriteString(latest.ID)
		b.WriteByte('|')
		b.WriteString(latest.ActionType)
		b.WriteByte('|')
		b.WriteString(latest.CreatedAt.UTC().Format(time.RFC3339Nano))
	}

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

func writeTime(b *strings.Builder, t *time.Time) {
	if t != nil {
		b.WriteString(t.UTC().Format(time.RFC3339Nano))
	}
	b.WriteByte('|')
}

func latestAction(actions []entity.LeadAction) *entity.LeadAction {
	var latest *entity.LeadAction
	for i := range actions {
		if latest == nil || actions[i].CreatedAt.After(latest.CreatedAt) {
			latest = &actions[i]
		}
	}
	return latest
}
