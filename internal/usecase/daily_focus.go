package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/xavierca1/leadfocus/internal/entity"
)

const (
	DefaultFocusListSize = 10
	DefaultCooldown      = 7 * 24 * time.Hour
)

type DailyFocusOutput struct {
	Focus *entity.DailyFocus `json:"focus"`
	Leads []*entity.Lead     `json:"leads"`
	Count int                `json:"count"`
}

// DailyFocusUseCase builds the bounded, stable worklist for one user and one
// calendar day. Candidates are the user's researched leads minus anyone
// contacted inside the cool-down window; each candidate gets a fresh score
// through the cache, the pool is ranked and truncated to the list size, and the
// result is committed once. Repeated reads for the same date return the
// committed list unchanged unless a forced rebuild replaces it.
type DailyFocusUseCase struct {
	Leads   entity.LeadRepositoryInterface
	Actions entity.ActionLogStoreInterface
	Focus   entity.DailyFocusRepositoryInterface
	Scores  ScoreProviderInterface

	ListSize int
	Cooldown time.Duration
	Log      *logrus.Logger

	locks keyedMutex
	now   func() time.Time
}

func NewDailyFocusUseCase(
	leads entity.LeadRepositoryInterface,
	actions entity.ActionLogStoreInterface,
	focus entity.DailyFocusRepositoryInterface,
	scores ScoreProviderInterface,
	listSize int,
	cooldown time.Duration,
	log *logrus.Logger,
) *DailyFocusUseCase {
	if listSize <= 0 {
		listSize = DefaultFocusListSize
	}
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &DailyFocusUseCase{
		Leads:    leads,
		Actions:  actions,
		Focus:    focus,
		Scores:   scores,
		ListSize: listSize,
		Cooldown: cooldown,
		Log:      log,
		now:      time.Now,
	}
}

func (uc *DailyFocusUseCase) Execute(ctx context.Context, userID, focusDate string, force bool) (*DailyFocusOutput, error) {
	if userID == "" {
		return nil, NewError(KindNotAuthenticated, "no authenticated user")
	}
	if focusDate == "" {
		focusDate = uc.now().UTC().Format(entity.FocusDateLayout)
	}
	if errs := ValidateFocusDate(focusDate); len(errs) > 0 {
		return nil, validationFailure(errs)
	}

	// One builder per (user, date) at a time; a waiter that loses the race finds
	// the winner's committed row on its own read.
	unlock := uc.locks.lock(userID + "/" + focusDate)
	defer unlock()

	existing, err := uc.Focus.Find(ctx, userID, focusDate)
	if err != nil {
		return nil, WrapError(KindPersistence, "failed to load daily focus", err)
	}
	if existing != nil && !force {
		return uc.output(ctx, existing)
	}

	focus, err := uc.build(ctx, userID, focusDate)
	if err != nil {
		return nil, err
	}

	committed, err := uc.commit(ctx, focus, existing, force)
	if err != nil {
		return nil, err
	}
	recordFocusBuild()

	return uc.output(ctx, committed)
}

func (uc *DailyFocusUseCase) build(ctx context.Context, userID, focusDate string) (*entity.DailyFocus, error) {
	pool, err := uc.Leads.ListResearchedByUser(ctx, userID)
	if err != nil {
		return nil, WrapError(KindPersistence, "failed to load candidate leads", err)
	}

	cutoff := uc.now().UTC().Add(-uc.Cooldown)
	contactedIDs, err := uc.Actions.ListContactedLeadIDsSince(ctx, userID, cutoff)
	if err != nil {
		return nil, WrapError(KindPersistence, "failed to load contact history", err)
	}
	coolingDown := make(map[string]bool, len(contactedIDs))
	for _, id := range contactedIDs {
		coolingDown[id] = true
	}

	type candidate struct {
		lead  *entity.Lead
		score *entity.PriorityScore
	}

	candidates := make([]candidate, 0, len(pool))
	for _, lead := range pool {
		if coolingDown[lead.ID] {
			continue
		}
		score, err := uc.Scores.GetOrCompute(ctx, userID, lead.ID, false)
		if err != nil {
			// A single unscorable lead must not sink the whole build.
			uc.Log.WithFields(logrus.Fields{
				"user_id": userID,
				"lead_id": lead.ID,
			}).WithError(err).Warn("skipping lead without obtainable score")
			continue
		}
		candidates = append(candidates, candidate{lead: lead, score: score})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if ra, rb := entity.TierRank(a.score.Tier), entity.TierRank(b.score.Tier); ra != rb {
			return ra > rb
		}
		if a.score.Score != b.score.Score {
			return a.score.Score > b.score.Score
		}
		if ta, tb := signalTime(a.lead), signalTime(b.lead); !ta.Equal(tb) {
			return ta.After(tb)
		}
		if ra, rb := researchTime(a.lead), researchTime(b.lead); !ra.Equal(rb) {
			return ra.After(rb)
		}
		return a.lead.ID < b.lead.ID
	})

	if len(candidates) > uc.ListSize {
		candidates = candidates[:uc.ListSize]
	}

	leadIDs := make([]string, 0, len(candidates))
	for _, c := range candidates {
		leadIDs = append(leadIDs, c.lead.ID)
	}

	return &entity.DailyFocus{
		UserID:      userID,
		FocusDate:   focusDate,
		LeadIDs:     leadIDs,
		GeneratedAt: uc.now().UTC(),
	}, nil
}

// commit persists the list. A plain build uses save-if-absent so a concurrent
// winner's row survives; a forced rebuild replaces the old row and restores it
// if the replacement fails.
func (uc *DailyFocusUseCase) commit(ctx context.Context, focus, existing *entity.DailyFocus, force bool) (*entity.DailyFocus, error) {
	if !force || existing == nil {
		committed, err := uc.Focus.SaveIfAbsent(ctx, focus)
		if err != nil {
			return nil, WrapError(KindPersistence, "failed to persist daily focus", err)
		}
		return committed, nil
	}

	// The committed row can differ from the rebuilt one if another process wrote
	// between the delete and the save; the store's answer wins either way.
	var committed *entity.DailyFocus

	txn := NewTransaction(uc.Log)
	txn.AddOperation("delete_previous_focus", func(ctx context.Context) error {
		return uc.Focus.Delete(ctx, focus.UserID, focus.FocusDate)
	})
	txn.AddCompensation("restore_previous_focus", func(ctx context.Context) error {
		_, err := uc.Focus.SaveIfAbsent(ctx, existing)
		return err
	})
	txn.AddOperation("save_rebuilt_focus", func(ctx context.Context) error {
		var err error
		committed, err = uc.Focus.SaveIfAbsent(ctx, focus)
		return err
	})

	if err := txn.Execute(ctx); err != nil {
		return nil, WrapError(KindPersistence, "failed to rebuild daily focus", err)
	}
	return committed, nil
}

// output resolves the committed lead ids back to leads, preserving order.
// A lead deleted since the list was generated is simply omitted.
func (uc *DailyFocusUseCase) output(ctx context.Context, focus *entity.DailyFocus) (*DailyFocusOutput, error) {
	leads := make([]*entity.Lead, 0, len(focus.LeadIDs))
	for _, id := range focus.LeadIDs {
		lead, err := uc.Leads.FindByIDForUser(ctx, id, focus.UserID)
		if err != nil {
			uc.Log.WithFields(logrus.Fields{
				"user_id": focus.UserID,
				"lead_id": id,
			}).WithError(err).Warn("focused lead no longer resolvable")
			continue
		}
		leads = append(leads, lead)
	}

	return &DailyFocusOutput{
		Focus: focus,
		Leads: leads,
		Count: len(leads),
	}, nil
}

func signalTime(lead *entity.Lead) time.Time {
	if lead.LastBuyingSignalAt != nil {
		return *lead.LastBuyingSignalAt
	}
	return time.Time{}
}

func researchTime(lead *entity.Lead) time.Time {
	if lead.LastResearchedAt != nil {
		return *lead.LastResearchedAt
	}
	return time.Time{}
}

// keyedMutex serializes work per string key without holding a mutex per key
// forever. Entries are reference-counted and removed when the last holder
// releases.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	mu   sync.Mutex
	refs int
}

func (k *keyedMutex) lock(key string) (unlock func()) {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*keyedLock)
	}
	l, ok := k.locks[key]
	if !ok {
		l = &keyedLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
