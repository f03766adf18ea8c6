package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/xavierca1/leadfocus/internal/entity"
	"github.com/xavierca1/leadfocus/internal/scoring"
)

// DefaultTTL guards against signal-source drift the fingerprint cannot see.
const DefaultTTL = 24 * time.Hour

// SignalSource provides the inputs a score computation needs.
type SignalSource interface {
	Read(ctx context.Context, userID, leadID string) (scoring.Snapshot, []entity.LeadAction, error)
}

// ScorePersister receives recomputed scores. Persistence is best-effort: scores
// are derived, rebuildable state, so a failed write is logged, never surfaced.
type ScorePersister interface {
	Upsert(ctx context.Context, score *entity.PriorityScore) error
}

type cacheEntry struct {
	score *entity.PriorityScore
	stale bool
}

// ScoreCache keeps the last PriorityScore per (user, lead). Every read goes
// through single-flight: concurrent requests for the same pair collapse into
// one pass that reads the current signals, compares their fingerprint against
// the stored one, and re-runs the engine only when the caller forces it, no
// entry exists, the entry was marked stale, the fingerprint changed, or the
// entry outlived the TTL.
type ScoreCache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry

	group   singleflight.Group
	signals SignalSource
	engine  *scoring.Engine
	store   ScorePersister
	ttl     time.Duration
	log     *logrus.Logger

	now func() time.Time
}

func New(signals SignalSource, engine *scoring.Engine, store ScorePersister, ttl time.Duration, log *logrus.Logger) *ScoreCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ScoreCache{
		entries: make(map[string]*cacheEntry),
		signals: signals,
		engine:  engine,
		store:   store,
		ttl:     ttl,
		log:     log,
		now:     time.Now,
	}
}

// GetOrCompute returns the cached score for (user, lead), recomputing only when
// required. The swap is atomic: a failed computation leaves the previous entry
// untouched, and a malformed snapshot falls back to the last good score.
func (c *ScoreCache) GetOrCompute(ctx context.Context, userID, leadID string, force bool) (*entity.PriorityScore, error) {
	key := cacheKey(userID, leadID)

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		return c.compute(ctx, key, userID, leadID, force)
	})
	if err != nil {
		return nil, err
	}
	return v.(*entity.PriorityScore), nil
}

// Invalidate marks the entry stale. It never recomputes: invalidation is cheap
// and frequent, recomputation is expensive and deferred to the next read.
func (c *ScoreCache) Invalidate(userID, leadID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[cacheKey(userID, leadID)]; ok {
		e.stale = true
	}
}

func (c *ScoreCache) compute(ctx context.Context, key, userID, leadID string, force bool) (*entity.PriorityScore, error) {
	snap, actions, err := c.signals.Read(ctx, userID, leadID)
	if err != nil {
		return nil, fmt.Errorf("reading lead signals: %w", err)
	}

	fingerprint := scoring.Fingerprint(snap, actions)
	prevScore, prevStale, havePrev := c.lookup(key)

	if !force && havePrev && !prevStale && !c.expired(prevScore) && prevScore.InputFingerprint == fingerprint {
		recordHit()
		return prevScore, nil
	}
	recordMiss()

	result, err := c.engine.Calculate(snap, actions, c.now())
	if err != nil {
		if errors.Is(err, scoring.ErrMalformedSnapshot) && havePrev {
			c.log.WithFields(logrus.Fields{
				"user_id": userID,
				"lead_id": leadID,
			}).WithError(err).Warn("score computation failed, serving last good score")
			return prevScore, nil
		}
		return nil, fmt.Errorf("computing score: %w", err)
	}
	recordCompute(result.Tier)

	score := &entity.PriorityScore{
		UserID:           userID,
		LeadID:           leadID,
		Score:            result.Score,
		Tier:             result.Tier,
		InputFingerprint: fingerprint,
		ComputedAt:       c.now().UTC(),
		Breakdown:        result.Breakdown,
	}

	c.swap(key, score)

	if c.store != nil {
		if err := c.store.Upsert(ctx, score); err != nil {
			c.log.WithFields(logrus.Fields{
				"user_id": userID,
				"lead_id": leadID,
			}).WithError(err).Warn("failed to persist recomputed score")
		}
	}

	return score, nil
}

// lookup copies the entry's fields while holding the lock; the stale flag must
// never be read after the lock is released because Invalidate writes it
// concurrently.
func (c *ScoreCache) lookup(key string) (score *entity.PriorityScore, stale bool, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false, false
	}
	return e.score, e.stale, true
}

func (c *ScoreCache) swap(key string, score *entity.PriorityScore) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = &cacheEntry{score: score}
}

func (c *ScoreCache) expired(score *entity.PriorityScore) bool {
	return c.now().Sub(score.ComputedAt) > c.ttl
}

func cacheKey(userID, leadID string) string {
	return userID + "/" + leadID
}
