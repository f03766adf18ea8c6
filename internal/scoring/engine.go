package scoring

import (
	"errors"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/xavierca1/leadfocus/internal/entity"
)

// ErrMalformedSnapshot means the snapshot cannot be scored at all. Callers are
// expected to fall back to the last good cached score.
var ErrMalformedSnapshot = errors.New("malformed lead snapshot")

// neutralScore is what an unknown individual signal contributes. Incomplete
// research data must not zero out a lead.
const neutralScore = 50.0

// weakSignalScore is the contribution of a known absence of buying signals.
const weakSignalScore = 25.0

// Weights of the four sub-scores. They must sum to 1 so the weighted sum stays
// inside [0,100].
type Weights struct {
	BuyingSignal float64
	ICPFit       float64
	Recency      float64
	Completeness float64
}

func DefaultWeights() Weights {
	return Weights{
		BuyingSignal: 0.35,
		ICPFit:       0.30,
		Recency:      0.20,
		Completeness: 0.15,
	}
}

// TargetProfile is the user's ideal-customer profile. Empty lists mean the user
// has not configured that dimension, which scores neutral rather than zero.
type TargetProfile struct {
	Industries   []string
	CompanySizes []string
}

type Result struct {
	Score     float64
	Tier      string
	Breakdown map[string]float64
}

// Engine turns a signal snapshot plus recent action history into a score.
// Calculate is pure: identical inputs with a now inside the same hour always
// produce identical output. That property is what makes the cache fingerprint
// discipline sound.
type Engine struct {
	weights         Weights
	target          TargetProfile
	recencyHalfLife time.Duration
}

func NewEngine(target TargetProfile) *Engine {
	return &Engine{
		weights:         DefaultWeights(),
		target:          target,
		recencyHalfLife: 7 * 24 * time.Hour,
	}
}

func (e *Engine) Calculate(snap Snapshot, actions []entity.LeadAction, now time.Time) (*Result, error) {
	if snap.LeadID == "" {
		return nil, ErrMalformedSnapshot
	}

	// Truncating now keeps repeated computes within the hour bit-identical.
	now = now.UTC().Truncate(time.Hour)

	buying := e.buyingSignalScore(snap)
	icp := e.icpFitScore(snap)
	recency := e.recencyScore(actions, now)
	completeness := e.completenessScore(snap)

	score := buying*e.weights.BuyingSignal +
		icp*e.weights.ICPFit +
		recency*e.weights.Recency +
		completeness*e.weights.Completeness

	score = clamp(score, 0, 100)
	score = math.Round(score*10) / 10

	return &Result{
		Score: score,
		Tier:  entity.TierForScore(score),
		Breakdown: map[string]float64{
			"buying_signal":        buying,
			"icp_fit":              icp,
			"engagement_recency":   recency,
			"contact_completeness": completeness,
		},
	}, nil
}

func (e *Engine) buyingSignalScore(snap Snapshot) float64 {
	if snap.BuyingSignals {
		return 100
	}
	return weakSignalScore
}

func (e *Engine) icpFitScore(snap Snapshot) float64 {
	industry := matchScore(snap.Industry, e.target.Industries)
	size := matchScore(snap.CompanySize, e.target.CompanySizes)
	return (industry + size) / 2
}

// matchScore compares one firmographic attribute against the user's targets.
// Unknown attribute or unconfigured target dimension scores neutral.
func matchScore(value string, targets []string) float64 {
	if value == "" || len(targets) == 0 {
		return neutralScore
	}
	for _, t := range targets {
		if strings.EqualFold(strings.TrimSpace(t), strings.TrimSpace(value)) {
			return 100
		}
	}
	return 0
}

// recencyScore decays exponentially from the most recent tracked action, halving
// every recencyHalfLife. No history scores neutral.
func (e *Engine) recencyScore(actions []entity.LeadAction, now time.Time) float64 {
	latest := latestActionTime(actions)
	if latest == nil {
		return neutralScore
	}

	age := now.Sub(*latest)
	if age < 0 {
		age = 0
	}

	halfLives := float64(age) / float64(e.recencyHalfLife)
	return 100 * math.Exp(-math.Ln2*halfLives)
}

func (e *Engine) completenessScore(snap Snapshot) float64 {
	present := 0
	if snap.HasEmail {
		present++
	}
	if snap.HasPhone {
		present++
	}
	if snap.HasLinkedIn {
		present++
	}
	return float64(present) / 3 * 100
}

func latestActionTime(actions []entity.LeadAction) *time.Time {
	if len(actions) == 0 {
		return nil
	}
	ts := make([]time.Time, 0, len(actions))
	for _, a := range actions {
		ts = append(ts, a.CreatedAt)
	}
	sort.Slice(ts, func(i, j int) bool { return ts[i].After(ts[j]) })
	return &ts[0]
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
