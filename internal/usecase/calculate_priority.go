package usecase

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/xavierca1/leadfocus/internal/entity"
	"github.com/xavierca1/leadfocus/internal/scoring"
)

// CalculatePriorityUseCase serves a lead's priority score through the cache.
// A non-forced read with an unchanged input fingerprint returns the cached
// score untouched; force always recomputes.
type CalculatePriorityUseCase struct {
	Leads  entity.LeadRepositoryInterface
	Scores ScoreProviderInterface
	Log    *logrus.Logger
}

func NewCalculatePriorityUseCase(
	leads entity.LeadRepositoryInterface,
	scores ScoreProviderInterface,
	log *logrus.Logger,
) *CalculatePriorityUseCase {
	return &CalculatePriorityUseCase{Leads: leads, Scores: scores, Log: log}
}

func (uc *CalculatePriorityUseCase) Execute(ctx context.Context, userID, leadID string, force bool) (*entity.PriorityScore, error) {
	if userID == "" {
		return nil, NewError(KindNotAuthenticated, "no authenticated user")
	}
	if leadID == "" {
		return nil, NewError(KindValidation, "validation failed: lead_id (is required)")
	}

	if _, err := uc.Leads.FindByIDForUser(ctx, leadID, userID); err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, WrapError(KindNotFound, "lead does not belong to user", err)
		}
		return nil, WrapError(KindPersistence, "failed to load lead", err)
	}

	score, err := uc.Scores.GetOrCompute(ctx, userID, leadID, force)
	if err != nil {
		// The cache already fell back to the last good score where it could; an
		// error here means there was nothing to serve.
		if errors.Is(err, scoring.ErrMalformedSnapshot) {
			uc.Log.WithFields(logrus.Fields{
				"user_id": userID,
				"lead_id": leadID,
			}).WithError(err).Error("score computation failed with no cached fallback")
			return nil, WrapError(KindComputation, "unable to compute priority score", err)
		}
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, WrapError(KindNotFound, "lead does not belong to user", err)
		}
		return nil, WrapError(KindPersistence, "failed to obtain priority score", err)
	}

	return score, nil
}
