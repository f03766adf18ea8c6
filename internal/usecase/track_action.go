package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/xavierca1/leadfocus/internal/entity"
	"github.com/xavierca1/leadfocus/internal/infra/queue"
)

const notifyTimeout = 5 * time.Second

type TrackActionInput struct {
	LeadID     string            `json:"lead_id"`
	ActionType string            `json:"action_type"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// TrackActionUseCase appends an immutable action event, marks the lead's score
// cache entry stale, and notifies the gamification collaborator.
//
// Ordering matters: if the append fails, nothing else happens and the call
// fails as a whole. Notification failures are logged, never returned — the
// action is recorded regardless of downstream outcome.
type TrackActionUseCase struct {
	Actions  entity.ActionLogStoreInterface
	Leads    entity.LeadRepositoryInterface
	Scores   ScoreProviderInterface
	Notifier GamificationNotifierInterface
	Log      *logrus.Logger
}

func NewTrackActionUseCase(
	actions entity.ActionLogStoreInterface,
	leads entity.LeadRepositoryInterface,
	scores ScoreProviderInterface,
	notifier GamificationNotifierInterface,
	log *logrus.Logger,
) *TrackActionUseCase {
	return &TrackActionUseCase{
		Actions:  actions,
		Leads:    leads,
		Scores:   scores,
		Notifier: notifier,
		Log:      log,
	}
}

func (uc *TrackActionUseCase) Execute(ctx context.Context, userID string, input TrackActionInput) (*entity.LeadAction, error) {
	if userID == "" {
		return nil, NewError(KindNotAuthenticated, "no authenticated user")
	}

	if errs := ValidateTrackActionInput(input); len(errs) > 0 {
		return nil, validationFailure(errs)
	}

	if _, err := uc.Leads.FindByIDForUser(ctx, input.LeadID, userID); err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, WrapError(KindNotFound, "lead does not belong to user", err)
		}
		return nil, WrapError(KindPersistence, "failed to load lead", err)
	}

	action := &entity.LeadAction{
		ID:         uuid.New().String(),
		UserID:     userID,
		LeadID:     input.LeadID,
		ActionType: input.ActionType,
		Metadata:   input.Metadata,
		CreatedAt:  time.Now().UTC(),
	}

	if err := uc.Actions.Append(ctx, action); err != nil {
		return nil, WrapError(KindPersistence, "failed to record action", err)
	}

	// The append committed; everything below is a post-commit effect.
	recordActionTracked(action.ActionType)
	uc.Scores.Invalidate(userID, input.LeadID)

	if uc.Notifier != nil {
		go uc.notify(action)
	}

	return action, nil
}

func (uc *TrackActionUseCase) notify(action *entity.LeadAction) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	err := uc.Notifier.PublishActionEvent(ctx, queue.ActionEventPayload{
		EventType:  "lead_action_tracked",
		UserID:     action.UserID,
		LeadID:     action.LeadID,
		ActionID:   action.ID,
		ActionType: action.ActionType,
		Metadata:   action.Metadata,
		OccurredAt: action.CreatedAt,
	})
	if err != nil {
		uc.Log.WithFields(logrus.Fields{
			"user_id":   action.UserID,
			"lead_id":   action.LeadID,
			"action_id": action.ID,
		}).WithError(err).Warn("gamification notification failed")
	}
}
