package usecase

import (
	"context"

	"github.com/xavierca1/leadfocus/internal/entity"
	"github.com/xavierca1/leadfocus/internal/infra/queue"
)

// ScoreProviderInterface is the score cache as seen from the usecases.
type ScoreProviderInterface interface {
	GetOrCompute(ctx context.Context, userID, leadID string, force bool) (*entity.PriorityScore, error)
	Invalidate(userID, leadID string)
}

// GamificationNotifierInterface delivers action events to the gamification
// collaborator. Delivery is best-effort.
type GamificationNotifierInterface interface {
	PublishActionEvent(ctx context.Context, payload queue.ActionEventPayload) error
}
