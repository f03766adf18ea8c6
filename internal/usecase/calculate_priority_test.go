package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/leadfocus/internal/entity"
	"github.com/xavierca1/leadfocus/internal/scoring"
)

func TestCalculatePriorityReturnsScore(t *testing.T) {
	ctx := context.Background()
	leads := new(MockLeadRepository)
	scores := new(MockScoreProvider)
	uc := NewCalculatePriorityUseCase(leads, scores, logrus.New())

	want := &entity.PriorityScore{
		UserID:     "user-1",
		LeadID:     "lead-1",
		Score:      80,
		Tier:       entity.TierHigh,
		ComputedAt: time.Now().UTC(),
	}

	leads.On("FindByIDForUser", ctx, "lead-1", "user-1").Return(&entity.Lead{ID: "lead-1", UserID: "user-1"}, nil)
	scores.On("GetOrCompute", ctx, "user-1", "lead-1", false).Return(want, nil)

	got, err := uc.Execute(ctx, "user-1", "lead-1", false)
	assert.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCalculatePriorityPassesForceThrough(t *testing.T) {
	ctx := context.Background()
	leads := new(MockLeadRepository)
	scores := new(MockScoreProvider)
	uc := NewCalculatePriorityUseCase(leads, scores, logrus.New())

	leads.On("FindByIDForUser", ctx, "lead-1", "user-1").Return(&entity.Lead{ID: "lead-1", UserID: "user-1"}, nil)
	scores.On("GetOrCompute", ctx, "user-1", "lead-1", true).
		Return(&entity.PriorityScore{UserID: "user-1", LeadID: "lead-1"}, nil)

	_, err := uc.Execute(ctx, "user-1", "lead-1", true)
	assert.NoError(t, err)
	scores.AssertCalled(t, "GetOrCompute", ctx, "user-1", "lead-1", true)
}

func TestCalculatePriorityRequiresUser(t *testing.T) {
	uc := NewCalculatePriorityUseCase(new(MockLeadRepository), new(MockScoreProvider), logrus.New())

	score, err := uc.Execute(context.Background(), "", "lead-1", false)
	assert.Nil(t, score)
	assert.True(t, IsKind(err, KindNotAuthenticated))
}

func TestCalculatePriorityForeignLeadIsNotFound(t *testing.T) {
	ctx := context.Background()
	leads := new(MockLeadRepository)
	scores := new(MockScoreProvider)
	uc := NewCalculatePriorityUseCase(leads, scores, logrus.New())

	leads.On("FindByIDForUser", ctx, "lead-9", "user-1").Return(nil, entity.ErrLeadNotFound)

	score, err := uc.Execute(ctx, "user-1", "lead-9", false)
	assert.Nil(t, score)
	assert.True(t, IsKind(err, KindNotFound))
	scores.AssertNotCalled(t, "GetOrCompute", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCalculatePriorityComputationErrorSurfacesWhenNoFallback(t *testing.T) {
	ctx := context.Background()
	leads := new(MockLeadRepository)
	scores := new(MockScoreProvider)
	uc := NewCalculatePriorityUseCase(leads, scores, logrus.New())

	leads.On("FindByIDForUser", ctx, "lead-1", "user-1").Return(&entity.Lead{ID: "lead-1", UserID: "user-1"}, nil)
	scores.On("GetOrCompute", ctx, "user-1", "lead-1", false).
		Return(nil, scoring.ErrMalformedSnapshot)

	score, err := uc.Execute(ctx, "user-1", "lead-1", false)
	assert.Nil(t, score)
	assert.True(t, IsKind(err, KindComputation))
}
