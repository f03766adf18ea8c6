package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/leadfocus/internal/entity"
)

func trackFixture() (*TrackActionUseCase, *MockActionLogStore, *MockLeadRepository, *MockScoreProvider, *fakeNotifier) {
	actions := new(MockActionLogStore)
	leads := new(MockLeadRepository)
	scores := new(MockScoreProvider)
	notifier := newFakeNotifier()

	uc := NewTrackActionUseCase(actions, leads, scores, notifier, logrus.New())
	return uc, actions, leads, scores, notifier
}

func TestTrackActionSuccess(t *testing.T) {
	ctx := context.Background()
	uc, actions, leads, scores, notifier := trackFixture()

	leads.On("FindByIDForUser", ctx, "lead-1", "user-1").Return(&entity.Lead{ID: "lead-1", UserID: "user-1"}, nil)
	actions.On("Append", ctx, mock.Anything).Return(nil)
	scores.On("Invalidate", "user-1", "lead-1").Return()

	action, err := uc.Execute(ctx, "user-1", TrackActionInput{
		LeadID:     "lead-1",
		ActionType: entity.ActionContacted,
		Metadata:   map[string]string{"channel": "email"},
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, action.ID)
	assert.Equal(t, entity.ActionContacted, action.ActionType)
	assert.False(t, action.CreatedAt.IsZero())

	actions.AssertCalled(t, "Append", ctx, mock.Anything)
	scores.AssertCalled(t, "Invalidate", "user-1", "lead-1")

	select {
	case payload := <-notifier.published:
		assert.Equal(t, "lead_action_tracked", payload.EventType)
		assert.Equal(t, action.ID, payload.ActionID)
	case <-time.After(time.Second):
		t.Fatal("expected gamification notification")
	}
}

func TestTrackActionRejectsUnknownType(t *testing.T) {
	ctx := context.Background()
	uc, actions, _, scores, notifier := trackFixture()

	action, err := uc.Execute(ctx, "user-1", TrackActionInput{
		LeadID:     "lead-1",
		ActionType: "bogus",
	})

	assert.Nil(t, action)
	assert.True(t, IsKind(err, KindValidation))

	// Rejected before any state mutation.
	actions.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	scores.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
	assert.Empty(t, notifier.published)
}

func TestTrackActionRequiresLeadID(t *testing.T) {
	ctx := context.Background()
	uc, actions, _, _, _ := trackFixture()

	action, err := uc.Execute(ctx, "user-1", TrackActionInput{ActionType: entity.ActionViewed})

	assert.Nil(t, action)
	assert.True(t, IsKind(err, KindValidation))
	actions.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestTrackActionRequiresUser(t *testing.T) {
	uc, _, _, _, _ := trackFixture()

	action, err := uc.Execute(context.Background(), "", TrackActionInput{
		LeadID:     "lead-1",
		ActionType: entity.ActionViewed,
	})

	assert.Nil(t, action)
	assert.True(t, IsKind(err, KindNotAuthenticated))
}

func TestTrackActionRejectsForeignLead(t *testing.T) {
	ctx := context.Background()
	uc, actions, leads, _, _ := trackFixture()

	leads.On("FindByIDForUser", ctx, "lead-9", "user-1").Return(nil, entity.ErrLeadNotFound)

	action, err := uc.Execute(ctx, "user-1", TrackActionInput{
		LeadID:     "lead-9",
		ActionType: entity.ActionViewed,
	})

	assert.Nil(t, action)
	assert.True(t, IsKind(err, KindNotFound))
	actions.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestTrackActionLeadLookupFailureIsPersistenceError(t *testing.T) {
	ctx := context.Background()
	uc, actions, leads, _, _ := trackFixture()

	// An infrastructure failure is not an ownership mismatch.
	leads.On("FindByIDForUser", ctx, "lead-1", "user-1").Return(nil, errors.New("pq: connection refused"))

	action, err := uc.Execute(ctx, "user-1", TrackActionInput{
		LeadID:     "lead-1",
		ActionType: entity.ActionViewed,
	})

	assert.Nil(t, action)
	assert.True(t, IsKind(err, KindPersistence))
	assert.False(t, IsKind(err, KindNotFound))
	actions.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestTrackActionAppendFailureHasNoSideEffects(t *testing.T) {
	ctx := context.Background()
	uc, actions, leads, scores, notifier := trackFixture()

	leads.On("FindByIDForUser", ctx, "lead-1", "user-1").Return(&entity.Lead{ID: "lead-1", UserID: "user-1"}, nil)
	actions.On("Append", ctx, mock.Anything).Return(errors.New("connection reset"))

	action, err := uc.Execute(ctx, "user-1", TrackActionInput{
		LeadID:     "lead-1",
		ActionType: entity.ActionContacted,
	})

	assert.Nil(t, action)
	assert.True(t, IsKind(err, KindPersistence))

	scores.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
	assert.Empty(t, notifier.published)
}

func TestTrackActionNotificationFailureIsAbsorbed(t *testing.T) {
	ctx := context.Background()
	uc, actions, leads, scores, notifier := trackFixture()
	notifier.err = errors.New("broker unavailable")

	leads.On("FindByIDForUser", ctx, "lead-1", "user-1").Return(&entity.Lead{ID: "lead-1", UserID: "user-1"}, nil)
	actions.On("Append", ctx, mock.Anything).Return(nil)
	scores.On("Invalidate", "user-1", "lead-1").Return()

	action, err := uc.Execute(ctx, "user-1", TrackActionInput{
		LeadID:     "lead-1",
		ActionType: entity.ActionGeneratedOutreach,
	})

	// The action is recorded regardless of the downstream outcome.
	assert.NoError(t, err)
	assert.NotNil(t, action)

	select {
	case <-notifier.published:
	case <-time.After(time.Second):
		t.Fatal("expected notification attempt")
	}
}
