package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/leadfocus/internal/entity"
	"github.com/xavierca1/leadfocus/internal/infra/queue"
)

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) FindByIDForUser(ctx context.Context, leadID, userID string) (*entity.Lead, error) {
	args := m.Called(ctx, leadID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) ListResearchedByUser(ctx context.Context, userID string) ([]*entity.Lead, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

// MockActionLogStore
type MockActionLogStore struct {
	mock.Mock
}

func (m *MockActionLogStore) Append(ctx context.Context, action *entity.LeadAction) error {
	args := m.Called(ctx, action)
	return args.Error(0)
}

func (m *MockActionLogStore) ListRecentByLead(ctx context.Context, userID, leadID string, limit int) ([]entity.LeadAction, error) {
	args := m.Called(ctx, userID, leadID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.LeadAction), args.Error(1)
}

func (m *MockActionLogStore) ListContactedLeadIDsSince(ctx context.Context, userID string, since time.Time) ([]string, error) {
	args := m.Called(ctx, userID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockFocusRepository
type MockFocusRepository struct {
	mock.Mock
}

func (m *MockFocusRepository) Find(ctx context.Context, userID, focusDate string) (*entity.DailyFocus, error) {
	args := m.Called(ctx, userID, focusDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.DailyFocus), args.Error(1)
}

// SaveIfAbsent echoes its input when the expectation returns (nil, nil), which
// models the common no-conflict commit.
func (m *MockFocusRepository) SaveIfAbsent(ctx context.Context, focus *entity.DailyFocus) (*entity.DailyFocus, error) {
	args := m.Called(ctx, focus)
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	if args.Get(0) == nil {
		return focus, nil
	}
	return args.Get(0).(*entity.DailyFocus), nil
}

func (m *MockFocusRepository) Delete(ctx context.Context, userID, focusDate string) error {
	args := m.Called(ctx, userID, focusDate)
	return args.Error(0)
}

// MockScoreProvider
type MockScoreProvider struct {
	mock.Mock
}

func (m *MockScoreProvider) GetOrCompute(ctx context.Context, userID, leadID string, force bool) (*entity.PriorityScore, error) {
	args := m.Called(ctx, userID, leadID, force)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PriorityScore), args.Error(1)
}

func (m *MockScoreProvider) Invalidate(userID, leadID string) {
	m.Called(userID, leadID)
}

// fakeNotifier records published payloads on a channel so tests can wait for
// the fire-and-forget goroutine.
type fakeNotifier struct {
	published chan queue.ActionEventPayload
	err       error
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{published: make(chan queue.ActionEventPayload, 1)}
}

func (f *fakeNotifier) PublishActionEvent(ctx context.Context, payload queue.ActionEventPayload) error {
	f.published <- payload
	return f.err
}
