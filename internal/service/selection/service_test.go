package selection

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	"github.com/m04kA/SMC-SlotService/pkg/ptr"
)

type fakeSessionRepo struct {
	sessions map[string]*domain.PlannerSession
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*domain.PlannerSession)}
}

func (r *fakeSessionRepo) GetOrCreate(_ context.Context, sessionID string, userID int64) (*domain.PlannerSession, error) {
	if s, ok := r.sessions[sessionID]; ok {
		return s, nil
	}
	s := &domain.PlannerSession{
		ID:        int64(len(r.sessions) + 1),
		SessionID: sessionID,
		UserID:    userID,
	}
	r.sessions[sessionID] = s
	return s, nil
}

func (r *fakeSessionRepo) SetNavigation(_ context.Context, sessionID string, weekOffset int) error {
	s := r.sessions[sessionID]
	s.WeekOffset = weekOffset
	s.SelectedDate = nil
	s.LastError = nil
	return nil
}

func (r *fakeSessionRepo) SetSelectedDate(_ context.Context, sessionID string, date time.Time) error {
	s := r.sessions[sessionID]
	s.SelectedDate = &date
	s.LastError = nil
	return nil
}

func (r *fakeSessionRepo) ClearSelectionState(_ context.Context, sessionID string) error {
	s := r.sessions[sessionID]
	s.SelectedDate = nil
	s.LastError = nil
	return nil
}

type fakeSelectionRepo struct {
	ranges map[string][]*domain.SelectedTimeRange
}

func newFakeSelectionRepo() *fakeSelectionRepo {
	return &fakeSelectionRepo{ranges: make(map[string][]*domain.SelectedTimeRange)}
}

func (r *fakeSelectionRepo) ListBySession(_ context.Context, sessionID string) ([]*domain.SelectedTimeRange, error) {
	return r.ranges[sessionID], nil
}

func (r *fakeSelectionRepo) DeleteBySession(_ context.Context, sessionID string) error {
	delete(r.ranges, sessionID)
	return nil
}

type nopLogger struct{}

func (l *nopLogger) Info(string, ...interface{})  {}
func (l *nopLogger) Warn(string, ...interface{})  {}
func (l *nopLogger) Error(string, ...interface{}) {}

func newService(sessions *fakeSessionRepo, selections *fakeSelectionRepo) *Service {
	return NewService(sessions, selections, domain.DefaultMaxSelectedRanges, &nopLogger{})
}

func TestNextWeek_AdvancesOffsetAndClearsDay(t *testing.T) {
	sessions := newFakeSessionRepo()
	svc := newService(sessions, newFakeSelectionRepo())

	ctx := context.Background()
	_, err := svc.GetSelection(ctx, "session-1", 1)
	require.NoError(t, err)

	selectedDate := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	sessions.sessions["session-1"].SelectedDate = &selectedDate
	sessions.sessions["session-1"].LastError = ptr.Ptr("слот уже занят")

	state, err := svc.NextWeek(ctx, "session-1", 1)
	require.NoError(t, err)

	assert.Equal(t, 1, state.WeekOffset)
	assert.Nil(t, state.SelectedDate)
	assert.Nil(t, state.LastError)
}

func TestNextWeek_KeepsSelectedRanges(t *testing.T) {
	sessions := newFakeSessionRepo()
	selections := newFakeSelectionRepo()
	svc := newService(sessions, selections)

	ctx := context.Background()
	_, err := svc.GetSelection(ctx, "session-1", 1)
	require.NoError(t, err)

	selections.ranges["session-1"] = []*domain.SelectedTimeRange{{ID: 1}, {ID: 2}}

	// Диапазоны переживают навигацию между неделями
	state, err := svc.NextWeek(ctx, "session-1", 1)
	require.NoError(t, err)
	assert.Len(t, state.Ranges, 2)

	state, err = svc.PreviousWeek(ctx, "session-1", 1)
	require.NoError(t, err)
	assert.Len(t, state.Ranges, 2)
}

func TestPreviousWeek_DecrementsOffset(t *testing.T) {
	sessions := newFakeSessionRepo()
	svc := newService(sessions, newFakeSelectionRepo())

	ctx := context.Background()
	_, err := svc.NextWeek(ctx, "session-1", 1)
	require.NoError(t, err)
	_, err = svc.NextWeek(ctx, "session-1", 1)
	require.NoError(t, err)

	state, err := svc.PreviousWeek(ctx, "session-1", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, state.WeekOffset)
}

func TestPreviousWeek_NoOpAtCurrentWeek(t *testing.T) {
	sessions := newFakeSessionRepo()
	svc := newService(sessions, newFakeSelectionRepo())

	ctx := context.Background()
	_, err := svc.GetSelection(ctx, "session-1", 1)
	require.NoError(t, err)

	// На текущей неделе состояние не меняется: выбранный день сохраняется
	selectedDate := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	sessions.sessions["session-1"].SelectedDate = &selectedDate

	state, err := svc.PreviousWeek(ctx, "session-1", 1)
	require.NoError(t, err)

	assert.Equal(t, 0, state.WeekOffset)
	require.NotNil(t, state.SelectedDate)
	assert.Equal(t, selectedDate, *state.SelectedDate)
}

func TestSelectDay_StoresDateAndClearsError(t *testing.T) {
	sessions := newFakeSessionRepo()
	selections := newFakeSelectionRepo()
	svc := newService(sessions, selections)

	ctx := context.Background()
	_, err := svc.GetSelection(ctx, "session-1", 1)
	require.NoError(t, err)

	sessions.sessions["session-1"].LastError = ptr.Ptr("слот уже занят")
	selections.ranges["session-1"] = []*domain.SelectedTimeRange{{ID: 1}}

	date := time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC)
	state, err := svc.SelectDay(ctx, "session-1", 1, date)
	require.NoError(t, err)

	require.NotNil(t, state.SelectedDate)
	assert.Equal(t, date, *state.SelectedDate)
	assert.Nil(t, state.LastError)

	// Смена дня не трогает выбранные диапазоны
	assert.Len(t, state.Ranges, 1)
}

func TestSelectDay_ZeroDateRejected(t *testing.T) {
	svc := newService(newFakeSessionRepo(), newFakeSelectionRepo())

	_, err := svc.SelectDay(context.Background(), "session-1", 1, time.Time{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetSelection_ReportsLimitFlags(t *testing.T) {
	sessions := newFakeSessionRepo()
	selections := newFakeSelectionRepo()
	svc := newService(sessions, selections)

	ctx := context.Background()

	state, err := svc.GetSelection(ctx, "session-1", 1)
	require.NoError(t, err)
	assert.True(t, state.CanSelectMore)
	assert.False(t, state.HasAllRanges)

	selections.ranges["session-1"] = []*domain.SelectedTimeRange{{ID: 1}, {ID: 2}, {ID: 3}}

	state, err = svc.GetSelection(ctx, "session-1", 1)
	require.NoError(t, err)
	assert.False(t, state.CanSelectMore)
	assert.True(t, state.HasAllRanges)
}

func TestResetSelection_DropsRangesAndKeepsWeek(t *testing.T) {
	sessions := newFakeSessionRepo()
	selections := newFakeSelectionRepo()
	svc := newService(sessions, selections)

	ctx := context.Background()
	_, err := svc.NextWeek(ctx, "session-1", 1)
	require.NoError(t, err)

	selectedDate := time.Date(2025, 3, 19, 0, 0, 0, 0, time.UTC)
	sessions.sessions["session-1"].SelectedDate = &selectedDate
	sessions.sessions["session-1"].LastError = ptr.Ptr("слот уже занят")
	selections.ranges["session-1"] = []*domain.SelectedTimeRange{{ID: 1}, {ID: 2}}

	state, err := svc.ResetSelection(ctx, "session-1", 1)
	require.NoError(t, err)

	assert.Empty(t, state.Ranges)
	assert.Nil(t, state.SelectedDate)
	assert.Nil(t, state.LastError)
	assert.True(t, state.CanSelectMore)

	// Смещение недели сбросом не затрагивается
	assert.Equal(t, 1, state.WeekOffset)
}

func TestValidation_RejectsBadSessionAndUser(t *testing.T) {
	svc := newService(newFakeSessionRepo(), newFakeSelectionRepo())
	ctx := context.Background()

	_, err := svc.GetSelection(ctx, "", 1)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.NextWeek(ctx, "session-1", 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.PreviousWeek(ctx, "session-1", -5)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.ResetSelection(ctx, "", 1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
