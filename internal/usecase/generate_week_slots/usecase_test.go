package generate_week_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	"github.com/m04kA/SMC-SlotService/internal/integrations/cartservice"
	"github.com/m04kA/SMC-SlotService/internal/slotgen"
	"github.com/m04kA/SMC-SlotService/pkg/ptr"
)

// Понедельник, полдень
var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

type fakeTimeProvider struct {
	now time.Time
}

func (p *fakeTimeProvider) Now() time.Time {
	return p.now
}

type fixedRand struct {
	value float64
}

func (r *fixedRand) Float64() float64 {
	return r.value
}

func openDayRand(string) slotgen.DayRand {
	return func(time.Time) slotgen.RandSource {
		return &fixedRand{value: 0.99}
	}
}

type fakeSessionRepo struct {
	session *domain.PlannerSession
}

func (r *fakeSessionRepo) GetOrCreate(_ context.Context, sessionID string, userID int64) (*domain.PlannerSession, error) {
	if r.session == nil {
		r.session = &domain.PlannerSession{ID: 1, SessionID: sessionID, UserID: userID}
	}
	return r.session, nil
}

type fakeSelectionRepo struct {
	ranges []*domain.SelectedTimeRange
}

func (r *fakeSelectionRepo) ListBySession(context.Context, string) ([]*domain.SelectedTimeRange, error) {
	return r.ranges, nil
}

type fakeCartClient struct {
	cart *cartservice.Cart
	err  error
}

func (c *fakeCartClient) GetCartWithGracefulDegradation(context.Context, int64) (*cartservice.Cart, error) {
	return c.cart, c.err
}

type nopLogger struct{}

func (l *nopLogger) Info(string, ...interface{})  {}
func (l *nopLogger) Warn(string, ...interface{})  {}
func (l *nopLogger) Error(string, ...interface{}) {}

func newUseCase(sessions *fakeSessionRepo, selections *fakeSelectionRepo, cart *fakeCartClient) *UseCase {
	return NewUseCase(
		sessions,
		selections,
		cart,
		domain.DefaultGenerationConfig(),
		domain.DefaultMaxSelectedRanges,
		&nopLogger{},
	).WithTimeProvider(&fakeTimeProvider{now: testNow}).WithDayRand(openDayRand)
}

func TestExecute_GeneratesWeekForNewSession(t *testing.T) {
	uc := newUseCase(&fakeSessionRepo{}, &fakeSelectionRepo{}, &fakeCartClient{err: cartservice.ErrCartNotFound})

	resp, err := uc.Execute(context.Background(), &Request{SessionID: "session-1", UserID: 1})
	require.NoError(t, err)

	assert.Equal(t, 0, resp.WeekOffset)
	assert.Nil(t, resp.SelectedDate)
	assert.Nil(t, resp.LastError)

	// Новая сессия начинается с текущей недели, выходные исключены
	require.NotNil(t, resp.Week)
	assert.Equal(t, time.Monday, resp.Week.StartDate.Weekday())
	assert.Len(t, resp.Week.Days, 5)

	// Без корзины используется длительность по умолчанию
	assert.Equal(t, domain.DefaultServiceDurationMinutes, resp.TotalServiceDuration)
	assert.Equal(t, 2, resp.SlotsNeeded)

	assert.Empty(t, resp.Ranges)
	assert.True(t, resp.CanSelectMore)
	assert.False(t, resp.HasAllRanges)
}

func TestExecute_UsesCartDurationForSlotsNeeded(t *testing.T) {
	cart := &fakeCartClient{cart: &cartservice.Cart{
		UserID: 1,
		Services: []cartservice.CartService{
			{ID: 1, Name: "Замена масла", DurationMinutes: 60, Price: 3000},
			{ID: 2, Name: "Диагностика", DurationMinutes: 45, Price: 1500},
		},
	}}

	uc := newUseCase(&fakeSessionRepo{}, &fakeSelectionRepo{}, cart)

	resp, err := uc.Execute(context.Background(), &Request{SessionID: "session-1", UserID: 1})
	require.NoError(t, err)

	// 105 минут при слотах по 30 минут требуют 4 слота
	assert.Equal(t, 105, resp.TotalServiceDuration)
	assert.Equal(t, 4, resp.SlotsNeeded)
}

func TestExecute_DegradedCartFallsBackToDefault(t *testing.T) {
	uc := newUseCase(&fakeSessionRepo{}, &fakeSelectionRepo{}, &fakeCartClient{err: cartservice.ErrServiceDegraded})

	resp, err := uc.Execute(context.Background(), &Request{SessionID: "session-1", UserID: 1})
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultServiceDurationMinutes, resp.TotalServiceDuration)
}

func TestExecute_ReturnsSessionStateAndRanges(t *testing.T) {
	sessions := &fakeSessionRepo{session: &domain.PlannerSession{
		ID:         1,
		SessionID:  "session-1",
		UserID:     1,
		WeekOffset: 2,
		LastError:  ptr.Ptr("слот уже занят"),
	}}

	selections := &fakeSelectionRepo{ranges: []*domain.SelectedTimeRange{
		{ID: 1, Date: testNow.AddDate(0, 0, 10)},
		{ID: 2, Date: testNow.AddDate(0, 0, 17)},
		{ID: 3, Date: testNow.AddDate(0, 0, 24)},
	}}

	uc := newUseCase(sessions, selections, &fakeCartClient{err: cartservice.ErrCartNotFound})

	resp, err := uc.Execute(context.Background(), &Request{SessionID: "session-1", UserID: 1})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.WeekOffset)
	require.NotNil(t, resp.LastError)
	assert.Equal(t, "слот уже занят", *resp.LastError)

	// При полном наборе диапазонов новые выбирать нельзя
	assert.Len(t, resp.Ranges, 3)
	assert.False(t, resp.CanSelectMore)
	assert.True(t, resp.HasAllRanges)

	// Неделя следует за смещением сессии
	expectedStart := time.Date(2025, 3, 24, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, expectedStart, resp.Week.StartDate)
}

func TestExecute_MarksSlotsOfSelectedRanges(t *testing.T) {
	// Диапазон 10:00-11:00 в четверг текущей недели
	rangeDate := time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC)
	rng := &domain.SelectedTimeRange{
		ID:               1,
		Date:             rangeDate,
		StartTime:        "10:00",
		EndTime:          "11:00",
		AnchorTime:       "10:00",
		SlotCount:        2,
		SlotWidthMinutes: 30,
	}
	require.NoError(t, rng.ExpandSlots())

	selections := &fakeSelectionRepo{ranges: []*domain.SelectedTimeRange{rng}}
	uc := newUseCase(&fakeSessionRepo{}, selections, &fakeCartClient{err: cartservice.ErrCartNotFound})

	resp, err := uc.Execute(context.Background(), &Request{SessionID: "session-1", UserID: 1})
	require.NoError(t, err)

	day := resp.Week.FindDay(rangeDate)
	require.NotNil(t, day)

	selected := make([]string, 0, 2)
	for _, slot := range day.Slots {
		if slot.Selected {
			selected = append(selected, string(slot.StartTime))
		}
	}
	assert.Equal(t, []string{"10:00", "10:30"}, selected)
}

func TestExecute_SameSessionSeesSameAvailability(t *testing.T) {
	cart := &fakeCartClient{err: cartservice.ErrCartNotFound}

	uc := NewUseCase(
		&fakeSessionRepo{},
		&fakeSelectionRepo{},
		cart,
		domain.DefaultGenerationConfig(),
		domain.DefaultMaxSelectedRanges,
		&nopLogger{},
	).WithTimeProvider(&fakeTimeProvider{now: testNow})

	first, err := uc.Execute(context.Background(), &Request{SessionID: "session-1", UserID: 1})
	require.NoError(t, err)

	second, err := uc.Execute(context.Background(), &Request{SessionID: "session-1", UserID: 1})
	require.NoError(t, err)

	require.Len(t, second.Week.Days, len(first.Week.Days))
	for d := range first.Week.Days {
		firstDay := first.Week.Days[d]
		secondDay := second.Week.Days[d]
		require.Len(t, secondDay.Slots, len(firstDay.Slots))
		for i := range firstDay.Slots {
			assert.Equal(t, firstDay.Slots[i].Status, secondDay.Slots[i].Status)
		}
	}
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newUseCase(&fakeSessionRepo{}, &fakeSelectionRepo{}, &fakeCartClient{err: cartservice.ErrCartNotFound})

	_, err := uc.Execute(context.Background(), &Request{SessionID: "", UserID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{SessionID: "session-1", UserID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
