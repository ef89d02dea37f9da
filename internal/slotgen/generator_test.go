package slotgen

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

// stubRand детерминированный источник случайности
// Значения выдаются по кругу
type stubRand struct {
	values []float64
	index  int
}

func (r *stubRand) Float64() float64 {
	v := r.values[r.index%len(r.values)]
	r.index++
	return v
}

// neverFull значение, при котором слот никогда не помечается занятым
const neverFull = 0.99

// alwaysFull значение, при котором слот всегда помечается занятым
const alwaysFull = 0.0

func testConfig() domain.SlotGenerationConfig {
	return domain.SlotGenerationConfig{
		StartHour:        8,
		EndHour:          18,
		SlotWidthMinutes: 30,
		FullSlotRatio:    30,
		ExcludeWeekends:  true,
		MinLeadTimeHours: 24,
	}
}

// Понедельник, полдень
var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

// Четверг следующей недели, заведомо за пределами окна срока до записи
var farDate = time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)

func TestGenerateDaySlots_BuildsFullGrid(t *testing.T) {
	day, err := GenerateDaySlots(farDate, 30, testConfig(), testNow, &stubRand{values: []float64{neverFull}})
	require.NoError(t, err)

	// Окно 08:00-18:00 при ширине 30 минут дает 20 слотов
	require.Len(t, day.Slots, 20)
	assert.Equal(t, "08:00", string(day.Slots[0].StartTime))
	assert.Equal(t, "08:30", string(day.Slots[0].EndTime))
	assert.Equal(t, "17:30", string(day.Slots[19].StartTime))
	assert.Equal(t, "18:00", string(day.Slots[19].EndTime))

	assert.Equal(t, "четверг", day.DayName)
	assert.False(t, day.IsWithinLeadTime)
	assert.True(t, day.HasAvailableSlots)

	for _, slot := range day.Slots {
		assert.Equal(t, domain.SlotAvailable, slot.Status)
		assert.Nil(t, slot.Reason)
	}
}

func TestGenerateDaySlots_EverySlotGetsExactlyOneStatus(t *testing.T) {
	rnd := &stubRand{values: []float64{0.1, 0.5, 0.2, 0.9, 0.25, 0.7}}

	day, err := GenerateDaySlots(farDate, 90, testConfig(), testNow, rnd)
	require.NoError(t, err)

	for _, slot := range day.Slots {
		switch slot.Status {
		case domain.SlotAvailable:
			assert.Nil(t, slot.Reason)
		case domain.SlotFull, domain.SlotUnavailable:
			require.NotNil(t, slot.Reason)
			assert.NotEmpty(t, *slot.Reason)
		default:
			t.Fatalf("unexpected slot status %q", slot.Status)
		}
	}
}

func TestGenerateDaySlots_LeadTimeClosesWholeDay(t *testing.T) {
	// До начала завтрашнего дня меньше 24 часов
	tomorrow := testNow.AddDate(0, 0, 1)

	day, err := GenerateDaySlots(tomorrow, 30, testConfig(), testNow, &stubRand{values: []float64{neverFull}})
	require.NoError(t, err)

	assert.True(t, day.IsWithinLeadTime)
	assert.False(t, day.HasAvailableSlots)

	for _, slot := range day.Slots {
		assert.Equal(t, domain.SlotFull, slot.Status)
		require.NotNil(t, slot.Reason)
		assert.Equal(t, domain.ReasonLeadTimeTooShort, *slot.Reason)
	}
}

func TestGenerateDaySlots_TailSlotsCannotFitService(t *testing.T) {
	// Услуга на 90 минут занимает 3 слота: последние два слота дня
	// не могут вместить диапазон даже при полностью свободном дне
	day, err := GenerateDaySlots(farDate, 90, testConfig(), testNow, &stubRand{values: []float64{neverFull}})
	require.NoError(t, err)

	require.Len(t, day.Slots, 20)

	for i, slot := range day.Slots {
		if i < 18 {
			assert.Equal(t, domain.SlotAvailable, slot.Status, "slot %d", i)
		} else {
			assert.Equal(t, domain.SlotUnavailable, slot.Status, "slot %d", i)
			require.NotNil(t, slot.Reason)
		}
	}
}

func TestGenerateDaySlots_DowngradeDoesNotCascade(t *testing.T) {
	// Третий слот занят, остальные свободны. Услуга на час (2 слота):
	// второй слот упирается в занятый и понижается, но первый слот
	// оценивается по исходной картине и остается свободным
	values := make([]float64, 20)
	for i := range values {
		values[i] = neverFull
	}
	values[2] = alwaysFull

	day, err := GenerateDaySlots(farDate, 60, testConfig(), testNow, &stubRand{values: values})
	require.NoError(t, err)

	assert.Equal(t, domain.SlotAvailable, day.Slots[0].Status)
	assert.Equal(t, domain.SlotUnavailable, day.Slots[1].Status)
	assert.Equal(t, domain.SlotFull, day.Slots[2].Status)
	assert.Equal(t, domain.SlotAvailable, day.Slots[3].Status)
}

func TestGenerateDaySlots_InvalidInput(t *testing.T) {
	cfg := testConfig()
	rnd := &stubRand{values: []float64{neverFull}}

	_, err := GenerateDaySlots(time.Time{}, 30, cfg, testNow, rnd)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = GenerateDaySlots(farDate, 0, cfg, testNow, rnd)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = GenerateDaySlots(farDate, -15, cfg, testNow, rnd)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = GenerateDaySlots(farDate, 30, cfg, testNow, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	badCfg := cfg
	badCfg.StartHour = 19
	_, err = GenerateDaySlots(farDate, 30, badCfg, testNow, rnd)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGenerateWeekSlots_StartsOnMondayAndSkipsWeekends(t *testing.T) {
	dayRand := func(date time.Time) RandSource {
		return &stubRand{values: []float64{neverFull}}
	}

	week, err := GenerateWeekSlots(0, 30, testConfig(), testNow, dayRand)
	require.NoError(t, err)

	assert.Equal(t, 0, week.WeekOffset)
	assert.Equal(t, time.Monday, week.StartDate.Weekday())
	assert.Equal(t, time.Sunday, week.EndDate.Weekday())

	// Выходные исключены
	require.Len(t, week.Days, 5)
	for i, day := range week.Days {
		assert.Equal(t, week.StartDate.AddDate(0, 0, i), day.Date)
	}
}

func TestGenerateWeekSlots_IncludesWeekendsWhenNotExcluded(t *testing.T) {
	cfg := testConfig()
	cfg.ExcludeWeekends = false

	dayRand := func(date time.Time) RandSource {
		return &stubRand{values: []float64{neverFull}}
	}

	week, err := GenerateWeekSlots(0, 30, cfg, testNow, dayRand)
	require.NoError(t, err)

	require.Len(t, week.Days, 7)
}

func TestGenerateWeekSlots_OffsetShiftsWeekForward(t *testing.T) {
	dayRand := func(date time.Time) RandSource {
		return &stubRand{values: []float64{neverFull}}
	}

	current, err := GenerateWeekSlots(0, 30, testConfig(), testNow, dayRand)
	require.NoError(t, err)

	next, err := GenerateWeekSlots(1, 30, testConfig(), testNow, dayRand)
	require.NoError(t, err)

	assert.Equal(t, current.StartDate.AddDate(0, 0, 7), next.StartDate)
}

func TestGenerateWeekSlots_NegativeOffsetRejected(t *testing.T) {
	dayRand := func(date time.Time) RandSource {
		return &stubRand{values: []float64{neverFull}}
	}

	_, err := GenerateWeekSlots(-1, 30, testConfig(), testNow, dayRand)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSeededDayRand_StablePerSessionAndDate(t *testing.T) {
	first, err := GenerateDaySlots(farDate, 60, testConfig(), testNow, SeededDayRand("session-1")(farDate))
	require.NoError(t, err)

	second, err := GenerateDaySlots(farDate, 60, testConfig(), testNow, SeededDayRand("session-1")(farDate))
	require.NoError(t, err)

	require.Len(t, second.Slots, len(first.Slots))
	for i := range first.Slots {
		assert.Equal(t, first.Slots[i].Status, second.Slots[i].Status, "slot %d", i)
	}
}
