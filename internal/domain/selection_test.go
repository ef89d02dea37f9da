package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotService/pkg/types"
)

func TestSlotsNeeded(t *testing.T) {
	// Округление всегда вверх
	assert.Equal(t, 1, SlotsNeeded(30, 30))
	assert.Equal(t, 2, SlotsNeeded(31, 30))
	assert.Equal(t, 2, SlotsNeeded(60, 30))
	assert.Equal(t, 3, SlotsNeeded(90, 30))
	assert.Equal(t, 4, SlotsNeeded(105, 30))
	assert.Equal(t, 1, SlotsNeeded(5, 30))

	assert.Equal(t, 0, SlotsNeeded(60, 0))
}

func TestSelectedTimeRange_MatchesAnchor(t *testing.T) {
	date := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)
	rng := &SelectedTimeRange{
		Date:       date,
		AnchorTime: "10:00",
	}

	assert.True(t, rng.MatchesAnchor(date, "10:00"))
	assert.True(t, rng.MatchesAnchor(date.Add(5*time.Hour), "10:00"))
	assert.False(t, rng.MatchesAnchor(date, "10:30"))
	assert.False(t, rng.MatchesAnchor(date.AddDate(0, 0, 1), "10:00"))
}

func TestSelectedTimeRange_ExpandSlots(t *testing.T) {
	date := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)
	rng := &SelectedTimeRange{
		Date:             date,
		StartTime:        "10:00",
		EndTime:          "11:30",
		SlotCount:        3,
		SlotWidthMinutes: 30,
	}

	require.NoError(t, rng.ExpandSlots())
	require.Len(t, rng.Slots, 3)

	assert.Equal(t, types.TimeString("10:00"), rng.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("10:30"), rng.Slots[1].StartTime)
	assert.Equal(t, types.TimeString("11:00"), rng.Slots[2].StartTime)
	assert.Equal(t, types.TimeString("11:30"), rng.Slots[2].EndTime)
}

func TestRangesContainSlot(t *testing.T) {
	date := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)
	rng := &SelectedTimeRange{
		Date:             date,
		StartTime:        "10:00",
		EndTime:          "11:00",
		SlotCount:        2,
		SlotWidthMinutes: 30,
	}
	require.NoError(t, rng.ExpandSlots())

	ranges := []*SelectedTimeRange{rng}

	assert.True(t, RangesContainSlot(ranges, date, "10:00"))
	assert.True(t, RangesContainSlot(ranges, date, "10:30"))
	assert.False(t, RangesContainSlot(ranges, date, "11:00"))
	assert.False(t, RangesContainSlot(ranges, date.AddDate(0, 0, 1), "10:00"))
}
