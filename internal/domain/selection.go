package domain

import (
	"time"

	"github.com/m04kA/SMC-SlotService/pkg/types"
)

// SelectedTimeRange выбранный пользователем диапазон последовательных слотов
// Якорем (ключом для toggle) служит пара (Date, AnchorTime)
type SelectedTimeRange struct {
	ID               int64
	Date             time.Time
	DayName          string
	StartTime        types.TimeString
	EndTime          types.TimeString
	AnchorTime       types.TimeString // Время начала первого слота диапазона
	SlotCount        int
	SlotWidthMinutes int
	Slots            []TimeSlot
	CreatedAt        time.Time
}

// MatchesAnchor проверяет, что диапазон имеет указанный якорь
func (r *SelectedTimeRange) MatchesAnchor(date time.Time, anchorTime types.TimeString) bool {
	return SameDay(r.Date, date) && r.AnchorTime == anchorTime
}

// ContainsSlot проверяет, что слот с указанным временем начала входит в диапазон
func (r *SelectedTimeRange) ContainsSlot(date time.Time, startTime types.TimeString) bool {
	if !SameDay(r.Date, date) {
		return false
	}
	for _, slot := range r.Slots {
		if slot.StartTime == startTime {
			return true
		}
	}
	return false
}

// ExpandSlots восстанавливает слоты диапазона из его границ
// Используется после чтения диапазона из БД, где хранятся только границы
func (r *SelectedTimeRange) ExpandSlots() error {
	if r.SlotCount <= 0 || r.SlotWidthMinutes <= 0 {
		r.Slots = nil
		return nil
	}

	slots := make([]TimeSlot, 0, r.SlotCount)
	current := r.StartTime
	for i := 0; i < r.SlotCount; i++ {
		end, err := current.AddMinutes(r.SlotWidthMinutes)
		if err != nil {
			return err
		}
		slots = append(slots, TimeSlot{
			Date:      r.Date,
			StartTime: current,
			EndTime:   end,
			Status:    SlotAvailable,
		})
		current = end
	}

	r.Slots = slots
	return nil
}

// RangesContainSlot проверяет, входит ли слот хотя бы в один из диапазонов
func RangesContainSlot(ranges []*SelectedTimeRange, date time.Time, startTime types.TimeString) bool {
	for _, r := range ranges {
		if r.ContainsSlot(date, startTime) {
			return true
		}
	}
	return false
}

// SlotsNeeded вычисляет количество слотов, необходимое для длительности услуги
// Округление всегда вверх: услуга в 90 минут при слотах по 30 минут занимает 3 слота
func SlotsNeeded(serviceDurationMinutes, slotWidthMinutes int) int {
	if slotWidthMinutes <= 0 {
		return 0
	}
	return (serviceDurationMinutes + slotWidthMinutes - 1) / slotWidthMinutes
}
