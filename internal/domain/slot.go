package domain

import (
	"time"

	"github.com/m04kA/SMC-SlotService/pkg/types"
)

// SlotStatus статус временного слота
type SlotStatus string

const (
	// SlotAvailable слот свободен для бронирования
	SlotAvailable SlotStatus = "available"

	// SlotFull слот занят (внешнее бронирование или короткий срок до записи)
	SlotFull SlotStatus = "full"

	// SlotUnavailable слот свободен, но не может вместить запрошенную длительность
	// Производный статус: зависит от количества последовательных свободных слотов
	SlotUnavailable SlotStatus = "unavailable"
)

// TimeSlot один дискретный временной слот в течение дня
// Уникально идентифицируется парой (Date, StartTime)
type TimeSlot struct {
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Status    SlotStatus
	Reason    *string // Причина недоступности (если слот не available)
	Selected  bool    // Слот входит в один из выбранных диапазонов сессии
}

// IsAvailable возвращает true, если слот свободен для бронирования
func (s *TimeSlot) IsAvailable() bool {
	return s.Status == SlotAvailable
}

// DaySlots все слоты одного дня с метаданными
type DaySlots struct {
	Date              time.Time
	DayName           string // Название дня недели ("понедельник")
	Slots             []TimeSlot
	HasAvailableSlots bool
	IsWithinLeadTime  bool // День попадает в окно минимального срока до записи
}

// FindSlotIndex ищет слот по времени начала
// Возвращает -1, если слот не найден
func (d *DaySlots) FindSlotIndex(startTime types.TimeString) int {
	for i := range d.Slots {
		if d.Slots[i].StartTime == startTime {
			return i
		}
	}
	return -1
}

// WeekSlots неделя слотов (только рабочие дни, если исключены выходные)
type WeekSlots struct {
	WeekOffset int // Смещение от текущей недели (0 = текущая)
	StartDate  time.Time
	EndDate    time.Time
	Days       []DaySlots
}

// AvailableDays возвращает дни, в которых есть хотя бы один свободный слот
func (w *WeekSlots) AvailableDays() []DaySlots {
	days := make([]DaySlots, 0, len(w.Days))
	for _, day := range w.Days {
		if day.HasAvailableSlots {
			days = append(days, day)
		}
	}
	return days
}

// FindDay ищет день по дате
func (w *WeekSlots) FindDay(date time.Time) *DaySlots {
	for i := range w.Days {
		if SameDay(w.Days[i].Date, date) {
			return &w.Days[i]
		}
	}
	return nil
}

// SameDay проверяет, что две даты относятся к одному календарному дню
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DayStart возвращает начало суток для указанной даты
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
