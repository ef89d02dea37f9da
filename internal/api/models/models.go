// Package models содержит общие HTTP модели календаря и выбора
// Конвертеры с доменных моделей используются всеми ручками сервиса
package models

import (
	"github.com/m04kA/SMC-SlotService/internal/domain"
)

// TimeSlotModel HTTP модель временного слота
type TimeSlotModel struct {
	Date      string  `json:"date"`
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	Status    string  `json:"status"`
	Reason    *string `json:"reason,omitempty"`
	Selected  bool    `json:"selected"`
}

// DaySlotsModel HTTP модель дня со слотами
type DaySlotsModel struct {
	Date              string          `json:"date"`
	DayName           string          `json:"dayName"`
	DayDisplay        string          `json:"dayDisplay"`
	HasAvailableSlots bool            `json:"hasAvailableSlots"`
	IsWithinLeadTime  bool            `json:"isWithinLeadTime"`
	Slots             []TimeSlotModel `json:"slots"`
}

// WeekSlotsModel HTTP модель недели слотов
type WeekSlotsModel struct {
	WeekOffset int             `json:"weekOffset"`
	StartDate  string          `json:"startDate"`
	EndDate    string          `json:"endDate"`
	Days       []DaySlotsModel `json:"days"`
}

// SelectedRangeModel HTTP модель выбранного временного диапазона
type SelectedRangeModel struct {
	ID         int64           `json:"id"`
	Date       string          `json:"date"`
	DayName    string          `json:"dayName"`
	DayDisplay string          `json:"dayDisplay"`
	StartTime  string          `json:"startTime"`
	EndTime    string          `json:"endTime"`
	AnchorTime string          `json:"anchorTime"`
	SlotCount  int             `json:"slotCount"`
	Slots      []TimeSlotModel `json:"slots"`
}

// FromTimeSlot конвертирует доменный слот в HTTP модель
func FromTimeSlot(slot domain.TimeSlot) TimeSlotModel {
	return TimeSlotModel{
		Date:      slot.Date.Format(domain.DateFormat),
		StartTime: string(slot.StartTime),
		EndTime:   string(slot.EndTime),
		Status:    string(slot.Status),
		Reason:    slot.Reason,
		Selected:  slot.Selected,
	}
}

// FromDaySlots конвертирует доменный день в HTTP модель
func FromDaySlots(day domain.DaySlots) DaySlotsModel {
	slots := make([]TimeSlotModel, len(day.Slots))
	for i, slot := range day.Slots {
		slots[i] = FromTimeSlot(slot)
	}

	return DaySlotsModel{
		Date:              day.Date.Format(domain.DateFormat),
		DayName:           day.DayName,
		DayDisplay:        domain.FormatDayDisplay(day.Date),
		HasAvailableSlots: day.HasAvailableSlots,
		IsWithinLeadTime:  day.IsWithinLeadTime,
		Slots:             slots,
	}
}

// FromWeekSlots конвертирует доменную неделю в HTTP модель
func FromWeekSlots(week *domain.WeekSlots) *WeekSlotsModel {
	if week == nil {
		return nil
	}

	days := make([]DaySlotsModel, len(week.Days))
	for i, day := range week.Days {
		days[i] = FromDaySlots(day)
	}

	return &WeekSlotsModel{
		WeekOffset: week.WeekOffset,
		StartDate:  week.StartDate.Format(domain.DateFormat),
		EndDate:    week.EndDate.Format(domain.DateFormat),
		Days:       days,
	}
}

// FromSelectedRange конвертирует доменный диапазон в HTTP модель
func FromSelectedRange(rng *domain.SelectedTimeRange) SelectedRangeModel {
	slots := make([]TimeSlotModel, len(rng.Slots))
	for i, slot := range rng.Slots {
		slots[i] = FromTimeSlot(slot)
	}

	return SelectedRangeModel{
		ID:         rng.ID,
		Date:       rng.Date.Format(domain.DateFormat),
		DayName:    rng.DayName,
		DayDisplay: domain.FormatDayDisplay(rng.Date),
		StartTime:  string(rng.StartTime),
		EndTime:    string(rng.EndTime),
		AnchorTime: string(rng.AnchorTime),
		SlotCount:  rng.SlotCount,
		Slots:      slots,
	}
}

// FromSelectedRanges конвертирует список доменных диапазонов в HTTP модели
func FromSelectedRanges(ranges []*domain.SelectedTimeRange) []SelectedRangeModel {
	result := make([]SelectedRangeModel, len(ranges))
	for i, rng := range ranges {
		result[i] = FromSelectedRange(rng)
	}
	return result
}
