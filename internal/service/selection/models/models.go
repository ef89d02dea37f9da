package models

import (
	"time"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

// SelectionState состояние выбора сессии планирования
type SelectionState struct {
	SessionID     string
	WeekOffset    int
	SelectedDate  *time.Time
	LastError     *string
	Ranges        []*domain.SelectedTimeRange
	CanSelectMore bool
	HasAllRanges  bool
}

// FromSession собирает состояние выбора из сессии и списка диапазонов
func FromSession(session *domain.PlannerSession, ranges []*domain.SelectedTimeRange, maxRanges int) *SelectionState {
	return &SelectionState{
		SessionID:     session.SessionID,
		WeekOffset:    session.WeekOffset,
		SelectedDate:  session.SelectedDate,
		LastError:     session.LastError,
		Ranges:        ranges,
		CanSelectMore: len(ranges) < maxRanges,
		HasAllRanges:  len(ranges) >= maxRanges,
	}
}
