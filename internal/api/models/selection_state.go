package models

import (
	"github.com/m04kA/SMC-SlotService/internal/domain"
	selectionModels "github.com/m04kA/SMC-SlotService/internal/service/selection/models"
)

// SelectionStateResponse HTTP модель состояния выбора сессии
// Общий ответ ручек навигации и управления выбором
type SelectionStateResponse struct {
	SessionID     string               `json:"sessionId"`
	WeekOffset    int                  `json:"weekOffset"`
	SelectedDate  *string              `json:"selectedDate,omitempty"`
	LastError     *string              `json:"lastError,omitempty"`
	Ranges        []SelectedRangeModel `json:"selectedRanges"`
	CanSelectMore bool                 `json:"canSelectMore"`
	HasAllRanges  bool                 `json:"hasAllRanges"`
}

// FromSelectionState конвертирует состояние выбора в HTTP модель
func FromSelectionState(state *selectionModels.SelectionState) *SelectionStateResponse {
	var selectedDate *string
	if state.SelectedDate != nil {
		s := state.SelectedDate.Format(domain.DateFormat)
		selectedDate = &s
	}

	return &SelectionStateResponse{
		SessionID:     state.SessionID,
		WeekOffset:    state.WeekOffset,
		SelectedDate:  selectedDate,
		LastError:     state.LastError,
		Ranges:        FromSelectedRanges(state.Ranges),
		CanSelectMore: state.CanSelectMore,
		HasAllRanges:  state.HasAllRanges,
	}
}
