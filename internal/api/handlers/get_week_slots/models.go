package get_week_slots

import (
	apiModels "github.com/m04kA/SMC-SlotService/internal/api/models"
	"github.com/m04kA/SMC-SlotService/internal/domain"
	generateWeekSlots "github.com/m04kA/SMC-SlotService/internal/usecase/generate_week_slots"
)

// WeekSlotsResponse HTTP response model
type WeekSlotsResponse struct {
	Week                 *apiModels.WeekSlotsModel      `json:"week"`
	WeekOffset           int                            `json:"weekOffset"`
	SelectedDate         *string                        `json:"selectedDate,omitempty"`
	LastError            *string                        `json:"lastError,omitempty"`
	TotalServiceDuration int                            `json:"totalServiceDurationMinutes"`
	SlotsNeeded          int                            `json:"slotsNeeded"`
	Ranges               []apiModels.SelectedRangeModel `json:"selectedRanges"`
	CanSelectMore        bool                           `json:"canSelectMore"`
	HasAllRanges         bool                           `json:"hasAllRanges"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *generateWeekSlots.Response) *WeekSlotsResponse {
	var selectedDate *string
	if resp.SelectedDate != nil {
		s := resp.SelectedDate.Format(domain.DateFormat)
		selectedDate = &s
	}

	return &WeekSlotsResponse{
		Week:                 apiModels.FromWeekSlots(resp.Week),
		WeekOffset:           resp.WeekOffset,
		SelectedDate:         selectedDate,
		LastError:            resp.LastError,
		TotalServiceDuration: resp.TotalServiceDuration,
		SlotsNeeded:          resp.SlotsNeeded,
		Ranges:               apiModels.FromSelectedRanges(resp.Ranges),
		CanSelectMore:        resp.CanSelectMore,
		HasAllRanges:         resp.HasAllRanges,
	}
}
