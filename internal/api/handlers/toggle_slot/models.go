package toggle_slot

import (
	"time"

	apiModels "github.com/m04kA/SMC-SlotService/internal/api/models"
	"github.com/m04kA/SMC-SlotService/internal/domain"
	toggleSlot "github.com/m04kA/SMC-SlotService/internal/usecase/toggle_slot"
	"github.com/m04kA/SMC-SlotService/pkg/types"
)

// ToggleSlotRequest HTTP request model
type ToggleSlotRequest struct {
	Date      string `json:"date"`      // YYYY-MM-DD
	StartTime string `json:"startTime"` // HH:MM
}

// ToggleSlotResponse HTTP response model
type ToggleSlotResponse struct {
	Action string                         `json:"action"`
	Range  *apiModels.SelectedRangeModel  `json:"range,omitempty"`
	Ranges []apiModels.SelectedRangeModel `json:"selectedRanges"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (с парсингом даты и времени)
func (r *ToggleSlotRequest) ToUseCaseRequest(sessionID string, userID int64) (*toggleSlot.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &toggleSlot.Request{
		SessionID: sessionID,
		UserID:    userID,
		Date:      date,
		StartTime: startTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *toggleSlot.Response) *ToggleSlotResponse {
	var rng *apiModels.SelectedRangeModel
	if resp.Range != nil {
		m := apiModels.FromSelectedRange(resp.Range)
		rng = &m
	}

	return &ToggleSlotResponse{
		Action: string(resp.Action),
		Range:  rng,
		Ranges: apiModels.FromSelectedRanges(resp.Ranges),
	}
}
