package select_day

import (
	"time"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

// SelectDayRequest HTTP request model
type SelectDayRequest struct {
	Date string `json:"date"` // YYYY-MM-DD
}

// ParseDate парсит дату выбранного дня
func (r *SelectDayRequest) ParseDate() (time.Time, error) {
	return time.Parse(domain.DateFormat, r.Date)
}
