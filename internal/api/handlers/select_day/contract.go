package select_day

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotService/internal/service/selection/models"
)

type SelectionService interface {
	SelectDay(ctx context.Context, sessionID string, userID int64, date time.Time) (*models.SelectionState, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
