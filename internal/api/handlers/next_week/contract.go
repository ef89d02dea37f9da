package next_week

import (
	"context"

	"github.com/m04kA/SMC-SlotService/internal/service/selection/models"
)

type SelectionService interface {
	NextWeek(ctx context.Context, sessionID string, userID int64) (*models.SelectionState, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
