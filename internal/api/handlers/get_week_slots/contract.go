package get_week_slots

import (
	"context"

	generateWeekSlots "github.com/m04kA/SMC-SlotService/internal/usecase/generate_week_slots"
)

type GenerateWeekSlotsUseCase interface {
	Execute(ctx context.Context, req *generateWeekSlots.Request) (*generateWeekSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
