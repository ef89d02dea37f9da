package selection

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

// SessionRepository интерфейс репозитория сессий планирования
type SessionRepository interface {
	GetOrCreate(ctx context.Context, sessionID string, userID int64) (*domain.PlannerSession, error)
	SetNavigation(ctx context.Context, sessionID string, weekOffset int) error
	SetSelectedDate(ctx context.Context, sessionID string, date time.Time) error
	ClearSelectionState(ctx context.Context, sessionID string) error
}

// SelectionRepository интерфейс репозитория выбранных диапазонов
type SelectionRepository interface {
	ListBySession(ctx context.Context, sessionID string) ([]*domain.SelectedTimeRange, error)
	DeleteBySession(ctx context.Context, sessionID string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
