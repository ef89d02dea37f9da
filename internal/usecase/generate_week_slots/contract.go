package generate_week_slots

import (
	"context"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	"github.com/m04kA/SMC-SlotService/internal/integrations/cartservice"
)

// SessionRepository интерфейс репозитория сессий планирования
type SessionRepository interface {
	// GetOrCreate получает сессию или создает новую с состоянием по умолчанию
	GetOrCreate(ctx context.Context, sessionID string, userID int64) (*domain.PlannerSession, error)
}

// SelectionRepository интерфейс репозитория выбранных диапазонов
type SelectionRepository interface {
	ListBySession(ctx context.Context, sessionID string) ([]*domain.SelectedTimeRange, error)
}

// CartServiceClient интерфейс клиента для CartService
type CartServiceClient interface {
	GetCartWithGracefulDegradation(ctx context.Context, userID int64) (*cartservice.Cart, error)
}

// Metrics интерфейс для учета бизнес-метрик (может отсутствовать)
type Metrics interface {
	IncSlotWeekGenerated()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
