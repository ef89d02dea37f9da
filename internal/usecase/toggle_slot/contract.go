package toggle_slot

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	"github.com/m04kA/SMC-SlotService/internal/integrations/cartservice"
	"github.com/m04kA/SMC-SlotService/pkg/types"
)

// SessionRepository интерфейс репозитория сессий планирования
type SessionRepository interface {
	GetOrCreate(ctx context.Context, sessionID string, userID int64) (*domain.PlannerSession, error)

	// SetLastError сохраняет последнюю ошибку выбора (nil очищает ошибку)
	SetLastError(ctx context.Context, sessionID string, lastError *string) error
}

// SelectionRepository интерфейс репозитория выбранных диапазонов
type SelectionRepository interface {
	Create(ctx context.Context, sessionID string, rng *domain.SelectedTimeRange) (*domain.SelectedTimeRange, error)
	CountBySession(ctx context.Context, sessionID string) (int, error)
	DeleteByAnchor(ctx context.Context, sessionID string, date time.Time, anchorTime types.TimeString) (bool, error)
	ListBySession(ctx context.Context, sessionID string) ([]*domain.SelectedTimeRange, error)
}

// CartServiceClient интерфейс клиента для CartService
type CartServiceClient interface {
	GetCartWithGracefulDegradation(ctx context.Context, userID int64) (*cartservice.Cart, error)
}

// TransactionManager интерфейс для выполнения операций в транзакции
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс для учета бизнес-метрик (может отсутствовать)
type Metrics interface {
	IncRangeSelected()
	IncRangeRemoved()
	IncToggleRejection(reason string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
