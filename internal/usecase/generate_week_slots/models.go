package generate_week_slots

import (
	"time"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

// Request модель запроса на получение текущей недели слотов
type Request struct {
	SessionID string // Идентификатор сессии планирования
	UserID    int64  // ID пользователя (для получения корзины)
}

// Response модель ответа с неделей слотов и состоянием выбора
type Response struct {
	Week                 *domain.WeekSlots
	WeekOffset           int
	SelectedDate         *time.Time
	LastError            *string
	TotalServiceDuration int // Суммарная длительность услуг корзины в минутах
	SlotsNeeded          int // Количество последовательных слотов под эту длительность
	Ranges               []*domain.SelectedTimeRange
	CanSelectMore        bool
	HasAllRanges         bool // Выбрано максимальное количество диапазонов
}
