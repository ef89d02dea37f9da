package toggle_slot

import (
	"time"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	"github.com/m04kA/SMC-SlotService/pkg/types"
)

// ToggleAction результат переключения слота
type ToggleAction string

const (
	// ActionAdded диапазон добавлен в выбор
	ActionAdded ToggleAction = "added"

	// ActionRemoved диапазон убран из выбора (повторный toggle по якорю)
	ActionRemoved ToggleAction = "removed"
)

// Request модель запроса на переключение слота
type Request struct {
	SessionID string
	UserID    int64
	Date      time.Time        // Дата слота
	StartTime types.TimeString // Время начала слота (якорь диапазона)
}

// Response модель ответа на переключение слота
type Response struct {
	Action ToggleAction
	Range  *domain.SelectedTimeRange   // Добавленный диапазон (nil при удалении)
	Ranges []*domain.SelectedTimeRange // Актуальный список диапазонов после операции
}
