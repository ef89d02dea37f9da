package domain

import "time"

// PlannerSession состояние сессии планирования записи
// Хранит позицию навигации по календарю и последнюю ошибку выбора
type PlannerSession struct {
	ID           int64
	SessionID    string // Внешний идентификатор сессии (выдается клиентом)
	UserID       int64
	WeekOffset   int        // Смещение текущей недели (>= 0)
	SelectedDate *time.Time // Выбранный день (nil = день не выбран)
	LastError    *string    // Последняя ошибка выбора слота (nil = ошибок нет)
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
