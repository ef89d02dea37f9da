package domain

// Default slot generation values
const (
	DefaultStartHour         = 8
	DefaultEndHour           = 18
	DefaultSlotWidthMinutes  = 30
	DefaultFullSlotRatio     = 30 // Процент слотов, случайно помечаемых занятыми
	DefaultMinLeadTimeHours  = 24
	DefaultMaxSelectedRanges = 3

	// DefaultServiceDurationMinutes длительность по умолчанию при пустой корзине
	DefaultServiceDurationMinutes = 60
)

// Business validation constants
const (
	MinSlotWidthMinutes = 5
	MaxSlotWidthMinutes = 480 // 8 hours
	MinFullSlotRatio    = 0
	MaxFullSlotRatio    = 100
	MaxWeekOffset       = 52 // 1 year ahead
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Причины недоступности слотов (показываются пользователю)
const (
	ReasonLeadTimeTooShort = "слишком короткий срок до записи"
	ReasonSlotReserved     = "слот уже занят"
)
