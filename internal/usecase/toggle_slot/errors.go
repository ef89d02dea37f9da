package toggle_slot

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrSlotNotFound возвращается, когда слот не найден в слотах дня
	// Обычно означает устаревшую ссылку на слот из перерисованного представления
	ErrSlotNotFound = errors.New("slot not found in day")

	// ErrSelectionLimitReached возвращается при попытке выбрать диапазон сверх лимита
	ErrSelectionLimitReached = errors.New("selection limit reached")

	// ErrInsufficientConsecutiveSlots возвращается, когда от выбранного слота
	// нет достаточного количества последовательных свободных слотов
	ErrInsufficientConsecutiveSlots = errors.New("insufficient consecutive slots")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
