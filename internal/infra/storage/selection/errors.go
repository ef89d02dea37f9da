package selection

import "errors"

var (
	// ErrRangeNotFound возвращается, когда выбранный диапазон не найден
	ErrRangeNotFound = errors.New("selection.repository: range not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("selection.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("selection.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("selection.repository: failed to scan row")
)
