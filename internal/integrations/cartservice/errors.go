package cartservice

import "errors"

var (
	// ErrCartNotFound возвращается, когда у пользователя нет корзины
	ErrCartNotFound = errors.New("user has no cart")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("cartservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("cartservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что CartService недоступен и следует использовать длительность по умолчанию
	ErrServiceDegraded = errors.New("cartservice unavailable: graceful degradation applied")
)
