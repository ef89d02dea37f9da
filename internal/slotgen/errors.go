package slotgen

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных генератора
	// Указывает на ошибку вызывающей стороны и должен всплывать сразу
	ErrInvalidInput = errors.New("slotgen: invalid input")
)
