package domain

import "errors"

var (
	// ErrPropertyNotFound - бэкенд ответил 404 на запрос объекта.
	ErrPropertyNotFound = errors.New("property not found")

	// ErrUnexpectedShape - тело ответа разобрано, но не содержит ожидаемой структуры.
	ErrUnexpectedShape = errors.New("unexpected response shape")

	// ErrInvalidChanges - правки объекта не удалось наложить на write-модель.
	ErrInvalidChanges = errors.New("invalid property changes")

	// ErrKeyNotFound - ключа нет в key-value хранилище.
	ErrKeyNotFound = errors.New("key not found")
)
