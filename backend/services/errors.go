package services

import "errors"

// ErrNotFound means the referenced record does not exist or is not
// owned by the caller. Controllers map it to 404.
var ErrNotFound = errors.New("record not found")

// ValidationError означает некорректный ввод; отклоняется до любой
// записи в базу. Контроллеры отдают 422.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
