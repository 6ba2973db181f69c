// Package errors содержит общие доменные ошибки приложения.
//
// Эти ошибки используются в service и repository слоях
// и маппятся на HTTP-статусы в api слое.
package errors

import (
	"errors"
	"fmt"
)

var (
	// Входные данные невалидны (пустые поля, неправильный формат и т.п.)
	ErrInvalidInput = errors.New("invalid input")
	// Неверные учётные данные (email не найден или пароль не совпал — не различаем)
	ErrInvalidCredentials = errors.New("invalid credentials")
	// Получена непредвиденная ошибка
	ErrInternal = errors.New("internal error")
	// Полученные JSON данные с ошибками
	ErrBadJSON = errors.New("bad json")
	// Неавторизован (токен отсутствует/просрочен/с неверной подписью)
	ErrUnauthorized = errors.New("unauthorized")
	// Ресурс уже существует (email уже занят)
	ErrAlreadyExists = errors.New("already exists")
	// Ресурс не найден
	ErrNotFound = errors.New("not found")
)

// FieldError описывает ошибку валидации одного поля запроса.
type FieldError struct {
	Field  string `json:"field"`
	Detail string `json:"detail"`
}

// ValidationError — набор ошибок валидации входных данных.
//
// Разворачивается (errors.Is) в ErrInvalidInput, чтобы api слой
// мог обработать её как 400 и отдать детали по полям.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrInvalidInput.Error()
	}
	return fmt.Sprintf("%s: %s: %s", ErrInvalidInput, e.Fields[0].Field, e.Fields[0].Detail)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// NewValidationError собирает ValidationError из пар поле/описание.
func NewValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}
