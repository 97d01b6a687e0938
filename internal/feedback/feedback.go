// Package feedback описывает сообщения, которые контроллеры показывают пользователю,
// и сводит любые ошибки к одной строке текста.
package feedback

import (
	"errors"
)

// Kind - тип уведомления (определяет цвет тоста).
type Kind int

const (
	Info Kind = iota
	Success
	Warning
	Error
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "info"
	}
}

// Notice - одно уведомление для пользователя.
type Notice struct {
	Kind Kind
	Text string
}

func Ok(text string) Notice   { return Notice{Kind: Success, Text: text} }
func Warn(text string) Notice { return Notice{Kind: Warning, Text: text} }
func Fail(text string) Notice { return Notice{Kind: Error, Text: text} }

// ValidationError - ошибка клиентской валидации. Запрос в сеть после нее не выполняется.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Invalid создает ValidationError.
func Invalid(message string) error {
	return &ValidationError{Message: message}
}

// IsValidation сообщает, что err - ошибка валидации.
func IsValidation(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}

// ServerMessager реализуют ошибки, несущие текст от сервера.
type ServerMessager interface {
	ServerMessage() string
}

// FromError превращает ошибку в уведомление:
// валидация - предупреждение с ее текстом; ответ сервера с сообщением - это сообщение;
// все остальное (сеть, пустой ответ) - fallback.
func FromError(err error, fallback string) Notice {
	if err == nil {
		return Notice{}
	}
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return Warn(vErr.Message)
	}
	var sm ServerMessager
	if errors.As(err, &sm) && sm.ServerMessage() != "" {
		return Fail(sm.ServerMessage())
	}
	return Fail(fallback)
}

// Message - как FromError, но только текст.
func Message(err error, fallback string) string {
	return FromError(err, fallback).Text
}

// FromResponse различает два запасных текста: rejected - сервер ответил ошибкой
// без сообщения, failed - ответа не было (сеть, таймаут).
func FromResponse(err error, rejected, failed string) Notice {
	if err == nil {
		return Notice{}
	}
	var sm ServerMessager
	if !IsValidation(err) && errors.As(err, &sm) && sm.ServerMessage() == "" {
		return Fail(rejected)
	}
	return FromError(err, failed)
}
