package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrorKind — класс ошибки шлюза.
type ErrorKind string

const (
	KindServer    ErrorKind = "server"
	KindTimeout   ErrorKind = "timeout"
	KindCanceled  ErrorKind = "canceled"
	KindTransport ErrorKind = "transport"
)

// Ошибки шлюза для errors.Is
var (
	ErrTimeout  = errors.New("request timed out")
	ErrCanceled = errors.New("request canceled")
	ErrServer   = errors.New("server error")
)

// Error — единая форма ошибки шлюза.
// Для KindServer Status содержит код ответа, а Payload — тело ответа.
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
	Payload json.RawMessage
	err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.err
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrTimeout:
		return e.Kind == KindTimeout
	case ErrCanceled:
		return e.Kind == KindCanceled
	case ErrServer:
		return e.Kind == KindServer
	}

	return false
}

// Message возвращает текст ошибки для показа пользователю.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var gwErr *Error
	if errors.As(err, &gwErr) {
		return gwErr.Message
	}

	return err.Error()
}

// newServerError разбирает тело ответа с кодом не 2xx.
// Сервер отвечает {"message": ...} или {"error": ...}; если тело не
// распознано, остаётся сообщение с кодом ответа.
func newServerError(status int, body []byte) *Error {
	e := &Error{
		Kind:    KindServer,
		Status:  status,
		Message: fmt.Sprintf("request failed with status code %d", status),
	}

	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return e
	}

	if json.Valid([]byte(trimmed)) {
		e.Payload = json.RawMessage(trimmed)
	}

	if msg := payloadMessage([]byte(trimmed)); msg != "" {
		e.Message = msg
	}

	return e
}

func payloadMessage(body []byte) string {
	var object struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &object); err == nil {
		if object.Message != "" {
			return object.Message
		}

		return object.Error
	}

	var text string
	if err := json.Unmarshal(body, &text); err == nil {
		return text
	}

	return ""
}
