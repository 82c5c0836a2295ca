package forms

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrValidation — общая ошибка валидации формы.
var ErrValidation = errors.New("validation error")

// FieldError описывает ошибку конкретного поля формы.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError содержит ошибки всех полей формы.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		if f.Field == "" {
			parts = append(parts, f.Message)
			continue
		}
		parts = append(parts, f.Field+": "+f.Message)
	}

	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Result — результат разбора формы: либо Value, либо ошибки полей.
type Result[T any] struct {
	Value  T
	Fields []FieldError
}

func (r Result[T]) OK() bool {
	return len(r.Fields) == 0
}

// Err возвращает *ValidationError или nil.
func (r Result[T]) Err() error {
	if r.OK() {
		return nil
	}

	return &ValidationError{Fields: r.Fields}
}

// Message возвращает текст ошибки поля field или пустую строку.
func (r Result[T]) Message(field string) string {
	for _, f := range r.Fields {
		if f.Field == field {
			return f.Message
		}
	}

	return ""
}

// Parse разбирает произвольные значения формы в T и проверяет их.
func Parse[T any](values map[string]any) Result[T] {
	var out T

	data, err := json.Marshal(values)
	if err != nil {
		return Result[T]{Fields: []FieldError{{Message: err.Error()}}}
	}

	if err = json.Unmarshal(data, &out); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return Result[T]{Fields: []FieldError{{
				Field:   typeErr.Field,
				Message: fmt.Sprintf("%s must be of type %s", typeErr.Field, typeErr.Type),
			}}}
		}

		return Result[T]{Fields: []FieldError{{Message: err.Error()}}}
	}

	return Validate(out)
}

// Validate проверяет уже типизированное значение.
func Validate[T any](value T) Result[T] {
	err := validate.Struct(value)
	if err == nil {
		return Result[T]{Value: value}
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return Result[T]{Value: value, Fields: []FieldError{{Message: err.Error()}}}
	}

	fields := make([]FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		fields = append(fields, translate(fe))
	}

	return Result[T]{Value: value, Fields: fields}
}

func translate(fe validator.FieldError) FieldError {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}

	key := indexRegex.ReplaceAllString(field, "") + "|" + fe.Tag()
	if msg, ok := fieldMessages[key]; ok {
		return FieldError{Field: field, Message: msg}
	}

	return FieldError{Field: field, Message: fe.Translate(translator)}
}
