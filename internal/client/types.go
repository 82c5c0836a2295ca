package client

import (
	"net/http"
	"time"
)

// Request описывает один вызов к API.
// Если задан Form, тело отправляется как multipart/form-data, иначе Body
// кодируется в JSON.
type Request struct {
	Method string
	Path   string
	Body   any
	Form   *Form
	Header http.Header
}

// Form — тело multipart-запроса. Порядок полей сохраняется.
type Form struct {
	Fields []Field
	Files  []File
}

// Field — текстовое поле формы.
type Field struct {
	Name  string
	Value string
}

// File — файл формы.
type File struct {
	Field string
	Name  string
	Data  []byte
}

// Add добавляет текстовое поле.
func (f *Form) Add(name, value string) {
	f.Fields = append(f.Fields, Field{Name: name, Value: value})
}

// AddFile добавляет файл в поле field.
func (f *Form) AddFile(field, name string, data []byte) {
	f.Files = append(f.Files, File{Field: field, Name: name, Data: data})
}

// Config содержит параметры шлюза, задаётся один раз при старте.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Таймауты
const DefaultTimeout = 10 * time.Second

const (
	headerAuthorization = "Authorization"
	headerRequestID     = "X-Request-ID"
	contentTypeJSON     = "application/json"
)
