package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Gateway — единственная точка исходящих HTTP-вызовов к API.
// Ко всем вызовам добавляется заголовок Authorization с токеном,
// актуальным на момент вызова.
type Gateway struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	log        *slog.Logger
	metrics    *Metrics

	mu    sync.RWMutex
	token string
}

// Option настраивает Gateway при создании.
type Option func(*Gateway)

// WithHTTPClient подменяет http.Client (например, в тестах).
func WithHTTPClient(httpClient *http.Client) Option {
	return func(g *Gateway) {
		g.httpClient = httpClient
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(g *Gateway) {
		g.log = log
	}
}

func WithMetrics(metrics *Metrics) Option {
	return func(g *Gateway) {
		g.metrics = metrics
	}
}

// New создаёт шлюз с адресом и таймаутом из cfg.
// Нулевой таймаут заменяется на DefaultTimeout.
func New(cfg Config, opts ...Option) (*Gateway, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", cfg.BaseURL, err)
	}

	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: scheme and host are required", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	g := &Gateway{
		baseURL:    strings.TrimRight(base.String(), "/"),
		timeout:    timeout,
		httpClient: &http.Client{},
		log:        slog.Default(),
	}

	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

// SetAuthorization устанавливает токен для всех следующих вызовов.
// Пустая строка убирает заголовок Authorization.
func (g *Gateway) SetAuthorization(token string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.token = token
}

// Token возвращает текущий токен.
func (g *Gateway) Token() string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.token
}

// Timeout возвращает таймаут одного вызова.
func (g *Gateway) Timeout() time.Duration {
	return g.timeout
}

// Call выполняет запрос и декодирует тело успешного ответа в T.
// Пустое тело даёт нулевое значение T. Повторов и кеша нет.
func Call[T any](ctx context.Context, g *Gateway, req Request) (T, error) {
	var out T

	data, err := g.doRequest(ctx, req)
	if err != nil {
		return out, err
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return out, nil
	}

	if err = json.Unmarshal(data, &out); err != nil {
		return out, &Error{
			Kind:    KindTransport,
			Message: fmt.Sprintf("failed to decode response of %s %s: %v", req.Method, req.Path, err),
			err:     err,
		}
	}

	return out, nil
}

// Do выполняет запрос, тело ответа отбрасывается.
func Do(ctx context.Context, g *Gateway, req Request) error {
	_, err := g.doRequest(ctx, req)
	return err
}

// doRequest выполняет один запрос к API.
// Возвращает тело ответа с кодом 2xx, иначе *Error.
func (g *Gateway) doRequest(ctx context.Context, req Request) ([]byte, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	body, contentType, err := encodeBody(req)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: err.Error(), err: err}
	}

	callCtx, cancelFunc := context.WithTimeout(ctx, g.timeout)
	defer cancelFunc()

	request, err := http.NewRequestWithContext(callCtx, method, g.url(req.Path), body)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: err.Error(), err: err}
	}

	request.Header.Set("Accept", contentTypeJSON)
	request.Header.Set(headerRequestID, uuid.NewString())
	if contentType != "" {
		request.Header.Set("Content-Type", contentType)
	}

	if token := g.Token(); token != "" {
		request.Header.Set(headerAuthorization, "Bearer "+token)
	}

	for key, values := range req.Header {
		request.Header.Del(key)
		for _, value := range values {
			request.Header.Add(key, value)
		}
	}

	start := time.Now()

	resp, err := g.httpClient.Do(request)
	if err != nil {
		gwErr := g.transportError(ctx, err)
		g.finish(method, req.Path, string(gwErr.Kind), start)
		return nil, gwErr
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		gwErr := g.transportError(ctx, err)
		g.finish(method, req.Path, string(gwErr.Kind), start)
		return nil, gwErr
	}

	g.finish(method, req.Path, strconv.Itoa(resp.StatusCode), start)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, newServerError(resp.StatusCode, data)
	}

	return data, nil
}

func (g *Gateway) finish(method, path, status string, start time.Time) {
	elapsed := time.Since(start)
	g.metrics.observe(method, status, elapsed)
	g.log.Debug("api call", "method", method, "path", path, "status", status, "elapsed", elapsed)
}

// transportError отличает отмену вызывающим, таймаут и сетевые ошибки.
func (g *Gateway) transportError(parent context.Context, err error) *Error {
	if errors.Is(parent.Err(), context.Canceled) {
		return &Error{Kind: KindCanceled, Message: "request canceled", err: err}
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &Error{
			Kind:    KindTimeout,
			Message: fmt.Sprintf("timeout of %dms exceeded", g.timeout.Milliseconds()),
			err:     err,
		}
	}

	return &Error{Kind: KindTransport, Message: fmt.Sprintf("network error: %v", err), err: err}
}

func (g *Gateway) url(path string) string {
	if path == "" {
		return g.baseURL
	}

	return g.baseURL + "/" + strings.TrimLeft(path, "/")
}

// encodeBody возвращает тело запроса и его Content-Type.
func encodeBody(req Request) (io.Reader, string, error) {
	if req.Form != nil {
		return encodeForm(req.Form)
	}

	if req.Body == nil {
		return nil, "", nil
	}

	data, err := json.Marshal(req.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode request body: %w", err)
	}

	return bytes.NewReader(data), contentTypeJSON, nil
}

func encodeForm(form *Form) (io.Reader, string, error) {
	var buf bytes.Buffer

	writer := multipart.NewWriter(&buf)

	for _, field := range form.Fields {
		if err := writer.WriteField(field.Name, field.Value); err != nil {
			return nil, "", fmt.Errorf("failed to add %s field to multipart form: %w", field.Name, err)
		}
	}

	for _, file := range form.Files {
		fileWriter, err := writer.CreateFormFile(file.Field, file.Name)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create form file: %w", err)
		}

		if _, err = fileWriter.Write(file.Data); err != nil {
			return nil, "", fmt.Errorf("failed to write data to multipart form: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart form: %w", err)
	}

	return &buf, writer.FormDataContentType(), nil
}
