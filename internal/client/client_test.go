package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type course struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func newGateway(t *testing.T, handler http.HandlerFunc, opts ...Option) *Gateway {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	gw, err := New(Config{BaseURL: srv.URL + "/api", Timeout: time.Second}, opts...)
	require.NoError(t, err)

	return gw
}

func TestNew_InvalidBaseURL(t *testing.T) {
	testCases := []struct {
		name    string
		baseURL string
	}{
		{name: "empty", baseURL: ""},
		{name: "no scheme", baseURL: "localhost:8080/api"},
		{name: "garbage", baseURL: "://"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gw, err := New(Config{BaseURL: tc.baseURL})
			assert.Error(t, err)
			assert.Nil(t, gw)
		})
	}
}

func TestNew_DefaultTimeout(t *testing.T) {
	gw, err := New(Config{BaseURL: "http://localhost:8080/api"})
	require.NoError(t, err)
	assert.Equal(t, DefaultTimeout, gw.Timeout())
	assert.Equal(t, 10*time.Second, gw.Timeout())
}

func TestCall_DecodesResponse(t *testing.T) {
	gw := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/users/courses", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get(headerRequestID))
		_, _ = io.WriteString(w, `[{"id":1,"name":"Go"},{"id":2,"name":"Rust"}]`)
	})

	courses, err := Call[[]course](context.Background(), gw, Request{Method: http.MethodGet, Path: "/users/courses"})
	require.NoError(t, err)
	assert.Equal(t, []course{{ID: 1, Name: "Go"}, {ID: 2, Name: "Rust"}}, courses)
}

func TestCall_EmptyBody(t *testing.T) {
	gw := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	out, err := Call[*course](context.Background(), gw, Request{Method: http.MethodDelete, Path: "/courses/1"})
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestCall_JSONBody(t *testing.T) {
	gw := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, contentTypeJSON, r.Header.Get("Content-Type"))
		data, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.JSONEq(t, `{"id":0,"name":"Go"}`, string(data))
		_, _ = io.WriteString(w, `{"id":7,"name":"Go"}`)
	})

	created, err := Call[course](context.Background(), gw, Request{
		Method: http.MethodPost,
		Path:   "/courses",
		Body:   course{Name: "Go"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), created.ID)
}

func TestCall_Multipart(t *testing.T) {
	gw := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data"))
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		assert.Equal(t, "Essay", r.FormValue("title"))
		assert.Equal(t, []string{"pdf", "docx"}, r.MultipartForm.Value["allowedFileExtensions"])

		files := r.MultipartForm.File["files"]
		if assert.Len(t, files, 1) {
			assert.Equal(t, "task.pdf", files[0].Filename)
		}

		_, _ = io.WriteString(w, `{"id":3,"name":"Essay"}`)
	})

	form := &Form{}
	form.Add("title", "Essay")
	form.Add("allowedFileExtensions", "pdf")
	form.Add("allowedFileExtensions", "docx")
	form.AddFile("files", "task.pdf", []byte("%PDF"))

	created, err := Call[course](context.Background(), gw, Request{Method: http.MethodPost, Path: "/assignments", Form: form})
	require.NoError(t, err)
	assert.Equal(t, int64(3), created.ID)
}

func TestAuthorizationHeader(t *testing.T) {
	var (
		mu  sync.Mutex
		got []string
	)
	gw := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, r.Header.Get(headerAuthorization))
		w.WriteHeader(http.StatusOK)
	})

	ctx := context.Background()

	require.NoError(t, Do(ctx, gw, Request{Path: "/dashboard"}))

	gw.SetAuthorization("abc")
	require.NoError(t, Do(ctx, gw, Request{Path: "/dashboard"}))

	gw.SetAuthorization("def")
	require.NoError(t, Do(ctx, gw, Request{Path: "/dashboard"}))

	gw.SetAuthorization("")
	require.NoError(t, Do(ctx, gw, Request{Path: "/dashboard"}))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"", "Bearer abc", "Bearer def", ""}, got)
}

func TestServerErrors(t *testing.T) {
	testCases := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{
			name:    "message field",
			status:  http.StatusUnauthorized,
			body:    `{"message":"invalid credentials"}`,
			message: "invalid credentials",
		},
		{
			name:    "error field",
			status:  http.StatusNotFound,
			body:    `{"error":"quiz not found"}`,
			message: "quiz not found",
		},
		{
			name:    "bare string",
			status:  http.StatusBadRequest,
			body:    `"bad request"`,
			message: "bad request",
		},
		{
			name:    "not json",
			status:  http.StatusInternalServerError,
			body:    `<html>oops</html>`,
			message: "request failed with status code 500",
		},
		{
			name:    "empty body",
			status:  http.StatusBadGateway,
			message: "request failed with status code 502",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gw := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body)
			})

			_, err := Call[course](context.Background(), gw, Request{Method: http.MethodPost, Path: "/users/login"})
			require.Error(t, err)

			var gwErr *Error
			require.True(t, errors.As(err, &gwErr))
			assert.Equal(t, KindServer, gwErr.Kind)
			assert.Equal(t, tc.status, gwErr.Status)
			assert.Equal(t, tc.message, gwErr.Message)
			assert.Equal(t, tc.message, Message(err))
			assert.ErrorIs(t, err, ErrServer)
			assert.NotErrorIs(t, err, ErrTimeout)
		})
	}
}

func TestTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	gw, err := New(Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	require.NoError(t, err)

	_, err = Call[course](context.Background(), gw, Request{Path: "/dashboard"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.NotErrorIs(t, err, ErrServer)
	assert.Equal(t, "timeout of 50ms exceeded", Message(err))
}

func TestCanceled(t *testing.T) {
	started := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	t.Cleanup(srv.Close)

	gw, err := New(Config{BaseURL: srv.URL, Timeout: 5 * time.Second})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	err = Do(ctx, gw, Request{Path: "/dashboard"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCanceled)
	assert.NotErrorIs(t, err, ErrTimeout)
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	gw, err := New(Config{BaseURL: addr, Timeout: time.Second})
	require.NoError(t, err)

	err = Do(context.Background(), gw, Request{Path: "/dashboard"})
	require.Error(t, err)

	var gwErr *Error
	require.True(t, errors.As(err, &gwErr))
	assert.Equal(t, KindTransport, gwErr.Kind)
	assert.True(t, strings.HasPrefix(gwErr.Message, "network error:"))
}

func TestCall_DecodeError(t *testing.T) {
	gw := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{not json`)
	})

	_, err := Call[course](context.Background(), gw, Request{Path: "/courses/1"})
	require.Error(t, err)

	var gwErr *Error
	require.True(t, errors.As(err, &gwErr))
	assert.Equal(t, KindTransport, gwErr.Kind)
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)

	var status atomic.Int32
	status.Store(http.StatusOK)
	gw := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(int(status.Load()))
	}, WithMetrics(metrics))

	ctx := context.Background()
	require.NoError(t, Do(ctx, gw, Request{Path: "/quizzes"}))
	require.NoError(t, Do(ctx, gw, Request{Path: "/quizzes"}))

	status.Store(http.StatusNotFound)
	require.Error(t, Do(ctx, gw, Request{Path: "/quizzes/9"}))

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.requests.WithLabelValues(http.MethodGet, "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.requests.WithLabelValues(http.MethodGet, "404")))
}
