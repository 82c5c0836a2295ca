package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/letsssgooo/classroom/internal/client"
	"github.com/letsssgooo/classroom/internal/domain/models"
	"github.com/letsssgooo/classroom/internal/forms"
	"github.com/letsssgooo/classroom/internal/storage"
	"github.com/letsssgooo/classroom/internal/store"
)

func newCLIStore(t *testing.T, handler http.Handler) (*store.Store, *bytes.Buffer) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	gw, err := client.New(client.Config{BaseURL: srv.URL, Timeout: time.Second})
	require.NoError(t, err)

	st, err := store.New(context.Background(), gw, storage.NewMemoryStorage(), nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	prev := out
	out = &buf
	t.Cleanup(func() { out = prev })

	return st, &buf
}

func TestLogin(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /users/login", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(models.AuthResponse{
			User:  models.User{ID: 1, Email: "ada@example.com", FirstName: "Ada", LastName: "Lovelace"},
			Token: "tok",
		})
	})

	st, buf := newCLIStore(t, mux)

	err := login(context.Background(), st, []string{"--email", "ada@example.com", "--password", "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "Signed in as Ada Lovelace <ada@example.com>\n", buf.String())
	assert.Equal(t, "tok", st.Auth().State().Token)
}

func TestLogin_InvalidForm(t *testing.T) {
	st, _ := newCLIStore(t, http.NotFoundHandler())

	err := login(context.Background(), st, []string{"--email", "not-an-email", "--password", "secret1"})
	assert.ErrorIs(t, err, forms.ErrValidation)
	assert.Equal(t, store.StatusIdle, st.Auth().Lifecycle().Status)
}

func TestCreateQuiz(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /quizzes", func(w http.ResponseWriter, r *http.Request) {
		var q models.Quiz
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&q)) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if !assert.Len(t, q.Questions, 1) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		assert.Nil(t, q.Questions[0].ID)

		q.ID = models.ID(9)
		_ = json.NewEncoder(w).Encode(q)
	})

	st, buf := newCLIStore(t, mux)

	path := filepath.Join(t.TempDir(), "quiz.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"title": "Midterm",
		"startTime": "2024-03-01T10:00:00Z",
		"endTime": "2024-03-01T11:00:00Z",
		"questions": [{
			"title": "2+2",
			"type": "single_correct",
			"points": 1,
			"options": [{"text": "4", "isCorrect": true}, {"text": "5"}]
		}]
	}`), 0o600))

	require.NoError(t, createQuiz(context.Background(), st, []string{path}))
	assert.Equal(t, "Quiz 9 \"Midterm\" created with 1 question\n", buf.String())
	assert.Len(t, st.Quizzes().State().Quizzes, 1)
}

func TestParseID(t *testing.T) {
	id, err := parseID([]string{"42"})
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = parseID([]string{"abc"})
	assert.Error(t, err)

	_, err = parseID(nil)
	assert.Error(t, err)
}

func TestListCourses_Categories(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/courses", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]models.Course{
			{ID: 1, Name: "Go", Category: "Programming"},
			{ID: 2, Name: "Calculus", Category: "Math"},
			{ID: 3, Name: "Rust", Category: "Programming"},
			{ID: 4, Name: "Drafts"},
		})
	})

	st, buf := newCLIStore(t, mux)

	require.NoError(t, listCourses(context.Background(), st, []string{"--categories"}))
	assert.Equal(t, "Programming\nMath\n", buf.String())
}

func TestHelpFlag(t *testing.T) {
	st, _ := newCLIStore(t, http.NotFoundHandler())

	err := login(context.Background(), st, []string{"-h"})
	require.ErrorIs(t, err, pflag.ErrHelp)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "success", err: nil, want: 0},
		{name: "help", err: err, want: 0},
		{name: "wrapped help", err: fmt.Errorf("login: %w", pflag.ErrHelp), want: 0},
		{name: "failure", err: errors.New("boom"), want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}
