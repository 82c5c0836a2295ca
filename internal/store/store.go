package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/letsssgooo/classroom/internal/auth"
	"github.com/letsssgooo/classroom/internal/client"
	"github.com/letsssgooo/classroom/internal/storage"
)

// Store объединяет все слайсы клиента. Создаётся один раз и передаётся
// потребителям явно.
type Store struct {
	auth        *AuthSlice
	courses     *CoursesSlice
	dashboard   *DashboardSlice
	assignments *AssignmentsSlice
	materials   *MaterialsSlice
	quizzes     *QuizzesSlice
	people      *PeopleSlice
}

// New создаёт хранилище. Сохранённый токен читается из tokens и
// устанавливается в шлюз; истёкший JWT удаляется.
func New(ctx context.Context, gw *client.Gateway, tokens storage.TokenStore, log *slog.Logger) (*Store, error) {
	if log == nil {
		log = slog.Default()
	}

	token, err := tokens.LoadToken(ctx)
	switch {
	case errors.Is(err, storage.ErrNoToken):
		token = ""
	case err != nil:
		return nil, fmt.Errorf("failed to load session token: %w", err)
	}

	if token != "" && auth.Expired(token, time.Now()) {
		log.Info("persisted session token expired")
		if err = tokens.ClearToken(ctx); err != nil {
			return nil, fmt.Errorf("failed to clear expired session token: %w", err)
		}
		token = ""
	}

	gw.SetAuthorization(token)

	return &Store{
		auth:        newAuthSlice(gw, tokens, token, log),
		courses:     newCoursesSlice(gw, log),
		dashboard:   newDashboardSlice(gw, log),
		assignments: newAssignmentsSlice(gw, log),
		materials:   newMaterialsSlice(gw, log),
		quizzes:     newQuizzesSlice(gw, log),
		people:      newPeopleSlice(gw, log),
	}, nil
}

func (s *Store) Auth() *AuthSlice               { return s.auth }
func (s *Store) Courses() *CoursesSlice         { return s.courses }
func (s *Store) Dashboard() *DashboardSlice     { return s.dashboard }
func (s *Store) Assignments() *AssignmentsSlice { return s.assignments }
func (s *Store) Materials() *MaterialsSlice     { return s.materials }
func (s *Store) Quizzes() *QuizzesSlice         { return s.quizzes }
func (s *Store) People() *PeopleSlice           { return s.people }
