package store

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/letsssgooo/classroom/internal/client"
)

// Status — состояние последней асинхронной операции слайса.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusPending   Status = "pending"
	StatusFulfilled Status = "fulfilled"
	StatusRejected  Status = "rejected"
)

// Lifecycle — статус и текст ошибки слайса.
// Error не пустой только в StatusRejected.
type Lifecycle struct {
	Status Status
	Error  string
}

// IsLoading сообщает, выполняется ли операция.
func (l Lifecycle) IsLoading() bool {
	return l.Status == StatusPending
}

// Listener вызывается после каждого изменения слайса со снимком состояния.
type Listener[S any] func(state S, lifecycle Lifecycle)

// Slice хранит состояние одной сущности и жизненный цикл операций над ней.
// Все изменения проходят под мьютексом, наружу отдаются только копии.
type Slice[S any] struct {
	name  string
	log   *slog.Logger
	clone func(S) S

	mu        sync.Mutex
	state     S
	lifecycle Lifecycle
	// settled — последний не-pending жизненный цикл, к нему возвращаемся
	// после отмены, если других операций нет.
	settled  Lifecycle
	inflight int
	seq      map[string]uint64

	listenersMu  sync.Mutex
	listeners    map[int]Listener[S]
	nextListener int
}

func newSlice[S any](name string, initial S, clone func(S) S, log *slog.Logger) *Slice[S] {
	if log == nil {
		log = slog.Default()
	}

	return &Slice[S]{
		name:      name,
		log:       log.With("slice", name),
		clone:     clone,
		state:     initial,
		lifecycle: Lifecycle{Status: StatusIdle},
		settled:   Lifecycle{Status: StatusIdle},
		seq:       make(map[string]uint64),
		listeners: make(map[int]Listener[S]),
	}
}

// Name возвращает имя слайса.
func (s *Slice[S]) Name() string {
	return s.name
}

// Snapshot возвращает копию состояния и жизненный цикл.
func (s *Slice[S]) Snapshot() (S, Lifecycle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.clone(s.state), s.lifecycle
}

// State возвращает копию состояния.
func (s *Slice[S]) State() S {
	state, _ := s.Snapshot()
	return state
}

// Lifecycle возвращает жизненный цикл.
func (s *Slice[S]) Lifecycle() Lifecycle {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lifecycle
}

// Subscribe регистрирует слушателя. Возвращает функцию отписки.
func (s *Slice[S]) Subscribe(fn Listener[S]) func() {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()

	id := s.nextListener
	s.nextListener++
	s.listeners[id] = fn

	return func() {
		s.listenersMu.Lock()
		defer s.listenersMu.Unlock()

		delete(s.listeners, id)
	}
}

// update синхронно меняет состояние без изменения жизненного цикла.
func (s *Slice[S]) update(fn func(state *S)) {
	s.mu.Lock()
	fn(&s.state)
	s.mu.Unlock()

	s.notify()
}

// notify вызывается без удержания s.mu.
func (s *Slice[S]) notify() {
	state, lifecycle := s.Snapshot()

	s.listenersMu.Lock()
	listeners := make([]Listener[S], 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.listenersMu.Unlock()

	for _, fn := range listeners {
		fn(s.clone(state), lifecycle)
	}
}

// operation описывает один асинхронный вызов слайса.
type operation[S, R any] struct {
	name string
	// fallback — текст ошибки, если у ошибки нет своего сообщения.
	fallback string
	// latestOnly отбрасывает результат, если после него была запущена
	// та же операция.
	latestOnly bool
	call       func(ctx context.Context) (R, error)
	apply      func(state *S, result R)
	// committed вызывается только после успешного применения результата,
	// до завершения задачи.
	committed func(ctx context.Context, result R)
}

// dispatch синхронно переводит слайс в StatusPending и выполняет вызов
// в отдельной горутине. Результат применяется к состоянию, задача
// завершается результатом вызова.
func dispatch[S, R any](ctx context.Context, s *Slice[S], op operation[S, R]) *Task[R] {
	task := newTask[R]()

	s.mu.Lock()
	s.inflight++
	s.seq[op.name]++
	seq := s.seq[op.name]
	s.lifecycle = Lifecycle{Status: StatusPending}
	s.mu.Unlock()

	s.log.Debug("dispatch", "op", op.name)
	s.notify()

	go func() {
		result, err := op.call(ctx)

		s.mu.Lock()
		s.inflight--

		switch {
		case errors.Is(ctx.Err(), context.Canceled):
			if s.inflight == 0 {
				s.lifecycle = s.settled
			}
			if err == nil {
				err = ctx.Err()
			}
			s.mu.Unlock()

			s.log.Debug("operation canceled", "op", op.name)
			s.notify()

			var zero R
			task.resolve(zero, err)
			return

		case op.latestOnly && s.seq[op.name] != seq:
			// Более новый вызов мог быть отменён раньше, чем завершился этот.
			idle := s.inflight == 0
			if idle {
				s.lifecycle = s.settled
			}
			s.mu.Unlock()

			s.log.Debug("stale result dropped", "op", op.name)
			if idle {
				s.notify()
			}
			task.resolve(result, err)
			return

		case err != nil:
			s.lifecycle = Lifecycle{Status: StatusRejected, Error: errorMessage(err, op.fallback)}
			s.settled = s.lifecycle
			s.mu.Unlock()

			s.log.Warn("operation rejected", "op", op.name, "error", err)

		default:
			if op.apply != nil {
				op.apply(&s.state, result)
			}
			s.lifecycle = Lifecycle{Status: StatusFulfilled}
			s.settled = s.lifecycle
			s.mu.Unlock()

			s.log.Debug("operation fulfilled", "op", op.name)
		}

		s.notify()
		if err == nil && op.committed != nil {
			op.committed(ctx, result)
		}
		task.resolve(result, err)
	}()

	return task
}

// errorMessage превращает ошибку в текст для состояния слайса.
func errorMessage(err error, fallback string) string {
	if msg := client.Message(err); msg != "" {
		return msg
	}

	if fallback != "" {
		return fallback
	}

	return "An error occurred"
}
