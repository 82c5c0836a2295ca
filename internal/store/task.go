package store

import "context"

// Task — результат асинхронной операции слайса.
// Завершается ровно один раз.
type Task[T any] struct {
	done  chan struct{}
	value T
	err   error
}

func newTask[T any]() *Task[T] {
	return &Task[T]{done: make(chan struct{})}
}

// failedTask возвращает уже завершённую с ошибкой задачу.
func failedTask[T any](err error) *Task[T] {
	t := newTask[T]()
	var zero T
	t.resolve(zero, err)

	return t
}

func (t *Task[T]) resolve(value T, err error) {
	t.value = value
	t.err = err
	close(t.done)
}

// Done закрывается, когда задача завершена.
func (t *Task[T]) Done() <-chan struct{} {
	return t.done
}

// Wait ждёт завершения задачи или отмены ctx.
// Отмена ctx не отменяет саму операцию.
func (t *Task[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-t.done:
		return t.value, t.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Err возвращает ошибку завершённой задачи, nil до завершения.
func (t *Task[T]) Err() error {
	select {
	case <-t.done:
		return t.err
	default:
		return nil
	}
}
