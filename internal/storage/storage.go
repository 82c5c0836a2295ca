package storage

import (
	"context"
	"errors"
)

// TokenKey — фиксированный ключ, под которым хранится токен сессии.
const TokenKey = "token"

// ErrNoToken возвращается, если токен не сохранён.
var ErrNoToken = errors.New("no persisted token")

// TokenStore определяет интерфейс для хранения токена сессии между
// перезапусками процесса.
type TokenStore interface {
	// LoadToken возвращает сохранённый токен или ErrNoToken.
	LoadToken(ctx context.Context) (string, error)

	// SaveToken сохраняет токен.
	SaveToken(ctx context.Context, token string) error

	// ClearToken удаляет токен. Удаление отсутствующего токена не ошибка.
	ClearToken(ctx context.Context) error

	// Close освобождает ресурсы хранилища.
	Close() error
}
