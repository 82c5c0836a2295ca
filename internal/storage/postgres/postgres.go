package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/letsssgooo/classroom/internal/storage"
)

type Storage struct {
	pool *pgxpool.Pool
}

// NewStorage подключается к базе по dsn и создаёт таблицу токенов, если её нет.
func NewStorage(ctx context.Context, dsn string) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.ConnectConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	query := `
	CREATE TABLE IF NOT EXISTS client_tokens (
		key   TEXT PRIMARY KEY,
		token TEXT NOT NULL
	)
	`

	if _, err = pool.Exec(ctx, query); err != nil {
		pool.Close()
		return nil, err
	}

	return &Storage{pool: pool}, nil
}

func (s *Storage) LoadToken(ctx context.Context) (string, error) {
	query := `
	SELECT token FROM client_tokens WHERE key = $1
	`

	var token string
	err := s.pool.QueryRow(ctx, query, storage.TokenKey).Scan(&token)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", storage.ErrNoToken
	}
	if err != nil {
		return "", err
	}

	return token, nil
}

func (s *Storage) SaveToken(ctx context.Context, token string) error {
	query := `
	INSERT INTO client_tokens (key, token) VALUES ($1, $2)
	ON CONFLICT (key) DO UPDATE SET token = EXCLUDED.token
	`

	_, err := s.pool.Exec(ctx, query, storage.TokenKey, token)
	return err
}

func (s *Storage) ClearToken(ctx context.Context) error {
	query := `
	DELETE FROM client_tokens WHERE key = $1
	`

	_, err := s.pool.Exec(ctx, query, storage.TokenKey)
	return err
}

func (s *Storage) Close() error {
	s.pool.Close()
	return nil
}
