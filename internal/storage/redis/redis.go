package redis

import (
	"context"
	"errors"

	"github.com/letsssgooo/classroom/internal/storage"
	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "classroom:"

// Storage хранит токен в Redis под ключом classroom:token.
type Storage struct {
	client *goredis.Client
	key    string
}

// NewStorage подключается к Redis по адресу addr и проверяет соединение.
func NewStorage(ctx context.Context, addr string) (*Storage, error) {
	client := goredis.NewClient(&goredis.Options{Addr: addr})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return NewWithClient(client), nil
}

func NewWithClient(client *goredis.Client) *Storage {
	return &Storage{
		client: client,
		key:    keyPrefix + storage.TokenKey,
	}
}

func (s *Storage) LoadToken(ctx context.Context) (string, error) {
	token, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", storage.ErrNoToken
	}
	if err != nil {
		return "", err
	}

	return token, nil
}

func (s *Storage) SaveToken(ctx context.Context, token string) error {
	return s.client.Set(ctx, s.key, token, 0).Err()
}

func (s *Storage) ClearToken(ctx context.Context) error {
	return s.client.Del(ctx, s.key).Err()
}

func (s *Storage) Close() error {
	return s.client.Close()
}
