package storage

import (
	"context"
	"sync"
)

// MemoryStorage реализует TokenStore в памяти.
// Переживает пересоздание Store в рамках одного процесса, что удобно в тестах.
type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStorage создаёт новый MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		values: make(map[string]string),
	}
}

// LoadToken возвращает сохранённый токен.
func (s *MemoryStorage) LoadToken(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	token, ok := s.values[TokenKey]
	if !ok {
		return "", ErrNoToken
	}

	return token, nil
}

// SaveToken сохраняет токен.
func (s *MemoryStorage) SaveToken(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[TokenKey] = token

	return nil
}

// ClearToken удаляет токен.
func (s *MemoryStorage) ClearToken(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, TokenKey)

	return nil
}

func (s *MemoryStorage) Close() error {
	return nil
}
