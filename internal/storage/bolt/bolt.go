package bolt

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/letsssgooo/classroom/internal/storage"
	"go.etcd.io/bbolt"
)

var sessionBucket = []byte("Session")

// Storage хранит токен в файле bbolt.
type Storage struct {
	db *bbolt.DB
}

// Open открывает (или создаёт) файл базы по пути path.
func Open(path string) (*Storage, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open token db %s: %w", path, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(sessionBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Storage{db: db}, nil
}

func (s *Storage) LoadToken(_ context.Context) (string, error) {
	var token string
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(sessionBucket)
		if b == nil {
			return fmt.Errorf("bucket %s not found", sessionBucket)
		}
		v := b.Get([]byte(storage.TokenKey))
		if v == nil {
			return storage.ErrNoToken
		}
		token = string(v)
		return nil
	})
	return token, err
}

func (s *Storage) SaveToken(_ context.Context, token string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(sessionBucket)
		if err != nil {
			return err
		}
		return b.Put([]byte(storage.TokenKey), []byte(token))
	})
}

func (s *Storage) ClearToken(_ context.Context) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(sessionBucket)
		if b == nil {
			return nil
		}
		return b.Delete([]byte(storage.TokenKey))
	})
}

func (s *Storage) Close() error {
	return s.db.Close()
}
