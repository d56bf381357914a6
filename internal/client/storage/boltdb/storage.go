// Package boltdb хранит сессию CLI клиента в одном файле bbolt.
//
// Файл создается с правами 0600: токены лежат в нем как есть.
package boltdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/iudanet/vidtube/internal/client/storage"
)

var (
	sessionBucket = []byte("auth")
	currentKey    = []byte("current")

	// ErrClosed - хранилище уже закрыто
	ErrClosed = errors.New("session storage is closed")

	errNoBucket = errors.New("auth bucket not found")
)

var _ storage.AuthStorage = (*Storage)(nil)

// Storage - storage.AuthStorage поверх bbolt
type Storage struct {
	db *bbolt.DB
}

// New открывает (или создает) файл сессии
func New(_ context.Context, path string) (*Storage, error) {
	// второй процесс клиента ждет file lock не дольше секунды
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb %s: %w", path, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(sessionBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create auth bucket: %w", err)
	}

	return &Storage{db: db}, nil
}

// Close закрывает файл; повторный вызов ничего не делает
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	db := s.db
	s.db = nil
	return db.Close()
}

func (s *Storage) update(fn func(b *bbolt.Bucket) error) error {
	if s.db == nil {
		return ErrClosed
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(sessionBucket)
		if b == nil {
			return errNoBucket
		}
		return fn(b)
	})
}

func (s *Storage) view(fn func(b *bbolt.Bucket) error) error {
	if s.db == nil {
		return ErrClosed
	}
	return s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(sessionBucket)
		if b == nil {
			return errNoBucket
		}
		return fn(b)
	})
}

// SaveAuth заменяет текущую сессию
func (s *Storage) SaveAuth(_ context.Context, auth *storage.AuthData) error {
	raw, err := json.Marshal(auth)
	if err != nil {
		return fmt.Errorf("failed to marshal auth data: %w", err)
	}

	return s.update(func(b *bbolt.Bucket) error {
		return b.Put(currentKey, raw)
	})
}

// GetAuth возвращает текущую сессию или storage.ErrAuthNotFound
func (s *Storage) GetAuth(_ context.Context) (*storage.AuthData, error) {
	var auth storage.AuthData

	err := s.view(func(b *bbolt.Bucket) error {
		raw := b.Get(currentKey)
		if raw == nil {
			return storage.ErrAuthNotFound
		}
		// raw живет только внутри транзакции; Unmarshal копирует
		return json.Unmarshal(raw, &auth)
	})
	if err != nil {
		return nil, err
	}

	return &auth, nil
}

// DeleteAuth удаляет сессию; storage.ErrAuthNotFound, если ее нет
func (s *Storage) DeleteAuth(_ context.Context) error {
	return s.update(func(b *bbolt.Bucket) error {
		if b.Get(currentKey) == nil {
			return storage.ErrAuthNotFound
		}
		return b.Delete(currentKey)
	})
}

// IsAuthenticated: есть сессия с refresh токеном. Истекший access токен
// не в счет, его обновит клиент.
func (s *Storage) IsAuthenticated(ctx context.Context) (bool, error) {
	auth, err := s.GetAuth(ctx)
	switch {
	case errors.Is(err, storage.ErrAuthNotFound):
		return false, nil
	case err != nil:
		return false, err
	}
	return auth.RefreshToken != "", nil
}
