// Package storage описывает локальное хранилище сессии CLI клиента
package storage

import (
	"context"
	"time"
)

//go:generate moq -out auth_mock.go . AuthStorage

// AuthStorage хранит единственную текущую сессию клиента
type AuthStorage interface {
	// SaveAuth сохраняет сессию, заменяя предыдущую
	SaveAuth(ctx context.Context, auth *AuthData) error

	// GetAuth возвращает сохраненную сессию
	// Returns ErrAuthNotFound if no auth data exists
	GetAuth(ctx context.Context) (*AuthData, error)

	// DeleteAuth удаляет сессию (logout)
	// Returns ErrAuthNotFound if no auth data exists
	DeleteAuth(ctx context.Context) error

	// IsAuthenticated сообщает, есть ли сохраненная сессия
	IsAuthenticated(ctx context.Context) (bool, error)
}

// AuthData - сессия, полученная при login/refresh.
// Хранится как есть: файл БД создается с правами 0600.
type AuthData struct {
	UserID       string `json:"user_id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ServerURL    string `json:"server_url"`
	ExpiresAt    int64  `json:"expires_at"` // unix время истечения access токена
}

// AccessExpired сообщает, что access токен уже истек к моменту now
func (a *AuthData) AccessExpired(now time.Time) bool {
	return now.Unix() >= a.ExpiresAt
}
