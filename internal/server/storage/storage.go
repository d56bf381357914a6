// Package storage описывает хранилище учетных записей (Credential Store).
// Реализации: sqlite (по умолчанию), postgres и mongo.
package storage

import "context"

//go:generate moq -out storage_mock.go . Storage

// Storage объединяет операции с пользователями и refresh токенами
type Storage interface {
	UserStorage
	TokenStorage

	// Ping проверяет доступность хранилища (health check)
	Ping(ctx context.Context) error

	// Close освобождает соединения
	Close() error
}
