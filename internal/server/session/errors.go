package session

import (
	"errors"
	"fmt"
)

// Ошибки сессии. Транспорт сопоставляет их со статусами через errors.Is.
var (
	// ErrInvalidCredentials - неверная пара логин/пароль
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotFound - пользователь не существует
	ErrNotFound = errors.New("user not found")

	// ErrUnauthenticated - токен не предъявлен
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrInvalidToken - подпись не сходится, токен просрочен или его владелец удален
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenReuseOrExpired - refresh токен не совпадает с действующим
	// (уже был ротирован или сессия завершена logout)
	ErrTokenReuseOrExpired = errors.New("refresh token reused or expired")

	// ErrValidation - входные данные не прошли проверку
	ErrValidation = errors.New("validation failed")

	// ErrConflict - username или email уже заняты
	ErrConflict = errors.New("already exists")

	// ErrInternal - сбой хранилища или подписи, не связанный с входными данными
	ErrInternal = errors.New("internal error")
)

// Internal оборачивает неожиданную ошибку в ErrInternal, сохраняя причину
func Internal(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrInternal, op, err)
}

// Validation оборачивает сообщение о невалидных данных в ErrValidation
func Validation(err error) error {
	return fmt.Errorf("%w: %w", ErrValidation, err)
}
