// Package session реализует жизненный цикл сессии: вход, ротацию refresh
// токена, выход, смену пароля и проверку access токена на запрос.
//
// У пользователя не больше одного действующего refresh токена, он хранится
// в записи пользователя. Login перезаписывает его, Refresh меняет через
// compare-and-swap в хранилище, Logout очищает.
package session

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/iudanet/vidtube/internal/models"
	"github.com/iudanet/vidtube/internal/server/jwt"
	"github.com/iudanet/vidtube/internal/server/storage"
	"github.com/iudanet/vidtube/internal/validation"
)

// CredentialStore - операции хранилища, которые нужны сессии
type CredentialStore interface {
	storage.UserStorage
	storage.TokenStorage
}

// PasswordHasher хеширует и проверяет пароли
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encodedHash string) (bool, error)
}

// Service - Session Manager и Request Authenticator
type Service struct {
	logger *slog.Logger
	store  CredentialStore
	hasher PasswordHasher
	tokens *jwt.Service
	now    func() time.Time
}

// NewService создает сервис сессий
func NewService(logger *slog.Logger, store CredentialStore, hasher PasswordHasher, tokens *jwt.Service) *Service {
	return &Service{
		logger: logger,
		store:  store,
		hasher: hasher,
		tokens: tokens,
		now:    time.Now,
	}
}

// Login проверяет пароль пользователя, найденного по username или email,
// и открывает новую сессию, вытесняя предыдущую.
func (s *Service) Login(ctx context.Context, username, email, password string) (*models.User, *models.TokenPair, error) {
	username = validation.NormalizeUsername(username)
	email = validation.NormalizeEmail(email)

	if username == "" && email == "" {
		return nil, nil, Validation(errors.New("username or email is required"))
	}
	if password == "" {
		return nil, nil, Validation(errors.New("password is required"))
	}

	user, err := s.store.GetUserByLogin(ctx, username, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			s.logger.WarnContext(ctx, "login for unknown user",
				slog.String("username", username),
				slog.String("email", email))
			return nil, nil, ErrNotFound
		}
		return nil, nil, Internal("get user", err)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, nil, Internal("verify password", err)
	}
	if !ok {
		s.logger.WarnContext(ctx, "invalid password", slog.String("user_id", user.ID))
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.tokens.IssuePair(user)
	if err != nil {
		return nil, nil, Internal("issue tokens", err)
	}

	// Единственная запись в хранилище: новая сессия заменяет старую
	if err := s.store.SetRefreshToken(ctx, user.ID, pair.RefreshToken); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, Internal("save refresh token", err)
	}
	user.RefreshToken = pair.RefreshToken

	s.logger.InfoContext(ctx, "user logged in",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username))

	return user.Sanitized(), pair, nil
}

// Refresh обменивает действующий refresh токен на новую пару и делает
// предъявленный токен недействительным.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	if refreshToken == "" {
		return nil, ErrUnauthenticated
	}

	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		s.logger.WarnContext(ctx, "refresh token rejected", slog.Any("error", err))
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	user, err := s.store.GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: subject no longer exists", ErrInvalidToken)
		}
		return nil, Internal("get user", err)
	}

	if subtle.ConstantTimeCompare([]byte(user.RefreshToken), []byte(refreshToken)) != 1 {
		s.logger.WarnContext(ctx, "stale refresh token presented", slog.String("user_id", user.ID))
		return nil, ErrTokenReuseOrExpired
	}

	pair, err := s.tokens.IssuePair(user)
	if err != nil {
		return nil, Internal("issue tokens", err)
	}

	// CAS: если параллельный Refresh успел раньше, этот проиграет
	if err := s.store.RotateRefreshToken(ctx, user.ID, refreshToken, pair.RefreshToken); err != nil {
		if errors.Is(err, storage.ErrRefreshTokenMismatch) {
			s.logger.WarnContext(ctx, "refresh token rotated concurrently", slog.String("user_id", user.ID))
			return nil, ErrTokenReuseOrExpired
		}
		return nil, Internal("rotate refresh token", err)
	}

	s.logger.InfoContext(ctx, "tokens refreshed", slog.String("user_id", user.ID))

	return pair, nil
}

// Logout завершает сессию пользователя. Повторный вызов не ошибка.
func (s *Service) Logout(ctx context.Context, userID string) error {
	if err := s.store.ClearRefreshToken(ctx, userID); err != nil {
		return Internal("clear refresh token", err)
	}

	s.logger.InfoContext(ctx, "user logged out", slog.String("user_id", userID))

	return nil
}

// ChangePassword меняет пароль после проверки старого.
// Выданные токены остаются действительными.
func (s *Service) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	if err := validation.ValidatePassword(newPassword); err != nil {
		return Validation(err)
	}

	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return ErrNotFound
		}
		return Internal("get user", err)
	}

	ok, err := s.hasher.Verify(oldPassword, user.PasswordHash)
	if err != nil {
		return Internal("verify password", err)
	}
	if !ok {
		s.logger.WarnContext(ctx, "password change with wrong old password", slog.String("user_id", userID))
		return ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return Internal("hash password", err)
	}

	if err := s.store.UpdatePasswordHash(ctx, userID, hash, s.now().UTC()); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return ErrNotFound
		}
		return Internal("update password", err)
	}

	s.logger.InfoContext(ctx, "password changed", slog.String("user_id", userID))

	return nil
}

// Authenticate проверяет access токен и возвращает его владельца без
// хеша пароля и refresh токена. Хранилище только читается.
func (s *Service) Authenticate(ctx context.Context, accessToken string) (*models.User, error) {
	if accessToken == "" {
		return nil, ErrUnauthenticated
	}

	claims, err := s.tokens.VerifyAccessToken(accessToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	user, err := s.store.GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrNotFound
		}
		return nil, Internal("get user", err)
	}

	return user.Sanitized(), nil
}
