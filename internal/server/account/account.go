// Package account - регистрация и профиль пользователя.
package account

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/vidtube/internal/models"
	"github.com/iudanet/vidtube/internal/server/session"
	"github.com/iudanet/vidtube/internal/server/storage"
	"github.com/iudanet/vidtube/internal/validation"
)

// Hasher хеширует пароль при регистрации
type Hasher interface {
	Hash(password string) (string, error)
}

// Service управляет учетными записями
type Service struct {
	logger *slog.Logger
	users  storage.UserStorage
	hasher Hasher
	now    func() time.Time
}

// NewService создает сервис учетных записей
func NewService(logger *slog.Logger, users storage.UserStorage, hasher Hasher) *Service {
	return &Service{
		logger: logger,
		users:  users,
		hasher: hasher,
		now:    time.Now,
	}
}

// RegisterInput - данные для регистрации
type RegisterInput struct {
	Username string
	Email    string
	FullName string
	Password string
}

// Register создает пользователя. Username и email приводятся к нижнему регистру.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	username := validation.NormalizeUsername(in.Username)
	email := validation.NormalizeEmail(in.Email)

	if err := validation.ValidateUsername(username); err != nil {
		return nil, session.Validation(err)
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, session.Validation(err)
	}
	if err := validation.ValidateFullName(in.FullName); err != nil {
		return nil, session.Validation(err)
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, session.Validation(err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, session.Internal("hash password", err)
	}

	now := s.now().UTC()
	user := &models.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		FullName:     in.FullName,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			s.logger.WarnContext(ctx, "user already exists",
				slog.String("username", username),
				slog.String("email", email))
			return nil, session.ErrConflict
		}
		return nil, session.Internal("create user", err)
	}

	s.logger.InfoContext(ctx, "user registered successfully",
		slog.String("username", username),
		slog.String("user_id", user.ID))

	return user.Sanitized(), nil
}

// CurrentUser возвращает профиль пользователя без учетных данных
func (s *Service) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, session.ErrNotFound
		}
		return nil, session.Internal("get user", err)
	}

	return user.Sanitized(), nil
}

// UpdateProfile меняет отображаемое имя и email
func (s *Service) UpdateProfile(ctx context.Context, userID, fullName, email string) (*models.User, error) {
	email = validation.NormalizeEmail(email)

	if err := validation.ValidateFullName(fullName); err != nil {
		return nil, session.Validation(err)
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, session.Validation(err)
	}

	if err := s.users.UpdateProfile(ctx, userID, fullName, email, s.now().UTC()); err != nil {
		switch {
		case errors.Is(err, storage.ErrUserNotFound):
			return nil, session.ErrNotFound
		case errors.Is(err, storage.ErrUserAlreadyExists):
			return nil, session.ErrConflict
		default:
			return nil, session.Internal("update profile", err)
		}
	}

	s.logger.InfoContext(ctx, "profile updated", slog.String("user_id", userID))

	return s.CurrentUser(ctx, userID)
}
