// Package auth - клиентская часть сессии: login/logout, хранение токенов
// и прозрачное обновление access токена по refresh токену.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	clientapi "github.com/iudanet/vidtube/internal/client/api"
	"github.com/iudanet/vidtube/internal/client/storage"
	"github.com/iudanet/vidtube/internal/validation"
	"github.com/iudanet/vidtube/pkg/api"
)

var (
	// ErrNotAuthenticated - локальной сессии нет, нужен login
	ErrNotAuthenticated = errors.New("not authenticated, please run 'vidtube login' first")

	// ErrSessionExpired - сервер отклонил refresh токен; локальная сессия удалена
	ErrSessionExpired = errors.New("session expired, please run 'vidtube login' again")
)

// Service предоставляет функции авторизации
type Service struct {
	logger    *slog.Logger
	apiClient APIClient
	authStore storage.AuthStorage
	serverURL string
	now       func() time.Time
}

// NewService создает новый сервис авторизации
func NewService(logger *slog.Logger, apiClient APIClient, authStore storage.AuthStorage, serverURL string) *Service {
	return &Service{
		logger:    logger,
		apiClient: apiClient,
		authStore: authStore,
		serverURL: serverURL,
		now:       time.Now,
	}
}

// RegisterInput - данные для регистрации
type RegisterInput struct {
	Username string
	Email    string
	FullName string
	Password string
}

// Register регистрирует нового пользователя. Сессию не открывает.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*api.User, error) {
	// Проверяем локально, чтобы не гонять заведомо плохой запрос
	if err := validation.ValidateUsername(validation.NormalizeUsername(in.Username)); err != nil {
		return nil, fmt.Errorf("invalid username: %w", err)
	}
	if err := validation.ValidateEmail(validation.NormalizeEmail(in.Email)); err != nil {
		return nil, fmt.Errorf("invalid email: %w", err)
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, fmt.Errorf("invalid password: %w", err)
	}

	user, err := s.apiClient.Register(ctx, api.RegisterRequest{
		Username: in.Username,
		Email:    in.Email,
		FullName: in.FullName,
		Password: in.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	return user, nil
}

// Login аутентифицирует по username или email (определяется по "@")
// и сохраняет полученную сессию, заменяя предыдущую.
func (s *Service) Login(ctx context.Context, login, password string) (*storage.AuthData, error) {
	login = strings.TrimSpace(login)
	if login == "" {
		return nil, errors.New("username or email is required")
	}
	if password == "" {
		return nil, errors.New("password is required")
	}

	req := api.LoginRequest{Password: password}
	if strings.Contains(login, "@") {
		req.Email = login
	} else {
		req.Username = login
	}

	resp, err := s.apiClient.Login(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	authData := &storage.AuthData{
		UserID:       resp.User.ID,
		Username:     resp.User.Username,
		Email:        resp.User.Email,
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ServerURL:    s.serverURL,
		ExpiresAt:    s.now().Unix() + resp.ExpiresIn,
	}

	if err := s.authStore.SaveAuth(ctx, authData); err != nil {
		return nil, fmt.Errorf("failed to save auth data: %w", err)
	}

	return authData, nil
}

// Refresh обменивает сохраненный refresh токен на новую пару.
// Если сервер отклоняет токен, локальная сессия удаляется.
func (s *Service) Refresh(ctx context.Context) (*storage.AuthData, error) {
	authData, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	return s.refresh(ctx, authData)
}

func (s *Service) refresh(ctx context.Context, authData *storage.AuthData) (*storage.AuthData, error) {
	resp, err := s.apiClient.Refresh(ctx, authData.RefreshToken)
	if err != nil {
		if clientapi.IsUnauthorized(err) {
			s.logger.Debug("refresh token rejected, dropping local session", "error", err)
			if delErr := s.authStore.DeleteAuth(ctx); delErr != nil && !errors.Is(delErr, storage.ErrAuthNotFound) {
				return nil, fmt.Errorf("failed to delete local auth data: %w", delErr)
			}
			return nil, ErrSessionExpired
		}
		return nil, fmt.Errorf("refresh failed: %w", err)
	}

	updated := *authData
	updated.AccessToken = resp.AccessToken
	updated.RefreshToken = resp.RefreshToken
	updated.ExpiresAt = s.now().Unix() + resp.ExpiresIn

	if err := s.authStore.SaveAuth(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to save auth data: %w", err)
	}

	return &updated, nil
}

// withAccess вызывает fn с access токеном; если сервер отверг токен (401),
// один раз обновляет токены и повторяет вызов. Обновление выполняется не больше одного раза.
func (s *Service) withAccess(ctx context.Context, fn func(accessToken string) error) error {
	authData, err := s.session(ctx)
	if err != nil {
		return err
	}

	// Истекший access токен обновляем сразу, без заведомо неудачного запроса
	if authData.AccessExpired(s.now()) {
		s.logger.Debug("access token expired, refreshing")
		authData, err = s.refresh(ctx, authData)
		if err != nil {
			return err
		}
		return fn(authData.AccessToken)
	}

	err = fn(authData.AccessToken)
	if !clientapi.IsTokenRejected(err) {
		return err
	}

	s.logger.Debug("access token rejected, refreshing")

	authData, err = s.refresh(ctx, authData)
	if err != nil {
		return err
	}

	return fn(authData.AccessToken)
}

// WhoAmI возвращает профиль текущего пользователя
func (s *Service) WhoAmI(ctx context.Context) (*api.User, error) {
	var user *api.User

	err := s.withAccess(ctx, func(accessToken string) error {
		u, err := s.apiClient.CurrentUser(ctx, accessToken)
		if err != nil {
			return err
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// ChangePassword меняет пароль. Текущая сессия остается действительной.
func (s *Service) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	if err := validation.ValidatePassword(newPassword); err != nil {
		return fmt.Errorf("invalid new password: %w", err)
	}

	return s.withAccess(ctx, func(accessToken string) error {
		return s.apiClient.ChangePassword(ctx, accessToken, api.ChangePasswordRequest{
			OldPassword: oldPassword,
			NewPassword: newPassword,
		})
	})
}

// Logout выполняет выход из системы
// Удаляет локальные данные авторизации и уведомляет сервер (best effort).
// Возвращает false, если сервер не подтвердил logout.
func (s *Service) Logout(ctx context.Context) (bool, error) {
	authData, err := s.session(ctx)
	if err != nil {
		return false, err
	}

	serverNotified := true
	if logoutErr := s.apiClient.Logout(ctx, authData.AccessToken); logoutErr != nil {
		// Не прерываем процесс, если сервер недоступен
		s.logger.Warn("failed to logout on server", "error", logoutErr)
		serverNotified = false
	}

	// Всегда удаляем локальные данные, даже если сервер недоступен
	if err := s.authStore.DeleteAuth(ctx); err != nil && !errors.Is(err, storage.ErrAuthNotFound) {
		return serverNotified, fmt.Errorf("failed to delete local auth data: %w", err)
	}

	return serverNotified, nil
}

// Status - локальная сессия и состояние сервера
type Status struct {
	Session     *storage.AuthData   // nil, если не выполнен login
	Server      *api.HealthResponse // nil, если сервер недоступен
	ServerError error
}

// Status собирает состояние без обращения к защищенным endpoints
func (s *Service) Status(ctx context.Context) (*Status, error) {
	st := &Status{}

	authData, err := s.authStore.GetAuth(ctx)
	switch {
	case err == nil:
		st.Session = authData
	case errors.Is(err, storage.ErrAuthNotFound):
	default:
		return nil, fmt.Errorf("failed to get auth data: %w", err)
	}

	st.Server, st.ServerError = s.apiClient.Health(ctx)

	return st, nil
}

func (s *Service) session(ctx context.Context) (*storage.AuthData, error) {
	authData, err := s.authStore.GetAuth(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, fmt.Errorf("failed to get auth data: %w", err)
	}
	return authData, nil
}
