package auth

import (
	"context"

	"github.com/iudanet/vidtube/pkg/api"
)

//go:generate moq -out api_mock.go . APIClient

// APIClient - вызовы сервера, нужные сервису авторизации
type APIClient interface {
	Register(ctx context.Context, req api.RegisterRequest) (*api.User, error)
	Login(ctx context.Context, req api.LoginRequest) (*api.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*api.TokenResponse, error)
	Logout(ctx context.Context, accessToken string) error
	CurrentUser(ctx context.Context, accessToken string) (*api.User, error)
	ChangePassword(ctx context.Context, accessToken string, req api.ChangePasswordRequest) error
	Health(ctx context.Context) (*api.HealthResponse, error)
}
