// Package cli - команды клиента vidtube на cobra
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/iudanet/vidtube/internal/client/api"
	"github.com/iudanet/vidtube/internal/client/auth"
	"github.com/iudanet/vidtube/internal/client/iocli"
	"github.com/iudanet/vidtube/internal/client/storage"
	"github.com/iudanet/vidtube/internal/client/storage/boltdb"
	pkgapi "github.com/iudanet/vidtube/pkg/api"
)

// PasswordEnv - переменная окружения с паролем для неинтерактивного login
const PasswordEnv = "VIDTUBE_PASSWORD"

// AuthService - операции клиента, которые вызывают команды
type AuthService interface {
	Register(ctx context.Context, in auth.RegisterInput) (*pkgapi.User, error)
	Login(ctx context.Context, login, password string) (*storage.AuthData, error)
	Refresh(ctx context.Context) (*storage.AuthData, error)
	WhoAmI(ctx context.Context) (*pkgapi.User, error)
	ChangePassword(ctx context.Context, oldPassword, newPassword string) error
	Logout(ctx context.Context) (bool, error)
	Status(ctx context.Context) (*auth.Status, error)
}

// Options - глобальные флаги
type Options struct {
	ServerURL string
	DBPath    string
	// ServerSet - --server передан явно и имеет приоритет над сохраненным
	ServerSet bool
	Verbose   bool
}

// ServiceFactory открывает зависимости команды; close освобождает их
type ServiceFactory func(ctx context.Context, opts Options) (svc AuthService, close func() error, err error)

// Passwords - источники пароля помимо интерактивного ввода
type Passwords struct {
	FromFile string
	FromArgs string
}

type Cli struct {
	io        iocli.IO
	factory   ServiceFactory
	opts      Options
	passwords Passwords
}

func New(io iocli.IO, factory ServiceFactory) *Cli {
	return &Cli{
		io:      io,
		factory: factory,
	}
}

// DefaultFactory собирает auth.Service поверх bbolt и HTTP клиента
func DefaultFactory(ctx context.Context, opts Options) (AuthService, func() error, error) {
	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	boltStorage, err := boltdb.New(ctx, opts.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	serverURL := opts.ServerURL
	if !opts.ServerSet {
		// Без явного --server работаем с тем сервером, где выполнен login
		if authData, err := boltStorage.GetAuth(ctx); err == nil && authData.ServerURL != "" {
			serverURL = authData.ServerURL
		}
	}
	logger.Debug("using server", "url", serverURL, "db", opts.DBPath)

	svc := auth.NewService(logger, api.NewClient(serverURL), boltStorage, serverURL)
	return svc, boltStorage.Close, nil
}

// withService открывает сервис на время выполнения fn
func (c *Cli) withService(ctx context.Context, fn func(svc AuthService) error) (err error) {
	svc, closeFn, err := c.factory(ctx, c.opts)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := closeFn(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("failed to close database: %w", closeErr))
		}
	}()

	return fn(svc)
}

// getPassword получает пароль с приоритетом:
// 1. Переменная окружения VIDTUBE_PASSWORD
// 2. Файл из --password-file
// 3. Параметр --password
// 4. Интерактивный ввод
// Второе значение сообщает, что пароль введен интерактивно.
func (c *Cli) getPassword(prompt string) (string, bool, error) {
	if envPassword := os.Getenv(PasswordEnv); envPassword != "" {
		return envPassword, false, nil
	}

	if c.passwords.FromFile != "" {
		content, err := os.ReadFile(c.passwords.FromFile)
		if err != nil {
			return "", false, fmt.Errorf("failed to read password file: %w", err)
		}
		// Убираем trailing newline/whitespace
		password := strings.TrimSpace(string(content))
		if password == "" {
			return "", false, errors.New("password file is empty")
		}
		return password, false, nil
	}

	if c.passwords.FromArgs != "" {
		return c.passwords.FromArgs, false, nil
	}

	password, err := c.readPassword(prompt)
	if err != nil {
		return "", true, err
	}
	return password, true, nil
}

func (c *Cli) readPassword(prompt string) (string, error) {
	password, err := c.io.ReadPassword(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	if password == "" {
		return "", errors.New("password cannot be empty")
	}
	return password, nil
}

// readRequired запрашивает значение, если оно не передано флагом
func (c *Cli) readRequired(value, prompt, name string) (string, error) {
	if value != "" {
		return value, nil
	}
	input, err := c.io.ReadInput(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", name, err)
	}
	if input == "" {
		return "", fmt.Errorf("%s cannot be empty", name)
	}
	return input, nil
}
