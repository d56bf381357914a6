// Package jwt выпускает и проверяет access/refresh токены (HS256).
//
// Access и refresh подписываются разными секретами и помечаются claim'ом
// token_type, поэтому refresh токен нельзя предъявить вместо access и наоборот.
// Каждый токен содержит случайный jti, так что два токена для одного
// пользователя, выпущенные в одну секунду, все равно различаются.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/iudanet/vidtube/internal/models"
)

// Kind - тип токена
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

var (
	// ErrTokenExpired indicates a well-formed token whose exp has passed
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid indicates a token that is malformed, badly signed or of the wrong kind
	ErrTokenInvalid = errors.New("token invalid")
)

// Config содержит секреты и время жизни токенов
type Config struct {
	AccessSecret  string
	RefreshSecret string
	Issuer        string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// Claims - проверенное содержимое токена
type Claims struct {
	IssuedAt  time.Time
	ExpiresAt time.Time
	Subject   string // ID пользователя
	ID        string // jti
	Kind      Kind
	Username  string // только в access токене
	Email     string // только в access токене
}

// tokenClaims - то, что реально лежит в payload
type tokenClaims struct {
	Kind     Kind   `json:"token_type"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Option настраивает Service
type Option func(*Service)

// WithClock подменяет источник времени (для тестов)
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// Service provides JWT token generation and validation
type Service struct {
	now           func() time.Time
	accessSecret  []byte
	refreshSecret []byte
	issuer        string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewService creates a new JWT service
// Secrets must be non-empty and differ from each other
func NewService(cfg Config, opts ...Option) (*Service, error) {
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, errors.New("jwt: access and refresh secrets are required")
	}
	if cfg.AccessSecret == cfg.RefreshSecret {
		return nil, errors.New("jwt: access and refresh secrets must differ")
	}
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return nil, errors.New("jwt: token TTLs must be positive")
	}

	s := &Service{
		now:           time.Now,
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		issuer:        cfg.Issuer,
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// IssueAccessToken creates a short-lived token carrying the user's identity
func (s *Service) IssueAccessToken(user *models.User) (string, time.Time, error) {
	return s.issue(KindAccess, user.ID, user.Username, user.Email)
}

// IssueRefreshToken creates a long-lived token carrying only the user ID
func (s *Service) IssueRefreshToken(userID string) (string, time.Time, error) {
	return s.issue(KindRefresh, userID, "", "")
}

// IssuePair creates a fresh access/refresh pair for the user
func (s *Service) IssuePair(user *models.User) (*models.TokenPair, error) {
	access, accessExp, err := s.IssueAccessToken(user)
	if err != nil {
		return nil, err
	}

	refresh, refreshExp, err := s.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &models.TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refreshExp,
	}, nil
}

// VerifyAccessToken validates an access token
func (s *Service) VerifyAccessToken(token string) (*Claims, error) {
	return s.Verify(token, KindAccess)
}

// VerifyRefreshToken validates a refresh token
func (s *Service) VerifyRefreshToken(token string) (*Claims, error) {
	return s.Verify(token, KindRefresh)
}

// Verify checks signature, algorithm, kind and expiry.
// Returns ErrTokenExpired or ErrTokenInvalid (possibly wrapping the parser error).
func (s *Service) Verify(token string, kind Kind) (*Claims, error) {
	secret, ttl := s.keyFor(kind)
	if secret == nil || ttl == 0 {
		return nil, fmt.Errorf("%w: unknown token kind %q", ErrTokenInvalid, kind)
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	tc := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, tc, func(*jwt.Token) (any, error) {
		return secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	if !parsed.Valid || tc.Kind != kind || tc.Subject == "" || tc.ExpiresAt == nil {
		return nil, ErrTokenInvalid
	}

	claims := &Claims{
		Subject:   tc.Subject,
		ID:        tc.ID,
		Kind:      tc.Kind,
		Username:  tc.Username,
		Email:     tc.Email,
		ExpiresAt: tc.ExpiresAt.Time,
	}
	if tc.IssuedAt != nil {
		claims.IssuedAt = tc.IssuedAt.Time
	}

	return claims, nil
}

func (s *Service) issue(kind Kind, subject, username, email string) (string, time.Time, error) {
	if subject == "" {
		return "", time.Time{}, errors.New("jwt: empty subject")
	}

	secret, ttl := s.keyFor(kind)
	now := s.now()
	expiresAt := now.Add(ttl)

	claims := tokenClaims{
		Kind:     kind,
		Username: username,
		Email:    email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign %s token: %w", kind, err)
	}

	// exp в токене округлен до секунд, отдаем ту же границу наружу
	return signed, claims.ExpiresAt.Time, nil
}

func (s *Service) keyFor(kind Kind) ([]byte, time.Duration) {
	switch kind {
	case KindAccess:
		return s.accessSecret, s.accessTTL
	case KindRefresh:
		return s.refreshSecret, s.refreshTTL
	default:
		return nil, 0
	}
}
