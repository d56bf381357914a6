// Package crypto содержит хеширование и проверку паролей пользователей.
//
// Новые хеши создаются выбранным алгоритмом (argon2id по умолчанию или bcrypt),
// а Verify понимает оба формата, поэтому смена алгоритма в конфиге не ломает
// вход для уже зарегистрированных пользователей.
package crypto

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Algorithm определяет алгоритм хеширования новых паролей
type Algorithm string

const (
	AlgorithmArgon2id Algorithm = "argon2id"
	AlgorithmBcrypt   Algorithm = "bcrypt"
)

// DefaultBcryptCost используется, если в конфиге cost не задан
const DefaultBcryptCost = 12

var (
	// ErrInvalidHash indicates that the stored hash is malformed or uses unsupported parameters
	ErrInvalidHash = errors.New("invalid password hash")

	// ErrUnknownAlgorithm indicates an unsupported hashing algorithm in configuration
	ErrUnknownAlgorithm = errors.New("unknown password hashing algorithm")
)

// HasherConfig содержит настройки PasswordHasher
type HasherConfig struct {
	Algorithm  Algorithm
	Argon2     Argon2Params
	BcryptCost int
}

// PasswordHasher хеширует и проверяет пароли
type PasswordHasher struct {
	algorithm  Algorithm
	argon2     Argon2Params
	bcryptCost int
}

// NewPasswordHasher создает новый PasswordHasher
func NewPasswordHasher(cfg HasherConfig) (*PasswordHasher, error) {
	h := &PasswordHasher{
		algorithm:  cfg.Algorithm,
		argon2:     cfg.Argon2,
		bcryptCost: cfg.BcryptCost,
	}

	if h.algorithm == "" {
		h.algorithm = AlgorithmArgon2id
	}
	if h.argon2 == (Argon2Params{}) {
		h.argon2 = DefaultArgon2Params()
	}
	if h.bcryptCost == 0 {
		h.bcryptCost = DefaultBcryptCost
	}

	if !withinBounds(h.argon2) {
		return nil, fmt.Errorf("argon2id params out of range: %+v", h.argon2)
	}

	switch h.algorithm {
	case AlgorithmArgon2id:
	case AlgorithmBcrypt:
		if h.bcryptCost < bcrypt.MinCost || h.bcryptCost > bcrypt.MaxCost {
			return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", h.bcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, h.algorithm)
	}

	return h, nil
}

// Algorithm возвращает алгоритм, которым хешируются новые пароли
func (h *PasswordHasher) Algorithm() Algorithm {
	return h.algorithm
}

// Hash хеширует пароль настроенным алгоритмом
func (h *PasswordHasher) Hash(password string) (string, error) {
	switch h.algorithm {
	case AlgorithmBcrypt:
		b, err := bcrypt.GenerateFromPassword([]byte(password), h.bcryptCost)
		if err != nil {
			return "", fmt.Errorf("failed to hash password: %w", err)
		}
		return string(b), nil
	default:
		enc, err := hashArgon2id(password, h.argon2)
		if err != nil {
			return "", fmt.Errorf("failed to hash password: %w", err)
		}
		return enc, nil
	}
}

// Verify проверяет пароль против сохраненного хеша.
// Возвращает (false, nil) при несовпадении и ErrInvalidHash только для
// поврежденного или неподдерживаемого хеша.
func (h *PasswordHasher) Verify(password, encodedHash string) (bool, error) {
	switch {
	case strings.HasPrefix(encodedHash, argon2Prefix):
		return verifyArgon2id(password, encodedHash)
	case isBcryptHash(encodedHash):
		err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password))
		if err == nil {
			return true, nil
		}
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	default:
		return false, ErrInvalidHash
	}
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}
