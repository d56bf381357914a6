package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Параметры Argon2id по умолчанию
const (
	// Argon2Time - количество итераций (time cost)
	Argon2Time = 1
	// Argon2Memory - объем памяти в KB (64MB = 64*1024 KB)
	Argon2Memory = 64 * 1024
	// Argon2Threads - количество параллельных потоков
	Argon2Threads = 4
	// Argon2KeyLen - длина выходного ключа в байтах
	Argon2KeyLen = 32
	// SaltSize - размер соли в байтах
	SaltSize = 16

	argon2Version = argon2.Version
	argon2Prefix  = "$argon2id$"
)

// Верхние границы параметров хеша. Не зависят от текущей настройки хешера,
// поэтому снижение стоимости не ломает проверку уже сохраненных хешей.
const (
	maxArgon2MemoryKiB  = 1 << 20 // 1GB
	maxArgon2Iterations = 16
	maxArgon2Threads    = 64
	minArgon2SaltLen    = 8
	maxArgon2SaltLen    = 64
	minArgon2KeyLen     = 16
	maxArgon2KeyLen     = 128
)

// Argon2Params задает стоимость хеширования Argon2id
type Argon2Params struct {
	MemoryKiB  uint32
	Iterations uint32
	KeyLength  uint32
	SaltLength uint32
	Threads    uint8
}

// DefaultArgon2Params возвращает параметры Argon2id по умолчанию
func DefaultArgon2Params() Argon2Params {
	return Argon2Params{
		MemoryKiB:  Argon2Memory,
		Iterations: Argon2Time,
		Threads:    Argon2Threads,
		KeyLength:  Argon2KeyLen,
		SaltLength: SaltSize,
	}
}

// GenerateSalt генерирует криптографически случайную соль указанного размера
func GenerateSalt(size uint32) ([]byte, error) {
	salt := make([]byte, size)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}

// hashArgon2id кодирует хеш в PHC формате:
// $argon2id$v=19$m=<mem>,t=<iter>,p=<par>$<salt_b64>$<hash_b64>
func hashArgon2id(password string, p Argon2Params) (string, error) {
	salt, err := GenerateSalt(p.SaltLength)
	if err != nil {
		return "", err
	}

	key := argon2.IDKey([]byte(password), salt, p.Iterations, p.MemoryKiB, p.Threads, p.KeyLength)

	b64 := base64.RawStdEncoding
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2Version,
		p.MemoryKiB,
		p.Iterations,
		p.Threads,
		b64.EncodeToString(salt),
		b64.EncodeToString(key),
	), nil
}

// verifyArgon2id пересчитывает ключ с параметрами из хеша.
// Хеши с параметрами за пределами maxArgon2* отклоняются, чтобы чужая строка
// не заставила сервер выделить гигабайты памяти.
func verifyArgon2id(password, encoded string) (bool, error) {
	params, salt, expected, err := decodeArgon2id(encoded)
	if err != nil {
		return false, err
	}

	if !withinBounds(params) {
		return false, ErrInvalidHash
	}

	key := argon2.IDKey([]byte(password), salt, params.Iterations, params.MemoryKiB, params.Threads, uint32(len(expected))) // #nosec G115 -- length bounded by withinBounds

	return subtle.ConstantTimeCompare(key, expected) == 1, nil
}

func withinBounds(p Argon2Params) bool {
	switch {
	case p.MemoryKiB > maxArgon2MemoryKiB,
		p.Iterations > maxArgon2Iterations,
		p.Threads > maxArgon2Threads:
		return false
	case p.SaltLength < minArgon2SaltLen || p.SaltLength > maxArgon2SaltLen:
		return false
	case p.KeyLength < minArgon2KeyLen || p.KeyLength > maxArgon2KeyLen:
		return false
	}
	return true
}

func decodeArgon2id(encoded string) (Argon2Params, []byte, []byte, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return Argon2Params{}, nil, nil, ErrInvalidHash
	}

	if parts[2] != fmt.Sprintf("v=%d", argon2Version) {
		return Argon2Params{}, nil, nil, ErrInvalidHash
	}

	var mem, it, par uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &mem, &it, &par); err != nil {
		return Argon2Params{}, nil, nil, ErrInvalidHash
	}
	if mem == 0 || it == 0 || par == 0 || par > 255 {
		return Argon2Params{}, nil, nil, ErrInvalidHash
	}

	b64 := base64.RawStdEncoding
	salt, err := b64.DecodeString(parts[4])
	if err != nil {
		return Argon2Params{}, nil, nil, ErrInvalidHash
	}
	key, err := b64.DecodeString(parts[5])
	if err != nil {
		return Argon2Params{}, nil, nil, ErrInvalidHash
	}

	return Argon2Params{
		MemoryKiB:  mem,
		Iterations: it,
		Threads:    uint8(par), // #nosec G115 -- checked above
		SaltLength: uint32(len(salt)),
		KeyLength:  uint32(len(key)),
	}, salt, key, nil
}
