// Package validation проверяет поля учетной записи до обращения к хранилищу.
package validation

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"
)

const (
	// MinUsernameLen минимальная длина username
	MinUsernameLen = 3
	// MaxUsernameLen максимальная длина username
	MaxUsernameLen = 32

	// MinPasswordLen минимальная длина пароля
	MinPasswordLen = 8
	// MaxPasswordLen - больше bcrypt все равно не учитывает
	MaxPasswordLen = 72

	// MaxEmailLen ограничение RFC 5321 на длину адреса
	MaxEmailLen = 254
	// MaxFullNameLen максимальная длина отображаемого имени (в символах)
	MaxFullNameLen = 100
)

// NormalizeUsername приводит username к каноническому виду (trim + lower case)
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// NormalizeEmail приводит email к каноническому виду (trim + lower case)
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateUsername проверяет, что username соответствует требованиям
// Формат: только латинские буквы (a-z, A-Z), цифры (0-9), нижнее подчеркивание (_)
// Длина: 3-32 символа
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}

	if len(username) < MinUsernameLen {
		return fmt.Errorf("username must be at least %d characters long", MinUsernameLen)
	}

	if len(username) > MaxUsernameLen {
		return fmt.Errorf("username must not exceed %d characters", MaxUsernameLen)
	}

	for _, r := range username {
		if !isUsernameRune(r) {
			return fmt.Errorf("username can only contain letters (a-z, A-Z), numbers (0-9), and underscores (_)")
		}
	}

	return nil
}

func isUsernameRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_'
}

// ValidateEmail проверяет, что строка - один адрес без отображаемого имени
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}

	if len(email) > MaxEmailLen {
		return fmt.Errorf("email must not exceed %d characters", MaxEmailLen)
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || addr.Name != "" {
		return fmt.Errorf("email is not a valid address")
	}

	return nil
}

// ValidatePassword проверяет требования к паролю
// Длина: 8-72 байта
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	if len(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLen)
	}

	if len(password) > MaxPasswordLen {
		return fmt.Errorf("password must not exceed %d bytes", MaxPasswordLen)
	}

	return nil
}

// ValidateFullName проверяет отображаемое имя; пустое имя допустимо
func ValidateFullName(fullName string) error {
	if utf8.RuneCountInString(fullName) > MaxFullNameLen {
		return fmt.Errorf("full name must not exceed %d characters", MaxFullNameLen)
	}

	if strings.ContainsAny(fullName, "\n\r\t") {
		return fmt.Errorf("full name must be a single line")
	}

	return nil
}
