package models

import "time"

// User представляет пользователя в системе
type User struct {
	ID           string    `json:"id"`        // UUID пользователя
	Username     string    `json:"username"`  // уникальный username, в нижнем регистре
	Email        string    `json:"email"`     // уникальный email, в нижнем регистре
	FullName     string    `json:"full_name"` // отображаемое имя
	PasswordHash string    `json:"-"`         // argon2id или bcrypt хеш пароля
	RefreshToken string    `json:"-"`         // единственный действующий refresh token
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Sanitized returns a copy of the user without credentials.
// PasswordHash and RefreshToken never leave the server.
func (u *User) Sanitized() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.PasswordHash = ""
	c.RefreshToken = ""
	return &c
}

// TokenPair представляет пару access/refresh токенов, выданных одному пользователю
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	// AccessExpiresAt и RefreshExpiresAt нужны транспорту для cookie и expires_in
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}
