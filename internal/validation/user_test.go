package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		errMsg   string
		wantErr  bool
	}{
		{name: "valid username - lowercase", username: "alice"},
		{name: "valid username - mixed case", username: "AliceSmith"},
		{name: "valid username - with underscore", username: "alice_smith"},
		{name: "valid username - all numbers", username: "123456"},
		{name: "valid username - max length", username: strings.Repeat("a", 32)},
		{name: "invalid - empty username", username: "", wantErr: true, errMsg: "username cannot be empty"},
		{name: "invalid - too short (2 chars)", username: "ab", wantErr: true, errMsg: "at least 3 characters"},
		{name: "invalid - too long (33 chars)", username: strings.Repeat("a", 33), wantErr: true, errMsg: "must not exceed 32"},
		{name: "invalid - with space", username: "alice smith", wantErr: true, errMsg: "can only contain letters"},
		{name: "invalid - with at", username: "alice@x", wantErr: true, errMsg: "can only contain letters"},
		{name: "invalid - cyrillic characters", username: "алиса", wantErr: true, errMsg: "can only contain letters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{name: "valid", email: "alice@x.com"},
		{name: "valid with plus", email: "alice+tube@example.com"},
		{name: "empty", email: "", wantErr: true},
		{name: "no at", email: "alice.example.com", wantErr: true},
		{name: "display name", email: "Alice <alice@x.com>", wantErr: true},
		{name: "two addresses", email: "a@x.com, b@x.com", wantErr: true},
		{name: "too long", email: strings.Repeat("a", 250) + "@x.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		errMsg   string
		wantErr  bool
	}{
		{name: "valid password - exactly 8 chars", password: "password"},
		{name: "valid password - with special chars", password: "P@ssw0rd!@#$"},
		{name: "valid password - unicode", password: "пароль12"},
		{name: "valid password - 72 bytes", password: strings.Repeat("x", 72)},
		{name: "invalid - empty password", password: "", wantErr: true, errMsg: "password cannot be empty"},
		{name: "invalid - too short (7 chars)", password: "passwor", wantErr: true, errMsg: "at least 8 characters"},
		{name: "invalid - too long", password: strings.Repeat("x", 73), wantErr: true, errMsg: "must not exceed 72 bytes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidateFullName(t *testing.T) {
	assert.NoError(t, ValidateFullName(""))
	assert.NoError(t, ValidateFullName("Алиса Лидделл"))
	assert.Error(t, ValidateFullName(strings.Repeat("я", 101)))
	assert.Error(t, ValidateFullName("Alice\nLiddell"))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "alice", NormalizeUsername("  Alice "))
	assert.Equal(t, "alice@x.com", NormalizeEmail("ALICE@X.com"))
}
