package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/vidtube/internal/models"
)

var testUser = &models.User{ID: "user-123", Username: "alice", Email: "alice@example.com"}

func testConfig() Config {
	return Config{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		Issuer:        "vidtube",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
	}
}

// fakeClock - управляемые часы
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func newTestService(t *testing.T) (*Service, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	s, err := NewService(testConfig(), WithClock(clock.Now))
	require.NoError(t, err)
	return s, clock
}

func TestNewService_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty access secret", func(c *Config) { c.AccessSecret = "" }},
		{"empty refresh secret", func(c *Config) { c.RefreshSecret = "" }},
		{"same secrets", func(c *Config) { c.RefreshSecret = c.AccessSecret }},
		{"zero access ttl", func(c *Config) { c.AccessTTL = 0 }},
		{"negative refresh ttl", func(c *Config) { c.RefreshTTL = -time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)
			_, err := NewService(cfg)
			assert.Error(t, err)
		})
	}
}

func TestService_AccessRoundTrip(t *testing.T) {
	s, clock := newTestService(t)

	token, exp, err := s.IssueAccessToken(testUser)
	require.NoError(t, err)
	assert.Equal(t, clock.t.Add(15*time.Minute), exp)

	claims, err := s.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, KindAccess, claims.Kind)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, clock.t, claims.IssuedAt.UTC())
	assert.Equal(t, exp, claims.ExpiresAt.UTC())
}

func TestService_RefreshRoundTrip(t *testing.T) {
	s, _ := newTestService(t)

	token, _, err := s.IssueRefreshToken("user-123")
	require.NoError(t, err)

	claims, err := s.VerifyRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, KindRefresh, claims.Kind)
	assert.Empty(t, claims.Username)
}

func TestService_TokensAreDistinctWithinSameSecond(t *testing.T) {
	s, _ := newTestService(t)

	a, err := s.IssuePair(testUser)
	require.NoError(t, err)
	b, err := s.IssuePair(testUser)
	require.NoError(t, err)

	assert.NotEqual(t, a.AccessToken, b.AccessToken)
	assert.NotEqual(t, a.RefreshToken, b.RefreshToken)
}

func TestService_Expiry(t *testing.T) {
	s, clock := newTestService(t)

	access, _, err := s.IssueAccessToken(testUser)
	require.NoError(t, err)
	refresh, _, err := s.IssueRefreshToken(testUser.ID)
	require.NoError(t, err)

	clock.t = clock.t.Add(15*time.Minute - time.Second)
	_, err = s.VerifyAccessToken(access)
	require.NoError(t, err, "still valid one second before exp")

	clock.t = clock.t.Add(time.Second)
	_, err = s.VerifyAccessToken(access)
	assert.ErrorIs(t, err, ErrTokenExpired, "exp itself is already expired")

	_, err = s.VerifyRefreshToken(refresh)
	assert.NoError(t, err, "refresh outlives access")

	clock.t = clock.t.Add(7 * 24 * time.Hour)
	_, err = s.VerifyRefreshToken(refresh)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestService_RejectsWrongKind(t *testing.T) {
	s, _ := newTestService(t)

	pair, err := s.IssuePair(testUser)
	require.NoError(t, err)

	_, err = s.VerifyAccessToken(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = s.VerifyRefreshToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = s.Verify(pair.AccessToken, Kind("id"))
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestService_RejectsForeignSignatures(t *testing.T) {
	s, clock := newTestService(t)

	other := testConfig()
	other.AccessSecret = "someone-else"
	foreign, err := NewService(other, WithClock(clock.Now))
	require.NoError(t, err)

	token, _, err := foreign.IssueAccessToken(testUser)
	require.NoError(t, err)

	_, err = s.VerifyAccessToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestService_RejectsOtherAlgorithms(t *testing.T) {
	s, clock := newTestService(t)

	claims := tokenClaims{
		Kind: KindAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			Issuer:    "vidtube",
			ExpiresAt: jwt.NewNumericDate(clock.t.Add(time.Hour)),
		},
	}

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("access-secret"))
	require.NoError(t, err)

	for name, token := range map[string]string{"none": none, "HS512": hs512} {
		t.Run(name, func(t *testing.T) {
			_, err := s.VerifyAccessToken(token)
			assert.ErrorIs(t, err, ErrTokenInvalid)
		})
	}
}

func TestService_RejectsMissingExpAndSubject(t *testing.T) {
	s, _ := newTestService(t)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		Kind:             KindAccess,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-123", Issuer: "vidtube"},
	}).SignedString([]byte("access-secret"))
	require.NoError(t, err)

	_, err = s.VerifyAccessToken(noExp)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, _, err = s.IssueRefreshToken("")
	assert.Error(t, err)
}

func TestService_RejectsGarbage(t *testing.T) {
	s, _ := newTestService(t)

	for _, token := range []string{"", "abc", "a.b.c", "eyJhbGciOiJIUzI1NiJ9.e30."} {
		_, err := s.VerifyAccessToken(token)
		assert.ErrorIs(t, err, ErrTokenInvalid, token)
	}
}
