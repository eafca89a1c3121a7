package session_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dailytask/internal/session"
)

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("server-secret"))
	require.NoError(t, err)
	return tok
}

func TestStore_Lifecycle(t *testing.T) {
	s := session.New(filepath.Join(t.TempDir(), "nested", "session.json"))

	assert.False(t, s.Exists())
	_, err := s.Token()
	assert.ErrorIs(t, err, session.ErrNoSession)

	require.NoError(t, s.Set("  abc.def.ghi \n"))
	assert.True(t, s.Exists())

	tok, err := s.Token()
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", tok)

	info, err := os.Stat(s.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	require.NoError(t, s.Clear())
	assert.False(t, s.Exists())

	// Clearing twice is fine.
	require.NoError(t, s.Clear())
}

func TestStore_SetEmpty(t *testing.T) {
	s := session.New(filepath.Join(t.TempDir(), "session.json"))
	assert.Error(t, s.Set("   "))
	assert.False(t, s.Exists())
}

func TestStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0600))

	_, err := session.New(path).Token()
	require.Error(t, err)
	assert.NotErrorIs(t, err, session.ErrNoSession)
}

func TestStore_Raw(t *testing.T) {
	s := session.New(filepath.Join(t.TempDir(), "token.json"))

	_, err := s.Raw()
	assert.ErrorIs(t, err, session.ErrNoSession)

	require.NoError(t, s.SetRaw([]byte(`{"access_token":"x"}`)))
	data, err := s.Raw()
	require.NoError(t, err)
	assert.JSONEq(t, `{"access_token":"x"}`, string(data))
}

func TestInspect(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	tok := signed(t, jwt.MapClaims{"userId": "u-1", "exp": exp.Unix()})

	c, err := session.Inspect(tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", c.Subject)
	assert.True(t, c.ExpiresAt.Equal(exp))
	assert.False(t, c.Expired(time.Now()))
}

func TestInspect_Subject(t *testing.T) {
	c, err := session.Inspect(signed(t, jwt.MapClaims{"sub": "alice"}))
	require.NoError(t, err)
	assert.Equal(t, "alice", c.Subject)
	assert.True(t, c.ExpiresAt.IsZero())
	assert.False(t, c.Expired(time.Now()))
}

func TestInspect_Expired(t *testing.T) {
	c, err := session.Inspect(signed(t, jwt.MapClaims{"exp": time.Now().Add(-time.Minute).Unix()}))
	require.NoError(t, err)
	assert.True(t, c.Expired(time.Now()))
}

func TestInspect_Malformed(t *testing.T) {
	_, err := session.Inspect("definitely-not-a-jwt")
	assert.Error(t, err)
}
