package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nissyi-gh/taskdeck/internal/storage"
)

func newGate(t *testing.T) (*Gate, *storage.Store) {
	t.Helper()
	kv, err := storage.OpenSession()
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })
	g := NewGate(kv)
	g.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return g, kv
}

type brokenKV struct{}

func (brokenKV) Get(string) ([]byte, bool, error) { return nil, false, errors.New("locked") }
func (brokenKV) Put(string, []byte) error         { return errors.New("locked") }
func (brokenKV) Remove(string) error              { return errors.New("locked") }

func TestLoginRejectsMalformedEmail(t *testing.T) {
	g, _ := newGate(t)
	_, err := g.Login("bad-email", "abcdef")
	assert.ErrorIs(t, err, ErrInvalidEmail)
	assert.False(t, g.IsAuthenticated())

	_, err = g.Login("", "abcdef")
	assert.ErrorIs(t, err, ErrInvalidEmail)
}

func TestLoginRejectsShortPassword(t *testing.T) {
	g, _ := newGate(t)
	_, err := g.Login("a@b.com", "12345")
	assert.ErrorIs(t, err, ErrWeakPassword)
	assert.False(t, g.IsAuthenticated())
}

func TestLoginSucceeds(t *testing.T) {
	g, _ := newGate(t)
	sess, err := g.Login("a@b.com", "123456")
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", sess.Email)
	assert.Equal(t, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), sess.LoginTime)

	assert.True(t, g.IsAuthenticated())
	cur, ok := g.Current()
	require.True(t, ok)
	assert.Equal(t, sess.Email, cur.Email)
	assert.True(t, sess.LoginTime.Equal(cur.LoginTime))
}

func TestPasswordLengthCountsCharacters(t *testing.T) {
	g, _ := newGate(t)
	_, err := g.Login("a@b.com", "ééééé")
	assert.ErrorIs(t, err, ErrWeakPassword)
	_, err = g.Login("a@b.com", "éééééé")
	assert.NoError(t, err)
}

func TestLogoutClearsSession(t *testing.T) {
	g, _ := newGate(t)
	_, err := g.Login(DemoEmail, DemoPassword)
	require.NoError(t, err)

	g.Logout()
	assert.False(t, g.IsAuthenticated())
	g.Logout()
	assert.False(t, g.IsAuthenticated())
}

func TestMalformedSessionIsDiscarded(t *testing.T) {
	g, kv := newGate(t)
	require.NoError(t, kv.Put(storage.KeySession, []byte("{oops")))

	assert.False(t, g.IsAuthenticated())
	_, ok, err := kv.Get(storage.KeySession)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSessionSaveFailureIsReported(t *testing.T) {
	g := NewGate(brokenKV{})
	_, err := g.Login("a@b.com", "123456")
	assert.ErrorIs(t, err, ErrSessionSave)
	assert.False(t, g.IsAuthenticated())
	g.Logout()
}
