// Package auth is a format gate in front of the dashboard. It checks the
// shape of the credentials and records a session; it does not verify
// identity against anything.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/nissyi-gh/taskdeck/internal/storage"
)

// MinPasswordLength is the shortest password the gate accepts.
const MinPasswordLength = 6

// Demo credentials shown on the login screen.
const (
	DemoEmail    = "demo@taskmanager.com"
	DemoPassword = "demo123"
)

var (
	ErrInvalidEmail = errors.New("please enter a valid email address")
	ErrWeakPassword = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	ErrSessionSave  = errors.New("failed to save session")
)

// Session is the record kept for the lifetime of the process.
type Session struct {
	Email     string    `json:"email"`
	LoginTime time.Time `json:"loginTime"`
}

// Gate admits users whose credentials are well formed.
type Gate struct {
	kv  storage.KV
	now func() time.Time
}

// NewGate returns a Gate that keeps its session record in kv. kv should be
// session scoped (see storage.OpenSession).
func NewGate(kv storage.KV) *Gate {
	return &Gate{kv: kv, now: time.Now}
}

// Login validates the credential shape and records a session.
func (g *Gate) Login(email, password string) (Session, error) {
	if !strings.Contains(email, "@") {
		return Session{}, ErrInvalidEmail
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return Session{}, ErrWeakPassword
	}

	sess := Session{Email: email, LoginTime: g.now().UTC()}
	data, err := json.Marshal(sess)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrSessionSave, err)
	}
	if err := g.kv.Put(storage.KeySession, data); err != nil {
		log.Printf("[auth] save session: %v", err)
		return Session{}, fmt.Errorf("%w: %v", ErrSessionSave, err)
	}
	log.Printf("[auth] %s logged in", email)
	return sess, nil
}

// Logout clears the session record.
func (g *Gate) Logout() {
	if err := g.kv.Remove(storage.KeySession); err != nil {
		log.Printf("[auth] clear session: %v", err)
		return
	}
	log.Printf("[auth] logged out")
}

// Current loads the session record. A record that fails to decode is removed
// and reported as absent.
func (g *Gate) Current() (Session, bool) {
	data, ok, err := g.kv.Get(storage.KeySession)
	if err != nil {
		log.Printf("[auth] load session: %v", err)
		return Session{}, false
	}
	if !ok {
		return Session{}, false
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil || sess.Email == "" {
		log.Printf("[auth] discarding malformed session")
		if err := g.kv.Remove(storage.KeySession); err != nil {
			log.Printf("[auth] clear session: %v", err)
		}
		return Session{}, false
	}
	return sess, true
}

// IsAuthenticated reports whether a session record is currently loadable.
func (g *Gate) IsAuthenticated() bool {
	_, ok := g.Current()
	return ok
}
