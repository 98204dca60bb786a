package auth

import (
	"sync"
	"time"
)

// Gate tracks whether the application is unlocked. It locks after
// IdleTimeout without activity and refuses attempts for Cooldown after
// MaxAttempts consecutive failures. A zero IdleTimeout never idles out.
type Gate struct {
	Hash        string
	IdleTimeout time.Duration
	MaxAttempts int
	Cooldown    time.Duration

	mu           sync.Mutex
	unlocked     bool
	lastActivity time.Time
	failures     int
	frozenUntil  time.Time
}

// NewGate returns a locked gate. With an empty hash the gate starts unlocked
// and never locks.
func NewGate(hash string, idle time.Duration, maxAttempts int, cooldown time.Duration) *Gate {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	return &Gate{
		Hash:        hash,
		IdleTimeout: idle,
		MaxAttempts: maxAttempts,
		Cooldown:    cooldown,
		unlocked:    hash == "",
	}
}

// Unlock checks pw and unlocks the gate on success.
func (g *Gate) Unlock(pw string, now time.Time) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Hash == "" {
		g.unlocked = true
		g.lastActivity = now
		return nil
	}
	if now.Before(g.frozenUntil) {
		return ErrLocked
	}
	if err := CheckPassword(g.Hash, pw); err != nil {
		g.failures++
		if g.failures >= g.MaxAttempts {
			g.failures = 0
			g.frozenUntil = now.Add(g.Cooldown)
			return ErrLocked
		}
		return err
	}
	g.failures = 0
	g.unlocked = true
	g.lastActivity = now
	return nil
}

// SetHash replaces the password hash and counts now as activity. An open
// gate stays open; an empty hash unlocks it for good.
func (g *Gate) SetHash(hash string, now time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Hash = hash
	g.failures = 0
	g.lastActivity = now
	if hash == "" {
		g.unlocked = true
	}
}

// Touch records activity, postponing the idle lock. It does nothing while
// locked.
func (g *Gate) Touch(now time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.unlocked && !g.idleLocked(now) {
		g.lastActivity = now
	}
}

// Lock locks the gate immediately.
func (g *Gate) Lock() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.unlocked = false
}

// Locked reports whether a password is required at now.
func (g *Gate) Locked(now time.Time) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Hash == "" {
		return false
	}
	if g.unlocked && g.idleLocked(now) {
		g.unlocked = false
	}
	return !g.unlocked
}

// Frozen reports whether attempts are refused at now, and until when.
func (g *Gate) Frozen(now time.Time) (bool, time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return now.Before(g.frozenUntil), g.frozenUntil
}

// Remaining returns how many failed attempts are left before a cooldown.
func (g *Gate) Remaining() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.MaxAttempts - g.failures
}

func (g *Gate) idleLocked(now time.Time) bool {
	return g.IdleTimeout > 0 && now.Sub(g.lastActivity) >= g.IdleTimeout
}
