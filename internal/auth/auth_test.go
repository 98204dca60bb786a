package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testHash(t *testing.T, pw string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestHashAndCheck(t *testing.T) {
	hash, err := HashPassword("Kapitan#2024")
	require.NoError(t, err)

	assert.NoError(t, CheckPassword(hash, "Kapitan#2024"))
	assert.ErrorIs(t, CheckPassword(hash, "kapitan#2024"), ErrWrongPassword)
	assert.ErrorIs(t, CheckPassword("", "x"), ErrNoPassword)
}

func TestStrength(t *testing.T) {
	tests := []struct {
		pw   string
		want Level
	}{
		{"", Weak},
		{"abc", Weak},
		{"Ab1!", Weak},
		{"password", Weak},
		{"password1", Fair},
		{"Password1", Good},
		{"Password1!", Strong},
		{"Barangay#2024x", Strong},
		{"aaaaaaaA1!", Good},
	}
	for _, tt := range tests {
		t.Run(tt.pw, func(t *testing.T) {
			assert.Equal(t, tt.want, Strength(tt.pw).Level)
		})
	}
	assert.False(t, Strength("abc").Acceptable())
	assert.True(t, Strength("Password1").Acceptable())
}

func TestGateUnlockAndIdle(t *testing.T) {
	now := time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)
	g := NewGate(testHash(t, "secret-pass"), 5*time.Minute, 3, time.Minute)

	assert.True(t, g.Locked(now))
	require.NoError(t, g.Unlock("secret-pass", now))
	assert.False(t, g.Locked(now))

	g.Touch(now.Add(4 * time.Minute))
	assert.False(t, g.Locked(now.Add(8*time.Minute)))
	assert.True(t, g.Locked(now.Add(9*time.Minute)))

	// touching while locked does not unlock
	g.Touch(now.Add(10 * time.Minute))
	assert.True(t, g.Locked(now.Add(10*time.Minute)))
}

func TestGateCooldownAfterFailures(t *testing.T) {
	now := time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)
	g := NewGate(testHash(t, "secret-pass"), 0, 3, time.Minute)

	assert.ErrorIs(t, g.Unlock("a", now), ErrWrongPassword)
	assert.ErrorIs(t, g.Unlock("b", now), ErrWrongPassword)
	assert.Equal(t, 1, g.Remaining())
	assert.ErrorIs(t, g.Unlock("c", now), ErrLocked)

	frozen, until := g.Frozen(now)
	assert.True(t, frozen)
	assert.Equal(t, now.Add(time.Minute), until)

	assert.ErrorIs(t, g.Unlock("secret-pass", now.Add(30*time.Second)), ErrLocked)
	require.NoError(t, g.Unlock("secret-pass", now.Add(time.Minute)))
	assert.False(t, g.Locked(now.Add(24*time.Hour)))
	assert.Equal(t, 3, g.Remaining())
}

func TestGateWithoutPassword(t *testing.T) {
	g := NewGate("", time.Second, 3, time.Second)
	now := time.Now()
	assert.False(t, g.Locked(now))
	assert.False(t, g.Locked(now.Add(time.Hour)))
	assert.NoError(t, g.Unlock("", now))
}

func TestGateManualLock(t *testing.T) {
	now := time.Now()
	g := NewGate(testHash(t, "pw-pw-pw"), 0, 3, 0)
	require.NoError(t, g.Unlock("pw-pw-pw", now))
	g.Lock()
	assert.True(t, g.Locked(now))
}

func TestGateSetHash(t *testing.T) {
	now := time.Now()
	g := NewGate("", time.Minute, 3, time.Minute)
	require.False(t, g.Locked(now))

	g.SetHash(testHash(t, "bagong-pass"), now)
	assert.False(t, g.Locked(now), "setting a hash keeps an open gate open")
	g.Lock()
	assert.True(t, g.Locked(now))
	require.NoError(t, g.Unlock("bagong-pass", now))

	g.SetHash("", now)
	g.Lock()
	assert.False(t, g.Locked(now))
}
