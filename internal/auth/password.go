// Package auth guards the application behind a single access password.
package auth

import (
	"errors"
	"fmt"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// Errors returned by password checks and the Gate.
var (
	ErrWrongPassword = errors.New("wrong password")
	ErrLocked        = errors.New("too many attempts, try again later")
	ErrNoPassword    = errors.New("no password set")
	ErrTooWeak       = errors.New("password too weak")
)

// HashPassword returns the bcrypt hash of pw.
func HashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compares pw with a hash from HashPassword.
func CheckPassword(hash, pw string) error {
	if hash == "" {
		return ErrNoPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrWrongPassword
		}
		return fmt.Errorf("checking password: %w", err)
	}
	return nil
}

// Level is a coarse password strength rating.
type Level int

const (
	Weak Level = iota
	Fair
	Good
	Strong
)

func (l Level) String() string {
	switch l {
	case Fair:
		return "fair"
	case Good:
		return "good"
	case Strong:
		return "strong"
	default:
		return "weak"
	}
}

// Score is the result of Strength.
type Score struct {
	Points int
	Level  Level
}

// Acceptable reports whether a password at this score may be set.
func (s Score) Acceptable() bool { return s.Level >= Fair }

// Strength rates pw: a point each for reaching 8 and 12 characters and for
// containing lowercase, uppercase, digits and symbols, minus a point for every
// run of three or more identical characters.
func Strength(pw string) Score {
	var (
		points                      int
		lower, upper, digit, symbol bool
		runes                       = []rune(pw)
	)
	if len(runes) >= 8 {
		points++
	}
	if len(runes) >= 12 {
		points++
	}
	for _, r := range runes {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case !unicode.IsSpace(r):
			symbol = true
		}
	}
	for _, has := range []bool{lower, upper, digit, symbol} {
		if has {
			points++
		}
	}

	run := 1
	for i := 1; i < len(runes); i++ {
		if runes[i] == runes[i-1] {
			run++
			if run == 3 {
				points--
			}
			continue
		}
		run = 1
	}
	if points < 0 {
		points = 0
	}

	var lvl Level
	switch {
	case len(runes) < 8 || points <= 2:
		lvl = Weak
	case points <= 3:
		lvl = Fair
	case points <= 4:
		lvl = Good
	default:
		lvl = Strong
	}
	return Score{Points: points, Level: lvl}
}
