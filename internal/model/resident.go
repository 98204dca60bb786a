// Package model defines domain types for the barangay records registry.
package model

import (
	"strings"
	"time"
)

// Sex values accepted for residents.
const (
	SexMale   = "M"
	SexFemale = "F"
)

// Civil status values accepted for residents.
const (
	CivilSingle    = "single"
	CivilMarried   = "married"
	CivilWidowed   = "widowed"
	CivilSeparated = "separated"
)

// Resident is one person in the registry. Residents are never deleted; an
// archived resident's records drop out of every list.
type Resident struct {
	ID          string
	FirstName   string
	MiddleName  string
	LastName    string
	Suffix      string
	Sex         string
	Birthdate   time.Time
	CivilStatus string
	Address     string
	Contact     string
	Registered  time.Time
	Archived    bool
}

// DisplayName renders "Last, First M. Suffix".
func (r Resident) DisplayName() string {
	var b strings.Builder
	b.WriteString(r.LastName)
	if r.FirstName != "" {
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		b.WriteString(r.FirstName)
	}
	if r.MiddleName != "" {
		b.WriteString(" ")
		b.WriteString(strings.ToUpper(string([]rune(r.MiddleName)[:1])))
		b.WriteString(".")
	}
	if r.Suffix != "" {
		b.WriteString(" ")
		b.WriteString(r.Suffix)
	}
	return b.String()
}

// Age returns the resident's age in whole years at the given time.
func (r Resident) Age(at time.Time) int {
	if r.Birthdate.IsZero() {
		return 0
	}
	years := at.Year() - r.Birthdate.Year()
	if at.Month() < r.Birthdate.Month() ||
		(at.Month() == r.Birthdate.Month() && at.Day() < r.Birthdate.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// Business is a registered business establishment.
type Business struct {
	ID         string
	Name       string
	OwnerName  string
	Address    string
	Category   string
	Registered time.Time
	Archived   bool
}
