package model

import (
	"testing"
	"time"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		r    Resident
		want string
	}{
		{Resident{FirstName: "Juan", MiddleName: "santos", LastName: "Dela Cruz"}, "Dela Cruz, Juan S."},
		{Resident{FirstName: "Maria", LastName: "Reyes", Suffix: "Jr."}, "Reyes, Maria Jr."},
		{Resident{FirstName: "Pedro"}, "Pedro"},
		{Resident{LastName: "Bautista"}, "Bautista"},
	}
	for _, tt := range tests {
		if got := tt.r.DisplayName(); got != tt.want {
			t.Errorf("DisplayName() = %q, want %q", got, tt.want)
		}
	}
}

func TestAge(t *testing.T) {
	r := Resident{Birthdate: time.Date(1990, time.June, 15, 0, 0, 0, 0, time.UTC)}

	if got := r.Age(time.Date(2024, time.June, 14, 0, 0, 0, 0, time.UTC)); got != 33 {
		t.Errorf("Age before birthday = %d, want 33", got)
	}
	if got := r.Age(time.Date(2024, time.June, 16, 0, 0, 0, 0, time.UTC)); got != 34 {
		t.Errorf("Age after birthday = %d, want 34", got)
	}
	if got := (Resident{}).Age(time.Now()); got != 0 {
		t.Errorf("Age without birthdate = %d, want 0", got)
	}
}

func TestParseKindRoundTrip(t *testing.T) {
	for _, k := range Kinds {
		got, err := ParseKind(k.String())
		if err != nil {
			t.Fatalf("ParseKind(%q): %v", k.String(), err)
		}
		if got != k {
			t.Errorf("ParseKind(%q) = %v, want %v", k.String(), got, k)
		}
	}
	if _, err := ParseKind("permit slip"); err == nil {
		t.Error("ParseKind should reject unknown names")
	}
}

func TestMonthlyStatsAdd(t *testing.T) {
	var m MonthlyStats
	m.Add(KindResident)
	m.Add(KindIDCard)
	m.Add(KindIDCard)
	m.Add(KindClearance)
	if m.IDCards != 2 || m.Total() != 4 {
		t.Errorf("got %+v (total %d), want 2 ids and total 4", m, m.Total())
	}
}
