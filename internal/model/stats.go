package model

import "time"

// RegistryStats holds the top-level counts shown by the summary command.
type RegistryStats struct {
	Residents         int
	ArchivedResidents int
	Businesses        int
	IDCards           int
	Clearances        int
}

// MonthlyStats holds issuance counts for a single calendar month.
type MonthlyStats struct {
	Month      time.Time // midnight on the first of the month, local time
	Residents  int
	IDCards    int
	Clearances int
	Businesses int
}

// Total sums every kind.
func (m MonthlyStats) Total() int {
	return m.Residents + m.IDCards + m.Clearances + m.Businesses
}

// Add counts one record of the given kind.
func (m *MonthlyStats) Add(k Kind) {
	switch k {
	case KindResident:
		m.Residents++
	case KindIDCard:
		m.IDCards++
	case KindClearance:
		m.Clearances++
	case KindBusiness:
		m.Businesses++
	}
}
