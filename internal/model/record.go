package model

import (
	"fmt"
	"strings"
	"time"
)

// Kind tags the variant of a Record.
type Kind int

const (
	KindResident  Kind = iota // registration of a resident
	KindIDCard                // barangay ID card issued to a resident
	KindClearance             // clearance/certificate issued to a resident
	KindBusiness              // registration of a business
)

// NumKinds is the number of record kinds.
const NumKinds = int(KindBusiness) + 1

// Kinds lists every record kind in display order.
var Kinds = []Kind{KindResident, KindIDCard, KindClearance, KindBusiness}

func (k Kind) String() string {
	switch k {
	case KindResident:
		return "resident"
	case KindIDCard:
		return "id"
	case KindClearance:
		return "clearance"
	case KindBusiness:
		return "business"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Title is the plural heading used for lists of the kind.
func (k Kind) Title() string {
	switch k {
	case KindResident:
		return "Residents"
	case KindIDCard:
		return "Barangay IDs"
	case KindClearance:
		return "Clearances"
	case KindBusiness:
		return "Businesses"
	default:
		return k.String()
	}
}

// OwnedByBusiness reports whether records of this kind belong to a business
// rather than a resident.
func (k Kind) OwnedByBusiness() bool { return k == KindBusiness }

// ParseKind maps a name (as produced by String) back to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "resident", "residents":
		return KindResident, nil
	case "id", "ids", "idcard":
		return KindIDCard, nil
	case "clearance", "clearances", "certificate":
		return KindClearance, nil
	case "business", "businesses", "permit":
		return KindBusiness, nil
	}
	return 0, fmt.Errorf("unknown record kind %q", s)
}

// Record is one dated entry in a registry list. Records are immutable once
// issued.
type Record struct {
	Kind    Kind
	ID      string
	OwnerID string
	Issued  time.Time
	Purpose string
}

// ListItem is a record together with the owner name shown for it.
type ListItem struct {
	Record
	DisplayName string
}

// IssuedAt returns the issue date.
func (it ListItem) IssuedAt() time.Time { return it.Issued }

// Label returns the display name.
func (it ListItem) Label() string { return it.DisplayName }

// Key returns the record id.
func (it ListItem) Key() string { return it.ID }
