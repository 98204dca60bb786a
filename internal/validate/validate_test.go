package validate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/brgy/internal/model"
)

var now = time.Date(2024, time.August, 1, 0, 0, 0, 0, time.UTC)

func validResident() ResidentForm {
	return ResidentForm{
		FirstName:   "  juan  ",
		MiddleName:  "santos",
		LastName:    "dela   cruz",
		Sex:         "m",
		Birthdate:   "1990-06-15",
		CivilStatus: "Married",
		Address:     " Purok 3,  Sitio Ilaya ",
		Contact:     "0917 123 4567",
	}
}

func TestResidentValidNormalizes(t *testing.T) {
	r, errs := Resident(validResident(), now)
	require.Nil(t, errs)

	assert.Equal(t, "Juan", r.FirstName)
	assert.Equal(t, "Dela Cruz", r.LastName)
	assert.Equal(t, "M", r.Sex)
	assert.Equal(t, model.CivilMarried, r.CivilStatus)
	assert.Equal(t, "Purok 3, Sitio Ilaya", r.Address)
	assert.Equal(t, "09171234567", r.Contact)
	assert.Equal(t, time.Date(1990, time.June, 15, 0, 0, 0, 0, time.Local), r.Birthdate)
	assert.Equal(t, "Dela Cruz, Juan S.", r.DisplayName())
}

func TestResidentFieldErrors(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*ResidentForm)
		field string
	}{
		{"missing first name", func(f *ResidentForm) { f.FirstName = " " }, "first_name"},
		{"digits in name", func(f *ResidentForm) { f.LastName = "Cruz2" }, "last_name"},
		{"bad sex", func(f *ResidentForm) { f.Sex = "x" }, "sex"},
		{"bad date", func(f *ResidentForm) { f.Birthdate = "15/06/1990" }, "birthdate"},
		{"future birthdate", func(f *ResidentForm) { f.Birthdate = "2030-01-01" }, "birthdate"},
		{"bad civil status", func(f *ResidentForm) { f.CivilStatus = "complicated" }, "civil_status"},
		{"bad contact", func(f *ResidentForm) { f.Contact = "12345" }, "contact"},
		{"bad suffix", func(f *ResidentForm) { f.Suffix = "Esq" }, "suffix"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validResident()
			tt.edit(&f)
			_, errs := Resident(f, now)
			require.NotNil(t, errs)
			assert.Contains(t, errs, tt.field)
			assert.NotEmpty(t, errs[tt.field])
		})
	}
}

func TestResidentMessagesUseFormNames(t *testing.T) {
	f := validResident()
	f.FirstName = ""
	f.Contact = "555"
	_, errs := Resident(f, now)
	require.Len(t, errs, 2)
	assert.Contains(t, errs["first_name"], "first_name")
	assert.Contains(t, errs["contact"], "mobile number")
	assert.Contains(t, errs.Error(), "; ")
}

func TestBusiness(t *testing.T) {
	b, errs := Business(BusinessForm{
		Name:      " Aling Nena  Sari-Sari ",
		OwnerName: "nena santos",
		Address:   "Purok 1",
		Category:  "Retail",
	})
	require.Nil(t, errs)
	assert.Equal(t, "Aling Nena Sari-Sari", b.Name)
	assert.Equal(t, "Nena Santos", b.OwnerName)
	assert.Equal(t, "retail", b.Category)

	_, errs = Business(BusinessForm{Name: "X", OwnerName: "Y", Address: "Z", Category: "mining"})
	require.NotNil(t, errs)
	assert.Contains(t, errs, "category")
}

func TestIssueRequest(t *testing.T) {
	owner := "3f2504e0-4f89-41d3-9a0c-0305e82c3301"

	req, errs := IssueRequest(IssueForm{Kind: "id", OwnerID: owner})
	require.Nil(t, errs)
	assert.Equal(t, model.KindIDCard, req.Kind)

	req, errs = IssueRequest(IssueForm{Kind: "permit", OwnerID: owner, Purpose: " renewal "})
	require.Nil(t, errs)
	assert.Equal(t, model.KindBusiness, req.Kind)
	assert.Equal(t, "renewal", req.Purpose)

	_, errs = IssueRequest(IssueForm{Kind: "clearance", OwnerID: owner})
	require.NotNil(t, errs)
	assert.Contains(t, errs, "purpose")

	_, errs = IssueRequest(IssueForm{Kind: "resident", OwnerID: owner})
	require.NotNil(t, errs)
	assert.Contains(t, errs, "kind")

	_, errs = IssueRequest(IssueForm{Kind: "passport", OwnerID: "nope"})
	require.NotNil(t, errs)
	assert.Contains(t, errs, "kind")
	assert.Contains(t, errs, "owner_id")
}

func TestName(t *testing.T) {
	assert.Equal(t, "Ma. Luisa", Name("  ma.   luisa "))
	assert.Equal(t, "Dela Cruz", Name("dela cruz"))
	assert.Equal(t, "", Name("   "))
}
