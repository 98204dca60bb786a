package validate

import (
	"strings"
	"time"

	"github.com/theirongolddev/brgy/internal/model"
)

// DateLayout is the accepted birthdate format.
const DateLayout = "2006-01-02"

// ResidentForm is the raw input for registering a resident.
type ResidentForm struct {
	FirstName   string `form:"first_name" validate:"required,max=60,personname"`
	MiddleName  string `form:"middle_name" validate:"omitempty,max=60,personname"`
	LastName    string `form:"last_name" validate:"required,max=60,personname"`
	Suffix      string `form:"suffix" validate:"omitempty,oneof=Jr. Sr. II III IV"`
	Sex         string `form:"sex" validate:"required,oneof=M F"`
	Birthdate   string `form:"birthdate" validate:"required,datetime=2006-01-02"`
	CivilStatus string `form:"civil_status" validate:"required,oneof=single married widowed separated"`
	Address     string `form:"address" validate:"required,max=200"`
	Contact     string `form:"contact" validate:"omitempty,phmobile"`
}

// Resident validates f and returns the normalized resident. now bounds the
// birthdate.
func Resident(f ResidentForm, now time.Time) (model.Resident, Errors) {
	f.FirstName = Name(f.FirstName)
	f.MiddleName = Name(f.MiddleName)
	f.LastName = Name(f.LastName)
	f.Suffix = strings.TrimSpace(f.Suffix)
	f.Sex = strings.ToUpper(strings.TrimSpace(f.Sex))
	f.Birthdate = strings.TrimSpace(f.Birthdate)
	f.CivilStatus = strings.ToLower(strings.TrimSpace(f.CivilStatus))
	f.Address = Text(f.Address)
	f.Contact = strings.ReplaceAll(strings.TrimSpace(f.Contact), " ", "")

	errs := check(f)

	var birth time.Time
	if _, bad := errs["birthdate"]; !bad {
		birth, _ = time.ParseInLocation(DateLayout, f.Birthdate, time.Local)
		if birth.After(now) {
			errs.Add("birthdate", "birthdate cannot be in the future")
		}
	}

	return model.Resident{
		FirstName:   f.FirstName,
		MiddleName:  f.MiddleName,
		LastName:    f.LastName,
		Suffix:      f.Suffix,
		Sex:         f.Sex,
		Birthdate:   birth,
		CivilStatus: f.CivilStatus,
		Address:     f.Address,
		Contact:     f.Contact,
	}, errs.orNil()
}

// Business categories.
var Categories = []string{"retail", "food", "services", "manufacturing", "other"}

// BusinessForm is the raw input for registering a business.
type BusinessForm struct {
	Name      string `form:"name" validate:"required,max=100"`
	OwnerName string `form:"owner_name" validate:"required,max=120,personname"`
	Address   string `form:"address" validate:"required,max=200"`
	Category  string `form:"category" validate:"required,oneof=retail food services manufacturing other"`
}

// Business validates f and returns the normalized business.
func Business(f BusinessForm) (model.Business, Errors) {
	f.Name = Text(f.Name)
	f.OwnerName = Name(f.OwnerName)
	f.Address = Text(f.Address)
	f.Category = strings.ToLower(strings.TrimSpace(f.Category))

	errs := check(f)
	return model.Business{
		Name:      f.Name,
		OwnerName: f.OwnerName,
		Address:   f.Address,
		Category:  f.Category,
	}, errs.orNil()
}

// IssueForm is the raw input for issuing an ID, clearance or permit.
type IssueForm struct {
	Kind    string `form:"kind" validate:"required"`
	OwnerID string `form:"owner_id" validate:"required,uuid4"`
	Purpose string `form:"purpose" validate:"required_if=Kind clearance,max=200"`
}

// Issue is a validated issuance request.
type Issue struct {
	Kind    model.Kind
	OwnerID string
	Purpose string
}

// IssueRequest validates f. Registration records cannot be issued.
func IssueRequest(f IssueForm) (Issue, Errors) {
	f.OwnerID = strings.ToLower(strings.TrimSpace(f.OwnerID))
	f.Purpose = Text(f.Purpose)

	kind, kindErr := model.ParseKind(f.Kind)
	if kindErr == nil {
		// canonical name so required_if sees "clearance"
		f.Kind = kind.String()
	}

	errs := check(f)
	switch {
	case kindErr != nil && f.Kind != "":
		errs.Add("kind", "kind must be id, clearance or permit")
	case kindErr == nil && kind == model.KindResident:
		errs.Add("kind", "residents are registered, not issued")
	}
	return Issue{Kind: kind, OwnerID: f.OwnerID, Purpose: f.Purpose}, errs.orNil()
}
