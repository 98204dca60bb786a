// Package validate checks and normalizes the resident, business and issuance
// forms before they reach the store.
package validate

import (
	"errors"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	validate   *validator.Validate
	translator ut.Translator

	personNameTag   = "personname"
	personNameText  = "{0} may only contain letters, spaces, hyphens, periods and apostrophes"
	personNameRegex = regexp.MustCompile(`^[\p{L}][\p{L} .'\-]*$`)

	mobileTag   = "phmobile"
	mobileText  = "{0} must be a mobile number like 09171234567 or +639171234567"
	mobileRegex = regexp.MustCompile(`^(09|\+639)\d{9}$`)
)

func init() {
	validate = validator.New()

	english := en.New()
	uni := ut.New(english, english)
	translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Report form field names instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(personNameTag, func(fl validator.FieldLevel) bool {
		return personNameRegex.MatchString(fl.Field().String())
	})
	registerTranslation(personNameTag, personNameText)

	_ = validate.RegisterValidation(mobileTag, func(fl validator.FieldLevel) bool {
		return mobileRegex.MatchString(fl.Field().String())
	})
	registerTranslation(mobileTag, mobileText)
}

func registerTranslation(tag, text string) {
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, false) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// Errors maps form field names to messages. A nil Errors means the form is
// valid.
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	msgs := make([]string, len(fields))
	for i, f := range fields {
		msgs[i] = e[f]
	}
	return strings.Join(msgs, "; ")
}

// Add records msg for field unless the field already has an error.
func (e Errors) Add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

func (e Errors) orNil() Errors {
	if len(e) == 0 {
		return nil
	}
	return e
}

// check runs the struct tags on form and collects translated messages.
func check(form any) Errors {
	errs := make(Errors)
	if err := validate.Struct(form); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			errs.Add("general", err.Error())
			return errs
		}
		for _, fe := range verrs {
			errs.Add(fe.Field(), fe.Translate(translator))
		}
	}
	return errs
}

// Name collapses whitespace and title-cases a person or business name.
func Name(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return cases.Title(language.Und, cases.NoLower).String(s)
}

// Text collapses whitespace in free text.
func Text(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
