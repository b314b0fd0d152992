package validation

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Tags of customer rules
const (
	PersonNameTag  = "personname"
	EmailSuffixTag = "emailsuffix"
)

// letters and spaces only, at least one
var personNameRegex = regexp.MustCompile(`^[a-zA-Z ]+$`)

// RegisterCustomerRules registers personname and emailsuffix rules.
// emailsuffix is a case-sensitive tail match against suffix.
func RegisterCustomerRules(v *validator.Validate, suffix string) error {
	if err := v.RegisterValidation(PersonNameTag, func(fl validator.FieldLevel) bool {
		return personNameRegex.MatchString(fl.Field().String())
	}); err != nil {
		return err
	}

	return v.RegisterValidation(EmailSuffixTag, func(fl validator.FieldLevel) bool {
		return strings.HasSuffix(fl.Field().String(), suffix)
	})
}

// New builds validator with customer rules registered.
// Violations are reported under json or query names of the fields.
func New(suffix string) (*validator.Validate, error) {
	v := validator.New()
	v.RegisterTagNameFunc(fieldName)
	if err := RegisterCustomerRules(v, suffix); err != nil {
		return nil, err
	}
	return v, nil
}

func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "query"} {
		if name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]; name != "" && name != "-" {
			return name
		}
	}
	return ""
}
