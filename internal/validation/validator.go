package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/labstack/echo/v4"
)

// Violation is a single failed rule of request payload
type Violation struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// PayloadError is raised when request payload, path or query breaks validation rules
type PayloadError struct {
	violations []Violation
}

func (e *PayloadError) Error() string {
	msgs := make([]string, 0, len(e.violations))
	for _, v := range e.violations {
		msgs = append(msgs, v.Message)
	}
	return strings.Join(msgs, "; ")
}

// Violations returns failed rules
func (e *PayloadError) Violations() []Violation {
	return e.violations
}

// MarshalJSON implements json.Marshaler
func (e *PayloadError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Errors []Violation `json:"errors"`
	}{
		Errors: e.violations,
	})
}

// EchoValidator plugs go-playground validator into echo
type EchoValidator struct {
	validate *validator.Validate
	trans    ut.Translator
}

// Echo builds new EchoValidator
func Echo(validate *validator.Validate, trans ut.Translator) *EchoValidator {
	return &EchoValidator{
		validate: validate,
		trans:    trans,
	}
}

// Validate implements echo.Validator
func (v *EchoValidator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error()).SetInternal(err)
	}

	pldErr := &PayloadError{violations: make([]Violation, 0, len(ve))}
	for _, fe := range ve {
		pldErr.violations = append(pldErr.violations, Violation{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: fe.Translate(v.trans),
		})
	}
	return pldErr
}

// EnglishTranslator builds en translator for default and customer rules
func EnglishTranslator(validate *validator.Validate) (ut.Translator, error) {
	enLocale := en.New()
	trans, ok := ut.New(enLocale, enLocale).GetTranslator("en")
	if !ok {
		return nil, errors.New("en translator is not registered")
	}

	if err := entranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, fmt.Errorf("failed to register default translations - %w", err)
	}

	custom := map[string]string{
		PersonNameTag:  "{0} must contain only letters and spaces",
		EmailSuffixTag: "{0} has unsupported domain",
		"mongodb":      "{0} must be a valid identifier",
	}
	for tag, text := range custom {
		if err := registerTranslation(validate, trans, tag, text); err != nil {
			return nil, err
		}
	}
	return trans, nil
}

func registerTranslation(validate *validator.Validate, trans ut.Translator, tag string, text string) error {
	register := func(ut ut.Translator) error {
		return ut.Add(tag, text, true)
	}

	translate := func(ut ut.Translator, fe validator.FieldError) string {
		msg, err := ut.T(tag, fe.Field())
		if err != nil {
			return fe.Error()
		}
		return msg
	}

	if err := validate.RegisterTranslation(tag, trans, register, translate); err != nil {
		return fmt.Errorf("failed to register %s translation - %w", tag, err)
	}
	return nil
}
