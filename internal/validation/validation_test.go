package validation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPersonNameRule(t *testing.T) {
	v, err := New("@gmail.com")
	require.NoError(t, err, "failed to build validator")

	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{name: "single word", value: "Ann", valid: true},
		{name: "with spaces", value: "Mary Ann", valid: true},
		{name: "only space", value: " ", valid: true},
		{name: "empty", value: "", valid: false},
		{name: "digit", value: "A1", valid: false},
		{name: "punctuation", value: "O'Neil", valid: false},
		{name: "hyphen", value: "Lee-Smith", valid: false},
		{name: "non latin", value: "Łukasz", valid: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Var(tc.value, PersonNameTag)
			if tc.valid {
				require.NoError(t, err, "%q must be valid name", tc.value)
			} else {
				require.Error(t, err, "%q must be invalid name", tc.value)
			}
		})
	}
}

func TestEmailSuffixRule(t *testing.T) {
	v, err := New("@gmail.com")
	require.NoError(t, err, "failed to build validator")

	tests := []struct {
		value string
		valid bool
	}{
		{value: "ann@gmail.com", valid: true},
		{value: "user@sub.gmail.com", valid: false},
		{value: "user@sub@gmail.com", valid: true},
		{value: "user@Gmail.com", valid: false},
		{value: "user@gmail.co", valid: false},
		{value: "user@gmail.com.evil.com", valid: false},
		{value: "", valid: false},
	}

	for _, tc := range tests {
		err := v.Var(tc.value, EmailSuffixTag)
		if tc.valid {
			require.NoError(t, err, "%q must end with suffix", tc.value)
		} else {
			require.Error(t, err, "%q must not pass suffix check", tc.value)
		}
	}
}

func TestEchoValidatorPayloadError(t *testing.T) {
	v, err := New("@gmail.com")
	require.NoError(t, err)

	trans, err := EnglishTranslator(v)
	require.NoError(t, err, "failed to build translator")

	payload := struct {
		ID   string `json:"id" validate:"required,mongodb"`
		Page int    `query:"page" validate:"omitempty,min=1"`
	}{ID: "not-an-id", Page: -1}

	err = Echo(v, trans).Validate(&payload)
	require.Error(t, err)

	var pldErr *PayloadError
	require.ErrorAs(t, err, &pldErr, "error must be payload error")
	require.Equal(t, []Violation{
		{Field: "id", Rule: "mongodb", Message: "id must be a valid identifier"},
		{Field: "page", Rule: "min", Message: "page must be 1 or greater"},
	}, pldErr.Violations())
	require.Equal(t, "id must be a valid identifier; page must be 1 or greater", pldErr.Error())
}

func TestEchoValidatorValid(t *testing.T) {
	v, err := New("@gmail.com")
	require.NoError(t, err)

	trans, err := EnglishTranslator(v)
	require.NoError(t, err)

	payload := struct {
		ID string `json:"id" validate:"required,mongodb"`
	}{ID: "62b0f9a8c1d2e3f4a5b6c7d8"}
	require.NoError(t, Echo(v, trans).Validate(&payload))
}
