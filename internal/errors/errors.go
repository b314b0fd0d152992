package errors

import (
	"encoding/json"
)

// Reason tells why write was rejected
type Reason int

const (
	// ReasonEmailInUse means email belongs to another customer
	ReasonEmailInUse Reason = iota + 1
	// ReasonInvalidName means first or last name has wrong format
	ReasonInvalidName
	// ReasonInvalidEmailDomain means email doesn't end with allowed suffix
	ReasonInvalidEmailDomain
	// ReasonMissingFields means some of required fields are empty
	ReasonMissingFields
)

func (r Reason) String() string {
	switch r {
	case ReasonEmailInUse:
		return "email_in_use"
	case ReasonInvalidName:
		return "invalid_name"
	case ReasonInvalidEmailDomain:
		return "invalid_email_domain"
	case ReasonMissingFields:
		return "missing_fields"
	default:
		return "unknown"
	}
}

// BusinessErr is expected rejection which must be reported to the user as is
type BusinessErr struct {
	reason  Reason
	target  string
	message string
}

func (e *BusinessErr) Error() string {
	return e.message
}

// Reason returns rejection reason
func (e *BusinessErr) Reason() Reason {
	return e.reason
}

// Target returns name of the rejected field
func (e *BusinessErr) Target() string {
	return e.target
}

// MarshalJSON implements json.Marshaler
func (e *BusinessErr) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Reason  string `json:"reason"`
		Target  string `json:"target"`
		Message string `json:"message"`
	}{Reason: e.reason.String(), Target: e.target, Message: e.message})
}

// NewBusinessErr builds new BusinessErr
func NewBusinessErr(reason Reason, target string, msg string) *BusinessErr {
	return &BusinessErr{
		reason:  reason,
		target:  target,
		message: msg,
	}
}

// EntryNotFoundErr is raised when requested entry is missing
type EntryNotFoundErr struct {
	message string
}

func (e *EntryNotFoundErr) Error() string {
	return e.message
}

// NewEntryNotFoundErr builds new EntryNotFoundErr
func NewEntryNotFoundErr(msg string) *EntryNotFoundErr {
	return &EntryNotFoundErr{message: msg}
}
