package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	apperrors "github.com/umalmyha/customer-records/internal/errors"
	"github.com/umalmyha/customer-records/internal/metrics"
	"github.com/umalmyha/customer-records/internal/model"
	"github.com/umalmyha/customer-records/internal/repository"
	"github.com/umalmyha/customer-records/internal/validation"
)

// Rejection messages shown to the user
const (
	MsgEmailInUse         = "Email address is already in use"
	MsgInvalidName        = "First name and last name must be non-empty strings without numbers"
	MsgInvalidEmailDomain = "Email address must end with "
	MsgMissingFields      = "All fields are required"
)

// GateCfg contains customer write rules
type GateCfg struct {
	EmailSuffix string
	// StrictUpdate applies name and required fields checks on update as well
	StrictUpdate bool
}

// Gate decides whether customer payload may be written.
// Checks run in fixed order, the first failing one is reported.
type Gate struct {
	customerRps repository.CustomerRepository
	validate    *validator.Validate
	recorder    metrics.RejectionRecorder
	cfg         GateCfg
	now         func() time.Time
}

// NewGate builds new Gate. validate must have customer rules registered.
func NewGate(customerRps repository.CustomerRepository, validate *validator.Validate, recorder metrics.RejectionRecorder, cfg GateCfg) *Gate {
	return &Gate{
		customerRps: customerRps,
		validate:    validate,
		recorder:    recorder,
		cfg:         cfg,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// ValidateForCreate checks email uniqueness, name format, email suffix and required fields
func (g *Gate) ValidateForCreate(ctx context.Context, nc *model.NewCustomer) (*model.Customer, error) {
	existing, err := g.customerRps.FindByEmail(ctx, nc.Email)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		return nil, g.reject(apperrors.ReasonEmailInUse, "email", MsgEmailInUse)
	}

	if err := g.checkNames(nc); err != nil {
		return nil, err
	}

	if err := g.checkEmailSuffix(nc); err != nil {
		return nil, err
	}

	if err := g.checkRequired(nc); err != nil {
		return nil, err
	}

	now := g.now()
	return &model.Customer{
		FirstName: nc.FirstName,
		LastName:  nc.LastName,
		Telephone: nc.Telephone,
		Email:     nc.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// ValidateForUpdate checks email suffix and uniqueness excluding customer itself.
// Name and required fields are checked only in strict mode.
func (g *Gate) ValidateForUpdate(ctx context.Context, id string, nc *model.NewCustomer) (*model.Customer, error) {
	if err := g.checkEmailSuffix(nc); err != nil {
		return nil, err
	}

	existing, err := g.customerRps.FindByEmail(ctx, nc.Email)
	if err != nil {
		return nil, err
	}

	if existing != nil && existing.ID != id {
		return nil, g.reject(apperrors.ReasonEmailInUse, "email", MsgEmailInUse)
	}

	if g.cfg.StrictUpdate {
		if err := g.checkNames(nc); err != nil {
			return nil, err
		}

		if err := g.checkRequired(nc); err != nil {
			return nil, err
		}
	}

	return &model.Customer{
		ID:        id,
		FirstName: nc.FirstName,
		LastName:  nc.LastName,
		Telephone: nc.Telephone,
		Email:     nc.Email,
		UpdatedAt: g.now(),
	}, nil
}

func (g *Gate) checkNames(nc *model.NewCustomer) error {
	if g.validate.Var(nc.FirstName, validation.PersonNameTag) != nil {
		return g.reject(apperrors.ReasonInvalidName, "firstName", MsgInvalidName)
	}

	if g.validate.Var(nc.LastName, validation.PersonNameTag) != nil {
		return g.reject(apperrors.ReasonInvalidName, "lastName", MsgInvalidName)
	}
	return nil
}

func (g *Gate) checkEmailSuffix(nc *model.NewCustomer) error {
	if g.validate.Var(nc.Email, validation.EmailSuffixTag) != nil {
		return g.reject(apperrors.ReasonInvalidEmailDomain, "email", MsgInvalidEmailDomain+g.cfg.EmailSuffix)
	}
	return nil
}

func (g *Gate) checkRequired(nc *model.NewCustomer) error {
	fields := []struct {
		name  string
		value string
	}{
		{name: "firstName", value: nc.FirstName},
		{name: "lastName", value: nc.LastName},
		{name: "telephone", value: nc.Telephone},
		{name: "email", value: nc.Email},
	}

	for _, f := range fields {
		if g.validate.Var(f.value, "required") != nil {
			return g.reject(apperrors.ReasonMissingFields, f.name, MsgMissingFields)
		}
	}
	return nil
}

func (g *Gate) reject(reason apperrors.Reason, target string, msg string) error {
	g.recorder.Rejected(reason.String())
	return apperrors.NewBusinessErr(reason, target, msg)
}
