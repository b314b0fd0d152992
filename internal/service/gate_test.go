package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	apperrors "github.com/umalmyha/customer-records/internal/errors"
	"github.com/umalmyha/customer-records/internal/model"
	"github.com/umalmyha/customer-records/internal/repository"
	"github.com/umalmyha/customer-records/internal/validation"
)

type rejectionSpy struct {
	reasons []string
}

func (r *rejectionSpy) Rejected(reason string) {
	r.reasons = append(r.reasons, reason)
}

func newTestGate(t *testing.T, rps repository.CustomerRepository, strict bool) (*Gate, *rejectionSpy) {
	t.Helper()

	validate, err := validation.New("@gmail.com")
	require.NoError(t, err)

	spy := &rejectionSpy{}
	g := NewGate(rps, validate, spy, GateCfg{EmailSuffix: "@gmail.com", StrictUpdate: strict})
	g.now = func() time.Time { return time.Date(2022, 7, 1, 12, 0, 0, 0, time.UTC) }
	return g, spy
}

func seedCustomer(t *testing.T, rps repository.CustomerRepository, email string) *model.Customer {
	t.Helper()

	c := &model.Customer{
		FirstName: "Ann",
		LastName:  "Lee",
		Telephone: "555-1111",
		Email:     email,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	require.NoError(t, rps.Create(context.Background(), c))
	return c
}

func requireRejected(t *testing.T, err error, reason apperrors.Reason, msg string) {
	t.Helper()

	var bErr *apperrors.BusinessErr
	require.ErrorAs(t, err, &bErr, "business error expected, got %v", err)
	require.Equal(t, reason, bErr.Reason())
	require.Equal(t, msg, bErr.Error())
}

func TestValidateForCreate(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		payload model.NewCustomer
		reason  apperrors.Reason
		msg     string
	}{
		{
			name:    "email already in use wins over every other check",
			payload: model.NewCustomer{FirstName: "A1", LastName: "L3e", Email: "taken@gmail.com"},
			reason:  apperrors.ReasonEmailInUse,
			msg:     MsgEmailInUse,
		},
		{
			name:    "digit in first name",
			payload: model.NewCustomer{FirstName: "A1", LastName: "Lee", Telephone: "555", Email: "a@gmail.com"},
			reason:  apperrors.ReasonInvalidName,
			msg:     MsgInvalidName,
		},
		{
			name:    "punctuation in last name",
			payload: model.NewCustomer{FirstName: "Ann", LastName: "O'Neil", Telephone: "555", Email: "a@gmail.com"},
			reason:  apperrors.ReasonInvalidName,
			msg:     MsgInvalidName,
		},
		{
			name:    "empty first name",
			payload: model.NewCustomer{FirstName: "", LastName: "Lee", Telephone: "555", Email: "a@gmail.com"},
			reason:  apperrors.ReasonInvalidName,
			msg:     MsgInvalidName,
		},
		{
			name:    "suffix is case sensitive",
			payload: model.NewCustomer{FirstName: "Ann", LastName: "Lee", Telephone: "555", Email: "user@Gmail.com"},
			reason:  apperrors.ReasonInvalidEmailDomain,
			msg:     MsgInvalidEmailDomain + "@gmail.com",
		},
		{
			name:    "truncated suffix",
			payload: model.NewCustomer{FirstName: "Ann", LastName: "Lee", Telephone: "555", Email: "user@gmail.co"},
			reason:  apperrors.ReasonInvalidEmailDomain,
			msg:     MsgInvalidEmailDomain + "@gmail.com",
		},
		{
			name:    "suffix followed by another domain",
			payload: model.NewCustomer{FirstName: "Ann", LastName: "Lee", Telephone: "555", Email: "user@gmail.com.evil.com"},
			reason:  apperrors.ReasonInvalidEmailDomain,
			msg:     MsgInvalidEmailDomain + "@gmail.com",
		},
		{
			name:    "subdomain of suffix domain",
			payload: model.NewCustomer{FirstName: "Ann", LastName: "Lee", Telephone: "555", Email: "user@sub.gmail.com"},
			reason:  apperrors.ReasonInvalidEmailDomain,
			msg:     MsgInvalidEmailDomain + "@gmail.com",
		},
		{
			name:    "missing telephone",
			payload: model.NewCustomer{FirstName: "Ann", LastName: "Lee", Email: "ann@gmail.com"},
			reason:  apperrors.ReasonMissingFields,
			msg:     MsgMissingFields,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rps := repository.NewMemoryCustomerRepository()
			seedCustomer(t, rps, "taken@gmail.com")
			g, spy := newTestGate(t, rps, true)

			payload := tc.payload
			c, err := g.ValidateForCreate(ctx, &payload)
			require.Nil(t, c)
			requireRejected(t, err, tc.reason, tc.msg)
			require.Equal(t, []string{tc.reason.String()}, spy.reasons)
		})
	}
}

func TestValidateForCreateAccepted(t *testing.T) {
	ctx := context.Background()
	rps := repository.NewMemoryCustomerRepository()
	g, spy := newTestGate(t, rps, true)

	for _, email := range []string{"ann@gmail.com", "mary.ann@gmail.com"} {
		c, err := g.ValidateForCreate(ctx, &model.NewCustomer{
			FirstName: "Ann Marie",
			LastName:  "Lee",
			Telephone: "555-1111",
			Email:     email,
		})
		require.NoError(t, err)
		require.Equal(t, email, c.Email)
		require.Empty(t, c.ID, "identifier is assigned by storage")
		require.Equal(t, g.now(), c.CreatedAt)
		require.Equal(t, c.CreatedAt, c.UpdatedAt)
	}
	require.Empty(t, spy.reasons)
}

func TestValidateForUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("customer keeps its own email", func(t *testing.T) {
		rps := repository.NewMemoryCustomerRepository()
		self := seedCustomer(t, rps, "ann@gmail.com")
		g, _ := newTestGate(t, rps, true)

		c, err := g.ValidateForUpdate(ctx, self.ID, &model.NewCustomer{
			FirstName: "Anna",
			LastName:  "Lee",
			Telephone: "555-2222",
			Email:     "ann@gmail.com",
		})
		require.NoError(t, err)
		require.Equal(t, self.ID, c.ID)
		require.Equal(t, "Anna", c.FirstName)
		require.Equal(t, g.now(), c.UpdatedAt)
	})

	t.Run("email of another customer", func(t *testing.T) {
		rps := repository.NewMemoryCustomerRepository()
		self := seedCustomer(t, rps, "ann@gmail.com")
		seedCustomer(t, rps, "bob@gmail.com")
		g, _ := newTestGate(t, rps, true)

		_, err := g.ValidateForUpdate(ctx, self.ID, &model.NewCustomer{
			FirstName: "Ann",
			LastName:  "Lee",
			Telephone: "555-1111",
			Email:     "bob@gmail.com",
		})
		requireRejected(t, err, apperrors.ReasonEmailInUse, MsgEmailInUse)
	})

	t.Run("suffix is checked before uniqueness", func(t *testing.T) {
		rps := repository.NewMemoryCustomerRepository()
		self := seedCustomer(t, rps, "ann@gmail.com")
		seedCustomer(t, rps, "bob@yahoo.com")
		g, _ := newTestGate(t, rps, true)

		_, err := g.ValidateForUpdate(ctx, self.ID, &model.NewCustomer{
			FirstName: "Ann",
			LastName:  "Lee",
			Telephone: "555-1111",
			Email:     "bob@yahoo.com",
		})
		requireRejected(t, err, apperrors.ReasonInvalidEmailDomain, MsgInvalidEmailDomain+"@gmail.com")
	})

	t.Run("strict mode checks names and required fields", func(t *testing.T) {
		rps := repository.NewMemoryCustomerRepository()
		self := seedCustomer(t, rps, "ann@gmail.com")
		g, _ := newTestGate(t, rps, true)

		_, err := g.ValidateForUpdate(ctx, self.ID, &model.NewCustomer{
			FirstName: "Ann2",
			LastName:  "Lee",
			Telephone: "555-1111",
			Email:     "ann@gmail.com",
		})
		requireRejected(t, err, apperrors.ReasonInvalidName, MsgInvalidName)

		_, err = g.ValidateForUpdate(ctx, self.ID, &model.NewCustomer{
			FirstName: "Ann",
			LastName:  "Lee",
			Email:     "ann@gmail.com",
		})
		requireRejected(t, err, apperrors.ReasonMissingFields, MsgMissingFields)
	})

	t.Run("lenient mode skips names and required fields", func(t *testing.T) {
		rps := repository.NewMemoryCustomerRepository()
		self := seedCustomer(t, rps, "ann@gmail.com")
		g, spy := newTestGate(t, rps, false)

		c, err := g.ValidateForUpdate(ctx, self.ID, &model.NewCustomer{
			FirstName: "Ann2",
			Email:     "ann@gmail.com",
		})
		require.NoError(t, err)
		require.Equal(t, "Ann2", c.FirstName)
		require.Empty(t, spy.reasons)
	})
}

type failingRps struct {
	repository.CustomerRepository
	err error
}

func (r failingRps) FindByEmail(context.Context, string) (*model.Customer, error) {
	return nil, r.err
}

func TestGateStorageFailure(t *testing.T) {
	storeErr := errors.New("server selection timeout")
	g, spy := newTestGate(t, failingRps{err: storeErr}, true)

	_, err := g.ValidateForCreate(context.Background(), &model.NewCustomer{
		FirstName: "Ann",
		LastName:  "Lee",
		Telephone: "555",
		Email:     "ann@gmail.com",
	})
	require.ErrorIs(t, err, storeErr)

	var bErr *apperrors.BusinessErr
	require.False(t, errors.As(err, &bErr), "storage failure must not look like a rejection")
	require.Empty(t, spy.reasons)
}
