package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"

	"github.com/sirupsen/logrus"
	"github.com/umalmyha/customer-records/internal/cache"
	apperrors "github.com/umalmyha/customer-records/internal/errors"
	"github.com/umalmyha/customer-records/internal/model"
	"github.com/umalmyha/customer-records/internal/repository"
)

var searchTermSanitizer = regexp.MustCompile(`[^a-zA-Z0-9 ]`)

// CustomerService represents behavior of customer service
type CustomerService interface {
	FindPage(context.Context, int) (*model.CustomerPage, error)
	FindByID(context.Context, string) (*model.Customer, error)
	Search(context.Context, string) ([]*model.Customer, error)
	Create(context.Context, *model.NewCustomer) (*model.Customer, error)
	Update(context.Context, string, *model.NewCustomer) (*model.Customer, error)
	DeleteByID(context.Context, string) error
}

type customerService struct {
	customerRps   repository.CustomerRepository
	customerCache cache.CustomerCacheRepository
	gate          *Gate
	pageSize      int
}

// NewCustomerService builds customer service
func NewCustomerService(
	customerRps repository.CustomerRepository,
	customerCache cache.CustomerCacheRepository,
	gate *Gate,
	pageSize int,
) CustomerService {
	return &customerService{
		customerRps:   customerRps,
		customerCache: customerCache,
		gate:          gate,
		pageSize:      pageSize,
	}
}

func (s *customerService) FindPage(ctx context.Context, page int) (*model.CustomerPage, error) {
	if page < 1 {
		page = 1
	}

	count, err := s.customerRps.Count(ctx)
	if err != nil {
		return nil, err
	}

	perPage := int64(s.pageSize)
	pages := int((count + perPage - 1) / perPage)

	// skip would overflow, such page is past the end anyway
	if int64(page) > math.MaxInt64/perPage {
		return &model.CustomerPage{
			Customers: make([]*model.Customer, 0),
			Current:   page,
			Pages:     pages,
		}, nil
	}
	skip := perPage*int64(page) - perPage

	customers, err := s.customerRps.FindPage(ctx, skip, perPage)
	if err != nil {
		return nil, err
	}

	return &model.CustomerPage{
		Customers: customers,
		Current:   page,
		Pages:     pages,
	}, nil
}

func (s *customerService) FindByID(ctx context.Context, id string) (*model.Customer, error) {
	c, err := s.customerCache.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if c != nil {
		return c, nil
	}

	c, err = s.customerRps.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if c == nil {
		return nil, apperrors.NewEntryNotFoundErr(fmt.Sprintf("customer with id %s doesn't exist", id))
	}

	if err := s.customerCache.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *customerService) Search(ctx context.Context, term string) ([]*model.Customer, error) {
	return s.customerRps.Search(ctx, searchTermSanitizer.ReplaceAllString(term, ""))
}

func (s *customerService) Create(ctx context.Context, nc *model.NewCustomer) (*model.Customer, error) {
	c, err := s.gate.ValidateForCreate(ctx, nc)
	if err != nil {
		s.logRejection(err, "create", nc.Email)
		return nil, err
	}

	if err := s.customerRps.Create(ctx, c); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			err = s.gate.reject(apperrors.ReasonEmailInUse, "email", MsgEmailInUse)
			s.logRejection(err, "create", nc.Email)
		}
		return nil, err
	}
	return c, nil
}

func (s *customerService) Update(ctx context.Context, id string, nc *model.NewCustomer) (*model.Customer, error) {
	c, err := s.gate.ValidateForUpdate(ctx, id, nc)
	if err != nil {
		s.logRejection(err, "update", nc.Email)
		return nil, err
	}

	if err := s.customerCache.DeleteByID(ctx, id); err != nil {
		return nil, err
	}

	ok, err := s.customerRps.Update(ctx, c)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			err = s.gate.reject(apperrors.ReasonEmailInUse, "email", MsgEmailInUse)
			s.logRejection(err, "update", nc.Email)
		}
		return nil, err
	}

	if !ok {
		return nil, apperrors.NewEntryNotFoundErr(fmt.Sprintf("customer with id %s doesn't exist", id))
	}

	// storage keeps creation time
	updated, err := s.customerRps.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if updated == nil {
		return nil, apperrors.NewEntryNotFoundErr(fmt.Sprintf("customer with id %s doesn't exist", id))
	}
	return updated, nil
}

func (s *customerService) DeleteByID(ctx context.Context, id string) error {
	if err := s.customerCache.DeleteByID(ctx, id); err != nil {
		return err
	}
	return s.customerRps.DeleteByID(ctx, id)
}

func (s *customerService) logRejection(err error, op string, email string) {
	var bErr *apperrors.BusinessErr
	if errors.As(err, &bErr) {
		logrus.WithFields(logrus.Fields{
			"operation": op,
			"reason":    bErr.Reason().String(),
			"email":     email,
		}).Debug("customer write rejected")
	}
}
