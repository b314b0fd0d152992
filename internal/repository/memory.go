package repository

import (
	"context"
	"regexp"
	"sort"
	"sync"

	"github.com/umalmyha/customer-records/internal/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryCustomerRepository is in-memory customer repository.
// Email uniqueness is enforced under the write lock.
type MemoryCustomerRepository struct {
	mu        sync.RWMutex
	customers map[string]model.Customer
}

// NewMemoryCustomerRepository builds empty in-memory repository
func NewMemoryCustomerRepository() *MemoryCustomerRepository {
	return &MemoryCustomerRepository{customers: make(map[string]model.Customer)}
}

// FindByID finds customer by id
func (r *MemoryCustomerRepository) FindByID(_ context.Context, id string) (*model.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.customers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

// FindByEmail finds customer by exact email
func (r *MemoryCustomerRepository) FindByEmail(_ context.Context, email string) (*model.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.customers {
		if c.Email == email {
			found := c
			return &found, nil
		}
	}
	return nil, nil
}

// FindPage returns customers ordered by creation time, newest first
func (r *MemoryCustomerRepository) FindPage(_ context.Context, skip, limit int64) ([]*model.Customer, error) {
	r.mu.RLock()
	sorted := r.sorted()
	r.mu.RUnlock()

	total := int64(len(sorted))
	if skip < 0 || limit <= 0 || skip >= total {
		return make([]*model.Customer, 0), nil
	}

	end := skip + limit
	if end > total {
		end = total
	}
	return sorted[skip:end], nil
}

// Count returns number of customers
func (r *MemoryCustomerRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.customers)), nil
}

// Search matches term case-insensitively against first and last name
func (r *MemoryCustomerRepository) Search(_ context.Context, term string) ([]*model.Customer, error) {
	re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(term))
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	sorted := r.sorted()
	r.mu.RUnlock()

	found := make([]*model.Customer, 0)
	for _, c := range sorted {
		if re.MatchString(c.FirstName) || re.MatchString(c.LastName) {
			found = append(found, c)
		}
	}
	return found, nil
}

// Create stores customer and assigns new id
func (r *MemoryCustomerRepository) Create(_ context.Context, c *model.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.emailTaken(c.Email, "") {
		return ErrDuplicateEmail
	}

	c.ID = primitive.NewObjectID().Hex()
	r.customers[c.ID] = *c
	return nil
}

// Update replaces editable fields of existing customer
func (r *MemoryCustomerRepository) Update(_ context.Context, c *model.Customer) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.customers[c.ID]
	if !ok {
		return false, nil
	}

	if r.emailTaken(c.Email, c.ID) {
		return false, ErrDuplicateEmail
	}

	existing.FirstName = c.FirstName
	existing.LastName = c.LastName
	existing.Telephone = c.Telephone
	existing.Email = c.Email
	existing.UpdatedAt = c.UpdatedAt
	r.customers[c.ID] = existing
	return true, nil
}

// DeleteByID removes customer
func (r *MemoryCustomerRepository) DeleteByID(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.customers, id)
	return nil
}

func (r *MemoryCustomerRepository) emailTaken(email string, exceptID string) bool {
	for id, c := range r.customers {
		if c.Email == email && id != exceptID {
			return true
		}
	}
	return false
}

// must be called under read lock
func (r *MemoryCustomerRepository) sorted() []*model.Customer {
	customers := make([]*model.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		cust := c
		customers = append(customers, &cust)
	}

	sort.Slice(customers, func(i, j int) bool {
		if customers[i].CreatedAt.Equal(customers[j].CreatedAt) {
			return customers[i].ID > customers[j].ID
		}
		return customers[i].CreatedAt.After(customers[j].CreatedAt)
	})
	return customers
}
