package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/umalmyha/customer-records/internal/model"
)

func TestMemoryCustomerRps(t *testing.T) {
	customerRps := NewMemoryCustomerRepository()
	t.Log("running tests for memory")
	testCustomerRps(t, customerRps)
}

func TestMemoryCustomerRpsConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	customerRps := NewMemoryCustomerRepository()
	now := time.Now().UTC()

	const attempts = 10

	var wg sync.WaitGroup
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- customerRps.Create(ctx, &model.Customer{
				FirstName: "Ann",
				LastName:  "Lee",
				Telephone: "555-1111",
				Email:     "ann@gmail.com",
				CreatedAt: now,
				UpdatedAt: now,
			})
		}()
	}
	wg.Wait()
	close(errs)

	created := 0
	for err := range errs {
		if err == nil {
			created++
			continue
		}
		require.ErrorIs(t, err, ErrDuplicateEmail, "only duplicate email error is expected")
	}
	require.Equal(t, 1, created, "exactly one customer must be created for the same email")
}

func TestMemoryCustomerRpsFindPageBounds(t *testing.T) {
	ctx := context.Background()
	customerRps := NewMemoryCustomerRepository()
	now := time.Now().UTC()

	require.NoError(t, customerRps.Create(ctx, &model.Customer{
		FirstName: "Ann",
		LastName:  "Lee",
		Telephone: "555-1111",
		Email:     "ann@gmail.com",
		CreatedAt: now,
		UpdatedAt: now,
	}))

	for _, bounds := range [][2]int64{{-12, 12}, {0, 0}, {0, -1}, {1, 12}} {
		page, err := customerRps.FindPage(ctx, bounds[0], bounds[1])
		require.NoError(t, err)
		require.Empty(t, page, "skip %d limit %d must give empty page", bounds[0], bounds[1])
	}
}

//nolint:funlen // function contains a lot of inlined tests
func testCustomerRps(t *testing.T, customerRps CustomerRepository) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	base := time.Now().UTC().Truncate(time.Millisecond)

	customers := []*model.Customer{
		{
			FirstName: "John",
			LastName:  "Norman",
			Telephone: "555-0001",
			Email:     "johnnorman@gmail.com",
			CreatedAt: base,
			UpdatedAt: base,
		},
		{
			FirstName: "Albert",
			LastName:  "Peers",
			Telephone: "555-0002",
			Email:     "albertpeers@gmail.com",
			CreatedAt: base.Add(time.Second),
			UpdatedAt: base.Add(time.Second),
		},
		{
			FirstName: "Andrew",
			LastName:  "Wallet",
			Telephone: "555-0003",
			Email:     "andrewallet@gmail.com",
			CreatedAt: base.Add(2 * time.Second),
			UpdatedAt: base.Add(2 * time.Second),
		},
		{
			FirstName: "Oliver",
			LastName:  "Jefferson",
			Telephone: "555-0004",
			Email:     "oliverjeff@gmail.com",
			CreatedAt: base.Add(3 * time.Second),
			UpdatedAt: base.Add(3 * time.Second),
		},
	}

	customerJohn := customers[0]

	t.Logf("create %d customers", len(customers))
	{
		for _, c := range customers {
			err := customerRps.Create(ctx, c)
			require.NoError(t, err, "failed to create customer")
			require.NotEmpty(t, c.ID, "id must be assigned by storage")
		}
	}

	t.Log("create customer with duplicate email")
	{
		err := customerRps.Create(ctx, &model.Customer{
			FirstName: "Other",
			LastName:  "John",
			Telephone: "555-0005",
			Email:     customerJohn.Email,
			CreatedAt: base,
			UpdatedAt: base,
		})
		require.ErrorIs(t, err, ErrDuplicateEmail, "storage must reject duplicate email")
	}

	t.Logf("verify %d customers in database", len(customers))
	{
		count, err := customerRps.Count(ctx)
		require.NoError(t, err, "failed to count customers")
		require.Equal(t, int64(len(customers)), count, "%d customers were created, but got %d", len(customers), count)
	}

	t.Log("read first page, newest first")
	{
		page, err := customerRps.FindPage(ctx, 0, 3)
		require.NoError(t, err, "failed to read page")
		require.Len(t, page, 3)
		require.Equal(t, "Oliver", page[0].FirstName, "newest customer must go first")
		require.Equal(t, "Albert", page[2].FirstName)
	}

	t.Log("read second page")
	{
		page, err := customerRps.FindPage(ctx, 3, 3)
		require.NoError(t, err, "failed to read page")
		require.Len(t, page, 1)
		require.Equal(t, "John", page[0].FirstName, "oldest customer must be on the last page")
	}

	t.Logf("find customer by id %s", customerJohn.ID)
	{
		dbCustomer, err := customerRps.FindByID(ctx, customerJohn.ID)
		require.NoError(t, err, "failed to read customer")
		require.NotNil(t, dbCustomer, "customer was created, but not found in database")
		require.Equal(t, customerJohn, dbCustomer, "customer created in database is not the same it was passed")
	}

	t.Logf("find customer by email %s", customerJohn.Email)
	{
		dbCustomer, err := customerRps.FindByEmail(ctx, customerJohn.Email)
		require.NoError(t, err, "failed to read customer")
		require.NotNil(t, dbCustomer, "customer was created, but not found by email")
		require.Equal(t, customerJohn.ID, dbCustomer.ID)
	}

	t.Log("search customers case-insensitively")
	{
		found, err := customerRps.Search(ctx, "jOhN")
		require.NoError(t, err, "failed to search customers")
		require.Len(t, found, 1)

		found, err = customerRps.Search(ctx, "son")
		require.NoError(t, err, "failed to search customers")
		require.Len(t, found, 1, "last name must be searched as well")
		require.Equal(t, "Oliver", found[0].FirstName)
	}

	customerJohnUpd := &model.Customer{
		ID:        customerJohn.ID,
		FirstName: customerJohn.FirstName,
		LastName:  customerJohn.LastName,
		Telephone: "555-9999",
		Email:     "newjohn@gmail.com",
		CreatedAt: customerJohn.CreatedAt,
		UpdatedAt: base.Add(time.Minute),
	}

	t.Logf("update customer %s", customerJohn.ID)
	{
		ok, err := customerRps.Update(ctx, customerJohnUpd)
		require.NoError(t, err, "failed to update customer")
		require.True(t, ok, "existing customer must be matched")
	}

	t.Logf("find customer by id %s and verify it is updated", customerJohn.ID)
	{
		dbCustomer, err := customerRps.FindByID(ctx, customerJohn.ID)
		require.NoError(t, err, "failed to read customer")
		require.NotNil(t, dbCustomer, "customer was updated, but not found in database")
		require.Equal(t, customerJohnUpd, dbCustomer, "customer is in database, but wasn't updated correctly")
	}

	t.Log("update customer to email of another customer")
	{
		_, err := customerRps.Update(ctx, &model.Customer{
			ID:        customerJohn.ID,
			FirstName: customerJohn.FirstName,
			LastName:  customerJohn.LastName,
			Telephone: customerJohn.Telephone,
			Email:     customers[1].Email,
			UpdatedAt: base.Add(time.Minute),
		})
		require.ErrorIs(t, err, ErrDuplicateEmail, "storage must reject duplicate email on update")
	}

	t.Log("update unknown customer")
	{
		ok, err := customerRps.Update(ctx, &model.Customer{ID: "62f3a1c2e4b0a1b2c3d4e5f6", Email: "ghost@gmail.com"})
		require.NoError(t, err, "update of unknown customer must not fail")
		require.False(t, ok, "unknown customer must not be matched")
	}

	t.Logf("delete customer by id %s", customerJohn.ID)
	{
		err := customerRps.DeleteByID(ctx, customerJohnUpd.ID)
		require.NoError(t, err, "failed to delete customer")
	}

	t.Logf("verify customer %s is deleted", customerJohn.ID)
	{
		dbCustomer, err := customerRps.FindByID(ctx, customerJohnUpd.ID)
		require.NoError(t, err, "failed to read customer by id")
		require.Nil(t, dbCustomer, "customer was deleted, but still present in database")
	}

	t.Logf("verify %d entries left", len(customers)-1)
	{
		count, err := customerRps.Count(ctx)
		require.NoError(t, err, "failed to count customers")
		require.Equal(t, int64(len(customers)-1), count, "there must be %d customers in database, but got %d", len(customers)-1, count)
	}
}
