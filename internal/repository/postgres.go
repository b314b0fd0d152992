package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/umalmyha/customer-records/internal/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const pgUniqueViolationCode = "23505"

const customersSchema = `CREATE TABLE IF NOT EXISTS customers (
	id CHAR(24) PRIMARY KEY,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	telephone TEXT NOT NULL,
	email TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL,
	CONSTRAINT customers_email_unique UNIQUE (email)
);
CREATE INDEX IF NOT EXISTS customers_created_at ON customers (created_at DESC);`

type postgresCustomerRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresCustomerRepository builds postgres customer repository
func NewPostgresCustomerRepository(p *pgxpool.Pool) CustomerRepository {
	return &postgresCustomerRepository{pool: p}
}

// EnsurePostgresSchema creates customers table if it is missing
func EnsurePostgresSchema(ctx context.Context, p *pgxpool.Pool) error {
	_, err := p.Exec(ctx, customersSchema)
	return err
}

func (r *postgresCustomerRepository) FindByID(ctx context.Context, id string) (*model.Customer, error) {
	q := "SELECT id, first_name, last_name, telephone, email, created_at, updated_at FROM customers WHERE id = $1"
	return r.scanRow(r.pool.QueryRow(ctx, q, id))
}

func (r *postgresCustomerRepository) FindByEmail(ctx context.Context, email string) (*model.Customer, error) {
	q := "SELECT id, first_name, last_name, telephone, email, created_at, updated_at FROM customers WHERE email = $1"
	return r.scanRow(r.pool.QueryRow(ctx, q, email))
}

func (r *postgresCustomerRepository) FindPage(ctx context.Context, skip, limit int64) ([]*model.Customer, error) {
	q := `SELECT id, first_name, last_name, telephone, email, created_at, updated_at FROM customers
		  ORDER BY created_at DESC OFFSET $1 LIMIT $2`
	return r.query(ctx, q, skip, limit)
}

func (r *postgresCustomerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM customers").Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *postgresCustomerRepository) Search(ctx context.Context, term string) ([]*model.Customer, error) {
	q := `SELECT id, first_name, last_name, telephone, email, created_at, updated_at FROM customers
		  WHERE first_name ~* $1 OR last_name ~* $1`
	return r.query(ctx, q, term)
}

func (r *postgresCustomerRepository) Create(ctx context.Context, c *model.Customer) error {
	id := primitive.NewObjectID().Hex()
	q := `INSERT INTO customers(id, first_name, last_name, telephone, email, created_at, updated_at)
		  VALUES($1, $2, $3, $4, $5, $6, $7)`
	if _, err := r.pool.Exec(ctx, q, id, c.FirstName, c.LastName, c.Telephone, c.Email, c.CreatedAt, c.UpdatedAt); err != nil {
		return r.translateErr(err)
	}

	c.ID = id
	return nil
}

func (r *postgresCustomerRepository) Update(ctx context.Context, c *model.Customer) (bool, error) {
	q := `UPDATE customers SET first_name = $1, last_name = $2, telephone = $3, email = $4, updated_at = $5
		  WHERE id = $6`
	comm, err := r.pool.Exec(ctx, q, c.FirstName, c.LastName, c.Telephone, c.Email, c.UpdatedAt, c.ID)
	if err != nil {
		return false, r.translateErr(err)
	}
	return comm.RowsAffected() > 0, nil
}

func (r *postgresCustomerRepository) DeleteByID(ctx context.Context, id string) error {
	if _, err := r.pool.Exec(ctx, "DELETE FROM customers WHERE id = $1", id); err != nil {
		return err
	}
	return nil
}

func (r *postgresCustomerRepository) query(ctx context.Context, q string, args ...any) ([]*model.Customer, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := make([]*model.Customer, 0)
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Telephone, &c.Email, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		c.CreatedAt = c.CreatedAt.UTC()
		c.UpdatedAt = c.UpdatedAt.UTC()
		customers = append(customers, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *postgresCustomerRepository) scanRow(row pgx.Row) (*model.Customer, error) {
	var c model.Customer
	if err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Telephone, &c.Email, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
	return &c, nil
}

func (r *postgresCustomerRepository) translateErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolationCode {
		return ErrDuplicateEmail
	}
	return err
}
