package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/asejik/invoice-aso-oke/internal/domain/customer"
	ierr "github.com/asejik/invoice-aso-oke/internal/errors"
	"github.com/asejik/invoice-aso-oke/internal/live"
	"github.com/asejik/invoice-aso-oke/internal/logger"
	"github.com/asejik/invoice-aso-oke/internal/sqlite"
)

type customerRepository struct {
	client   *sqlite.Client
	registry *live.Registry
	log      *logger.Logger
}

func NewCustomerRepository(client *sqlite.Client, registry *live.Registry, log *logger.Logger) customer.Repository {
	return &customerRepository{client: client, registry: registry, log: log}
}

func (r *customerRepository) Create(ctx context.Context, c *customer.Customer) error {
	data, err := json.Marshal(c)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Could not serialize customer").
			Mark(ierr.ErrDatabase)
	}

	_, err = r.client.DB.ExecContext(ctx, `
		INSERT INTO customers (id, name, phone, data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Phone, string(data), c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Could not save customer").
			Mark(ierr.ErrDatabase)
	}

	r.registry.Publish(ctx, live.CollectionCustomers)
	return nil
}

func (r *customerRepository) Get(ctx context.Context, id string) (*customer.Customer, error) {
	var data string
	err := r.client.DB.GetContext(ctx, &data, `SELECT data FROM customers WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return nil, ierr.NewError("customer not found").
			WithHintf("Customer %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Could not load customer").
			Mark(ierr.ErrDatabase)
	}
	return unmarshalCustomer(data)
}

func (r *customerRepository) Update(ctx context.Context, c *customer.Customer) error {
	data, err := json.Marshal(c)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Could not serialize customer").
			Mark(ierr.ErrDatabase)
	}

	res, err := r.client.DB.ExecContext(ctx, `
		UPDATE customers SET name = ?, phone = ?, data = ?, updated_at = ?
		WHERE id = ?`,
		c.Name, c.Phone, string(data), c.UpdatedAt, c.ID)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Could not update customer").
			Mark(ierr.ErrDatabase)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ierr.NewError("customer not found").
			WithHintf("Customer %s was not found", c.ID).
			Mark(ierr.ErrNotFound)
	}

	r.registry.Publish(ctx, live.CollectionCustomers)
	return nil
}

func (r *customerRepository) List(ctx context.Context, filter customer.ListFilter) ([]*customer.Customer, error) {
	query := `SELECT data FROM customers`
	var args []any
	if filter.Search != "" {
		query += ` WHERE name LIKE ? OR phone LIKE ?`
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}
	query += ` ORDER BY rowid ASC`

	var rows []string
	if err := r.client.DB.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Could not list customers").
			Mark(ierr.ErrDatabase)
	}

	customers := make([]*customer.Customer, 0, len(rows))
	for _, data := range rows {
		c, err := unmarshalCustomer(data)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, nil
}

func unmarshalCustomer(data string) (*customer.Customer, error) {
	var c customer.Customer
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Stored customer record is corrupt").
			Mark(ierr.ErrDatabase)
	}
	return &c, nil
}
