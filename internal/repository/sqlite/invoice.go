package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/asejik/invoice-aso-oke/internal/domain/invoice"
	ierr "github.com/asejik/invoice-aso-oke/internal/errors"
	"github.com/asejik/invoice-aso-oke/internal/live"
	"github.com/asejik/invoice-aso-oke/internal/logger"
	"github.com/asejik/invoice-aso-oke/internal/sqlite"
)

type invoiceRepository struct {
	client   *sqlite.Client
	registry *live.Registry
	log      *logger.Logger
}

func NewInvoiceRepository(client *sqlite.Client, registry *live.Registry, log *logger.Logger) invoice.Repository {
	return &invoiceRepository{client: client, registry: registry, log: log}
}

// Create persists the whole invoice, embedded ledger included, in one
// atomic write.
func (r *invoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) error {
	data, err := json.Marshal(inv)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Could not serialize invoice").
			Mark(ierr.ErrDatabase)
	}

	_, err = r.client.DB.ExecContext(ctx, `
		INSERT INTO invoices (id, customer_id, status, currency, date_issued, is_synced, due_date, data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.CustomerID, inv.Status.String(), inv.Currency.String(),
		inv.DateIssued, inv.IsSynced, inv.DueDate, string(data), inv.CreatedAt, inv.UpdatedAt)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Could not save invoice").
			Mark(ierr.ErrDatabase)
	}

	r.registry.Publish(ctx, live.CollectionInvoices)
	return nil
}

func (r *invoiceRepository) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	var data string
	err := r.client.DB.GetContext(ctx, &data, `SELECT data FROM invoices WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return nil, ierr.NewError("invoice not found").
			WithHintf("Invoice %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Could not load invoice").
			Mark(ierr.ErrDatabase)
	}
	return unmarshalInvoice(data)
}

// Update replaces the stored invoice in one atomic write and refreshes
// the projected filter columns.
func (r *invoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	data, err := json.Marshal(inv)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Could not serialize invoice").
			Mark(ierr.ErrDatabase)
	}

	res, err := r.client.DB.ExecContext(ctx, `
		UPDATE invoices SET customer_id = ?, status = ?, currency = ?, date_issued = ?,
			is_synced = ?, due_date = ?, data = ?, updated_at = ?
		WHERE id = ?`,
		inv.CustomerID, inv.Status.String(), inv.Currency.String(), inv.DateIssued,
		inv.IsSynced, inv.DueDate, string(data), inv.UpdatedAt, inv.ID)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Could not update invoice").
			Mark(ierr.ErrDatabase)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ierr.NewError("invoice not found").
			WithHintf("Invoice %s was not found", inv.ID).
			Mark(ierr.ErrNotFound)
	}

	r.registry.Publish(ctx, live.CollectionInvoices)
	return nil
}

func (r *invoiceRepository) Delete(ctx context.Context, id string) error {
	res, err := r.client.DB.ExecContext(ctx, `DELETE FROM invoices WHERE id = ?`, id)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Could not delete invoice").
			Mark(ierr.ErrDatabase)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ierr.NewError("invoice not found").
			WithHintf("Invoice %s was not found", id).
			Mark(ierr.ErrNotFound)
	}

	r.registry.Publish(ctx, live.CollectionInvoices)
	return nil
}

func (r *invoiceRepository) List(ctx context.Context, filter invoice.ListFilter) ([]*invoice.Invoice, error) {
	query := `SELECT data FROM invoices WHERE 1=1`
	var args []any
	if filter.CustomerID != "" {
		query += ` AND customer_id = ?`
		args = append(args, filter.CustomerID)
	}
	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, filter.Status.String())
	}
	if filter.Currency != "" {
		query += ` AND currency = ?`
		args = append(args, filter.Currency.String())
	}
	if filter.IsSynced != nil {
		query += ` AND is_synced = ?`
		args = append(args, *filter.IsSynced)
	}

	switch filter.Sort {
	case invoice.SortDateIssuedDesc:
		// rowid keeps ties in insertion order
		query += ` ORDER BY date_issued DESC, rowid ASC`
	default:
		query += ` ORDER BY rowid ASC`
	}

	var rows []string
	if err := r.client.DB.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Could not list invoices").
			Mark(ierr.ErrDatabase)
	}

	invoices := make([]*invoice.Invoice, 0, len(rows))
	for _, data := range rows {
		inv, err := unmarshalInvoice(data)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, nil
}

func unmarshalInvoice(data string) (*invoice.Invoice, error) {
	var inv invoice.Invoice
	if err := json.Unmarshal([]byte(data), &inv); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Stored invoice record is corrupt").
			Mark(ierr.ErrDatabase)
	}
	return &inv, nil
}
