package sqlite

import (
	ierr "github.com/asejik/invoice-aso-oke/internal/errors"
	"github.com/asejik/invoice-aso-oke/internal/logger"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Client wraps the local SQLite database backing all three collections.
// One connection only: the tool has a single logical writer and SQLite
// serializes writers anyway.
type Client struct {
	DB  *sqlx.DB
	log *logger.Logger
}

// NewClient opens (or creates) the database file at dsn and brings the
// schema up to the current version. An unopenable file surfaces as
// ErrStoreUnavailable; a schema that cannot be migrated fails closed
// with ErrSchema.
func NewClient(dsn string, log *logger.Logger) (*Client, error) {
	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Could not open the local database").
			WithReportableDetails(map[string]any{"dsn": dsn}).
			Mark(ierr.ErrStoreUnavailable)
	}
	db.SetMaxOpenConns(1)

	c := &Client{DB: db, log: log}
	if err := c.Migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return c, nil
}

func (c *Client) Close() error {
	return c.DB.Close()
}
