package sqlite

import (
	ierr "github.com/asejik/invoice-aso-oke/internal/errors"
)

// migrations is the ordered, additive schema history. Entries are never
// edited or removed once shipped; schema changes append a new version.
var migrations = []migration{
	{
		version: 1,
		statements: []string{
			`CREATE TABLE IF NOT EXISTS business_profile (
				id TEXT PRIMARY KEY,
				data TEXT NOT NULL,
				created_at TIMESTAMP NOT NULL,
				updated_at TIMESTAMP NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS customers (
				id TEXT PRIMARY KEY,
				name TEXT NOT NULL,
				phone TEXT NOT NULL,
				data TEXT NOT NULL,
				created_at TIMESTAMP NOT NULL,
				updated_at TIMESTAMP NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS idx_customers_name ON customers(name)`,
			`CREATE INDEX IF NOT EXISTS idx_customers_phone ON customers(phone)`,
			`CREATE TABLE IF NOT EXISTS invoices (
				id TEXT PRIMARY KEY,
				customer_id TEXT NOT NULL,
				status TEXT NOT NULL,
				currency TEXT NOT NULL,
				date_issued TIMESTAMP NOT NULL,
				is_synced INTEGER NOT NULL DEFAULT 0,
				data TEXT NOT NULL,
				created_at TIMESTAMP NOT NULL,
				updated_at TIMESTAMP NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS idx_invoices_customer_id ON invoices(customer_id)`,
			`CREATE INDEX IF NOT EXISTS idx_invoices_status ON invoices(status)`,
			`CREATE INDEX IF NOT EXISTS idx_invoices_date_issued ON invoices(date_issued)`,
			`CREATE INDEX IF NOT EXISTS idx_invoices_is_synced ON invoices(is_synced)`,
		},
	},
	{
		// Projection of due_date for overdue filtering. The document
		// column remains the source of truth; old rows keep a NULL
		// projection until their next write.
		version: 2,
		statements: []string{
			`ALTER TABLE invoices ADD COLUMN due_date TIMESTAMP`,
		},
	},
}

type migration struct {
	version    int
	statements []string
}

// Migrate brings the schema up to the latest known version. Each
// version applies in its own transaction and is recorded in
// schema_migrations. A database reporting a version newer than this
// binary knows is a serialization mismatch and fails closed.
func (c *Client) Migrate() error {
	if _, err := c.DB.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return ierr.WithError(err).
			WithHint("Could not prepare the local database for migration").
			Mark(ierr.ErrSchema)
	}

	var current int
	if err := c.DB.Get(&current, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`); err != nil {
		return ierr.WithError(err).
			WithHint("Could not read the local database schema version").
			Mark(ierr.ErrSchema)
	}

	latest := migrations[len(migrations)-1].version
	if current > latest {
		return ierr.NewError("database schema is newer than this build").
			WithHintf("The local database is at schema version %d but this build only knows version %d", current, latest).
			Mark(ierr.ErrSchema)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}

		tx, err := c.DB.Beginx()
		if err != nil {
			return ierr.WithError(err).
				WithHint("Could not begin schema migration").
				Mark(ierr.ErrSchema)
		}
		for _, stmt := range m.statements {
			if _, err := tx.Exec(stmt); err != nil {
				_ = tx.Rollback()
				return ierr.WithError(err).
					WithHintf("Schema migration to version %d failed", m.version).
					Mark(ierr.ErrSchema)
			}
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations (version) VALUES (?)`, m.version); err != nil {
			_ = tx.Rollback()
			return ierr.WithError(err).
				WithHintf("Could not record schema version %d", m.version).
				Mark(ierr.ErrSchema)
		}
		if err := tx.Commit(); err != nil {
			return ierr.WithError(err).
				WithHintf("Could not commit schema version %d", m.version).
				Mark(ierr.ErrSchema)
		}

		c.log.Infow("applied schema migration", "version", m.version)
	}

	return nil
}

// SchemaVersion reports the currently applied schema version
func (c *Client) SchemaVersion() (int, error) {
	var current int
	if err := c.DB.Get(&current, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Could not read the local database schema version").
			Mark(ierr.ErrSchema)
	}
	return current, nil
}
