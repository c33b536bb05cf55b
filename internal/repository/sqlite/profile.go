package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/asejik/invoice-aso-oke/internal/domain/profile"
	ierr "github.com/asejik/invoice-aso-oke/internal/errors"
	"github.com/asejik/invoice-aso-oke/internal/live"
	"github.com/asejik/invoice-aso-oke/internal/logger"
	"github.com/asejik/invoice-aso-oke/internal/sqlite"
)

type profileRepository struct {
	client   *sqlite.Client
	registry *live.Registry
	log      *logger.Logger
}

func NewProfileRepository(client *sqlite.Client, registry *live.Registry, log *logger.Logger) profile.Repository {
	return &profileRepository{client: client, registry: registry, log: log}
}

// Put stores the business profile under its fixed singleton key. The
// identity on the value is overwritten so no second profile row can
// ever exist.
func (r *profileRepository) Put(ctx context.Context, p *profile.BusinessProfile) error {
	p.ID = profile.SingletonID

	data, err := json.Marshal(p)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Could not serialize business profile").
			Mark(ierr.ErrDatabase)
	}

	_, err = r.client.DB.ExecContext(ctx, `
		INSERT INTO business_profile (id, data, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			data = excluded.data,
			updated_at = excluded.updated_at`,
		p.ID, string(data), p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Could not save business profile").
			Mark(ierr.ErrDatabase)
	}

	r.registry.Publish(ctx, live.CollectionProfile)
	return nil
}

func (r *profileRepository) Get(ctx context.Context) (*profile.BusinessProfile, error) {
	var data string
	err := r.client.DB.GetContext(ctx, &data,
		`SELECT data FROM business_profile WHERE id = ?`, profile.SingletonID)
	if err == sql.ErrNoRows {
		return nil, ierr.NewError("business profile not set up").
			WithHint("Set up your business profile first").
			Mark(ierr.ErrNotFound)
	}
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Could not load business profile").
			Mark(ierr.ErrDatabase)
	}

	var p profile.BusinessProfile
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Stored business profile is corrupt").
			Mark(ierr.ErrDatabase)
	}
	return &p, nil
}
