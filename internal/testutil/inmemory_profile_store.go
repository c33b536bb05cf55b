package testutil

import (
	"context"

	"github.com/asejik/invoice-aso-oke/internal/domain/profile"
	"github.com/asejik/invoice-aso-oke/internal/live"
)

// InMemoryProfileStore implements profile.Repository. Writes publish to
// the live registry exactly like the sqlite repository does, so service
// tests exercise the reactive path too.
type InMemoryProfileStore struct {
	*InMemoryStore[*profile.BusinessProfile]
	registry *live.Registry
}

func NewInMemoryProfileStore(registry *live.Registry) *InMemoryProfileStore {
	return &InMemoryProfileStore{
		InMemoryStore: NewInMemoryStore[*profile.BusinessProfile](),
		registry:      registry,
	}
}

func copyProfile(p *profile.BusinessProfile) *profile.BusinessProfile {
	if p == nil {
		return nil
	}
	out := *p
	return &out
}

func (s *InMemoryProfileStore) Put(ctx context.Context, p *profile.BusinessProfile) error {
	p = copyProfile(p)
	p.ID = profile.SingletonID

	if err := s.InMemoryStore.Update(ctx, profile.SingletonID, p); err != nil {
		if err := s.InMemoryStore.Create(ctx, profile.SingletonID, p); err != nil {
			return err
		}
	}

	s.registry.Publish(ctx, live.CollectionProfile)
	return nil
}

func (s *InMemoryProfileStore) Get(ctx context.Context) (*profile.BusinessProfile, error) {
	p, err := s.InMemoryStore.Get(ctx, profile.SingletonID)
	if err != nil {
		return nil, err
	}
	return copyProfile(p), nil
}
