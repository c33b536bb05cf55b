package profile

import "context"

// Repository stores the singleton business profile. Put always writes
// under SingletonID regardless of the ID on the value; there is no
// delete because the profile is only ever replaced.
type Repository interface {
	Put(ctx context.Context, p *BusinessProfile) error
	Get(ctx context.Context) (*BusinessProfile, error)
}
