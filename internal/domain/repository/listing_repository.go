package repository

import (
	"context"

	"idstore/internal/domain/entity"
)

// ListingRepository is the thin capability set both storefront surfaces share.
// No retries, no offline queue, no schema validation: a failed call surfaces
// as an AppError to the caller.
type ListingRepository interface {
	// Create asks the database for a fresh key, writes the full record there
	// and fills in ID and UpdatedAt.
	Create(ctx context.Context, listing *entity.Listing) error
	GetByID(ctx context.Context, id string) (*entity.Listing, error)
	// Update overwrites the full record at its existing key.
	Update(ctx context.Context, listing *entity.Listing) error
	// Patch writes only the given fields at the key.
	Patch(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) (entity.Snapshot, error)
	// Watch delivers the full current collection on subscription start and
	// again after every remote change, for the life of ctx. The channel is
	// closed when ctx is done.
	Watch(ctx context.Context) (<-chan entity.Snapshot, error)
}
