package repository

import (
	"context"
	"encoding/json"
	"time"

	"firebase.google.com/go/v4/db"

	"idstore/internal/domain/entity"
	"idstore/internal/domain/repository"
	"idstore/internal/infrastructure/rtdb"
	"idstore/pkg/errors"
	"idstore/pkg/logger"
)

// ChangeSource delivers a change event for every remote mutation of the
// watched collection. Satisfied by rtdb.ChangeStreamer.
type ChangeSource interface {
	Stream(ctx context.Context) <-chan rtdb.ChangeEvent
}

type rtdbListingRepository struct {
	ref     *db.Ref
	changes ChangeSource
}

func NewRTDBListingRepository(client *db.Client, changes ChangeSource) repository.ListingRepository {
	return &rtdbListingRepository{
		ref:     client.NewRef("products"),
		changes: changes,
	}
}

func (r *rtdbListingRepository) Create(ctx context.Context, listing *entity.Listing) error {
	listing.UpdatedAt = time.Now().UnixMilli()

	newRef, err := r.ref.Push(ctx, nil)
	if err != nil {
		return errors.Internal("Failed to allocate listing key", err)
	}

	// The key is the identity; the stored record does not repeat it.
	record := *listing
	record.ID = ""
	if err := newRef.Set(ctx, &record); err != nil {
		return errors.Internal("Failed to create listing", err)
	}

	listing.ID = newRef.Key
	return nil
}

func (r *rtdbListingRepository) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	var raw json.RawMessage
	if err := r.ref.Child(id).Get(ctx, &raw); err != nil {
		return nil, errors.Internal("Failed to get listing", err)
	}
	if len(raw) == 0 || string(raw) == "null" {
		return nil, errors.NotFound("Listing", nil)
	}

	var listing entity.Listing
	if err := json.Unmarshal(raw, &listing); err != nil {
		return nil, errors.Internal("Failed to parse listing data", err)
	}
	listing.ID = id
	return &listing, nil
}

func (r *rtdbListingRepository) Update(ctx context.Context, listing *entity.Listing) error {
	if listing.ID == "" {
		return errors.BadRequest("Listing id is required", nil)
	}
	listing.UpdatedAt = time.Now().UnixMilli()

	record := *listing
	record.ID = ""
	if err := r.ref.Child(listing.ID).Set(ctx, &record); err != nil {
		return errors.Internal("Failed to update listing", err)
	}
	return nil
}

func (r *rtdbListingRepository) Patch(ctx context.Context, id string, fields map[string]interface{}) error {
	fields["updatedAt"] = time.Now().UnixMilli()
	if err := r.ref.Child(id).Update(ctx, fields); err != nil {
		return errors.Internal("Failed to patch listing", err)
	}
	return nil
}

func (r *rtdbListingRepository) Delete(ctx context.Context, id string) error {
	if err := r.ref.Child(id).Delete(ctx); err != nil {
		return errors.Internal("Failed to delete listing", err)
	}
	return nil
}

func (r *rtdbListingRepository) List(ctx context.Context) (entity.Snapshot, error) {
	var records map[string]entity.Listing
	if err := r.ref.Get(ctx, &records); err != nil {
		return nil, errors.Internal("Failed to read listings", err)
	}

	snapshot := make(entity.Snapshot, len(records))
	for id, listing := range records {
		listing.ID = id
		snapshot[id] = listing
	}
	return snapshot, nil
}

// Watch re-reads the whole collection after every change event and delivers
// it as one snapshot. No deltas: consumers rebuild wholesale, which keeps the
// render path idempotent. A pending snapshot is dropped when a newer one
// arrives before the consumer catches up.
func (r *rtdbListingRepository) Watch(ctx context.Context) (<-chan entity.Snapshot, error) {
	events := r.changes.Stream(ctx)
	out := make(chan entity.Snapshot, 1)

	go func() {
		defer close(out)
		for range events {
			snapshot, err := r.List(ctx)
			if err != nil {
				logger.Error("Snapshot rebuild failed: %v", err)
				continue
			}
			select {
			case <-out:
			default:
			}
			out <- snapshot
		}
	}()

	return out, nil
}
