package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"

	"idstore/internal/domain/entity"
	"idstore/internal/domain/repository"
	"idstore/pkg/errors"
	"idstore/pkg/logger"
	"idstore/pkg/obfuscate"
)

// SnapshotBroadcaster pushes a rebuilt snapshot to connected viewers.
// Satisfied by the websocket hub.
type SnapshotBroadcaster interface {
	Broadcast(message []byte)
}

// CatalogUseCase owns the public storefront's view of the collection: the
// locally cached listing slice, rebuilt wholesale from every subscription
// snapshot, plus the pure filter and the contact deep link.
type CatalogUseCase struct {
	listingRepo    repository.ListingRepository
	broadcaster    SnapshotBroadcaster
	contactEncoded string

	mu       sync.RWMutex
	listings []entity.Listing
}

func NewCatalogUseCase(listingRepo repository.ListingRepository, broadcaster SnapshotBroadcaster, contactEncoded string) *CatalogUseCase {
	return &CatalogUseCase{
		listingRepo:    listingRepo,
		broadcaster:    broadcaster,
		contactEncoded: contactEncoded,
	}
}

// Start consumes the database subscription until ctx is done. The stream
// replays the full collection on connect, so the cache is primed by the
// first delivery.
func (uc *CatalogUseCase) Start(ctx context.Context) error {
	snapshots, err := uc.listingRepo.Watch(ctx)
	if err != nil {
		return err
	}

	go func() {
		for snapshot := range snapshots {
			uc.Rebuild(snapshot)
		}
	}()

	return nil
}

// Rebuild discards the cached list and rebuilds it from the snapshot. No
// diffing: rendering the same snapshot twice yields the same list.
func (uc *CatalogUseCase) Rebuild(snapshot entity.Snapshot) {
	listings := SortListings(snapshot)

	uc.mu.Lock()
	uc.listings = listings
	uc.mu.Unlock()

	if uc.broadcaster == nil {
		return
	}
	payload, err := json.Marshal(map[string]interface{}{
		"type":     "snapshot",
		"listings": listings,
	})
	if err != nil {
		logger.Error("Failed to encode snapshot broadcast: %v", err)
		return
	}
	uc.broadcaster.Broadcast(payload)
}

// SortListings flattens a snapshot most-recently-changed first, with the id
// as tiebreak so equal timestamps still order deterministically.
func SortListings(snapshot entity.Snapshot) []entity.Listing {
	listings := make([]entity.Listing, 0, len(snapshot))
	for _, listing := range snapshot {
		listings = append(listings, listing)
	}
	sort.SliceStable(listings, func(i, j int) bool {
		if listings[i].UpdatedAt != listings[j].UpdatedAt {
			return listings[i].UpdatedAt > listings[j].UpdatedAt
		}
		return listings[i].ID < listings[j].ID
	})
	return listings
}

// Filter returns the listings whose title, short description or player info
// contains term, case-insensitively. Pure: never mutates its input.
func Filter(listings []entity.Listing, term string) []entity.Listing {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return listings
	}

	matched := make([]entity.Listing, 0, len(listings))
	for _, listing := range listings {
		if strings.Contains(strings.ToLower(listing.Title), needle) ||
			strings.Contains(strings.ToLower(listing.ShortDesc), needle) ||
			strings.Contains(strings.ToLower(listing.PlayerInfo), needle) {
			matched = append(matched, listing)
		}
	}
	return matched
}

// Listings returns the filtered cache and whether the whole collection is
// empty, so the handler can tell "no results" from "no listings at all".
func (uc *CatalogUseCase) Listings(term string) ([]entity.Listing, bool) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return Filter(uc.listings, term), len(uc.listings) == 0
}

// SnapshotPayload encodes the current cache in the same shape the broadcast
// uses, for seeding a freshly connected viewer.
func (uc *CatalogUseCase) SnapshotPayload() ([]byte, error) {
	uc.mu.RLock()
	listings := uc.listings
	uc.mu.RUnlock()

	if listings == nil {
		listings = []entity.Listing{}
	}
	return json.Marshal(map[string]interface{}{
		"type":     "snapshot",
		"listings": listings,
	})
}

// Get looks the listing up in the cache, falling back to a point read when
// the cache has not seen it yet.
func (uc *CatalogUseCase) Get(ctx context.Context, id string) (*entity.Listing, error) {
	uc.mu.RLock()
	for _, listing := range uc.listings {
		if listing.ID == id {
			found := listing
			uc.mu.RUnlock()
			return &found, nil
		}
	}
	uc.mu.RUnlock()

	return uc.listingRepo.GetByID(ctx, id)
}

// ContactLink composes the outbound WhatsApp deep link for a listing. The
// destination number is decoded from its reversible obfuscation here, at
// click time, so it never sits in a rendered payload.
func (uc *CatalogUseCase) ContactLink(listing *entity.Listing) (string, error) {
	phone, err := obfuscate.Decode(uc.contactEncoded)
	if err != nil {
		return "", errors.Internal("Contact number is misconfigured", err)
	}
	if phone == "" {
		return "", errors.Internal("Contact number is not configured", nil)
	}

	text := fmt.Sprintf("I'm interested in ID: %s - %s (%s)", listing.Title, listing.Price, listing.ID)
	return "https://wa.me/" + phone + "?text=" + url.QueryEscape(text), nil
}
