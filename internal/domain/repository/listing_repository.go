package repository

import (
	"context"
	"time"

	"github.com/mattwyattcooper/circularbuild-sub000/internal/domain/entity"
)

// GeoBounds is an inclusive lat/lng bounding box for geographic filtering.
type GeoBounds struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

type ListingRepository interface {
	Create(ctx context.Context, listing *entity.Listing) error
	GetByID(ctx context.Context, id string) (*entity.Listing, error)
	GetByIDs(ctx context.Context, ids []string) ([]*entity.Listing, error)
	Update(ctx context.Context, listing *entity.Listing) error
	List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]*entity.Listing, int64, error)

	// Search matches query against title, description and material type,
	// optionally restricted to a bounding box and an availability cutoff.
	Search(ctx context.Context, query string, filter map[string]interface{}, bounds *GeoBounds, availableAfter time.Time, limit, offset int) ([]*entity.Listing, int64, error)
	ListByOwnerID(ctx context.Context, ownerID string, status string, limit, offset int) ([]*entity.Listing, int64, error)

	// ListExpired returns active listings whose availability window ended
	// before the given time.
	ListExpired(ctx context.Context, before time.Time) ([]*entity.Listing, error)

	// TransitionStatus applies a terminal status and deactivates every chat
	// referencing the listing in one transaction.
	TransitionStatus(ctx context.Context, listingID, newStatus string) error
}
