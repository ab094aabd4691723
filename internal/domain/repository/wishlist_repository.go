package repository

import (
	"context"

	"github.com/mattwyattcooper/circularbuild-sub000/internal/domain/entity"
)

type WishlistRepository interface {
	// Add is a duplicate-safe upsert keyed on (user, listing).
	Add(ctx context.Context, userID, listingID string) (*entity.WishlistItem, error)

	// Remove is a no-op when the pair is absent.
	Remove(ctx context.Context, userID, listingID string) error

	IsSaved(ctx context.Context, userID, listingID string) (bool, error)
	ListByUserID(ctx context.Context, userID string, limit, offset int) ([]entity.WishlistItemWithListing, int64, error)
	Count(ctx context.Context, userID string) (int64, error)
}
