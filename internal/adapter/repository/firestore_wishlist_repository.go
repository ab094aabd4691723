package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/mattwyattcooper/circularbuild-sub000/internal/domain/entity"
	"github.com/mattwyattcooper/circularbuild-sub000/internal/domain/repository"
	"github.com/mattwyattcooper/circularbuild-sub000/pkg/errors"
	"github.com/mattwyattcooper/circularbuild-sub000/pkg/logger"
)

type firestoreWishlistRepository struct {
	client *firestore.Client
}

func NewFirestoreWishlistRepository(client *firestore.Client) repository.WishlistRepository {
	return &firestoreWishlistRepository{client: client}
}

func wishlistID(userID, listingID string) string {
	return fmt.Sprintf("%s_%s", userID, listingID)
}

// Add is idempotent: the doc id is derived from the (user, listing) pair, so
// a repeat Add overwrites the same row.
func (r *firestoreWishlistRepository) Add(ctx context.Context, userID, listingID string) (*entity.WishlistItem, error) {
	id := wishlistID(userID, listingID)

	item := entity.WishlistItem{
		ID:        id,
		UserID:    userID,
		ListingID: listingID,
		CreatedAt: time.Now(),
	}

	// Keep the original created_at on repeat adds
	if existing, err := r.client.Collection("wishlists").Doc(id).Get(ctx); err == nil {
		var prev entity.WishlistItem
		if err := existing.DataTo(&prev); err == nil {
			item.CreatedAt = prev.CreatedAt
		}
	}

	_, err := r.client.Collection("wishlists").Doc(id).Set(ctx, item)
	if err != nil {
		return nil, errors.Internal("Failed to add to wishlist", err)
	}

	return &item, nil
}

// Remove is a no-op when the pair is absent.
func (r *firestoreWishlistRepository) Remove(ctx context.Context, userID, listingID string) error {
	_, err := r.client.Collection("wishlists").Doc(wishlistID(userID, listingID)).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to remove from wishlist", err)
	}

	return nil
}

func (r *firestoreWishlistRepository) IsSaved(ctx context.Context, userID, listingID string) (bool, error) {
	doc, err := r.client.Collection("wishlists").Doc(wishlistID(userID, listingID)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return false, nil
		}
		return false, errors.Internal("Failed to check wishlist", err)
	}

	return doc.Exists(), nil
}

func (r *firestoreWishlistRepository) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]entity.WishlistItemWithListing, int64, error) {
	query := r.client.Collection("wishlists").
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to fetch wishlist", err)
	}
	total := int64(len(allDocs))

	start := offset
	end := len(allDocs)
	if limit > 0 {
		end = start + limit
		if end > len(allDocs) {
			end = len(allDocs)
		}
	}
	if start > len(allDocs) {
		start = len(allDocs)
	}

	var items []entity.WishlistItemWithListing
	for i := start; i < end; i++ {
		var item entity.WishlistItem
		if err := allDocs[i].DataTo(&item); err != nil {
			continue
		}

		// Saved listings that have since become non-active stay in the set;
		// the denormalized listing carries the status annotation.
		listingDoc, err := r.client.Collection("listings").Doc(item.ListingID).Get(ctx)
		if err != nil {
			logger.Warn("Wishlist entry %s references missing listing %s", item.ID, item.ListingID)
			continue
		}

		var listing entity.Listing
		if err := listingDoc.DataTo(&listing); err != nil {
			continue
		}

		items = append(items, entity.WishlistItemWithListing{
			ID:        item.ID,
			UserID:    item.UserID,
			ListingID: item.ListingID,
			Listing:   &listing,
			CreatedAt: item.CreatedAt,
		})
	}

	return items, total, nil
}

func (r *firestoreWishlistRepository) Count(ctx context.Context, userID string) (int64, error) {
	docs, err := r.client.Collection("wishlists").Where("userId", "==", userID).Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to count wishlist", err)
	}

	return int64(len(docs)), nil
}
