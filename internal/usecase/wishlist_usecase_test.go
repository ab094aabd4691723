package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mattwyattcooper/circularbuild-sub000/internal/domain/entity"
	"github.com/mattwyattcooper/circularbuild-sub000/pkg/errors"
)

func TestWishlistAdd(t *testing.T) {
	wishlistRepo := new(mockWishlistRepository)
	listingRepo := new(mockListingRepository)
	uc := NewWishlistUseCase(wishlistRepo, listingRepo)

	listingRepo.On("GetByID", mock.Anything, "listing-1").Return(&entity.Listing{
		ID:     "listing-1",
		Title:  "Surplus steel beams",
		Status: entity.ListingStatusActive,
	}, nil)

	item := &entity.WishlistItem{
		ID:        "user-1_listing-1",
		UserID:    "user-1",
		ListingID: "listing-1",
		CreatedAt: time.Now(),
	}
	wishlistRepo.On("Add", mock.Anything, "user-1", "listing-1").Return(item, nil)

	resp, err := uc.Add(context.Background(), "user-1", "listing-1")

	assert.NoError(t, err)
	assert.Equal(t, "listing-1", resp.ListingID)
	assert.Equal(t, "Surplus steel beams", resp.Listing.Title)
}

func TestWishlistAddIsIdempotent(t *testing.T) {
	wishlistRepo := new(mockWishlistRepository)
	listingRepo := new(mockListingRepository)
	uc := NewWishlistUseCase(wishlistRepo, listingRepo)

	listingRepo.On("GetByID", mock.Anything, "listing-1").Return(&entity.Listing{ID: "listing-1"}, nil)

	// The repository upserts on (user, listing), so repeat adds return the
	// same row with its original timestamp.
	created := time.Now().Add(-time.Hour)
	item := &entity.WishlistItem{
		ID:        "user-1_listing-1",
		UserID:    "user-1",
		ListingID: "listing-1",
		CreatedAt: created,
	}
	wishlistRepo.On("Add", mock.Anything, "user-1", "listing-1").Return(item, nil).Twice()

	first, err := uc.Add(context.Background(), "user-1", "listing-1")
	assert.NoError(t, err)

	second, err := uc.Add(context.Background(), "user-1", "listing-1")
	assert.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	wishlistRepo.AssertExpectations(t)
}

func TestWishlistAddUnknownListing(t *testing.T) {
	wishlistRepo := new(mockWishlistRepository)
	listingRepo := new(mockListingRepository)
	uc := NewWishlistUseCase(wishlistRepo, listingRepo)

	listingRepo.On("GetByID", mock.Anything, "nope").Return(nil, errors.NotFound("Listing", nil))

	_, err := uc.Add(context.Background(), "user-1", "nope")

	assert.True(t, errors.Is(err, "NOT_FOUND"))
	wishlistRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything)
}

func TestWishlistRemoveAbsentPair(t *testing.T) {
	wishlistRepo := new(mockWishlistRepository)
	uc := NewWishlistUseCase(wishlistRepo, new(mockListingRepository))

	wishlistRepo.On("Remove", mock.Anything, "user-1", "listing-1").Return(nil)

	assert.NoError(t, uc.Remove(context.Background(), "user-1", "listing-1"))
}

func TestWishlistListKeepsClosedListings(t *testing.T) {
	wishlistRepo := new(mockWishlistRepository)
	uc := NewWishlistUseCase(wishlistRepo, new(mockListingRepository))

	items := []entity.WishlistItemWithListing{
		{
			ID:        "user-1_listing-1",
			UserID:    "user-1",
			ListingID: "listing-1",
			Listing:   &entity.Listing{ID: "listing-1", Title: "Beams", Status: entity.ListingStatusProcured},
		},
	}
	wishlistRepo.On("ListByUserID", mock.Anything, "user-1", 20, 0).Return(items, int64(1), nil)

	result, total, err := uc.List(context.Background(), "user-1", 1, 20)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	if assert.Len(t, result, 1) {
		// A procured listing stays on the list, status tells the client
		// to render the annotation
		assert.Equal(t, entity.ListingStatusProcured, result[0].Listing.Status)
	}
}
