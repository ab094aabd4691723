package usecase

import (
	"context"

	"github.com/mattwyattcooper/circularbuild-sub000/internal/domain/entity"
	"github.com/mattwyattcooper/circularbuild-sub000/internal/domain/repository"
)

type WishlistUseCase struct {
	wishlistRepo repository.WishlistRepository
	listingRepo  repository.ListingRepository
}

func NewWishlistUseCase(
	wishlistRepo repository.WishlistRepository,
	listingRepo repository.ListingRepository,
) *WishlistUseCase {
	return &WishlistUseCase{
		wishlistRepo: wishlistRepo,
		listingRepo:  listingRepo,
	}
}

type WishlistResponse struct {
	ID        string               `json:"id"`
	UserID    string               `json:"user_id"`
	ListingID string               `json:"listing_id"`
	Listing   *WishlistListingInfo `json:"listing"`
	CreatedAt string               `json:"created_at"`
}

// WishlistListingInfo is the denormalized listing summary shown on the saved
// list. Status is included: saved listings that went procured or removed stay
// in the set and render with the annotation.
type WishlistListingInfo struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	MaterialType string   `json:"material_type"`
	Shape        string   `json:"shape"`
	WeightLbs    float64  `json:"weight_lbs"`
	LocationText string   `json:"location_text"`
	PhotoURLs    []string `json:"photo_urls,omitempty"`
	Status       string   `json:"status"`
	OwnerID      string   `json:"owner_id"`
}

func listingInfo(listing *entity.Listing) *WishlistListingInfo {
	return &WishlistListingInfo{
		ID:           listing.ID,
		Title:        listing.Title,
		MaterialType: listing.MaterialType,
		Shape:        listing.Shape,
		WeightLbs:    listing.WeightLbs,
		LocationText: listing.LocationText,
		PhotoURLs:    listing.PhotoURLs,
		Status:       listing.Status,
		OwnerID:      listing.OwnerID,
	}
}

// Add saves a listing. Idempotent: adding the same listing twice leaves one
// entry.
func (u *WishlistUseCase) Add(ctx context.Context, userID, listingID string) (*WishlistResponse, error) {
	listing, err := u.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	item, err := u.wishlistRepo.Add(ctx, userID, listingID)
	if err != nil {
		return nil, err
	}

	return &WishlistResponse{
		ID:        item.ID,
		UserID:    item.UserID,
		ListingID: item.ListingID,
		Listing:   listingInfo(listing),
		CreatedAt: item.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}, nil
}

// Remove unsaves a listing. Removing an absent pair succeeds as a no-op.
func (u *WishlistUseCase) Remove(ctx context.Context, userID, listingID string) error {
	return u.wishlistRepo.Remove(ctx, userID, listingID)
}

func (u *WishlistUseCase) List(ctx context.Context, userID string, page, pageSize int) ([]WishlistResponse, int64, error) {
	offset := (page - 1) * pageSize

	items, total, err := u.wishlistRepo.ListByUserID(ctx, userID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}

	var response []WishlistResponse
	for _, item := range items {
		response = append(response, WishlistResponse{
			ID:        item.ID,
			UserID:    item.UserID,
			ListingID: item.ListingID,
			Listing:   listingInfo(item.Listing),
			CreatedAt: item.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	return response, total, nil
}

func (u *WishlistUseCase) IsSaved(ctx context.Context, userID, listingID string) (bool, error) {
	return u.wishlistRepo.IsSaved(ctx, userID, listingID)
}

func (u *WishlistUseCase) Count(ctx context.Context, userID string) (int64, error) {
	return u.wishlistRepo.Count(ctx, userID)
}
