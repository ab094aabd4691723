package usecase

import (
	"context"
	"time"

	"github.com/mattwyattcooper/circularbuild-sub000/internal/domain/entity"
	"github.com/mattwyattcooper/circularbuild-sub000/internal/domain/repository"
	"github.com/mattwyattcooper/circularbuild-sub000/internal/domain/service"
	"github.com/mattwyattcooper/circularbuild-sub000/pkg/errors"
	"github.com/mattwyattcooper/circularbuild-sub000/pkg/logger"
)

// ListingUseCase owns the listing lifecycle: active listings may be edited,
// and the only transitions out of active are procured and removed, both
// terminal. Listing status determines chat liveness, so transitions cascade.
type ListingUseCase struct {
	listingRepo repository.ListingRepository
	chatRepo    repository.ChatRepository
	geocoder    service.GeocodingService
}

func NewListingUseCase(
	listingRepo repository.ListingRepository,
	chatRepo repository.ChatRepository,
	geocoder service.GeocodingService,
) *ListingUseCase {
	return &ListingUseCase{
		listingRepo: listingRepo,
		chatRepo:    chatRepo,
		geocoder:    geocoder,
	}
}

type CreateListingInput struct {
	Title          string                 `json:"title"`
	MaterialType   string                 `json:"material_type"`
	Shape          string                 `json:"shape"`
	Count          int                    `json:"count"`
	WeightLbs      float64                `json:"weight_lbs"`
	Materials      []entity.MaterialEntry `json:"materials,omitempty"`
	AvailableUntil time.Time              `json:"available_until"`
	LocationText   string                 `json:"location_text"`
	Description    string                 `json:"description"`
	PhotoURLs      []string               `json:"photo_urls,omitempty"`
	Consent        bool                   `json:"consent"`
}

// UpdateListingInput carries the only fields an owner may change after
// creation. Everything else is fixed once the listing is live.
type UpdateListingInput struct {
	AvailableUntil *time.Time `json:"available_until,omitempty"`
	Count          *int       `json:"count,omitempty"`
	Description    *string    `json:"description,omitempty"`
}

func (uc *ListingUseCase) CreateListing(ctx context.Context, ownerID string, input CreateListingInput) (*entity.Listing, error) {
	if input.Title == "" {
		return nil, errors.Validation("Title is required", nil)
	}
	if input.Shape == "" {
		return nil, errors.Validation("Shape is required", nil)
	}
	if input.AvailableUntil.IsZero() {
		return nil, errors.Validation("Availability date is required", nil)
	}
	if input.LocationText == "" {
		return nil, errors.Validation("Location is required", nil)
	}
	if input.WeightLbs <= 0 {
		return nil, errors.Validation("Weight must be greater than zero", nil)
	}
	if !input.Consent {
		return nil, errors.Validation("Donation consent is required", nil)
	}

	listing := &entity.Listing{
		OwnerID:        ownerID,
		Title:          input.Title,
		MaterialType:   input.MaterialType,
		Shape:          input.Shape,
		Count:          input.Count,
		WeightLbs:      input.WeightLbs,
		Materials:      input.Materials,
		AvailableUntil: input.AvailableUntil,
		LocationText:   input.LocationText,
		Description:    input.Description,
		PhotoURLs:      input.PhotoURLs,
		Status:         entity.ListingStatusActive,
	}

	// Geocoding is best-effort: a geocoder outage never blocks creation,
	// the listing just has no coordinates.
	if point, err := uc.geocoder.Geocode(ctx, input.LocationText); err != nil {
		logger.Warn("Geocoding failed for %q: %v", input.LocationText, err)
	} else {
		listing.Lat = &point.Lat
		listing.Lng = &point.Lng
	}

	if err := uc.listingRepo.Create(ctx, listing); err != nil {
		return nil, err
	}

	return listing, nil
}

func (uc *ListingUseCase) UpdateListing(ctx context.Context, listingID, ownerID string, input UpdateListingInput) (*entity.Listing, error) {
	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	if listing.OwnerID != ownerID {
		return nil, errors.Forbidden("You don't have permission to update this listing", nil)
	}

	if !listing.IsActive() {
		return nil, errors.InvalidTransition("Listing is no longer active and cannot be edited")
	}

	if input.AvailableUntil != nil {
		listing.AvailableUntil = *input.AvailableUntil
	}
	if input.Count != nil {
		listing.Count = *input.Count
	}
	if input.Description != nil {
		listing.Description = *input.Description
	}

	if err := uc.listingRepo.Update(ctx, listing); err != nil {
		return nil, err
	}

	return listing, nil
}

// TransitionStatus moves an active listing to procured or removed. Both are
// terminal. The status write and the chat-deactivation cascade are applied
// atomically by the repository.
func (uc *ListingUseCase) TransitionStatus(ctx context.Context, listingID, ownerID, newStatus string) (*entity.Listing, error) {
	if newStatus != entity.ListingStatusProcured && newStatus != entity.ListingStatusRemoved {
		return nil, errors.Validation("Status must be procured or removed", nil)
	}

	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	if listing.OwnerID != ownerID {
		return nil, errors.Forbidden("You don't have permission to update this listing", nil)
	}

	if !listing.IsActive() {
		return nil, errors.InvalidTransition("Listing is no longer active")
	}

	if err := uc.listingRepo.TransitionStatus(ctx, listingID, newStatus); err != nil {
		return nil, err
	}

	listing.Status = newStatus
	logger.Info("Listing %s transitioned to %s by owner %s", listingID, newStatus, ownerID)

	return listing, nil
}

func (uc *ListingUseCase) GetListingByID(ctx context.Context, id string) (*entity.Listing, error) {
	return uc.listingRepo.GetByID(ctx, id)
}

func (uc *ListingUseCase) ListListings(ctx context.Context, materialType, shape, status string, page, limit int) ([]*entity.Listing, int64, error) {
	filter := make(map[string]interface{})

	if materialType != "" {
		filter["materialType"] = materialType
	}
	if shape != "" {
		filter["shape"] = shape
	}
	if status != "" {
		filter["status"] = status
	}

	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}

	return uc.listingRepo.List(ctx, filter, limit, offset)
}

type SearchListingsInput struct {
	Query          string
	MaterialType   string
	Shape          string
	Bounds         *repository.GeoBounds
	AvailableAfter time.Time
	Page           int
	Limit          int
}

// SearchListings finds active listings by text, taxonomy and geography.
func (uc *ListingUseCase) SearchListings(ctx context.Context, input SearchListingsInput) ([]*entity.Listing, int64, error) {
	filter := make(map[string]interface{})

	if input.MaterialType != "" {
		filter["materialType"] = input.MaterialType
	}
	if input.Shape != "" {
		filter["shape"] = input.Shape
	}

	offset := (input.Page - 1) * input.Limit
	if offset < 0 {
		offset = 0
	}

	return uc.listingRepo.Search(ctx, input.Query, filter, input.Bounds, input.AvailableAfter, input.Limit, offset)
}

func (uc *ListingUseCase) ListByOwner(ctx context.Context, ownerID, status string, limit, offset int) ([]*entity.Listing, int64, error) {
	return uc.listingRepo.ListByOwnerID(ctx, ownerID, status, limit, offset)
}

// SweepExpired removes active listings whose availability window has passed,
// using the same cascading transition as an owner-initiated removal. It also
// re-asserts the cascade invariant for chats that survived a partial failure:
// any active chat pointing at a non-active listing is deactivated.
func (uc *ListingUseCase) SweepExpired(ctx context.Context) error {
	expired, err := uc.listingRepo.ListExpired(ctx, time.Now())
	if err != nil {
		return err
	}

	for _, listing := range expired {
		if err := uc.listingRepo.TransitionStatus(ctx, listing.ID, entity.ListingStatusRemoved); err != nil {
			logger.Error("Sweep: failed to remove expired listing %s: %v", listing.ID, err)
			continue
		}
		logger.Info("Sweep: expired listing %s removed", listing.ID)
	}

	return uc.reconcileChats(ctx)
}

func (uc *ListingUseCase) reconcileChats(ctx context.Context) error {
	chats, err := uc.chatRepo.ListActive(ctx)
	if err != nil {
		return err
	}

	for _, chat := range chats {
		listing, err := uc.listingRepo.GetByID(ctx, chat.ListingID)
		if err != nil {
			if errors.Is(err, "NOT_FOUND") {
				chat.IsActive = false
				if err := uc.chatRepo.Update(ctx, chat); err != nil {
					logger.Error("Sweep: failed to deactivate orphaned chat %s: %v", chat.ID, err)
				}
			}
			continue
		}

		if !listing.IsActive() {
			chat.IsActive = false
			if err := uc.chatRepo.Update(ctx, chat); err != nil {
				logger.Error("Sweep: failed to deactivate chat %s for non-active listing %s: %v", chat.ID, listing.ID, err)
			} else {
				logger.Info("Sweep: deactivated chat %s left open by listing %s", chat.ID, listing.ID)
			}
		}
	}

	return nil
}

// StartSweepJob runs SweepExpired on a fixed interval until ctx is cancelled.
func (uc *ListingUseCase) StartSweepJob(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)

	go func() {
		for {
			select {
			case <-ticker.C:
				if err := uc.SweepExpired(ctx); err != nil {
					logger.Error("Expiry sweep error: %v", err)
				}
			case <-ctx.Done():
				ticker.Stop()
				return
			}
		}
	}()

	logger.Info("Expiry sweep job started (every %s)", interval)
}
