package repository

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/mattwyattcooper/circularbuild-sub000/internal/domain/entity"
	"github.com/mattwyattcooper/circularbuild-sub000/internal/domain/repository"
	"github.com/mattwyattcooper/circularbuild-sub000/pkg/errors"
)

type firestoreListingRepository struct {
	client *firestore.Client
}

func NewFirestoreListingRepository(client *firestore.Client) repository.ListingRepository {
	return &firestoreListingRepository{
		client: client,
	}
}

func (r *firestoreListingRepository) Create(ctx context.Context, listing *entity.Listing) error {
	if listing.ID == "" {
		doc := r.client.Collection("listings").NewDoc()
		listing.ID = doc.ID
	}

	now := time.Now()
	if listing.CreatedAt.IsZero() {
		listing.CreatedAt = now
	}
	listing.UpdatedAt = now

	_, err := r.client.Collection("listings").Doc(listing.ID).Set(ctx, listing)
	if err != nil {
		return errors.Internal("Failed to create listing", err)
	}

	return nil
}

func (r *firestoreListingRepository) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	doc, err := r.client.Collection("listings").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Listing", err)
		}
		return nil, errors.Internal("Failed to get listing", err)
	}

	var listing entity.Listing
	if err := doc.DataTo(&listing); err != nil {
		return nil, errors.Internal("Failed to parse listing data", err)
	}

	return &listing, nil
}

func (r *firestoreListingRepository) GetByIDs(ctx context.Context, ids []string) ([]*entity.Listing, error) {
	var listings []*entity.Listing

	for _, id := range ids {
		doc, err := r.client.Collection("listings").Doc(id).Get(ctx)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				continue // Referenced listing gone, skip it
			}
			return nil, errors.Internal("Failed to get listing", err)
		}

		var listing entity.Listing
		if err := doc.DataTo(&listing); err != nil {
			continue
		}
		listings = append(listings, &listing)
	}

	return listings, nil
}

func (r *firestoreListingRepository) Update(ctx context.Context, listing *entity.Listing) error {
	listing.UpdatedAt = time.Now()

	_, err := r.client.Collection("listings").Doc(listing.ID).Set(ctx, listing)
	if err != nil {
		return errors.Internal("Failed to update listing", err)
	}

	return nil
}

func (r *firestoreListingRepository) List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]*entity.Listing, int64, error) {
	query := r.client.Collection("listings").Query

	if filter == nil {
		filter = make(map[string]interface{})
	}
	if _, ok := filter["status"]; !ok {
		filter["status"] = entity.ListingStatusActive
	}

	for key, value := range filter {
		query = query.Where(key, "==", value)
	}

	query = query.OrderBy("createdAt", firestore.Desc)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count listings", err)
	}
	total := int64(len(allDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var listings []*entity.Listing

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate listings", err)
		}
		var listing entity.Listing
		if err := doc.DataTo(&listing); err != nil {
			return nil, 0, errors.Internal("Failed to parse listing data", err)
		}
		listings = append(listings, &listing)
	}

	return listings, total, nil
}

// Search fetches matching status/filter rows and narrows them in memory.
// Firestore has no full-text search, so the text and bounding-box checks run
// client-side over the filtered set.
func (r *firestoreListingRepository) Search(ctx context.Context, query string, filter map[string]interface{}, bounds *repository.GeoBounds, availableAfter time.Time, limit, offset int) ([]*entity.Listing, int64, error) {
	baseQuery := r.client.Collection("listings").Query

	if filter == nil {
		filter = make(map[string]interface{})
	}
	if _, ok := filter["status"]; !ok {
		filter["status"] = entity.ListingStatusActive
	}
	for key, value := range filter {
		baseQuery = baseQuery.Where(key, "==", value)
	}

	docs, err := baseQuery.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to search listings", err)
	}

	query = strings.ToLower(query)

	var matched []*entity.Listing
	for _, doc := range docs {
		var listing entity.Listing
		if err := doc.DataTo(&listing); err != nil {
			continue
		}

		if query != "" &&
			!strings.Contains(strings.ToLower(listing.Title), query) &&
			!strings.Contains(strings.ToLower(listing.Description), query) &&
			!strings.Contains(strings.ToLower(listing.MaterialType), query) {
			continue
		}

		if bounds != nil {
			// Listings without coordinates never match a geographic filter
			if listing.Lat == nil || listing.Lng == nil {
				continue
			}
			if *listing.Lat < bounds.MinLat || *listing.Lat > bounds.MaxLat ||
				*listing.Lng < bounds.MinLng || *listing.Lng > bounds.MaxLng {
				continue
			}
		}

		if !availableAfter.IsZero() && listing.AvailableUntil.Before(availableAfter) {
			continue
		}

		matched = append(matched, &listing)
	}

	total := int64(len(matched))

	start := offset
	if start > len(matched) {
		start = len(matched)
	}
	end := len(matched)
	if limit > 0 && start+limit < end {
		end = start + limit
	}

	return matched[start:end], total, nil
}

func (r *firestoreListingRepository) ListByOwnerID(ctx context.Context, ownerID string, status string, limit, offset int) ([]*entity.Listing, int64, error) {
	query := r.client.Collection("listings").Where("ownerId", "==", ownerID)
	if status != "" {
		query = query.Where("status", "==", status)
	}
	query = query.OrderBy("createdAt", firestore.Desc)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to fetch owner listings", err)
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

	var listings []*entity.Listing
	for i := start; i < end; i++ {
		var listing entity.Listing
		if err := allDocs[i].DataTo(&listing); err != nil {
			continue
		}
		listings = append(listings, &listing)
	}

	return listings, total, nil
}

func (r *firestoreListingRepository) ListExpired(ctx context.Context, before time.Time) ([]*entity.Listing, error) {
	query := r.client.Collection("listings").
		Where("status", "==", entity.ListingStatusActive).
		Where("availableUntil", "<", before)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to query expired listings", err)
	}

	var listings []*entity.Listing
	for _, doc := range docs {
		var listing entity.Listing
		if err := doc.DataTo(&listing); err != nil {
			continue
		}
		listings = append(listings, &listing)
	}

	return listings, nil
}

// TransitionStatus writes the new listing status and flips isActive off on
// every chat referencing the listing as one transaction, so readers never see
// a non-active listing with a live chat.
func (r *firestoreListingRepository) TransitionStatus(ctx context.Context, listingID, newStatus string) error {
	listingRef := r.client.Collection("listings").Doc(listingID)
	chatQuery := r.client.Collection("chats").
		Where("listingId", "==", listingID).
		Where("isActive", "==", true)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(listingRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Listing", err)
			}
			return err
		}

		var listing entity.Listing
		if err := doc.DataTo(&listing); err != nil {
			return err
		}

		if listing.Status != entity.ListingStatusActive {
			return errors.InvalidTransition("Listing is no longer active")
		}

		chatDocs, err := tx.Documents(chatQuery).GetAll()
		if err != nil {
			return err
		}

		now := time.Now()
		if err := tx.Update(listingRef, []firestore.Update{
			{Path: "status", Value: newStatus},
			{Path: "updatedAt", Value: now},
		}); err != nil {
			return err
		}

		for _, chatDoc := range chatDocs {
			if err := tx.Update(chatDoc.Ref, []firestore.Update{
				{Path: "isActive", Value: false},
				{Path: "updatedAt", Value: now},
			}); err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, "NOT_FOUND") || errors.Is(err, "INVALID_TRANSITION") {
			return err
		}
		return errors.Internal("Failed to transition listing status", err)
	}

	return nil
}
