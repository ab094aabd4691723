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

func validCreateInput() CreateListingInput {
	return CreateListingInput{
		Title:          "Surplus steel beams",
		MaterialType:   "Steel (structural, generic carbon)",
		Shape:          "I-beam",
		Count:          12,
		WeightLbs:      500,
		AvailableUntil: time.Now().Add(14 * 24 * time.Hour),
		LocationText:   "Pittsburgh, PA",
		Description:    "Leftover from a warehouse job",
		Consent:        true,
	}
}

func TestCreateListing(t *testing.T) {
	listingRepo := new(mockListingRepository)
	chatRepo := new(mockChatRepository)
	uc := NewListingUseCase(listingRepo, chatRepo, &stubGeocoder{})

	listingRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Listing")).Return(nil)

	listing, err := uc.CreateListing(context.Background(), "owner-1", validCreateInput())

	assert.NoError(t, err)
	assert.Equal(t, "owner-1", listing.OwnerID)
	assert.Equal(t, entity.ListingStatusActive, listing.Status)
	if assert.NotNil(t, listing.Lat) {
		assert.InDelta(t, 40.44, *listing.Lat, 0.001)
	}
	listingRepo.AssertExpectations(t)
}

func TestCreateListingValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*CreateListingInput)
	}{
		{"missing title", func(in *CreateListingInput) { in.Title = "" }},
		{"missing shape", func(in *CreateListingInput) { in.Shape = "" }},
		{"missing location", func(in *CreateListingInput) { in.LocationText = "" }},
		{"zero availability", func(in *CreateListingInput) { in.AvailableUntil = time.Time{} }},
		{"zero weight", func(in *CreateListingInput) { in.WeightLbs = 0 }},
		{"negative weight", func(in *CreateListingInput) { in.WeightLbs = -10 }},
		{"no consent", func(in *CreateListingInput) { in.Consent = false }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			listingRepo := new(mockListingRepository)
			uc := NewListingUseCase(listingRepo, new(mockChatRepository), &stubGeocoder{})

			input := validCreateInput()
			tc.mutate(&input)

			_, err := uc.CreateListing(context.Background(), "owner-1", input)

			assert.True(t, errors.Is(err, "VALIDATION_ERROR"))
			listingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateListingGeocoderFailure(t *testing.T) {
	listingRepo := new(mockListingRepository)
	uc := NewListingUseCase(listingRepo, new(mockChatRepository), &stubGeocoder{failing: true})

	listingRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Listing")).Return(nil)

	listing, err := uc.CreateListing(context.Background(), "owner-1", validCreateInput())

	assert.NoError(t, err)
	assert.Nil(t, listing.Lat)
	assert.Nil(t, listing.Lng)
}

func TestUpdateListing(t *testing.T) {
	listingRepo := new(mockListingRepository)
	uc := NewListingUseCase(listingRepo, new(mockChatRepository), &stubGeocoder{})

	existing := &entity.Listing{
		ID:          "listing-1",
		OwnerID:     "owner-1",
		Title:       "Surplus steel beams",
		Count:       12,
		Description: "original",
		Status:      entity.ListingStatusActive,
	}

	newCount := 8
	newDescription := "updated"

	listingRepo.On("GetByID", mock.Anything, "listing-1").Return(existing, nil)
	listingRepo.On("Update", mock.Anything, mock.AnythingOfType("*entity.Listing")).Return(nil)

	updated, err := uc.UpdateListing(context.Background(), "listing-1", "owner-1", UpdateListingInput{
		Count:       &newCount,
		Description: &newDescription,
	})

	assert.NoError(t, err)
	assert.Equal(t, 8, updated.Count)
	assert.Equal(t, "updated", updated.Description)
	// Fields without a pointer stay untouched
	assert.Equal(t, "Surplus steel beams", updated.Title)
}

func TestUpdateListingNotOwner(t *testing.T) {
	listingRepo := new(mockListingRepository)
	uc := NewListingUseCase(listingRepo, new(mockChatRepository), &stubGeocoder{})

	listingRepo.On("GetByID", mock.Anything, "listing-1").Return(&entity.Listing{
		ID:      "listing-1",
		OwnerID: "owner-1",
		Status:  entity.ListingStatusActive,
	}, nil)

	_, err := uc.UpdateListing(context.Background(), "listing-1", "someone-else", UpdateListingInput{})

	assert.True(t, errors.Is(err, "FORBIDDEN"))
	listingRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateListingAfterTerminalStatus(t *testing.T) {
	listingRepo := new(mockListingRepository)
	uc := NewListingUseCase(listingRepo, new(mockChatRepository), &stubGeocoder{})

	listingRepo.On("GetByID", mock.Anything, "listing-1").Return(&entity.Listing{
		ID:      "listing-1",
		OwnerID: "owner-1",
		Status:  entity.ListingStatusProcured,
	}, nil)

	_, err := uc.UpdateListing(context.Background(), "listing-1", "owner-1", UpdateListingInput{})

	assert.True(t, errors.Is(err, "INVALID_TRANSITION"))
}

func TestTransitionStatus(t *testing.T) {
	for _, target := range []string{entity.ListingStatusProcured, entity.ListingStatusRemoved} {
		t.Run(target, func(t *testing.T) {
			listingRepo := new(mockListingRepository)
			uc := NewListingUseCase(listingRepo, new(mockChatRepository), &stubGeocoder{})

			listingRepo.On("GetByID", mock.Anything, "listing-1").Return(&entity.Listing{
				ID:      "listing-1",
				OwnerID: "owner-1",
				Status:  entity.ListingStatusActive,
			}, nil)
			listingRepo.On("TransitionStatus", mock.Anything, "listing-1", target).Return(nil)

			listing, err := uc.TransitionStatus(context.Background(), "listing-1", "owner-1", target)

			assert.NoError(t, err)
			assert.Equal(t, target, listing.Status)
			listingRepo.AssertExpectations(t)
		})
	}
}

func TestTransitionStatusRejectsUnknownTarget(t *testing.T) {
	listingRepo := new(mockListingRepository)
	uc := NewListingUseCase(listingRepo, new(mockChatRepository), &stubGeocoder{})

	for _, target := range []string{"active", "archived", ""} {
		_, err := uc.TransitionStatus(context.Background(), "listing-1", "owner-1", target)
		assert.True(t, errors.Is(err, "VALIDATION_ERROR"), "target %q", target)
	}

	listingRepo.AssertNotCalled(t, "TransitionStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestTransitionStatusIsTerminal(t *testing.T) {
	listingRepo := new(mockListingRepository)
	uc := NewListingUseCase(listingRepo, new(mockChatRepository), &stubGeocoder{})

	listingRepo.On("GetByID", mock.Anything, "listing-1").Return(&entity.Listing{
		ID:      "listing-1",
		OwnerID: "owner-1",
		Status:  entity.ListingStatusProcured,
	}, nil)

	_, err := uc.TransitionStatus(context.Background(), "listing-1", "owner-1", entity.ListingStatusRemoved)

	assert.True(t, errors.Is(err, "INVALID_TRANSITION"))
	listingRepo.AssertNotCalled(t, "TransitionStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestTransitionStatusNotOwner(t *testing.T) {
	listingRepo := new(mockListingRepository)
	uc := NewListingUseCase(listingRepo, new(mockChatRepository), &stubGeocoder{})

	listingRepo.On("GetByID", mock.Anything, "listing-1").Return(&entity.Listing{
		ID:      "listing-1",
		OwnerID: "owner-1",
		Status:  entity.ListingStatusActive,
	}, nil)

	_, err := uc.TransitionStatus(context.Background(), "listing-1", "intruder", entity.ListingStatusProcured)

	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestSearchListings(t *testing.T) {
	listingRepo := new(mockListingRepository)
	uc := NewListingUseCase(listingRepo, new(mockChatRepository), &stubGeocoder{})

	expected := []*entity.Listing{{ID: "listing-1", Title: "Surplus steel beams"}}
	listingRepo.On("Search",
		mock.Anything,
		"steel",
		map[string]interface{}{"shape": "I-beam"},
		mock.Anything,
		mock.AnythingOfType("time.Time"),
		20, 0,
	).Return(expected, int64(1), nil)

	listings, total, err := uc.SearchListings(context.Background(), SearchListingsInput{
		Query: "steel",
		Shape: "I-beam",
		Page:  1,
		Limit: 20,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, listings, 1)
	listingRepo.AssertExpectations(t)
}

func TestSweepExpired(t *testing.T) {
	listingRepo := new(mockListingRepository)
	chatRepo := new(mockChatRepository)
	uc := NewListingUseCase(listingRepo, chatRepo, &stubGeocoder{})

	expired := []*entity.Listing{
		{ID: "listing-old", OwnerID: "owner-1", Status: entity.ListingStatusActive},
	}

	listingRepo.On("ListExpired", mock.Anything, mock.AnythingOfType("time.Time")).Return(expired, nil)
	listingRepo.On("TransitionStatus", mock.Anything, "listing-old", entity.ListingStatusRemoved).Return(nil)

	// One chat survived an earlier partial failure and still points at a
	// procured listing; the sweep closes it.
	staleChat := &entity.Chat{ID: "chat-stale", ListingID: "listing-done", IsActive: true}
	chatRepo.On("ListActive", mock.Anything).Return([]*entity.Chat{staleChat}, nil)
	listingRepo.On("GetByID", mock.Anything, "listing-done").Return(&entity.Listing{
		ID:     "listing-done",
		Status: entity.ListingStatusProcured,
	}, nil)
	chatRepo.On("Update", mock.Anything, mock.MatchedBy(func(c *entity.Chat) bool {
		return c.ID == "chat-stale" && !c.IsActive
	})).Return(nil)

	err := uc.SweepExpired(context.Background())

	assert.NoError(t, err)
	listingRepo.AssertExpectations(t)
	chatRepo.AssertExpectations(t)
}

func TestSweepDeactivatesOrphanedChats(t *testing.T) {
	listingRepo := new(mockListingRepository)
	chatRepo := new(mockChatRepository)
	uc := NewListingUseCase(listingRepo, chatRepo, &stubGeocoder{})

	listingRepo.On("ListExpired", mock.Anything, mock.AnythingOfType("time.Time")).Return([]*entity.Listing{}, nil)

	orphan := &entity.Chat{ID: "chat-orphan", ListingID: "listing-gone", IsActive: true}
	chatRepo.On("ListActive", mock.Anything).Return([]*entity.Chat{orphan}, nil)
	listingRepo.On("GetByID", mock.Anything, "listing-gone").Return(nil, errors.NotFound("Listing", nil))
	chatRepo.On("Update", mock.Anything, mock.MatchedBy(func(c *entity.Chat) bool {
		return c.ID == "chat-orphan" && !c.IsActive
	})).Return(nil)

	err := uc.SweepExpired(context.Background())

	assert.NoError(t, err)
	chatRepo.AssertExpectations(t)
}
