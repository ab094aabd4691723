package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mattwyattcooper/circularbuild-sub000/internal/domain/entity"
)

func TestComputeMaterialSummary(t *testing.T) {
	t.Run("steel factor", func(t *testing.T) {
		summary := ComputeMaterialSummary(&entity.Listing{
			MaterialType: "Steel (structural, generic carbon)",
			WeightLbs:    500,
		})

		assert.Equal(t, 500.0, summary.WeightLbs)
		assert.Equal(t, 422.5, summary.CO2eLbs)
	})

	t.Run("legacy label resolves to same factor", func(t *testing.T) {
		summary := ComputeMaterialSummary(&entity.Listing{
			MaterialType: "Structural Steel",
			WeightLbs:    500,
		})

		assert.Equal(t, 422.5, summary.CO2eLbs)
	})

	t.Run("unknown material counts weight only", func(t *testing.T) {
		summary := ComputeMaterialSummary(&entity.Listing{
			MaterialType: "Mystery composite",
			WeightLbs:    200,
		})

		assert.Equal(t, 200.0, summary.WeightLbs)
		assert.Equal(t, 0.0, summary.CO2eLbs)
	})

	t.Run("no usable weight contributes zero", func(t *testing.T) {
		summary := ComputeMaterialSummary(&entity.Listing{
			MaterialType: "Steel (structural, generic carbon)",
			WeightLbs:    0,
		})

		assert.Equal(t, MaterialSummary{}, summary)
	})

	t.Run("structured breakdown wins over coarse label", func(t *testing.T) {
		summary := ComputeMaterialSummary(&entity.Listing{
			MaterialType: "Steel (structural, generic carbon)",
			WeightLbs:    999,
			Materials: []entity.MaterialEntry{
				{Type: "Steel (structural, generic carbon)", WeightLbs: 100, CO2eLbs: 84.5},
				{Type: "Copper (pipe, wire)", WeightLbs: 50, CO2eLbs: 105},
			},
		})

		assert.Equal(t, 150.0, summary.WeightLbs)
		assert.Equal(t, 189.5, summary.CO2eLbs)
	})

	t.Run("negative entries are ignored", func(t *testing.T) {
		summary := ComputeMaterialSummary(&entity.Listing{
			Materials: []entity.MaterialEntry{
				{Type: "Steel (structural, generic carbon)", WeightLbs: -100, CO2eLbs: -84.5},
				{Type: "Copper (pipe, wire)", WeightLbs: 50, CO2eLbs: 105},
			},
		})

		assert.Equal(t, 50.0, summary.WeightLbs)
		assert.Equal(t, 105.0, summary.CO2eLbs)
		assert.GreaterOrEqual(t, summary.WeightLbs, 0.0)
		assert.GreaterOrEqual(t, summary.CO2eLbs, 0.0)
	})
}

func TestNormalizeMaterialLabel(t *testing.T) {
	assert.Equal(t, "Steel (structural, generic carbon)", NormalizeMaterialLabel("Steel"))
	assert.Equal(t, "Drywall (gypsum board)", NormalizeMaterialLabel("Sheetrock"))
	assert.Equal(t, "Steel (structural, generic carbon)", NormalizeMaterialLabel("Steel (structural, generic carbon)"))
	assert.Equal(t, "Mystery composite", NormalizeMaterialLabel("Mystery composite"))
}

func TestComputePersonalTotals(t *testing.T) {
	listingRepo := new(mockListingRepository)
	chatRepo := new(mockChatRepository)
	profileRepo := new(mockProfileRepository)
	uc := NewImpactUseCase(listingRepo, chatRepo, profileRepo)

	donated := []*entity.Listing{
		{ID: "listing-d1", MaterialType: "Steel (structural, generic carbon)", WeightLbs: 500, Status: entity.ListingStatusProcured},
	}
	listingRepo.On("ListByOwnerID", mock.Anything, "user-1", entity.ListingStatusProcured, 0, 0).Return(donated, int64(1), nil)

	chatRepo.On("ListByBuyerID", mock.Anything, "user-1").Return([]*entity.Chat{
		{ID: "chat-1", ListingID: "listing-a1", BuyerID: "user-1"},
		{ID: "chat-2", ListingID: "listing-open", BuyerID: "user-1"},
	}, nil)

	listingRepo.On("GetByIDs", mock.Anything, []string{"listing-a1", "listing-open"}).Return([]*entity.Listing{
		{ID: "listing-a1", MaterialType: "Copper (pipe, wire)", WeightLbs: 100, Status: entity.ListingStatusProcured},
		{ID: "listing-open", MaterialType: "Brick", WeightLbs: 300, Status: entity.ListingStatusActive},
	}, nil)

	totals, err := uc.ComputePersonalTotals(context.Background(), "user-1")

	assert.NoError(t, err)
	// 500 donated steel + 100 accepted copper; the active listing does not count
	assert.Equal(t, 600.0, totals.WeightLbs)
	assert.Equal(t, 632.5, totals.CO2eLbs)
	assert.Equal(t, 2, totals.ListingCount)
	assert.Equal(t, 1, totals.DonatedCount)
	assert.Equal(t, 1, totals.AcceptedCount)
	assert.GreaterOrEqual(t, totals.WeightLbs, 0.0)
	assert.GreaterOrEqual(t, totals.CO2eLbs, 0.0)
}

func TestComputePersonalTotalsDeduplicates(t *testing.T) {
	listingRepo := new(mockListingRepository)
	chatRepo := new(mockChatRepository)
	uc := NewImpactUseCase(listingRepo, chatRepo, new(mockProfileRepository))

	// The same listing shows up as donated and behind a chat the user opened
	// on their own listing flow; it must count once.
	shared := &entity.Listing{ID: "listing-1", MaterialType: "Steel (structural, generic carbon)", WeightLbs: 500, Status: entity.ListingStatusProcured}

	listingRepo.On("ListByOwnerID", mock.Anything, "user-1", entity.ListingStatusProcured, 0, 0).Return([]*entity.Listing{shared}, int64(1), nil)
	chatRepo.On("ListByBuyerID", mock.Anything, "user-1").Return([]*entity.Chat{
		{ID: "chat-1", ListingID: "listing-1", BuyerID: "user-1"},
	}, nil)
	listingRepo.On("GetByIDs", mock.Anything, mock.Anything).Return([]*entity.Listing{}, nil)

	totals, err := uc.ComputePersonalTotals(context.Background(), "user-1")

	assert.NoError(t, err)
	assert.Equal(t, 1, totals.ListingCount)
	assert.Equal(t, 500.0, totals.WeightLbs)
}

func TestComputeOrganizationTotals(t *testing.T) {
	listingRepo := new(mockListingRepository)
	chatRepo := new(mockChatRepository)
	profileRepo := new(mockProfileRepository)
	uc := NewImpactUseCase(listingRepo, chatRepo, profileRepo)

	profileRepo.On("ListByOrganization", mock.Anything, "Acme Reuse").Return([]*entity.Profile{
		{ID: "member-1", Organization: "Acme Reuse"},
		{ID: "member-2", Organization: "Acme Reuse"},
	}, nil)

	// Both members touched listing-1: member-1 donated it, member-2 accepted it.
	shared := &entity.Listing{ID: "listing-1", MaterialType: "Steel (structural, generic carbon)", WeightLbs: 500, Status: entity.ListingStatusProcured}

	listingRepo.On("ListByOwnerID", mock.Anything, "member-1", entity.ListingStatusProcured, 0, 0).Return([]*entity.Listing{shared}, int64(1), nil)
	chatRepo.On("ListByBuyerID", mock.Anything, "member-1").Return([]*entity.Chat{}, nil)
	listingRepo.On("GetByIDs", mock.Anything, mock.Anything).Return([]*entity.Listing{}, nil)

	listingRepo.On("ListByOwnerID", mock.Anything, "member-2", entity.ListingStatusProcured, 0, 0).Return([]*entity.Listing{}, int64(0), nil)
	chatRepo.On("ListByBuyerID", mock.Anything, "member-2").Return([]*entity.Chat{
		{ID: "chat-1", ListingID: "listing-1", BuyerID: "member-2"},
	}, nil)

	totals, err := uc.ComputeOrganizationTotals(context.Background(), "Acme Reuse")

	assert.NoError(t, err)
	assert.Equal(t, 1, totals.ListingCount)
	assert.Equal(t, 500.0, totals.WeightLbs)
	assert.Equal(t, 422.5, totals.CO2eLbs)
}
