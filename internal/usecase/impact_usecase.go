package usecase

import (
	"context"
	"math"

	"github.com/mattwyattcooper/circularbuild-sub000/internal/domain/entity"
	"github.com/mattwyattcooper/circularbuild-sub000/internal/domain/repository"
	"github.com/mattwyattcooper/circularbuild-sub000/pkg/logger"
)

// emissionFactors maps a material label to pounds of CO2e avoided per pound
// of material diverted from landfill.
var emissionFactors = map[string]float64{
	"Steel (structural, generic carbon)": 0.845,
	"Aluminum (extrusions, sheet)":       5.98,
	"Copper (pipe, wire)":                2.10,
	"Concrete (cast-in-place, precast)":  0.07,
	"Brick and masonry":                  0.12,
	"Dimensional lumber (softwood)":      0.28,
	"Plywood and engineered wood":        0.35,
	"Drywall (gypsum board)":             0.18,
	"Asphalt shingles":                   0.09,
	"Glass (flat, float)":                0.48,
	"Insulation (fiberglass batt)":       0.95,
	"PVC (pipe, trim)":                   1.25,
}

// legacyMaterialAliases maps older label spellings still present on stored
// listings onto the current emission-factor keys.
var legacyMaterialAliases = map[string]string{
	"Steel":             "Steel (structural, generic carbon)",
	"Structural Steel":  "Steel (structural, generic carbon)",
	"Aluminum":          "Aluminum (extrusions, sheet)",
	"Copper":            "Copper (pipe, wire)",
	"Concrete":          "Concrete (cast-in-place, precast)",
	"Brick":             "Brick and masonry",
	"Lumber":            "Dimensional lumber (softwood)",
	"Wood":              "Dimensional lumber (softwood)",
	"Plywood":           "Plywood and engineered wood",
	"Drywall":           "Drywall (gypsum board)",
	"Sheetrock":         "Drywall (gypsum board)",
	"Shingles":          "Asphalt shingles",
	"Glass":             "Glass (flat, float)",
	"Insulation":        "Insulation (fiberglass batt)",
	"PVC":               "PVC (pipe, trim)",
}

// MaterialSummary is the diversion contribution of a single listing, pounds
// of material and pounds of CO2-equivalent.
type MaterialSummary struct {
	WeightLbs float64 `json:"weight_lbs"`
	CO2eLbs   float64 `json:"co2e_lbs"`
}

// DiversionTotals is an aggregate over a set of procured listings.
type DiversionTotals struct {
	WeightLbs    float64 `json:"weight_lbs"`
	CO2eLbs      float64 `json:"co2e_lbs"`
	ListingCount int     `json:"listing_count"`
	DonatedCount int     `json:"donated_count"`
	AcceptedCount int    `json:"accepted_count"`
}

// ImpactUseCase derives diversion metrics from procured listings. Pure
// read-side computation: nothing is stored, totals are recomputed per call.
type ImpactUseCase struct {
	listingRepo repository.ListingRepository
	chatRepo    repository.ChatRepository
	profileRepo repository.ProfileRepository
}

func NewImpactUseCase(
	listingRepo repository.ListingRepository,
	chatRepo repository.ChatRepository,
	profileRepo repository.ProfileRepository,
) *ImpactUseCase {
	return &ImpactUseCase{
		listingRepo: listingRepo,
		chatRepo:    chatRepo,
		profileRepo: profileRepo,
	}
}

// NormalizeMaterialLabel resolves legacy spellings to current factor keys.
func NormalizeMaterialLabel(label string) string {
	if canonical, ok := legacyMaterialAliases[label]; ok {
		return canonical
	}
	return label
}

// ComputeMaterialSummary sums a listing's structured materials breakdown when
// present, otherwise falls back to the coarse material-type label and
// approximate weight against the emission-factor table. A listing with no
// usable weight contributes zero. Results are never negative.
func ComputeMaterialSummary(listing *entity.Listing) MaterialSummary {
	if len(listing.Materials) > 0 {
		var summary MaterialSummary
		for _, m := range listing.Materials {
			if m.WeightLbs > 0 {
				summary.WeightLbs += m.WeightLbs
			}
			if m.CO2eLbs > 0 {
				summary.CO2eLbs += m.CO2eLbs
			}
		}
		return summary
	}

	if listing.WeightLbs <= 0 {
		return MaterialSummary{}
	}

	factor, ok := emissionFactors[NormalizeMaterialLabel(listing.MaterialType)]
	if !ok {
		// Unknown material still counts toward diverted weight
		return MaterialSummary{WeightLbs: listing.WeightLbs}
	}

	return MaterialSummary{
		WeightLbs: listing.WeightLbs,
		CO2eLbs:   round2(listing.WeightLbs * factor),
	}
}

// ComputePersonalTotals unions the listings the user donated (owned, status
// procured) with the listings the user accepted (buyer in a chat whose
// listing is procured), deduplicated by listing id so a listing reachable
// both ways is counted once.
func (uc *ImpactUseCase) ComputePersonalTotals(ctx context.Context, userID string) (*DiversionTotals, error) {
	totals := &DiversionTotals{}
	seen := make(map[string]bool)

	if err := uc.accumulateUserTotals(ctx, userID, totals, seen); err != nil {
		return nil, err
	}

	return totals, nil
}

// ComputeOrganizationTotals runs the personal aggregation across every
// profile sharing the organization label, with one shared seen-set so a
// listing two members both touched is still counted once.
func (uc *ImpactUseCase) ComputeOrganizationTotals(ctx context.Context, organization string) (*DiversionTotals, error) {
	members, err := uc.profileRepo.ListByOrganization(ctx, organization)
	if err != nil {
		return nil, err
	}

	totals := &DiversionTotals{}
	seen := make(map[string]bool)

	for _, member := range members {
		if err := uc.accumulateUserTotals(ctx, member.ID, totals, seen); err != nil {
			logger.Warn("Organization totals: skipping member %s: %v", member.ID, err)
		}
	}

	return totals, nil
}

func (uc *ImpactUseCase) accumulateUserTotals(ctx context.Context, userID string, totals *DiversionTotals, seen map[string]bool) error {
	donated, _, err := uc.listingRepo.ListByOwnerID(ctx, userID, entity.ListingStatusProcured, 0, 0)
	if err != nil {
		return err
	}

	for _, listing := range donated {
		if seen[listing.ID] {
			continue
		}
		seen[listing.ID] = true

		summary := ComputeMaterialSummary(listing)
		totals.WeightLbs = round2(totals.WeightLbs + summary.WeightLbs)
		totals.CO2eLbs = round2(totals.CO2eLbs + summary.CO2eLbs)
		totals.ListingCount++
		totals.DonatedCount++
	}

	chats, err := uc.chatRepo.ListByBuyerID(ctx, userID)
	if err != nil {
		return err
	}

	var acceptedIDs []string
	for _, chat := range chats {
		if !seen[chat.ListingID] {
			acceptedIDs = append(acceptedIDs, chat.ListingID)
		}
	}

	accepted, err := uc.listingRepo.GetByIDs(ctx, acceptedIDs)
	if err != nil {
		return err
	}

	for _, listing := range accepted {
		if listing.Status != entity.ListingStatusProcured || seen[listing.ID] {
			continue
		}
		seen[listing.ID] = true

		summary := ComputeMaterialSummary(listing)
		totals.WeightLbs = round2(totals.WeightLbs + summary.WeightLbs)
		totals.CO2eLbs = round2(totals.CO2eLbs + summary.CO2eLbs)
		totals.ListingCount++
		totals.AcceptedCount++
	}

	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
