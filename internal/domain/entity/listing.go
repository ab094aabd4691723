package entity

import (
	"time"
)

const (
	ListingStatusActive   = "active"
	ListingStatusProcured = "procured"
	ListingStatusRemoved  = "removed"
)

// MaterialEntry is one line of a listing's structured materials breakdown.
// Weight and CO2e are both pounds.
type MaterialEntry struct {
	Type      string  `json:"type" firestore:"type"`
	WeightLbs float64 `json:"weight_lbs" firestore:"weightLbs"`
	CO2eLbs   float64 `json:"co2e_lbs" firestore:"co2eLbs"`
}

type Listing struct {
	ID           string          `json:"id" firestore:"id"`
	OwnerID      string          `json:"owner_id" firestore:"ownerId"`
	Title        string          `json:"title" firestore:"title"`
	MaterialType string          `json:"material_type" firestore:"materialType"`
	Shape        string          `json:"shape" firestore:"shape"`
	Count        int             `json:"count" firestore:"count"`
	WeightLbs    float64         `json:"weight_lbs" firestore:"weightLbs"`
	Materials    []MaterialEntry `json:"materials,omitempty" firestore:"materials,omitempty"`

	AvailableUntil time.Time `json:"available_until" firestore:"availableUntil"`
	LocationText   string    `json:"location_text" firestore:"locationText"`
	Lat            *float64  `json:"lat,omitempty" firestore:"lat,omitempty"`
	Lng            *float64  `json:"lng,omitempty" firestore:"lng,omitempty"`

	Description string   `json:"description" firestore:"description"`
	PhotoURLs   []string `json:"photo_urls,omitempty" firestore:"photoUrls,omitempty"`

	Status    string    `json:"status" firestore:"status"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// IsActive reports whether the listing still accepts edits and new chats.
func (l *Listing) IsActive() bool {
	return l.Status == ListingStatusActive
}
