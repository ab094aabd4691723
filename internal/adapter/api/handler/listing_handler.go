package handler

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mattwyattcooper/circularbuild-sub000/internal/domain/entity"
	"github.com/mattwyattcooper/circularbuild-sub000/internal/domain/repository"
	"github.com/mattwyattcooper/circularbuild-sub000/internal/usecase"
	"github.com/mattwyattcooper/circularbuild-sub000/pkg/errors"
	"github.com/mattwyattcooper/circularbuild-sub000/pkg/response"
	"github.com/mattwyattcooper/circularbuild-sub000/pkg/utils"
)

type ListingHandler struct {
	listingUseCase *usecase.ListingUseCase
}

func NewListingHandler(listingUseCase *usecase.ListingUseCase) *ListingHandler {
	return &ListingHandler{
		listingUseCase: listingUseCase,
	}
}

type materialEntryRequest struct {
	Type      string  `json:"type" validate:"required"`
	WeightLbs float64 `json:"weight_lbs" validate:"gt=0"`
	CO2eLbs   float64 `json:"co2e_lbs"`
}

type createListingRequest struct {
	Title          string                 `json:"title" validate:"required"`
	MaterialType   string                 `json:"material_type"`
	Shape          string                 `json:"shape" validate:"required"`
	Count          int                    `json:"count"`
	WeightLbs      float64                `json:"weight_lbs" validate:"gt=0"`
	Materials      []materialEntryRequest `json:"materials,omitempty" validate:"omitempty,dive"`
	AvailableUntil time.Time              `json:"available_until" validate:"required"`
	LocationText   string                 `json:"location_text" validate:"required"`
	Description    string                 `json:"description"`
	PhotoURLs      []string               `json:"photo_urls,omitempty" validate:"omitempty,dive,url"`
	Consent        bool                   `json:"consent"`
}

type updateListingRequest struct {
	AvailableUntil *time.Time `json:"available_until,omitempty"`
	Count          *int       `json:"count,omitempty"`
	Description    *string    `json:"description,omitempty"`
}

type transitionStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=procured removed"`
}

func (h *ListingHandler) CreateListing(c echo.Context) error {
	var req createListingRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request payload", err))
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	ownerID := c.Get("uid").(string)

	materials := make([]entity.MaterialEntry, len(req.Materials))
	for i, m := range req.Materials {
		materials[i] = entity.MaterialEntry{
			Type:      m.Type,
			WeightLbs: m.WeightLbs,
			CO2eLbs:   m.CO2eLbs,
		}
	}

	listing, err := h.listingUseCase.CreateListing(c.Request().Context(), ownerID, usecase.CreateListingInput{
		Title:          req.Title,
		MaterialType:   req.MaterialType,
		Shape:          req.Shape,
		Count:          req.Count,
		WeightLbs:      req.WeightLbs,
		Materials:      materials,
		AvailableUntil: req.AvailableUntil,
		LocationText:   req.LocationText,
		Description:    req.Description,
		PhotoURLs:      req.PhotoURLs,
		Consent:        req.Consent,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, listing)
}

func (h *ListingHandler) GetListing(c echo.Context) error {
	listing, err := h.listingUseCase.GetListingByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}

func (h *ListingHandler) ListListings(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	listings, total, err := h.listingUseCase.ListListings(
		c.Request().Context(),
		c.QueryParam("material_type"),
		c.QueryParam("shape"),
		c.QueryParam("status"),
		pagination.Page,
		pagination.PageSize,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, listings, total, pagination.Page, pagination.PageSize)
}

func (h *ListingHandler) SearchListings(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	input := usecase.SearchListingsInput{
		Query:        c.QueryParam("q"),
		MaterialType: c.QueryParam("material_type"),
		Shape:        c.QueryParam("shape"),
		Page:         pagination.Page,
		Limit:        pagination.PageSize,
	}

	if c.QueryParam("min_lat") != "" {
		bounds, err := parseBounds(c)
		if err != nil {
			return response.Error(c, errors.BadRequest("Invalid bounding box", err))
		}
		input.Bounds = bounds
	}

	if v := c.QueryParam("available_after"); v != "" {
		after, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return response.Error(c, errors.BadRequest("available_after must be RFC3339", err))
		}
		input.AvailableAfter = after
	}

	listings, total, err := h.listingUseCase.SearchListings(c.Request().Context(), input)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, listings, total, pagination.Page, pagination.PageSize)
}

func parseBounds(c echo.Context) (*repository.GeoBounds, error) {
	var bounds repository.GeoBounds
	var err error

	if bounds.MinLat, err = strconv.ParseFloat(c.QueryParam("min_lat"), 64); err != nil {
		return nil, err
	}
	if bounds.MaxLat, err = strconv.ParseFloat(c.QueryParam("max_lat"), 64); err != nil {
		return nil, err
	}
	if bounds.MinLng, err = strconv.ParseFloat(c.QueryParam("min_lng"), 64); err != nil {
		return nil, err
	}
	if bounds.MaxLng, err = strconv.ParseFloat(c.QueryParam("max_lng"), 64); err != nil {
		return nil, err
	}

	return &bounds, nil
}

func (h *ListingHandler) ListMyListings(c echo.Context) error {
	ownerID := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	listings, total, err := h.listingUseCase.ListByOwner(
		c.Request().Context(),
		ownerID,
		c.QueryParam("status"),
		pagination.PageSize,
		pagination.Offset,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, listings, total, pagination.Page, pagination.PageSize)
}

func (h *ListingHandler) UpdateListing(c echo.Context) error {
	var req updateListingRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request payload", err))
	}

	ownerID := c.Get("uid").(string)

	listing, err := h.listingUseCase.UpdateListing(c.Request().Context(), c.Param("id"), ownerID, usecase.UpdateListingInput{
		AvailableUntil: req.AvailableUntil,
		Count:          req.Count,
		Description:    req.Description,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}

func (h *ListingHandler) TransitionStatus(c echo.Context) error {
	var req transitionStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request payload", err))
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	ownerID := c.Get("uid").(string)

	listing, err := h.listingUseCase.TransitionStatus(c.Request().Context(), c.Param("id"), ownerID, req.Status)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}
