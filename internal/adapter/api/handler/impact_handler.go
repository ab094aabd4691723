package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/mattwyattcooper/circularbuild-sub000/internal/usecase"
	"github.com/mattwyattcooper/circularbuild-sub000/pkg/errors"
	"github.com/mattwyattcooper/circularbuild-sub000/pkg/response"
)

type ImpactHandler struct {
	impactUseCase  *usecase.ImpactUseCase
	profileUseCase *usecase.ProfileUseCase
}

func NewImpactHandler(impactUseCase *usecase.ImpactUseCase, profileUseCase *usecase.ProfileUseCase) *ImpactHandler {
	return &ImpactHandler{
		impactUseCase:  impactUseCase,
		profileUseCase: profileUseCase,
	}
}

// GetPersonalTotals returns the caller's aggregated diversion numbers.
func (h *ImpactHandler) GetPersonalTotals(c echo.Context) error {
	userID := c.Get("uid").(string)

	totals, err := h.impactUseCase.ComputePersonalTotals(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, totals)
}

// GetOrganizationTotals aggregates across every member of the caller's
// organization. Callers without an organization on their profile get a 400.
func (h *ImpactHandler) GetOrganizationTotals(c echo.Context) error {
	userID := c.Get("uid").(string)

	organization := c.QueryParam("organization")
	if organization == "" {
		profile, err := h.profileUseCase.GetByID(c.Request().Context(), userID)
		if err != nil {
			return response.Error(c, err)
		}
		organization = profile.Organization
	}

	if organization == "" {
		return response.Error(c, errors.BadRequest("No organization set on your profile", nil))
	}

	totals, err := h.impactUseCase.ComputeOrganizationTotals(c.Request().Context(), organization)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"organization": organization,
		"totals":       totals,
	})
}
