package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/mattwyattcooper/circularbuild-sub000/internal/infrastructure/firebase"
	"github.com/mattwyattcooper/circularbuild-sub000/internal/usecase"
	"github.com/mattwyattcooper/circularbuild-sub000/pkg/errors"
	"github.com/mattwyattcooper/circularbuild-sub000/pkg/logger"
	"github.com/mattwyattcooper/circularbuild-sub000/pkg/response"
)

type ProfileHandler struct {
	profileUseCase *usecase.ProfileUseCase
	authClient     *firebase.AuthClient
}

func NewProfileHandler(profileUseCase *usecase.ProfileUseCase, authClient *firebase.AuthClient) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: profileUseCase,
		authClient:     authClient,
	}
}

// GetMyProfile returns the caller's profile, creating a stub on first login.
func (h *ProfileHandler) GetMyProfile(c echo.Context) error {
	userID := c.Get("uid").(string)

	email, err := h.authClient.GetEmail(c.Request().Context(), userID)
	if err != nil {
		logger.Warn("Could not resolve email for %s: %v", userID, err)
	}

	profile, err := h.profileUseCase.GetOrCreate(c.Request().Context(), userID, email)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, profile)
}

func (h *ProfileHandler) GetProfile(c echo.Context) error {
	profileID := c.Param("id")
	if profileID == "" {
		return response.Error(c, errors.BadRequest("Profile ID is required", nil))
	}

	profile, err := h.profileUseCase.GetByID(c.Request().Context(), profileID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, profile)
}

func (h *ProfileHandler) UpdateMyProfile(c echo.Context) error {
	userID := c.Get("uid").(string)

	var input usecase.UpdateProfileInput
	if err := c.Bind(&input); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request payload", err))
	}

	profile, err := h.profileUseCase.Update(c.Request().Context(), userID, input)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, profile)
}
