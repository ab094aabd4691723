package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/mattwyattcooper/circularbuild-sub000/internal/usecase"
	"github.com/mattwyattcooper/circularbuild-sub000/pkg/errors"
	"github.com/mattwyattcooper/circularbuild-sub000/pkg/response"
	"github.com/mattwyattcooper/circularbuild-sub000/pkg/utils"
)

type WishlistHandler struct {
	wishlistUseCase *usecase.WishlistUseCase
}

func NewWishlistHandler(wishlistUseCase *usecase.WishlistUseCase) *WishlistHandler {
	return &WishlistHandler{
		wishlistUseCase: wishlistUseCase,
	}
}

func (h *WishlistHandler) Add(c echo.Context) error {
	userID := c.Get("uid").(string)
	listingID := c.Param("listingId")

	if listingID == "" {
		return response.Error(c, errors.BadRequest("Listing ID is required", nil))
	}

	result, err := h.wishlistUseCase.Add(c.Request().Context(), userID, listingID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, result)
}

func (h *WishlistHandler) Remove(c echo.Context) error {
	userID := c.Get("uid").(string)
	listingID := c.Param("listingId")

	if listingID == "" {
		return response.Error(c, errors.BadRequest("Listing ID is required", nil))
	}

	if err := h.wishlistUseCase.Remove(c.Request().Context(), userID, listingID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Listing removed from wishlist",
	})
}

func (h *WishlistHandler) List(c echo.Context) error {
	userID := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	items, total, err := h.wishlistUseCase.List(
		c.Request().Context(),
		userID,
		pagination.Page,
		pagination.PageSize,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, items, total, pagination.Page, pagination.PageSize)
}

func (h *WishlistHandler) CheckStatus(c echo.Context) error {
	userID := c.Get("uid").(string)
	listingID := c.Param("listingId")

	saved, err := h.wishlistUseCase.IsSaved(c.Request().Context(), userID, listingID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"listing_id": listingID,
		"is_saved":   saved,
	})
}

func (h *WishlistHandler) Count(c echo.Context) error {
	userID := c.Get("uid").(string)

	count, err := h.wishlistUseCase.Count(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"count": count,
	})
}
