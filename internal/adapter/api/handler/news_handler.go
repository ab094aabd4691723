package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/mattwyattcooper/circularbuild-sub000/internal/usecase"
	"github.com/mattwyattcooper/circularbuild-sub000/pkg/errors"
	"github.com/mattwyattcooper/circularbuild-sub000/pkg/response"
	"github.com/mattwyattcooper/circularbuild-sub000/pkg/utils"
)

type NewsHandler struct {
	newsUseCase *usecase.NewsUseCase
}

func NewNewsHandler(newsUseCase *usecase.NewsUseCase) *NewsHandler {
	return &NewsHandler{
		newsUseCase: newsUseCase,
	}
}

func (h *NewsHandler) ListPosts(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	posts, total, err := h.newsUseCase.ListPosts(c.Request().Context(), pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, posts, total, pagination.Page, pagination.PageSize)
}

func (h *NewsHandler) GetPost(c echo.Context) error {
	slug := c.Param("slug")
	if slug == "" {
		return response.Error(c, errors.BadRequest("Post slug is required", nil))
	}

	post, err := h.newsUseCase.GetPostBySlug(c.Request().Context(), slug)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, post)
}
