package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/mattwyattcooper/circularbuild-sub000/internal/usecase"
	"github.com/mattwyattcooper/circularbuild-sub000/pkg/errors"
	"github.com/mattwyattcooper/circularbuild-sub000/pkg/response"
	"github.com/mattwyattcooper/circularbuild-sub000/pkg/utils"
)

type ChatHandler struct {
	chatUseCase *usecase.ChatUseCase
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
	}
}

type startChatRequest struct {
	ListingID      string `json:"listing_id" validate:"required"`
	InitialMessage string `json:"initial_message"`
}

type sendMessageRequest struct {
	Body string `json:"body" validate:"required"`
}

func (h *ChatHandler) StartChat(c echo.Context) error {
	var req startChatRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request payload", err))
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	buyerID := c.Get("uid").(string)

	chat, err := h.chatUseCase.StartChat(c.Request().Context(), buyerID, usecase.StartChatInput{
		ListingID:      req.ListingID,
		InitialMessage: req.InitialMessage,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, chat)
}

func (h *ChatHandler) ListChats(c echo.Context) error {
	userID := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	chats, total, err := h.chatUseCase.ListChats(c.Request().Context(), userID, pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, chats, total, pagination.Page, pagination.PageSize)
}

func (h *ChatHandler) GetChat(c echo.Context) error {
	userID := c.Get("uid").(string)

	chat, err := h.chatUseCase.GetChatByID(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, chat)
}

func (h *ChatHandler) GetMessages(c echo.Context) error {
	userID := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	messages, total, err := h.chatUseCase.GetChatMessages(c.Request().Context(), userID, c.Param("id"), pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, messages, total, pagination.Page, pagination.PageSize)
}

func (h *ChatHandler) SendMessage(c echo.Context) error {
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request payload", err))
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	senderID := c.Get("uid").(string)

	message, err := h.chatUseCase.SendMessage(c.Request().Context(), senderID, usecase.SendMessageInput{
		ChatID: c.Param("id"),
		Body:   req.Body,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}

func (h *ChatHandler) MarkRead(c echo.Context) error {
	userID := c.Get("uid").(string)

	if err := h.chatUseCase.MarkRead(c.Request().Context(), userID, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Chat marked as read",
	})
}
