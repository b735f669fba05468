package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/IsmaelSWO/league-backend/internal/delivery/http/dto"
	"github.com/IsmaelSWO/league-backend/internal/domain"
)

// MessageHandler serves the transfer message board
type MessageHandler struct {
	messages domain.MessageService
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(messages domain.MessageService) *MessageHandler {
	return &MessageHandler{
		messages: messages,
	}
}

// ListMessages returns every announcement, newest first
// GET /api/messages/get
func (h *MessageHandler) ListMessages(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	messages, err := h.messages.ListMessages(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.MessagesResponse{Messages: messages})
}

// PostMessage appends an announcement
// POST /api/messages/post
func (h *MessageHandler) PostMessage(c echo.Context) error {
	var req dto.PostMessageRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	message, err := h.messages.PostMessage(ctx, req.TransferMessage)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dto.MessageResponse{Message: message})
}
