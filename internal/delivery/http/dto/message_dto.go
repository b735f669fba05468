package dto

import "github.com/IsmaelSWO/league-backend/internal/domain"

// PostMessageRequest is the body of POST /messages/post
type PostMessageRequest struct {
	TransferMessage string `json:"TransferMessage"`
}

// MessageResponse wraps a created message
type MessageResponse struct {
	Message *domain.Message `json:"message"`
}

// MessagesResponse wraps the message board
type MessagesResponse struct {
	Messages []*domain.Message `json:"messages"`
}
