package dto

import "github.com/IsmaelSWO/league-backend/internal/domain"

// SetBudgetRequest carries the new budget after a clause payment
type SetBudgetRequest struct {
	Presupuesto *int64 `json:"presupuesto"`
}

// UserResponse wraps a single user
type UserResponse struct {
	User *domain.User `json:"user"`
}

// UsersResponse wraps a list of users
type UsersResponse struct {
	Users []*domain.User `json:"users"`
}
