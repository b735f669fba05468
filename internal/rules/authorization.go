package rules

import (
	"github.com/google/uuid"

	"github.com/IsmaelSWO/league-backend/internal/domain"
)

const msgForbidden = "No está autorizado para realizar la operación."

// CheckAuthorization fails unless the actor is the resource owner. An unset owner never matches.
func CheckAuthorization(actorID uuid.UUID, resourceOwnerID *uuid.UUID) error {
	if resourceOwnerID == nil || *resourceOwnerID != actorID {
		return domain.NewError(domain.CodeForbidden, msgForbidden)
	}
	return nil
}
