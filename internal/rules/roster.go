package rules

import (
	"fmt"

	"github.com/IsmaelSWO/league-backend/internal/domain"
)

// DefaultRosterLimit is the maximum of owned players plus pending bids
const DefaultRosterLimit = 18

// CheckRosterCapacity fails when owned players plus pending offers already reach the limit.
// A limit of zero or less falls back to DefaultRosterLimit.
func CheckRosterCapacity(ownedCount, pendingOfferCount, limit int) error {
	if limit <= 0 {
		limit = DefaultRosterLimit
	}
	if ownedCount+pendingOfferCount >= limit {
		return domain.NewError(domain.CodeRosterLimitExceeded, fmt.Sprintf(
			"Operación cancelada, ya que el número de jugadores en plantilla más las ofertas realizadas pendientes sería mayor a %d.", limit))
	}
	return nil
}
