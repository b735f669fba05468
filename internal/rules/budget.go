// Package rules holds the transfer-market business rules as pure functions over entity
// snapshots. Nothing here touches storage or reads the wall clock.
package rules

import (
	"math"

	"github.com/google/uuid"

	"github.com/IsmaelSWO/league-backend/internal/domain"
)

const msgInsufficientFunds = "Operación denegada. Su presupuesto es menor a la deuda acumulada"

// ComputeOutstandingDebt sums the amounts of the given offers, skipping those that target
// excludePlayerID. Passing uuid.Nil excludes nothing. The sum saturates at math.MaxInt64.
func ComputeOutstandingDebt(offers []*domain.Offer, excludePlayerID uuid.UUID) int64 {
	var sum int64
	for _, offer := range offers {
		if offer == nil {
			continue
		}
		if excludePlayerID != uuid.Nil && offer.PlayerID == excludePlayerID {
			continue
		}
		if offer.Cantidad > 0 && sum > math.MaxInt64-offer.Cantidad {
			return math.MaxInt64
		}
		sum += offer.Cantidad
	}
	return sum
}

// CountPendingOffers counts offers not targeting excludePlayerID
func CountPendingOffers(offers []*domain.Offer, excludePlayerID uuid.UUID) int {
	count := 0
	for _, offer := range offers {
		if offer == nil {
			continue
		}
		if excludePlayerID != uuid.Nil && offer.PlayerID == excludePlayerID {
			continue
		}
		count++
	}
	return count
}

// CheckBudget fails when the new commitment plus what the user already owes exceeds the budget.
// Negative amounts count as zero.
func CheckBudget(presupuesto, newCommitment, outstandingDebt int64) error {
	newCommitment = max(newCommitment, 0)
	outstandingDebt = max(outstandingDebt, 0)

	// presupuesto-outstandingDebt cannot overflow once the debt fits in the budget
	if outstandingDebt > presupuesto || newCommitment > presupuesto-outstandingDebt {
		return domain.NewError(domain.CodeInsufficientFunds, msgInsufficientFunds)
	}
	return nil
}
