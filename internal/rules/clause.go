package rules

import "github.com/IsmaelSWO/league-backend/internal/domain"

// CheckClauseMonotonic rejects lowering a release clause
func CheckClauseMonotonic(oldClausula, newClausula int64) error {
	if newClausula < oldClausula {
		return domain.NewError(domain.CodeClauseDecreaseForbidden,
			"No puedes bajar la cláusula de rescisión del jugador.")
	}
	return nil
}

// CheckTransferListingValue rejects a sale price above the release clause
func CheckTransferListingValue(clausula, marketValue int64) error {
	if marketValue > clausula {
		return domain.NewError(domain.CodeListingExceedsClause,
			"No puedes poner el jugador a la venta por un importe mayor al de su cláusula de rescisión.")
	}
	return nil
}
