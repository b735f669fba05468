package rules

import (
	"time"

	"github.com/IsmaelSWO/league-backend/internal/domain"
)

// Team labels with special treatment
const (
	DefaultAdminTeam      = "Admin"
	DefaultUnassignedTeam = "Equipo no asignado"
)

// DefaultProtectedTitles are fixture players nobody but an admin may transfer
func DefaultProtectedTitles() []string {
	return []string{"Prueba2(NO ME FICHES)", "Prueba1"}
}

// TransferPolicy combines the market calendar with the team-based exceptions
type TransferPolicy struct {
	Calendar        *MarketCalendar
	AdminTeam       string
	UnassignedTeam  string
	ProtectedTitles []string
}

// NewTransferPolicy creates a policy with the league defaults
func NewTransferPolicy(calendar *MarketCalendar) *TransferPolicy {
	if calendar == nil {
		calendar = NewMarketCalendar(nil, nil)
	}
	return &TransferPolicy{
		Calendar:        calendar,
		AdminTeam:       DefaultAdminTeam,
		UnassignedTeam:  DefaultUnassignedTeam,
		ProtectedTitles: DefaultProtectedTitles(),
	}
}

// IsAdmin reports whether the user belongs to the admin team
func (p *TransferPolicy) IsAdmin(user *domain.User) bool {
	return user != nil && user.Equipo == p.AdminTeam
}

// IsUnassigned reports whether the user has no team yet
func (p *TransferPolicy) IsUnassigned(user *domain.User) bool {
	return user != nil && user.Equipo == p.UnassignedTeam
}

// IsProtected reports whether the player is on the no-transfer list
func (p *TransferPolicy) IsProtected(player *domain.Player) bool {
	if player == nil {
		return false
	}
	for _, title := range p.ProtectedTitles {
		if player.Title == title {
			return true
		}
	}
	return false
}

// CheckTransferAllowed is the window/authorization composite guarding player removals.
// Unassigned teams are always refused; admins skip the protected list and the calendar.
// Refusals that are not about the regular market report the clause-buyout message first,
// matching the order the league has always applied.
func (p *TransferPolicy) CheckTransferAllowed(now time.Time, actor *domain.User, player *domain.Player, action domain.ActionType) error {
	if p.IsUnassigned(actor) {
		return domain.NewError(domain.CodeClauseBuyoutWindowClosed, msgClauseBuyoutClosed)
	}
	if p.IsAdmin(actor) {
		return nil
	}
	if p.IsProtected(player) {
		return domain.NewError(domain.CodeClauseBuyoutWindowClosed, msgClauseBuyoutClosed)
	}
	_, err := p.Calendar.CheckMarketWindowOpen(now, action)
	return err
}
