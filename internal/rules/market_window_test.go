package rules

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IsmaelSWO/league-backend/internal/domain"
)

func at(month time.Month, day, hour, minute int) time.Time {
	return time.Date(2024, month, day, hour, minute, 0, 0, time.UTC)
}

func TestMarketCalendar_StateAt(t *testing.T) {
	calendar := NewMarketCalendar(nil, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want WindowState
	}{
		{"summer just after opening", at(time.March, 16, 22, 31), StateSummerWindow},
		{"summer opening instant", at(time.March, 15, 22, 30), StateSummerWindow},
		{"summer one minute early", at(time.March, 15, 22, 29), StateClosed},
		{"summer closing instant", at(time.March, 18, 22, 30), StateClosed},
		{"mid month", at(time.March, 20, 12, 0), StateClosed},
		{"first of month midnight", at(time.March, 1, 0, 0), StateWinterWindow},
		{"winter last minute", at(time.March, 4, 22, 29), StateWinterWindow},
		{"winter closing instant", at(time.March, 4, 22, 30), StateClosed},
		{"between windows", at(time.March, 10, 9, 0), StateClosed},
		{"end of month", at(time.March, 31, 23, 59), StateClosed},
		{"december summer", at(time.December, 17, 8, 0), StateSummerWindow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calendar.StateAt(tt.now))
		})
	}
}

func TestMarketCalendar_StateAt_EveryMonth(t *testing.T) {
	calendar := NewMarketCalendar(nil, time.UTC)

	for month := time.January; month <= time.December; month++ {
		assert.Equal(t, StateSummerWindow, calendar.StateAt(at(month, 16, 22, 31)), month.String())
		assert.Equal(t, StateClosed, calendar.StateAt(at(month, 20, 12, 0)), month.String())
	}
}

func TestMarketCalendar_CheckMarketWindowOpen(t *testing.T) {
	calendar := NewMarketCalendar(nil, time.UTC)

	state, err := calendar.CheckMarketWindowOpen(at(time.May, 16, 10, 0), domain.ActionClausulazo)
	assert.NoError(t, err)
	assert.Equal(t, StateSummerWindow, state)

	state, err = calendar.CheckMarketWindowOpen(at(time.May, 2, 10, 0), domain.ActionClausulazo)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrClauseBuyoutWindowClosed))
	assert.Equal(t, StateWinterWindow, state)

	state, err = calendar.CheckMarketWindowOpen(at(time.May, 2, 10, 0), "Traspaso")
	assert.NoError(t, err)
	assert.Equal(t, StateWinterWindow, state)

	_, err = calendar.CheckMarketWindowOpen(at(time.May, 16, 10, 0), "")
	assert.NoError(t, err)

	state, err = calendar.CheckMarketWindowOpen(at(time.May, 25, 10, 0), "")
	assert.True(t, errors.Is(err, domain.ErrMarketClosed))
	assert.Equal(t, StateClosed, state)
}

func TestMarketCalendar_UsesOwnLocation(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	calendar := NewMarketCalendar(nil, loc)

	// 21:00 UTC is 23:00 local, already inside the summer window
	assert.Equal(t, StateSummerWindow, calendar.StateAt(time.Date(2024, time.June, 15, 21, 0, 0, 0, time.UTC)))
	assert.Equal(t, loc, calendar.Location())
}

func TestMarketCalendar_CustomTable(t *testing.T) {
	calendar := NewMarketCalendar([]Window{
		{
			State:           StateSummerWindow,
			Start:           Bound{Day: 25},
			End:             Bound{MonthOffset: 1, Day: 2},
			AllowClausulazo: true,
			AllowTransfers:  true,
		},
	}, time.UTC)

	assert.Equal(t, StateSummerWindow, calendar.StateAt(at(time.January, 28, 0, 0)))
	assert.Equal(t, StateClosed, calendar.StateAt(at(time.January, 16, 22, 31)))
}

func TestTransferPolicy_CheckTransferAllowed(t *testing.T) {
	policy := NewTransferPolicy(NewMarketCalendar(nil, time.UTC))

	manager := &domain.User{Equipo: "Real Betis"}
	admin := &domain.User{Equipo: "Admin"}
	unassigned := &domain.User{Equipo: "Equipo no asignado"}
	regular := &domain.Player{Title: "Joaquín"}
	protected := &domain.Player{Title: "Prueba1"}

	closed := at(time.July, 25, 12, 0)
	summer := at(time.July, 16, 12, 0)
	winter := at(time.July, 2, 12, 0)

	tests := []struct {
		name    string
		now     time.Time
		actor   *domain.User
		player  *domain.Player
		action  domain.ActionType
		wantErr *domain.Error
	}{
		{"regular transfer in summer", summer, manager, regular, "", nil},
		{"regular transfer in winter", winter, manager, regular, "", nil},
		{"regular transfer while closed", closed, manager, regular, "", domain.ErrMarketClosed},
		{"clausulazo in summer", summer, manager, regular, domain.ActionClausulazo, nil},
		{"clausulazo in winter", winter, manager, regular, domain.ActionClausulazo, domain.ErrClauseBuyoutWindowClosed},
		{"admin clausulazo while closed", closed, admin, regular, domain.ActionClausulazo, nil},
		{"admin transfer while closed", closed, admin, protected, "", nil},
		{"unassigned in summer", summer, unassigned, regular, "", domain.ErrClauseBuyoutWindowClosed},
		{"unassigned clausulazo in summer", summer, unassigned, regular, domain.ActionClausulazo, domain.ErrClauseBuyoutWindowClosed},
		{"protected player in summer", summer, manager, protected, "", domain.ErrClauseBuyoutWindowClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := policy.CheckTransferAllowed(tt.now, tt.actor, tt.player, tt.action)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestTransferPolicy_ConfigurableDenylist(t *testing.T) {
	policy := NewTransferPolicy(nil)
	policy.ProtectedTitles = []string{"Leyenda"}
	policy.AdminTeam = "Comisario"

	manager := &domain.User{Equipo: "Sevilla"}
	summer := at(time.August, 16, 12, 0)

	assert.NoError(t, policy.CheckTransferAllowed(summer, manager, &domain.Player{Title: "Prueba1"}, ""))
	assert.Error(t, policy.CheckTransferAllowed(summer, manager, &domain.Player{Title: "Leyenda"}, ""))
	assert.True(t, policy.IsAdmin(&domain.User{Equipo: "Comisario"}))
	assert.False(t, policy.IsAdmin(&domain.User{Equipo: "Admin"}))
}
