package rules

import (
	"time"

	"github.com/IsmaelSWO/league-backend/internal/domain"
)

// WindowState names the market phase at a point in time
type WindowState string

const (
	StateSummerWindow WindowState = "SUMMER_WINDOW"
	StateWinterWindow WindowState = "WINTER_WINDOW"
	StateClosed       WindowState = "CLOSED"
)

const (
	msgClauseBuyoutClosed = "Operación cancelada, solo se puede pagar cláusulas de rescisión durante los mercados de verano (del 15 al 18 de cada mes)"
	msgMarketClosed       = "Operación cancelada, el mercado de fichajes no se encuentra abierto"
)

// Bound is a wall-clock instant relative to the calendar month being evaluated
type Bound struct {
	MonthOffset int `yaml:"month_offset"`
	Day         int `yaml:"day"`
	Hour        int `yaml:"hour"`
	Minute      int `yaml:"minute"`
}

// At resolves the bound against the month of ref. Overflowing days and months
// normalize the way time.Date does.
func (b Bound) At(ref time.Time) time.Time {
	year, month, _ := ref.Date()
	return time.Date(year, month+time.Month(b.MonthOffset), b.Day, b.Hour, b.Minute, 0, 0, ref.Location())
}

// Window is a named, half-open [Start, End) interval and the actions it admits
type Window struct {
	State           WindowState `yaml:"state"`
	Start           Bound       `yaml:"start"`
	End             Bound       `yaml:"end"`
	AllowClausulazo bool        `yaml:"allow_clausulazo"`
	AllowTransfers  bool        `yaml:"allow_transfers"`
}

// Contains reports whether now falls inside the window for now's own month
func (w Window) Contains(now time.Time) bool {
	start := w.Start.At(now)
	end := w.End.At(now)
	return !now.Before(start) && now.Before(end)
}

func (w Window) admits(action domain.ActionType) bool {
	if action == domain.ActionClausulazo {
		return w.AllowClausulazo
	}
	return w.AllowTransfers
}

// DefaultWindows reproduces the league's historical boundaries. The winter window opens
// at the start of the month: the nominal opening on the 1st of the following month at 22:30
// never falls inside the month being evaluated.
func DefaultWindows() []Window {
	return []Window{
		{
			State:           StateSummerWindow,
			Start:           Bound{Day: 15, Hour: 22, Minute: 30},
			End:             Bound{Day: 18, Hour: 22, Minute: 30},
			AllowClausulazo: true,
			AllowTransfers:  true,
		},
		{
			State:          StateWinterWindow,
			Start:          Bound{Day: 1},
			End:            Bound{Day: 4, Hour: 22, Minute: 30},
			AllowTransfers: true,
		},
	}
}

// MarketCalendar evaluates the window table in a fixed location
type MarketCalendar struct {
	windows  []Window
	location *time.Location
}

// NewMarketCalendar creates a calendar; nil location means UTC and an empty table means DefaultWindows
func NewMarketCalendar(windows []Window, location *time.Location) *MarketCalendar {
	if len(windows) == 0 {
		windows = DefaultWindows()
	}
	if location == nil {
		location = time.UTC
	}
	return &MarketCalendar{windows: windows, location: location}
}

// Location returns the calendar's time zone
func (c *MarketCalendar) Location() *time.Location {
	return c.location
}

// StateAt returns the first window containing now, or StateClosed
func (c *MarketCalendar) StateAt(now time.Time) WindowState {
	local := now.In(c.location)
	for _, w := range c.windows {
		if w.Contains(local) {
			return w.State
		}
	}
	return StateClosed
}

// CheckMarketWindowOpen returns the current state and an error when no open window admits the action
func (c *MarketCalendar) CheckMarketWindowOpen(now time.Time, action domain.ActionType) (WindowState, error) {
	local := now.In(c.location)
	state := c.StateAt(local)
	for _, w := range c.windows {
		if w.Contains(local) && w.admits(action) {
			return state, nil
		}
	}
	if action == domain.ActionClausulazo {
		return state, domain.NewError(domain.CodeClauseBuyoutWindowClosed, msgClauseBuyoutClosed)
	}
	return state, domain.NewError(domain.CodeMarketClosed, msgMarketClosed)
}
