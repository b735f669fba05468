package utils

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// DefaultMarketTimezone is where the league's market windows are defined
const DefaultMarketTimezone = "Europe/Madrid"

// LoadLocation resolves a timezone name, falling back to Local when the
// timezone data is missing. In production docker, ensure tzdata is installed.
func LoadLocation(name string) *time.Location {
	if name == "" {
		name = DefaultMarketTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.WithError(err).WithField("timezone", name).Warn("Unknown timezone, falling back to local time")
		return time.Local
	}
	return loc
}

// ClockIn returns a clock reporting the current time in loc
func ClockIn(loc *time.Location) func() time.Time {
	return func() time.Time {
		return time.Now().In(loc)
	}
}

// UnixMillisAfter returns the unix-millisecond timestamp d after now
func UnixMillisAfter(now time.Time, d time.Duration) int64 {
	return now.Add(d).UnixMilli()
}
