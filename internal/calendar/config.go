// Package calendar computes the calendar context of a course period: the
// current date seen from a configured timezone, ISO week data, the
// academic week relative to the period start and the plan flags that
// unlock week by week.
package calendar

import (
	"fmt"
	"time"

	"coursecal/internal/model"
)

const (
	DefaultTimezone  = "Europe/Zurich"
	DefaultOutputKey = "cal"
)

// EffectiveConfig holds the resolved settings for one invocation.
type EffectiveConfig struct {
	// Timezone is the IANA name the current moment is observed in.
	Timezone string
	// Location is the loaded Timezone. If nil, Compute loads it.
	Location *time.Location

	// NowOverride pins "now" to midnight of this date.
	NowOverride *model.Date

	StartDate *model.Date
	EndDate   *model.Date

	// WeekNames labels the weeks of the period; index 0 is week 1.
	WeekNames []string

	// Plan maps a week name to the flags that become true in that week.
	Plan map[string][]string

	// WeeksOff lists academic week numbers that are holidays. Only the
	// derived teaching week takes them into account.
	WeeksOff []int

	// OutputKey names where the host attaches the computed context.
	OutputKey string
}

// LoadLocation resolves an IANA timezone name. An empty name yields the
// default timezone. "Local" is rejected because it depends on the host.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		name = DefaultTimezone
	}
	if name == "Local" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, name)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidTimezone, name, err)
	}
	return loc, nil
}

func (c EffectiveConfig) location() (*time.Location, error) {
	if c.Location != nil {
		return c.Location, nil
	}
	return LoadLocation(c.Timezone)
}

// Key returns the output key, falling back to DefaultOutputKey.
func (c EffectiveConfig) Key() string {
	if c.OutputKey == "" {
		return DefaultOutputKey
	}
	return c.OutputKey
}
