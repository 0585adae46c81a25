package calendar

import (
	"fmt"
	"slices"
	"time"

	"github.com/teambition/rrule-go"

	"coursecal/internal/model"
)

// expandPlan sets one boolean per plan flag: true once the current week
// offset w has reached the week the flag is declared in. It must run after
// every other field is in place so a flag can never silently replace one.
func expandPlan(out model.Context, weekNames []string, plan map[string][]string, w int) error {
	names := make([]string, 0, len(plan))
	for name := range plan {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if !slices.Contains(weekNames, name) {
			return &ConfigError{Key: "plan", Value: name, Reason: "plan refers to a week that is not in week_names"}
		}
	}

	for i, wn := range weekNames {
		flags, ok := plan[wn]
		if !ok {
			continue
		}
		for _, flag := range flags {
			if out.Has(flag) {
				return &ConfigError{Key: "plan", Value: flag, Reason: "flag collides with an existing key"}
			}
			out[flag] = i <= w
		}
	}
	return nil
}

// Weeks lists the academic weeks of cfg with their plan flags. Week
// boundaries follow a weekly recurrence anchored on the start date. It
// returns nil when cfg has no start date or no week names.
func Weeks(cfg EffectiveConfig) ([]model.Week, error) {
	if cfg.StartDate == nil || len(cfg.WeekNames) == 0 {
		return nil, nil
	}

	r, err := rrule.NewRRule(rrule.ROption{
		Freq:    rrule.WEEKLY,
		Dtstart: cfg.StartDate.In(time.UTC),
		Count:   len(cfg.WeekNames),
	})
	if err != nil {
		return nil, fmt.Errorf("week recurrence: %w", err)
	}

	starts := r.All()
	weeks := make([]model.Week, 0, len(starts))
	for i, t := range starts {
		name := cfg.WeekNames[i]
		start := model.DateOf(t)
		weeks = append(weeks, model.Week{
			Number: i + 1,
			Name:   name,
			Start:  start,
			End:    start.AddDays(7),
			Flags:  slices.Clone(cfg.Plan[name]),
		})
	}
	return weeks, nil
}
