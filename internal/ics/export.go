package ics

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"coursecal/internal/calendar"
	appLog "coursecal/internal/log"
	"coursecal/internal/model"
)

const (
	// ProductID identifies feeds written by Export.
	ProductID = "-//coursecal//academic weeks//EN"

	propWeek = ical.ComponentProperty("X-COURSECAL-WEEK")
	propName = ical.ComponentProperty("X-COURSECAL-NAME")
	propFlag = ical.ComponentProperty("X-COURSECAL-FLAG")

	category = "academic-week"
)

// ErrNoWeeks is returned when the configuration has no start date or no
// week names, so there is nothing to export.
var ErrNoWeeks = errors.New("ics: no academic weeks configured")

// Export renders the academic weeks of cfg as an iCalendar feed.
//
//   - One all-day VEVENT per week, [start, start+7d).
//   - SUMMARY is "Week N: <label>"; DESCRIPTION lists the plan flags that
//     unlock in that week.
//   - X-COURSECAL-* properties carry the raw number, label and flags so
//     ParseWeeks can read the feed back.
//
// stamp becomes DTSTAMP of every event; passing a fixed value makes the
// output reproducible.
func Export(cfg calendar.EffectiveConfig, name string, stamp time.Time) ([]byte, error) {
	weeks, err := calendar.Weeks(cfg)
	if err != nil {
		return nil, err
	}
	if len(weeks) == 0 {
		return nil, ErrNoWeeks
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(ProductID)
	if name != "" {
		cal.SetXWRCalName(name)
	}
	if cfg.Timezone != "" {
		cal.SetXWRTimezone(cfg.Timezone)
	}

	for _, w := range weeks {
		ev := cal.AddEvent(weekUID(name, w))
		ev.SetDtStampTime(stamp.UTC())
		ev.SetAllDayStartAt(w.Start.In(time.UTC))
		ev.SetAllDayEndAt(w.End.In(time.UTC))
		ev.SetSummary(fmt.Sprintf("Week %d: %s", w.Number, w.Name))
		ev.SetProperty(ical.ComponentPropertyCategories, category)
		if len(w.Flags) > 0 {
			ev.SetDescription("Unlocks: " + strings.Join(w.Flags, ", "))
		}

		ev.SetProperty(propWeek, strconv.Itoa(w.Number))
		ev.SetProperty(propName, w.Name)
		for _, f := range w.Flags {
			ev.AddProperty(propFlag, f)
		}
	}

	appLog.Debug("ics export completed", "name", name, "week_count", len(weeks))
	return []byte(cal.Serialize()), nil
}

// weekUID derives a stable UID from the feed name, week number and start
// date so re-exports update events in subscribed clients instead of
// duplicating them.
func weekUID(name string, w model.Week) string {
	if name == "" {
		name = "coursecal"
	}
	return fmt.Sprintf("week-%d-%s@%s", w.Number, w.Start.String(), strings.ReplaceAll(name, " ", "-"))
}
