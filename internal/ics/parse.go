package ics

import (
	"bytes"
	"errors"
	"slices"
	"strconv"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	appLog "coursecal/internal/log"
	"coursecal/internal/model"
)

// ParseWeeks reads a feed written by Export back into weeks, ordered by
// week number. VEVENTs without X-COURSECAL-WEEK are not ours and are
// skipped; a malformed coursecal event is logged and skipped as well.
func ParseWeeks(body []byte) ([]model.Week, error) {
	if len(body) == 0 {
		return nil, errors.New("empty ICS body")
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	weeks := make([]model.Week, 0)
	for _, ve := range cal.Events() {
		if ve.GetProperty(propWeek) == nil {
			continue
		}
		w, perr := parseWeekEvent(ve)
		if perr != nil {
			uid := ""
			if p := ve.GetProperty(ical.ComponentPropertyUniqueId); p != nil {
				uid = p.Value
			}
			appLog.Error("ics week event parse failed", perr, "uid", uid)
			continue
		}
		weeks = append(weeks, w)
	}

	slices.SortFunc(weeks, func(a, b model.Week) int { return a.Number - b.Number })
	return weeks, nil
}

func parseWeekEvent(ve *ical.VEvent) (model.Week, error) {
	var w model.Week

	n, err := strconv.Atoi(strings.TrimSpace(ve.GetProperty(propWeek).Value))
	if err != nil {
		return w, errors.New("invalid X-COURSECAL-WEEK")
	}
	w.Number = n

	if p := ve.GetProperty(propName); p != nil {
		w.Name = p.Value
	}

	start := ve.GetProperty(ical.ComponentPropertyDtStart)
	end := ve.GetProperty(ical.ComponentPropertyDtEnd)
	if start == nil || end == nil {
		return w, errors.New("missing DTSTART or DTEND")
	}
	if w.Start, err = parseICSDate(start.Value); err != nil {
		return w, err
	}
	if w.End, err = parseICSDate(end.Value); err != nil {
		return w, err
	}

	for _, p := range ve.GetProperties(propFlag) {
		if p.Value != "" {
			w.Flags = append(w.Flags, p.Value)
		}
	}
	return w, nil
}

// parseICSDate parses an all-day DATE value (YYYYMMDD).
func parseICSDate(v string) (model.Date, error) {
	t, err := time.Parse("20060102", strings.TrimSpace(v))
	if err != nil {
		return model.Date{}, err
	}
	return model.DateOf(t), nil
}
