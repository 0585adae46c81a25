package ics

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"coursecal/internal/calendar"
	"coursecal/internal/model"
)

func testConfig() calendar.EffectiveConfig {
	start := model.NewDate(2024, 9, 2)
	return calendar.EffectiveConfig{
		Timezone:  "Europe/Zurich",
		StartDate: &start,
		WeekNames: []string{"Intro", "Sorting", "Graphs"},
		Plan: map[string][]string{
			"Sorting": {"quiz1", "lab1"},
			"Graphs":  {"midterm"},
		},
	}
}

func TestExport(t *testing.T) {
	stamp := time.Date(2024, 8, 1, 12, 0, 0, 0, time.UTC)

	body, err := Export(testConfig(), "Algorithms", stamp)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	out := string(body)

	if n := strings.Count(out, "BEGIN:VEVENT"); n != 3 {
		t.Errorf("expected 3 events, got %d", n)
	}
	for _, want := range []string{
		"PRODID:" + ProductID,
		"X-WR-CALNAME:Algorithms",
		"X-WR-TIMEZONE:Europe/Zurich",
		"Week 2: Sorting",
		"VALUE=DATE",
		"20240902",
		"20240923",
		"X-COURSECAL-FLAG:midterm",
		"DTSTAMP:20240801T120000Z",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output is missing %q:\n%s", want, out)
		}
	}

	again, err := Export(testConfig(), "Algorithms", stamp)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if string(again) != out {
		t.Error("export with a fixed stamp should be reproducible")
	}
}

func TestExportRoundTrip(t *testing.T) {
	cfg := testConfig()

	body, err := Export(cfg, "Algorithms", time.Now())
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	got, err := ParseWeeks(body)
	if err != nil {
		t.Fatalf("ParseWeeks failed: %v", err)
	}
	want, err := calendar.Weeks(cfg)
	if err != nil {
		t.Fatalf("Weeks failed: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestExportNoWeeks(t *testing.T) {
	cfg := testConfig()
	cfg.StartDate = nil
	if _, err := Export(cfg, "", time.Now()); !errors.Is(err, ErrNoWeeks) {
		t.Errorf("expected ErrNoWeeks without start date, got %v", err)
	}

	cfg = testConfig()
	cfg.WeekNames = nil
	if _, err := Export(cfg, "", time.Now()); !errors.Is(err, ErrNoWeeks) {
		t.Errorf("expected ErrNoWeeks without week names, got %v", err)
	}
}

func TestParseWeeksSkipsForeignEvents(t *testing.T) {
	feed := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//other//EN",
		"BEGIN:VEVENT",
		"UID:holiday@example.com",
		"DTSTAMP:20240801T000000Z",
		"DTSTART;VALUE=DATE:20241225",
		"DTEND;VALUE=DATE:20241226",
		"SUMMARY:Christmas",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:week-2@test",
		"DTSTAMP:20240801T000000Z",
		"DTSTART;VALUE=DATE:20240909",
		"DTEND;VALUE=DATE:20240916",
		"X-COURSECAL-WEEK:2",
		"X-COURSECAL-NAME:B",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:week-1@test",
		"DTSTAMP:20240801T000000Z",
		"DTSTART;VALUE=DATE:20240902",
		"DTEND;VALUE=DATE:20240909",
		"X-COURSECAL-WEEK:1",
		"X-COURSECAL-NAME:A",
		"X-COURSECAL-FLAG:intro",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:broken@test",
		"DTSTAMP:20240801T000000Z",
		"DTSTART;VALUE=DATE:20240916",
		"X-COURSECAL-WEEK:three",
		"END:VEVENT",
		"END:VCALENDAR",
		"",
	}, "\r\n")

	weeks, err := ParseWeeks([]byte(feed))
	if err != nil {
		t.Fatalf("ParseWeeks failed: %v", err)
	}
	want := []model.Week{
		{Number: 1, Name: "A", Start: model.NewDate(2024, 9, 2), End: model.NewDate(2024, 9, 9), Flags: []string{"intro"}},
		{Number: 2, Name: "B", Start: model.NewDate(2024, 9, 9), End: model.NewDate(2024, 9, 16)},
	}
	if !reflect.DeepEqual(weeks, want) {
		t.Errorf("ParseWeeks =\n%+v\nwant\n%+v", weeks, want)
	}
}

func TestParseWeeksEmpty(t *testing.T) {
	if _, err := ParseWeeks(nil); err == nil {
		t.Error("expected error for empty body")
	}
}
