package config

import (
	"testing"

	"coursecal/internal/model"
)

func TestParseEnv(t *testing.T) {
	t.Run("unset", func(t *testing.T) {
		t.Setenv("CALENDAR_TODAY", "")

		e, err := ParseEnv()
		if err != nil {
			t.Fatalf("ParseEnv failed: %v", err)
		}
		today, err := e.TodayOverride()
		if err != nil || today != nil {
			t.Errorf("TodayOverride = %v, %v; want nil, nil", today, err)
		}
	})

	t.Run("set", func(t *testing.T) {
		t.Setenv("CALENDAR_TODAY", "2025-03-10")

		e, err := ParseEnv()
		if err != nil {
			t.Fatalf("ParseEnv failed: %v", err)
		}
		today, err := e.TodayOverride()
		if err != nil {
			t.Fatalf("TodayOverride failed: %v", err)
		}
		if today == nil || *today != model.NewDate(2025, 3, 10) {
			t.Errorf("today = %v, want 2025-03-10", today)
		}
	})

	t.Run("malformed", func(t *testing.T) {
		t.Setenv("CALENDAR_TODAY", "tomorrow")

		e, err := ParseEnv()
		if err != nil {
			t.Fatalf("ParseEnv failed: %v", err)
		}
		if _, err := e.TodayOverride(); err == nil {
			t.Error("expected error for malformed CALENDAR_TODAY")
		}
	})
}
