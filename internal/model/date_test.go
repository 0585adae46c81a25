package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestParseDate(t *testing.T) {
	t.Run("valid date", func(t *testing.T) {
		d, err := ParseDate("2024-09-01")
		if err != nil {
			t.Fatalf("ParseDate failed: %v", err)
		}
		want := Date{Year: 2024, Month: time.September, Day: 1}
		if d != want {
			t.Errorf("ParseDate = %v, want %v", d, want)
		}
	})

	t.Run("surrounding whitespace is ignored", func(t *testing.T) {
		d, err := ParseDate("  2025-03-10 ")
		if err != nil {
			t.Fatalf("ParseDate failed: %v", err)
		}
		if d.String() != "2025-03-10" {
			t.Errorf("got %s, want 2025-03-10", d)
		}
	})

	t.Run("rejects other layouts", func(t *testing.T) {
		for _, in := range []string{"", "10.03.2025", "2025-3-10", "2025-02-30"} {
			if _, err := ParseDate(in); err == nil {
				t.Errorf("ParseDate(%q) should fail", in)
			}
		}
	})
}

func TestDateSub(t *testing.T) {
	tests := []struct {
		name string
		a, b Date
		want int
	}{
		{"same day", NewDate(2024, 9, 1), NewDate(2024, 9, 1), 0},
		{"forward", NewDate(2024, 9, 15), NewDate(2024, 9, 1), 14},
		{"backward", NewDate(2024, 8, 30), NewDate(2024, 9, 1), -2},
		{"across leap day", NewDate(2024, 3, 1), NewDate(2024, 2, 28), 2},
		{"across DST change", NewDate(2024, 10, 28), NewDate(2024, 10, 26), 2},
		{"across years", NewDate(2025, 1, 1), NewDate(2024, 1, 1), 366},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Sub(tt.b); got != tt.want {
				t.Errorf("%s.Sub(%s) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestDateAddDays(t *testing.T) {
	d := NewDate(2024, 12, 30)
	if got := d.AddDays(3); got != NewDate(2025, 1, 2) {
		t.Errorf("AddDays(3) = %s, want 2025-01-02", got)
	}
	if got := d.AddDays(-30); got != NewDate(2024, 11, 30) {
		t.Errorf("AddDays(-30) = %s, want 2024-11-30", got)
	}
	if !d.Before(d.AddDays(1)) || d.Before(d) {
		t.Error("Before should be strict")
	}
}

func TestDateIn(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Zurich")
	if err != nil {
		t.Skipf("timezone database unavailable: %v", err)
	}
	got := NewDate(2025, 3, 10).In(loc)
	if got.Hour() != 0 || got.Minute() != 0 || got.Location() != loc {
		t.Errorf("In() = %v, want midnight in %v", got, loc)
	}
	if DateOf(got) != NewDate(2025, 3, 10) {
		t.Errorf("DateOf(In()) = %s", DateOf(got))
	}
}

func TestDateCodecs(t *testing.T) {
	type doc struct {
		Start Date  `yaml:"start" json:"start"`
		End   *Date `yaml:"end,omitempty" json:"end,omitempty"`
	}

	t.Run("yaml unquoted and quoted", func(t *testing.T) {
		var v doc
		if err := yaml.Unmarshal([]byte("start: 2024-09-01\nend: \"2025-01-31\"\n"), &v); err != nil {
			t.Fatalf("yaml.Unmarshal failed: %v", err)
		}
		if v.Start != NewDate(2024, 9, 1) {
			t.Errorf("start = %s", v.Start)
		}
		if v.End == nil || *v.End != NewDate(2025, 1, 31) {
			t.Errorf("end = %v", v.End)
		}

		out, err := yaml.Marshal(v)
		if err != nil {
			t.Fatalf("yaml.Marshal failed: %v", err)
		}
		if !strings.Contains(string(out), "start: \"2024-09-01\"") && !strings.Contains(string(out), "start: 2024-09-01") {
			t.Errorf("unexpected yaml output: %s", out)
		}
	})

	t.Run("yaml rejects mappings", func(t *testing.T) {
		var v doc
		if err := yaml.Unmarshal([]byte("start: {year: 2024}\n"), &v); err == nil {
			t.Error("expected error for non-scalar date")
		}
	})

	t.Run("json", func(t *testing.T) {
		out, err := json.Marshal(doc{Start: NewDate(2024, 9, 1)})
		if err != nil {
			t.Fatalf("json.Marshal failed: %v", err)
		}
		if string(out) != `{"start":"2024-09-01"}` {
			t.Errorf("json = %s", out)
		}
	})
}

func TestContextHas(t *testing.T) {
	c := Context{"today": NewDate(2024, 9, 1), "awn": nil}
	if !c.Has("today") || !c.Has("awn") {
		t.Error("Has should report present keys, including nil values")
	}
	if c.Has("aw") {
		t.Error("Has should not report missing keys")
	}
}
