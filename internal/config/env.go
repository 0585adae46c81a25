package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"coursecal/internal/calendar"
	"coursecal/internal/model"
)

// Env holds the environment overrides. CALENDAR_TODAY beats both
// configuration layers.
type Env struct {
	Today string `env:"CALENDAR_TODAY"`
}

// ParseEnv loads the overrides from environment variables.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// TodayOverride returns the parsed CALENDAR_TODAY, or nil when unset.
func (e Env) TodayOverride() (*model.Date, error) {
	if e.Today == "" {
		return nil, nil
	}
	d, err := model.ParseDate(e.Today)
	if err != nil {
		return nil, &calendar.ConfigError{Key: "CALENDAR_TODAY", Value: e.Today, Reason: "expected YYYY-MM-DD"}
	}
	return &d, nil
}
