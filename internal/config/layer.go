package config

import (
	"fmt"
	"time"

	"coursecal/internal/calendar"
	appLog "coursecal/internal/log"
	"coursecal/internal/model"
)

// Recognized configuration keys. The override layer is flat, so each key
// is looked up on its own rather than by walking a nested structure.
const (
	KeyTimezone  = "tz"
	KeyToday     = "today"
	KeyStart     = "start"
	KeyEnd       = "end"
	KeyWeekNames = "week_names"
	KeyPlan      = "plan"
	KeyOutputKey = "output_key"
	KeyWeeksOff  = "weeks_off"
)

// Layer is one flat configuration namespace.
type Layer map[string]any

// Resolve returns the value of key from the override layer when it holds
// the key, else from the local layer. Either layer may be nil. A false
// second result means neither layer sets key, which callers treat as the
// feature being disabled.
func Resolve(key string, override, local Layer) (any, bool) {
	if override != nil {
		if v, ok := override[key]; ok {
			return v, true
		}
	}
	if local != nil {
		if v, ok := local[key]; ok {
			return v, true
		}
	}
	return nil, false
}

// Effective resolves every recognized key of doc into the settings of one
// invocation. e overrides "today" in both layers. The timezone is loaded
// here so an invalid zone fails before any computation.
func Effective(doc *Document, e Env, logger *appLog.Logger) (calendar.EffectiveConfig, error) {
	if logger == nil {
		logger = appLog.Nop()
	}
	override, local := doc.OverrideLayer(), doc.LocalLayer()
	get := func(key string) (any, bool) {
		v, ok := Resolve(key, override, local)
		if ok && override != nil {
			if _, fromOverride := override[key]; fromOverride {
				logger.Debug("config key from override layer", "key", key)
			}
		}
		return v, ok
	}

	cfg := calendar.EffectiveConfig{
		Timezone:  calendar.DefaultTimezone,
		OutputKey: calendar.DefaultOutputKey,
	}

	if v, ok := get(KeyTimezone); ok && v != nil {
		s, err := asString(KeyTimezone, v)
		if err != nil {
			return calendar.EffectiveConfig{}, err
		}
		cfg.Timezone = s
	}
	loc, err := calendar.LoadLocation(cfg.Timezone)
	if err != nil {
		return calendar.EffectiveConfig{}, err
	}
	cfg.Location = loc

	today, err := e.TodayOverride()
	if err != nil {
		return calendar.EffectiveConfig{}, err
	}
	if today != nil {
		logger.Debug("today pinned by environment", "today", today.String())
		cfg.NowOverride = today
	} else if v, ok := get(KeyToday); ok {
		if cfg.NowOverride, err = asDate(KeyToday, v); err != nil {
			return calendar.EffectiveConfig{}, err
		}
	}

	if v, ok := get(KeyStart); ok {
		if cfg.StartDate, err = asDate(KeyStart, v); err != nil {
			return calendar.EffectiveConfig{}, err
		}
	}
	if v, ok := get(KeyEnd); ok {
		if cfg.EndDate, err = asDate(KeyEnd, v); err != nil {
			return calendar.EffectiveConfig{}, err
		}
	}

	if v, ok := get(KeyWeekNames); ok {
		if cfg.WeekNames, err = asStrings(KeyWeekNames, v); err != nil {
			return calendar.EffectiveConfig{}, err
		}
	}

	if v, ok := get(KeyPlan); ok {
		if cfg.Plan, err = asPlan(v, logger); err != nil {
			return calendar.EffectiveConfig{}, err
		}
	}

	if v, ok := get(KeyWeeksOff); ok {
		if cfg.WeeksOff, err = asInts(KeyWeeksOff, v); err != nil {
			return calendar.EffectiveConfig{}, err
		}
	}

	if v, ok := get(KeyOutputKey); ok && v != nil {
		s, err := asString(KeyOutputKey, v)
		if err != nil {
			return calendar.EffectiveConfig{}, err
		}
		if s != "" {
			cfg.OutputKey = s
		}
	}

	return cfg, nil
}

func asLayer(v any) Layer {
	switch m := v.(type) {
	case Layer:
		return m
	case map[string]any:
		return Layer(m)
	case map[any]any:
		out := make(Layer, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out
	default:
		return nil
	}
}

func asString(key string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", &calendar.ConfigError{Key: key, Value: v, Reason: "expected a string"}
	}
	return s, nil
}

// asDate accepts YYYY-MM-DD strings as well as the time.Time values YAML
// produces for unquoted timestamps. nil leaves the date unset.
func asDate(key string, v any) (*model.Date, error) {
	switch d := v.(type) {
	case nil:
		return nil, nil
	case model.Date:
		return &d, nil
	case *model.Date:
		return d, nil
	case time.Time:
		date := model.DateOf(d)
		return &date, nil
	case string:
		date, err := model.ParseDate(d)
		if err != nil {
			return nil, &calendar.ConfigError{Key: key, Value: v, Reason: "expected a YYYY-MM-DD date"}
		}
		return &date, nil
	default:
		return nil, &calendar.ConfigError{Key: key, Value: v, Reason: "expected a YYYY-MM-DD date"}
	}
}

func asStrings(key string, v any) ([]string, error) {
	switch list := v.(type) {
	case nil:
		return nil, nil
	case []string:
		return append([]string(nil), list...), nil
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, &calendar.ConfigError{Key: key, Value: item, Reason: "expected a list of strings"}
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, &calendar.ConfigError{Key: key, Value: v, Reason: "expected a list of strings"}
	}
}

func asInts(key string, v any) ([]int, error) {
	switch list := v.(type) {
	case nil:
		return nil, nil
	case []int:
		return append([]int(nil), list...), nil
	case []any:
		out := make([]int, 0, len(list))
		for _, item := range list {
			n, ok := item.(int)
			if !ok {
				return nil, &calendar.ConfigError{Key: key, Value: item, Reason: "expected a list of week numbers"}
			}
			out = append(out, n)
		}
		return out, nil
	default:
		return nil, &calendar.ConfigError{Key: key, Value: v, Reason: "expected a list of week numbers"}
	}
}

// asPlan converts the raw plan mapping. A plan that is not a mapping
// disables plan flags; a week entry that is not a list is skipped; a flag
// that is not a string is an error.
func asPlan(v any, logger *appLog.Logger) (map[string][]string, error) {
	if v == nil {
		return nil, nil
	}
	if typed, ok := v.(map[string][]string); ok {
		return typed, nil
	}
	raw := asLayer(v)
	if raw == nil {
		logger.Debug("plan is not a mapping; plan flags disabled", "type", fmt.Sprintf("%T", v))
		return nil, nil
	}

	plan := make(map[string][]string, len(raw))
	for week, entry := range raw {
		if entry == nil {
			continue
		}
		flags, ok := entry.([]any)
		if !ok {
			logger.Debug("plan entry is not a list; skipped", "week", week)
			continue
		}
		names := make([]string, 0, len(flags))
		for _, f := range flags {
			s, ok := f.(string)
			if !ok {
				return nil, &calendar.ConfigError{Key: KeyPlan + "." + week, Value: f, Reason: "flag names must be strings"}
			}
			names = append(names, s)
		}
		plan[week] = names
	}
	return plan, nil
}
