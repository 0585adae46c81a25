package calendar

import (
	"time"

	"coursecal/internal/model"
)

// Output keys. Plan flags may not reuse any of them.
const (
	KeyNow        = "now"
	KeyToday      = "today"
	KeyWeekday    = "weekday"
	KeyWeekNumber = "week_number"
	KeyISOWeekday = "iso_weekday"

	KeyEnd            = "end"
	KeyRemaining      = "remaining"
	KeyRemainingWeeks = "remaining_weeks"

	KeyStart            = "start"
	KeyElapsed          = "elapsed"
	KeyElapsedWeeks     = "elapsed_weeks"
	KeyAcademicWeek     = "academic_week"
	KeyAcademicWeekName = "academic_week_name"
	KeyAW               = "aw"
	KeyAWN              = "awn"
	KeyTeachingWeek     = "teaching_week"
	KeyTW               = "tw"
)

// Diagnostics receives debug records from the engine.
type Diagnostics interface {
	Debug(msg string, kv ...any)
}

type nopDiagnostics struct{}

func (nopDiagnostics) Debug(string, ...any) {}

// Compute derives the calendar context for cfg as observed at wallNow.
//
// The result is a fresh mapping; on error no mapping is returned. Compute
// keeps no state between calls, so identical inputs give identical
// outputs. sink may be nil.
func Compute(cfg EffectiveConfig, wallNow time.Time, sink Diagnostics) (model.Context, error) {
	if sink == nil {
		sink = nopDiagnostics{}
	}

	loc, err := cfg.location()
	if err != nil {
		return nil, err
	}

	// "now" is taken once; every field below derives from it.
	now := wallNow.In(loc)
	if cfg.NowOverride != nil {
		now = cfg.NowOverride.In(loc)
	}
	today := model.DateOf(now)
	_, isoWeek := now.ISOWeek()
	isoWeekday := isoWeekdayOf(now.Weekday())

	out := model.Context{
		KeyNow:        now,
		KeyToday:      today,
		KeyWeekday:    isoWeekday - 1,
		KeyWeekNumber: isoWeek,
		KeyISOWeekday: isoWeekday,
	}

	if cfg.EndDate != nil {
		remaining := cfg.EndDate.Sub(today)
		out[KeyEnd] = *cfg.EndDate
		out[KeyRemaining] = remaining
		out[KeyRemainingWeeks] = float64(remaining) / 7
	}

	if cfg.StartDate == nil {
		if len(cfg.Plan) > 0 {
			sink.Debug("plan ignored without start date", "plan_weeks", len(cfg.Plan))
		}
		sink.Debug("calendar computed", "today", today.String(), "tz", loc.String(), "fields", len(out))
		return out, nil
	}

	elapsed := today.Sub(*cfg.StartDate)
	w := floorDiv(elapsed, 7)

	out[KeyStart] = *cfg.StartDate
	out[KeyElapsed] = elapsed
	out[KeyElapsedWeeks] = float64(elapsed) / 7
	out[KeyAcademicWeek] = w + 1
	out[KeyAW] = w + 1

	var weekName any
	if w >= 0 && w < len(cfg.WeekNames) {
		weekName = cfg.WeekNames[w]
	}
	out[KeyAcademicWeekName] = weekName
	out[KeyAWN] = weekName

	if len(cfg.WeeksOff) > 0 {
		tw := teachingWeek(w+1, cfg.WeeksOff)
		out[KeyTeachingWeek] = tw
		out[KeyTW] = tw
	}

	if len(cfg.WeekNames) > 0 && cfg.Plan != nil {
		if err := expandPlan(out, cfg.WeekNames, cfg.Plan, w); err != nil {
			return nil, err
		}
	}

	sink.Debug("calendar computed",
		"today", today.String(),
		"tz", loc.String(),
		"academic_week", w+1,
		"fields", len(out),
	)
	return out, nil
}

// isoWeekdayOf maps time.Weekday (Sunday=0) to ISO numbering (Monday=1..Sunday=7).
func isoWeekdayOf(wd time.Weekday) int {
	if wd == time.Sunday {
		return 7
	}
	return int(wd)
}

// floorDiv divides rounding toward negative infinity, so day -1 lands in
// week offset -1 rather than 0.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// teachingWeek shifts the academic week down by one for every listed week
// off that has been reached, in list order.
func teachingWeek(academicWeek int, weeksOff []int) int {
	tw := academicWeek
	for _, off := range weeksOff {
		if tw >= off {
			tw--
		}
	}
	return tw
}
