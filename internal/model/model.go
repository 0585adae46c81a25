package model

// Context is the flat name → value mapping produced by one calendar
// computation. Values are model.Date, time.Time, int, float64, string,
// bool or nil. A Context is built fresh for every invocation and handed
// to the caller, which owns it from then on.
type Context map[string]any

// Has reports whether name is already present in the context.
func (c Context) Has(name string) bool {
	_, ok := c[name]
	return ok
}

// Week represents a single academic week of a course period.
type Week struct {
	// Number is the 1-based academic week number.
	Number int
	// Name is the label configured for this week.
	Name string

	// Start is the first day of the week; End is the first day of the
	// following week (exclusive), matching all-day iCalendar semantics.
	Start Date
	End   Date

	// Flags lists the plan flags that become true from this week on.
	Flags []string
}
