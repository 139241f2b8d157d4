package collections

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DayLayout is the layout of date keys (tasks, journal).
const DayLayout = "2006-01-02"

var validate = validator.New()

// IsDay reports whether s is a calendar date key.
func IsDay(s string) bool {
	return validate.Var(s, "required,datetime="+DayLayout) == nil
}

// Day formats t as a date key.
func Day(t time.Time) string {
	return t.Format(DayLayout)
}

// Today returns today's date key according to now.
func Today(now func() time.Time) string {
	if now == nil {
		now = time.Now
	}
	return Day(now())
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// valid reports whether a record satisfies its struct tags.
func valid(v any) bool {
	return validate.Struct(v) == nil
}
