// Package timewindow implements the time-of-day window used to match
// pick-and-drop departures against a requested "HH:MM" time. The window
// spans one hour either side of the requested time, comparing only
// hour:minute, with wraparound at midnight.
package timewindow

import (
	"fmt"
	"strconv"
	"strings"
)

// TimeOfDay is a clock time without a date component
type TimeOfDay struct {
	Hour   int
	Minute int
}

// String formats the time as zero-padded "HH:MM"
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Minutes returns the time as minutes since midnight
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// Window is the inclusive [Lower, Upper] time-of-day range. When Wraps is
// true the window crosses midnight and the range is disjunctive
// (t >= Lower OR t <= Upper). When Fallback is true the input could not
// be parsed and matching degrades to a one-sided t >= Raw filter.
type Window struct {
	Lower    TimeOfDay
	Upper    TimeOfDay
	Wraps    bool
	Fallback bool
	Raw      string
}

// Parse builds the ±1 hour window around a requested "HH:MM" time. Only
// the hour component is shifted; the minute offset is kept as-is, so the
// window is ±1 hour at the same minute, not a true ±60-minute span when
// the minute is non-zero. Unparseable input yields a fallback window.
func Parse(requested string) Window {
	parts := strings.Split(requested, ":")
	if len(parts) != 2 {
		return Window{Fallback: true, Raw: requested}
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return Window{Fallback: true, Raw: requested}
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return Window{Fallback: true, Raw: requested}
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return Window{Fallback: true, Raw: requested}
	}

	lower := TimeOfDay{Hour: (hour + 23) % 24, Minute: minute}
	upper := TimeOfDay{Hour: (hour + 1) % 24, Minute: minute}

	return Window{
		Lower: lower,
		Upper: upper,
		Wraps: lower.Hour > upper.Hour,
		Raw:   requested,
	}
}

// Matches reports whether a departure at the given time of day falls
// inside the window. Boundaries are inclusive. Fallback windows match
// any time at or after the raw requested string (lexical on "HH:MM").
func (w Window) Matches(t TimeOfDay) bool {
	if w.Fallback {
		return t.String() >= w.Raw
	}

	m := t.Minutes()
	lo := w.Lower.Minutes()
	hi := w.Upper.Minutes()

	if w.Wraps {
		return m >= lo || m <= hi
	}
	return m >= lo && m <= hi
}
