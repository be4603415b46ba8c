package clockfmt

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// ClockLayout is the 12-hour wall clock form stored on attendance entries.
	ClockLayout = "03:04 PM"
	// DateLayout is the zero-padded ISO calendar date. Month filters rely on
	// its prefix ordering.
	DateLayout = "2006-01-02"
)

var ErrMalformedTime = errors.New("malformed time of day")

var (
	// clockPattern accepts exactly one clock value and nothing else.
	clockPattern = regexp.MustCompile(`(?i)^\s*(\d{1,2}):(\d{2})\s*(AM|PM)?\s*$`)
	// embeddedClockPattern finds a clock value anywhere in the text.
	embeddedClockPattern = regexp.MustCompile(`(?i)(\d{1,2}):(\d{2})\s*(AM|PM)?`)
)

// ParseClock converts "H:MM", "HH:MM" or either followed by AM/PM into
// minutes since midnight. Without a marker the hour is read as 24-hour time.
// Surrounding whitespace is allowed, any other text is rejected.
func ParseClock(text string) (int, error) {
	return toMinutes(clockPattern.FindStringSubmatch(text), text)
}

// ParseTimeToMinutes reads the first clock value contained in text with the
// soft-failure policy: anything it cannot read counts as midnight.
func ParseTimeToMinutes(text string) int {
	minutes, err := toMinutes(embeddedClockPattern.FindStringSubmatch(text), text)
	if err != nil {
		return 0
	}
	return minutes
}

func toMinutes(match []string, text string) (int, error) {
	if match == nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, text)
	}

	hours, _ := strconv.Atoi(match[1])
	minutes, _ := strconv.Atoi(match[2])
	marker := strings.ToUpper(match[3])

	if minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, text)
	}

	switch marker {
	case "":
		if hours > 23 {
			return 0, fmt.Errorf("%w: %q", ErrMalformedTime, text)
		}
	default:
		if hours > 12 {
			return 0, fmt.Errorf("%w: %q", ErrMalformedTime, text)
		}
		if marker == "PM" && hours < 12 {
			hours += 12
		}
		if marker == "AM" && hours == 12 {
			hours = 0
		}
	}

	return hours*60 + minutes, nil
}

// FormatHoursMinutes renders decimal hours as "Xh Ym", rounding to the
// nearest minute first.
func FormatHoursMinutes(decimalHours float64) string {
	if decimalHours == 0 {
		return "0h 0m"
	}
	total := int(math.Round(decimalHours * 60))
	return fmt.Sprintf("%dh %dm", total/60, total%60)
}

// FormatClock renders t on the 12-hour clock, e.g. "08:30 AM".
func FormatClock(t time.Time) string {
	return t.Format(ClockLayout)
}

// FormatDate renders the calendar date of t in its own location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// MinutesOf returns minutes since midnight for t in its own location.
func MinutesOf(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
