package clock

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidClock is returned for strings that do not match "H:MM" with an
// optional AM/PM suffix.
var ErrInvalidClock = errors.New("invalid clock string")

// ParseClock converts a 12-hour "H:MM AM/PM" string to fractional hours since
// midnight: "1:30 PM" -> 13.5, "12:00 AM" -> 0, "12:00 PM" -> 12.
//
// A blank string returns 0 with no error. The mobile client has always sent
// empty times for unset fields and relies on them sorting as midnight, so the
// behavior is kept for compatibility.
func ParseClock(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	var meridiem string
	if fields := strings.Fields(s); len(fields) == 2 {
		s = fields[0]
		meridiem = strings.ToUpper(fields[1])
		if meridiem != "AM" && meridiem != "PM" {
			return 0, fmt.Errorf("%w: %q", ErrInvalidClock, meridiem)
		}
	} else if len(fields) > 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}

	hourStr, minStr, ok := strings.Cut(s, ":")
	if !ok {
		return 0, fmt.Errorf("%w: missing ':' in %q", ErrInvalidClock, s)
	}

	hours, err := strconv.Atoi(hourStr)
	if err != nil {
		return 0, fmt.Errorf("%w: bad hour in %q", ErrInvalidClock, s)
	}
	minutes, err := strconv.Atoi(minStr)
	if err != nil {
		return 0, fmt.Errorf("%w: bad minute in %q", ErrInvalidClock, s)
	}

	if minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w: minute out of range in %q", ErrInvalidClock, s)
	}

	switch meridiem {
	case "":
		// 24-hour form without a suffix.
		if hours < 0 || hours > 23 {
			return 0, fmt.Errorf("%w: hour out of range in %q", ErrInvalidClock, s)
		}
	default:
		if hours < 1 || hours > 12 {
			return 0, fmt.Errorf("%w: hour out of range in %q", ErrInvalidClock, s)
		}
		if hours == 12 && meridiem == "AM" {
			hours = 0
		}
		if hours != 12 && meridiem == "PM" {
			hours += 12
		}
	}

	return float64(hours) + float64(minutes)/60, nil
}

// FormatClock renders fractional hours back to "H:MM AM/PM" for display.
// Minutes are zero-padded; ParseClock(FormatClock(h)) is not a strict
// round-trip for values carrying sub-minute precision.
func FormatClock(hours float64) string {
	total := int(math.Round(hours * 60))
	total = ((total % 1440) + 1440) % 1440

	h := total / 60
	m := total % 60

	meridiem := "AM"
	if h >= 12 {
		meridiem = "PM"
	}
	display := h % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, m, meridiem)
}

// HoursSinceMidnight converts a wall-clock instant to fractional hours,
// matching the scale ParseClock produces.
func HoursSinceMidnight(t time.Time) float64 {
	return float64(t.Hour()) + float64(t.Minute())/60 + float64(t.Second())/3600
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Intervals that merely touch at an endpoint do
// not overlap, so back-to-back classes are legal.
func Overlaps(aStart, aEnd, bStart, bEnd float64) bool {
	return aStart < bEnd && bStart < aEnd
}
