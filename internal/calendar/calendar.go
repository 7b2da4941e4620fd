// Package calendar maps calendar dates to puzzle day indexes and keys.
package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Day index schemes.
const (
	// SchemeEpoch counts whole local calendar days since an epoch date.
	SchemeEpoch = "epoch"
	// SchemeOrdinal uses the day of the year (1..366) and repeats every year.
	SchemeOrdinal = "ordinal"
)

const (
	keyPrefix  = "day-"
	dateLayout = "2006-01-02"
)

// DefaultEpoch is day 0 of the epoch scheme.
var DefaultEpoch = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.Local)

// Calendar converts between dates and day indexes.
type Calendar struct {
	scheme string
	epoch  time.Time
}

// New returns a Calendar for the given scheme. An empty scheme selects epoch.
func New(scheme string, epoch time.Time) (Calendar, error) {
	scheme = strings.TrimSpace(strings.ToLower(scheme))
	switch scheme {
	case "", SchemeEpoch:
		if epoch.IsZero() {
			epoch = DefaultEpoch
		}
		return Calendar{scheme: SchemeEpoch, epoch: civil(epoch)}, nil
	case SchemeOrdinal:
		return Calendar{scheme: SchemeOrdinal}, nil
	default:
		return Calendar{}, fmt.Errorf("unknown day scheme %q (want %s or %s)", scheme, SchemeEpoch, SchemeOrdinal)
	}
}

// Scheme returns the active scheme name.
func (c Calendar) Scheme() string {
	return c.scheme
}

// DayIndex returns the day index for t in t's location.
func (c Calendar) DayIndex(t time.Time) int {
	if c.scheme == SchemeOrdinal {
		return t.YearDay()
	}
	return daysBetween(c.epoch, civil(t))
}

// DateFor returns the calendar date of a day index. For the ordinal scheme
// the year is taken from ref.
func (c Calendar) DateFor(index int, ref time.Time) time.Time {
	if c.scheme == SchemeOrdinal {
		return time.Date(ref.Year(), time.January, index, 0, 0, 0, 0, time.UTC)
	}
	return c.epoch.AddDate(0, 0, index)
}

// Key returns the persistence key for a day index.
func Key(index int) string {
	return keyPrefix + strconv.Itoa(index)
}

// ParseKey extracts the day index from a key of the form "day-<N>".
// Only the spelling Key produces is accepted, so "day-05" is rejected.
func ParseKey(key string) (int, bool) {
	if !strings.HasPrefix(key, keyPrefix) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(key, keyPrefix))
	if err != nil || Key(n) != key {
		return 0, false
	}
	return n, true
}

// NextRollover returns the next local midnight after t.
func NextRollover(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, t.Location())
}

// ParseDate parses a YYYY-MM-DD date in the local time zone.
func ParseDate(value string) (time.Time, error) {
	parsed, err := time.ParseInLocation(dateLayout, strings.TrimSpace(value), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return parsed, nil
}

// FormatDate renders a date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// civil drops the clock and zone, keeping the local calendar date.
func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
