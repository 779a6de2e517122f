package month

import (
	"regexp"
	"time"

	"github.com/zllovesuki/offering/faults"
)

// Key identifies a calendar month as "YYYY-MM". Zero padding makes
// lexicographic order the same as chronological order.
type Key string

const layout = "2006-01"

var keyRegex = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// Valid reports whether k is a well formed month key
func Valid(k Key) bool {
	return keyRegex.MatchString(string(k))
}

// Parse validates s and returns it as a Key
func Parse(s string) (Key, error) {
	if !keyRegex.MatchString(s) {
		return "", faults.ErrInvalidMonth().
			WithMessagef("%q is not a valid month key", s)
	}
	return Key(s), nil
}

// FromTime returns the Key of the month containing t (in UTC)
func FromTime(t time.Time) Key {
	return Key(t.UTC().Format(layout))
}

// Current returns the Key of the current UTC month
func Current() Key {
	return FromTime(time.Now())
}

// Normalize floors its input to the first day of that UTC month and returns
// the month Key. Accepted inputs: time.Time, a month Key (or its string),
// an RFC3339 timestamp, or a "YYYY-MM-DD" date string.
func Normalize(v interface{}) (Key, error) {
	switch in := v.(type) {
	case time.Time:
		return FromTime(in), nil
	case Key:
		return Parse(string(in))
	case string:
		if keyRegex.MatchString(in) {
			return Key(in), nil
		}
		if t, err := time.Parse(time.RFC3339, in); err == nil {
			return FromTime(t), nil
		}
		if t, err := time.Parse("2006-01-02", in); err == nil {
			return FromTime(t), nil
		}
		return "", faults.ErrInvalidMonth().
			WithMessagef("cannot normalize %q to a month", in)
	default:
		return "", faults.ErrInvalidMonth().
			WithMessagef("cannot normalize %T to a month", v)
	}
}

// Time returns the first instant of the month in UTC
func (k Key) Time() time.Time {
	t, err := time.Parse(layout, string(k))
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

// Add steps the key by n months (n may be negative)
func (k Key) Add(n int) Key {
	return FromTime(k.Time().AddDate(0, n, 0))
}

// Next returns the first instant of the following month in UTC
func (k Key) Next() time.Time {
	return k.Time().AddDate(0, 1, 0)
}

// Distance returns the signed number of whole months from a to b
func Distance(a, b Key) int {
	at, bt := a.Time(), b.Time()
	return (bt.Year()-at.Year())*12 + int(bt.Month()) - int(at.Month())
}

// Compare orders two keys chronologically: -1, 0, or 1
func Compare(a, b Key) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
