// Package ssctime parses and formats the ISO 8601 time values exchanged with
// the Satellite Situation Center web services.
package ssctime

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Pattern is the accepted input grammar:
// YYYY-MM-DD[{T|space}HH][:MM][:SS][.mmm][Z]. Every component after the
// date is optional and independent of the others.
const Pattern = `^(\d{4})-(\d{2})-(\d{2})(?:[T ](\d{2}))?(?::(\d{2}))?(?::(\d{2}))?(?:\.(\d{3}))?Z?$`

var pattern = regexp.MustCompile(Pattern)

// utcSuffixes are the zone designators the service uses in place of "Z".
var utcSuffixes = []string{"+00:00", "+0000", "+00"}

// Value is a canonical UTC timestamp. Missing components are zero.
type Value struct {
	Year        int
	Month       int
	Day         int
	Hour        int
	Minute      int
	Second      int
	Millisecond int
}

// ParseError reports input that does not match Pattern.
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid time format %q: expected YYYY-MM-DD[THH][:MM][:SS][.mmm][Z]", e.Input)
}

// Parse converts user input into a Value. Only the lexical grammar is
// enforced; calendar correctness (for example February 31) is not checked.
func Parse(input string) (Value, error) {
	m := pattern.FindStringSubmatch(input)
	if m == nil {
		return Value{}, &ParseError{Input: input}
	}

	fields := make([]int, 7)
	for i, s := range m[1:] {
		if s == "" {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return Value{}, &ParseError{Input: input}
		}
		fields[i] = n
	}

	return Value{
		Year:        fields[0],
		Month:       fields[1],
		Day:         fields[2],
		Hour:        fields[3],
		Minute:      fields[4],
		Second:      fields[5],
		Millisecond: fields[6],
	}, nil
}

// ParseServiceTime parses a time string produced by the service, which may
// carry an explicit UTC offset (+00:00) rather than a trailing Z.
func ParseServiceTime(input string) (Value, error) {
	s := strings.TrimSpace(input)
	for _, suffix := range utcSuffixes {
		if strings.HasSuffix(s, suffix) {
			s = strings.TrimSuffix(s, suffix)
			break
		}
	}
	v, err := Parse(s)
	if err != nil {
		return Value{}, &ParseError{Input: input}
	}
	return v, nil
}

// MustParse is like Parse but panics on error. Intended for constants and tests.
func MustParse(input string) Value {
	v, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return v
}

// FromTime converts t to a Value in UTC, truncated to milliseconds.
func FromTime(t time.Time) Value {
	t = t.UTC()
	return Value{
		Year:        t.Year(),
		Month:       int(t.Month()),
		Day:         t.Day(),
		Hour:        t.Hour(),
		Minute:      t.Minute(),
		Second:      t.Second(),
		Millisecond: t.Nanosecond() / int(time.Millisecond),
	}
}

// String returns the fully qualified YYYY-MM-DDTHH:MM:SS.mmmZ form used on
// the wire.
func (v Value) String() string {
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02d.%03dZ",
		v.Year, v.Month, v.Day, v.Hour, v.Minute, v.Second, v.Millisecond)
}

// Time returns v as a time.Time. Out-of-range fields are normalized the way
// time.Date normalizes them.
func (v Value) Time() time.Time {
	return time.Date(v.Year, time.Month(v.Month), v.Day,
		v.Hour, v.Minute, v.Second, v.Millisecond*int(time.Millisecond), time.UTC)
}

// Before reports whether v is strictly earlier than o.
func (v Value) Before(o Value) bool {
	return Compare(v, o) < 0
}

// After reports whether v is strictly later than o.
func (v Value) After(o Value) bool {
	return Compare(v, o) > 0
}

// IsZero reports whether v is the zero Value.
func (v Value) IsZero() bool {
	return v == Value{}
}

// Compare orders a and b field by field from year down to millisecond and
// returns -1, 0 or 1.
func Compare(a, b Value) int {
	fa := [...]int{a.Year, a.Month, a.Day, a.Hour, a.Minute, a.Second, a.Millisecond}
	fb := [...]int{b.Year, b.Month, b.Day, b.Hour, b.Minute, b.Second, b.Millisecond}
	for i := range fa {
		switch {
		case fa[i] < fb[i]:
			return -1
		case fa[i] > fb[i]:
			return 1
		}
	}
	return 0
}

// MarshalText implements encoding.TextMarshaler using the canonical form.
func (v Value) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Value) UnmarshalText(text []byte) error {
	parsed, err := ParseServiceTime(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
