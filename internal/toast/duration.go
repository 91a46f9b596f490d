package toast

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Fixed timings.
const (
	// AnimationDuration is the length of the slide in and the slide out.
	AnimationDuration = 250 * time.Millisecond

	ShortLength   = 1 * time.Second
	AverageLength = 2500 * time.Millisecond
)

type durationKind uint8

const (
	kindAverage durationKind = iota
	kindShort
	kindCustom
)

// Duration is how long a toast holds on screen. The zero value is Average.
type Duration struct {
	kind   durationKind
	length time.Duration
}

// Preset durations.
var (
	Short   = Duration{kind: kindShort}
	Average = Duration{kind: kindAverage}
)

// Custom holds a toast for the given number of seconds. Negative values
// are treated as zero.
func Custom(seconds float64) Duration {
	return CustomDuration(time.Duration(seconds * float64(time.Second)))
}

// CustomDuration is Custom for a time.Duration.
func CustomDuration(d time.Duration) Duration {
	return Duration{kind: kindCustom, length: max(d, 0)}
}

// Length resolves the hold time.
func (d Duration) Length() time.Duration {
	switch d.kind {
	case kindShort:
		return ShortLength
	case kindCustom:
		return d.length
	default:
		return AverageLength
	}
}

func (d Duration) String() string {
	switch d.kind {
	case kindShort:
		return "short"
	case kindCustom:
		return d.length.String()
	default:
		return "average"
	}
}

// ErrInvalidDuration is returned by ParseDuration.
var ErrInvalidDuration = errors.New("invalid duration")

// ParseDuration accepts "short", "average", a Go duration such as "4s" or
// "1500ms", or a plain number of seconds. The empty string is Average.
func ParseDuration(s string) (Duration, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "average":
		return Average, nil
	case "short":
		return Short, nil
	}
	if d, err := time.ParseDuration(s); err == nil && d >= 0 {
		return CustomDuration(d), nil
	}
	if seconds, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil && seconds >= 0 && !math.IsInf(seconds, 1) {
		return Custom(seconds), nil
	}
	return Duration{}, fmt.Errorf("%w %q: want short, average or a duration like 4s", ErrInvalidDuration, s)
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Location is the screen edge a toast enters from. The zero value is Bottom.
type Location uint8

const (
	Bottom Location = iota
	Top
)

func (l Location) String() string {
	if l == Top {
		return "top"
	}
	return "bottom"
}

// ErrInvalidLocation is returned by ParseLocation.
var ErrInvalidLocation = errors.New("invalid location")

// ParseLocation accepts "top" or "bottom"; the empty string is Bottom.
func ParseLocation(s string) (Location, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "bottom":
		return Bottom, nil
	case "top":
		return Top, nil
	}
	return Bottom, fmt.Errorf("%w %q: want top or bottom", ErrInvalidLocation, s)
}

// MarshalText implements encoding.TextMarshaler.
func (l Location) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Location) UnmarshalText(text []byte) error {
	parsed, err := ParseLocation(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
