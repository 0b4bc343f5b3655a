package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidTime is returned for out-of-range hours or minutes and for
// malformed HH:MM text.
var ErrInvalidTime = errors.New("invalid time")

const minutesPerDay = 24 * 60

// TimePoint is a wall-clock time of day with minute resolution.
type TimePoint struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

func NewTimePoint(hour, minute int) (TimePoint, error) {
	if hour < 0 || hour > 23 {
		return TimePoint{}, fmt.Errorf("%w: hour must be 0-23, got %d", ErrInvalidTime, hour)
	}
	if minute < 0 || minute > 59 {
		return TimePoint{}, fmt.Errorf("%w: minute must be 0-59, got %d", ErrInvalidTime, minute)
	}
	return TimePoint{Hour: hour, Minute: minute}, nil
}

func TimePointFromMinutes(minutes int) (TimePoint, error) {
	if minutes < 0 || minutes >= minutesPerDay {
		return TimePoint{}, fmt.Errorf("%w: minutes must be 0-1439, got %d", ErrInvalidTime, minutes)
	}
	return TimePoint{Hour: minutes / 60, Minute: minutes % 60}, nil
}

func (t TimePoint) MinutesSinceMidnight() int {
	return t.Hour*60 + t.Minute
}

// Before reports whether t falls earlier in the day than other.
func (t TimePoint) Before(other TimePoint) bool {
	return t.MinutesSinceMidnight() < other.MinutesSinceMidnight()
}

func (t TimePoint) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// ParseTimePoint parses canonical "HH:MM" text.
func ParseTimePoint(s string) (TimePoint, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return TimePoint{}, fmt.Errorf("%w: expected HH:MM, got %q", ErrInvalidTime, s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return TimePoint{}, fmt.Errorf("%w: bad hour %q", ErrInvalidTime, parts[0])
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return TimePoint{}, fmt.Errorf("%w: bad minute %q", ErrInvalidTime, parts[1])
	}
	return NewTimePoint(hour, minute)
}
