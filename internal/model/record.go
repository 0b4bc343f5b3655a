package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyName is returned when a record or task name is blank after
// trimming.
var ErrEmptyName = errors.New("name cannot be empty")

type WorkRecord struct {
	ID           uint32    `json:"id"`
	Name         string    `json:"name"`
	Start        TimePoint `json:"start"`
	End          TimePoint `json:"end"`
	TotalMinutes int       `json:"total_minutes"`
	Description  string    `json:"description"`
}

// NewWorkRecord builds a record with TotalMinutes derived from start and end.
func NewWorkRecord(id uint32, name string, start, end TimePoint) WorkRecord {
	return WorkRecord{
		ID:           id,
		Name:         name,
		Start:        start,
		End:          end,
		TotalMinutes: CalculateDuration(start, end),
	}
}

// CalculateDuration returns the span from start to end in minutes. An end
// earlier than start is read as crossing midnight.
func CalculateDuration(start, end TimePoint) int {
	startMins := start.MinutesSinceMidnight()
	endMins := end.MinutesSinceMidnight()
	if endMins >= startMins {
		return endMins - startMins
	}
	return minutesPerDay - startMins + endMins
}

// UpdateDuration recomputes TotalMinutes. TotalMinutes has no independent
// source of truth, so every change to Start or End must be followed by a
// call to this.
func (r *WorkRecord) UpdateDuration() {
	r.TotalMinutes = CalculateDuration(r.Start, r.End)
}

// FormatDuration renders a minute count as "8h 30m".
func FormatDuration(minutes int) string {
	return fmt.Sprintf("%dh %02dm", minutes/60, minutes%60)
}

// ValidateName trims name and rejects blank results.
func ValidateName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", ErrEmptyName
	}
	return trimmed, nil
}
