package model

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func mustTimePoint(t *testing.T, hour, minute int) TimePoint {
	t.Helper()
	tp, err := NewTimePoint(hour, minute)
	if err != nil {
		t.Fatalf("NewTimePoint(%d, %d): %v", hour, minute, err)
	}
	return tp
}

func TestNewTimePointBounds(t *testing.T) {
	if _, err := NewTimePoint(24, 0); !errors.Is(err, ErrInvalidTime) {
		t.Errorf("NewTimePoint(24, 0) = %v, want ErrInvalidTime", err)
	}
	if _, err := NewTimePoint(0, 60); !errors.Is(err, ErrInvalidTime) {
		t.Errorf("NewTimePoint(0, 60) = %v, want ErrInvalidTime", err)
	}
	if _, err := NewTimePoint(-1, 0); !errors.Is(err, ErrInvalidTime) {
		t.Errorf("NewTimePoint(-1, 0) = %v, want ErrInvalidTime", err)
	}
	if _, err := NewTimePoint(23, 59); err != nil {
		t.Errorf("NewTimePoint(23, 59) = %v", err)
	}
}

func TestParseTimePoint(t *testing.T) {
	tp, err := ParseTimePoint("09:30")
	if err != nil {
		t.Fatalf("ParseTimePoint: %v", err)
	}
	if tp.Hour != 9 || tp.Minute != 30 {
		t.Errorf("parsed %d:%d, want 9:30", tp.Hour, tp.Minute)
	}

	for _, bad := range []string{"", "9", "9:30:00", "ab:cd", "25:00", "09:99"} {
		if _, err := ParseTimePoint(bad); !errors.Is(err, ErrInvalidTime) {
			t.Errorf("ParseTimePoint(%q) = %v, want ErrInvalidTime", bad, err)
		}
	}
}

func TestTimePointMinutesRoundTrip(t *testing.T) {
	for minutes := 0; minutes < minutesPerDay; minutes++ {
		tp, err := TimePointFromMinutes(minutes)
		if err != nil {
			t.Fatalf("TimePointFromMinutes(%d): %v", minutes, err)
		}
		if got := tp.MinutesSinceMidnight(); got != minutes {
			t.Fatalf("round trip %d -> %s -> %d", minutes, tp, got)
		}
	}
	for _, bad := range []int{-1, minutesPerDay} {
		if _, err := TimePointFromMinutes(bad); !errors.Is(err, ErrInvalidTime) {
			t.Errorf("TimePointFromMinutes(%d) = %v, want ErrInvalidTime", bad, err)
		}
	}
}

func TestTimePointString(t *testing.T) {
	if got := mustTimePoint(t, 7, 5).String(); got != "07:05" {
		t.Errorf("String() = %q, want 07:05", got)
	}
}

func TestCalculateDurationWraps(t *testing.T) {
	cases := []struct {
		start, end TimePoint
		want       int
	}{
		{mustTimePoint(t, 9, 0), mustTimePoint(t, 17, 0), 480},
		{mustTimePoint(t, 9, 0), mustTimePoint(t, 9, 0), 0},
		// Overnight: 23:00 to 01:00 is two hours, not negative.
		{mustTimePoint(t, 23, 0), mustTimePoint(t, 1, 0), 120},
		{mustTimePoint(t, 0, 1), mustTimePoint(t, 0, 0), 1439},
	}
	for _, tc := range cases {
		if got := CalculateDuration(tc.start, tc.end); got != tc.want {
			t.Errorf("CalculateDuration(%s, %s) = %d, want %d", tc.start, tc.end, got, tc.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	if got := FormatDuration(480); got != "8h 00m" {
		t.Errorf("FormatDuration(480) = %q", got)
	}
	if got := FormatDuration(5); got != "0h 05m" {
		t.Errorf("FormatDuration(5) = %q", got)
	}
}

func TestValidateName(t *testing.T) {
	name, err := ValidateName("  Standup  ")
	if err != nil {
		t.Fatalf("ValidateName: %v", err)
	}
	if name != "Standup" {
		t.Errorf("name = %q, want trimmed", name)
	}
	if _, err := ValidateName("   "); !errors.Is(err, ErrEmptyName) {
		t.Errorf("ValidateName(blank) = %v, want ErrEmptyName", err)
	}
}

func TestAddRecordKeepsLastIDMonotonic(t *testing.T) {
	day := NewDayData(NewDate(2026, time.March, 14))

	day.AddRecord(NewWorkRecord(5, "a", mustTimePoint(t, 9, 0), mustTimePoint(t, 10, 0)))
	if day.LastID != 5 {
		t.Errorf("last id = %d, want 5", day.LastID)
	}
	day.AddRecord(NewWorkRecord(2, "b", mustTimePoint(t, 10, 0), mustTimePoint(t, 11, 0)))
	if day.LastID != 5 {
		t.Errorf("last id = %d, lower ids must not decrease it", day.LastID)
	}
	if day.NextID() != 6 {
		t.Error("NextID must continue past the highest inserted id")
	}

	// Ids are not reused after deletion.
	day.RemoveRecord(5)
	if day.NextID() != 7 {
		t.Error("NextID must not reuse a deleted id")
	}
}

func TestSortedRecordsOrder(t *testing.T) {
	day := NewDayData(NewDate(2026, time.March, 14))
	day.AddRecord(NewWorkRecord(1, "late", mustTimePoint(t, 14, 0), mustTimePoint(t, 15, 0)))
	day.AddRecord(NewWorkRecord(2, "early", mustTimePoint(t, 9, 0), mustTimePoint(t, 10, 0)))
	day.AddRecord(NewWorkRecord(3, "also early", mustTimePoint(t, 9, 0), mustTimePoint(t, 9, 30)))

	records := day.SortedRecords()
	if records[0].Name != "early" || records[1].Name != "also early" || records[2].Name != "late" {
		t.Errorf("order = %q, %q, %q", records[0].Name, records[1].Name, records[2].Name)
	}
}

func TestGroupedTotals(t *testing.T) {
	day := NewDayData(NewDate(2026, time.March, 14))
	day.AddRecord(NewWorkRecord(1, "meetings", mustTimePoint(t, 9, 0), mustTimePoint(t, 10, 0)))
	day.AddRecord(NewWorkRecord(2, "coding", mustTimePoint(t, 10, 0), mustTimePoint(t, 13, 0)))
	day.AddRecord(NewWorkRecord(3, "meetings", mustTimePoint(t, 14, 0), mustTimePoint(t, 15, 30)))

	totals := day.GroupedTotals()
	if len(totals) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(totals))
	}
	if totals[0].Name != "coding" || totals[0].TotalMinutes != 180 {
		t.Errorf("first group = %+v, want coding 180", totals[0])
	}
	if totals[1].Name != "meetings" || totals[1].TotalMinutes != 150 {
		t.Errorf("second group = %+v, want meetings 150", totals[1])
	}
	if day.TotalMinutes() != 330 {
		t.Errorf("day total = %d, want 330", day.TotalMinutes())
	}
}

func TestCloneIsDeep(t *testing.T) {
	day := NewDayData(NewDate(2026, time.March, 14))
	day.AddRecord(NewWorkRecord(1, "original", mustTimePoint(t, 9, 0), mustTimePoint(t, 10, 0)))

	copied := day.Clone()
	record := day.WorkRecords[1]
	record.Name = "mutated"
	day.AddRecord(record)

	if copied.WorkRecords[1].Name != "original" {
		t.Error("clone shares record storage with the original")
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	date := NewDate(2026, time.March, 7)

	data, err := json.Marshal(date)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `"2026-03-07"` {
		t.Errorf("marshaled = %s", data)
	}

	var parsed Date
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if parsed != date {
		t.Errorf("round trip = %v, want %v", parsed, date)
	}
}

func TestDateNavigation(t *testing.T) {
	date := NewDate(2026, time.March, 1)
	if prev := date.Previous(); prev.String() != "2026-02-28" {
		t.Errorf("Previous = %s", prev)
	}
	if next := NewDate(2026, time.December, 31).Next(); next.String() != "2027-01-01" {
		t.Errorf("Next = %s", next)
	}
}

func TestDayDataJSONShape(t *testing.T) {
	day := NewDayData(NewDate(2026, time.March, 14))
	record := NewWorkRecord(1, "Standup", mustTimePoint(t, 9, 0), mustTimePoint(t, 9, 15))
	record.Description = "daily sync"
	day.AddRecord(record)

	data, err := json.Marshal(&day)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	for _, key := range []string{"date", "last_id", "work_records"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("missing key %q", key)
		}
	}

	var roundTrip DayData
	if err := json.Unmarshal(data, &roundTrip); err != nil {
		t.Fatalf("Unmarshal day: %v", err)
	}
	got := roundTrip.WorkRecords[1]
	if got.Name != "Standup" || got.TotalMinutes != 15 || got.Description != "daily sync" {
		t.Errorf("round trip record = %+v", got)
	}
}

func TestTimerStateJSONNullables(t *testing.T) {
	now := time.Date(2026, time.March, 14, 9, 0, 0, 0, time.Local)
	timer := TimerState{
		TaskName:  "Task",
		StartTime: now,
		Date:      DateOf(now),
		Status:    TimerRunning,
		CreatedAt: now,
		UpdatedAt: now,
	}

	data, err := json.Marshal(&timer)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded["status"] != "running" {
		t.Errorf("status = %v, want running", decoded["status"])
	}
	for _, key := range []string{"end_time", "paused_at", "source_record_id", "description"} {
		if value, ok := decoded[key]; !ok || value != nil {
			t.Errorf("%s = %v, want explicit null", key, value)
		}
	}
	if decoded["date"] != "2026-03-14" {
		t.Errorf("date = %v, want 2026-03-14", decoded["date"])
	}
}
