package model

import "time"

type TimerStatus string

const (
	TimerRunning TimerStatus = "running"
	TimerPaused  TimerStatus = "paused"
	TimerStopped TimerStatus = "stopped"
)

// TimerState is the single in-flight timer session, persisted in
// running_timer.json. A persisted timer is never TimerStopped: stopping
// converts the session into a WorkRecord and deletes the file, so
// TimerStopped exists only transiently inside that conversion.
//
// SourceRecordID/SourceRecordDate, when set, mean the timer continues an
// existing record instead of creating a new one; stopping then advances that
// record's end time in place.
type TimerState struct {
	ID                 *uint32     `json:"id"`
	TaskName           string      `json:"task_name"`
	Description        *string     `json:"description"`
	StartTime          time.Time   `json:"start_time"`
	EndTime            *time.Time  `json:"end_time"`
	Date               Date        `json:"date"`
	Status             TimerStatus `json:"status"`
	PausedDurationSecs int64       `json:"paused_duration_secs"`
	PausedAt           *time.Time  `json:"paused_at"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
	SourceRecordID     *uint32     `json:"source_record_id"`
	SourceRecordDate   *Date       `json:"source_record_date"`
}
