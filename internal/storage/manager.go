package storage

import (
	"fmt"
	"time"

	"worktimer/internal/model"
)

// Manager is the single entry point both front-ends talk to. It composes
// the file store with per-date mtime bookkeeping, so a long-lived caller can
// notice writes made by a separate process, and with the active-timer state
// machine.
//
// The mtime check is advisory: two writes landing within the filesystem's
// timestamp resolution are indistinguishable, and concurrent writers are
// last-writer-wins.
type Manager struct {
	storage      *Storage
	lastModified map[model.Date]time.Time
}

// NewManager opens the default data directory.
func NewManager() (*Manager, error) {
	storage, err := NewStorage()
	if err != nil {
		return nil, err
	}
	return &Manager{storage: storage, lastModified: make(map[model.Date]time.Time)}, nil
}

// NewManagerWithDir opens an explicit data directory.
func NewManagerWithDir(dir string) (*Manager, error) {
	storage, err := NewStorageWithDir(dir)
	if err != nil {
		return nil, err
	}
	return &Manager{storage: storage, lastModified: make(map[model.Date]time.Time)}, nil
}

func (m *Manager) DataDir() string {
	return m.storage.DataDir()
}

// LoadWithTracking loads the day and records its current mtime as known, so
// later CheckAndReload calls only fire on external writes. A date with no
// file is tracked with a zero mtime.
func (m *Manager) LoadWithTracking(date model.Date) (model.DayData, error) {
	day, err := m.storage.Load(date)
	if err != nil {
		return model.DayData{}, err
	}
	m.trackModified(date)
	return day, nil
}

// CheckAndReload compares the file's current mtime against the last known
// one. It returns the reloaded day only when they differ (a never-tracked
// date always reloads); nil means no external write happened.
func (m *Manager) CheckAndReload(date model.Date) (*model.DayData, error) {
	current, _ := m.storage.FileModifiedTime(date)
	known, tracked := m.lastModified[date]
	if tracked && current.Equal(known) {
		return nil, nil
	}

	day, err := m.storage.Load(date)
	if err != nil {
		return nil, err
	}
	m.lastModified[date] = current
	return &day, nil
}

// Save writes the day file and refreshes the known mtime, so the caller's
// own write does not read back as an external change.
func (m *Manager) Save(day *model.DayData) error {
	if err := m.storage.Save(day); err != nil {
		return err
	}
	m.trackModified(day.Date)
	return nil
}

// LastModified returns the tracked mtime for date; false means the date was
// never tracked or had no file when tracked.
func (m *Manager) LastModified(date model.Date) (time.Time, bool) {
	known, ok := m.lastModified[date]
	if !ok || known.IsZero() {
		return time.Time{}, false
	}
	return known, true
}

func (m *Manager) trackModified(date model.Date) {
	mtime, _ := m.storage.FileModifiedTime(date)
	m.lastModified[date] = mtime
}

// AddRecord runs a full load-mutate-save cycle, upserting by the record's id.
func (m *Manager) AddRecord(date model.Date, record model.WorkRecord) error {
	name, err := model.ValidateName(record.Name)
	if err != nil {
		return err
	}
	record.Name = name

	day, err := m.storage.Load(date)
	if err != nil {
		return err
	}
	day.AddRecord(record)
	return m.Save(&day)
}

// UpdateRecord is AddRecord under a different intent: DayData.AddRecord
// upserts, so both share the cycle.
func (m *Manager) UpdateRecord(date model.Date, record model.WorkRecord) error {
	return m.AddRecord(date, record)
}

// RemoveRecord deletes a record by id and returns it. A missing id is
// ErrRecordNotFound and leaves the file untouched.
func (m *Manager) RemoveRecord(date model.Date, id uint32) (model.WorkRecord, error) {
	day, err := m.storage.Load(date)
	if err != nil {
		return model.WorkRecord{}, err
	}

	record, ok := day.RemoveRecord(id)
	if !ok {
		return model.WorkRecord{}, fmt.Errorf("%w: id %d on %s", ErrRecordNotFound, id, date)
	}

	if err := m.Save(&day); err != nil {
		return model.WorkRecord{}, err
	}
	return record, nil
}

// StartTimer creates and persists a running timer. Passing a source record
// id and date links the session to an existing record, which StopTimer will
// then advance in place instead of inserting a new one.
func (m *Manager) StartTimer(taskName string, description *string, sourceID *uint32, sourceDate *model.Date) (model.TimerState, error) {
	name, err := model.ValidateName(taskName)
	if err != nil {
		return model.TimerState{}, err
	}

	existing, err := m.storage.LoadActiveTimer()
	if err != nil {
		return model.TimerState{}, err
	}
	if existing != nil {
		return model.TimerState{}, ErrTimerAlreadyRunning
	}

	now := time.Now()
	timer := model.TimerState{
		TaskName:         name,
		Description:      description,
		StartTime:        now,
		Date:             model.DateOf(now),
		Status:           model.TimerRunning,
		CreatedAt:        now,
		UpdatedAt:        now,
		SourceRecordID:   sourceID,
		SourceRecordDate: sourceDate,
	}

	if err := m.storage.SaveActiveTimer(&timer); err != nil {
		return model.TimerState{}, err
	}
	return timer, nil
}

// PauseTimer moves a running timer to paused, remembering when the pause
// began.
func (m *Manager) PauseTimer() (model.TimerState, error) {
	timer, err := m.loadTimerForUpdate()
	if err != nil {
		return model.TimerState{}, err
	}
	if timer.Status != model.TimerRunning {
		return model.TimerState{}, fmt.Errorf("%w: can only pause a running timer", ErrInvalidTransition)
	}

	now := time.Now()
	timer.Status = model.TimerPaused
	timer.PausedAt = &now
	timer.UpdatedAt = now

	if err := m.storage.SaveActiveTimer(timer); err != nil {
		return model.TimerState{}, err
	}
	return *timer, nil
}

// ResumeTimer moves a paused timer back to running, folding the completed
// pause into the cumulative paused duration.
func (m *Manager) ResumeTimer() (model.TimerState, error) {
	timer, err := m.loadTimerForUpdate()
	if err != nil {
		return model.TimerState{}, err
	}
	if timer.Status != model.TimerPaused {
		return model.TimerState{}, fmt.Errorf("%w: can only resume a paused timer", ErrInvalidTransition)
	}

	now := time.Now()
	if timer.PausedAt != nil {
		timer.PausedDurationSecs += int64(now.Sub(*timer.PausedAt).Seconds())
	}
	timer.PausedAt = nil
	timer.Status = model.TimerRunning
	timer.UpdatedAt = now

	if err := m.storage.SaveActiveTimer(timer); err != nil {
		return model.TimerState{}, err
	}
	return *timer, nil
}

// StopTimer materializes the active timer into the target day file and
// deletes the timer file. With a source record present in that day, the
// record's end time advances in place; otherwise a new record is inserted
// under the day's next id.
//
// The returned record is a view for display: its id is a placeholder, so
// callers needing the persisted id must reload the day.
func (m *Manager) StopTimer() (model.WorkRecord, error) {
	timer, err := m.loadTimerForUpdate()
	if err != nil {
		return model.WorkRecord{}, err
	}

	now := time.Now()
	timer.EndTime = &now
	timer.Status = model.TimerStopped
	timer.UpdatedAt = now

	view, err := timerToRecord(timer)
	if err != nil {
		return model.WorkRecord{}, err
	}

	targetDate := timer.Date
	if timer.SourceRecordDate != nil {
		targetDate = *timer.SourceRecordDate
	}

	day, err := m.storage.Load(targetDate)
	if err != nil {
		return model.WorkRecord{}, err
	}

	updated := false
	if timer.SourceRecordID != nil {
		if source, ok := day.Record(*timer.SourceRecordID); ok {
			source.End = view.End
			source.UpdateDuration()
			day.AddRecord(source)
			updated = true
		}
	}
	if !updated {
		inserted := view
		inserted.ID = day.NextID()
		day.AddRecord(inserted)
	}

	if err := m.Save(&day); err != nil {
		return model.WorkRecord{}, err
	}
	if err := m.storage.ClearActiveTimer(); err != nil {
		return model.WorkRecord{}, err
	}
	return view, nil
}

// LoadActiveTimer re-reads the timer file; nil means no active timer. Each
// operation re-reads rather than caching, since another process may have
// changed or removed the file.
func (m *Manager) LoadActiveTimer() (*model.TimerState, error) {
	return m.storage.LoadActiveTimer()
}

// TimerElapsed reports worked time: up to paused_at for a paused timer,
// up to now otherwise, minus cumulative pauses. Clamped at zero to absorb
// clock skew.
func (m *Manager) TimerElapsed(timer *model.TimerState) time.Duration {
	end := time.Now()
	if timer.Status == model.TimerPaused && timer.PausedAt != nil {
		end = *timer.PausedAt
	}

	elapsed := end.Sub(timer.StartTime) - time.Duration(timer.PausedDurationSecs)*time.Second
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

func (m *Manager) loadTimerForUpdate() (*model.TimerState, error) {
	timer, err := m.storage.LoadActiveTimer()
	if err != nil {
		return nil, err
	}
	if timer == nil {
		return nil, ErrNoActiveTimer
	}
	return timer, nil
}

// timerToRecord converts a just-stopped timer into a display record with a
// placeholder id of 1.
func timerToRecord(timer *model.TimerState) (model.WorkRecord, error) {
	if timer.Status != model.TimerStopped || timer.EndTime == nil {
		return model.WorkRecord{}, fmt.Errorf("%w: can only convert a stopped timer", ErrInvalidTransition)
	}

	start, err := model.NewTimePoint(timer.StartTime.Hour(), timer.StartTime.Minute())
	if err != nil {
		return model.WorkRecord{}, err
	}
	end, err := model.NewTimePoint(timer.EndTime.Hour(), timer.EndTime.Minute())
	if err != nil {
		return model.WorkRecord{}, err
	}

	record := model.NewWorkRecord(1, timer.TaskName, start, end)
	if timer.Description != nil {
		record.Description = *timer.Description
	}
	return record, nil
}
