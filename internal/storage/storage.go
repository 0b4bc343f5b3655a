package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"worktimer/internal/model"
)

const (
	appDirName    = "worktimer"
	timerFileName = "running_timer.json"
)

// Storage maps dates to JSON day files under a single data directory and
// owns the fixed active-timer file slot. It keeps no state beyond the
// directory path; every call re-reads the filesystem.
type Storage struct {
	dataDir string
}

// NewStorage opens the per-user data directory, falling back to ./data when
// the platform directory is unavailable.
func NewStorage() (*Storage, error) {
	if dir, err := userDataDir(); err == nil {
		appDir := filepath.Join(dir, appDirName)
		if err := os.MkdirAll(appDir, 0o755); err == nil {
			return &Storage{dataDir: appDir}, nil
		}
	}

	fallback := "./data"
	if err := os.MkdirAll(fallback, 0o755); err != nil {
		return nil, fmt.Errorf("create fallback data directory: %w", err)
	}
	return &Storage{dataDir: fallback}, nil
}

// NewStorageWithDir uses an explicit data directory.
func NewStorageWithDir(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &Storage{dataDir: dir}, nil
}

func userDataDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		if dir := os.Getenv("LocalAppData"); dir != "" {
			return dir, nil
		}
		return "", fmt.Errorf("LocalAppData is not set")
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Library", "Application Support"), nil
	default:
		if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
			return dir, nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".local", "share"), nil
	}
}

func (s *Storage) DataDir() string {
	return s.dataDir
}

func (s *Storage) filePath(date model.Date) string {
	return filepath.Join(s.dataDir, date.String()+".json")
}

func (s *Storage) timerPath() string {
	return filepath.Join(s.dataDir, timerFileName)
}

// Load reads the day file for date. A missing file is the valid empty state,
// not an error; an unparsable file is ErrCorruptData.
func (s *Storage) Load(date model.Date) (model.DayData, error) {
	path := s.filePath(date)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.NewDayData(date), nil
		}
		return model.DayData{}, fmt.Errorf("read %s: %w", path, err)
	}

	var day model.DayData
	if err := json.Unmarshal(data, &day); err != nil {
		return model.DayData{}, fmt.Errorf("%w: %s: %v", ErrCorruptData, path, err)
	}
	if day.WorkRecords == nil {
		day.WorkRecords = make(map[uint32]model.WorkRecord)
	}
	return day, nil
}

// Save overwrites the day file whole with pretty-printed JSON.
func (s *Storage) Save(day *model.DayData) error {
	data, err := json.MarshalIndent(day, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize day data: %w", err)
	}

	path := s.filePath(day.Date)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// FileModifiedTime returns the day file's mtime, or false when the file does
// not exist. It is a cheap change-detection oracle, not a logical clock.
func (s *Storage) FileModifiedTime(date model.Date) (time.Time, bool) {
	info, err := os.Stat(s.filePath(date))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// SaveActiveTimer overwrites the active-timer file whole.
func (s *Storage) SaveActiveTimer(timer *model.TimerState) error {
	data, err := json.MarshalIndent(timer, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize timer state: %w", err)
	}

	if err := os.WriteFile(s.timerPath(), data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.timerPath(), err)
	}
	return nil
}

// LoadActiveTimer returns nil when no timer file exists; absence is the
// valid "no timer" state.
func (s *Storage) LoadActiveTimer() (*model.TimerState, error) {
	data, err := os.ReadFile(s.timerPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", s.timerPath(), err)
	}

	var timer model.TimerState
	if err := json.Unmarshal(data, &timer); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptData, s.timerPath(), err)
	}
	return &timer, nil
}

// ClearActiveTimer deletes the timer file. Deleting an already-absent file
// is not an error.
func (s *Storage) ClearActiveTimer() error {
	if err := os.Remove(s.timerPath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", s.timerPath(), err)
	}
	return nil
}
