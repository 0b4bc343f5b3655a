package storage

import "errors"

var (
	// ErrCorruptData means a day or timer file exists but is not valid JSON.
	// The store never auto-repairs; the file stays unreadable until fixed or
	// removed by hand.
	ErrCorruptData = errors.New("corrupt data file")

	// ErrRecordNotFound means the target record id is absent from the day.
	ErrRecordNotFound = errors.New("record not found")

	// ErrTimerAlreadyRunning means an active-timer file already exists.
	ErrTimerAlreadyRunning = errors.New("a timer is already running")

	// ErrNoActiveTimer means no active-timer file exists.
	ErrNoActiveTimer = errors.New("no timer is currently running")

	// ErrInvalidTransition means the requested timer operation is not legal
	// from the timer's current status.
	ErrInvalidTransition = errors.New("invalid timer transition")
)
