package tui

import (
	"fmt"
	"strings"
	"time"

	"worktimer/internal/model"
)

type editorMode int

const (
	modeBrowse editorMode = iota
	modeEdit
	modeVisual
)

type editField int

const (
	fieldName editField = iota
	fieldStart
	fieldEnd
)

// timeDigitPositions are the editable offsets inside an "HH:MM" buffer; the
// colon at offset 2 is fixed.
var timeDigitPositions = [4]int{0, 1, 3, 4}

// dayEditor is the keyboard state machine over one day's records: selection,
// field focus, the three modes, and the in-flight edit buffer. It never
// touches the filesystem, which keeps it testable without a terminal.
type dayEditor struct {
	day *model.DayData

	mode     editorMode
	selected int
	field    editField

	input      string
	timeCursor int

	visualStart int
	visualEnd   int
}

func newDayEditor(day *model.DayData) *dayEditor {
	return &dayEditor{day: day}
}

// setDay swaps in a freshly loaded day, keeping the selection in range.
func (e *dayEditor) setDay(day *model.DayData) {
	e.day = day
	e.clampSelection()
}

func (e *dayEditor) selectedRecord() (model.WorkRecord, bool) {
	records := e.day.SortedRecords()
	if e.selected < 0 || e.selected >= len(records) {
		return model.WorkRecord{}, false
	}
	return records[e.selected], true
}

func (e *dayEditor) moveUp() {
	if e.selected > 0 {
		e.selected--
	}
	if e.mode == modeVisual {
		e.visualEnd = e.selected
	}
}

func (e *dayEditor) moveDown() {
	if e.selected < len(e.day.WorkRecords)-1 {
		e.selected++
	}
	if e.mode == modeVisual {
		e.visualEnd = e.selected
	}
}

func (e *dayEditor) moveFieldLeft() {
	switch e.field {
	case fieldName:
		e.field = fieldEnd
	case fieldStart:
		e.field = fieldName
	case fieldEnd:
		e.field = fieldStart
	}
}

func (e *dayEditor) moveFieldRight() {
	switch e.field {
	case fieldName:
		e.field = fieldStart
	case fieldStart:
		e.field = fieldEnd
	case fieldEnd:
		e.field = fieldName
	}
}

// startEdit loads the focused field of the selected record into the edit
// buffer. No selection, no edit mode.
func (e *dayEditor) startEdit() {
	record, ok := e.selectedRecord()
	if !ok {
		return
	}
	switch e.field {
	case fieldStart:
		e.input = record.Start.String()
	case fieldEnd:
		e.input = record.End.String()
	default:
		e.input = record.Name
	}
	e.mode = modeEdit
	e.timeCursor = 0
}

// startRename is the 'c' shortcut: edit the name from scratch.
func (e *dayEditor) startRename() {
	if _, ok := e.selectedRecord(); !ok {
		return
	}
	e.field = fieldName
	e.input = ""
	e.mode = modeEdit
	e.timeCursor = 0
}

func (e *dayEditor) cancelEdit() {
	e.mode = modeBrowse
	e.input = ""
	e.field = fieldName
	e.timeCursor = 0
}

// nextField cycles name -> start -> end -> name, reloading the buffer from
// the record and discarding whatever was typed into the previous field.
func (e *dayEditor) nextField() {
	record, ok := e.selectedRecord()
	if !ok {
		return
	}
	switch e.field {
	case fieldName:
		e.field = fieldStart
		e.input = record.Start.String()
	case fieldStart:
		e.field = fieldEnd
		e.input = record.End.String()
	default:
		e.field = fieldName
		e.input = record.Name
	}
	e.timeCursor = 0
}

// typeChar feeds one character into the edit buffer. Name input appends;
// time input overwrites HH:MM digit positions and commits itself after the
// fourth digit. The returned flag reports that such an auto-commit happened.
func (e *dayEditor) typeChar(c rune) (committed bool, err error) {
	if e.field == fieldName {
		e.input += string(c)
		return false, nil
	}

	if c < '0' || c > '9' {
		return false, nil
	}
	if len(e.input) != 5 || e.timeCursor >= len(timeDigitPositions) {
		return false, nil
	}

	buf := []byte(e.input)
	buf[timeDigitPositions[e.timeCursor]] = byte(c)
	e.input = string(buf)
	e.timeCursor++

	if e.timeCursor >= len(timeDigitPositions) {
		if err := e.commitField(); err != nil {
			return false, err
		}
		e.cancelEdit()
		return true, nil
	}
	return false, nil
}

// backspace deletes the last name character, or steps the time cursor back.
func (e *dayEditor) backspace() {
	if e.field == fieldName {
		if len(e.input) > 0 {
			runes := []rune(e.input)
			e.input = string(runes[:len(runes)-1])
		}
		return
	}
	if e.timeCursor > 0 {
		e.timeCursor--
	}
}

// commitEdit validates and applies the buffer, leaving edit mode on success.
// On failure the mode and buffer stay so the user can fix the input.
func (e *dayEditor) commitEdit() error {
	if err := e.commitField(); err != nil {
		return err
	}
	e.cancelEdit()
	return nil
}

func (e *dayEditor) commitField() error {
	record, ok := e.selectedRecord()
	if !ok {
		return nil
	}

	switch e.field {
	case fieldName:
		name, err := model.ValidateName(e.input)
		if err != nil {
			return fmt.Errorf("name cannot be empty: %w", err)
		}
		record.Name = name
	case fieldStart:
		start, err := model.ParseTimePoint(strings.TrimSpace(e.input))
		if err != nil {
			return fmt.Errorf("invalid start time (use HH:MM): %w", err)
		}
		record.Start = start
		record.UpdateDuration()
	case fieldEnd:
		end, err := model.ParseTimePoint(strings.TrimSpace(e.input))
		if err != nil {
			return fmt.Errorf("invalid end time (use HH:MM): %w", err)
		}
		record.End = end
		record.UpdateDuration()
	}

	e.day.AddRecord(record)
	return nil
}

func (e *dayEditor) addRecord() {
	start, _ := model.NewTimePoint(9, 0)
	end, _ := model.NewTimePoint(17, 0)
	e.insertRecord(model.NewWorkRecord(e.day.NextID(), "New Task", start, end))
}

func (e *dayEditor) addBreak() {
	start, _ := model.NewTimePoint(12, 0)
	end, _ := model.NewTimePoint(12, 15)
	e.insertRecord(model.NewWorkRecord(e.day.NextID(), "Break", start, end))
}

// insertRecord adds the record and moves the selection onto its row. The list
// displays in start-time order, so the new row is not necessarily the last.
func (e *dayEditor) insertRecord(record model.WorkRecord) {
	e.day.AddRecord(record)
	for i, sorted := range e.day.SortedRecords() {
		if sorted.ID == record.ID {
			e.selected = i
			return
		}
	}
}

func (e *dayEditor) deleteSelected() {
	record, ok := e.selectedRecord()
	if !ok {
		return
	}
	e.day.RemoveRecord(record.ID)
	e.clampSelection()
}

// setFieldToNow stamps the focused time field with the current wall clock.
// The name field is not a time, so it is left alone.
func (e *dayEditor) setFieldToNow(now time.Time) {
	record, ok := e.selectedRecord()
	if !ok {
		return
	}
	point, err := model.NewTimePoint(now.Hour(), now.Minute())
	if err != nil {
		return
	}

	switch e.field {
	case fieldStart:
		record.Start = point
	case fieldEnd:
		record.End = point
	default:
		return
	}
	record.UpdateDuration()
	e.day.AddRecord(record)
}

func (e *dayEditor) enterVisual() {
	e.mode = modeVisual
	e.visualStart = e.selected
	e.visualEnd = e.selected
}

func (e *dayEditor) exitVisual() {
	e.mode = modeBrowse
}

func (e *dayEditor) inVisualSelection(index int) bool {
	lo, hi := e.visualStart, e.visualEnd
	if lo > hi {
		lo, hi = hi, lo
	}
	return index >= lo && index <= hi
}

// deleteVisualSelection removes every record in the marked range and drops
// back to browse mode.
func (e *dayEditor) deleteVisualSelection() {
	records := e.day.SortedRecords()
	lo, hi := e.visualStart, e.visualEnd
	if lo > hi {
		lo, hi = hi, lo
	}

	for i, record := range records {
		if i >= lo && i <= hi {
			e.day.RemoveRecord(record.ID)
		}
	}
	e.clampSelection()
	e.exitVisual()
}

func (e *dayEditor) clampSelection() {
	if e.selected >= len(e.day.WorkRecords) {
		e.selected = len(e.day.WorkRecords) - 1
	}
	if e.selected < 0 {
		e.selected = 0
	}
}
