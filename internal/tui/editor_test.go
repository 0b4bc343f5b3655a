package tui

import (
	"testing"
	"time"

	"worktimer/internal/model"
)

func testDay(t *testing.T, names ...string) *model.DayData {
	t.Helper()
	day := model.NewDayData(model.NewDate(2026, time.March, 14))
	for i, name := range names {
		start, err := model.NewTimePoint(9+i, 0)
		if err != nil {
			t.Fatalf("NewTimePoint: %v", err)
		}
		end, err := model.NewTimePoint(10+i, 0)
		if err != nil {
			t.Fatalf("NewTimePoint: %v", err)
		}
		day.AddRecord(model.NewWorkRecord(day.NextID(), name, start, end))
	}
	return &day
}

func typeDigits(t *testing.T, e *dayEditor, digits string) (committed bool) {
	t.Helper()
	for _, c := range digits {
		done, err := e.typeChar(c)
		if err != nil {
			t.Fatalf("typeChar(%c): %v", c, err)
		}
		committed = done
	}
	return committed
}

func TestSelectionStaysInBounds(t *testing.T) {
	e := newDayEditor(testDay(t, "a", "b"))

	e.moveUp()
	if e.selected != 0 {
		t.Errorf("selected = %d after moveUp at top", e.selected)
	}
	e.moveDown()
	e.moveDown()
	e.moveDown()
	if e.selected != 1 {
		t.Errorf("selected = %d, want 1", e.selected)
	}
}

func TestStartEditLoadsFieldValue(t *testing.T) {
	e := newDayEditor(testDay(t, "Standup"))

	e.startEdit()
	if e.mode != modeEdit {
		t.Fatal("expected edit mode")
	}
	if e.input != "Standup" {
		t.Errorf("input = %q, want record name", e.input)
	}
	e.cancelEdit()

	e.field = fieldStart
	e.startEdit()
	if e.input != "09:00" {
		t.Errorf("input = %q, want 09:00", e.input)
	}
}

func TestTimeEntryAutoCommits(t *testing.T) {
	e := newDayEditor(testDay(t, "Standup"))
	e.field = fieldStart
	e.startEdit()

	if committed := typeDigits(t, e, "103"); committed {
		t.Fatal("must not commit before the fourth digit")
	}
	if committed := typeDigits(t, e, "0"); !committed {
		t.Fatal("fourth digit must commit")
	}
	if e.mode != modeBrowse {
		t.Error("expected browse mode after auto-commit")
	}

	record, _ := e.selectedRecord()
	if record.Start.String() != "10:30" {
		t.Errorf("start = %s, want 10:30", record.Start)
	}
	// End stayed 10:00, so the duration wrapped around midnight.
	if record.TotalMinutes != 23*60+30 {
		t.Errorf("total minutes = %d, want %d", record.TotalMinutes, 23*60+30)
	}
}

func TestInvalidTimeKeepsEditMode(t *testing.T) {
	e := newDayEditor(testDay(t, "Standup"))
	e.field = fieldStart
	e.startEdit()

	typeDigits(t, e, "991")
	if _, err := e.typeChar('5'); err == nil {
		t.Fatal("expected an error for 99:15")
	}
	if e.mode != modeEdit {
		t.Error("a failed commit must stay in edit mode")
	}
}

func TestTimeEntryIgnoresNonDigits(t *testing.T) {
	e := newDayEditor(testDay(t, "Standup"))
	e.field = fieldStart
	e.startEdit()

	if _, err := e.typeChar('x'); err != nil {
		t.Fatalf("typeChar: %v", err)
	}
	if e.input != "09:00" || e.timeCursor != 0 {
		t.Errorf("non-digit must not change the buffer: %q cursor %d", e.input, e.timeCursor)
	}
}

func TestTimeBackspaceStepsCursor(t *testing.T) {
	e := newDayEditor(testDay(t, "Standup"))
	e.field = fieldStart
	e.startEdit()

	typeDigits(t, e, "10")
	e.backspace()
	if e.timeCursor != 1 {
		t.Errorf("cursor = %d, want 1", e.timeCursor)
	}
	typeDigits(t, e, "1")
	if e.input != "11:00" {
		t.Errorf("input = %q, want 11:00", e.input)
	}
}

func TestNameEditAndCommit(t *testing.T) {
	e := newDayEditor(testDay(t, "Standup"))
	e.startEdit()

	e.backspace()
	e.backspace()
	if _, err := e.typeChar('u'); err != nil {
		t.Fatalf("typeChar: %v", err)
	}
	if _, err := e.typeChar('p'); err != nil {
		t.Fatalf("typeChar: %v", err)
	}
	if err := e.commitEdit(); err != nil {
		t.Fatalf("commitEdit: %v", err)
	}

	record, _ := e.selectedRecord()
	if record.Name != "Standup" {
		t.Errorf("name = %q, want Standup", record.Name)
	}
	if e.mode != modeBrowse {
		t.Error("expected browse mode after commit")
	}
}

func TestEmptyNameRejected(t *testing.T) {
	e := newDayEditor(testDay(t, "Standup"))
	e.startRename()

	if err := e.commitEdit(); err == nil {
		t.Fatal("expected an error committing an empty name")
	}
	if e.mode != modeEdit {
		t.Error("a failed commit must stay in edit mode")
	}
	record, _ := e.selectedRecord()
	if record.Name != "Standup" {
		t.Errorf("record name changed to %q", record.Name)
	}
}

func TestNextFieldDiscardsBuffer(t *testing.T) {
	e := newDayEditor(testDay(t, "Standup"))
	e.startEdit()

	e.typeChar('x')
	e.nextField()
	if e.field != fieldStart {
		t.Errorf("field = %d, want start", e.field)
	}
	if e.input != "09:00" {
		t.Errorf("input = %q, buffer must reload from the record", e.input)
	}

	record, _ := e.selectedRecord()
	if record.Name != "Standup" {
		t.Error("tab must not save the abandoned name input")
	}
}

func TestAddRecordDefaults(t *testing.T) {
	e := newDayEditor(testDay(t))

	e.addRecord()
	record, ok := e.selectedRecord()
	if !ok {
		t.Fatal("no record after addRecord")
	}
	if record.Name != "New Task" {
		t.Errorf("name = %q, want New Task", record.Name)
	}
	if record.Start.String() != "09:00" || record.End.String() != "17:00" {
		t.Errorf("times = %s-%s, want 09:00-17:00", record.Start, record.End)
	}

	e.addBreak()
	record, _ = e.selectedRecord()
	if record.Name != "Break" {
		t.Errorf("name = %q, want Break", record.Name)
	}
	if record.Start.String() != "12:00" || record.End.String() != "12:15" {
		t.Errorf("times = %s-%s, want 12:00-12:15", record.Start, record.End)
	}
}

func TestAddSelectsSortedPosition(t *testing.T) {
	// A 12:00 break lands mid-list on a day running 09:00 to 14:00.
	e := newDayEditor(testDay(t, "a", "b", "c", "d", "e"))

	e.addBreak()
	if e.selected != 4 {
		t.Errorf("selected = %d, want the break's sorted row 4", e.selected)
	}
	record, _ := e.selectedRecord()
	if record.Name != "Break" {
		t.Errorf("selected record = %q, want Break", record.Name)
	}

	// A 09:00 task sorts ahead of a day that starts at 10:00.
	day := model.NewDayData(model.NewDate(2026, time.March, 14))
	ten, err := model.NewTimePoint(10, 0)
	if err != nil {
		t.Fatalf("NewTimePoint: %v", err)
	}
	eleven, err := model.NewTimePoint(11, 0)
	if err != nil {
		t.Fatalf("NewTimePoint: %v", err)
	}
	day.AddRecord(model.NewWorkRecord(day.NextID(), "late", ten, eleven))
	e = newDayEditor(&day)
	e.selected = 0

	e.addRecord()
	if e.selected != 0 {
		t.Errorf("selected = %d, want the new task's sorted row 0", e.selected)
	}
	record, _ = e.selectedRecord()
	if record.Name != "New Task" {
		t.Errorf("selected record = %q, want New Task", record.Name)
	}
}

func TestDeleteClampsSelection(t *testing.T) {
	e := newDayEditor(testDay(t, "a", "b"))
	e.selected = 1

	e.deleteSelected()
	if e.selected != 0 {
		t.Errorf("selected = %d, want 0", e.selected)
	}
	e.deleteSelected()
	if len(e.day.WorkRecords) != 0 {
		t.Errorf("expected no records, got %d", len(e.day.WorkRecords))
	}
	// Deleting with nothing left is a no-op.
	e.deleteSelected()
}

func TestVisualRangeDelete(t *testing.T) {
	e := newDayEditor(testDay(t, "a", "b", "c", "d"))

	e.selected = 1
	e.enterVisual()
	e.moveDown()
	if !e.inVisualSelection(1) || !e.inVisualSelection(2) {
		t.Fatal("rows 1-2 must be in the visual selection")
	}
	if e.inVisualSelection(0) || e.inVisualSelection(3) {
		t.Fatal("rows 0 and 3 must be outside the selection")
	}

	e.deleteVisualSelection()
	if e.mode != modeBrowse {
		t.Error("expected browse mode after range delete")
	}
	records := e.day.SortedRecords()
	if len(records) != 2 {
		t.Fatalf("expected 2 survivors, got %d", len(records))
	}
	if records[0].Name != "a" || records[1].Name != "d" {
		t.Errorf("survivors = %q, %q; want a, d", records[0].Name, records[1].Name)
	}
}

func TestVisualRangeDeleteReversed(t *testing.T) {
	e := newDayEditor(testDay(t, "a", "b", "c"))

	e.selected = 2
	e.enterVisual()
	e.moveUp()
	e.moveUp()
	e.deleteVisualSelection()

	if len(e.day.WorkRecords) != 0 {
		t.Errorf("expected all records deleted, got %d", len(e.day.WorkRecords))
	}
	if e.selected != 0 {
		t.Errorf("selected = %d, want 0", e.selected)
	}
}

func TestSetFieldToNow(t *testing.T) {
	e := newDayEditor(testDay(t, "Standup"))
	e.field = fieldEnd

	now := time.Date(2026, time.March, 14, 14, 45, 0, 0, time.Local)
	e.setFieldToNow(now)

	record, _ := e.selectedRecord()
	if record.End.String() != "14:45" {
		t.Errorf("end = %s, want 14:45", record.End)
	}
	if record.TotalMinutes != 5*60+45 {
		t.Errorf("total minutes = %d, want %d", record.TotalMinutes, 5*60+45)
	}

	// The name field has no clock to stamp.
	e.field = fieldName
	e.setFieldToNow(now)
	record, _ = e.selectedRecord()
	if record.Name != "Standup" {
		t.Errorf("name changed to %q", record.Name)
	}
}

func TestFieldCycle(t *testing.T) {
	e := newDayEditor(testDay(t, "a"))

	e.moveFieldRight()
	if e.field != fieldStart {
		t.Errorf("field = %d, want start", e.field)
	}
	e.moveFieldRight()
	e.moveFieldRight()
	if e.field != fieldName {
		t.Errorf("field = %d, want name after full cycle", e.field)
	}
	e.moveFieldLeft()
	if e.field != fieldEnd {
		t.Errorf("field = %d, want end", e.field)
	}
}
