package tui

import (
	"testing"

	"github.com/jesseduffield/gocui"

	"worktimer/internal/config"
	"worktimer/internal/model"
)

func testUI(t *testing.T) *UI {
	t.Helper()
	return &UI{
		theme: config.Theme{
			InactiveBorder: gocui.ColorDefault,
			SelectedBg:     gocui.ColorBlue,
			VisualBg:       gocui.ColorCyan,
			EditBg:         gocui.ColorMagenta,
			SecondaryText:  gocui.ColorWhite,
			Success:        gocui.ColorGreen,
			Warning:        gocui.ColorYellow,
			Error:          gocui.ColorRed,
		},
		editor: newDayEditor(testDay(t, "a")),
	}
}

func TestSelectionBgFollowsMode(t *testing.T) {
	ui := testUI(t)

	if got := ui.selectionBg(); got != gocui.ColorBlue {
		t.Errorf("browse bg = %v, want SelectedBg", got)
	}
	ui.editor.enterVisual()
	if got := ui.selectionBg(); got != gocui.ColorCyan {
		t.Errorf("visual bg = %v, want VisualBg", got)
	}
	ui.editor.exitVisual()
	ui.editor.startEdit()
	if got := ui.selectionBg(); got != gocui.ColorMagenta {
		t.Errorf("edit bg = %v, want EditBg", got)
	}
}

func TestFooterColorShowsErrors(t *testing.T) {
	ui := testUI(t)

	if got := ui.footerColor(); got != gocui.ColorWhite {
		t.Errorf("idle footer = %v, want SecondaryText", got)
	}
	ui.status = "invalid start time"
	if got := ui.footerColor(); got != gocui.ColorRed {
		t.Errorf("error footer = %v, want Error", got)
	}
}

func TestTimerFrameColorFollowsStatus(t *testing.T) {
	ui := testUI(t)

	if got := ui.timerFrameColor(); got != gocui.ColorDefault {
		t.Errorf("no-timer frame = %v, want InactiveBorder", got)
	}
	ui.timer = &model.TimerState{TaskName: "Task", Status: model.TimerRunning}
	if got := ui.timerFrameColor(); got != gocui.ColorGreen {
		t.Errorf("running frame = %v, want Success", got)
	}
	ui.timer.Status = model.TimerPaused
	if got := ui.timerFrameColor(); got != gocui.ColorYellow {
		t.Errorf("paused frame = %v, want Warning", got)
	}
}
