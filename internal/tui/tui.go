// Package tui is the interactive front-end: a gocui day view over the shared
// store, with vim-style browse/edit/visual modes, an undo log, and a
// background poll that picks up CLI writes.
package tui

import (
	"fmt"
	"time"

	goerrors "github.com/go-errors/errors"
	"github.com/jesseduffield/gocui"

	"worktimer/internal/config"
	"worktimer/internal/history"
	"worktimer/internal/integrations"
	"worktimer/internal/model"
	"worktimer/internal/storage"
)

const (
	viewHeader  = "header"
	viewRecords = "records"
	viewSummary = "summary"
	viewTimer   = "timer"
	viewFooter  = "footer"
)

const pollInterval = 500 * time.Millisecond

type UI struct {
	manager *storage.Manager
	cfg     *config.Config
	theme   config.Theme
	gui     *gocui.Gui

	date   model.Date
	day    model.DayData
	editor *dayEditor
	hist   *history.History
	timer  *model.TimerState

	status string
}

type recordEditor struct {
	ui *UI
}

func Run(manager *storage.Manager, cfg *config.Config) error {
	gui, err := gocui.NewGui(gocui.NewGuiOpts{OutputMode: gocui.OutputTrue})
	if err != nil {
		return err
	}
	defer gui.Close()

	ui := &UI{
		manager: manager,
		cfg:     cfg,
		theme:   cfg.ActiveTheme(),
		gui:     gui,
		date:    model.Today(),
		hist:    history.New(),
	}

	day, err := manager.LoadWithTracking(ui.date)
	if err != nil {
		return err
	}
	ui.day = day
	ui.editor = newDayEditor(&ui.day)

	timer, err := manager.LoadActiveTimer()
	if err != nil {
		return err
	}
	ui.timer = timer

	gui.SetManagerFunc(ui.layout)
	if err := ui.bindKeys(gui); err != nil {
		return err
	}

	done := make(chan struct{})
	go ui.pollExternalChanges(done)

	err = gui.MainLoop()
	close(done)
	if err != nil && err != gocui.ErrQuit {
		return err
	}

	return manager.Save(&ui.day)
}

func (u *UI) bindKeys(gui *gocui.Gui) error {
	if err := gui.SetKeybinding("", gocui.KeyCtrlC, gocui.ModNone, u.quit); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewRecords, 'q', gocui.ModNone, u.quit); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewRecords, gocui.KeyArrowDown, gocui.ModNone, u.moveDown); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewRecords, 'j', gocui.ModNone, u.moveDown); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewRecords, gocui.KeyArrowUp, gocui.ModNone, u.moveUp); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewRecords, 'k', gocui.ModNone, u.moveUp); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewRecords, gocui.KeyArrowLeft, gocui.ModNone, u.fieldLeft); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewRecords, 'h', gocui.ModNone, u.fieldLeft); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewRecords, gocui.KeyArrowRight, gocui.ModNone, u.fieldRight); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewRecords, 'l', gocui.ModNone, u.fieldRight); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewRecords, gocui.KeyEnter, gocui.ModNone, u.openEdit); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewRecords, 'i', gocui.ModNone, u.openEdit); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewRecords, 'c', gocui.ModNone, u.rename); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewRecords, 'n', gocui.ModNone, u.addRecord); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewRecords, 'b', gocui.ModNone, u.addBreak); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewRecords, 'd', gocui.ModNone, u.deleteRecords); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewRecords, 'v', gocui.ModNone, u.enterVisual); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewRecords, gocui.KeyEsc, gocui.ModNone, u.escape); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewRecords, 't', gocui.ModNone, u.setNow); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewRecords, 'u', gocui.ModNone, u.undo); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewRecords, 'r', gocui.ModNone, u.redo); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewRecords, 's', gocui.ModNone, u.saveNow); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewRecords, '[', gocui.ModNone, u.previousDay); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewRecords, ']', gocui.ModNone, u.nextDay); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewRecords, 'S', gocui.ModNone, u.toggleTimer); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewRecords, 'P', gocui.ModNone, u.togglePause); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewRecords, 'T', gocui.ModNone, u.openTicket); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewRecords, 'L', gocui.ModNone, u.openWorklog); err != nil {
		return err
	}
	return nil
}

func (u *UI) layout(gui *gocui.Gui) error {
	maxX, maxY := gui.Size()
	if maxX <= 0 || maxY <= 0 {
		return nil
	}

	headerView, err := gui.SetView(viewHeader, 0, 0, maxX-1, 1, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	headerView.Frame = false
	headerView.FgColor = u.theme.PrimaryText
	u.renderHeader(headerView)

	footerY0 := maxY - 4
	if footerY0 < 2 {
		footerY0 = 2
	}
	footerView, err := gui.SetView(viewFooter, 0, footerY0, maxX-1, maxY-1, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	footerView.Frame = false
	footerView.Wrap = true
	footerView.FgColor = u.footerColor()
	u.renderFooter(footerView)

	bodyTop := 2
	bodyBottom := footerY0 - 1
	if bodyBottom <= bodyTop {
		return nil
	}

	leftWidth := maxX * 2 / 3
	if leftWidth < 40 {
		leftWidth = maxX - 24
	}
	if leftWidth < 20 {
		leftWidth = maxX - 1
	}

	recordsView, err := gui.SetView(viewRecords, 0, bodyTop, leftWidth-1, bodyBottom, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	if goerrors.Is(err, gocui.ErrUnknownView) {
		recordsView.Title = "Records"
	}
	recordsView.FrameColor = u.theme.ActiveBorder
	recordsView.TitleColor = u.theme.ActiveBorder
	recordsView.Highlight = true
	recordsView.SelBgColor = u.selectionBg()
	recordsView.SelFgColor = u.theme.PrimaryText
	recordsView.Editable = u.editor.mode == modeEdit
	recordsView.Editor = &recordEditor{ui: u}
	u.renderRecords(recordsView)

	if leftWidth < maxX-1 {
		timerY0 := bodyBottom - 4
		if timerY0 <= bodyTop {
			timerY0 = bodyTop + 1
		}

		summaryView, err := gui.SetView(viewSummary, leftWidth, bodyTop, maxX-1, timerY0-1, 0)
		if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
			return err
		}
		if goerrors.Is(err, gocui.ErrUnknownView) {
			summaryView.Title = "Summary"
		}
		summaryView.FrameColor = u.theme.InactiveBorder
		u.renderSummary(summaryView)

		timerView, err := gui.SetView(viewTimer, leftWidth, timerY0, maxX-1, bodyBottom, 0)
		if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
			return err
		}
		if goerrors.Is(err, gocui.ErrUnknownView) {
			timerView.Title = "Timer"
		}
		timerView.FrameColor = u.timerFrameColor()
		timerView.FgColor = u.theme.TimerText
		u.renderTimer(timerView)
	}

	if gui.CurrentView() == nil || gui.CurrentView().Name() != viewRecords {
		_, _ = gui.SetCurrentView(viewRecords)
	}
	gui.Cursor = false

	return nil
}

// selectionBg picks the cursor-row background for the current mode: visual
// and edit get their own colors so the mode reads at a glance.
func (u *UI) selectionBg() gocui.Attribute {
	switch u.editor.mode {
	case modeVisual:
		return u.theme.VisualBg
	case modeEdit:
		return u.theme.EditBg
	default:
		return u.theme.SelectedBg
	}
}

// footerColor turns the footer red while an error sits on the status line.
func (u *UI) footerColor() gocui.Attribute {
	if u.status != "" {
		return u.theme.Error
	}
	return u.theme.SecondaryText
}

// timerFrameColor signals the timer state on its border: green running,
// yellow paused.
func (u *UI) timerFrameColor() gocui.Attribute {
	if u.timer == nil {
		return u.theme.InactiveBorder
	}
	if u.timer.Status == model.TimerPaused {
		return u.theme.Warning
	}
	return u.theme.Success
}

func (u *UI) renderHeader(view *gocui.View) {
	view.Clear()
	mode := "BROWSE"
	switch u.editor.mode {
	case modeEdit:
		mode = "EDIT"
	case modeVisual:
		mode = "VISUAL"
	}
	fmt.Fprintf(view, " %s   [%s]   total %s", u.date, mode, model.FormatDuration(u.day.TotalMinutes()))
}

func (u *UI) renderFooter(view *gocui.View) {
	view.Clear()
	switch u.editor.mode {
	case modeEdit:
		fmt.Fprintln(view, "type to edit | tab next field | enter save | esc cancel")
	case modeVisual:
		fmt.Fprintln(view, "j/k extend selection | d delete selection | esc cancel")
	default:
		fmt.Fprintln(view, "j/k move | h/l field | enter/i edit | c rename | n new | b break | d delete | v visual")
		fmt.Fprintln(view, "t now | u undo | r redo | s save | [/] day | S timer | P pause | T ticket | q quit")
	}
	if u.status != "" {
		fmt.Fprintf(view, "! %s", u.status)
	}
}

func (u *UI) renderRecords(view *gocui.View) {
	view.Clear()
	records := u.day.SortedRecords()
	if len(records) == 0 {
		fmt.Fprint(view, " no records — n adds one")
		return
	}

	for i, record := range records {
		prefix := " "
		if u.editor.mode == modeVisual && u.editor.inVisualSelection(i) {
			prefix = "*"
		} else if i == u.editor.selected {
			prefix = ">"
		}

		selected := i == u.editor.selected
		name := u.fieldCell(record.Name, fieldName, selected)
		start := u.fieldCell(record.Start.String(), fieldStart, selected)
		end := u.fieldCell(record.End.String(), fieldEnd, selected)

		fmt.Fprintf(view, "%s %-9s %-9s %-32s %9s\n", prefix, start, end, name, model.FormatDuration(record.TotalMinutes))
	}
	view.SetCursor(0, u.editor.selected)
}

// fieldCell renders one record field: brackets mark the focused field on the
// selected row, and the live edit buffer replaces the stored value while that
// field is being edited.
func (u *UI) fieldCell(value string, field editField, selected bool) string {
	if !selected || u.editor.field != field {
		return value
	}
	if u.editor.mode == modeEdit {
		return "[" + u.editor.input + "_]"
	}
	return "[" + value + "]"
}

func (u *UI) renderSummary(view *gocui.View) {
	view.Clear()
	totals := u.day.GroupedTotals()
	if len(totals) == 0 {
		fmt.Fprint(view, " nothing tracked yet")
		return
	}
	for _, total := range totals {
		fmt.Fprintf(view, " %-20s %9s\n", total.Name, model.FormatDuration(total.TotalMinutes))
	}
}

func (u *UI) renderTimer(view *gocui.View) {
	view.Clear()
	if u.timer == nil {
		fmt.Fprint(view, " no active timer — S starts one")
		return
	}

	label := "running"
	if u.timer.Status == model.TimerPaused {
		label = "paused"
	}
	fmt.Fprintf(view, " %s (%s)\n", u.timer.TaskName, label)
	fmt.Fprintf(view, " elapsed %s\n", formatElapsed(u.manager.TimerElapsed(u.timer)))
	if u.timer.Description != nil {
		fmt.Fprintf(view, " %s\n", *u.timer.Description)
	}
}

func formatElapsed(d time.Duration) string {
	totalSecs := int64(d.Seconds())
	return fmt.Sprintf("%d:%02d:%02d", totalSecs/3600, (totalSecs%3600)/60, totalSecs%60)
}

// pollExternalChanges wakes the event loop every half second so the elapsed
// display ticks and writes from the CLI process show up without input.
func (u *UI) pollExternalChanges(done <-chan struct{}) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			u.gui.Update(func(*gocui.Gui) error {
				u.refreshExternal()
				return nil
			})
		}
	}
}

func (u *UI) refreshExternal() {
	if reloaded, err := u.manager.CheckAndReload(u.date); err == nil && reloaded != nil {
		u.day = *reloaded
		u.editor.setDay(&u.day)
		// The snapshots predate the external write; replaying them would
		// silently drop it.
		u.hist.Clear()
	}
	if timer, err := u.manager.LoadActiveTimer(); err == nil {
		u.timer = timer
	}
}

// withUndo snapshots the day, runs the mutation, and persists. A failed
// mutation leaves both the day and the undo log untouched.
func (u *UI) withUndo(mutate func() error) error {
	snapshot := u.day.Clone()
	if err := mutate(); err != nil {
		return err
	}
	u.hist.Push(&snapshot)
	return u.saveDay()
}

func (u *UI) saveDay() error {
	return u.manager.Save(&u.day)
}

func (u *UI) fail(err error) {
	if err != nil {
		u.status = err.Error()
	}
}

func (u *UI) quit(_ *gocui.Gui, _ *gocui.View) error {
	return gocui.ErrQuit
}

func (u *UI) moveDown(_ *gocui.Gui, _ *gocui.View) error {
	u.status = ""
	u.editor.moveDown()
	return nil
}

func (u *UI) moveUp(_ *gocui.Gui, _ *gocui.View) error {
	u.status = ""
	u.editor.moveUp()
	return nil
}

func (u *UI) fieldLeft(_ *gocui.Gui, _ *gocui.View) error {
	if u.editor.mode != modeBrowse {
		return nil
	}
	u.status = ""
	u.editor.moveFieldLeft()
	return nil
}

func (u *UI) fieldRight(_ *gocui.Gui, _ *gocui.View) error {
	if u.editor.mode != modeBrowse {
		return nil
	}
	u.status = ""
	u.editor.moveFieldRight()
	return nil
}

func (u *UI) openEdit(_ *gocui.Gui, _ *gocui.View) error {
	if u.editor.mode != modeBrowse {
		return nil
	}
	u.status = ""
	u.editor.startEdit()
	return nil
}

func (u *UI) rename(_ *gocui.Gui, _ *gocui.View) error {
	if u.editor.mode != modeBrowse {
		return nil
	}
	u.status = ""
	u.editor.startRename()
	return nil
}

func (u *UI) addRecord(_ *gocui.Gui, _ *gocui.View) error {
	if u.editor.mode != modeBrowse {
		return nil
	}
	u.status = ""
	u.fail(u.withUndo(func() error {
		u.editor.addRecord()
		return nil
	}))
	return nil
}

func (u *UI) addBreak(_ *gocui.Gui, _ *gocui.View) error {
	if u.editor.mode != modeBrowse {
		return nil
	}
	u.status = ""
	u.fail(u.withUndo(func() error {
		u.editor.addBreak()
		return nil
	}))
	return nil
}

func (u *UI) deleteRecords(_ *gocui.Gui, _ *gocui.View) error {
	u.status = ""
	switch u.editor.mode {
	case modeVisual:
		u.fail(u.withUndo(func() error {
			u.editor.deleteVisualSelection()
			return nil
		}))
	case modeBrowse:
		if _, ok := u.editor.selectedRecord(); !ok {
			return nil
		}
		u.fail(u.withUndo(func() error {
			u.editor.deleteSelected()
			return nil
		}))
	}
	return nil
}

func (u *UI) enterVisual(_ *gocui.Gui, _ *gocui.View) error {
	if u.editor.mode != modeBrowse {
		return nil
	}
	if _, ok := u.editor.selectedRecord(); !ok {
		return nil
	}
	u.status = ""
	u.editor.enterVisual()
	return nil
}

func (u *UI) escape(_ *gocui.Gui, _ *gocui.View) error {
	if u.editor.mode == modeVisual {
		u.editor.exitVisual()
	}
	u.status = ""
	return nil
}

func (u *UI) setNow(_ *gocui.Gui, _ *gocui.View) error {
	if u.editor.mode != modeBrowse {
		return nil
	}
	if u.editor.field == fieldName {
		return nil
	}
	u.status = ""
	u.fail(u.withUndo(func() error {
		u.editor.setFieldToNow(time.Now())
		return nil
	}))
	return nil
}

func (u *UI) undo(_ *gocui.Gui, _ *gocui.View) error {
	if u.editor.mode != modeBrowse {
		return nil
	}
	u.status = ""
	restored := u.hist.Undo(&u.day)
	if restored == nil {
		return nil
	}
	u.day = *restored
	u.editor.setDay(&u.day)
	u.fail(u.saveDay())
	return nil
}

func (u *UI) redo(_ *gocui.Gui, _ *gocui.View) error {
	if u.editor.mode != modeBrowse {
		return nil
	}
	u.status = ""
	restored := u.hist.Redo(&u.day)
	if restored == nil {
		return nil
	}
	u.day = *restored
	u.editor.setDay(&u.day)
	u.fail(u.saveDay())
	return nil
}

func (u *UI) saveNow(_ *gocui.Gui, _ *gocui.View) error {
	if u.editor.mode != modeBrowse {
		return nil
	}
	u.status = ""
	u.fail(u.saveDay())
	return nil
}

func (u *UI) previousDay(_ *gocui.Gui, _ *gocui.View) error {
	return u.switchDay(u.date.Previous())
}

func (u *UI) nextDay(_ *gocui.Gui, _ *gocui.View) error {
	return u.switchDay(u.date.Next())
}

func (u *UI) switchDay(date model.Date) error {
	if u.editor.mode != modeBrowse {
		return nil
	}
	u.status = ""

	if err := u.saveDay(); err != nil {
		u.fail(err)
		return nil
	}

	day, err := u.manager.LoadWithTracking(date)
	if err != nil {
		u.fail(err)
		return nil
	}
	u.date = date
	u.day = day
	u.editor.setDay(&u.day)
	// Undo snapshots belong to the previous day.
	u.hist.Clear()
	return nil
}

// toggleTimer starts a timer for the selected record (linked, so stopping
// extends the record) or stops the active one. With no record selected the
// session starts fresh and unlinked.
func (u *UI) toggleTimer(_ *gocui.Gui, _ *gocui.View) error {
	if u.editor.mode != modeBrowse {
		return nil
	}
	u.status = ""

	if u.timer != nil {
		if _, err := u.manager.StopTimer(); err != nil {
			u.fail(err)
			return nil
		}
		u.timer = nil
		u.reloadAfterTimerStop()
		return nil
	}

	var err error
	var started model.TimerState
	if record, ok := u.editor.selectedRecord(); ok {
		recordID := record.ID
		sourceDate := u.date
		started, err = u.manager.StartTimer(record.Name, nil, &recordID, &sourceDate)
	} else {
		started, err = u.manager.StartTimer("Work Session", nil, nil, nil)
	}
	if err != nil {
		u.fail(err)
		return nil
	}
	u.timer = &started
	return nil
}

// reloadAfterTimerStop re-reads the viewed day so the record the stop wrote
// shows up immediately.
func (u *UI) reloadAfterTimerStop() {
	day, err := u.manager.LoadWithTracking(u.date)
	if err != nil {
		u.fail(err)
		return
	}
	u.day = day
	u.editor.setDay(&u.day)
	u.hist.Clear()
}

func (u *UI) togglePause(_ *gocui.Gui, _ *gocui.View) error {
	if u.editor.mode != modeBrowse {
		return nil
	}
	u.status = ""
	if u.timer == nil {
		return nil
	}

	var updated model.TimerState
	var err error
	switch u.timer.Status {
	case model.TimerRunning:
		updated, err = u.manager.PauseTimer()
	case model.TimerPaused:
		updated, err = u.manager.ResumeTimer()
	default:
		return nil
	}
	if err != nil {
		u.fail(err)
		return nil
	}
	u.timer = &updated
	return nil
}

func (u *UI) openTicket(_ *gocui.Gui, _ *gocui.View) error {
	return u.openTrackerURL(false)
}

func (u *UI) openWorklog(_ *gocui.Gui, _ *gocui.View) error {
	return u.openTrackerURL(true)
}

func (u *UI) openTrackerURL(forWorklog bool) error {
	if u.editor.mode != modeBrowse {
		return nil
	}
	u.status = ""

	if !u.cfg.HasIntegrations() {
		u.status = "no issue trackers configured"
		return nil
	}
	record, ok := u.editor.selectedRecord()
	if !ok {
		return nil
	}

	url, err := integrations.TicketURL(record.Name, u.cfg, forWorklog)
	if err != nil {
		u.fail(err)
		return nil
	}
	u.fail(integrations.OpenURL(url))
	return nil
}

// Edit receives every key while edit mode has the records view editable.
// Commits (enter, or the fourth time digit) snapshot and save; a failed
// commit keeps edit mode with the error on the status line.
func (e *recordEditor) Edit(view *gocui.View, key gocui.Key, ch rune, mod gocui.Modifier) bool {
	u := e.ui
	if u.editor.mode != modeEdit {
		return false
	}

	switch key {
	case gocui.KeyEsc:
		u.editor.cancelEdit()
		u.status = ""
		return true
	case gocui.KeyTab:
		u.editor.nextField()
		return true
	case gocui.KeyEnter:
		snapshot := u.day.Clone()
		if err := u.editor.commitEdit(); err != nil {
			u.status = err.Error()
			return true
		}
		u.hist.Push(&snapshot)
		u.fail(u.saveDay())
		return true
	case gocui.KeyBackspace, gocui.KeyBackspace2:
		u.editor.backspace()
		return true
	case gocui.KeySpace:
		ch = ' '
	}

	if ch == 0 {
		return true
	}

	snapshot := u.day.Clone()
	committed, err := u.editor.typeChar(ch)
	if err != nil {
		u.status = err.Error()
		return true
	}
	if committed {
		u.hist.Push(&snapshot)
		u.fail(u.saveDay())
	}
	return true
}
