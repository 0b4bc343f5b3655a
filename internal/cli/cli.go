// Package cli is the one-shot command front-end. It shares the day files and
// the timer file with the TUI, so sessions started here show up there and
// vice versa.
package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"worktimer/internal/model"
	"worktimer/internal/storage"
)

func SetupCommands(manager *storage.Manager) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "worktimer",
		Short:         "Personal time tracking with a TUI and CLI over shared files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	sessionCmd := &cobra.Command{
		Use:   "session",
		Short: "Manage timer sessions",
	}

	startCmd := &cobra.Command{
		Use:   "start [task]",
		Short: "Start a new timer session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			description, _ := cmd.Flags().GetString("description")
			return runStart(manager, args[0], description)
		},
	}
	startCmd.Flags().StringP("description", "d", "", "Optional task description")

	stopCmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the running timer session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStop(manager)
		},
	}

	pauseCmd := &cobra.Command{
		Use:   "pause",
		Short: "Pause the running timer session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPause(manager)
		},
	}

	resumeCmd := &cobra.Command{
		Use:   "resume",
		Short: "Resume the paused timer session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResume(manager)
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show the running timer session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(manager)
		},
	}

	sessionCmd.AddCommand(startCmd)
	sessionCmd.AddCommand(stopCmd)
	sessionCmd.AddCommand(pauseCmd)
	sessionCmd.AddCommand(resumeCmd)
	sessionCmd.AddCommand(statusCmd)

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Print the day's records and totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dateArg, _ := cmd.Flags().GetString("date")
			return runReport(manager, dateArg)
		},
	}
	reportCmd.Flags().String("date", "", "Date to report on (YYYY-MM-DD, default today)")

	rootCmd.AddCommand(sessionCmd)
	rootCmd.AddCommand(reportCmd)

	return rootCmd
}

func runStart(manager *storage.Manager, task, description string) error {
	var descPtr *string
	if description != "" {
		descPtr = &description
	}

	timer, err := manager.StartTimer(task, descPtr, nil, nil)
	if err != nil {
		return err
	}

	fmt.Println("✓ Session started")
	fmt.Printf("  Task: %s\n", timer.TaskName)
	if timer.Description != nil {
		fmt.Printf("  Description: %s\n", *timer.Description)
	}
	fmt.Printf("  Started at: %s\n", formatClock(timer.StartTime))
	return nil
}

func runStop(manager *storage.Manager) error {
	timer, err := manager.LoadActiveTimer()
	if err != nil {
		return err
	}
	if timer == nil {
		return fmt.Errorf("no session is running")
	}
	elapsed := manager.TimerElapsed(timer)

	record, err := manager.StopTimer()
	if err != nil {
		return err
	}

	fmt.Println("✓ Session stopped")
	fmt.Printf("  Task: %s\n", timer.TaskName)
	fmt.Printf("  Duration: %s\n", formatDuration(elapsed))
	fmt.Printf("  Started at: %s\n", formatClock(timer.StartTime))
	fmt.Printf("  Ended at: %02d:%02d:00\n", record.End.Hour, record.End.Minute)
	return nil
}

func runPause(manager *storage.Manager) error {
	timer, err := manager.PauseTimer()
	if err != nil {
		return err
	}

	fmt.Println("⏸ Session paused")
	fmt.Printf("  Task: %s\n", timer.TaskName)
	fmt.Printf("  Elapsed: %s\n", formatDuration(manager.TimerElapsed(&timer)))
	return nil
}

func runResume(manager *storage.Manager) error {
	timer, err := manager.ResumeTimer()
	if err != nil {
		return err
	}

	fmt.Println("▶ Session resumed")
	fmt.Printf("  Task: %s\n", timer.TaskName)
	fmt.Printf("  Elapsed: %s\n", formatDuration(manager.TimerElapsed(&timer)))
	return nil
}

func runStatus(manager *storage.Manager) error {
	timer, err := manager.LoadActiveTimer()
	if err != nil {
		return err
	}
	if timer == nil {
		fmt.Println("No session is currently running")
		return nil
	}

	fmt.Println("⏱ Session Status")
	fmt.Printf("  Task: %s\n", timer.TaskName)
	fmt.Printf("  Status: %s\n", statusLabel(timer.Status))
	fmt.Printf("  Elapsed: %s\n", formatDuration(manager.TimerElapsed(timer)))
	fmt.Printf("  Started at: %s\n", formatClock(timer.StartTime))
	if timer.Description != nil {
		fmt.Printf("  Description: %s\n", *timer.Description)
	}
	return nil
}

func runReport(manager *storage.Manager, dateArg string) error {
	date := model.Today()
	if dateArg != "" {
		parsed, err := model.ParseDate(dateArg)
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", dateArg, err)
		}
		date = parsed
	}

	day, err := manager.LoadWithTracking(date)
	if err != nil {
		return err
	}

	records := day.SortedRecords()
	if len(records) == 0 {
		fmt.Printf("No records for %s\n", date)
		return nil
	}

	fmt.Printf("Records for %s\n", date)
	for _, record := range records {
		line := fmt.Sprintf("  %s-%s  %-30s %s", record.Start, record.End, record.Name, model.FormatDuration(record.TotalMinutes))
		if record.Description != "" {
			line += "  (" + record.Description + ")"
		}
		fmt.Println(line)
	}

	fmt.Println("Totals by task")
	for _, total := range day.GroupedTotals() {
		fmt.Printf("  %-30s %s\n", total.Name, model.FormatDuration(total.TotalMinutes))
	}
	fmt.Printf("Day total: %s\n", model.FormatDuration(day.TotalMinutes()))
	return nil
}

func statusLabel(status model.TimerStatus) string {
	switch status {
	case model.TimerRunning:
		return "Running"
	case model.TimerPaused:
		return "Paused"
	default:
		return "Stopped"
	}
}

func formatClock(t time.Time) string {
	return t.Format("15:04:05")
}

// formatDuration renders elapsed time as "1h 01m 01s", dropping the hour
// part below one hour.
func formatDuration(d time.Duration) string {
	totalSecs := int64(d.Seconds())
	hours := totalSecs / 3600
	minutes := (totalSecs % 3600) / 60
	seconds := totalSecs % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %02dm %02ds", hours, minutes, seconds)
	}
	return fmt.Sprintf("%dm %02ds", minutes, seconds)
}
