// Package integrations links work records to issue trackers: it pulls ticket
// ids out of record names, matches them against configured trackers, and
// builds browse/worklog URLs.
package integrations

import (
	"fmt"
	"os/exec"
	"regexp"
	"runtime"
	"sort"
	"strings"

	"worktimer/internal/config"
)

// Ticket ids look like PROJ-123: an uppercase project key, a dash, a number.
var ticketPattern = regexp.MustCompile(`\b([A-Z]{2,10}-\d+)\b`)

// ExtractTicket returns the first ticket id found in a record name, or ""
// when there is none.
func ExtractTicket(name string) string {
	match := ticketPattern.FindStringSubmatch(name)
	if match == nil {
		return ""
	}
	return match[1]
}

// DetectTracker picks the configured tracker a ticket belongs to: the first
// enabled tracker whose patterns match, otherwise the configured default.
// Empty means no tracker applies.
//
// Pattern matching iterates trackers in sorted-name order so detection is
// deterministic when several trackers match.
func DetectTracker(ticket string, cfg *config.Config) string {
	for _, name := range sortedTrackerNames(cfg) {
		tracker := cfg.Trackers()[name]
		if tracker.Enabled && matchesPatterns(ticket, tracker.TicketPatterns) {
			return name
		}
	}

	fallback := cfg.Integrations.DefaultTracker
	if _, ok := cfg.Trackers()[fallback]; ok {
		return fallback
	}
	return ""
}

func sortedTrackerNames(cfg *config.Config) []string {
	names := make([]string, 0, len(cfg.Trackers()))
	for name := range cfg.Trackers() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func matchesPatterns(ticket string, patterns []string) bool {
	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			continue
		}
		if re.MatchString(ticket) {
			return true
		}
	}
	return false
}

// BuildURL renders a tracker's URL template for a ticket. The worklog
// template is used when asked for and non-empty, otherwise the browse
// template.
func BuildURL(ticket, trackerName string, cfg *config.Config, forWorklog bool) (string, error) {
	tracker, ok := cfg.Trackers()[trackerName]
	if !ok {
		return "", fmt.Errorf("tracker %q is not configured", trackerName)
	}
	if !tracker.Enabled {
		return "", fmt.Errorf("tracker %q is not enabled", trackerName)
	}

	template := tracker.BrowseURL
	if forWorklog && tracker.WorklogURL != "" {
		template = tracker.WorklogURL
	}
	if template == "" {
		return "", fmt.Errorf("tracker %q has no URL template", trackerName)
	}

	url := strings.ReplaceAll(template, "{base_url}", tracker.BaseURL)
	url = strings.ReplaceAll(url, "{ticket}", ticket)
	return url, nil
}

// TicketURL is the one-call path the front-ends use: extract, detect, build.
func TicketURL(recordName string, cfg *config.Config, forWorklog bool) (string, error) {
	ticket := ExtractTicket(recordName)
	if ticket == "" {
		return "", fmt.Errorf("no ticket id in %q", recordName)
	}

	tracker := DetectTracker(ticket, cfg)
	if tracker == "" {
		return "", fmt.Errorf("no tracker configured for %q", ticket)
	}
	return BuildURL(ticket, tracker, cfg, forWorklog)
}

// OpenURL launches the platform browser without waiting for it.
func OpenURL(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open browser: %w", err)
	}
	return nil
}
