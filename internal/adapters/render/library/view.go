package library

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bnema/appearance-snapshots/internal/application"
	"github.com/bnema/appearance-snapshots/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type RenderOptions struct {
	Now time.Time
	// StaleAfter marks records not captured for this long. Zero disables the marker.
	StaleAfter time.Duration
}

func RenderList(summaries []application.RecordSummary, opts RenderOptions) (string, error) {
	return run(func(s styles) string {
		return listView(summaries, opts, s)
	})
}

func RenderRecord(snapshot domain.Snapshot, opts RenderOptions) (string, error) {
	return run(func(s styles) string {
		return recordView(snapshot, opts, s)
	})
}

func RenderSessions(sessions []domain.ActiveSession, opts RenderOptions) (string, error) {
	return run(func(s styles) string {
		return sessionsView(sessions, opts, s)
	})
}

func listView(summaries []application.RecordSummary, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Appearance Snapshots"),
		s.header.Render(fmt.Sprintf("records: %d", len(summaries))),
	}

	if len(summaries) == 0 {
		lines = append(lines, s.empty.Render("No snapshot records yet."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, summary := range summaries {
		lines = append(lines, s.section.Render(summaryView(summary, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func summaryView(summary application.RecordSummary, opts RenderOptions, s styles) string {
	parts := []string{
		s.record.Render(recordTitle(summary.Name, summary.SourceActor)),
		s.detail.Render(fmt.Sprintf("files: %d paths, %d blobs", summary.GamePaths, summary.Blobs)),
		s.detail.Render(fmt.Sprintf("history: %d equipment, %d scale", summary.EquipmentEntries, summary.ScaleEntries)),
		updatedLine(summary.LastUpdate, opts, s),
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func recordView(snapshot domain.Snapshot, opts RenderOptions, s styles) string {
	lines := []string{
		s.record.Render(recordTitle(snapshot.Name, snapshot.Record.SourceActor)),
		updatedLine(snapshot.Record.LastUpdate, opts, s),
		s.detail.Render(fmt.Sprintf("files: %d paths, %d blobs", len(snapshot.Record.FileReplacements), len(snapshot.Record.FileReplacements.Hashes()))),
		s.detail.Render(fmt.Sprintf("manipulations: %s", sizeLabel(len(snapshot.Record.ManipulationString)))),
		s.section.Render(historyView("Equipment history", snapshot.Equipment, s)),
		s.section.Render(historyView("Scale history", snapshot.Scale, s)),
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func historyView(title string, history domain.History, s styles) string {
	lines := []string{s.title.Render(title)}
	if len(history.Entries) == 0 {
		lines = append(lines, s.empty.Render("no entries"))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	last := len(history.Entries) - 1
	for i, entry := range history.Entries {
		line := lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.index.Render(fmt.Sprintf("[%d]", i)),
			" ",
			s.meta.Render(entry.Timestamp.UTC().Format("2006-01-02 15:04")),
			" ",
			s.detail.Render(descriptionLabel(entry.Description)),
		)
		if i == last {
			line += " " + s.latest.Render("(latest)")
		}
		lines = append(lines, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func sessionsView(sessions []domain.ActiveSession, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Active Sessions"),
		s.header.Render(fmt.Sprintf("sessions: %d", len(sessions))),
	}

	if len(sessions) == 0 {
		lines = append(lines, s.empty.Render("No active sessions."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, session := range sessions {
		line := lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.index.Render(fmt.Sprintf("slot %3d", session.Slot)),
			" ",
			s.record.Render(session.Record),
			" ",
			s.meta.Render(formatAge(session.AppliedAt, opts.Now)),
		)
		if session.IsPrimaryActor {
			line += " " + s.primary.Render("[primary]")
		}
		if session.HasScaleSession() {
			line += " " + s.meta.Render("scale:"+session.ScaleSessionID)
		}
		lines = append(lines, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func updatedLine(lastUpdate time.Time, opts RenderOptions, s styles) string {
	style := lipgloss.NewStyle().Foreground(ageColor(lastUpdate, opts.Now, opts.StaleAfter))
	line := style.Render("updated " + formatAge(lastUpdate, opts.Now))

	if opts.StaleAfter > 0 && !opts.Now.IsZero() && !lastUpdate.IsZero() && opts.Now.Sub(lastUpdate) > opts.StaleAfter {
		line += " " + s.warning.Render("[stale]")
	}
	return line
}

func recordTitle(name, source string) string {
	trimmed := strings.TrimSpace(source)
	if trimmed == "" || trimmed == name {
		return name
	}
	return fmt.Sprintf("%s (%s)", name, trimmed)
}

func descriptionLabel(description string) string {
	if strings.TrimSpace(description) == "" {
		return "(no description)"
	}
	return description
}

func sizeLabel(n int) string {
	switch {
	case n == 0:
		return "none"
	case n < 1024:
		return fmt.Sprintf("%d B", n)
	default:
		return fmt.Sprintf("%.1f KiB", float64(n)/1024)
	}
}

func formatAge(at, now time.Time) string {
	if at.IsZero() {
		return "never"
	}
	if now.IsZero() {
		return at.UTC().Format(time.RFC3339)
	}

	elapsed := now.Sub(at)
	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < time.Hour:
		return plural(int(elapsed.Minutes()), "minute") + " ago"
	case elapsed < 24*time.Hour:
		return plural(int(elapsed.Hours()), "hour") + " ago"
	default:
		return plural(int(math.Floor(elapsed.Hours()/24)), "day") + " ago"
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// ageColor fades from bright white for fresh records to grey at staleAfter.
func ageColor(at, now time.Time, staleAfter time.Duration) lipgloss.Color {
	if now.IsZero() || at.IsZero() || staleAfter <= 0 {
		return lipgloss.Color("255")
	}

	remaining := staleAfter.Seconds() - now.Sub(at).Seconds()
	return interpolateColor(remaining, 0, staleAfter.Seconds())
}

func interpolateColor(value, min, max float64) lipgloss.Color {
	if max == min {
		return lipgloss.Color("255")
	}

	normalized := (value - min) / (max - min)
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}

	// ANSI 256 greyscale ramp: 240 faded, 255 bright.
	interpolated := 240.0 + 15.0*normalized
	return lipgloss.Color(fmt.Sprintf("%d", int(interpolated)))
}
