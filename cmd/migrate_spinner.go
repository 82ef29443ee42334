package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/bnema/appearance-snapshots/internal/application"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type migrationProgressMsg application.MigrationProgress

type migrationDoneMsg struct {
	report application.MigrationReport
	err    error
}

var (
	migrationFailedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	migrationRecordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// migrationSpinnerModel shows the running tally of a migration pass until the
// report arrives.
type migrationSpinnerModel struct {
	spinner  spinner.Model
	run      tea.Cmd
	progress application.MigrationProgress
	report   application.MigrationReport
	err      error
	done     bool
}

func newMigrationSpinnerModel(run tea.Cmd) migrationSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return migrationSpinnerModel{
		spinner:  s,
		run:      run,
		progress: application.MigrationProgress{Stage: application.MigrationStageScanning},
	}
}

func (m migrationSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.run)
}

func (m migrationSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case migrationProgressMsg:
		m.progress = application.MigrationProgress(msg)
		return m, nil
	case migrationDoneMsg:
		m.done = true
		m.report = msg.report
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m migrationSpinnerModel) View() string {
	if m.done {
		return ""
	}

	return m.spinner.View() + " " + describeMigrationProgress(m.progress)
}

func describeMigrationProgress(p application.MigrationProgress) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Migrating snapshot records: %s", p.Stage)
	if p.Total > 0 {
		fmt.Fprintf(&b, " %d/%d", p.Done, p.Total)
	}
	if p.Failed > 0 {
		b.WriteString(" ")
		b.WriteString(migrationFailedStyle.Render(fmt.Sprintf("(%d failed)", p.Failed)))
	}
	if p.Record != "" {
		b.WriteString(" ")
		b.WriteString(migrationRecordStyle.Render(p.Record))
	}

	return b.String()
}

func runMigrationSpinner(ctx context.Context, output io.Writer, migration *application.MigrationService) (application.MigrationReport, error) {
	var p *tea.Program
	runCmd := func() tea.Msg {
		report, err := migration.RunWithProgress(ctx, func(progress application.MigrationProgress) {
			p.Send(migrationProgressMsg(progress))
		})
		return migrationDoneMsg{report: report, err: err}
	}

	p = tea.NewProgram(
		newMigrationSpinnerModel(runCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return application.MigrationReport{}, err
	}

	result, ok := finalModel.(migrationSpinnerModel)
	if !ok {
		return application.MigrationReport{}, fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.report, result.err
}
