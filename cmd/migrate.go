package cmd

import (
	"fmt"
	"io"

	"github.com/bnema/appearance-snapshots/internal/application"
	"github.com/spf13/cobra"
)

func newMigrateCmd(app *app) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Upgrade snapshot records written by older versions",
		Long:  "Migrate stamps unversioned records and converts flat legacy records into the current layout. Legacy records are archived into the backup directory first; if the backup fails nothing is touched.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				report application.MigrationReport
				err    error
			)
			if quiet {
				report, err = app.migration.Run(cmd.Context())
			} else {
				report, err = runMigrationSpinner(cmd.Context(), cmd.ErrOrStderr(), app.migration)
			}
			if err != nil {
				return err
			}

			return writeMigrationReport(cmd.OutOrStdout(), report)
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not show a progress spinner")
	return cmd
}

func writeMigrationReport(w io.Writer, report application.MigrationReport) error {
	if !report.Changed() && len(report.Unreadable) == 0 {
		_, err := fmt.Fprintln(w, "all snapshot records are up to date")
		return err
	}

	if report.Backup != "" {
		_, _ = fmt.Fprintf(w, "backup: %s\n", report.Backup)
	}
	for _, name := range report.Stamped {
		_, _ = fmt.Fprintf(w, "stamped %s\n", name)
	}
	for _, migrated := range report.Migrated {
		_, _ = fmt.Fprintf(w, "migrated %s: %d files, %d game paths, %d missing\n",
			migrated.Name, migrated.FilesHashed, migrated.GamePaths, migrated.FilesMissing)
	}
	for _, failed := range report.Failed {
		_, _ = fmt.Fprintf(w, "failed %s (moved to %s): %v\n", failed.Name, failed.MovedTo, failed.Err)
	}
	for _, unreadable := range report.Unreadable {
		_, _ = fmt.Fprintf(w, "skipped unreadable %s: %v\n", unreadable.Name, unreadable.Err)
	}

	return nil
}
