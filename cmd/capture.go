package cmd

import (
	"fmt"

	"github.com/bnema/appearance-snapshots/internal/application"
	"github.com/spf13/cobra"
)

func newCaptureCmd(app *app) *cobra.Command {
	var req application.CaptureRequest

	cmd := &cobra.Command{
		Use:   "capture",
		Short: "Capture the appearance of the actor in a slot",
		Long:  "Capture reads replaced files, equipment state and bone scaling of the actor in --slot and stores them in its snapshot record, appending history entries only when state changed.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := app.capture.Capture(cmd.Context(), req)
			if err != nil {
				return err
			}

			state := "updated"
			if result.Created {
				state = "created"
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(),
				"%s %s: %d files stored, %d skipped, equipment %s, scale %s\n",
				state, result.Record, result.FilesStored, result.FilesSkipped,
				changeLabel(result.EquipmentAppended), changeLabel(result.ScaleAppended),
			)
			return err
		},
	}

	cmd.Flags().IntVar(&req.Slot, "slot", 0, "actor slot to capture")
	cmd.Flags().StringVar(&req.As, "as", "", "store under this record name instead of the actor's")
	cmd.Flags().StringVar(&req.Description, "description", "", "description of the new history entries")

	return cmd
}

func changeLabel(appended bool) string {
	if appended {
		return "appended"
	}
	return "unchanged"
}
