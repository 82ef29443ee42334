package cmd

import (
	"github.com/spf13/cobra"
)

const metricsFileFlag = "metrics-file"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "asnap",
		Short:         "Appearance snapshots (asnap): capture and re-apply character appearances",
		Long:          "asnap captures the full appearance of an actor (replaced files, equipment state, bone scaling) into a local snapshot library and re-applies it temporarily to any actor through the host bridge.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().String(metricsFileFlag, "", "write Prometheus metrics to this textfile after the command")

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		rootCmd.AddCommand(newVersionCmd())
		return rootCmd
	}

	rootCmd.PersistentPostRunE = func(cmd *cobra.Command, _ []string) error {
		path, _ := cmd.Flags().GetString(metricsFileFlag)
		return app.metrics.WriteTextfile(path)
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newCaptureCmd(app),
		newApplyCmd(app),
		newRevertCmd(app),
		newListCmd(app),
		newShowCmd(app),
		newRenameCmd(app),
		newDeleteCmd(app),
		newHistoryCmd(app),
		newMigrateCmd(app),
		newExportCmd(app),
		newExportModPackCmd(app),
		newImportCmd(app),
		newWatchCmd(app),
		newConfigCmd(app),
	)

	return rootCmd
}
