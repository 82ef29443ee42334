package cmd

import (
	"fmt"
	"strconv"

	"github.com/bnema/appearance-snapshots/internal/application"
	"github.com/spf13/cobra"
)

func newApplyCmd(app *app) *cobra.Command {
	var (
		slot           int
		equipmentEntry int
		scaleEntry     int
		collection     string
	)

	cmd := &cobra.Command{
		Use:   "apply <record>",
		Short: "Temporarily apply a snapshot record to the actor in a slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := application.ApplyRequest{
				Record:          args[0],
				Slot:            slot,
				MergeCollection: collection,
			}
			if cmd.Flags().Changed("equipment-entry") {
				req.EquipmentEntry = &equipmentEntry
			}
			if cmd.Flags().Changed("scale-entry") {
				req.ScaleEntry = &scaleEntry
			}

			result, err := app.sessions.Apply(cmd.Context(), req)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(),
				"applied %s to slot %d: %d files (%d missing), equipment entry %s, scale entry %s\n",
				result.Session.Record, result.Session.Slot, result.FilesApplied, result.FilesMissing,
				entryLabel(result.EquipmentEntry), entryLabel(result.ScaleEntry),
			)
			return err
		},
	}

	cmd.Flags().IntVar(&slot, "slot", 0, "target actor slot")
	cmd.Flags().IntVar(&equipmentEntry, "equipment-entry", 0, "equipment history entry index (default latest)")
	cmd.Flags().IntVar(&scaleEntry, "scale-entry", 0, "scale history entry index (default latest)")
	cmd.Flags().StringVar(&collection, "collection", "", "collection to merge over the snapshot files")

	return cmd
}

func entryLabel(index int) string {
	if index < 0 {
		return "none"
	}
	return strconv.Itoa(index)
}

func newRevertCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "revert <slot>",
		Short: "Release temporary overrides held on a slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("parse slot %q: %w", args[0], err)
			}

			if _, err := app.sessions.Revert(cmd.Context(), slot); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "reverted slot %d\n", slot)
			return err
		},
	}
}
