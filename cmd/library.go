package cmd

import (
	"fmt"
	"strconv"
	"time"

	libraryrender "github.com/bnema/appearance-snapshots/internal/adapters/render/library"
	"github.com/bnema/appearance-snapshots/internal/domain"
	"github.com/spf13/cobra"
)

const defaultStaleAfter = 30 * 24 * time.Hour

func newListCmd(app *app) *cobra.Command {
	var (
		output     string
		staleAfter time.Duration
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List snapshot records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateOutput(output); err != nil {
				return err
			}

			summaries, err := app.library.List(cmd.Context())
			if err != nil {
				return err
			}

			if done, err := writeStructured(cmd.OutOrStdout(), output, summaries); done {
				return err
			}

			rendered, err := app.listRenderer(summaries, libraryrender.RenderOptions{Now: app.now(), StaleAfter: staleAfter})
			if err != nil {
				return fmt.Errorf("render records: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	addOutputFlag(cmd, &output)
	cmd.Flags().DurationVar(&staleAfter, "stale-after", defaultStaleAfter, "mark records not captured for this long")

	return cmd
}

func newShowCmd(app *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show <record>",
		Short: "Show one snapshot record and its histories",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateOutput(output); err != nil {
				return err
			}

			snapshot, err := app.library.Show(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if done, err := writeStructured(cmd.OutOrStdout(), output, toRecordView(snapshot)); done {
				return err
			}

			rendered, err := app.recordRenderer(snapshot, libraryrender.RenderOptions{Now: app.now()})
			if err != nil {
				return fmt.Errorf("render record: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	addOutputFlag(cmd, &output)
	return cmd
}

func newRenameCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <record> <new-name>",
		Short: "Rename a snapshot record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.library.Rename(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "renamed %s to %s\n", args[0], args[1])
			return err
		},
	}
}

func newDeleteCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <record>",
		Short: "Delete a snapshot record and its stored files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.library.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return err
		},
	}
}

func newHistoryCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Edit equipment and scale histories",
	}

	cmd.AddCommand(
		newHistoryEditCmd(app),
		newHistoryDeleteCmd(app),
	)

	return cmd
}

func newHistoryEditCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <record> <equipment|scale> <index> <description>",
		Short: "Change the description of a history entry",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, index, err := parseEntryRef(args[1], args[2])
			if err != nil {
				return err
			}
			if err := app.library.SetEntryDescription(cmd.Context(), args[0], kind, index, args[3]); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "updated %s %s entry %d\n", args[0], kind, index)
			return err
		},
	}
}

func newHistoryDeleteCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <record> <equipment|scale> <index>",
		Short: "Delete a history entry",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, index, err := parseEntryRef(args[1], args[2])
			if err != nil {
				return err
			}
			if err := app.library.DeleteEntry(cmd.Context(), args[0], kind, index); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s %s entry %d\n", args[0], kind, index)
			return err
		},
	}
}

func parseEntryRef(rawKind, rawIndex string) (domain.HistoryKind, int, error) {
	kind := domain.HistoryKind(rawKind)
	if !kind.Valid() {
		return "", 0, fmt.Errorf("unknown history %q (want equipment or scale)", rawKind)
	}

	index, err := strconv.Atoi(rawIndex)
	if err != nil {
		return "", 0, fmt.Errorf("parse entry index %q: %w", rawIndex, err)
	}

	return kind, index, nil
}
