package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/appearance-snapshots/internal/domain"
	"github.com/spf13/cobra"
)

func newExportCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export <record> <file>",
		Short: "Export the latest state of a record as a portable container",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := writeFileAtomic(args[1], func(w io.Writer) error {
				return app.transfer.Export(cmd.Context(), args[0], w)
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "exported %s to %s\n", args[0], args[1])
			return err
		},
	}
}

func newExportModPackCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export-modpack <record> <file>",
		Short: "Export the latest state of a record as a mod package",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := writeFileAtomic(args[1], func(w io.Writer) error {
				return app.transfer.ExportModPack(cmd.Context(), args[0], w)
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "exported mod package %s to %s\n", args[0], args[1])
			return err
		},
	}
}

func newImportCmd(app *app) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a portable container as a new record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				name = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			}

			snapshot, err := importFile(cmd.Context(), app, name, args[0])
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "imported %s (%d game paths)\n", snapshot.Name, len(snapshot.Record.FileReplacements))
			return err
		},
	}

	cmd.Flags().StringVar(&name, "as", "", "record name (default: file name without extension)")
	return cmd
}

func importFile(ctx context.Context, app *app, name, path string) (domain.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("open container: %w", err)
	}
	defer f.Close()

	return app.transfer.Import(ctx, name, f)
}

// writeFileAtomic only leaves path behind when write succeeded.
func writeFileAtomic(path string, write func(io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	tempFile, err := os.CreateTemp(dir, ".asnap-export-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp output: %w", err)
	}
	tempName := tempFile.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tempName)
		}
	}()

	if writeErr := write(tempFile); writeErr != nil {
		return errors.Join(writeErr, tempFile.Close())
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp output: %w", err)
	}
	if err := os.Rename(tempName, path); err != nil {
		return fmt.Errorf("move output into place: %w", err)
	}

	return nil
}
