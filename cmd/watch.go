package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	libraryrender "github.com/bnema/appearance-snapshots/internal/adapters/render/library"
	"github.com/bnema/appearance-snapshots/internal/application"
	"github.com/bnema/appearance-snapshots/internal/domain"
	"github.com/spf13/cobra"
)

const shutdownRevertTimeout = 10 * time.Second

type watchOptions struct {
	applies      []string
	ticks        int
	reprobeEvery time.Duration
	skipMigrate  bool
}

func newWatchCmd(app *app) *cobra.Command {
	var opts watchOptions

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Hold applied snapshots and follow host events",
		Long:  "Watch keeps the engine running: it applies the given snapshots, polls the special viewing mode, reverts sessions when that mode ends, and reverts everything it holds on exit.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			requests, err := parseApplySpecs(opts.applies)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runWatch(ctx, cmd, app, requests, opts)
		},
	}

	cmd.Flags().StringArrayVar(&opts.applies, "apply", nil, "apply <record>:<slot> at start (repeatable)")
	cmd.Flags().IntVar(&opts.ticks, "ticks", 0, "stop after this many ticks (0 runs until interrupted)")
	cmd.Flags().DurationVar(&opts.reprobeEvery, "reprobe", time.Minute, "re-probe host capabilities at this interval (0 disables)")
	cmd.Flags().BoolVar(&opts.skipMigrate, "skip-migrate", false, "do not run the background migration scan")

	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, app *app, requests []application.ApplyRequest, opts watchOptions) error {
	detach := app.lifecycle.Attach(app.bridge)
	defer detach()

	migrated := make(chan struct{})
	if opts.skipMigrate {
		close(migrated)
	} else {
		go func() {
			defer close(migrated)
			report, err := app.migration.Run(ctx)
			if err != nil {
				app.logger.Error("background migration failed", "err", err)
				return
			}
			if report.Changed() {
				app.logger.Info("background migration finished", "stamped", len(report.Stamped), "migrated", len(report.Migrated), "failed", len(report.Failed))
			}
		}()
	}

	var applyErrs []error
	for _, req := range requests {
		if _, err := app.sessions.Apply(ctx, req); err != nil {
			applyErrs = append(applyErrs, fmt.Errorf("apply %s to slot %d: %w", req.Record, req.Slot, err))
		}
	}

	if len(requests) > 0 {
		rendered, err := app.sessionsRenderer(app.sessions.Sessions(), libraryrender.RenderOptions{Now: app.now()})
		if err != nil {
			return fmt.Errorf("render sessions: %w", err)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	}

	loopErr := watchLoop(ctx, app, opts)

	// The signal context may already be cancelled; teardown gets its own deadline.
	revertCtx, cancel := context.WithTimeout(context.Background(), shutdownRevertTimeout)
	defer cancel()
	reverted, revertErr := app.lifecycle.RevertAll(revertCtx)
	<-migrated

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "released %d sessions\n", reverted)
	return errors.Join(errors.Join(applyErrs...), loopErr, revertErr)
}

func watchLoop(ctx context.Context, app *app, opts watchOptions) error {
	ticker := time.NewTicker(app.cfg.Bridge.Tick)
	defer ticker.Stop()

	lastProbe := app.now()
	for tick := 0; opts.ticks == 0 || tick < opts.ticks; tick++ {
		if tick > 0 {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
			}
		}
		if ctx.Err() != nil {
			return nil
		}

		if opts.reprobeEvery > 0 && app.now().Sub(lastProbe) >= opts.reprobeEvery {
			app.bridge.Reprobe(ctx)
			lastProbe = app.now()
		}

		app.lifecycle.Tick(ctx)

		if _, err := app.bridge.Pump(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if !errors.Is(err, domain.ErrCollaboratorUnavailable) {
				return fmt.Errorf("pump host events: %w", err)
			}
			app.logger.Debug("host bridge not reachable, retrying next tick", "err", err)
		}
	}

	return nil
}

func parseApplySpecs(specs []string) ([]application.ApplyRequest, error) {
	requests := make([]application.ApplyRequest, 0, len(specs))
	for _, spec := range specs {
		idx := strings.LastIndex(spec, ":")
		if idx <= 0 || idx == len(spec)-1 {
			return nil, fmt.Errorf("invalid --apply %q (want <record>:<slot>)", spec)
		}

		slot, err := strconv.Atoi(spec[idx+1:])
		if err != nil {
			return nil, fmt.Errorf("invalid --apply %q: parse slot: %w", spec, err)
		}

		requests = append(requests, application.ApplyRequest{Record: spec[:idx], Slot: slot})
	}
	return requests, nil
}
