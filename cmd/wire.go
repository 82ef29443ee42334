package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/bnema/appearance-snapshots/internal/adapters/archive/zip"
	"github.com/bnema/appearance-snapshots/internal/adapters/host/bridge"
	"github.com/bnema/appearance-snapshots/internal/adapters/metrics/prom"
	"github.com/bnema/appearance-snapshots/internal/adapters/notify/lognotify"
	libraryrender "github.com/bnema/appearance-snapshots/internal/adapters/render/library"
	"github.com/bnema/appearance-snapshots/internal/adapters/repo/jsonfs"
	"github.com/bnema/appearance-snapshots/internal/adapters/transfer/container"
	"github.com/bnema/appearance-snapshots/internal/adapters/transfer/modpack"
	"github.com/bnema/appearance-snapshots/internal/application"
	"github.com/bnema/appearance-snapshots/internal/config"
	"github.com/bnema/appearance-snapshots/internal/domain"
	"github.com/bnema/appearance-snapshots/internal/logging"
	"github.com/bnema/appearance-snapshots/internal/ports"
	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

type app struct {
	cfg       config.Config
	logger    *log.Logger
	bridge    *bridge.Client
	metrics   *prom.Recorder
	notifier  *lognotify.Notifier
	capture   *application.CaptureService
	sessions  *application.SessionService
	lifecycle *application.LifecycleController
	migration *application.MigrationService
	library   *application.LibraryService
	transfer  *application.TransferService

	listRenderer     func([]application.RecordSummary, libraryrender.RenderOptions) (string, error)
	recordRenderer   func(domain.Snapshot, libraryrender.RenderOptions) (string, error)
	sessionsRenderer func([]domain.ActiveSession, libraryrender.RenderOptions) (string, error)
	now              func() time.Time
}

func wireApp() (*app, error) {
	cfg, err := config.Load(viper.New(), os.Getenv("ASNAP_CONFIG"))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}

	clock := ports.SystemClock{}
	repo, err := jsonfs.NewRepository(jsonfs.Options{
		Root:     cfg.WorkingDir,
		IndexTTL: cfg.IndexTTL,
		Clock:    clock,
		Logger:   logger.WithPrefix("repo"),
	})
	if err != nil {
		return nil, fmt.Errorf("wire snapshot repository: %w", err)
	}

	client, err := bridge.NewClient(bridge.Options{
		BaseURL: cfg.Bridge.URL,
		Timeout: cfg.Bridge.Timeout,
		Logger:  logger.WithPrefix("bridge"),
	})
	if err != nil {
		return nil, fmt.Errorf("wire host bridge: %w", err)
	}

	collab := application.Collaborators{
		Actors:      client.Actors(),
		Redirection: client.FileRedirection(),
		Collections: client.Collections(),
		Equipment:   client.Equipment(),
		Scaling:     client.BoneScaling(),
		Peers:       client.PeerSync(),
	}

	metrics := prom.NewRecorder()
	notifier := lognotify.New(logger.WithPrefix("notify"), os.Stderr)
	sessions := application.NewSessionService(repo, collab, application.SessionOptions{
		DisableAutomaticRevert: cfg.DisableAutomaticRevert,
		MergeCollection:        cfg.MergeCollection,
	}, clock, metrics, logger.WithPrefix("session"))

	return &app{
		cfg:       cfg,
		logger:    logger,
		bridge:    client,
		metrics:   metrics,
		notifier:  notifier,
		capture:   application.NewCaptureService(repo, collab, clock, metrics, logger.WithPrefix("capture")),
		sessions:  sessions,
		lifecycle: application.NewLifecycleController(sessions, collab.Actors, notifier, logger.WithPrefix("lifecycle")),
		migration: application.NewMigrationService(repo, zip.NewArchiver(), application.MigrationOptions{
			BackupDir: cfg.Migration.BackupDir,
			Workers:   cfg.Migration.Workers,
		}, clock, metrics, logger.WithPrefix("migrate")),
		library:          application.NewLibraryService(repo),
		transfer:         application.NewTransferService(repo, container.NewCodec(), modpack.NewWriter(logger.WithPrefix("modpack")), clock, logger.WithPrefix("transfer")),
		listRenderer:     libraryrender.RenderList,
		recordRenderer:   libraryrender.RenderRecord,
		sessionsRenderer: libraryrender.RenderSessions,
		now:              time.Now,
	}, nil
}
