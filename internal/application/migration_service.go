package application

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/bnema/appearance-snapshots/internal/domain"
	"github.com/bnema/appearance-snapshots/internal/logging"
	"github.com/bnema/appearance-snapshots/internal/ports"
	"github.com/charmbracelet/log"
	"github.com/panjf2000/ants/v2"
)

const (
	backupDirMode           = 0o755
	defaultMigrationWorkers = 4

	migrationKindStamp  = "stamp"
	migrationKindLegacy = "legacy"
)

// MigrationService moves older on-disk layouts to the current one. Legacy
// directories are only touched after all of them were archived together.
type MigrationService struct {
	store    ports.MigrationStore
	archiver ports.Archiver
	options  MigrationOptions
	clock    ports.Clock
	metrics  ports.Metrics
	logger   *log.Logger
}

func NewMigrationService(store ports.MigrationStore, archiver ports.Archiver, options MigrationOptions, clock ports.Clock, metrics ports.Metrics, logger *log.Logger) *MigrationService {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	if options.Workers <= 0 {
		options.Workers = defaultMigrationWorkers
	}

	return &MigrationService{
		store:    store,
		archiver: archiver,
		options:  options,
		clock:    clock,
		metrics:  metrics,
		logger:   logging.OrDiscard(logger),
	}
}

func (s *MigrationService) Run(ctx context.Context) (MigrationReport, error) {
	return s.RunWithProgress(ctx, nil)
}

// RunWithProgress is Run with a callback invoked after every stage change and every
// finished record. The callback may be called from worker goroutines, one at a time.
func (s *MigrationService) RunWithProgress(ctx context.Context, notify func(MigrationProgress)) (MigrationReport, error) {
	var report MigrationReport
	progress := &progressTracker{notify: notify}
	progress.stage(MigrationStageScanning, 0)

	candidates, err := s.store.Candidates(ctx)
	if err != nil {
		return report, fmt.Errorf("scan record directories: %w", err)
	}

	var legacy, unversioned []domain.MigrationCandidate
	for _, candidate := range candidates {
		switch {
		case candidate.Err != nil:
			s.logger.Error("cannot classify record directory, leaving it untouched", "record", candidate.Name, "err", candidate.Err)
			report.Unreadable = append(report.Unreadable, candidate)
		case candidate.Layout == domain.LayoutLegacy:
			legacy = append(legacy, candidate)
		case candidate.Layout == domain.LayoutUnversioned:
			unversioned = append(unversioned, candidate)
		}
	}

	now := s.clock.Now().UTC()
	if len(legacy) > 0 {
		progress.stage(MigrationStageBackingUp, len(legacy)+len(unversioned))
		backup, err := s.backup(ctx, legacy, now)
		if err != nil {
			s.metrics.MigrationFinished(migrationKindLegacy, ResultAborted)
			return report, err
		}
		report.Backup = backup
	}

	progress.stage(MigrationStageConverting, len(legacy)+len(unversioned))
	for _, candidate := range unversioned {
		unlock := s.store.Lock(candidate.Name)
		err := s.store.StampVersion(ctx, candidate.Name)
		unlock()
		if err != nil {
			s.logger.Error("stamp format version", "record", candidate.Name, "err", err)
			s.metrics.MigrationFinished(migrationKindStamp, ResultFailure)
			report.Failed = append(report.Failed, MigrationFailure{Name: candidate.Name, Err: err})
			progress.finish(candidate.Name, true)
			continue
		}
		s.metrics.MigrationFinished(migrationKindStamp, ResultSuccess)
		report.Stamped = append(report.Stamped, candidate.Name)
		progress.finish(candidate.Name, false)
	}

	if len(legacy) > 0 {
		if err := s.migrateLegacy(ctx, legacy, now, &report, progress); err != nil {
			return report, err
		}
	}

	sort.Slice(report.Migrated, func(i, j int) bool { return report.Migrated[i].Name < report.Migrated[j].Name })
	sort.Slice(report.Failed, func(i, j int) bool { return report.Failed[i].Name < report.Failed[j].Name })

	return report, nil
}

func (s *MigrationService) backup(ctx context.Context, legacy []domain.MigrationCandidate, now time.Time) (string, error) {
	if s.options.BackupDir == "" {
		return "", fmt.Errorf("%w: no backup directory configured", domain.ErrBackupFailed)
	}
	if err := os.MkdirAll(s.options.BackupDir, backupDirMode); err != nil {
		return "", fmt.Errorf("%w: create backup directory: %w", domain.ErrBackupFailed, err)
	}

	dirs := make([]string, 0, len(legacy))
	for _, candidate := range legacy {
		dirs = append(dirs, candidate.Dir)
	}

	dest := filepath.Join(s.options.BackupDir, fmt.Sprintf("migration-backup-%s.zip", now.Format("20060102-150405")))
	if err := s.archiver.Archive(ctx, dirs, dest); err != nil {
		s.logger.Error("migration backup failed, nothing was migrated", "dest", dest, "err", err)
		if !errors.Is(err, domain.ErrBackupFailed) {
			err = fmt.Errorf("%w: %w", domain.ErrBackupFailed, err)
		}
		return "", err
	}

	s.logger.Info("backed up legacy records", "count", len(dirs), "dest", dest)
	return dest, nil
}

func (s *MigrationService) migrateLegacy(ctx context.Context, legacy []domain.MigrationCandidate, now time.Time, report *MigrationReport, progress *progressTracker) error {
	pool, err := ants.NewPool(s.options.Workers)
	if err != nil {
		return fmt.Errorf("create migration pool: %w", err)
	}
	defer pool.Release()

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, candidate := range legacy {
		name := candidate.Name
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()

			migration, failure := s.migrateOne(ctx, name, now)

			mu.Lock()
			if failure != nil {
				report.Failed = append(report.Failed, *failure)
			} else {
				report.Migrated = append(report.Migrated, migration)
			}
			mu.Unlock()
			progress.finish(name, failure != nil)
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			report.Failed = append(report.Failed, MigrationFailure{Name: name, Err: fmt.Errorf("schedule migration: %w", submitErr)})
			mu.Unlock()
			progress.finish(name, true)
		}
	}
	wg.Wait()

	return nil
}

func (s *MigrationService) migrateOne(ctx context.Context, name string, now time.Time) (domain.LegacyMigration, *MigrationFailure) {
	unlock := s.store.Lock(name)
	defer unlock()

	migration, err := s.store.MigrateLegacy(ctx, name, now)
	if err == nil {
		s.metrics.MigrationFinished(migrationKindLegacy, ResultSuccess)
		s.logger.Info("migrated legacy record", "record", name, "files", migration.FilesHashed, "missing", migration.FilesMissing)
		return migration, nil
	}

	s.metrics.MigrationFinished(migrationKindLegacy, ResultFailure)
	failure := &MigrationFailure{Name: name, Err: err}
	movedTo, markErr := s.store.MarkFailed(ctx, name)
	if markErr != nil {
		failure.Err = errors.Join(err, fmt.Errorf("mark record failed: %w", markErr))
	}
	failure.MovedTo = movedTo
	s.logger.Error("legacy migration failed", "record", name, "moved_to", movedTo, "err", failure.Err)

	return domain.LegacyMigration{}, failure
}

type progressTracker struct {
	mu     sync.Mutex
	state  MigrationProgress
	notify func(MigrationProgress)
}

func (t *progressTracker) stage(stage MigrationStage, total int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.state.Stage = stage
	t.state.Total = total
	t.emit()
}

func (t *progressTracker) finish(record string, failed bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.state.Done++
	if failed {
		t.state.Failed++
	}
	t.state.Record = record
	t.emit()
}

func (t *progressTracker) emit() {
	if t.notify != nil {
		t.notify(t.state)
	}
}
