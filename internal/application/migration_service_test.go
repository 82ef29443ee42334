package application

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	blobfile "github.com/bnema/appearance-snapshots/internal/adapters/blob/file"
	"github.com/bnema/appearance-snapshots/internal/adapters/repo/jsonfs"
	"github.com/bnema/appearance-snapshots/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeArchiver struct {
	err   error
	calls [][]string
	dest  string
}

func (a *fakeArchiver) Archive(_ context.Context, dirs []string, dest string) error {
	a.calls = append(a.calls, dirs)
	a.dest = dest
	if a.err != nil {
		return a.err
	}
	return os.WriteFile(dest, []byte("zip"), 0o644)
}

func writeLegacyRecord(t *testing.T, repo *jsonfs.Repository, name string) {
	t.Helper()

	dir := repo.Dir(name)
	writeFile(t, filepath.Join(dir, "snapshot.json"), []byte(`{
  "SourceActor": "`+name+`",
  "FileReplacements": {"tex1.tex": ["chara/human/c0101/obj/body/b0001/texture/skin.tex"]},
  "GlamourerString": "glamour-legacy",
  "CustomizeData": "",
  "ManipulationString": "manip-legacy"
}`))
	writeFile(t, filepath.Join(dir, "tex1.tex"), []byte("legacy texture"))
}

func newMigrationFixture(t *testing.T, archiver *fakeArchiver) (*MigrationService, *jsonfs.Repository, *recordingMetrics) {
	t.Helper()

	repo := newTestRepo(t)
	metrics := newRecordingMetrics()
	service := NewMigrationService(repo, archiver, MigrationOptions{BackupDir: filepath.Join(t.TempDir(), "backups"), Workers: 2}, fixedClock{now: testNow}, metrics, nil)
	return service, repo, metrics
}

func TestMigrationConvertsLegacyRecords(t *testing.T) {
	t.Parallel()

	archiver := &fakeArchiver{}
	service, repo, metrics := newMigrationFixture(t, archiver)
	writeLegacyRecord(t, repo, "Aria")
	writeLegacyRecord(t, repo, "Bex")

	report, err := service.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Migrated, 2)
	assert.Equal(t, "Aria", report.Migrated[0].Name)
	assert.Empty(t, report.Failed)
	assert.Equal(t, "migration-backup-20260301-183000.zip", filepath.Base(report.Backup))
	require.Len(t, archiver.calls, 1)
	assert.ElementsMatch(t, []string{repo.Dir("Aria"), repo.Dir("Bex")}, archiver.calls[0])

	snapshot, err := repo.Get(context.Background(), "Aria")
	require.NoError(t, err)
	hash := blobfile.Hash([]byte("legacy texture"))
	assert.Equal(t, domain.FileReplacements{"chara/human/c0101/obj/body/b0001/texture/skin.tex": hash}, snapshot.Record.FileReplacements)
	require.Len(t, snapshot.Equipment.Entries, 1)
	assert.Equal(t, domain.MigratedEntryDescription, snapshot.Equipment.Entries[0].Description)

	data, err := os.ReadFile(filepath.Join(repo.Dir("Aria"), blobfile.DirName, hash+".dat"))
	require.NoError(t, err)
	assert.Equal(t, "legacy texture", string(data))
	assert.FileExists(t, filepath.Join(repo.Dir("Aria"), jsonfs.MigratedMarker))
	assert.NoFileExists(t, filepath.Join(repo.Dir("Aria"), "tex1.tex"))
	assert.Equal(t, 2, metrics.migrations["legacy/"+ResultSuccess])
}

func TestMigrationReportsProgress(t *testing.T) {
	t.Parallel()

	service, repo, _ := newMigrationFixture(t, &fakeArchiver{})
	writeLegacyRecord(t, repo, "Aria")
	writeLegacyRecord(t, repo, "Bex")
	writeFile(t, filepath.Join(repo.Dir("Old"), "snapshot.json"), []byte(`{"SourceActor":"Old","FileReplacements":{}}`))

	var events []MigrationProgress
	_, err := service.RunWithProgress(context.Background(), func(p MigrationProgress) {
		events = append(events, p)
	})
	require.NoError(t, err)

	require.Len(t, events, 6)
	assert.Equal(t, MigrationStageScanning, events[0].Stage)
	assert.Equal(t, MigrationProgress{Stage: MigrationStageBackingUp, Total: 3}, events[1])
	assert.Equal(t, MigrationProgress{Stage: MigrationStageConverting, Total: 3}, events[2])
	assert.Equal(t, MigrationProgress{Stage: MigrationStageConverting, Total: 3, Done: 1, Record: "Old"}, events[3])

	last := events[len(events)-1]
	assert.Equal(t, 3, last.Done)
	assert.Zero(t, last.Failed)
	assert.Contains(t, []string{"Aria", "Bex"}, last.Record)
}

func TestMigrationIsIdempotent(t *testing.T) {
	t.Parallel()

	archiver := &fakeArchiver{}
	service, repo, _ := newMigrationFixture(t, archiver)
	writeLegacyRecord(t, repo, "Aria")

	first, err := service.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, first.Changed())

	before, err := os.ReadFile(filepath.Join(repo.Dir("Aria"), "snapshot.json"))
	require.NoError(t, err)

	second, err := service.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, second.Changed())
	assert.Empty(t, second.Backup)
	assert.Len(t, archiver.calls, 1)

	after, err := os.ReadFile(filepath.Join(repo.Dir("Aria"), "snapshot.json"))
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestMigrationAbortsWhenBackupFails(t *testing.T) {
	t.Parallel()

	archiver := &fakeArchiver{err: errors.New("disk full")}
	service, repo, metrics := newMigrationFixture(t, archiver)
	writeLegacyRecord(t, repo, "Aria")
	writeFile(t, filepath.Join(repo.Dir("Old"), "snapshot.json"), []byte(`{"SourceActor":"Old","FileReplacements":{}}`))

	before, err := os.ReadFile(filepath.Join(repo.Dir("Aria"), "snapshot.json"))
	require.NoError(t, err)
	unversionedBefore, err := os.ReadFile(filepath.Join(repo.Dir("Old"), "snapshot.json"))
	require.NoError(t, err)

	_, err = service.Run(context.Background())
	require.ErrorIs(t, err, domain.ErrBackupFailed)

	after, err := os.ReadFile(filepath.Join(repo.Dir("Aria"), "snapshot.json"))
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.FileExists(t, filepath.Join(repo.Dir("Aria"), "tex1.tex"))
	assert.NoFileExists(t, filepath.Join(repo.Dir("Aria"), jsonfs.MigratedMarker))

	unversionedAfter, err := os.ReadFile(filepath.Join(repo.Dir("Old"), "snapshot.json"))
	require.NoError(t, err)
	assert.Equal(t, unversionedBefore, unversionedAfter)
	assert.Equal(t, 1, metrics.migrations["legacy/"+ResultAborted])
}

func TestMigrationStampsUnversionedWithoutBackup(t *testing.T) {
	t.Parallel()

	archiver := &fakeArchiver{}
	service, repo, _ := newMigrationFixture(t, archiver)
	writeFile(t, filepath.Join(repo.Dir("Old"), "snapshot.json"), []byte(`{"SourceActor":"Old","FileReplacements":{}}`))

	report, err := service.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Old"}, report.Stamped)
	assert.Empty(t, archiver.calls)

	snapshot, err := repo.Get(context.Background(), "Old")
	require.NoError(t, err)
	assert.Equal(t, domain.CurrentFormatVersion, snapshot.Record.FormatVersion)
}

func TestMigrationMovesFailedRecordAside(t *testing.T) {
	t.Parallel()

	archiver := &fakeArchiver{}
	service, repo, _ := newMigrationFixture(t, archiver)
	writeLegacyRecord(t, repo, "Aria")
	writeFile(t, filepath.Join(repo.Dir("Broken"), "snapshot.json"), []byte(`{
  "FileReplacements": {"../escape.tex": ["chara/escape.tex"]},
  "GlamourerString": "g"
}`))

	report, err := service.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Migrated, 1)
	require.Len(t, report.Failed, 1)
	assert.Equal(t, "Broken", report.Failed[0].Name)
	assert.Equal(t, "Broken"+jsonfs.FailedSuffix, report.Failed[0].MovedTo)
	assert.DirExists(t, repo.Dir("Broken"+jsonfs.FailedSuffix))
	assert.NoDirExists(t, repo.Dir("Broken"))
}

func TestMigrationLeavesMalformedRecordsAlone(t *testing.T) {
	t.Parallel()

	archiver := &fakeArchiver{}
	service, repo, _ := newMigrationFixture(t, archiver)
	writeFile(t, filepath.Join(repo.Dir("Garbled"), "snapshot.json"), []byte(`{not json`))

	report, err := service.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Unreadable, 1)
	assert.ErrorIs(t, report.Unreadable[0].Err, domain.ErrMalformedRecord)
	assert.False(t, report.Changed())
}
