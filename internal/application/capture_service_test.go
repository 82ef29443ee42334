package application

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	blobfile "github.com/bnema/appearance-snapshots/internal/adapters/blob/file"
	"github.com/bnema/appearance-snapshots/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var aria = domain.Actor{Slot: 0, Address: 0xA1, Name: "Aria", Kind: domain.ActorKindPlayer}

func TestCaptureDeduplicatesIdenticalFiles(t *testing.T) {
	t.Parallel()

	m := newEngineMocks(t)
	m.allAvailable()
	repo := newTestRepo(t)
	metrics := newRecordingMetrics()
	service := NewCaptureService(repo, m.collaborators(), fixedClock{now: testNow}, metrics, nil)

	modDir := t.TempDir()
	writeFile(t, filepath.Join(modDir, "a.mdl"), []byte("bytes X"))
	writeFile(t, filepath.Join(modDir, "b.tex"), []byte("bytes X"))

	m.actors.EXPECT().BySlot(mockAnyContext(), 0).Return(aria, true, nil)
	m.redirection.EXPECT().ResourcePaths(mockAnyContext(), 0).Return(map[string][]string{
		filepath.Join(modDir, "a.mdl"): {"chara/equipment/e0001/model/a.mdl"},
		filepath.Join(modDir, "b.tex"): {"chara/equipment/e0001/texture/b.tex"},
		"chara/common/vanilla.tex":     {"chara/common/vanilla.tex"},
	}, nil)
	m.redirection.EXPECT().MetaManipulations(mockAnyContext(), 0).Return("manip", nil)
	m.equipment.EXPECT().State(mockAnyContext(), 0).Return("glamour-1", nil)
	m.scaling.EXPECT().ActiveProfile(mockAnyContext(), 0).Return(`{"Bones":{}}`, nil)

	result, err := service.Capture(context.Background(), CaptureRequest{Slot: 0})
	require.NoError(t, err)
	assert.True(t, result.Created)
	assert.Equal(t, "Aria", result.Record)
	assert.Equal(t, 2, result.FilesStored)

	snapshot, err := repo.Get(context.Background(), "Aria")
	require.NoError(t, err)

	hash := blobfile.Hash([]byte("bytes X"))
	assert.Equal(t, domain.FileReplacements{
		"chara/equipment/e0001/model/a.mdl":   hash,
		"chara/equipment/e0001/texture/b.tex": hash,
	}, snapshot.Record.FileReplacements)
	assert.Equal(t, "manip", snapshot.Record.ManipulationString)
	assert.Equal(t, "Aria", snapshot.Record.SourceActor)
	assert.Equal(t, testNow, snapshot.Record.LastUpdate)
	require.Len(t, snapshot.Equipment.Entries, 1)
	assert.Equal(t, "Initial snapshot", snapshot.Equipment.Entries[0].Description)
	require.Len(t, snapshot.Scale.Entries, 1)
	assert.Equal(t, domain.EncodeScaleProfile(`{"Bones":{}}`), snapshot.Scale.Entries[0].Payload)
	assert.NotEmpty(t, snapshot.Scale.Entries[0].Template)

	blobs, err := os.ReadDir(filepath.Join(repo.Dir("Aria"), blobfile.DirName))
	require.NoError(t, err)
	assert.Len(t, blobs, 1)
	assert.Equal(t, 1, metrics.captures[ResultSuccess])
}

func TestCaptureAppendsOnlyChangedHistories(t *testing.T) {
	t.Parallel()

	m := newEngineMocks(t)
	m.allAvailable()
	repo := newTestRepo(t)
	service := NewCaptureService(repo, m.collaborators(), fixedClock{now: testNow}, nil, nil)

	m.actors.EXPECT().BySlot(mockAnyContext(), 0).Return(aria, true, nil)
	m.redirection.EXPECT().ResourcePaths(mockAnyContext(), 0).Return(map[string][]string{}, nil)
	m.redirection.EXPECT().MetaManipulations(mockAnyContext(), 0).Return("manip", nil)
	m.scaling.EXPECT().ActiveProfile(mockAnyContext(), 0).Return(`{"Bones":{}}`, nil)
	m.equipment.EXPECT().State(mockAnyContext(), 0).Return("glamour-1", nil).Times(2)
	m.equipment.EXPECT().State(mockAnyContext(), 0).Return("glamour-2", nil).Once()

	ctx := context.Background()
	_, err := service.Capture(ctx, CaptureRequest{Slot: 0})
	require.NoError(t, err)

	second, err := service.Capture(ctx, CaptureRequest{Slot: 0})
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.False(t, second.EquipmentAppended)
	assert.False(t, second.ScaleAppended)

	snapshot, err := repo.Get(ctx, "Aria")
	require.NoError(t, err)
	assert.Len(t, snapshot.Equipment.Entries, 1)
	assert.Len(t, snapshot.Scale.Entries, 1)

	third, err := service.Capture(ctx, CaptureRequest{Slot: 0})
	require.NoError(t, err)
	assert.True(t, third.EquipmentAppended)
	assert.False(t, third.ScaleAppended)

	snapshot, err = repo.Get(ctx, "Aria")
	require.NoError(t, err)
	require.Len(t, snapshot.Equipment.Entries, 2)
	assert.Equal(t, "glamour-2", snapshot.Equipment.Entries[1].Payload)
	assert.Equal(t, "Snapshot update", snapshot.Equipment.Entries[1].Description)
	assert.Len(t, snapshot.Scale.Entries, 1)
}

func TestCaptureSkipsMissingFiles(t *testing.T) {
	t.Parallel()

	m := newEngineMocks(t)
	m.allAvailable()
	repo := newTestRepo(t)
	service := NewCaptureService(repo, m.collaborators(), fixedClock{now: testNow}, nil, nil)

	modDir := t.TempDir()
	writeFile(t, filepath.Join(modDir, "present.tex"), []byte("present"))

	m.actors.EXPECT().BySlot(mockAnyContext(), 0).Return(aria, true, nil)
	m.redirection.EXPECT().ResourcePaths(mockAnyContext(), 0).Return(map[string][]string{
		filepath.Join(modDir, "present.tex"): {"chara/present.tex"},
		filepath.Join(modDir, "gone.tex"):    {"chara/gone.tex"},
	}, nil)
	m.redirection.EXPECT().MetaManipulations(mockAnyContext(), 0).Return("", nil)
	m.equipment.EXPECT().State(mockAnyContext(), 0).Return("glamour-1", nil)
	m.scaling.EXPECT().ActiveProfile(mockAnyContext(), 0).Return("", nil)

	result, err := service.Capture(context.Background(), CaptureRequest{Slot: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, result.FilesStored)
	assert.Equal(t, 1, result.FilesSkipped)

	snapshot, err := repo.Get(context.Background(), "Aria")
	require.NoError(t, err)
	assert.Len(t, snapshot.Record.FileReplacements, 1)
	_, ok := snapshot.Record.FileReplacements.Get("chara/present.tex")
	assert.True(t, ok)
	assert.Empty(t, snapshot.Scale.Entries)
}

func TestCaptureDegradesWhenServicesUnavailable(t *testing.T) {
	t.Parallel()

	m := newEngineMocks(t)
	repo := newTestRepo(t)
	service := NewCaptureService(repo, m.collaborators(), fixedClock{now: testNow}, nil, nil)

	m.actors.EXPECT().BySlot(mockAnyContext(), 0).Return(aria, true, nil)
	m.redirection.EXPECT().Available(mockAnyContext()).Return(false)
	m.scaling.EXPECT().Available(mockAnyContext()).Return(false)
	m.equipment.EXPECT().Available(mockAnyContext()).Return(true)
	m.equipment.EXPECT().State(mockAnyContext(), 0).Return("glamour-1", nil)

	_, err := service.Capture(context.Background(), CaptureRequest{Slot: 0})
	require.NoError(t, err)

	snapshot, err := repo.Get(context.Background(), "Aria")
	require.NoError(t, err)
	assert.Empty(t, snapshot.Record.FileReplacements)
	assert.Len(t, snapshot.Equipment.Entries, 1)
	assert.Empty(t, snapshot.Scale.Entries)
}

func TestCaptureWithoutAnyDataCreatesNothing(t *testing.T) {
	t.Parallel()

	m := newEngineMocks(t)
	repo := newTestRepo(t)
	metrics := newRecordingMetrics()
	service := NewCaptureService(repo, m.collaborators(), fixedClock{now: testNow}, metrics, nil)

	m.actors.EXPECT().BySlot(mockAnyContext(), 0).Return(aria, true, nil)
	m.redirection.EXPECT().Available(mockAnyContext()).Return(false)
	m.scaling.EXPECT().Available(mockAnyContext()).Return(false)
	m.equipment.EXPECT().Available(mockAnyContext()).Return(false)

	_, err := service.Capture(context.Background(), CaptureRequest{Slot: 0})
	require.ErrorIs(t, err, domain.ErrNoAppearanceData)

	_, err = repo.Get(context.Background(), "Aria")
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
	assert.Equal(t, 1, metrics.captures[ResultFailure])
}

func TestCaptureActorNotFound(t *testing.T) {
	t.Parallel()

	m := newEngineMocks(t)
	service := NewCaptureService(newTestRepo(t), m.collaborators(), nil, nil, nil)
	m.actors.EXPECT().BySlot(mockAnyContext(), 7).Return(domain.Actor{}, false, nil)

	_, err := service.Capture(context.Background(), CaptureRequest{Slot: 7})
	assert.ErrorIs(t, err, domain.ErrActorNotFound)
}

func TestCaptureForcedNameAndExistingDirectory(t *testing.T) {
	t.Parallel()

	m := newEngineMocks(t)
	m.allAvailable()
	repo := newTestRepo(t)
	service := NewCaptureService(repo, m.collaborators(), fixedClock{now: testNow}, nil, nil)

	m.actors.EXPECT().BySlot(mockAnyContext(), 0).Return(aria, true, nil)
	m.redirection.EXPECT().ResourcePaths(mockAnyContext(), 0).Return(nil, nil)
	m.redirection.EXPECT().MetaManipulations(mockAnyContext(), 0).Return("", nil)
	m.equipment.EXPECT().State(mockAnyContext(), 0).Return("glamour-1", nil)
	m.scaling.EXPECT().ActiveProfile(mockAnyContext(), 0).Return("", nil)

	result, err := service.Capture(context.Background(), CaptureRequest{Slot: 0, As: "Aria: beach/day", Description: "beach"})
	require.NoError(t, err)
	assert.Equal(t, "Aria_ beach_day", result.Record)

	snapshot, err := repo.Get(context.Background(), "Aria_ beach_day")
	require.NoError(t, err)
	assert.Equal(t, "beach", snapshot.Equipment.Entries[0].Description)
}

func TestCaptureLeavesLegacyRecordForMigration(t *testing.T) {
	t.Parallel()

	m := newEngineMocks(t)
	m.allAvailable()
	repo := newTestRepo(t)
	metrics := newRecordingMetrics()
	service := NewCaptureService(repo, m.collaborators(), fixedClock{now: testNow}, metrics, nil)

	legacy := []byte(`{"SourceActor": "Aria", "FileReplacements": {}, "GlamourerString": "LEGACY-GLAM", "CustomizeData": "", "ManipulationString": ""}`)
	writeFile(t, filepath.Join(repo.Dir("Aria"), "snapshot.json"), legacy)

	m.actors.EXPECT().BySlot(mockAnyContext(), 0).Return(aria, true, nil)
	m.redirection.EXPECT().ResourcePaths(mockAnyContext(), 0).Return(nil, nil)
	m.redirection.EXPECT().MetaManipulations(mockAnyContext(), 0).Return("", nil)
	m.equipment.EXPECT().State(mockAnyContext(), 0).Return("NEW-GLAM", nil)
	m.scaling.EXPECT().ActiveProfile(mockAnyContext(), 0).Return("", nil)

	_, err := service.Capture(context.Background(), CaptureRequest{Slot: 0})
	require.ErrorIs(t, err, domain.ErrNeedsMigration)
	assert.Equal(t, 1, metrics.captures[ResultFailure])

	onDisk, err := os.ReadFile(filepath.Join(repo.Dir("Aria"), "snapshot.json"))
	require.NoError(t, err)
	assert.Equal(t, legacy, onDisk)
	assert.NoFileExists(t, filepath.Join(repo.Dir("Aria"), "glamourer_history.json"))

	candidates, err := repo.Candidates(context.Background())
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, domain.LayoutLegacy, candidates[0].Layout)
}

type fakePeerSync struct {
	available  bool
	appearance domain.Appearance
	found      bool
	files      map[string]string
}

func (p *fakePeerSync) Available(context.Context) bool {
	return p.available
}

func (p *fakePeerSync) CapturedAppearance(_ context.Context, _ string) (domain.Appearance, bool, error) {
	return p.appearance, p.found, nil
}

func (p *fakePeerSync) CachedFilePath(_ context.Context, hash string) (string, bool, error) {
	path, ok := p.files[hash]
	return path, ok, nil
}

func TestCapturePeerPullsFilesByHash(t *testing.T) {
	t.Parallel()

	m := newEngineMocks(t)
	repo := newTestRepo(t)

	cacheDir := t.TempDir()
	content := []byte("peer texture")
	hash := blobfile.Hash(content)
	writeFile(t, filepath.Join(cacheDir, "cached.tex"), content)

	peers := &fakePeerSync{
		available: true,
		found:     true,
		appearance: domain.Appearance{
			Equipment:    "peer-glamour",
			Scale:        `{"Bones":{"n_hara":0.9}}`,
			Manipulation: "peer-manip",
			Files: []domain.FileBinding{
				{GamePaths: []string{"chara/peer/skin.tex", "chara/peer/skin_alt.tex"}, Hash: hash},
				{GamePaths: []string{"chara/peer/lost.mdl"}, Hash: blobfile.Hash([]byte("not cached"))},
			},
		},
		files: map[string]string{hash: filepath.Join(cacheDir, "cached.tex")},
	}
	collab := m.collaborators()
	collab.Peers = peers
	service := NewCaptureService(repo, collab, fixedClock{now: testNow}, nil, nil)

	m.actors.EXPECT().BySlot(mockAnyContext(), 12).Return(domain.Actor{Slot: 12, Address: 0xB2, Name: "Lyse Hext", Kind: domain.ActorKindPeer}, true, nil)

	result, err := service.Capture(context.Background(), CaptureRequest{Slot: 12})
	require.NoError(t, err)
	assert.Equal(t, 1, result.FilesStored)
	assert.Equal(t, 1, result.FilesSkipped)

	snapshot, err := repo.Get(context.Background(), "Lyse Hext")
	require.NoError(t, err)
	assert.Equal(t, domain.FileReplacements{
		"chara/peer/skin.tex":     hash,
		"chara/peer/skin_alt.tex": hash,
	}, snapshot.Record.FileReplacements)
	assert.Equal(t, "peer-manip", snapshot.Record.ManipulationString)
	assert.Equal(t, "peer-glamour", snapshot.Equipment.Entries[0].Payload)
	assert.True(t, repo.Blobs("Lyse Hext").Has(context.Background(), hash))
}

func TestCapturePeerWithoutDataFails(t *testing.T) {
	t.Parallel()

	m := newEngineMocks(t)
	repo := newTestRepo(t)
	collab := m.collaborators()
	collab.Peers = &fakePeerSync{available: true, found: false}
	service := NewCaptureService(repo, collab, fixedClock{now: testNow}, nil, nil)

	m.actors.EXPECT().BySlot(mockAnyContext(), 12).Return(domain.Actor{Slot: 12, Name: "Lyse Hext", Kind: domain.ActorKindPeer}, true, nil)

	_, err := service.Capture(context.Background(), CaptureRequest{Slot: 12})
	require.ErrorIs(t, err, domain.ErrNoAppearanceData)

	all, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}
