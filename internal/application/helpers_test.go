package application

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/bnema/appearance-snapshots/internal/adapters/repo/jsonfs"
	"github.com/bnema/appearance-snapshots/internal/domain"
	"github.com/bnema/appearance-snapshots/internal/ports"
	"github.com/bnema/appearance-snapshots/internal/ports/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

var testNow = time.Date(2026, 3, 1, 18, 30, 0, 0, time.UTC)

func mockAnyContext() interface{} {
	return mock.Anything
}

func newTestRepo(t *testing.T) *jsonfs.Repository {
	t.Helper()

	repo, err := jsonfs.NewRepository(jsonfs.Options{Root: t.TempDir(), Clock: fixedClock{now: testNow}})
	require.NoError(t, err)
	return repo
}

type engineMocks struct {
	actors      *mocks.MockActorTable
	redirection *mocks.MockFileRedirection
	equipment   *mocks.MockEquipment
	scaling     *mocks.MockBoneScaling
}

func newEngineMocks(t *testing.T) engineMocks {
	return engineMocks{
		actors:      mocks.NewMockActorTable(t),
		redirection: mocks.NewMockFileRedirection(t),
		equipment:   mocks.NewMockEquipment(t),
		scaling:     mocks.NewMockBoneScaling(t),
	}
}

func (m engineMocks) collaborators() Collaborators {
	return Collaborators{
		Actors:      m.actors,
		Redirection: m.redirection,
		Equipment:   m.equipment,
		Scaling:     m.scaling,
	}
}

// allAvailable lets every Available call succeed any number of times.
func (m engineMocks) allAvailable() {
	m.redirection.EXPECT().Available(mockAnyContext()).Return(true).Maybe()
	m.equipment.EXPECT().Available(mockAnyContext()).Return(true).Maybe()
	m.scaling.EXPECT().Available(mockAnyContext()).Return(true).Maybe()
}

// seedRecord stores a record whose only file binding points at content.
func seedRecord(t *testing.T, repo *jsonfs.Repository, name string, content []byte) domain.Snapshot {
	t.Helper()

	ctx := context.Background()
	hash, err := repo.Blobs(name).Put(ctx, content)
	require.NoError(t, err)

	replacements := domain.NewFileReplacements()
	replacements.Set("chara/human/c0101/skin.tex", hash)

	scale, err := domain.ScaleEntry(`{"Bones":{"n_root":1.1}}`, "Initial snapshot", testNow)
	require.NoError(t, err)

	snapshot := domain.Snapshot{
		Name: name,
		Record: domain.Record{
			FormatVersion:      domain.CurrentFormatVersion,
			SourceActor:        name,
			LastUpdate:         testNow,
			FileReplacements:   replacements,
			ManipulationString: "manip-1",
		},
		Equipment: domain.History{Entries: []domain.HistoryEntry{
			{Timestamp: testNow, Description: "Initial snapshot", Payload: "glamour-1"},
		}},
		Scale: domain.History{Entries: []domain.HistoryEntry{scale}},
	}
	require.NoError(t, repo.Save(ctx, snapshot))
	return snapshot
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

type recordingMetrics struct {
	mu         sync.Mutex
	captures   map[string]int
	applies    map[string]int
	reverted   int
	migrations map[string]int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{captures: map[string]int{}, applies: map[string]int{}, migrations: map[string]int{}}
}

func (m *recordingMetrics) CaptureFinished(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.captures[result]++
}

func (m *recordingMetrics) ApplyFinished(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.applies[result]++
}

func (m *recordingMetrics) SessionsReverted(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reverted += count
}

func (m *recordingMetrics) MigrationFinished(kind, result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.migrations[kind+"/"+result]++
}

type notification struct {
	level   ports.NotificationLevel
	message string
}

type recordingNotifier struct {
	notifications []notification
}

func (n *recordingNotifier) Notify(level ports.NotificationLevel, message string) {
	n.notifications = append(n.notifications, notification{level: level, message: message})
}

type fakeSignal struct {
	handlers map[int]ports.SpecialModeExitHandler
	next     int
}

func (s *fakeSignal) SubscribeExit(handler ports.SpecialModeExitHandler) func() {
	if s.handlers == nil {
		s.handlers = map[int]ports.SpecialModeExitHandler{}
	}
	s.next++
	id := s.next
	s.handlers[id] = handler
	return func() { delete(s.handlers, id) }
}

func (s *fakeSignal) fireExit(ctx context.Context) {
	for _, handler := range s.handlers {
		handler(ctx)
	}
}
