package jsonfs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	blobfile "github.com/bnema/appearance-snapshots/internal/adapters/blob/file"
	"github.com/bnema/appearance-snapshots/internal/cache"
	"github.com/bnema/appearance-snapshots/internal/domain"
	"github.com/bnema/appearance-snapshots/internal/logging"
	"github.com/bnema/appearance-snapshots/internal/ports"
	"github.com/charmbracelet/log"
	cmap "github.com/orcaman/concurrent-map/v2"
)

const (
	recordDirMode   = 0o755
	recordFileMode  = 0o644
	tempFilePattern = ".snapshot-*.json.tmp"

	// FailedSuffix marks directories whose migration failed.
	FailedSuffix = "_migration_failed"
)

type Options struct {
	Root     string
	IndexTTL time.Duration
	Clock    ports.Clock
	Logger   *log.Logger
}

// Repository stores one directory per record under Root. Methods never take the
// advisory record lock themselves; callers hold it around read-modify-write cycles.
type Repository struct {
	root   string
	locks  cmap.ConcurrentMap[string, *sync.Mutex]
	stores cmap.ConcurrentMap[string, *blobfile.Store]
	index  *cache.Value[map[string]string]
	clock  ports.Clock
	logger *log.Logger
}

var _ ports.RecordRepository = (*Repository)(nil)

func NewRepository(opts Options) (*Repository, error) {
	if strings.TrimSpace(opts.Root) == "" {
		return nil, errors.New("working directory is empty")
	}

	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	if opts.Clock == nil {
		opts.Clock = ports.SystemClock{}
	}

	r := &Repository{
		root:   filepath.Clean(root),
		locks:  cmap.New[*sync.Mutex](),
		stores: cmap.New[*blobfile.Store](),
		clock:  opts.Clock,
		logger: logging.OrDiscard(opts.Logger),
	}
	r.index = cache.New(opts.IndexTTL, opts.Clock, r.buildSourceIndex)

	return r, nil
}

func (r *Repository) Root() string {
	return r.root
}

func (r *Repository) Dir(name string) string {
	return filepath.Join(r.root, name)
}

func (r *Repository) Lock(name string) func() {
	r.locks.SetIfAbsent(name, &sync.Mutex{})
	mu, _ := r.locks.Get(name)
	mu.Lock()
	return mu.Unlock
}

// Blobs returns the single store kept for each record.
func (r *Repository) Blobs(name string) ports.BlobStore {
	return r.stores.Upsert(name, nil, func(exists bool, current, _ *blobfile.Store) *blobfile.Store {
		if exists {
			return current
		}
		return blobfile.NewStore(r.Dir(name))
	})
}

func (r *Repository) List(ctx context.Context) ([]domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	names, err := r.recordNames()
	if err != nil {
		return nil, err
	}

	snapshots := make([]domain.Snapshot, 0, len(names))
	for _, name := range names {
		snapshot, err := r.load(name)
		if errors.Is(err, domain.ErrNeedsMigration) {
			r.logger.Warn("skipping snapshot record awaiting migration", "record", name)
			continue
		}
		if err != nil {
			r.logger.Warn("skipping unreadable snapshot record", "record", name, "err", err)
			continue
		}
		snapshots = append(snapshots, snapshot)
	}

	return snapshots, nil
}

func (r *Repository) Get(ctx context.Context, name string) (domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return domain.Snapshot{}, err
	}

	if err := validateName(name); err != nil {
		return domain.Snapshot{}, err
	}

	return r.load(name)
}

func (r *Repository) FindBySource(ctx context.Context, source string) (domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return domain.Snapshot{}, err
	}

	key := strings.ToLower(strings.TrimSpace(source))
	if key == "" {
		return domain.Snapshot{}, domain.ErrRecordNotFound
	}

	index, err := r.index.Get(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}

	name, ok := index[key]
	if !ok {
		return domain.Snapshot{}, domain.ErrRecordNotFound
	}

	snapshot, err := r.load(name)
	if errors.Is(err, domain.ErrRecordNotFound) || (err == nil && !snapshot.Record.MatchesSource(source)) {
		// The directory moved under us; rebuild once.
		index, err = r.index.Refresh(ctx)
		if err != nil {
			return domain.Snapshot{}, err
		}
		name, ok = index[key]
		if !ok {
			return domain.Snapshot{}, domain.ErrRecordNotFound
		}
		return r.load(name)
	}

	return snapshot, err
}

func (r *Repository) Save(ctx context.Context, snapshot domain.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := validateName(snapshot.Name); err != nil {
		return err
	}

	dir := r.Dir(snapshot.Name)
	if err := os.MkdirAll(dir, recordDirMode); err != nil {
		return fmt.Errorf("create record directory: %w", err)
	}

	if err := writeJSON(filepath.Join(dir, equipmentFileName), toEquipmentSchema(snapshot.Equipment)); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(dir, scaleFileName), toScaleSchema(snapshot.Scale)); err != nil {
		return err
	}
	// snapshot.json last: a record only becomes visible once its histories exist.
	if err := writeJSON(filepath.Join(dir, recordFileName), toRecordSchema(snapshot.Record)); err != nil {
		return err
	}

	r.index.Invalidate()
	return nil
}

func (r *Repository) Rename(ctx context.Context, from, to string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := validateName(from); err != nil {
		return err
	}
	if err := validateName(to); err != nil {
		return err
	}

	if _, err := os.Stat(filepath.Join(r.Dir(from), recordFileName)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", domain.ErrRecordNotFound, from)
		}
		return fmt.Errorf("stat record %s: %w", from, err)
	}
	if _, err := os.Stat(r.Dir(to)); err == nil {
		return fmt.Errorf("%w: %s", domain.ErrRecordExists, to)
	}

	if err := os.Rename(r.Dir(from), r.Dir(to)); err != nil {
		return fmt.Errorf("rename record directory: %w", err)
	}

	r.index.Invalidate()
	return nil
}

func (r *Repository) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := validateName(name); err != nil {
		return err
	}

	if _, err := os.Stat(r.Dir(name)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", domain.ErrRecordNotFound, name)
		}
		return fmt.Errorf("stat record %s: %w", name, err)
	}

	if err := os.RemoveAll(r.Dir(name)); err != nil {
		return fmt.Errorf("delete record directory: %w", err)
	}

	r.index.Invalidate()
	return nil
}

func (r *Repository) load(name string) (domain.Snapshot, error) {
	dir := r.Dir(name)

	data, err := readFile(filepath.Join(dir, recordFileName))
	if err != nil {
		return domain.Snapshot{}, err
	}
	if data == nil {
		return domain.Snapshot{}, fmt.Errorf("%w: %s", domain.ErrRecordNotFound, name)
	}

	layout, err := layoutOf(data)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("%w: %s: %w", domain.ErrMalformedRecord, name, err)
	}
	if layout == domain.LayoutLegacy {
		return domain.Snapshot{}, fmt.Errorf("%w: %s", domain.ErrNeedsMigration, name)
	}

	var record recordSchema
	if err := json.Unmarshal(data, &record); err != nil {
		return domain.Snapshot{}, fmt.Errorf("%w: decode %s: %w", domain.ErrMalformedRecord, recordFileName, err)
	}
	if err := record.validateVersion(); err != nil {
		return domain.Snapshot{}, fmt.Errorf("%w: %s: %w", domain.ErrMalformedRecord, name, err)
	}

	var equipment equipmentHistorySchema
	if _, err := readJSON(filepath.Join(dir, equipmentFileName), &equipment); err != nil {
		return domain.Snapshot{}, err
	}

	var scale scaleHistorySchema
	if _, err := readJSON(filepath.Join(dir, scaleFileName), &scale); err != nil {
		return domain.Snapshot{}, err
	}

	return domain.Snapshot{
		Name:      name,
		Record:    fromRecordSchema(record),
		Equipment: fromEquipmentSchema(equipment),
		Scale:     fromScaleSchema(scale),
	}, nil
}

func (r *Repository) recordNames() ([]string, error) {
	entries, err := os.ReadDir(r.root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read working directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() || skipDir(entry.Name()) {
			continue
		}
		if _, err := os.Stat(filepath.Join(r.root, entry.Name(), recordFileName)); err != nil {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	return names, nil
}

// buildSourceIndex maps lowercased source identities to directory names. When two
// records claim the same source, the first directory in name order wins.
func (r *Repository) buildSourceIndex(_ context.Context) (map[string]string, error) {
	names, err := r.recordNames()
	if err != nil {
		return nil, err
	}

	index := make(map[string]string, len(names))
	for _, name := range names {
		var probe struct {
			SourceActor string `json:"SourceActor"`
		}
		if _, err := readJSON(filepath.Join(r.root, name, recordFileName), &probe); err != nil {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(probe.SourceActor))
		if key == "" {
			continue
		}
		if _, exists := index[key]; !exists {
			index[key] = name
		}
	}

	return index, nil
}

func skipDir(name string) bool {
	return strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".") || strings.HasSuffix(name, FailedSuffix)
}

func validateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return errors.New("record name is empty")
	}
	if trimmed != name || filepath.Base(name) != name || name == "." || name == ".." || skipDir(name) {
		return fmt.Errorf("invalid record name %q", name)
	}
	return nil
}

// readFile returns nil data when path does not exist.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}

	return data, nil
}

func readJSON(path string, target any) (bool, error) {
	data, err := readFile(path)
	if err != nil || data == nil {
		return false, err
	}

	if err := json.Unmarshal(data, target); err != nil {
		return true, fmt.Errorf("%w: decode %s: %w", domain.ErrMalformedRecord, path, err)
	}

	return true, nil
}

func writeJSON(path string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp %s: %w", filepath.Base(path), err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp %s: %w", filepath.Base(path), err)
	}

	if err := tempFile.Chmod(recordFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp %s: %w", filepath.Base(path), err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp %s: %w", filepath.Base(path), err)
	}

	if err := os.Rename(tempName, path); err != nil {
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}

	cleanup = false
	return nil
}
