package application

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bnema/appearance-snapshots/internal/domain"
	"github.com/bnema/appearance-snapshots/internal/logging"
	"github.com/bnema/appearance-snapshots/internal/ports"
	"github.com/charmbracelet/log"
)

const (
	initialEntryDescription = "Initial snapshot"
	updateEntryDescription  = "Snapshot update"
)

type CaptureService struct {
	repo    ports.RecordRepository
	collab  Collaborators
	clock   ports.Clock
	metrics ports.Metrics
	logger  *log.Logger
}

func NewCaptureService(repo ports.RecordRepository, collab Collaborators, clock ports.Clock, metrics ports.Metrics, logger *log.Logger) *CaptureService {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}

	return &CaptureService{
		repo:    repo,
		collab:  collab,
		clock:   clock,
		metrics: metrics,
		logger:  logging.OrDiscard(logger),
	}
}

// pendingFile is a file waiting to be copied into the blob store. Source is a local
// path for local actors or a hash for peer actors.
type pendingFile struct {
	source    string
	gamePaths []string
}

type capturedState struct {
	equipment    string
	scale        string
	manipulation string
	files        []pendingFile
	peer         bool
}

func (c capturedState) empty() bool {
	return c.equipment == "" && c.scale == "" && c.manipulation == "" && len(c.files) == 0
}

// Capture snapshots the actor at req.Slot into its record, creating the record when
// none exists yet.
func (s *CaptureService) Capture(ctx context.Context, req CaptureRequest) (CaptureResult, error) {
	result, err := s.capture(ctx, req)
	if err != nil {
		s.metrics.CaptureFinished(ResultFailure)
		return result, err
	}

	s.metrics.CaptureFinished(ResultSuccess)
	return result, nil
}

func (s *CaptureService) capture(ctx context.Context, req CaptureRequest) (CaptureResult, error) {
	if err := ctx.Err(); err != nil {
		return CaptureResult{}, err
	}

	actor, found, err := s.collab.Actors.BySlot(ctx, req.Slot)
	if err != nil {
		return CaptureResult{}, fmt.Errorf("resolve actor in slot %d: %w", req.Slot, err)
	}
	if !found {
		return CaptureResult{}, fmt.Errorf("%w: slot %d", domain.ErrActorNotFound, req.Slot)
	}

	var state capturedState
	if actor.IsLocal() {
		state, err = s.readLocal(ctx, actor)
	} else {
		state, err = s.readPeer(ctx, actor)
	}
	if err != nil {
		return CaptureResult{}, err
	}
	if state.empty() {
		return CaptureResult{}, fmt.Errorf("%w: %s", domain.ErrNoAppearanceData, actor.Name)
	}

	name, err := s.locate(ctx, actor, req.As)
	if err != nil {
		return CaptureResult{}, err
	}

	unlock := s.repo.Lock(name)
	defer unlock()

	snapshot, err := s.repo.Get(ctx, name)
	created := false
	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		snapshot = domain.Snapshot{Name: name}
		created = true
	case err != nil:
		return CaptureResult{}, fmt.Errorf("load snapshot record: %w", err)
	}

	result := CaptureResult{Record: name, Created: created}
	replacements, err := s.storeFiles(ctx, name, state, &result)
	if err != nil {
		return result, err
	}
	if len(replacements) == 0 && state.equipment == "" && state.scale == "" && state.manipulation == "" {
		return result, fmt.Errorf("%w: every bound file was missing for %s", domain.ErrNoAppearanceData, actor.Name)
	}

	now := s.clock.Now().UTC()
	result.EquipmentAppended = snapshot.Equipment.AppendIfChanged(domain.HistoryEntry{
		Timestamp:   now,
		Description: entryDescription(req.Description, snapshot.Equipment),
		Payload:     state.equipment,
	})
	if state.scale != "" {
		entry, err := domain.ScaleEntry(state.scale, entryDescription(req.Description, snapshot.Scale), now)
		if err != nil {
			return result, fmt.Errorf("encode scale profile: %w", err)
		}
		result.ScaleAppended = snapshot.Scale.AppendIfChanged(entry)
	}

	snapshot.Record.FormatVersion = domain.CurrentFormatVersion
	snapshot.Record.SourceActor = actor.Name
	snapshot.Record.LastUpdate = now
	snapshot.Record.FileReplacements = replacements
	snapshot.Record.ManipulationString = state.manipulation

	if err := s.repo.Save(ctx, snapshot); err != nil {
		return result, fmt.Errorf("save snapshot record: %w", err)
	}

	s.logger.Info("captured appearance", "record", name, "actor", actor.Name, "files", result.FilesStored, "skipped", result.FilesSkipped)
	return result, nil
}

func (s *CaptureService) readLocal(ctx context.Context, actor domain.Actor) (capturedState, error) {
	state := capturedState{}

	if redirectionAvailable(ctx, s.collab) {
		paths, err := s.collab.Redirection.ResourcePaths(ctx, actor.Slot)
		if err := degrade(s.logger, "file redirection", err); err != nil {
			return state, fmt.Errorf("read resource paths: %w", err)
		}
		state.files = localFiles(paths)

		manipulation, err := s.collab.Redirection.MetaManipulations(ctx, actor.Slot)
		if err := degrade(s.logger, "file redirection", err); err != nil {
			return state, fmt.Errorf("read meta manipulations: %w", err)
		}
		state.manipulation = manipulation
	}

	if equipmentAvailable(ctx, s.collab) {
		equipment, err := s.collab.Equipment.State(ctx, actor.Slot)
		if err := degrade(s.logger, "equipment", err); err != nil {
			return state, fmt.Errorf("read equipment state: %w", err)
		}
		state.equipment = equipment
	}

	if scalingAvailable(ctx, s.collab) {
		profile, err := s.collab.Scaling.ActiveProfile(ctx, actor.Slot)
		if err := degrade(s.logger, "bone scaling", err); err != nil {
			return state, fmt.Errorf("read scale profile: %w", err)
		}
		state.scale = profile
	}

	return state, nil
}

// localFiles drops resolved paths that are not files on disk: those are unmodified
// game files.
func localFiles(paths map[string][]string) []pendingFile {
	resolved := make([]string, 0, len(paths))
	for path := range paths {
		if filepath.IsAbs(path) {
			resolved = append(resolved, path)
		}
	}
	sort.Strings(resolved)

	files := make([]pendingFile, 0, len(resolved))
	for _, path := range resolved {
		if len(paths[path]) == 0 {
			continue
		}
		files = append(files, pendingFile{source: path, gamePaths: paths[path]})
	}
	return files
}

func (s *CaptureService) readPeer(ctx context.Context, actor domain.Actor) (capturedState, error) {
	if s.collab.Peers == nil || !s.collab.Peers.Available(ctx) {
		return capturedState{}, fmt.Errorf("%w: peer sync is not available for %s", domain.ErrNoAppearanceData, actor.Name)
	}

	appearance, found, err := s.collab.Peers.CapturedAppearance(ctx, actor.Name)
	if err != nil {
		if errors.Is(err, domain.ErrCollaboratorUnavailable) {
			return capturedState{}, fmt.Errorf("%w: %w", domain.ErrNoAppearanceData, err)
		}
		return capturedState{}, fmt.Errorf("read peer appearance: %w", err)
	}
	if !found || appearance.IsEmpty() {
		return capturedState{}, fmt.Errorf("%w: peer sync has nothing for %s", domain.ErrNoAppearanceData, actor.Name)
	}

	state := capturedState{
		equipment:    appearance.Equipment,
		scale:        appearance.Scale,
		manipulation: appearance.Manipulation,
		peer:         true,
	}
	for _, binding := range appearance.Files {
		if binding.Hash == "" || len(binding.GamePaths) == 0 {
			continue
		}
		state.files = append(state.files, pendingFile{source: strings.ToUpper(binding.Hash), gamePaths: binding.GamePaths})
	}

	return state, nil
}

// locate picks the record directory: forced name, then source identity, then the
// directory named after the actor.
func (s *CaptureService) locate(ctx context.Context, actor domain.Actor, forced string) (string, error) {
	if strings.TrimSpace(forced) != "" {
		return domain.RecordNameFor(forced)
	}

	existing, err := s.repo.FindBySource(ctx, actor.Name)
	if err == nil {
		return existing.Name, nil
	}
	if !errors.Is(err, domain.ErrRecordNotFound) {
		return "", fmt.Errorf("find record by source: %w", err)
	}

	return domain.RecordNameFor(actor.Name)
}

func (s *CaptureService) storeFiles(ctx context.Context, name string, state capturedState, result *CaptureResult) (domain.FileReplacements, error) {
	blobs := s.repo.Blobs(name)
	replacements := domain.NewFileReplacements()

	for _, file := range state.files {
		var (
			hash string
			err  error
		)
		if state.peer {
			hash, err = s.pullPeerFile(ctx, blobs, file.source)
		} else {
			hash, err = blobs.PutFile(ctx, file.source)
		}
		if err != nil {
			if errors.Is(err, domain.ErrBlobMissing) {
				s.logger.Warn("bound file missing, skipping", "record", name, "path", file.source)
				result.FilesSkipped++
				continue
			}
			return nil, fmt.Errorf("store bound file: %w", err)
		}

		for _, gamePath := range file.gamePaths {
			replacements.Set(gamePath, hash)
		}
		result.FilesStored++
	}

	return replacements, nil
}

func (s *CaptureService) pullPeerFile(ctx context.Context, blobs ports.BlobStore, hash string) (string, error) {
	if blobs.Has(ctx, hash) {
		return hash, nil
	}

	path, found, err := s.collab.Peers.CachedFilePath(ctx, hash)
	if err != nil && !errors.Is(err, domain.ErrCollaboratorUnavailable) {
		return "", fmt.Errorf("look up peer file %s: %w", hash, err)
	}
	if err != nil || !found {
		return "", fmt.Errorf("peer file %s: %w", hash, domain.ErrBlobMissing)
	}

	stored, err := blobs.PutFile(ctx, path)
	if err != nil {
		return "", err
	}
	if stored != hash {
		s.logger.Warn("peer file content does not match its hash", "hash", hash, "stored", stored)
	}
	return stored, nil
}

func entryDescription(requested string, history domain.History) string {
	if strings.TrimSpace(requested) != "" {
		return requested
	}
	if len(history.Entries) == 0 {
		return initialEntryDescription
	}
	return updateEntryDescription
}
