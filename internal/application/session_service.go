package application

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/bnema/appearance-snapshots/internal/domain"
	"github.com/bnema/appearance-snapshots/internal/logging"
	"github.com/bnema/appearance-snapshots/internal/ports"
	"github.com/charmbracelet/log"
	cmap "github.com/orcaman/concurrent-map/v2"
)

// SessionService applies snapshots to live actors and owns the active session registry.
type SessionService struct {
	repo     ports.RecordRepository
	collab   Collaborators
	options  SessionOptions
	sessions cmap.ConcurrentMap[int, domain.ActiveSession]
	clock    ports.Clock
	metrics  ports.Metrics
	logger   *log.Logger
}

func NewSessionService(repo ports.RecordRepository, collab Collaborators, options SessionOptions, clock ports.Clock, metrics ports.Metrics, logger *log.Logger) *SessionService {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}

	return &SessionService{
		repo:     repo,
		collab:   collab,
		options:  options,
		sessions: cmap.NewWithCustomShardingFunction[int, domain.ActiveSession](shardSlot),
		clock:    clock,
		metrics:  metrics,
		logger:   logging.OrDiscard(logger),
	}
}

func shardSlot(slot int) uint32 {
	return uint32(slot)
}

// Sessions returns the active sessions ordered by slot.
func (s *SessionService) Sessions() []domain.ActiveSession {
	items := s.sessions.Items()
	sessions := make([]domain.ActiveSession, 0, len(items))
	for _, session := range items {
		sessions = append(sessions, session)
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].Slot < sessions[j].Slot })
	return sessions
}

func (s *SessionService) Session(slot int) (domain.ActiveSession, bool) {
	return s.sessions.Get(slot)
}

func (s *SessionService) Apply(ctx context.Context, req ApplyRequest) (ApplyResult, error) {
	result, err := s.apply(ctx, req)
	if err != nil {
		s.metrics.ApplyFinished(ResultFailure)
		return result, err
	}

	s.metrics.ApplyFinished(ResultSuccess)
	return result, nil
}

func (s *SessionService) apply(ctx context.Context, req ApplyRequest) (result ApplyResult, err error) {
	if err := ctx.Err(); err != nil {
		return ApplyResult{}, err
	}

	result = ApplyResult{EquipmentEntry: -1, ScaleEntry: -1}

	unlock := s.repo.Lock(req.Record)
	snapshot, err := s.repo.Get(ctx, req.Record)
	if err != nil {
		unlock()
		return result, fmt.Errorf("load snapshot record: %w", err)
	}

	equipment, equipmentIndex, err := pickEntry(snapshot.Equipment, req.EquipmentEntry)
	if err != nil {
		unlock()
		return result, fmt.Errorf("select equipment entry: %w", err)
	}
	scale, scaleIndex, err := pickEntry(snapshot.Scale, req.ScaleEntry)
	if err != nil {
		unlock()
		return result, fmt.Errorf("select scale entry: %w", err)
	}
	result.EquipmentEntry = equipmentIndex
	result.ScaleEntry = scaleIndex

	if equipment == nil && scale == nil && len(snapshot.Record.FileReplacements) == 0 {
		unlock()
		return result, fmt.Errorf("%w: %s", domain.ErrNothingToApply, req.Record)
	}

	files, missing, err := s.resolveFiles(ctx, snapshot)
	unlock()
	if err != nil {
		return result, err
	}
	result.FilesMissing = missing

	actor, found, err := s.collab.Actors.BySlot(ctx, req.Slot)
	if err != nil {
		return result, fmt.Errorf("resolve actor in slot %d: %w", req.Slot, err)
	}
	if !found {
		return result, fmt.Errorf("%w: slot %d", domain.ErrActorNotFound, req.Slot)
	}

	if previous, ok := s.sessions.Get(req.Slot); ok {
		result.Superseded = true
		if previous.HasScaleSession() && s.collab.Scaling != nil {
			if err := degrade(s.logger, "bone scaling", s.collab.Scaling.RevertBySessionID(ctx, previous.ScaleSessionID)); err != nil {
				s.logger.Warn("revert superseded scale session", "slot", req.Slot, "err", err)
			}
		}
	}

	session := domain.ActiveSession{
		Slot:           req.Slot,
		Record:         snapshot.Name,
		IsPrimaryActor: s.isPrimary(ctx, actor),
		AppliedAt:      s.clock.Now().UTC(),
	}
	// From here on external state changes; the session is recorded even on failure so
	// that a revert can still release it.
	defer func() {
		s.sessions.Set(session.Slot, session)
		result.Session = session
	}()

	if redirectionAvailable(ctx, s.collab) {
		if err := degrade(s.logger, "file redirection", s.collab.Redirection.RemoveTemporaryOverrides(ctx, req.Slot)); err != nil {
			return result, fmt.Errorf("remove previous overrides: %w", err)
		}

		files, err = s.mergeCollection(ctx, req, files)
		if err != nil {
			return result, err
		}
		if err := degrade(s.logger, "file redirection", s.collab.Redirection.SetTemporaryOverrides(ctx, req.Slot, files, snapshot.Record.ManipulationString)); err != nil {
			return result, fmt.Errorf("set temporary overrides: %w", err)
		}
		result.FilesApplied = len(files)
	}

	if scale != nil && scalingAvailable(ctx, s.collab) {
		profile, err := domain.DecodeScaleProfile(scale.Payload)
		if err != nil {
			return result, fmt.Errorf("decode scale entry: %w", err)
		}
		sessionID, err := s.collab.Scaling.ApplyTemporaryProfile(ctx, req.Slot, profile)
		if err := degrade(s.logger, "bone scaling", err); err != nil {
			return result, fmt.Errorf("apply scale profile: %w", err)
		}
		session.ScaleSessionID = sessionID
	}

	if equipment != nil && equipmentAvailable(ctx, s.collab) {
		if err := degrade(s.logger, "equipment", s.collab.Equipment.ApplyState(ctx, equipment.Payload, req.Slot, ReservationKey)); err != nil {
			return result, fmt.Errorf("apply equipment state: %w", err)
		}
	}

	if err := s.redraw(ctx, req.Slot); err != nil {
		return result, err
	}

	s.logger.Info("applied snapshot", "record", snapshot.Name, "slot", req.Slot, "files", result.FilesApplied, "primary", session.IsPrimaryActor)
	return result, nil
}

func pickEntry(history domain.History, index *int) (*domain.HistoryEntry, int, error) {
	if index != nil {
		entry, err := history.At(*index)
		if err != nil {
			return nil, -1, err
		}
		return &entry, *index, nil
	}

	entry, ok := history.Latest()
	if !ok {
		return nil, -1, nil
	}
	return &entry, len(history.Entries) - 1, nil
}

func (s *SessionService) resolveFiles(ctx context.Context, snapshot domain.Snapshot) (map[string]string, int, error) {
	blobs := s.repo.Blobs(snapshot.Name)
	files := make(map[string]string, len(snapshot.Record.FileReplacements))
	missing := 0

	for gamePath, hash := range snapshot.Record.FileReplacements {
		path, err := blobs.Resolve(ctx, hash)
		if err != nil {
			if errors.Is(err, domain.ErrBlobMissing) {
				s.logger.Warn("blob missing, skipping game path", "record", snapshot.Name, "path", gamePath, "hash", hash)
				missing++
				continue
			}
			return nil, missing, fmt.Errorf("resolve blob for %s: %w", gamePath, err)
		}
		files[gamePath] = path
	}

	return files, missing, nil
}

// mergeCollection layers the named collection over files. Collection entries win.
func (s *SessionService) mergeCollection(ctx context.Context, req ApplyRequest, files map[string]string) (map[string]string, error) {
	collection := req.MergeCollection
	if collection == "" {
		collection = s.options.MergeCollection
	}
	if collection == "" || s.collab.Collections == nil {
		return files, nil
	}

	collectionFiles, err := s.collab.Collections.CollectionFiles(ctx, collection)
	if err := degrade(s.logger, "collections", err); err != nil {
		return nil, fmt.Errorf("read collection %s: %w", collection, err)
	}

	merged := make(map[string]string, len(files)+len(collectionFiles))
	for gamePath, path := range files {
		merged[gamePath] = path
	}
	for gamePath, path := range collectionFiles {
		merged[domain.CanonicalGamePath(gamePath)] = path
	}
	return merged, nil
}

func (s *SessionService) isPrimary(ctx context.Context, actor domain.Actor) bool {
	if domain.IsSpecialModeSlot(actor.Slot) {
		return true
	}

	primary, found, err := s.collab.Actors.PrimaryActor(ctx)
	if err != nil {
		s.logger.Warn("resolve primary actor", "err", err)
		return false
	}
	return found && (primary.SameObject(actor) || primary.Slot == actor.Slot)
}

// Revert tears down the session on slot. Without a recorded session the slot-scoped
// overrides are still released; the returned bool reports whether a session existed.
func (s *SessionService) Revert(ctx context.Context, slot int) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	session, ok := s.sessions.Get(slot)
	if !ok {
		session = domain.ActiveSession{Slot: slot}
	}

	revertedSlot, resolved, err := s.revertSession(ctx, session)
	if ok {
		s.sessions.Remove(slot)
		s.metrics.SessionsReverted(1)
	}
	if resolved {
		err = errors.Join(err, s.redraw(ctx, revertedSlot))
	}

	return ok, err
}

// RevertAll reverts every active session except, when respectExemption is set and
// automatic revert is disabled, those of the primary actor.
func (s *SessionService) RevertAll(ctx context.Context, respectExemption bool) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	if s.sessions.Count() == 0 {
		return 0, nil
	}

	keepPrimary := respectExemption && s.options.DisableAutomaticRevert
	var revert []domain.ActiveSession
	for _, session := range s.Sessions() {
		if keepPrimary && session.IsPrimaryActor {
			continue
		}
		revert = append(revert, session)
	}

	var errs []error
	redraw := map[int]struct{}{}
	for _, session := range revert {
		slot, resolved, err := s.revertSession(ctx, session)
		if err != nil {
			errs = append(errs, fmt.Errorf("revert slot %d: %w", session.Slot, err))
		}
		if resolved {
			redraw[slot] = struct{}{}
		}
		s.sessions.Remove(session.Slot)
	}

	slots := make([]int, 0, len(redraw))
	for slot := range redraw {
		slots = append(slots, slot)
	}
	sort.Ints(slots)
	for _, slot := range slots {
		if err := s.redraw(ctx, slot); err != nil {
			errs = append(errs, err)
		}
	}

	if len(revert) > 0 {
		s.metrics.SessionsReverted(len(revert))
		s.logger.Info("reverted sessions", "count", len(revert), "kept", s.sessions.Count())
	}

	return len(revert), errors.Join(errs...)
}

// revertSession releases one session. It reports the slot the live actor was found
// at and whether it was found at all.
func (s *SessionService) revertSession(ctx context.Context, session domain.ActiveSession) (int, bool, error) {
	actor, found, err := s.collab.Actors.BySlot(ctx, session.Slot)
	if err != nil {
		s.logger.Warn("resolve actor for revert", "slot", session.Slot, "err", err)
		found = false
	}
	if !found && session.IsPrimaryActor {
		actor, found, err = s.collab.Actors.PrimaryActor(ctx)
		if err != nil {
			s.logger.Warn("resolve primary actor for revert", "slot", session.Slot, "err", err)
			found = false
		}
	}

	var errs []error
	if session.HasScaleSession() && s.collab.Scaling != nil {
		errs = append(errs, degrade(s.logger, "bone scaling", s.collab.Scaling.RevertBySessionID(ctx, session.ScaleSessionID)))
	}

	if !found {
		s.logger.Warn("actor gone, releasing overrides by slot only", "slot", session.Slot)
		if s.collab.Redirection != nil {
			errs = append(errs, degrade(s.logger, "file redirection", s.collab.Redirection.RemoveTemporaryOverrides(ctx, session.Slot)))
		}
		return session.Slot, false, errors.Join(errs...)
	}

	if s.collab.Redirection != nil {
		errs = append(errs, degrade(s.logger, "file redirection", s.collab.Redirection.RemoveTemporaryOverrides(ctx, actor.Slot)))
	}
	if s.collab.Equipment != nil {
		errs = append(errs, degrade(s.logger, "equipment", s.collab.Equipment.Unlock(ctx, actor.Slot, ReservationKey)))
		errs = append(errs, degrade(s.logger, "equipment", s.collab.Equipment.RevertToAutomation(ctx, actor.Slot, ReservationKey)))
	}

	return actor.Slot, true, errors.Join(errs...)
}

func (s *SessionService) redraw(ctx context.Context, slot int) error {
	if s.collab.Redirection == nil {
		return nil
	}
	if err := degrade(s.logger, "file redirection", s.collab.Redirection.Redraw(ctx, slot)); err != nil {
		return fmt.Errorf("redraw slot %d: %w", slot, err)
	}
	return nil
}
