package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/bnema/appearance-snapshots/internal/domain"
	"github.com/bnema/appearance-snapshots/internal/logging"
	"github.com/bnema/appearance-snapshots/internal/ports"
	"github.com/charmbracelet/log"
)

// TransferService moves records in and out of the portable formats.
type TransferService struct {
	repo    ports.RecordRepository
	codec   ports.ContainerCodec
	modpack ports.ModPackWriter
	clock   ports.Clock
	logger  *log.Logger
}

func NewTransferService(repo ports.RecordRepository, codec ports.ContainerCodec, modpack ports.ModPackWriter, clock ports.Clock, logger *log.Logger) *TransferService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &TransferService{
		repo:    repo,
		codec:   codec,
		modpack: modpack,
		clock:   clock,
		logger:  logging.OrDiscard(logger),
	}
}

func (s *TransferService) Export(ctx context.Context, name string, w io.Writer) error {
	bundle, err := s.bundle(ctx, name)
	if err != nil {
		return err
	}

	if err := s.codec.Encode(ctx, w, bundle); err != nil {
		return fmt.Errorf("encode snapshot container: %w", err)
	}
	return nil
}

func (s *TransferService) ExportModPack(ctx context.Context, name string, w io.Writer) error {
	bundle, err := s.bundle(ctx, name)
	if err != nil {
		return err
	}

	if err := s.modpack.Write(ctx, w, name, bundle); err != nil {
		return fmt.Errorf("write mod package: %w", err)
	}
	return nil
}

// Import creates a new record named name from a container. An existing record is
// never overwritten.
func (s *TransferService) Import(ctx context.Context, name string, r io.Reader) (domain.Snapshot, error) {
	recordName, err := domain.RecordNameFor(name)
	if err != nil {
		return domain.Snapshot{}, err
	}

	unlock := s.repo.Lock(recordName)
	defer unlock()

	if _, err := s.repo.Get(ctx, recordName); err == nil {
		return domain.Snapshot{}, fmt.Errorf("%w: %s", domain.ErrRecordExists, recordName)
	} else if !errors.Is(err, domain.ErrRecordNotFound) {
		return domain.Snapshot{}, fmt.Errorf("check existing record: %w", err)
	}

	staged, err := s.repo.StageBlobs(recordName)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("stage imported blobs: %w", err)
	}
	committed := false
	defer func() {
		if committed {
			return
		}
		if err := staged.Discard(); err != nil {
			s.logger.Warn("could not clean up failed import", "record", recordName, "err", err)
		}
	}()

	bundle, err := s.codec.Decode(ctx, r, staged)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("decode snapshot container: %w", err)
	}

	now := s.clock.Now().UTC()
	snapshot := domain.Snapshot{
		Name: recordName,
		Record: domain.Record{
			FormatVersion:      domain.CurrentFormatVersion,
			SourceActor:        name,
			LastUpdate:         now,
			FileReplacements:   domain.NewFileReplacements(),
			ManipulationString: bundle.Manipulation,
		},
	}
	for _, file := range bundle.Files {
		for _, gamePath := range file.GamePaths {
			snapshot.Record.FileReplacements.Set(gamePath, file.Hash)
		}
	}

	description := domain.ImportedEntryDescription
	if bundle.Description != "" {
		description = fmt.Sprintf("%s: %s", domain.ImportedEntryDescription, bundle.Description)
	}
	snapshot.Equipment.AppendIfChanged(domain.HistoryEntry{Timestamp: now, Description: description, Payload: bundle.Equipment})
	if bundle.Scale != "" {
		template := ""
		if profile, err := domain.DecodeScaleProfile(bundle.Scale); err == nil {
			template, _ = domain.ScaleTemplate(profile)
		} else {
			s.logger.Warn("imported scale data is not a profile, keeping it without a template", "record", recordName, "err", err)
		}
		snapshot.Scale.AppendIfChanged(domain.HistoryEntry{Timestamp: now, Description: description, Payload: bundle.Scale, Template: template})
	}

	if !snapshot.HasContent() {
		return domain.Snapshot{}, fmt.Errorf("%w: container is empty", domain.ErrNoAppearanceData)
	}

	if err := staged.Commit(ctx); err != nil {
		return domain.Snapshot{}, fmt.Errorf("commit imported blobs: %w", err)
	}
	if err := s.repo.Save(ctx, snapshot); err != nil {
		return domain.Snapshot{}, fmt.Errorf("save imported record: %w", err)
	}
	committed = true

	s.logger.Info("imported snapshot container", "record", recordName, "files", len(bundle.Files))
	return snapshot, nil
}

// bundle collects the latest state of a record, resolving every blob on disk.
func (s *TransferService) bundle(ctx context.Context, name string) (domain.Bundle, error) {
	unlock := s.repo.Lock(name)
	defer unlock()

	snapshot, err := s.repo.Get(ctx, name)
	if err != nil {
		return domain.Bundle{}, fmt.Errorf("get snapshot record: %w", err)
	}

	bundle := domain.Bundle{
		Description:  snapshot.Record.SourceActor,
		Manipulation: snapshot.Record.ManipulationString,
	}
	if entry, ok := snapshot.Equipment.Latest(); ok {
		bundle.Equipment = entry.Payload
	}
	if entry, ok := snapshot.Scale.Latest(); ok {
		bundle.Scale = entry.Payload
	}

	blobs := s.repo.Blobs(name)
	byHash := snapshot.Record.FileReplacements.PathsByHash()
	hashes := make([]string, 0, len(byHash))
	for hash := range byHash {
		hashes = append(hashes, hash)
	}
	sort.Strings(hashes)

	for _, hash := range hashes {
		path, err := blobs.Resolve(ctx, hash)
		if err != nil {
			if errors.Is(err, domain.ErrBlobMissing) {
				s.logger.Warn("blob missing, leaving it out of the export", "record", name, "hash", hash)
				continue
			}
			return domain.Bundle{}, fmt.Errorf("resolve blob %s: %w", hash, err)
		}
		bundle.Files = append(bundle.Files, domain.BundleFile{GamePaths: byHash[hash], Hash: hash, Path: path})
	}

	return bundle, nil
}
