package jsonfs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bnema/appearance-snapshots/internal/domain"
	"github.com/bnema/appearance-snapshots/internal/ports"
)

var _ ports.MigrationStore = (*Repository)(nil)

type layoutProbe struct {
	FormatVersion    *int                       `json:"FormatVersion"`
	FileReplacements map[string]json.RawMessage `json:"FileReplacements"`
	GlamourerString  *string                    `json:"GlamourerString"`
	CustomizeData    *string                    `json:"CustomizeData"`
}

// Candidates classifies every record directory that has not been marked migrated.
func (r *Repository) Candidates(ctx context.Context) ([]domain.MigrationCandidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	names, err := r.recordNames()
	if err != nil {
		return nil, err
	}

	candidates := make([]domain.MigrationCandidate, 0, len(names))
	for _, name := range names {
		dir := r.Dir(name)
		if _, err := os.Stat(filepath.Join(dir, MigratedMarker)); err == nil {
			continue
		}

		candidate := domain.MigrationCandidate{Name: name, Dir: dir}
		layout, err := detectLayout(filepath.Join(dir, recordFileName))
		if err != nil {
			candidate.Err = err
		}
		candidate.Layout = layout
		candidates = append(candidates, candidate)
	}

	return candidates, nil
}

func detectLayout(path string) (domain.Layout, error) {
	var probe layoutProbe
	if _, err := readJSON(path, &probe); err != nil {
		return domain.LayoutCurrent, err
	}

	return probe.layout(), nil
}

func layoutOf(data []byte) (domain.Layout, error) {
	var probe layoutProbe
	if err := json.Unmarshal(data, &probe); err != nil {
		return domain.LayoutCurrent, err
	}

	return probe.layout(), nil
}

func (probe layoutProbe) layout() domain.Layout {
	for _, raw := range probe.FileReplacements {
		if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && trimmed[0] == '[' {
			return domain.LayoutLegacy
		}
	}
	if probe.GlamourerString != nil || probe.CustomizeData != nil {
		return domain.LayoutLegacy
	}
	if probe.FormatVersion == nil || *probe.FormatVersion == 0 {
		return domain.LayoutUnversioned
	}

	return domain.LayoutCurrent
}

// StampVersion upgrades an unversioned record in place. Nothing else changes.
func (r *Repository) StampVersion(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := filepath.Join(r.Dir(name), recordFileName)
	var record recordSchema
	found, err := readJSON(path, &record)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: %s", domain.ErrRecordNotFound, name)
	}

	record.FormatVersion = domain.CurrentFormatVersion
	if err := writeJSON(path, record); err != nil {
		return err
	}

	r.index.Invalidate()
	return nil
}

// MigrateLegacy rewrites a flat legacy directory into the current layout: legacy files
// are hashed into the blob store, the single state strings become one-entry
// histories, the flat files are removed and the migrated marker is written.
func (r *Repository) MigrateLegacy(ctx context.Context, name string, now time.Time) (domain.LegacyMigration, error) {
	if err := ctx.Err(); err != nil {
		return domain.LegacyMigration{}, err
	}

	dir := r.Dir(name)
	var legacy legacySchema
	found, err := readJSON(filepath.Join(dir, recordFileName), &legacy)
	if err != nil {
		return domain.LegacyMigration{}, err
	}
	if !found {
		return domain.LegacyMigration{}, fmt.Errorf("%w: %s", domain.ErrRecordNotFound, name)
	}

	result := domain.LegacyMigration{Name: name}
	blobs := r.Blobs(name)
	replacements := domain.NewFileReplacements()
	migratedFiles := make([]string, 0, len(legacy.FileReplacements))

	fileNames := make([]string, 0, len(legacy.FileReplacements))
	for fileName := range legacy.FileReplacements {
		fileNames = append(fileNames, fileName)
	}
	sort.Strings(fileNames)

	for _, fileName := range fileNames {
		source, err := legacyFilePath(dir, fileName)
		if err != nil {
			return result, err
		}

		hash, err := blobs.PutFile(ctx, source)
		if err != nil {
			if errors.Is(err, domain.ErrBlobMissing) {
				r.logger.Warn("legacy file missing, skipping", "record", name, "file", fileName)
				result.FilesMissing++
				continue
			}
			return result, fmt.Errorf("hash legacy file %s: %w", fileName, err)
		}

		for _, gamePath := range legacy.FileReplacements[fileName] {
			replacements.Set(gamePath, hash)
			result.GamePaths++
		}
		migratedFiles = append(migratedFiles, source)
		result.FilesHashed++
	}

	stamp := now
	if legacy.LastUpdate != nil && !legacy.LastUpdate.IsZero() {
		stamp = legacy.LastUpdate.UTC()
	}

	snapshot := domain.Snapshot{
		Name: name,
		Record: domain.Record{
			FormatVersion:      domain.CurrentFormatVersion,
			SourceActor:        legacy.SourceActor,
			LastUpdate:         stamp,
			FileReplacements:   replacements,
			ManipulationString: legacy.ManipulationString,
		},
	}
	if snapshot.Record.SourceActor == "" {
		snapshot.Record.SourceActor = name
	}
	snapshot.Equipment.AppendIfChanged(domain.HistoryEntry{
		Timestamp:   stamp,
		Description: domain.MigratedEntryDescription,
		Payload:     legacy.GlamourerString,
	})
	if legacy.CustomizeData != "" {
		template := ""
		if profile, err := domain.DecodeScaleProfile(legacy.CustomizeData); err == nil {
			template, _ = domain.ScaleTemplate(profile)
		}
		snapshot.Scale.AppendIfChanged(domain.HistoryEntry{
			Timestamp:   stamp,
			Description: domain.MigratedEntryDescription,
			Payload:     legacy.CustomizeData,
			Template:    template,
		})
	}

	if err := r.Save(ctx, snapshot); err != nil {
		return result, fmt.Errorf("write migrated record: %w", err)
	}

	for _, source := range migratedFiles {
		if err := os.Remove(source); err != nil && !errors.Is(err, os.ErrNotExist) {
			return result, fmt.Errorf("remove legacy file: %w", err)
		}
	}

	if err := os.WriteFile(filepath.Join(dir, MigratedMarker), nil, recordFileMode); err != nil {
		return result, fmt.Errorf("write migrated marker: %w", err)
	}

	return result, nil
}

// MarkFailed moves a half-converted directory aside so it is never read as a record.
func (r *Repository) MarkFailed(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	target := name + FailedSuffix
	if _, err := os.Stat(r.Dir(target)); err == nil {
		target = fmt.Sprintf("%s-%s%s", name, r.clock.Now().UTC().Format("20060102-150405"), FailedSuffix)
	}

	if err := os.Rename(r.Dir(name), r.Dir(target)); err != nil {
		return "", fmt.Errorf("rename failed record directory: %w", err)
	}

	r.index.Invalidate()
	return target, nil
}

func legacyFilePath(dir, fileName string) (string, error) {
	cleaned := filepath.Clean(strings.ReplaceAll(fileName, "\\", "/"))
	if cleaned == "." || filepath.IsAbs(cleaned) || strings.HasPrefix(cleaned, "..") {
		return "", fmt.Errorf("invalid legacy file name %q", fileName)
	}
	return filepath.Join(dir, cleaned), nil
}
