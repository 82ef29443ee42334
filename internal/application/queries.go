package application

import (
	"time"

	"github.com/bnema/appearance-snapshots/internal/domain"
)

type CaptureResult struct {
	Record            string
	Created           bool
	FilesStored       int
	FilesSkipped      int
	EquipmentAppended bool
	ScaleAppended     bool
}

type ApplyResult struct {
	Session        domain.ActiveSession
	FilesApplied   int
	FilesMissing   int
	EquipmentEntry int
	ScaleEntry     int
	Superseded     bool
}

type MigrationFailure struct {
	Name    string
	MovedTo string
	Err     error
}

type MigrationReport struct {
	Backup     string
	Stamped    []string
	Migrated   []domain.LegacyMigration
	Failed     []MigrationFailure
	Unreadable []domain.MigrationCandidate
}

type MigrationStage string

const (
	MigrationStageScanning   MigrationStage = "scanning"
	MigrationStageBackingUp  MigrationStage = "backing up"
	MigrationStageConverting MigrationStage = "converting"
)

// MigrationProgress is a running tally of one migration pass. Total counts the
// records that need stamping or converting.
type MigrationProgress struct {
	Stage  MigrationStage
	Total  int
	Done   int
	Failed int
	Record string
}

func (r MigrationReport) Changed() bool {
	return len(r.Stamped) > 0 || len(r.Migrated) > 0 || len(r.Failed) > 0
}

type RecordSummary struct {
	Name             string    `json:"name" yaml:"name"`
	SourceActor      string    `json:"source_actor" yaml:"source_actor"`
	LastUpdate       time.Time `json:"last_update" yaml:"last_update"`
	GamePaths        int       `json:"game_paths" yaml:"game_paths"`
	Blobs            int       `json:"blobs" yaml:"blobs"`
	EquipmentEntries int       `json:"equipment_entries" yaml:"equipment_entries"`
	ScaleEntries     int       `json:"scale_entries" yaml:"scale_entries"`
}

func Summarize(snapshot domain.Snapshot) RecordSummary {
	return RecordSummary{
		Name:             snapshot.Name,
		SourceActor:      snapshot.Record.SourceActor,
		LastUpdate:       snapshot.Record.LastUpdate,
		GamePaths:        len(snapshot.Record.FileReplacements),
		Blobs:            len(snapshot.Record.FileReplacements.Hashes()),
		EquipmentEntries: len(snapshot.Equipment.Entries),
		ScaleEntries:     len(snapshot.Scale.Entries),
	}
}
