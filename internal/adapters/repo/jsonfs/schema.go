package jsonfs

import (
	"fmt"
	"time"

	"github.com/bnema/appearance-snapshots/internal/domain"
)

const (
	recordFileName    = "snapshot.json"
	equipmentFileName = "glamourer_history.json"
	scaleFileName     = "customize_history.json"
	MigratedMarker    = ".migrated"
)

type recordSchema struct {
	FormatVersion      int               `json:"FormatVersion,omitempty"`
	SourceActor        string            `json:"SourceActor"`
	LastUpdate         time.Time         `json:"LastUpdate"`
	FileReplacements   map[string]string `json:"FileReplacements"`
	ManipulationString string            `json:"ManipulationString"`
}

func (s recordSchema) validateVersion() error {
	if s.FormatVersion > domain.CurrentFormatVersion {
		return fmt.Errorf("unsupported snapshot format version %d (current %d)", s.FormatVersion, domain.CurrentFormatVersion)
	}

	return nil
}

type equipmentHistorySchema struct {
	Entries []equipmentEntrySchema `json:"Entries"`
}

type equipmentEntrySchema struct {
	Timestamp       time.Time `json:"Timestamp"`
	Description     string    `json:"Description"`
	GlamourerString string    `json:"GlamourerString"`
}

type scaleHistorySchema struct {
	Entries []scaleEntrySchema `json:"Entries"`
}

type scaleEntrySchema struct {
	Timestamp         time.Time `json:"Timestamp"`
	Description       string    `json:"Description"`
	CustomizeData     string    `json:"CustomizeData"`
	CustomizeTemplate string    `json:"CustomizeTemplate"`
}

// legacySchema is the flat pre-versioning layout: files live next to snapshot.json
// and FileReplacements maps each file name to the game paths it served.
type legacySchema struct {
	SourceActor        string              `json:"SourceActor"`
	LastUpdate         *time.Time          `json:"LastUpdate"`
	FileReplacements   map[string][]string `json:"FileReplacements"`
	GlamourerString    string              `json:"GlamourerString"`
	CustomizeData      string              `json:"CustomizeData"`
	ManipulationString string              `json:"ManipulationString"`
}

func toRecordSchema(record domain.Record) recordSchema {
	replacements := make(map[string]string, len(record.FileReplacements))
	for path, hash := range record.FileReplacements {
		replacements[path] = hash
	}

	return recordSchema{
		FormatVersion:      domain.CurrentFormatVersion,
		SourceActor:        record.SourceActor,
		LastUpdate:         record.LastUpdate.UTC(),
		FileReplacements:   replacements,
		ManipulationString: record.ManipulationString,
	}
}

func fromRecordSchema(s recordSchema) domain.Record {
	replacements := domain.NewFileReplacements()
	for path, hash := range s.FileReplacements {
		replacements.Set(path, hash)
	}

	return domain.Record{
		FormatVersion:      s.FormatVersion,
		SourceActor:        s.SourceActor,
		LastUpdate:         s.LastUpdate,
		FileReplacements:   replacements,
		ManipulationString: s.ManipulationString,
	}
}

func toEquipmentSchema(h domain.History) equipmentHistorySchema {
	entries := make([]equipmentEntrySchema, 0, len(h.Entries))
	for _, entry := range h.Entries {
		entries = append(entries, equipmentEntrySchema{
			Timestamp:       entry.Timestamp.UTC(),
			Description:     entry.Description,
			GlamourerString: entry.Payload,
		})
	}
	return equipmentHistorySchema{Entries: entries}
}

func fromEquipmentSchema(s equipmentHistorySchema) domain.History {
	h := domain.History{}
	for _, entry := range s.Entries {
		h.Entries = append(h.Entries, domain.HistoryEntry{
			Timestamp:   entry.Timestamp,
			Description: entry.Description,
			Payload:     entry.GlamourerString,
		})
	}
	return h
}

func toScaleSchema(h domain.History) scaleHistorySchema {
	entries := make([]scaleEntrySchema, 0, len(h.Entries))
	for _, entry := range h.Entries {
		entries = append(entries, scaleEntrySchema{
			Timestamp:         entry.Timestamp.UTC(),
			Description:       entry.Description,
			CustomizeData:     entry.Payload,
			CustomizeTemplate: entry.Template,
		})
	}
	return scaleHistorySchema{Entries: entries}
}

func fromScaleSchema(s scaleHistorySchema) domain.History {
	h := domain.History{}
	for _, entry := range s.Entries {
		h.Entries = append(h.Entries, domain.HistoryEntry{
			Timestamp:   entry.Timestamp,
			Description: entry.Description,
			Payload:     entry.CustomizeData,
			Template:    entry.CustomizeTemplate,
		})
	}
	return h
}
