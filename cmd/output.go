package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bnema/appearance-snapshots/internal/domain"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

func addOutputFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "output", "o", outputText, "output format: text, json or yaml")
}

func validateOutput(format string) error {
	switch format {
	case outputText, outputJSON, outputYAML:
		return nil
	default:
		return fmt.Errorf("unsupported output format %q (want text, json or yaml)", format)
	}
}

// writeStructured encodes value as JSON or YAML. It reports false for text output.
func writeStructured(w io.Writer, format string, value any) (bool, error) {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return true, enc.Encode(value)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(value); err != nil {
			return true, err
		}
		return true, enc.Close()
	default:
		return false, nil
	}
}

type historyEntryView struct {
	Index       int       `json:"index" yaml:"index"`
	Timestamp   time.Time `json:"timestamp" yaml:"timestamp"`
	Description string    `json:"description" yaml:"description"`
	HasTemplate bool      `json:"has_template,omitempty" yaml:"has_template,omitempty"`
}

type recordView struct {
	Name             string             `json:"name" yaml:"name"`
	SourceActor      string             `json:"source_actor" yaml:"source_actor"`
	LastUpdate       time.Time          `json:"last_update" yaml:"last_update"`
	FileReplacements map[string]string  `json:"file_replacements" yaml:"file_replacements"`
	HasManipulations bool               `json:"has_manipulations" yaml:"has_manipulations"`
	Equipment        []historyEntryView `json:"equipment" yaml:"equipment"`
	Scale            []historyEntryView `json:"scale" yaml:"scale"`
}

func toRecordView(snapshot domain.Snapshot) recordView {
	return recordView{
		Name:             snapshot.Name,
		SourceActor:      snapshot.Record.SourceActor,
		LastUpdate:       snapshot.Record.LastUpdate,
		FileReplacements: snapshot.Record.FileReplacements,
		HasManipulations: strings.TrimSpace(snapshot.Record.ManipulationString) != "",
		Equipment:        toHistoryView(snapshot.Equipment),
		Scale:            toHistoryView(snapshot.Scale),
	}
}

func toHistoryView(history domain.History) []historyEntryView {
	entries := make([]historyEntryView, 0, len(history.Entries))
	for i, entry := range history.Entries {
		entries = append(entries, historyEntryView{
			Index:       i,
			Timestamp:   entry.Timestamp,
			Description: entry.Description,
			HasTemplate: entry.Template != "",
		})
	}
	return entries
}
