package modpack

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/bnema/appearance-snapshots/internal/domain"
	"github.com/bnema/appearance-snapshots/internal/logging"
	"github.com/bnema/appearance-snapshots/internal/ports"
	"github.com/charmbracelet/log"
)

const (
	packFileVersion     = 3
	manipulationVersion = 0
	filesDir            = "files"
	defaultAuthor       = "asnap"
	defaultModVersion   = "1.0"
)

type meta struct {
	FileVersion int      `json:"FileVersion"`
	Name        string   `json:"Name"`
	Author      string   `json:"Author"`
	Description string   `json:"Description"`
	Version     string   `json:"Version"`
	Website     string   `json:"Website"`
	ModTags     []string `json:"ModTags"`
}

type defaultMod struct {
	Name          string            `json:"Name"`
	Priority      int               `json:"Priority"`
	Files         map[string]string `json:"Files"`
	FileSwaps     map[string]string `json:"FileSwaps"`
	Manipulations []json.RawMessage `json:"Manipulations"`
}

// Writer produces a zip mod package: meta.json, default_mod.json and one file per
// distinct blob and extension under files/.
type Writer struct {
	logger *log.Logger
}

var _ ports.ModPackWriter = (*Writer)(nil)

func NewWriter(logger *log.Logger) *Writer {
	return &Writer{logger: logging.OrDiscard(logger)}
}

func (w *Writer) Write(ctx context.Context, out io.Writer, name string, bundle domain.Bundle) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	mod := defaultMod{
		Files:         map[string]string{},
		FileSwaps:     map[string]string{},
		Manipulations: w.manipulations(name, bundle.Manipulation),
	}

	type packed struct {
		source string
		target string
	}
	var entries []packed
	seen := map[string]struct{}{}
	for _, file := range bundle.Files {
		for _, gamePath := range file.GamePaths {
			target := path.Join(filesDir, strings.ToUpper(file.Hash)+path.Ext(gamePath))
			mod.Files[gamePath] = target
			if _, ok := seen[target]; ok {
				continue
			}
			seen[target] = struct{}{}
			entries = append(entries, packed{source: file.Path, target: target})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].target < entries[j].target })

	zw := zip.NewWriter(out)
	if err := writeJSON(zw, "meta.json", meta{
		FileVersion: packFileVersion,
		Name:        name,
		Author:      defaultAuthor,
		Description: bundle.Description,
		Version:     defaultModVersion,
		ModTags:     []string{},
	}); err != nil {
		_ = zw.Close()
		return err
	}
	if err := writeJSON(zw, "default_mod.json", mod); err != nil {
		_ = zw.Close()
		return err
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			_ = zw.Close()
			return err
		}
		if err := addFile(zw, entry.source, entry.target); err != nil {
			_ = zw.Close()
			return fmt.Errorf("add %s: %w", entry.target, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finish mod package: %w", err)
	}
	return nil
}

// manipulations decodes base64(gzip(version byte + JSON array)). Anything else is
// exported as an empty list.
func (w *Writer) manipulations(name, blob string) []json.RawMessage {
	if blob == "" {
		return []json.RawMessage{}
	}

	decoded, err := DecodeManipulations(blob)
	if err != nil {
		w.logger.Warn("cannot decode meta manipulations, exporting none", "record", name, "err", err)
		return []json.RawMessage{}
	}
	return decoded
}

func DecodeManipulations(blob string) ([]json.RawMessage, error) {
	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", err)
	}

	zr, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("open gzip: %w", err)
	}
	defer zr.Close()

	data, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("read gzip: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty manipulation data")
	}
	if data[0] != manipulationVersion {
		return nil, fmt.Errorf("unsupported manipulation version %d", data[0])
	}

	var manipulations []json.RawMessage
	if err := json.Unmarshal(data[1:], &manipulations); err != nil {
		return nil, fmt.Errorf("decode manipulation list: %w", err)
	}
	if manipulations == nil {
		manipulations = []json.RawMessage{}
	}
	return manipulations, nil
}

// EncodeManipulations is the inverse of DecodeManipulations.
func EncodeManipulations(manipulations []json.RawMessage) (string, error) {
	payload, err := json.Marshal(manipulations)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(append([]byte{manipulationVersion}, payload...)); err != nil {
		_ = zw.Close()
		return "", err
	}
	if err := zw.Close(); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func writeJSON(zw *zip.Writer, name string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}

	entry, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	if _, err := entry.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func addFile(zw *zip.Writer, source, target string) error {
	f, err := os.Open(source)
	if err != nil {
		return err
	}
	defer f.Close()

	entry, err := zw.CreateHeader(&zip.FileHeader{Name: target, Method: zip.Deflate})
	if err != nil {
		return err
	}
	_, err = io.Copy(entry, f)
	return err
}
