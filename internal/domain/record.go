package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// CurrentFormatVersion is stamped on every record written by this engine.
// Zero means the record predates versioning.
const CurrentFormatVersion = 1

// Snapshot is one record directory: the record itself plus its two histories.
type Snapshot struct {
	Name      string
	Record    Record
	Equipment History
	Scale     History
}

type Record struct {
	FormatVersion      int
	SourceActor        string
	LastUpdate         time.Time
	FileReplacements   FileReplacements
	ManipulationString string
}

// HasContent reports whether applying the snapshot would change anything.
func (s Snapshot) HasContent() bool {
	if len(s.Record.FileReplacements) > 0 {
		return true
	}
	if _, ok := s.Equipment.Latest(); ok {
		return true
	}
	_, ok := s.Scale.Latest()
	return ok
}

// MatchesSource compares source identities the way lookups do: case-insensitive.
func (r Record) MatchesSource(name string) bool {
	return strings.EqualFold(strings.TrimSpace(r.SourceActor), strings.TrimSpace(name))
}

// FileReplacements maps canonical game paths to content hashes. Several paths may
// share one hash.
type FileReplacements map[string]string

func NewFileReplacements() FileReplacements {
	return FileReplacements{}
}

// CanonicalGamePath lowercases and forward-slashes a game path so that keys stay
// unique regardless of the casing the host reported.
func CanonicalGamePath(path string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(path), "\\", "/"))
}

func (f FileReplacements) Set(gamePath, hash string) {
	key := CanonicalGamePath(gamePath)
	if key == "" {
		return
	}
	f[key] = strings.ToUpper(hash)
}

func (f FileReplacements) Get(gamePath string) (string, bool) {
	hash, ok := f[CanonicalGamePath(gamePath)]
	return hash, ok
}

// Hashes returns the distinct hashes, sorted.
func (f FileReplacements) Hashes() []string {
	seen := make(map[string]struct{}, len(f))
	hashes := make([]string, 0, len(f))
	for _, hash := range f {
		if _, ok := seen[hash]; ok {
			continue
		}
		seen[hash] = struct{}{}
		hashes = append(hashes, hash)
	}
	sort.Strings(hashes)
	return hashes
}

// PathsByHash inverts the map; every slice is sorted.
func (f FileReplacements) PathsByHash() map[string][]string {
	inverted := make(map[string][]string, len(f))
	for path, hash := range f {
		inverted[hash] = append(inverted[hash], path)
	}
	for hash := range inverted {
		sort.Strings(inverted[hash])
	}
	return inverted
}

// RecordNameFor turns an actor display name into a directory name.
func RecordNameFor(displayName string) (string, error) {
	trimmed := strings.TrimSpace(displayName)
	if trimmed == "" {
		return "", fmt.Errorf("record name is required")
	}

	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		if r < 0x20 {
			return '_'
		}
		return r
	}, trimmed)

	if name == "." || name == ".." || strings.HasPrefix(name, "_") {
		return "", fmt.Errorf("invalid record name %q", displayName)
	}

	return name, nil
}
