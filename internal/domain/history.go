package domain

import (
	"fmt"
	"time"
)

type HistoryKind string

const (
	HistoryEquipment HistoryKind = "equipment"
	HistoryScale     HistoryKind = "scale"
)

func (k HistoryKind) Valid() bool {
	switch k {
	case HistoryEquipment, HistoryScale:
		return true
	default:
		return false
	}
}

// HistoryEntry is immutable once written except for Description.
type HistoryEntry struct {
	Timestamp   time.Time
	Description string
	Payload     string
	// Template is only set on scale entries: the portable form of Payload.
	Template string
}

// History is append-only apart from description edits and explicit deletes.
type History struct {
	Entries []HistoryEntry
}

func (h History) Latest() (HistoryEntry, bool) {
	if len(h.Entries) == 0 {
		return HistoryEntry{}, false
	}
	return h.Entries[len(h.Entries)-1], true
}

func (h History) At(index int) (HistoryEntry, error) {
	if index < 0 || index >= len(h.Entries) {
		return HistoryEntry{}, fmt.Errorf("%w: index %d of %d", ErrEntryNotFound, index, len(h.Entries))
	}
	return h.Entries[index], nil
}

// AppendIfChanged appends entry unless its payload is empty or byte-identical to the
// latest entry's payload. Only the latest entry is compared.
func (h *History) AppendIfChanged(entry HistoryEntry) bool {
	if entry.Payload == "" {
		return false
	}
	if latest, ok := h.Latest(); ok && latest.Payload == entry.Payload {
		return false
	}
	h.Entries = append(h.Entries, entry)
	return true
}

func (h *History) SetDescription(index int, description string) error {
	if _, err := h.At(index); err != nil {
		return err
	}
	h.Entries[index].Description = description
	return nil
}

func (h *History) Delete(index int) error {
	if _, err := h.At(index); err != nil {
		return err
	}
	h.Entries = append(h.Entries[:index:index], h.Entries[index+1:]...)
	return nil
}

// History returns the history of the given kind.
func (s *Snapshot) History(kind HistoryKind) (*History, error) {
	switch kind {
	case HistoryEquipment:
		return &s.Equipment, nil
	case HistoryScale:
		return &s.Scale, nil
	default:
		return nil, fmt.Errorf("unsupported history kind %q", kind)
	}
}
