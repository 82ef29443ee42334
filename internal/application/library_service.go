package application

import (
	"context"
	"fmt"

	"github.com/bnema/appearance-snapshots/internal/domain"
	"github.com/bnema/appearance-snapshots/internal/ports"
)

type LibraryService struct {
	repo ports.RecordRepository
}

func NewLibraryService(repo ports.RecordRepository) *LibraryService {
	return &LibraryService{repo: repo}
}

func (s *LibraryService) List(ctx context.Context) ([]RecordSummary, error) {
	snapshots, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list snapshot records: %w", err)
	}

	summaries := make([]RecordSummary, 0, len(snapshots))
	for _, snapshot := range snapshots {
		summaries = append(summaries, Summarize(snapshot))
	}
	return summaries, nil
}

func (s *LibraryService) Show(ctx context.Context, name string) (domain.Snapshot, error) {
	snapshot, err := s.repo.Get(ctx, name)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("get snapshot record: %w", err)
	}
	return snapshot, nil
}

// Rename moves the record directory. The source identity is kept, so later captures
// of the same actor still land in the renamed record.
func (s *LibraryService) Rename(ctx context.Context, from, to string) error {
	unlock := s.repo.Lock(from)
	defer unlock()

	if err := s.repo.Rename(ctx, from, to); err != nil {
		return fmt.Errorf("rename snapshot record: %w", err)
	}
	return nil
}

func (s *LibraryService) Delete(ctx context.Context, name string) error {
	unlock := s.repo.Lock(name)
	defer unlock()

	if err := s.repo.Delete(ctx, name); err != nil {
		return fmt.Errorf("delete snapshot record: %w", err)
	}
	return nil
}

func (s *LibraryService) SetEntryDescription(ctx context.Context, name string, kind domain.HistoryKind, index int, description string) error {
	return s.editHistory(ctx, name, kind, func(history *domain.History) error {
		return history.SetDescription(index, description)
	})
}

func (s *LibraryService) DeleteEntry(ctx context.Context, name string, kind domain.HistoryKind, index int) error {
	return s.editHistory(ctx, name, kind, func(history *domain.History) error {
		return history.Delete(index)
	})
}

func (s *LibraryService) editHistory(ctx context.Context, name string, kind domain.HistoryKind, edit func(*domain.History) error) error {
	if !kind.Valid() {
		return fmt.Errorf("unsupported history kind %q", kind)
	}

	unlock := s.repo.Lock(name)
	defer unlock()

	snapshot, err := s.repo.Get(ctx, name)
	if err != nil {
		return fmt.Errorf("get snapshot record: %w", err)
	}

	history, err := snapshot.History(kind)
	if err != nil {
		return err
	}
	if err := edit(history); err != nil {
		return fmt.Errorf("edit %s history: %w", kind, err)
	}

	if err := s.repo.Save(ctx, snapshot); err != nil {
		return fmt.Errorf("save snapshot record: %w", err)
	}
	return nil
}
