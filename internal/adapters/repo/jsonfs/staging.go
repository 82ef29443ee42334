package jsonfs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	blobfile "github.com/bnema/appearance-snapshots/internal/adapters/blob/file"
	"github.com/bnema/appearance-snapshots/internal/ports"
)

const stagingPattern = ".staging-*"

// stagedBlobs collects blobs in a hidden directory under the working directory. The
// record directory is only touched by Commit.
type stagedBlobs struct {
	*blobfile.Store
	repo    *Repository
	name    string
	dir     string
	created bool
}

var _ ports.StagedBlobs = (*stagedBlobs)(nil)

func (r *Repository) StageBlobs(name string) (ports.StagedBlobs, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(r.root, recordDirMode); err != nil {
		return nil, fmt.Errorf("create working directory: %w", err)
	}
	dir, err := os.MkdirTemp(r.root, stagingPattern)
	if err != nil {
		return nil, fmt.Errorf("create staging directory: %w", err)
	}

	return &stagedBlobs{
		Store: blobfile.NewStore(dir),
		repo:  r,
		name:  name,
		dir:   dir,
	}, nil
}

// Commit moves the staged blobs into the record directory. A missing record
// directory is created by renaming the staging directory into place.
func (s *stagedBlobs) Commit(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	target := s.repo.Dir(s.name)
	if _, err := os.Stat(target); errors.Is(err, os.ErrNotExist) {
		if err := os.Rename(s.dir, target); err != nil {
			return fmt.Errorf("move staged record into place: %w", err)
		}
		s.created = true
		return nil
	} else if err != nil {
		return fmt.Errorf("stat record %s: %w", s.name, err)
	}

	staged := filepath.Join(s.dir, blobfile.DirName)
	entries, err := os.ReadDir(staged)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("read staged blobs: %w", err)
	}

	blobDir := filepath.Join(target, blobfile.DirName)
	if err := os.MkdirAll(blobDir, recordDirMode); err != nil {
		return fmt.Errorf("create blob directory: %w", err)
	}
	for _, entry := range entries {
		dst := filepath.Join(blobDir, entry.Name())
		if _, err := os.Stat(dst); err == nil {
			continue
		}
		if err := os.Rename(filepath.Join(staged, entry.Name()), dst); err != nil {
			return fmt.Errorf("move staged blob %s: %w", entry.Name(), err)
		}
	}

	return os.RemoveAll(s.dir)
}

// Discard drops the staging directory, and the record directory too when Commit
// created it.
func (s *stagedBlobs) Discard() error {
	errs := []error{}
	if err := os.RemoveAll(s.dir); err != nil {
		errs = append(errs, fmt.Errorf("remove staging directory: %w", err))
	}
	if s.created {
		if err := os.RemoveAll(s.repo.Dir(s.name)); err != nil {
			errs = append(errs, fmt.Errorf("remove record directory: %w", err))
		}
		s.repo.index.Invalidate()
	}

	return errors.Join(errs...)
}
