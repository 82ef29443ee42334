package zip

import (
	stdzip "archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bnema/appearance-snapshots/internal/domain"
	"github.com/bnema/appearance-snapshots/internal/ports"
	"github.com/shirou/gopsutil/v3/disk"
)

const (
	backupDirMode = 0o755
	// freeSpaceHeadroom is required on top of the uncompressed size of the inputs.
	freeSpaceHeadroom = 16 << 20
)

// FreeSpaceFunc reports the free bytes of the filesystem holding path.
type FreeSpaceFunc func(path string) (uint64, error)

type Archiver struct {
	freeSpace FreeSpaceFunc
}

var _ ports.Archiver = (*Archiver)(nil)

func NewArchiver() *Archiver {
	return &Archiver{freeSpace: diskFree}
}

// NewArchiverWithFreeSpace swaps the free-space probe, mostly for tests.
func NewArchiverWithFreeSpace(freeSpace FreeSpaceFunc) *Archiver {
	if freeSpace == nil {
		freeSpace = diskFree
	}
	return &Archiver{freeSpace: freeSpace}
}

func diskFree(path string) (uint64, error) {
	usage, err := disk.Usage(path)
	if err != nil {
		return 0, err
	}
	return usage.Free, nil
}

// Archive writes every dir into one zip at dest, each under its base name. Any failure
// removes the partial archive and returns domain.ErrBackupFailed.
func (a *Archiver) Archive(ctx context.Context, dirs []string, dest string) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dest), backupDirMode); err != nil {
		return fmt.Errorf("%w: create backup directory: %w", domain.ErrBackupFailed, err)
	}

	total, err := totalSize(dirs)
	if err != nil {
		return fmt.Errorf("%w: measure backup input: %w", domain.ErrBackupFailed, err)
	}

	free, err := a.freeSpace(filepath.Dir(dest))
	if err != nil {
		return fmt.Errorf("%w: check free space: %w", domain.ErrBackupFailed, err)
	}
	if free < total+freeSpaceHeadroom {
		return fmt.Errorf("%w: need %d bytes, %d free", domain.ErrBackupFailed, total+freeSpaceHeadroom, free)
	}

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: create backup archive: %w", domain.ErrBackupFailed, err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(dest)
		}
	}()

	zw := stdzip.NewWriter(out)
	for _, dir := range dirs {
		if err = addDir(ctx, zw, dir); err != nil {
			_ = zw.Close()
			_ = out.Close()
			return fmt.Errorf("%w: %w", domain.ErrBackupFailed, err)
		}
	}

	if err = zw.Close(); err != nil {
		_ = out.Close()
		return fmt.Errorf("%w: finish backup archive: %w", domain.ErrBackupFailed, err)
	}
	if err = out.Sync(); err != nil {
		_ = out.Close()
		return fmt.Errorf("%w: sync backup archive: %w", domain.ErrBackupFailed, err)
	}
	if err = out.Close(); err != nil {
		return fmt.Errorf("%w: close backup archive: %w", domain.ErrBackupFailed, err)
	}

	return nil
}

func addDir(ctx context.Context, zw *stdzip.Writer, dir string) error {
	base := filepath.Base(dir)
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}

		header, err := stdzip.FileInfoHeader(info)
		if err != nil {
			return fmt.Errorf("zip header for %s: %w", path, err)
		}
		header.Name = filepath.ToSlash(filepath.Join(base, relPath))
		header.Method = stdzip.Deflate

		w, err := zw.CreateHeader(header)
		if err != nil {
			return fmt.Errorf("zip entry for %s: %w", path, err)
		}

		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()

		if _, err := io.Copy(w, f); err != nil {
			return fmt.Errorf("archive %s: %w", path, err)
		}
		return nil
	})
}

func totalSize(dirs []string) (uint64, error) {
	var total uint64
	for _, dir := range dirs {
		err := filepath.Walk(dir, func(_ string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !info.IsDir() {
				total += uint64(info.Size())
			}
			return nil
		})
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return 0, fmt.Errorf("backup input %s: %w", dir, err)
			}
			return 0, err
		}
	}
	return total, nil
}
