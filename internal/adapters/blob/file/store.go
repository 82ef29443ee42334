package file

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bnema/appearance-snapshots/internal/domain"
	"github.com/bnema/appearance-snapshots/internal/ports"
	"github.com/cenkalti/backoff/v4"
)

const (
	DirName       = "_files"
	blobExt       = ".dat"
	storeDirMode  = 0o755
	blobFileMode  = 0o644
	tempPattern   = ".blob-*.tmp"
	renameRetries = 3
)

type Store struct {
	root string
	mu   sync.RWMutex
}

var _ ports.BlobStore = (*Store)(nil)

// NewStore returns the blob store rooted at recordDir/_files.
func NewStore(recordDir string) *Store {
	return &Store{root: filepath.Join(filepath.Clean(recordDir), DirName)}
}

func (s *Store) Root() string {
	return s.root
}

// Hash is the digest used for every key: uppercase hex SHA-1.
func Hash(data []byte) string {
	sum := sha1.Sum(data)
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

func (s *Store) Put(ctx context.Context, data []byte) (string, error) {
	return s.PutReader(ctx, bytes.NewReader(data))
}

func (s *Store) PutFile(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("source file %q: %w", path, domain.ErrBlobMissing)
		}
		return "", fmt.Errorf("open source file %q: %w", path, err)
	}
	defer f.Close()

	return s.PutReader(ctx, f)
}

// PutReader streams r into a temp file while hashing, then moves it into place
// unless a blob with the same hash already exists.
func (s *Store) PutReader(ctx context.Context, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.root, storeDirMode); err != nil {
		return "", fmt.Errorf("create blob directory: %w", err)
	}

	tempFile, err := os.CreateTemp(s.root, tempPattern)
	if err != nil {
		return "", fmt.Errorf("create temp blob: %w", err)
	}
	tempName := tempFile.Name()
	defer func() {
		_ = os.Remove(tempName)
	}()

	hasher := sha1.New()
	if _, err := io.Copy(io.MultiWriter(tempFile, hasher), r); err != nil {
		_ = tempFile.Close()
		return "", fmt.Errorf("write temp blob: %w", err)
	}
	if err := tempFile.Chmod(blobFileMode); err != nil {
		_ = tempFile.Close()
		return "", fmt.Errorf("chmod temp blob: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return "", fmt.Errorf("close temp blob: %w", err)
	}

	hash := strings.ToUpper(hex.EncodeToString(hasher.Sum(nil)))
	target := s.pathFor(hash)
	if _, err := os.Stat(target); err == nil {
		return hash, nil
	}

	rename := func() error {
		return os.Rename(tempName, target)
	}
	policy := backoff.WithMaxRetries(backoff.NewConstantBackOff(10*time.Millisecond), renameRetries)
	if err := backoff.Retry(rename, backoff.WithContext(policy, ctx)); err != nil {
		return "", fmt.Errorf("store blob %s: %w", hash, err)
	}

	return hash, nil
}

func (s *Store) Resolve(ctx context.Context, hash string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if !validHash(hash) {
		return "", fmt.Errorf("invalid blob hash %q", hash)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	path := s.pathFor(hash)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("blob %s: %w", hash, domain.ErrBlobMissing)
		}
		return "", fmt.Errorf("stat blob %s: %w", hash, err)
	}

	return path, nil
}

func (s *Store) Has(ctx context.Context, hash string) bool {
	_, err := s.Resolve(ctx, hash)
	return err == nil
}

func (s *Store) pathFor(hash string) string {
	return filepath.Join(s.root, strings.ToUpper(hash)+blobExt)
}

func validHash(hash string) bool {
	if len(hash) != sha1.Size*2 {
		return false
	}
	_, err := hex.DecodeString(hash)
	return err == nil
}
