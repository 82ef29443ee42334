package container

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bnema/appearance-snapshots/internal/domain"
	"github.com/bnema/appearance-snapshots/internal/ports"
	"github.com/valyala/bytebufferpool"
)

const (
	FormatVersion byte = 1

	maxHeaderSize = 16 << 20
)

var magic = []byte("ASNP")

type fileHeader struct {
	GamePaths []string `json:"GamePaths"`
	Hash      string   `json:"Hash"`
	Length    int64    `json:"Length"`
}

type header struct {
	Description  string       `json:"Description"`
	Equipment    string       `json:"Equipment"`
	Scale        string       `json:"Scale"`
	Manipulation string       `json:"Manipulation"`
	Files        []fileHeader `json:"Files"`
}

// Codec reads and writes the portable container: magic, format byte, then a gzip
// stream with a length-prefixed JSON header followed by the raw file bytes in header
// order.
type Codec struct{}

var _ ports.ContainerCodec = Codec{}

func NewCodec() Codec {
	return Codec{}
}

func (Codec) Encode(ctx context.Context, w io.Writer, bundle domain.Bundle) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	h := header{
		Description:  bundle.Description,
		Equipment:    bundle.Equipment,
		Scale:        bundle.Scale,
		Manipulation: bundle.Manipulation,
		Files:        make([]fileHeader, 0, len(bundle.Files)),
	}
	for _, file := range bundle.Files {
		info, err := os.Stat(file.Path)
		if err != nil {
			return fmt.Errorf("stat blob %s: %w", file.Hash, err)
		}
		h.Files = append(h.Files, fileHeader{GamePaths: file.GamePaths, Hash: file.Hash, Length: info.Size()})
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if err := json.NewEncoder(buf).Encode(h); err != nil {
		return fmt.Errorf("encode container header: %w", err)
	}

	if _, err := w.Write(append(append([]byte{}, magic...), FormatVersion)); err != nil {
		return fmt.Errorf("write container preamble: %w", err)
	}

	zw := gzip.NewWriter(w)
	if err := binary.Write(zw, binary.LittleEndian, uint32(buf.Len())); err != nil {
		_ = zw.Close()
		return fmt.Errorf("write container header length: %w", err)
	}
	if _, err := zw.Write(buf.B); err != nil {
		_ = zw.Close()
		return fmt.Errorf("write container header: %w", err)
	}

	for i, file := range bundle.Files {
		if err := ctx.Err(); err != nil {
			_ = zw.Close()
			return err
		}
		if err := copyFile(zw, file.Path, h.Files[i].Length); err != nil {
			_ = zw.Close()
			return fmt.Errorf("write blob %s: %w", file.Hash, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finish container: %w", err)
	}
	return nil
}

func copyFile(w io.Writer, path string, length int64) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.CopyN(w, f, length)
	return err
}

func (Codec) Decode(ctx context.Context, r io.Reader, blobs ports.BlobStore) (domain.Bundle, error) {
	if err := ctx.Err(); err != nil {
		return domain.Bundle{}, err
	}

	preamble := make([]byte, len(magic)+1)
	if _, err := io.ReadFull(r, preamble); err != nil {
		return domain.Bundle{}, fmt.Errorf("%w: read preamble: %w", domain.ErrInvalidContainer, err)
	}
	if !bytes.Equal(preamble[:len(magic)], magic) {
		return domain.Bundle{}, fmt.Errorf("%w: bad magic", domain.ErrInvalidContainer)
	}
	if version := preamble[len(magic)]; version != FormatVersion {
		return domain.Bundle{}, fmt.Errorf("%w: unsupported format version %d", domain.ErrInvalidContainer, version)
	}

	zr, err := gzip.NewReader(r)
	if err != nil {
		return domain.Bundle{}, fmt.Errorf("%w: open compressed stream: %w", domain.ErrInvalidContainer, err)
	}
	defer zr.Close()

	var size uint32
	if err := binary.Read(zr, binary.LittleEndian, &size); err != nil {
		return domain.Bundle{}, fmt.Errorf("%w: read header length: %w", domain.ErrInvalidContainer, err)
	}
	if size == 0 || size > maxHeaderSize {
		return domain.Bundle{}, fmt.Errorf("%w: header length %d out of range", domain.ErrInvalidContainer, size)
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if _, err := io.CopyN(buf, zr, int64(size)); err != nil {
		return domain.Bundle{}, fmt.Errorf("%w: read header: %w", domain.ErrInvalidContainer, err)
	}

	var h header
	if err := json.Unmarshal(buf.B, &h); err != nil {
		return domain.Bundle{}, fmt.Errorf("%w: decode header: %w", domain.ErrInvalidContainer, err)
	}

	bundle := domain.Bundle{
		Description:  h.Description,
		Equipment:    h.Equipment,
		Scale:        h.Scale,
		Manipulation: h.Manipulation,
		Files:        make([]domain.BundleFile, 0, len(h.Files)),
	}
	for _, file := range h.Files {
		if file.Length < 0 {
			return domain.Bundle{}, fmt.Errorf("%w: negative length for %s", domain.ErrInvalidContainer, file.Hash)
		}

		hash, err := blobs.PutReader(ctx, io.LimitReader(zr, file.Length))
		if err != nil {
			return domain.Bundle{}, fmt.Errorf("store embedded file %s: %w", file.Hash, err)
		}
		if file.Hash != "" && !strings.EqualFold(hash, file.Hash) {
			return domain.Bundle{}, fmt.Errorf("%w: content of %s hashes to %s", domain.ErrInvalidContainer, file.Hash, hash)
		}
		bundle.Files = append(bundle.Files, domain.BundleFile{GamePaths: file.GamePaths, Hash: hash})
	}

	return bundle, nil
}
