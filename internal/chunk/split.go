package chunk

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/xxh3"
	"go.uber.org/zap"
	"golang.org/x/exp/mmap"

	"github.com/avolokita/chunkweld/internal/util"
)

const hashWindowSize = 32 << 20 // 32 MiB per hashing read

// SplitFile cuts a file into .part0..partK slices of partSize bytes (the
// last part ragged) and writes a <path>.partsum digest sidecar so a later
// reassembly can verify more than the byte count. The original file is
// removed unless keep is set. Reads go through a memory map; part writes
// run concurrently.
func (r *Reassembler) SplitFile(path string, partSize int64, keep bool) ([]Part, error) {
	if partSize <= 0 {
		return nil, fmt.Errorf("split %q: part size %d must be positive", path, partSize)
	}

	fi, err := r.fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat file %q: %w", path, err)
	}
	fileSize := fi.Size()

	if fileSize == 0 {
		// mmap rejects empty files; a single empty part keeps the
		// round trip total.
		partPath := fmt.Sprintf("%s.part0", path)
		if err := r.fs.WriteFile(partPath, nil, 0o644); err != nil {
			return nil, fmt.Errorf("write part %q: %w", partPath, err)
		}
		if err := r.writeDigestSidecar(path, xxh3.New()); err != nil {
			return nil, err
		}
		if !keep {
			if err := r.fs.Remove(path); err != nil {
				return nil, fmt.Errorf("remove original %q: %w", path, err)
			}
		}
		return []Part{{Path: partPath, Index: 0}}, nil
	}

	reader, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file %q: %w", path, err)
	}
	defer reader.Close()

	// First pass: digest of the whole file, in order, windowed.
	hasher := xxh3.New()
	window := make([]byte, hashWindowSize)
	for off := int64(0); off < fileSize; off += hashWindowSize {
		end := off + hashWindowSize
		if end > fileSize {
			end = fileSize
		}
		buf := window[:end-off]
		if _, err := reader.ReadAt(buf, off); err != nil {
			return nil, fmt.Errorf("read %q at %d: %w", path, off, err)
		}
		hasher.Write(buf)
	}

	// Second pass: cut parts. ReadAt carries no state, so workers can
	// share the one reader.
	var parts []Part
	for off, idx := int64(0), 0; off < fileSize; off, idx = off+partSize, idx+1 {
		end := off + partSize
		if end > fileSize {
			end = fileSize
		}
		parts = append(parts, Part{
			Path:  fmt.Sprintf("%s.part%d", path, idx),
			Index: idx,
			Size:  end - off,
		})
	}

	err = util.Parallel(parts, util.WorkerCount(), func(p Part) error {
		buf := make([]byte, p.Size)
		if _, err := reader.ReadAt(buf, partSize*int64(p.Index)); err != nil {
			return fmt.Errorf("read %q for %q: %w", path, p.Path, err)
		}
		if err := r.fs.WriteFile(p.Path, buf, 0o644); err != nil {
			return fmt.Errorf("write part %q: %w", p.Path, err)
		}
		return nil
	})
	if err != nil {
		for _, p := range parts {
			_ = r.fs.Remove(p.Path)
		}
		return nil, err
	}

	if err := r.writeDigestSidecar(path, hasher); err != nil {
		return nil, err
	}

	if !keep {
		if err := r.fs.Remove(path); err != nil {
			return nil, fmt.Errorf("remove original %q: %w", path, err)
		}
	}

	r.log.Info("split file",
		zap.String("path", path),
		zap.Int("parts", len(parts)),
		zap.Int64("bytes", fileSize))

	return parts, nil
}

func (r *Reassembler) writeDigestSidecar(path string, h *xxh3.Hasher) error {
	sum := h.Sum128().Bytes()
	sidecar := path + SumSuffix
	if err := r.fs.WriteFile(sidecar, []byte(hex.EncodeToString(sum[:])+"\n"), 0o644); err != nil {
		return fmt.Errorf("write digest sidecar %q: %w", sidecar, err)
	}
	return nil
}
