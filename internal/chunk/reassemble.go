package chunk

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/zeebo/xxh3"
	"go.uber.org/zap"
)

const writeBufSize = 4 * 1024 * 1024

// Run discovers chunk sets under root and reassembles each one. An empty
// discovery is a no-op success. Per-set failures are isolated; callers
// decide what to do with Result.Failed().
func (r *Reassembler) Run(root string) (*Result, error) {
	sets, found, err := r.Discover(root)
	if err != nil {
		return nil, err
	}

	res := &Result{ChunksFound: found}
	if found == 0 {
		r.log.Info("no chunk files found", zap.String("root", root))
		return res, nil
	}

	r.log.Info("discovered chunk files",
		zap.String("root", root),
		zap.Int("chunks", found),
		zap.Int("basePaths", len(sets)))

	for _, set := range sets {
		br := r.ReassembleSet(set)
		res.add(br)
		if r.opts.OnSet != nil {
			r.opts.OnSet(br)
		}
	}

	r.log.Info("reassembly finished",
		zap.Int("reassembled", res.Reassembled),
		zap.Int("basePaths", len(sets)),
		zap.Int64("bytesWritten", res.BytesWritten))

	return res, nil
}

// ReassembleSet rebuilds one base path from its parts: validate, then
// concatenate into a temp file in the target directory, check the size
// (and digest sidecar, when present) and rename over the base path. Any
// failure leaves the parts on disk exactly as they were.
func (r *Reassembler) ReassembleSet(set Set) BaseResult {
	br := BaseResult{Base: set.Base, Parts: len(set.Parts)}

	if len(set.Parts) == 0 {
		br.Status = SkippedNoParts
		r.log.Warn("no parts found for base path", zap.String("base", set.Base))
		return br
	}

	// Every part must be present and readable right before we start
	// writing, not just at discovery time.
	for _, p := range set.Parts {
		f, err := r.fs.Open(p.Path)
		if err != nil {
			br.Status = PartMissing
			br.Err = fmt.Errorf("part %q: %w", p.Path, err)
			r.log.Warn("part missing or unreadable, leaving set untouched",
				zap.String("base", set.Base),
				zap.String("part", p.Path),
				zap.Error(err))
			return br
		}
		f.Close()
	}

	totalSize := set.TotalSize()

	tmp, tmpPath, err := r.fs.CreateTempFile(filepath.Dir(set.Base), ".chunkweld-*")
	if err != nil {
		br.Status = ConcatFailed
		br.Err = fmt.Errorf("create temp file for %q: %w", set.Base, err)
		r.log.Error("concatenation failed", zap.String("base", set.Base), zap.Error(err))
		return br
	}
	keepTmp := false
	defer func() {
		if !keepTmp {
			_ = r.fs.Remove(tmpPath)
		}
	}()

	hasher := xxh3.New()
	w := bufio.NewWriterSize(io.MultiWriter(tmp, hasher), writeBufSize)

	for _, p := range set.Parts {
		src, err := r.fs.Open(p.Path)
		if err == nil {
			_, err = io.Copy(w, src)
			src.Close()
		}
		if err != nil {
			tmp.Close()
			br.Status = ConcatFailed
			br.Err = fmt.Errorf("concatenate %q: %w", p.Path, err)
			r.log.Error("concatenation failed",
				zap.String("base", set.Base),
				zap.String("part", p.Path),
				zap.Error(err))
			return br
		}
	}

	if err := w.Flush(); err != nil {
		tmp.Close()
		br.Status = ConcatFailed
		br.Err = fmt.Errorf("flush temp file for %q: %w", set.Base, err)
		r.log.Error("concatenation failed", zap.String("base", set.Base), zap.Error(err))
		return br
	}
	if err := tmp.Close(); err != nil {
		br.Status = ConcatFailed
		br.Err = fmt.Errorf("close temp file for %q: %w", set.Base, err)
		r.log.Error("concatenation failed", zap.String("base", set.Base), zap.Error(err))
		return br
	}

	fi, err := r.fs.Stat(tmpPath)
	if err != nil {
		br.Status = ConcatFailed
		br.Err = fmt.Errorf("stat temp file for %q: %w", set.Base, err)
		r.log.Error("concatenation failed", zap.String("base", set.Base), zap.Error(err))
		return br
	}
	if fi.Size() != totalSize {
		br.Status = SizeMismatch
		br.Err = fmt.Errorf("reassembled %d bytes, parts total %d", fi.Size(), totalSize)
		r.log.Error("size mismatch, discarding output",
			zap.String("base", set.Base),
			zap.Int64("got", fi.Size()),
			zap.Int64("want", totalSize))
		return br
	}

	sumPath := set.Base + SumSuffix
	if r.fs.Exists(sumPath) {
		want, rerr := r.readDigest(sumPath)
		got := digestHex(hasher)
		if rerr != nil {
			r.log.Warn("digest sidecar unreadable, relying on size check only",
				zap.String("base", set.Base), zap.Error(rerr))
		} else if got != want {
			br.Status = DigestMismatch
			br.Err = fmt.Errorf("digest %s, sidecar expects %s", got, want)
			r.log.Error("digest mismatch, discarding output",
				zap.String("base", set.Base),
				zap.String("got", got),
				zap.String("want", want))
			return br
		}
	}

	if err := r.fs.Rename(tmpPath, set.Base); err != nil {
		br.Status = ConcatFailed
		br.Err = fmt.Errorf("move temp file onto %q: %w", set.Base, err)
		r.log.Error("concatenation failed", zap.String("base", set.Base), zap.Error(err))
		return br
	}
	keepTmp = true

	br.Status = Reassembled
	br.Bytes = totalSize

	if !r.opts.KeepParts {
		for _, p := range set.Parts {
			if err := r.fs.Remove(p.Path); err != nil {
				r.log.Warn("could not remove part after reassembly",
					zap.String("part", p.Path), zap.Error(err))
			}
		}
		if r.fs.Exists(sumPath) {
			_ = r.fs.Remove(sumPath)
		}
	}

	r.log.Info("reassembled",
		zap.String("base", set.Base),
		zap.Int("parts", len(set.Parts)),
		zap.Int64("bytes", totalSize))

	return br
}

func (r *Reassembler) readDigest(path string) (string, error) {
	data, err := r.fs.ReadFile(path)
	if err != nil {
		return "", err
	}
	digest := strings.TrimSpace(string(data))
	if digest == "" {
		return "", fmt.Errorf("empty digest sidecar %q", path)
	}
	return digest, nil
}

func digestHex(h *xxh3.Hasher) string {
	sum := h.Sum128().Bytes()
	return hex.EncodeToString(sum[:])
}
