package chunk

import (
	"fmt"
	iofs "io/fs"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/avolokita/chunkweld/internal/util"
)

// Discover walks the tree under root and groups .part<N> files by their
// full base path. Two same-named files in different directories form two
// independent sets. Returns the sets sorted by base path together with
// the raw count of chunk files seen.
func (r *Reassembler) Discover(root string) ([]Set, int, error) {
	groups := make(map[string][]Part)
	count := 0

	err := r.fs.WalkDir(root, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		base, idx, ok := ParsePartPath(path)
		if !ok || !r.recognized(base) {
			return nil
		}

		fi, serr := r.fs.Stat(path)
		if serr != nil {
			// Went away mid-walk; validation would reject it anyway.
			r.log.Warn("chunk file vanished during discovery",
				zap.String("path", path), zap.Error(serr))
			return nil
		}

		groups[base] = append(groups[base], Part{Path: path, Index: idx, Size: fi.Size()})
		count++
		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("scan %q for chunk files: %w", root, err)
	}

	sets := make([]Set, 0, len(groups))
	for _, base := range util.SortedKeys(groups) {
		parts := groups[base]
		sort.Slice(parts, func(i, j int) bool {
			if parts[i].Index != parts[j].Index {
				return parts[i].Index < parts[j].Index
			}
			return parts[i].Path < parts[j].Path
		})
		sets = append(sets, Set{Base: base, Parts: parts})
	}

	return sets, count, nil
}

func (r *Reassembler) recognized(base string) bool {
	ext := strings.TrimPrefix(filepath.Ext(base), ".")
	for _, e := range r.opts.Extensions {
		if ext == e {
			return true
		}
	}
	return false
}
