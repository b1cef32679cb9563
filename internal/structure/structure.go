// Package structure implements the advisory completeness scan that runs
// after reassembly. It classifies the tree into the file categories a
// deployable WebGL build is expected to carry and reports how many are
// present. It never fails a run.
package structure

import (
	iofs "io/fs"
	"path/filepath"
	"strings"

	"github.com/avolokita/chunkweld/internal/fs"
)

const DefaultThreshold = 3

// CategoryNames in report order.
var CategoryNames = []string{"data", "wasm", "framework", "loader", "index"}

type Category struct {
	Name  string
	Count int
}

func (c Category) Present() bool { return c.Count > 0 }

type Options struct {
	// Threshold is how many categories must be present for the tree to
	// be considered structurally complete. Zero means the default.
	Threshold int
}

type Summary struct {
	Categories []Category
	Present    int
	Threshold  int
	Complete   bool
}

// Check walks the tree and counts files per category. index.html only
// counts at the tree root.
func Check(fsys fs.FS, root string, opts Options) (*Summary, error) {
	threshold := opts.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	counts := make(map[string]int, len(CategoryNames))
	cleanRoot := filepath.Clean(root)

	err := fsys.WalkDir(root, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		name := d.Name()
		switch {
		case strings.HasSuffix(name, ".framework.js"):
			counts["framework"]++
		case strings.HasSuffix(name, ".loader.js"):
			counts["loader"]++
		case strings.HasSuffix(name, ".data"):
			counts["data"]++
		case strings.HasSuffix(name, ".wasm"):
			counts["wasm"]++
		case name == "index.html" && filepath.Clean(filepath.Dir(path)) == cleanRoot:
			counts["index"]++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sum := &Summary{Threshold: threshold}
	for _, name := range CategoryNames {
		c := Category{Name: name, Count: counts[name]}
		sum.Categories = append(sum.Categories, c)
		if c.Present() {
			sum.Present++
		}
	}
	sum.Complete = sum.Present >= threshold

	return sum, nil
}
