package chunk

import (
	"regexp"
	"strconv"

	"go.uber.org/zap"

	"github.com/avolokita/chunkweld/internal/fs"
)

// SumSuffix marks the optional digest sidecar written by the splitter.
// When <base>.partsum exists, the rebuilt file is verified against it.
const SumSuffix = ".partsum"

// Part is one .part<N> slice of an original file.
type Part struct {
	Path  string
	Index int
	Size  int64
}

// Set holds the ordered parts for one base path.
type Set struct {
	Base  string
	Parts []Part
}

// TotalSize sums the part sizes recorded at discovery.
func (s Set) TotalSize() int64 {
	var total int64
	for _, p := range s.Parts {
		total += p.Size
	}
	return total
}

// BaseStatus is the outcome of one base path's reassembly.
type BaseStatus int

const (
	Reassembled BaseStatus = iota
	SkippedNoParts
	PartMissing
	ConcatFailed
	SizeMismatch
	DigestMismatch
)

func (s BaseStatus) String() string {
	switch s {
	case Reassembled:
		return "reassembled"
	case SkippedNoParts:
		return "skipped-no-parts"
	case PartMissing:
		return "part-missing"
	case ConcatFailed:
		return "concat-failed"
	case SizeMismatch:
		return "size-mismatch"
	case DigestMismatch:
		return "digest-mismatch"
	default:
		return "unknown"
	}
}

// BaseResult describes what happened to one base path.
type BaseResult struct {
	Base   string
	Status BaseStatus
	Parts  int
	Bytes  int64
	Err    error
}

// Result is the fold of all base-path outcomes for a run.
type Result struct {
	ChunksFound  int
	Reassembled  int
	BytesWritten int64
	Sets         []BaseResult
}

func (r *Result) add(br BaseResult) {
	r.Sets = append(r.Sets, br)
	if br.Status == Reassembled {
		r.Reassembled++
		r.BytesWritten += br.Bytes
	}
}

// Failed reports the only hard-failure condition: chunks were discovered
// but not a single base path could be reassembled.
func (r *Result) Failed() bool {
	return r.ChunksFound > 0 && r.Reassembled == 0
}

// Options tune a Reassembler.
type Options struct {
	// Extensions are the original-file extensions recognized as chunked
	// (without leading dot). Empty means the defaults.
	Extensions []string

	// KeepParts leaves part files and digest sidecars in place after a
	// successful reassembly.
	KeepParts bool

	// OnSet, when set, is invoked after each base path is processed.
	OnSet func(BaseResult)
}

// Reassembler rebuilds original files from their .part<N> slices.
type Reassembler struct {
	fs   fs.FS
	log  *zap.Logger
	opts Options
}

func New(fsys fs.FS, log *zap.Logger, opts Options) *Reassembler {
	if log == nil {
		log = zap.NewNop()
	}
	if len(opts.Extensions) == 0 {
		opts.Extensions = []string{"data", "wasm"}
	}
	return &Reassembler{fs: fsys, log: log, opts: opts}
}

var partRe = regexp.MustCompile(`^(.+)\.part([0-9]+)$`)

// ParsePartPath strips a trailing .part<N> suffix. N is decimal with no
// fixed width and no leading-zero requirement; part2 and part10 parse to
// indices 2 and 10.
func ParsePartPath(path string) (base string, index int, ok bool) {
	m := partRe.FindStringSubmatch(path)
	if m == nil {
		return "", 0, false
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return "", 0, false
	}
	return m[1], n, true
}
