package chunk_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/avolokita/chunkweld/internal/chunk"
	"github.com/avolokita/chunkweld/internal/fs"
)

func memTree(t *testing.T, files map[string][]byte) *fs.MemoryFS {
	t.Helper()
	m := fs.NewMemoryFS()
	for path, data := range files {
		dir := path
		for i := len(path) - 1; i >= 0; i-- {
			if path[i] == '/' {
				dir = path[:i]
				break
			}
		}
		if dir != path {
			if err := m.MkdirAll(dir, 0o755); err != nil {
				t.Fatal(err)
			}
		}
		if err := m.WriteFile(path, data, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return m
}

func TestDiscoverGroupsByFullPath(t *testing.T) {
	m := memTree(t, map[string][]byte{
		"a/build.data.part0": []byte("AA"),
		"a/build.data.part1": []byte("B"),
		"b/build.data.part0": []byte("CCC"),
	})

	r := chunk.New(m, nil, chunk.Options{})
	sets, found, err := r.Discover(".")
	if err != nil {
		t.Fatal(err)
	}
	if found != 3 {
		t.Fatalf("expected 3 chunk files, got %d", found)
	}

	want := []chunk.Set{
		{Base: "a/build.data", Parts: []chunk.Part{
			{Path: "a/build.data.part0", Index: 0, Size: 2},
			{Path: "a/build.data.part1", Index: 1, Size: 1},
		}},
		{Base: "b/build.data", Parts: []chunk.Part{
			{Path: "b/build.data.part0", Index: 0, Size: 3},
		}},
	}
	if diff := cmp.Diff(want, sets); diff != "" {
		t.Fatalf("unexpected sets (-want +got):\n%s", diff)
	}
}

func TestDiscoverNumericOrdering(t *testing.T) {
	m := memTree(t, map[string][]byte{
		"game.wasm.part2":  []byte("b"),
		"game.wasm.part10": []byte("c"),
		"game.wasm.part1":  []byte("a"),
	})

	r := chunk.New(m, nil, chunk.Options{})
	sets, _, err := r.Discover(".")
	if err != nil {
		t.Fatal(err)
	}
	if len(sets) != 1 {
		t.Fatalf("expected 1 set, got %d", len(sets))
	}

	var order []int
	for _, p := range sets[0].Parts {
		order = append(order, p.Index)
	}
	if diff := cmp.Diff([]int{1, 2, 10}, order); diff != "" {
		t.Fatalf("parts not in numeric order (-want +got):\n%s", diff)
	}
}

func TestDiscoverIgnoresUnrecognizedExtensions(t *testing.T) {
	m := memTree(t, map[string][]byte{
		"notes.txt.part0":   []byte("x"),
		"archive.zip.part1": []byte("y"),
		"game.data.part0":   []byte("z"),
		"game.data":         []byte("whole"),
		"readme.md":         []byte("doc"),
	})

	r := chunk.New(m, nil, chunk.Options{})
	sets, found, err := r.Discover(".")
	if err != nil {
		t.Fatal(err)
	}
	if found != 1 || len(sets) != 1 || sets[0].Base != "game.data" {
		t.Fatalf("expected only game.data chunks, got %d files in %d sets", found, len(sets))
	}
}

func TestDiscoverCustomExtensions(t *testing.T) {
	m := memTree(t, map[string][]byte{
		"archive.bundle.part0": []byte("x"),
		"game.data.part0":      []byte("y"),
	})

	r := chunk.New(m, nil, chunk.Options{Extensions: []string{"bundle"}})
	sets, found, err := r.Discover(".")
	if err != nil {
		t.Fatal(err)
	}
	if found != 1 || sets[0].Base != "archive.bundle" {
		t.Fatalf("expected only the bundle chunk, got %+v", sets)
	}
}

func TestDiscoverEmptyTree(t *testing.T) {
	m := memTree(t, map[string][]byte{
		"index.html": []byte("<html>"),
	})

	r := chunk.New(m, nil, chunk.Options{})
	sets, found, err := r.Discover(".")
	if err != nil {
		t.Fatal(err)
	}
	if found != 0 || len(sets) != 0 {
		t.Fatalf("expected no chunks, got %d in %d sets", found, len(sets))
	}
}
