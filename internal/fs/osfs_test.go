package fs_test

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/avolokita/chunkweld/internal/fs"
)

func TestOSFS_Open(t *testing.T) {
	called := false
	fsOverride := fs.NewOSFS()

	restore := fsOpenSwap(func(path string) (*os.File, error) {
		called = true
		if path != "abc.txt" {
			t.Fatalf("expected path abc.txt, got %s", path)
		}
		return nil, errors.New("open-error")
	})
	defer restore()

	_, err := fsOverride.Open("abc.txt")
	if !called {
		t.Fatal("hook not called")
	}
	if err == nil || err.Error() != "open-error" {
		t.Fatalf("expected open-error, got %v", err)
	}
}

func TestOSFS_Stat(t *testing.T) {
	called := false
	fsOverride := fs.NewOSFS()

	restore := fsStatSwap(func(path string) (os.FileInfo, error) {
		called = true
		return nil, errors.New("stat-failed")
	})
	defer restore()

	_, err := fsOverride.Stat("zzz")
	if !called {
		t.Fatal("expected stat hook to be called")
	}
	if err == nil || err.Error() != "stat-failed" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestOSFS_Rename(t *testing.T) {
	called := false
	fsOverride := fs.NewOSFS()

	restore := fsRenameSwap(func(old, new string) error {
		called = true
		if old != "a" || new != "b" {
			t.Fatalf("unexpected rename args")
		}
		return nil
	})
	defer restore()

	if err := fsOverride.Rename("a", "b"); err != nil {
		t.Fatal(err)
	}
	if !called {
		t.Fatal("rename hook not called")
	}
}

func TestOSFS_CreateTempFileFailure(t *testing.T) {
	fsOverride := fs.NewOSFS()

	restore := fsCreateTempSwap(func(dir, pattern string) (*os.File, error) {
		return nil, errors.New("temp-failed")
	})
	defer restore()

	_, _, err := fsOverride.CreateTempFile("dir", ".tmp-*")
	if err == nil || err.Error() != "temp-failed" {
		t.Fatalf("expected temp-failed, got %v", err)
	}
}

func TestOSFS_RealTree(t *testing.T) {
	root := t.TempDir()
	fsys := fs.NewOSFS()

	sub := filepath.Join(root, "sub")
	if err := fsys.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := fsys.WriteFile(filepath.Join(sub, "f.bin"), []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !fsys.Exists(filepath.Join(sub, "f.bin")) || !fsys.IsDir(sub) {
		t.Fatal("expected file and dir to exist")
	}

	var files []string
	err := fsys.WalkDir(root, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || filepath.Base(files[0]) != "f.bin" {
		t.Fatalf("unexpected walk result %v", files)
	}

	tmp, tmpPath, err := fsys.CreateTempFile(sub, ".tmp-*")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tmp.Write([]byte("atomic")); err != nil {
		t.Fatal(err)
	}
	if err := tmp.Close(); err != nil {
		t.Fatal(err)
	}
	final := filepath.Join(sub, "final.bin")
	if err := fsys.Rename(tmpPath, final); err != nil {
		t.Fatal(err)
	}

	data, err := fsys.ReadFile(final)
	if err != nil || string(data) != "atomic" {
		t.Fatalf("unexpected content %q, err %v", data, err)
	}
}
