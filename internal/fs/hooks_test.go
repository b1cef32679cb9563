package fs_test

import (
	"os"

	"github.com/avolokita/chunkweld/internal/fs"
)

// swap helpers: install an override and return a restore func.

func fsOpenSwap(f func(string) (*os.File, error)) func() {
	orig := fs.GetOpen()
	fs.SetOpen(f)
	return func() { fs.SetOpen(orig) }
}

func fsStatSwap(f func(string) (os.FileInfo, error)) func() {
	orig := fs.GetStat()
	fs.SetStat(f)
	return func() { fs.SetStat(orig) }
}

func fsRenameSwap(f func(string, string) error) func() {
	orig := fs.GetRename()
	fs.SetRename(f)
	return func() { fs.SetRename(orig) }
}

func fsRemoveSwap(f func(string) error) func() {
	orig := fs.GetRemove()
	fs.SetRemove(f)
	return func() { fs.SetRemove(orig) }
}

func fsCreateTempSwap(f func(string, string) (*os.File, error)) func() {
	orig := fs.GetCreateTemp()
	fs.SetCreateTemp(f)
	return func() { fs.SetCreateTemp(orig) }
}
