// Package sysfs reads small kernel pseudo-files (sysfs, procfs) as optional
// strings and numbers. Every read is best-effort: a missing file or an
// unparsable value is reported as absent, never as an error.
package sysfs

import (
	"io/fs"
	"os"
	"path"
	"strconv"
	"strings"
)

// Reader resolves absolute host paths such as "/sys/class/drm" against fsys.
type Reader struct {
	fsys fs.FS
}

// New wraps fsys. Tests pass a testing/fstest.MapFS laid out like the host.
func New(fsys fs.FS) *Reader {
	return &Reader{fsys: fsys}
}

// Host returns a Reader over the real filesystem rooted at root ("/" when empty).
func Host(root string) *Reader {
	if root == "" {
		root = "/"
	}
	return New(os.DirFS(root))
}

func clean(p string) string {
	p = strings.TrimPrefix(path.Clean("/"+p), "/")
	if p == "" {
		return "."
	}
	return p
}

// String returns the trimmed content of the file at p.
func (r *Reader) String(p string) (string, bool) {
	b, err := fs.ReadFile(r.fsys, clean(p))
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(string(b)), true
}

// Uint parses the file at p as an unsigned decimal.
func (r *Reader) Uint(p string) (uint64, bool) {
	s, ok := r.String(p)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Int parses the file at p as a signed decimal.
func (r *Reader) Int(p string) (int64, bool) {
	s, ok := r.String(p)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Float parses the file at p as a float.
func (r *Reader) Float(p string) (float64, bool) {
	s, ok := r.String(p)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Exists reports whether p resolves to a file or directory.
func (r *Reader) Exists(p string) bool {
	_, err := fs.Stat(r.fsys, clean(p))
	return err == nil
}

// ReadDir lists p sorted by filename, or nil when p cannot be read.
func (r *Reader) ReadDir(p string) []fs.DirEntry {
	entries, err := fs.ReadDir(r.fsys, clean(p))
	if err != nil {
		return nil
	}
	return entries
}
