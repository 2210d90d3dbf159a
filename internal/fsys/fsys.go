// Package fsys is the filesystem collaborator of the cleaning rules:
// recursive listing, size queries and the delete/move side effects.
package fsys

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// File is one regular file found under a root.
type File struct {
	Dir  string // Containing directory (as walked, not cleaned further).
	Name string // Base name with extension.
	Path string // Dir joined with Name.
}

// FS is everything the rules need from the filesystem.
type FS interface {
	// Files lists every regular file under root, sorted by path.
	Files(root string) ([]File, error)
	// Dirs lists every directory under root (root excluded), parents first.
	Dirs(root string) ([]string, error)
	// Size returns the byte size of path.
	Size(path string) (int64, error)
	// Remove deletes a file. A file that is already gone is not an error.
	Remove(path string) error
	// RemoveAll deletes a directory tree.
	RemoveAll(path string) error
	// Rename moves a file.
	Rename(oldPath, newPath string) error
	// Exists reports whether path exists.
	Exists(path string) bool
	// IsEmptyDir reports whether path is a directory with no entries.
	IsEmptyDir(path string) (bool, error)
}

var _ FS = OS{}

// OS implements FS on the host filesystem. Paths relative to the walked
// root matching any Ignore glob (doublestar syntax, slash separated) are
// left out of listings; a matching directory is pruned entirely.
type OS struct {
	Ignore []string
}

// ValidateIgnore checks every glob in patterns.
func ValidateIgnore(patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid ignore pattern %q", p)
		}
	}
	return nil
}

func (o OS) ignored(root, path string) bool {
	if len(o.Ignore) == 0 {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, p := range o.Ignore {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

// Files implements FS.
func (o OS) Files(root string) ([]File, error) {
	var files []File
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if o.ignored(root, path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		files = append(files, File{Dir: filepath.Dir(path), Name: d.Name(), Path: path})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// Dirs implements FS.
func (o OS) Dirs(root string) ([]string, error) {
	var dirs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() || path == root {
			return nil
		}
		if o.ignored(root, path) {
			return filepath.SkipDir
		}
		dirs = append(dirs, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dirs, nil
}

// Size implements FS.
func (OS) Size(path string) (int64, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return fi.Size(), nil
}

// Remove implements FS.
func (OS) Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// RemoveAll implements FS.
func (OS) RemoveAll(path string) error { return os.RemoveAll(path) }

// Rename implements FS.
func (OS) Rename(oldPath, newPath string) error { return os.Rename(oldPath, newPath) }

// Exists implements FS.
func (OS) Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// IsEmptyDir implements FS.
func (OS) IsEmptyDir(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return false, err
	}
	return len(entries) == 0, nil
}

// Count returns the number of files under root, or 0 if it cannot be read.
func Count(fsys FS, root string) int {
	files, err := fsys.Files(root)
	if err != nil {
		return 0
	}
	return len(files)
}
