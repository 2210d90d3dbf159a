package fsys

import "path/filepath"

// Logger is the subset of the run logger Flatten reports through.
type Logger interface {
	Info(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(string, ...interface{})
}

// FlattenResult counts what Flatten did (or would do on a dry run).
type FlattenResult struct {
	Moved       int
	Blocked     int
	Failed      int
	DirsRemoved int
}

// Flatten moves every file found in a subdirectory of root up to root,
// unless root already holds a file with that name, then removes the
// subdirectories left empty (deepest first). With dryRun nothing is
// touched and the intended actions are logged instead.
func Flatten(f FS, root string, dryRun bool, log Logger) (FlattenResult, error) {
	var res FlattenResult
	files, err := f.Files(root)
	if err != nil {
		return res, err
	}
	cleanRoot := filepath.Clean(root)
	claimed := make(map[string]bool)
	for _, file := range files {
		if filepath.Clean(file.Dir) == cleanRoot {
			claimed[file.Name] = true
		}
	}

	for _, file := range files {
		if filepath.Clean(file.Dir) == cleanRoot {
			continue
		}
		dest := filepath.Join(root, file.Name)
		if claimed[file.Name] || f.Exists(dest) {
			log.Warn("Will not move up %s, a file with the same name exists in %s", file.Path, root)
			res.Blocked++
			continue
		}
		claimed[file.Name] = true
		if dryRun {
			log.Info("Would move up: %s", file.Path)
			res.Moved++
			continue
		}
		log.Info("Moving up: %s", file.Path)
		if err := f.Rename(file.Path, dest); err != nil {
			log.Error("Cannot move %s: %v", file.Path, err)
			res.Failed++
			continue
		}
		res.Moved++
	}

	dirs, err := f.Dirs(root)
	if err != nil {
		return res, err
	}
	for i := len(dirs) - 1; i >= 0; i-- {
		dir := dirs[i]
		if dryRun {
			log.Info("Would remove directory: %s", dir)
			continue
		}
		empty, err := f.IsEmptyDir(dir)
		if err != nil {
			log.Error("Cannot read directory %s: %v", dir, err)
			res.Failed++
			continue
		}
		if !empty {
			log.Debug("Will not remove directory %s, it is not empty", dir)
			continue
		}
		if err := f.RemoveAll(dir); err != nil {
			log.Error("Cannot remove directory %s: %v", dir, err)
			res.Failed++
			continue
		}
		res.DirsRemoved++
	}
	return res, nil
}
