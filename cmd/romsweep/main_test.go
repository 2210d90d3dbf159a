package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/backmassage/romsweep/internal/rules"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("rom"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"usage", usageError{errors.New("bad flag")}, 2},
		{"bad format", fmt.Errorf("del-files-with: %w", rules.ErrBadFormat), 2},
		{"missing prerequisite", fmt.Errorf("del-clones: %w", rules.ErrMissingPrerequisite), 2},
		{"not found", rules.ErrNotFound, 2},
		{"other", errors.New("disk on fire"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestRun_DryRun(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "Game (USA).zip"))
	touch(t, filepath.Join(root, "Game (Japan).zip"))
	metrics := filepath.Join(t.TempDir(), "romsweep.prom")

	code := run([]string{"-r", root, "-o", "*(USA)*", "-y", "--color", "never", "-q", "--metrics-file", metrics})
	if code != 0 {
		t.Fatalf("exit code %d, want 0", code)
	}
	if !exists(filepath.Join(root, "Game (Japan).zip")) {
		t.Error("dry run deleted a file")
	}
	b, err := os.ReadFile(metrics)
	if err != nil {
		t.Fatalf("metrics file: %v", err)
	}
	if !strings.Contains(string(b), `rule="del-files-without"`) {
		t.Errorf("metrics file lacks the rule series:\n%s", b)
	}
}

func TestRun_Deletes(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "Game (USA).zip"))
	touch(t, filepath.Join(root, "Game (Japan).zip"))

	if code := run([]string{"--roms-dir", root + "/", "--del-files-with", "*(Japan)*", "--color", "never", "-q"}); code != 0 {
		t.Fatalf("exit code %d, want 0", code)
	}
	if exists(filepath.Join(root, "Game (Japan).zip")) {
		t.Error("file should be deleted")
	}
	if !exists(filepath.Join(root, "Game (USA).zip")) {
		t.Error("file should be kept")
	}
}

func TestRun_ProfileFlagsWin(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "Game (USA).zip"))
	touch(t, filepath.Join(root, "Game (Beta).zip"))
	profile := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(profile, []byte("rules:\n  del-files-with: \"*(USA)*\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	code := run([]string{"-r", root, "--profile", profile, "-w", "*(Beta)*", "--color", "never", "-q"})
	if code != 0 {
		t.Fatalf("exit code %d, want 0", code)
	}
	if !exists(filepath.Join(root, "Game (USA).zip")) || exists(filepath.Join(root, "Game (Beta).zip")) {
		t.Error("command-line list should override the profile")
	}
}

func TestRun_ExitCodes(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "a.zip"))
	ref := t.TempDir()

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"missing roms dir", []string{"-w", "*a*"}, 2},
		{"bad list", []string{"-r", root, "-w", "a"}, 2},
		{"dat rule without dat", []string{"-r", root, "-c"}, 2},
		{"duplicates without ref", []string{"-r", root, "-d", filepath.Join(root, "a.zip"), "-u"}, 2},
		{"overlapping ref", []string{"-r", root, "-e", root}, 2},
		{"unknown flag", []string{"-r", root, "--nope"}, 2},
		{"no rule", []string{"-r", root, "-e", ref}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append(tt.args, "--color", "never", "-q")
			if got := run(args); got != tt.want {
				t.Errorf("run(%v) = %d, want %d", tt.args, got, tt.want)
			}
		})
	}
	if !exists(filepath.Join(root, "a.zip")) {
		t.Error("no test case should delete anything")
	}
}

func TestRun_Check(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "a.zip"))

	if code := run([]string{"check", "-r", root, "--color", "never", "-q"}); code != 0 {
		t.Errorf("check exit code %d, want 0", code)
	}
	if code := run([]string{"check", "-r", root, "-d", filepath.Join(root, "missing.dat"), "--color", "never", "-q"}); code != 2 {
		t.Errorf("check with missing dat: exit code %d, want 2", code)
	}
}
