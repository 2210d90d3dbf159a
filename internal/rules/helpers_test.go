package rules

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/backmassage/romsweep/internal/catalog"
	"github.com/backmassage/romsweep/internal/fsys"
	"github.com/stretchr/testify/require"
)

const testDat = `<?xml version="1.0"?>
<datafile>
	<game name="neogeo" isbios="yes">
		<description>Neo-Geo</description>
		<year>1990</year>
		<manufacturer>SNK</manufacturer>
	</game>
	<game name="mslug" romof="neogeo">
		<description>Metal Slug</description>
		<year>1996</year>
		<manufacturer>Nazca</manufacturer>
	</game>
	<game name="mslugb" cloneof="mslug" romof="mslug">
		<description>Metal Slug (bootleg)</description>
		<year>199?</year>
		<manufacturer>bootleg</manufacturer>
		<comment>hack</comment>
	</game>
	<game name="pacman">
		<description>Pac-Man</description>
		<year>1980</year>
		<manufacturer>Namco</manufacturer>
		<comment></comment>
	</game>
	<game name="circusc">
		<description>Circus Charlie</description>
		<year>1984</year>
		<sample name="boom"/>
	</game>
	<game name="circusc2" cloneof="circusc" sampleof="circusc">
		<year>1984</year>
	</game>
	<game name="kof" romof="pgm">
		<year>1995</year>
	</game>
	<game name="loopa" cloneof="loopb"/>
	<game name="loopb" cloneof="loopa"/>
</datafile>`

// recLogger records every log line with its level.
type recLogger struct{ lines []string }

func (r *recLogger) add(level, f string, a ...interface{}) {
	r.lines = append(r.lines, level+" "+fmt.Sprintf(f, a...))
}
func (r *recLogger) Info(f string, a ...interface{})  { r.add("INFO", f, a...) }
func (r *recLogger) Warn(f string, a ...interface{})  { r.add("WARN", f, a...) }
func (r *recLogger) Error(f string, a ...interface{}) { r.add("ERROR", f, a...) }
func (r *recLogger) Debug(f string, a ...interface{}) { r.add("DEBUG", f, a...) }

func (r *recLogger) count(level string) int {
	n := 0
	for _, l := range r.lines {
		if strings.HasPrefix(l, level+" ") {
			n++
		}
	}
	return n
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Parse(strings.NewReader(testDat))
	require.NoError(t, err)
	return c
}

func newTestContext(t *testing.T, idx catalog.Index, dryRun bool) (*Context, *recLogger) {
	t.Helper()
	log := &recLogger{}
	return NewContext(fsys.OS{}, idx, dryRun, log), log
}

// makeTree creates files under root; values are the file contents.
func makeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

// listTree returns the slash-separated relative paths of every file and
// directory under root.
func listTree(t *testing.T, root string) []string {
	t.Helper()
	var out []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		rel, _ := filepath.Rel(root, path)
		if d.IsDir() {
			rel += "/"
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	require.NoError(t, err)
	sort.Strings(out)
	return out
}

// deletedNames returns the base names of the delete decisions.
func deletedNames(rc *Context) []string {
	var out []string
	for _, d := range rc.Tally.Deletions() {
		out = append(out, filepath.Base(d.Path))
	}
	return out
}
