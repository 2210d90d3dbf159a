package rules

import (
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/backmassage/romsweep/internal/catalog"
	"github.com/stretchr/testify/require"
)

func TestBIOSExemptions(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, map[string]string{
		"neogeo.zip":    "b",
		"sub/neogeo.7z": "b",
		"mslug.zip":     "m",
		"unknown.zip":   "u",
	})
	rc, log := newTestContext(t, testCatalog(t), false)
	got, err := BIOSExemptions(rc, root)
	require.NoError(t, err)
	require.Equal(t, []string{"neogeo"}, got)
	require.Contains(t, log.lines, "DEBUG Found BIOS ROM: neogeo")
}

func TestCatalogRules_MissingPrerequisite(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, map[string]string{"mslugb.zip": "x"})
	ref := t.TempDir()

	runs := map[string]func(rc *Context) error{
		"duplicates":  func(rc *Context) error { return DeleteDuplicates(rc, root, ref) },
		"clones":      func(rc *Context) error { return DeleteClones(rc, root) },
		"samples":     func(rc *Context) error { return DeleteWithSamples(rc, root) },
		"older":       func(rc *Context) error { return DeleteOlderThan(rc, root, 2000) },
		"description": func(rc *Context) error { return DeleteIfFieldHas(rc, root, catalog.FieldDescription, "*slug*") },
		"bios":        func(rc *Context) error { return DeleteByBIOS(rc, root, "neogeo", true) },
	}
	for name, run := range runs {
		t.Run(name, func(t *testing.T) {
			rc, _ := newTestContext(t, nil, false)
			err := run(rc)
			require.ErrorIs(t, err, ErrMissingPrerequisite)
			require.Equal(t, StatusMissingPrerequisite, StatusOf(err))
			require.Equal(t, 2, StatusOf(err).ExitCode())
			require.Equal(t, []string{"mslugb.zip"}, listTree(t, root))
		})
	}
}

func TestDeleteDuplicates(t *testing.T) {
	root := t.TempDir()
	ref := t.TempDir()
	makeTree(t, root, map[string]string{
		"neogeo.zip": "bios",
		"mslug.zip":  "same",
		"pacman.zip": "short",
		"kof.zip":    "only here",
	})
	makeTree(t, ref, map[string]string{
		"neogeo.zip":    "bios",
		"sub/mslug.zip": "same",
		"pacman.zip":    "longer content",
	})
	rc, log := newTestContext(t, testCatalog(t), false)
	require.NoError(t, DeleteDuplicates(rc, root, ref))

	require.Equal(t, []string{"kof.zip", "neogeo.zip", "pacman.zip"}, listTree(t, root))
	rt := rc.Tally.Rules[0]
	require.Equal(t, "del-duplicates", rt.Rule)
	require.Equal(t, 1, rt.Deleted)
	require.Equal(t, 1, rt.Kept)
	require.EqualValues(t, 4, rt.Bytes)
	require.Contains(t, log.lines, "DEBUG Keeping BIOS: "+filepath.Join(root, "neogeo.zip"))
	require.Contains(t, log.lines,
		"INFO Deleting: "+filepath.Join(root, "mslug.zip")+" (duplicate of "+filepath.Join(ref, "sub", "mslug.zip")+")")
}

func TestDeleteDuplicates_Reference(t *testing.T) {
	root := t.TempDir()
	rc, _ := newTestContext(t, testCatalog(t), false)

	err := DeleteDuplicates(rc, root, "")
	require.ErrorIs(t, err, ErrMissingPrerequisite)

	err = DeleteDuplicates(rc, root, filepath.Join(root, "missing"))
	require.ErrorIs(t, err, ErrNotFound)
	require.Equal(t, StatusMissingPrerequisite, StatusOf(err))
}

func TestDeleteClones(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, map[string]string{
		"neogeo.zip":   "b",
		"mslug.zip":    "m",
		"mslugb.zip":   "c",
		"kof.zip":      "k",
		"circusc2.zip": "s",
		"pacman.zip":   "p",
		"other.zip":    "o",
	})
	rc, _ := newTestContext(t, testCatalog(t), false)
	require.NoError(t, DeleteClones(rc, root))
	require.Equal(t, []string{"mslug.zip", "neogeo.zip", "other.zip", "pacman.zip"}, listTree(t, root))
}

func TestDeleteClones_RomofWithoutBIOSPresent(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, map[string]string{"mslug.zip": "m"})
	rc, _ := newTestContext(t, testCatalog(t), false)
	require.NoError(t, DeleteClones(rc, root))
	require.Empty(t, listTree(t, root))
	require.Equal(t, "romof neogeo", rc.Tally.Decisions[0].Reason)
}

func TestDeleteWithSamples(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, map[string]string{
		"circusc.zip":           "c",
		"pacman.zip":            "p",
		"samples/circusc/a.wav": "w",
		"arcade/samples/b.wav":  "w",
	})
	rc, _ := newTestContext(t, testCatalog(t), false)
	require.NoError(t, DeleteWithSamples(rc, root))
	require.Equal(t, []string{"arcade/", "pacman.zip"}, listTree(t, root))
	rt := rc.Tally.Rules[0]
	require.Equal(t, 1, rt.Deleted)
	require.Equal(t, 2, rt.DirsRemoved)
}

func TestDeleteOlderThan(t *testing.T) {
	files := map[string]string{
		"neogeo.zip": "b", // 1990, BIOS
		"mslug.zip":  "m", // 1996
		"mslugb.zip": "c", // 199?
		"pacman.zip": "p", // 1980
		"other.zip":  "o", // not catalogued
	}
	tests := []struct {
		year int
		want []string
	}{
		{1995, []string{"mslug.zip", "neogeo.zip", "other.zip"}},
		{1985, []string{"mslug.zip", "neogeo.zip", "other.zip"}},
		{1970, []string{"mslug.zip", "neogeo.zip", "other.zip", "pacman.zip"}},
	}
	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.year), func(t *testing.T) {
			root := t.TempDir()
			makeTree(t, root, files)
			rc, _ := newTestContext(t, testCatalog(t), false)
			require.NoError(t, DeleteOlderThan(rc, root, tt.year))
			require.Equal(t, tt.want, listTree(t, root))
		})
	}
}

func TestDeleteOlderThan_YearThreshold(t *testing.T) {
	dat := `<datafile>
		<game name="g1990"><year>1990</year></game>
		<game name="g198x"><year>198?</year></game>
		<game name="bios"  isbios="yes"><year>198?</year></game>
	</datafile>`
	idx, err := catalog.Parse(strings.NewReader(dat))
	require.NoError(t, err)

	for _, tt := range []struct {
		year int
		want []string
	}{
		{1995, []string{"bios.zip"}},
		{1985, []string{"bios.zip", "g1990.zip"}},
	} {
		root := t.TempDir()
		makeTree(t, root, map[string]string{"g1990.zip": "a", "g198x.zip": "b", "bios.zip": "c"})
		rc, _ := newTestContext(t, idx, false)
		require.NoError(t, DeleteOlderThan(rc, root, tt.year))
		require.Equal(t, tt.want, listTree(t, root), "threshold %d", tt.year)
		require.Equal(t, 1, rc.Tally.Rules[0].Kept)
	}
}

func TestDeleteOlderThan_BadYear(t *testing.T) {
	rc, _ := newTestContext(t, testCatalog(t), false)
	err := DeleteOlderThan(rc, t.TempDir(), 0)
	require.ErrorIs(t, err, ErrBadFormat)
}

func TestDeleteIfFieldHas(t *testing.T) {
	files := map[string]string{
		"neogeo.zip": "b",
		"mslug.zip":  "m",
		"mslugb.zip": "c",
		"pacman.zip": "p",
		"other.zip":  "o",
	}
	tests := []struct {
		field catalog.Field
		raw   string
		want  []string
	}{
		{catalog.FieldDescription, "*BOOTLEG*", []string{"mslug.zip", "neogeo.zip", "other.zip", "pacman.zip"}},
		{catalog.FieldManufacturer, "*snk* *namco*", []string{"mslug.zip", "mslugb.zip", "other.zip"}},
		// pacman's comment is present but empty: kept.
		{catalog.FieldComment, "*a*", []string{"mslug.zip", "neogeo.zip", "other.zip", "pacman.zip"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.field), func(t *testing.T) {
			root := t.TempDir()
			makeTree(t, root, files)
			rc, _ := newTestContext(t, testCatalog(t), false)
			require.NoError(t, DeleteIfFieldHas(rc, root, tt.field, tt.raw))
			require.Equal(t, tt.want, listTree(t, root))
			require.Equal(t, "del-if-"+string(tt.field)+"-has", rc.Tally.Rules[0].Rule)
		})
	}
}

func TestDeleteIfFieldHas_BadInput(t *testing.T) {
	rc, _ := newTestContext(t, testCatalog(t), false)
	require.ErrorIs(t, DeleteIfFieldHas(rc, t.TempDir(), catalog.FieldYear, "*1990*"), ErrBadFormat)
	require.ErrorIs(t, DeleteIfFieldHas(rc, t.TempDir(), catalog.FieldComment, "hack"), ErrBadFormat)
}

func TestDeleteByBIOS(t *testing.T) {
	files := map[string]string{
		"neogeo.zip": "b",
		"mslug.zip":  "m",
		"mslugb.zip": "c",
		"pacman.zip": "p",
		"kof.zip":    "k",
		"other.zip":  "o",
	}
	tests := []struct {
		name          string
		raw           string
		deleteOnMatch bool
		want          []string
	}{
		{"is listed", "NeoGeo", true, []string{"kof.zip", "other.zip", "pacman.zip"}},
		{"is not listed", "pgm", true, []string{"kof.zip", "mslug.zip", "mslugb.zip", "neogeo.zip", "other.zip", "pacman.zip"}},
		{"isnt listed", "pgm cps1", false, []string{"kof.zip", "other.zip", "pacman.zip"}},
		{"isnt but listed", "neogeo", false, []string{"kof.zip", "mslug.zip", "mslugb.zip", "neogeo.zip", "other.zip", "pacman.zip"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			makeTree(t, root, files)
			rc, _ := newTestContext(t, testCatalog(t), false)
			require.NoError(t, DeleteByBIOS(rc, root, tt.raw, tt.deleteOnMatch))
			require.Equal(t, tt.want, listTree(t, root))
		})
	}
}

func TestDeleteByBIOS_CycleKept(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, map[string]string{"loopa.zip": "a", "loopb.zip": "b"})
	rc, log := newTestContext(t, testCatalog(t), false)
	require.NoError(t, DeleteByBIOS(rc, root, "neogeo", false))
	require.Equal(t, []string{"loopa.zip", "loopb.zip"}, listTree(t, root))
	require.Equal(t, 2, rc.Tally.Rules[0].Kept)
	require.Equal(t, 2, log.count("WARN"))
}

func TestDeleteByBIOS_BadList(t *testing.T) {
	rc, _ := newTestContext(t, testCatalog(t), false)
	err := DeleteByBIOS(rc, t.TempDir(), " ,; ", true)
	require.ErrorIs(t, err, ErrBadFormat)
	require.Equal(t, StatusInvalidInput, StatusOf(err))
}
