package rules

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilePatternDuals(t *testing.T) {
	files := map[string]string{
		"Game (USA)(v1.0).rom":    "a",
		"Game (Europe)(v2.0).rom": "b",
	}

	t.Run("without deletes on first missing pattern", func(t *testing.T) {
		root := t.TempDir()
		makeTree(t, root, files)
		rc, _ := newTestContext(t, nil, false)
		require.NoError(t, DeleteFilesWithout(rc, root, "*v1.0* *USA*"))
		require.Equal(t, []string{"Game (USA)(v1.0).rom"}, listTree(t, root))
		require.Equal(t, []string{"Game (Europe)(v2.0).rom"}, deletedNames(rc))
	})

	t.Run("with deletes on first present pattern", func(t *testing.T) {
		root := t.TempDir()
		makeTree(t, root, files)
		rc, _ := newTestContext(t, nil, false)
		require.NoError(t, DeleteFilesWith(rc, root, "*v1.0* *USA*"))
		require.Equal(t, []string{"Game (Europe)(v2.0).rom"}, listTree(t, root))
		require.Equal(t, 1, rc.Tally.Deleted())
	})

	t.Run("single pattern lists are exact duals", func(t *testing.T) {
		a, b := t.TempDir(), t.TempDir()
		makeTree(t, a, files)
		makeTree(t, b, files)
		rcA, _ := newTestContext(t, nil, false)
		rcB, _ := newTestContext(t, nil, false)
		require.NoError(t, DeleteFilesWithout(rcA, a, "*usa*"))
		require.NoError(t, DeleteFilesWith(rcB, b, "*usa*"))
		require.Equal(t, []string{"Game (USA)(v1.0).rom"}, listTree(t, a))
		require.Equal(t, []string{"Game (Europe)(v2.0).rom"}, listTree(t, b))
	})

	t.Run("multi pattern without requires every pattern", func(t *testing.T) {
		root := t.TempDir()
		makeTree(t, root, map[string]string{"Game (USA)(v2.0).rom": "c"})
		rc, _ := newTestContext(t, nil, false)
		require.NoError(t, DeleteFilesWithout(rc, root, "*v1.0* *USA*"))
		require.Empty(t, listTree(t, root))
	})
}

func TestFilePatterns_BadList(t *testing.T) {
	for _, raw := range []string{"", "USA", "*USA* Europe", "**"} {
		t.Run(raw, func(t *testing.T) {
			root := t.TempDir()
			makeTree(t, root, map[string]string{"Game (USA).rom": "x"})
			rc, _ := newTestContext(t, nil, false)

			err := DeleteFilesWith(rc, root, raw)
			require.ErrorIs(t, err, ErrBadFormat)
			require.Equal(t, StatusInvalidInput, StatusOf(err))
			err = DeleteFilesWithout(rc, root, raw)
			require.ErrorIs(t, err, ErrBadFormat)
			require.Equal(t, []string{"Game (USA).rom"}, listTree(t, root))
			require.Empty(t, rc.Tally.Rules)
		})
	}
}

func TestFilePatterns_Recursive(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, map[string]string{
		"a/Game (Beta).rom":    "x",
		"b/c/Other (Beta).rom": "y",
		"Keep.rom":             "z",
	})
	rc, log := newTestContext(t, nil, false)
	require.NoError(t, DeleteFilesWith(rc, root, "*beta*"))
	require.Equal(t, []string{"Keep.rom", "a/", "b/", "b/c/"}, listTree(t, root))
	require.Equal(t, 2, rc.Tally.Rules[0].Deleted)
	require.Equal(t, 2, log.count("INFO")-1)
}
