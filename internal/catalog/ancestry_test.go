package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveRoot(t *testing.T) {
	t.Parallel()

	c := New([]Entry{
		{Name: "bios", IsBIOS: true},
		{Name: "parent", RomOf: "bios"},
		{Name: "clone", CloneOf: "parent", RomOf: "parent"},
		{Name: "plain"},
		{Name: "orphan", CloneOf: "gone"},
		{Name: "sampled", SampleOf: "plain"},
		{Name: "both", CloneOf: "plain", RomOf: "bios"},
	})

	tests := []struct {
		name string
		want Ancestry
	}{
		{"clone", Ancestry{Root: "bios", IsBIOS: true}},
		{"parent", Ancestry{Root: "bios", IsBIOS: true}},
		{"bios", Ancestry{Root: "bios", IsBIOS: true}},
		{"plain", Ancestry{Root: "plain"}},
		{"sampled", Ancestry{Root: "plain"}},
		{"both", Ancestry{Root: "plain"}},
		{"orphan", Ancestry{}},
		{"unknown", Ancestry{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ResolveRoot(c, tc.name)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestResolveRoot_Cycle(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	c := New([]Entry{
		{Name: "a", CloneOf: "b"},
		{Name: "b", RomOf: "c"},
		{Name: "c", CloneOf: "a"},
		{Name: "self", CloneOf: "self"},
		{Name: "into", CloneOf: "a"},
	})

	_, err := ResolveRoot(c, "a")
	require.ErrorIs(err, ErrCycle)
	var cycle *CycleError
	require.True(errors.As(err, &cycle))
	require.Equal([]string{"a", "b", "c", "a"}, cycle.Chain)

	_, err = ResolveRoot(c, "self")
	require.ErrorIs(err, ErrCycle)

	_, err = ResolveRoot(c, "into")
	require.ErrorIs(err, ErrCycle)
	require.Contains(err.Error(), "into -> a -> b -> c -> a")
}
