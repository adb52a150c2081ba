package merge

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xxxsen/romset/internal/dat"
)

func rom(name string, size int64, fp string) dat.Rom {
	return dat.Rom{Name: name, Size: size, SHA1: fp}
}

func TestTransformSplitDiff(t *testing.T) {
	d := &dat.Dat{Games: []dat.Game{
		{Name: "parent", Roms: []dat.Rom{rom("a", 1, "H1"), rom("b", 1, "H2")}},
		{Name: "clone", CloneOf: "parent", Roms: []dat.Rom{
			rom("a", 1, "H1"), rom("b", 1, "H3"), rom("c", 1, "H4"),
		}},
	}}

	out := Transform(context.Background(), d, Split)
	clone := out.FindGame("clone")
	assert.NotNil(t, clone)
	assert.Len(t, clone.Roms, 2)
	names := []string{clone.Roms[0].Name, clone.Roms[1].Name}
	assert.ElementsMatch(t, []string{"b", "c"}, names)
}

func TestTransformMergedCollapse(t *testing.T) {
	d := &dat.Dat{Games: []dat.Game{
		{Name: "P", Roms: []dat.Rom{rom("a", 1, "H1")}},
		{Name: "C1", CloneOf: "P", Roms: []dat.Rom{rom("x", 1, "H2")}},
		{Name: "C2", CloneOf: "P", Roms: []dat.Rom{rom("x", 1, "H2"), rom("y", 1, "H3")}},
	}}

	out := Transform(context.Background(), d, Merged)
	assert.Len(t, out.Games, 1)
	merged := out.Games[0]
	assert.Equal(t, "P", merged.Name)

	var names []string
	for _, r := range merged.Roms {
		names = append(names, r.Name)
	}
	assert.ElementsMatch(t, []string{`C1\x`, `C2\x`, `C2\y`, "a"}, names)
}

func TestTransformFullNonMergedDeviceExpansion(t *testing.T) {
	d := &dat.Dat{Games: []dat.Game{
		{Name: "D", Roms: []dat.Rom{rom("d1", 1, "Hd")}},
		{Name: "M", Roms: []dat.Rom{rom("m1", 1, "Hm")}, DeviceRefs: []dat.DeviceRef{{Name: "D"}}},
	}}

	out := Transform(context.Background(), d, FullNonMerged)
	m := out.FindGame("M")
	assert.NotNil(t, m)
	assert.Len(t, m.Roms, 2)
	assert.Equal(t, "d1", m.Roms[0].Name)
	assert.Equal(t, "m1", m.Roms[1].Name)
}

func TestTransformNoneConservesGames(t *testing.T) {
	d := &dat.Dat{Games: []dat.Game{
		{Name: "parent", Roms: []dat.Rom{rom("b", 1, "H2"), rom("a", 1, "H1"), rom("a", 1, "H1")}},
		{Name: "clone", CloneOf: "parent", Roms: []dat.Rom{rom("a", 1, "H1")}},
	}}

	out := Transform(context.Background(), d, None)
	assert.Len(t, out.Games, 2)

	p := out.FindGame("parent")
	assert.Len(t, p.Roms, 2) // duplicate "a" dropped by sanitization
}

func TestTransformIdempotent(t *testing.T) {
	d := &dat.Dat{Games: []dat.Game{
		{Name: "parent", Roms: []dat.Rom{rom("a", 1, "H1"), rom("b", 1, "H2")}},
		{Name: "clone", CloneOf: "parent", Roms: []dat.Rom{
			rom("a", 1, "H1"), rom("b", 1, "H3"), rom("c", 1, "H4"),
		}},
	}}

	for _, mode := range []Mode{None, Split, Merged, FullNonMerged} {
		once := Transform(context.Background(), d, mode)
		twice := Transform(context.Background(), once, mode)
		// MERGED lists clone ROMs ahead of the parent's and the second
		// pass re-sorts them, so both results are compared after
		// sanitization.
		assert.Equal(t, sanitizeGames(once.Games), sanitizeGames(twice.Games), "mode %s not idempotent", mode)
	}
}

func sanitizeGames(games []dat.Game) []dat.Game {
	out := make([]dat.Game, 0, len(games))
	for _, g := range games {
		out = append(out, sanitize(g))
	}
	return out
}

func TestDiffRomsKeepsChangedFingerprint(t *testing.T) {
	reference := []dat.Rom{rom("a", 1, "H1"), rom("b", 1, "H2")}
	subject := []dat.Rom{rom("a", 1, "H1"), rom("b", 1, "H3"), rom("c", 1, "H4")}

	kept := diffRoms(reference, subject)
	assert.Len(t, kept, 2)
}

func TestNaturalLess(t *testing.T) {
	assert.True(t, naturalLess("file2", "file10"))
	assert.False(t, naturalLess("file10", "file2"))
	assert.True(t, naturalLess("a_1", "a-1")) // '-' sorts after '_' once rewritten to '__'
}
