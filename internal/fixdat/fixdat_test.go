package fixdat

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/xxxsen/romset/internal/dat"
)

func fixedClock() Clock {
	return func() time.Time {
		return time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC)
	}
}

func sampleSourceDat() *dat.Dat {
	return &dat.Dat{
		Header: dat.Header{Name: "Sample", Description: "Sample set"},
		Games: []dat.Game{
			{Name: "complete", Roms: []dat.Rom{{Name: "a", SHA1: "aaaa"}}},
			{Name: "incomplete", Roms: []dat.Rom{{Name: "b", SHA1: "bbbb"}, {Name: "c", SHA1: "cccc"}}},
		},
	}
}

func TestGenerateWritesResidualForMissingGames(t *testing.T) {
	source := sampleSourceDat()
	candidates := []ReleaseCandidate{
		{Game: source.Games[0], Bindings: []RomBinding{{Rom: source.Games[0].Roms[0], Fingerprint: "sha1:aaaa"}}},
		{Game: source.Games[1], Bindings: []RomBinding{{Rom: source.Games[1].Roms[0], Fingerprint: "sha1:bbbb"}}},
	}

	outDir := t.TempDir()
	prov := Provenance{Tool: "romset", Version: "test", OriginalDat: "sample.dat", OutputPath: filepath.Join(outDir, "Sample.dat")}

	path, err := Generate(context.Background(), source, candidates, outDir, prov, fixedClock())
	assert.NoError(t, err)
	assert.NotEmpty(t, path)

	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Contains(t, string(data), "incomplete")
	assert.NotContains(t, string(data), "name=\"complete\"")
	assert.Contains(t, string(data), "Sample fixdat")
}

func TestGenerateSkipsWhenNothingMissing(t *testing.T) {
	source := sampleSourceDat()
	candidates := []ReleaseCandidate{
		{Game: source.Games[0], Bindings: []RomBinding{{Fingerprint: "sha1:aaaa"}}},
		{Game: source.Games[1], Bindings: []RomBinding{{Fingerprint: "sha1:bbbb"}, {Fingerprint: "sha1:cccc"}}},
	}

	outDir := t.TempDir()
	path, err := Generate(context.Background(), source, candidates, outDir, Provenance{}, fixedClock())
	assert.NoError(t, err)
	assert.Empty(t, path)
}

func TestMissingGamesSoundnessAndCompleteness(t *testing.T) {
	source := sampleSourceDat()
	written := map[string]struct{}{"sha1:aaaa": {}, "sha1:bbbb": {}}

	missing := missingGames(source, written)
	assert.Len(t, missing, 1)
	assert.Equal(t, "incomplete", missing[0].Name)

	for _, g := range missing {
		atLeastOneMissing := false
		for _, r := range g.Roms {
			if _, ok := written[r.Fingerprint()]; !ok {
				atLeastOneMissing = true
			}
		}
		assert.True(t, atLeastOneMissing)
	}

	for _, g := range source.Games {
		if g.Name == "incomplete" {
			continue
		}
		for _, r := range g.Roms {
			_, ok := written[r.Fingerprint()]
			assert.True(t, ok)
		}
	}
}

func TestWrittenHashesFallsBackToRomFingerprint(t *testing.T) {
	candidates := []ReleaseCandidate{
		{Bindings: []RomBinding{{Rom: dat.Rom{SHA1: "ffff"}}}},
	}
	set := writtenHashes(candidates)
	_, ok := set["sha1:ffff"]
	assert.True(t, ok)
}
