package app

import (
	"context"
	"testing"

	"github.com/xxxsen/romset/internal/dat"
	"github.com/xxxsen/romset/internal/fileindex"
	"github.com/xxxsen/romset/internal/fingerprint"
)

func TestFixdatCommandPreRunRequiresAllFlags(t *testing.T) {
	cmd := &FixdatCommand{datPath: "x.dat"}
	if err := cmd.PreRun(context.Background()); err == nil {
		t.Fatalf("expected error for missing --dir/--output-dir")
	}
}

func TestMatchCandidatesBindsOnlyFoundRoms(t *testing.T) {
	source := &dat.Dat{
		Games: []dat.Game{
			{Name: "complete", Roms: []dat.Rom{{Name: "a.bin", SHA1: "aaaa"}}},
			{Name: "incomplete", Roms: []dat.Rom{{Name: "b.bin", SHA1: "bbbb"}, {Name: "c.bin", SHA1: "cccc"}}},
		},
	}

	idx := fileindex.Index{
		fingerprint.FP("sha1:aaaa"): {{Path: "found/a.bin"}},
		fingerprint.FP("sha1:bbbb"): {{Path: "found/b.bin"}},
	}

	candidates := matchCandidates(source, idx)
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}

	byName := make(map[string][]string)
	for _, c := range candidates {
		for _, b := range c.Bindings {
			byName[c.Game.Name] = append(byName[c.Game.Name], b.Rom.Name)
		}
	}

	if len(byName["complete"]) != 1 || byName["complete"][0] != "a.bin" {
		t.Fatalf("expected complete to bind a.bin, got %v", byName["complete"])
	}
	if len(byName["incomplete"]) != 1 || byName["incomplete"][0] != "b.bin" {
		t.Fatalf("expected incomplete to bind only b.bin, got %v", byName["incomplete"])
	}
}

func TestMatchCandidatesSkipsRomsWithNoFingerprint(t *testing.T) {
	source := &dat.Dat{
		Games: []dat.Game{{Name: "g", Roms: []dat.Rom{{Name: "nohash.bin"}}}},
	}
	candidates := matchCandidates(source, fileindex.Index{})
	if len(candidates) != 1 || len(candidates[0].Bindings) != 0 {
		t.Fatalf("expected one candidate with no bindings, got %+v", candidates)
	}
}
