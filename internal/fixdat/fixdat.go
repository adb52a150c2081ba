// Package fixdat diffs a catalog against a set of successfully written
// candidates and produces a synthetic sub-catalog of what is still
// missing.
package fixdat

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/romset/internal/dat"
	"go.uber.org/zap"
)

// RomBinding is a ROM that was matched to a file and successfully
// written to the output set.
type RomBinding struct {
	Rom         dat.Rom
	Fingerprint string
}

// ReleaseCandidate is one game's resolved set of ROM-to-file bindings.
type ReleaseCandidate struct {
	Game     dat.Game
	Bindings []RomBinding
}

// Provenance records where a fixdat came from: tool name, version,
// original DAT, input paths, output path. Folded into the derived
// header's comment field.
type Provenance struct {
	Tool        string
	Version     string
	OriginalDat string
	InputPaths  []string
	OutputPath  string
}

// lines renders the provenance as newline-joined comment text.
func (p Provenance) lines() string {
	parts := []string{
		fmt.Sprintf("tool: %s %s", p.Tool, p.Version),
		fmt.Sprintf("original dat: %s", p.OriginalDat),
	}
	if len(p.InputPaths) > 0 {
		parts = append(parts, fmt.Sprintf("inputs: %s", strings.Join(p.InputPaths, ", ")))
	}
	parts = append(parts, fmt.Sprintf("output: %s", p.OutputPath))
	return strings.Join(parts, "\n")
}

// Clock supplies the fixdat timestamp; production callers pass time.Now,
// tests pass a fixed value for deterministic output.
type Clock func() time.Time

// Generate computes the residual DAT for candidates against source, and
// writes it to outputDir/{source.Header.Name}.dat. Returns the written
// path, or ("", nil) when nothing is missing.
func Generate(ctx context.Context, source *dat.Dat, candidates []ReleaseCandidate, outputDir string, prov Provenance, now Clock) (string, error) {
	logger := logutil.GetLogger(ctx)

	written := writtenHashes(candidates)
	missing := missingGames(source, written)

	if len(missing) == 0 {
		logger.Info("fixdat skipped, nothing missing", zap.String("dat", source.Header.Name))
		return "", nil
	}

	residual := buildResidualDat(source, missing, prov, now)

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create fixdat output dir %s: %w", outputDir, err)
	}

	filename := sanitizeFilename(source.Header.Name) + ".dat"
	outPath := filepath.Join(outputDir, filename)

	if err := dat.WriteFile(residual, outPath); err != nil {
		return "", fmt.Errorf("write fixdat %s: %w", outPath, err)
	}

	logger.Info("fixdat written",
		zap.String("path", outPath),
		zap.Int("missing_games", len(missing)),
	)
	return outPath, nil
}

// writtenHashes is the union, over every candidate and its ROM
// bindings, of the ROM's fingerprint.
func writtenHashes(candidates []ReleaseCandidate) map[string]struct{} {
	set := make(map[string]struct{})
	for _, c := range candidates {
		for _, b := range c.Bindings {
			fp := b.Fingerprint
			if fp == "" {
				fp = b.Rom.Fingerprint()
			}
			if fp == "" {
				continue
			}
			set[fp] = struct{}{}
		}
	}
	return set
}

// missingGames returns every game with at least one ROM fingerprint
// absent from written.
func missingGames(source *dat.Dat, written map[string]struct{}) []dat.Game {
	var out []dat.Game
	for _, g := range source.Games {
		if gameIsMissing(g, written) {
			out = append(out, g)
		}
	}
	return out
}

func gameIsMissing(g dat.Game, written map[string]struct{}) bool {
	for _, r := range g.Roms {
		fp := r.Fingerprint()
		if fp == "" {
			continue
		}
		if _, ok := written[fp]; !ok {
			return true
		}
	}
	return false
}

func buildResidualDat(source *dat.Dat, missing []dat.Game, prov Provenance, now Clock) *dat.Dat {
	if now == nil {
		now = time.Now
	}
	ts := now().Format("20060102-150405")

	header := dat.Header{
		Name:        source.Header.Name + " fixdat",
		Description: source.Header.Description + " fixdat",
		Version:     ts,
		Author:      source.Header.Author,
		Homepage:    source.Header.Homepage,
		URL:         source.Header.URL,
		Date:        ts,
		Comment:     prov.lines(),
	}

	return &dat.Dat{Header: header, Games: missing}
}

func sanitizeFilename(name string) string {
	if name == "" {
		return "fixdat"
	}
	replacer := strings.NewReplacer("/", "_", "\\", "_")
	return replacer.Replace(name)
}
