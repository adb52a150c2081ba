package merge

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/romset/internal/dat"
)

// Transform reshapes d's games according to mode. Every game is sanitized
// first (duplicate ROM names dropped, natural sort). Every mode except
// FullNonMerged then subtracts the ROMs a game shares with its declared
// BIOS set; None applies no further set arithmetic, and a game without
// clones is never reduced by a parent diff.
//
// The transform proceeds per parent class independently, then the
// resulting classes are concatenated in original parent-class order, so
// output game order is a pure function of input order.
func Transform(ctx context.Context, d *dat.Dat, mode Mode) *dat.Dat {
	logger := logutil.GetLogger(ctx)
	logger.Info("transforming dat", zap.String("mode", mode.String()), zap.Int("games", len(d.Games)))

	byName := make(map[string]*dat.Game, len(d.Games))
	for i := range d.Games {
		byName[d.Games[i].Name] = &d.Games[i]
	}

	classes := d.Parents()
	outGames := make([]dat.Game, 0, len(d.Games))
	forcedNames := false

	for _, class := range classes {
		games, forced := transformClass(class, mode, byName)
		if forced {
			forcedNames = true
		}
		outGames = append(outGames, games...)
	}

	out := &dat.Dat{
		Header: d.Header,
		Games:  outGames,
	}
	out.Header.ForceRomNames = d.Header.ForceRomNames || forcedNames
	return out
}

// transformClass runs the per-class state machine:
//
//	raw -> sanitized -> [FULLNONMERGED: +device roms]
//	                  -> [non-FULL: -bios]
//	                  -> [SPLIT|MERGED: -parent]
//	                  -> assembled(mode)
func transformClass(class dat.Parent, mode Mode, byName map[string]*dat.Game) (games []dat.Game, forcedNames bool) {
	var parent *dat.Game
	if class.Game != nil {
		sanitizedParent := sanitize(*class.Game)
		parent = &sanitizedParent
	}

	clones := make([]dat.Game, 0, len(class.Clones))
	for _, c := range class.Clones {
		clones = append(clones, sanitize(c))
	}

	if mode == FullNonMerged {
		if parent != nil {
			*parent = expandDevices(*parent, byName)
		}
		for i := range clones {
			clones[i] = expandDevices(clones[i], byName)
		}
	} else {
		if parent != nil {
			*parent = subtractBios(*parent, byName)
		}
		for i := range clones {
			clones[i] = subtractBios(clones[i], byName)
		}
	}

	if mode == Split || mode == Merged {
		if parent != nil {
			for i := range clones {
				clones[i] = clones[i].WithRoms(diffRoms(parent.Roms, clones[i].Roms))
			}
		}
	}

	switch mode {
	case Merged:
		merged, ok := mergeClass(parent, clones)
		if !ok {
			return nil, false
		}
		return []dat.Game{merged}, parent != nil && len(clones) > 0
	default:
		out := make([]dat.Game, 0, 1+len(clones))
		if parent != nil {
			out = append(out, *parent)
		}
		out = append(out, clones...)
		return out, false
	}
}

// expandDevices prepends the ROMs of every referenced device game (for
// machine-kind games), then re-sorts. Unknown device references are
// silently dropped. FULLNONMERGED does not subtract BIOS ROMs: the full
// expansion already makes the game self-contained.
func expandDevices(g dat.Game, byName map[string]*dat.Game) dat.Game {
	if !g.IsMachine() {
		return g
	}

	var expanded []dat.Rom
	for _, ref := range g.DeviceRefs {
		dev, ok := byName[ref.Name]
		if !ok {
			continue // unresolved device reference: silent no-op
		}
		expanded = append(expanded, dev.Roms...)
	}
	expanded = append(expanded, g.Roms...)

	return sanitize(g.WithRoms(expanded))
}

// subtractBios filters the declared BIOS game's ROMs to those marked
// BIOS, then removes the shared ones from g by the diff rule.
func subtractBios(g dat.Game, byName map[string]*dat.Game) dat.Game {
	if g.RomOf == "" {
		return g
	}
	bios, ok := byName[g.RomOf]
	if !ok {
		return g // unresolved BIOS reference: silent no-op
	}

	biosRoms := make([]dat.Rom, 0, len(bios.Roms))
	for _, r := range bios.Roms {
		if r.IsBios() {
			biosRoms = append(biosRoms, r)
		}
	}
	if len(biosRoms) == 0 {
		return g
	}

	return g.WithRoms(diffRoms(biosRoms, g.Roms))
}

// mergeClass folds every clone's ROMs into the parent, producing a single
// game with the parent's identity. Each clone ROM is re-parented by
// prepending "cloneName\" to its name. The combined list is deduplicated
// by (name, size, fingerprint).
func mergeClass(parent *dat.Game, clones []dat.Game) (dat.Game, bool) {
	if parent == nil {
		if len(clones) == 0 {
			return dat.Game{}, false
		}
		// Orphan class: nothing to merge into, pass the lone clone through.
		return clones[0], true
	}

	type romKey struct {
		name string
		size int64
		fp   string
	}

	combined := make([]dat.Rom, 0, len(parent.Roms))
	seen := make(map[romKey]struct{}, len(parent.Roms))

	add := func(r dat.Rom) {
		k := romKey{name: r.Name, size: r.Size, fp: r.Fingerprint()}
		if _, ok := seen[k]; ok {
			return
		}
		seen[k] = struct{}{}
		combined = append(combined, r)
	}

	for _, c := range clones {
		for _, r := range c.Roms {
			r.Name = c.Name + `\` + r.Name
			add(r)
		}
	}
	for _, r := range parent.Roms {
		add(r)
	}

	merged := parent.WithRoms(combined)
	return merged, true
}
