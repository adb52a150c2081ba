package merge

import "github.com/xxxsen/romset/internal/dat"

// diffRoms builds a name->fingerprint map from the reference game R, then
// keeps each ROM in the subject game S whose effective name is absent
// from R, or whose fingerprint differs from R's entry for that name.
func diffRoms(reference, subject []dat.Rom) []dat.Rom {
	byName := make(map[string]string, len(reference))
	for _, r := range reference {
		byName[r.EffectiveName()] = r.Fingerprint()
	}

	kept := make([]dat.Rom, 0, len(subject))
	for _, r := range subject {
		refFP, ok := byName[r.EffectiveName()]
		if !ok || refFP != r.Fingerprint() {
			kept = append(kept, r)
		}
	}
	return kept
}
