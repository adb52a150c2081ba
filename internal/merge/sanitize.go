package merge

import (
	"sort"
	"strconv"
	"strings"

	"github.com/xxxsen/romset/internal/dat"
)

// sanitize applies the canonical per-game cleanup required before any
// mode-specific rules: duplicate ROMs (by name) are dropped, first
// occurrence wins, then the remaining ROMs are sorted by the natural
// numeric comparator.
func sanitize(g dat.Game) dat.Game {
	seen := make(map[string]struct{}, len(g.Roms))
	deduped := make([]dat.Rom, 0, len(g.Roms))
	for _, r := range g.Roms {
		if _, ok := seen[r.Name]; ok {
			continue
		}
		seen[r.Name] = struct{}{}
		deduped = append(deduped, r)
	}

	sort.SliceStable(deduped, func(i, j int) bool {
		return naturalLess(deduped[i].Name, deduped[j].Name)
	})

	return g.WithRoms(deduped)
}

// naturalLess compares names the way a human would, treating runs of
// digits as numbers, after substituting '-' with '__' so hyphens sort
// after underscores per plain ASCII order.
func naturalLess(a, b string) bool {
	return compareNatural(naturalKey(a), naturalKey(b)) < 0
}

// naturalKey applies the '-' -> '__' substitution rule before comparison.
func naturalKey(s string) string {
	return strings.ReplaceAll(s, "-", "__")
}

// compareNatural compares two strings by alternating runs of digits
// (compared numerically) and non-digits (compared byte-wise), returning
// -1, 0, or 1.
func compareNatural(a, b string) int {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		ca, cb := a[i], b[j]

		if isDigit(ca) && isDigit(cb) {
			starti, startj := i, j
			for i < len(a) && isDigit(a[i]) {
				i++
			}
			for j < len(b) && isDigit(b[j]) {
				j++
			}
			na, errA := strconv.ParseUint(a[starti:i], 10, 64)
			nb, errB := strconv.ParseUint(b[startj:j], 10, 64)
			if errA == nil && errB == nil {
				if na != nb {
					if na < nb {
						return -1
					}
					return 1
				}
				continue
			}
			// Numeric runs too large to parse: fall back to lexical
			// comparison of the digit runs themselves.
			if cmp := strings.Compare(a[starti:i], b[startj:j]); cmp != 0 {
				return cmp
			}
			continue
		}

		if ca != cb {
			if ca < cb {
				return -1
			}
			return 1
		}
		i++
		j++
	}

	switch {
	case len(a)-i < len(b)-j:
		return -1
	case len(a)-i > len(b)-j:
		return 1
	default:
		return 0
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
