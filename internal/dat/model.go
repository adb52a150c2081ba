// Package dat models a Logiqx-style ROM management catalog: a header plus
// an ordered list of games, each a named set of expected ROMs.
package dat

// Rom is a declared file within a game. ROM identity for deduplication
// purposes is (Name, Size, a fingerprint).
type Rom struct {
	Name   string `xml:"name,attr"`
	Size   int64  `xml:"size,attr"`
	CRC    string `xml:"crc,attr,omitempty"`
	MD5    string `xml:"md5,attr,omitempty"`
	SHA1   string `xml:"sha1,attr,omitempty"`
	Merge  string `xml:"merge,attr,omitempty"`
	Bios   string `xml:"bios,attr,omitempty"`
	Status string `xml:"status,attr,omitempty"`
}

// IsBios reports whether this ROM entry belongs to the declaring game's
// BIOS set (the `bios` attribute names the biosset it belongs to).
func (r Rom) IsBios() bool {
	return r.Bios != ""
}

// EffectiveName is the name under which the same bytes would appear in a
// parent/BIOS set: the merge alias when present, else the ROM's own name.
func (r Rom) EffectiveName() string {
	if r.Merge != "" {
		return r.Merge
	}
	return r.Name
}

// Fingerprint is the content fingerprint used to compare two ROM entries.
// SHA1 is preferred when present since it is the strongest signal carried
// by the catalog; MD5 and CRC are fallbacks for DATs that omit it.
func (r Rom) Fingerprint() string {
	switch {
	case r.SHA1 != "":
		return "sha1:" + r.SHA1
	case r.MD5 != "":
		return "md5:" + r.MD5
	case r.CRC != "":
		return "crc:" + r.CRC
	default:
		return ""
	}
}

// DeviceRef is a machine's dependency on another game's ROMs, arcade-style.
type DeviceRef struct {
	Name string `xml:"name,attr"`
}

// Role classifies a Game's position in the parent/clone graph.
type Role int

const (
	RoleStandalone Role = iota
	RoleParent
	RoleClone
)

// Game is a named set of ROMs, optionally a clone of another game and/or
// dependent on a BIOS set and a list of devices (Machine semantics).
type Game struct {
	Name        string      `xml:"name,attr"`
	Description string      `xml:"description"`
	CloneOf     string      `xml:"cloneof,attr,omitempty"`
	RomOf       string      `xml:"romof,attr,omitempty"`
	IsBios      string      `xml:"isbios,attr,omitempty"`
	IsDevice    string      `xml:"isdevice,attr,omitempty"`
	Year        string      `xml:"year,omitempty"`
	Manufacturer string     `xml:"manufacturer,omitempty"`
	Roms        []Rom       `xml:"rom"`
	DeviceRefs  []DeviceRef `xml:"device_ref"`
}

// Parent returns the clone-link target name, empty for a parent/standalone.
func (g Game) Parent() string {
	return g.CloneOf
}

// Bios returns the BIOS set name this game depends on, if any.
func (g Game) Bios() string {
	return g.RomOf
}

// IsMachine reports whether this game carries arcade-style device
// references, modeling the Game/Machine distinction as a property
// rather than a separate type.
func (g Game) IsMachine() bool {
	return len(g.DeviceRefs) > 0 || g.IsDevice == "yes"
}

// Role classifies this game's position in the parent/clone graph.
func (g Game) Role() Role {
	if g.CloneOf == "" {
		return RoleParent
	}
	return RoleClone
}

// WithRoms returns a copy of the game with its ROM list replaced, the
// copy-with pattern used throughout the merger instead of in-place
// mutation (games are immutable once parsed).
func (g Game) WithRoms(roms []Rom) Game {
	cp := g
	cp.Roms = roms
	return cp
}

// Header carries catalog-level metadata.
type Header struct {
	Name        string `xml:"name"`
	Description string `xml:"description"`
	Version     string `xml:"version,omitempty"`
	Author      string `xml:"author,omitempty"`
	Homepage    string `xml:"homepage,omitempty"`
	URL         string `xml:"url,omitempty"`
	Date        string `xml:"date,omitempty"`
	Comment     string `xml:"comment,omitempty"`
	// ForceRomNames records that at least one class was folded by the
	// MERGED mode, so downstream ROM names carry directory components.
	ForceRomNames bool `xml:"-"`
}

// Dat is a named catalog: a header plus an ordered set of games.
type Dat struct {
	Header Header
	Games  []Game
}

// FindGame returns the first game matching the given name, or nil.
func (d *Dat) FindGame(name string) *Game {
	if d == nil {
		return nil
	}
	for i := range d.Games {
		if d.Games[i].Name == name {
			return &d.Games[i]
		}
	}
	return nil
}

// Parent groups a parent (or standalone) game with its clones. It is a
// grouping handle only, created on demand from a Dat, never persisted.
type Parent struct {
	Game   *Game
	Clones []Game
}

// Parents derives the parent/clone equivalence classes of the catalog.
// Every game belongs to exactly one class; a clone whose CloneOf names a
// missing game forms its own singleton class (an orphan clone).
func (d *Dat) Parents() []Parent {
	byName := make(map[string]*Game, len(d.Games))
	for i := range d.Games {
		byName[d.Games[i].Name] = &d.Games[i]
	}

	classes := make([]Parent, 0, len(d.Games))
	classIndex := make(map[string]int, len(d.Games))

	for i := range d.Games {
		g := &d.Games[i]
		if g.CloneOf == "" {
			classIndex[g.Name] = len(classes)
			classes = append(classes, Parent{Game: g})
			continue
		}
		if _, ok := byName[g.CloneOf]; !ok {
			// Orphan clone: missing parent, own singleton class.
			classIndex[g.Name] = len(classes)
			classes = append(classes, Parent{Clones: []Game{*g}})
			continue
		}
	}

	for i := range d.Games {
		g := &d.Games[i]
		if g.CloneOf == "" {
			continue
		}
		if _, ok := byName[g.CloneOf]; !ok {
			continue // already its own class above
		}
		idx, ok := classIndex[g.CloneOf]
		if !ok {
			// The named parent is itself a clone of another game in the
			// catalog, so it heads no class: fall back to an orphan-style
			// singleton to stay total.
			classIndex[g.Name] = len(classes)
			classes = append(classes, Parent{Clones: []Game{*g}})
			continue
		}
		classes[idx].Clones = append(classes[idx].Clones, *g)
	}

	return classes
}
