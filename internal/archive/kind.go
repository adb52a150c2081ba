package archive

import (
	"path/filepath"
	"strings"
)

// Kind identifies an archive format. Kinds form a total preference order
// used both by the File Indexer's "un-archived preferred" rule and by
// Open's format dispatch.
type Kind int

const (
	// KindNone means the file is not inside an archive at all.
	KindNone Kind = iota
	KindZip
	KindTar
	KindRar
	KindSevenZip
	// KindOther covers any archive-like file this module cannot open,
	// ranked last so it is never preferred over a recognized format.
	KindOther
)

// Priority returns the indexer preference value for this kind: lower
// values are preferred, with a plain un-archived file always winning.
func (k Kind) Priority() int {
	switch k {
	case KindNone:
		return 0
	case KindZip:
		return 1
	case KindTar:
		return 2
	case KindRar:
		return 3
	case KindSevenZip:
		return 4
	default:
		return 99
	}
}

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindZip:
		return "zip"
	case KindTar:
		return "tar"
	case KindRar:
		return "rar"
	case KindSevenZip:
		return "7z"
	default:
		return "other"
	}
}

// KindOf classifies a path by its extension. Recognized archive
// extensions return their matching Kind; anything else returns
// KindNone (treated as a plain, un-archived file).
func KindOf(path string) Kind {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".zip":
		return KindZip
	case ".tar":
		return KindTar
	case ".tgz":
		return KindTar
	case ".rar":
		return KindRar
	case ".7z":
		return KindSevenZip
	default:
		if strings.HasSuffix(strings.ToLower(path), ".tar.gz") {
			return KindTar
		}
		return KindNone
	}
}

// IsArchiveExtension reports whether path has the extension of a
// supported archive format (KindNone/KindOther are excluded).
func IsArchiveExtension(path string) bool {
	switch KindOf(path) {
	case KindZip, KindTar, KindRar, KindSevenZip:
		return true
	default:
		return false
	}
}
