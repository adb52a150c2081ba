package archive

import "testing"

func TestKindOf(t *testing.T) {
	cases := map[string]Kind{
		"game.zip":       KindZip,
		"game.tar":       KindTar,
		"game.tar.gz":    KindTar,
		"game.rar":       KindRar,
		"game.7z":        KindSevenZip,
		"game.nes":       KindNone,
		"/a/b/game.ZIP":  KindZip,
	}

	for path, want := range cases {
		if got := KindOf(path); got != want {
			t.Errorf("KindOf(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestKindPriorityOrder(t *testing.T) {
	kinds := []Kind{KindNone, KindZip, KindTar, KindRar, KindSevenZip, KindOther}
	for i := 1; i < len(kinds); i++ {
		if kinds[i-1].Priority() >= kinds[i].Priority() {
			t.Errorf("expected strictly increasing priority: %v (%d) >= %v (%d)",
				kinds[i-1], kinds[i-1].Priority(), kinds[i], kinds[i].Priority())
		}
	}
}
