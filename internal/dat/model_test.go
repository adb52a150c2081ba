package dat

import (
	"strings"
	"testing"
)

const sampleDat = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE datafile PUBLIC "-//Logiqx//DTD ROM Management Datafile//EN" "http://www.logiqx.com/Dats/datafile.dtd">
<datafile>
  <header>
    <name>Test System</name>
    <description>Test System (20260101)</description>
    <version>20260101</version>
  </header>
  <game name="parent">
    <description>Parent Game</description>
    <rom name="a.bin" size="10" sha1="aaaa" />
    <rom name="b.bin" size="20" sha1="bbbb" />
  </game>
  <game name="clone" cloneof="parent" romof="parent">
    <description>Clone Game</description>
    <rom name="a.bin" size="10" sha1="aaaa" />
    <rom name="b.bin" size="20" sha1="cccc" merge="b.bin" />
  </game>
  <game name="orphan" cloneof="missing">
    <description>Orphan Clone</description>
    <rom name="c.bin" size="5" sha1="dddd" />
  </game>
</datafile>`

func TestParse(t *testing.T) {
	parser := NewParser()
	d, err := parser.Parse(strings.NewReader(sampleDat))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if d.Header.Name != "Test System" {
		t.Fatalf("unexpected header name: %q", d.Header.Name)
	}
	if len(d.Games) != 3 {
		t.Fatalf("expected 3 games, got %d", len(d.Games))
	}

	clone := d.FindGame("clone")
	if clone == nil {
		t.Fatalf("expected to find clone game")
	}
	if clone.Parent() != "parent" {
		t.Fatalf("expected clone parent, got %q", clone.Parent())
	}
	if clone.Roms[1].EffectiveName() != "b.bin" {
		t.Fatalf("expected merge alias b.bin, got %q", clone.Roms[1].EffectiveName())
	}
}

func TestParents(t *testing.T) {
	parser := NewParser()
	d, err := parser.Parse(strings.NewReader(sampleDat))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	classes := d.Parents()
	if len(classes) != 2 {
		t.Fatalf("expected 2 parent classes, got %d", len(classes))
	}

	var parentClass, orphanClass *Parent
	for i := range classes {
		if classes[i].Game != nil && classes[i].Game.Name == "parent" {
			parentClass = &classes[i]
		}
		if classes[i].Game == nil {
			orphanClass = &classes[i]
		}
	}

	if parentClass == nil {
		t.Fatalf("expected to find parent class")
	}
	if len(parentClass.Clones) != 1 || parentClass.Clones[0].Name != "clone" {
		t.Fatalf("unexpected clones in parent class: %+v", parentClass.Clones)
	}

	if orphanClass == nil {
		t.Fatalf("expected an orphan singleton class")
	}
	if len(orphanClass.Clones) != 1 || orphanClass.Clones[0].Name != "orphan" {
		t.Fatalf("unexpected orphan class: %+v", orphanClass.Clones)
	}
}

func TestRomFingerprint(t *testing.T) {
	r := Rom{CRC: "deadbeef"}
	if r.Fingerprint() != "crc:deadbeef" {
		t.Fatalf("unexpected fingerprint: %q", r.Fingerprint())
	}

	r.MD5 = "b1946ac92492d2347c6235b4d2611184"
	if r.Fingerprint() != "md5:b1946ac92492d2347c6235b4d2611184" {
		t.Fatalf("md5 should take precedence over crc")
	}

	r.SHA1 = "2aae6c35c94fcfb415dbe95f408b9ce91ee846ed"
	if r.Fingerprint() != "sha1:2aae6c35c94fcfb415dbe95f408b9ce91ee846ed" {
		t.Fatalf("sha1 should take precedence over md5/crc")
	}
}
