package header

import "testing"

func TestDetectINES(t *testing.T) {
	data := append([]byte("NES\x1a"), make([]byte, 12)...)
	d := Detect(data)
	if d == nil || d.Name != "iNES" {
		t.Fatalf("expected iNES match, got %+v", d)
	}
	if d.SkipBytes != 16 {
		t.Fatalf("expected skip of 16, got %d", d.SkipBytes)
	}
}

func TestDetectNoMatch(t *testing.T) {
	if d := Detect([]byte("plain data, no header")); d != nil {
		t.Fatalf("expected no match, got %+v", d)
	}
}

func TestDetectShortInput(t *testing.T) {
	if d := Detect([]byte("NE")); d != nil {
		t.Fatalf("expected no match on truncated input, got %+v", d)
	}
}
