package app

import (
	"context"
	"testing"
)

func TestSanitizeCommandRun(t *testing.T) {
	cmd := &SanitizeCommand{path: `C:\ro:ms\fi:le.rom`, separator: `\`}
	if err := cmd.PreRun(context.Background()); err != nil {
		t.Fatalf("prerun: %v", err)
	}
	if err := cmd.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	want := `C:\ro;ms\fi;le.rom`
	if got := cmd.Result(); got != want {
		t.Fatalf("result = %q, want %q", got, want)
	}
}

func TestSanitizeCommandRequiresPath(t *testing.T) {
	cmd := &SanitizeCommand{separator: "/"}
	if err := cmd.PreRun(context.Background()); err == nil {
		t.Fatalf("expected error for missing --path")
	}
}

func TestSanitizeCommandRejectsBadSeparator(t *testing.T) {
	cmd := &SanitizeCommand{path: "a/b", separator: "|"}
	if err := cmd.PreRun(context.Background()); err == nil {
		t.Fatalf("expected error for invalid --sep")
	}
}
