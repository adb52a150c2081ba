package app

import (
	"context"
	"testing"
)

func TestMergeCommandPreRunRequiresInAndOut(t *testing.T) {
	cmd := &MergeCommand{}
	if err := cmd.PreRun(context.Background()); err == nil {
		t.Fatalf("expected error for missing --in/--out")
	}
}

func TestMergeCommandPreRunRejectsUnknownMode(t *testing.T) {
	cmd := &MergeCommand{inputPath: "in.dat", outputPath: "out.dat", modeFlag: "NOTAMODE"}
	if err := cmd.PreRun(context.Background()); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}
