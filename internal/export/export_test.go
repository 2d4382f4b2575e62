package export

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tlsguqwn-ship-it/rising-report/internal/common"
	"github.com/tlsguqwn-ship-it/rising-report/internal/config"
	"github.com/tlsguqwn-ship-it/rising-report/internal/report"
	"github.com/tlsguqwn-ship-it/rising-report/internal/store"
)

func TestInchesFromPixels(t *testing.T) {
	if got := inchesFromPixels(96); got != 1.0 {
		t.Fatalf("96px = %v in, want 1", got)
	}
	if got := inchesFromPixels(860); got < 8.95 || got > 8.96 {
		t.Fatalf("860px = %v in, want ~8.958", got)
	}
}

// requires a local Chrome; run with RISING_TEST_BROWSER=1
func TestExportPNG_WritesPageFiles(t *testing.T) {
	if os.Getenv("RISING_TEST_BROWSER") != "1" {
		t.Skip("set RISING_TEST_BROWSER=1 to run browser export tests")
	}

	logger := common.NewSilentLogger()
	st := store.NewReportStore(newMemoryKV(), logger)
	ctrl := report.NewController(context.Background(), st, logger)

	dir := t.TempDir()
	exp := New(config.ExportConfig{
		OutputDir:   dir,
		PageWidth:   860,
		PageHeight:  1216,
		TimeoutSecs: 60,
	}, ctrl, previewServer(t), logger)

	result, err := exp.ExportPNG(context.Background())
	if err != nil {
		t.Fatalf("ExportPNG: %v", err)
	}
	if result.Pages < 1 {
		t.Fatalf("expected at least one page, got %d", result.Pages)
	}
	for i, f := range result.Files {
		if _, err := os.Stat(f); err != nil {
			t.Fatalf("missing export file %s: %v", f, err)
		}
		base := filepath.Base(f)
		if !strings.HasSuffix(base, ".png") || !strings.Contains(base, "브리핑") {
			t.Fatalf("unexpected filename for page %d: %q", i+1, base)
		}
	}
}
