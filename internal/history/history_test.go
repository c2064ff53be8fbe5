package history

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/nao1215/sitecheck/internal/model"
)

// setupTestStore creates a temporary store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

func reportWith(errs, warns int) *model.Report {
	r := model.NewReport()
	r.FilesChecked = 2
	r.Pass()
	for i := range errs {
		r.Errorf("page.html", model.CheckBrokenLink, "Broken internal link: /missing-%d", i)
	}
	for i := range warns {
		r.Warnf("page.html", model.CheckSitemapMissing, "Page not found in any sitemap: page-%d.html", i)
	}
	return r
}

// TestOpen tests database creation.
func TestOpen(t *testing.T) {
	t.Parallel()

	dbDir := filepath.Join(t.TempDir(), "nested", "data")
	s, err := Open(dbDir)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer s.Close()

	if s.Path() != filepath.Join(dbDir, DatabaseName) {
		t.Errorf("unexpected path %s", s.Path())
	}
	if _, err := os.Stat(s.Path()); err != nil {
		t.Errorf("database file was not created: %v", err)
	}
}

// TestStoreSaveAndList tests storing and listing runs.
func TestStoreSaveAndList(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := setupTestStore(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	if _, saved, err := s.Save(ctx, "/srv/site", reportWith(2, 1), base); err != nil || !saved {
		t.Fatalf("first save: saved=%v err=%v", saved, err)
	}
	id, saved, err := s.Save(ctx, "/srv/site", reportWith(1, 1), base.Add(time.Hour))
	if err != nil || !saved {
		t.Fatalf("second save: saved=%v err=%v", saved, err)
	}
	if _, _, err := s.Save(ctx, "/srv/other", reportWith(0, 0), base); err != nil {
		t.Fatalf("other save: %v", err)
	}

	runs, err := s.List(ctx, "/srv/site", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != id {
		t.Errorf("expected newest run first, got id %d", runs[0].ID)
	}
	if !runs[0].Timestamp.Equal(base.Add(time.Hour)) {
		t.Errorf("unexpected timestamp %v", runs[0].Timestamp)
	}
	if runs[0].Errors != 1 || runs[1].Errors != 2 || runs[0].Warnings != 1 {
		t.Errorf("unexpected counters %+v", runs)
	}
	if runs[0].Report != nil {
		t.Error("expected List to leave reports unloaded")
	}

	limited, err := s.List(ctx, "/srv/site", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("expected 1 run, got %d", len(limited))
	}
}

// TestStoreSaveSkipsUnchanged tests that an identical report is stored once.
func TestStoreSaveSkipsUnchanged(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := setupTestStore(t)
	now := time.Now()

	first, _, err := s.Save(ctx, "/srv/site", reportWith(1, 0), now)
	if err != nil {
		t.Fatal(err)
	}
	second, saved, err := s.Save(ctx, "/srv/site", reportWith(1, 0), now.Add(time.Minute))
	if err != nil {
		t.Fatal(err)
	}
	if saved || second != first {
		t.Errorf("expected existing run %d to be reused, got %d (saved=%v)", first, second, saved)
	}

	runs, err := s.List(ctx, "/srv/site", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

// TestStoreLatest tests loading the newest runs with their reports.
func TestStoreLatest(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := setupTestStore(t)
	now := time.Now()

	if _, _, err := s.Save(ctx, "/srv/site", reportWith(1, 0), now); err != nil {
		t.Fatal(err)
	}

	_, err := s.Latest(ctx, "/srv/site", 2)
	if !errors.Is(err, ErrNotEnoughRuns) {
		t.Fatalf("expected ErrNotEnoughRuns, got %v", err)
	}

	want := reportWith(0, 2)
	if _, _, err := s.Save(ctx, "/srv/site", want, now.Add(time.Second)); err != nil {
		t.Fatal(err)
	}

	runs, err := s.Latest(ctx, "/srv/site", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(want, runs[0].Report); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
	if runs[1].Report.ErrorCount() != 1 {
		t.Errorf("expected previous run to have 1 error, got %d", runs[1].Report.ErrorCount())
	}
}

// TestCompare tests matching findings between two runs.
func TestCompare(t *testing.T) {
	t.Parallel()

	previousReport := model.NewReport()
	previousReport.Error("a.html", model.CheckCanonical, "Missing canonical tag")
	previousReport.Warn("b.html", model.CheckOpenGraph, "Missing og:title meta tag")

	currentReport := model.NewReport()
	currentReport.Warn("b.html", model.CheckOpenGraph, "Missing og:title meta tag")
	currentReport.Warn("c.html", model.CheckThinContent, "Only 10 words (minimum: 150). May be flagged as thin content.")

	previous := Run{ID: 1, Root: "/srv/site", Errors: 1, Warnings: 1, Report: previousReport}
	current := Run{ID: 2, Root: "/srv/site", Errors: 0, Warnings: 2, Report: currentReport}

	c := Compare(previous, current)

	wantNew := []model.Finding{{
		Severity: model.SeverityWarning,
		File:     "c.html",
		Check:    model.CheckThinContent,
		Message:  "Only 10 words (minimum: 150). May be flagged as thin content.",
	}}
	if diff := cmp.Diff(wantNew, c.New); diff != "" {
		t.Errorf("new findings mismatch (-want +got):\n%s", diff)
	}
	wantResolved := []model.Finding{{
		Severity: model.SeverityError,
		File:     "a.html",
		Check:    model.CheckCanonical,
		Message:  "Missing canonical tag",
	}}
	if diff := cmp.Diff(wantResolved, c.Resolved); diff != "" {
		t.Errorf("resolved findings mismatch (-want +got):\n%s", diff)
	}
	if c.Unchanged != 1 {
		t.Errorf("expected 1 unchanged finding, got %d", c.Unchanged)
	}
	if c.ErrorDelta != -1 || c.WarningDelta != 1 {
		t.Errorf("unexpected deltas %d/%d", c.ErrorDelta, c.WarningDelta)
	}
	if c.Direction != DirectionImproved {
		t.Errorf("expected %s, got %s", DirectionImproved, c.Direction)
	}
}

// TestDirection tests the direction weighting.
func TestDirection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		errs, warns   int
		wantDirection string
	}{
		{"fewer errors", -1, 5, DirectionImproved},
		{"more errors", 1, -5, DirectionWorsened},
		{"fewer warnings", 0, -1, DirectionImproved},
		{"more warnings", 0, 2, DirectionWorsened},
		{"same", 0, 0, DirectionUnchanged},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := direction(tt.errs, tt.warns); got != tt.wantDirection {
				t.Errorf("direction(%d, %d) = %s, want %s", tt.errs, tt.warns, got, tt.wantDirection)
			}
		})
	}
}
