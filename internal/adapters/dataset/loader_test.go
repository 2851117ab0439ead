package dataset_test

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nyc_rent_dashboard/internal/adapters/dataset"
	"nyc_rent_dashboard/internal/domain"
)

func TestFileSource_Load(t *testing.T) {
	src := dataset.NewFileSource(filepath.Join("testdata", "pricing.csv"))
	ls, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(ls) != 10 {
		t.Fatalf("expected 10 listings, got %d", len(ls))
	}

	first := ls[0]
	if first.Name != "Skylit Midtown Castle" || first.HostID != 2845 || first.Neighborhood != "Manhattan" {
		t.Fatalf("unexpected first listing: %+v", first)
	}
	if first.RoomType != domain.RoomEntireHome || first.Price != 200 || first.DaysAvailable != 100 {
		t.Fatalf("unexpected first listing numbers: %+v", first)
	}

	// quoted field with a comma survives
	if ls[2].Name != "Cozy, quiet room" {
		t.Fatalf("quoted name mangled: %q", ls[2].Name)
	}

	// empty cells load as missing
	if !math.IsNaN(ls[3].MonthlyReviews) {
		t.Fatalf("expected NaN monthly reviews, got %v", ls[3].MonthlyReviews)
	}
	if ls[3].LastReview != "" {
		t.Fatalf("expected empty last review, got %q", ls[3].LastReview)
	}
}

func TestFileSource_MissingFile(t *testing.T) {
	src := dataset.NewFileSource(filepath.Join("testdata", "nope.csv"))
	if _, err := src.Load(context.Background()); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestReadFrame_MissingColumns(t *testing.T) {
	f, err := os.Open(filepath.Join("testdata", "missing_columns.csv"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	_, err = dataset.ReadFrame(f)
	if !errors.Is(err, dataset.ErrMissingColumns) {
		t.Fatalf("expected ErrMissingColumns, got %v", err)
	}
	if !strings.Contains(err.Error(), "disponibilidade_365") {
		t.Fatalf("error should name the missing column: %v", err)
	}
}

func TestReadFrame_RenamedColumns(t *testing.T) {
	f, err := os.Open(filepath.Join("testdata", "pricing.csv"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	df, err := dataset.ReadFrame(f)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	got := df.Names()
	want := dataset.Columns()
	if len(got) != len(want) {
		t.Fatalf("expected %d columns, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("column %d: want %q, got %q", i, want[i], got[i])
		}
	}
}

func TestRenameHeader_RoundTrip(t *testing.T) {
	raw := []string{domain.IDColumn}
	for _, rn := range domain.ColumnRenames {
		raw = append(raw, rn.Source)
	}

	got := dataset.RenameHeader(raw)
	if len(got) != 15 {
		t.Fatalf("expected 15 columns after dropping id, got %d", len(got))
	}
	seen := map[string]bool{}
	for _, c := range got {
		if seen[c] {
			t.Fatalf("duplicate column %q", c)
		}
		seen[c] = true
	}
	for _, c := range dataset.Columns() {
		if !seen[c] {
			t.Fatalf("column %q lost", c)
		}
	}
}
