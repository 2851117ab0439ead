package charts_test

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"nyc_rent_dashboard/internal/analytics"
	"nyc_rent_dashboard/internal/charts"
	"nyc_rent_dashboard/internal/domain"
)

func summary() analytics.Summary {
	ls := []domain.Listing{
		{Neighborhood: "Queens", RoomType: domain.RoomPrivate, MinimumNights: 2},
		{Neighborhood: "Queens", RoomType: domain.RoomShared, MinimumNights: 4},
		{Neighborhood: "Bronx", RoomType: domain.RoomPrivate, MinimumNights: 1},
	}
	return analytics.Aggregate(ls, analytics.MinimumNights, analytics.Mean, analytics.Neighborhood, analytics.RoomType)
}

func TestNewBar_OneSeriesPerColor(t *testing.T) {
	d := charts.NewBar(summary(), charts.BarOptions{
		Title: "Average minimum nights required",
		X:     domain.ColNeighborhood,
		Color: domain.ColRoomType,
	})
	if d.Kind != charts.Bar || d.Y != domain.ColMinimumNights {
		t.Fatalf("unexpected descriptor: %+v", d)
	}
	if len(d.Series) != 2 {
		t.Fatalf("expected 2 series, got %d", len(d.Series))
	}
	// rows are Bronx/Private, Queens/Private, Queens/Shared
	if d.Series[0].Name != domain.RoomPrivate || len(d.Series[0].Points) != 2 {
		t.Fatalf("unexpected first series: %+v", d.Series[0])
	}
	if d.Series[0].Color != charts.Palette[0] || d.Series[1].Color != charts.Palette[1] {
		t.Fatalf("palette not applied in order: %+v", d.Series)
	}
	if got := d.Categories(); len(got) != 2 || got[0] != "Bronx" || got[1] != "Queens" {
		t.Fatalf("categories: %v", got)
	}
	if d.NumPoints() != 3 {
		t.Fatalf("points: %d", d.NumPoints())
	}
}

func TestPlotly_TextKeysUseCategoryAxis(t *testing.T) {
	d := charts.NewBar(summary(), charts.BarOptions{X: domain.ColNeighborhood, Color: domain.ColRoomType})
	if d.NumericX {
		t.Fatalf("text keys flagged numeric")
	}
	if f := d.Plotly(); f.Layout.XAxis.Type != "category" {
		t.Fatalf("text keys should use a category axis, got %q", f.Layout.XAxis.Type)
	}
}

func TestNewBar_EmptySummary(t *testing.T) {
	s := analytics.Aggregate(nil, analytics.Price, analytics.Mean, analytics.Neighborhood)
	d := charts.NewBar(s, charts.BarOptions{Title: "empty", X: domain.ColNeighborhood, Color: domain.ColNeighborhood})
	if d.NumPoints() != 0 || len(d.Series) != 0 {
		t.Fatalf("expected no points, got %+v", d)
	}
	b, err := json.Marshal(d.Plotly())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(b), `"data":[]`) {
		t.Fatalf("expected empty data array: %s", b)
	}
}

func TestNewPie(t *testing.T) {
	ls := []domain.Listing{
		{RoomType: domain.RoomPrivate, Price: 10},
		{RoomType: domain.RoomShared, Price: 5},
		{RoomType: domain.RoomPrivate, Price: 20},
	}
	d := charts.NewPie(analytics.Aggregate(ls, analytics.Price, analytics.Sum, analytics.RoomType), "Total receipt by room type")
	f := d.Plotly()
	if len(f.Data) != 1 || f.Data[0].Type != "pie" {
		t.Fatalf("unexpected pie: %+v", f)
	}
	if f.Data[0].Labels[0] != domain.RoomPrivate || f.Data[0].Values[0] != 30 {
		t.Fatalf("unexpected slices: %+v", f.Data[0])
	}
}

func TestPlotly_LabelsAndNullValues(t *testing.T) {
	s := analytics.Summary{
		Dimensions: []string{domain.ColMinimumNights},
		Measure:    domain.ColPrice,
		Rows: []analytics.Row{
			{Keys: []analytics.Key{{Num: 1, Numeric: true}}, Value: math.Inf(-1)},
			{Keys: []analytics.Key{{Num: 2, Numeric: true}}, Value: 6.5},
		},
	}
	d := charts.NewBar(s, charts.BarOptions{
		Title:  "Average price by minimum nights required",
		X:      domain.ColMinimumNights,
		Labels: map[string]string{domain.ColPrice: "Price (log 2)"},
	})
	f := d.Plotly()
	if f.Layout.YAxis.Title.Text != "Price (log 2)" {
		t.Fatalf("label override ignored: %+v", f.Layout.YAxis)
	}
	if f.Data[0].ShowLegend {
		t.Fatalf("uncolored bars should not show a legend")
	}
	if f.Layout.XAxis.Type != "linear" {
		t.Fatalf("numeric keys should use a linear axis, got %q", f.Layout.XAxis.Type)
	}
	b, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(b), `"y":[null,6.5]`) {
		t.Fatalf("expected null for -Inf: %s", b)
	}
}
