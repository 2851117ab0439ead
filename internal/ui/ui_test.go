package ui_test

import (
	"bytes"
	"io/fs"
	"strings"
	"testing"

	"nyc_rent_dashboard/internal/charts"
	"nyc_rent_dashboard/internal/ui"
)

func TestStyle_CSSIsSorted(t *testing.T) {
	s := ui.Style{"width": "20%", "margin-bottom": "20px"}
	if got := s.CSS(); got != "margin-bottom: 20px; width: 20%" {
		t.Fatalf("css: %q", got)
	}
}

func TestBuilders_CopyInputs(t *testing.T) {
	style := ui.Style{"color": "#000000"}
	values := []string{"Queens"}
	dd := ui.Dropdown("slct_district", []string{"Queens", "Bronx"}, true, values, style)

	style["color"] = "red"
	values[0] = "Bronx"

	if dd.Style["color"] != "#000000" || dd.Value[0] != "Queens" {
		t.Fatalf("dropdown shares caller state: %+v", dd)
	}
}

func TestNode_FindAndIDs(t *testing.T) {
	root := ui.Div(nil,
		ui.H1("title", nil),
		ui.Div(nil, ui.Graph("map1", nil), ui.Graph("map2", nil)),
		ui.Dropdown("slct", []string{"a"}, false, nil, nil),
	)
	if got := root.IDs(ui.KindGraph); len(got) != 2 || got[0] != "map1" || got[1] != "map2" {
		t.Fatalf("graph ids: %v", got)
	}
	n, ok := root.Find("slct")
	if !ok || n.Kind != ui.KindDropdown {
		t.Fatalf("find: %+v %v", n, ok)
	}
	if _, ok := root.Find("nope"); ok {
		t.Fatalf("found a node that does not exist")
	}
}

func TestRender(t *testing.T) {
	fig := charts.Figure{Data: []charts.Trace{}, Layout: charts.Layout{Title: charts.Text{Text: "static"}}}
	root := ui.Div(ui.Style{"padding": "20px"},
		ui.H1("Rent Pricing at NY boroughs", ui.Style{"text-align": "center"}),
		ui.Dropdown("slct_roomtype", []string{"Private room", "Shared room"}, true, []string{"Private room"}, nil),
		ui.Graph("map3", nil),
		ui.Graph("map5", &fig),
	)

	var buf bytes.Buffer
	if err := ui.Render(&buf, ui.Page{Title: "Rent", Root: root, Listings: 48895}); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`<h1 style="text-align: center">Rent Pricing at NY boroughs</h1>`,
		`<select id="slct_roomtype" class="dropdown" multiple>`,
		`<option value="Private room" selected>Private room</option>`,
		`<option value="Shared room">Shared room</option>`,
		`<div id="map3" class="graph"></div>`,
		`id="map5" class="graph" data-figure=`,
		`48,895 listings loaded`,
		`/assets/app.js`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestAssets(t *testing.T) {
	if _, err := fs.Stat(ui.Assets(), "app.js"); err != nil {
		t.Fatalf("app.js not embedded: %v", err)
	}
}
