package charts

// Figure is the Plotly JSON shape consumed by plotly.js in the page.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

type Trace struct {
	Type        string   `json:"type"`
	Name        string   `json:"name,omitempty"`
	X           []string `json:"x,omitempty"`
	Y           []Number `json:"y,omitempty"`
	Labels      []string `json:"labels,omitempty"`
	Values      []Number `json:"values,omitempty"`
	Marker      *Marker  `json:"marker,omitempty"`
	ShowLegend  bool     `json:"showlegend"`
	LegendGroup string   `json:"legendgroup,omitempty"`
}

type Marker struct {
	Color  string   `json:"color,omitempty"`
	Colors []string `json:"colors,omitempty"`
}

type Text struct {
	Text string `json:"text"`
}

type Axis struct {
	Title Text   `json:"title"`
	Type  string `json:"type,omitempty"`
}

type Legend struct {
	Title Text `json:"title"`
}

type Layout struct {
	Title   Text    `json:"title"`
	XAxis   *Axis   `json:"xaxis,omitempty"`
	YAxis   *Axis   `json:"yaxis,omitempty"`
	BarMode string  `json:"barmode,omitempty"`
	Legend  *Legend `json:"legend,omitempty"`
}

// Plotly converts the descriptor into a Plotly figure.
func (d Descriptor) Plotly() Figure {
	f := Figure{Data: []Trace{}, Layout: Layout{Title: Text{Text: d.Title}}}
	switch d.Kind {
	case Pie:
		for _, s := range d.Series {
			t := Trace{Type: "pie", Name: s.Name, ShowLegend: true, Marker: &Marker{}}
			for i, p := range s.Points {
				t.Labels = append(t.Labels, p.X)
				t.Values = append(t.Values, p.Y)
				t.Marker.Colors = append(t.Marker.Colors, Palette[i%len(Palette)])
			}
			f.Data = append(f.Data, t)
		}
	default:
		xType := "category"
		if d.NumericX {
			xType = "linear"
		}
		f.Layout.XAxis = &Axis{Title: Text{Text: d.label(d.X)}, Type: xType}
		f.Layout.YAxis = &Axis{Title: Text{Text: d.label(d.Y)}}
		f.Layout.BarMode = "relative"
		if d.Color != "" {
			f.Layout.Legend = &Legend{Title: Text{Text: d.label(d.Color)}}
		}
		for _, s := range d.Series {
			t := Trace{
				Type:        "bar",
				Name:        s.Name,
				Marker:      &Marker{Color: s.Color},
				ShowLegend:  d.Color != "",
				LegendGroup: s.Name,
			}
			for _, p := range s.Points {
				t.X = append(t.X, p.X)
				t.Y = append(t.Y, p.Y)
			}
			f.Data = append(f.Data, t)
		}
	}
	return f
}
