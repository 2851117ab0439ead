package charts

import (
	"nyc_rent_dashboard/internal/analytics"
)

// Palette is Plotly's default qualitative sequence.
var Palette = []string{
	"#636efa", "#EF553B", "#00cc96", "#ab63fa", "#FFA15A",
	"#19d3f3", "#FF6692", "#B6E880", "#FF97FF", "#FECB52",
}

type BarOptions struct {
	Title string
	// X and Color name summary dimensions; Color may be empty.
	X      string
	Color  string
	Labels map[string]string
}

// NewBar draws s as bars. With a color dimension every distinct color value
// becomes its own series, in order of first appearance.
func NewBar(s analytics.Summary, o BarOptions) Descriptor {
	d := Descriptor{
		Kind:   Bar,
		Title:  o.Title,
		X:      o.X,
		Y:      s.Measure,
		Color:  o.Color,
		Labels: o.Labels,
		Series: []Series{},
	}
	xi := dimIndex(s, o.X)
	ci := -1
	if o.Color != "" {
		ci = dimIndex(s, o.Color)
	}

	if len(s.Rows) > 0 {
		d.NumericX = s.Rows[0].Keys[xi].Numeric
	}

	index := map[string]int{}
	for _, row := range s.Rows {
		name := ""
		if ci >= 0 {
			name = row.Keys[ci].String()
		}
		i, ok := index[name]
		if !ok {
			i = len(d.Series)
			index[name] = i
			d.Series = append(d.Series, Series{Name: name, Color: Palette[i%len(Palette)]})
		}
		d.Series[i].Points = append(d.Series[i].Points, Point{X: row.Keys[xi].String(), Y: Number(row.Value)})
	}
	return d
}

// NewPie draws s as a pie keyed by its first dimension.
func NewPie(s analytics.Summary, title string) Descriptor {
	d := Descriptor{Kind: Pie, Title: title, Y: s.Measure, Series: []Series{}}
	if len(s.Dimensions) > 0 {
		d.X = s.Dimensions[0]
	}
	if len(s.Rows) == 0 {
		return d
	}
	ser := Series{Name: d.X}
	for _, row := range s.Rows {
		ser.Points = append(ser.Points, Point{X: row.Keys[0].String(), Y: Number(row.Value)})
	}
	d.Series = append(d.Series, ser)
	return d
}

func dimIndex(s analytics.Summary, label string) int {
	for i, d := range s.Dimensions {
		if d == label {
			return i
		}
	}
	return 0
}
