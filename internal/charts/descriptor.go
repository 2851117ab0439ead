// Package charts builds declarative chart descriptors from summary tables.
package charts

import (
	"math"
	"strconv"
)

type Kind string

const (
	Bar Kind = "bar"
	Pie Kind = "pie"
)

// Number is a float that encodes NaN and ±Inf as JSON null.
type Number float64

func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, f, 'g', -1, 64), nil
}

func (n *Number) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*n = Number(math.NaN())
		return nil
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

type Point struct {
	X string `json:"x"`
	Y Number `json:"y"`
}

// Series is one colored group of points (a Plotly trace).
type Series struct {
	Name   string  `json:"name"`
	Color  string  `json:"color,omitempty"`
	Points []Point `json:"points"`
}

// Descriptor is what a rendering host needs to draw one chart.
type Descriptor struct {
	Kind  Kind   `json:"kind"`
	Title string `json:"title"`
	X     string `json:"x"`
	Y     string `json:"y"`
	Color string `json:"color,omitempty"`
	// NumericX places bars on a linear axis instead of evenly spaced categories.
	NumericX bool              `json:"numeric_x,omitempty"`
	Labels   map[string]string `json:"labels,omitempty"`
	Series   []Series          `json:"series"`
}

// NumPoints counts points across all series.
func (d Descriptor) NumPoints() int {
	n := 0
	for _, s := range d.Series {
		n += len(s.Points)
	}
	return n
}

// Categories returns the distinct x values in drawing order.
func (d Descriptor) Categories() []string {
	var out []string
	seen := map[string]bool{}
	for _, s := range d.Series {
		for _, p := range s.Points {
			if !seen[p.X] {
				seen[p.X] = true
				out = append(out, p.X)
			}
		}
	}
	return out
}

// label returns the axis label for a column, honoring overrides.
func (d Descriptor) label(col string) string {
	if l, ok := d.Labels[col]; ok {
		return l
	}
	return col
}
