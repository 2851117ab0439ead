// Package analytics filters listings and reduces them into grouped summary tables.
package analytics

import (
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"nyc_rent_dashboard/internal/domain"
)

// Dimension is a grouping key over a listing.
type Dimension struct {
	Label   string
	numeric bool
	text    func(domain.Listing) string
	number  func(domain.Listing) float64
}

// Measure is the value being reduced.
type Measure struct {
	Label string
	value func(domain.Listing) float64
}

var (
	Neighborhood = Dimension{Label: domain.ColNeighborhood, text: func(l domain.Listing) string { return l.Neighborhood }}
	RoomType     = Dimension{Label: domain.ColRoomType, text: func(l domain.Listing) string { return l.RoomType }}
	MinNights    = Dimension{Label: domain.ColMinimumNights, numeric: true, number: func(l domain.Listing) float64 { return l.MinimumNights }}
	Availability = Dimension{Label: domain.ColDaysAvailable, numeric: true, number: func(l domain.Listing) float64 { return l.DaysAvailable }}
)

var (
	Price          = Measure{Label: domain.ColPrice, value: func(l domain.Listing) float64 { return l.Price }}
	MinimumNights  = Measure{Label: domain.ColMinimumNights, value: func(l domain.Listing) float64 { return l.MinimumNights }}
	MonthlyReviews = Measure{Label: domain.ColMonthlyReviews, value: func(l domain.Listing) float64 { return l.MonthlyReviews }}
	DaysAvailable  = Measure{Label: domain.ColDaysAvailable, value: func(l domain.Listing) float64 { return l.DaysAvailable }}
)

type Reducer int

const (
	Mean Reducer = iota
	Sum
)

func (r Reducer) String() string {
	if r == Sum {
		return "sum"
	}
	return "mean"
}

// Key is one component of a group key.
type Key struct {
	Text    string
	Num     float64
	Numeric bool
}

func (k Key) String() string {
	if k.Numeric {
		return strconv.FormatFloat(k.Num, 'f', -1, 64)
	}
	return k.Text
}

func (k Key) less(o Key) bool {
	if k.Numeric && o.Numeric {
		return k.Num < o.Num
	}
	return k.String() < o.String()
}

type Row struct {
	Keys  []Key
	Value float64
	Count int
}

// Summary is a grouped table: one row per distinct key tuple.
type Summary struct {
	Dimensions []string
	Measure    string
	Reducer    Reducer
	Rows       []Row
}

// Len reports the number of groups.
func (s Summary) Len() int { return len(s.Rows) }

// Filter returns a new slice holding the listings whose dimension value is in selected.
// The input slice is never modified.
func Filter(ls []domain.Listing, dim Dimension, selected []string) []domain.Listing {
	want := make(map[string]struct{}, len(selected))
	for _, s := range selected {
		want[s] = struct{}{}
	}
	out := make([]domain.Listing, 0)
	if len(want) == 0 {
		return out
	}
	for _, l := range ls {
		if _, ok := want[dim.key(l).String()]; ok {
			out = append(out, l)
		}
	}
	return out
}

// Aggregate groups ls by dims and reduces m inside every group.
// Missing values (NaN) are skipped; rows with a missing key are dropped.
// Rows come back ordered by key.
func Aggregate(ls []domain.Listing, m Measure, r Reducer, dims ...Dimension) Summary {
	type group struct {
		keys   []Key
		values []float64
		count  int
	}
	groups := make(map[string]*group)
	for _, l := range ls {
		keys := make([]Key, len(dims))
		id := ""
		missing := false
		for i, d := range dims {
			keys[i] = d.key(l)
			if keys[i].missing() {
				missing = true
				break
			}
			id += keys[i].String() + "\x1f"
		}
		if missing {
			continue
		}
		g, ok := groups[id]
		if !ok {
			g = &group{keys: keys}
			groups[id] = g
		}
		g.count++
		if v := m.value(l); !math.IsNaN(v) {
			g.values = append(g.values, v)
		}
	}

	rows := make([]Row, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, Row{Keys: g.keys, Value: reduce(r, g.values), Count: g.count})
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i].Keys, rows[j].Keys
		for k := range a {
			if a[k].less(b[k]) {
				return true
			}
			if b[k].less(a[k]) {
				return false
			}
		}
		return false
	})

	labels := make([]string, len(dims))
	for i, d := range dims {
		labels[i] = d.Label
	}
	return Summary{Dimensions: labels, Measure: m.Label, Reducer: r, Rows: rows}
}

// Log2 returns a copy of s with every value replaced by its base-2 logarithm.
func Log2(s Summary) Summary {
	out := s
	out.Rows = make([]Row, len(s.Rows))
	for i, row := range s.Rows {
		row.Value = math.Log2(row.Value)
		out.Rows[i] = row
	}
	return out
}

func reduce(r Reducer, vs []float64) float64 {
	switch r {
	case Sum:
		return floats.Sum(vs)
	default:
		if len(vs) == 0 {
			return math.NaN()
		}
		return stat.Mean(vs, nil)
	}
}

func (d Dimension) key(l domain.Listing) Key {
	if d.numeric {
		return Key{Num: d.number(l), Numeric: true}
	}
	return Key{Text: d.text(l)}
}

func (k Key) missing() bool {
	if k.Numeric {
		return math.IsNaN(k.Num)
	}
	return k.Text == ""
}
