package app

import (
	"nyc_rent_dashboard/internal/analytics"
	"nyc_rent_dashboard/internal/charts"
	"nyc_rent_dashboard/internal/domain"
	"nyc_rent_dashboard/internal/ui"
)

// Dropdown and graph ids shared by the layout and the callbacks.
const (
	InputDistrict = "slct_district"
	InputRoomType = "slct_roomtype"

	GraphDistrictPrice        = "map1"
	GraphDistrictAvailability = "map2"
	GraphRoomPrice            = "map3"
	GraphRoomAvailability     = "map4"
	GraphMonthlyReviews       = "map5"
	GraphMinimumNights        = "map6"
	GraphPriceByNights        = "map7"
	GraphPriceByAvailability  = "map8"
	GraphReceiptByRoom        = "map9"
)

const Title = "Rent Pricing at NY boroughs"

// StaticChart is a chart computed once at startup.
type StaticChart struct {
	ID      string
	Name    string
	Summary analytics.Summary
	Chart   charts.Descriptor
}

// Dashboard owns the read-only dataset and everything derived from it.
type Dashboard struct {
	listings  []domain.Listing
	static    []StaticChart
	callbacks *Registry
}

func NewDashboard(ls []domain.Listing) *Dashboard {
	d := &Dashboard{listings: append([]domain.Listing(nil), ls...)}
	d.static = buildStatic(d.listings)
	d.callbacks = NewRegistry(
		Callback{
			Input:   InputDistrict,
			Outputs: []string{GraphDistrictPrice, GraphDistrictAvailability},
			Fn: func(sel []string) []charts.Descriptor {
				price, avail := d.ByDistrict(sel)
				return []charts.Descriptor{price, avail}
			},
		},
		Callback{
			Input:   InputRoomType,
			Outputs: []string{GraphRoomPrice, GraphRoomAvailability},
			Fn: func(sel []string) []charts.Descriptor {
				price, avail := d.ByRoomType(sel)
				return []charts.Descriptor{price, avail}
			},
		},
	)
	return d
}

func (d *Dashboard) Listings() int { return len(d.listings) }

func (d *Dashboard) Static() []StaticChart { return d.static }

func (d *Dashboard) Callbacks() *Registry { return d.callbacks }

// ByDistrict charts mean price and mean availability of the selected neighborhood groups.
func (d *Dashboard) ByDistrict(selected []string) (price, availability charts.Descriptor) {
	return d.byCategory(analytics.Neighborhood, selected, "district")
}

// ByRoomType charts mean price and mean availability of the selected room types.
func (d *Dashboard) ByRoomType(selected []string) (price, availability charts.Descriptor) {
	return d.byCategory(analytics.RoomType, selected, "room type")
}

func (d *Dashboard) byCategory(dim analytics.Dimension, selected []string, noun string) (charts.Descriptor, charts.Descriptor) {
	view := analytics.Filter(d.listings, dim, selected)
	opts := charts.BarOptions{X: dim.Label, Color: dim.Label}

	opts.Title = "Average price per " + noun
	price := charts.NewBar(analytics.Aggregate(view, analytics.Price, analytics.Mean, dim), opts)

	opts.Title = "Average availability per " + noun
	avail := charts.NewBar(analytics.Aggregate(view, analytics.DaysAvailable, analytics.Mean, dim), opts)
	return price, avail
}

func buildStatic(ls []domain.Listing) []StaticChart {
	reviews := analytics.Aggregate(ls, analytics.MonthlyReviews, analytics.Mean, analytics.Neighborhood)
	nights := analytics.Aggregate(ls, analytics.MinimumNights, analytics.Mean, analytics.Neighborhood, analytics.RoomType)
	// the only log-scaled table
	priceByNights := analytics.Log2(analytics.Aggregate(ls, analytics.Price, analytics.Mean, analytics.MinNights))
	priceByAvail := analytics.Aggregate(ls, analytics.Price, analytics.Mean, analytics.Availability)
	receipt := analytics.Aggregate(ls, analytics.Price, analytics.Sum, analytics.RoomType)

	return []StaticChart{
		{
			ID: GraphMonthlyReviews, Name: "monthly_reviews", Summary: reviews,
			Chart: charts.NewBar(reviews, charts.BarOptions{
				Title: "Average montlhy reviews per district",
				X:     domain.ColNeighborhood, Color: domain.ColNeighborhood,
			}),
		},
		{
			ID: GraphMinimumNights, Name: "minimum_nights", Summary: nights,
			Chart: charts.NewBar(nights, charts.BarOptions{
				Title: "Average minimum nights required",
				X:     domain.ColNeighborhood, Color: domain.ColRoomType,
			}),
		},
		{
			ID: GraphPriceByNights, Name: "price_by_nights", Summary: priceByNights,
			Chart: charts.NewBar(priceByNights, charts.BarOptions{
				Title:  "Average price by minimum nights required",
				X:      domain.ColMinimumNights,
				Labels: map[string]string{domain.ColPrice: "Price (log 2)"},
			}),
		},
		{
			ID: GraphPriceByAvailability, Name: "price_by_availability", Summary: priceByAvail,
			Chart: charts.NewBar(priceByAvail, charts.BarOptions{
				Title: "Average price by availability",
				X:     domain.ColDaysAvailable,
			}),
		},
		{
			ID: GraphReceiptByRoom, Name: "receipt_by_room_type", Summary: receipt,
			Chart: charts.NewPie(receipt, "Total receipt by room type"),
		},
	}
}

// Layout builds the page tree. Reactive graph slots are left empty; the page
// fills them through the callbacks.
func (d *Dashboard) Layout() ui.Node {
	fig := func(id string) *charts.Figure {
		for _, s := range d.static {
			if s.ID == id {
				f := s.Chart.Plotly()
				return &f
			}
		}
		return nil
	}
	center := ui.Style{"text-align": "center"}
	section := ui.Style{"text-align": "center", "margin-top": "50px"}
	picker := ui.Style{"width": "20%", "margin-bottom": "20px"}
	dropdown := ui.Style{"color": "#000000"}
	row := ui.Style{"display": "flex", "flex-direction": "row", "justify-content": "space-evenly"}
	paddedRow := ui.Style{"display": "flex", "flex-direction": "row", "justify-content": "space-evenly", "padding": "20px"}

	return ui.Div(
		ui.Style{"font-family": "DM Sans, sans-serif", "padding": "20px", "color": "#ffffff", "background-color": "#232323"},

		ui.H1(Title, center),

		ui.H3("Interactive Graphs by districts", center),
		ui.Div(picker,
			ui.Text("Select districts"),
			ui.Dropdown(InputDistrict, domain.Neighborhoods, true, []string{"Queens"}, dropdown),
		),
		ui.Div(row, ui.Graph(GraphDistrictPrice, nil), ui.Graph(GraphDistrictAvailability, nil)),

		ui.H3("Interactive Graphs by room type", section),
		ui.Div(picker,
			ui.Text("Select room type"),
			ui.Dropdown(InputRoomType, domain.RoomTypes, true, []string{domain.RoomPrivate}, dropdown),
		),
		ui.Div(row, ui.Graph(GraphRoomPrice, nil), ui.Graph(GraphRoomAvailability, nil)),

		ui.H3("Static Graphs", section),
		ui.Div(paddedRow, ui.Graph(GraphMonthlyReviews, fig(GraphMonthlyReviews)), ui.Graph(GraphMinimumNights, fig(GraphMinimumNights))),
		ui.Div(paddedRow, ui.Graph(GraphPriceByNights, fig(GraphPriceByNights)), ui.Graph(GraphPriceByAvailability, fig(GraphPriceByAvailability))),
		ui.Div(ui.Style{"display": "flex", "justify-content": "center", "padding": "20px"},
			ui.Graph(GraphReceiptByRoom, fig(GraphReceiptByRoom)),
		),
	)
}

// Page is the layout plus page metadata.
func (d *Dashboard) Page() ui.Page {
	return ui.Page{Title: Title, Root: d.Layout(), Listings: d.Listings()}
}
