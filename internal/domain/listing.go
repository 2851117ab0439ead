package domain

// Column labels after the rename step.
const (
	ColName           = "Name"
	ColHostID         = "Host ID"
	ColHostName       = "Host Name"
	ColNeighborhood   = "Neighborhood"
	ColDistrict       = "District"
	ColLatitude       = "Latitude"
	ColLongitude      = "Longitude"
	ColRoomType       = "Room Type"
	ColPrice          = "Price"
	ColMinimumNights  = "Minimum Nights"
	ColReviews        = "Reviews"
	ColLastReview     = "Last Review"
	ColMonthlyReviews = "Monthly Reviews"
	ColListingsCount  = "Number of Listings"
	ColDaysAvailable  = "Days Available"
)

// IDColumn is present in the source file and dropped on load.
const IDColumn = "id"

type Rename struct {
	Source string
	Label  string
}

// ColumnRenames maps the source CSV header to display labels, in schema order.
var ColumnRenames = []Rename{
	{"nome", ColName},
	{"host_id", ColHostID},
	{"host_name", ColHostName},
	{"bairro_group", ColNeighborhood},
	{"bairro", ColDistrict},
	{"latitude", ColLatitude},
	{"longitude", ColLongitude},
	{"room_type", ColRoomType},
	{"price", ColPrice},
	{"minimo_noites", ColMinimumNights},
	{"numero_de_reviews", ColReviews},
	{"ultima_review", ColLastReview},
	{"reviews_por_mes", ColMonthlyReviews},
	{"calculado_host_listings_count", ColListingsCount},
	{"disponibilidade_365", ColDaysAvailable},
}

// Neighborhood groups offered by the district dropdown.
var Neighborhoods = []string{"Manhattan", "Brooklyn", "Bronx", "Staten Island", "Queens"}

const (
	RoomEntireHome = "Entire home/apt"
	RoomPrivate    = "Private room"
	RoomShared     = "Shared room"
)

var RoomTypes = []string{RoomEntireHome, RoomPrivate, RoomShared}

// Listing is one rental listing. Numeric fields hold NaN when the source cell is empty.
type Listing struct {
	Name           string
	HostID         int64
	HostName       string
	Neighborhood   string
	District       string
	Latitude       float64
	Longitude      float64
	RoomType       string
	Price          float64
	MinimumNights  float64
	Reviews        float64
	LastReview     string
	MonthlyReviews float64
	ListingsCount  float64
	DaysAvailable  float64
}
