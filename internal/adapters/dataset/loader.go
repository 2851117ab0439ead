// internal/adapters/dataset/loader.go
package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/rs/zerolog/log"

	"nyc_rent_dashboard/internal/domain"
)

var ErrMissingColumns = errors.New("dataset: missing columns")

// sourceTypes pins every source column so gota never guesses.
var sourceTypes = map[string]series.Type{
	domain.IDColumn:                 series.String,
	"nome":                          series.String,
	"host_id":                       series.Float,
	"host_name":                     series.String,
	"bairro_group":                  series.String,
	"bairro":                        series.String,
	"latitude":                      series.Float,
	"longitude":                     series.Float,
	"room_type":                     series.String,
	"price":                         series.Float,
	"minimo_noites":                 series.Float,
	"numero_de_reviews":             series.Float,
	"ultima_review":                 series.String,
	"reviews_por_mes":               series.Float,
	"calculado_host_listings_count": series.Float,
	"disponibilidade_365":           series.Float,
}

// OpenFunc opens the raw CSV stream. The caller closes it.
type OpenFunc func(ctx context.Context) (io.ReadCloser, error)

// Source loads listings from any CSV stream.
type Source struct {
	name string
	open OpenFunc
}

func NewSource(name string, open OpenFunc) *Source {
	return &Source{name: name, open: open}
}

// NewFileSource reads the CSV at path.
func NewFileSource(path string) *Source {
	return NewSource("file:"+path, func(context.Context) (io.ReadCloser, error) {
		return os.Open(path)
	})
}

func (s *Source) Load(ctx context.Context) ([]domain.Listing, error) {
	rc, err := s.open(ctx)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.name, err)
	}
	defer rc.Close()

	ls, err := Read(rc)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.name, err)
	}
	log.Info().Str("source", s.name).Int("rows", len(ls)).Msg("dataset loaded")
	return ls, nil
}

// Columns returns the labels of a loaded frame, in schema order.
func Columns() []string {
	out := make([]string, 0, len(domain.ColumnRenames))
	for _, rn := range domain.ColumnRenames {
		out = append(out, rn.Label)
	}
	return out
}

// RenameHeader applies the rename mapping to a raw header and drops the id column.
// Unknown names pass through untouched.
func RenameHeader(header []string) []string {
	labels := make(map[string]string, len(domain.ColumnRenames))
	for _, rn := range domain.ColumnRenames {
		labels[rn.Source] = rn.Label
	}
	out := make([]string, 0, len(header))
	for _, h := range header {
		if h == domain.IDColumn {
			continue
		}
		if l, ok := labels[h]; ok {
			h = l
		}
		out = append(out, h)
	}
	return out
}

// ReadFrame parses the CSV, renames the columns and drops the id column.
func ReadFrame(r io.Reader) (dataframe.DataFrame, error) {
	df := dataframe.ReadCSV(r,
		dataframe.WithTypes(sourceTypes),
		dataframe.HasHeader(true),
	)
	if df.Err != nil {
		return df, fmt.Errorf("read csv: %w", df.Err)
	}

	have := make(map[string]bool, df.Ncol())
	for _, n := range df.Names() {
		have[n] = true
	}
	var missing []string
	if !have[domain.IDColumn] {
		missing = append(missing, domain.IDColumn)
	}
	for _, rn := range domain.ColumnRenames {
		if !have[rn.Source] {
			missing = append(missing, rn.Source)
		}
	}
	if len(missing) > 0 {
		return df, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	for _, rn := range domain.ColumnRenames {
		df = df.Rename(rn.Label, rn.Source)
	}
	df = df.Drop(domain.IDColumn)
	if df.Err != nil {
		return df, fmt.Errorf("rename columns: %w", df.Err)
	}
	return df, nil
}

// Read parses a CSV stream into listings.
func Read(r io.Reader) ([]domain.Listing, error) {
	df, err := ReadFrame(r)
	if err != nil {
		return nil, err
	}
	return FromFrame(df), nil
}

// FromFrame converts a renamed frame into listings.
func FromFrame(df dataframe.DataFrame) []domain.Listing {
	n := df.Nrow()
	str := func(col string) []string { return df.Col(col).Records() }
	num := func(col string) []float64 { return df.Col(col).Float() }

	var (
		names, hostNames   = str(domain.ColName), str(domain.ColHostName)
		hoods, districts   = str(domain.ColNeighborhood), str(domain.ColDistrict)
		rooms, lastReviews = str(domain.ColRoomType), str(domain.ColLastReview)
		hostIDs            = num(domain.ColHostID)
		lats, lons         = num(domain.ColLatitude), num(domain.ColLongitude)
		prices, nights     = num(domain.ColPrice), num(domain.ColMinimumNights)
		reviews, monthly   = num(domain.ColReviews), num(domain.ColMonthlyReviews)
		counts, avail      = num(domain.ColListingsCount), num(domain.ColDaysAvailable)
	)

	out := make([]domain.Listing, n)
	for i := 0; i < n; i++ {
		out[i] = domain.Listing{
			Name:           nullText(names[i]),
			HostID:         toInt64(hostIDs[i]),
			HostName:       nullText(hostNames[i]),
			Neighborhood:   hoods[i],
			District:       districts[i],
			Latitude:       lats[i],
			Longitude:      lons[i],
			RoomType:       rooms[i],
			Price:          prices[i],
			MinimumNights:  nights[i],
			Reviews:        reviews[i],
			LastReview:     nullText(lastReviews[i]),
			MonthlyReviews: monthly[i],
			ListingsCount:  counts[i],
			DaysAvailable:  avail[i],
		}
	}
	return out
}

// gota renders missing string cells as "NaN".
func nullText(s string) string {
	if s == "NaN" {
		return ""
	}
	return s
}

func toInt64(f float64) int64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int64(f)
}
