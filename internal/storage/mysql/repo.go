package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"

	"nyc_rent_dashboard/internal/domain"
)

func valStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func valF64(f float64) any {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return f
}

func f64(n sql.NullFloat64) float64 {
	if !n.Valid {
		return math.NaN()
	}
	return n.Float64
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, clearListingsSQL)
	return err
}

// InsertListings writes one batch in a single multi-row INSERT.
func (r *Repo) InsertListings(ctx context.Context, ls []domain.Listing) error {
	if len(ls) == 0 {
		return nil
	}
	values := make([]string, 0, len(ls))
	args := make([]any, 0, len(ls)*listingColumns)
	for _, l := range ls {
		values = append(values, listingPlaceholders)
		args = append(args,
			valStr(l.Name),
			l.HostID,
			valStr(l.HostName),
			l.Neighborhood,
			l.District,
			valF64(l.Latitude),
			valF64(l.Longitude),
			l.RoomType,
			valF64(l.Price),
			valF64(l.MinimumNights),
			valF64(l.Reviews),
			valStr(l.LastReview),
			valF64(l.MonthlyReviews),
			valF64(l.ListingsCount),
			valF64(l.DaysAvailable),
		)
	}
	sqlStr := insertListingsPrefix + strings.Join(values, ",")
	if _, err := r.db.ExecContext(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("insert %d listings: %w", len(ls), err)
	}
	return nil
}

func (r *Repo) CountListings(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, countListingsSQL).Scan(&n)
	return n, err
}

func (r *Repo) ListListings(ctx context.Context) ([]domain.Listing, error) {
	rows, err := r.db.QueryContext(ctx, listListingsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Listing
	for rows.Next() {
		var (
			l                                domain.Listing
			name, hostName, lastReview       sql.NullString
			lat, lon, price, nights, reviews sql.NullFloat64
			monthly, count, avail            sql.NullFloat64
		)
		if err := rows.Scan(
			&name, &l.HostID, &hostName, &l.Neighborhood, &l.District, &lat, &lon, &l.RoomType,
			&price, &nights, &reviews, &lastReview, &monthly, &count, &avail,
		); err != nil {
			return nil, err
		}
		l.Name, l.HostName, l.LastReview = name.String, hostName.String, lastReview.String
		l.Latitude, l.Longitude = f64(lat), f64(lon)
		l.Price, l.MinimumNights, l.Reviews = f64(price), f64(nights), f64(reviews)
		l.MonthlyReviews, l.ListingsCount, l.DaysAvailable = f64(monthly), f64(count), f64(avail)
		out = append(out, l)
	}
	return out, rows.Err()
}

// Load lets the repository act as the dashboard's dataset source.
func (r *Repo) Load(ctx context.Context) ([]domain.Listing, error) {
	ls, err := r.ListListings(ctx)
	if err != nil {
		return nil, fmt.Errorf("load listings from mysql: %w", err)
	}
	return ls, nil
}
