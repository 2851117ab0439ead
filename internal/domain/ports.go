package domain

import "context"

// ListingSource produces the full dataset once at startup.
type ListingSource interface {
	Load(ctx context.Context) ([]Listing, error)
}

type ListingRepository interface {
	// Write paths
	Clear(ctx context.Context) error
	InsertListings(ctx context.Context, ls []Listing) error

	// Read paths
	ListListings(ctx context.Context) ([]Listing, error)
	CountListings(ctx context.Context) (int, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
