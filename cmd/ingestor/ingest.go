package main

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"nyc_rent_dashboard/internal/domain"
)

// ingest replaces the stored listings with ls, inserting batches through a
// bounded pool. Any failed batch makes the whole run an error so a truncated
// table is never reported as success.
func ingest(ctx context.Context, repo domain.ListingRepository, ls []domain.Listing, workers, batch int) (int, error) {
	// listings carry no stable key once the id is dropped, so each run replaces the table
	if err := repo.Clear(ctx); err != nil {
		return 0, fmt.Errorf("clear listings: %w", err)
	}

	sem := semaphore.NewWeighted(int64(workers))
	var (
		wg     sync.WaitGroup
		failed atomic.Int64
	)

	for start := 0; start < len(ls); start += batch {
		end := min(start+batch, len(ls))

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return 0, fmt.Errorf("semaphore acquire: %w", err)
		}

		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			defer sem.Release(1)

			if err := repo.InsertListings(ctx, ls[lo:hi]); err != nil {
				failed.Add(int64(hi - lo))
				log.Warn().Int("from", lo).Int("to", hi).Err(err).Msg("batch insert failed")
				return
			}
			log.Debug().Int("from", lo).Int("to", hi).Msg("batch ok")
		}(start, end)
	}

	wg.Wait()

	n, err := repo.CountListings(ctx)
	if err != nil {
		return 0, fmt.Errorf("count listings: %w", err)
	}
	if f := failed.Load(); f > 0 {
		return n, fmt.Errorf("%d of %d listings failed to insert (%d stored)", f, len(ls), n)
	}
	return n, nil
}
