package remote_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"nyc_rent_dashboard/internal/adapters/dataset"
	"nyc_rent_dashboard/internal/adapters/remote"
)

const csvBody = "id,nome,host_id,host_name,bairro_group,bairro,latitude,longitude,room_type,price,minimo_noites,numero_de_reviews,ultima_review,reviews_por_mes,calculado_host_listings_count,disponibilidade_365\n" +
	"1,Room,10,Ann,Queens,Astoria,40.7,-73.9,Private room,50,1,3,2019-06-22,0.3,1,300\n"

func TestClient_Open_RetriesThenSuccess(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch atomic.AddInt32(&hits, 1) {
		case 1:
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusServiceUnavailable)
		case 2:
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.Header().Set("Content-Type", "text/csv")
			_, _ = io.WriteString(w, csvBody)
		}
	}))
	defer ts.Close()

	cl := remote.New(time.Second, 100) // high RPS for tests
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	src := dataset.NewSource("url:"+ts.URL, func(ctx context.Context) (io.ReadCloser, error) {
		return cl.Open(ctx, ts.URL+"/pricing.csv")
	})
	ls, err := src.Load(ctx)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(ls) != 1 || ls[0].Neighborhood != "Queens" || ls[0].Price != 50 {
		t.Fatalf("unexpected listings: %+v", ls)
	}
	if atomic.LoadInt32(&hits) < 3 {
		t.Fatalf("expected at least 3 calls due to retries, got %d", hits)
	}
}

func TestClient_Open_404(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	cl := remote.New(time.Second, 100)
	_, err := cl.Open(context.Background(), ts.URL+"/missing.csv")
	if !errors.Is(err, remote.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClient_Open_ContextCanceled(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "5")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	cl := remote.New(time.Second, 100)
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	_, err := cl.Open(ctx, ts.URL)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}
