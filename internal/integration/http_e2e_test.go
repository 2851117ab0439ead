//go:build integration

package integration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"nyc_rent_dashboard/internal/adapters/dataset"
	server "nyc_rent_dashboard/internal/adapters/http_server"
	"nyc_rent_dashboard/internal/app"
	"nyc_rent_dashboard/internal/charts"
	mysqlrepo "nyc_rent_dashboard/internal/storage/mysql"
)

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := os.Getenv("MIGRATIONS_DIR")
	if dir == "" {
		dir = filepath.Join("..", "..", "migrations")
	}
	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir %s: %v", dir, err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

// CSV -> MySQL -> dashboard -> HTTP callback.
func TestHTTP_EndToEnd_PrivateRoom(t *testing.T) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env:        []string{"MYSQL_ROOT_PASSWORD=root", "MYSQL_DATABASE=listings"},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/listings?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		resource.GetPort("3306/tcp"))
	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	applyMigrations(t, db)

	ctx := context.Background()
	ls, err := dataset.NewFileSource("../adapters/dataset/testdata/pricing.csv").Load(ctx)
	if err != nil {
		t.Fatalf("load csv: %v", err)
	}
	repo := mysqlrepo.New(db)
	if err := repo.InsertListings(ctx, ls); err != nil {
		t.Fatalf("InsertListings: %v", err)
	}

	stored, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(stored) != len(ls) {
		t.Fatalf("stored %d listings, loaded %d", len(stored), len(ls))
	}

	d := app.NewDashboard(stored)
	srv := server.New(nil)
	srv.MountHandlers(&server.Handlers{D: d, Svc: app.NewCallbackService(d.Callbacks(), nil, time.Minute)})
	ts := httptest.NewServer(srv.Mux())
	defer ts.Close()

	res, err := http.Post(ts.URL+"/v1/callbacks/slct_roomtype", "application/json", strings.NewReader(`{"value":["Private room"]}`))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}

	var body struct {
		Outputs map[string]charts.Figure `json:"outputs"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	price, avail := body.Outputs["map3"], body.Outputs["map4"]
	if len(price.Data) != 1 || float64(price.Data[0].Y[0]) != 62.5 {
		t.Fatalf("unexpected price figure: %+v", price.Data)
	}
	if len(avail.Data) != 1 || float64(avail.Data[0].Y[0]) != 187.5 {
		t.Fatalf("unexpected availability figure: %+v", avail.Data)
	}
}
