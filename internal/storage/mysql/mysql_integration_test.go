//go:build integration || !unit

package mysql_test

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"hotel_booking/internal/domain"
	"hotel_booking/internal/storage"
	mysqlrepo "hotel_booking/internal/storage/mysql"
)

// ---------- small helpers ----------

func mustEnv(t *testing.T, k string) string {
	t.Helper()
	v := os.Getenv(k)
	if v == "" {
		t.Fatalf("%s not set; export it (e.g. MIGRATIONS_DIR=/path/to/sql)", k)
	}
	return v
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := mustEnv(t, "MIGRATIONS_DIR")

	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		t.Fatalf("MIGRATIONS_DIR=%s is not a directory or missing", dir)
	}

	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
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

// ---------- the test ----------
func TestRepo_MySQL_CatalogAndReservations(t *testing.T) {
	// Start isolated MySQL; let Docker pick a free host port.
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}

	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=hotel_booking",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:%s@tcp(127.0.0.1:%s)/%s?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		"root", hostPort, "hotel_booking")

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

	a := storage.NewAdapter(mysqlrepo.New(db), "mysql")
	ctx := context.Background()

	// Arrange
	hotels := []domain.Hotel{{
		ID: "hotel-1", Name: "Hotel Prueba", Location: "Medellín", Description: "Desc",
		IsActive: true, CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Rooms: []domain.Room{{ID: "room-1", Type: domain.RoomSuite, Name: "Suite", PricePerNight: 300000,
			Capacity: 2, Available: 1, Amenities: []string{"TV", "Wi-Fi"}, Size: 25, IsActive: true}},
	}}
	if err := a.SaveCatalog(ctx, hotels); err != nil {
		t.Fatalf("SaveCatalog: %v", err)
	}
	// overwrite goes through ON DUPLICATE KEY
	hotels[0].Name = "Hotel Prueba 2"
	if err := a.SaveCatalog(ctx, hotels); err != nil {
		t.Fatalf("SaveCatalog overwrite: %v", err)
	}
	res := []domain.Reservation{{ID: "RES-1", HotelID: "hotel-1", RoomID: "room-1", Status: domain.StatusPending}}
	if err := a.Write(ctx, storage.KeyReservations, res); err != nil {
		t.Fatalf("Write reservations: %v", err)
	}

	// Assert
	got, err := a.LoadCatalog(ctx)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if got.Count != 1 || got.Hotels[0].Name != "Hotel Prueba 2" || len(got.Hotels[0].Rooms) != 1 {
		t.Fatalf("unexpected catalog: %+v", got)
	}
	var back []domain.Reservation
	if ok, err := a.Read(ctx, storage.KeyReservations, &back); err != nil || !ok || back[0].ID != "RES-1" {
		t.Fatalf("reservations: %+v ok=%v err=%v", back, ok, err)
	}
	if err := a.Remove(ctx, storage.KeyReservations); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if ok, _ := a.Read(ctx, storage.KeyReservations, &back); ok {
		t.Fatal("expected reservations to be gone")
	}
}
