package route

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewRepository(sqlx.NewDb(db, "sqlmock")), mock
}

var routeColumns = []string{"id", "campus", "name", "stop_codes", "active"}

func TestGetRoutesScansStopCodes(t *testing.T) {
	repo, mock := newMockRepository(t)

	rows := sqlmock.NewRows(routeColumns).
		AddRow("9a1d12aa-4a7e-4a0e-9c55-000000000001", "Tesano", "Campus Loop", `["TSN-01","TSN-02","TSN-03"]`, true)
	mock.ExpectQuery(`SELECT \* FROM routes WHERE campus = \$1`).
		WithArgs("Tesano").
		WillReturnRows(rows)

	campus := "Tesano"
	routes, err := repo.GetRoutes(context.Background(), &campus)
	if err != nil {
		t.Fatalf("GetRoutes: %v", err)
	}
	if len(routes) != 1 {
		t.Fatalf("expected 1 route, got %d", len(routes))
	}
	got := routes[0].StopCodes
	if len(got) != 3 || got[0] != "TSN-01" || got[2] != "TSN-03" {
		t.Errorf("unexpected stop codes: %v", got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateMarshalsStopCodes(t *testing.T) {
	repo, mock := newMockRepository(t)

	id := uuid.New()
	mock.ExpectQuery(`INSERT INTO routes`).
		WithArgs(id, "Tesano", "Campus Loop", []byte(`["TSN-01","TSN-02"]`), true).
		WillReturnRows(sqlmock.NewRows(routeColumns).
			AddRow(id.String(), "Tesano", "Campus Loop", `["TSN-01","TSN-02"]`, true))

	rt := Route{ID: id, Campus: "Tesano", Name: "Campus Loop", StopCodes: StopCodes{"TSN-01", "TSN-02"}, Active: true}
	if err := repo.Create(context.Background(), &rt); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestScanRejectsUnknownType(t *testing.T) {
	var s StopCodes
	if err := s.Scan(42); err == nil {
		t.Fatal("expected error scanning int into StopCodes")
	}
}
