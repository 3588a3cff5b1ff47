package database_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/goleads/internal/database"
	"github.com/jonesrussell/goleads/internal/domain"
)

// signalColumns lists the columns returned by signal SELECT queries.
var signalColumns = []string{
	"id", "source_name", "external_id", "type", "industry", "score",
	"title", "description", "url", "location", "value_czk",
	"company_name", "contact_email", "contact_phone", "ico",
	"deadline", "published_at", "harvested_at",
}

func newSignalRepo(t *testing.T) (*database.SignalRepository, sqlmock.Sqlmock, func()) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	db := sqlx.NewDb(mockDB, "postgres")
	repo := database.NewSignalRepository(db)

	return repo, mock, func() { mockDB.Close() }
}

func expectationsMet(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestSignalRepository_UpsertBatch_CountsInserted(t *testing.T) {
	repo, mock, cleanup := newSignalRepo(t)
	defer cleanup()

	ctx := context.Background()
	now := time.Now()

	signals := []domain.Signal{
		{SourceName: "epoptavka", ExternalID: "123456", Type: domain.SignalRFP, Title: "Tvorba webu", HarvestedAt: now},
		{SourceName: "epoptavka", ExternalID: "123789", Type: domain.SignalRFP, Title: "Redesign", HarvestedAt: now},
	}

	mock.ExpectBegin()
	// First row is new, second one hits the dedup constraint.
	mock.ExpectQuery("INSERT INTO signals").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("signal-id-1"))
	mock.ExpectQuery("INSERT INTO signals").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectCommit()

	inserted, err := repo.UpsertBatch(ctx, signals)
	if err != nil {
		t.Fatalf("UpsertBatch() error = %v", err)
	}
	if len(inserted) != 1 {
		t.Fatalf("UpsertBatch() inserted %d signals, want 1", len(inserted))
	}
	if inserted[0].ExternalID != "123456" {
		t.Errorf("UpsertBatch() inserted external_id = %q, want 123456", inserted[0].ExternalID)
	}
	if inserted[0].ID != "signal-id-1" {
		t.Errorf("UpsertBatch() inserted id = %q, want signal-id-1", inserted[0].ID)
	}

	expectationsMet(t, mock)
}

func TestSignalRepository_UpsertBatch_Empty(t *testing.T) {
	repo, mock, cleanup := newSignalRepo(t)
	defer cleanup()

	inserted, err := repo.UpsertBatch(context.Background(), nil)
	if err != nil {
		t.Fatalf("UpsertBatch() error = %v", err)
	}
	if len(inserted) != 0 {
		t.Errorf("UpsertBatch() inserted %d signals, want 0", len(inserted))
	}

	expectationsMet(t, mock)
}

func TestSignalRepository_GetByID_NotFound(t *testing.T) {
	repo, mock, cleanup := newSignalRepo(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM signals WHERE id").
		WithArgs("missing-id").
		WillReturnRows(sqlmock.NewRows(signalColumns))

	_, err := repo.GetByID(context.Background(), "missing-id")
	if !errors.Is(err, database.ErrSignalNotFound) {
		t.Errorf("GetByID() error = %v, want ErrSignalNotFound", err)
	}

	expectationsMet(t, mock)
}

func TestSignalRepository_List_Filtered(t *testing.T) {
	repo, mock, cleanup := newSignalRepo(t)
	defer cleanup()

	now := time.Now()
	rows := sqlmock.NewRows(signalColumns).AddRow(
		"id-1", "nenzakazky", "N006/26/V00012345", "tender", "web_development", 0.72,
		"Vývoj portálu", "", "https://nen.nipez.cz/x", "Praha", int64(2_500_000),
		"Město Brno", "", "", "45317054",
		now, now, now,
	)

	mock.ExpectQuery("SELECT (.+) FROM signals WHERE type = (.+) AND score >=").
		WithArgs(domain.SignalTender, 0.5, 50).
		WillReturnRows(rows)

	signals, err := repo.List(context.Background(), database.SignalFilter{
		Type:     domain.SignalTender,
		MinScore: 0.5,
	})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(signals) != 1 {
		t.Fatalf("List() returned %d signals, want 1", len(signals))
	}
	if signals[0].ExternalID != "N006/26/V00012345" {
		t.Errorf("List() external_id = %q", signals[0].ExternalID)
	}

	expectationsMet(t, mock)
}

func TestSignalRepository_List_TextSearch(t *testing.T) {
	repo, mock, cleanup := newSignalRepo(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM signals WHERE \(title ILIKE (.+) OR description ILIKE (.+)\) AND harvested_at >=`).
		WithArgs("%eshop%", sqlmock.AnyArg(), 50).
		WillReturnRows(sqlmock.NewRows(signalColumns))

	signals, err := repo.List(context.Background(), database.SignalFilter{
		Search: "eshop",
		Since:  time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(signals) != 0 {
		t.Fatalf("List() returned %d signals, want 0", len(signals))
	}

	expectationsMet(t, mock)
}

func TestSignalRepository_CountBySource(t *testing.T) {
	repo, mock, cleanup := newSignalRepo(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"source_name", "cnt"}).
		AddRow("epoptavka", 12).
		AddRow("vestnik", 3)

	mock.ExpectQuery("SELECT source_name, COUNT").WillReturnRows(rows)

	counts, err := repo.CountBySource(context.Background())
	if err != nil {
		t.Fatalf("CountBySource() error = %v", err)
	}
	if counts["epoptavka"] != 12 || counts["vestnik"] != 3 {
		t.Errorf("CountBySource() = %v", counts)
	}

	expectationsMet(t, mock)
}
