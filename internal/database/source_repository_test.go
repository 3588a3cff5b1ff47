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

func newSourceRepo(t *testing.T) (*database.SourceRepository, sqlmock.Sqlmock, func()) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	db := sqlx.NewDb(mockDB, "postgres")
	repo := database.NewSourceRepository(db)

	return repo, mock, func() { mockDB.Close() }
}

func TestSourceRepository_Sync(t *testing.T) {
	repo, mock, cleanup := newSourceRepo(t)
	defer cleanup()

	mock.ExpectExec("INSERT INTO portal_sources (.+) ON CONFLICT \\(name\\) DO UPDATE").
		WithArgs("epoptavka", domain.SignalRFP, true).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Sync(context.Background(), "epoptavka", domain.SignalRFP, true); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}

	expectationsMet(t, mock)
}

func TestSourceRepository_RecordRun(t *testing.T) {
	repo, mock, cleanup := newSourceRepo(t)
	defer cleanup()

	mock.ExpectExec("UPDATE portal_sources").
		WithArgs("vestnik", "fetch failed", 12, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.RecordRun(context.Background(), "vestnik", 12, 3, errors.New("fetch failed"))
	if err != nil {
		t.Fatalf("RecordRun() error = %v", err)
	}

	expectationsMet(t, mock)
}

func TestSourceRepository_List(t *testing.T) {
	repo, mock, cleanup := newSourceRepo(t)
	defer cleanup()

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"name", "kind", "enabled", "last_run_at", "last_error",
		"total_fetched", "total_new", "updated_at",
	}).
		AddRow("epoptavka", "rfp", true, now, "", int64(120), int64(34), now).
		AddRow("startupjobs", "hiring", false, now, "timeout", int64(60), int64(8), now)

	mock.ExpectQuery("SELECT (.+) FROM portal_sources").WillReturnRows(rows)

	states, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(states) != 2 {
		t.Fatalf("List() returned %d states, want 2", len(states))
	}
	if states[0].Name != "epoptavka" || states[0].TotalNew != 34 {
		t.Errorf("unexpected first state: %+v", states[0])
	}
	if states[1].Enabled {
		t.Errorf("startupjobs should be disabled")
	}

	expectationsMet(t, mock)
}
