package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"taxi_dispatch/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestCredentialSQLite_GetByPin_Found(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer func(db *sql.DB) {
		err := db.Close()
		if err != nil {

		}
	}(db)

	repo := repository.NewCredentialSQLite(db)

	rows := sqlmock.NewRows([]string{"pin", "name", "admin"}).
		AddRow("7956", "Admin", true)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT pin, name, admin FROM drivers WHERE pin = ?")).
		WithArgs("7956").
		WillReturnRows(rows)

	got, err := repo.GetByPin(context.Background(), "7956")
	if err != nil {
		t.Fatalf("GetByPin() unexpected error: %v", err)
	}
	if got == nil || got.Pin != "7956" || got.Name != "Admin" || !got.Admin {
		t.Fatalf("GetByPin() unexpected driver: %+v", got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCredentialSQLite_GetByPin_NoMatchReturnsNilNil(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer func(db *sql.DB) {
		err := db.Close()
		if err != nil {

		}
	}(db)

	repo := repository.NewCredentialSQLite(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT pin, name, admin FROM drivers WHERE pin = ?")).
		WithArgs("0000").
		WillReturnError(sql.ErrNoRows)

	got, err := repo.GetByPin(context.Background(), "0000")
	if err != nil {
		t.Fatalf("GetByPin() unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("GetByPin() expected nil for no match, got %+v", got)
	}
}

func TestCredentialSQLite_GetByPin_QueryErrorIsPropagated(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer func(db *sql.DB) {
		err := db.Close()
		if err != nil {

		}
	}(db)

	repo := repository.NewCredentialSQLite(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT pin, name, admin FROM drivers WHERE pin = ?")).
		WithArgs("1254").
		WillReturnError(errors.New("db down"))

	if _, err := repo.GetByPin(context.Background(), "1254"); err == nil {
		t.Fatalf("GetByPin() expected error, got nil")
	}
}

func TestCredentialSQLite_UpdatePin_KeyedByCurrentPin(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer func(db *sql.DB) {
		err := db.Close()
		if err != nil {

		}
	}(db)

	repo := repository.NewCredentialSQLite(db)

	// new pin first, current pin in the WHERE clause
	mock.ExpectExec(regexp.QuoteMeta("UPDATE drivers SET pin = ? WHERE pin = ?")).
		WithArgs("9999", "7956").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdatePin(context.Background(), "7956", "9999"); err != nil {
		t.Fatalf("UpdatePin() error = %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCredentialSQLite_UpdatePin_NoRowsMeansNoSuchDriver(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer func(db *sql.DB) {
		err := db.Close()
		if err != nil {

		}
	}(db)

	repo := repository.NewCredentialSQLite(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE drivers SET pin = ? WHERE pin = ?")).
		WithArgs("9999", "4242").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.UpdatePin(context.Background(), "4242", "9999")
	if !errors.Is(err, repository.ErrNoSuchDriver) {
		t.Fatalf("UpdatePin() expected ErrNoSuchDriver, got %v", err)
	}
}

func TestCredentialSQLite_List_ReturnsAllRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer func(db *sql.DB) {
		err := db.Close()
		if err != nil {

		}
	}(db)

	repo := repository.NewCredentialSQLite(db)

	rows := sqlmock.NewRows([]string{"pin", "name", "admin"}).
		AddRow("7956", "Admin", true).
		AddRow("1254", "Kuljettaja", false)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT pin, name, admin FROM drivers ORDER BY name")).
		WillReturnRows(rows)

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].Name != "Admin" || got[1].Name != "Kuljettaja" {
		t.Fatalf("List() unexpected drivers: %+v", got)
	}
}
