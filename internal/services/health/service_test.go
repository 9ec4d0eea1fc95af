package health

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestStatusWithoutDatabase(t *testing.T) {
	report := NewService(nil).Status(context.Background())
	if report.Status != "OK" {
		t.Fatalf("expected OK, got %s", report.Status)
	}
	if report.Database != DatabaseMemory {
		t.Fatalf("expected memory, got %s", report.Database)
	}
	if report.Timestamp.IsZero() {
		t.Fatalf("expected timestamp")
	}
}

func TestStatusConnected(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	mock.ExpectPing()

	report := NewService(db).Status(context.Background())
	if report.Database != DatabaseConnected {
		t.Fatalf("expected connected, got %s", report.Database)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestStatusDisconnected(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))

	report := NewService(db).Status(context.Background())
	if report.Status != "OK" {
		t.Fatalf("expected OK, got %s", report.Status)
	}
	if report.Database != DatabaseDisconnected {
		t.Fatalf("expected disconnected, got %s", report.Database)
	}
}
