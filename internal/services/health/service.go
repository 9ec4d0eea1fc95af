package health

import (
	"context"
	"database/sql"
	"time"

	"resume-optimizer/internal/shared/storage/db"
)

// Database connectivity states reported by Status.
const (
	DatabaseConnected    = "connected"
	DatabaseDisconnected = "disconnected"
	DatabaseMemory       = "memory"
)

// Report is the health payload.
type Report struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Database  string    `json:"database"`
}

// Service encapsulates health-related checks.
type Service struct {
	DB          *sql.DB
	PingTimeout time.Duration
	now         func() time.Time
}

// NewService constructs a new health service. A nil database reports in-memory storage.
func NewService(database *sql.DB) *Service {
	return &Service{DB: database, PingTimeout: 2 * time.Second, now: time.Now}
}

// Status reports liveness and store connectivity. The service itself is always OK.
func (s *Service) Status(ctx context.Context) Report {
	report := Report{Status: "OK", Timestamp: s.now().UTC(), Database: DatabaseMemory}
	if s.DB == nil {
		return report
	}
	if err := db.Ping(ctx, s.DB, s.PingTimeout); err != nil {
		report.Database = DatabaseDisconnected
		return report
	}
	report.Database = DatabaseConnected
	return report
}
