package ports

import (
	"context"

	"github.com/aretw0/pendant/pkg/domain"
)

// ReportStore defines the interface for persisting behaviour run reports.
type ReportStore interface {
	// Save persists the report under report.ID.
	Save(ctx context.Context, report *domain.Report) error

	// Load retrieves a report by ID.
	// Returns domain.ErrReportNotFound if the report does not exist.
	Load(ctx context.Context, id string) (*domain.Report, error)

	// Delete removes a report.
	Delete(ctx context.Context, id string) error

	// List returns stored report IDs, most recent first.
	List(ctx context.Context) ([]string, error)
}
