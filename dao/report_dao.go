package dao

import (
	"context"
	"time"

	"dam-dash/models/report"
)

// ReportQuery is an equality filter over stored reports. Nil/empty fields
// are left out of the query.
type ReportQuery struct {
	ReportDate *time.Time
	Province   string
}

// ReportDAO is the read-only view of the dam report store.
type ReportDAO interface {
	FindReports(ctx context.Context, q ReportQuery) ([]report.DamReport, error)
	DistinctReportDates(ctx context.Context) ([]time.Time, error)
	DistinctProvinces(ctx context.Context) ([]string, error)
	// LatestReportDate returns nil when the store holds no reports.
	LatestReportDate(ctx context.Context) (*time.Time, error)
	Ping(ctx context.Context) error
}
