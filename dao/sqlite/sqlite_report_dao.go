package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"dam-dash/dao"
	"dam-dash/models"
	"dam-dash/models/report"
)

// SQLiteReportDAO reads dam reports from a local SQLite database. It backs
// the dashboard when running without the hosted document store.
type SQLiteReportDAO struct {
	db *sql.DB
}

func NewSQLiteReportDAO(db *sql.DB) *SQLiteReportDAO {
	return &SQLiteReportDAO{db: db}
}

// EnsureSchema creates the reports table if it does not exist.
func (d *SQLiteReportDAO) EnsureSchema(ctx context.Context) error {
	_, err := d.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS reports (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			report_date TEXT NOT NULL,
			dam TEXT NOT NULL,
			province TEXT NOT NULL,
			river TEXT,
			full_storage_capacity REAL NOT NULL,
			this_week REAL NOT NULL,
			last_week REAL,
			latitude REAL NOT NULL,
			longitude REAL NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_reports_date_province ON reports(report_date, province);
	`)
	if err != nil {
		return fmt.Errorf("creating reports table: %w", err)
	}
	return nil
}

func (d *SQLiteReportDAO) FindReports(ctx context.Context, q dao.ReportQuery) ([]report.DamReport, error) {
	query := `
		SELECT report_date, dam, province, COALESCE(river, ''), full_storage_capacity,
		       this_week, last_week, latitude, longitude
		FROM reports`
	var conds []string
	var args []interface{}
	if q.ReportDate != nil {
		conds = append(conds, "report_date = ?")
		args = append(args, q.ReportDate.Format(models.ReportDateLayout))
	}
	if q.Province != "" && q.Province != models.All {
		conds = append(conds, "province = ?")
		args = append(args, q.Province)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY id"

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying reports: %w", err)
	}
	defer rows.Close()

	var reports []report.DamReport
	for rows.Next() {
		var (
			dateStr  string
			r        report.DamReport
			lastWeek sql.NullFloat64
			lat, lon float64
		)
		if err := rows.Scan(&dateStr, &r.Dam, &r.Province, &r.River, &r.FullStorageCapacity,
			&r.ThisWeek, &lastWeek, &lat, &lon); err != nil {
			return nil, fmt.Errorf("scanning report: %w", err)
		}
		date, err := time.Parse(models.ReportDateLayout, dateStr)
		if err != nil {
			log.Printf("[SQLiteReportDAO] Skipping report for %q with bad date %q", r.Dam, dateStr)
			continue
		}
		r.ReportDate = date
		if lastWeek.Valid {
			lw := lastWeek.Float64
			r.LastWeek = &lw
		}
		r.LatLong = report.LatLong{lat, lon}
		if err := r.Validate(); err != nil {
			log.Printf("[SQLiteReportDAO] Skipping invalid report: %v", err)
			continue
		}
		reports = append(reports, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reports: %w", err)
	}
	return reports, nil
}

func (d *SQLiteReportDAO) DistinctReportDates(ctx context.Context) ([]time.Time, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT DISTINCT report_date FROM reports`)
	if err != nil {
		return nil, fmt.Errorf("querying report dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scanning report date: %w", err)
		}
		t, err := time.Parse(models.ReportDateLayout, s)
		if err != nil {
			continue
		}
		dates = append(dates, t)
	}
	return dates, rows.Err()
}

func (d *SQLiteReportDAO) DistinctProvinces(ctx context.Context) ([]string, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT DISTINCT province FROM reports`)
	if err != nil {
		return nil, fmt.Errorf("querying provinces: %w", err)
	}
	defer rows.Close()

	var provinces []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scanning province: %w", err)
		}
		provinces = append(provinces, p)
	}
	return provinces, rows.Err()
}

func (d *SQLiteReportDAO) LatestReportDate(ctx context.Context) (*time.Time, error) {
	var s sql.NullString
	if err := d.db.QueryRowContext(ctx, `SELECT MAX(report_date) FROM reports WHERE report_date GLOB '[0-9][0-9][0-9][0-9]-[0-9][0-9]-[0-9][0-9]'`).Scan(&s); err != nil {
		return nil, fmt.Errorf("querying latest report date: %w", err)
	}
	if !s.Valid {
		return nil, nil
	}
	t, err := time.Parse(models.ReportDateLayout, s.String)
	if err != nil {
		return nil, fmt.Errorf("parsing latest report date %q: %w", s.String, err)
	}
	return &t, nil
}

func (d *SQLiteReportDAO) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}
