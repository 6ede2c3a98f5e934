package services

import (
	"context"
	"time"

	"dam-dash/dao"
	"dam-dash/models/report"
)

// fakeReportDAO is an in-memory ReportDAO applying the same equality filter as the stores.
type fakeReportDAO struct {
	reports   []report.DamReport
	err       error
	latest    *time.Time
	lastQuery dao.ReportQuery
	finds     int
}

func (f *fakeReportDAO) FindReports(_ context.Context, q dao.ReportQuery) ([]report.DamReport, error) {
	f.finds++
	f.lastQuery = q
	if f.err != nil {
		return nil, f.err
	}
	var out []report.DamReport
	for _, r := range f.reports {
		if q.ReportDate != nil && !r.ReportDate.Equal(*q.ReportDate) {
			continue
		}
		if q.Province != "" && r.Province != q.Province {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeReportDAO) DistinctReportDates(context.Context) ([]time.Time, error) {
	if f.err != nil {
		return nil, f.err
	}
	var dates []time.Time
	for _, r := range f.reports {
		dates = append(dates, r.ReportDate)
	}
	return dates, nil
}

func (f *fakeReportDAO) DistinctProvinces(context.Context) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	seen := map[string]bool{}
	var provinces []string
	for _, r := range f.reports {
		if !seen[r.Province] {
			seen[r.Province] = true
			provinces = append(provinces, r.Province)
		}
	}
	return provinces, nil
}

func (f *fakeReportDAO) LatestReportDate(context.Context) (*time.Time, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.latest, nil
}

func (f *fakeReportDAO) Ping(context.Context) error { return f.err }

func pct(v float64) *float64 { return &v }

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}
