package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"
	"time"

	"dam-dash/dao"
	"dam-dash/models"
	"dam-dash/models/report"
	"dam-dash/observability"
)

// ReportFetcher produces render-ready rows for a report date and province.
type ReportFetcher interface {
	Fetch(ctx context.Context, reportDate, province string) ([]report.DisplayRow, error)
}

// ReportShaper turns stored dam reports into sorted display rows.
type ReportShaper struct {
	reportDao    dao.ReportDAO
	metrics      *observability.Metrics
	storeTimeout time.Duration
}

func NewReportShaper(reportDao dao.ReportDAO, metrics *observability.Metrics, storeTimeout time.Duration) *ReportShaper {
	return &ReportShaper{
		reportDao:    reportDao,
		metrics:      metrics,
		storeTimeout: storeTimeout,
	}
}

// Fetch queries reports matching reportDate and province ("All" matches
// everything) and shapes them into rows sorted by province ascending, then
// fill percentage descending.
func (s *ReportShaper) Fetch(ctx context.Context, reportDate, province string) ([]report.DisplayRow, error) {
	filter := models.NewReportFilter(reportDate, province)
	query, err := toReportQuery(filter)
	if err != nil {
		return nil, err
	}

	if s.storeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.storeTimeout)
		defer cancel()
	}

	start := time.Now()
	reports, err := s.reportDao.FindReports(ctx, query)
	s.observeQuery("reports", start)
	if err != nil {
		s.countFetch("error")
		log.Printf("[ReportShaper] FindReports failed for %s: %v", filter.Key(), err)
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	rows, err := ShapeReports(reports)
	if err != nil {
		s.countFetch("error")
		return nil, err
	}

	if len(rows) == 0 {
		s.countFetch("empty")
	} else {
		s.countFetch("success")
	}
	if s.metrics != nil {
		s.metrics.RowsReturned.Observe(float64(len(rows)))
	}
	log.Printf("[ReportShaper] Shaped %d rows for %s", len(rows), filter.Key())
	return rows, nil
}

// ShapeReports converts reports into display rows: capacity in millions of
// cubic metres, change indicator, colour bucket and marker size scaled to
// this result set. It never returns nil.
func ShapeReports(reports []report.DamReport) ([]report.DisplayRow, error) {
	rows := make([]report.DisplayRow, 0, len(reports))
	minCapacity, maxCapacity := math.Inf(1), math.Inf(-1)

	for _, r := range reports {
		change, err := ChangeIndicator(r.ThisWeek, r.LastWeek)
		if err != nil {
			return nil, fmt.Errorf("dam %q on %s: %w", r.Dam, r.ReportDate.Format(models.ReportDateLayout), err)
		}
		fsc := ToMillionCubicMetres(r.FullStorageCapacity)
		minCapacity = math.Min(minCapacity, fsc)
		maxCapacity = math.Max(maxCapacity, fsc)

		rows = append(rows, report.DisplayRow{
			DamName:      r.Dam,
			Province:     r.Province,
			River:        r.River,
			FSCMillionM3: fsc,
			PctFilled:    r.ThisWeek,
			Change:       change,
			ColourBucket: ColourBucketFor(r.ThisWeek),
			LatLong:      r.LatLong,
		})
	}

	for i := range rows {
		rows[i].MarkerSize = MarkerSize(rows[i].FSCMillionM3, minCapacity, maxCapacity)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Province != rows[j].Province {
			return rows[i].Province < rows[j].Province
		}
		return rows[i].PctFilled > rows[j].PctFilled
	})
	return rows, nil
}

// ParseReportDate parses a YYYY-MM-DD filter value. All yields nil.
func ParseReportDate(reportDate string) (*time.Time, error) {
	if reportDate == "" || reportDate == models.All {
		return nil, nil
	}
	t, err := time.Parse(models.ReportDateLayout, reportDate)
	if err != nil {
		return nil, fmt.Errorf("%w %q: want %s or %s", ErrInvalidReportDate, reportDate, models.ReportDateLayout, models.All)
	}
	return &t, nil
}

func toReportQuery(filter models.ReportFilter) (dao.ReportQuery, error) {
	date, err := ParseReportDate(filter.ReportDate)
	if err != nil {
		return dao.ReportQuery{}, err
	}
	q := dao.ReportQuery{ReportDate: date}
	if filter.HasProvince() {
		q.Province = filter.Province
	}
	return q, nil
}

func (s *ReportShaper) countFetch(outcome string) {
	if s.metrics != nil {
		s.metrics.ReportFetches.WithLabelValues(outcome).Inc()
	}
}

func (s *ReportShaper) observeQuery(query string, start time.Time) {
	if s.metrics != nil {
		s.metrics.StoreQueryDuration.WithLabelValues(query).Observe(time.Since(start).Seconds())
	}
}
