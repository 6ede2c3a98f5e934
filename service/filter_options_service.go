package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"dam-dash/dao"
	"dam-dash/models"
	"dam-dash/observability"
)

const DISPLAY_DATE_LAYOUT = "02 January 2006"
const ALL_DATES_DISPLAY = "All Dates"

// FilterOptionsProvider lists the selectable filter values.
type FilterOptionsProvider interface {
	GetFilterOptions(ctx context.Context) (*models.FilterOptions, error)
}

// FilterOptionsService reads the known report dates and provinces from the store.
type FilterOptionsService struct {
	reportDao    dao.ReportDAO
	metrics      *observability.Metrics
	storeTimeout time.Duration
}

func NewFilterOptionsService(reportDao dao.ReportDAO, metrics *observability.Metrics, storeTimeout time.Duration) *FilterOptionsService {
	return &FilterOptionsService{
		reportDao:    reportDao,
		metrics:      metrics,
		storeTimeout: storeTimeout,
	}
}

// GetFilterOptions returns report dates newest first, provinces in ascending
// order, and the default report date: the latest one when it is among the
// known dates, All otherwise.
func (s *FilterOptionsService) GetFilterOptions(ctx context.Context) (*models.FilterOptions, error) {
	if s.storeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.storeTimeout)
		defer cancel()
	}

	start := time.Now()
	dates, err := s.reportDao.DistinctReportDates(ctx)
	s.observeQuery("report_dates", start)
	if err != nil {
		return nil, s.unavailable("DistinctReportDates", err)
	}

	start = time.Now()
	provinces, err := s.reportDao.DistinctProvinces(ctx)
	s.observeQuery("provinces", start)
	if err != nil {
		return nil, s.unavailable("DistinctProvinces", err)
	}

	start = time.Now()
	latest, err := s.reportDao.LatestReportDate(ctx)
	s.observeQuery("latest_date", start)
	if err != nil {
		return nil, s.unavailable("LatestReportDate", err)
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].After(dates[j]) })
	reportDates := make([]string, 0, len(dates))
	seen := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		day := d.Format(models.ReportDateLayout)
		if _, dup := seen[day]; dup {
			continue
		}
		seen[day] = struct{}{}
		reportDates = append(reportDates, day)
	}
	sort.Strings(provinces)

	opts := &models.FilterOptions{
		ReportDates:       reportDates,
		Provinces:         provinces,
		DefaultReportDate: models.All,
	}
	if latest != nil {
		if _, ok := seen[latest.Format(models.ReportDateLayout)]; ok {
			opts.DefaultReportDate = latest.Format(models.ReportDateLayout)
		}
	}
	if opts.Provinces == nil {
		opts.Provinces = []string{}
	}
	return opts, nil
}

func (s *FilterOptionsService) unavailable(query string, err error) error {
	log.Printf("[FilterOptionsService] %s failed: %v", query, err)
	return fmt.Errorf("%w: %v", ErrDataUnavailable, err)
}

func (s *FilterOptionsService) observeQuery(query string, start time.Time) {
	if s.metrics != nil {
		s.metrics.StoreQueryDuration.WithLabelValues(query).Observe(time.Since(start).Seconds())
	}
}

// DisplayDate renders a report date filter for page headings, e.g. "03 March 2025".
func DisplayDate(reportDate string) string {
	t, err := ParseReportDate(reportDate)
	if err != nil || t == nil {
		return ALL_DATES_DISPLAY
	}
	return t.Format(DISPLAY_DATE_LAYOUT)
}
