package services

import (
	"context"
	"log"
	"time"

	"dam-dash/dao/redis"
	"dam-dash/models"
	"dam-dash/models/report"
	"dam-dash/observability"
)

const (
	CACHE_REPORT_ROWS    = "report_rows"
	CACHE_FILTER_OPTIONS = "filter_options"
)

// CachedReportService sits in front of the report shaper and the filter
// options service, caching their results per filter with a TTL. Cache
// failures are logged and the store is queried directly.
type CachedReportService struct {
	fetcher          ReportFetcher
	optionsProvider  FilterOptionsProvider
	cacheDao         *redis.RedisReportCacheDAO
	metrics          *observability.Metrics
	reportsTTL       time.Duration
	filterOptionsTTL time.Duration
}

func NewCachedReportService(
	fetcher ReportFetcher,
	optionsProvider FilterOptionsProvider,
	cacheDao *redis.RedisReportCacheDAO,
	metrics *observability.Metrics,
	reportsTTL, filterOptionsTTL time.Duration,
) *CachedReportService {
	return &CachedReportService{
		fetcher:          fetcher,
		optionsProvider:  optionsProvider,
		cacheDao:         cacheDao,
		metrics:          metrics,
		reportsTTL:       reportsTTL,
		filterOptionsTTL: filterOptionsTTL,
	}
}

// Fetch returns cached rows for (reportDate, province) or fetches and caches them.
func (s *CachedReportService) Fetch(ctx context.Context, reportDate, province string) ([]report.DisplayRow, error) {
	filter := models.NewReportFilter(reportDate, province)

	rows, ok, err := s.cacheDao.GetReportRows(filter)
	switch {
	case err != nil:
		s.countCache(CACHE_REPORT_ROWS, "error")
		log.Printf("[CachedReportService] Cache read failed for %s: %v", filter.Key(), err)
	case ok:
		s.countCache(CACHE_REPORT_ROWS, "hit")
		return rows, nil
	default:
		s.countCache(CACHE_REPORT_ROWS, "miss")
	}

	rows, err = s.fetcher.Fetch(ctx, filter.ReportDate, filter.Province)
	if err != nil {
		return nil, err
	}
	if err := s.cacheDao.SetReportRows(filter, rows, s.reportsTTL); err != nil {
		log.Printf("[CachedReportService] Cache write failed for %s: %v", filter.Key(), err)
	}
	return rows, nil
}

func (s *CachedReportService) GetFilterOptions(ctx context.Context) (*models.FilterOptions, error) {
	opts, err := s.cacheDao.GetFilterOptions()
	switch {
	case err != nil:
		s.countCache(CACHE_FILTER_OPTIONS, "error")
		log.Printf("[CachedReportService] Filter options cache read failed: %v", err)
	case opts != nil:
		s.countCache(CACHE_FILTER_OPTIONS, "hit")
		return opts, nil
	default:
		s.countCache(CACHE_FILTER_OPTIONS, "miss")
	}

	opts, err = s.optionsProvider.GetFilterOptions(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cacheDao.SetFilterOptions(opts, s.filterOptionsTTL); err != nil {
		log.Printf("[CachedReportService] Filter options cache write failed: %v", err)
	}
	return opts, nil
}

func (s *CachedReportService) countCache(cache, result string) {
	if s.metrics != nil {
		s.metrics.Cache.WithLabelValues(cache, result).Inc()
	}
}
