package redis

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"dam-dash/db"
	"dam-dash/models"
	"dam-dash/models/report"
)

// REPORT_ROWS_KEY_FORMAT caches shaped rows per "<report_date>|<province>" filter key.
const REPORT_ROWS_KEY_FORMAT = "dam_reports_v1:%s"
const FILTER_OPTIONS_KEY = "filter_options_v1"

// RedisReportCacheDAO caches shaped dashboard data in Redis.
type RedisReportCacheDAO struct {
	client db.RedisClient
}

func NewRedisReportCacheDAO(client db.RedisClient) *RedisReportCacheDAO {
	return &RedisReportCacheDAO{client: client}
}

// GetReportRows returns the cached rows for a filter; ok is false on a miss.
func (dao *RedisReportCacheDAO) GetReportRows(filter models.ReportFilter) (rows []report.DisplayRow, ok bool, err error) {
	key := fmt.Sprintf(REPORT_ROWS_KEY_FORMAT, filter.Key())
	str, err := dao.client.Get(key)
	if errors.Is(err, db.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get report rows from redis: %w", err)
	}
	if err := json.Unmarshal([]byte(str), &rows); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal report rows JSON: %w", err)
	}
	return rows, true, nil
}

func (dao *RedisReportCacheDAO) SetReportRows(filter models.ReportFilter, rows []report.DisplayRow, ttl time.Duration) error {
	if rows == nil {
		rows = []report.DisplayRow{}
	}
	data, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("failed to marshal report rows for %s: %w", filter.Key(), err)
	}
	key := fmt.Sprintf(REPORT_ROWS_KEY_FORMAT, filter.Key())
	if err := dao.client.Set(key, string(data), ttl); err != nil {
		return fmt.Errorf("failed to set report rows in redis: %w", err)
	}
	return nil
}

func (dao *RedisReportCacheDAO) GetFilterOptions() (*models.FilterOptions, error) {
	str, err := dao.client.Get(FILTER_OPTIONS_KEY)
	if errors.Is(err, db.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get filter options from redis: %w", err)
	}
	var opts models.FilterOptions
	if err := json.Unmarshal([]byte(str), &opts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal filter options JSON: %w", err)
	}
	return &opts, nil
}

func (dao *RedisReportCacheDAO) SetFilterOptions(opts *models.FilterOptions, ttl time.Duration) error {
	data, err := json.Marshal(opts)
	if err != nil {
		return fmt.Errorf("failed to marshal filter options: %w", err)
	}
	if err := dao.client.Set(FILTER_OPTIONS_KEY, string(data), ttl); err != nil {
		return fmt.Errorf("failed to set filter options in redis: %w", err)
	}
	return nil
}
