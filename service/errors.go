package services

import "errors"

var (
	// ErrDataUnavailable means the report store could not be reached or the query failed.
	ErrDataUnavailable = errors.New("report data unavailable")
	// ErrMissingBaseline means a report has no last_week value to compute change from.
	ErrMissingBaseline = errors.New("report has no last week baseline")
	// ErrInvalidReportDate means the report date filter is neither All nor YYYY-MM-DD.
	ErrInvalidReportDate = errors.New("invalid report date")
)
