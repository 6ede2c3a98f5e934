package models

// FilterOptions holds the selectable filter values for the dashboard.
type FilterOptions struct {
	ReportDates       []string `json:"report_dates"` // newest first
	Provinces         []string `json:"provinces"`
	DefaultReportDate string   `json:"default_report_date"`
}
