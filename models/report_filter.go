package models

import "fmt"

// All is the wildcard filter value for both report date and province.
const All = "All"

// ReportFilter selects dam reports by report date (YYYY-MM-DD) and province.
// A field set to All is left out of the store query.
type ReportFilter struct {
	ReportDate string `json:"report_date"`
	Province   string `json:"province"`
}

func NewReportFilter(reportDate, province string) ReportFilter {
	if reportDate == "" {
		reportDate = All
	}
	if province == "" {
		province = All
	}
	return ReportFilter{ReportDate: reportDate, Province: province}
}

func (f ReportFilter) HasProvince() bool { return f.Province != All && f.Province != "" }

// Key identifies the filter in caches.
func (f ReportFilter) Key() string {
	return fmt.Sprintf("%s|%s", f.ReportDate, f.Province)
}

// ReportDateLayout is the wire format of report dates in filters and URLs.
const ReportDateLayout = "2006-01-02"
