package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"

	"dam-dash/models"
	"dam-dash/models/report"
	services "dam-dash/service"
	"dam-dash/util"
)

const (
	REPORT_DATE_QUERY_ARG = "report_date"
	PROVINCE_QUERY_ARG    = "province"

	CSV_FILENAME = "dam-levels.csv"
)

// ReportHandler serves the dam report data as JSON and CSV.
type ReportHandler struct {
	fetcher services.ReportFetcher
	options services.FilterOptionsProvider
}

func NewReportHandler(fetcher services.ReportFetcher, options services.FilterOptionsProvider) *ReportHandler {
	return &ReportHandler{fetcher: fetcher, options: options}
}

// GetReports handles GET /v1/reports?report_date={YYYY-MM-DD|All}&province={name|All}
func (h *ReportHandler) GetReports(w http.ResponseWriter, r *http.Request) {
	filter, rows, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Filter  models.ReportFilter `json:"filter"`
		Columns []string            `json:"columns"`
		Rows    []report.DisplayRow `json:"rows"`
	}{filter, report.TableColumns, rows})
}

// GetReportsCSV handles GET /v1/reports.csv with the same query args as GetReports.
func (h *ReportHandler) GetReportsCSV(w http.ResponseWriter, r *http.Request) {
	_, rows, ok := h.load(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+CSV_FILENAME+`"`)
	w.WriteHeader(http.StatusOK)
	if err := util.WriteReportCSV(w, rows); err != nil {
		log.Printf("[ReportHandler] request_id=%s Error writing CSV: %v", RequestIDFrom(r.Context()), err)
	}
}

// GetFilterOptions handles GET /v1/filters
func (h *ReportHandler) GetFilterOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := h.options.GetFilterOptions(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, opts)
}

// load resolves the filter from the query and fetches its rows. On failure the
// error response has already been written.
func (h *ReportHandler) load(w http.ResponseWriter, r *http.Request) (models.ReportFilter, []report.DisplayRow, bool) {
	filter, _, err := resolveFilter(r, h.options)
	if err != nil {
		writeError(w, r, err)
		return filter, nil, false
	}
	rows, err := h.fetcher.Fetch(r.Context(), filter.ReportDate, filter.Province)
	if err != nil {
		writeError(w, r, err)
		return filter, nil, false
	}
	return filter, rows, true
}

// resolveFilter reads the filter query args. A missing report date selects the
// default one; a missing province selects All. A well formed date with no
// reports is not an error, it yields no rows.
func resolveFilter(r *http.Request, provider services.FilterOptionsProvider) (models.ReportFilter, *models.FilterOptions, error) {
	query := r.URL.Query()
	if _, err := services.ParseReportDate(query.Get(REPORT_DATE_QUERY_ARG)); err != nil {
		return models.NewReportFilter(query.Get(REPORT_DATE_QUERY_ARG), query.Get(PROVINCE_QUERY_ARG)), nil, err
	}
	opts, err := provider.GetFilterOptions(r.Context())
	if err != nil {
		return models.ReportFilter{}, nil, err
	}
	filter := filterFromQuery(query, opts)
	if _, err := services.ParseReportDate(filter.ReportDate); err != nil {
		return filter, opts, err
	}
	return filter, opts, nil
}

func filterFromQuery(vals url.Values, opts *models.FilterOptions) models.ReportFilter {
	reportDate := vals.Get(REPORT_DATE_QUERY_ARG)
	if _, present := vals[REPORT_DATE_QUERY_ARG]; !present || reportDate == "" {
		reportDate = opts.DefaultReportDate
	}
	return models.NewReportFilter(reportDate, vals.Get(PROVINCE_QUERY_ARG))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidReportDate):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrDataUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	log.Printf("[Handlers] request_id=%s Responding %d: %v", RequestIDFrom(r.Context()), status, err)
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("Error encoding response:", err)
	}
}
