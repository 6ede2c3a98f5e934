package handlers

import (
	"bytes"
	"html/template"
	"log"
	"net/http"
	"net/url"

	"dam-dash/models"
	"dam-dash/models/report"
	services "dam-dash/service"
	"dam-dash/util"
)

const DASHBOARD_TITLE = "SA Dam Dashboard 🌊"

var dashboardTemplates = template.Must(template.New("layout").Parse(layoutTemplate))

// legendEntry is one line of the fill level legend.
type legendEntry struct {
	Label  string
	Range  string
	Colour string
}

type pageData struct {
	Title       string
	Page        string
	DisplayDate string
	Filter      models.ReportFilter
	Options     *models.FilterOptions
	All         string
	Columns     []string
	Rows        []report.DisplayRow
	Legend      []legendEntry
	TableURL    string
	MapURL      string
	ChartURL    string
	CSVURL      string
	Error       string
}

// DashboardHandler renders the table and map pages.
type DashboardHandler struct {
	fetcher services.ReportFetcher
	options services.FilterOptionsProvider
}

func NewDashboardHandler(fetcher services.ReportFetcher, options services.FilterOptionsProvider) *DashboardHandler {
	return &DashboardHandler{fetcher: fetcher, options: options}
}

// TablePage handles GET /
func (h *DashboardHandler) TablePage(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, "table")
}

// MapPage handles GET /map
func (h *DashboardHandler) MapPage(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, "map")
}

// MapChart handles GET /map/chart, the standalone echarts page embedded by MapPage.
func (h *DashboardHandler) MapChart(w http.ResponseWriter, r *http.Request) {
	filter, _, err := resolveFilter(r, h.options)
	if err != nil {
		httpError(w, r, err)
		return
	}
	rows, err := h.fetcher.Fetch(r.Context(), filter.ReportDate, filter.Province)
	if err != nil {
		httpError(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := util.RenderDamMap(&buf, services.DisplayDate(filter.ReportDate), rows); err != nil {
		log.Printf("[DashboardHandler] request_id=%s Error rendering map: %v", RequestIDFrom(r.Context()), err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (h *DashboardHandler) renderPage(w http.ResponseWriter, r *http.Request, page string) {
	data := pageData{
		Title:   DASHBOARD_TITLE,
		Page:    page,
		All:     models.All,
		Columns: report.TableColumns,
		Legend:  legend(),
	}
	status := http.StatusOK

	filter, opts, err := resolveFilter(r, h.options)
	data.Filter, data.Options = filter, opts
	if data.Options == nil {
		data.Options = &models.FilterOptions{}
	}
	if err == nil && page == "table" {
		data.Rows, err = h.fetcher.Fetch(r.Context(), filter.ReportDate, filter.Province)
	}
	if err != nil {
		status = statusFor(err)
		data.Error = err.Error()
		log.Printf("[DashboardHandler] request_id=%s Responding %d: %v", RequestIDFrom(r.Context()), status, err)
	}
	data.DisplayDate = services.DisplayDate(filter.ReportDate)
	query := "?" + url.Values{
		REPORT_DATE_QUERY_ARG: {filter.ReportDate},
		PROVINCE_QUERY_ARG:    {filter.Province},
	}.Encode()
	data.TableURL = "/" + query
	data.MapURL = "/map" + query
	data.ChartURL = "/map/chart" + query
	data.CSVURL = "/v1/reports.csv" + query

	var buf bytes.Buffer
	if err := dashboardTemplates.ExecuteTemplate(&buf, "layout", data); err != nil {
		log.Printf("[DashboardHandler] request_id=%s Error rendering page: %v", RequestIDFrom(r.Context()), err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func httpError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	log.Printf("[DashboardHandler] request_id=%s Responding %d: %v", RequestIDFrom(r.Context()), status, err)
	http.Error(w, err.Error(), status)
}

func legend() []legendEntry {
	entries := make([]legendEntry, 0, len(report.AllColourBuckets))
	for _, b := range report.AllColourBuckets {
		entries = append(entries, legendEntry{Label: b.Label(), Range: b.Range(), Colour: b.Colour()})
	}
	return entries
}

const layoutTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Dam Dash</title>
<style>
body { font-family: sans-serif; margin: 0; display: flex; }
aside { width: 260px; padding: 1rem; background: #f0f2f6; min-height: 100vh; }
main { flex: 1; padding: 1rem 2rem; }
table { border-collapse: collapse; width: 100%; }
th, td { border-bottom: 1px solid #ddd; padding: 4px 8px; text-align: left; }
.error { color: #e60000; }
</style>
</head>
<body>
<aside>
  <form method="get" action="{{if eq .Page "map"}}/map{{else}}/{{end}}">
    <label>Select Report Date<br>
      <select name="report_date">
        <option value="{{.All}}" {{if eq .Filter.ReportDate .All}}selected{{end}}>{{.All}}</option>
        {{range .Options.ReportDates}}<option value="{{.}}" {{if eq . $.Filter.ReportDate}}selected{{end}}>{{.}}</option>{{end}}
      </select>
    </label><br>
    <label>Select Province<br>
      <select name="province">
        <option value="{{.All}}" {{if eq .Filter.Province .All}}selected{{end}}>{{.All}}</option>
        {{range .Options.Provinces}}<option value="{{.}}" {{if eq . $.Filter.Province}}selected{{end}}>{{.}}</option>{{end}}
      </select>
    </label><br>
    <button type="submit">Apply</button>
  </form>
  <h3>Legend</h3>
  <ul>
  {{range .Legend}}<li><span style="color:{{.Colour}};">● {{.Label}} ({{.Range}})</span></li>{{end}}
  </ul>
  <nav><a href="{{.TableURL}}">Table</a> | <a href="{{.MapURL}}">Map</a></nav>
</aside>
<main>
  <h1>{{.Title}}</h1>
  <h3>{{.DisplayDate}} 📆</h3>
  {{if .Error}}<p class="error">{{.Error}}</p>{{end}}
  {{if eq .Page "map"}}
  {{if not .Error}}<iframe src="{{.ChartURL}}" style="width:100%;height:680px;border:0;"></iframe>{{end}}
  {{else}}
  <h4>Dam Levels Table 📊 <a href="{{.CSVURL}}">Download CSV</a></h4>
  <table>
    <thead><tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr></thead>
    <tbody>
    {{range .Rows}}<tr>{{range .TableRecord}}<td>{{.}}</td>{{end}}</tr>
    {{end}}
    </tbody>
  </table>
  {{end}}
</main>
</body>
</html>
`
