package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"dam-dash/models"
	"dam-dash/models/report"
	services "dam-dash/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reportsResponse struct {
	Filter  models.ReportFilter `json:"filter"`
	Columns []string            `json:"columns"`
	Rows    []report.DisplayRow `json:"rows"`
}

func TestReportHandler_GetReports(t *testing.T) {
	fetcher := &fakeFetcher{rows: sampleRows()}
	h := NewReportHandler(fetcher, sampleOptions())

	req := httptest.NewRequest("GET", "/v1/reports?report_date=2024-02-26&province=Gauteng", nil)
	rr := httptest.NewRecorder()
	h.GetReports(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Equal(t, []fetchCall{{reportDate: "2024-02-26", province: "Gauteng"}}, fetcher.calls)

	var resp reportsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, models.ReportFilter{ReportDate: "2024-02-26", Province: "Gauteng"}, resp.Filter)
	assert.Equal(t, report.TableColumns, resp.Columns)
	assert.Equal(t, sampleRows(), resp.Rows)
}

func TestReportHandler_GetReports_Defaults(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected fetchCall
	}{
		{name: "no args", query: "", expected: fetchCall{reportDate: "2024-03-04", province: models.All}},
		{name: "empty date", query: "?report_date=&province=Western+Cape", expected: fetchCall{reportDate: "2024-03-04", province: "Western Cape"}},
		{name: "all dates", query: "?report_date=All", expected: fetchCall{reportDate: models.All, province: models.All}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			fetcher := &fakeFetcher{}
			h := NewReportHandler(fetcher, sampleOptions())

			rr := httptest.NewRecorder()
			h.GetReports(rr, httptest.NewRequest("GET", "/v1/reports"+test.query, nil))

			require.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, []fetchCall{test.expected}, fetcher.calls)
		})
	}
}

func TestReportHandler_GetReports_EmptyResult(t *testing.T) {
	h := NewReportHandler(&fakeFetcher{rows: []report.DisplayRow{}}, sampleOptions())

	rr := httptest.NewRecorder()
	h.GetReports(rr, httptest.NewRequest("GET", "/v1/reports?report_date=1999-01-01", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"rows":[]`)
}

func TestReportHandler_GetReports_Errors(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		fetchErr   error
		optionsErr error
		statusCode int
	}{
		{name: "malformed date", query: "?report_date=last-week", statusCode: http.StatusBadRequest},
		{name: "malformed date while store down", query: "?report_date=last-week", optionsErr: fmt.Errorf("%w: timeout", services.ErrDataUnavailable), statusCode: http.StatusBadRequest},
		{name: "store down", fetchErr: fmt.Errorf("%w: timeout", services.ErrDataUnavailable), statusCode: http.StatusServiceUnavailable},
		{name: "options store down", optionsErr: fmt.Errorf("%w: timeout", services.ErrDataUnavailable), statusCode: http.StatusServiceUnavailable},
		{name: "missing baseline", fetchErr: fmt.Errorf("%w: Vaal Dam", services.ErrMissingBaseline), statusCode: http.StatusInternalServerError},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			options := sampleOptions()
			if test.optionsErr != nil {
				options = &fakeOptions{err: test.optionsErr}
			}
			h := NewReportHandler(&fakeFetcher{err: test.fetchErr}, options)

			rr := httptest.NewRecorder()
			h.GetReports(rr, httptest.NewRequest("GET", "/v1/reports"+test.query, nil))

			assert.Equal(t, test.statusCode, rr.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestReportHandler_GetReportsCSV(t *testing.T) {
	h := NewReportHandler(&fakeFetcher{rows: sampleRows()}, sampleOptions())

	rr := httptest.NewRecorder()
	h.GetReportsCSV(rr, httptest.NewRequest("GET", "/v1/reports.csv", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="dam-levels.csv"`, rr.Header().Get("Content-Disposition"))

	lines := strings.Split(strings.TrimSpace(rr.Body.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Dam Name,Province,River,FSC Million m³,Pct Filled,Change", lines[0])
	assert.Equal(t, "Vaal Dam,Gauteng,Vaal River,2603.0,92.5,🔼 +1.5%", lines[1])
	assert.Equal(t, "Theewaterskloof,Western Cape,Sonderend River,480.4,20,🔻 -2.0%", lines[2])
}

func TestReportHandler_GetReportsCSV_Error(t *testing.T) {
	h := NewReportHandler(&fakeFetcher{err: fmt.Errorf("%w: timeout", services.ErrDataUnavailable)}, sampleOptions())

	rr := httptest.NewRecorder()
	h.GetReportsCSV(rr, httptest.NewRequest("GET", "/v1/reports.csv", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Empty(t, rr.Header().Get("Content-Disposition"))
}

func TestReportHandler_GetFilterOptions(t *testing.T) {
	h := NewReportHandler(&fakeFetcher{}, sampleOptions())

	rr := httptest.NewRecorder()
	h.GetFilterOptions(rr, httptest.NewRequest("GET", "/v1/filters", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var opts models.FilterOptions
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &opts))
	assert.Equal(t, *sampleOptions().opts, opts)

	h = NewReportHandler(&fakeFetcher{}, &fakeOptions{err: errors.New("boom")})
	rr = httptest.NewRecorder()
	h.GetFilterOptions(rr, httptest.NewRequest("GET", "/v1/filters", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestReportHandler_ErrorLogCarriesRequestID(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	h := RequestID(http.HandlerFunc(NewReportHandler(&fakeFetcher{}, sampleOptions()).GetReports))
	req := httptest.NewRequest("GET", "/v1/reports?report_date=last-week", nil)
	req.Header.Set(REQUEST_ID_HEADER, "req-42")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "req-42", rr.Header().Get(REQUEST_ID_HEADER))
	assert.Contains(t, buf.String(), "request_id=req-42 Responding 400")
}

func TestRequestIDFrom_OutsideMiddleware(t *testing.T) {
	assert.Equal(t, "-", RequestIDFrom(httptest.NewRequest("GET", "/", nil).Context()))
}
