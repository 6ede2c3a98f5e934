package handlers

import (
	"context"

	"dam-dash/models"
	"dam-dash/models/report"
)

type fetchCall struct {
	reportDate string
	province   string
}

type fakeFetcher struct {
	rows  []report.DisplayRow
	err   error
	calls []fetchCall
}

func (f *fakeFetcher) Fetch(ctx context.Context, reportDate, province string) ([]report.DisplayRow, error) {
	f.calls = append(f.calls, fetchCall{reportDate: reportDate, province: province})
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

type fakeOptions struct {
	opts *models.FilterOptions
	err  error
}

func (f *fakeOptions) GetFilterOptions(ctx context.Context) (*models.FilterOptions, error) {
	return f.opts, f.err
}

func sampleOptions() *fakeOptions {
	return &fakeOptions{opts: &models.FilterOptions{
		ReportDates:       []string{"2024-03-04", "2024-02-26"},
		Provinces:         []string{"Gauteng", "Western Cape"},
		DefaultReportDate: "2024-03-04",
	}}
}

func sampleRows() []report.DisplayRow {
	return []report.DisplayRow{
		{
			DamName:      "Vaal Dam",
			Province:     "Gauteng",
			River:        "Vaal River",
			FSCMillionM3: 2603.0,
			PctFilled:    92.5,
			Change:       "🔼 +1.5%",
			ColourBucket: report.High,
			MarkerSize:   15,
			LatLong:      report.LatLong{-26.88, 28.12},
		},
		{
			DamName:      "Theewaterskloof",
			Province:     "Western Cape",
			River:        "Sonderend River",
			FSCMillionM3: 480.4,
			PctFilled:    20,
			Change:       "🔻 -2.0%",
			ColourBucket: report.VeryLow,
			MarkerSize:   6,
			LatLong:      report.LatLong{-34.08, 19.28},
		},
	}
}
