package util

import (
	"bytes"
	"testing"

	"dam-dash/models/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapRows() []report.DisplayRow {
	return []report.DisplayRow{
		{DamName: "Vaal", PctFilled: 95.2, ColourBucket: report.High, MarkerSize: 15, LatLong: report.LatLong{-26.88, 28.12}},
		{DamName: "Sterkfontein", PctFilled: 99.1, ColourBucket: report.High, MarkerSize: 14.6, LatLong: report.LatLong{-28.4, 29.03}},
		{DamName: "Kouga", PctFilled: 12, ColourBucket: report.VeryLow, MarkerSize: 6, LatLong: report.LatLong{-33.74, 24.58}},
	}
}

func TestMarkerLabel(t *testing.T) {
	assert.Equal(t, "Vaal (95.2%)", MarkerLabel(mapRows()[0]))
}

func TestNewDamMap_GroupsByBucketAndSize(t *testing.T) {
	geo := NewDamMap("04 March 2024", mapRows())

	require.Len(t, geo.MultiSeries, 2)
	assert.Equal(t, "Very Low", geo.MultiSeries[0].Name)
	assert.Equal(t, 6, geo.MultiSeries[0].SymbolSize)
	assert.Equal(t, "High", geo.MultiSeries[1].Name)
	assert.Equal(t, 15, geo.MultiSeries[1].SymbolSize)
}

func TestRenderDamMap(t *testing.T) {
	var buf bytes.Buffer

	err := RenderDamMap(&buf, "04 March 2024", mapRows())

	require.NoError(t, err)
	html := buf.String()
	assert.Contains(t, html, "Vaal (95.2%)")
	assert.Contains(t, html, "#0959df")
	assert.Contains(t, html, "#e60000")
}

func TestWriteReportCSV(t *testing.T) {
	var buf bytes.Buffer
	rows := []report.DisplayRow{
		{DamName: "Vaal", Province: "Gauteng", River: "Vaal", FSCMillionM3: 2603, PctFilled: 95.2, Change: "🔼 +1.3%"},
	}

	require.NoError(t, WriteReportCSV(&buf, rows))

	assert.Equal(t,
		"Dam Name,Province,River,FSC Million m³,Pct Filled,Change\n"+
			"Vaal,Gauteng,Vaal,2603.0,95.2,🔼 +1.3%\n",
		buf.String())
}
