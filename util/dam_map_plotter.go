package util

import (
	"fmt"
	"io"
	"math"
	"sort"

	"dam-dash/models/report"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// seriesKey groups dams drawn with the same colour and marker radius.
type seriesKey struct {
	bucket report.ColourBucket
	size   int
}

// MarkerLabel is the tooltip text for a dam, e.g. "Vaal Dam (95.2%)".
func MarkerLabel(row report.DisplayRow) string {
	return fmt.Sprintf("%s (%g%%)", row.DamName, row.PctFilled)
}

// NewDamMap builds a Geo scatter chart with one marker per dam, coloured by
// fill bucket and sized by storage capacity.
func NewDamMap(subtitle string, rows []report.DisplayRow) *charts.Geo {
	geo := charts.NewGeo()
	geo.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Dam Levels Map",
			Width:     "100%",
			Height:    "640px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Dam Levels Map 🌍",
			Subtitle: subtitle,
		}),
		charts.WithGeoComponentOpts(opts.GeoComponent{
			Map:    "world",
			Silent: opts.Bool(true),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:      opts.Bool(true),
			Formatter: "{b}",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
		}),
	)

	groups := make(map[seriesKey][]opts.GeoData)
	for _, row := range rows {
		key := seriesKey{bucket: row.ColourBucket, size: int(math.Round(row.MarkerSize))}
		groups[key] = append(groups[key], opts.GeoData{
			Name:  MarkerLabel(row),
			Value: []float64{row.LatLong.Lon(), row.LatLong.Lat(), row.PctFilled},
		})
	}

	keys := make([]seriesKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].bucket != keys[j].bucket {
			return keys[i].bucket < keys[j].bucket
		}
		return keys[i].size < keys[j].size
	})

	// Series sharing a bucket label share one legend entry.
	for _, k := range keys {
		geo.AddSeries(k.bucket.Label(), types.ChartScatter, groups[k],
			charts.WithItemStyleOpts(opts.ItemStyle{
				Color: k.bucket.Colour(),
			}),
		)
		geo.MultiSeries[len(geo.MultiSeries)-1].SymbolSize = k.size
	}
	return geo
}

// RenderDamMap writes the map as a standalone HTML page.
func RenderDamMap(w io.Writer, subtitle string, rows []report.DisplayRow) error {
	if err := NewDamMap(subtitle, rows).Render(w); err != nil {
		return fmt.Errorf("failed to render dam map: %w", err)
	}
	return nil
}
