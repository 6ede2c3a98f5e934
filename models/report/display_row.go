package report

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Tabular column labels, in display order.
const (
	ColumnDamName     = "Dam Name"
	ColumnProvince    = "Province"
	ColumnRiver       = "River"
	ColumnFSC         = "FSC Million m³"
	ColumnPctFilled   = "Pct Filled"
	ColumnChange      = "Change"
	FieldColourBucket = "ColourBucket"
	FieldMarkerSize   = "MarkerSize"
	FieldLatLong      = "lat_long"
)

// TableColumns is the column set shown in the table and the CSV download.
var TableColumns = []string{ColumnDamName, ColumnProvince, ColumnRiver, ColumnFSC, ColumnPctFilled, ColumnChange}

// DisplayRow is a render-ready dam report. It encodes to JSON keyed by the
// display labels, in column order.
type DisplayRow struct {
	DamName      string
	Province     string
	River        string
	FSCMillionM3 float64
	PctFilled    float64
	Change       string
	ColourBucket ColourBucket
	MarkerSize   float64
	LatLong      LatLong
}

// encoding/json rejects "³" in struct tags, so the labels are written by hand.
func (r DisplayRow) fields() []struct {
	key   string
	value interface{}
} {
	return []struct {
		key   string
		value interface{}
	}{
		{ColumnDamName, r.DamName},
		{ColumnProvince, r.Province},
		{ColumnRiver, r.River},
		{ColumnFSC, r.FSCMillionM3},
		{ColumnPctFilled, r.PctFilled},
		{ColumnChange, r.Change},
		{FieldColourBucket, r.ColourBucket},
		{FieldMarkerSize, r.MarkerSize},
		{FieldLatLong, r.LatLong},
	}
}

func (r DisplayRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.fields() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.value)
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", f.key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (r *DisplayRow) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	targets := map[string]interface{}{
		ColumnDamName:     &r.DamName,
		ColumnProvince:    &r.Province,
		ColumnRiver:       &r.River,
		ColumnFSC:         &r.FSCMillionM3,
		ColumnPctFilled:   &r.PctFilled,
		ColumnChange:      &r.Change,
		FieldColourBucket: &r.ColourBucket,
		FieldMarkerSize:   &r.MarkerSize,
		FieldLatLong:      &r.LatLong,
	}
	for key, target := range targets {
		v, ok := raw[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(v, target); err != nil {
			return fmt.Errorf("decoding %s: %w", key, err)
		}
	}
	return nil
}

// TableRecord returns the tabular columns as strings, in TableColumns order.
func (r DisplayRow) TableRecord() []string {
	return []string{
		r.DamName,
		r.Province,
		r.River,
		fmt.Sprintf("%.1f", r.FSCMillionM3),
		fmt.Sprintf("%g", r.PctFilled),
		r.Change,
	}
}
