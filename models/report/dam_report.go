package report

import (
	"fmt"
	"time"
)

// DamReport represents one dam's weekly water-level snapshot.
type DamReport struct {
	ReportDate          time.Time `json:"report_date"`
	Dam                 string    `json:"dam"`
	Province            string    `json:"province"`
	River               string    `json:"river"`
	FullStorageCapacity float64   `json:"full_storage_capacity"` // cubic metres
	ThisWeek            float64   `json:"this_week"`
	LastWeek            *float64  `json:"last_week,omitempty"` // nil when the store has no baseline
	LatLong             LatLong   `json:"lat_long"`
}

// LatLong is a (latitude, longitude) pair, encoded as a two element array.
type LatLong [2]float64

func (l LatLong) Lat() float64 { return l[0] }
func (l LatLong) Lon() float64 { return l[1] }

// Validate checks the fields every stored report must carry.
func (r *DamReport) Validate() error {
	if r.Dam == "" {
		return fmt.Errorf("dam report is missing dam name")
	}
	if r.Province == "" {
		return fmt.Errorf("dam report %q is missing province", r.Dam)
	}
	if r.FullStorageCapacity < 0 {
		return fmt.Errorf("dam report %q has negative full storage capacity %v", r.Dam, r.FullStorageCapacity)
	}
	return nil
}
