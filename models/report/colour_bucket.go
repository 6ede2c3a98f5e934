package report

import (
	"encoding/json"
	"fmt"
)

// ColourBucket is one of five ordered fill levels used to colour dams.
type ColourBucket int

const (
	VeryLow ColourBucket = iota
	ModeratelyLow
	NearNormal
	ModeratelyHigh
	High
)

// AllColourBuckets lists the buckets from emptiest to fullest.
var AllColourBuckets = []ColourBucket{VeryLow, ModeratelyLow, NearNormal, ModeratelyHigh, High}

var bucketLabels = [...]string{"Very Low", "Moderately Low", "Near Normal", "Moderately High", "High"}
var bucketPalette = [...]string{"#e60000", "#ffaa02", "#fffe03", "#4de600", "#0959df"}
var bucketRanges = [...]string{"0-25", "25-50", "50-75", "75-90", "90+"}

func (b ColourBucket) valid() bool {
	return b >= VeryLow && b <= High
}

// Label is the legend name, e.g. "Near Normal".
func (b ColourBucket) Label() string {
	if !b.valid() {
		return fmt.Sprintf("ColourBucket(%d)", int(b))
	}
	return bucketLabels[b]
}

// Colour is the hex colour used for the bucket on the map and legend.
func (b ColourBucket) Colour() string {
	if !b.valid() {
		return ""
	}
	return bucketPalette[b]
}

// Range is the percentage range shown in the legend.
func (b ColourBucket) Range() string {
	if !b.valid() {
		return ""
	}
	return bucketRanges[b]
}

func (b ColourBucket) String() string { return b.Label() }

func (b ColourBucket) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Label())
}

func (b *ColourBucket) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return err
	}
	for i, l := range bucketLabels {
		if l == label {
			*b = ColourBucket(i)
			return nil
		}
	}
	return fmt.Errorf("unknown colour bucket %q", label)
}
