package services

import (
	"fmt"
	"math"

	"dam-dash/models/report"
)

const (
	MIN_MARKER_SIZE = 6.0
	MAX_MARKER_SIZE = 15.0

	CUBIC_METRES_PER_MILLION = 1e6

	NO_CHANGE_INDICATOR = "◼ 0%"
)

// ColourBucketFor maps a fill percentage to its bucket. Thresholds are lower
// inclusive, so 25, 50, 75 and 90 fall into the higher bucket.
func ColourBucketFor(pctFilled float64) report.ColourBucket {
	switch {
	case pctFilled < 25:
		return report.VeryLow
	case pctFilled < 50:
		return report.ModeratelyLow
	case pctFilled < 75:
		return report.NearNormal
	case pctFilled < 90:
		return report.ModeratelyHigh
	default:
		return report.High
	}
}

// MarkerSize linearly maps capacity from [minCapacity, maxCapacity] onto the
// marker radius range. A degenerate range yields the minimum radius.
func MarkerSize(capacity, minCapacity, maxCapacity float64) float64 {
	fraction := 0.0
	if maxCapacity > minCapacity {
		fraction = (capacity - minCapacity) / (maxCapacity - minCapacity)
	}
	size := MIN_MARKER_SIZE + (MAX_MARKER_SIZE-MIN_MARKER_SIZE)*fraction
	return math.Min(MAX_MARKER_SIZE, math.Max(MIN_MARKER_SIZE, size))
}

// ChangeIndicator renders the week-over-week change, e.g. "🔼 +5.0%".
func ChangeIndicator(thisWeek float64, lastWeek *float64) (string, error) {
	if lastWeek == nil {
		return "", ErrMissingBaseline
	}
	diff := thisWeek - *lastWeek
	switch {
	case thisWeek > *lastWeek:
		return fmt.Sprintf("🔼 %+.1f%%", diff), nil
	case thisWeek < *lastWeek:
		return fmt.Sprintf("🔻 %.1f%%", diff), nil
	default:
		return NO_CHANGE_INDICATOR, nil
	}
}

func ToMillionCubicMetres(cubicMetres float64) float64 {
	return cubicMetres / CUBIC_METRES_PER_MILLION
}
