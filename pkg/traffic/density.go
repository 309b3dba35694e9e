package traffic

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"
)

// Density is the spawn-rate tier of a traffic manager
type Density int

const (
	DensityLow Density = iota
	DensityMedium
	DensityHigh
)

// ErrUnknownDensity is returned when parsing an unrecognised density name
var ErrUnknownDensity = errors.New("unknown traffic density")

func (d Density) String() string {
	switch d {
	case DensityLow:
		return "Low"
	case DensityMedium:
		return "Medium"
	case DensityHigh:
		return "High"
	}
	return fmt.Sprintf("Density(%d)", int(d))
}

// Next returns the following tier, wrapping High back to Low
func (d Density) Next() Density {
	switch d {
	case DensityLow:
		return DensityMedium
	case DensityMedium:
		return DensityHigh
	default:
		return DensityLow
	}
}

// ParseDensity parses a density name, case-insensitively
func ParseDensity(s string) (Density, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return DensityLow, nil
	case "medium":
		return DensityMedium, nil
	case "high":
		return DensityHigh, nil
	}
	return DensityLow, fmt.Errorf("%w: %q", ErrUnknownDensity, s)
}

// DelayRange returns the [min, max) window spawn waits are drawn from
func DelayRange(d Density) (lo, hi float64) {
	switch d {
	case DensityLow:
		return 2, 4
	case DensityMedium:
		return 1, 2
	case DensityHigh:
		return 0.30, 0.55
	}
	return 2, 2
}

// SpawnDelay draws the seconds to wait before the next spawn, always
// below the top of the tier's range
func SpawnDelay(d Density, rng *rand.Rand) float64 {
	lo, hi := DelayRange(d)
	v := lo + rng.Float64()*(hi-lo)
	if v >= hi && hi > lo {
		// Rounding can land a draw close to 1 on hi itself
		v = math.Nextafter(hi, lo)
	}
	return v
}

// Vehicle-count thresholds of the roadside counter feed
const (
	countLowLimit    = 4
	countMediumLimit = 10
)

// DensityForCount maps an observed vehicle count to a density tier
func DensityForCount(count int) Density {
	switch {
	case count <= countLowLimit:
		return DensityLow
	case count <= countMediumLimit:
		return DensityMedium
	}
	return DensityHigh
}
