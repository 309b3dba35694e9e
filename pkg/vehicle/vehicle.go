package vehicle

import (
	"image/color"

	"github.com/golangdaddy/laneshift/pkg/transform"
)

// BarrierLayer is the collision layer barrier arms are placed on
const BarrierLayer = "barrier"

// Probe answers forward ray tests against the collision world
type Probe interface {
	Raycast(origin, dir transform.Vec3, maxDistance float64, layer string) bool
}

// Params is the tuning of a single car
type Params struct {
	Speed             float64 `yaml:"speed"`             // Forward units per second when the spawner sets none
	DestroyTime       float64 `yaml:"destroyTime"`       // Seconds before the car is removed
	DetectionDistance float64 `yaml:"detectionDistance"` // Probe reach
	DodgeSpeed        float64 `yaml:"dodgeSpeed"`        // Lateral units per second while dodging
	TotalShift        float64 `yaml:"totalShift"`        // Lateral distance of the one dodge
	Layer             string  `yaml:"layer"`             // Layer the probe tests against
}

// DefaultParams returns the stock car tuning
func DefaultParams() Params {
	return Params{
		Speed:             10,
		DestroyTime:       10,
		DetectionDistance: 8,
		DodgeSpeed:        5,
		TotalShift:        4.5,
		Layer:             BarrierLayer,
	}
}

// Archetype is a spawnable kind of car
type Archetype struct {
	Name   string
	Color  color.RGBA
	Params Params
}
