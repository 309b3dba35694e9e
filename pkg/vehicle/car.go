package vehicle

import (
	"image/color"

	"github.com/google/uuid"

	"github.com/golangdaddy/laneshift/pkg/transform"
)

// probeHeight lifts the probe origin off the road surface
const probeHeight = 0.5

// Car drives straight ahead and makes at most one dodge to its right
type Car struct {
	id        uuid.UUID
	archetype string
	color     color.RGBA
	parent    string
	params    Params

	position transform.Vec3
	rotation transform.Rotation
	speed    float64

	shift   float64 // Lateral distance covered so far
	dodging bool
	age     float64
}

// NewCar creates a car of the given archetype. A speed of zero or less
// falls back to the archetype's own.
func NewCar(a Archetype, pos transform.Vec3, rot transform.Rotation, speed float64, parent string) *Car {
	if speed <= 0 {
		speed = a.Params.Speed
	}
	return &Car{
		id:        uuid.New(),
		archetype: a.Name,
		color:     a.Color,
		parent:    parent,
		params:    a.Params,
		position:  pos,
		rotation:  rot,
		speed:     speed,
	}
}

func (c *Car) ID() uuid.UUID                { return c.id }
func (c *Car) Archetype() string            { return c.archetype }
func (c *Car) Color() color.RGBA            { return c.color }
func (c *Car) Parent() string               { return c.parent }
func (c *Car) Position() transform.Vec3     { return c.position }
func (c *Car) Rotation() transform.Rotation { return c.rotation }
func (c *Car) Speed() float64               { return c.speed }
func (c *Car) Shift() float64               { return c.shift }
func (c *Car) Dodging() bool                { return c.dodging }
func (c *Car) Age() float64                 { return c.age }

// Expired reports whether the car has outlived its destroy time
func (c *Car) Expired() bool {
	return c.age >= c.params.DestroyTime
}

// Update moves the car forward and runs the dodge when needed
func (c *Car) Update(dt float64, probe Probe) {
	c.age += dt

	forward := c.rotation.ForwardVector()
	c.position = c.position.Add(forward.Scale(c.speed * dt))

	if c.shift >= c.params.TotalShift {
		return
	}

	if c.dodging || c.detect(probe, forward) {
		c.dodge(dt)
	}
}

func (c *Car) detect(probe Probe, forward transform.Vec3) bool {
	if probe == nil {
		return false
	}
	origin := c.position.Add(transform.Up.Scale(probeHeight))
	return probe.Raycast(origin, forward, c.params.DetectionDistance, c.params.Layer)
}

// dodge keeps shifting right until the total is consumed, even after the
// obstacle is out of sight
func (c *Car) dodge(dt float64) {
	c.dodging = true

	step := c.params.DodgeSpeed * dt
	remaining := c.params.TotalShift - c.shift
	done := step >= remaining
	if done {
		step = remaining
	}

	c.position = c.position.Add(c.rotation.RightVector().Scale(step))

	if done {
		c.shift = c.params.TotalShift
		c.dodging = false
		return
	}
	c.shift += step
}
