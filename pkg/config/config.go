package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/golangdaddy/laneshift/pkg/barrier"
	"github.com/golangdaddy/laneshift/pkg/traffic"
	"github.com/golangdaddy/laneshift/pkg/transform"
	"github.com/golangdaddy/laneshift/pkg/vehicle"
	"github.com/golangdaddy/laneshift/pkg/world"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid scenario")

// Scenario is the YAML description of a laneshift run
type Scenario struct {
	Seed     int64 `yaml:"seed"`
	TickRate int   `yaml:"tickRate"` // Ticks per second for frontends that drive their own clock

	Road       RoadConfig        `yaml:"road"`
	Barrier    BarrierConfig     `yaml:"barrier"`
	Managers   []ManagerConfig   `yaml:"managers"`
	Archetypes []ArchetypeConfig `yaml:"archetypes"`

	MQTT    MQTTConfig    `yaml:"mqtt"`
	Metrics MetricsConfig `yaml:"metrics"`
}

type RoadConfig struct {
	Lanes         int     `yaml:"lanes"`
	LaneWidth     float64 `yaml:"laneWidth"`
	SpawnDistance float64 `yaml:"spawnDistance"`
}

type BarrierConfig struct {
	MoveSpeed      float64 `yaml:"moveSpeed"`
	RotationSpeed  float64 `yaml:"rotationSpeed"`
	RotateAngle    float64 `yaml:"rotateAngle"`
	OpenOffset     float64 `yaml:"openOffset"`
	Segments       int     `yaml:"segments"`
	SegmentSpacing float64 `yaml:"segmentSpacing"`
}

// ManagerConfig describes one side of the road. Lanes may be left empty to
// use the road's lane heads for the direction.
type ManagerConfig struct {
	Name        string         `yaml:"name"`
	Direction   int            `yaml:"direction"`
	Speed       float64        `yaml:"speed"`
	Density     string         `yaml:"density"`
	AutoDensity bool           `yaml:"autoDensity"` // Pick the tier from the live car count
	Parent      string         `yaml:"parent"`
	Lanes       []AnchorConfig `yaml:"lanes,omitempty"`
}

type AnchorConfig struct {
	Name string  `yaml:"name"`
	X    float64 `yaml:"x"`
	Z    float64 `yaml:"z"`
	Yaw  float64 `yaml:"yaw"`
}

// ArchetypeConfig is a car model. Unset params fall back to the defaults.
type ArchetypeConfig struct {
	Name   string         `yaml:"name"`
	Color  string         `yaml:"color"` // #rrggbb
	Params vehicle.Params `yaml:"params"`
}

type MQTTConfig struct {
	Broker    string        `yaml:"broker"` // Empty disables the subscriber
	Topic     string        `yaml:"topic"`
	ClientID  string        `yaml:"clientID"`
	QoS       byte          `yaml:"qos"`
	KeepAlive time.Duration `yaml:"keepAlive"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"` // Empty disables the metrics server
}

// Default returns the stock scenario: a six-lane road, an eight-segment
// barrier and one medium-density manager per side.
func Default() Scenario {
	bc := barrier.DefaultConfig()
	geo := world.DefaultGeometry()
	layout := world.DefaultLayout()
	params := vehicle.DefaultParams()

	return Scenario{
		Seed:     1,
		TickRate: 60,
		Road: RoadConfig{
			Lanes:         layout.Lanes,
			LaneWidth:     layout.LaneWidth,
			SpawnDistance: layout.SpawnDistance,
		},
		Barrier: BarrierConfig{
			MoveSpeed:      bc.MoveSpeed,
			RotationSpeed:  bc.RotationSpeed,
			RotateAngle:    bc.RotateAngle,
			OpenOffset:     bc.OpenOffset,
			Segments:       geo.Segments,
			SegmentSpacing: geo.SegmentSpacing,
		},
		Managers: []ManagerConfig{
			{Name: "forward", Direction: 1, Speed: 10, Density: "medium", Parent: "forward-cars"},
			{Name: "reverse", Direction: -1, Speed: 10, Density: "medium", Parent: "reverse-cars"},
		},
		Archetypes: []ArchetypeConfig{
			{Name: "sedan", Color: "#d03a2f", Params: params},
			{Name: "hatchback", Color: "#2f6fd0", Params: params},
			{Name: "van", Color: "#e8e8e8", Params: params},
			{Name: "taxi", Color: "#f2c230", Params: params},
		},
		MQTT: MQTTConfig{
			Topic:     "barrier_condition",
			ClientID:  "laneshift",
			QoS:       1,
			KeepAlive: 60 * time.Second,
		},
	}
}

// Load reads the scenario at path over the defaults
func Load(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("reading scenario %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return Scenario{}, fmt.Errorf("scenario %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes YAML over the defaults and validates the result. A managers
// or archetypes list in the document replaces the default list whole.
func Parse(data []byte) (Scenario, error) {
	s := Default()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Scenario{}, fmt.Errorf("decoding yaml: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Scenario{}, err
	}
	return s, nil
}

// Validate checks ranges and enumerations
func (s Scenario) Validate() error {
	if s.Road.Lanes < 2 || s.Road.LaneWidth <= 0 {
		return fmt.Errorf("%w: road needs at least two lanes of positive width", ErrInvalid)
	}
	if s.Barrier.Segments < 0 || s.Barrier.MoveSpeed <= 0 || s.Barrier.RotationSpeed <= 0 {
		return fmt.Errorf("%w: barrier speeds must be positive", ErrInvalid)
	}
	if s.TickRate <= 0 {
		return fmt.Errorf("%w: tickRate must be positive, got %d", ErrInvalid, s.TickRate)
	}
	if s.MQTT.QoS > 2 {
		return fmt.Errorf("%w: mqtt qos %d", ErrInvalid, s.MQTT.QoS)
	}

	seen := map[string]bool{}
	for _, m := range s.Managers {
		if m.Name == "" || seen[m.Name] {
			return fmt.Errorf("%w: manager names must be unique and non-empty (%q)", ErrInvalid, m.Name)
		}
		seen[m.Name] = true
		if m.Direction < -1 || m.Direction > 1 {
			return fmt.Errorf("%w: manager %s direction %d", ErrInvalid, m.Name, m.Direction)
		}
		if _, err := m.density(); err != nil {
			return fmt.Errorf("%w: manager %s: %w", ErrInvalid, m.Name, err)
		}
	}
	for _, a := range s.Archetypes {
		if _, err := parseColor(a.Color); err != nil {
			return fmt.Errorf("%w: archetype %s: %w", ErrInvalid, a.Name, err)
		}
	}
	return nil
}

// WorldOptions converts the scenario into world construction options
func (s Scenario) WorldOptions() world.Options {
	archetypes := s.archetypes()

	opts := world.Options{
		Layout: world.Layout{
			Lanes:         s.Road.Lanes,
			LaneWidth:     s.Road.LaneWidth,
			SpawnDistance: s.Road.SpawnDistance,
		},
		Geometry: world.DefaultGeometry(),
		Barrier: barrier.Config{
			MoveSpeed:     s.Barrier.MoveSpeed,
			RotationSpeed: s.Barrier.RotationSpeed,
			RotateAngle:   s.Barrier.RotateAngle,
			OpenOffset:    s.Barrier.OpenOffset,
		},
		Seed: s.Seed,
	}
	opts.Geometry.Segments = s.Barrier.Segments
	opts.Geometry.SegmentSpacing = s.Barrier.SegmentSpacing

	for _, m := range s.Managers {
		// Validate has already accepted the density
		density, _ := m.density()
		cfg := traffic.Config{
			Name:        m.Name,
			Direction:   barrier.Direction(m.Direction),
			Speed:       m.Speed,
			Density:     density,
			AutoDensity: m.AutoDensity,
			Parent:      m.Parent,
			Archetypes:  archetypes,
		}
		for _, l := range m.Lanes {
			cfg.Anchors = append(cfg.Anchors, traffic.Anchor{
				Name:     l.Name,
				Position: transform.Vec3{X: l.X, Z: l.Z},
				Rotation: transform.Euler(l.Yaw),
			})
		}
		opts.Managers = append(opts.Managers, cfg)
	}
	return opts
}

func (s Scenario) archetypes() []vehicle.Archetype {
	out := make([]vehicle.Archetype, 0, len(s.Archetypes))
	for _, a := range s.Archetypes {
		c, _ := parseColor(a.Color)
		out = append(out, vehicle.Archetype{Name: a.Name, Color: c, Params: withDefaults(a.Params)})
	}
	return out
}

// density parses the manager's tier; an unset tier is medium
func (m ManagerConfig) density() (traffic.Density, error) {
	if m.Density == "" {
		return traffic.DensityMedium, nil
	}
	return traffic.ParseDensity(m.Density)
}

// withDefaults fills every zero field of p from vehicle.DefaultParams
func withDefaults(p vehicle.Params) vehicle.Params {
	d := vehicle.DefaultParams()
	if p.Speed == 0 {
		p.Speed = d.Speed
	}
	if p.DestroyTime == 0 {
		p.DestroyTime = d.DestroyTime
	}
	if p.DetectionDistance == 0 {
		p.DetectionDistance = d.DetectionDistance
	}
	if p.DodgeSpeed == 0 {
		p.DodgeSpeed = d.DodgeSpeed
	}
	if p.TotalShift == 0 {
		p.TotalShift = d.TotalShift
	}
	if p.Layer == "" {
		p.Layer = d.Layer
	}
	return p
}

// parseColor reads #rrggbb. An empty string is mid grey.
func parseColor(s string) (color.RGBA, error) {
	if s == "" {
		return color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("color %q is not #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
