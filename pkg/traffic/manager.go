package traffic

import (
	"math/rand"

	"github.com/go-logr/logr"

	"github.com/golangdaddy/laneshift/pkg/barrier"
	"github.com/golangdaddy/laneshift/pkg/metrics"
	"github.com/golangdaddy/laneshift/pkg/transform"
	"github.com/golangdaddy/laneshift/pkg/vehicle"
)

// reverseFacing is the yaw given to every car of a reverse-direction manager
var reverseFacing = transform.Euler(180)

// SpawnRequest describes one car to create
type SpawnRequest struct {
	Manager   string
	Archetype vehicle.Archetype
	Position  transform.Vec3
	Rotation  transform.Rotation
	Speed     float64
	Parent    string // Container the car is created under
}

// Spawner creates cars in the world
type Spawner interface {
	Spawn(req SpawnRequest)
}

// Config describes one side of the road
type Config struct {
	Name      string
	Direction barrier.Direction // Travel direction of this side
	Speed     float64
	Density   Density
	Parent    string
	Anchors   []Anchor // Lane heads, outermost first

	Archetypes []vehicle.Archetype

	// AutoDensity lets the live car count of this side pick the tier each tick
	AutoDensity bool
}

// Manager keeps one side's spawn lanes in step with the barrier and spawns
// cars on a randomised timer
type Manager struct {
	cfg     Config
	barrier barrier.State
	spawner Spawner
	rng     *rand.Rand
	log     logr.Logger

	density Density
	lanes   []Anchor

	// Last barrier state the lane set was built from
	lastStatus barrier.Status
	lastMoving bool

	wait float64 // Seconds until the next spawn
}

// NewManager creates a manager polling state. A nil state leaves the lane
// set empty, so nothing spawns.
func NewManager(cfg Config, state barrier.State, spawner Spawner, rng *rand.Rand, log logr.Logger) *Manager {
	m := &Manager{
		cfg:     cfg,
		barrier: state,
		spawner: spawner,
		rng:     rng,
		log:     log.WithName("traffic").WithValues("manager", cfg.Name),
		density: cfg.Density,
	}

	if state == nil {
		m.log.Error(nil, "No barrier state supplied, spawn lanes stay empty")
	} else {
		m.observe(state.Status(), state.Moving())
	}

	m.wait = SpawnDelay(m.density, m.rng)
	return m
}

// Name returns the manager's configured name, also used as its metrics label
func (m *Manager) Name() string { return m.cfg.Name }

// Direction returns the travel direction of this side
func (m *Manager) Direction() barrier.Direction { return m.cfg.Direction }

// AutoDensity reports whether the tier follows the live car count
func (m *Manager) AutoDensity() bool { return m.cfg.AutoDensity }

// FollowCount sets the tier from count live cars when auto density is on.
// It is a no-op otherwise.
func (m *Manager) FollowCount(count int) {
	if !m.cfg.AutoDensity {
		return
	}
	d := DensityForCount(count)
	if d == m.density {
		return
	}
	m.density = d
	m.log.V(1).Info("Density followed count", "density", d.String(), "count", count)
}

// Density returns the current spawn-rate tier
func (m *Manager) Density() Density {
	return m.density
}

// SetDensity replaces the tier; it applies from the next sampled wait
func (m *Manager) SetDensity(d Density) {
	m.density = d
}

// NextDensity advances Low -> Medium -> High -> Low
func (m *Manager) NextDensity() {
	m.density = m.density.Next()
	m.log.V(1).Info("Density changed", "density", m.density.String())
}

// Lanes returns a copy of the active spawn lanes
func (m *Manager) Lanes() []Anchor {
	return selectLanes(m.lanes, len(m.lanes))
}

// Update runs one tick: rebuild lanes on a barrier change, then count down
// to the next spawn
func (m *Manager) Update(dt float64) {
	if m.barrier != nil {
		status, moving := m.barrier.Status(), m.barrier.Moving()
		if status != m.lastStatus || moving != m.lastMoving {
			m.observe(status, moving)
		}
	}

	m.wait -= dt
	if m.wait > 0 {
		return
	}
	m.spawn()
	m.wait = SpawnDelay(m.density, m.rng)
}

func (m *Manager) observe(status barrier.Status, moving bool) {
	n := LaneCount(m.cfg.Direction, m.barrier.Direction(), status, moving)
	m.lanes = selectLanes(m.cfg.Anchors, n)
	m.lastStatus = status
	m.lastMoving = moving

	metrics.RecordActiveLanes(m.cfg.Name, len(m.lanes))
	m.log.V(1).Info("Spawn lanes rebuilt", "status", status.String(), "moving", moving, "lanes", len(m.lanes))
}

func (m *Manager) spawn() {
	if len(m.lanes) == 0 || len(m.cfg.Archetypes) == 0 {
		return
	}

	lane := m.lanes[m.rng.Intn(len(m.lanes))]
	archetype := m.cfg.Archetypes[m.rng.Intn(len(m.cfg.Archetypes))]

	rot := lane.Rotation
	if m.cfg.Direction == barrier.DirectionReverse {
		rot = reverseFacing
	}

	m.spawner.Spawn(SpawnRequest{
		Manager:   m.cfg.Name,
		Archetype: archetype,
		Position:  lane.Position,
		Rotation:  rot,
		Speed:     m.cfg.Speed,
		Parent:    m.cfg.Parent,
	})
	metrics.RecordSpawn(m.cfg.Name)
	m.log.V(2).Info("Spawned car", "lane", lane.Name, "archetype", archetype.Name)
}
