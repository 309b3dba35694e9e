package world

import (
	"fmt"
	"math/rand"

	"github.com/go-logr/logr"

	"github.com/golangdaddy/laneshift/pkg/barrier"
	"github.com/golangdaddy/laneshift/pkg/metrics"
	"github.com/golangdaddy/laneshift/pkg/traffic"
	"github.com/golangdaddy/laneshift/pkg/transform"
	"github.com/golangdaddy/laneshift/pkg/vehicle"
)

// Input delivers the latest barrier direction, if one arrived since the
// previous call
type Input interface {
	Take() (barrier.Direction, bool)
}

// Options configures a World
type Options struct {
	Layout   Layout
	Geometry Geometry
	Barrier  barrier.Config
	// Managers are created in order. A manager without anchors gets the
	// layout's anchors for its direction.
	Managers []traffic.Config
	Seed     int64
}

// DefaultOptions returns a world with one manager per side
func DefaultOptions() Options {
	archetypes := []vehicle.Archetype{{Name: "sedan", Params: vehicle.DefaultParams()}}
	return Options{
		Layout:   DefaultLayout(),
		Geometry: DefaultGeometry(),
		Barrier:  barrier.DefaultConfig(),
		Managers: []traffic.Config{
			{Name: "forward", Direction: barrier.DirectionForward, Speed: 10, Density: traffic.DensityMedium, Parent: "forward-cars", Archetypes: archetypes},
			{Name: "reverse", Direction: barrier.DirectionReverse, Speed: 10, Density: traffic.DensityMedium, Parent: "reverse-cars", Archetypes: archetypes},
		},
		Seed: 1,
	}
}

// World owns the barrier, the traffic managers and every live car, and
// advances them in a fixed order each tick.
type World struct {
	opts Options
	log  logr.Logger

	rootPos transform.Vec3
	rootRot transform.Rotation

	segments  []*transform.Node
	lead      *transform.Node
	colliders []collider

	barrier  *barrier.Controller
	managers []*traffic.Manager
	cars     []*vehicle.Car
	owners   map[*vehicle.Car]string // Manager that spawned each live car
	input    Input

	clock float64
	ticks uint64
}

// New builds the barrier from opts.Geometry and one traffic manager per
// entry of opts.Managers.
func New(opts Options, log logr.Logger) *World {
	w := &World{
		opts:    opts,
		log:     log.WithName("world"),
		rootRot: transform.Euler(opts.Geometry.RootYaw),
		owners:  make(map[*vehicle.Car]string),
	}

	g := opts.Geometry
	w.lead = transform.NewNode("lead", transform.Vec3{})
	w.colliders = append(w.colliders, collider{node: w.lead, halfExtents: g.LeadExtents, layer: vehicle.BarrierLayer})

	handles := make([]transform.Transform, g.Segments)
	for i := 0; i < g.Segments; i++ {
		node := transform.NewNode(fmt.Sprintf("segment-%d", i), transform.Vec3{Z: float64(i+1) * g.SegmentSpacing})
		w.segments = append(w.segments, node)
		w.colliders = append(w.colliders, collider{node: node, halfExtents: g.SegmentExtents, layer: vehicle.BarrierLayer})
		handles[i] = node
	}

	w.barrier = barrier.NewController(opts.Barrier, handles, w.lead, log)
	w.barrier.OnTransition(func(_, to barrier.Phase) {
		metrics.RecordBarrierTransition(to.String())
	})

	rng := rand.New(rand.NewSource(opts.Seed))
	for _, cfg := range opts.Managers {
		if len(cfg.Anchors) == 0 {
			cfg.Anchors = opts.Layout.Anchors(cfg.Direction)
		}
		w.managers = append(w.managers, traffic.NewManager(cfg, w.barrier, w, rng, log))
	}

	w.log.Info("World ready", "segments", g.Segments, "managers", len(w.managers))
	return w
}

// SetInput attaches the direction source read at the start of each tick
func (w *World) SetInput(in Input) {
	w.input = in
}

// Barrier returns the barrier controller
func (w *World) Barrier() *barrier.Controller { return w.barrier }

// Layout returns the road cross-section the world was built with
func (w *World) Layout() Layout { return w.opts.Layout }

// Time returns the simulated seconds elapsed
func (w *World) Time() float64 { return w.clock }

// Ticks returns the number of completed steps
func (w *World) Ticks() uint64 { return w.ticks }

// Managers returns the traffic managers in creation order
func (w *World) Managers() []*traffic.Manager {
	return append([]*traffic.Manager(nil), w.managers...)
}

// Manager returns the manager named name
func (w *World) Manager(name string) (*traffic.Manager, bool) {
	for _, m := range w.managers {
		if m.Name() == name {
			return m, true
		}
	}
	return nil, false
}

// Cars returns the live cars, oldest first
func (w *World) Cars() []*vehicle.Car {
	return append([]*vehicle.Car(nil), w.cars...)
}

// Spawn implements traffic.Spawner. The car joins the world immediately and
// moves from the next tick on.
func (w *World) Spawn(req traffic.SpawnRequest) {
	car := vehicle.NewCar(req.Archetype, req.Position, req.Rotation, req.Speed, req.Parent)
	w.cars = append(w.cars, car)
	w.owners[car] = req.Manager
	w.log.V(2).Info("Car joined", "id", car.ID().String(), "manager", req.Manager, "parent", req.Parent)
}

// Step advances the world by dt seconds
func (w *World) Step(dt float64) {
	if w.input != nil {
		if d, ok := w.input.Take(); ok {
			w.barrier.SetDirection(d)
		}
	}

	w.barrier.Update(dt)

	existing := len(w.cars)
	counts := w.liveCounts()
	for _, m := range w.managers {
		m.FollowCount(counts[m.Name()])
		m.Update(dt)
	}

	for _, car := range w.cars[:existing] {
		before := car.Shift()
		car.Update(dt, w)
		if before == 0 && car.Shift() > 0 {
			metrics.RecordDodge()
		}
	}

	w.expire()
	w.clock += dt
	w.ticks++
}

// liveCounts returns the number of live cars per spawning manager
func (w *World) liveCounts() map[string]int {
	counts := make(map[string]int, len(w.managers))
	for _, car := range w.cars {
		counts[w.owners[car]]++
	}
	return counts
}

func (w *World) expire() {
	live := w.cars[:0]
	for _, car := range w.cars {
		if car.Expired() {
			delete(w.owners, car)
			metrics.RecordDestroyed()
			w.log.V(2).Info("Car removed", "id", car.ID().String())
			continue
		}
		live = append(live, car)
	}
	for i := len(live); i < len(w.cars); i++ {
		w.cars[i] = nil
	}
	w.cars = live
	metrics.SetActiveVehicles(len(w.cars))
}

var (
	_ traffic.Spawner = (*World)(nil)
	_ vehicle.Probe   = (*World)(nil)
)
