package metrics

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const subsystem = "laneshift"

// Registry holds every laneshift collector
var Registry = prometheus.NewRegistry()

var (
	vehiclesSpawned = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Subsystem: subsystem,
			Name:      "vehicles_spawned_total",
			Help:      "Count of cars spawned, per traffic manager.",
		},
		[]string{"manager"},
	)
	vehiclesDestroyed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Subsystem: subsystem,
			Name:      "vehicles_destroyed_total",
			Help:      "Count of cars removed after their lifetime.",
		},
	)
	vehiclesActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Subsystem: subsystem,
			Name:      "vehicles_active",
			Help:      "Cars currently on the road.",
		},
	)
	dodges = prometheus.NewCounter(
		prometheus.CounterOpts{
			Subsystem: subsystem,
			Name:      "dodges_total",
			Help:      "Count of cars that started a lane change around the barrier.",
		},
	)
	activeLanes = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Subsystem: subsystem,
			Name:      "active_lanes",
			Help:      "Spawn lanes currently in use, per traffic manager.",
		},
		[]string{"manager"},
	)
	barrierTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Subsystem: subsystem,
			Name:      "barrier_transitions_total",
			Help:      "Count of barrier phase changes, by phase entered.",
		},
		[]string{"phase"},
	)
	commands = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Subsystem: subsystem,
			Name:      "barrier_commands_total",
			Help:      "Count of barrier command messages, by outcome.",
		},
		[]string{"result"},
	)
)

var registerMetrics sync.Once

// Register adds all collectors to Registry.
func Register() {
	registerMetrics.Do(func() {
		Registry.MustRegister(vehiclesSpawned)
		Registry.MustRegister(vehiclesDestroyed)
		Registry.MustRegister(vehiclesActive)
		Registry.MustRegister(dodges)
		Registry.MustRegister(activeLanes)
		Registry.MustRegister(barrierTransitions)
		Registry.MustRegister(commands)
	})
}

// Handler serves Registry in the prometheus text format
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// RecordSpawn records a car spawned by manager.
func RecordSpawn(manager string) {
	vehiclesSpawned.WithLabelValues(manager).Inc()
}

// RecordDestroyed records a car removed after its lifetime.
func RecordDestroyed() {
	vehiclesDestroyed.Inc()
}

// SetActiveVehicles records the number of cars on the road.
func SetActiveVehicles(n int) {
	vehiclesActive.Set(float64(n))
}

// RecordDodge records a car starting its lane change.
func RecordDodge() {
	dodges.Inc()
}

// RecordActiveLanes records the size of manager's spawn lane set.
func RecordActiveLanes(manager string, n int) {
	activeLanes.WithLabelValues(manager).Set(float64(n))
}

// RecordBarrierTransition records the barrier entering phase.
func RecordBarrierTransition(phase string) {
	barrierTransitions.WithLabelValues(phase).Inc()
}

// RecordCommand records a barrier command outcome, accepted or rejected.
func RecordCommand(accepted bool) {
	commands.WithLabelValues(strconv.FormatBool(accepted)).Inc()
}
