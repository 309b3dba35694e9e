package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golangdaddy/laneshift/pkg/barrier"
	"github.com/golangdaddy/laneshift/pkg/traffic"
	"github.com/golangdaddy/laneshift/pkg/vehicle"
)

func TestDefault(t *testing.T) {
	s := Default()
	require.NoError(t, s.Validate())

	assert.Equal(t, 5.0, s.Barrier.MoveSpeed)
	assert.Equal(t, 50.0, s.Barrier.RotationSpeed)
	assert.Equal(t, 25.0, s.Barrier.RotateAngle)
	assert.Equal(t, 4.75, s.Barrier.OpenOffset)
	assert.Equal(t, "barrier_condition", s.MQTT.Topic)
	assert.Empty(t, s.MQTT.Broker)
	assert.Len(t, s.Managers, 2)

	opts := s.WorldOptions()
	require.Len(t, opts.Managers, 2)
	assert.Equal(t, barrier.DirectionReverse, opts.Managers[1].Direction)
	assert.Equal(t, traffic.DensityMedium, opts.Managers[0].Density)
	assert.Empty(t, opts.Managers[0].Anchors, "anchors come from the road layout")
	assert.False(t, opts.Managers[0].AutoDensity)
	assert.Len(t, opts.Managers[0].Archetypes, 4)
}

func TestParse_Overrides(t *testing.T) {
	doc := `
seed: 42
barrier:
  moveSpeed: 8
mqtt:
  broker: tcp://localhost:1883
  keepAlive: 30s
managers:
  - name: north
    direction: 1
    speed: 14
    density: high
    autoDensity: true
    lanes:
      - {name: a, x: 2, z: -40}
      - {name: b, x: 6, z: -40, yaw: 0}
archetypes:
  - name: truck
    color: "#102030"
    params:
      speed: 6
      totalShift: 3
`
	s, err := Parse([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, int64(42), s.Seed)
	assert.Equal(t, 8.0, s.Barrier.MoveSpeed)
	assert.Equal(t, 50.0, s.Barrier.RotationSpeed, "unset fields keep their defaults")
	assert.Equal(t, 30*time.Second, s.MQTT.KeepAlive)
	assert.Equal(t, "barrier_condition", s.MQTT.Topic)

	opts := s.WorldOptions()
	require.Len(t, opts.Managers, 1)
	m := opts.Managers[0]
	assert.Equal(t, traffic.DensityHigh, m.Density)
	assert.True(t, m.AutoDensity)
	assert.Equal(t, 14.0, m.Speed)
	require.Len(t, m.Anchors, 2)
	assert.Equal(t, 6.0, m.Anchors[1].Position.X)

	require.Len(t, m.Archetypes, 1)
	truck := m.Archetypes[0]
	want := vehicle.DefaultParams()
	want.Speed = 6
	want.TotalShift = 3
	assert.Empty(t, cmp.Diff(want, truck.Params))
	assert.Equal(t, uint8(0x10), truck.Color.R)
	assert.Equal(t, uint8(0x30), truck.Color.B)
}

func TestParse_Invalid(t *testing.T) {
	tests := map[string]string{
		"bad density":    "managers: [{name: a, direction: 1, density: jammed}]",
		"bad direction":  "managers: [{name: a, direction: 2}]",
		"duplicate name": "managers: [{name: a, direction: 1}, {name: a, direction: -1}]",
		"bad color":      "archetypes: [{name: a, color: red}]",
		"one lane":       "road: {lanes: 1}",
		"bad qos":        "mqtt: {qos: 3}",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}

	_, err := Parse([]byte("seed: [1"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tickRate: 30\n"), 0o600))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 30, s.TickRate)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestOptions_FlagOverrides(t *testing.T) {
	opts := NewOptions()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	opts.AddFlags(fs)
	require.NoError(t, fs.Parse([]string{"--mqtt-broker", "tcp://10.0.0.2:1883", "--tick-rate", "120", "-v", "2"}))
	require.NoError(t, opts.Validate())

	s, err := opts.Scenario()
	require.NoError(t, err)
	assert.Equal(t, "tcp://10.0.0.2:1883", s.MQTT.Broker)
	assert.Equal(t, 120, s.TickRate)
	assert.Equal(t, "barrier_condition", s.MQTT.Topic, "unset flags leave the scenario alone")
	assert.Equal(t, 2, opts.Logging().Verbosity)
}
