package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorders(t *testing.T) {
	Register()
	Register() // idempotent

	before := testutil.ToFloat64(vehiclesSpawned.WithLabelValues("north"))
	RecordSpawn("north")
	RecordSpawn("north")
	assert.Equal(t, before+2, testutil.ToFloat64(vehiclesSpawned.WithLabelValues("north")))

	RecordActiveLanes("north", 4)
	assert.Equal(t, 4.0, testutil.ToFloat64(activeLanes.WithLabelValues("north")))

	SetActiveVehicles(7)
	assert.Equal(t, 7.0, testutil.ToFloat64(vehiclesActive))

	RecordCommand(false)
	assert.GreaterOrEqual(t, testutil.ToFloat64(commands.WithLabelValues("false")), 1.0)
}

func TestHandler(t *testing.T) {
	Register()
	RecordBarrierTransition("open")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `laneshift_barrier_transitions_total{phase="open"}`))
}
