package services

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/golangdaddy/laneshift/pkg/command"
	"github.com/golangdaddy/laneshift/pkg/config"
	"github.com/golangdaddy/laneshift/pkg/metrics"
)

func TestServeMetrics(t *testing.T) {
	metrics.Register()
	metrics.RecordSpawn("forward")

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	var g errgroup.Group
	g.Go(func() error { return ServeMetrics(ctx, ln, logr.Discard()) })

	resp, err := http.Get("http://" + ln.Addr().String() + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `laneshift_vehicles_spawned_total{manager="forward"}`)

	cancel()
	assert.NoError(t, g.Wait())
}

func TestStart_NothingConfigured(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	g, gctx := errgroup.WithContext(ctx)

	require.NoError(t, Start(gctx, g, config.Default(), &command.Latch{}, logr.Discard()))
	cancel()
	assert.NoError(t, g.Wait())
}

func TestStart_BadMetricsAddr(t *testing.T) {
	s := config.Default()
	s.Metrics.Addr = "not-an-address"
	var g errgroup.Group
	assert.Error(t, Start(context.Background(), &g, s, &command.Latch{}, logr.Discard()))
}
