package services

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"

	"github.com/golangdaddy/laneshift/pkg/command"
	"github.com/golangdaddy/laneshift/pkg/config"
	"github.com/golangdaddy/laneshift/pkg/metrics"
)

const shutdownTimeout = 5 * time.Second

// Start launches the scenario's background services on g: the metrics
// server when an address is set, the MQTT subscriber when a broker is set.
// Both stop when ctx is done.
func Start(ctx context.Context, g *errgroup.Group, s config.Scenario, latch *command.Latch, log logr.Logger) error {
	log = log.WithName("services")
	metrics.Register()

	if s.Metrics.Addr != "" {
		ln, err := net.Listen("tcp", s.Metrics.Addr)
		if err != nil {
			return fmt.Errorf("metrics listener on %s: %w", s.Metrics.Addr, err)
		}
		g.Go(func() error {
			return ServeMetrics(ctx, ln, log)
		})
	}

	if s.MQTT.Broker != "" {
		sub := command.NewSubscriber(command.ClientOptions{
			Broker:    s.MQTT.Broker,
			Topic:     s.MQTT.Topic,
			ClientID:  s.MQTT.ClientID,
			QoS:       s.MQTT.QoS,
			KeepAlive: s.MQTT.KeepAlive,
		}, latch, log)
		g.Go(func() error {
			return sub.Run(ctx)
		})
	} else {
		log.V(1).Info("No MQTT broker configured, keyboard input only")
	}
	return nil
}

// ServeMetrics serves /metrics on ln until ctx is done
func ServeMetrics(ctx context.Context, ln net.Listener, log logr.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info("Serving metrics", "addr", ln.Addr().String())
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("metrics server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("metrics server shutdown: %w", err)
	}
	return nil
}
