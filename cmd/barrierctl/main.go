package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/golangdaddy/laneshift/pkg/barrier"
	"github.com/golangdaddy/laneshift/pkg/command"
	"github.com/golangdaddy/laneshift/pkg/config"
	"github.com/golangdaddy/laneshift/pkg/logging"
)

func main() {
	defaults := config.Default().MQTT

	broker := pflag.StringP("broker", "b", "tcp://localhost:1883", "MQTT broker URL.")
	topic := pflag.StringP("topic", "t", defaults.Topic, "Topic carrying barrier commands.")
	qos := pflag.Uint8("qos", defaults.QoS, "MQTT quality of service, 0-2.")
	timeout := pflag.Duration("timeout", 10*time.Second, "Give up after this long.")
	verbosity := pflag.IntP("v", "v", logging.Info, "Number for the log level verbosity.")
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: barrierctl [flags] left|right|stop\n")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if pflag.NArg() != 1 {
		pflag.Usage()
		os.Exit(2)
	}
	d, err := parseDirection(pflag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	if *qos > 2 {
		log.Fatalf("invalid value %d for flag %q: must be 0, 1 or 2", *qos, "qos")
	}

	logger, sync, err := logging.New(logging.Options{Development: true, Verbosity: *verbosity})
	if err != nil {
		log.Fatal(err)
	}
	defer sync()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	err = command.Publish(ctx, command.ClientOptions{
		Broker:    *broker,
		Topic:     *topic,
		ClientID:  defaults.ClientID,
		QoS:       *qos,
		KeepAlive: defaults.KeepAlive,
	}, command.NewMessage(d, time.Now()), logger)
	if err != nil {
		log.Fatal(err)
	}
}

func parseDirection(s string) (barrier.Direction, error) {
	switch strings.ToLower(s) {
	case "left", "reverse":
		return barrier.DirectionReverse, nil
	case "right", "forward":
		return barrier.DirectionForward, nil
	case "stop", "close", "closed":
		return barrier.DirectionClosed, nil
	}
	return 0, fmt.Errorf("unknown direction %q, want left, right or stop", s)
}
