package config

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/golangdaddy/laneshift/pkg/logging"
)

// Options holds the command-line configuration shared by the frontends
type Options struct {
	ConfigPath string // Scenario YAML, defaults when empty

	//
	// Diagnostics.
	//
	LogVerbosity   int    // Highest logr V level written
	LogDevelopment bool   // Console encoder instead of JSON
	LogFile        string // Log sink, stderr when empty
	MetricsAddr    string // Overrides the scenario's metrics address

	//
	// Barrier commands.
	//
	MQTTBroker string // Overrides the scenario's broker
	MQTTTopic  string // Overrides the scenario's topic

	TickRate int // Overrides the scenario's tick rate

	fs *pflag.FlagSet // FlagSet used in AddFlags and consulted in Scenario
}

// NewOptions returns Options initialised with defaults
func NewOptions() *Options {
	return &Options{
		LogVerbosity:   logging.Info,
		LogDevelopment: true,
	}
}

// AddFlags binds the Options fields to flags on fs
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	if fs == nil {
		fs = pflag.CommandLine
	}
	o.fs = fs

	fs.StringVarP(&o.ConfigPath, "config", "c", o.ConfigPath,
		"Path of the scenario YAML file.")
	fs.IntVarP(&o.LogVerbosity, "v", "v", o.LogVerbosity,
		"Number for the log level verbosity.")
	fs.BoolVar(&o.LogDevelopment, "log-development", o.LogDevelopment,
		"Write human readable logs instead of JSON.")
	fs.StringVar(&o.LogFile, "log-file", o.LogFile,
		"Write logs to this file instead of stderr.")
	fs.StringVar(&o.MetricsAddr, "metrics-addr", o.MetricsAddr,
		"Serve prometheus metrics on this address, e.g. :9090.")
	fs.StringVar(&o.MQTTBroker, "mqtt-broker", o.MQTTBroker,
		"MQTT broker URL for barrier commands, e.g. tcp://broker.hivemq.com:1883.")
	fs.StringVar(&o.MQTTTopic, "mqtt-topic", o.MQTTTopic,
		"MQTT topic carrying barrier commands.")
	fs.IntVar(&o.TickRate, "tick-rate", o.TickRate,
		"Simulation ticks per second.")
}

// Validate checks the Options for invalid values
func (o *Options) Validate() error {
	if o.LogVerbosity < 0 {
		return fmt.Errorf("invalid value %d for flag %q: must not be negative", o.LogVerbosity, "v")
	}
	if o.TickRate < 0 {
		return fmt.Errorf("invalid value %d for flag %q: must not be negative", o.TickRate, "tick-rate")
	}
	return nil
}

// Logging returns the logger options selected by the flags
func (o *Options) Logging() logging.Options {
	opts := logging.Options{
		Development: o.LogDevelopment,
		Verbosity:   o.LogVerbosity,
	}
	if o.LogFile != "" {
		opts.OutputPaths = []string{o.LogFile}
	}
	return opts
}

// Scenario loads the configured scenario and applies the flag overrides
func (o *Options) Scenario() (Scenario, error) {
	s := Default()
	if o.ConfigPath != "" {
		var err error
		if s, err = Load(o.ConfigPath); err != nil {
			return Scenario{}, err
		}
	}

	if o.changed("metrics-addr") {
		s.Metrics.Addr = o.MetricsAddr
	}
	if o.changed("mqtt-broker") {
		s.MQTT.Broker = o.MQTTBroker
	}
	if o.changed("mqtt-topic") {
		s.MQTT.Topic = o.MQTTTopic
	}
	if o.changed("tick-rate") && o.TickRate > 0 {
		s.TickRate = o.TickRate
	}
	return s, s.Validate()
}

// changed reports whether the named flag was set on the command line
func (o *Options) changed(name string) bool {
	if o.fs == nil {
		return false
	}
	f := o.fs.Lookup(name)
	return f != nil && f.Changed
}
