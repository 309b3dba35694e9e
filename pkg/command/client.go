package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/go-logr/logr"

	"github.com/golangdaddy/laneshift/pkg/metrics"
)

// ErrDisabled is returned when no broker is configured
var ErrDisabled = errors.New("mqtt broker not configured")

// ClientOptions locates the broker and topic
type ClientOptions struct {
	Broker    string // e.g. tcp://broker.hivemq.com:1883
	Topic     string
	ClientID  string
	QoS       byte
	KeepAlive time.Duration
}

func (o ClientOptions) clientOptions(suffix string) *mqtt.ClientOptions {
	opts := mqtt.NewClientOptions().
		AddBroker(o.Broker).
		SetClientID(fmt.Sprintf("%s-%s", o.ClientID, suffix)).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second)
	if o.KeepAlive > 0 {
		opts.SetKeepAlive(o.KeepAlive)
	}
	return opts
}

// Subscriber feeds barrier_condition messages into a Latch
type Subscriber struct {
	opts  ClientOptions
	latch *Latch
	log   logr.Logger
}

// NewSubscriber creates a subscriber writing into latch
func NewSubscriber(opts ClientOptions, latch *Latch, log logr.Logger) *Subscriber {
	return &Subscriber{
		opts:  opts,
		latch: latch,
		log:   log.WithName("command").WithValues("broker", opts.Broker, "topic", opts.Topic),
	}
}

// Run connects, subscribes and blocks until ctx is done. The subscription
// is renewed on every reconnect.
func (s *Subscriber) Run(ctx context.Context) error {
	if s.opts.Broker == "" {
		return ErrDisabled
	}

	opts := s.opts.clientOptions(fmt.Sprintf("sub-%d", time.Now().Unix()))
	opts.SetOnConnectHandler(func(c mqtt.Client) {
		s.log.Info("Connected to broker")
		token := c.Subscribe(s.opts.Topic, s.opts.QoS, func(_ mqtt.Client, m mqtt.Message) {
			s.handle(m.Payload())
		})
		go func() {
			<-token.Done()
			if err := token.Error(); err != nil {
				s.log.Error(err, "Subscribe failed")
				return
			}
			s.log.V(1).Info("Subscribed")
		}()
	})
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		s.log.Error(err, "Connection lost")
	})

	client := mqtt.NewClient(opts)
	token := client.Connect()
	select {
	case <-token.Done():
		if err := token.Error(); err != nil {
			return fmt.Errorf("connecting to %s: %w", s.opts.Broker, err)
		}
	case <-ctx.Done():
	}

	<-ctx.Done()
	client.Disconnect(250)
	s.log.Info("Disconnected from broker")
	return nil
}

// handle applies one payload; malformed ones are logged and dropped
func (s *Subscriber) handle(payload []byte) {
	d, msg, err := Decode(payload)
	if err != nil {
		metrics.RecordCommand(false)
		s.log.Error(err, "Ignoring barrier message", "payload", string(payload))
		return
	}
	metrics.RecordCommand(true)
	s.latch.Set(d)
	s.log.V(1).Info("Barrier command", "direction", d.String(), "timestamp", msg.Timestamp)
}

// Publish sends one message and disconnects
func Publish(ctx context.Context, opts ClientOptions, msg Message, log logr.Logger) error {
	if opts.Broker == "" {
		return ErrDisabled
	}
	payload, err := Encode(msg)
	if err != nil {
		return fmt.Errorf("encoding message: %w", err)
	}

	mo := opts.clientOptions(fmt.Sprintf("pub-%d", time.Now().Unix()))
	mo.SetConnectRetry(false)
	client := mqtt.NewClient(mo)
	if err := wait(ctx, client.Connect()); err != nil {
		return fmt.Errorf("connecting to %s: %w", opts.Broker, err)
	}
	defer client.Disconnect(250)

	if err := wait(ctx, client.Publish(opts.Topic, opts.QoS, false, payload)); err != nil {
		return fmt.Errorf("publishing to %s: %w", opts.Topic, err)
	}
	log.Info("Sent barrier command", "topic", opts.Topic, "payload", string(payload))
	return nil
}

func wait(ctx context.Context, token mqtt.Token) error {
	select {
	case <-token.Done():
		return token.Error()
	case <-ctx.Done():
		return ctx.Err()
	}
}
