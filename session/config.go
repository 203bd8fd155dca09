package session

import (
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/poollink/go-omnilogic/logger"
)

// Default values for session configuration options.
const (
	// DefaultPort is the UDP port the controller listens on.
	DefaultPort = 10444
	// DefaultAckTimeout is the wait for an acknowledgement before the
	// request datagram is retransmitted.
	DefaultAckTimeout = 500 * time.Millisecond
	// DefaultSendAttempts is the total number of transmissions of one
	// request before giving up.
	DefaultSendAttempts = 5
	// DefaultResponseTimeout is the wait for the first data frame of a
	// response after the request was acknowledged.
	DefaultResponseTimeout = 5 * time.Second
	// DefaultFragmentWait bounds the total time spent collecting the
	// fragments of one fragmented response.
	DefaultFragmentWait = 30 * time.Second
	// DefaultFragmentIdle bounds the gap between two consecutive fragments.
	// It covers the controller's own retransmit schedule of 2.1 seconds
	// times five attempts with a little padding.
	DefaultFragmentIdle = 10500 * time.Millisecond
)

// Boundary values accepted by the validating options.
const (
	MinAckTimeout = 50 * time.Millisecond
	MaxAckTimeout = 10 * time.Second

	MinSendAttempts = 1
	MaxSendAttempts = 10

	MinResponseTimeout = 100 * time.Millisecond
	MaxResponseTimeout = 2 * time.Minute

	MinFragmentWait = time.Second
	MaxFragmentWait = 5 * time.Minute
)

// Config holds the session configuration. Create it with NewConfig and
// adjust it through Option values.
type Config struct {
	host string
	port int

	ackTimeout      time.Duration
	sendAttempts    int
	responseTimeout time.Duration
	fragmentWait    time.Duration
	fragmentIdle    time.Duration

	logger logger.Logger
}

// NewConfig creates a session configuration for the controller at host,
// applying the given options. The host must be a valid IP address or
// resolvable hostname.
func NewConfig(host string, opts ...Option) (*Config, error) {
	cfg := &Config{
		port:            DefaultPort,
		ackTimeout:      DefaultAckTimeout,
		sendAttempts:    DefaultSendAttempts,
		responseTimeout: DefaultResponseTimeout,
		fragmentWait:    DefaultFragmentWait,
		fragmentIdle:    DefaultFragmentIdle,
		logger:          logger.GetLogger(),
	}

	if err := cfg.setHost(host); err != nil {
		return nil, err
	}

	for _, opt := range opts {
		if err := opt.apply(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func (c *Config) setHost(host string) error {
	if host == "" {
		return errors.New("host is empty")
	}
	if ip := net.ParseIP(host); ip != nil {
		c.host = host
		return nil
	}
	if _, err := net.LookupHost(host); err != nil {
		return fmt.Errorf("invalid host %q: %w", host, err)
	}
	c.host = host

	return nil
}

// Host returns the configured controller host.
func (c *Config) Host() string { return c.host }

// Port returns the configured controller UDP port.
func (c *Config) Port() int { return c.port }

// AckTimeout returns the acknowledgement wait per transmission.
func (c *Config) AckTimeout() time.Duration { return c.ackTimeout }

// SendAttempts returns the transmission budget per request.
func (c *Config) SendAttempts() int { return c.sendAttempts }

// ResponseTimeout returns the wait for the first data frame.
func (c *Config) ResponseTimeout() time.Duration { return c.responseTimeout }

// FragmentWait returns the total fragment collection budget.
func (c *Config) FragmentWait() time.Duration { return c.fragmentWait }

// Logger returns the configured logger.
func (c *Config) Logger() logger.Logger { return c.logger }

// Option configures a Config. Options validate their argument and reject
// out-of-range values.
type Option interface {
	apply(cfg *Config) error
}

type optFunc struct {
	f func(cfg *Config) error
}

func newOptFunc(f func(cfg *Config) error) *optFunc {
	return &optFunc{f: f}
}

func (o *optFunc) apply(cfg *Config) error {
	return o.f(cfg)
}

// WithPort sets the controller UDP port.
func WithPort(port int) Option {
	return newOptFunc(func(cfg *Config) error {
		if port < 1 || port > 65535 {
			return fmt.Errorf("port %d out of range [1, 65535]", port)
		}
		cfg.port = port
		return nil
	})
}

// WithAckTimeout sets the acknowledgement wait per transmission.
func WithAckTimeout(d time.Duration) Option {
	return newOptFunc(func(cfg *Config) error {
		if d < MinAckTimeout || d > MaxAckTimeout {
			return fmt.Errorf("ack timeout %v out of range [%v, %v]", d, MinAckTimeout, MaxAckTimeout)
		}
		cfg.ackTimeout = d
		return nil
	})
}

// WithSendAttempts sets the transmission budget per request, including the
// initial transmission.
func WithSendAttempts(n int) Option {
	return newOptFunc(func(cfg *Config) error {
		if n < MinSendAttempts || n > MaxSendAttempts {
			return fmt.Errorf("send attempts %d out of range [%d, %d]", n, MinSendAttempts, MaxSendAttempts)
		}
		cfg.sendAttempts = n
		return nil
	})
}

// WithResponseTimeout sets the wait for the first data frame of a response.
func WithResponseTimeout(d time.Duration) Option {
	return newOptFunc(func(cfg *Config) error {
		if d < MinResponseTimeout || d > MaxResponseTimeout {
			return fmt.Errorf("response timeout %v out of range [%v, %v]", d, MinResponseTimeout, MaxResponseTimeout)
		}
		cfg.responseTimeout = d
		return nil
	})
}

// WithFragmentWait sets the total fragment collection budget for fragmented
// responses.
func WithFragmentWait(d time.Duration) Option {
	return newOptFunc(func(cfg *Config) error {
		if d < MinFragmentWait || d > MaxFragmentWait {
			return fmt.Errorf("fragment wait %v out of range [%v, %v]", d, MinFragmentWait, MaxFragmentWait)
		}
		cfg.fragmentWait = d
		if cfg.fragmentIdle > d {
			cfg.fragmentIdle = d
		}
		return nil
	})
}

// WithLogger sets the logger used by the session.
func WithLogger(l logger.Logger) Option {
	return newOptFunc(func(cfg *Config) error {
		if l == nil {
			return errors.New("logger is nil")
		}
		cfg.logger = l
		return nil
	})
}
