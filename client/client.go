// Package client provides the command API for an OmniLogic controller: raw
// and parsed configuration, telemetry, alarm and diagnostic queries, and
// every equipment control command the local protocol supports. Command
// parameters are validated before any request goes on the wire.
package client

import (
	"context"

	"github.com/poollink/go-omnilogic/logger"
	"github.com/poollink/go-omnilogic/session"
	"github.com/poollink/go-omnilogic/wire"
)

// Transport is the request/response exchange a Client runs on. Satisfied by
// *session.Session.
type Transport interface {
	Call(ctx context.Context, msgType wire.Type, body []byte) (*session.Response, error)
}

var _ Transport = (*session.Session)(nil)

// Client issues commands to one controller over a Transport. It is stateless
// and safe for concurrent use; the transport serializes exchanges.
type Client struct {
	transport Transport
	logger    logger.Logger
}

// NewClient creates a client on the given transport. A nil log falls back to
// the package default logger.
func NewClient(t Transport, log logger.Logger) *Client {
	if log == nil {
		log = logger.GetLogger()
	}

	return &Client{transport: t, logger: log}
}

// GetRaw sends an arbitrary message type with an optional pre-built XML body
// and returns the decoded response body. It is a debugging entry point; the
// regular command methods cover the known operations.
func (c *Client) GetRaw(ctx context.Context, msgType wire.Type, body []byte) ([]byte, error) {
	resp, err := c.transport.Call(ctx, msgType, body)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, nil
	}

	return resp.Body, nil
}

// call builds the named request document and performs the exchange.
func (c *Client) call(ctx context.Context, msgType wire.Type, name string, params ...wire.Param) (*session.Response, error) {
	body, err := wire.BuildRequest(name, params...)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("sending command", "command", name, "msgType", msgType.String())

	return c.transport.Call(ctx, msgType, body)
}

// send performs a command exchange where only success matters.
func (c *Client) send(ctx context.Context, msgType wire.Type, name string, params ...wire.Param) error {
	_, err := c.call(ctx, msgType, name, params...)
	return err
}
