// Package transport sends commands to a viewer over a ZeroMQ REQ socket.
//
// REQ sockets are strictly lock-step: a request must be followed by reading
// its reply before the next request goes out. Client enforces this and
// reports misuse with ErrRequestPending and ErrNoRequest instead of blocking.
package transport

import (
	"context"
	"io"
	"log"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/go-zeromq/zmq4"
	"github.com/sirupsen/logrus"

	"github.com/mogaika/meshcat_client/command"
	"github.com/mogaika/meshcat_client/logger"
	"github.com/mogaika/meshcat_client/scene"
	"github.com/mogaika/meshcat_client/utils"
)

type state int

const (
	idle state = iota
	awaiting
	receiving
)

type inflight struct {
	requestType string
	path        string
	bytes       int
	started     time.Time
}

type Client struct {
	endpoint  string
	sck       zmq4.Socket
	log       *logrus.Entry
	zmqLog    io.Closer
	observers []Observer

	lock    sync.Mutex
	state   state
	current inflight
	closed  bool
}

type options struct {
	log         *logrus.Entry
	observers   []Observer
	dialRetries int
}

type Option func(*options)

func WithLogger(entry *logrus.Entry) Option {
	return func(o *options) { o.log = entry }
}

func WithObserver(observer Observer) Option {
	return func(o *options) { o.observers = append(o.observers, observer) }
}

// WithDialRetries sets how many times a failed connect is retried. The
// default is zero: Dial fails on the first refused connection.
func WithDialRetries(n int) Option {
	return func(o *options) { o.dialRetries = n }
}

// Dial connects to endpoint, for example "tcp://127.0.0.1:6000".
// Cancelling ctx closes the socket.
func Dial(ctx context.Context, endpoint string, opts ...Option) (*Client, error) {
	o := options{log: logger.Component("transport")}
	for _, opt := range opts {
		opt(&o)
	}

	zmqLog := o.log.WriterLevel(logrus.DebugLevel)
	sck := zmq4.NewReq(ctx,
		zmq4.WithDialerMaxRetries(o.dialRetries),
		zmq4.WithLogger(log.New(zmqLog, "", 0)))

	if err := sck.Dial(endpoint); err != nil {
		sck.Close()
		zmqLog.Close()
		return nil, &Error{Kind: ErrConnectionFailure, Op: "dial " + endpoint, Err: err}
	}

	o.log.WithField("endpoint", endpoint).Info("Connected")
	return &Client{
		endpoint:  endpoint,
		sck:       sck,
		log:       o.log.WithField("endpoint", endpoint),
		zmqLog:    zmqLog,
		observers: o.observers,
	}, nil
}

func (c *Client) Endpoint() string {
	return c.endpoint
}

// Request sends cmd without waiting for its acknowledgement. Reply must be
// called before the next Request.
func (c *Client) Request(cmd command.Command) error {
	op := "request " + cmd.RequestType()

	c.lock.Lock()
	if c.closed {
		c.lock.Unlock()
		return &Error{Kind: ErrClosed, Op: op, Path: cmd.Path()}
	}
	if c.state != idle {
		c.lock.Unlock()
		return &Error{Kind: ErrRequestPending, Op: op, Path: cmd.Path()}
	}
	c.state = awaiting
	c.current = inflight{
		requestType: cmd.RequestType(),
		path:        cmd.Path(),
		started:     time.Now(),
	}
	c.lock.Unlock()

	frames, err := command.Frames(cmd)
	if err != nil {
		c.reset()
		c.notify(Report{RequestType: cmd.RequestType(), Path: cmd.Path(), Err: err})
		return err
	}
	c.lock.Lock()
	c.current.bytes = len(frames[2])
	c.lock.Unlock()

	if c.log.Logger.IsLevelEnabled(logrus.TraceLevel) {
		c.log.Tracef("Sending %s frames %s", utils.SDump(cmd), utils.FramesString(frames))
	}

	if err := c.sck.SendMulti(zmq4.NewMsgFrom(frames...)); err != nil {
		c.reset()
		err = &Error{Kind: ErrTransportFailure, Op: op, Path: cmd.Path(), Err: err}
		c.notify(Report{RequestType: cmd.RequestType(), Path: cmd.Path(), Bytes: len(frames[2]), Err: err})
		return err
	}

	return nil
}

// Reply blocks until the acknowledgement of the pending request arrives.
// There is no timeout: only Close or cancelling the Dial context unblock it.
func (c *Client) Reply() (string, error) {
	c.lock.Lock()
	if c.closed {
		c.lock.Unlock()
		return "", &Error{Kind: ErrClosed, Op: "reply"}
	}
	switch c.state {
	case idle:
		c.lock.Unlock()
		return "", &Error{Kind: ErrNoRequest, Op: "reply"}
	case receiving:
		c.lock.Unlock()
		return "", &Error{Kind: ErrRequestPending, Op: "reply"}
	}
	c.state = receiving
	current := c.current
	c.lock.Unlock()

	msg, err := c.sck.Recv()
	c.reset()

	report := Report{
		RequestType: current.requestType,
		Path:        current.path,
		Bytes:       current.bytes,
		Duration:    time.Since(current.started),
	}
	if err != nil {
		report.Err = &Error{Kind: ErrTransportFailure, Op: "reply " + current.requestType, Path: current.path, Err: err}
		c.notify(report)
		return "", report.Err
	}

	if len(msg.Frames) != 0 {
		report.Ack = string(msg.Frames[0])
	}
	c.notify(report)
	return report.Ack, nil
}

// Send is Request followed by Reply.
func (c *Client) Send(cmd command.Command) (string, error) {
	if err := c.Request(cmd); err != nil {
		return "", err
	}
	return c.Reply()
}

func (c *Client) SetObject(path string, object *scene.LumpedObject) (string, error) {
	return c.Send(command.NewSetObject(path, object))
}

func (c *Client) SetTransform(path string, matrix mgl64.Mat4) (string, error) {
	return c.Send(command.NewSetTransform(path, matrix))
}

func (c *Client) SetProperty(path string, property command.Property) (string, error) {
	return c.Send(command.NewSetProperty(path, property))
}

func (c *Client) Delete(path string) (string, error) {
	return c.Send(command.NewDelete(path))
}

// Close releases the socket. A Reply blocked in another goroutine returns
// with ErrTransportFailure.
func (c *Client) Close() error {
	c.lock.Lock()
	if c.closed {
		c.lock.Unlock()
		return nil
	}
	c.closed = true
	c.lock.Unlock()

	err := c.sck.Close()
	c.zmqLog.Close()
	c.log.Info("Closed")
	return err
}

func (c *Client) reset() {
	c.lock.Lock()
	c.state = idle
	c.current = inflight{}
	c.lock.Unlock()
}

func (c *Client) notify(r Report) {
	entry := c.log.WithFields(logrus.Fields{
		"request_type": r.RequestType,
		"path":         r.Path,
		"bytes":        r.Bytes,
		"duration":     r.Duration,
	})
	if r.Err != nil {
		entry.WithError(r.Err).Warn("Command failed")
	} else {
		entry.WithField("ack", r.Ack).Debug("Command acknowledged")
	}
	for _, o := range c.observers {
		o.Observe(r)
	}
}
