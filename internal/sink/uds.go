package sink

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"

	lmerrors "github.com/rileyhilliard/ledmon/internal/errors"
	"github.com/rileyhilliard/ledmon/internal/logger"
)

// RenderPath is the daemon endpoint that accepts base64 encoded panels.
const RenderPath = "/render/base64"

// DefaultTimeout bounds a single send.
const DefaultTimeout = 2 * time.Second

// renderBody is the JSON body of a render request.
type renderBody struct {
	LeftImage  string `json:"left_image,omitempty"`
	RightImage string `json:"right_image,omitempty"`
}

// EncodeBody builds the JSON body for req, base64 encoding each present panel.
func EncodeBody(req Request) ([]byte, error) {
	if req.Empty() {
		return nil, ErrEmptyRequest
	}
	var body renderBody
	if req.Left != nil {
		body.LeftImage = base64.StdEncoding.EncodeToString(req.Left)
	}
	if req.Right != nil {
		body.RightImage = base64.StdEncoding.EncodeToString(req.Right)
	}
	return json.Marshal(body)
}

// UDS posts frames to the daemon over a Unix domain socket. A fresh
// connection is dialled per request and closed after the response.
type UDS struct {
	socket  string
	timeout time.Duration
	client  *http.Client
	log     logger.Logger
	newID   func() string
}

// NewUDS creates a client for the daemon listening on socket.
func NewUDS(socket string, timeout time.Duration, log logger.Logger) *UDS {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = logger.Noop()
	}
	dialer := &net.Dialer{}
	transport := &http.Transport{
		DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
			return dialer.DialContext(ctx, "unix", socket)
		},
		DisableKeepAlives: true,
	}
	return &UDS{
		socket:  socket,
		timeout: timeout,
		client:  &http.Client{Transport: transport},
		log:     log,
		newID:   uuid.NewString,
	}
}

// Socket returns the socket path.
func (u *UDS) Socket() string {
	return u.socket
}

// Send posts req and waits for the daemon's response.
func (u *UDS) Send(ctx context.Context, req Request) error {
	body, err := EncodeBody(req)
	if err != nil {
		return lmerrors.WrapWithCode(err, lmerrors.ErrSink, "Refusing to send an empty frame", "")
	}

	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	// host is ignored by the unix dialer but required by net/http
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, "http://led-matrix"+RenderPath, bytes.NewReader(body))
	if err != nil {
		return lmerrors.WrapWithCode(err, lmerrors.ErrSink, "Failed to build render request", "")
	}
	id := u.newID()
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-Id", id)
	httpReq.Close = true

	start := time.Now()
	resp, err := u.client.Do(httpReq)
	if err != nil {
		return lmerrors.WrapWithCode(err, lmerrors.ErrSink,
			fmt.Sprintf("Cannot reach LED-matrix daemon at %s", u.socket),
			"Check that the daemon is running and the socket path is correct")
	}
	defer resp.Body.Close()
	// the daemon's body is informational; drain a bounded amount for the log
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return lmerrors.New(lmerrors.ErrSink,
			fmt.Sprintf("LED-matrix daemon rejected frame: %s %s", resp.Status, bytes.TrimSpace(msg)),
			"Check the daemon logs")
	}

	u.log.Debug("frame %s delivered in %s (%d bytes)", id, time.Since(start).Round(time.Microsecond), len(body))
	return nil
}

// Ping checks that something is accepting connections on the socket.
func (u *UDS) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()
	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", u.socket)
	if err != nil {
		return lmerrors.WrapWithCode(err, lmerrors.ErrSink,
			fmt.Sprintf("Cannot connect to %s", u.socket),
			"Start the LED-matrix daemon or set 'socket' in the config")
	}
	return conn.Close()
}
