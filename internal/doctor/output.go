package doctor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	lmerrors "github.com/rileyhilliard/ledmon/internal/errors"
	"github.com/rileyhilliard/ledmon/internal/lock"
)

// Pinger is implemented by sinks that can test their connection.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SocketCheck verifies the LED-matrix daemon accepts connections.
type SocketCheck struct {
	Socket string
	Sink   Pinger
}

func (c *SocketCheck) Name() string     { return "daemon_socket" }
func (c *SocketCheck) Category() string { return CategoryOutput }

func (c *SocketCheck) Run(ctx context.Context) CheckResult {
	info, err := os.Stat(c.Socket)
	if err != nil {
		return fail(fmt.Sprintf("Socket %s does not exist", c.Socket),
			"Start the LED-matrix daemon, or set 'socket' to where it listens")
	}
	if info.Mode()&os.ModeSocket == 0 {
		return fail(fmt.Sprintf("%s is not a socket", c.Socket),
			"Set 'socket' to the daemon's Unix socket path")
	}
	if err := c.Sink.Ping(ctx); err != nil {
		return fail(lmerrors.Brief(err), "Check that the daemon is running and you may write to the socket")
	}
	return pass(fmt.Sprintf("Daemon listening on %s", c.Socket))
}

// BrightnessFileCheck verifies the optional brightness file holds an integer.
type BrightnessFileCheck struct {
	File string
	Max  int
}

func (c *BrightnessFileCheck) Name() string     { return "brightness_file" }
func (c *BrightnessFileCheck) Category() string { return CategoryOutput }

func (c *BrightnessFileCheck) Run(ctx context.Context) CheckResult {
	if c.File == "" {
		return pass(fmt.Sprintf("Brightness fixed at %d", c.Max))
	}
	data, err := os.ReadFile(c.File)
	if err != nil {
		return warn(fmt.Sprintf("Cannot read %s, using max_brightness %d", c.File, c.Max),
			"Check the path in 'render.max_brightness_file'")
	}
	v, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return warn(fmt.Sprintf("%s does not hold an integer, using max_brightness %d", c.File, c.Max),
			"The file must contain a single whole number")
	}
	if v > c.Max {
		return pass(fmt.Sprintf("Brightness file says %d, capped at max_brightness %d", v, c.Max))
	}
	return pass(fmt.Sprintf("Brightness %d from %s", v, c.File))
}

// LockCheck reports whether another instance already holds the lock.
type LockCheck struct {
	Path string
}

func (c *LockCheck) Name() string     { return "instance_lock" }
func (c *LockCheck) Category() string { return CategoryOutput }

func (c *LockCheck) Run(ctx context.Context) CheckResult {
	l, err := lock.TryAcquire(c.Path, "ledmon doctor")
	if errors.Is(err, lock.ErrLocked) {
		return warn(fmt.Sprintf("ledmon is running: %s", lock.Holder(c.Path)),
			"'ledmon run' will refuse to start a second instance")
	}
	if err != nil {
		return fail(lmerrors.Brief(err), "Set 'lock_file' to a writable location")
	}
	_ = l.Release()
	return pass(fmt.Sprintf("Lock file %s is free", c.Path))
}
