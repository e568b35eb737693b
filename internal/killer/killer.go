// Package killer terminates processes and waits for them to go away.
package killer

import (
	"errors"
	"fmt"
	"time"
)

// Outcome classifies a termination attempt.
type Outcome int

const (
	Killed Outcome = iota
	NoSuchProcess
	SignalFailed
)

func (o Outcome) String() string {
	switch o {
	case Killed:
		return "killed"
	case NoSuchProcess:
		return "no such process"
	case SignalFailed:
		return "signal failed"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

var (
	ErrNoSuchProcess = errors.New("process does not exist")
	ErrSignalFailed  = errors.New("failed to send signal")
	ErrUnsupported   = errors.New("process termination not supported on this platform")
)

const (
	defaultTimeout = 3 * time.Second
	pollInterval   = 50 * time.Millisecond
)

// Killer sends a signal to a process and waits (up to Timeout) for it to
// exit. A process that is still around after Timeout still counts as
// Killed: the signal was delivered.
type Killer struct {
	signal  string
	timeout time.Duration
}

// Options configures a Killer.
type Options struct {
	// Signal is a signal name such as "SIGKILL" or "TERM". Defaults to SIGKILL.
	Signal string
	// Timeout bounds the wait for the process to exit. Defaults to 3s.
	Timeout time.Duration
}

// New validates opts and returns a Killer.
func New(opts Options) (*Killer, error) {
	sig := opts.Signal
	if sig == "" {
		sig = "SIGKILL"
	}
	sig, err := normalizeSignal(sig)
	if err != nil {
		return nil, err
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Killer{signal: sig, timeout: timeout}, nil
}

// Signal returns the canonical signal name used by k.
func (k *Killer) Signal() string {
	return k.signal
}

// Kill terminates pid. err is nil exactly when the outcome is Killed and
// otherwise wraps ErrNoSuchProcess or ErrSignalFailed.
func (k *Killer) Kill(pid uint32) (Outcome, error) {
	if pid == 0 {
		return NoSuchProcess, fmt.Errorf("pid 0: %w", ErrNoSuchProcess)
	}
	return k.kill(pid)
}
