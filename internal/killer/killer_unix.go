//go:build linux || darwin || freebsd || openbsd

package killer

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/process"
	"golang.org/x/sys/unix"
)

func normalizeSignal(name string) (string, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if !strings.HasPrefix(name, "SIG") {
		name = "SIG" + name
	}
	if unix.SignalNum(name) == 0 {
		return "", fmt.Errorf("unknown signal %q", name)
	}
	return name, nil
}

func (k *Killer) kill(pid uint32) (Outcome, error) {
	proc, err := process.NewProcess(int32(pid))
	if err != nil {
		if errors.Is(err, process.ErrorProcessNotRunning) {
			return NoSuchProcess, fmt.Errorf("pid %d: %w", pid, ErrNoSuchProcess)
		}
		return SignalFailed, fmt.Errorf("pid %d: %w: %v", pid, ErrSignalFailed, err)
	}

	if err := proc.SendSignal(unix.SignalNum(k.signal)); err != nil {
		outcome := classify(err)
		if outcome == NoSuchProcess {
			return outcome, fmt.Errorf("pid %d: %w", pid, ErrNoSuchProcess)
		}
		return outcome, fmt.Errorf("pid %d: %w: %v", pid, ErrSignalFailed, err)
	}

	waitGone(proc, k.timeout)
	return Killed, nil
}

// classify maps a signal delivery error onto an Outcome.
func classify(err error) Outcome {
	switch {
	case err == nil:
		return Killed
	case errors.Is(err, os.ErrProcessDone), errors.Is(err, unix.ESRCH):
		return NoSuchProcess
	default:
		return SignalFailed
	}
}

// waitGone polls until the process has exited (or is a zombie waiting to be
// reaped by its parent) or timeout elapses.
func waitGone(proc *process.Process, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		if gone(proc) {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(pollInterval)
	}
}

func gone(proc *process.Process) bool {
	running, err := proc.IsRunning()
	if err != nil || !running {
		return true
	}
	status, err := proc.Status()
	if err != nil {
		return errors.Is(err, unix.ESRCH)
	}
	return slices.Contains(status, process.Zombie)
}
