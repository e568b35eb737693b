//go:build !(linux || darwin || freebsd || openbsd)

package killer

import (
	"fmt"
	"strings"
)

func normalizeSignal(name string) (string, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if !strings.HasPrefix(name, "SIG") {
		name = "SIG" + name
	}
	return name, nil
}

func (k *Killer) kill(pid uint32) (Outcome, error) {
	return SignalFailed, fmt.Errorf("pid %d: %w: %w", pid, ErrSignalFailed, ErrUnsupported)
}
