package app

import (
	"context"
	"fmt"
	"time"

	"goports/internal/netstat"
)

// ListParams selects what a scan covers.
type ListParams struct {
	// Protocols are protocol tokens ("tcp", "udp"). Empty means the
	// configured default.
	Protocols []string
}

// List scans the host and returns every connection attributed to its
// owning process.
func (a *App) List(ctx context.Context, params ListParams) ([]netstat.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	protos, err := a.protocols(params.Protocols)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	entries, err := a.ports.Ports(protos)
	if err != nil {
		return nil, fmt.Errorf("scan ports: %w", err)
	}
	a.log.Debug("scan complete", "protocols", protos.String(), "entries", len(entries), "took", time.Since(start))
	return entries, nil
}

func (a *App) protocols(tokens []string) (netstat.ProtocolSet, error) {
	if len(tokens) == 0 {
		tokens = a.cfg.Protocols
	}
	if len(tokens) == 0 {
		tokens = []string{netstat.TCP.String()}
	}
	return netstat.ParseProtocols(tokens)
}
