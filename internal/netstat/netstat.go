// Package netstat maps open TCP/UDP sockets to the processes that own them.
package netstat

import (
	"errors"
	"fmt"
	"net/netip"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
)

// PID is a host process identifier.
type PID = uint32

// Entry is one connection attributed to its owning process.
type Entry struct {
	Exe        string         `json:"exe"`
	PID        PID            `json:"pid"`
	LocalAddr  netip.AddrPort `json:"local_addr"`
	RemoteAddr netip.AddrPort `json:"remote_addr"`
	Proto      Protocol       `json:"proto"`
}

// NetStat lists the connections of the host for the requested protocols.
type NetStat interface {
	Ports(protos ProtocolSet) ([]Entry, error)
}

// ErrUnsupported is returned by providers for systems without an
// implementation.
var ErrUnsupported = errors.New("platform not supported")

// Options configures a provider.
type Options struct {
	// ProcRoot is the procfs mount point. Defaults to /proc.
	ProcRoot string
	// Logger receives debug output about skipped processes. Optional.
	Logger *log.Logger
}

// providers is indexed by runtime.GOOS.
var providers = map[string]func(Options) NetStat{
	"linux": func(opts Options) NetStat { return NewLinux(opts) },
}

// New returns the provider registered for goos. Systems without one get a
// provider whose Ports always fails with ErrUnsupported.
func New(goos string, opts Options) NetStat {
	if factory, ok := providers[goos]; ok {
		return factory(opts)
	}
	return unsupported{goos: goos}
}

// Supported lists the systems that have a provider.
func Supported() []string {
	out := make([]string, 0, len(providers))
	for goos := range providers {
		out = append(out, goos)
	}
	sort.Strings(out)
	return out
}

type unsupported struct {
	goos string
}

func (u unsupported) Ports(ProtocolSet) ([]Entry, error) {
	return nil, fmt.Errorf("%s: %w (supported: %s)", u.goos, ErrUnsupported, strings.Join(Supported(), ", "))
}

// MarshalText lets Protocol render as its token in JSON output.
func (p Protocol) MarshalText() ([]byte, error) {
	switch p {
	case TCP, UDP:
		return []byte(p.String()), nil
	}
	return nil, fmt.Errorf("unknown protocol %d", uint8(p))
}

// UnmarshalText parses the token form.
func (p *Protocol) UnmarshalText(text []byte) error {
	v, err := ParseProtocol(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
