package netstat

import (
	"errors"
	"fmt"
	"strings"
)

// Protocol is one of the transport protocols goports can resolve.
type Protocol uint8

const (
	TCP Protocol = iota
	UDP
)

// allProtocols fixes the iteration order of a ProtocolSet.
var allProtocols = [...]Protocol{TCP, UDP}

// ErrNoProtocols is returned when a scan is requested for an empty set.
var ErrNoProtocols = errors.New("at least one protocol must be requested")

// String returns the lowercase token, which is also the table file name.
func (p Protocol) String() string {
	return p.TableName()
}

// TableName returns the per-process connection table file under <pid>/net.
func (p Protocol) TableName() string {
	switch p {
	case TCP:
		return "tcp"
	case UDP:
		return "udp"
	}
	panic(fmt.Sprintf("netstat: unknown protocol %d", uint8(p)))
}

// ParseProtocol accepts "tcp" or "udp" (case insensitive).
func ParseProtocol(s string) (Protocol, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tcp":
		return TCP, nil
	case "udp":
		return UDP, nil
	}
	return 0, fmt.Errorf("invalid protocol %q (want tcp or udp)", s)
}

// ProtocolSet is a combinable set of protocols.
type ProtocolSet struct {
	bits uint8
}

// NewProtocolSet builds a set containing the given protocols.
func NewProtocolSet(protos ...Protocol) ProtocolSet {
	var s ProtocolSet
	for _, p := range protos {
		s = s.With(p)
	}
	return s
}

// ParseProtocols builds a set from a list of tokens. Duplicates are allowed.
func ParseProtocols(tokens []string) (ProtocolSet, error) {
	var s ProtocolSet
	for _, tok := range tokens {
		p, err := ParseProtocol(tok)
		if err != nil {
			return ProtocolSet{}, err
		}
		s = s.With(p)
	}
	if s.Empty() {
		return s, ErrNoProtocols
	}
	return s, nil
}

// With returns a copy of s that also contains p.
func (s ProtocolSet) With(p Protocol) ProtocolSet {
	s.bits |= 1 << p
	return s
}

// Has reports whether p is in the set.
func (s ProtocolSet) Has(p Protocol) bool {
	return s.bits&(1<<p) != 0
}

// Empty reports whether the set has no members.
func (s ProtocolSet) Empty() bool {
	return s.bits == 0
}

// Protocols lists the members in a stable order (tcp before udp).
func (s ProtocolSet) Protocols() []Protocol {
	out := make([]Protocol, 0, len(allProtocols))
	for _, p := range allProtocols {
		if s.Has(p) {
			out = append(out, p)
		}
	}
	return out
}

func (s ProtocolSet) String() string {
	protos := s.Protocols()
	names := make([]string, 0, len(protos))
	for _, p := range protos {
		names = append(names, p.String())
	}
	return strings.Join(names, ",")
}
