package app

import (
	"testing"

	"goports/internal/config"
	"goports/internal/killer"
	"goports/internal/netstat"
)

type stubNetStat struct {
	entries []netstat.Entry
	err     error
	calls   []netstat.ProtocolSet
}

func (s *stubNetStat) Ports(protos netstat.ProtocolSet) ([]netstat.Entry, error) {
	s.calls = append(s.calls, protos)
	return s.entries, s.err
}

type stubKiller struct {
	outcome killer.Outcome
	err     error
	pids    []uint32
}

func (s *stubKiller) Kill(pid uint32) (killer.Outcome, error) {
	s.pids = append(s.pids, pid)
	return s.outcome, s.err
}

func newTestApp(t *testing.T, ns *stubNetStat, k *stubKiller) *App {
	t.Helper()
	opts := Options{Config: config.Default()}
	if ns != nil {
		opts.NetStat = ns
	}
	if k != nil {
		opts.Killer = k
	}
	a, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a
}

func stubSelfPID(t *testing.T, pid int) {
	t.Helper()
	selfPID = func() int { return pid }
	t.Cleanup(func() { selfPID = osGetpid })
}
