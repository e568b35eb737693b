package netstat

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// twoProcesses lays out the P1/P2 scenario: P1 owns inode 55 which matches
// nothing, P2 owns inode 77 which matches one TCP row.
func twoProcesses(t *testing.T) *fakeProc {
	t.Helper()
	fp := newFakeProc(t)
	fp.process(1, "/usr/bin/p1", 55)
	fp.process(2, "/usr/sbin/sshd", 77)
	for _, pid := range []int{1, 2} {
		fp.table(pid, TCP, tableFile(
			tableLine(0, "127.0.0.1:22", "10.0.0.5:51000", 77),
			tableLine(1, "0.0.0.0:80", "0.0.0.0:0", 99),
		))
		fp.table(pid, UDP, tableFile(
			tableLine(0, "0.0.0.0:68", "0.0.0.0:0", 123),
		))
	}
	return fp
}

func TestLinuxPortsTCPOnly(t *testing.T) {
	fp := twoProcesses(t)
	ns := NewLinux(Options{ProcRoot: fp.root})

	entries, err := ns.Ports(NewProtocolSet(TCP))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %+v", entries)
	}
	e := entries[0]
	if e.PID != 2 || e.Exe != "/usr/sbin/sshd" || e.Proto != TCP {
		t.Fatalf("unexpected attribution: %+v", e)
	}
	if e.LocalAddr.String() != "127.0.0.1:22" || e.RemoteAddr.String() != "10.0.0.5:51000" {
		t.Fatalf("unexpected addresses: %+v", e)
	}
}

func TestLinuxPortsUDPOnly(t *testing.T) {
	fp := twoProcesses(t)
	entries, err := NewLinux(Options{ProcRoot: fp.root}).Ports(NewProtocolSet(UDP))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %+v", entries)
	}
}

func TestLinuxPortsBothProtocols(t *testing.T) {
	fp := newFakeProc(t)
	fp.process(7, "/usr/bin/dns", 10, 11)
	fp.table(7, TCP, tableFile(tableLine(0, "127.0.0.1:53", "0.0.0.0:0", 10)))
	fp.table(7, UDP, tableFile(tableLine(0, "127.0.0.1:53", "0.0.0.0:0", 11)))

	entries, err := NewLinux(Options{ProcRoot: fp.root}).Ports(NewProtocolSet(UDP, TCP))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 || entries[0].Proto != TCP || entries[1].Proto != UDP {
		t.Fatalf("expected tcp then udp entries, got %+v", entries)
	}
}

func TestLinuxPortsSkipsProcessWithoutFdDir(t *testing.T) {
	fp := twoProcesses(t)
	// a process that exited: its directory exists but fd is gone
	if err := os.MkdirAll(fp.pidDir(3), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	entries, err := NewLinux(Options{ProcRoot: fp.root}).Ports(NewProtocolSet(TCP))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 || entries[0].PID != 2 {
		t.Fatalf("expected only pid 2, got %+v", entries)
	}
}

func TestLinuxPortsUnopenableTableEqualsRemovedProcess(t *testing.T) {
	build := func(withThird bool) *fakeProc {
		fp := twoProcesses(t)
		if withThird {
			// owns a socket but has no net/tcp table
			fp.process(3, "/usr/bin/p3", 77)
		}
		return fp
	}

	with, err := NewLinux(Options{ProcRoot: build(true).root}).Ports(NewProtocolSet(TCP))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	without, err := NewLinux(Options{ProcRoot: build(false).root}).Ports(NewProtocolSet(TCP))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(with, without) {
		t.Fatalf("expected identical results, got %+v vs %+v", with, without)
	}
}

func TestLinuxPortsMissingExe(t *testing.T) {
	fp := newFakeProc(t)
	fp.process(5, "", 77)
	fp.table(5, TCP, tableFile(tableLine(0, "127.0.0.1:22", "10.0.0.5:51000", 77)))

	entries, err := NewLinux(Options{ProcRoot: fp.root}).Ports(NewProtocolSet(TCP))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 || entries[0].Exe != "" {
		t.Fatalf("expected one entry with empty exe, got %+v", entries)
	}
}

func TestLinuxPortsIgnoresNonPIDEntries(t *testing.T) {
	fp := twoProcesses(t)
	for _, name := range []string{"self", "net", "sys"} {
		if err := os.MkdirAll(filepath.Join(fp.root, name, "fd"), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}
	if err := os.WriteFile(filepath.Join(fp.root, "uptime"), []byte("1 1\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	entries, err := NewLinux(Options{ProcRoot: fp.root}).Ports(NewProtocolSet(TCP))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %+v", entries)
	}
}

func TestLinuxPortsOrdersByPID(t *testing.T) {
	fp := newFakeProc(t)
	for _, pid := range []int{100, 9, 20} {
		fp.process(pid, "", uint64(pid))
		fp.table(pid, TCP, tableFile(tableLine(0, "127.0.0.1:1", "0.0.0.0:0", uint64(pid))))
	}

	entries, err := NewLinux(Options{ProcRoot: fp.root}).Ports(NewProtocolSet(TCP))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var pids []PID
	for _, e := range entries {
		pids = append(pids, e.PID)
	}
	if !reflect.DeepEqual(pids, []PID{9, 20, 100}) {
		t.Fatalf("expected numeric pid order, got %v", pids)
	}
}

func TestLinuxPortsMissingRoot(t *testing.T) {
	ns := NewLinux(Options{ProcRoot: filepath.Join(t.TempDir(), "nope")})
	_, err := ns.Ports(NewProtocolSet(TCP))
	if err == nil {
		t.Fatal("expected error for missing proc root")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected wrapped not-exist error, got %v", err)
	}
}

func TestLinuxPortsRejectsEmptySet(t *testing.T) {
	fp := twoProcesses(t)
	if _, err := NewLinux(Options{ProcRoot: fp.root}).Ports(ProtocolSet{}); !errors.Is(err, ErrNoProtocols) {
		t.Fatalf("expected ErrNoProtocols, got %v", err)
	}
}

func TestNewUnsupportedPlatform(t *testing.T) {
	ns := New("plan9", Options{})
	_, err := ns.Ports(NewProtocolSet(TCP))
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
	if err.Error() != "plan9: platform not supported (supported: linux)" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestNewLinuxProvider(t *testing.T) {
	ns, ok := New("linux", Options{ProcRoot: "/tmp/proc"}).(*Linux)
	if !ok {
		t.Fatal("expected linux provider")
	}
	if ns.root != "/tmp/proc" {
		t.Fatalf("unexpected root %q", ns.root)
	}
	if got := NewLinux(Options{}).root; got != "/proc" {
		t.Fatalf("expected default root /proc, got %q", got)
	}
	if got := Supported(); !reflect.DeepEqual(got, []string{"linux"}) {
		t.Fatalf("unexpected supported list %v", got)
	}
}
