package netstat

import (
	"fmt"
	"net/netip"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

const tableHeader = "  sl  local_address rem_address   st tx_queue rx_queue tr tm->when retrnsmt   uid  timeout inode"

// encodeAddr is the inverse of DecodeAddr.
func encodeAddr(ap netip.AddrPort) (string, string) {
	ip := ap.Addr().As4()
	addr := fmt.Sprintf("%02X%02X%02X%02X", ip[3], ip[2], ip[1], ip[0])
	return addr, fmt.Sprintf("%04X", ap.Port())
}

func tableLine(idx int, local, remote string, inode uint64) string {
	la, lp := encodeAddr(netip.MustParseAddrPort(local))
	ra, rp := encodeAddr(netip.MustParseAddrPort(remote))
	return fmt.Sprintf("%4d: %s:%s %s:%s 01 00000000:00000000 00:00000000 00000000  1000        0 %d 1 0000000000000000 20 4 30 10 -1",
		idx, la, lp, ra, rp, inode)
}

func tableFile(lines ...string) string {
	return tableHeader + "\n" + strings.Join(lines, "\n") + "\n"
}

// fakeProc builds a procfs-like tree under a temp dir.
type fakeProc struct {
	t    *testing.T
	root string
}

func newFakeProc(t *testing.T) *fakeProc {
	t.Helper()
	return &fakeProc{t: t, root: t.TempDir()}
}

func (f *fakeProc) pidDir(pid int) string {
	return filepath.Join(f.root, strconv.Itoa(pid))
}

// process creates <pid>/fd with one socket link per inode and an exe link.
func (f *fakeProc) process(pid int, exe string, inodes ...uint64) {
	f.t.Helper()
	fdDir := filepath.Join(f.pidDir(pid), "fd")
	if err := os.MkdirAll(fdDir, 0o755); err != nil {
		f.t.Fatalf("mkdir fd: %v", err)
	}
	for i, inode := range inodes {
		link := filepath.Join(fdDir, strconv.Itoa(i+3))
		if err := os.Symlink(fmt.Sprintf("socket:[%d]", inode), link); err != nil {
			f.t.Fatalf("symlink fd: %v", err)
		}
	}
	if exe != "" {
		if err := os.Symlink(exe, filepath.Join(f.pidDir(pid), "exe")); err != nil {
			f.t.Fatalf("symlink exe: %v", err)
		}
	}
}

func (f *fakeProc) table(pid int, proto Protocol, content string) {
	f.t.Helper()
	netDir := filepath.Join(f.pidDir(pid), "net")
	if err := os.MkdirAll(netDir, 0o755); err != nil {
		f.t.Fatalf("mkdir net: %v", err)
	}
	if err := os.WriteFile(filepath.Join(netDir, proto.TableName()), []byte(content), 0o644); err != nil {
		f.t.Fatalf("write table: %v", err)
	}
}
