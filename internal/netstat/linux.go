package netstat

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/charmbracelet/log"
)

const defaultProcRoot = "/proc"

// Linux resolves connections from procfs. Each process is scanned in its own
// network namespace view (<root>/<pid>/net/<proto>).
type Linux struct {
	root string
	log  *log.Logger
}

// NewLinux builds the procfs provider.
func NewLinux(opts Options) *Linux {
	root := opts.ProcRoot
	if root == "" {
		root = defaultProcRoot
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Linux{root: root, log: logger}
}

// Ports implements NetStat. Only a failure to list the proc root is
// returned; processes that exit or deny access mid-scan are skipped.
func (l *Linux) Ports(protos ProtocolSet) ([]Entry, error) {
	if protos.Empty() {
		return nil, ErrNoProtocols
	}
	pids, err := l.pids()
	if err != nil {
		return nil, fmt.Errorf("list processes in %s: %w", l.root, err)
	}

	var entries []Entry
	for _, pid := range pids {
		entries = append(entries, l.processPorts(pid, protos)...)
	}
	return entries, nil
}

func (l *Linux) pids() ([]PID, error) {
	dirEntries, err := os.ReadDir(l.root)
	if err != nil {
		return nil, err
	}
	pids := make([]PID, 0, len(dirEntries))
	for _, e := range dirEntries {
		pid, err := strconv.ParseUint(e.Name(), 10, 32)
		if err != nil {
			continue
		}
		pids = append(pids, PID(pid))
	}
	slices.Sort(pids)
	return pids, nil
}

func (l *Linux) processPorts(pid PID, protos ProtocolSet) []Entry {
	pidDir := filepath.Join(l.root, strconv.FormatUint(uint64(pid), 10))

	inodes, err := SocketInodes(pidDir)
	if err != nil {
		l.log.Debug("skipping process", "pid", pid, "err", err)
		return nil
	}
	if len(inodes) == 0 {
		return nil
	}

	exe, err := os.Readlink(filepath.Join(pidDir, "exe"))
	if err != nil {
		exe = ""
	}

	var entries []Entry
	for _, proto := range protos.Protocols() {
		pairs, err := readTable(filepath.Join(pidDir, "net", proto.TableName()), inodes)
		if err != nil {
			l.log.Debug("skipping table", "pid", pid, "proto", proto, "err", err)
			continue
		}
		for _, pair := range pairs {
			entries = append(entries, Entry{
				Exe:        exe,
				PID:        pid,
				LocalAddr:  pair.Local,
				RemoteAddr: pair.Remote,
				Proto:      proto,
			})
		}
	}
	return entries
}

func readTable(path string, inodes InodeSet) ([]AddrPair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseTable(f, inodes)
}
