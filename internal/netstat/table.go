package netstat

import (
	"bufio"
	"io"
	"net/netip"
	"regexp"
	"strconv"
)

// tableRow matches one row of /proc/<pid>/net/{tcp,udp}:
//
//	sl  local_address rem_address   st tx_queue:rx_queue tr:tm->when retrnsmt uid timeout inode ...
//	0:  0100007F:0035 00000000:0000 0A 00000000:00000000 00:00000000 00000000 101 0       22837 ...
//
// Only 8-digit (IPv4) addresses match; anything after the inode is ignored.
var tableRow = regexp.MustCompile(`^\s*\d+:\s+` +
	`([0-9A-Fa-f]{8}):([0-9A-Fa-f]{4})\s+` + // local
	`([0-9A-Fa-f]{8}):([0-9A-Fa-f]{4})\s+` + // remote
	`([0-9A-Fa-f]{2})\s+` + // state
	`[0-9A-Fa-f]+:[0-9A-Fa-f]+\s+` + // tx_queue:rx_queue
	`[0-9A-Fa-f]+:[0-9A-Fa-f]+\s+` + // tr:tm->when
	`[0-9A-Fa-f]+\s+` + // retrnsmt
	`\d+\s+` + // uid
	`\d+\s+` + // timeout
	`(\d+)`) // inode

// Row is one decoded connection table row.
type Row struct {
	Local  netip.AddrPort
	Remote netip.AddrPort
	State  uint8
	Inode  Inode
}

// AddrPair is the address pair of a socket owned by the scanned process.
type AddrPair struct {
	Local  netip.AddrPort
	Remote netip.AddrPort
}

// ParseRow parses a single table line. ok is false for header, blank or
// truncated lines.
func ParseRow(line string) (row Row, ok bool) {
	m := tableRow.FindStringSubmatch(line)
	if m == nil {
		return Row{}, false
	}
	inode, err := strconv.ParseUint(m[6], 10, 64)
	if err != nil {
		return Row{}, false
	}
	state, _ := strconv.ParseUint(m[5], 16, 8)
	return Row{
		Local:  DecodeAddr(m[1], m[2]),
		Remote: DecodeAddr(m[3], m[4]),
		State:  uint8(state),
		Inode:  Inode(inode),
	}, true
}

// ParseTable streams a connection table and returns the address pairs of
// rows whose inode is in inodes. The first line is always treated as the
// header. Rows that do not fit the grammar are skipped.
func ParseTable(r io.Reader, inodes InodeSet) ([]AddrPair, error) {
	sc := bufio.NewScanner(r)
	if !sc.Scan() {
		return nil, sc.Err()
	}

	var pairs []AddrPair
	for sc.Scan() {
		row, ok := ParseRow(sc.Text())
		if !ok || !inodes.Has(row.Inode) {
			continue
		}
		pairs = append(pairs, AddrPair{Local: row.Local, Remote: row.Remote})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return pairs, nil
}
