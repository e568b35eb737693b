package netstat

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Inode identifies a socket. It is only ever compared for equality.
type Inode uint64

// InodeSet is a set of socket inodes.
type InodeSet map[Inode]struct{}

// Has reports whether the set contains inode.
func (s InodeSet) Has(inode Inode) bool {
	_, ok := s[inode]
	return ok
}

const (
	socketLinkPrefix = "socket:["
	socketLinkSuffix = "]"
)

// SocketInodes returns the inodes of every socket the process rooted at
// pidDir (e.g. /proc/1234) holds open. Descriptors that vanish or cannot be
// resolved are ignored; only an unreadable fd directory is an error.
func SocketInodes(pidDir string) (InodeSet, error) {
	fdDir := filepath.Join(pidDir, "fd")
	entries, err := os.ReadDir(fdDir)
	if err != nil {
		return nil, err
	}

	inodes := make(InodeSet)
	for _, e := range entries {
		link, err := os.Readlink(filepath.Join(fdDir, e.Name()))
		if err != nil {
			continue
		}
		if inode, ok := parseSocketLink(link); ok {
			inodes[inode] = struct{}{}
		}
	}
	return inodes, nil
}

// parseSocketLink extracts N from "socket:[N]".
func parseSocketLink(link string) (Inode, bool) {
	rest, ok := strings.CutPrefix(link, socketLinkPrefix)
	if !ok {
		return 0, false
	}
	digits, ok := strings.CutSuffix(rest, socketLinkSuffix)
	if !ok || digits == "" {
		return 0, false
	}
	n, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	return Inode(n), true
}
