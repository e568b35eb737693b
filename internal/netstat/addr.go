package netstat

import (
	"encoding/hex"
	"fmt"
	"net/netip"
	"strconv"
)

// DecodeAddr converts a kernel table address field ("0100007F") and port
// field ("1F90") into a socket address (127.0.0.1:8080).
//
// The address bytes are stored in host (little-endian) order, so they are
// read back to front; the port is plain big-endian hex. Only IPv4 fields are
// accepted. Callers slice these fields out of rows that already matched the
// table grammar, so a malformed field is a bug and panics.
func DecodeAddr(addr, port string) netip.AddrPort {
	if len(addr) != 8 || len(port) != 4 {
		panic(fmt.Sprintf("netstat: malformed address field %q:%q", addr, port))
	}
	raw, err := hex.DecodeString(addr)
	if err != nil {
		panic(fmt.Sprintf("netstat: malformed address field %q: %v", addr, err))
	}
	p, err := strconv.ParseUint(port, 16, 16)
	if err != nil {
		panic(fmt.Sprintf("netstat: malformed port field %q: %v", port, err))
	}

	var ip [4]byte
	for i := range ip {
		ip[i] = raw[len(raw)-1-i]
	}
	return netip.AddrPortFrom(netip.AddrFrom4(ip), uint16(p))
}
