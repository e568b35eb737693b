package output

import "strings"

// DefaultExeWidth is the number of trailing bytes of an executable path kept
// in table cells.
const DefaultExeWidth = 32

const ellipsis = "..."

// TruncateExe shortens path to at most width trailing bytes, cutting after
// the first path separator inside that window so the result starts at a
// path component. Truncated paths are prefixed with "...". Paths that fit
// are returned unchanged.
func TruncateExe(path string, width int) string {
	if width <= 0 || len(path) <= width {
		return path
	}
	tail := path[len(path)-width:]
	if i := strings.IndexByte(tail, '/'); i >= 0 {
		tail = tail[i+1:]
	}
	return ellipsis + tail
}
