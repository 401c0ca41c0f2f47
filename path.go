package circed

import (
	"strconv"
	"strings"
)

// Path addresses an operation by the index it occupies at each depth of the
// tree, root first, joined with "-" (for example "2-0-1"). A Path is
// positional, not an identity: any structural mutation shifts sibling indices
// and invalidates every Path computed before it. Re-resolve before use and
// never keep a Path across a redraw.
type Path string

// EncodePath builds a Path from a root-first index sequence.
func EncodePath(indices []int) Path {
	parts := make([]string, len(indices))
	for i, idx := range indices {
		parts[i] = strconv.Itoa(idx)
	}
	return Path(strings.Join(parts, "-"))
}

// Indices decodes the path back into its index sequence. An empty path
// decodes to an empty sequence; a malformed path decodes to nil.
func (p Path) Indices() []int {
	if p == "" {
		return []int{}
	}
	parts := strings.Split(string(p), "-")
	indices := make([]int, len(parts))
	for i, part := range parts {
		idx, err := strconv.Atoi(part)
		if err != nil {
			return nil
		}
		indices[i] = idx
	}
	return indices
}

// LastIndex returns the final index of the path, if it has one.
func (p Path) LastIndex() (int, bool) {
	indices := p.Indices()
	if len(indices) == 0 {
		return 0, false
	}
	return indices[len(indices)-1], true
}

// Child returns the path of the idx-th child of p.
func (p Path) Child(idx int) Path {
	if p == "" {
		return Path(strconv.Itoa(idx))
	}
	return Path(string(p) + "-" + strconv.Itoa(idx))
}
