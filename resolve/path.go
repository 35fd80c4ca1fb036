package resolve

import "strings"

// Separator splits string keys into path segments.
const Separator = "."

// Path is a string key split into its segments.
type Path struct {
	Segments []string
}

// ParsePath splits a key on Separator. A key without a separator yields a single
// segment; empty segments are kept and looked up literally.
func ParsePath(key string) Path {
	return Path{Segments: strings.Split(key, Separator)}
}

// String joins the segments back into a key.
func (p Path) String() string {
	return strings.Join(p.Segments, Separator)
}

// IsNested returns true if the path has more than one segment.
func (p Path) IsNested() bool {
	return len(p.Segments) > 1
}

// Len returns the number of segments.
func (p Path) Len() int {
	return len(p.Segments)
}
