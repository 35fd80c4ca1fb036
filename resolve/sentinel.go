package resolve

import (
	"strconv"

	"go.uber.org/atomic"
)

var sentinelSeq atomic.Uint64

// Sentinel is a placeholder returned for paths that could not be resolved.
// Sentinels are compared by pointer identity; two sentinels are never equal.
type Sentinel struct {
	seq uint64
}

// NewSentinel allocates a sentinel distinct from every other value.
func NewSentinel() *Sentinel {
	return &Sentinel{seq: sentinelSeq.Inc()}
}

// String identifies the sentinel in logs and test output.
func (s *Sentinel) String() string {
	return "<missing #" + strconv.FormatUint(s.seq, 10) + ">"
}

// IsSentinel reports whether v is any sentinel.
func IsSentinel(v any) bool {
	_, ok := v.(*Sentinel)
	return ok
}
