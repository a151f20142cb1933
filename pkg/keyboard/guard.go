package keyboard

import (
	"container/list"
	"encoding/binary"
	"hash/fnv"
	"io"
	"sync"

	"keyboardkit/pkg/logx"
)

// DefaultGuardCapacity is the per-source LRU capacity used when none is set.
const DefaultGuardCapacity = 256

// DefaultSource is the partition used when a Paginate call has no source.
const DefaultSource = "default"

// Guard prevents emitting an identical pagination keyboard twice in a row for
// the same logical location. Re-sending an unchanged keyboard makes Telegram
// answer edits with MESSAGE_NOT_MODIFIED, so repeated requests fail early with
// PaginationUnchangedError instead.
//
// State is partitioned by source, each partition a fixed-capacity LRU of
// request fingerprints. Memory stays bounded no matter how many distinct
// pages are seen; a fingerprint pushed out by eviction becomes insertable
// again, which is the intended trade (bounded memory over perfect detection).
//
// A Guard is safe for concurrent use. The membership check and the insert are
// one atomic step under a single mutex, so of N simultaneous identical calls
// exactly one proceeds.
type Guard struct {
	mu       sync.Mutex
	capacity int
	parts    map[string]*guardPartition
	log      logx.Logger
}

type guardPartition struct {
	order *list.List // front = most recently seen
	index map[uint64]*list.Element
}

// GuardOption configures a Guard.
type GuardOption func(*Guard)

// WithCapacity sets the per-source LRU capacity. Values below 1 keep the default.
func WithCapacity(n int) GuardOption {
	return func(g *Guard) {
		if n >= 1 {
			g.capacity = n
		}
	}
}

// WithGuardLogger installs a logger for debug traces (evictions).
func WithGuardLogger(log logx.Logger) GuardOption {
	return func(g *Guard) { g.log = log }
}

// NewGuard creates an empty guard. Each guard is independent state; tests and
// tenants should construct their own rather than share a package global.
func NewGuard(opts ...GuardOption) *Guard {
	g := &Guard{
		capacity: DefaultGuardCapacity,
		parts:    map[string]*guardPartition{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// CheckAndRecord fingerprints the pagination request and records it in the
// source's partition. If the fingerprint is already present the call fails
// with PaginationUnchangedError and the entry is refreshed as most recently
// seen. An empty source maps to DefaultSource.
func (g *Guard) CheckAndRecord(pattern string, totalPages, currentPage int, source string) error {
	if source == "" {
		source = DefaultSource
	}
	fp := fingerprint(pattern, totalPages, currentPage)

	g.mu.Lock()
	defer g.mu.Unlock()

	part := g.parts[source]
	if part == nil {
		part = &guardPartition{order: list.New(), index: map[uint64]*list.Element{}}
		g.parts[source] = part
	}

	if el, seen := part.index[fp]; seen {
		part.order.MoveToFront(el)
		return newUnchangedError(source)
	}

	part.index[fp] = part.order.PushFront(fp)
	if part.order.Len() > g.capacity {
		oldest := part.order.Back()
		part.order.Remove(oldest)
		evicted := oldest.Value.(uint64)
		delete(part.index, evicted)
		if !g.log.IsZero() {
			g.log.Debug("pagination fingerprint evicted",
				logx.String("source", source),
				logx.Uint64("fingerprint", evicted),
			)
		}
	}
	return nil
}

// Clear drops all partitions.
func (g *Guard) Clear() {
	g.mu.Lock()
	g.parts = map[string]*guardPartition{}
	g.mu.Unlock()
}

// ClearSource drops one partition. An empty source maps to DefaultSource.
func (g *Guard) ClearSource(source string) {
	if source == "" {
		source = DefaultSource
	}
	g.mu.Lock()
	delete(g.parts, source)
	g.mu.Unlock()
}

// GuardStats is a point-in-time snapshot of guard occupancy.
type GuardStats struct {
	Capacity int            // per-source LRU capacity
	Entries  int            // fingerprints across all partitions
	Sources  map[string]int // per-partition fingerprint count
}

// Stats reports per-partition sizes and the configured capacity.
func (g *Guard) Stats() GuardStats {
	g.mu.Lock()
	defer g.mu.Unlock()

	st := GuardStats{Capacity: g.capacity, Sources: make(map[string]int, len(g.parts))}
	for source, part := range g.parts {
		n := part.order.Len()
		st.Sources[source] = n
		st.Entries += n
	}
	return st
}

// fingerprint hashes the semantic identity of a pagination request.
// The pattern is length-delimited so ("a", 12, 3) and ("a1", 2, 3) cannot
// collide by concatenation.
func fingerprint(pattern string, totalPages, currentPage int) uint64 {
	h := fnv.New64a()
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(buf[:], uint64(len(pattern)))
	_, _ = h.Write(buf[:n])
	_, _ = io.WriteString(h, pattern)
	n = binary.PutVarint(buf[:], int64(totalPages))
	_, _ = h.Write(buf[:n])
	n = binary.PutVarint(buf[:], int64(currentPage))
	_, _ = h.Write(buf[:n])
	return h.Sum64()
}
