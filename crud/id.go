package crud

import (
	"strconv"
	"sync"
	"time"
)

// IDGenerator produces ids of the form {prefix}{sequence}{timestamp}.
//
// The sequence is a per-collection counter that only moves forward, so ids are
// unique even when several records are created within the same millisecond,
// and an id is never handed out twice after its record is deleted.
type IDGenerator struct {
	mu     sync.Mutex
	prefix string
	seq    int64
	clock  func() time.Time
}

// NewIDGenerator creates a generator whose first sequence number is start+1.
// Seed start with the collection length at startup.
func NewIDGenerator(prefix string, start int, clock func() time.Time) *IDGenerator {
	if clock == nil {
		clock = time.Now
	}
	return &IDGenerator{prefix: prefix, seq: int64(start), clock: clock}
}

// Next returns a fresh id. exists is consulted so an id that collides with a
// seeded record is skipped; it may be nil.
func (g *IDGenerator) Next(exists func(id string) bool) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	for {
		g.seq++
		id := g.prefix + strconv.FormatInt(g.seq, 10) + strconv.FormatInt(g.clock().UnixMilli(), 10)
		if exists == nil || !exists(id) {
			return id
		}
	}
}

// Prefix returns the id prefix.
func (g *IDGenerator) Prefix() string {
	return g.prefix
}
