package snapshotservice

import (
	"sync/atomic"

	"github.com/nwtrack/networth/internal/domain"
)

// sequence is an immutable, fully built snapshot run. A new one is installed
// wholesale after every rebuild; the slice is never mutated in place.
type sequence struct {
	snapshots []domain.MonthlySnapshot
	version   uint64
}

// Cache holds the most recently built snapshot sequence behind a single
// atomic reference. Readers never observe a partially built sequence.
type Cache struct {
	seq atomic.Pointer[sequence]
}

// NewCache returns an empty Cache.
func NewCache() *Cache {
	return &Cache{}
}

// Current returns the last fully built sequence without blocking.
// The second return value is false until the first build completes.
func (c *Cache) Current() ([]domain.MonthlySnapshot, bool) {
	seq := c.seq.Load()
	if seq == nil {
		return nil, false
	}

	return seq.snapshots, true
}

// Version returns the number of sequences installed so far.
func (c *Cache) Version() uint64 {
	seq := c.seq.Load()
	if seq == nil {
		return 0
	}

	return seq.version
}

// install atomically replaces the cached sequence. Only the rebuild
// coordinator calls it, so the version read-modify-write is single writer.
func (c *Cache) install(snapshots []domain.MonthlySnapshot) {
	next := &sequence{snapshots: snapshots, version: c.Version() + 1}
	c.seq.Store(next)
}
