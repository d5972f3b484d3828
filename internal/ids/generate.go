// Package ids hands out group and task identifiers.
//
// Identifiers are derived from the wall clock in milliseconds. The default
// generator is monotonic: a request that lands in the same millisecond as the
// previous one (or earlier, after the clock steps back) gets last+1 instead.
// NewRawTimestamp keeps the plain clock value and can therefore collide.
package ids

import (
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Generator produces identifiers for new groups and tasks.
type Generator interface {
	GroupID() string
	TaskID() int64
}

// Clock returns the current time.
type Clock func() time.Time

// Timestamp generates millisecond timestamp ids.
type Timestamp struct {
	now       Clock
	monotonic bool

	mu   sync.Mutex
	last int64
}

// NewTimestamp returns a monotonic timestamp generator.
func NewTimestamp(now Clock) *Timestamp {
	if now == nil {
		now = time.Now
	}
	return &Timestamp{now: now, monotonic: true}
}

// NewRawTimestamp returns a generator that reports the clock as is.
// Two calls within one millisecond return the same value.
func NewRawTimestamp(now Clock) *Timestamp {
	if now == nil {
		now = time.Now
	}
	return &Timestamp{now: now}
}

// Next returns the next millisecond id.
func (g *Timestamp) Next() int64 {
	ms := g.now().UnixMilli()
	if !g.monotonic {
		return ms
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return ms
}

func (g *Timestamp) GroupID() string { return strconv.FormatInt(g.Next(), 10) }
func (g *Timestamp) TaskID() int64   { return g.Next() }

// UUID issues random uuids for groups and monotonic timestamps for tasks,
// since task ids are numeric in the stored record.
type UUID struct {
	tasks *Timestamp
}

// NewUUID returns a uuid-backed generator.
func NewUUID(now Clock) *UUID {
	return &UUID{tasks: NewTimestamp(now)}
}

func (g *UUID) GroupID() string { return uuid.NewString() }
func (g *UUID) TaskID() int64   { return g.tasks.Next() }

// Strategy names accepted by New.
const (
	StrategyTimestamp = "timestamp"
	StrategyUUID      = "uuid"
)

// New returns the generator for strategy; unknown names fall back to timestamp.
func New(strategy string, now Clock) Generator {
	switch strategy {
	case StrategyUUID:
		return NewUUID(now)
	default:
		return NewTimestamp(now)
	}
}
