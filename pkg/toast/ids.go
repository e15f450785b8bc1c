package toast

import (
	"math"
	"strconv"
	"sync"

	"github.com/google/uuid"
)

// IDGenerator produces toast identifiers. Every call must return an ID
// not returned before by the same generator.
type IDGenerator interface {
	NextID() string
}

// IDGeneratorFunc adapts a function to IDGenerator.
type IDGeneratorFunc func() string

// NextID calls f.
func (f IDGeneratorFunc) NextID() string { return f() }

type counterIDs struct {
	mu    sync.Mutex
	count int64
}

// CounterIDs returns a generator yielding "1", "2", "3", ... The counter
// wraps to zero after math.MaxInt64.
func CounterIDs() IDGenerator {
	return &counterIDs{}
}

func (c *counterIDs) NextID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.count == math.MaxInt64 {
		c.count = 0
	} else {
		c.count++
	}
	return strconv.FormatInt(c.count, 10)
}

// UUIDIDs returns a generator yielding random (version 4) UUIDs.
func UUIDIDs() IDGenerator {
	return IDGeneratorFunc(uuid.NewString)
}
