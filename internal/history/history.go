// Package history keeps a fixed-capacity rolling window of samples for every
// tracked metric.
package history

import (
	"sort"
	"sync"
)

// DefaultCapacity is used when a store is created with a non-positive capacity.
const DefaultCapacity = 9

// Metric categories published by the collector.
const (
	CategoryCPU       = "cpu"
	CategoryMemory    = "mem"
	CategoryTemp      = "temp"
	CategoryBattery   = "battery"
	CategoryDiskRead  = "disk_read"
	CategoryDiskWrite = "disk_write"
	CategoryNetRx     = "net_rx"
	CategoryNetTx     = "net_tx"
)

// CPUAverage is the name of the derived all-core CPU series.
const CPUAverage = "avg"

// Key identifies one tracked series.
type Key struct {
	Category string
	Name     string
}

// K is shorthand for Key{Category: category, Name: name}.
func K(category, name string) Key {
	return Key{Category: category, Name: name}
}

// String renders "category" or "category:name".
func (k Key) String() string {
	if k.Name == "" {
		return k.Category
	}
	return k.Category + ":" + k.Name
}

// Buffer is a fixed-size circular buffer of samples. It is not safe for
// concurrent use on its own; Store serializes access.
type Buffer struct {
	data  []float64
	head  int
	count int
}

// NewBuffer creates a buffer holding at most capacity samples.
func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{data: make([]float64, capacity)}
}

// Push appends a sample, evicting the oldest one when full.
func (b *Buffer) Push(v float64) {
	b.data[b.head] = v
	b.head = (b.head + 1) % len(b.data)
	if b.count < len(b.data) {
		b.count++
	}
}

// Len returns the number of samples held.
func (b *Buffer) Len() int { return b.count }

// Cap returns the buffer capacity.
func (b *Buffer) Cap() int { return len(b.data) }

// Last returns up to n most recent samples, oldest first.
func (b *Buffer) Last(n int) []float64 {
	if n <= 0 || b.count == 0 {
		return nil
	}
	if n > b.count {
		n = b.count
	}

	size := len(b.data)
	out := make([]float64, n)
	// head is the next write slot, so the newest sample sits at head-1.
	start := (b.head - n + size) % size
	for i := 0; i < n; i++ {
		out[i] = b.data[(start+i)%size]
	}
	return out
}

// Snapshot returns every held sample, oldest first.
func (b *Buffer) Snapshot() []float64 {
	return b.Last(b.count)
}

// Latest returns the newest sample, or false when empty.
func (b *Buffer) Latest() (float64, bool) {
	if b.count == 0 {
		return 0, false
	}
	return b.data[(b.head-1+len(b.data))%len(b.data)], true
}

// Reader is the read-only view widgets render from.
type Reader interface {
	Snapshot(key Key) []float64
	Latest(key Key) (float64, bool)
	Keys(category string) []Key
	Capacity() int
}

// Store owns one Buffer per Key, created the first time the key is pushed.
type Store struct {
	mu       sync.RWMutex
	capacity int
	buffers  map[Key]*Buffer
}

// NewStore creates a store whose buffers hold capacity samples each.
func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{
		capacity: capacity,
		buffers:  make(map[Key]*Buffer),
	}
}

// Capacity returns the per-key buffer capacity.
func (s *Store) Capacity() int {
	return s.capacity
}

// Push appends v to the buffer for key.
func (s *Store) Push(key Key, v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getOrCreate(key).Push(v)
}

// PushAll appends a batch of samples under one lock, so readers never observe
// half of a tick.
func (s *Store) PushAll(samples map[Key]float64) {
	if len(samples) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range samples {
		s.getOrCreate(k).Push(v)
	}
}

// Snapshot returns the samples for key, oldest first. Unknown keys yield nil.
func (s *Store) Snapshot(key Key) []float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.buffers[key]
	if !ok {
		return nil
	}
	return b.Snapshot()
}

// Latest returns the newest sample for key.
func (s *Store) Latest(key Key) (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.buffers[key]
	if !ok {
		return 0, false
	}
	return b.Latest()
}

// Len returns the number of samples held for key.
func (s *Store) Len(key Key) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if b, ok := s.buffers[key]; ok {
		return b.Len()
	}
	return 0
}

// Keys returns the tracked keys in category, sorted by name. An empty
// category returns every key.
func (s *Store) Keys(category string) []Key {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Key
	for k := range s.buffers {
		if category == "" || k.Category == category {
			out = append(out, k)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return lessName(out[i].Name, out[j].Name)
	})
	return out
}

// lessName orders names with trailing numbers numerically, so core10 sorts
// after core9.
func lessName(a, b string) bool {
	pa, na, okA := splitNumber(a)
	pb, nb, okB := splitNumber(b)
	if okA && okB && pa == pb {
		return na < nb
	}
	return a < b
}

func splitNumber(s string) (string, int, bool) {
	i := len(s)
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}
	if i == len(s) || len(s)-i > 9 {
		return s, 0, false
	}
	n := 0
	for _, c := range s[i:] {
		n = n*10 + int(c-'0')
	}
	return s[:i], n, true
}

// getOrCreate returns the buffer for key, creating it if needed.
// Must be called with s.mu held.
func (s *Store) getOrCreate(key Key) *Buffer {
	b, ok := s.buffers[key]
	if !ok {
		b = NewBuffer(s.capacity)
		s.buffers[key] = b
	}
	return b
}
