// Package report exposes a read-only view onto recently emitted sentences
// and, optionally, an HTTP status feed, entirely separate from the sink
// fan-out bus and its backpressure handling.
package report

import (
	"sort"
	"sync"
)

// RingBuffer holds the most recent sentences published by the engine,
// discarding the oldest once it reaches its capacity. Adapted from the
// teacher's circularQueue.CircularQueue (apps/proxy/circular_queue), which
// buffers decoded RTCM messages the same way; here it buffers the raw wire
// sentences instead of a parsed message type.
type RingBuffer struct {
	maxItems  int
	items     map[int]string
	nextIndex int

	mu sync.RWMutex
}

// NewRingBuffer creates a ring buffer that holds up to max sentences.
func NewRingBuffer(max int) *RingBuffer {
	return &RingBuffer{maxItems: max, items: make(map[int]string, max)}
}

// Add appends sentence to the buffer, evicting the oldest entry first if
// the buffer is already full.
func (r *RingBuffer) Add(sentence string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.items) >= r.maxItems {
		keys := r.keysAscending()
		for _, k := range keys {
			if len(r.items) >= r.maxItems {
				delete(r.items, k)
			}
		}
	}
	r.items[r.nextIndex] = sentence
	r.nextIndex++
}

// Recent returns the buffered sentences in the order they were added.
func (r *RingBuffer) Recent() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := r.keysAscending()
	result := make([]string, 0, len(keys))
	for _, k := range keys {
		result = append(result, r.items[k])
	}
	return result
}

func (r *RingBuffer) keysAscending() []int {
	keys := make([]int, 0, len(r.items))
	for k := range r.items {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
