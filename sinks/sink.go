// Package sinks delivers emitted NMEA/AIS sentences to file, TCP, UDP and
// serial outputs through a non-blocking fan-out bus: each sink owns a
// dedicated goroutine and a bounded queue around its I/O resource, so a
// slow or stalled sink drops its own backlog instead of blocking the bus.
package sinks

import "sync/atomic"

// Sink accepts sentences one at a time and never blocks its caller for
// longer than its own enqueue deadline. Each sink owns a bounded queue with
// drop-oldest overflow, so it never applies backpressure to the bus.
type Sink interface {
	// Send enqueues a sentence for delivery. It returns only once the
	// sentence has been queued (or dropped for overflow), never once it
	// has actually been written.
	Send(sentence string)
	// Close stops the sink's worker and releases its I/O resource. It
	// blocks until the worker has written or discarded every sentence
	// already queued; no deadline bounds this wait, and an in-flight write
	// is never aborted.
	Close() error
	// Stats returns a point-in-time snapshot of the sink's counters.
	Stats() SinkStats
}

// SinkStats holds the atomic counters a sink exposes for diagnostics.
type SinkStats struct {
	Sent    uint64
	Dropped uint64
	Errors  uint64
}

// counters is embedded by each concrete sink to provide the common atomic
// bookkeeping: updated only by the sink's own writer goroutine and read via
// atomic snapshots.
type counters struct {
	sent    atomic.Uint64
	dropped atomic.Uint64
	errors  atomic.Uint64
}

func (c *counters) snapshot() SinkStats {
	return SinkStats{
		Sent:    c.sent.Load(),
		Dropped: c.dropped.Load(),
		Errors:  c.errors.Load(),
	}
}

// enqueue pushes s onto queue without blocking; if the queue is full it
// drops the oldest queued sentence to make room.
func enqueue(queue chan string, s string, dropped *atomic.Uint64) {
	for {
		select {
		case queue <- s:
			return
		default:
			select {
			case <-queue:
				dropped.Add(1)
			default:
			}
		}
	}
}
