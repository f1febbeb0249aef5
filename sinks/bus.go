package sinks

// Bus fans out each published sentence to every registered sink. It
// implements engine.Bus without importing the engine package, so sinks stays
// free of a dependency on the simulation core — the engine depends on this
// package's Bus through its own Bus interface instead.
type Bus struct {
	sinks []Sink
}

// NewBus creates an empty fan-out bus. Sinks are registered with Add before
// the engine starts publishing.
func NewBus() *Bus {
	return &Bus{}
}

// Add registers a sink to receive every subsequently published sentence.
func (b *Bus) Add(s Sink) {
	b.sinks = append(b.sinks, s)
}

// Publish delivers sentence to every registered sink's queue. It never
// blocks on sink I/O: each sink manages its own bounded queue and overflow
// policy, so Publish itself cannot stall the engine tick.
func (b *Bus) Publish(sentence string) {
	for _, s := range b.sinks {
		s.Send(sentence)
	}
}

// Close closes every registered sink, collecting the first error but
// closing all of them regardless, so file descriptors and sockets are
// released on every exit path.
func (b *Bus) Close() error {
	var firstErr error
	for _, s := range b.sinks {
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Stats returns a snapshot of every registered sink's counters, in
// registration order.
func (b *Bus) Stats() []SinkStats {
	stats := make([]SinkStats, len(b.sinks))
	for i, s := range b.sinks {
		stats[i] = s.Stats()
	}
	return stats
}
