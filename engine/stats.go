package engine

import "sync/atomic"

// Stats holds the engine's running counters. Every field is updated only by
// the engine task and read via Snapshot, per the sole-writer concurrency
// model: no caller needs its own synchronization.
type Stats struct {
	ticks          atomic.Uint64
	lateTicks      atomic.Uint64
	sentencesGGA   atomic.Uint64
	sentencesRMC   atomic.Uint64
	sentencesAIVDM atomic.Uint64
	encodeErrors   atomic.Uint64
}

// Snapshot is a point-in-time, race-free copy of Stats.
type Snapshot struct {
	Ticks          uint64
	LateTicks      uint64
	SentencesGGA   uint64
	SentencesRMC   uint64
	SentencesAIVDM uint64
	EncodeErrors   uint64
}

// Snapshot reads every counter atomically and returns the result.
func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		Ticks:          s.ticks.Load(),
		LateTicks:      s.lateTicks.Load(),
		SentencesGGA:   s.sentencesGGA.Load(),
		SentencesRMC:   s.sentencesRMC.Load(),
		SentencesAIVDM: s.sentencesAIVDM.Load(),
		EncodeErrors:   s.encodeErrors.Load(),
	}
}
