// Package engine runs the simulation tick loop: it advances every vessel's
// kinematics, asks the scheduler which GPS and AIS messages are due, encodes
// and wraps them, and publishes the resulting sentences to a Bus. It is the
// sole writer of all simulation state, per the concurrency model: nothing
// else mutates a vessel, the simulation clock, the scheduler or the
// statistics counters.
package engine

import (
	"context"
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/goblimey/nmeasim/ais"
	"github.com/goblimey/nmeasim/nmea"
	"github.com/goblimey/nmeasim/scheduler"
	"github.com/goblimey/nmeasim/simclock"
)

// State is one of the engine's lifecycle states.
type State int32

const (
	Created State = iota
	Running
	Stopping
	Stopped
)

func (s State) String() string {
	switch s {
	case Created:
		return "created"
	case Running:
		return "running"
	case Stopping:
		return "stopping"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Config holds the engine's fixed run-time parameters, set at construction.
type Config struct {
	// TickInterval is the wall-clock period between ticks. Default 100ms
	// (10 Hz).
	TickInterval time.Duration
	// TimeFactor scales simulation time relative to wall-clock time: each
	// tick advances the simulation clock by TickInterval * TimeFactor.
	TimeFactor float64
	// MaxSentenceLength bounds AIVDM fragmentation (default 82, per §4.3).
	MaxSentenceLength int
	// RandSeed seeds the noise generator; 0 picks a fixed default so runs
	// are reproducible unless the caller supplies their own.
	RandSeed int64
}

// DefaultConfig returns the engine's compiled-in defaults.
func DefaultConfig() Config {
	return Config{
		TickInterval:      100 * time.Millisecond,
		TimeFactor:        1,
		MaxSentenceLength: 82,
	}
}

// Engine owns every simulated vessel, base station and aid to navigation,
// and drives them through one tick loop.
type Engine struct {
	cfg   Config
	clock *simclock.SimClock
	rng   *rand.Rand
	bus   Bus

	vessels      []*VesselEntity
	baseStations []*BaseStation
	aids         []*AidToNavigation

	sched *scheduler.Scheduler

	// groupSeqA/groupSeqB are scoped one per radio channel, per §4.3: each
	// channel's multi-part messages get their own group ID sequence.
	groupSeqA *ais.GroupSequencer
	groupSeqB *ais.GroupSequencer
	// channelToggle alternates the outbound radio channel per message; it
	// lives on the engine because the engine is the sole sentence
	// producer, so no package-level mutable counter is needed.
	channelToggle byte

	stats Stats
	state atomic.Int32
}

// New constructs an Engine with the given config and start time. The clock
// starts at startTime and is advanced only by Tick.
func New(cfg Config, startTime time.Time, bus Bus) *Engine {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultConfig().TickInterval
	}
	if cfg.MaxSentenceLength <= 0 {
		cfg.MaxSentenceLength = DefaultConfig().MaxSentenceLength
	}
	if bus == nil {
		bus = discardBus{}
	}
	seed := cfg.RandSeed
	if seed == 0 {
		seed = 1
	}
	return &Engine{
		cfg:           cfg,
		clock:         simclock.NewSimClock(startTime),
		rng:           rand.New(rand.NewSource(seed)),
		bus:           bus,
		sched:         scheduler.New(),
		groupSeqA:     &ais.GroupSequencer{},
		groupSeqB:     &ais.GroupSequencer{},
		channelToggle: 'A',
	}
}

// AddVessel registers a vessel with the engine.
func (e *Engine) AddVessel(v *VesselEntity) { e.vessels = append(e.vessels, v) }

// AddBaseStation registers a base station with the engine.
func (e *Engine) AddBaseStation(b *BaseStation) { e.baseStations = append(e.baseStations, b) }

// AddAidToNavigation registers an aid to navigation with the engine.
func (e *Engine) AddAidToNavigation(a *AidToNavigation) { e.aids = append(e.aids, a) }

// State returns the engine's current lifecycle state.
func (e *Engine) State() State { return State(e.state.Load()) }

// Stats returns a point-in-time snapshot of the engine's counters.
func (e *Engine) Stats() Snapshot { return e.stats.Snapshot() }

// Run drives the tick loop until ctx is cancelled or Stop is called,
// transitioning Created -> Running -> Stopping -> Stopped. Calling Run more than once, or
// cancelling ctx after Stop has already completed, is a no-op: transitions
// are idempotent.
func (e *Engine) Run(ctx context.Context) error {
	if !e.state.CompareAndSwap(int32(Created), int32(Running)) {
		return nil
	}
	ticker := time.NewTicker(e.cfg.TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			e.stop()
			return nil
		case <-ticker.C:
			if e.State() != Running {
				return nil
			}
			e.Tick(e.cfg.TickInterval)
		}
	}
}

// Stop requests a cooperative shutdown: the state passes through Stopping to
// Stopped at once, and Run returns at its next tick without starting another;
// a tick already in progress is not interrupted. Calling Stop when the engine
// is not Running is a no-op.
func (e *Engine) Stop() {
	if e.state.CompareAndSwap(int32(Running), int32(Stopping)) {
		e.state.Store(int32(Stopped))
	}
}

func (e *Engine) stop() {
	e.state.CompareAndSwap(int32(Running), int32(Stopping))
	e.state.Store(int32(Stopped))
}

// Tick advances the simulation by one step of wall-clock duration
// tickWallClock, scaled by the engine's configured time factor, and emits
// every sentence that becomes due. tickWallClock is normally cfg.TickInterval;
// Run always passes that value, but callers driving Tick directly (tests,
// a non-realtime batch mode) may pass any duration to model a stall or a
// faster-than-realtime single step.
func (e *Engine) Tick(tickWallClock time.Duration) {
	dt := time.Duration(float64(tickWallClock) * e.cfg.TimeFactor)
	e.clock.Advance(dt)
	now := e.clock.Now()
	dtSeconds := dt.Seconds()

	for _, v := range e.vessels {
		v.Vessel.Tick(dtSeconds, e.rng)
		e.emitGPSSentences(v, now)
		e.emitAISForVessel(v, now)
	}
	for _, b := range e.baseStations {
		e.emitBaseStation(b, now)
	}
	for _, a := range e.aids {
		e.emitAidToNavigation(a, now)
	}

	e.stats.ticks.Add(1)
	if tickWallClock > e.cfg.TickInterval {
		e.stats.lateTicks.Add(1)
	}
}

func mmsiKey(mmsi uint32) string { return fmt.Sprintf("%d", mmsi) }

func (e *Engine) nextChannel() byte {
	c := e.channelToggle
	if c == 'A' {
		e.channelToggle = 'B'
	} else {
		e.channelToggle = 'A'
	}
	return c
}

func (e *Engine) groupSequencerFor(channel byte) *ais.GroupSequencer {
	if channel == 'B' {
		return e.groupSeqB
	}
	return e.groupSeqA
}

// publishAIS fragments payload and wraps each fragment in an AIVDM sentence
// on the given channel, publishing every resulting sentence in order.
func (e *Engine) publishAIS(payload string, fill int, channel byte) {
	maxPayload := ais.MaxFragmentPayloadChars(e.cfg.MaxSentenceLength)
	fragments := ais.Fragments(payload, fill, maxPayload, e.groupSequencerFor(channel))
	for _, f := range fragments {
		e.bus.Publish(nmea.FormatAIVDM(f, channel))
		e.stats.sentencesAIVDM.Add(1)
	}
}

func utcParts(t time.Time) (hour, minute, second, millis, day, month, year int) {
	t = t.UTC()
	return t.Hour(), t.Minute(), t.Second(), t.Nanosecond() / 1e6, t.Day(), int(t.Month()), t.Year()
}
