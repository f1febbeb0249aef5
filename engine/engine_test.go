package engine

import (
	"context"
	"testing"
	"time"

	"github.com/goblimey/nmeasim/ais"
	"github.com/goblimey/nmeasim/kinematics"
	"github.com/stretchr/testify/require"
)

type recordingBus struct {
	sentences []string
}

func (b *recordingBus) Publish(s string) { b.sentences = append(b.sentences, s) }

func newTestVessel(mmsi uint32, class kinematics.Class) *VesselEntity {
	return &VesselEntity{
		Vessel: &kinematics.Vessel{
			MMSI:       mmsi,
			Name:       "TEST SHIP",
			Callsign:   "TEST1",
			ShipType:   70,
			Dimensions: ais.Dimensions{ToBow: 10, ToStern: 5, ToPort: 3, ToStarboard: 3},
			Class:      class,
			Position:   kinematics.Position{Lat: 50, Lon: -4},
			SOGKnots:   10,
			COGDegrees: 90,
			Pattern:    kinematics.Pattern{Kind: kinematics.Linear},
		},
		GGA: GPSSentenceConfig{TalkerID: "GP", RateHz: 1, Enabled: true},
		RMC: GPSSentenceConfig{TalkerID: "GP", RateHz: 1, Enabled: true},
	}
}

func TestTickEmitsGPSSentencesAtConfiguredRate(t *testing.T) {
	bus := &recordingBus{}
	cfg := DefaultConfig()
	cfg.TickInterval = time.Second
	e := New(cfg, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), bus)
	e.AddVessel(newTestVessel(367001234, kinematics.ClassA))

	e.Tick(time.Second)

	snap := e.Stats()
	require.Equal(t, uint64(1), snap.SentencesGGA)
	require.Equal(t, uint64(1), snap.SentencesRMC)
	require.Equal(t, uint64(1), snap.Ticks)
}

func TestTickEmitsClassADynamicAndStaticMessages(t *testing.T) {
	bus := &recordingBus{}
	cfg := DefaultConfig()
	cfg.TickInterval = time.Second
	e := New(cfg, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), bus)
	v := newTestVessel(367001234, kinematics.ClassA)
	v.GGA.Enabled = false
	v.RMC.Enabled = false
	e.AddVessel(v)

	e.Tick(time.Second) // type 1 and type 5 both due on first tick

	require.Greater(t, len(bus.sentences), 0)
	for _, s := range bus.sentences {
		require.Contains(t, s, "!AIVDM")
	}
	snap := e.Stats()
	require.GreaterOrEqual(t, snap.SentencesAIVDM, uint64(2)) // type 1 + type 5 (fragmented)
}

func TestSchedulerSkipsMissedInstancesAcrossTicks(t *testing.T) {
	bus := &recordingBus{}
	cfg := DefaultConfig()
	cfg.TickInterval = 10 * time.Second
	e := New(cfg, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), bus)
	v := newTestVessel(367001234, kinematics.ClassA)
	v.GGA.Enabled = false
	v.RMC.Enabled = false
	e.AddVessel(v)

	e.Tick(10 * time.Second) // fires type 1 immediately
	before := e.Stats().SentencesAIVDM

	e.Tick(95 * time.Second) // many 10s intervals late; must not burst
	after := e.Stats().SentencesAIVDM

	// A single catch-up firing of type 1 (plus no extra type 5, since 95s
	// hasn't reached the 6-minute static interval) should add a small,
	// bounded number of sentences, not one per missed 10s interval.
	require.Less(t, after-before, uint64(3))
}

func TestClassBVesselEmitsType18(t *testing.T) {
	bus := &recordingBus{}
	cfg := DefaultConfig()
	e := New(cfg, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), bus)
	v := newTestVessel(235012345, kinematics.ClassB)
	v.GGA.Enabled = false
	v.RMC.Enabled = false
	e.AddVessel(v)

	e.Tick(100 * time.Millisecond)

	require.Greater(t, len(bus.sentences), 0)
}

func TestBaseStationAndAidToNavigationEmit(t *testing.T) {
	bus := &recordingBus{}
	cfg := DefaultConfig()
	e := New(cfg, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), bus)
	e.AddBaseStation(&BaseStation{MMSI: 2320001, Position: kinematics.Position{Lat: 50.1, Lon: -4.1}})
	e.AddAidToNavigation(&AidToNavigation{MMSI: 992320001, AidType: 1, Name: "SEA BUOY", Position: kinematics.Position{Lat: 50.2, Lon: -4.2}})

	e.Tick(100 * time.Millisecond)

	require.Len(t, bus.sentences, 2)
}

func TestLifecycleTransitionsAreIdempotent(t *testing.T) {
	bus := &recordingBus{}
	e := New(DefaultConfig(), time.Now().UTC(), bus)
	require.Equal(t, Created, e.State())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		e.Run(ctx)
		close(done)
	}()
	// Give Run a moment to enter Running before cancelling.
	time.Sleep(20 * time.Millisecond)
	cancel()
	<-done
	require.Equal(t, Stopped, e.State())

	// A second Stop or cancelled Run call must not panic or change state.
	e.Stop()
	require.Equal(t, Stopped, e.State())
}
