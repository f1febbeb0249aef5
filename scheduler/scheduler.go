// Package scheduler decides, tick by tick, which AIS message a vessel, base
// station or aid to navigation is due to transmit next. Intervals derive
// from ITU-R M.1371 reporting rates, which vary with vessel class, speed
// and navigation status rather than following a fixed cron-style
// expression, so each entity/message-class pair gets its own monotonic
// next-due timestamp instead of a shared schedule table.
package scheduler

import "time"

// MessageClass identifies which family of AIS report a due-check is for.
type MessageClass uint8

const (
	// Dynamic covers position reports: type 1/2/3 (Class A), type 18/19
	// (Class B).
	Dynamic MessageClass = iota
	// Static covers voyage/identity reports: type 5 (Class A), type 24A+24B
	// (Class B).
	Static
	// BaseStation covers type 4.
	BaseStation
	// AidToNavigation covers type 21.
	AidToNavigation
	// GPSSentence covers the per-vessel GGA/RMC sentences, which run on
	// their own configured rate independent of AIS cadence.
	GPSSentence
)

const (
	classAStaticInterval   = 6 * time.Minute
	classBExtendedInterval = 6 * time.Minute
	baseStationInterval    = 10 * time.Second
	aidToNavInterval       = 3 * time.Minute

	classBSlowInterval        = 30 * time.Second
	classBFastInterval        = 3 * time.Second
	classBSpeedThresholdKnots = 2
)

// NavStatus mirrors the AIS navigational status codes relevant to interval
// selection; only "at anchor" (1) and "moored" (5) slow the reporting rate.
const (
	NavStatusAtAnchor uint8 = 1
	NavStatusMoored   uint8 = 5
)

// ClassADynamicInterval returns the type 1/2/3 reporting interval for a
// Class A vessel, based on its speed and navigational status.
func ClassADynamicInterval(sogKnots float64, navStatus uint8, changingCourse bool) time.Duration {
	atRest := navStatus == NavStatusAtAnchor || navStatus == NavStatusMoored
	switch {
	case atRest && sogKnots <= 3:
		return 3 * time.Minute
	case atRest:
		return 10 * time.Second
	case sogKnots <= 14:
		return 10 * time.Second
	case sogKnots <= 23:
		if changingCourse {
			return 10 * time.Second / 3
		}
		return 6 * time.Second
	default:
		return 2 * time.Second
	}
}

// ClassBDynamicInterval returns the type 18 reporting interval for a Class B
// vessel.
func ClassBDynamicInterval(sogKnots float64) time.Duration {
	if sogKnots < classBSpeedThresholdKnots {
		return classBSlowInterval
	}
	return classBFastInterval
}

// StaticInterval is the type 5 / 24A+24B reporting interval, the same for
// both vessel classes.
func StaticInterval() time.Duration { return classAStaticInterval }

// ClassBExtendedInterval is the optional type 19 reporting interval.
func ClassBExtendedInterval() time.Duration { return classBExtendedInterval }

// BaseStationReportInterval is the type 4 reporting interval.
func BaseStationReportInterval() time.Duration { return baseStationInterval }

// AidToNavigationInterval is the type 21 reporting interval.
func AidToNavigationInterval() time.Duration { return aidToNavInterval }

// key identifies one entity/message-class pair being tracked.
type key struct {
	entity string
	class  MessageClass
}

// Scheduler holds one monotonic next-due timestamp per (entity,
// message-class) pair. Entities are identified by caller-chosen string keys
// (typically an MMSI rendered as text) so the scheduler stays agnostic of
// vessel/base-station/aid-to-navigation representations.
type Scheduler struct {
	due map[key]time.Time
}

// New returns an empty Scheduler.
func New() *Scheduler {
	return &Scheduler{due: make(map[key]time.Time)}
}

// Due reports whether entity is due to send class at now, given interval as
// the currently applicable reporting interval for that entity/class. If so,
// it advances the entity's next-due time by interval and returns true. If
// the entity has never been registered, it is considered due immediately
// and seeded so the next check is interval in the future.
//
// If now has passed next_due by more than one interval, the schedule skips
// the missed instances entirely rather than bursting: next_due is reset to
// now + interval, not stepped forward one interval at a time.
func (s *Scheduler) Due(entity string, class MessageClass, now time.Time, interval time.Duration) bool {
	k := key{entity: entity, class: class}
	next, ok := s.due[k]
	if !ok {
		s.due[k] = now.Add(interval)
		return true
	}
	if now.Before(next) {
		return false
	}
	next = next.Add(interval)
	if !now.Before(next) {
		next = now.Add(interval)
	}
	s.due[k] = next
	return true
}

// Reset forgets all tracked next-due times for entity, across every message
// class. Used when an entity is removed from the simulation.
func (s *Scheduler) Reset(entity string) {
	for k := range s.due {
		if k.entity == entity {
			delete(s.due, k)
		}
	}
}
