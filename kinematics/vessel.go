package kinematics

import (
	"math/rand"

	"github.com/goblimey/nmeasim/ais"
)

// Class distinguishes AIS Class A (ship-borne, mandatory) from Class B
// (simpler, mostly leisure/small-craft) transceivers, which report on
// different message types and cadences.
type Class byte

const (
	ClassA Class = 'A'
	ClassB Class = 'B'
)

// Voyage is the optional destination/ETA/draught block a Class A vessel may
// carry; a vessel with no voyage configured has a nil Voyage.
type Voyage struct {
	Destination string
	DraughtM    float64
	ETAMonth    uint8
	ETADay      uint8
	ETAHour     uint8
	ETAMinute   uint8
}

// Vessel is the mutable kinematic and identity state the engine advances
// each tick and the AIS scheduler reads to build encoder inputs.
type Vessel struct {
	MMSI       uint32
	Name       string
	Callsign   string
	ShipType   uint8
	Dimensions ais.Dimensions
	Class      Class
	NavStatus  uint8 // Class A only; AIS nav status code 0-15

	Position    Position
	SOGKnots    float64
	COGDegrees  float64
	TrueHeading uint16 // 0-359, or 511 = not available
	RateOfTurn  float64 // degrees/minute

	Voyage *Voyage

	Pattern     Pattern
	SpeedNoise  Noise
	CourseNoise Noise
}

// Tick advances v's position, course and speed by dt seconds of simulation
// time, applying the vessel's movement pattern and then its configured
// noise. Speed is clamped to [0, ∞) and course wrapped into [0, 360).
func (v *Vessel) Tick(dt float64, rng *rand.Rand) {
	steeredCourse := v.Pattern.steer(v.Position, v.COGDegrees)

	course := steeredCourse + v.CourseNoise.Sample(rng)
	course = normalizeDegrees(course)

	speed := v.SOGKnots + v.SpeedNoise.Sample(rng)
	if speed < 0 {
		speed = 0
	}

	distanceNM := speed * (dt / 3600)
	v.Position = Advance(v.Position, distanceNM, course)
	v.COGDegrees = course
	v.SOGKnots = speed
	if v.TrueHeading != 511 {
		v.TrueHeading = uint16(course)
	}
}
