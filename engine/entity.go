package engine

import (
	"github.com/goblimey/nmeasim/ais"
	"github.com/goblimey/nmeasim/kinematics"
)

// GPSSentenceConfig is one configured NMEA sentence a vessel emits, at its
// own rate independent of AIS cadence.
type GPSSentenceConfig struct {
	TalkerID string
	RateHz   float64
	Enabled  bool
}

// VesselEntity wraps a kinematics.Vessel with the identity and cadence
// configuration the engine needs to turn its state into sentences: which
// GPS sentences it emits and at what rate, and (via the embedded Vessel's
// Class field) which AIS message types apply to it.
type VesselEntity struct {
	*kinematics.Vessel
	GGA GPSSentenceConfig
	RMC GPSSentenceConfig
	// ExtendedReports enables the optional type 19 extended Class B report,
	// sent every 6 minutes in addition to the regular type 18. Ignored for
	// Class A vessels.
	ExtendedReports bool
}

// BaseStation is a fixed AIS base station: identity and position only, no
// kinematics, reported on type 4 every scheduler.BaseStationReportInterval.
type BaseStation struct {
	MMSI     uint32
	Position kinematics.Position
	EPFD     uint8
}

// AidToNavigation is a fixed or floating navigational aid, reported on type
// 21 every scheduler.AidToNavigationInterval.
type AidToNavigation struct {
	MMSI          uint32
	AidType       uint8
	Name          string
	Position      kinematics.Position
	Dimensions    ais.Dimensions
	EPFD          uint8
	OffPosition   bool
	VirtualAid    bool
	Assigned      bool
	NameExtension string
}
