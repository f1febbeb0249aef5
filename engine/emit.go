package engine

import (
	"math"
	"time"

	"github.com/goblimey/nmeasim/ais"
	"github.com/goblimey/nmeasim/bitstream"
	"github.com/goblimey/nmeasim/kinematics"
	"github.com/goblimey/nmeasim/nmea"
	"github.com/goblimey/nmeasim/scheduler"
)

func rateInterval(hz float64) time.Duration {
	if hz <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / hz)
}

// emitGPSSentences publishes v's configured GGA/RMC sentences if their
// configured rate has come due.
func (e *Engine) emitGPSSentences(v *VesselEntity, now time.Time) {
	hour, minute, second, millis, day, month, year := utcParts(now)
	key := mmsiKey(v.MMSI)

	if v.GGA.Enabled && v.GGA.RateHz > 0 &&
		e.sched.Due(key+":GGA", scheduler.GPSSentence, now, rateInterval(v.GGA.RateHz)) {
		g := nmea.GGA{
			TalkerID:   v.GGA.TalkerID,
			Hour:       hour, Minute: minute, Second: second, Millis: millis,
			Latitude:   v.Position.Lat,
			Longitude:  v.Position.Lon,
			FixQuality: 1,
			Satellites: 8,
			HDOP:       1.0,
			AltitudeM:  0,
			GeoidSepM:  0,
		}
		e.bus.Publish(g.Format())
		e.stats.sentencesGGA.Add(1)
	}

	if v.RMC.Enabled && v.RMC.RateHz > 0 &&
		e.sched.Due(key+":RMC", scheduler.GPSSentence, now, rateInterval(v.RMC.RateHz)) {
		r := nmea.RMC{
			TalkerID:   v.RMC.TalkerID,
			Hour:       hour, Minute: minute, Second: second, Millis: millis,
			Active:     true,
			Latitude:   v.Position.Lat,
			Longitude:  v.Position.Lon,
			SOGKnots:   v.SOGKnots,
			COGDegrees: v.COGDegrees,
			Day:        day, Month: month, Year: year,
			ModeIndicator: "A",
		}
		e.bus.Publish(r.Format())
		e.stats.sentencesRMC.Add(1)
	}
}

// emitAISForVessel asks the scheduler whether v's dynamic and/or static AIS
// messages are due and, if so, encodes and publishes them.
func (e *Engine) emitAISForVessel(v *VesselEntity, now time.Time) {
	key := mmsiKey(v.MMSI)
	timestamp := uint8(now.UTC().Second())

	switch v.Class {
	case kinematics.ClassA:
		changingCourse := math.Abs(v.RateOfTurn) > 0
		interval := scheduler.ClassADynamicInterval(v.SOGKnots, v.NavStatus, changingCourse)
		if e.sched.Due(key, scheduler.Dynamic, now, interval) {
			e.emitPositionReportClassA(v, timestamp)
		}
		if e.sched.Due(key, scheduler.Static, now, scheduler.StaticInterval()) {
			e.emitStaticVoyageData(v)
		}

	case kinematics.ClassB:
		if e.sched.Due(key, scheduler.Dynamic, now, scheduler.ClassBDynamicInterval(v.SOGKnots)) {
			e.emitPositionReportClassB(v, timestamp)
		}
		if v.ExtendedReports && e.sched.Due(key+":19", scheduler.Dynamic, now, scheduler.ClassBExtendedInterval()) {
			e.emitExtendedReportClassB(v, timestamp)
		}
		if e.sched.Due(key, scheduler.Static, now, scheduler.StaticInterval()) {
			e.emitStaticDataClassB(v)
		}
	}
}

func (e *Engine) emitPositionReportClassA(v *VesselEntity, timestamp uint8) {
	msg := ais.PositionReport{
		MMSI:              v.MMSI,
		NavStatus:         v.NavStatus,
		RateOfTurn:        int8(ais.EncodeRateOfTurn(v.RateOfTurn)),
		SOG:               uint16(ais.EncodeSOG(v.SOGKnots)),
		Longitude:         ais.EncodeLongitude(v.Position.Lon),
		Latitude:          ais.EncodeLatitude(v.Position.Lat),
		COG:               uint16(ais.EncodeCOG(v.COGDegrees)),
		TrueHeading:       v.TrueHeading,
		Timestamp:         timestamp,
		ManeuverIndicator: 0,
	}
	bits, err := ais.EncodePositionReport(msg)
	if err != nil {
		e.stats.encodeErrors.Add(1)
		return
	}
	e.publishEncodedBits(bits)
}

func (e *Engine) emitStaticVoyageData(v *VesselEntity) {
	msg := ais.StaticVoyageData{
		MMSI:       v.MMSI,
		AISVersion: 0,
		Callsign:   v.Callsign,
		Name:       v.Name,
		ShipType:   v.ShipType,
		Dimensions: v.Dimensions,
		DTE:        true,
	}
	if v.Voyage != nil {
		msg.Voyage = ais.Voyage{
			ETAMonth:    v.Voyage.ETAMonth,
			ETADay:      v.Voyage.ETADay,
			ETAHour:     v.Voyage.ETAHour,
			ETAMinute:   v.Voyage.ETAMinute,
			Draught:     uint8(v.Voyage.DraughtM * 10),
			Destination: v.Voyage.Destination,
		}
	}
	bits, err := ais.EncodeStaticVoyageData(msg)
	if err != nil {
		e.stats.encodeErrors.Add(1)
		return
	}
	e.publishEncodedBits(bits)
}

func (e *Engine) emitPositionReportClassB(v *VesselEntity, timestamp uint8) {
	msg := ais.ClassBPositionReport{
		MMSI:        v.MMSI,
		SOG:         uint16(ais.EncodeSOG(v.SOGKnots)),
		Longitude:   ais.EncodeLongitude(v.Position.Lon),
		Latitude:    ais.EncodeLatitude(v.Position.Lat),
		COG:         uint16(ais.EncodeCOG(v.COGDegrees)),
		TrueHeading: v.TrueHeading,
		Timestamp:   timestamp,
		CSUnit:      true,
		Band:        true,
	}
	bits, err := ais.EncodeClassBPositionReport(msg)
	if err != nil {
		e.stats.encodeErrors.Add(1)
		return
	}
	e.publishEncodedBits(bits)
}

func (e *Engine) emitExtendedReportClassB(v *VesselEntity, timestamp uint8) {
	msg := ais.ClassBExtendedReport{
		MMSI:        v.MMSI,
		SOG:         uint16(ais.EncodeSOG(v.SOGKnots)),
		Longitude:   ais.EncodeLongitude(v.Position.Lon),
		Latitude:    ais.EncodeLatitude(v.Position.Lat),
		COG:         uint16(ais.EncodeCOG(v.COGDegrees)),
		TrueHeading: v.TrueHeading,
		Timestamp:   timestamp,
		Name:        v.Name,
		ShipType:    v.ShipType,
		Dimensions:  v.Dimensions,
		DTE:         true,
	}
	bits, err := ais.EncodeClassBExtendedReport(msg)
	if err != nil {
		e.stats.encodeErrors.Add(1)
		return
	}
	e.publishEncodedBits(bits)
}

// emitStaticDataClassB publishes the 24A/24B pair that together carry a
// Class B vessel's name, type, dimensions and callsign.
func (e *Engine) emitStaticDataClassB(v *VesselEntity) {
	bitsA, err := ais.EncodeStaticDataReportA(ais.StaticDataReportA{MMSI: v.MMSI, Name: v.Name})
	if err != nil {
		e.stats.encodeErrors.Add(1)
	} else {
		e.publishEncodedBits(bitsA)
	}

	bitsB, err := ais.EncodeStaticDataReportB(ais.StaticDataReportB{
		MMSI:       v.MMSI,
		ShipType:   v.ShipType,
		Callsign:   v.Callsign,
		Dimensions: v.Dimensions,
	})
	if err != nil {
		e.stats.encodeErrors.Add(1)
		return
	}
	e.publishEncodedBits(bitsB)
}

func (e *Engine) emitBaseStation(b *BaseStation, now time.Time) {
	key := mmsiKey(b.MMSI)
	if !e.sched.Due(key, scheduler.BaseStation, now, scheduler.BaseStationReportInterval()) {
		return
	}
	hour, minute, second, _, day, month, year := utcParts(now)
	msg := ais.BaseStationReport{
		MMSI:      b.MMSI,
		Year:      uint16(year),
		Month:     uint8(month),
		Day:       uint8(day),
		Hour:      uint8(hour),
		Minute:    uint8(minute),
		Second:    uint8(second),
		Longitude: ais.EncodeLongitude(b.Position.Lon),
		Latitude:  ais.EncodeLatitude(b.Position.Lat),
		EPFD:      b.EPFD,
	}
	bits, err := ais.EncodeBaseStationReport(msg)
	if err != nil {
		e.stats.encodeErrors.Add(1)
		return
	}
	e.publishEncodedBits(bits)
}

func (e *Engine) emitAidToNavigation(a *AidToNavigation, now time.Time) {
	key := mmsiKey(a.MMSI)
	if !e.sched.Due(key, scheduler.AidToNavigation, now, scheduler.AidToNavigationInterval()) {
		return
	}
	msg := ais.AidToNavigationReport{
		MMSI:          a.MMSI,
		AidType:       a.AidType,
		Name:          a.Name,
		Longitude:     ais.EncodeLongitude(a.Position.Lon),
		Latitude:      ais.EncodeLatitude(a.Position.Lat),
		Dimensions:    a.Dimensions,
		EPFD:          a.EPFD,
		Timestamp:     uint8(now.UTC().Second()),
		OffPosition:   a.OffPosition,
		VirtualAid:    a.VirtualAid,
		Assigned:      a.Assigned,
		NameExtension: a.NameExtension,
	}
	bits, err := ais.EncodeAidToNavigationReport(msg)
	if err != nil {
		e.stats.encodeErrors.Add(1)
		return
	}
	e.publishEncodedBits(bits)
}

func (e *Engine) publishEncodedBits(bits []bool) {
	payload, fill := bitstream.Armor(bits)
	e.publishAIS(payload, fill, e.nextChannel())
}
