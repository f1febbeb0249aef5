package main

import (
	"fmt"
	"time"

	"github.com/goblimey/nmeasim/ais"
	"github.com/goblimey/nmeasim/config"
	"github.com/goblimey/nmeasim/engine"
	"github.com/goblimey/nmeasim/kinematics"
	"github.com/goblimey/nmeasim/vesseltemplate"
)

// buildEngine turns a parsed scenario into a ready-to-run Engine, resolving
// vessel templates and movement patterns into the kinematics/engine types
// those packages expect. It mirrors the shape of the config package's own
// validate() pass: one loop per scenario section, field by field.
func buildEngine(cfg *config.Config, bus engine.Bus) (*engine.Engine, error) {
	startTime := time.Now().UTC()
	if cfg.Simulation.StartTime != "" {
		t, err := time.Parse(time.RFC3339, cfg.Simulation.StartTime)
		if err != nil {
			return nil, fmt.Errorf("config: simulation.start_time: %w", err)
		}
		startTime = t
	}

	timeFactor := cfg.Simulation.TimeFactor
	if timeFactor == 0 {
		timeFactor = 1
	}

	econf := engine.DefaultConfig()
	econf.TimeFactor = timeFactor

	e := engine.New(econf, startTime, bus)

	for _, v := range cfg.Vessels {
		entity, err := buildVesselEntity(v)
		if err != nil {
			return nil, err
		}
		for _, s := range cfg.Sentences {
			sc := engine.GPSSentenceConfig{TalkerID: s.TalkerID, RateHz: s.RateHz, Enabled: s.Enabled}
			if s.Type == "GGA" {
				entity.GGA = sc
			} else {
				entity.RMC = sc
			}
		}
		e.AddVessel(entity)
	}

	for _, b := range cfg.BaseStations {
		e.AddBaseStation(&engine.BaseStation{
			MMSI:     b.MMSI,
			Position: kinematics.Position{Lat: b.Position.Lat, Lon: b.Position.Lon},
			EPFD:     b.EPFD,
		})
	}

	for _, a := range cfg.AidsToNavigation {
		e.AddAidToNavigation(&engine.AidToNavigation{
			MMSI:          a.MMSI,
			AidType:       a.AidType,
			Name:          a.Name,
			Position:      kinematics.Position{Lat: a.Position.Lat, Lon: a.Position.Lon},
			Dimensions:    ais.Dimensions(a.Dimensions),
			EPFD:          a.EPFD,
			OffPosition:   a.OffPosition,
			VirtualAid:    a.VirtualAid,
			Assigned:      a.Assigned,
			NameExtension: a.NameExtension,
		})
	}

	return e, nil
}

func buildVesselEntity(v config.Vessel) (*engine.VesselEntity, error) {
	class := kinematics.Class(v.Class[0])
	shipType := v.ShipType
	dims := ais.Dimensions(v.Dimensions)

	if v.Template != "" {
		tmpl, ok := vesseltemplate.Lookup(v.Template)
		if !ok {
			return nil, fmt.Errorf("config: vessel %q: unknown template %q", v.Name, v.Template)
		}
		if shipType == 0 {
			shipType = tmpl.ShipType
		}
		if dims == (ais.Dimensions{}) {
			dims = tmpl.Dimensions
		}
	}

	var voyage *kinematics.Voyage
	if v.VoyageData != nil {
		voyage = &kinematics.Voyage{
			Destination: v.VoyageData.Destination,
			DraughtM:    v.VoyageData.DraughtM,
			ETAMonth:    v.VoyageData.ETAMonth,
			ETADay:      v.VoyageData.ETADay,
			ETAHour:     v.VoyageData.ETAHour,
			ETAMinute:   v.VoyageData.ETAMinute,
		}
	}

	pattern, err := buildPattern(v.Movement)
	if err != nil {
		return nil, fmt.Errorf("config: vessel %q: %w", v.Name, err)
	}

	vessel := &kinematics.Vessel{
		MMSI:        v.MMSI,
		Name:        v.Name,
		Callsign:    v.Callsign,
		ShipType:    shipType,
		Dimensions:  dims,
		Class:       class,
		Position:    kinematics.Position{Lat: v.Position.Lat, Lon: v.Position.Lon},
		SOGKnots:    v.InitialSpeed,
		COGDegrees:  v.InitialHeading,
		TrueHeading: uint16(v.InitialHeading),
		Voyage:      voyage,
		Pattern:     pattern,
	}

	return &engine.VesselEntity{
		Vessel:          vessel,
		GGA:             engine.GPSSentenceConfig{TalkerID: "GP", RateHz: 1, Enabled: true},
		RMC:             engine.GPSSentenceConfig{TalkerID: "GP", RateHz: 1, Enabled: true},
		ExtendedReports: v.ExtendedReports,
	}, nil
}

func buildPattern(m config.Movement) (kinematics.Pattern, error) {
	switch m.Pattern {
	case "", "linear":
		return kinematics.Pattern{Kind: kinematics.Linear}, nil

	case "circular":
		if m.Center == nil {
			return kinematics.Pattern{}, fmt.Errorf("movement: circular pattern requires center")
		}
		return kinematics.Pattern{
			Kind:     kinematics.Circular,
			Center:   kinematics.Position{Lat: m.Center.Lat, Lon: m.Center.Lon},
			RadiusNM: m.RadiusNM,
		}, nil

	case "random_walk":
		if m.Box == nil {
			return kinematics.Pattern{}, fmt.Errorf("movement: random_walk pattern requires box")
		}
		return kinematics.Pattern{
			Kind: kinematics.RandomWalk,
			Box: kinematics.Box{
				MinLat: m.Box.MinLat, MaxLat: m.Box.MaxLat,
				MinLon: m.Box.MinLon, MaxLon: m.Box.MaxLon,
			},
		}, nil

	case "waypoint":
		if len(m.Waypoints) == 0 {
			return kinematics.Pattern{}, fmt.Errorf("movement: waypoint pattern requires waypoints")
		}
		waypoints := make([]kinematics.Position, len(m.Waypoints))
		for i, p := range m.Waypoints {
			waypoints[i] = kinematics.Position{Lat: p.Lat, Lon: p.Lon}
		}
		return kinematics.Pattern{
			Kind:        kinematics.Waypoint,
			Waypoints:   waypoints,
			ToleranceNM: m.ToleranceNM,
		}, nil

	default:
		return kinematics.Pattern{}, fmt.Errorf("movement: unknown pattern %q", m.Pattern)
	}
}
