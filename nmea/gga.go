package nmea

import (
	"fmt"
	"strconv"
)

// GGA is a Global Positioning System Fix Data sentence: a position and fix
// quality snapshot with no course or speed.
type GGA struct {
	TalkerID  string // two letters, e.g. "GP"
	Hour      int
	Minute    int
	Second    int
	Millis    int
	Latitude  float64 // decimal degrees, +N/-S
	Longitude float64 // decimal degrees, +E/-W
	FixQuality int     // 0 = invalid, 1 = GPS, 2 = DGPS
	Satellites int
	HDOP       float64
	AltitudeM  float64
	GeoidSepM  float64
}

// Format renders g as a complete "$ttGGA,...*cs\r\n" sentence.
func (g GGA) Format() string {
	latValue, latHemi := formatLat(g.Latitude)
	lonValue, lonHemi := formatLon(g.Longitude)
	return format(g.TalkerID+"GGA",
		formatUTCTime(g.Hour, g.Minute, g.Second, g.Millis),
		latValue, latHemi,
		lonValue, lonHemi,
		strconv.Itoa(g.FixQuality),
		fmt.Sprintf("%02d", g.Satellites),
		strconv.FormatFloat(g.HDOP, 'f', 1, 64),
		strconv.FormatFloat(g.AltitudeM, 'f', 1, 64), "M",
		strconv.FormatFloat(g.GeoidSepM, 'f', 1, 64), "M",
		"", "", // DGPS age, DGPS station id: not simulated
	)
}

// ParseGGA parses the fields of an already-validated GGA sentence (its
// Header is expected to end in "GGA"; TalkerID is taken from its first two
// characters).
func ParseGGA(s Sentence) (GGA, error) {
	if len(s.Header) != 5 || s.Header[2:] != "GGA" {
		return GGA{}, fmt.Errorf("parse: header %q is not a GGA sentence", s.Header)
	}
	var g GGA
	g.TalkerID = s.Header[:2]

	timeField, err := field(s.Fields, 0, "utc time")
	if err != nil {
		return GGA{}, err
	}
	if _, err := fmt.Sscanf(timeField, "%2d%2d%2d.%3d", &g.Hour, &g.Minute, &g.Second, &g.Millis); err != nil {
		return GGA{}, fmt.Errorf("parse: field 0 (utc time): %w", err)
	}

	latValue, err := field(s.Fields, 1, "latitude")
	if err != nil {
		return GGA{}, err
	}
	latHemi, err := field(s.Fields, 2, "latitude hemisphere")
	if err != nil {
		return GGA{}, err
	}
	if g.Latitude, err = parseLat(latValue, latHemi); err != nil {
		return GGA{}, err
	}

	lonValue, err := field(s.Fields, 3, "longitude")
	if err != nil {
		return GGA{}, err
	}
	lonHemi, err := field(s.Fields, 4, "longitude hemisphere")
	if err != nil {
		return GGA{}, err
	}
	if g.Longitude, err = parseLon(lonValue, lonHemi); err != nil {
		return GGA{}, err
	}

	qualityField, err := field(s.Fields, 5, "fix quality")
	if err != nil {
		return GGA{}, err
	}
	if g.FixQuality, err = strconv.Atoi(qualityField); err != nil {
		return GGA{}, fmt.Errorf("parse: field 5 (fix quality): %w", err)
	}

	satField, err := field(s.Fields, 6, "satellite count")
	if err != nil {
		return GGA{}, err
	}
	if g.Satellites, err = strconv.Atoi(satField); err != nil {
		return GGA{}, fmt.Errorf("parse: field 6 (satellite count): %w", err)
	}

	hdopField, err := field(s.Fields, 7, "hdop")
	if err != nil {
		return GGA{}, err
	}
	if g.HDOP, err = strconv.ParseFloat(hdopField, 64); err != nil {
		return GGA{}, fmt.Errorf("parse: field 7 (hdop): %w", err)
	}

	altField, err := field(s.Fields, 8, "altitude")
	if err != nil {
		return GGA{}, err
	}
	if g.AltitudeM, err = strconv.ParseFloat(altField, 64); err != nil {
		return GGA{}, fmt.Errorf("parse: field 8 (altitude): %w", err)
	}

	geoidField, err := field(s.Fields, 10, "geoid separation")
	if err != nil {
		return GGA{}, err
	}
	if g.GeoidSepM, err = strconv.ParseFloat(geoidField, 64); err != nil {
		return GGA{}, fmt.Errorf("parse: field 10 (geoid separation): %w", err)
	}

	return g, nil
}
