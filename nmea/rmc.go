package nmea

import (
	"fmt"
	"strconv"
)

// RMC is a Recommended Minimum Navigation Information sentence: position,
// speed, course and date in one fix.
type RMC struct {
	TalkerID    string
	Hour        int
	Minute      int
	Second      int
	Millis      int
	Active      bool // true = "A" (data valid), false = "V" (void)
	Latitude    float64
	Longitude   float64
	SOGKnots    float64
	COGDegrees  float64
	Day         int
	Month       int
	Year        int // four digit
	MagVar      float64 // signed degrees, +E/-W
	ModeIndicator string  // "A" autonomous, "D" differential, "N" not valid, ...
}

// Format renders r as a complete "$ttRMC,...*cs\r\n" sentence.
func (r RMC) Format() string {
	status := "V"
	if r.Active {
		status = "A"
	}
	latValue, latHemi := formatLat(r.Latitude)
	lonValue, lonHemi := formatLon(r.Longitude)
	magVar := r.MagVar
	magHemi := "E"
	if magVar < 0 {
		magHemi = "W"
		magVar = -magVar
	}
	return format(r.TalkerID+"RMC",
		formatUTCTime(r.Hour, r.Minute, r.Second, r.Millis),
		status,
		latValue, latHemi,
		lonValue, lonHemi,
		strconv.FormatFloat(r.SOGKnots, 'f', 1, 64),
		strconv.FormatFloat(r.COGDegrees, 'f', 1, 64),
		formatUTCDate(r.Day, r.Month, r.Year),
		strconv.FormatFloat(magVar, 'f', 1, 64), magHemi,
		r.ModeIndicator,
	)
}

// ParseRMC parses the fields of an already-validated RMC sentence.
func ParseRMC(s Sentence) (RMC, error) {
	if len(s.Header) != 5 || s.Header[2:] != "RMC" {
		return RMC{}, fmt.Errorf("parse: header %q is not an RMC sentence", s.Header)
	}
	var r RMC
	r.TalkerID = s.Header[:2]

	timeField, err := field(s.Fields, 0, "utc time")
	if err != nil {
		return RMC{}, err
	}
	if _, err := fmt.Sscanf(timeField, "%2d%2d%2d.%3d", &r.Hour, &r.Minute, &r.Second, &r.Millis); err != nil {
		return RMC{}, fmt.Errorf("parse: field 0 (utc time): %w", err)
	}

	statusField, err := field(s.Fields, 1, "status")
	if err != nil {
		return RMC{}, err
	}
	switch statusField {
	case "A":
		r.Active = true
	case "V":
		r.Active = false
	default:
		return RMC{}, fmt.Errorf("parse: field 1 (status): expected A or V, got %q", statusField)
	}

	latValue, err := field(s.Fields, 2, "latitude")
	if err != nil {
		return RMC{}, err
	}
	latHemi, err := field(s.Fields, 3, "latitude hemisphere")
	if err != nil {
		return RMC{}, err
	}
	if r.Latitude, err = parseLat(latValue, latHemi); err != nil {
		return RMC{}, err
	}

	lonValue, err := field(s.Fields, 4, "longitude")
	if err != nil {
		return RMC{}, err
	}
	lonHemi, err := field(s.Fields, 5, "longitude hemisphere")
	if err != nil {
		return RMC{}, err
	}
	if r.Longitude, err = parseLon(lonValue, lonHemi); err != nil {
		return RMC{}, err
	}

	sogField, err := field(s.Fields, 6, "sog")
	if err != nil {
		return RMC{}, err
	}
	if r.SOGKnots, err = strconv.ParseFloat(sogField, 64); err != nil {
		return RMC{}, fmt.Errorf("parse: field 6 (sog): %w", err)
	}

	cogField, err := field(s.Fields, 7, "cog")
	if err != nil {
		return RMC{}, err
	}
	if r.COGDegrees, err = strconv.ParseFloat(cogField, 64); err != nil {
		return RMC{}, fmt.Errorf("parse: field 7 (cog): %w", err)
	}

	dateField, err := field(s.Fields, 8, "date")
	if err != nil {
		return RMC{}, err
	}
	if _, err := fmt.Sscanf(dateField, "%2d%2d%2d", &r.Day, &r.Month, &r.Year); err != nil {
		return RMC{}, fmt.Errorf("parse: field 8 (date): %w", err)
	}
	r.Year += 2000

	magVarField, err := field(s.Fields, 9, "magnetic variation")
	if err != nil {
		return RMC{}, err
	}
	if r.MagVar, err = strconv.ParseFloat(magVarField, 64); err != nil {
		return RMC{}, fmt.Errorf("parse: field 9 (magnetic variation): %w", err)
	}
	magHemi, err := field(s.Fields, 10, "magnetic variation hemisphere")
	if err != nil {
		return RMC{}, err
	}
	if magHemi == "W" {
		r.MagVar = -r.MagVar
	} else if magHemi != "E" {
		return RMC{}, fmt.Errorf("parse: field 10 (magnetic variation hemisphere): expected E or W, got %q", magHemi)
	}

	if mode, err := field(s.Fields, 11, "mode indicator"); err == nil {
		r.ModeIndicator = mode
	}

	return r, nil
}
