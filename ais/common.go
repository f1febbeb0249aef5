// Package ais builds and parses the binary payloads of ITU-R M.1371 AIS
// messages: position reports (types 1/2/3), base station reports (type 4),
// static & voyage data (type 5), class B position and extended reports
// (types 18/19), aids to navigation (type 21) and class B static data
// (types 24A/24B).
//
// Each message type has an Encode function taking a typed record and
// returning an unpadded bit vector (suitable for bitstream.Armor), and a
// Decode function that is its exact inverse. Field range violations are
// reported as "bad-field" errors by the underlying bitstream.Writer and
// passed straight back to the caller; callers are expected to skip the
// emission and continue, per the engine's error handling policy.
package ais

import (
	"math"

	"github.com/goblimey/nmeasim/bitstream"
)

// Message type numbers.
const (
	MessageTypePositionClassA  = 1 // also covers types 2 and 3 (same layout)
	MessageTypeBaseStation     = 4
	MessageTypeStaticVoyage    = 5
	MessageTypePositionClassB  = 18
	MessageTypeExtendedClassB  = 19
	MessageTypeAidToNavigation = 21
	MessageTypeStaticDataA     = 24
)

// Sentinel values used across message types.
const (
	SOGNotAvailable        = 1023 // 10 bits, 1/10 knot
	COGNotAvailable        = 3600 // 12 bits, 1/10 degree
	HeadingNotAvailable    = 511  // 9 bits
	RateOfTurnNotAvailable = -128 // 8 bits signed, raw encoder value (not ROTAIS)
	TimestampNotAvailable  = 60   // 6 bits: 60 = not available, 61-63 are other sentinels
	MaxDimension9Bit       = 511
	MaxDimension6Bit       = 63
)

// scaleMinutesPerDegree converts decimal degrees to the AIS fixed-point
// representation of 1/10000 of a minute, and back.
const scaleMinutesPerDegree = 600000.0 // 60 minutes/degree * 10000

// EncodeLongitude converts decimal degrees (-180..180) to the 28-bit signed
// AIS fixed-point value.
func EncodeLongitude(deg float64) int64 {
	return int64(math.Round(deg * scaleMinutesPerDegree))
}

// DecodeLongitude is the inverse of EncodeLongitude.
func DecodeLongitude(v int64) float64 {
	return float64(v) / scaleMinutesPerDegree
}

// EncodeLatitude converts decimal degrees (-90..90) to the 27-bit signed AIS
// fixed-point value.
func EncodeLatitude(deg float64) int64 {
	return int64(math.Round(deg * scaleMinutesPerDegree))
}

// DecodeLatitude is the inverse of EncodeLatitude.
func DecodeLatitude(v int64) float64 {
	return float64(v) / scaleMinutesPerDegree
}

// EncodeSOG converts knots to the 10-bit 1/10-knot field, clamping to the
// reportable maximum of 102.2 knots.
func EncodeSOG(knots float64) uint64 {
	if knots > 102.2 {
		knots = 102.2
	}
	if knots < 0 {
		knots = 0
	}
	return uint64(math.Round(knots * 10))
}

// DecodeSOG is the inverse of EncodeSOG.
func DecodeSOG(v uint64) float64 {
	return float64(v) / 10
}

// EncodeCOG converts degrees to the 12-bit 1/10-degree field.
func EncodeCOG(deg float64) uint64 {
	return uint64(math.Round(deg*10)) % 3600
}

// DecodeCOG is the inverse of EncodeCOG.
func DecodeCOG(v uint64) float64 {
	return float64(v) / 10
}

// EncodeRateOfTurn converts a rate of turn in degrees/minute to the 8-bit
// signed ROTais field: ROTais = round(4.733 * sqrt(|rot|)), signed to match
// the turn direction, clamped to [-126, 126]. -128 means "not available".
func EncodeRateOfTurn(degPerMin float64) int64 {
	if degPerMin == RateOfTurnNotAvailable {
		return RateOfTurnNotAvailable
	}
	sign := 1.0
	if degPerMin < 0 {
		sign = -1.0
	}
	rot := 4.733 * math.Sqrt(math.Abs(degPerMin))
	v := int64(math.Round(sign * rot))
	if v > 126 {
		v = 126
	}
	if v < -126 {
		v = -126
	}
	return v
}

// DecodeRateOfTurn is the inverse of EncodeRateOfTurn, using the midpoint of
// the squared relationship.
func DecodeRateOfTurn(v int64) float64 {
	if v == RateOfTurnNotAvailable {
		return RateOfTurnNotAvailable
	}
	sign := 1.0
	if v < 0 {
		sign = -1.0
	}
	ratio := float64(v) / 4.733
	return sign * ratio * ratio
}

// Dimensions carries a vessel or aid-to-navigation's distances from its GPS
// antenna to its bow/stern/port/starboard, in metres.
type Dimensions struct {
	ToBow       uint16
	ToStern     uint16
	ToPort      uint8
	ToStarboard uint8
}

func (d Dimensions) encode(w *bitstream.Writer) error {
	if err := w.AppendUint(uint64(d.ToBow), 9); err != nil {
		return err
	}
	if err := w.AppendUint(uint64(d.ToStern), 9); err != nil {
		return err
	}
	if err := w.AppendUint(uint64(d.ToPort), 6); err != nil {
		return err
	}
	return w.AppendUint(uint64(d.ToStarboard), 6)
}

func decodeDimensions(r *bitstream.Reader) (Dimensions, error) {
	var d Dimensions
	bow, err := r.ReadUint(9)
	if err != nil {
		return d, err
	}
	stern, err := r.ReadUint(9)
	if err != nil {
		return d, err
	}
	port, err := r.ReadUint(6)
	if err != nil {
		return d, err
	}
	starboard, err := r.ReadUint(6)
	if err != nil {
		return d, err
	}
	d.ToBow = uint16(bow)
	d.ToStern = uint16(stern)
	d.ToPort = uint8(port)
	d.ToStarboard = uint8(starboard)
	return d, nil
}

// encodeHeader appends the three fields common to every AIS message: the
// message type, the repeat indicator (always 0, this simulator never
// repeats a message) and the 30-bit MMSI.
func encodeHeader(w *bitstream.Writer, msgType uint, mmsi uint32) error {
	if err := w.AppendUint(uint64(msgType), 6); err != nil {
		return err
	}
	if err := w.AppendUint(0, 2); err != nil { // repeat indicator
		return err
	}
	return w.AppendUint(uint64(mmsi), 30)
}

type header struct {
	MessageType uint
	Repeat      uint
	MMSI        uint32
}

func decodeHeader(r *bitstream.Reader) (header, error) {
	var h header
	mt, err := r.ReadUint(6)
	if err != nil {
		return h, err
	}
	rep, err := r.ReadUint(2)
	if err != nil {
		return h, err
	}
	mmsi, err := r.ReadUint(30)
	if err != nil {
		return h, err
	}
	h.MessageType = uint(mt)
	h.Repeat = uint(rep)
	h.MMSI = uint32(mmsi)
	return h, nil
}
