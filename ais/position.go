package ais

import "github.com/goblimey/nmeasim/bitstream"

// PositionReport is the common layout for message types 1, 2 and 3 (Class A
// position report). The only difference between the three types is how the
// station came to send it (autonomous, assigned, or response to
// interrogation); this simulator always emits type 1.
type PositionReport struct {
	MMSI             uint32
	NavStatus        uint8 // 0-15
	RateOfTurn       int8  // raw ROTais units, -128 = not available
	SOG              uint16
	PositionAccuracy bool
	Longitude        int64 // 1/10000 minute, 28 bits signed
	Latitude         int64 // 1/10000 minute, 27 bits signed
	COG              uint16
	TrueHeading      uint16 // 0-359, 511 = not available
	Timestamp        uint8  // 0-59, or a 60-63 sentinel
	ManeuverIndicator uint8
	RAIM             bool
	Radio            uint32
}

// EncodePositionReport builds the 168-bit payload for a type 1 position
// report. Every field is range-checked; the first out-of-range field
// produces a "bad-field" error and no partial payload is returned.
func EncodePositionReport(msg PositionReport) ([]bool, error) {
	w := bitstream.NewWriter()
	if err := encodeHeader(w, MessageTypePositionClassA, msg.MMSI); err != nil {
		return nil, err
	}
	if err := w.AppendUint(uint64(msg.NavStatus), 4); err != nil {
		return nil, err
	}
	if err := w.AppendInt(int64(msg.RateOfTurn), 8); err != nil {
		return nil, err
	}
	if err := w.AppendUint(uint64(msg.SOG), 10); err != nil {
		return nil, err
	}
	w.AppendBool(msg.PositionAccuracy)
	if err := w.AppendInt(msg.Longitude, 28); err != nil {
		return nil, err
	}
	if err := w.AppendInt(msg.Latitude, 27); err != nil {
		return nil, err
	}
	if err := w.AppendUint(uint64(msg.COG), 12); err != nil {
		return nil, err
	}
	if err := w.AppendUint(uint64(msg.TrueHeading), 9); err != nil {
		return nil, err
	}
	if err := w.AppendUint(uint64(msg.Timestamp), 6); err != nil {
		return nil, err
	}
	if err := w.AppendUint(uint64(msg.ManeuverIndicator), 2); err != nil {
		return nil, err
	}
	if err := w.AppendUint(0, 3); err != nil { // spare
		return nil, err
	}
	w.AppendBool(msg.RAIM)
	if err := w.AppendUint(uint64(msg.Radio), 19); err != nil {
		return nil, err
	}
	return w.Bits(), nil
}

// DecodePositionReport is the inverse of EncodePositionReport.
func DecodePositionReport(bits []bool) (*PositionReport, error) {
	r := bitstream.NewReader(bits)
	h, err := decodeHeader(r)
	if err != nil {
		return nil, err
	}
	var msg PositionReport
	msg.MMSI = h.MMSI

	navStatus, err := r.ReadUint(4)
	if err != nil {
		return nil, err
	}
	rot, err := r.ReadInt(8)
	if err != nil {
		return nil, err
	}
	sog, err := r.ReadUint(10)
	if err != nil {
		return nil, err
	}
	accuracy, err := r.ReadBool()
	if err != nil {
		return nil, err
	}
	lon, err := r.ReadInt(28)
	if err != nil {
		return nil, err
	}
	lat, err := r.ReadInt(27)
	if err != nil {
		return nil, err
	}
	cog, err := r.ReadUint(12)
	if err != nil {
		return nil, err
	}
	heading, err := r.ReadUint(9)
	if err != nil {
		return nil, err
	}
	timestamp, err := r.ReadUint(6)
	if err != nil {
		return nil, err
	}
	maneuver, err := r.ReadUint(2)
	if err != nil {
		return nil, err
	}
	if _, err := r.ReadUint(3); err != nil { // spare
		return nil, err
	}
	raim, err := r.ReadBool()
	if err != nil {
		return nil, err
	}
	radio, err := r.ReadUint(19)
	if err != nil {
		return nil, err
	}

	msg.NavStatus = uint8(navStatus)
	msg.RateOfTurn = int8(rot)
	msg.SOG = uint16(sog)
	msg.PositionAccuracy = accuracy
	msg.Longitude = lon
	msg.Latitude = lat
	msg.COG = uint16(cog)
	msg.TrueHeading = uint16(heading)
	msg.Timestamp = uint8(timestamp)
	msg.ManeuverIndicator = uint8(maneuver)
	msg.RAIM = raim
	msg.Radio = uint32(radio)
	return &msg, nil
}
