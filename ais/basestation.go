package ais

import "github.com/goblimey/nmeasim/bitstream"

// BaseStationReport is the type 4 message: a shore station's own UTC time
// and position.
type BaseStationReport struct {
	MMSI             uint32
	Year             uint16 // 1-9999, 0 = not available
	Month            uint8  // 1-12, 0 = not available
	Day              uint8
	Hour             uint8
	Minute           uint8
	Second           uint8
	PositionAccuracy bool
	Longitude        int64
	Latitude         int64
	EPFD             uint8 // electronic position fixing device type, 0-15
	RAIM             bool
	Radio            uint32
}

// EncodeBaseStationReport builds the 168-bit payload for a type 4 message.
func EncodeBaseStationReport(msg BaseStationReport) ([]bool, error) {
	w := bitstream.NewWriter()
	if err := encodeHeader(w, MessageTypeBaseStation, msg.MMSI); err != nil {
		return nil, err
	}
	if err := w.AppendUint(uint64(msg.Year), 14); err != nil {
		return nil, err
	}
	if err := w.AppendUint(uint64(msg.Month), 4); err != nil {
		return nil, err
	}
	if err := w.AppendUint(uint64(msg.Day), 5); err != nil {
		return nil, err
	}
	if err := w.AppendUint(uint64(msg.Hour), 5); err != nil {
		return nil, err
	}
	if err := w.AppendUint(uint64(msg.Minute), 6); err != nil {
		return nil, err
	}
	if err := w.AppendUint(uint64(msg.Second), 6); err != nil {
		return nil, err
	}
	w.AppendBool(msg.PositionAccuracy)
	if err := w.AppendInt(msg.Longitude, 28); err != nil {
		return nil, err
	}
	if err := w.AppendInt(msg.Latitude, 27); err != nil {
		return nil, err
	}
	if err := w.AppendUint(uint64(msg.EPFD), 4); err != nil {
		return nil, err
	}
	if err := w.AppendUint(0, 10); err != nil { // spare
		return nil, err
	}
	w.AppendBool(msg.RAIM)
	if err := w.AppendUint(uint64(msg.Radio), 19); err != nil {
		return nil, err
	}
	return w.Bits(), nil
}

// DecodeBaseStationReport is the inverse of EncodeBaseStationReport.
func DecodeBaseStationReport(bits []bool) (*BaseStationReport, error) {
	r := bitstream.NewReader(bits)
	h, err := decodeHeader(r)
	if err != nil {
		return nil, err
	}
	var msg BaseStationReport
	msg.MMSI = h.MMSI

	year, err := r.ReadUint(14)
	if err != nil {
		return nil, err
	}
	month, err := r.ReadUint(4)
	if err != nil {
		return nil, err
	}
	day, err := r.ReadUint(5)
	if err != nil {
		return nil, err
	}
	hour, err := r.ReadUint(5)
	if err != nil {
		return nil, err
	}
	minute, err := r.ReadUint(6)
	if err != nil {
		return nil, err
	}
	second, err := r.ReadUint(6)
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
	epfd, err := r.ReadUint(4)
	if err != nil {
		return nil, err
	}
	if _, err := r.ReadUint(10); err != nil { // spare
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

	msg.Year = uint16(year)
	msg.Month = uint8(month)
	msg.Day = uint8(day)
	msg.Hour = uint8(hour)
	msg.Minute = uint8(minute)
	msg.Second = uint8(second)
	msg.PositionAccuracy = accuracy
	msg.Longitude = lon
	msg.Latitude = lat
	msg.EPFD = uint8(epfd)
	msg.RAIM = raim
	msg.Radio = uint32(radio)
	return &msg, nil
}
