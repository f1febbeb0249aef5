package ais

import "github.com/goblimey/nmeasim/bitstream"

// AidToNavigationReport is the type 21 message: the reported position of a
// buoy, lighthouse or other fixed or floating navigational aid.
type AidToNavigationReport struct {
	MMSI             uint32
	AidType          uint8 // 0-31
	Name             string
	PositionAccuracy bool
	Longitude        int64
	Latitude         int64
	Dimensions       Dimensions
	EPFD             uint8
	Timestamp        uint8
	OffPosition      bool
	Regional         uint8 // 8 bits
	RAIM             bool
	VirtualAid       bool
	Assigned         bool
	NameExtension    string // up to 88 bits / 14.67 chars; truncated to whole 6-bit chars
}

// EncodeAidToNavigationReport builds the payload for a type 21 message. The
// base layout is 272 bits; NameExtension, if non-empty, appends whole 6-bit
// characters (up to 14) after the mandatory spare bit.
func EncodeAidToNavigationReport(msg AidToNavigationReport) ([]bool, error) {
	w := bitstream.NewWriter()
	if err := encodeHeader(w, MessageTypeAidToNavigation, msg.MMSI); err != nil {
		return nil, err
	}
	if err := w.AppendUint(uint64(msg.AidType), 5); err != nil {
		return nil, err
	}
	if err := w.AppendString(msg.Name, 20); err != nil {
		return nil, err
	}
	w.AppendBool(msg.PositionAccuracy)
	if err := w.AppendInt(msg.Longitude, 28); err != nil {
		return nil, err
	}
	if err := w.AppendInt(msg.Latitude, 27); err != nil {
		return nil, err
	}
	if err := msg.Dimensions.encode(w); err != nil {
		return nil, err
	}
	if err := w.AppendUint(uint64(msg.EPFD), 4); err != nil {
		return nil, err
	}
	if err := w.AppendUint(uint64(msg.Timestamp), 6); err != nil {
		return nil, err
	}
	w.AppendBool(msg.OffPosition)
	if err := w.AppendUint(uint64(msg.Regional), 8); err != nil {
		return nil, err
	}
	w.AppendBool(msg.RAIM)
	w.AppendBool(msg.VirtualAid)
	w.AppendBool(msg.Assigned)
	if err := w.AppendUint(0, 1); err != nil { // spare
		return nil, err
	}
	if msg.NameExtension != "" {
		chars := uint(len(msg.NameExtension))
		if chars > 14 {
			chars = 14
		}
		if err := w.AppendString(msg.NameExtension, chars); err != nil {
			return nil, err
		}
	}
	return w.Bits(), nil
}

// DecodeAidToNavigationReport is the inverse of EncodeAidToNavigationReport.
func DecodeAidToNavigationReport(bits []bool) (*AidToNavigationReport, error) {
	r := bitstream.NewReader(bits)
	h, err := decodeHeader(r)
	if err != nil {
		return nil, err
	}
	var msg AidToNavigationReport
	msg.MMSI = h.MMSI

	aidType, err := r.ReadUint(5)
	if err != nil {
		return nil, err
	}
	name, err := r.ReadString(20)
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
	dims, err := decodeDimensions(r)
	if err != nil {
		return nil, err
	}
	epfd, err := r.ReadUint(4)
	if err != nil {
		return nil, err
	}
	timestamp, err := r.ReadUint(6)
	if err != nil {
		return nil, err
	}
	offPosition, err := r.ReadBool()
	if err != nil {
		return nil, err
	}
	regional, err := r.ReadUint(8)
	if err != nil {
		return nil, err
	}
	raim, err := r.ReadBool()
	if err != nil {
		return nil, err
	}
	virtual, err := r.ReadBool()
	if err != nil {
		return nil, err
	}
	assigned, err := r.ReadBool()
	if err != nil {
		return nil, err
	}
	if _, err := r.ReadUint(1); err != nil { // spare
		return nil, err
	}

	msg.AidType = uint8(aidType)
	msg.Name = name
	msg.PositionAccuracy = accuracy
	msg.Longitude = lon
	msg.Latitude = lat
	msg.Dimensions = dims
	msg.EPFD = uint8(epfd)
	msg.Timestamp = uint8(timestamp)
	msg.OffPosition = offPosition
	msg.Regional = uint8(regional)
	msg.RAIM = raim
	msg.VirtualAid = virtual
	msg.Assigned = assigned

	if r.Remaining() >= 6 {
		extChars := uint(r.Remaining() / 6)
		ext, err := r.ReadString(extChars)
		if err != nil {
			return nil, err
		}
		msg.NameExtension = ext
	}
	return &msg, nil
}
