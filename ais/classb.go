package ais

import "github.com/goblimey/nmeasim/bitstream"

// ClassBPositionReport is the type 18 message: a Class B transceiver's
// position report.
type ClassBPositionReport struct {
	MMSI             uint32
	SOG              uint16
	PositionAccuracy bool
	Longitude        int64
	Latitude         int64
	COG              uint16
	TrueHeading      uint16
	Timestamp        uint8
	CSUnit           bool // true = "CS" (carrier sense) unit
	Display          bool // has a visual display
	DSC              bool // DSC capable
	Band             bool // can operate over the whole marine band
	Msg22            bool // accepts channel assignment via message 22
	Assigned         bool // operating in assigned mode
	RAIM             bool
	Radio            uint32 // 20 bits for type 18
}

// EncodeClassBPositionReport builds the 168-bit payload for a type 18
// message.
func EncodeClassBPositionReport(msg ClassBPositionReport) ([]bool, error) {
	w := bitstream.NewWriter()
	if err := encodeHeader(w, MessageTypePositionClassB, msg.MMSI); err != nil {
		return nil, err
	}
	if err := w.AppendUint(0, 8); err != nil { // reserved
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
	if err := w.AppendUint(0, 2); err != nil { // regional reserved
		return nil, err
	}
	w.AppendBool(msg.CSUnit)
	w.AppendBool(msg.Display)
	w.AppendBool(msg.DSC)
	w.AppendBool(msg.Band)
	w.AppendBool(msg.Msg22)
	w.AppendBool(msg.Assigned)
	w.AppendBool(msg.RAIM)
	if err := w.AppendUint(uint64(msg.Radio), 20); err != nil {
		return nil, err
	}
	return w.Bits(), nil
}

// DecodeClassBPositionReport is the inverse of EncodeClassBPositionReport.
func DecodeClassBPositionReport(bits []bool) (*ClassBPositionReport, error) {
	r := bitstream.NewReader(bits)
	h, err := decodeHeader(r)
	if err != nil {
		return nil, err
	}
	var msg ClassBPositionReport
	msg.MMSI = h.MMSI

	if _, err := r.ReadUint(8); err != nil {
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
	if _, err := r.ReadUint(2); err != nil {
		return nil, err
	}
	csUnit, err := r.ReadBool()
	if err != nil {
		return nil, err
	}
	display, err := r.ReadBool()
	if err != nil {
		return nil, err
	}
	dsc, err := r.ReadBool()
	if err != nil {
		return nil, err
	}
	band, err := r.ReadBool()
	if err != nil {
		return nil, err
	}
	msg22, err := r.ReadBool()
	if err != nil {
		return nil, err
	}
	assigned, err := r.ReadBool()
	if err != nil {
		return nil, err
	}
	raim, err := r.ReadBool()
	if err != nil {
		return nil, err
	}
	radio, err := r.ReadUint(20)
	if err != nil {
		return nil, err
	}

	msg.SOG = uint16(sog)
	msg.PositionAccuracy = accuracy
	msg.Longitude = lon
	msg.Latitude = lat
	msg.COG = uint16(cog)
	msg.TrueHeading = uint16(heading)
	msg.Timestamp = uint8(timestamp)
	msg.CSUnit = csUnit
	msg.Display = display
	msg.DSC = dsc
	msg.Band = band
	msg.Msg22 = msg22
	msg.Assigned = assigned
	msg.RAIM = raim
	msg.Radio = uint32(radio)
	return &msg, nil
}

// ClassBExtendedReport is the type 19 message: a Class B transceiver's
// position plus static data, sent less often than type 18.
type ClassBExtendedReport struct {
	MMSI             uint32
	SOG              uint16
	PositionAccuracy bool
	Longitude        int64
	Latitude         int64
	COG              uint16
	TrueHeading      uint16
	Timestamp        uint8
	Name             string
	ShipType         uint8
	Dimensions       Dimensions
	EPFD             uint8
	RAIM             bool
	DTE              bool
	Assigned         bool
}

// EncodeClassBExtendedReport builds the 312-bit payload for a type 19
// message.
func EncodeClassBExtendedReport(msg ClassBExtendedReport) ([]bool, error) {
	w := bitstream.NewWriter()
	if err := encodeHeader(w, MessageTypeExtendedClassB, msg.MMSI); err != nil {
		return nil, err
	}
	if err := w.AppendUint(0, 8); err != nil { // reserved
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
	if err := w.AppendUint(0, 4); err != nil { // regional reserved
		return nil, err
	}
	if err := w.AppendString(msg.Name, 20); err != nil {
		return nil, err
	}
	if err := w.AppendUint(uint64(msg.ShipType), 8); err != nil {
		return nil, err
	}
	if err := msg.Dimensions.encode(w); err != nil {
		return nil, err
	}
	if err := w.AppendUint(uint64(msg.EPFD), 4); err != nil {
		return nil, err
	}
	w.AppendBool(msg.RAIM)
	w.AppendBool(msg.DTE)
	w.AppendBool(msg.Assigned)
	if err := w.AppendUint(0, 4); err != nil { // spare
		return nil, err
	}
	return w.Bits(), nil
}

// DecodeClassBExtendedReport is the inverse of EncodeClassBExtendedReport.
func DecodeClassBExtendedReport(bits []bool) (*ClassBExtendedReport, error) {
	r := bitstream.NewReader(bits)
	h, err := decodeHeader(r)
	if err != nil {
		return nil, err
	}
	var msg ClassBExtendedReport
	msg.MMSI = h.MMSI

	if _, err := r.ReadUint(8); err != nil {
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
	if _, err := r.ReadUint(4); err != nil {
		return nil, err
	}
	name, err := r.ReadString(20)
	if err != nil {
		return nil, err
	}
	shipType, err := r.ReadUint(8)
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
	raim, err := r.ReadBool()
	if err != nil {
		return nil, err
	}
	dte, err := r.ReadBool()
	if err != nil {
		return nil, err
	}
	assigned, err := r.ReadBool()
	if err != nil {
		return nil, err
	}
	if _, err := r.ReadUint(4); err != nil { // spare
		return nil, err
	}

	msg.SOG = uint16(sog)
	msg.PositionAccuracy = accuracy
	msg.Longitude = lon
	msg.Latitude = lat
	msg.COG = uint16(cog)
	msg.TrueHeading = uint16(heading)
	msg.Timestamp = uint8(timestamp)
	msg.Name = name
	msg.ShipType = uint8(shipType)
	msg.Dimensions = dims
	msg.EPFD = uint8(epfd)
	msg.RAIM = raim
	msg.DTE = dte
	msg.Assigned = assigned
	return &msg, nil
}
