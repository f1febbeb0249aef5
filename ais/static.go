package ais

import "github.com/goblimey/nmeasim/bitstream"

// Voyage holds the ETA and destination fields of a type 5 message. A
// vessel with no voyage configured emits zero values, which decode to "ETA
// not available" per M.1371.
type Voyage struct {
	ETAMonth    uint8 // 1-12, 0 = not available
	ETADay      uint8 // 1-31, 0 = not available
	ETAHour     uint8 // 0-23, 24 = not available
	ETAMinute   uint8 // 0-59, 60 = not available
	Draught     uint8 // 1/10 metre, 0-25.5m
	Destination string
}

// StaticVoyageData is the type 5 message: identity, dimensions and voyage
// plan for a Class A vessel.
type StaticVoyageData struct {
	MMSI       uint32
	AISVersion uint8 // 0-3
	IMO        uint32
	Callsign   string // up to 7 chars
	Name       string // up to 20 chars
	ShipType   uint8
	Dimensions Dimensions
	EPFD       uint8
	Voyage     Voyage
	DTE        bool // data terminal equipment: true = not available
}

// EncodeStaticVoyageData builds the 424-bit payload for a type 5 message.
func EncodeStaticVoyageData(msg StaticVoyageData) ([]bool, error) {
	w := bitstream.NewWriter()
	if err := encodeHeader(w, MessageTypeStaticVoyage, msg.MMSI); err != nil {
		return nil, err
	}
	if err := w.AppendUint(uint64(msg.AISVersion), 2); err != nil {
		return nil, err
	}
	if err := w.AppendUint(uint64(msg.IMO), 30); err != nil {
		return nil, err
	}
	if err := w.AppendString(msg.Callsign, 7); err != nil {
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
	if err := w.AppendUint(uint64(msg.Voyage.ETAMonth), 4); err != nil {
		return nil, err
	}
	if err := w.AppendUint(uint64(msg.Voyage.ETADay), 5); err != nil {
		return nil, err
	}
	if err := w.AppendUint(uint64(msg.Voyage.ETAHour), 5); err != nil {
		return nil, err
	}
	if err := w.AppendUint(uint64(msg.Voyage.ETAMinute), 6); err != nil {
		return nil, err
	}
	if err := w.AppendUint(uint64(msg.Voyage.Draught), 8); err != nil {
		return nil, err
	}
	if err := w.AppendString(msg.Voyage.Destination, 20); err != nil {
		return nil, err
	}
	w.AppendBool(msg.DTE)
	if err := w.AppendUint(0, 1); err != nil { // spare
		return nil, err
	}
	return w.Bits(), nil
}

// DecodeStaticVoyageData is the inverse of EncodeStaticVoyageData.
func DecodeStaticVoyageData(bits []bool) (*StaticVoyageData, error) {
	r := bitstream.NewReader(bits)
	h, err := decodeHeader(r)
	if err != nil {
		return nil, err
	}
	var msg StaticVoyageData
	msg.MMSI = h.MMSI

	version, err := r.ReadUint(2)
	if err != nil {
		return nil, err
	}
	imo, err := r.ReadUint(30)
	if err != nil {
		return nil, err
	}
	callsign, err := r.ReadString(7)
	if err != nil {
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
	etaMonth, err := r.ReadUint(4)
	if err != nil {
		return nil, err
	}
	etaDay, err := r.ReadUint(5)
	if err != nil {
		return nil, err
	}
	etaHour, err := r.ReadUint(5)
	if err != nil {
		return nil, err
	}
	etaMinute, err := r.ReadUint(6)
	if err != nil {
		return nil, err
	}
	draught, err := r.ReadUint(8)
	if err != nil {
		return nil, err
	}
	destination, err := r.ReadString(20)
	if err != nil {
		return nil, err
	}
	dte, err := r.ReadBool()
	if err != nil {
		return nil, err
	}
	if _, err := r.ReadUint(1); err != nil { // spare
		return nil, err
	}

	msg.AISVersion = uint8(version)
	msg.IMO = uint32(imo)
	msg.Callsign = callsign
	msg.Name = name
	msg.ShipType = uint8(shipType)
	msg.Dimensions = dims
	msg.EPFD = uint8(epfd)
	msg.Voyage = Voyage{
		ETAMonth:    uint8(etaMonth),
		ETADay:      uint8(etaDay),
		ETAHour:     uint8(etaHour),
		ETAMinute:   uint8(etaMinute),
		Draught:     uint8(draught),
		Destination: destination,
	}
	msg.DTE = dte
	return &msg, nil
}

// StaticDataReportA is part A of the type 24 message: vessel name only.
type StaticDataReportA struct {
	MMSI uint32
	Name string
}

// EncodeStaticDataReportA builds the 160-bit payload for a type 24A message.
func EncodeStaticDataReportA(msg StaticDataReportA) ([]bool, error) {
	w := bitstream.NewWriter()
	if err := encodeHeader(w, MessageTypeStaticDataA, msg.MMSI); err != nil {
		return nil, err
	}
	if err := w.AppendUint(0, 2); err != nil { // part number = 0
		return nil, err
	}
	if err := w.AppendString(msg.Name, 20); err != nil {
		return nil, err
	}
	return w.Bits(), nil
}

// DecodeStaticDataReportA is the inverse of EncodeStaticDataReportA.
func DecodeStaticDataReportA(bits []bool) (*StaticDataReportA, error) {
	r := bitstream.NewReader(bits)
	h, err := decodeHeader(r)
	if err != nil {
		return nil, err
	}
	if _, err := r.ReadUint(2); err != nil { // part number
		return nil, err
	}
	name, err := r.ReadString(20)
	if err != nil {
		return nil, err
	}
	return &StaticDataReportA{MMSI: h.MMSI, Name: name}, nil
}

// StaticDataReportB is part B of the type 24 message: ship type, vendor,
// callsign, dimensions and, for auxiliary craft, the mothership's MMSI
// instead of dimensions.
type StaticDataReportB struct {
	MMSI           uint32
	ShipType       uint8
	VendorID       string // up to 7 chars
	Callsign       string // up to 7 chars
	Dimensions     Dimensions
	MothershipMMSI uint32 // used instead of Dimensions when IsAuxiliaryCraft is set
	IsAuxiliaryCraft bool
}

// EncodeStaticDataReportB builds the 168-bit payload for a type 24B message.
func EncodeStaticDataReportB(msg StaticDataReportB) ([]bool, error) {
	w := bitstream.NewWriter()
	if err := encodeHeader(w, MessageTypeStaticDataA, msg.MMSI); err != nil {
		return nil, err
	}
	if err := w.AppendUint(1, 2); err != nil { // part number = 1
		return nil, err
	}
	if err := w.AppendUint(uint64(msg.ShipType), 8); err != nil {
		return nil, err
	}
	if err := w.AppendString(msg.VendorID, 7); err != nil {
		return nil, err
	}
	if err := w.AppendString(msg.Callsign, 7); err != nil {
		return nil, err
	}
	if msg.IsAuxiliaryCraft {
		if err := w.AppendUint(uint64(msg.MothershipMMSI), 30); err != nil {
			return nil, err
		}
	} else {
		if err := msg.Dimensions.encode(w); err != nil {
			return nil, err
		}
	}
	if err := w.AppendUint(0, 6); err != nil { // spare
		return nil, err
	}
	return w.Bits(), nil
}

// DecodeStaticDataReportB is the inverse of EncodeStaticDataReportB.
// isAuxiliaryCraft tells the decoder whether the 30-bit field after the
// callsign is a mothership MMSI or a dimensions block; AIS message 24B does
// not self-describe this, callers determine it from the MMSI's MID range.
func DecodeStaticDataReportB(bits []bool, isAuxiliaryCraft bool) (*StaticDataReportB, error) {
	r := bitstream.NewReader(bits)
	h, err := decodeHeader(r)
	if err != nil {
		return nil, err
	}
	if _, err := r.ReadUint(2); err != nil { // part number
		return nil, err
	}
	shipType, err := r.ReadUint(8)
	if err != nil {
		return nil, err
	}
	vendorID, err := r.ReadString(7)
	if err != nil {
		return nil, err
	}
	callsign, err := r.ReadString(7)
	if err != nil {
		return nil, err
	}

	msg := StaticDataReportB{
		MMSI:             h.MMSI,
		ShipType:         uint8(shipType),
		VendorID:         vendorID,
		Callsign:         callsign,
		IsAuxiliaryCraft: isAuxiliaryCraft,
	}
	if isAuxiliaryCraft {
		mothership, err := r.ReadUint(30)
		if err != nil {
			return nil, err
		}
		msg.MothershipMMSI = uint32(mothership)
	} else {
		dims, err := decodeDimensions(r)
		if err != nil {
			return nil, err
		}
		msg.Dimensions = dims
	}
	return &msg, nil
}
