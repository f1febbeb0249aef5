package ais

import (
	"testing"

	"github.com/goblimey/nmeasim/bitstream"
	"github.com/stretchr/testify/require"
)

// TestPositionReportRoundTrip checks that encode, armor, wrap, parse,
// unarmor, decode yields the same field values.
func TestPositionReportRoundTrip(t *testing.T) {
	msg := PositionReport{
		MMSI:             367001234,
		NavStatus:        0,
		RateOfTurn:       0,
		SOG:              uint16(EncodeSOG(12.3)),
		PositionAccuracy: false,
		Longitude:        EncodeLongitude(-122.4),
		Latitude:         EncodeLatitude(37.8),
		COG:              uint16(EncodeCOG(90.0)),
		TrueHeading:      90,
		Timestamp:        30,
	}
	bits, err := EncodePositionReport(msg)
	require.NoError(t, err)
	require.Len(t, bits, 168)

	payload, fill := bitstream.Armor(bits)
	decodedBits, err := bitstream.Dearmor(payload, fill)
	require.NoError(t, err)

	decoded, err := DecodePositionReport(decodedBits)
	require.NoError(t, err)

	require.Equal(t, msg.MMSI, decoded.MMSI)
	require.EqualValues(t, 123, decoded.SOG)
	require.Equal(t, int64(-73440000), decoded.Longitude)
	require.Equal(t, msg.Latitude, decoded.Latitude)
	require.EqualValues(t, 900, decoded.COG)
	require.Equal(t, msg.TrueHeading, decoded.TrueHeading)
	require.Equal(t, msg.Timestamp, decoded.Timestamp)
}

func TestPositionReportFieldBoundaries(t *testing.T) {
	var testData = []struct {
		name      string
		mutate    func(*PositionReport)
		wantError bool
	}{
		{"max SOG", func(m *PositionReport) { m.SOG = 1023 }, false},
		{"SOG overflow", func(m *PositionReport) { m.SOG = 1024 }, true},
		{"max heading sentinel", func(m *PositionReport) { m.TrueHeading = 511 }, false},
		{"heading overflow", func(m *PositionReport) { m.TrueHeading = 512 }, true},
		{"min longitude", func(m *PositionReport) { m.Longitude = -(1 << 27) }, false},
		{"longitude overflow", func(m *PositionReport) { m.Longitude = 1 << 27 }, true},
	}

	for _, td := range testData {
		msg := PositionReport{MMSI: 123456789}
		td.mutate(&msg)
		_, err := EncodePositionReport(msg)
		if td.wantError {
			require.Error(t, err, td.name)
		} else {
			require.NoError(t, err, td.name)
		}
	}
}

// TestStaticVoyageFragmentation checks that a 424-bit type 5 payload, which
// armors to 71 characters, splits into two fragments sharing a group ID at
// a fragment limit of 60 characters, with indices 1/2 and 2/2, and that the
// reassembled bits match the original.
func TestStaticVoyageFragmentation(t *testing.T) {
	msg := StaticVoyageData{
		MMSI:       367001234,
		AISVersion: 0,
		IMO:        9074729,
		Callsign:   "WDA1234",
		Name:       "TEST VESSEL ONE",
		ShipType:   70,
		Dimensions: Dimensions{ToBow: 100, ToStern: 20, ToPort: 10, ToStarboard: 10},
		EPFD:       1,
		Voyage: Voyage{
			ETAMonth: 6, ETADay: 15, ETAHour: 14, ETAMinute: 30,
			Draught: 65, Destination: "SAN FRANCISCO",
		},
	}
	bits, err := EncodeStaticVoyageData(msg)
	require.NoError(t, err)
	require.Len(t, bits, 424)

	payload, fill := bitstream.Armor(bits)
	require.Len(t, payload, 71)

	seq := &GroupSequencer{}
	fragments := Fragments(payload, fill, 60, seq)
	require.Len(t, fragments, 2)
	require.Equal(t, 2, fragments[0].Count)
	require.Equal(t, 1, fragments[0].Index)
	require.Equal(t, 2, fragments[1].Index)
	require.Equal(t, fragments[0].GroupID, fragments[1].GroupID)
	require.NotEmpty(t, fragments[0].GroupID)
	groupDigit := fragments[0].GroupID[0]
	require.True(t, groupDigit >= '0' && groupDigit <= '9')
	require.Equal(t, 0, fragments[0].Fill)

	wantLastLen := 424 - 60*6
	gotLastLen := len(fragments[1].Payload)*6 - fragments[1].Fill
	require.Equal(t, wantLastLen, gotLastLen)

	reassembled, err := ReassembleFragments(fragments)
	require.NoError(t, err)
	require.Equal(t, bits, reassembled)

	decoded, err := DecodeStaticVoyageData(reassembled)
	require.NoError(t, err)
	require.Equal(t, msg.Name, decoded.Name)
	require.Equal(t, msg.Voyage.Destination, decoded.Voyage.Destination)
	require.Equal(t, msg.Dimensions, decoded.Dimensions)
}

func TestFragmentsSingleFragmentHasNoGroupID(t *testing.T) {
	seq := &GroupSequencer{}
	fragments := Fragments("123456", 2, 60, seq)
	require.Len(t, fragments, 1)
	require.Equal(t, "", fragments[0].GroupID)
	require.Equal(t, 1, fragments[0].Count)
	require.Equal(t, 1, fragments[0].Index)
}

func TestGroupSequencerWrapsAt9(t *testing.T) {
	seq := &GroupSequencer{}
	var ids []int
	for i := 0; i < 11; i++ {
		ids = append(ids, seq.Next())
	}
	require.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 0}, ids)
}

func TestMaxFragmentPayloadCharsDerivesFromEnvelope(t *testing.T) {
	require.Equal(t, 60, MaxFragmentPayloadChars(82))
	require.Equal(t, 38, MaxFragmentPayloadChars(60))
}

func TestBaseStationRoundTrip(t *testing.T) {
	msg := BaseStationReport{
		MMSI: 992271234, Year: 2026, Month: 7, Day: 29,
		Hour: 14, Minute: 5, Second: 0,
		Longitude: EncodeLongitude(-122.1), Latitude: EncodeLatitude(37.5),
		EPFD: 1,
	}
	bits, err := EncodeBaseStationReport(msg)
	require.NoError(t, err)
	require.Len(t, bits, 168)
	decoded, err := DecodeBaseStationReport(bits)
	require.NoError(t, err)
	require.Equal(t, msg, *decoded)
}

func TestClassBPositionRoundTrip(t *testing.T) {
	msg := ClassBPositionReport{
		MMSI: 338012345, SOG: uint16(EncodeSOG(1.5)),
		Longitude: EncodeLongitude(-70.0), Latitude: EncodeLatitude(42.0),
		COG: uint16(EncodeCOG(180)), TrueHeading: HeadingNotAvailable, Timestamp: 10,
	}
	bits, err := EncodeClassBPositionReport(msg)
	require.NoError(t, err)
	require.Len(t, bits, 168)
	decoded, err := DecodeClassBPositionReport(bits)
	require.NoError(t, err)
	require.Equal(t, msg, *decoded)
}

func TestClassBExtendedRoundTrip(t *testing.T) {
	msg := ClassBExtendedReport{
		MMSI: 338012345, SOG: uint16(EncodeSOG(3)),
		Longitude: EncodeLongitude(-70.0), Latitude: EncodeLatitude(42.0),
		COG: uint16(EncodeCOG(10)), TrueHeading: 45, Timestamp: 5,
		Name: "SAILBOAT B", ShipType: 36,
		Dimensions: Dimensions{ToBow: 8, ToStern: 2, ToPort: 2, ToStarboard: 2},
		EPFD:       1,
	}
	bits, err := EncodeClassBExtendedReport(msg)
	require.NoError(t, err)
	require.Len(t, bits, 312)
	decoded, err := DecodeClassBExtendedReport(bits)
	require.NoError(t, err)
	require.Equal(t, msg, *decoded)
}

func TestAidToNavigationRoundTrip(t *testing.T) {
	msg := AidToNavigationReport{
		MMSI: 993672001, AidType: 1, Name: "SEA BUOY",
		Longitude: EncodeLongitude(-122.5), Latitude: EncodeLatitude(37.7),
		Dimensions: Dimensions{ToBow: 1, ToStern: 1, ToPort: 1, ToStarboard: 1},
		EPFD:       0, Timestamp: 60, VirtualAid: true,
	}
	bits, err := EncodeAidToNavigationReport(msg)
	require.NoError(t, err)
	decoded, err := DecodeAidToNavigationReport(bits)
	require.NoError(t, err)
	require.Equal(t, msg.MMSI, decoded.MMSI)
	require.Equal(t, msg.Name, decoded.Name)
	require.Equal(t, msg.VirtualAid, decoded.VirtualAid)
}

func TestStaticDataReportsRoundTrip(t *testing.T) {
	a := StaticDataReportA{MMSI: 338012345, Name: "TUG ALPHA"}
	bitsA, err := EncodeStaticDataReportA(a)
	require.NoError(t, err)
	require.Len(t, bitsA, 160)
	decodedA, err := DecodeStaticDataReportA(bitsA)
	require.NoError(t, err)
	require.Equal(t, a, *decodedA)

	b := StaticDataReportB{
		MMSI: 338012345, ShipType: 52, VendorID: "ACME01", Callsign: "WDH9988",
		Dimensions: Dimensions{ToBow: 5, ToStern: 5, ToPort: 3, ToStarboard: 3},
	}
	bitsB, err := EncodeStaticDataReportB(b)
	require.NoError(t, err)
	require.Len(t, bitsB, 168)
	decodedB, err := DecodeStaticDataReportB(bitsB, false)
	require.NoError(t, err)
	require.Equal(t, b, *decodedB)
}

func TestRateOfTurnRoundTripsApproximately(t *testing.T) {
	for _, deg := range []float64{0, 10, -10, 90, -90} {
		encoded := EncodeRateOfTurn(deg)
		decoded := DecodeRateOfTurn(encoded)
		require.InDelta(t, deg, decoded, 6, "rot=%v", deg)
	}
}

func TestRateOfTurnClampsToMaxEncodedRange(t *testing.T) {
	require.EqualValues(t, 126, EncodeRateOfTurn(720))
	require.EqualValues(t, -126, EncodeRateOfTurn(-720))
}
