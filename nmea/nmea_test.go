package nmea

import (
	"testing"

	"github.com/goblimey/nmeasim/ais"
	"github.com/goblimey/nmeasim/bitstream"
	"github.com/stretchr/testify/require"
)

// TestGGAFormatting checks a fixed GGA field set formats to the exact
// expected sentence text.
func TestGGAFormatting(t *testing.T) {
	g := GGA{
		TalkerID:   "GP",
		Hour:       4, Minute: 43, Second: 57, Millis: 944,
		Latitude:   37.8046517,
		Longitude:  -122.4054417,
		FixQuality: 1,
		Satellites: 8,
		HDOP:       1.2,
		AltitudeM:  0.0,
		GeoidSepM:  19.6,
	}
	got := g.Format()
	want := "$GPGGA,044357.944,3748.2791,N,12224.3265,W,1,08,1.2,0.0,M,19.6,M,,*"
	require.Contains(t, got, want)
	require.Regexp(t, `\*[0-9A-F]{2}\r\n$`, got)
}

func TestGGARoundTrip(t *testing.T) {
	g := GGA{
		TalkerID: "GP", Hour: 12, Minute: 0, Second: 0, Millis: 500,
		Latitude: -33.865, Longitude: 151.209,
		FixQuality: 2, Satellites: 11, HDOP: 0.8, AltitudeM: 42.3, GeoidSepM: 21.1,
	}
	line := g.Format()
	s, err := Parse(line)
	require.NoError(t, err)
	got, err := ParseGGA(s)
	require.NoError(t, err)
	require.InDelta(t, g.Latitude, got.Latitude, 0.0001)
	require.InDelta(t, g.Longitude, got.Longitude, 0.0001)
	require.Equal(t, g.FixQuality, got.FixQuality)
	require.Equal(t, g.Satellites, got.Satellites)
}

func TestRMCRoundTrip(t *testing.T) {
	r := RMC{
		TalkerID: "GP", Hour: 23, Minute: 59, Second: 1, Millis: 0,
		Active:    true,
		Latitude:  48.8566, Longitude: 2.3522,
		SOGKnots:  15.4, COGDegrees: 271.3,
		Day: 29, Month: 7, Year: 2026,
		MagVar: -1.2, ModeIndicator: "A",
	}
	line := r.Format()
	s, err := Parse(line)
	require.NoError(t, err)
	got, err := ParseRMC(s)
	require.NoError(t, err)
	require.True(t, got.Active)
	require.InDelta(t, r.Latitude, got.Latitude, 0.0001)
	require.InDelta(t, r.Longitude, got.Longitude, 0.0001)
	require.InDelta(t, r.SOGKnots, got.SOGKnots, 0.01)
	require.InDelta(t, r.MagVar, got.MagVar, 0.01)
	require.Equal(t, 2026, got.Year)
	require.Equal(t, "A", got.ModeIndicator)
}

func TestParseRejectsBadChecksum(t *testing.T) {
	_, err := Parse("$GPGGA,044357.944,3748.2791,N,12224.3265,W,1,08,1.2,0.0,M,19.6,M,,*00\r\n")
	require.Error(t, err)
	require.Contains(t, err.Error(), "checksum mismatch")
}

func TestParseRejectsMissingFraming(t *testing.T) {
	_, err := Parse("GPGGA,044357.944*00\r\n")
	require.Error(t, err)
}

// TestAIVDMRoundTrip exercises the §8 #2 scenario end to end: encode a type
// 1 position report, fragment it (it fits in a single fragment), wrap it in
// an AIVDM sentence, parse the sentence back, and decode the payload.
func TestAIVDMRoundTrip(t *testing.T) {
	msg := ais.PositionReport{
		MMSI: 367001234, NavStatus: 0, SOG: uint16(ais.EncodeSOG(12.3)),
		Longitude: ais.EncodeLongitude(-122.4), Latitude: ais.EncodeLatitude(37.8),
		COG: uint16(ais.EncodeCOG(90.0)), TrueHeading: 90, Timestamp: 30,
	}
	bits, err := ais.EncodePositionReport(msg)
	require.NoError(t, err)
	payload, fill := bitstream.Armor(bits)
	require.NotEmpty(t, payload)

	fragments := ais.Fragments(payload, fill, ais.MaxFragmentPayloadChars(82), &ais.GroupSequencer{})
	require.Len(t, fragments, 1)

	line := FormatAIVDM(fragments[0], 'A')
	require.LessOrEqual(t, len(line), 82) // the 82-char line limit includes the trailing CRLF

	s, err := Parse(line)
	require.NoError(t, err)
	parsed, err := ParseAIVDM(s)
	require.NoError(t, err)
	require.Equal(t, byte('A'), parsed.Channel)
	require.Equal(t, 1, parsed.Count)
	require.Equal(t, 1, parsed.Index)

	decodedBits, err := ais.ReassembleFragments([]ais.Fragment{{
		Count: parsed.Count, Index: parsed.Index, GroupID: parsed.GroupID,
		Payload: parsed.Payload, Fill: parsed.Fill,
	}})
	require.NoError(t, err)
	decoded, err := ais.DecodePositionReport(decodedBits)
	require.NoError(t, err)
	require.Equal(t, msg.MMSI, decoded.MMSI)
	require.EqualValues(t, 123, decoded.SOG)
}
