package bitstream

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppendUintRangeBoundaries(t *testing.T) {
	var testData = []struct {
		value     uint64
		width     uint
		wantError bool
	}{
		{0, 4, false},
		{15, 4, false},
		{16, 4, true},
		{1023, 10, false},
		{1024, 10, true},
	}

	for _, td := range testData {
		w := NewWriter()
		err := w.AppendUint(td.value, td.width)
		if td.wantError {
			require.Error(t, err)
		} else {
			require.NoError(t, err)
		}
	}
}

func TestAppendIntRangeBoundaries(t *testing.T) {
	var testData = []struct {
		value     int64
		width     uint
		wantError bool
	}{
		{-128, 8, false},
		{127, 8, false},
		{-129, 8, true},
		{128, 8, true},
	}

	for _, td := range testData {
		w := NewWriter()
		err := w.AppendInt(td.value, td.width)
		if td.wantError {
			require.Error(t, err)
		} else {
			require.NoError(t, err)
		}
	}
}

func TestUintRoundTrip(t *testing.T) {
	var testData = []struct {
		value uint64
		width uint
	}{
		{0, 1}, {1, 1}, {0, 30}, {1<<30 - 1, 30}, {511, 9},
	}

	for _, td := range testData {
		w := NewWriter()
		require.NoError(t, w.AppendUint(td.value, td.width))
		r := NewReader(w.Bits())
		got, err := r.ReadUint(td.width)
		require.NoError(t, err)
		require.Equal(t, td.value, got)
	}
}

func TestIntRoundTrip(t *testing.T) {
	var testData = []struct {
		value int64
		width uint
	}{
		{0, 8}, {-1, 8}, {127, 8}, {-128, 8}, {-73440000, 28}, {0, 1},
	}

	for _, td := range testData {
		w := NewWriter()
		require.NoError(t, w.AppendInt(td.value, td.width))
		r := NewReader(w.Bits())
		got, err := r.ReadInt(td.width)
		require.NoError(t, err)
		require.Equal(t, td.value, got)
	}
}

func TestAppendStringPadsAndMapsUnknown(t *testing.T) {
	w := NewWriter()
	require.NoError(t, w.AppendString("AB", 4))
	r := NewReader(w.Bits())
	got, err := r.ReadString(4)
	require.NoError(t, err)
	require.Equal(t, "AB", got)

	w2 := NewWriter()
	require.NoError(t, w2.AppendString("a~b", 3))
	r2 := NewReader(w2.Bits())
	got2, err := r2.ReadString(3)
	require.NoError(t, err)
	require.Equal(t, "A?B", got2)
}

// TestArmorValue63MapsToW checks the M.1371 mapping for the top of the
// 6-bit range: 63 armors to 'w' (63+56=119), not '?'.
func TestArmorValue63MapsToW(t *testing.T) {
	bits := []bool{true, true, true, true, true, true}
	payload, fill := Armor(bits)
	require.Equal(t, "w", payload)
	require.Equal(t, 0, fill)
}

func TestArmorFillBitsComputation(t *testing.T) {
	var testData = []struct {
		nbits    int
		wantFill int
	}{
		{6, 0}, {7, 5}, {12, 0}, {424, 2}, {168, 0},
	}
	for _, td := range testData {
		bits := make([]bool, td.nbits)
		_, fill := Armor(bits)
		require.Equal(t, td.wantFill, fill)
	}
}

func TestArmorDearmorRoundTrip(t *testing.T) {
	w := NewWriter()
	require.NoError(t, w.AppendUint(0x1F, 5))
	require.NoError(t, w.AppendInt(-12345, 20))
	require.NoError(t, w.AppendString("CALLSIGN", 7))
	original := w.Bits()

	payload, fill := Armor(original)
	decoded, err := Dearmor(payload, fill)
	require.NoError(t, err)
	require.Equal(t, original, decoded)
}

func TestDearmorRejectsInvalidCharacter(t *testing.T) {
	_, err := Dearmor(string([]byte{127}), 0)
	require.Error(t, err)
}
