package report

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRingBufferKeepsOrderAndEvictsOldest(t *testing.T) {
	r := NewRingBuffer(3)
	r.Add("S1")
	r.Add("S2")
	r.Add("S3")
	r.Add("S4") // evicts S1

	require.Equal(t, []string{"S2", "S3", "S4"}, r.Recent())
}

func TestRingBufferBelowCapacityReturnsEverything(t *testing.T) {
	r := NewRingBuffer(10)
	r.Add("S1")
	r.Add("S2")

	require.Equal(t, []string{"S1", "S2"}, r.Recent())
}
