package ais

import (
	"sync"

	"github.com/goblimey/nmeasim/bitstream"
)

// Fragment is one armored chunk of an AIS payload, ready to be wrapped in an
// AIVDM sentence. Count and Index are both 1-based; GroupID is empty for a
// single-fragment message and a decimal digit 0-9 otherwise.
type Fragment struct {
	Count   int
	Index   int
	GroupID string
	Payload string
	Fill    int
}

// GroupSequencer allocates the group sequence IDs (0-9) shared by the
// fragments of one multi-part message. A sequencer is scoped to one radio
// channel, per §4.3: each channel counts independently. The simulation
// engine is the sequencer's sole caller (it is the sole producer of
// sentences, per the concurrency model), so the lock here guards against
// incidental concurrent use rather than expected contention.
type GroupSequencer struct {
	mu   sync.Mutex
	next int
}

// Next returns the next group ID, 0-9, wrapping after 9.
func (g *GroupSequencer) Next() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.next
	g.next = (g.next + 1) % 10
	return id
}

// Fragments splits an armored AIS payload into one or more Fragments that
// each fit within maxPayloadChars characters. A payload that already fits
// produces a single fragment with no group ID. Longer payloads are split on
// 6-bit-character boundaries (every boundary is one, since payload
// characters are always whole 6-bit groups), so every fragment but the last
// carries fill=0; only the last fragment carries the message's true fill
// count.
func Fragments(payload string, fill int, maxPayloadChars int, seq *GroupSequencer) []Fragment {
	if len(payload) <= maxPayloadChars {
		return []Fragment{{Count: 1, Index: 1, GroupID: "", Payload: payload, Fill: fill}}
	}

	var chunks []string
	for len(payload) > 0 {
		n := maxPayloadChars
		if n > len(payload) {
			n = len(payload)
		}
		chunks = append(chunks, payload[:n])
		payload = payload[n:]
	}

	groupID := seq.Next()
	fragments := make([]Fragment, len(chunks))
	for i, chunk := range chunks {
		f := Fragment{
			Count:   len(chunks),
			Index:   i + 1,
			GroupID: itoa(groupID),
			Payload: chunk,
		}
		if i == len(chunks)-1 {
			f.Fill = fill
		}
		fragments[i] = f
	}
	return fragments
}

// itoa renders a single decimal digit 0-9 without pulling in strconv for a
// one-character conversion.
func itoa(digit int) string {
	return string(rune('0' + digit))
}

// MaxFragmentPayloadChars computes the per-fragment payload character cap
// from the overall NMEA sentence length limit: the cap is derived from the
// envelope, not hardcoded. envelopeOverhead is the fixed non-payload byte
// count of an AIVDM sentence using the widest count/index/group-id/channel/fill fields
// this simulator emits (all single digits, plus the 2-hex checksum and
// CRLF).
const envelopeOverhead = len("!AIVDM,1,1,0,A,,0*00\r\n")

// MaxFragmentPayloadChars returns the largest payload length, in armored
// characters, that fits in one sentence no longer than maxSentenceLength.
func MaxFragmentPayloadChars(maxSentenceLength int) int {
	max := maxSentenceLength - envelopeOverhead
	if max < 1 {
		max = 1
	}
	return max
}

// ReassembleFragments concatenates the payloads of a complete, ordered set
// of fragments and de-armors the result, stripping the final fragment's
// fill bits. It is the inverse of Fragments, used by tests verifying the
// §8 multi-part round-trip property.
func ReassembleFragments(fragments []Fragment) ([]bool, error) {
	payload := ""
	fill := 0
	for i, f := range fragments {
		payload += f.Payload
		if i == len(fragments)-1 {
			fill = f.Fill
		}
	}
	return bitstream.Dearmor(payload, fill)
}
