// Package nmea formats and parses NMEA 0183 sentences: GGA and RMC fix
// reports, and the !AIVDM encapsulation of AIS payloads.
package nmea

import (
	"fmt"
	"strconv"
	"strings"
)

// Checksum computes the NMEA XOR checksum over body, which must be the
// bytes strictly between the leading '$'/'!' and the trailing '*'.
func Checksum(body string) byte {
	var cs byte
	for i := 0; i < len(body); i++ {
		cs ^= body[i]
	}
	return cs
}

// format assembles a complete sentence from a header (e.g. "GPGGA" or
// "AIVDM") and its comma-separated fields, computing and appending the
// checksum.
func format(header string, fields ...string) string {
	body := header + "," + strings.Join(fields, ",")
	cs := Checksum(body)
	return fmt.Sprintf("$%s*%02X\r\n", body, cs)
}

// formatBang is format but framed with '!', used for the AIVDM encapsulation
// sentence per §4.4.
func formatBang(header string, fields ...string) string {
	body := header + "," + strings.Join(fields, ",")
	cs := Checksum(body)
	return fmt.Sprintf("!%s*%02X\r\n", body, cs)
}

// Sentence is a parsed, checksum-validated NMEA 0183 line. Header is the
// 5-character talker+type (or AIS source+sentence) identifier, and Fields
// holds the comma-separated fields that followed it, not including the
// checksum.
type Sentence struct {
	Header string
	Fields []string
}

// Parse validates the framing and checksum of one NMEA line and splits it
// into its header and fields. line may or may not include the trailing
// "\r\n". A missing checksum is accepted (per §4.4, sentences produced by
// this simulator always carry one, but malformed third-party input may
// not); a present-but-wrong checksum is rejected.
func Parse(line string) (Sentence, error) {
	line = strings.TrimRight(line, "\r\n")
	if len(line) < 6 {
		return Sentence{}, fmt.Errorf("parse: sentence too short (%d bytes)", len(line))
	}
	if line[0] != '$' && line[0] != '!' {
		return Sentence{}, fmt.Errorf("parse: field 0: expected '$' or '!', got %q", line[0])
	}

	body := line[1:]
	if star := strings.LastIndexByte(body, '*'); star != -1 {
		if star+3 != len(body) {
			return Sentence{}, fmt.Errorf("parse: field -1: malformed checksum suffix %q", body[star:])
		}
		want, err := strconv.ParseUint(body[star+1:], 16, 8)
		if err != nil {
			return Sentence{}, fmt.Errorf("parse: field -1: invalid checksum digits %q", body[star+1:])
		}
		got := Checksum(body[:star])
		if byte(want) != got {
			return Sentence{}, fmt.Errorf("parse: checksum mismatch: sentence says %02X, computed %02X", want, got)
		}
		body = body[:star]
	}

	fields := strings.Split(body, ",")
	if len(fields) < 1 || fields[0] == "" {
		return Sentence{}, fmt.Errorf("parse: field 0: missing header")
	}
	return Sentence{Header: fields[0], Fields: fields[1:]}, nil
}

// field returns fields[i], or a "parse" error naming the missing index.
func field(fields []string, i int, name string) (string, error) {
	if i >= len(fields) {
		return "", fmt.Errorf("parse: field %d (%s): missing", i, name)
	}
	return fields[i], nil
}
