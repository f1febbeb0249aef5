package nmea

import (
	"fmt"
	"strconv"

	"github.com/goblimey/nmeasim/ais"
)

// AIVDM is one radio-channel fragment of an AIS message, encapsulated as an
// NMEA sentence per §4.4: `!AIVDM,<count>,<index>,<group_id>,<channel>,<payload>,<fill>*<cs>`.
type AIVDM struct {
	Count   int
	Index   int
	GroupID string // empty for a single-fragment message
	Channel byte   // 'A' or 'B'
	Payload string
	Fill    int
}

// FormatAIVDM wraps an ais.Fragment for the given radio channel as a
// complete "!AIVDM,...*cs\r\n" sentence.
func FormatAIVDM(f ais.Fragment, channel byte) string {
	return formatBang("AIVDM",
		strconv.Itoa(f.Count),
		strconv.Itoa(f.Index),
		f.GroupID,
		string(channel),
		f.Payload,
		strconv.Itoa(f.Fill),
	)
}

// ParseAIVDM parses the fields of an already-validated AIVDM sentence.
func ParseAIVDM(s Sentence) (AIVDM, error) {
	if s.Header != "AIVDM" && s.Header != "AIVDO" {
		return AIVDM{}, fmt.Errorf("parse: header %q is not an AIVDM/AIVDO sentence", s.Header)
	}
	var a AIVDM

	countField, err := field(s.Fields, 0, "fragment count")
	if err != nil {
		return AIVDM{}, err
	}
	if a.Count, err = strconv.Atoi(countField); err != nil || a.Count < 1 || a.Count > 9 {
		return AIVDM{}, fmt.Errorf("parse: field 0 (fragment count): expected 1-9, got %q", countField)
	}

	indexField, err := field(s.Fields, 1, "fragment index")
	if err != nil {
		return AIVDM{}, err
	}
	if a.Index, err = strconv.Atoi(indexField); err != nil || a.Index < 1 || a.Index > a.Count {
		return AIVDM{}, fmt.Errorf("parse: field 1 (fragment index): expected 1-%d, got %q", a.Count, indexField)
	}

	groupField, err := field(s.Fields, 2, "group id")
	if err != nil {
		return AIVDM{}, err
	}
	if groupField != "" {
		if len(groupField) != 1 || groupField[0] < '0' || groupField[0] > '9' {
			return AIVDM{}, fmt.Errorf("parse: field 2 (group id): expected a single digit or empty, got %q", groupField)
		}
	}
	a.GroupID = groupField

	channelField, err := field(s.Fields, 3, "channel")
	if err != nil {
		return AIVDM{}, err
	}
	if len(channelField) != 1 || (channelField[0] != 'A' && channelField[0] != 'B') {
		return AIVDM{}, fmt.Errorf("parse: field 3 (channel): expected A or B, got %q", channelField)
	}
	a.Channel = channelField[0]

	payload, err := field(s.Fields, 4, "payload")
	if err != nil {
		return AIVDM{}, err
	}
	a.Payload = payload

	fillField, err := field(s.Fields, 5, "fill bits")
	if err != nil {
		return AIVDM{}, err
	}
	if a.Fill, err = strconv.Atoi(fillField); err != nil || a.Fill < 0 || a.Fill > 5 {
		return AIVDM{}, fmt.Errorf("parse: field 5 (fill bits): expected 0-5, got %q", fillField)
	}

	return a, nil
}
