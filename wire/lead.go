package wire

import (
	"encoding/xml"
	"fmt"
	"strconv"
)

// LeadMessage is the decoded announcement of a fragmented response.
type LeadMessage struct {
	SourceOpID    int
	MsgSize       int
	MsgBlockCount int
	Type          int
}

// leadEnvelope tolerates either Request or Response as the document root;
// the controller has been observed using both.
type leadEnvelope struct {
	XMLName    xml.Name
	Name       string      `xml:"Name"`
	Parameters []leadParam `xml:"Parameters>Parameter"`
}

type leadParam struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

// ParseLeadMessage decodes the XML body of an MSPLeadMessage frame.
func ParseLeadMessage(body []byte) (*LeadMessage, error) {
	var env leadEnvelope
	if err := xml.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: lead message: %w", ErrFragmentation, err)
	}

	lead := &LeadMessage{}
	for _, p := range env.Parameters {
		v, err := strconv.Atoi(p.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: lead parameter %s=%q", ErrFragmentation, p.Name, p.Value)
		}
		switch p.Name {
		case "SourceOpId":
			lead.SourceOpID = v
		case "MsgSize":
			lead.MsgSize = v
		case "MsgBlockCount":
			lead.MsgBlockCount = v
		case "Type":
			lead.Type = v
		}
	}
	if lead.MsgBlockCount <= 0 {
		return nil, fmt.Errorf("%w: lead message announced %d blocks", ErrFragmentation, lead.MsgBlockCount)
	}

	return lead, nil
}
