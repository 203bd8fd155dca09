package wire

import (
	"encoding/xml"
	"fmt"
	"strconv"
)

// XMLNamespace is the namespace of every request document the controller
// accepts.
const XMLNamespace = "http://nextgen.hayward.com/api"

// Param is one <Parameter> element of a request body. The controller
// dispatches on the name and dataType attributes; some commands additionally
// require alias or unit attributes.
type Param struct {
	Name     string `xml:"name,attr"`
	DataType string `xml:"dataType,attr"`
	Alias    string `xml:"alias,attr,omitempty"`
	Unit     string `xml:"unit,attr,omitempty"`
	Value    string `xml:",chardata"`
}

// Int creates an int parameter.
func Int(name string, v int) Param {
	return Param{Name: name, DataType: "int", Value: strconv.Itoa(v)}
}

// Bool creates a bool parameter. The controller reads bool values as "1" and
// "0", not as true and false.
func Bool(name string, v bool) Param {
	value := "0"
	if v {
		value = "1"
	}
	return Param{Name: name, DataType: "bool", Value: value}
}

// Byte creates a byte parameter.
func Byte(name string, v uint8) Param {
	return Param{Name: name, DataType: "byte", Value: strconv.Itoa(int(v))}
}

// Str creates a string parameter.
func Str(name, v string) Param {
	return Param{Name: name, DataType: "string", Value: v}
}

// WithAlias returns a copy of the parameter with the alias attribute set.
func (p Param) WithAlias(alias string) Param {
	p.Alias = alias
	return p
}

// WithUnit returns a copy of the parameter with the unit attribute set.
func (p Param) WithUnit(unit string) Param {
	p.Unit = unit
	return p
}

// Request is the XML envelope for every command sent to the controller.
type Request struct {
	XMLName    xml.Name `xml:"Request"`
	Namespace  string   `xml:"xmlns,attr"`
	Name       string   `xml:"Name"`
	Parameters []Param  `xml:"Parameters>Parameter"`
}

// BuildRequest marshals a command document with the given name and
// parameters.
func BuildRequest(name string, params ...Param) ([]byte, error) {
	req := Request{
		Namespace:  XMLNamespace,
		Name:       name,
		Parameters: params,
	}

	body, err := xml.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal %s request: %w", ErrMessageFormat, name, err)
	}

	return append([]byte(xml.Header), body...), nil
}

// AckBody is the XML body sent with every outgoing acknowledgement.
func AckBody() []byte {
	body, _ := BuildRequest("Ack")
	return body
}
