// Package mspconfig models the MSP configuration document an OmniLogic
// controller returns for RequestConfiguration: the backyard tree of bodies
// of water and their equipment.
//
// The parser is tolerant. Equipment kinds form a closed union, but
// elements outside it are retained as Unknown nodes instead of failing the
// parse, and elements that appear once or many times depending on the pool
// always decode into slices.
package mspconfig

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/poollink/go-omnilogic/omnitypes"
)

// ErrConfigFormat indicates an MSP configuration document that could not be
// decoded.
var ErrConfigFormat = fmt.Errorf("malformed MSP configuration")

// YesNo decodes the controller's yes/no and 1/0 boolean text fields.
type YesNo bool

func (y *YesNo) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var s string
	if err := d.DecodeElement(&s, &start); err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1":
		*y = true
	default:
		*y = false
	}

	return nil
}

// System carries the controller-wide settings block.
type System struct {
	VspSpeedFormat string `xml:"Msp-Vsp-Speed-Format"`
	Units          string `xml:"Units"`
	ConfigVersion  int    `xml:"Msp-Config-Version"`
}

// Sensor is one temperature, flow or chemistry sensor.
type Sensor struct {
	SystemID int                   `xml:"System-Id"`
	Name     string                `xml:"Name"`
	Type     omnitypes.SensorType  `xml:"Type"`
	Units    omnitypes.SensorUnits `xml:"Units"`

	// BowID is the owning body of water, zero for backyard sensors.
	BowID int `xml:"-"`
}

// Filter is one filter pump configuration.
type Filter struct {
	SystemID       int                  `xml:"System-Id"`
	Name           string               `xml:"Name"`
	Type           omnitypes.FilterType `xml:"Filter-Type"`
	MaxPercent     int                  `xml:"Max-Pump-Speed"`
	MinPercent     int                  `xml:"Min-Pump-Speed"`
	MaxRPM         int                  `xml:"Max-Pump-RPM"`
	MinRPM         int                  `xml:"Min-Pump-RPM"`
	PrimingEnabled YesNo                `xml:"Priming-Enabled"`
	LowSpeed       int                  `xml:"Vsp-Low-Pump-Speed"`
	MediumSpeed    int                  `xml:"Vsp-Medium-Pump-Speed"`
	HighSpeed      int                  `xml:"Vsp-High-Pump-Speed"`

	BowID int `xml:"-"`
}

// Relay is one relay configuration.
type Relay struct {
	SystemID int                 `xml:"System-Id"`
	Name     string              `xml:"Name"`
	Type     omnitypes.RelayType `xml:"Type"`
	Function string              `xml:"Function"`

	BowID int `xml:"-"`
}

// Pump is one auxiliary pump configuration.
type Pump struct {
	SystemID int                `xml:"System-Id"`
	Name     string             `xml:"Name"`
	Type     omnitypes.PumpType `xml:"Type"`
	Function string             `xml:"Function"`

	BowID int `xml:"-"`
}

// Light is one color light configuration.
type Light struct {
	SystemID int                           `xml:"System-Id"`
	Name     string                        `xml:"Name"`
	Type     omnitypes.ColorLogicLightType `xml:"Type"`

	BowID int `xml:"-"`
}

// CSAD is one chemistry sense and dispense unit configuration.
type CSAD struct {
	SystemID    int                `xml:"System-Id"`
	Name        string             `xml:"Name"`
	Type        omnitypes.CSADType `xml:"Type"`
	Enabled     YesNo              `xml:"Enabled"`
	TargetValue float64            `xml:"TargetValue"`

	BowID int `xml:"-"`
}

// Chlorinator is one chlorinator configuration.
type Chlorinator struct {
	SystemID     int    `xml:"System-Id"`
	Name         string `xml:"Name"`
	Enabled      YesNo  `xml:"Enabled"`
	TimedPercent int    `xml:"Timed-Percent"`

	BowID int `xml:"-"`
}

// HeaterEquip is one physical heater behind a virtual heater.
type HeaterEquip struct {
	SystemID        int                  `xml:"System-Id"`
	Name            string               `xml:"Name"`
	Type            string               `xml:"Type"`
	HeaterType      omnitypes.HeaterType `xml:"Heater-Type"`
	Enabled         YesNo                `xml:"Enabled"`
	MinFilterSpeed  int                  `xml:"Min-Speed-For-Operation"`
	SensorID        int                  `xml:"Sensor-System-Id"`
	SupportsCooling YesNo                `xml:"SupportsCooling"`

	BowID int `xml:"-"`
}

// operation wraps the Operation list the controller nests heater equipment
// inside; entries other than Heater-Equipment are ignored.
type operation struct {
	HeaterEquipment []HeaterEquip `xml:"Heater-Equipment"`
}

// VirtualHeater is the logical heater of a body of water. It has no name of
// its own; the physical heaters live in its operation list.
type VirtualHeater struct {
	SystemID      int         `xml:"System-Id"`
	Enabled       YesNo       `xml:"Enabled"`
	SetPoint      int         `xml:"Current-Set-Point"`
	SolarSetPoint int         `xml:"SolarSetPoint"`
	MaxTemp       int         `xml:"Max-Settable-Water-Temp"`
	MinTemp       int         `xml:"Min-Settable-Water-Temp"`
	Operations    []operation `xml:"Operation"`

	BowID int `xml:"-"`
}

// HeaterEquipment returns the physical heaters nested in the operation
// list.
func (h *VirtualHeater) HeaterEquipment() []HeaterEquip {
	var out []HeaterEquip
	for _, op := range h.Operations {
		out = append(out, op.HeaterEquipment...)
	}

	return out
}

// Schedule is one controller schedule entry.
type Schedule struct {
	SystemID    int   `xml:"schedule-system-id"`
	BowID       int   `xml:"bow-system-id"`
	EquipmentID int   `xml:"equipment-id"`
	Enabled     YesNo `xml:"enabled"`
	Event       int   `xml:"event"`
	StartHour   int   `xml:"start-hour"`
	StartMinute int   `xml:"start-minute"`
	EndHour     int   `xml:"end-hour"`
	EndMinute   int   `xml:"end-minute"`
	DaysActive  int   `xml:"days-active"`
	Recurring   YesNo `xml:"recurring"`
}

// Group is one configured equipment group.
type Group struct {
	SystemID int    `xml:"System-Id"`
	Name     string `xml:"Name"`
}

// Unknown preserves an equipment element outside the known kind union.
type Unknown struct {
	XMLName  xml.Name
	SystemID int    `xml:"System-Id"`
	Name     string `xml:"Name"`
}

// Kind returns the element name of the unknown node.
func (u Unknown) Kind() omnitypes.Kind {
	return omnitypes.Kind(u.XMLName.Local)
}

// BodyOfWater is one pool or spa with its equipment.
type BodyOfWater struct {
	SystemID    int                       `xml:"System-Id"`
	Name        string                    `xml:"Name"`
	Type        omnitypes.BodyOfWaterType `xml:"Type"`
	Filters     []Filter                  `xml:"Filter"`
	Relays      []Relay                   `xml:"Relay"`
	Pumps       []Pump                    `xml:"Pump"`
	Lights      []Light                   `xml:"ColorLogic-Light"`
	Sensors     []Sensor                  `xml:"Sensor"`
	Chlorinator *Chlorinator              `xml:"Chlorinator"`
	CSADs       []CSAD                    `xml:"CSAD"`
	Heater      *VirtualHeater            `xml:"Heater"`
	Schedules   []Schedule                `xml:"sche"`
	Unknown     []Unknown                 `xml:",any"`
}

// Backyard is the root of the equipment tree.
type Backyard struct {
	SystemID  int           `xml:"System-Id"`
	Name      string        `xml:"Name"`
	Sensors   []Sensor      `xml:"Sensor"`
	BOWs      []BodyOfWater `xml:"Body-of-water"`
	Relays    []Relay       `xml:"Relay"`
	Lights    []Light       `xml:"ColorLogic-Light"`
	Schedules []Schedule    `xml:"sche"`
	Groups    []Group       `xml:"Groups>Group"`
	Unknown   []Unknown     `xml:",any"`
}

// MSPConfig is the parsed configuration document.
type MSPConfig struct {
	XMLName  xml.Name `xml:"MSPConfig"`
	System   System   `xml:"System"`
	Backyard Backyard `xml:"Backyard"`
}

// Parse decodes an MSP configuration document and propagates body-of-water
// ownership down to each piece of equipment. Equipment configured outside
// any body of water stays attached at the backyard with a zero BowID.
func Parse(data []byte) (*MSPConfig, error) {
	var cfg MSPConfig
	if err := xml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigFormat, err)
	}

	for i := range cfg.Backyard.BOWs {
		bow := &cfg.Backyard.BOWs[i]
		propagateBowID(bow, bow.SystemID)
	}

	return &cfg, nil
}

func propagateBowID(bow *BodyOfWater, id int) {
	for i := range bow.Filters {
		bow.Filters[i].BowID = id
	}
	for i := range bow.Relays {
		bow.Relays[i].BowID = id
	}
	for i := range bow.Pumps {
		bow.Pumps[i].BowID = id
	}
	for i := range bow.Lights {
		bow.Lights[i].BowID = id
	}
	for i := range bow.Sensors {
		bow.Sensors[i].BowID = id
	}
	if bow.Chlorinator != nil {
		bow.Chlorinator.BowID = id
	}
	for i := range bow.CSADs {
		bow.CSADs[i].BowID = id
	}
	if bow.Heater != nil {
		bow.Heater.BowID = id
		for i := range bow.Heater.Operations {
			ops := bow.Heater.Operations[i].HeaterEquipment
			for j := range ops {
				ops[j].BowID = id
			}
		}
	}
}

// BOWByID returns the body of water with the given system ID, or nil.
func (c *MSPConfig) BOWByID(systemID int) *BodyOfWater {
	for i := range c.Backyard.BOWs {
		if c.Backyard.BOWs[i].SystemID == systemID {
			return &c.Backyard.BOWs[i]
		}
	}

	return nil
}
