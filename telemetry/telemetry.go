// Package telemetry models the live status document an OmniLogic controller
// returns for RequestTelemetryData and pushes as MSPTelemetryUpdate frames.
//
// Pushed updates are partial. A controller under load omits equipment whose
// state has not changed, so consumers keep a running Telemetry and fold each
// update into it with Merge.
package telemetry

import (
	"encoding/xml"
	"fmt"

	"github.com/poollink/go-omnilogic/omnitypes"
)

// ErrTelemetryFormat indicates a status document that could not be decoded.
var ErrTelemetryFormat = fmt.Errorf("malformed telemetry")

// Flag decodes the controller's 1/0 attribute booleans.
type Flag bool

func (f *Flag) UnmarshalXMLAttr(attr xml.Attr) error {
	*f = attr.Value == "1" || attr.Value == "yes" || attr.Value == "true"
	return nil
}

// Backyard is the controller-wide status element.
type Backyard struct {
	SystemID       int                     `xml:"systemId,attr"`
	StatusVersion  int                     `xml:"statusVersion,attr"`
	AirTemp        int                     `xml:"airTemp,attr"`
	State          omnitypes.BackyardState `xml:"state,attr"`
	ConfigChecksum int                     `xml:"ConfigChksum,attr"`
	MspVersion     string                  `xml:"mspVersion,attr"`
}

// BodyOfWater is the per-pool status element.
type BodyOfWater struct {
	SystemID  int                        `xml:"systemId,attr"`
	WaterTemp int                        `xml:"waterTemp,attr"`
	Flow      int                        `xml:"flow,attr"`
	State     omnitypes.BodyOfWaterState `xml:"state,attr"`
}

// Filter is the filter pump status element.
type Filter struct {
	SystemID      int                           `xml:"systemId,attr"`
	State         omnitypes.FilterState         `xml:"filterState,attr"`
	Speed         int                           `xml:"filterSpeed,attr"`
	ValvePosition omnitypes.FilterValvePosition `xml:"valvePosition,attr"`
	WhyOn         omnitypes.FilterWhyOn         `xml:"whyFilterIsOn,attr"`
	FPOverride    Flag                          `xml:"fpOverride,attr"`
	ReportedSpeed int                           `xml:"reportedFilterSpeed,attr"`
	Power         int                           `xml:"power,attr"`
	LastSpeed     int                           `xml:"lastSpeed,attr"`
}

// ValveActuator is the valve actuator status element.
type ValveActuator struct {
	SystemID int                          `xml:"systemId,attr"`
	State    omnitypes.ValveActuatorState `xml:"valveActuatorState,attr"`
	WhyOn    int                          `xml:"whyOn,attr"`
}

// ColorLogicLight is the color light status element.
type ColorLogicLight struct {
	SystemID      int                            `xml:"systemId,attr"`
	State         omnitypes.ColorLogicPowerState `xml:"lightState,attr"`
	CurrentShow   omnitypes.ColorLogicShow       `xml:"currentShow,attr"`
	Speed         omnitypes.ColorLogicSpeed      `xml:"speed,attr"`
	Brightness    omnitypes.ColorLogicBrightness `xml:"brightness,attr"`
	SpecialEffect int                            `xml:"specialEffect,attr"`
}

// VirtualHeater is the logical heater status element.
type VirtualHeater struct {
	SystemID      int                  `xml:"systemId,attr"`
	SetPoint      int                  `xml:"Current-Set-Point,attr"`
	Enabled       Flag                 `xml:"enable,attr"`
	SolarSetPoint int                  `xml:"SolarSetPoint,attr"`
	Mode          omnitypes.HeaterMode `xml:"Mode,attr"`
	SilentMode    Flag                 `xml:"SilentMode,attr"`
	WhyOn         int                  `xml:"whyHeaterIsOn,attr"`
}

// Heater is the physical heater status element.
type Heater struct {
	SystemID    int                   `xml:"systemId,attr"`
	State       omnitypes.HeaterState `xml:"heaterState,attr"`
	Temp        int                   `xml:"temp,attr"`
	Enabled     Flag                  `xml:"enable,attr"`
	Priority    string                `xml:"priority,attr"`
	MaintainFor int                   `xml:"maintainFor,attr"`
}

// Pump is the auxiliary pump status element.
type Pump struct {
	SystemID  int                 `xml:"systemId,attr"`
	State     omnitypes.PumpState `xml:"pumpState,attr"`
	Speed     int                 `xml:"pummpSpeed,attr"`
	LastSpeed int                 `xml:"lastSpeed,attr"`
	WhyOn     int                 `xml:"whyOn,attr"`
}

// Relay is the relay status element.
type Relay struct {
	SystemID int                  `xml:"systemId,attr"`
	State    omnitypes.RelayState `xml:"relayState,attr"`
	WhyOn    omnitypes.RelayWhyOn `xml:"whyOn,attr"`
}

// Chlorinator is the chlorinator status element.
type Chlorinator struct {
	SystemID         int                                `xml:"systemId,attr"`
	OperatingState   int                                `xml:"operatingState,attr"`
	Status           int                                `xml:"status,attr"`
	InstantSaltLevel int                                `xml:"instantSaltLevel,attr"`
	AvgSaltLevel     int                                `xml:"avgSaltLevel,attr"`
	Alert            int                                `xml:"chlrAlert,attr"`
	Error            int                                `xml:"chlrError,attr"`
	SCMode           int                                `xml:"scMode,attr"`
	TimedPercent     int                                `xml:"Timed-Percent,attr"`
	OperatingMode    omnitypes.ChlorinatorOperatingMode `xml:"operatingMode,attr"`
}

// CSAD is the chemistry sense and dispense status element.
type CSAD struct {
	SystemID int                  `xml:"systemId,attr"`
	Status   omnitypes.CSADStatus `xml:"status,attr"`
	Mode     omnitypes.CSADMode   `xml:"mode,attr"`
	PH       float64              `xml:"ph,attr"`
	ORP      int                  `xml:"orp,attr"`
}

// Group is the equipment group status element.
type Group struct {
	SystemID int `xml:"systemId,attr"`
	State    int `xml:"groupState,attr"`
}

// Telemetry is one decoded STATUS document.
type Telemetry struct {
	XMLName        xml.Name          `xml:"STATUS"`
	Version        string            `xml:"version,attr"`
	Backyard       *Backyard         `xml:"Backyard"`
	BOWs           []BodyOfWater     `xml:"BodyOfWater"`
	Chlorinators   []Chlorinator     `xml:"Chlorinator"`
	CSADs          []CSAD            `xml:"CSAD"`
	Lights         []ColorLogicLight `xml:"ColorLogic-Light"`
	Filters        []Filter          `xml:"Filter"`
	Groups         []Group           `xml:"Group"`
	Heaters        []Heater          `xml:"Heater"`
	Pumps          []Pump            `xml:"Pump"`
	Relays         []Relay           `xml:"Relay"`
	ValveActuators []ValveActuator   `xml:"ValveActuator"`
	VirtualHeaters []VirtualHeater   `xml:"VirtualHeater"`
}

// Parse decodes a STATUS telemetry document.
func Parse(data []byte) (*Telemetry, error) {
	var t Telemetry
	if err := xml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTelemetryFormat, err)
	}

	return &t, nil
}

// Merge folds a partial update into an existing snapshot and returns the
// combined result. Equipment present in next replaces its prior entry;
// equipment the update omitted carries over from prev unchanged. Neither
// input is modified.
func Merge(prev, next *Telemetry) *Telemetry {
	if prev == nil {
		return next
	}
	if next == nil {
		return prev
	}

	out := &Telemetry{XMLName: next.XMLName, Version: next.Version}
	if out.Version == "" {
		out.Version = prev.Version
	}

	out.Backyard = next.Backyard
	if out.Backyard == nil {
		out.Backyard = prev.Backyard
	}

	out.BOWs = mergeByID(prev.BOWs, next.BOWs, func(v BodyOfWater) int { return v.SystemID })
	out.Chlorinators = mergeByID(prev.Chlorinators, next.Chlorinators, func(v Chlorinator) int { return v.SystemID })
	out.CSADs = mergeByID(prev.CSADs, next.CSADs, func(v CSAD) int { return v.SystemID })
	out.Lights = mergeByID(prev.Lights, next.Lights, func(v ColorLogicLight) int { return v.SystemID })
	out.Filters = mergeByID(prev.Filters, next.Filters, func(v Filter) int { return v.SystemID })
	out.Groups = mergeByID(prev.Groups, next.Groups, func(v Group) int { return v.SystemID })
	out.Heaters = mergeByID(prev.Heaters, next.Heaters, func(v Heater) int { return v.SystemID })
	out.Pumps = mergeByID(prev.Pumps, next.Pumps, func(v Pump) int { return v.SystemID })
	out.Relays = mergeByID(prev.Relays, next.Relays, func(v Relay) int { return v.SystemID })
	out.ValveActuators = mergeByID(prev.ValveActuators, next.ValveActuators, func(v ValveActuator) int { return v.SystemID })
	out.VirtualHeaters = mergeByID(prev.VirtualHeaters, next.VirtualHeaters, func(v VirtualHeater) int { return v.SystemID })

	return out
}

// mergeByID keeps next's entries and appends prev entries whose ID the
// update omitted, preserving prev order for the carried entries.
func mergeByID[T any](prev, next []T, id func(T) int) []T {
	if len(prev) == 0 {
		return next
	}

	seen := make(map[int]struct{}, len(next))
	for _, v := range next {
		seen[id(v)] = struct{}{}
	}

	out := make([]T, 0, len(next)+len(prev))
	out = append(out, next...)
	for _, v := range prev {
		if _, ok := seen[id(v)]; !ok {
			out = append(out, v)
		}
	}

	return out
}

// FilterByID returns the filter with the given system ID, or nil.
func (t *Telemetry) FilterByID(systemID int) *Filter {
	for i := range t.Filters {
		if t.Filters[i].SystemID == systemID {
			return &t.Filters[i]
		}
	}

	return nil
}

// BOWByID returns the body of water with the given system ID, or nil.
func (t *Telemetry) BOWByID(systemID int) *BodyOfWater {
	for i := range t.BOWs {
		if t.BOWs[i].SystemID == systemID {
			return &t.BOWs[i]
		}
	}

	return nil
}

// LightByID returns the light with the given system ID, or nil.
func (t *Telemetry) LightByID(systemID int) *ColorLogicLight {
	for i := range t.Lights {
		if t.Lights[i].SystemID == systemID {
			return &t.Lights[i]
		}
	}

	return nil
}

// VirtualHeaterByID returns the virtual heater with the given system ID,
// or nil.
func (t *Telemetry) VirtualHeaterByID(systemID int) *VirtualHeater {
	for i := range t.VirtualHeaters {
		if t.VirtualHeaters[i].SystemID == systemID {
			return &t.VirtualHeaters[i]
		}
	}

	return nil
}
