// Package omnitypes defines the equipment kinds, state enumerations and
// command values spoken by OmniLogic controllers. The numeric and string
// values match the controller's MSP configuration and telemetry documents.
package omnitypes

// Kind is the equipment kind string used by the controller in configuration
// and telemetry documents. The set is closed; documents may still contain
// kinds outside it, which parsers retain as unknown nodes.
type Kind string

const (
	KindBackyard         Kind = "Backyard"
	KindBodyOfWater      Kind = "BodyOfWater"
	KindBodyOfWaterMSP   Kind = "Body-of-water"
	KindChlorinator      Kind = "Chlorinator"
	KindChlorinatorEquip Kind = "Chlorinator-Equipment"
	KindCSAD             Kind = "CSAD"
	KindColorLogicLight  Kind = "ColorLogic-Light"
	KindFavorites        Kind = "Favorites"
	KindFilter           Kind = "Filter"
	KindGroup            Kind = "Group"
	KindGroups           Kind = "Groups"
	KindHeater           Kind = "Heater"
	KindHeaterEquip      Kind = "Heater-Equipment"
	KindPump             Kind = "Pump"
	KindRelay            Kind = "Relay"
	KindSchedule         Kind = "sche"
	KindSensor           Kind = "Sensor"
	KindSystem           Kind = "System"
	KindValveActuator    Kind = "ValveActuator"
	KindVirtualHeater    Kind = "VirtualHeater"
)
