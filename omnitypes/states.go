package omnitypes

// BackyardState is the controller operating mode reported in telemetry.
type BackyardState int

const (
	BackyardOff BackyardState = iota
	BackyardOn
	BackyardServiceMode
	BackyardConfigMode
	BackyardTimedServiceMode
)

// Ready reports whether the controller accepts equipment commands in this
// state. Service and configuration modes reject them.
func (s BackyardState) Ready() bool {
	switch s {
	case BackyardServiceMode, BackyardConfigMode, BackyardTimedServiceMode:
		return false
	default:
		return true
	}
}

// BodyOfWaterState reports water flow for a body of water.
type BodyOfWaterState int

const (
	BodyOfWaterNoFlow BodyOfWaterState = iota
	BodyOfWaterFlow
)

// FilterState is the filter pump state reported in telemetry.
type FilterState int

const (
	FilterOff FilterState = iota
	FilterOn
	FilterPriming
	FilterWaitingTurnOff
	FilterWaitingTurnOffManual
	FilterHeaterExtend
	FilterCooldown
	FilterSuspend
	FilterCSADExtend
	FilterSuperchlorinate
	FilterForcePriming
	FilterWaitingTurnOffPending
)

// Settled reports whether the filter is in a steady state. Any other state
// is a transition during which commands are rejected.
func (s FilterState) Settled() bool {
	return s == FilterOff || s == FilterOn
}

// FilterValvePosition is the reported valve routing for shared equipment.
type FilterValvePosition int

const (
	ValvePoolOnly FilterValvePosition = iota + 1
	ValveSpaOnly
	ValveSpillover
	ValveLowPrioHeat
	ValveHighPrioHeat
)

// FilterWhyOn explains why the filter pump is currently running.
type FilterWhyOn int

const (
	FilterWhyOff FilterWhyOn = iota
	FilterWhyNoWaterFlow
	FilterWhyCooldown
	FilterWhyPHReduceExtend
	FilterWhyHeaterExtend
	FilterWhyPaused
	FilterWhyValveChanging
	FilterWhyForceHighSpeed
	FilterWhyOffExternalInterlock
	FilterWhySuperchlorinate
	FilterWhyCountdown
	FilterWhyManualOn
	FilterWhyManualSpillover
	FilterWhyTimerSpillover
	FilterWhyTimerOn
	FilterWhyFreezeProtect
)

// HeaterState is the heater run state reported in telemetry.
type HeaterState int

const (
	HeaterOff HeaterState = iota
	HeaterOn
	HeaterPause
)

// HeaterMode selects heating, cooling or automatic operation.
type HeaterMode int

const (
	HeaterModeHeat HeaterMode = iota
	HeaterModeCool
	HeaterModeAuto
)

// Valid reports whether the mode is one the controller accepts.
func (m HeaterMode) Valid() bool {
	return m >= HeaterModeHeat && m <= HeaterModeAuto
}

// ColorLogicPowerState is the light power state reported in telemetry.
type ColorLogicPowerState int

const (
	LightOff              ColorLogicPowerState = 0
	LightPoweringOff      ColorLogicPowerState = 1
	LightChangingShow     ColorLogicPowerState = 3
	LightFifteenSecsWhite ColorLogicPowerState = 4
	LightActive           ColorLogicPowerState = 6
	LightCooldown         ColorLogicPowerState = 7
)

// Settled reports whether the light is in a steady state. Power-off,
// show-change, white-hold and cooldown phases reject commands.
func (s ColorLogicPowerState) Settled() bool {
	switch s {
	case LightPoweringOff, LightChangingShow, LightFifteenSecsWhite, LightCooldown:
		return false
	default:
		return true
	}
}

// PumpState is the auxiliary pump state reported in telemetry.
type PumpState int

const (
	PumpOff PumpState = iota
	PumpOn
)

// RelayState is the relay state reported in telemetry.
type RelayState int

const (
	RelayOff RelayState = iota
	RelayOn
)

// RelayWhyOn explains why a relay is currently energized.
type RelayWhyOn int

const (
	RelayWhyOff RelayWhyOn = iota
	RelayWhyManualOn
	RelayWhyFreezeProtect
	RelayWhyWaitingForInterlock
	RelayWhyPaused
	RelayWhyWaitingForFilter
)

// ValveActuatorState is the valve actuator state reported in telemetry.
type ValveActuatorState int

const (
	ValveActuatorOff ValveActuatorState = iota
	ValveActuatorOn
)

// ChlorinatorOperatingMode selects how the chlorinator doses.
type ChlorinatorOperatingMode int

const (
	ChlorModeDisabled ChlorinatorOperatingMode = iota
	ChlorModeTimed
	ChlorModeORPAuto
	ChlorModeORPTimed
)

// CSADStatus reports whether a chemistry dispenser is dosing.
type CSADStatus int

const (
	CSADNotDispensing CSADStatus = iota
	CSADDispensing
)

// CSADMode is the chemistry dispenser operating mode.
type CSADMode int

const (
	CSADOff CSADMode = iota
	CSADAuto
	CSADForceOn
	CSADMonitoring
	CSADDispensingOff
)
