package omnitypes

// FilterType is the filter pump drive type from the MSP configuration.
type FilterType string

const (
	FilterVariableSpeed FilterType = "FMT_VARIABLE_SPEED_PUMP"
	FilterDualSpeed     FilterType = "FMT_DUAL_SPEED"
	FilterSingleSpeed   FilterType = "FMT_SINGLE_SPEED"
)

// HeaterType is the heater equipment type from the MSP configuration.
type HeaterType string

const (
	HeaterGas        HeaterType = "HTR_GAS"
	HeaterHeatPump   HeaterType = "HTR_HEAT_PUMP"
	HeaterSolar      HeaterType = "HTR_SOLAR"
	HeaterElectric   HeaterType = "HTR_ELECTRIC"
	HeaterGeothermal HeaterType = "HTR_GEOTHERMAL"
	HeaterSmart      HeaterType = "HTR_SMART"
)

// PumpType is the auxiliary pump drive type from the MSP configuration.
type PumpType string

const (
	PumpSingleSpeed   PumpType = "PMP_SINGLE_SPEED"
	PumpDualSpeed     PumpType = "PMP_DUAL_SPEED"
	PumpVariableSpeed PumpType = "PMP_VARIABLE_SPEED_PUMP"
)

// RelayType is the relay wiring type from the MSP configuration.
type RelayType string

const (
	RelayValveActuator RelayType = "RLY_VALVE_ACTUATOR"
	RelayHighVoltage   RelayType = "RLY_HIGH_VOLTAGE_RELAY"
	RelayLowVoltage    RelayType = "RLY_LOW_VOLTAGE_RELAY"
)

// BodyOfWaterType distinguishes pools from spas.
type BodyOfWaterType string

const (
	BodyOfWaterPool BodyOfWaterType = "BOW_POOL"
	BodyOfWaterSpa  BodyOfWaterType = "BOW_SPA"
)

// SensorType is the sensor kind from the MSP configuration.
type SensorType string

const (
	SensorAirTemp   SensorType = "SENSOR_AIR_TEMP"
	SensorSolarTemp SensorType = "SENSOR_SOLAR_TEMP"
	SensorWaterTemp SensorType = "SENSOR_WATER_TEMP"
	SensorFlow      SensorType = "SENSOR_FLOW"
	SensorORP       SensorType = "SENSOR_ORP"
	SensorExtInput  SensorType = "SENSOR_EXT_INPUT"
)

// SensorUnits is the unit of measure a sensor reports in.
type SensorUnits string

const (
	UnitsFahrenheit     SensorUnits = "UNITS_FAHRENHEIT"
	UnitsCelsius        SensorUnits = "UNITS_CELSIUS"
	UnitsPPM            SensorUnits = "UNITS_PPM"
	UnitsGramsPerLiter  SensorUnits = "UNITS_GRAMS_PER_LITER"
	UnitsMillivolts     SensorUnits = "UNITS_MILLIVOLTS"
	UnitsNone           SensorUnits = "UNITS_NO_UNITS"
	UnitsActiveInactive SensorUnits = "UNITS_ACTIVE_INACTIVE"
)

// CSADType is the dispensing medium of a chemistry sense and dispense
// unit from the MSP configuration.
type CSADType string

const (
	CSADAcid CSADType = "ACID"
	CSADCO2  CSADType = "CO2"
)

// ColorLogicLightType is the light hardware model from the MSP
// configuration.
type ColorLogicLightType string

const (
	LightTypeUCL      ColorLogicLightType = "COLOR_LOGIC_UCL"
	LightTypeFourZero ColorLogicLightType = "COLOR_LOGIC_4_0"
	LightTypeTwoFive  ColorLogicLightType = "COLOR_LOGIC_2_5"
	LightTypeSAM      ColorLogicLightType = "COLOR_LOGIC_SAM"
	LightTypePentair  ColorLogicLightType = "CL_P_COLOR"
	LightTypeZodiac   ColorLogicLightType = "CL_Z_COLOR"
)
