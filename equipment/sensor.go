package equipment

import (
	"github.com/poollink/go-omnilogic/mspconfig"
	"github.com/poollink/go-omnilogic/omnitypes"
)

// Sensor wraps one sensor. Sensors have no control methods; their readings
// surface through the backyard and body of water telemetry.
type Sensor struct {
	equipmentBase
	cfg mspconfig.Sensor
}

func newSensor(sys *System, cfg *mspconfig.Sensor) *Sensor {
	return &Sensor{
		equipmentBase: equipmentBase{
			sys:      sys,
			systemID: cfg.SystemID,
			bowID:    cfg.BowID,
			kind:     omnitypes.KindSensor,
			name:     cfg.Name,
		},
		cfg: *cfg,
	}
}

// Type returns the sensor kind.
func (s *Sensor) Type() omnitypes.SensorType { return s.cfg.Type }

// Units returns the unit of measure the sensor reports in.
func (s *Sensor) Units() omnitypes.SensorUnits { return s.cfg.Units }

// Reading returns the current value for air and water temperature sensors.
// Other sensor kinds have no dedicated telemetry element and report false.
func (s *Sensor) Reading() (int, bool) {
	tel := s.sys.Telemetry()
	if tel == nil {
		return 0, false
	}

	switch s.cfg.Type {
	case omnitypes.SensorAirTemp:
		if tel.Backyard != nil {
			return tel.Backyard.AirTemp, true
		}
	case omnitypes.SensorWaterTemp:
		if bow := tel.BOWByID(s.bowID); bow != nil {
			return bow.WaterTemp, true
		}
	}

	return 0, false
}

// Ready reports whether the sensor has telemetry behind it.
func (s *Sensor) Ready() bool {
	_, ok := s.Reading()
	return ok
}
