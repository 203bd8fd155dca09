package equipment

import (
	"github.com/poollink/go-omnilogic/mspconfig"
	"github.com/poollink/go-omnilogic/omnitypes"
	"github.com/poollink/go-omnilogic/telemetry"
)

// CSAD wraps a chemistry sense and dispense unit. The local protocol has
// no CSAD control commands; the wrapper is read-only, dosing is managed
// through the controller itself.
type CSAD struct {
	equipmentBase
	cfg mspconfig.CSAD
}

func newCSAD(sys *System, bowID int, cfg *mspconfig.CSAD) *CSAD {
	return &CSAD{
		equipmentBase: equipmentBase{
			sys:      sys,
			systemID: cfg.SystemID,
			bowID:    bowID,
			kind:     omnitypes.KindCSAD,
			name:     cfg.Name,
		},
		cfg: *cfg,
	}
}

func (c *CSAD) entry() *telemetry.CSAD {
	tel := c.sys.Telemetry()
	if tel == nil {
		return nil
	}
	for i := range tel.CSADs {
		if tel.CSADs[i].SystemID == c.systemID {
			return &tel.CSADs[i]
		}
	}

	return nil
}

// Type returns the dispensing medium, acid or CO2.
func (c *CSAD) Type() omnitypes.CSADType {
	return c.cfg.Type
}

// Enabled reports whether the unit is enabled in the configuration.
func (c *CSAD) Enabled() bool {
	return bool(c.cfg.Enabled)
}

// TargetValue returns the configured pH target.
func (c *CSAD) TargetValue() float64 {
	return c.cfg.TargetValue
}

// PH returns the current pH reading, zero before telemetry arrives.
func (c *CSAD) PH() float64 {
	if e := c.entry(); e != nil {
		return e.PH
	}

	return 0
}

// ORP returns the current oxidation-reduction potential in millivolts.
func (c *CSAD) ORP() int {
	if e := c.entry(); e != nil {
		return e.ORP
	}

	return 0
}

// Mode returns the dispensing mode.
func (c *CSAD) Mode() omnitypes.CSADMode {
	if e := c.entry(); e != nil {
		return e.Mode
	}

	return omnitypes.CSADOff
}

// Dispensing reports whether the unit is currently dosing.
func (c *CSAD) Dispensing() bool {
	if e := c.entry(); e != nil {
		return e.Status == omnitypes.CSADDispensing
	}

	return false
}

// Ready reports whether the unit is reporting telemetry.
func (c *CSAD) Ready() bool {
	return c.backyardReady() && c.entry() != nil
}
