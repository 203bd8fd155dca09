package equipment

import (
	"github.com/poollink/go-omnilogic/mspconfig"
	"github.com/poollink/go-omnilogic/omnitypes"
	"github.com/poollink/go-omnilogic/telemetry"
)

// Backyard is the controller-wide equipment wrapper.
type Backyard struct {
	equipmentBase
}

func newBackyard(sys *System, cfg *mspconfig.Backyard) *Backyard {
	return &Backyard{equipmentBase: equipmentBase{
		sys:      sys,
		systemID: cfg.SystemID,
		kind:     omnitypes.KindBackyard,
		name:     cfg.Name,
	}}
}

func (b *Backyard) entry() *telemetry.Backyard {
	tel := b.sys.Telemetry()
	if tel == nil {
		return nil
	}

	return tel.Backyard
}

// State returns the controller operating mode.
func (b *Backyard) State() omnitypes.BackyardState {
	if e := b.entry(); e != nil {
		return e.State
	}

	return omnitypes.BackyardOff
}

// AirTemp returns the outside air temperature in the configured units.
func (b *Backyard) AirTemp() int {
	if e := b.entry(); e != nil {
		return e.AirTemp
	}

	return 0
}

// MspVersion returns the controller firmware version string.
func (b *Backyard) MspVersion() string {
	if e := b.entry(); e != nil {
		return e.MspVersion
	}

	return ""
}

// Ready reports whether the controller accepts equipment commands.
func (b *Backyard) Ready() bool {
	return b.entry() != nil && b.State().Ready()
}
