package equipment

import (
	"context"
	"fmt"

	"github.com/poollink/go-omnilogic/mspconfig"
	"github.com/poollink/go-omnilogic/omnitypes"
	"github.com/poollink/go-omnilogic/telemetry"
)

// Heater wraps the virtual heater of a body of water. The controller
// exposes one logical heater per pool which fans out to the physical
// heater equipment behind it.
type Heater struct {
	equipmentBase
	cfg mspconfig.VirtualHeater
}

func newHeater(sys *System, bowID int, cfg *mspconfig.VirtualHeater) *Heater {
	return &Heater{
		equipmentBase: equipmentBase{
			sys:      sys,
			systemID: cfg.SystemID,
			bowID:    bowID,
			kind:     omnitypes.KindVirtualHeater,
			name:     "Heater",
		},
		cfg: *cfg,
	}
}

// MinSettableTemp returns the lowest accepted set point.
func (h *Heater) MinSettableTemp() int { return h.cfg.MinTemp }

// MaxSettableTemp returns the highest accepted set point.
func (h *Heater) MaxSettableTemp() int { return h.cfg.MaxTemp }

// Equipment returns the physical heaters behind this virtual heater.
func (h *Heater) Equipment() []mspconfig.HeaterEquip { return h.cfg.HeaterEquipment() }

func (h *Heater) entry() *telemetry.VirtualHeater {
	tel := h.sys.Telemetry()
	if tel == nil {
		return nil
	}

	return tel.VirtualHeaterByID(h.systemID)
}

// SetPoint returns the current temperature set point.
func (h *Heater) SetPoint() int {
	if e := h.entry(); e != nil {
		return e.SetPoint
	}

	return h.cfg.SetPoint
}

// SolarSetPoint returns the current solar set point.
func (h *Heater) SolarSetPoint() int {
	if e := h.entry(); e != nil {
		return e.SolarSetPoint
	}

	return h.cfg.SolarSetPoint
}

// Enabled reports whether heating is enabled.
func (h *Heater) Enabled() bool {
	if e := h.entry(); e != nil {
		return bool(e.Enabled)
	}

	return bool(h.cfg.Enabled)
}

// Mode returns the heat, cool or auto operating mode.
func (h *Heater) Mode() omnitypes.HeaterMode {
	if e := h.entry(); e != nil {
		return e.Mode
	}

	return omnitypes.HeaterModeHeat
}

// Heating reports whether any physical heater behind this virtual heater
// is currently running.
func (h *Heater) Heating() bool {
	tel := h.sys.Telemetry()
	if tel == nil {
		return false
	}

	for _, equip := range h.cfg.HeaterEquipment() {
		for i := range tel.Heaters {
			if tel.Heaters[i].SystemID == equip.SystemID && tel.Heaters[i].State == omnitypes.HeaterOn {
				return true
			}
		}
	}

	return false
}

// Ready reports whether the heater accepts commands.
func (h *Heater) Ready() bool {
	return h.backyardReady() && h.entry() != nil
}

func (h *Heater) guard() error {
	if h.entry() == nil {
		return fmt.Errorf("%w: no telemetry for heater %d", ErrNotInitialized, h.systemID)
	}
	if !h.Ready() {
		return fmt.Errorf("%w: heater %d", ErrNotReady, h.systemID)
	}

	return nil
}

// SetTemperature sets the heater set point, in Fahrenheit.
func (h *Heater) SetTemperature(ctx context.Context, temperature int) error {
	if err := h.guard(); err != nil {
		return err
	}

	if err := h.sys.api.SetHeaterTemperature(ctx, h.bowID, h.systemID, temperature); err != nil {
		return err
	}
	h.markDirty()

	return nil
}

// SetSolarSetPoint sets the solar heating set point, in Fahrenheit.
func (h *Heater) SetSolarSetPoint(ctx context.Context, temperature int) error {
	if err := h.guard(); err != nil {
		return err
	}

	if err := h.sys.api.SetSolarSetPoint(ctx, h.bowID, h.systemID, temperature); err != nil {
		return err
	}
	h.markDirty()

	return nil
}

// SetMode selects heat, cool or auto operation.
func (h *Heater) SetMode(ctx context.Context, mode omnitypes.HeaterMode) error {
	if err := h.guard(); err != nil {
		return err
	}

	if err := h.sys.api.SetHeaterMode(ctx, h.bowID, h.systemID, mode); err != nil {
		return err
	}
	h.markDirty()

	return nil
}

// Enable turns heating on without changing the set point.
func (h *Heater) Enable(ctx context.Context) error {
	return h.setEnabled(ctx, true)
}

// Disable turns heating off without changing the set point.
func (h *Heater) Disable(ctx context.Context) error {
	return h.setEnabled(ctx, false)
}

func (h *Heater) setEnabled(ctx context.Context, enabled bool) error {
	if err := h.guard(); err != nil {
		return err
	}

	if err := h.sys.api.SetHeaterEnabled(ctx, h.bowID, h.systemID, enabled); err != nil {
		return err
	}
	h.markDirty()

	return nil
}
