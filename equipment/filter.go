package equipment

import (
	"context"
	"fmt"

	"github.com/poollink/go-omnilogic/client"
	"github.com/poollink/go-omnilogic/mspconfig"
	"github.com/poollink/go-omnilogic/omnitypes"
	"github.com/poollink/go-omnilogic/telemetry"
)

// SpeedPreset selects one of the three configured filter speed presets.
type SpeedPreset int

const (
	PresetLow SpeedPreset = iota
	PresetMedium
	PresetHigh
)

// Filter wraps one filter pump.
type Filter struct {
	equipmentBase
	cfg mspconfig.Filter
}

func newFilter(sys *System, cfg *mspconfig.Filter) *Filter {
	return &Filter{
		equipmentBase: equipmentBase{
			sys:      sys,
			systemID: cfg.SystemID,
			bowID:    cfg.BowID,
			kind:     omnitypes.KindFilter,
			name:     cfg.Name,
		},
		cfg: *cfg,
	}
}

// Type returns the pump drive type.
func (f *Filter) Type() omnitypes.FilterType { return f.cfg.Type }

// MinPercent returns the lowest settable speed percentage.
func (f *Filter) MinPercent() int { return f.cfg.MinPercent }

// MaxPercent returns the highest settable speed percentage.
func (f *Filter) MaxPercent() int { return f.cfg.MaxPercent }

func (f *Filter) entry() *telemetry.Filter {
	tel := f.sys.Telemetry()
	if tel == nil {
		return nil
	}

	return tel.FilterByID(f.systemID)
}

// State returns the current pump state.
func (f *Filter) State() omnitypes.FilterState {
	if e := f.entry(); e != nil {
		return e.State
	}

	return omnitypes.FilterOff
}

// Speed returns the current speed percentage.
func (f *Filter) Speed() int {
	if e := f.entry(); e != nil {
		return e.Speed
	}

	return 0
}

// LastSpeed returns the speed the pump last ran at.
func (f *Filter) LastSpeed() int {
	if e := f.entry(); e != nil {
		return e.LastSpeed
	}

	return 0
}

// Power returns the reported power draw in watts.
func (f *Filter) Power() int {
	if e := f.entry(); e != nil {
		return e.Power
	}

	return 0
}

// On reports whether the pump is running, including the priming and extend
// states that precede or prolong a run.
func (f *Filter) On() bool {
	switch f.State() {
	case omnitypes.FilterOn, omnitypes.FilterPriming, omnitypes.FilterHeaterExtend,
		omnitypes.FilterCSADExtend, omnitypes.FilterForcePriming, omnitypes.FilterSuperchlorinate:
		return true
	default:
		return false
	}
}

// Ready reports whether the pump accepts commands. Transitional states such
// as priming or cooldown reject them.
func (f *Filter) Ready() bool {
	return f.backyardReady() && f.entry() != nil && f.State().Settled()
}

func (f *Filter) guard() error {
	if f.entry() == nil {
		return fmt.Errorf("%w: no telemetry for filter %d", ErrNotInitialized, f.systemID)
	}
	if !f.Ready() {
		return fmt.Errorf("%w: filter %d in state %d", ErrNotReady, f.systemID, f.State())
	}

	return nil
}

// TurnOn starts the pump at its last used speed.
func (f *Filter) TurnOn(ctx context.Context) error {
	if err := f.guard(); err != nil {
		return err
	}

	speed := f.LastSpeed()
	if speed == 0 {
		speed = f.cfg.HighSpeed
	}

	if err := f.sys.api.SetEquipment(ctx, f.bowID, f.systemID, speed, client.Schedule{}); err != nil {
		return err
	}
	f.markDirty()

	return nil
}

// TurnOff stops the pump.
func (f *Filter) TurnOff(ctx context.Context) error {
	if err := f.guard(); err != nil {
		return err
	}

	if err := f.sys.api.SetEquipment(ctx, f.bowID, f.systemID, 0, client.Schedule{}); err != nil {
		return err
	}
	f.markDirty()

	return nil
}

// SetSpeed sets the pump to a specific speed percentage. Zero turns it off.
func (f *Filter) SetSpeed(ctx context.Context, speed int) error {
	if err := f.guard(); err != nil {
		return err
	}

	if err := f.sys.api.SetFilterSpeed(ctx, f.bowID, f.systemID, speed); err != nil {
		return err
	}
	f.markDirty()

	return nil
}

// RunPreset runs the pump at one of its configured preset speeds.
func (f *Filter) RunPreset(ctx context.Context, preset SpeedPreset) error {
	if err := f.guard(); err != nil {
		return err
	}

	var speed int
	switch preset {
	case PresetLow:
		speed = f.cfg.LowSpeed
	case PresetMedium:
		speed = f.cfg.MediumSpeed
	case PresetHigh:
		speed = f.cfg.HighSpeed
	default:
		return fmt.Errorf("%w: unknown speed preset %d", client.ErrValidation, preset)
	}

	if err := f.sys.api.SetEquipment(ctx, f.bowID, f.systemID, speed, client.Schedule{}); err != nil {
		return err
	}
	f.markDirty()

	return nil
}
