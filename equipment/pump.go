package equipment

import (
	"context"
	"fmt"

	"github.com/poollink/go-omnilogic/client"
	"github.com/poollink/go-omnilogic/mspconfig"
	"github.com/poollink/go-omnilogic/omnitypes"
	"github.com/poollink/go-omnilogic/telemetry"
)

// Pump wraps one auxiliary pump, such as a booster or water feature pump.
type Pump struct {
	equipmentBase
	cfg mspconfig.Pump
}

func newPump(sys *System, cfg *mspconfig.Pump) *Pump {
	return &Pump{
		equipmentBase: equipmentBase{
			sys:      sys,
			systemID: cfg.SystemID,
			bowID:    cfg.BowID,
			kind:     omnitypes.KindPump,
			name:     cfg.Name,
		},
		cfg: *cfg,
	}
}

// Type returns the pump drive type.
func (p *Pump) Type() omnitypes.PumpType { return p.cfg.Type }

func (p *Pump) entry() *telemetry.Pump {
	tel := p.sys.Telemetry()
	if tel == nil {
		return nil
	}
	for i := range tel.Pumps {
		if tel.Pumps[i].SystemID == p.systemID {
			return &tel.Pumps[i]
		}
	}

	return nil
}

// On reports whether the pump is running.
func (p *Pump) On() bool {
	e := p.entry()
	return e != nil && e.State != omnitypes.PumpOff
}

// Speed returns the current speed percentage.
func (p *Pump) Speed() int {
	if e := p.entry(); e != nil {
		return e.Speed
	}

	return 0
}

// LastSpeed returns the speed the pump last ran at.
func (p *Pump) LastSpeed() int {
	if e := p.entry(); e != nil {
		return e.LastSpeed
	}

	return 0
}

// Ready reports whether the pump accepts commands.
func (p *Pump) Ready() bool {
	return p.backyardReady() && p.entry() != nil
}

func (p *Pump) guard() error {
	if p.entry() == nil {
		return fmt.Errorf("%w: no telemetry for pump %d", ErrNotInitialized, p.systemID)
	}
	if !p.Ready() {
		return fmt.Errorf("%w: pump %d", ErrNotReady, p.systemID)
	}

	return nil
}

// TurnOn starts the pump. Variable speed pumps resume their last speed.
func (p *Pump) TurnOn(ctx context.Context) error {
	isOn := 1
	if p.cfg.Type == omnitypes.PumpVariableSpeed {
		if last := p.LastSpeed(); last > 0 {
			isOn = last
		}
	}

	return p.set(ctx, isOn)
}

// TurnOff stops the pump.
func (p *Pump) TurnOff(ctx context.Context) error {
	return p.set(ctx, 0)
}

// SetSpeed sets a variable speed pump to a speed percentage.
func (p *Pump) SetSpeed(ctx context.Context, speed int) error {
	if p.cfg.Type != omnitypes.PumpVariableSpeed {
		return fmt.Errorf("%w: pump %d does not support speed control", client.ErrValidation, p.systemID)
	}

	return p.set(ctx, speed)
}

func (p *Pump) set(ctx context.Context, isOn int) error {
	if err := p.guard(); err != nil {
		return err
	}

	if err := p.sys.api.SetEquipment(ctx, p.bowID, p.systemID, isOn, client.Schedule{}); err != nil {
		return err
	}
	p.markDirty()

	return nil
}
