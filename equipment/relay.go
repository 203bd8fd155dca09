package equipment

import (
	"context"
	"fmt"

	"github.com/poollink/go-omnilogic/client"
	"github.com/poollink/go-omnilogic/mspconfig"
	"github.com/poollink/go-omnilogic/omnitypes"
)

// Relay wraps one relay. Valve actuators are wired as relays in the MSP
// configuration but report their state through a separate telemetry
// element.
type Relay struct {
	equipmentBase
	cfg mspconfig.Relay
}

func newRelay(sys *System, cfg *mspconfig.Relay) *Relay {
	kind := omnitypes.KindRelay
	if cfg.Type == omnitypes.RelayValveActuator {
		kind = omnitypes.KindValveActuator
	}

	return &Relay{
		equipmentBase: equipmentBase{
			sys:      sys,
			systemID: cfg.SystemID,
			bowID:    cfg.BowID,
			kind:     kind,
			name:     cfg.Name,
		},
		cfg: *cfg,
	}
}

// Type returns the relay wiring type.
func (r *Relay) Type() omnitypes.RelayType { return r.cfg.Type }

// Function returns the configured relay function, such as a water feature
// or lighting circuit.
func (r *Relay) Function() string { return r.cfg.Function }

// On reports whether the relay is energized.
func (r *Relay) On() bool {
	tel := r.sys.Telemetry()
	if tel == nil {
		return false
	}

	if r.cfg.Type == omnitypes.RelayValveActuator {
		for i := range tel.ValveActuators {
			if tel.ValveActuators[i].SystemID == r.systemID {
				return tel.ValveActuators[i].State != omnitypes.ValveActuatorOff
			}
		}
		return false
	}

	for i := range tel.Relays {
		if tel.Relays[i].SystemID == r.systemID {
			return tel.Relays[i].State != omnitypes.RelayOff
		}
	}

	return false
}

// present reports whether telemetry carries an entry for this relay.
func (r *Relay) present() bool {
	tel := r.sys.Telemetry()
	if tel == nil {
		return false
	}

	if r.cfg.Type == omnitypes.RelayValveActuator {
		for i := range tel.ValveActuators {
			if tel.ValveActuators[i].SystemID == r.systemID {
				return true
			}
		}
		return false
	}

	for i := range tel.Relays {
		if tel.Relays[i].SystemID == r.systemID {
			return true
		}
	}

	return false
}

// Ready reports whether the relay accepts commands.
func (r *Relay) Ready() bool {
	return r.backyardReady() && r.present()
}

func (r *Relay) guard() error {
	if !r.present() {
		return fmt.Errorf("%w: no telemetry for relay %d", ErrNotInitialized, r.systemID)
	}
	if !r.Ready() {
		return fmt.Errorf("%w: relay %d", ErrNotReady, r.systemID)
	}

	return nil
}

// TurnOn energizes the relay.
func (r *Relay) TurnOn(ctx context.Context) error {
	return r.set(ctx, 1)
}

// TurnOff de-energizes the relay.
func (r *Relay) TurnOff(ctx context.Context) error {
	return r.set(ctx, 0)
}

func (r *Relay) set(ctx context.Context, isOn int) error {
	if err := r.guard(); err != nil {
		return err
	}

	if err := r.sys.api.SetEquipment(ctx, r.bowID, r.systemID, isOn, client.Schedule{}); err != nil {
		return err
	}
	r.markDirty()

	return nil
}
