package equipment

import (
	"context"
	"fmt"

	"github.com/poollink/go-omnilogic/client"
	"github.com/poollink/go-omnilogic/mspconfig"
	"github.com/poollink/go-omnilogic/omnitypes"
	"github.com/poollink/go-omnilogic/telemetry"
)

// Light wraps one color light.
type Light struct {
	equipmentBase
	cfg mspconfig.Light
}

func newLight(sys *System, cfg *mspconfig.Light) *Light {
	return &Light{
		equipmentBase: equipmentBase{
			sys:      sys,
			systemID: cfg.SystemID,
			bowID:    cfg.BowID,
			kind:     omnitypes.KindColorLogicLight,
			name:     cfg.Name,
		},
		cfg: *cfg,
	}
}

// Model returns the light hardware model.
func (l *Light) Model() omnitypes.ColorLogicLightType { return l.cfg.Type }

// SupportsAnimation reports whether the model honors speed and brightness
// settings. Third-party lights driven through the controller run every show
// at full brightness and 1x speed.
func (l *Light) SupportsAnimation() bool {
	switch l.cfg.Type {
	case omnitypes.LightTypeSAM, omnitypes.LightTypeTwoFive,
		omnitypes.LightTypeFourZero, omnitypes.LightTypeUCL:
		return true
	default:
		return false
	}
}

func (l *Light) entry() *telemetry.ColorLogicLight {
	tel := l.sys.Telemetry()
	if tel == nil {
		return nil
	}

	return tel.LightByID(l.systemID)
}

// State returns the light power state.
func (l *Light) State() omnitypes.ColorLogicPowerState {
	if e := l.entry(); e != nil {
		return e.State
	}

	return omnitypes.LightOff
}

// Show returns the show currently running.
func (l *Light) Show() omnitypes.ColorLogicShow {
	if e := l.entry(); e != nil {
		return e.CurrentShow
	}

	return 0
}

// Speed returns the current animation speed. Models without animation
// support always report 1x.
func (l *Light) Speed() omnitypes.ColorLogicSpeed {
	if !l.SupportsAnimation() {
		return omnitypes.SpeedOneTimes
	}
	if e := l.entry(); e != nil {
		return e.Speed
	}

	return omnitypes.SpeedOneTimes
}

// Brightness returns the current brightness. Models without animation
// support always report full brightness.
func (l *Light) Brightness() omnitypes.ColorLogicBrightness {
	if !l.SupportsAnimation() {
		return omnitypes.BrightnessFull
	}
	if e := l.entry(); e != nil {
		return e.Brightness
	}

	return omnitypes.BrightnessFull
}

// On reports whether the light is lit or powering up.
func (l *Light) On() bool {
	switch l.State() {
	case omnitypes.LightActive, omnitypes.LightFifteenSecsWhite, omnitypes.LightChangingShow:
		return true
	default:
		return false
	}
}

// Ready reports whether the light accepts commands. The power-off,
// show-change, white-hold and cooldown phases reject them.
func (l *Light) Ready() bool {
	return l.backyardReady() && l.entry() != nil && l.State().Settled()
}

func (l *Light) guard() error {
	if l.entry() == nil {
		return fmt.Errorf("%w: no telemetry for light %d", ErrNotInitialized, l.systemID)
	}
	if !l.Ready() {
		return fmt.Errorf("%w: light %d in state %d", ErrNotReady, l.systemID, l.State())
	}

	return nil
}

// TurnOn lights the current show.
func (l *Light) TurnOn(ctx context.Context) error {
	if err := l.guard(); err != nil {
		return err
	}

	if err := l.sys.api.SetEquipment(ctx, l.bowID, l.systemID, 1, client.Schedule{}); err != nil {
		return err
	}
	l.markDirty()

	return nil
}

// TurnOff turns the light off.
func (l *Light) TurnOff(ctx context.Context) error {
	if err := l.guard(); err != nil {
		return err
	}

	if err := l.sys.api.SetEquipment(ctx, l.bowID, l.systemID, 0, client.Schedule{}); err != nil {
		return err
	}
	l.markDirty()

	return nil
}

// SetShow switches the light to a show at the given animation speed and
// brightness. On models without animation support the speed and brightness
// are forced to their fixed values.
func (l *Light) SetShow(
	ctx context.Context,
	show omnitypes.ColorLogicShow,
	speed omnitypes.ColorLogicSpeed,
	brightness omnitypes.ColorLogicBrightness,
) error {
	if err := l.guard(); err != nil {
		return err
	}

	if !l.SupportsAnimation() {
		if speed != omnitypes.SpeedOneTimes {
			l.sys.logger.Warn("light does not support speed control", "model", string(l.cfg.Type))
			speed = omnitypes.SpeedOneTimes
		}
		if brightness != omnitypes.BrightnessFull {
			l.sys.logger.Warn("light does not support brightness control", "model", string(l.cfg.Type))
			brightness = omnitypes.BrightnessFull
		}
	}

	if err := l.sys.api.SetLightShow(ctx, l.bowID, l.systemID, show, speed, brightness, client.Schedule{}); err != nil {
		return err
	}
	l.markDirty()

	return nil
}
