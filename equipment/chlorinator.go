package equipment

import (
	"context"
	"fmt"

	"github.com/poollink/go-omnilogic/client"
	"github.com/poollink/go-omnilogic/mspconfig"
	"github.com/poollink/go-omnilogic/omnitypes"
	"github.com/poollink/go-omnilogic/telemetry"
)

// Chlorinator wraps the salt chlorinator of a body of water.
type Chlorinator struct {
	equipmentBase
	cfg mspconfig.Chlorinator
}

func newChlorinator(sys *System, bowID int, cfg *mspconfig.Chlorinator) *Chlorinator {
	return &Chlorinator{
		equipmentBase: equipmentBase{
			sys:      sys,
			systemID: cfg.SystemID,
			bowID:    bowID,
			kind:     omnitypes.KindChlorinator,
			name:     cfg.Name,
		},
		cfg: *cfg,
	}
}

func (c *Chlorinator) entry() *telemetry.Chlorinator {
	tel := c.sys.Telemetry()
	if tel == nil {
		return nil
	}
	for i := range tel.Chlorinators {
		if tel.Chlorinators[i].SystemID == c.systemID {
			return &tel.Chlorinators[i]
		}
	}

	return nil
}

// TimedPercent returns the chlorination output percentage in timed mode.
func (c *Chlorinator) TimedPercent() int {
	if e := c.entry(); e != nil {
		return e.TimedPercent
	}

	return c.cfg.TimedPercent
}

// InstantSaltLevel returns the most recent salt reading in PPM.
func (c *Chlorinator) InstantSaltLevel() int {
	if e := c.entry(); e != nil {
		return e.InstantSaltLevel
	}

	return 0
}

// AverageSaltLevel returns the rolling average salt level in PPM.
func (c *Chlorinator) AverageSaltLevel() int {
	if e := c.entry(); e != nil {
		return e.AvgSaltLevel
	}

	return 0
}

// OperatingMode returns timed or ORP operation.
func (c *Chlorinator) OperatingMode() omnitypes.ChlorinatorOperatingMode {
	if e := c.entry(); e != nil {
		return e.OperatingMode
	}

	return 0
}

// Alert returns the controller's chlorinator alert bits.
func (c *Chlorinator) Alert() int {
	if e := c.entry(); e != nil {
		return e.Alert
	}

	return 0
}

// Ready reports whether the chlorinator accepts commands.
func (c *Chlorinator) Ready() bool {
	return c.backyardReady() && c.entry() != nil
}

func (c *Chlorinator) guard() error {
	if c.entry() == nil {
		return fmt.Errorf("%w: no telemetry for chlorinator %d", ErrNotInitialized, c.systemID)
	}
	if !c.Ready() {
		return fmt.Errorf("%w: chlorinator %d", ErrNotReady, c.systemID)
	}

	return nil
}

// Enable turns chlorination on for the body of water.
func (c *Chlorinator) Enable(ctx context.Context) error {
	return c.setEnabled(ctx, true)
}

// Disable turns chlorination off for the body of water.
func (c *Chlorinator) Disable(ctx context.Context) error {
	return c.setEnabled(ctx, false)
}

func (c *Chlorinator) setEnabled(ctx context.Context, enabled bool) error {
	if err := c.guard(); err != nil {
		return err
	}

	if err := c.sys.api.SetChlorinatorEnabled(ctx, c.bowID, enabled); err != nil {
		return err
	}
	c.markDirty()

	return nil
}

// SetParams reconfigures the chlorinator cell settings and output level.
func (c *Chlorinator) SetParams(ctx context.Context, p client.ChlorinatorParams) error {
	if err := c.guard(); err != nil {
		return err
	}

	if err := c.sys.api.SetChlorinatorParams(ctx, c.bowID, c.systemID, p); err != nil {
		return err
	}
	c.markDirty()

	return nil
}

// Superchlorinate starts or stops a superchlorination cycle.
func (c *Chlorinator) Superchlorinate(ctx context.Context, enabled bool) error {
	if err := c.guard(); err != nil {
		return err
	}

	if err := c.sys.api.SetSuperchlorinate(ctx, c.bowID, c.systemID, enabled); err != nil {
		return err
	}
	c.markDirty()

	return nil
}
