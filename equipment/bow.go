package equipment

import (
	"context"
	"fmt"

	"github.com/poollink/go-omnilogic/client"
	"github.com/poollink/go-omnilogic/mspconfig"
	"github.com/poollink/go-omnilogic/omnitypes"
	"github.com/poollink/go-omnilogic/telemetry"
)

// BodyOfWater wraps one pool or spa.
type BodyOfWater struct {
	equipmentBase
	cfg mspconfig.BodyOfWater
}

func newBodyOfWater(sys *System, cfg *mspconfig.BodyOfWater) *BodyOfWater {
	return &BodyOfWater{
		equipmentBase: equipmentBase{
			sys:      sys,
			systemID: cfg.SystemID,
			bowID:    cfg.SystemID,
			kind:     omnitypes.KindBodyOfWater,
			name:     cfg.Name,
		},
		cfg: *cfg,
	}
}

// Type reports whether this is a pool or a spa.
func (b *BodyOfWater) Type() omnitypes.BodyOfWaterType { return b.cfg.Type }

func (b *BodyOfWater) entry() *telemetry.BodyOfWater {
	tel := b.sys.Telemetry()
	if tel == nil {
		return nil
	}

	return tel.BOWByID(b.systemID)
}

// WaterTemp returns the water temperature, or -1 when no sensor reading is
// available.
func (b *BodyOfWater) WaterTemp() int {
	if e := b.entry(); e != nil {
		return e.WaterTemp
	}

	return -1
}

// HasFlow reports whether water is currently flowing.
func (b *BodyOfWater) HasFlow() bool {
	e := b.entry()
	return e != nil && e.Flow != 0
}

// Ready reports whether the body of water accepts commands.
func (b *BodyOfWater) Ready() bool {
	return b.backyardReady() && b.entry() != nil
}

// SetSpillover sets the spillover speed percentage. Zero stops spillover.
func (b *BodyOfWater) SetSpillover(ctx context.Context, speed int) error {
	if b.entry() == nil {
		return fmt.Errorf("%w: no telemetry for body of water %d", ErrNotInitialized, b.systemID)
	}
	if !b.Ready() {
		return fmt.Errorf("%w: body of water %d", ErrNotReady, b.systemID)
	}

	if err := b.sys.api.SetSpillover(ctx, b.systemID, speed, client.Schedule{}); err != nil {
		return err
	}
	b.markDirty()

	return nil
}
