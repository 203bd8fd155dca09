package equipment

import (
	"context"
	"fmt"

	"github.com/poollink/go-omnilogic/client"
	"github.com/poollink/go-omnilogic/mspconfig"
	"github.com/poollink/go-omnilogic/omnitypes"
	"github.com/poollink/go-omnilogic/telemetry"
)

// Group wraps one configured equipment group, a named set of equipment the
// controller runs with a single command.
type Group struct {
	equipmentBase
	cfg mspconfig.Group
}

func newGroup(sys *System, cfg *mspconfig.Group) *Group {
	return &Group{
		equipmentBase: equipmentBase{
			sys:      sys,
			systemID: cfg.SystemID,
			kind:     omnitypes.KindGroup,
			name:     cfg.Name,
		},
		cfg: *cfg,
	}
}

func (g *Group) entry() *telemetry.Group {
	tel := g.sys.Telemetry()
	if tel == nil {
		return nil
	}
	for i := range tel.Groups {
		if tel.Groups[i].SystemID == g.systemID {
			return &tel.Groups[i]
		}
	}

	return nil
}

// On reports whether the group is currently running.
func (g *Group) On() bool {
	e := g.entry()
	return e != nil && e.State != 0
}

// Ready reports whether the group accepts commands.
func (g *Group) Ready() bool {
	return g.backyardReady()
}

func (g *Group) guard() error {
	if g.sys.Telemetry() == nil {
		return fmt.Errorf("%w: no telemetry for group %d", ErrNotInitialized, g.systemID)
	}
	if !g.Ready() {
		return fmt.Errorf("%w: group %d", ErrNotReady, g.systemID)
	}

	return nil
}

// Run starts the group.
func (g *Group) Run(ctx context.Context) error {
	return g.set(ctx, true)
}

// Stop stops the group.
func (g *Group) Stop(ctx context.Context) error {
	return g.set(ctx, false)
}

func (g *Group) set(ctx context.Context, enabled bool) error {
	if err := g.guard(); err != nil {
		return err
	}

	if err := g.sys.api.SetGroupEnabled(ctx, g.systemID, enabled, client.Schedule{}); err != nil {
		return err
	}
	g.markDirty()

	return nil
}
