// Package equipment maintains a live model of one controller's backyard.
// It joins the parsed MSP configuration tree with current telemetry and
// exposes each piece of equipment as a typed wrapper with guarded control
// methods. Every control method checks initialization, readiness and
// arguments before a single command goes on the wire, and marks the model
// dirty afterwards so callers know the cached state is stale.
package equipment

import (
	"context"

	"github.com/poollink/go-omnilogic/client"
	"github.com/poollink/go-omnilogic/mspconfig"
	"github.com/poollink/go-omnilogic/omnitypes"
	"github.com/poollink/go-omnilogic/telemetry"
)

// API is the subset of client commands the equipment layer drives.
// Satisfied by *client.Client.
type API interface {
	GetConfig(ctx context.Context) (*mspconfig.MSPConfig, error)
	GetTelemetry(ctx context.Context) (*telemetry.Telemetry, error)
	SetEquipment(ctx context.Context, poolID, equipmentID, isOn int, sched client.Schedule) error
	SetFilterSpeed(ctx context.Context, poolID, equipmentID, speed int) error
	SetLightShow(
		ctx context.Context,
		poolID, equipmentID int,
		show omnitypes.ColorLogicShow,
		speed omnitypes.ColorLogicSpeed,
		brightness omnitypes.ColorLogicBrightness,
		sched client.Schedule,
	) error
	SetHeaterTemperature(ctx context.Context, poolID, equipmentID, temperature int) error
	SetSolarSetPoint(ctx context.Context, poolID, equipmentID, temperature int) error
	SetHeaterMode(ctx context.Context, poolID, equipmentID int, mode omnitypes.HeaterMode) error
	SetHeaterEnabled(ctx context.Context, poolID, equipmentID int, enabled bool) error
	SetChlorinatorEnabled(ctx context.Context, poolID int, enabled bool) error
	SetChlorinatorParams(ctx context.Context, poolID, equipmentID int, p client.ChlorinatorParams) error
	SetSuperchlorinate(ctx context.Context, poolID, equipmentID int, enabled bool) error
	SetSpillover(ctx context.Context, poolID, speed int, sched client.Schedule) error
	SetGroupEnabled(ctx context.Context, groupID int, enabled bool, sched client.Schedule) error
}

var _ API = (*client.Client)(nil)

// Equipment is the interface every wrapper in the registry satisfies.
type Equipment interface {
	// SystemID is the controller-assigned ID, unique across the backyard.
	SystemID() int
	// BowID is the owning body of water, zero for backyard equipment.
	BowID() int
	// Kind is the controller's kind string for this equipment.
	Kind() omnitypes.Kind
	// Name is the user-assigned name from the MSP configuration.
	Name() string
	// Ready reports whether the equipment accepts commands right now.
	Ready() bool
}

// equipmentBase carries the identity shared by every wrapper.
type equipmentBase struct {
	sys      *System
	systemID int
	bowID    int
	kind     omnitypes.Kind
	name     string
}

func (e *equipmentBase) SystemID() int        { return e.systemID }
func (e *equipmentBase) BowID() int           { return e.bowID }
func (e *equipmentBase) Kind() omnitypes.Kind { return e.kind }
func (e *equipmentBase) Name() string         { return e.name }

// backyardReady reports whether the controller itself accepts commands.
// Service and configuration modes reject equipment commands outright.
func (e *equipmentBase) backyardReady() bool {
	tel := e.sys.Telemetry()
	return tel != nil && tel.Backyard != nil && tel.Backyard.State.Ready()
}

func (e *equipmentBase) markDirty() {
	e.sys.markDirty()
}
