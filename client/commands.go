package client

import (
	"context"

	"github.com/poollink/go-omnilogic/omnitypes"
	"github.com/poollink/go-omnilogic/wire"
)

// Schedule carries the timer parameters shared by the equipment, light,
// spillover and group commands. The zero value means "no timer": the command
// takes effect immediately and does not recur.
type Schedule struct {
	IsCountdownTimer bool
	StartTimeHours   int
	StartTimeMinutes int
	EndTimeHours     int
	EndTimeMinutes   int
	// DaysActive is a bitmask: 1=Monday through 64=Sunday, 127 for all days.
	DaysActive int
	Recurring  bool
}

func (s Schedule) params() []wire.Param {
	return []wire.Param{
		wire.Bool("IsCountDownTimer", s.IsCountdownTimer),
		wire.Int("StartTimeHours", s.StartTimeHours),
		wire.Int("StartTimeMinutes", s.StartTimeMinutes),
		wire.Int("EndTimeHours", s.EndTimeHours),
		wire.Int("EndTimeMinutes", s.EndTimeMinutes),
		wire.Int("DaysActive", s.DaysActive),
		wire.Bool("Recurring", s.Recurring),
	}
}

// SetHeaterTemperature sets the target temperature of a heater, in
// Fahrenheit.
func (c *Client) SetHeaterTemperature(ctx context.Context, poolID, equipmentID, temperature int) error {
	if err := validateID(poolID, "poolID"); err != nil {
		return err
	}
	if err := validateID(equipmentID, "equipmentID"); err != nil {
		return err
	}
	if err := validateTemperature(temperature, "temperature"); err != nil {
		return err
	}

	return c.send(ctx, wire.TypeSetHeaterCommand, "SetUIHeaterCmd",
		wire.Int("poolId", poolID),
		wire.Int("HeaterID", equipmentID).WithAlias("EquipmentID"),
		wire.Int("Temp", temperature).WithUnit("F").WithAlias("Data"),
	)
}

// SetSolarSetPoint sets the solar heater set point, in Fahrenheit.
func (c *Client) SetSolarSetPoint(ctx context.Context, poolID, equipmentID, temperature int) error {
	if err := validateID(poolID, "poolID"); err != nil {
		return err
	}
	if err := validateID(equipmentID, "equipmentID"); err != nil {
		return err
	}
	if err := validateTemperature(temperature, "temperature"); err != nil {
		return err
	}

	return c.send(ctx, wire.TypeSetSolarSetPoint, "SetUISolarSetPointCmd",
		wire.Int("poolId", poolID),
		wire.Int("HeaterID", equipmentID).WithAlias("EquipmentID"),
		wire.Int("Temp", temperature).WithUnit("F").WithAlias("Data"),
	)
}

// SetHeaterMode selects heat, cool or auto operation for a heater.
func (c *Client) SetHeaterMode(ctx context.Context, poolID, equipmentID int, mode omnitypes.HeaterMode) error {
	if err := validateID(poolID, "poolID"); err != nil {
		return err
	}
	if err := validateID(equipmentID, "equipmentID"); err != nil {
		return err
	}
	if !mode.Valid() {
		return invalidEnum("mode", int(mode))
	}

	return c.send(ctx, wire.TypeSetHeaterMode, "SetUIHeaterModeCmd",
		wire.Int("poolId", poolID),
		wire.Int("HeaterID", equipmentID).WithAlias("EquipmentID"),
		wire.Int("Mode", int(mode)).WithAlias("Data"),
	)
}

// SetHeaterEnabled enables or disables a heater without changing its set
// point.
func (c *Client) SetHeaterEnabled(ctx context.Context, poolID, equipmentID int, enabled bool) error {
	if err := validateID(poolID, "poolID"); err != nil {
		return err
	}
	if err := validateID(equipmentID, "equipmentID"); err != nil {
		return err
	}

	return c.send(ctx, wire.TypeSetHeaterEnabled, "SetHeaterEnable",
		wire.Int("poolId", poolID),
		wire.Int("HeaterID", equipmentID).WithAlias("EquipmentID"),
		wire.Bool("Enabled", enabled).WithAlias("Data"),
	)
}

// SetEquipment is the generic equipment command: isOn is 0 to turn off, 1 to
// turn on, or a speed percentage for variable speed equipment.
func (c *Client) SetEquipment(ctx context.Context, poolID, equipmentID, isOn int, sched Schedule) error {
	if err := validateID(poolID, "poolID"); err != nil {
		return err
	}
	if err := validateID(equipmentID, "equipmentID"); err != nil {
		return err
	}
	if err := validateSpeed(isOn, "isOn"); err != nil {
		return err
	}

	params := []wire.Param{
		wire.Int("poolId", poolID),
		wire.Int("equipmentId", equipmentID),
		wire.Int("isOn", isOn).WithAlias("Data"),
	}
	params = append(params, sched.params()...)

	return c.send(ctx, wire.TypeSetEquipment, "SetUIEquipmentCmd", params...)
}

// SetFilterSpeed sets a variable speed filter pump to a speed percentage.
func (c *Client) SetFilterSpeed(ctx context.Context, poolID, equipmentID, speed int) error {
	if err := validateID(poolID, "poolID"); err != nil {
		return err
	}
	if err := validateID(equipmentID, "equipmentID"); err != nil {
		return err
	}
	if err := validateSpeed(speed, "speed"); err != nil {
		return err
	}

	return c.send(ctx, wire.TypeSetFilterSpeed, "SetUIFilterSpeedCmd",
		wire.Int("poolId", poolID),
		wire.Int("FilterID", equipmentID).WithAlias("equipment_id"),
		wire.Int("Speed", speed).WithUnit("RPM").WithAlias("Data"),
	)
}

// SetLightShow configures the show, animation speed and brightness of a
// color light, optionally on a timer.
func (c *Client) SetLightShow(
	ctx context.Context,
	poolID, equipmentID int,
	show omnitypes.ColorLogicShow,
	speed omnitypes.ColorLogicSpeed,
	brightness omnitypes.ColorLogicBrightness,
	sched Schedule,
) error {
	if err := validateID(poolID, "poolID"); err != nil {
		return err
	}
	if err := validateID(equipmentID, "equipmentID"); err != nil {
		return err
	}
	if !show.Valid() {
		return invalidEnum("show", int(show))
	}
	if !speed.Valid() {
		return invalidEnum("speed", int(speed))
	}
	if !brightness.Valid() {
		return invalidEnum("brightness", int(brightness))
	}

	params := []wire.Param{
		wire.Int("poolId", poolID),
		wire.Int("LightID", equipmentID).WithAlias("equipment_id"),
		wire.Byte("Show", uint8(show)),
		wire.Byte("Speed", uint8(speed)),
		wire.Byte("Brightness", uint8(brightness)),
		wire.Byte("Reserved", 0),
	}
	params = append(params, sched.params()...)

	return c.send(ctx, wire.TypeSetStandaloneLightShow, "SetStandAloneLightShow", params...)
}

// SetChlorinatorEnabled enables or disables chlorination for a body of
// water.
func (c *Client) SetChlorinatorEnabled(ctx context.Context, poolID int, enabled bool) error {
	if err := validateID(poolID, "poolID"); err != nil {
		return err
	}

	return c.send(ctx, wire.TypeSetChlorEnabled, "SetCHLOREnable",
		wire.Int("poolId", poolID),
		wire.Bool("Enabled", enabled).WithAlias("Data"),
	)
}

// ChlorinatorParams are the operating parameters for SetChlorinatorParams.
type ChlorinatorParams struct {
	CfgState     uint8
	OpMode       uint8
	BOWType      uint8
	CellType     uint8
	TimedPercent uint8
	// SCTimeout is the superchlorination timeout in hours.
	SCTimeout uint8
	// ORPTimeout is the ORP timeout in hours.
	ORPTimeout uint8
}

// SetChlorinatorParams updates the chlorinator operating parameters.
func (c *Client) SetChlorinatorParams(ctx context.Context, poolID, equipmentID int, p ChlorinatorParams) error {
	if err := validateID(poolID, "poolID"); err != nil {
		return err
	}
	if err := validateID(equipmentID, "equipmentID"); err != nil {
		return err
	}
	if p.TimedPercent > 100 {
		return invalidEnum("timedPercent", int(p.TimedPercent))
	}

	return c.send(ctx, wire.TypeSetChlorParams, "SetCHLORParams",
		wire.Int("poolId", poolID),
		wire.Int("ChlorID", equipmentID).WithAlias("EquipmentID"),
		wire.Byte("CfgState", p.CfgState).WithAlias("Data1"),
		wire.Byte("OpMode", p.OpMode).WithAlias("Data2"),
		wire.Byte("BOWType", p.BOWType).WithAlias("Data3"),
		wire.Byte("CellType", p.CellType).WithAlias("Data4"),
		wire.Byte("TimedPercent", p.TimedPercent).WithAlias("Data5"),
		wire.Byte("SCTimeout", p.SCTimeout).WithUnit("hour").WithAlias("Data6"),
		wire.Byte("ORPTimout", p.ORPTimeout).WithUnit("hour").WithAlias("Data7"),
	)
}

// SetSuperchlorinate starts or stops superchlorination.
func (c *Client) SetSuperchlorinate(ctx context.Context, poolID, equipmentID int, enabled bool) error {
	if err := validateID(poolID, "poolID"); err != nil {
		return err
	}
	if err := validateID(equipmentID, "equipmentID"); err != nil {
		return err
	}

	isOn := uint8(0)
	if enabled {
		isOn = 1
	}

	return c.send(ctx, wire.TypeSetSuperchlorinate, "SetUISuperCHLORCmd",
		wire.Int("poolId", poolID),
		wire.Int("ChlorID", equipmentID).WithAlias("EquipmentID"),
		wire.Byte("IsOn", isOn).WithAlias("Data1"),
	)
}

// RestoreIdleState cancels manual overrides and returns the controller to
// its scheduled operation.
func (c *Client) RestoreIdleState(ctx context.Context) error {
	return c.send(ctx, wire.TypeRestoreIdleState, "RestoreIdleState")
}

// SetSpillover sets spillover speed for a body of water, optionally on a
// timer.
func (c *Client) SetSpillover(ctx context.Context, poolID, speed int, sched Schedule) error {
	if err := validateID(poolID, "poolID"); err != nil {
		return err
	}
	if err := validateSpeed(speed, "speed"); err != nil {
		return err
	}

	params := []wire.Param{
		wire.Int("poolId", poolID),
		wire.Int("Speed", speed),
	}
	params = append(params, sched.params()...)

	return c.send(ctx, wire.TypeSetSpillover, "SetUISpilloverCmd", params...)
}

// SetGroupEnabled runs or stops a configured equipment group.
func (c *Client) SetGroupEnabled(ctx context.Context, groupID int, enabled bool, sched Schedule) error {
	if err := validateID(groupID, "groupID"); err != nil {
		return err
	}

	data := 0
	if enabled {
		data = 1
	}

	params := []wire.Param{
		wire.Int("GroupID", groupID),
		wire.Int("Data", data),
	}
	params = append(params, sched.params()...)

	return c.send(ctx, wire.TypeRunGroupCommand, "RunGroupCmd", params...)
}

// ScheduleEdit describes an edit to an existing controller schedule.
// EquipmentID is the schedule's own system ID from the MSP configuration,
// not the ID of the equipment it controls.
type ScheduleEdit struct {
	EquipmentID int
	// Data is the action value, such as a speed percentage or 1/0.
	Data int
	// ActionID is the command the schedule runs, such as 164 for
	// SetUIEquipmentCmd.
	ActionID         int
	StartTimeHours   int
	StartTimeMinutes int
	EndTimeHours     int
	EndTimeMinutes   int
	DaysActive       int
	IsEnabled        bool
	Recurring        bool
}

// EditSchedule modifies an existing schedule in place. The equipment a
// schedule controls cannot be changed, only its timing and action data.
func (c *Client) EditSchedule(ctx context.Context, edit ScheduleEdit) error {
	if err := validateID(edit.EquipmentID, "equipmentID"); err != nil {
		return err
	}
	if err := validateID(edit.ActionID, "actionID"); err != nil {
		return err
	}

	return c.send(ctx, wire.TypeEditSchedule, "EditUIScheduleCmd",
		wire.Int("EquipmentID", edit.EquipmentID),
		wire.Int("Data", edit.Data),
		wire.Int("ActionID", edit.ActionID),
		wire.Int("StartTimeHours", edit.StartTimeHours),
		wire.Int("StartTimeMinutes", edit.StartTimeMinutes),
		wire.Int("EndTimeHours", edit.EndTimeHours),
		wire.Int("EndTimeMinutes", edit.EndTimeMinutes),
		wire.Int("DaysActive", edit.DaysActive),
		wire.Bool("IsEnabled", edit.IsEnabled),
		wire.Bool("Recurring", edit.Recurring),
	)
}
