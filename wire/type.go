// Package wire implements the OmniLogic UDP message codec: the 24-byte
// big-endian header, the message type registry, the XML request envelope, and
// the lead/block fragmentation scheme used by the controller for large
// responses, including zlib payload inflation.
//
// The framing observed on the local network is a fixed header followed by a
// null-terminated XML body. Large responses arrive as an MSPLeadMessage
// announcing a block count, followed by MSPBlockMessage fragments that carry
// an 8-byte relay header ahead of their payload slice.
package wire

// Type identifies an OmniLogic message type. The numeric values are the
// operation IDs the controller speaks on UDP port 10444.
type Type uint32

const (
	// TypeXMLAck is the XML-level acknowledgement, also used when sending acks.
	TypeXMLAck Type = 0
	// TypeRequestConfiguration asks the controller for its MSP configuration.
	TypeRequestConfiguration Type = 1
	// TypeSetFilterSpeed adjusts a variable speed filter pump.
	TypeSetFilterSpeed Type = 9
	// TypeSetHeaterCommand sets a heater target temperature.
	TypeSetHeaterCommand Type = 11
	// TypeSetSuperchlorinate toggles superchlorination.
	TypeSetSuperchlorinate Type = 15
	// TypeRequestLogConfig asks for the controller logging configuration.
	TypeRequestLogConfig Type = 31
	// TypeSetSolarSetPoint sets a solar heater set point.
	TypeSetSolarSetPoint Type = 40
	// TypeSetHeaterMode selects heat, cool or auto operation.
	TypeSetHeaterMode Type = 42
	// TypeSetChlorEnabled enables or disables a chlorinator.
	TypeSetChlorEnabled Type = 121
	// TypeSetHeaterEnabled enables or disables a heater.
	TypeSetHeaterEnabled Type = 147
	// TypeSetChlorParams updates chlorinator operating parameters.
	TypeSetChlorParams Type = 155
	// TypeSetEquipment is the generic equipment on/off command.
	TypeSetEquipment Type = 164
	// TypeCreateSchedule adds an equipment schedule.
	TypeCreateSchedule Type = 230
	// TypeDeleteSchedule removes an equipment schedule.
	TypeDeleteSchedule Type = 231
	// TypeEditSchedule modifies an existing equipment schedule.
	TypeEditSchedule Type = 232
	// TypeGetTelemetry asks the controller for a telemetry snapshot.
	TypeGetTelemetry Type = 300
	// TypeGetAlarmList asks the controller for active alarms.
	TypeGetAlarmList Type = 304
	// TypeSetStandaloneLightShow configures a color light show.
	TypeSetStandaloneLightShow Type = 308
	// TypeSetSpillover sets spillover operation for a body of water.
	TypeSetSpillover Type = 311
	// TypeRunGroupCommand runs a configured equipment group.
	TypeRunGroupCommand Type = 317
	// TypeRestoreIdleState cancels manual overrides.
	TypeRestoreIdleState Type = 340
	// TypeGetFilterDiagnostics asks for filter pump diagnostics.
	TypeGetFilterDiagnostics Type = 386
	// TypeHandshake is the session handshake.
	TypeHandshake Type = 1000
	// TypeAck is the transport-level acknowledgement sent by the controller.
	TypeAck Type = 1002
	// TypeMSPConfigurationUpdate carries the MSP configuration document.
	TypeMSPConfigurationUpdate Type = 1003
	// TypeMSPTelemetryUpdate carries a telemetry snapshot. Its payload is
	// always zlib-compressed even when the header flag reads zero.
	TypeMSPTelemetryUpdate Type = 1004
	// TypeMSPLeadMessage announces a fragmented response.
	TypeMSPLeadMessage Type = 1998
	// TypeMSPBlockMessage carries one fragment of a fragmented response.
	TypeMSPBlockMessage Type = 1999
)

// IsAck reports whether t is one of the acknowledgement types.
func (t Type) IsAck() bool {
	return t == TypeAck || t == TypeXMLAck
}

// String returns a readable name for the message type.
func (t Type) String() string {
	switch t {
	case TypeXMLAck:
		return "XMLAck"
	case TypeRequestConfiguration:
		return "RequestConfiguration"
	case TypeSetFilterSpeed:
		return "SetFilterSpeed"
	case TypeSetHeaterCommand:
		return "SetHeaterCommand"
	case TypeSetSuperchlorinate:
		return "SetSuperchlorinate"
	case TypeRequestLogConfig:
		return "RequestLogConfig"
	case TypeSetSolarSetPoint:
		return "SetSolarSetPoint"
	case TypeSetHeaterMode:
		return "SetHeaterMode"
	case TypeSetChlorEnabled:
		return "SetChlorEnabled"
	case TypeSetHeaterEnabled:
		return "SetHeaterEnabled"
	case TypeSetChlorParams:
		return "SetChlorParams"
	case TypeSetEquipment:
		return "SetEquipment"
	case TypeCreateSchedule:
		return "CreateSchedule"
	case TypeDeleteSchedule:
		return "DeleteSchedule"
	case TypeEditSchedule:
		return "EditSchedule"
	case TypeGetTelemetry:
		return "GetTelemetry"
	case TypeGetAlarmList:
		return "GetAlarmList"
	case TypeSetStandaloneLightShow:
		return "SetStandaloneLightShow"
	case TypeSetSpillover:
		return "SetSpillover"
	case TypeRunGroupCommand:
		return "RunGroupCommand"
	case TypeRestoreIdleState:
		return "RestoreIdleState"
	case TypeGetFilterDiagnostics:
		return "GetFilterDiagnostics"
	case TypeHandshake:
		return "Handshake"
	case TypeAck:
		return "Ack"
	case TypeMSPConfigurationUpdate:
		return "MSPConfigurationUpdate"
	case TypeMSPTelemetryUpdate:
		return "MSPTelemetryUpdate"
	case TypeMSPLeadMessage:
		return "MSPLeadMessage"
	case TypeMSPBlockMessage:
		return "MSPBlockMessage"
	default:
		return "Unknown"
	}
}

// ClientType identifies the sender class in the message header.
type ClientType uint8

const (
	// ClientXML marks messages that carry an XML body.
	ClientXML ClientType = 0
	// ClientSimple marks messages without a body.
	ClientSimple ClientType = 1
	// ClientOmni marks messages originated by the controller itself.
	ClientOmni ClientType = 3
)
