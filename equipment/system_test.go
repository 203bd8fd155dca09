package equipment

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/poollink/go-omnilogic/client"
	"github.com/poollink/go-omnilogic/logger"
	"github.com/poollink/go-omnilogic/mspconfig"
	"github.com/poollink/go-omnilogic/omnitypes"
	"github.com/poollink/go-omnilogic/telemetry"
)

const testConfig = `<MSPConfig>
  <System><Msp-Vsp-Speed-Format>Percent</Msp-Vsp-Speed-Format><Units>Standard</Units></System>
  <Backyard>
    <System-Id>0</System-Id>
    <Name>Backyard</Name>
    <Body-of-water>
      <System-Id>7</System-Id>
      <Name>Pool</Name>
      <Type>BOW_POOL</Type>
      <Filter>
        <System-Id>8</System-Id>
        <Name>Filter Pump</Name>
        <Filter-Type>FMT_VARIABLE_SPEED_PUMP</Filter-Type>
        <Max-Pump-Speed>100</Max-Pump-Speed>
        <Min-Pump-Speed>18</Min-Pump-Speed>
        <Vsp-Low-Pump-Speed>40</Vsp-Low-Pump-Speed>
        <Vsp-Medium-Pump-Speed>65</Vsp-Medium-Pump-Speed>
        <Vsp-High-Pump-Speed>100</Vsp-High-Pump-Speed>
      </Filter>
      <ColorLogic-Light>
        <System-Id>10</System-Id>
        <Name>Pool Light</Name>
        <Type>COLOR_LOGIC_UCL</Type>
      </ColorLogic-Light>
      <Relay>
        <System-Id>14</System-Id>
        <Name>Waterfall</Name>
        <Type>RLY_HIGH_VOLTAGE_RELAY</Type>
        <Function>RLY_WATER_FEATURE</Function>
      </Relay>
      <Chlorinator>
        <System-Id>22</System-Id>
        <Name>Chlorinator</Name>
        <Enabled>yes</Enabled>
        <Timed-Percent>40</Timed-Percent>
      </Chlorinator>
      <CSAD>
        <System-Id>25</System-Id>
        <Name>pH Dispenser</Name>
        <Type>ACID</Type>
        <Enabled>yes</Enabled>
        <TargetValue>7.5</TargetValue>
      </CSAD>
      <Heater>
        <System-Id>18</System-Id>
        <Enabled>yes</Enabled>
        <Current-Set-Point>85</Current-Set-Point>
        <Min-Settable-Water-Temp>65</Min-Settable-Water-Temp>
        <Max-Settable-Water-Temp>104</Max-Settable-Water-Temp>
        <Operation>
          <Heater-Equipment>
            <System-Id>19</System-Id>
            <Name>Gas Heater</Name>
            <Heater-Type>HTR_GAS</Heater-Type>
            <Enabled>yes</Enabled>
          </Heater-Equipment>
        </Operation>
      </Heater>
    </Body-of-water>
  </Backyard>
</MSPConfig>`

func statusDoc(backyardState, filterState, filterLastSpeed, checksum int) string {
	return fmt.Sprintf(`<STATUS version="1.11">
  <Backyard systemId="0" statusVersion="11" airTemp="74" state="%d" ConfigChksum="%d" mspVersion="R0408000"/>
  <BodyOfWater systemId="7" waterTemp="82" flow="255"/>
  <Filter systemId="8" filterState="%d" filterSpeed="60" valvePosition="1" whyFilterIsOn="1" lastSpeed="%d" reportedFilterSpeed="3000" power="389"/>
  <ColorLogic-Light systemId="10" lightState="6" currentShow="2" speed="4" brightness="4" specialEffect="0"/>
  <Relay systemId="14" relayState="0" whyOn="0"/>
  <VirtualHeater systemId="18" Current-Set-Point="85" enable="1" SolarSetPoint="90" Mode="0" SilentMode="0" whyHeaterIsOn="1"/>
  <Heater systemId="19" heaterState="1" temp="74" enable="1" priority="PRIORITY_STANDARD" maintainFor="24"/>
  <Chlorinator systemId="22" operatingState="2" operatingMode="1" Timed-Percent="40" scMode="0" instantSaltLevel="2912" avgSaltLevel="3001" chlrAlert="0" chlrError="0" status="4"/>
  <CSAD systemId="25" status="1" mode="1" ph="7.61" orp="652"/>
</STATUS>`, backyardState, checksum, filterState, filterLastSpeed)
}

type command struct {
	name        string
	poolID      int
	equipmentID int
	value       int
}

type mockAPI struct {
	configXML    string
	telemetryXML string

	configErr    error
	telemetryErr error
	commandErr   error

	configCalls    int
	telemetryCalls int
	commands       []command
}

func (m *mockAPI) GetConfig(context.Context) (*mspconfig.MSPConfig, error) {
	m.configCalls++
	if m.configErr != nil {
		return nil, m.configErr
	}

	return mspconfig.Parse([]byte(m.configXML))
}

func (m *mockAPI) GetTelemetry(context.Context) (*telemetry.Telemetry, error) {
	m.telemetryCalls++
	if m.telemetryErr != nil {
		return nil, m.telemetryErr
	}

	return telemetry.Parse([]byte(m.telemetryXML))
}

func (m *mockAPI) record(name string, poolID, equipmentID, value int) error {
	if m.commandErr != nil {
		return m.commandErr
	}
	m.commands = append(m.commands, command{name: name, poolID: poolID, equipmentID: equipmentID, value: value})

	return nil
}

func (m *mockAPI) SetEquipment(_ context.Context, poolID, equipmentID, isOn int, _ client.Schedule) error {
	return m.record("SetEquipment", poolID, equipmentID, isOn)
}

func (m *mockAPI) SetFilterSpeed(_ context.Context, poolID, equipmentID, speed int) error {
	return m.record("SetFilterSpeed", poolID, equipmentID, speed)
}

func (m *mockAPI) SetLightShow(
	_ context.Context,
	poolID, equipmentID int,
	show omnitypes.ColorLogicShow,
	_ omnitypes.ColorLogicSpeed,
	_ omnitypes.ColorLogicBrightness,
	_ client.Schedule,
) error {
	return m.record("SetLightShow", poolID, equipmentID, int(show))
}

func (m *mockAPI) SetHeaterTemperature(_ context.Context, poolID, equipmentID, temperature int) error {
	return m.record("SetHeaterTemperature", poolID, equipmentID, temperature)
}

func (m *mockAPI) SetSolarSetPoint(_ context.Context, poolID, equipmentID, temperature int) error {
	return m.record("SetSolarSetPoint", poolID, equipmentID, temperature)
}

func (m *mockAPI) SetHeaterMode(_ context.Context, poolID, equipmentID int, mode omnitypes.HeaterMode) error {
	return m.record("SetHeaterMode", poolID, equipmentID, int(mode))
}

func (m *mockAPI) SetHeaterEnabled(_ context.Context, poolID, equipmentID int, enabled bool) error {
	return m.record("SetHeaterEnabled", poolID, equipmentID, boolInt(enabled))
}

func (m *mockAPI) SetChlorinatorEnabled(_ context.Context, poolID int, enabled bool) error {
	return m.record("SetChlorinatorEnabled", poolID, 0, boolInt(enabled))
}

func (m *mockAPI) SetChlorinatorParams(_ context.Context, poolID, equipmentID int, _ client.ChlorinatorParams) error {
	return m.record("SetChlorinatorParams", poolID, equipmentID, 0)
}

func (m *mockAPI) SetSuperchlorinate(_ context.Context, poolID, equipmentID int, enabled bool) error {
	return m.record("SetSuperchlorinate", poolID, equipmentID, boolInt(enabled))
}

func (m *mockAPI) SetSpillover(_ context.Context, poolID, speed int, _ client.Schedule) error {
	return m.record("SetSpillover", poolID, 0, speed)
}

func (m *mockAPI) SetGroupEnabled(_ context.Context, groupID int, enabled bool, _ client.Schedule) error {
	return m.record("SetGroupEnabled", 0, groupID, boolInt(enabled))
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func newTestSystem(t *testing.T) (*System, *mockAPI) {
	t.Helper()
	api := &mockAPI{
		configXML:    testConfig,
		telemetryXML: statusDoc(1, 1, 60, 2211),
	}

	mockLogger := logger.NewMockLogger()
	mockLogger.On("Debug", mock.Anything, mock.Anything).Return()
	mockLogger.On("Info", mock.Anything, mock.Anything).Return()
	mockLogger.On("Warn", mock.Anything, mock.Anything).Return()
	mockLogger.On("Error", mock.Anything, mock.Anything).Return()

	return NewSystem(api, mockLogger), api
}

func TestRefreshBuildsIndex(t *testing.T) {
	sys, api := newTestSystem(t)

	require.NoError(t, sys.Refresh(context.Background()))
	assert.Equal(t, 1, api.configCalls)
	assert.Equal(t, 1, api.telemetryCalls)

	require.NotNil(t, sys.Backyard())
	assert.Equal(t, 74, sys.Backyard().AirTemp())

	bows := sys.BodiesOfWater()
	require.Len(t, bows, 1)
	assert.Equal(t, "Pool", bows[0].Name())
	assert.Equal(t, 82, bows[0].WaterTemp())

	filters := sys.Filters()
	require.Len(t, filters, 1)
	assert.Equal(t, 7, filters[0].BowID())
	assert.True(t, filters[0].On())

	require.Len(t, sys.Lights(), 1)
	require.Len(t, sys.Relays(), 1)
	require.Len(t, sys.Chlorinators(), 1)
	require.Len(t, sys.CSADs(), 1)
	require.Len(t, sys.Heaters(), 1)

	e, ok := sys.ByID(8)
	require.True(t, ok)
	assert.Equal(t, omnitypes.KindFilter, e.Kind())
}

func TestRefreshSkipsConfigWhenChecksumUnchanged(t *testing.T) {
	sys, api := newTestSystem(t)

	require.NoError(t, sys.Refresh(context.Background()))
	require.NoError(t, sys.Refresh(context.Background()))
	assert.Equal(t, 1, api.configCalls, "unchanged checksum must not refetch configuration")
	assert.Equal(t, 2, api.telemetryCalls)
}

func TestRefreshRefetchesConfigOnChecksumChange(t *testing.T) {
	sys, api := newTestSystem(t)

	require.NoError(t, sys.Refresh(context.Background()))
	api.telemetryXML = statusDoc(1, 1, 60, 9999)
	require.NoError(t, sys.Refresh(context.Background()))
	assert.Equal(t, 2, api.configCalls)
}

func TestRefreshFailureLeavesStateUntouched(t *testing.T) {
	sys, api := newTestSystem(t)
	require.NoError(t, sys.Refresh(context.Background()))
	before := sys.LastRefresh()

	api.telemetryErr = fmt.Errorf("boom")
	err := sys.Refresh(context.Background())
	require.Error(t, err)

	assert.Equal(t, before, sys.LastRefresh())
	assert.NotNil(t, sys.Telemetry())
	require.Len(t, sys.Filters(), 1)
}

func TestCommandMarksDirtyAndRefreshClears(t *testing.T) {
	sys, api := newTestSystem(t)
	require.NoError(t, sys.Refresh(context.Background()))
	assert.False(t, sys.Dirty())

	require.NoError(t, sys.Filters()[0].SetSpeed(context.Background(), 75))
	assert.True(t, sys.Dirty())
	require.Len(t, api.commands, 1)
	assert.Equal(t, command{name: "SetFilterSpeed", poolID: 7, equipmentID: 8, value: 75}, api.commands[0])

	require.NoError(t, sys.Refresh(context.Background()))
	assert.False(t, sys.Dirty())
}

func TestRefreshIfDirty(t *testing.T) {
	sys, api := newTestSystem(t)
	require.NoError(t, sys.Refresh(context.Background()))

	require.NoError(t, sys.RefreshIfDirty(context.Background()))
	assert.Equal(t, 1, api.telemetryCalls, "clean state must not refresh")

	require.NoError(t, sys.Filters()[0].TurnOff(context.Background()))
	require.NoError(t, sys.RefreshIfDirty(context.Background()))
	assert.Equal(t, 2, api.telemetryCalls)
}

func TestRefreshIfOlderThan(t *testing.T) {
	sys, api := newTestSystem(t)

	// Uninitialized state always refreshes.
	require.NoError(t, sys.RefreshIfOlderThan(context.Background(), time.Hour))
	assert.Equal(t, 1, api.telemetryCalls)

	require.NoError(t, sys.RefreshIfOlderThan(context.Background(), time.Hour))
	assert.Equal(t, 1, api.telemetryCalls, "fresh state must not refresh")

	require.NoError(t, sys.RefreshIfOlderThan(context.Background(), 0))
	assert.Equal(t, 2, api.telemetryCalls)
}

func TestFilterTurnOnUsesLastSpeed(t *testing.T) {
	sys, api := newTestSystem(t)
	api.telemetryXML = statusDoc(1, 0, 65, 2211)
	require.NoError(t, sys.Refresh(context.Background()))

	require.NoError(t, sys.Filters()[0].TurnOn(context.Background()))
	require.Len(t, api.commands, 1)
	assert.Equal(t, command{name: "SetEquipment", poolID: 7, equipmentID: 8, value: 65}, api.commands[0])
}

func TestFilterRunPreset(t *testing.T) {
	sys, api := newTestSystem(t)
	require.NoError(t, sys.Refresh(context.Background()))

	require.NoError(t, sys.Filters()[0].RunPreset(context.Background(), PresetMedium))
	require.Len(t, api.commands, 1)
	assert.Equal(t, 65, api.commands[0].value)

	err := sys.Filters()[0].RunPreset(context.Background(), SpeedPreset(42))
	require.ErrorIs(t, err, client.ErrValidation)
}

func TestServiceModeRejectsCommands(t *testing.T) {
	sys, api := newTestSystem(t)
	api.telemetryXML = statusDoc(2, 1, 60, 2211)
	require.NoError(t, sys.Refresh(context.Background()))

	err := sys.Filters()[0].SetSpeed(context.Background(), 50)
	require.ErrorIs(t, err, ErrNotReady)
	assert.Empty(t, api.commands, "command must not reach the wire")
}

func TestTransitionalFilterStateRejectsCommands(t *testing.T) {
	sys, api := newTestSystem(t)
	api.telemetryXML = statusDoc(1, 2, 60, 2211) // priming
	require.NoError(t, sys.Refresh(context.Background()))

	err := sys.Filters()[0].TurnOff(context.Background())
	require.ErrorIs(t, err, ErrNotReady)
	assert.Empty(t, api.commands)
}

func TestMissingTelemetryRejectsAsNotInitialized(t *testing.T) {
	sys, api := newTestSystem(t)
	api.telemetryXML = `<STATUS version="1.11">
  <Backyard systemId="0" statusVersion="11" airTemp="74" state="1" ConfigChksum="2211" mspVersion="R0408000"/>
</STATUS>`
	require.NoError(t, sys.Refresh(context.Background()))

	err := sys.Filters()[0].SetSpeed(context.Background(), 50)
	require.ErrorIs(t, err, ErrNotInitialized)
	assert.Empty(t, api.commands)
}

func TestLightSetShowForcesFixedAnimation(t *testing.T) {
	sys, api := newTestSystem(t)
	require.NoError(t, sys.Refresh(context.Background()))

	lights := sys.Lights()
	require.Len(t, lights, 1)
	assert.True(t, lights[0].SupportsAnimation())

	err := lights[0].SetShow(
		context.Background(),
		omnitypes.ShowVoodooLounge,
		omnitypes.SpeedOneTimes,
		omnitypes.BrightnessFull,
	)
	require.NoError(t, err)
	require.Len(t, api.commands, 1)
	assert.Equal(t, "SetLightShow", api.commands[0].name)
}

func TestChlorinatorCommands(t *testing.T) {
	sys, api := newTestSystem(t)
	require.NoError(t, sys.Refresh(context.Background()))

	chlors := sys.Chlorinators()
	require.Len(t, chlors, 1)
	assert.Equal(t, 2912, chlors[0].InstantSaltLevel())

	require.NoError(t, chlors[0].Superchlorinate(context.Background(), true))
	require.Len(t, api.commands, 1)
	assert.Equal(t, command{name: "SetSuperchlorinate", poolID: 7, equipmentID: 22, value: 1}, api.commands[0])
}

func TestCSADReportsChemistryReadings(t *testing.T) {
	sys, _ := newTestSystem(t)
	require.NoError(t, sys.Refresh(context.Background()))

	csads := sys.CSADs()
	require.Len(t, csads, 1)
	csad := csads[0]

	assert.Equal(t, omnitypes.CSADAcid, csad.Type())
	assert.True(t, csad.Enabled())
	assert.InDelta(t, 7.5, csad.TargetValue(), 0.001)
	assert.InDelta(t, 7.61, csad.PH(), 0.001)
	assert.Equal(t, 652, csad.ORP())
	assert.Equal(t, omnitypes.CSADAuto, csad.Mode())
	assert.True(t, csad.Dispensing())
	assert.True(t, csad.Ready())
}

func TestHeaterReflectsTelemetry(t *testing.T) {
	sys, api := newTestSystem(t)
	require.NoError(t, sys.Refresh(context.Background()))

	heaters := sys.Heaters()
	require.Len(t, heaters, 1)
	h := heaters[0]
	assert.Equal(t, 85, h.SetPoint())
	assert.True(t, h.Enabled())
	assert.True(t, h.Heating())

	require.NoError(t, h.SetTemperature(context.Background(), 90))
	require.Len(t, api.commands, 1)
	assert.Equal(t, command{name: "SetHeaterTemperature", poolID: 7, equipmentID: 18, value: 90}, api.commands[0])
}

func TestRefreshRetainsOmittedEquipmentTelemetry(t *testing.T) {
	sys, api := newTestSystem(t)
	require.NoError(t, sys.Refresh(context.Background()))
	require.NotNil(t, sys.Telemetry().FilterByID(8))

	// Controllers omit unchanged equipment from fetched snapshots too.
	api.telemetryXML = `<STATUS version="1.11">
  <Backyard systemId="0" statusVersion="11" airTemp="71" state="1" ConfigChksum="2211" mspVersion="R0408000"/>
  <BodyOfWater systemId="7" waterTemp="81" flow="255"/>
</STATUS>`
	require.NoError(t, sys.Refresh(context.Background()))

	filter := sys.Telemetry().FilterByID(8)
	require.NotNil(t, filter)
	assert.Equal(t, 60, filter.LastSpeed)
	assert.Equal(t, 71, sys.Backyard().AirTemp())
}

func TestApplyTelemetryUpdateMergesPartial(t *testing.T) {
	sys, _ := newTestSystem(t)
	require.NoError(t, sys.Refresh(context.Background()))

	update := `<STATUS version="1.11">
  <Filter systemId="8" filterState="0" filterSpeed="0" valvePosition="1" whyFilterIsOn="0" lastSpeed="60" reportedFilterSpeed="0" power="0"/>
</STATUS>`
	require.NoError(t, sys.ApplyTelemetryUpdate([]byte(update)))

	assert.Equal(t, omnitypes.FilterOff, sys.Filters()[0].State())
	// Equipment the update omitted keeps its previous state.
	assert.Equal(t, 2912, sys.Chlorinators()[0].InstantSaltLevel())
	require.NotNil(t, sys.Telemetry().Backyard)
}
