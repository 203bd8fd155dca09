package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poollink/go-omnilogic/omnitypes"
)

const sampleStatus = `<?xml version="1.0" encoding="UTF-8" ?>
<STATUS version="1.11">
  <Backyard systemId="0" statusVersion="11" airTemp="74" state="1" ConfigChksum="2211" mspVersion="R0408000"/>
  <BodyOfWater systemId="7" waterTemp="82" flow="255"/>
  <Filter systemId="8" valvePosition="1" filterSpeed="60" filterState="1" lastSpeed="60" whyFilterIsOn="1" fpOverride="0" reportedFilterSpeed="3000" power="389"/>
  <ValveActuator systemId="9" valveActuatorState="0" whyOn="0"/>
  <ColorLogic-Light systemId="10" lightState="6" currentShow="2" speed="4" brightness="4" specialEffect="0"/>
  <VirtualHeater systemId="18" Current-Set-Point="85" enable="1" SolarSetPoint="90" Mode="0" SilentMode="0" whyHeaterIsOn="1"/>
  <Heater systemId="19" heaterState="1" temp="74" enable="1" priority="PRIORITY_STANDARD" maintainFor="24"/>
  <Chlorinator systemId="22" operatingState="2" operatingMode="1" Timed-Percent="40" scMode="0" instantSaltLevel="2912" avgSaltLevel="3001" chlrAlert="0" chlrError="0" status="4"/>
</STATUS>`

func TestParseStatus(t *testing.T) {
	tel, err := Parse([]byte(sampleStatus))
	require.NoError(t, err)

	assert.Equal(t, "1.11", tel.Version)
	require.NotNil(t, tel.Backyard)
	assert.Equal(t, 74, tel.Backyard.AirTemp)
	assert.Equal(t, omnitypes.BackyardOn, tel.Backyard.State)
	assert.Equal(t, 2211, tel.Backyard.ConfigChecksum)

	bow := tel.BOWByID(7)
	require.NotNil(t, bow)
	assert.Equal(t, 82, bow.WaterTemp)

	filter := tel.FilterByID(8)
	require.NotNil(t, filter)
	assert.Equal(t, omnitypes.FilterOn, filter.State)
	assert.Equal(t, 3000, filter.ReportedSpeed)
	assert.False(t, bool(filter.FPOverride))

	light := tel.LightByID(10)
	require.NotNil(t, light)
	assert.Equal(t, omnitypes.LightActive, light.State)

	vh := tel.VirtualHeaterByID(18)
	require.NotNil(t, vh)
	assert.Equal(t, 85, vh.SetPoint)
	assert.True(t, bool(vh.Enabled))

	require.Len(t, tel.Heaters, 1)
	assert.Equal(t, "PRIORITY_STANDARD", tel.Heaters[0].Priority)

	require.Len(t, tel.Chlorinators, 1)
	assert.Equal(t, 2912, tel.Chlorinators[0].InstantSaltLevel)
	assert.Equal(t, 40, tel.Chlorinators[0].TimedPercent)
}

func TestParseRejectsMalformedDocument(t *testing.T) {
	_, err := Parse([]byte("<STATUS version="))
	require.ErrorIs(t, err, ErrTelemetryFormat)
}

func TestMergeOverlaysPartialUpdate(t *testing.T) {
	prev, err := Parse([]byte(sampleStatus))
	require.NoError(t, err)

	// Controller pushed an update covering only the filter and backyard.
	next, err := Parse([]byte(`<STATUS version="1.11">
  <Backyard systemId="0" statusVersion="12" airTemp="75" state="1" ConfigChksum="2211" mspVersion="R0408000"/>
  <Filter systemId="8" valvePosition="1" filterSpeed="0" filterState="0" lastSpeed="60" whyFilterIsOn="0" reportedFilterSpeed="0" power="0"/>
</STATUS>`))
	require.NoError(t, err)

	merged := Merge(prev, next)

	// Updated entries win.
	assert.Equal(t, 75, merged.Backyard.AirTemp)
	filter := merged.FilterByID(8)
	require.NotNil(t, filter)
	assert.Equal(t, omnitypes.FilterOff, filter.State)

	// Omitted equipment carries over.
	require.NotNil(t, merged.BOWByID(7))
	require.NotNil(t, merged.LightByID(10))
	require.NotNil(t, merged.VirtualHeaterByID(18))
	require.Len(t, merged.Chlorinators, 1)

	// Inputs stay untouched.
	assert.Equal(t, 74, prev.Backyard.AirTemp)
	assert.Equal(t, omnitypes.FilterOn, prev.FilterByID(8).State)
}

func TestMergeAddsNewEquipment(t *testing.T) {
	prev, err := Parse([]byte(`<STATUS version="1.11">
  <Relay systemId="30" relayState="0" whyOn="0"/>
</STATUS>`))
	require.NoError(t, err)

	next, err := Parse([]byte(`<STATUS version="1.11">
  <Relay systemId="31" relayState="1" whyOn="1"/>
</STATUS>`))
	require.NoError(t, err)

	merged := Merge(prev, next)
	require.Len(t, merged.Relays, 2)
	assert.Equal(t, 31, merged.Relays[0].SystemID)
	assert.Equal(t, 30, merged.Relays[1].SystemID)
}

func TestMergeNilInputs(t *testing.T) {
	tel, err := Parse([]byte(sampleStatus))
	require.NoError(t, err)

	assert.Equal(t, tel, Merge(nil, tel))
	assert.Equal(t, tel, Merge(tel, nil))
	assert.Nil(t, Merge(nil, nil))
}
