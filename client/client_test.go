package client

import (
	"context"
	"encoding/xml"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/poollink/go-omnilogic/logger"
	"github.com/poollink/go-omnilogic/session"
	"github.com/poollink/go-omnilogic/wire"
)

type capturedCall struct {
	msgType wire.Type
	body    []byte
}

type mockTransport struct {
	calls []capturedCall
	resp  *session.Response
	err   error
}

func (m *mockTransport) Call(_ context.Context, msgType wire.Type, body []byte) (*session.Response, error) {
	m.calls = append(m.calls, capturedCall{msgType: msgType, body: body})
	if m.err != nil {
		return nil, m.err
	}
	if m.resp != nil {
		return m.resp, nil
	}

	return &session.Response{Type: wire.TypeAck}, nil
}

func newTestClient(t *testing.T) (*Client, *mockTransport) {
	t.Helper()
	transport := &mockTransport{}

	mockLogger := logger.NewMockLogger()
	mockLogger.On("Debug", mock.Anything, mock.Anything).Return()
	mockLogger.On("Info", mock.Anything, mock.Anything).Return()
	mockLogger.On("Warn", mock.Anything, mock.Anything).Return()
	mockLogger.On("Error", mock.Anything, mock.Anything).Return()

	return NewClient(transport, mockLogger), transport
}

// decodeRequest unmarshals a captured request body back into its envelope.
func decodeRequest(t *testing.T, body []byte) wire.Request {
	t.Helper()
	var req wire.Request
	require.NoError(t, xml.Unmarshal(body, &req))

	return req
}

func findParam(t *testing.T, req wire.Request, name string) wire.Param {
	t.Helper()
	for _, p := range req.Parameters {
		if p.Name == name {
			return p
		}
	}
	t.Fatalf("parameter %q not found in request %s", name, req.Name)

	return wire.Param{}
}

func TestSetHeaterTemperatureRequest(t *testing.T) {
	client, transport := newTestClient(t)

	err := client.SetHeaterTemperature(context.Background(), 7, 19, 88)
	require.NoError(t, err)
	require.Len(t, transport.calls, 1)
	assert.Equal(t, wire.TypeSetHeaterCommand, transport.calls[0].msgType)

	req := decodeRequest(t, transport.calls[0].body)
	assert.Equal(t, "SetUIHeaterCmd", req.Name)
	assert.Equal(t, wire.XMLNamespace, req.Namespace)

	pool := findParam(t, req, "poolId")
	assert.Equal(t, "int", pool.DataType)
	assert.Equal(t, "7", pool.Value)

	heater := findParam(t, req, "HeaterID")
	assert.Equal(t, "EquipmentID", heater.Alias)

	temp := findParam(t, req, "Temp")
	assert.Equal(t, "88", temp.Value)
	assert.Equal(t, "Data", temp.Alias)
	assert.Equal(t, "F", temp.Unit)
}

func TestSetHeaterEnabledBoolEncoding(t *testing.T) {
	tests := []struct {
		name    string
		enabled bool
		want    string
	}{
		{name: "enabled encodes as one", enabled: true, want: "1"},
		{name: "disabled encodes as zero", enabled: false, want: "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, transport := newTestClient(t)

			err := client.SetHeaterEnabled(context.Background(), 1, 2, tt.enabled)
			require.NoError(t, err)
			require.Len(t, transport.calls, 1)
			assert.Equal(t, wire.TypeSetHeaterEnabled, transport.calls[0].msgType)

			req := decodeRequest(t, transport.calls[0].body)
			enabled := findParam(t, req, "Enabled")
			assert.Equal(t, "bool", enabled.DataType)
			assert.Equal(t, tt.want, enabled.Value)
		})
	}
}

func TestSetFilterSpeedRequest(t *testing.T) {
	client, transport := newTestClient(t)

	err := client.SetFilterSpeed(context.Background(), 1, 8, 75)
	require.NoError(t, err)
	require.Len(t, transport.calls, 1)
	assert.Equal(t, wire.TypeSetFilterSpeed, transport.calls[0].msgType)

	req := decodeRequest(t, transport.calls[0].body)
	assert.Equal(t, "SetUIFilterSpeedCmd", req.Name)

	filter := findParam(t, req, "FilterID")
	assert.Equal(t, "equipment_id", filter.Alias)

	speed := findParam(t, req, "Speed")
	assert.Equal(t, "75", speed.Value)
	assert.Equal(t, "RPM", speed.Unit)
	assert.Equal(t, "Data", speed.Alias)
}

func TestValidationRejectsBeforeSend(t *testing.T) {
	tests := []struct {
		name string
		call func(c *Client) error
	}{
		{
			name: "temperature above range",
			call: func(c *Client) error {
				return c.SetHeaterTemperature(context.Background(), 1, 2, 105)
			},
		},
		{
			name: "temperature below range",
			call: func(c *Client) error {
				return c.SetHeaterTemperature(context.Background(), 1, 2, 64)
			},
		},
		{
			name: "speed above range",
			call: func(c *Client) error {
				return c.SetFilterSpeed(context.Background(), 1, 2, 101)
			},
		},
		{
			name: "negative pool id",
			call: func(c *Client) error {
				return c.SetChlorinatorEnabled(context.Background(), -1, true)
			},
		},
		{
			name: "negative equipment id",
			call: func(c *Client) error {
				return c.SetSuperchlorinate(context.Background(), 1, -3, true)
			},
		},
		{
			name: "diagnostics negative pool id",
			call: func(c *Client) error {
				_, err := c.GetFilterDiagnostics(context.Background(), -1, 2)
				return err
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, transport := newTestClient(t)

			err := tt.call(client)
			require.ErrorIs(t, err, ErrValidation)
			assert.Empty(t, transport.calls, "invalid command must not reach the transport")
		})
	}
}

func TestGetConfigParsesResponse(t *testing.T) {
	client, transport := newTestClient(t)
	transport.resp = &session.Response{
		Type: wire.TypeMSPLeadMessage,
		Body: []byte(`<?xml version="1.0" encoding="UTF-8" ?>
<MSPConfig>
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
      </Filter>
    </Body-of-water>
  </Backyard>
</MSPConfig>`),
	}

	cfg, err := client.GetConfig(context.Background())
	require.NoError(t, err)
	require.Len(t, transport.calls, 1)
	assert.Equal(t, wire.TypeRequestConfiguration, transport.calls[0].msgType)

	req := decodeRequest(t, transport.calls[0].body)
	assert.Equal(t, "RequestConfiguration", req.Name)
	assert.Empty(t, req.Parameters)

	bow := cfg.BOWByID(7)
	require.NotNil(t, bow)
	require.Len(t, bow.Filters, 1)
	assert.Equal(t, 8, bow.Filters[0].SystemID)
	assert.Equal(t, 7, bow.Filters[0].BowID)
}

func TestGetTelemetryParsesResponse(t *testing.T) {
	client, transport := newTestClient(t)
	transport.resp = &session.Response{
		Type: wire.TypeMSPTelemetryUpdate,
		Body: []byte(`<?xml version="1.0" encoding="UTF-8" ?>
<STATUS version="1.11">
  <Backyard systemId="0" statusVersion="11" airTemp="77" state="1" ConfigChksum="2211" mspVersion="R0408000"/>
  <BodyOfWater systemId="7" waterTemp="82" flow="255"/>
  <Filter systemId="8" filterState="1" filterSpeed="60" valvePosition="1" whyFilterIsOn="1" reportedFilterSpeed="3000" power="389" lastSpeed="60"/>
</STATUS>`),
	}

	tel, err := client.GetTelemetry(context.Background())
	require.NoError(t, err)
	require.Len(t, transport.calls, 1)
	assert.Equal(t, wire.TypeGetTelemetry, transport.calls[0].msgType)

	require.NotNil(t, tel.Backyard)
	assert.Equal(t, 77, tel.Backyard.AirTemp)

	filter := tel.FilterByID(8)
	require.NotNil(t, filter)
	assert.Equal(t, 60, filter.Speed)
	assert.Equal(t, 389, filter.Power)
}

func TestGetLogConfigSendsNoBody(t *testing.T) {
	client, transport := newTestClient(t)
	transport.resp = &session.Response{Type: wire.TypeAck, Body: []byte("<LogConfig/>")}

	raw, err := client.GetLogConfig(context.Background())
	require.NoError(t, err)
	require.Len(t, transport.calls, 1)
	assert.Equal(t, wire.TypeRequestLogConfig, transport.calls[0].msgType)
	assert.Nil(t, transport.calls[0].body)
	assert.Equal(t, []byte("<LogConfig/>"), raw)
}

func TestGetFilterDiagnostics(t *testing.T) {
	client, transport := newTestClient(t)
	transport.resp = &session.Response{
		Type: wire.TypeGetFilterDiagnostics,
		Body: []byte(`<?xml version="1.0" encoding="UTF-8" ?>
<Response xmlns="http://nextgen.hayward.com/api">
  <Name>GetUIFilterDiagnosticInfo</Name>
  <Parameters>
    <Parameter name="DriveFWRevisionB1" dataType="int">48</Parameter>
    <Parameter name="DriveFWRevisionB2" dataType="int">50</Parameter>
    <Parameter name="DriveFWRevisionB3" dataType="int">49</Parameter>
    <Parameter name="DriveFWRevisionB4" dataType="int">53</Parameter>
    <Parameter name="PowerMSB" dataType="int">4</Parameter>
    <Parameter name="PowerLSB" dataType="int">86</Parameter>
    <Parameter name="ErrorStatus" dataType="int">0</Parameter>
  </Parameters>
</Response>`),
	}

	diag, err := client.GetFilterDiagnostics(context.Background(), 7, 8)
	require.NoError(t, err)
	require.Len(t, transport.calls, 1)
	assert.Equal(t, wire.TypeGetFilterDiagnostics, transport.calls[0].msgType)

	req := decodeRequest(t, transport.calls[0].body)
	assert.Equal(t, "GetUIFilterDiagnosticInfo", req.Name)
	assert.Equal(t, "7", findParam(t, req, "poolId").Value)
	assert.Equal(t, "8", findParam(t, req, "equipmentId").Value)

	errStatus, ok := diag.Param("ErrorStatus")
	require.True(t, ok)
	assert.Equal(t, 0, errStatus)

	// 0x4 and 0x56 concatenate into the decimal wattage.
	watts, ok := diag.PowerWatts()
	require.True(t, ok)
	assert.Equal(t, 456, watts)

	version, ok := diag.DriveFirmwareVersion()
	require.True(t, ok)
	assert.Equal(t, "02.15", version)
}

func TestGetAlarmListPassesRawBody(t *testing.T) {
	client, transport := newTestClient(t)
	body := []byte(`<Response><Name>GetAllAlarmList</Name></Response>`)
	transport.resp = &session.Response{Type: wire.TypeAck, Body: body}

	raw, err := client.GetAlarmList(context.Background())
	require.NoError(t, err)
	assert.Equal(t, body, raw)

	req := decodeRequest(t, transport.calls[0].body)
	assert.Equal(t, "GetAllAlarmList", req.Name)
}
