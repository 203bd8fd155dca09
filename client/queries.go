package client

import (
	"context"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/poollink/go-omnilogic/mspconfig"
	"github.com/poollink/go-omnilogic/telemetry"
	"github.com/poollink/go-omnilogic/wire"
)

// GetConfigXML fetches the MSP configuration document and returns the raw
// XML.
func (c *Client) GetConfigXML(ctx context.Context) ([]byte, error) {
	resp, err := c.call(ctx, wire.TypeRequestConfiguration, "RequestConfiguration")
	if err != nil {
		return nil, err
	}

	return resp.Body, nil
}

// GetConfig fetches and parses the MSP configuration document.
func (c *Client) GetConfig(ctx context.Context) (*mspconfig.MSPConfig, error) {
	raw, err := c.GetConfigXML(ctx)
	if err != nil {
		return nil, err
	}

	return mspconfig.Parse(raw)
}

// GetTelemetryXML fetches the current telemetry snapshot and returns the raw
// XML.
func (c *Client) GetTelemetryXML(ctx context.Context) ([]byte, error) {
	resp, err := c.call(ctx, wire.TypeGetTelemetry, "RequestTelemetryData")
	if err != nil {
		return nil, err
	}

	return resp.Body, nil
}

// GetTelemetry fetches and parses the current telemetry snapshot.
func (c *Client) GetTelemetry(ctx context.Context) (*telemetry.Telemetry, error) {
	raw, err := c.GetTelemetryXML(ctx)
	if err != nil {
		return nil, err
	}

	return telemetry.Parse(raw)
}

// GetAlarmList fetches the controller's current alarm list as raw XML.
func (c *Client) GetAlarmList(ctx context.Context) ([]byte, error) {
	resp, err := c.call(ctx, wire.TypeGetAlarmList, "GetAllAlarmList")
	if err != nil {
		return nil, err
	}

	return resp.Body, nil
}

// GetLogConfig fetches the controller's logging configuration as raw XML.
// The request carries no XML body.
func (c *Client) GetLogConfig(ctx context.Context) ([]byte, error) {
	resp, err := c.transport.Call(ctx, wire.TypeRequestLogConfig, nil)
	if err != nil {
		return nil, err
	}

	return resp.Body, nil
}

// DiagnosticsParam is one name/value pair of a filter diagnostics response.
type DiagnosticsParam struct {
	Name     string `xml:"name,attr"`
	DataType string `xml:"dataType,attr"`
	Value    string `xml:",chardata"`
}

// FilterDiagnostics is the parsed response of a filter diagnostics query.
type FilterDiagnostics struct {
	XMLName    xml.Name           `xml:"Response"`
	Name       string             `xml:"Name"`
	Parameters []DiagnosticsParam `xml:"Parameters>Parameter"`
}

// Param returns the integer value of the named diagnostics parameter.
func (d *FilterDiagnostics) Param(name string) (int, bool) {
	for _, p := range d.Parameters {
		if p.Name == name {
			v, err := strconv.Atoi(strings.TrimSpace(p.Value))
			if err != nil {
				return 0, false
			}

			return v, true
		}
	}

	return 0, false
}

// PowerWatts derives the filter power draw from the PowerMSB and PowerLSB
// parameters. The controller reports each byte as a hex digit pair that
// concatenates into the decimal wattage, so 0x4 and 0x56 read as 456 W.
func (d *FilterDiagnostics) PowerWatts() (int, bool) {
	msb, ok1 := d.Param("PowerMSB")
	lsb, ok2 := d.Param("PowerLSB")
	if !ok1 || !ok2 {
		return 0, false
	}

	watts, err := strconv.Atoi(fmt.Sprintf("%x%x", msb, lsb))
	if err != nil {
		return 0, false
	}

	return watts, true
}

// DriveFirmwareVersion assembles the drive firmware revision from its four
// character parameters, formatted like "12.34".
func (d *FilterDiagnostics) DriveFirmwareVersion() (string, bool) {
	return d.firmwareVersion("DriveFWRevisionB")
}

// DisplayFirmwareVersion assembles the display firmware revision from its
// four character parameters.
func (d *FilterDiagnostics) DisplayFirmwareVersion() (string, bool) {
	return d.firmwareVersion("DisplayFWRevisionB")
}

func (d *FilterDiagnostics) firmwareVersion(prefix string) (string, bool) {
	var chars [4]rune
	for i := range chars {
		v, ok := d.Param(prefix + strconv.Itoa(i+1))
		if !ok {
			return "", false
		}
		chars[i] = rune(v)
	}

	return fmt.Sprintf("%c%c.%c%c", chars[0], chars[1], chars[2], chars[3]), true
}

// GetFilterDiagnosticsXML fetches diagnostics for one filter and returns the
// raw XML.
func (c *Client) GetFilterDiagnosticsXML(ctx context.Context, poolID, equipmentID int) ([]byte, error) {
	if err := validateID(poolID, "poolID"); err != nil {
		return nil, err
	}
	if err := validateID(equipmentID, "equipmentID"); err != nil {
		return nil, err
	}

	resp, err := c.call(ctx, wire.TypeGetFilterDiagnostics, "GetUIFilterDiagnosticInfo",
		wire.Int("poolId", poolID),
		wire.Int("equipmentId", equipmentID),
	)
	if err != nil {
		return nil, err
	}

	return resp.Body, nil
}

// GetFilterDiagnostics fetches and parses diagnostics for one filter.
func (c *Client) GetFilterDiagnostics(ctx context.Context, poolID, equipmentID int) (*FilterDiagnostics, error) {
	raw, err := c.GetFilterDiagnosticsXML(ctx, poolID, equipmentID)
	if err != nil {
		return nil, err
	}

	var diag FilterDiagnostics
	if err := xml.Unmarshal(raw, &diag); err != nil {
		return nil, fmt.Errorf("%w: %w", wire.ErrMessageFormat, err)
	}

	return &diag, nil
}
