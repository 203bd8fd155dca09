// omnictl is a command line tool for poking at an OmniLogic controller on
// the local network: fetch configuration and telemetry, run diagnostics,
// send raw requests, and decode capture files offline.
//
// Usage:
//
//	omnictl -host 10.0.0.30 config
//	omnictl -host 10.0.0.30 telemetry
//	omnictl -host 10.0.0.30 alarms
//	omnictl -host 10.0.0.30 diag -pool 7 -equipment 8
//	omnictl -host 10.0.0.30 logconfig
//	omnictl -host 10.0.0.30 raw -type 300 -body '<Request>...</Request>'
//	omnictl decode -file capture.bin
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/poollink/go-omnilogic/client"
	"github.com/poollink/go-omnilogic/logger"
	"github.com/poollink/go-omnilogic/pcapdump"
	"github.com/poollink/go-omnilogic/session"
	"github.com/poollink/go-omnilogic/wire"
)

var log logger.Logger

func main() {
	host := flag.String("host", "", "controller hostname or IP")
	port := flag.Int("port", session.DefaultPort, "controller UDP port")
	timeout := flag.Duration("timeout", 30*time.Second, "overall command timeout")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	level := logger.InfoLevel
	if *verbose {
		level = logger.DebugLevel
	}
	log = logger.NewSlog(level, false)

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}
	cmd, cmdArgs := args[0], args[1:]

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	ctx, timeoutCancel := context.WithTimeout(ctx, *timeout)
	defer timeoutCancel()

	if cmd == "decode" {
		if err := runDecode(cmdArgs); err != nil {
			log.Error("decode failed", "error", err)
			os.Exit(1)
		}
		return
	}

	if *host == "" {
		log.Error("missing -host")
		os.Exit(2)
	}

	if err := runCommand(ctx, *host, *port, cmd, cmdArgs); err != nil {
		log.Error("command failed", "command", cmd, "error", err)
		os.Exit(1)
	}
}

func runCommand(ctx context.Context, host string, port int, cmd string, args []string) error {
	cfg, err := session.NewConfig(host,
		session.WithPort(port),
		session.WithLogger(log),
	)
	if err != nil {
		return err
	}

	sess := session.NewSession(ctx, cfg)
	if err := sess.Open(); err != nil {
		return err
	}
	defer sess.Close()

	c := client.NewClient(sess, log)

	switch cmd {
	case "config":
		raw, err := c.GetConfigXML(ctx)
		if err != nil {
			return err
		}
		fmt.Println(string(raw))

	case "telemetry":
		raw, err := c.GetTelemetryXML(ctx)
		if err != nil {
			return err
		}
		fmt.Println(string(raw))

	case "alarms":
		raw, err := c.GetAlarmList(ctx)
		if err != nil {
			return err
		}
		fmt.Println(string(raw))

	case "logconfig":
		raw, err := c.GetLogConfig(ctx)
		if err != nil {
			return err
		}
		fmt.Println(string(raw))

	case "diag":
		fs := flag.NewFlagSet("diag", flag.ExitOnError)
		pool := fs.Int("pool", 0, "body of water system ID")
		equipment := fs.Int("equipment", 0, "filter system ID")
		if err := fs.Parse(args); err != nil {
			return err
		}

		diag, err := c.GetFilterDiagnostics(ctx, *pool, *equipment)
		if err != nil {
			return err
		}
		if version, ok := diag.DriveFirmwareVersion(); ok {
			fmt.Printf("drive firmware: %s\n", version)
		}
		if watts, ok := diag.PowerWatts(); ok {
			fmt.Printf("power: %dW\n", watts)
		}
		for _, p := range diag.Parameters {
			fmt.Printf("%s=%s\n", p.Name, p.Value)
		}

	case "raw":
		fs := flag.NewFlagSet("raw", flag.ExitOnError)
		msgType := fs.Uint("type", 0, "message type value")
		body := fs.String("body", "", "XML request body, empty for a bodiless request")
		if err := fs.Parse(args); err != nil {
			return err
		}

		resp, err := c.GetRaw(ctx, wire.Type(*msgType), []byte(*body))
		if err != nil {
			return err
		}
		fmt.Println(string(resp))

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}

	return nil
}

func runDecode(args []string) error {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	file := fs.String("file", "", "capture file to decode")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return fmt.Errorf("missing -file")
	}

	f, err := os.Open(*file)
	if err != nil {
		return err
	}
	defer f.Close()

	exchanges, err := pcapdump.Decode(f)
	if err != nil {
		return err
	}

	for _, ex := range exchanges {
		fmt.Printf("== id=%d type=%s (%d bytes)\n", ex.ID, ex.Type, len(ex.Body))
		fmt.Println(string(ex.Body))
	}

	return nil
}
