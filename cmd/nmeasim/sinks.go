package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goblimey/nmeasim/config"
	"github.com/goblimey/nmeasim/sinks"
)

// buildBus constructs a fan-out bus with one sink per configured output. A
// sink that fails to come up (bind failure, missing device at startup) is
// treated as io-fatal: buildBus returns the first such error and the
// caller exits.
func buildBus(outputs []config.Output) (*sinks.Bus, error) {
	bus := sinks.NewBus()
	for _, o := range outputs {
		sink, err := buildSink(o)
		if err != nil {
			return nil, err
		}
		bus.Add(sink)
	}
	return bus, nil
}

func buildSink(o config.Output) (sinks.Sink, error) {
	switch o.Type {
	case "file":
		return sinks.NewFileSink(sinks.FileConfig{
			Path:          o.Path,
			RotationBytes: int64(o.RotationSizeMB) * 1024 * 1024,
			MaxFiles:      o.MaxFiles,
			AutoFlush:     o.AutoFlush,
			LineEnding:    o.LineEnding,
			RotateDaily:   o.RotateDaily,
		})

	case "tcp":
		return sinks.NewTCPSink(sinks.TCPConfig{
			ListenAddr:    o.ListenAddr,
			MaxClients:    o.MaxClients,
			ClientTimeout: o.ClientTimeout,
			SendTimeout:   o.SendTimeout,
		})

	case "udp":
		return sinks.NewUDPSink(sinks.UDPConfig{
			Host:      o.Host,
			Port:      o.Port,
			Broadcast: o.Broadcast,
		})

	case "serial":
		return sinks.NewSerialSink(sinks.SerialConfig{
			Device:               o.Device,
			Baud:                 o.Baud,
			DataBits:             o.DataBits,
			Parity:               o.Parity,
			StopBits:             o.StopBits,
			ReconnectDelay:       o.ReconnectDelay,
			MaxReconnectAttempts: o.MaxReconnectAttempts,
			SendInterval:         o.SendInterval,
		})

	default:
		return nil, fmt.Errorf("config: output: unknown type %q", o.Type)
	}
}

// parseOutputSpec parses one --output flag value into a config.Output. The
// format is "type,key=value,key=value,...", e.g.
// "tcp,listen_addr=:10110,max_clients=8" or "udp,host=239.1.1.1,port=10111".
// Recognised keys mirror the YAML output section's field names.
func parseOutputSpec(spec string) (config.Output, error) {
	parts := strings.Split(spec, ",")
	o := config.Output{Type: strings.TrimSpace(parts[0])}
	if o.Type == "" {
		return config.Output{}, fmt.Errorf("config: --output: missing type in %q", spec)
	}

	for _, part := range parts[1:] {
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			return config.Output{}, fmt.Errorf("config: --output: malformed field %q in %q", part, spec)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		var err error
		switch key {
		case "path":
			o.Path = value
		case "rotation_size_mb":
			o.RotationSizeMB, err = strconv.Atoi(value)
		case "max_files":
			o.MaxFiles, err = strconv.Atoi(value)
		case "auto_flush":
			o.AutoFlush, err = strconv.ParseBool(value)
		case "line_ending":
			o.LineEnding = value
		case "rotate_daily":
			o.RotateDaily, err = strconv.ParseBool(value)
		case "listen_addr":
			o.ListenAddr = value
		case "max_clients":
			o.MaxClients, err = strconv.Atoi(value)
		case "client_timeout":
			o.ClientTimeout, err = time.ParseDuration(value)
		case "send_timeout":
			o.SendTimeout, err = time.ParseDuration(value)
		case "host":
			o.Host = value
		case "port":
			o.Port, err = strconv.Atoi(value)
		case "broadcast":
			o.Broadcast, err = strconv.ParseBool(value)
		case "device":
			o.Device = value
		case "baud":
			o.Baud, err = strconv.Atoi(value)
		case "data_bits":
			o.DataBits, err = strconv.Atoi(value)
		case "parity":
			o.Parity = value
		case "stop_bits":
			var f float64
			f, err = strconv.ParseFloat(value, 32)
			o.StopBits = float32(f)
		case "reconnect_delay":
			o.ReconnectDelay, err = time.ParseDuration(value)
		case "max_reconnect_attempts":
			o.MaxReconnectAttempts, err = strconv.Atoi(value)
		case "send_interval":
			o.SendInterval, err = time.ParseDuration(value)
		default:
			return config.Output{}, fmt.Errorf("config: --output: unknown field %q in %q", key, spec)
		}
		if err != nil {
			return config.Output{}, fmt.Errorf("config: --output: field %q: %w", key, err)
		}
	}

	return o, nil
}
