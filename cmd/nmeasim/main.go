// Command nmeasim drives a marine NMEA 0183 / AIS navigation data
// simulator from a YAML scenario file, streaming the generated sentences to
// one or more configured output sinks.
package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goblimey/go-tools/logger"
	"github.com/goblimey/nmeasim/config"
	"github.com/goblimey/nmeasim/report"
	"github.com/goblimey/nmeasim/sinks"
	"github.com/robfig/cron"
	"github.com/spf13/pflag"
)

var log *logger.LoggerT

func init() {
	log = logger.New()
}

func main() {
	configFile := pflag.StringP("config", "c", "", "YAML scenario file (required)")
	duration := pflag.Float64P("duration", "d", 0, "Run duration in seconds; 0 runs for simulation.duration_seconds from the scenario")
	logLevel := pflag.IntP("log-level", "l", 1, "0 quiet, 1 verbose")
	reportAddr := pflag.StringP("report-addr", "r", "", "host:port for the optional HTTP status feed; empty disables it")
	outputSpecs := pflag.StringArrayP("output", "o", nil, "ad hoc output sink, \"type,key=value,...\" (repeatable); added to the scenario's own outputs")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: nmeasim --config <path> [options]\n\n")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	log.SetLogLevel(*logLevel)

	if *configFile == "" {
		fmt.Fprintf(os.Stderr, "[-] --config is required\n")
		pflag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[-] %s\n", err.Error())
		os.Exit(1)
	}

	for _, spec := range *outputSpecs {
		o, err := parseOutputSpec(spec)
		if err != nil {
			fmt.Fprintf(os.Stderr, "[-] %s\n", err.Error())
			os.Exit(1)
		}
		cfg.Outputs = append(cfg.Outputs, o)
	}

	bus, err := buildBus(cfg.Outputs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[-] %s\n", err.Error())
		os.Exit(1)
	}
	defer bus.Close()

	e, err := buildEngine(cfg, bus)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[-] %s\n", err.Error())
		os.Exit(1)
	}

	historySize := cfg.Report.History
	if historySize <= 0 {
		historySize = 200
	}
	recent := report.NewRingBuffer(historySize)
	bus.Add(recordingSink{recent})

	addr := *reportAddr
	if addr == "" && cfg.Report.Enabled {
		addr = cfg.Report.ListenAddr
	}
	if addr != "" {
		host, port, perr := splitHostPort(addr)
		if perr != nil {
			fmt.Fprintf(os.Stderr, "[-] config: report.listen_addr: %s\n", perr.Error())
			os.Exit(1)
		}
		feed := report.NewFeed(log, e, recent)
		report.StartHTTP(log, feed, host, port)
		fmt.Fprintf(log, "status feed listening on %s\n", addr)
	}

	// Log a one-line stats summary every minute.
	statsCron := cron.New()
	statsCron.AddFunc("@every 1m", func() {
		snap := e.Stats()
		fmt.Fprintf(log, "stats: %d ticks, %d GGA, %d RMC, %d AIVDM, %d encode errors\n",
			snap.Ticks, snap.SentencesGGA, snap.SentencesRMC, snap.SentencesAIVDM, snap.EncodeErrors)
	})
	statsCron.Start()
	defer statsCron.Stop()

	runSeconds := *duration
	if runSeconds == 0 {
		runSeconds = cfg.Simulation.DurationSeconds
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if runSeconds > 0 {
		ctx, cancel = context.WithTimeout(ctx, time.Duration(runSeconds*float64(time.Second)))
		defer cancel()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintf(log, "shutting down on signal\n")
		cancel()
	}()

	fmt.Fprintf(log, "running scenario %s\n", *configFile)
	if err := e.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "[-] %s\n", err.Error())
		os.Exit(1)
	}

	snap := e.Stats()
	fmt.Fprintf(log, "stopped: %d ticks, %d late, %d GGA, %d RMC, %d AIVDM\n",
		snap.Ticks, snap.LateTicks, snap.SentencesGGA, snap.SentencesRMC, snap.SentencesAIVDM)
}

// recordingSink is a sinks.Sink that feeds every published sentence into
// the status feed's ring buffer; it has no queue of its own since Add is
// cheap and never blocks.
type recordingSink struct {
	recent *report.RingBuffer
}

func (r recordingSink) Send(sentence string) { r.recent.Add(sentence) }
func (r recordingSink) Close() error         { return nil }
func (r recordingSink) Stats() sinks.SinkStats { return sinks.SinkStats{} }

func splitHostPort(addr string) (string, int, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return "", 0, err
	}
	var port int
	if _, err := fmt.Sscanf(portStr, "%d", &port); err != nil {
		return "", 0, fmt.Errorf("invalid port %q", portStr)
	}
	return host, port, nil
}
