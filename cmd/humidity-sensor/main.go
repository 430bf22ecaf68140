// Command humidity-sensor runs a humidity sensor endpoint on an in-process
// host framework.
//
// It registers the sensor as a dynamic endpoint, feeds it synthetic or
// manual readings and optionally records every attribute access to a trace
// file that attr-log can read back.
//
// Usage:
//
//	humidity-sensor [flags]
//
// Flags:
//
//	-config string     Configuration file path (YAML)
//	-log-level string  Log level: debug, info, warn, error (default "info")
//	-trace-log string  Write attribute traces to this file (CBOR)
//	-state-file string Restore and save sensor state in this file (JSON)
//	-simulate          Enable simulation mode with synthetic readings (default true)
//	-interval duration Simulation interval (default 5s)
//	-initial uint      Initial measured value in 0.01 %RH (default 5000)
//	-interactive       Start the interactive shell
//
// Examples:
//
//	# Run with simulated readings every second
//	humidity-sensor -interval 1s
//
//	# Drive readings by hand and record a trace
//	humidity-sensor -simulate=false -interactive -trace-log sensor.cbor
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/google/uuid"

	"github.com/Nilao18/matter-ophelia4/cmd/humidity-sensor/interactive"
	"github.com/Nilao18/matter-ophelia4/pkg/host"
	"github.com/Nilao18/matter-ophelia4/pkg/humidity"
	"github.com/Nilao18/matter-ophelia4/pkg/log"
	"github.com/Nilao18/matter-ophelia4/pkg/persistence"
	"github.com/Nilao18/matter-ophelia4/pkg/version"
)

var (
	configFile      string
	interactiveMode bool
	showVersion     bool
	flags           = DefaultConfig()
)

func init() {
	flag.StringVar(&configFile, "config", "", "Configuration file path (YAML)")
	flag.StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level: debug, info, warn, error")
	flag.StringVar(&flags.TraceLog, "trace-log", "", "Write attribute traces to this file (CBOR)")
	flag.StringVar(&flags.StateFile, "state-file", "", "Restore and save sensor state in this file (JSON)")
	flag.BoolVar(&flags.Simulate, "simulate", flags.Simulate, "Enable simulation mode with synthetic readings")
	flag.DurationVar(&flags.SimulationInterval, "interval", flags.SimulationInterval, "Simulation interval")
	flag.Func("initial", "Initial measured value in 0.01 %RH (default 5000)", func(s string) error {
		var v uint16
		if _, err := fmt.Sscan(s, &v); err != nil {
			return err
		}
		flags.InitialHumidity = v
		return nil
	})
	flag.BoolVar(&interactiveMode, "interactive", false, "Start the interactive shell")
	flag.BoolVar(&showVersion, "version", false, "Print the data model version and exit")
}

func main() {
	flag.Parse()

	if showVersion {
		fmt.Printf("humidity-sensor (data model %s)\n", version.Current)
		return
	}

	cfg, err := resolveConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// resolveConfig loads the config file and applies explicitly set flags on top.
func resolveConfig() (Config, error) {
	cfg := DefaultConfig()
	if configFile != "" {
		var err error
		if cfg, err = LoadConfig(configFile); err != nil {
			return cfg, err
		}
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "log-level":
			cfg.LogLevel = flags.LogLevel
		case "trace-log":
			cfg.TraceLog = flags.TraceLog
		case "state-file":
			cfg.StateFile = flags.StateFile
		case "simulate":
			cfg.Simulate = flags.Simulate
		case "interval":
			cfg.SimulationInterval = flags.SimulationInterval
		case "initial":
			cfg.InitialHumidity = flags.InitialHumidity
		}
	})

	return cfg, cfg.Validate()
}

func run(cfg Config) error {
	level, _ := parseLevel(cfg.LogLevel)
	out := &switchWriter{w: os.Stderr}
	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))

	sessionID := uuid.New().String()
	logger.Info("humidity sensor starting", "session", sessionID, "model", version.Current)

	trace, closeTrace, err := setupTrace(cfg, logger)
	if err != nil {
		return err
	}
	defer closeTrace()

	fw := host.NewFramework(host.Config{
		DynamicEndpointSlots: cfg.DynamicEndpointSlots,
		Logger:               logger.With("component", "host"),
		ProtocolLogger:       trace,
		SessionID:            sessionID,
	})

	sensor, err := humidity.New(fw, humidity.Config{
		Logger:         logger.With("component", "sensor"),
		ProtocolLogger: trace,
		SessionID:      sessionID,
	})
	if err != nil {
		return err
	}
	fw.SetAttributeStore(sensor)

	checkModel(logger)

	var store *persistence.SensorStateStore
	restored := false
	if cfg.StateFile != "" {
		store = persistence.NewSensorStateStore(cfg.StateFile)
		if restored, err = restoreState(store, sensor); err != nil {
			logger.Warn("ignoring saved state", "path", cfg.StateFile, "error", err)
		} else if restored {
			logger.Info("restored sensor state", "path", cfg.StateFile,
				"humidity", sensor.Snapshot().MeasuredValue)
		}
	}

	if err := sensor.InitEndpoint(); err != nil {
		return fmt.Errorf("registering endpoint: %w", err)
	}
	if !restored {
		sensor.SetMeasuredValue(cfg.InitialHumidity)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sim := newSimulator(sensor, cfg.SimulationInterval, logger.With("component", "sim"))
	if cfg.Simulate {
		sim.Start(ctx)
	}
	defer sim.Stop()

	if interactiveMode {
		shell, err := interactive.New(fw, sensor, sim)
		if err != nil {
			return err
		}
		out.Set(shell.Stderr())
		shell.Run(ctx, cancel)
		out.Set(os.Stderr)
	} else {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received signal", "signal", sig)
	}

	logger.Info("shutting down")
	sim.Stop()
	if store != nil {
		if err := saveState(store, sensor); err != nil {
			logger.Error("saving sensor state", "path", store.Path(), "error", err)
		}
	}
	return nil
}

// setupTrace builds the trace logger. The returned logger is nil when
// tracing is disabled.
func setupTrace(cfg Config, logger *slog.Logger) (log.Logger, func(), error) {
	var loggers []log.Logger
	closer := func() {}

	if cfg.TraceLog != "" {
		fl, err := log.NewFileLogger(cfg.TraceLog)
		if err != nil {
			return nil, closer, fmt.Errorf("opening trace log: %w", err)
		}
		loggers = append(loggers, fl)
		closer = func() {
			if err := fl.Close(); err != nil {
				logger.Error("closing trace log", "error", err)
			}
			logger.Info("trace log closed", "path", cfg.TraceLog, "events", fl.Written())
		}
	}
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		loggers = append(loggers, log.NewSlogAdapter(logger.With("component", "trace")))
	}

	switch len(loggers) {
	case 0:
		return nil, closer, nil
	case 1:
		return loggers[0], closer, nil
	default:
		return log.NewMultiLogger(loggers...), closer, nil
	}
}

// checkModel validates the endpoint against the embedded data model manifest.
func checkModel(logger *slog.Logger) {
	m, err := version.LoadCurrentManifest()
	if err != nil {
		logger.Warn("data model manifest unavailable", "error", err)
		return
	}
	result := version.ValidateEndpoint(m, humidity.EndpointType(), humidity.DeviceTypes())
	for _, w := range result.Warnings {
		logger.Warn("data model", "warning", w)
	}
	for _, e := range result.Errors {
		logger.Error("data model", "error", e)
	}
}

// switchWriter lets log output move to the shell once it is running.
type switchWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *switchWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

func (s *switchWriter) Set(w io.Writer) {
	s.mu.Lock()
	s.w = w
	s.mu.Unlock()
}
