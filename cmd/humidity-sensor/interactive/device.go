// Package interactive provides the interactive command-line interface
// for the humidity sensor.
package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/chzyer/readline"

	"github.com/Nilao18/matter-ophelia4/pkg/host"
	"github.com/Nilao18/matter-ophelia4/pkg/humidity"
	"github.com/Nilao18/matter-ophelia4/pkg/inspect"
	"github.com/Nilao18/matter-ophelia4/pkg/model"
	"github.com/Nilao18/matter-ophelia4/pkg/version"
)

// ErrInvalidHumidity is returned for unparseable humidity input.
var ErrInvalidHumidity = errors.New("invalid humidity value")

// Simulation controls the background reading generator.
type Simulation interface {
	Start(ctx context.Context)
	Stop()
	Running() bool
}

// Device handles interactive mode for humidity-sensor.
type Device struct {
	fw        *host.Framework
	sensor    *humidity.Sensor
	sim       Simulation
	inspector *inspect.Inspector
	formatter *inspect.Formatter
	rl        *readline.Instance
	out       io.Writer

	mu          sync.Mutex
	unsubscribe func()
}

// New creates a new interactive device handler.
func New(fw *host.Framework, sensor *humidity.Sensor, sim Simulation) (*Device, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "sensor> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	d := newDevice(fw, sensor, sim, rl.Stdout())
	d.rl = rl
	return d, nil
}

func newDevice(fw *host.Framework, sensor *humidity.Sensor, sim Simulation, out io.Writer) *Device {
	return &Device{
		fw:        fw,
		sensor:    sensor,
		sim:       sim,
		inspector: inspect.NewInspector(fw),
		formatter: inspect.NewFormatter(),
		out:       out,
	}
}

// Stdout returns a writer that properly coordinates with the readline input.
// Use this for log output to avoid interfering with the command prompt.
func (d *Device) Stdout() io.Writer {
	return d.rl.Stdout()
}

// Stderr returns a writer that properly coordinates with the readline input.
func (d *Device) Stderr() io.Writer {
	return d.rl.Stderr()
}

// Run starts the interactive command loop.
func (d *Device) Run(ctx context.Context, cancel context.CancelFunc) {
	defer d.rl.Close()
	defer d.setReports(false)

	d.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := d.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(d.out, "Exiting...")
			cancel()
			return
		}

		if !d.execute(ctx, line) {
			fmt.Fprintln(d.out, "Exiting...")
			cancel()
			return
		}
	}
}

// execute runs one command line. It returns false when the shell should exit.
func (d *Device) execute(ctx context.Context, line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return true
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		d.printHelp()

	case "inspect", "i":
		d.cmdInspect(args)

	case "read", "r":
		d.cmdRead(args)

	case "write", "w":
		d.cmdWrite(args)

	case "set":
		d.cmdSet(args)

	case "reports":
		d.cmdReports(args)

	case "start", "sim-start":
		d.cmdStart(ctx)

	case "stop", "sim-stop":
		d.cmdStop()

	case "status":
		d.cmdStatus()

	case "quit", "exit", "q":
		return false

	default:
		fmt.Fprintf(d.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return true
}

func (d *Device) printHelp() {
	fmt.Fprintln(d.out, `
Humidity Sensor Commands:
  Inspection:
    inspect [path]     - Inspect endpoint structure (or specific endpoint/cluster)
    read <path>        - Read an attribute value
    write <path> <val> - Write an attribute value

  Measurement:
    set <percent>|null - Set the measured humidity (e.g. set 45.5)
    reports on|off     - Show attribute change reports
    start              - Start simulation
    stop               - Stop simulation
    status             - Show sensor status

  General:
    help               - Show this help
    quit               - Exit

  Path Format:
    endpoint/cluster/attribute - e.g., 1/humidity/measuredValue
    Can use IDs or names: 1/0x0405/0 or 1/rh/measuredValue`)
}

// cmdInspect handles the inspect command.
func (d *Device) cmdInspect(args []string) {
	if len(args) == 0 {
		for _, ep := range d.inspector.InspectAll() {
			fmt.Fprint(d.out, d.formatter.FormatEndpoint(ep))
		}
		return
	}

	path, err := inspect.ParsePath(args[0])
	if err != nil {
		fmt.Fprintf(d.out, "Invalid path: %v\n", err)
		return
	}

	switch {
	case path.IsPartial && !path.HasCluster:
		info, err := d.inspector.InspectEndpoint(path.EndpointID)
		if err != nil {
			fmt.Fprintf(d.out, "Error: %v\n", err)
			return
		}
		fmt.Fprint(d.out, d.formatter.FormatEndpoint(*info))

	case path.IsPartial:
		info, err := d.inspector.InspectCluster(path.EndpointID, path.ClusterID)
		if err != nil {
			fmt.Fprintf(d.out, "Error: %v\n", err)
			return
		}
		fmt.Fprint(d.out, d.formatter.FormatCluster(*info))

	default:
		d.readOne(path)
	}
}

// cmdRead handles the read command.
func (d *Device) cmdRead(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(d.out, "Usage: read <path>")
		fmt.Fprintln(d.out, "  Example: read 1/humidity/measuredValue")
		return
	}

	path, err := inspect.ParsePath(args[0])
	if err != nil {
		fmt.Fprintf(d.out, "Invalid path: %v\n", err)
		return
	}

	if path.IsPartial {
		if !path.HasCluster {
			fmt.Fprintln(d.out, "Path must name a cluster or attribute")
			return
		}
		info, err := d.inspector.InspectCluster(path.EndpointID, path.ClusterID)
		if err != nil {
			fmt.Fprintf(d.out, "Error: %v\n", err)
			return
		}
		for _, a := range info.Attributes {
			row := d.formatter.Row(a)
			fmt.Fprintf(d.out, "  %s: %s\n", row.Name, row.Value)
		}
		return
	}
	d.readOne(path)
}

func (d *Device) readOne(path *inspect.Path) {
	value, meta, err := d.inspector.ReadAttribute(path)
	if err != nil {
		fmt.Fprintf(d.out, "Error: %v\n", err)
		return
	}
	unit := inspect.GetAttributeUnit(path.ClusterID, path.AttributeID)
	fmt.Fprintf(d.out, "%s = %s\n", meta.Name, d.formatter.FormatValue(meta, value, unit))
}

// cmdWrite handles the write command.
func (d *Device) cmdWrite(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(d.out, "Usage: write <path> <value>")
		fmt.Fprintln(d.out, "  Example: write 1/identify/identifyTime 30")
		return
	}

	path, err := inspect.ParsePath(args[0])
	if err != nil {
		fmt.Fprintf(d.out, "Invalid path: %v\n", err)
		return
	}

	if err := d.inspector.WriteAttribute(path, args[1]); err != nil {
		fmt.Fprintf(d.out, "Write failed: %v\n", err)
		return
	}
	fmt.Fprintln(d.out, "OK")
}

// cmdSet sets the measured value directly.
func (d *Device) cmdSet(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(d.out, "Usage: set <percent>|null")
		fmt.Fprintln(d.out, "  Example: set 45.5")
		return
	}

	value, err := parseHumidity(args[0])
	if err != nil {
		fmt.Fprintf(d.out, "Error: %v\n", err)
		return
	}
	if d.sim != nil && d.sim.Running() {
		fmt.Fprintln(d.out, "Note: simulation is running and will overwrite this value")
	}

	d.sensor.SetMeasuredValue(value)
	if value == humidity.MeasuredValueNull {
		fmt.Fprintln(d.out, "Humidity set to null")
		return
	}
	fmt.Fprintf(d.out, "Humidity set to %s\n", inspect.FormatHumidity(value))
}

// cmdReports toggles report display.
func (d *Device) cmdReports(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(d.out, "Usage: reports on|off")
		return
	}
	switch strings.ToLower(args[0]) {
	case "on":
		d.setReports(true)
		fmt.Fprintln(d.out, "Reports enabled")
	case "off":
		d.setReports(false)
		fmt.Fprintln(d.out, "Reports disabled")
	default:
		fmt.Fprintf(d.out, "Unknown option: %s\n", args[0])
	}
}

func (d *Device) setReports(on bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch {
	case on && d.unsubscribe == nil:
		d.unsubscribe = d.fw.Subscribe(d.displayReport)
	case !on && d.unsubscribe != nil:
		d.unsubscribe()
		d.unsubscribe = nil
	}
}

// displayReport prints an attribute change report.
func (d *Device) displayReport(r host.Report) {
	name := fmt.Sprintf("0x%04X", uint16(r.Attribute))
	meta := d.attributeMeta(r)
	if meta != nil {
		name = meta.Name
	}
	unit := inspect.GetAttributeUnit(r.Cluster, r.Attribute)

	fmt.Fprintf(d.out, "\n[%s] %d/0x%04X %s = %s (version %d)\n",
		r.Timestamp.Format("15:04:05"),
		r.Endpoint,
		uint32(r.Cluster),
		name,
		d.formatter.FormatValue(meta, r.Value, unit),
		r.DataVersion)
	if d.rl != nil {
		d.rl.Refresh()
	}
}

func (d *Device) attributeMeta(r host.Report) *model.AttributeMetadata {
	ep, ok := d.fw.EndpointType(r.Endpoint)
	if !ok {
		return nil
	}
	meta, err := ep.FindAttribute(r.Cluster, r.Attribute)
	if err != nil {
		return nil
	}
	return meta
}

// cmdStart starts the simulation.
func (d *Device) cmdStart(ctx context.Context) {
	if d.sim == nil {
		fmt.Fprintln(d.out, "Simulation not available")
		return
	}
	if d.sim.Running() {
		fmt.Fprintln(d.out, "Simulation already running")
		return
	}
	d.sim.Start(ctx)
	fmt.Fprintln(d.out, "Simulation started")
}

// cmdStop stops the simulation.
func (d *Device) cmdStop() {
	if d.sim == nil || !d.sim.Running() {
		fmt.Fprintln(d.out, "Simulation not running")
		return
	}
	d.sim.Stop()
	fmt.Fprintln(d.out, "Simulation stopped")
}

// cmdStatus shows the sensor status.
func (d *Device) cmdStatus() {
	state := d.sensor.Snapshot()

	fmt.Fprintln(d.out, "\nSensor Status")
	fmt.Fprintln(d.out, "-------------------------------------------")
	fmt.Fprintf(d.out, "  Endpoint:       %d\n", humidity.EndpointID)
	fmt.Fprintf(d.out, "  Registered:     %v\n", d.sensor.Registered())
	if state.MeasuredValue == humidity.MeasuredValueNull {
		fmt.Fprintln(d.out, "  Humidity:       null")
	} else {
		fmt.Fprintf(d.out, "  Humidity:       %s\n", inspect.FormatHumidity(state.MeasuredValue))
	}
	fmt.Fprintf(d.out, "  Range:          %s .. %s\n",
		inspect.FormatHumidity(state.MinMeasuredValue), inspect.FormatHumidity(state.MaxMeasuredValue))
	fmt.Fprintf(d.out, "  Identify Time:  %d s\n", state.IdentifyTime)

	simStatus := "stopped"
	if d.sim != nil && d.sim.Running() {
		simStatus = "running"
	}
	fmt.Fprintf(d.out, "  Simulation:     %s\n", simStatus)

	if ep, ok := d.fw.EndpointType(humidity.EndpointID); ok {
		versions := make([]string, 0, len(ep.Clusters))
		for _, c := range ep.Clusters {
			v, _ := d.fw.DataVersion(humidity.EndpointID, c.ID)
			versions = append(versions, fmt.Sprintf("%s=%d", c.Name, v))
		}
		fmt.Fprintf(d.out, "  Data Versions:  %s\n", strings.Join(versions, ", "))

		if m, err := version.LoadCurrentManifest(); err == nil {
			result := version.ValidateEndpoint(m, ep, humidity.DeviceTypes())
			fmt.Fprintf(d.out, "  Model %s:      valid=%v (%d warnings)\n", m.Version, result.Valid, len(result.Warnings))
		}
	}

	fmt.Fprintln(d.out)
}

// parseHumidity parses a percentage ("45.5") or "null" into hundredths
// of a percent.
func parseHumidity(s string) (uint16, error) {
	if strings.EqualFold(s, "null") {
		return humidity.MeasuredValueNull, nil
	}

	pct, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidHumidity, s)
	}
	v := math.Round(pct * 100)
	if math.IsNaN(v) || v < 0 || v >= float64(humidity.MeasuredValueNull) {
		return 0, fmt.Errorf("%w: %q out of range", ErrInvalidHumidity, s)
	}
	return uint16(v), nil
}
