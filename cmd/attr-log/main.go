// Command attr-log is a tool for viewing and analyzing attribute trace files.
//
// Trace files are written by humidity-sensor when started with -trace-log.
//
// Usage:
//
//	attr-log <command> [flags] <file.cbor>
//
// Commands:
//
//	view     View trace file in human-readable format
//	export   Export trace file to JSON or CSV format
//	filter   Filter trace file and write to new file
//	stats    Show statistics about the trace file
//
// Examples:
//
//	# View all events
//	attr-log view sensor.cbor
//
//	# View only store-side reads and writes
//	attr-log view -layer store -category access sensor.cbor
//
//	# Export humidity cluster events to CSV
//	attr-log export -format csv -cluster humidity sensor.cbor
//
//	# Keep one session and save to new file
//	attr-log filter -session 3f2a9c1e-... -o session.cbor sensor.cbor
//
//	# Show statistics
//	attr-log stats sensor.cbor
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/Nilao18/matter-ophelia4/cmd/attr-log/commands"
	"github.com/Nilao18/matter-ophelia4/pkg/log"
)

const usage = `attr-log - Attribute Trace Analyzer

Usage:
  attr-log <command> [flags] <file.cbor>

Commands:
  view     View trace file in human-readable format
  export   Export trace file to JSON or CSV format
  filter   Filter trace file and write to new file
  stats    Show statistics about the trace file

Use "attr-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "filter":
		runFilter(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

// newFlagSet creates a flag set with the shared filter flags.
func newFlagSet(name, synopsis string) (*flag.FlagSet, *commands.FilterOptions) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "attr-log %s - %s\n\nUsage:\n  attr-log %s [flags] <file.cbor>\n\nFlags:\n", name, synopsis, name)
		fs.PrintDefaults()
	}

	opts := &commands.FilterOptions{}
	fs.StringVar(&opts.SessionID, "session", "", "Filter by session ID")
	fs.StringVar(&opts.TimeStart, "time-start", "", "Filter by start time (RFC3339)")
	fs.StringVar(&opts.TimeEnd, "time-end", "", "Filter by end time (RFC3339)")
	fs.StringVar(&opts.Layer, "layer", "", "Filter by layer (host, store)")
	fs.StringVar(&opts.Category, "category", "", "Filter by category (access, report, lifecycle, error)")
	fs.StringVar(&opts.Endpoint, "endpoint", "", "Filter by endpoint ID")
	fs.StringVar(&opts.Cluster, "cluster", "", "Filter by cluster (name or ID)")
	return fs, opts
}

// parseArgs parses flags and returns the trace path and filter.
func parseArgs(fs *flag.FlagSet, opts *commands.FilterOptions, args []string) (string, commands.FilterOptions) {
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: trace file path required")
		fs.Usage()
		os.Exit(1)
	}
	return fs.Arg(0), *opts
}

func buildFilter(opts commands.FilterOptions) log.Filter {
	f, err := commands.BuildFilter(opts)
	if err != nil {
		fatal(err)
	}
	return f
}

func runView(args []string) {
	fs, opts := newFlagSet("view", "View trace file in human-readable format")
	path, o := parseArgs(fs, opts, args)

	if err := commands.RunView(path, buildFilter(o), os.Stdout); err != nil {
		fatal(err)
	}
}

func runExport(args []string) {
	fs, opts := newFlagSet("export", "Export trace file to JSON or CSV format")
	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")
	path, o := parseArgs(fs, opts, args)

	var w io.Writer = os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			fatal(fmt.Errorf("failed to create output file: %w", err))
		}
		defer f.Close()
		w = f
	}

	if err := commands.RunExport(path, *format, buildFilter(o), w); err != nil {
		fatal(err)
	}
}

func runFilter(args []string) {
	fs, opts := newFlagSet("filter", "Filter trace file and write to new file")
	output := fs.String("o", "", "Output file (required)")
	path, o := parseArgs(fs, opts, args)

	if *output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		fs.Usage()
		os.Exit(1)
	}

	n, err := commands.RunFilter(path, *output, buildFilter(o))
	if err != nil {
		fatal(err)
	}
	fmt.Printf("Filtered %d events to %s\n", n, *output)
}

func runStats(args []string) {
	fs, opts := newFlagSet("stats", "Show statistics about the trace file")
	path, o := parseArgs(fs, opts, args)

	if err := commands.RunStats(path, buildFilter(o), os.Stdout); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
