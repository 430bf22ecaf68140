package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/Nilao18/matter-ophelia4/pkg/inspect"
	"github.com/Nilao18/matter-ophelia4/pkg/log"
	"github.com/Nilao18/matter-ophelia4/pkg/model"
)

// FilterOptions specifies filtering criteria shared by all commands.
// Empty fields match everything.
type FilterOptions struct {
	SessionID string
	TimeStart string
	TimeEnd   string
	Layer     string
	Category  string
	Endpoint  string
	Cluster   string
}

// BuildFilter converts command-line options into a log filter.
func BuildFilter(opts FilterOptions) (log.Filter, error) {
	filter := log.Filter{SessionID: opts.SessionID}

	if opts.TimeStart != "" {
		t, err := time.Parse(time.RFC3339, opts.TimeStart)
		if err != nil {
			return filter, fmt.Errorf("invalid time-start format: %w", err)
		}
		filter.TimeStart = &t
	}

	if opts.TimeEnd != "" {
		t, err := time.Parse(time.RFC3339, opts.TimeEnd)
		if err != nil {
			return filter, fmt.Errorf("invalid time-end format: %w", err)
		}
		filter.TimeEnd = &t
	}

	if opts.Layer != "" {
		l, err := parseLayer(opts.Layer)
		if err != nil {
			return filter, err
		}
		filter.Layer = &l
	}

	if opts.Category != "" {
		c, err := parseCategory(opts.Category)
		if err != nil {
			return filter, err
		}
		filter.Category = &c
	}

	if opts.Endpoint != "" {
		n, err := strconv.ParseUint(opts.Endpoint, 0, 16)
		if err != nil {
			return filter, fmt.Errorf("invalid endpoint: %s", opts.Endpoint)
		}
		ep := model.EndpointID(n)
		filter.EndpointID = &ep
	}

	if opts.Cluster != "" {
		c, err := parseCluster(opts.Cluster)
		if err != nil {
			return filter, err
		}
		filter.ClusterID = &c
	}

	return filter, nil
}

// parseLayer parses a layer string (case-insensitive).
func parseLayer(s string) (log.Layer, error) {
	switch strings.ToLower(s) {
	case "host":
		return log.LayerHost, nil
	case "store":
		return log.LayerStore, nil
	default:
		return 0, fmt.Errorf("invalid layer: %s (must be host or store)", s)
	}
}

// parseCategory parses a category string (case-insensitive).
func parseCategory(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "access":
		return log.CategoryAccess, nil
	case "report":
		return log.CategoryReport, nil
	case "lifecycle":
		return log.CategoryLifecycle, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be access, report, lifecycle, or error)", s)
	}
}

// parseCluster accepts a cluster name or a decimal/0x-prefixed number.
func parseCluster(s string) (model.ClusterID, error) {
	if id, ok := inspect.ResolveClusterName(s); ok {
		return id, nil
	}
	n, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid cluster: %s", s)
	}
	return model.ClusterID(n), nil
}

// RunFilter filters the trace file and writes matching events to output.
// It returns the number of events written.
func RunFilter(path, output string, filter log.Filter) (int, error) {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	logger, err := log.NewFileLogger(output)
	if err != nil {
		return 0, fmt.Errorf("failed to create output logger: %w", err)
	}
	defer logger.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return logger.Written(), fmt.Errorf("failed to read event: %w", err)
		}
		logger.Log(event)
	}
	return logger.Written(), nil
}
