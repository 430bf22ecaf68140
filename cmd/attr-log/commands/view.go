// Package commands implements the attr-log CLI commands.
package commands

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/Nilao18/matter-ophelia4/pkg/inspect"
	"github.com/Nilao18/matter-ophelia4/pkg/log"
	"github.com/Nilao18/matter-ophelia4/pkg/model"
)

const timeLayout = "2006-01-02T15:04:05.000000Z"

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [session] LAYER Type ep=N
	ts := event.Timestamp.UTC().Format(timeLayout)
	fmt.Fprintf(w, "%s [%s] %-5s %s ep=%d\n",
		ts, shortenSessionID(event.SessionID), event.Layer.String(), eventType(event), event.EndpointID)

	switch {
	case event.Access != nil:
		formatAccessDetails(w, event.Access)
	case event.Report != nil:
		formatReportDetails(w, event.Report)
	case event.Lifecycle != nil:
		formatLifecycleDetails(w, event.Lifecycle)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w) // Blank line between events
}

// eventType returns the display label of an event.
func eventType(event log.Event) string {
	switch {
	case event.Access != nil:
		return event.Access.Operation.String()
	case event.Report != nil:
		return "Report"
	case event.Lifecycle != nil:
		return "Lifecycle"
	case event.Error != nil:
		return "Error"
	default:
		return "Unknown"
	}
}

// shortenSessionID returns the first 8 characters of the session ID.
func shortenSessionID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

// attributeLabel names an attribute as "Cluster.attribute", falling back to
// hex IDs for unknown entries.
func attributeLabel(cluster model.ClusterID, attr model.AttributeID) string {
	c, a := fmt.Sprintf("0x%04X", uint32(cluster)), fmt.Sprintf("0x%04X", uint16(attr))
	if name := clusterName(cluster); name != "" {
		c = name
	}
	if name := attributeName(cluster, attr); name != "" {
		a = name
	}
	return c + "." + a
}

func clusterName(id model.ClusterID) string {
	for _, c := range knownClusters {
		if c.ID == id {
			return c.Name
		}
	}
	return ""
}

func attributeName(cluster model.ClusterID, attr model.AttributeID) string {
	for _, c := range knownClusters {
		if c.ID != cluster {
			continue
		}
		if meta, ok := c.FindAttribute(attr); ok {
			return meta.Name
		}
	}
	return ""
}

// formatAccessDetails writes read/write details.
func formatAccessDetails(w io.Writer, a *log.AccessEvent) {
	fmt.Fprintf(w, "  Attribute: %s\n", attributeLabel(a.ClusterID, a.AttributeID))
	fmt.Fprintf(w, "  Status: %s\n", a.Status.String())
	if len(a.Data) > 0 {
		fmt.Fprintf(w, "  Data: %s", hex.EncodeToString(a.Data))
		if unit := inspect.GetAttributeUnit(a.ClusterID, a.AttributeID); unit == "%RH" && len(a.Data) == 2 {
			v := uint16(a.Data[0]) | uint16(a.Data[1])<<8
			fmt.Fprintf(w, " (%s)", inspect.FormatHumidity(v))
		}
		fmt.Fprintln(w)
	}
}

// formatReportDetails writes report details.
func formatReportDetails(w io.Writer, r *log.ReportEvent) {
	fmt.Fprintf(w, "  Attribute: %s\n", attributeLabel(r.ClusterID, r.AttributeID))
	if r.DataVersion != 0 {
		fmt.Fprintf(w, "  DataVersion: %d\n", r.DataVersion)
	}
	if len(r.Data) > 0 {
		fmt.Fprintf(w, "  Data: %s\n", hex.EncodeToString(r.Data))
	}
}

// formatLifecycleDetails writes registration state details.
func formatLifecycleDetails(w io.Writer, lc *log.LifecycleEvent) {
	fmt.Fprintf(w, "  Slot: %d\n", lc.Slot)
	if lc.OldState != "" {
		fmt.Fprintf(w, "  %s -> %s\n", lc.OldState, lc.NewState)
	} else {
		fmt.Fprintf(w, "  -> %s\n", lc.NewState)
	}
	if lc.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", lc.Reason)
	}
}

// formatErrorDetails writes error details.
func formatErrorDetails(w io.Writer, err *log.ErrorEventData) {
	fmt.Fprintf(w, "  Layer: %s\n", err.Layer.String())
	fmt.Fprintf(w, "  Message: %s\n", err.Message)
	if err.Context != "" {
		fmt.Fprintf(w, "  Context: %s\n", err.Context)
	}
}

// RunView prints every matching event in human-readable form.
func RunView(path string, filter log.Filter, output io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(output, event)
	}
}
