package commands

import (
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/Nilao18/matter-ophelia4/pkg/log"
)

// RunExport exports matching events in the given format.
func RunExport(path, format string, filter log.Filter, w io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	switch format {
	case "jsonl":
		return exportJSONL(reader, w)
	case "csv":
		return exportCSV(reader, w)
	default:
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}
}

func exportJSONL(reader *log.Reader, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := encoder.Encode(event); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}
}

var csvHeader = []string{"timestamp", "session_id", "layer", "category", "endpoint", "type", "cluster", "attribute", "status", "data"}

func exportCSV(reader *log.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		var cluster, attr, status, data string
		switch {
		case event.Access != nil:
			cluster = fmt.Sprintf("0x%04X", uint32(event.Access.ClusterID))
			attr = fmt.Sprintf("0x%04X", uint16(event.Access.AttributeID))
			status = event.Access.Status.String()
			data = hex.EncodeToString(event.Access.Data)
		case event.Report != nil:
			cluster = fmt.Sprintf("0x%04X", uint32(event.Report.ClusterID))
			attr = fmt.Sprintf("0x%04X", uint16(event.Report.AttributeID))
			data = hex.EncodeToString(event.Report.Data)
		case event.Error != nil:
			data = event.Error.Message
		}

		row := []string{
			event.Timestamp.UTC().Format(timeLayout),
			event.SessionID,
			event.Layer.String(),
			event.Category.String(),
			strconv.Itoa(int(event.EndpointID)),
			eventType(event),
			cluster,
			attr,
			status,
			data,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
}
