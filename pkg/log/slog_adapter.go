package log

import (
	"context"
	"encoding/hex"
	"log/slog"
)

// SlogAdapter writes trace events to an slog.Logger.
// Useful during development to see dispatch traffic in the console.
type SlogAdapter struct {
	logger *slog.Logger
	level  slog.Level
}

// NewSlogAdapter creates a SlogAdapter that logs at Debug level.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger, level: slog.LevelDebug}
}

// WithLevel returns a copy of the adapter that logs at the given level.
func (a *SlogAdapter) WithLevel(level slog.Level) *SlogAdapter {
	return &SlogAdapter{logger: a.logger, level: level}
}

// Log writes the event to the slog logger.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("layer", event.Layer.String()),
		slog.String("category", event.Category.String()),
		slog.Uint64("endpoint", uint64(event.EndpointID)),
	}

	if event.SessionID != "" {
		attrs = append(attrs, slog.String("session_id", event.SessionID))
	}

	switch {
	case event.Access != nil:
		attrs = append(attrs,
			slog.String("op", event.Access.Operation.String()),
			slog.Uint64("cluster", uint64(event.Access.ClusterID)),
			slog.Uint64("attribute", uint64(event.Access.AttributeID)),
			slog.String("status", event.Access.Status.String()),
		)
		if len(event.Access.Data) > 0 {
			attrs = append(attrs, slog.String("data", hex.EncodeToString(event.Access.Data)))
		}
	case event.Report != nil:
		attrs = append(attrs,
			slog.Uint64("cluster", uint64(event.Report.ClusterID)),
			slog.Uint64("attribute", uint64(event.Report.AttributeID)),
		)
		if event.Report.DataVersion != 0 {
			attrs = append(attrs, slog.Uint64("data_version", uint64(event.Report.DataVersion)))
		}
	case event.Lifecycle != nil:
		attrs = append(attrs,
			slog.Uint64("slot", uint64(event.Lifecycle.Slot)),
			slog.String("old_state", event.Lifecycle.OldState),
			slog.String("new_state", event.Lifecycle.NewState),
		)
		if event.Lifecycle.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.Lifecycle.Reason))
		}
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("error_layer", event.Error.Layer.String()),
			slog.String("error_msg", event.Error.Message),
			slog.String("error_context", event.Error.Context),
		)
	}

	a.logger.LogAttrs(context.Background(), a.level, "trace", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
