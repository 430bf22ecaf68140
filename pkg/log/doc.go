// Package log provides structured attribute-access tracing.
//
// This package defines the Logger interface and Event types that capture
// what happens at the boundary between the host framework and the
// application's attribute store: reads, writes, change reports and
// endpoint registration. It is separate from operational logging (slog) -
// the trace is a complete machine-readable record for debugging and
// analysis.
//
// # Basic Usage
//
// Applications configure tracing by providing a Logger implementation:
//
//	// For development: trace to console via slog
//	cfg.ProtocolLogger = log.NewSlogAdapter(slog.Default())
//
//	// For field analysis: write to binary file
//	cfg.ProtocolLogger, _ = log.NewFileLogger("/var/log/humidity/trace.alog")
//
//	// Both: use MultiLogger
//	cfg.ProtocolLogger = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # Event Types
//
// Events are captured at two layers:
//   - Host: the framework side (registration, routing, reports)
//   - Store: the application side (external read/write dispatch)
//
// Each event carries exactly one payload: AccessEvent, ReportEvent,
// LifecycleEvent or ErrorEventData.
//
// # File Format
//
// Trace files are a stream of CBOR-encoded events (integer keys) with the
// .alog extension. The attr-log CLI tool views and summarizes them.
package log
