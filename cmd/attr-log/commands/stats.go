package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/Nilao18/matter-ophelia4/pkg/log"
	"github.com/Nilao18/matter-ophelia4/pkg/model"
)

// Stats holds aggregate statistics about a trace file.
type Stats struct {
	TotalEvents      int
	EventsByLayer    map[log.Layer]int
	EventsByCategory map[log.Category]int
	Reads            int
	Writes           int
	FailedAccesses   int
	Reports          map[AttributeKey]int
	Sessions         map[string]*SessionStats
	Errors           int
	TimeRange        struct {
		Start time.Time
		End   time.Time
	}
}

// AttributeKey identifies an attribute across endpoints.
type AttributeKey struct {
	Endpoint  model.EndpointID
	Cluster   model.ClusterID
	Attribute model.AttributeID
}

// SessionStats holds statistics for a single process run.
type SessionStats struct {
	FirstSeen    time.Time
	LastSeen     time.Time
	Events       int
	Registration string
}

// RunStats analyzes the trace file and prints statistics.
func RunStats(path string, filter log.Filter, w io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	stats := newStats()
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		stats.add(event)
	}

	printStats(w, stats)
	return nil
}

func newStats() *Stats {
	return &Stats{
		EventsByLayer:    make(map[log.Layer]int),
		EventsByCategory: make(map[log.Category]int),
		Reports:          make(map[AttributeKey]int),
		Sessions:         make(map[string]*SessionStats),
	}
}

func (s *Stats) add(event log.Event) {
	s.TotalEvents++
	s.EventsByLayer[event.Layer]++
	s.EventsByCategory[event.Category]++

	// Track time range
	if s.TimeRange.Start.IsZero() || event.Timestamp.Before(s.TimeRange.Start) {
		s.TimeRange.Start = event.Timestamp
	}
	if event.Timestamp.After(s.TimeRange.End) {
		s.TimeRange.End = event.Timestamp
	}

	sess, ok := s.Sessions[event.SessionID]
	if !ok {
		sess = &SessionStats{FirstSeen: event.Timestamp, LastSeen: event.Timestamp}
		s.Sessions[event.SessionID] = sess
	}
	sess.Events++
	if event.Timestamp.After(sess.LastSeen) {
		sess.LastSeen = event.Timestamp
	}

	switch {
	case event.Access != nil:
		if event.Access.Operation == log.OperationWrite {
			s.Writes++
		} else {
			s.Reads++
		}
		if !event.Access.Status.OK() {
			s.FailedAccesses++
		}
	case event.Report != nil:
		// Count reports once, at the store layer where they originate.
		if event.Layer == log.LayerStore {
			s.Reports[AttributeKey{event.EndpointID, event.Report.ClusterID, event.Report.AttributeID}]++
		}
	case event.Lifecycle != nil:
		sess.Registration = event.Lifecycle.NewState
	case event.Error != nil:
		s.Errors++
	}
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Attribute Trace Statistics ===")
	fmt.Fprintln(w)

	// Time range
	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Layer:")
	for _, layer := range []log.Layer{log.LayerHost, log.LayerStore} {
		if count := stats.EventsByLayer[layer]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", layer.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{log.CategoryAccess, log.CategoryReport, log.CategoryLifecycle, log.CategoryError} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Accesses: %d reads, %d writes, %d failed\n", stats.Reads, stats.Writes, stats.FailedAccesses)

	if len(stats.Reports) > 0 {
		keys := make([]AttributeKey, 0, len(stats.Reports))
		for k := range stats.Reports {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			a, b := keys[i], keys[j]
			if a.Endpoint != b.Endpoint {
				return a.Endpoint < b.Endpoint
			}
			if a.Cluster != b.Cluster {
				return a.Cluster < b.Cluster
			}
			return a.Attribute < b.Attribute
		})

		fmt.Fprintln(w)
		fmt.Fprintln(w, "Reports:")
		for _, k := range keys {
			fmt.Fprintf(w, "  %d/%s %d\n", k.Endpoint, attributeLabel(k.Cluster, k.Attribute), stats.Reports[k])
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Sessions: %d\n", len(stats.Sessions))
	if len(stats.Sessions) > 0 {
		type sessInfo struct {
			id    string
			stats *SessionStats
		}
		sessions := make([]sessInfo, 0, len(stats.Sessions))
		for id, ss := range stats.Sessions {
			sessions = append(sessions, sessInfo{id, ss})
		}
		sort.Slice(sessions, func(i, j int) bool {
			return sessions[i].stats.FirstSeen.Before(sessions[j].stats.FirstSeen)
		})

		fmt.Fprintln(w)
		for _, s := range sessions {
			duration := s.stats.LastSeen.Sub(s.stats.FirstSeen).Round(time.Millisecond)
			fmt.Fprintf(w, "  [%s] %d events, duration %s\n", shortenSessionID(s.id), s.stats.Events, duration)
			if s.stats.Registration != "" {
				fmt.Fprintf(w, "           Endpoint: %s\n", s.stats.Registration)
			}
		}
	}

	if stats.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	}
}
