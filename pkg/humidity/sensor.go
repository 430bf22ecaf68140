package humidity

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/Nilao18/matter-ophelia4/pkg/clusters"
	"github.com/Nilao18/matter-ophelia4/pkg/log"
	"github.com/Nilao18/matter-ophelia4/pkg/model"
)

// ErrNilHost is returned by New when no host is given.
var ErrNilHost = errors.New("host is nil")

// Config configures a Sensor.
type Config struct {
	// Logger receives operational logs. Nil discards them.
	Logger *slog.Logger

	// ProtocolLogger receives attribute access traces. Nil disables tracing.
	ProtocolLogger log.Logger

	// SessionID tags trace events.
	SessionID string
}

// DefaultConfig returns the default sensor configuration.
func DefaultConfig() Config {
	return Config{}
}

// Sensor is the application side of the humidity sensor endpoint.
type Sensor struct {
	host   Host
	logger *slog.Logger
	trace  log.Logger
	sessID string

	endpoint     *model.EndpointType
	deviceTypes  []model.DeviceType
	dataVersions []model.DataVersion

	mu         sync.Mutex
	state      State
	registered bool
}

// New creates a sensor with the default state. The endpoint is not
// registered until InitEndpoint is called.
func New(host Host, cfg Config) (*Sensor, error) {
	if host == nil {
		return nil, ErrNilHost
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	ep := EndpointType()
	return &Sensor{
		host:         host,
		logger:       logger,
		trace:        log.OrNoop(cfg.ProtocolLogger),
		sessID:       cfg.SessionID,
		endpoint:     ep,
		deviceTypes:  DeviceTypes(),
		dataVersions: make([]model.DataVersion, len(ep.Clusters)),
		state:        DefaultState(),
	}, nil
}

// InitEndpoint registers the endpoint in its dynamic endpoint slot. The
// host's error is returned unchanged. There is no retry.
func (s *Sensor) InitEndpoint() error {
	err := s.host.SetDynamicEndpoint(DynamicEndpointIndex, EndpointID, s.endpoint, s.dataVersions, s.deviceTypes)
	if err != nil {
		s.logger.Error("failed to add humidity sensor endpoint",
			"endpoint", EndpointID,
			"slot", DynamicEndpointIndex,
			"error", err)
		s.emit(log.Event{
			EndpointID: EndpointID,
			Category:   log.CategoryError,
			Error: &log.ErrorEventData{
				Layer:   log.LayerStore,
				Message: err.Error(),
				Context: "SetDynamicEndpoint",
			},
		})
		return err
	}

	s.mu.Lock()
	s.registered = true
	s.mu.Unlock()

	s.logger.Info("added humidity sensor endpoint",
		"endpoint", EndpointID,
		"slot", DynamicEndpointIndex,
		"device_type", s.deviceTypes[0])
	s.emit(log.Event{
		EndpointID: EndpointID,
		Category:   log.CategoryLifecycle,
		Lifecycle: &log.LifecycleEvent{
			OldState: "unregistered",
			NewState: "registered",
			Slot:     DynamicEndpointIndex,
		},
	})
	return nil
}

// Registered reports whether InitEndpoint has succeeded.
func (s *Sensor) Registered() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registered
}

// SetMeasuredValue stores a new reading and reports it. Every call reports,
// including one that repeats the previous value.
func (s *Sensor) SetMeasuredValue(value uint16) {
	s.mu.Lock()
	s.state.MeasuredValue = value
	s.mu.Unlock()

	s.emit(log.Event{
		EndpointID: EndpointID,
		Category:   log.CategoryReport,
		Report: &log.ReportEvent{
			ClusterID:   clusters.RelativeHumidityMeasurementID,
			AttributeID: clusters.HumidityAttrMeasuredValue,
		},
	})
	s.host.ReportingAttributeChange(EndpointID, clusters.RelativeHumidityMeasurementID, clusters.HumidityAttrMeasuredValue)
}

// Snapshot returns a copy of the current state.
func (s *Sensor) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Restore replaces the state without reporting. It is meant for loading
// saved state before InitEndpoint.
func (s *Sensor) Restore(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// ReadAttribute copies the current value of an externally stored attribute
// into buf. Exactly the declared width is written; maxLen is not consulted.
func (s *Sensor) ReadAttribute(endpoint model.EndpointID, cluster model.ClusterID,
	meta *model.AttributeMetadata, buf []byte, maxLen uint16) model.Status {
	if endpoint != EndpointID {
		s.traceAccessOn(endpoint, log.OperationRead, cluster, meta, model.StatusFailure, nil)
		return model.StatusFailure
	}
	c, ok := lookup(cluster, meta)
	if !ok || len(buf) < int(c.width) {
		s.traceAccess(log.OperationRead, cluster, meta, model.StatusFailure, nil)
		return model.StatusFailure
	}

	s.mu.Lock()
	c.load(&s.state, buf[:c.width])
	s.mu.Unlock()

	s.traceAccess(log.OperationRead, cluster, meta, model.StatusSuccess, buf[:c.width])
	return model.StatusSuccess
}

// WriteAttribute copies buf into the backing value of a writable attribute.
// buf is not retained. No range validation is applied.
func (s *Sensor) WriteAttribute(endpoint model.EndpointID, cluster model.ClusterID,
	meta *model.AttributeMetadata, buf []byte) model.Status {
	if endpoint != EndpointID {
		s.traceAccessOn(endpoint, log.OperationWrite, cluster, meta, model.StatusFailure, buf)
		return model.StatusFailure
	}
	c, ok := lookup(cluster, meta)
	if !ok || c.store == nil || len(buf) < int(c.width) {
		s.traceAccess(log.OperationWrite, cluster, meta, model.StatusFailure, buf)
		return model.StatusFailure
	}

	s.mu.Lock()
	c.store(&s.state, buf[:c.width])
	s.mu.Unlock()

	s.traceAccess(log.OperationWrite, cluster, meta, model.StatusSuccess, buf[:c.width])
	return model.StatusSuccess
}

func (s *Sensor) traceAccess(op log.Operation, cluster model.ClusterID,
	meta *model.AttributeMetadata, status model.Status, data []byte) {
	s.traceAccessOn(EndpointID, op, cluster, meta, status, data)
}

// traceAccessOn records an access addressed to endpoint, which differs from
// EndpointID for rejected foreign-endpoint calls.
func (s *Sensor) traceAccessOn(endpoint model.EndpointID, op log.Operation, cluster model.ClusterID,
	meta *model.AttributeMetadata, status model.Status, data []byte) {
	ev := &log.AccessEvent{
		Operation: op,
		ClusterID: cluster,
		Status:    status,
	}
	if meta != nil {
		ev.AttributeID = meta.ID
	}
	if len(data) > 0 {
		ev.Data = append([]byte(nil), data...)
	}
	s.emit(log.Event{EndpointID: endpoint, Category: log.CategoryAccess, Access: ev})
}

func (s *Sensor) emit(event log.Event) {
	event.Timestamp = time.Now()
	event.SessionID = s.sessID
	event.Layer = log.LayerStore
	s.trace.Log(event)
}
