package log

import (
	"time"

	"github.com/Nilao18/matter-ophelia4/pkg/model"
)

// Event represents a trace event captured at either layer.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID identifies the process run (UUID).
	SessionID string `cbor:"2,keyasint,omitempty"`

	// Layer where the event was captured.
	Layer Layer `cbor:"3,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"4,keyasint"`

	// EndpointID is the addressed endpoint.
	EndpointID model.EndpointID `cbor:"5,keyasint"`

	// Type-specific payload (one of these will be set).
	Access    *AccessEvent    `cbor:"10,keyasint,omitempty"` // Read/write dispatch
	Report    *ReportEvent    `cbor:"11,keyasint,omitempty"` // Attribute changed
	Lifecycle *LifecycleEvent `cbor:"12,keyasint,omitempty"` // Endpoint registration
	Error     *ErrorEventData `cbor:"13,keyasint,omitempty"` // Errors at any layer
}

// Layer indicates which side of the callback boundary captured the event.
type Layer uint8

const (
	// LayerHost is the host framework side.
	LayerHost Layer = 0
	// LayerStore is the application attribute store.
	LayerStore Layer = 1
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerHost:
		return "HOST"
	case LayerStore:
		return "STORE"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryAccess indicates an attribute read or write.
	CategoryAccess Category = 0
	// CategoryReport indicates an attribute-changed report.
	CategoryReport Category = 1
	// CategoryLifecycle indicates an endpoint registration step.
	CategoryLifecycle Category = 2
	// CategoryError indicates an error event.
	CategoryError Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryAccess:
		return "ACCESS"
	case CategoryReport:
		return "REPORT"
	case CategoryLifecycle:
		return "LIFECYCLE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Operation distinguishes attribute reads from writes.
type Operation uint8

const (
	// OperationRead is an attribute read.
	OperationRead Operation = 0
	// OperationWrite is an attribute write.
	OperationWrite Operation = 1
)

// String returns the operation name.
func (o Operation) String() string {
	switch o {
	case OperationRead:
		return "READ"
	case OperationWrite:
		return "WRITE"
	default:
		return "UNKNOWN"
	}
}

// AccessEvent captures one read or write dispatch.
type AccessEvent struct {
	// Operation is read or write.
	Operation Operation `cbor:"1,keyasint"`

	// ClusterID is the addressed cluster.
	ClusterID model.ClusterID `cbor:"2,keyasint"`

	// AttributeID is the addressed attribute.
	AttributeID model.AttributeID `cbor:"3,keyasint"`

	// Status is the dispatch outcome.
	Status model.Status `cbor:"4,keyasint"`

	// Data holds the bytes copied (read) or supplied (write).
	Data []byte `cbor:"5,keyasint,omitempty"`
}

// ReportEvent captures an attribute-changed notification.
type ReportEvent struct {
	// ClusterID is the changed cluster.
	ClusterID model.ClusterID `cbor:"1,keyasint"`

	// AttributeID is the changed attribute.
	AttributeID model.AttributeID `cbor:"2,keyasint"`

	// DataVersion is the cluster data version after the change (host only).
	DataVersion model.DataVersion `cbor:"3,keyasint,omitempty"`

	// Data is the encoded value at report time (host only).
	Data []byte `cbor:"4,keyasint,omitempty"`
}

// LifecycleEvent captures endpoint registration state changes.
type LifecycleEvent struct {
	// OldState is the previous state (may be empty).
	OldState string `cbor:"1,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"2,keyasint"`

	// Slot is the dynamic endpoint slot index.
	Slot uint16 `cbor:"3,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"4,keyasint,omitempty"`
}

// ErrorEventData captures errors at any layer.
type ErrorEventData struct {
	// Layer where the error occurred.
	Layer Layer `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Context describes what operation was being performed.
	Context string `cbor:"3,keyasint,omitempty"`
}
