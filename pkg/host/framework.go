package host

import (
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/Nilao18/matter-ophelia4/pkg/clusters"
	"github.com/Nilao18/matter-ophelia4/pkg/log"
	"github.com/Nilao18/matter-ophelia4/pkg/model"
)

// Config configures a Framework.
type Config struct {
	// DynamicEndpointSlots is the number of dynamic endpoint slots.
	DynamicEndpointSlots int

	// Logger receives operational logs. Nil discards them.
	Logger *slog.Logger

	// ProtocolLogger receives host-side traces. Nil disables tracing.
	ProtocolLogger log.Logger

	// SessionID tags trace events.
	SessionID string
}

// DefaultConfig returns the default framework configuration.
func DefaultConfig() Config {
	return Config{DynamicEndpointSlots: 4}
}

type endpointEntry struct {
	slot        uint16
	id          model.EndpointID
	ep          *model.EndpointType
	versions    []model.DataVersion
	deviceTypes []model.DeviceType
}

// Framework is an in-process host framework.
type Framework struct {
	logger *slog.Logger
	trace  log.Logger
	sessID string

	mu      sync.RWMutex
	slots   []*endpointEntry
	store   AttributeStore
	subs    map[uint64]func(Report)
	nextSub uint64
}

// NewFramework creates a framework with empty slots.
func NewFramework(cfg Config) *Framework {
	if cfg.DynamicEndpointSlots <= 0 {
		cfg.DynamicEndpointSlots = DefaultConfig().DynamicEndpointSlots
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Framework{
		logger: logger,
		trace:  log.OrNoop(cfg.ProtocolLogger),
		sessID: cfg.SessionID,
		slots:  make([]*endpointEntry, cfg.DynamicEndpointSlots),
		subs:   make(map[uint64]func(Report)),
	}
}

// SetAttributeStore binds the store serving externally stored attributes.
func (f *Framework) SetAttributeStore(store AttributeStore) {
	f.mu.Lock()
	f.store = store
	f.mu.Unlock()
}

// SetDynamicEndpoint registers ep in slot index. The framework takes over
// dataVersions and seeds each entry with a random start value.
func (f *Framework) SetDynamicEndpoint(index uint16, id model.EndpointID, ep *model.EndpointType,
	dataVersions []model.DataVersion, deviceTypes []model.DeviceType) error {
	if err := f.register(index, id, ep, dataVersions, deviceTypes); err != nil {
		f.logger.Warn("dynamic endpoint rejected", "slot", index, "endpoint", id, "error", err)
		return err
	}

	f.logger.Info("dynamic endpoint registered",
		"slot", index,
		"endpoint", id,
		"clusters", len(ep.Clusters))
	f.emit(log.Event{
		Category:   log.CategoryLifecycle,
		EndpointID: id,
		Lifecycle: &log.LifecycleEvent{
			OldState: "free",
			NewState: "registered",
			Slot:     index,
		},
	})
	return nil
}

func (f *Framework) register(index uint16, id model.EndpointID, ep *model.EndpointType,
	dataVersions []model.DataVersion, deviceTypes []model.DeviceType) error {
	if ep == nil || id == model.RootEndpoint {
		return ErrInvalidEndpoint
	}
	if err := ep.Validate(); err != nil {
		return fmt.Errorf("endpoint %d: %w", id, err)
	}
	if len(dataVersions) != len(ep.Clusters) {
		return fmt.Errorf("%w: %d versions, %d clusters", ErrDataVersionMismatch, len(dataVersions), len(ep.Clusters))
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if int(index) >= len(f.slots) {
		return fmt.Errorf("%w: %d (have %d)", ErrInvalidSlot, index, len(f.slots))
	}
	if f.slots[index] != nil {
		return fmt.Errorf("%w: %d", ErrSlotInUse, index)
	}
	for _, e := range f.slots {
		if e != nil && e.id == id {
			return fmt.Errorf("%w: %d", ErrEndpointInUse, id)
		}
	}

	for i := range dataVersions {
		dataVersions[i] = model.DataVersion(rand.Uint32())
	}
	f.slots[index] = &endpointEntry{
		slot:        index,
		id:          id,
		ep:          ep,
		versions:    dataVersions,
		deviceTypes: append([]model.DeviceType(nil), deviceTypes...),
	}
	return nil
}

// Endpoints returns the registered endpoint IDs in slot order.
func (f *Framework) Endpoints() []model.EndpointID {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var ids []model.EndpointID
	for _, e := range f.slots {
		if e != nil {
			ids = append(ids, e.id)
		}
	}
	return ids
}

// EndpointType returns the descriptor registered for an endpoint.
func (f *Framework) EndpointType(id model.EndpointID) (*model.EndpointType, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if e := f.entryLocked(id); e != nil {
		return e.ep, true
	}
	return nil, false
}

// DataVersion returns the current data version of a cluster.
func (f *Framework) DataVersion(id model.EndpointID, cluster model.ClusterID) (model.DataVersion, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	e := f.entryLocked(id)
	if e == nil {
		return 0, false
	}
	idx := e.ep.ClusterIndex(cluster)
	if idx < 0 {
		return 0, false
	}
	return e.versions[idx], true
}

func (f *Framework) entryLocked(id model.EndpointID) *endpointEntry {
	for _, e := range f.slots {
		if e != nil && e.id == id {
			return e
		}
	}
	return nil
}

// resolve looks up the attribute and snapshots what an access needs.
func (f *Framework) resolve(id model.EndpointID, cluster model.ClusterID, attr model.AttributeID) (*endpointEntry, *model.AttributeMetadata, AttributeStore, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	e := f.entryLocked(id)
	if e == nil {
		return nil, nil, nil, fmt.Errorf("%w: %d", ErrUnsupportedEndpoint, id)
	}
	c, ok := e.ep.FindCluster(cluster)
	if !ok {
		return nil, nil, nil, fmt.Errorf("%w: 0x%04X", ErrUnsupportedCluster, uint32(cluster))
	}
	meta, ok := c.FindAttribute(attr)
	if !ok {
		return nil, nil, nil, fmt.Errorf("%w: 0x%04X", ErrUnsupportedAttribute, uint16(attr))
	}
	return e, meta, f.store, nil
}

// ReadAttribute reads an attribute the way a remote peer would.
func (f *Framework) ReadAttribute(id model.EndpointID, cluster model.ClusterID, attr model.AttributeID) (Value, error) {
	e, meta, store, err := f.resolve(id, cluster, attr)
	if err != nil {
		return Value{}, err
	}
	if !meta.Mask.CanRead() {
		return Value{}, fmt.Errorf("%w: %s", ErrUnsupportedRead, meta.Name)
	}

	switch {
	case cluster == clusters.DescriptorID && meta.Type.IsList():
		data, err := f.descriptorList(e, attr)
		if err != nil {
			return Value{}, err
		}
		return Value{Type: meta.Type, Data: data}, nil

	case !meta.Mask.IsExternal():
		return Value{Type: meta.Type, Data: defaultBytes(meta)}, nil
	}

	if store == nil {
		return Value{}, fmt.Errorf("%w: no attribute store bound", ErrStoreFailure)
	}
	buf := make([]byte, meta.Size)
	status := store.ReadAttribute(id, cluster, meta, buf, meta.Size)
	f.traceAccess(log.OperationRead, id, cluster, attr, status, buf)
	if !status.OK() {
		return Value{}, fmt.Errorf("%w: read %s: %s", ErrStoreFailure, meta.Name, status)
	}
	return Value{Type: meta.Type, Data: buf}, nil
}

// WriteAttribute writes an attribute the way a remote peer would. data must
// have exactly the declared width. A successful write is reported.
func (f *Framework) WriteAttribute(id model.EndpointID, cluster model.ClusterID, attr model.AttributeID, data []byte) error {
	_, meta, store, err := f.resolve(id, cluster, attr)
	if err != nil {
		return err
	}
	if !meta.Mask.CanWrite() || !meta.Mask.IsExternal() {
		return fmt.Errorf("%w: %s", ErrUnsupportedWrite, meta.Name)
	}
	if len(data) != int(meta.Size) {
		return fmt.Errorf("%w: %s needs %d bytes, got %d", ErrInvalidValue, meta.Name, meta.Size, len(data))
	}
	if store == nil {
		return fmt.Errorf("%w: no attribute store bound", ErrStoreFailure)
	}

	status := store.WriteAttribute(id, cluster, meta, data)
	f.traceAccess(log.OperationWrite, id, cluster, attr, status, data)
	if !status.OK() {
		return fmt.Errorf("%w: write %s: %s", ErrStoreFailure, meta.Name, status)
	}

	f.ReportingAttributeChange(id, cluster, attr)
	return nil
}

// ReportingAttributeChange marks an attribute changed. The cluster data
// version is bumped and a Report is delivered to every subscriber before
// returning. Unknown attributes are logged and dropped.
func (f *Framework) ReportingAttributeChange(id model.EndpointID, cluster model.ClusterID, attr model.AttributeID) {
	f.mu.Lock()
	e := f.entryLocked(id)
	idx := -1
	if e != nil {
		idx = e.ep.ClusterIndex(cluster)
	}
	if idx < 0 {
		f.mu.Unlock()
		f.logger.Warn("change reported for unknown cluster", "endpoint", id, "cluster", cluster)
		return
	}
	e.versions[idx]++
	version := e.versions[idx]
	subs := make([]func(Report), 0, len(f.subs))
	for _, fn := range f.subs {
		subs = append(subs, fn)
	}
	f.mu.Unlock()

	value, err := f.ReadAttribute(id, cluster, attr)
	if err != nil {
		f.logger.Warn("failed to read changed attribute", "endpoint", id, "cluster", cluster, "attribute", attr, "error", err)
	}

	report := Report{
		Endpoint:    id,
		Cluster:     cluster,
		Attribute:   attr,
		DataVersion: version,
		Value:       value,
		Timestamp:   time.Now(),
	}
	f.emit(log.Event{
		Category:   log.CategoryReport,
		EndpointID: id,
		Report: &log.ReportEvent{
			ClusterID:   cluster,
			AttributeID: attr,
			DataVersion: version,
			Data:        value.Data,
		},
	})

	for _, fn := range subs {
		fn(report)
	}
}

// Subscribe registers fn for every Report. The returned func cancels the
// subscription.
func (f *Framework) Subscribe(fn func(Report)) (cancel func()) {
	f.mu.Lock()
	id := f.nextSub
	f.nextSub++
	f.subs[id] = fn
	f.mu.Unlock()

	return func() {
		f.mu.Lock()
		delete(f.subs, id)
		f.mu.Unlock()
	}
}

func (f *Framework) descriptorList(e *endpointEntry, attr model.AttributeID) ([]byte, error) {
	var list any
	switch attr {
	case clusters.DescriptorAttrDeviceTypeList:
		entries := make([]DeviceTypeEntry, 0, len(e.deviceTypes))
		for _, dt := range e.deviceTypes {
			entries = append(entries, DeviceTypeEntry{DeviceType: uint32(dt.ID), Revision: uint16(dt.Revision)})
		}
		list = entries
	case clusters.DescriptorAttrServerList:
		list = clusterIDs(e.ep, model.ClusterMaskServer)
	case clusters.DescriptorAttrClientList:
		list = clusterIDs(e.ep, model.ClusterMaskClient)
	case clusters.DescriptorAttrPartsList:
		// Dynamic endpoints here have no children.
		list = []uint16{}
	default:
		return nil, fmt.Errorf("%w: descriptor list 0x%04X", ErrUnsupportedRead, uint16(attr))
	}
	return log.EncodeValue(list)
}

func clusterIDs(ep *model.EndpointType, mask model.ClusterMask) []uint32 {
	ids := make([]uint32, 0, len(ep.Clusters))
	for _, c := range ep.Clusters {
		if c.Mask&mask != 0 {
			ids = append(ids, uint32(c.ID))
		}
	}
	return ids
}

func defaultBytes(meta *model.AttributeMetadata) []byte {
	buf := make([]byte, meta.Size)
	if !meta.Default.Set {
		return buf
	}
	switch meta.Size {
	case 1:
		buf[0] = uint8(meta.Default.Value)
	case 2:
		binary.LittleEndian.PutUint16(buf, uint16(meta.Default.Value))
	case 4:
		binary.LittleEndian.PutUint32(buf, meta.Default.Value)
	}
	return buf
}

func (f *Framework) traceAccess(op log.Operation, id model.EndpointID, cluster model.ClusterID,
	attr model.AttributeID, status model.Status, data []byte) {
	f.emit(log.Event{
		Category:   log.CategoryAccess,
		EndpointID: id,
		Access: &log.AccessEvent{
			Operation:   op,
			ClusterID:   cluster,
			AttributeID: attr,
			Status:      status,
			Data:        append([]byte(nil), data...),
		},
	})
}

func (f *Framework) emit(event log.Event) {
	event.Timestamp = time.Now()
	event.SessionID = f.sessID
	event.Layer = log.LayerHost
	f.trace.Log(event)
}
