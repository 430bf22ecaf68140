package humidity_test

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/Nilao18/matter-ophelia4/pkg/clusters"
	"github.com/Nilao18/matter-ophelia4/pkg/humidity"
	"github.com/Nilao18/matter-ophelia4/pkg/humidity/mocks"
	"github.com/Nilao18/matter-ophelia4/pkg/log"
	"github.com/Nilao18/matter-ophelia4/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	mu     sync.Mutex
	events []log.Event
}

func (r *recordingLogger) Log(event log.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingLogger) Events() []log.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]log.Event(nil), r.events...)
}

func newSensor(t *testing.T) (*humidity.Sensor, *mocks.MockHost, *recordingLogger) {
	t.Helper()
	host := mocks.NewMockHost(t)
	trace := &recordingLogger{}
	cfg := humidity.DefaultConfig()
	cfg.ProtocolLogger = trace
	cfg.SessionID = "test-session"
	s, err := humidity.New(host, cfg)
	require.NoError(t, err)
	return s, host, trace
}

func meta(t *testing.T, cluster model.ClusterID, attr model.AttributeID) *model.AttributeMetadata {
	t.Helper()
	m, err := humidity.EndpointType().FindAttribute(cluster, attr)
	require.NoError(t, err)
	return m
}

func expectReport(host *mocks.MockHost) *mocks.MockHost_ReportingAttributeChange_Call {
	return host.EXPECT().ReportingAttributeChange(
		humidity.EndpointID,
		clusters.RelativeHumidityMeasurementID,
		clusters.HumidityAttrMeasuredValue,
	)
}

func TestNewRequiresHost(t *testing.T) {
	_, err := humidity.New(nil, humidity.DefaultConfig())
	assert.ErrorIs(t, err, humidity.ErrNilHost)
}

func TestReadCatalogue(t *testing.T) {
	s, _, _ := newSensor(t)

	tests := []struct {
		name    string
		cluster model.ClusterID
		attr    model.AttributeID
		want    []byte
	}{
		{"deviceTypeList", clusters.DescriptorID, clusters.DescriptorAttrDeviceTypeList, []byte{}},
		{"serverList", clusters.DescriptorID, clusters.DescriptorAttrServerList, []byte{}},
		{"clientList", clusters.DescriptorID, clusters.DescriptorAttrClientList, []byte{}},
		{"partsList", clusters.DescriptorID, clusters.DescriptorAttrPartsList, []byte{}},
		{"descriptor featureMap", clusters.DescriptorID, model.AttrIDFeatureMap, []byte{0, 0, 0, 0}},
		{"descriptor clusterRevision", clusters.DescriptorID, model.AttrIDClusterRevision, []byte{2, 0}},
		{"identifyTime", clusters.IdentifyID, clusters.IdentifyAttrIdentifyTime, []byte{0, 0}},
		{"identifyType", clusters.IdentifyID, clusters.IdentifyAttrIdentifyType, []byte{0}},
		{"identify featureMap", clusters.IdentifyID, model.AttrIDFeatureMap, []byte{0, 0, 0, 0}},
		{"identify clusterRevision", clusters.IdentifyID, model.AttrIDClusterRevision, []byte{4, 0}},
		{"measuredValue", clusters.RelativeHumidityMeasurementID, clusters.HumidityAttrMeasuredValue, []byte{0, 0}},
		{"minMeasuredValue", clusters.RelativeHumidityMeasurementID, clusters.HumidityAttrMinMeasuredValue, []byte{0, 0}},
		{"maxMeasuredValue", clusters.RelativeHumidityMeasurementID, clusters.HumidityAttrMaxMeasuredValue, []byte{0x10, 0x27}},
		{"humidity featureMap", clusters.RelativeHumidityMeasurementID, model.AttrIDFeatureMap, []byte{0, 0, 0, 0}},
		{"humidity clusterRevision", clusters.RelativeHumidityMeasurementID, model.AttrIDClusterRevision, []byte{3, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := meta(t, tt.cluster, tt.attr)
			require.Equal(t, int(m.Size), len(tt.want))

			buf := bytes.Repeat([]byte{0xAA}, 8)
			status := s.ReadAttribute(humidity.EndpointID, tt.cluster, m, buf, uint16(len(buf)))
			require.Equal(t, model.StatusSuccess, status)

			assert.Equal(t, tt.want, buf[:m.Size])
			assert.Equal(t, bytes.Repeat([]byte{0xAA}, 8-int(m.Size)), buf[m.Size:], "bytes past the declared width changed")
		})
	}
}

func TestReadUncataloguedFails(t *testing.T) {
	s, _, _ := newSensor(t)

	tests := []struct {
		name    string
		cluster model.ClusterID
		attr    model.AttributeID
	}{
		{"unknown cluster", 0x0006, 0x0000},
		{"identify unknown attr", clusters.IdentifyID, 0x0002},
		{"humidity tolerance", clusters.RelativeHumidityMeasurementID, 0x0003},
		{"descriptor tagList", clusters.DescriptorID, 0x0004},
		{"humidity attributeList", clusters.RelativeHumidityMeasurementID, 0xFFFB},
	}

	for _, tt := range tests {
		for _, ep := range []model.EndpointID{0, humidity.EndpointID, 2} {
			m := &model.AttributeMetadata{ID: tt.attr, Size: 2, Type: model.DataTypeInt16u, Mask: model.MaskReadable | model.MaskExternalStorage}
			buf := make([]byte, 8)
			assert.Equal(t, model.StatusFailure, s.ReadAttribute(ep, tt.cluster, m, buf, 8), "%s on endpoint %d", tt.name, ep)
			assert.Equal(t, make([]byte, 8), buf, "%s on endpoint %d wrote to buffer", tt.name, ep)
		}
	}

	assert.Equal(t, model.StatusFailure, s.ReadAttribute(humidity.EndpointID, clusters.IdentifyID, nil, make([]byte, 8), 8))
}

func TestOtherEndpointsFail(t *testing.T) {
	s, _, _ := newSensor(t)
	before := s.Snapshot()

	for _, c := range humidity.EndpointType().Clusters {
		for i := range c.Attributes {
			m := &c.Attributes[i]
			for _, ep := range []model.EndpointID{model.RootEndpoint, 2, 0xFFFE} {
				buf := make([]byte, 4)
				assert.Equal(t, model.StatusFailure, s.ReadAttribute(ep, c.ID, m, buf, 4), "read %s/%s on %d", c.Name, m.Name, ep)
				assert.Equal(t, model.StatusFailure, s.WriteAttribute(ep, c.ID, m, []byte{1, 2, 3, 4}), "write %s/%s on %d", c.Name, m.Name, ep)
			}
		}
	}
	assert.Equal(t, before, s.Snapshot())
}

func TestWriteNonWritableFails(t *testing.T) {
	s, _, _ := newSensor(t)
	before := s.Snapshot()

	for _, c := range humidity.EndpointType().Clusters {
		for i := range c.Attributes {
			m := &c.Attributes[i]
			if m.Mask.CanWrite() {
				continue
			}
			status := s.WriteAttribute(humidity.EndpointID, c.ID, m, []byte{0x34, 0x12, 0x00, 0x00})
			assert.Equal(t, model.StatusFailure, status, "%s/%s", c.Name, m.Name)
		}
	}
	assert.Equal(t, before, s.Snapshot())
}

func TestWriteIdentifyTime(t *testing.T) {
	s, _, _ := newSensor(t)
	m := meta(t, clusters.IdentifyID, clusters.IdentifyAttrIdentifyTime)

	src := []byte{0x3C, 0x00}
	require.Equal(t, model.StatusSuccess, s.WriteAttribute(humidity.EndpointID, clusters.IdentifyID, m, src))

	// The source buffer is not retained.
	src[0] = 0xFF

	buf := make([]byte, 2)
	require.Equal(t, model.StatusSuccess, s.ReadAttribute(humidity.EndpointID, clusters.IdentifyID, m, buf, 2))
	assert.Equal(t, []byte{0x3C, 0x00}, buf)
	assert.Equal(t, uint16(60), s.Snapshot().IdentifyTime)
}

func TestShortBuffersFail(t *testing.T) {
	s, _, _ := newSensor(t)
	m := meta(t, clusters.IdentifyID, clusters.IdentifyAttrIdentifyTime)

	assert.Equal(t, model.StatusFailure, s.ReadAttribute(humidity.EndpointID, clusters.IdentifyID, m, make([]byte, 1), 1))
	assert.Equal(t, model.StatusFailure, s.WriteAttribute(humidity.EndpointID, clusters.IdentifyID, m, []byte{0x05}))
	assert.Equal(t, uint16(0), s.Snapshot().IdentifyTime)
}

func TestReadIgnoresMaxLen(t *testing.T) {
	s, _, _ := newSensor(t)
	m := meta(t, clusters.RelativeHumidityMeasurementID, clusters.HumidityAttrMaxMeasuredValue)

	buf := make([]byte, 2)
	require.Equal(t, model.StatusSuccess, s.ReadAttribute(humidity.EndpointID, clusters.RelativeHumidityMeasurementID, m, buf, 0))
	assert.Equal(t, []byte{0x10, 0x27}, buf)
}

func TestSetMeasuredValueReportsEveryCall(t *testing.T) {
	s, host, _ := newSensor(t)
	expectReport(host).Return().Times(3)

	s.SetMeasuredValue(5000)
	s.SetMeasuredValue(5000)
	s.SetMeasuredValue(5000)

	host.AssertNumberOfCalls(t, "ReportingAttributeChange", 3)
	assert.Equal(t, uint16(5000), s.Snapshot().MeasuredValue)
}

func TestSetMeasuredValueScenario(t *testing.T) {
	s, host, _ := newSensor(t)

	initial := s.Snapshot()
	require.Equal(t, uint16(0), initial.MeasuredValue)
	require.Equal(t, uint16(0), initial.MinMeasuredValue)
	require.Equal(t, uint16(10000), initial.MaxMeasuredValue)

	expectReport(host).Return().Once()
	s.SetMeasuredValue(4567)

	m := meta(t, clusters.RelativeHumidityMeasurementID, clusters.HumidityAttrMeasuredValue)
	buf := make([]byte, 2)
	require.Equal(t, model.StatusSuccess, s.ReadAttribute(humidity.EndpointID, clusters.RelativeHumidityMeasurementID, m, buf, 2))
	assert.Equal(t, []byte{0xD7, 0x11}, buf)
	host.AssertNumberOfCalls(t, "ReportingAttributeChange", 1)
}

func TestSetMeasuredValueOutOfRangeAccepted(t *testing.T) {
	s, host, _ := newSensor(t)
	expectReport(host).Return().Twice()

	s.SetMeasuredValue(20000)
	assert.Equal(t, uint16(20000), s.Snapshot().MeasuredValue)

	s.SetMeasuredValue(humidity.MeasuredValueNull)
	assert.Equal(t, humidity.MeasuredValueNull, s.Snapshot().MeasuredValue)
}

func TestSetMeasuredValueReportsWithoutLock(t *testing.T) {
	s, host, _ := newSensor(t)
	m := meta(t, clusters.RelativeHumidityMeasurementID, clusters.HumidityAttrMeasuredValue)

	// A host reading back inside the callback must not deadlock.
	var seen []byte
	expectReport(host).Run(func(ep model.EndpointID, cluster model.ClusterID, attr model.AttributeID) {
		buf := make([]byte, 2)
		s.ReadAttribute(ep, cluster, m, buf, 2)
		seen = buf
	}).Return().Once()

	s.SetMeasuredValue(0x0102)
	assert.Equal(t, []byte{0x02, 0x01}, seen)
}

func TestDeviceTypeListReadSucceeds(t *testing.T) {
	s, _, _ := newSensor(t)

	m := meta(t, clusters.DescriptorID, clusters.DescriptorAttrDeviceTypeList)
	require.True(t, m.Mask.IsExternal(), "deviceTypeList is dispatched to the store")
	assert.Equal(t, model.StatusSuccess, s.ReadAttribute(humidity.EndpointID, clusters.DescriptorID, m, nil, 0))

	rev := meta(t, clusters.DescriptorID, model.AttrIDClusterRevision)
	assert.False(t, rev.Mask.IsExternal(), "clusterRevision is framework-managed")
}

func TestInitEndpoint(t *testing.T) {
	s, host, trace := newSensor(t)

	host.EXPECT().SetDynamicEndpoint(humidity.DynamicEndpointIndex, humidity.EndpointID, mock.Anything, mock.Anything, mock.Anything).
		Run(func(index uint16, id model.EndpointID, ep *model.EndpointType, dataVersions []model.DataVersion, deviceTypes []model.DeviceType) {
			require.NoError(t, ep.Validate())
			assert.Equal(t, []model.ClusterID{
				clusters.DescriptorID,
				clusters.IdentifyID,
				clusters.RelativeHumidityMeasurementID,
			}, ep.ClusterIDs())
			assert.Len(t, dataVersions, len(ep.Clusters))
			assert.Equal(t, []model.DeviceType{{ID: 0x0307, Revision: 2}}, deviceTypes)
		}).
		Return(nil).Once()

	assert.False(t, s.Registered())
	require.NoError(t, s.InitEndpoint())
	assert.True(t, s.Registered())

	events := trace.Events()
	require.Len(t, events, 1)
	assert.Equal(t, log.CategoryLifecycle, events[0].Category)
	assert.Equal(t, "registered", events[0].Lifecycle.NewState)
	assert.Equal(t, "test-session", events[0].SessionID)
}

func TestInitEndpointReturnsHostError(t *testing.T) {
	s, host, trace := newSensor(t)
	hostErr := errors.New("dynamic endpoint slot busy")

	host.EXPECT().SetDynamicEndpoint(mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(hostErr).Once()

	err := s.InitEndpoint()
	assert.Same(t, hostErr, err)
	assert.False(t, s.Registered())

	events := trace.Events()
	require.Len(t, events, 1)
	require.NotNil(t, events[0].Error)
	assert.Equal(t, "dynamic endpoint slot busy", events[0].Error.Message)
}

func TestAccessTrace(t *testing.T) {
	s, _, trace := newSensor(t)
	m := meta(t, clusters.IdentifyID, clusters.IdentifyAttrIdentifyTime)

	s.WriteAttribute(humidity.EndpointID, clusters.IdentifyID, m, []byte{0x0A, 0x00})
	s.ReadAttribute(humidity.EndpointID, clusters.IdentifyID, m, make([]byte, 2), 2)

	events := trace.Events()
	require.Len(t, events, 2)
	for i, op := range []log.Operation{log.OperationWrite, log.OperationRead} {
		ev := events[i]
		assert.Equal(t, log.LayerStore, ev.Layer)
		assert.Equal(t, humidity.EndpointID, ev.EndpointID)
		require.NotNil(t, ev.Access)
		assert.Equal(t, op, ev.Access.Operation)
		assert.Equal(t, model.StatusSuccess, ev.Access.Status)
		assert.Equal(t, []byte{0x0A, 0x00}, ev.Access.Data)
	}
}

func TestConcurrentReadsAndUpdates(t *testing.T) {
	s, host, _ := newSensor(t)
	expectReport(host).Return().Maybe()
	m := meta(t, clusters.RelativeHumidityMeasurementID, clusters.HumidityAttrMeasuredValue)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			s.SetMeasuredValue(uint16(i))
		}
	}()
	go func() {
		defer wg.Done()
		buf := make([]byte, 2)
		for i := 0; i < 200; i++ {
			s.ReadAttribute(humidity.EndpointID, clusters.RelativeHumidityMeasurementID, m, buf, 2)
		}
	}()
	wg.Wait()

	assert.Equal(t, uint16(199), s.Snapshot().MeasuredValue)
}

func TestRestoreDoesNotReport(t *testing.T) {
	s, _, trace := newSensor(t)

	s.Restore(humidity.State{
		MeasuredValue:    4321,
		MinMeasuredValue: 100,
		MaxMeasuredValue: 9900,
		IdentifyTime:     12,
	})

	got := s.Snapshot()
	assert.Equal(t, uint16(4321), got.MeasuredValue)
	assert.Equal(t, uint16(100), got.MinMeasuredValue)
	assert.Equal(t, uint16(9900), got.MaxMeasuredValue)
	assert.Equal(t, uint16(12), got.IdentifyTime)
	assert.Empty(t, trace.Events())

	m := meta(t, clusters.RelativeHumidityMeasurementID, clusters.HumidityAttrMeasuredValue)
	buf := make([]byte, 2)
	require.Equal(t, model.StatusSuccess, s.ReadAttribute(humidity.EndpointID, clusters.RelativeHumidityMeasurementID, m, buf, 2))
	assert.Equal(t, []byte{0xE1, 0x10}, buf)
}

func TestForeignEndpointAccessIsTraced(t *testing.T) {
	s, _, trace := newSensor(t)
	m := meta(t, clusters.IdentifyID, clusters.IdentifyAttrIdentifyTime)

	assert.Equal(t, model.StatusFailure, s.ReadAttribute(2, clusters.IdentifyID, m, make([]byte, 2), 2))
	assert.Equal(t, model.StatusFailure, s.WriteAttribute(model.RootEndpoint, clusters.IdentifyID, m, []byte{0x0A, 0x00}))

	events := trace.Events()
	require.Len(t, events, 2)

	read := events[0]
	assert.Equal(t, log.LayerStore, read.Layer)
	assert.Equal(t, model.EndpointID(2), read.EndpointID)
	require.NotNil(t, read.Access)
	assert.Equal(t, log.OperationRead, read.Access.Operation)
	assert.Equal(t, model.StatusFailure, read.Access.Status)
	assert.Equal(t, clusters.IdentifyID, read.Access.ClusterID)
	assert.Equal(t, clusters.IdentifyAttrIdentifyTime, read.Access.AttributeID)
	assert.Empty(t, read.Access.Data)

	write := events[1]
	assert.Equal(t, model.RootEndpoint, write.EndpointID)
	require.NotNil(t, write.Access)
	assert.Equal(t, log.OperationWrite, write.Access.Operation)
	assert.Equal(t, model.StatusFailure, write.Access.Status)
	assert.Equal(t, []byte{0x0A, 0x00}, write.Access.Data)
	assert.Equal(t, uint16(0), s.Snapshot().IdentifyTime)
}
