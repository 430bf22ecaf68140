package inspect

import (
	"errors"
	"testing"

	"github.com/Nilao18/matter-ophelia4/pkg/clusters"
	"github.com/Nilao18/matter-ophelia4/pkg/host"
	"github.com/Nilao18/matter-ophelia4/pkg/humidity"
	"github.com/Nilao18/matter-ophelia4/pkg/model"
)

// createTestInspector registers a humidity sensor and returns an inspector
// over its framework.
func createTestInspector(t *testing.T) (*Inspector, *humidity.Sensor) {
	t.Helper()

	fw := host.NewFramework(host.DefaultConfig())
	sensor, err := humidity.New(fw, humidity.DefaultConfig())
	if err != nil {
		t.Fatalf("humidity.New: %v", err)
	}
	fw.SetAttributeStore(sensor)
	if err := sensor.InitEndpoint(); err != nil {
		t.Fatalf("InitEndpoint: %v", err)
	}
	return NewInspector(fw), sensor
}

func mustParse(t *testing.T, s string) *Path {
	t.Helper()
	p, err := ParsePath(s)
	if err != nil {
		t.Fatalf("ParsePath(%q): %v", s, err)
	}
	return p
}

func TestInspectorInspectAll(t *testing.T) {
	insp, _ := createTestInspector(t)

	eps := insp.InspectAll()
	if len(eps) != 1 {
		t.Fatalf("InspectAll returned %d endpoints, want 1", len(eps))
	}
	if eps[0].ID != humidity.EndpointID {
		t.Errorf("endpoint ID = %d, want %d", eps[0].ID, humidity.EndpointID)
	}
}

func TestInspectorInspectEndpoint(t *testing.T) {
	insp, _ := createTestInspector(t)

	info, err := insp.InspectEndpoint(1)
	if err != nil {
		t.Fatalf("InspectEndpoint: %v", err)
	}

	want := []model.ClusterID{clusters.DescriptorID, clusters.IdentifyID, clusters.RelativeHumidityMeasurementID}
	if len(info.Clusters) != len(want) {
		t.Fatalf("got %d clusters, want %d", len(info.Clusters), len(want))
	}
	for i, id := range want {
		if info.Clusters[i].ID != id {
			t.Errorf("cluster[%d] = 0x%04X, want 0x%04X", i, info.Clusters[i].ID, id)
		}
		for _, a := range info.Clusters[i].Attributes {
			if a.Err != nil {
				t.Errorf("cluster 0x%04X attribute %s: %v", id, a.Meta.Name, a.Err)
			}
		}
	}

	if _, err := insp.InspectEndpoint(2); !errors.Is(err, ErrEndpointNotFound) {
		t.Errorf("InspectEndpoint(2) error = %v, want ErrEndpointNotFound", err)
	}
}

func TestInspectorInspectCluster(t *testing.T) {
	insp, _ := createTestInspector(t)

	c, err := insp.InspectCluster(1, clusters.IdentifyID)
	if err != nil {
		t.Fatalf("InspectCluster: %v", err)
	}
	if c.Name != "Identify" {
		t.Errorf("Name = %q, want Identify", c.Name)
	}
	if len(c.Commands) != 2 {
		t.Errorf("got %d commands, want 2", len(c.Commands))
	}
	if c.Attributes[0].Unit != "s" {
		t.Errorf("identifyTime unit = %q, want s", c.Attributes[0].Unit)
	}

	if _, err := insp.InspectCluster(1, 0x0006); !errors.Is(err, ErrClusterNotFound) {
		t.Errorf("unknown cluster error = %v, want ErrClusterNotFound", err)
	}
	if _, err := insp.InspectCluster(9, clusters.IdentifyID); !errors.Is(err, ErrEndpointNotFound) {
		t.Errorf("unknown endpoint error = %v, want ErrEndpointNotFound", err)
	}
}

func TestInspectorReadAttribute(t *testing.T) {
	insp, sensor := createTestInspector(t)
	sensor.SetMeasuredValue(4567)

	value, meta, err := insp.ReadAttribute(mustParse(t, "1/rh/measuredValue"))
	if err != nil {
		t.Fatalf("ReadAttribute: %v", err)
	}
	if meta.Name != "measuredValue" {
		t.Errorf("meta.Name = %q, want measuredValue", meta.Name)
	}
	if n, ok := value.Uint(); !ok || n != 4567 {
		t.Errorf("value = %d (ok=%v), want 4567", n, ok)
	}

	value, _, err = insp.ReadAttribute(mustParse(t, "1/rh/clusterRevision"))
	if err != nil {
		t.Fatalf("ReadAttribute: %v", err)
	}
	if n, _ := value.Uint(); n != 3 {
		t.Errorf("clusterRevision = %d, want 3", n)
	}
}

func TestInspectorReadAttributeErrors(t *testing.T) {
	insp, _ := createTestInspector(t)

	tests := []struct {
		path    string
		wantErr error
	}{
		{"1", ErrPartialPath},
		{"1/rh", ErrPartialPath},
		{"2/rh/measuredValue", ErrEndpointNotFound},
		{"1/0x0006/0", ErrClusterNotFound},
		{"1/rh/0x0010", ErrAttributeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			_, _, err := insp.ReadAttribute(mustParse(t, tt.path))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ReadAttribute(%s) error = %v, want %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestInspectorWriteAttribute(t *testing.T) {
	insp, sensor := createTestInspector(t)

	if err := insp.WriteAttribute(mustParse(t, "1/identify/identifyTime"), "30"); err != nil {
		t.Fatalf("WriteAttribute: %v", err)
	}
	if got := sensor.Snapshot().IdentifyTime; got != 30 {
		t.Errorf("IdentifyTime = %d, want 30", got)
	}

	if err := insp.WriteAttribute(mustParse(t, "1/identify/identifyTime"), "0x10"); err != nil {
		t.Fatalf("WriteAttribute hex: %v", err)
	}
	if got := sensor.Snapshot().IdentifyTime; got != 16 {
		t.Errorf("IdentifyTime = %d, want 16", got)
	}
}

func TestInspectorWriteAttributeErrors(t *testing.T) {
	insp, sensor := createTestInspector(t)
	sensor.SetMeasuredValue(1234)

	tests := []struct {
		name    string
		path    string
		input   string
		wantErr error
	}{
		{"read-only measurement", "1/rh/measuredValue", "10", host.ErrUnsupportedWrite},
		{"read-only identify type", "1/identify/identifyType", "1", host.ErrUnsupportedWrite},
		{"framework managed", "1/rh/clusterRevision", "4", host.ErrUnsupportedWrite},
		{"value overflow", "1/identify/identifyTime", "70000", ErrInvalidValue},
		{"not a number", "1/identify/identifyTime", "soon", ErrInvalidValue},
		{"null on non-nullable", "1/identify/identifyTime", "null", ErrInvalidValue},
		{"list attribute", "1/desc/serverList", "1", ErrInvalidValue},
		{"partial path", "1/identify", "1", ErrPartialPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := insp.WriteAttribute(mustParse(t, tt.path), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("WriteAttribute(%s, %q) error = %v, want %v", tt.path, tt.input, err, tt.wantErr)
			}
		})
	}

	if got := sensor.Snapshot().MeasuredValue; got != 1234 {
		t.Errorf("MeasuredValue = %d after rejected writes, want 1234", got)
	}
}

func TestEncodeValue(t *testing.T) {
	identifyTime := clusters.Identify().Attributes[0]
	identifyType := clusters.Identify().Attributes[1]
	measured := clusters.RelativeHumidityMeasurement().Attributes[0]
	featureMap := clusters.Identify().Attributes[2]

	tests := []struct {
		name    string
		meta    model.AttributeMetadata
		input   string
		want    []byte
		wantErr bool
	}{
		{"uint16", identifyTime, "4567", []byte{0xD7, 0x11}, false},
		{"uint16 max", identifyTime, "0xFFFF", []byte{0xFF, 0xFF}, false},
		{"enum8", identifyType, "2", []byte{0x02}, false},
		{"enum8 overflow", identifyType, "256", nil, true},
		{"bitmap32", featureMap, "0x01020304", []byte{0x04, 0x03, 0x02, 0x01}, false},
		{"nullable null", measured, "null", []byte{0xFF, 0xFF}, false},
		{"nullable null upper", measured, "NULL", []byte{0xFF, 0xFF}, false},
		{"negative", identifyTime, "-1", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeValue(&tt.meta, tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("EncodeValue(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if string(got) != string(tt.want) {
				t.Errorf("EncodeValue(%q) = %x, want %x", tt.input, got, tt.want)
			}
		})
	}
}
