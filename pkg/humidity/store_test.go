package humidity

import (
	"testing"

	"github.com/Nilao18/matter-ophelia4/pkg/clusters"
	"github.com/Nilao18/matter-ophelia4/pkg/model"
)

func TestDispatchCoversCatalogue(t *testing.T) {
	ep := EndpointType()
	if err := ep.Validate(); err != nil {
		t.Fatalf("endpoint failed validation: %v", err)
	}

	n := 0
	for _, c := range ep.Clusters {
		for _, a := range c.Attributes {
			n++
			cl, ok := dispatch[cellKey{cluster: c.ID, attr: a.ID}]
			if !ok {
				t.Errorf("%s/%s: no dispatch cell", c.Name, a.Name)
				continue
			}
			if cl.width != a.Size {
				t.Errorf("%s/%s: cell width %d, declared %d", c.Name, a.Name, cl.width, a.Size)
			}
			if (cl.store != nil) != a.Mask.CanWrite() {
				t.Errorf("%s/%s: writable cell = %v, mask %s", c.Name, a.Name, cl.store != nil, a.Mask)
			}
		}
	}
	if len(dispatch) != n {
		t.Errorf("dispatch has %d cells, catalogue has %d attributes", len(dispatch), n)
	}
}

func TestStateFieldsMatchDeclaredWidth(t *testing.T) {
	ep := EndpointType()
	for key, f := range stateFields {
		meta, err := ep.FindAttribute(key.cluster, key.attr)
		if err != nil {
			t.Fatalf("state field for unknown attribute: %v", err)
		}

		// A store followed by a load must round-trip through exactly Size bytes.
		src := make([]byte, meta.Size)
		for i := range src {
			src[i] = byte(0xA0 + i)
		}
		var s State
		f.store(&s, src)

		dst := make([]byte, meta.Size+2)
		dst[meta.Size], dst[meta.Size+1] = 0xEE, 0xEE
		f.load(&s, dst)
		for i := range src {
			if dst[i] != src[i] {
				t.Errorf("%s: byte %d = 0x%02X, want 0x%02X", meta.Name, i, dst[i], src[i])
			}
		}
		if dst[meta.Size] != 0xEE || dst[meta.Size+1] != 0xEE {
			t.Errorf("%s: load wrote past declared width", meta.Name)
		}
	}
}

func TestOnlyIdentifyTimeWritable(t *testing.T) {
	for key, c := range dispatch {
		want := key == cellKey{clusters.IdentifyID, clusters.IdentifyAttrIdentifyTime}
		if (c.store != nil) != want {
			t.Errorf("cluster 0x%04X attr 0x%04X: writable = %v", uint32(key.cluster), uint16(key.attr), c.store != nil)
		}
	}
}

func TestConstantCells(t *testing.T) {
	tests := []struct {
		name    string
		cluster model.ClusterID
		attr    model.AttributeID
		want    []byte
	}{
		{"descriptor featureMap", clusters.DescriptorID, model.AttrIDFeatureMap, []byte{0, 0, 0, 0}},
		{"descriptor revision", clusters.DescriptorID, model.AttrIDClusterRevision, []byte{2, 0}},
		{"identify revision", clusters.IdentifyID, model.AttrIDClusterRevision, []byte{4, 0}},
		{"humidity revision", clusters.RelativeHumidityMeasurementID, model.AttrIDClusterRevision, []byte{3, 0}},
		{"device type list", clusters.DescriptorID, clusters.DescriptorAttrDeviceTypeList, []byte{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := dispatch[cellKey{tt.cluster, tt.attr}]
			if !ok {
				t.Fatal("missing cell")
			}
			if int(c.width) != len(tt.want) {
				t.Fatalf("width = %d, want %d", c.width, len(tt.want))
			}
			buf := make([]byte, c.width)
			c.load(nil, buf)
			for i := range tt.want {
				if buf[i] != tt.want[i] {
					t.Errorf("got % X, want % X", buf, tt.want)
					break
				}
			}
		})
	}
}

func TestDefaultState(t *testing.T) {
	s := DefaultState()
	if s.MeasuredValue != 0 || s.MinMeasuredValue != 0 || s.MaxMeasuredValue != 10000 {
		t.Errorf("unexpected measurement defaults: %+v", s)
	}
	if s.IdentifyTime != 0 || s.IdentifyType != clusters.IdentifyTypeNone {
		t.Errorf("unexpected identify defaults: %+v", s)
	}
}
