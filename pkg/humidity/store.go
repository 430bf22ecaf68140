package humidity

import (
	"encoding/binary"

	"github.com/Nilao18/matter-ophelia4/pkg/clusters"
	"github.com/Nilao18/matter-ophelia4/pkg/model"
)

type cellKey struct {
	cluster model.ClusterID
	attr    model.AttributeID
}

// cell is one resolvable (cluster, attribute) pair.
type cell struct {
	width uint16
	load  func(s *State, dst []byte)
	store func(s *State, src []byte) // nil when not writable
}

// field binds an attribute to a State member.
type field struct {
	load  func(s *State, dst []byte)
	store func(s *State, src []byte)
}

func u16Field(ptr func(s *State) *uint16) field {
	return field{
		load:  func(s *State, dst []byte) { binary.LittleEndian.PutUint16(dst, *ptr(s)) },
		store: func(s *State, src []byte) { *ptr(s) = binary.LittleEndian.Uint16(src) },
	}
}

func u8Field(ptr func(s *State) *uint8) field {
	return field{
		load:  func(s *State, dst []byte) { dst[0] = *ptr(s) },
		store: func(s *State, src []byte) { *ptr(s) = src[0] },
	}
}

// stateFields lists the attributes backed by State.
var stateFields = map[cellKey]field{
	{clusters.IdentifyID, clusters.IdentifyAttrIdentifyTime}: u16Field(func(s *State) *uint16 { return &s.IdentifyTime }),
	{clusters.IdentifyID, clusters.IdentifyAttrIdentifyType}: u8Field(func(s *State) *uint8 { return &s.IdentifyType }),

	{clusters.RelativeHumidityMeasurementID, clusters.HumidityAttrMeasuredValue}:    u16Field(func(s *State) *uint16 { return &s.MeasuredValue }),
	{clusters.RelativeHumidityMeasurementID, clusters.HumidityAttrMinMeasuredValue}: u16Field(func(s *State) *uint16 { return &s.MinMeasuredValue }),
	{clusters.RelativeHumidityMeasurementID, clusters.HumidityAttrMaxMeasuredValue}: u16Field(func(s *State) *uint16 { return &s.MaxMeasuredValue }),
}

// dispatch is built once from the endpoint descriptor.
var dispatch = buildDispatch(EndpointType())

// buildDispatch derives one cell per catalogued attribute. Widths come from
// the metadata and writability from its mask. Attributes without a State
// field serve a constant: FeatureMap serves 0, lists copy nothing, and the
// rest serve their metadata default.
func buildDispatch(ep *model.EndpointType) map[cellKey]cell {
	table := make(map[cellKey]cell)
	for _, c := range ep.Clusters {
		for _, a := range c.Attributes {
			key := cellKey{cluster: c.ID, attr: a.ID}
			if f, ok := stateFields[key]; ok {
				cl := cell{width: a.Size, load: f.load}
				if a.Mask.CanWrite() {
					cl.store = f.store
				}
				table[key] = cl
				continue
			}

			var value uint32
			if a.ID != model.AttrIDFeatureMap && a.Default.Set {
				value = a.Default.Value
			}
			table[key] = cell{width: a.Size, load: constant(value, a.Size)}
		}
	}
	return table
}

func constant(v uint32, width uint16) func(*State, []byte) {
	return func(_ *State, dst []byte) {
		switch width {
		case 0:
		case 1:
			dst[0] = uint8(v)
		case 2:
			binary.LittleEndian.PutUint16(dst, uint16(v))
		case 4:
			binary.LittleEndian.PutUint32(dst, v)
		}
	}
}

func lookup(cluster model.ClusterID, meta *model.AttributeMetadata) (cell, bool) {
	if meta == nil {
		return cell{}, false
	}
	c, ok := dispatch[cellKey{cluster: cluster, attr: meta.ID}]
	return c, ok
}
