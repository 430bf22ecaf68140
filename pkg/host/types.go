package host

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/Nilao18/matter-ophelia4/pkg/log"
	"github.com/Nilao18/matter-ophelia4/pkg/model"
)

// Registration errors.
var (
	ErrInvalidSlot         = errors.New("invalid dynamic endpoint slot")
	ErrSlotInUse           = errors.New("dynamic endpoint slot in use")
	ErrEndpointInUse       = errors.New("endpoint already registered")
	ErrInvalidEndpoint     = errors.New("invalid endpoint")
	ErrDataVersionMismatch = errors.New("data version count does not match cluster count")
)

// Access errors.
var (
	ErrUnsupportedEndpoint  = errors.New("unsupported endpoint")
	ErrUnsupportedCluster   = errors.New("unsupported cluster")
	ErrUnsupportedAttribute = errors.New("unsupported attribute")
	ErrUnsupportedRead      = errors.New("unsupported read")
	ErrUnsupportedWrite     = errors.New("unsupported write")
	ErrInvalidValue         = errors.New("invalid value")
	ErrStoreFailure         = errors.New("attribute store failure")
)

// AttributeStore serves externally stored attributes.
type AttributeStore interface {
	ReadAttribute(endpoint model.EndpointID, cluster model.ClusterID,
		meta *model.AttributeMetadata, buf []byte, maxLen uint16) model.Status
	WriteAttribute(endpoint model.EndpointID, cluster model.ClusterID,
		meta *model.AttributeMetadata, buf []byte) model.Status
}

// Value is an attribute value as read through the framework. Scalars are
// little-endian, lists are CBOR.
type Value struct {
	Type model.DataType
	Data []byte
}

// Uint decodes a scalar value.
func (v Value) Uint() (uint64, bool) {
	switch len(v.Data) {
	case 1:
		return uint64(v.Data[0]), true
	case 2:
		return uint64(binary.LittleEndian.Uint16(v.Data)), true
	case 4:
		return uint64(binary.LittleEndian.Uint32(v.Data)), true
	case 8:
		return binary.LittleEndian.Uint64(v.Data), true
	}
	return 0, false
}

// String formats the value for display.
func (v Value) String() string {
	if v.Type.IsList() {
		var items any
		if err := log.DecodeValue(v.Data, &items); err == nil {
			return fmt.Sprintf("%v", items)
		}
		return hex.EncodeToString(v.Data)
	}
	if n, ok := v.Uint(); ok {
		return fmt.Sprintf("%d", n)
	}
	return hex.EncodeToString(v.Data)
}

// Report is an attribute change delivered to subscribers.
type Report struct {
	Endpoint    model.EndpointID
	Cluster     model.ClusterID
	Attribute   model.AttributeID
	DataVersion model.DataVersion
	Value       Value
	Timestamp   time.Time
}

// DeviceTypeEntry is one element of the Descriptor DeviceTypeList.
type DeviceTypeEntry struct {
	DeviceType uint32 `cbor:"0,keyasint"`
	Revision   uint16 `cbor:"1,keyasint"`
}
