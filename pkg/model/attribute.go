package model

import "fmt"

// AttributeMask is the access/storage bit set of an attribute.
type AttributeMask uint8

const (
	// MaskReadable allows reading the attribute.
	MaskReadable AttributeMask = 1 << iota

	// MaskWritable allows writing the attribute.
	MaskWritable

	// MaskNullable indicates null is a valid value.
	MaskNullable

	// MaskExternalStorage marks the value as owned by the application.
	// The host serves it through the external read/write callbacks.
	MaskExternalStorage
)

// CanRead returns true if reading is allowed.
func (m AttributeMask) CanRead() bool { return m&MaskReadable != 0 }

// CanWrite returns true if writing is allowed.
func (m AttributeMask) CanWrite() bool { return m&MaskWritable != 0 }

// IsNullable returns true if null is allowed.
func (m AttributeMask) IsNullable() bool { return m&MaskNullable != 0 }

// IsExternal returns true if the application stores the value.
func (m AttributeMask) IsExternal() bool { return m&MaskExternalStorage != 0 }

// String returns the mask as a compact flag string, e.g. "RWE".
func (m AttributeMask) String() string {
	var s string
	if m.CanRead() {
		s += "R"
	}
	if m.CanWrite() {
		s += "W"
	}
	if m.IsNullable() {
		s += "N"
	}
	if m.IsExternal() {
		s += "E"
	}
	if s == "" {
		return "-"
	}
	return s
}

// DataType is the wire type tag of an attribute.
// Values follow the ZCL type identifiers used by Matter.
type DataType uint8

const (
	DataTypeNoData   DataType = 0x00
	DataTypeBoolean  DataType = 0x10
	DataTypeBitmap8  DataType = 0x18
	DataTypeBitmap16 DataType = 0x19
	DataTypeBitmap32 DataType = 0x1B
	DataTypeInt8u    DataType = 0x20
	DataTypeInt16u   DataType = 0x21
	DataTypeInt32u   DataType = 0x23
	DataTypeEnum8    DataType = 0x30
	DataTypeEnum16   DataType = 0x31
	DataTypeArray    DataType = 0x48
)

// String returns the data type name.
func (d DataType) String() string {
	switch d {
	case DataTypeNoData:
		return "no_data"
	case DataTypeBoolean:
		return "boolean"
	case DataTypeBitmap8:
		return "bitmap8"
	case DataTypeBitmap16:
		return "bitmap16"
	case DataTypeBitmap32:
		return "bitmap32"
	case DataTypeInt8u:
		return "int8u"
	case DataTypeInt16u:
		return "int16u"
	case DataTypeInt32u:
		return "int32u"
	case DataTypeEnum8:
		return "enum8"
	case DataTypeEnum16:
		return "enum16"
	case DataTypeArray:
		return "array"
	default:
		return fmt.Sprintf("type(0x%02X)", uint8(d))
	}
}

// FixedSize returns the byte width of a scalar type.
// Returns false for list and unknown types.
func (d DataType) FixedSize() (uint16, bool) {
	switch d {
	case DataTypeBoolean, DataTypeBitmap8, DataTypeInt8u, DataTypeEnum8:
		return 1, true
	case DataTypeBitmap16, DataTypeInt16u, DataTypeEnum16:
		return 2, true
	case DataTypeBitmap32, DataTypeInt32u:
		return 4, true
	default:
		return 0, false
	}
}

// IsList returns true for list-typed attributes.
func (d DataType) IsList() bool {
	return d == DataTypeArray
}

// DefaultValue is the default value policy of an attribute.
type DefaultValue struct {
	// Set is false when the attribute has no default and is externally stored.
	Set bool

	// Value is the fixed default for scalar attributes.
	Value uint32
}

// SimpleDefault returns a fixed default.
func SimpleDefault(v uint32) DefaultValue {
	return DefaultValue{Set: true, Value: v}
}

// EmptyDefault returns the "no default, externally stored" policy.
func EmptyDefault() DefaultValue {
	return DefaultValue{}
}

// AttributeMetadata describes an attribute. It is immutable once built.
type AttributeMetadata struct {
	// Default is the default value policy.
	Default DefaultValue

	// ID is the attribute identifier within the cluster.
	ID AttributeID

	// Size is the declared wire size in bytes (0 for lists).
	Size uint16

	// Type is the wire data type.
	Type DataType

	// Mask carries access and storage flags.
	Mask AttributeMask

	// Name is the human-readable attribute name.
	Name string
}

// String returns a short description for logs.
func (a AttributeMetadata) String() string {
	return fmt.Sprintf("%s(0x%04X %s/%d %s)", a.Name, uint16(a.ID), a.Type, a.Size, a.Mask)
}
