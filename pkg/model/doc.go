// Package model implements the data model of a dynamic endpoint.
//
// # Hierarchy
//
// The model follows the Matter layout:
//
//	Endpoint > Cluster > Attribute
//
// An Endpoint is a logical device instance identified by a small integer.
// It carries an EndpointType (the ordered cluster list) and one or more
// DeviceType tags used for discovery. A Cluster groups related attributes
// and the commands it accepts. Each Attribute is described by static
// AttributeMetadata: identifier, wire size, data type, default value policy
// and an access mask.
//
//	Endpoint 1 (humidity sensor, 0x0307 rev 2)
//	├── Descriptor (0x001D)
//	├── Identify (0x0003)
//	└── RelativeHumidityMeasurement (0x0405)
//
// # Addressing
//
// Attributes are addressed by the tuple:
//
//	(EndpointID, ClusterID, AttributeID)
//
// # Storage
//
// Attributes flagged MaskExternalStorage are not kept by the host framework.
// The host calls the application's read and write dispatch functions for
// them. All other attributes are framework-managed and served from their
// metadata default.
//
// # Immutability
//
// Metadata tables and endpoint descriptors are built once and never changed.
// Validate checks the layout rules that a peer would otherwise only catch at
// commissioning time.
package model
