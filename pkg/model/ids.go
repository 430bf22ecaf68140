package model

// EndpointID identifies an endpoint on the node.
type EndpointID uint16

// ClusterID identifies a cluster.
type ClusterID uint32

// AttributeID identifies an attribute within its cluster.
type AttributeID uint16

// CommandID identifies a command within its cluster.
type CommandID uint32

// DeviceTypeID classifies an endpoint for discovery.
type DeviceTypeID uint32

// DataVersion is the per-cluster change counter maintained by the host.
type DataVersion uint32

// RootEndpoint is reserved for the node itself and never dynamic.
const RootEndpoint EndpointID = 0

// Global attribute IDs (present on every cluster).
const (
	// AttrIDFeatureMap is the cluster capability bitmap.
	AttrIDFeatureMap AttributeID = 0xFFFC

	// AttrIDClusterRevision is the cluster revision number.
	AttrIDClusterRevision AttributeID = 0xFFFD
)

// IsGlobalAttribute returns true for the global attribute range.
func IsGlobalAttribute(id AttributeID) bool {
	return id >= 0xFFF8
}
