package humidity

import "github.com/Nilao18/matter-ophelia4/pkg/model"

// Host is the part of the host framework the sensor consumes.
type Host interface {
	// SetDynamicEndpoint registers an endpoint descriptor in a dynamic
	// endpoint slot. dataVersions holds one counter per cluster and is
	// owned by the host from then on.
	SetDynamicEndpoint(index uint16, id model.EndpointID, ep *model.EndpointType,
		dataVersions []model.DataVersion, deviceTypes []model.DeviceType) error

	// ReportingAttributeChange tells the host an attribute value changed
	// so it can emit reports.
	ReportingAttributeChange(endpoint model.EndpointID, cluster model.ClusterID, attribute model.AttributeID)
}
