package humidity

import (
	"github.com/Nilao18/matter-ophelia4/pkg/clusters"
	"github.com/Nilao18/matter-ophelia4/pkg/model"
)

// Endpoint identity.
const (
	// EndpointID is the endpoint number the sensor registers.
	EndpointID model.EndpointID = 1

	// DynamicEndpointIndex is the host slot the endpoint occupies.
	DynamicEndpointIndex uint16 = 0

	// DeviceTypeHumiditySensor is the Humidity Sensor device type.
	DeviceTypeHumiditySensor model.DeviceTypeID = 0x0307

	// DeviceTypeRevision is the implemented device type revision.
	DeviceTypeRevision uint8 = 2
)

// EndpointType returns the endpoint descriptor: Descriptor, Identify and
// Relative Humidity Measurement, in that order.
func EndpointType() *model.EndpointType {
	return &model.EndpointType{
		Clusters: []model.Cluster{
			clusters.Descriptor(),
			clusters.Identify(),
			clusters.RelativeHumidityMeasurement(),
		},
	}
}

// DeviceTypes returns the device type list of the endpoint.
func DeviceTypes() []model.DeviceType {
	return []model.DeviceType{
		{ID: DeviceTypeHumiditySensor, Revision: DeviceTypeRevision},
	}
}
