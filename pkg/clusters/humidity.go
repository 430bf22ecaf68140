package clusters

import "github.com/Nilao18/matter-ophelia4/pkg/model"

// RelativeHumidityMeasurementID is the Relative Humidity Measurement cluster ID.
const RelativeHumidityMeasurementID model.ClusterID = 0x0405

// RelativeHumidityMeasurementRevision is the implemented cluster revision.
const RelativeHumidityMeasurementRevision uint16 = 3

// Relative Humidity Measurement attribute IDs.
// Values are in units of 0.01 %RH (0..10000).
const (
	HumidityAttrMeasuredValue    model.AttributeID = 0x0000
	HumidityAttrMinMeasuredValue model.AttributeID = 0x0001
	HumidityAttrMaxMeasuredValue model.AttributeID = 0x0002
)

// RelativeHumidityMeasurement returns the humidity measurement cluster table.
func RelativeHumidityMeasurement() model.Cluster {
	measurement := func(id model.AttributeID, name string) model.AttributeMetadata {
		return model.AttributeMetadata{
			Default: model.EmptyDefault(),
			ID:      id,
			Size:    2,
			Type:    model.DataTypeInt16u,
			Mask:    model.MaskReadable | model.MaskNullable | model.MaskExternalStorage,
			Name:    name,
		}
	}

	return model.Cluster{
		ID:   RelativeHumidityMeasurementID,
		Name: "RelativeHumidityMeasurement",
		Mask: model.ClusterMaskServer,
		Attributes: []model.AttributeMetadata{
			measurement(HumidityAttrMeasuredValue, "measuredValue"),
			measurement(HumidityAttrMinMeasuredValue, "minMeasuredValue"),
			measurement(HumidityAttrMaxMeasuredValue, "maxMeasuredValue"),
			featureMap(),
			clusterRevision(RelativeHumidityMeasurementRevision),
		},
	}
}
