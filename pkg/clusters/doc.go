// Package clusters provides the attribute metadata tables of the humidity
// sensor endpoint.
//
// Each cluster lives in its own file with its attribute ID constants, its
// revision, and a constructor returning a freshly built model.Cluster:
//
//   - Descriptor (0x001D): device type, server, client and parts lists
//   - Identify (0x0003): identify timer and type, Identify/TriggerEffect commands
//   - RelativeHumidityMeasurement (0x0405): measured value and its bounds
//
// Constructors return new slices on every call, so a caller holding a
// descriptor can never change what another caller sees.
//
//	ep := &model.EndpointType{Clusters: []model.Cluster{
//	    clusters.Descriptor(),
//	    clusters.Identify(),
//	    clusters.RelativeHumidityMeasurement(),
//	}}
package clusters

import "github.com/Nilao18/matter-ophelia4/pkg/model"

// featureMap returns the FeatureMap entry shared by all clusters here.
// No optional features are supported, so the application serves 0.
func featureMap() model.AttributeMetadata {
	return model.AttributeMetadata{
		Default: model.EmptyDefault(),
		ID:      model.AttrIDFeatureMap,
		Size:    4,
		Type:    model.DataTypeBitmap32,
		Mask:    model.MaskReadable | model.MaskExternalStorage,
		Name:    "featureMap",
	}
}

// clusterRevision returns the framework-managed ClusterRevision entry.
func clusterRevision(rev uint16) model.AttributeMetadata {
	return model.AttributeMetadata{
		Default: model.SimpleDefault(uint32(rev)),
		ID:      model.AttrIDClusterRevision,
		Size:    2,
		Type:    model.DataTypeInt16u,
		Mask:    model.MaskReadable,
		Name:    "clusterRevision",
	}
}
