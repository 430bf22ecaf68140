package clusters

import "github.com/Nilao18/matter-ophelia4/pkg/model"

// DescriptorID is the Descriptor cluster ID.
const DescriptorID model.ClusterID = 0x001D

// DescriptorRevision is the implemented Descriptor cluster revision.
const DescriptorRevision uint16 = 2

// Descriptor attribute IDs.
const (
	DescriptorAttrDeviceTypeList model.AttributeID = 0x0000
	DescriptorAttrServerList     model.AttributeID = 0x0001
	DescriptorAttrClientList     model.AttributeID = 0x0002
	DescriptorAttrPartsList      model.AttributeID = 0x0003
)

// Descriptor returns the Descriptor cluster table.
// The list attributes are populated by the host from the registered endpoint.
func Descriptor() model.Cluster {
	list := func(id model.AttributeID, name string) model.AttributeMetadata {
		return model.AttributeMetadata{
			Default: model.EmptyDefault(),
			ID:      id,
			Size:    0,
			Type:    model.DataTypeArray,
			Mask:    model.MaskReadable | model.MaskExternalStorage,
			Name:    name,
		}
	}

	return model.Cluster{
		ID:   DescriptorID,
		Name: "Descriptor",
		Mask: model.ClusterMaskServer,
		Attributes: []model.AttributeMetadata{
			list(DescriptorAttrDeviceTypeList, "deviceTypeList"),
			list(DescriptorAttrServerList, "serverList"),
			list(DescriptorAttrClientList, "clientList"),
			list(DescriptorAttrPartsList, "partsList"),
			featureMap(),
			clusterRevision(DescriptorRevision),
		},
	}
}
