package clusters

import "github.com/Nilao18/matter-ophelia4/pkg/model"

// IdentifyID is the Identify cluster ID.
const IdentifyID model.ClusterID = 0x0003

// IdentifyRevision is the implemented Identify cluster revision.
const IdentifyRevision uint16 = 4

// Identify attribute IDs.
const (
	IdentifyAttrIdentifyTime model.AttributeID = 0x0000
	IdentifyAttrIdentifyType model.AttributeID = 0x0001
)

// Identify command IDs.
const (
	IdentifyCmdIdentify      model.CommandID = 0x00
	IdentifyCmdTriggerEffect model.CommandID = 0x40
)

// IdentifyType values.
const (
	IdentifyTypeNone uint8 = iota
	IdentifyTypeLightOutput
	IdentifyTypeVisibleIndicator
	IdentifyTypeAudibleBeep
	IdentifyTypeDisplay
	IdentifyTypeActuator
)

// Identify returns the Identify cluster table.
// IdentifyTime is the only writable attribute of the endpoint.
func Identify() model.Cluster {
	return model.Cluster{
		ID:   IdentifyID,
		Name: "Identify",
		Mask: model.ClusterMaskServer,
		Attributes: []model.AttributeMetadata{
			{
				Default: model.SimpleDefault(0),
				ID:      IdentifyAttrIdentifyTime,
				Size:    2,
				Type:    model.DataTypeInt16u,
				Mask:    model.MaskReadable | model.MaskWritable | model.MaskExternalStorage,
				Name:    "identifyTime",
			},
			{
				Default: model.SimpleDefault(uint32(IdentifyTypeNone)),
				ID:      IdentifyAttrIdentifyType,
				Size:    1,
				Type:    model.DataTypeEnum8,
				Mask:    model.MaskReadable | model.MaskExternalStorage,
				Name:    "identifyType",
			},
			featureMap(),
			clusterRevision(IdentifyRevision),
		},
		AcceptedCommands: []model.CommandID{
			IdentifyCmdIdentify,
			IdentifyCmdTriggerEffect,
		},
	}
}
