package commands

import (
	"github.com/Nilao18/matter-ophelia4/pkg/clusters"
	"github.com/Nilao18/matter-ophelia4/pkg/model"
)

// knownClusters supplies names for trace output.
var knownClusters = []model.Cluster{
	clusters.Descriptor(),
	clusters.Identify(),
	clusters.RelativeHumidityMeasurement(),
}
