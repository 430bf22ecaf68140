package inspect

import (
	"strings"

	"github.com/Nilao18/matter-ophelia4/pkg/clusters"
	"github.com/Nilao18/matter-ophelia4/pkg/model"
)

// Name tables for resolving human-readable names to IDs, built from the
// cluster tables. Keys are lower case.
var (
	clusterNames   = map[string]model.ClusterID{}
	attributeNames = map[model.ClusterID]map[string]model.AttributeID{}
)

func init() {
	for _, c := range []model.Cluster{
		clusters.Descriptor(),
		clusters.Identify(),
		clusters.RelativeHumidityMeasurement(),
	} {
		clusterNames[strings.ToLower(c.Name)] = c.ID
		names := make(map[string]model.AttributeID, len(c.Attributes))
		for _, a := range c.Attributes {
			names[strings.ToLower(a.Name)] = a.ID
		}
		attributeNames[c.ID] = names
	}

	// Short aliases for the shell.
	clusterNames["desc"] = clusters.DescriptorID
	clusterNames["humidity"] = clusters.RelativeHumidityMeasurementID
	clusterNames["rh"] = clusters.RelativeHumidityMeasurementID
}

// ResolveClusterName resolves a cluster name to its ID (case-insensitive).
func ResolveClusterName(name string) (model.ClusterID, bool) {
	id, ok := clusterNames[strings.ToLower(name)]
	return id, ok
}

// ResolveAttributeName resolves an attribute name to its ID for a given
// cluster (case-insensitive).
func ResolveAttributeName(cluster model.ClusterID, name string) (model.AttributeID, bool) {
	names, ok := attributeNames[cluster]
	if !ok {
		return 0, false
	}
	id, ok := names[strings.ToLower(name)]
	return id, ok
}

type attrKey struct {
	cluster model.ClusterID
	attr    model.AttributeID
}

// attributeUnits holds display units for scaled attributes.
var attributeUnits = map[attrKey]string{
	{clusters.RelativeHumidityMeasurementID, clusters.HumidityAttrMeasuredValue}:    "%RH",
	{clusters.RelativeHumidityMeasurementID, clusters.HumidityAttrMinMeasuredValue}: "%RH",
	{clusters.RelativeHumidityMeasurementID, clusters.HumidityAttrMaxMeasuredValue}: "%RH",
	{clusters.IdentifyID, clusters.IdentifyAttrIdentifyTime}:                         "s",
}

// GetAttributeUnit returns the display unit of an attribute, or "".
func GetAttributeUnit(cluster model.ClusterID, attr model.AttributeID) string {
	return attributeUnits[attrKey{cluster, attr}]
}
