package model

import (
	"errors"
	"fmt"
)

// Descriptor errors.
var (
	ErrNoClusters        = errors.New("endpoint has no clusters")
	ErrDuplicateCluster  = errors.New("duplicate cluster ID")
	ErrDuplicateAttr     = errors.New("duplicate attribute ID")
	ErrAttributeSize     = errors.New("attribute size does not match data type")
	ErrDefaultOverflow   = errors.New("default value does not fit attribute size")
	ErrClusterNotFound   = errors.New("cluster not found")
	ErrAttributeNotFound = errors.New("attribute not found")
)

// ClusterMask is the role bit set of a cluster.
type ClusterMask uint8

const (
	// ClusterMaskClient marks a client cluster.
	ClusterMaskClient ClusterMask = 1 << iota

	// ClusterMaskServer marks a server cluster.
	ClusterMaskServer
)

// String returns the role name.
func (m ClusterMask) String() string {
	switch m {
	case ClusterMaskServer:
		return "server"
	case ClusterMaskClient:
		return "client"
	case ClusterMaskServer | ClusterMaskClient:
		return "server+client"
	default:
		return "none"
	}
}

// Cluster describes one capability on an endpoint.
type Cluster struct {
	// ID is the cluster identifier.
	ID ClusterID

	// Name is the human-readable cluster name.
	Name string

	// Attributes is the ordered attribute table.
	Attributes []AttributeMetadata

	// Mask is the cluster role.
	Mask ClusterMask

	// AcceptedCommands lists the command IDs the server accepts.
	AcceptedCommands []CommandID

	// GeneratedCommands lists the response command IDs the server emits.
	GeneratedCommands []CommandID
}

// FindAttribute returns the metadata for an attribute ID.
func (c *Cluster) FindAttribute(id AttributeID) (*AttributeMetadata, bool) {
	for i := range c.Attributes {
		if c.Attributes[i].ID == id {
			return &c.Attributes[i], true
		}
	}
	return nil, false
}

// AttributeIDs returns the attribute IDs in table order.
func (c *Cluster) AttributeIDs() []AttributeID {
	ids := make([]AttributeID, len(c.Attributes))
	for i, a := range c.Attributes {
		ids[i] = a.ID
	}
	return ids
}

// DeviceType classifies an endpoint.
type DeviceType struct {
	ID       DeviceTypeID
	Revision uint8
}

// String returns the device type as "0xNNNN/rev".
func (d DeviceType) String() string {
	return fmt.Sprintf("0x%04X/%d", uint32(d.ID), d.Revision)
}

// EndpointType is the descriptor the host registers for an endpoint.
type EndpointType struct {
	Clusters []Cluster
}

// FindCluster returns the cluster with the given ID.
func (e *EndpointType) FindCluster(id ClusterID) (*Cluster, bool) {
	for i := range e.Clusters {
		if e.Clusters[i].ID == id {
			return &e.Clusters[i], true
		}
	}
	return nil, false
}

// ClusterIndex returns the position of a cluster in the list, or -1.
// Data versions are aligned to this index.
func (e *EndpointType) ClusterIndex(id ClusterID) int {
	for i := range e.Clusters {
		if e.Clusters[i].ID == id {
			return i
		}
	}
	return -1
}

// FindAttribute resolves a (cluster, attribute) pair.
func (e *EndpointType) FindAttribute(cluster ClusterID, attr AttributeID) (*AttributeMetadata, error) {
	c, ok := e.FindCluster(cluster)
	if !ok {
		return nil, fmt.Errorf("%w: 0x%04X", ErrClusterNotFound, uint32(cluster))
	}
	meta, ok := c.FindAttribute(attr)
	if !ok {
		return nil, fmt.Errorf("%w: 0x%04X/0x%04X", ErrAttributeNotFound, uint32(cluster), uint16(attr))
	}
	return meta, nil
}

// ClusterIDs returns the cluster IDs in list order.
func (e *EndpointType) ClusterIDs() []ClusterID {
	ids := make([]ClusterID, len(e.Clusters))
	for i, c := range e.Clusters {
		ids[i] = c.ID
	}
	return ids
}

// Validate checks the identity and layout rules of the descriptor.
func (e *EndpointType) Validate() error {
	if len(e.Clusters) == 0 {
		return ErrNoClusters
	}

	seen := make(map[ClusterID]struct{}, len(e.Clusters))
	for i := range e.Clusters {
		c := &e.Clusters[i]
		if _, dup := seen[c.ID]; dup {
			return fmt.Errorf("%w: 0x%04X", ErrDuplicateCluster, uint32(c.ID))
		}
		seen[c.ID] = struct{}{}

		if err := c.validate(); err != nil {
			return fmt.Errorf("cluster 0x%04X: %w", uint32(c.ID), err)
		}
	}
	return nil
}

func (c *Cluster) validate() error {
	seen := make(map[AttributeID]struct{}, len(c.Attributes))
	for _, a := range c.Attributes {
		if _, dup := seen[a.ID]; dup {
			return fmt.Errorf("%w: 0x%04X", ErrDuplicateAttr, uint16(a.ID))
		}
		seen[a.ID] = struct{}{}

		if a.Type.IsList() {
			if a.Size != 0 {
				return fmt.Errorf("%w: list %s declares %d bytes", ErrAttributeSize, a.Name, a.Size)
			}
			continue
		}

		width, ok := a.Type.FixedSize()
		if !ok || width != a.Size {
			return fmt.Errorf("%w: %s", ErrAttributeSize, a)
		}

		if a.Default.Set && width < 4 && a.Default.Value >= 1<<(8*width) {
			return fmt.Errorf("%w: %s default %d", ErrDefaultOverflow, a.Name, a.Default.Value)
		}
	}
	return nil
}
