package inspect

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/Nilao18/matter-ophelia4/pkg/host"
	"github.com/Nilao18/matter-ophelia4/pkg/model"
)

// Inspector errors.
var (
	ErrEndpointNotFound  = errors.New("endpoint not found")
	ErrClusterNotFound   = errors.New("cluster not found")
	ErrAttributeNotFound = errors.New("attribute not found")
	ErrPartialPath       = errors.New("path does not name an attribute")
	ErrInvalidValue      = errors.New("invalid attribute value")
)

// Inspector reads and writes endpoints registered with a host framework.
type Inspector struct {
	fw *host.Framework
}

// NewInspector creates a new Inspector for the given framework.
func NewInspector(fw *host.Framework) *Inspector {
	return &Inspector{fw: fw}
}

// EndpointInfo represents endpoint information for display.
type EndpointInfo struct {
	ID       model.EndpointID
	Clusters []ClusterInfo
}

// ClusterInfo represents cluster information for display.
type ClusterInfo struct {
	ID          model.ClusterID
	Name        string
	DataVersion model.DataVersion
	Attributes  []AttributeInfo
	Commands    []model.CommandID
}

// AttributeInfo represents attribute information for display.
type AttributeInfo struct {
	Meta  model.AttributeMetadata
	Unit  string
	Value host.Value
	Err   error
}

// InspectAll returns every registered endpoint.
func (i *Inspector) InspectAll() []EndpointInfo {
	var out []EndpointInfo
	for _, id := range i.fw.Endpoints() {
		if info, err := i.InspectEndpoint(id); err == nil {
			out = append(out, *info)
		}
	}
	return out
}

// InspectEndpoint returns information about a specific endpoint.
func (i *Inspector) InspectEndpoint(id model.EndpointID) (*EndpointInfo, error) {
	ep, ok := i.fw.EndpointType(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrEndpointNotFound, id)
	}

	info := &EndpointInfo{ID: id}
	for _, c := range ep.Clusters {
		info.Clusters = append(info.Clusters, i.inspectCluster(id, &c))
	}
	return info, nil
}

// InspectCluster returns information about a specific cluster.
func (i *Inspector) InspectCluster(id model.EndpointID, cluster model.ClusterID) (*ClusterInfo, error) {
	ep, ok := i.fw.EndpointType(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrEndpointNotFound, id)
	}
	c, ok := ep.FindCluster(cluster)
	if !ok {
		return nil, fmt.Errorf("%w: 0x%04X", ErrClusterNotFound, uint32(cluster))
	}
	info := i.inspectCluster(id, c)
	return &info, nil
}

func (i *Inspector) inspectCluster(id model.EndpointID, c *model.Cluster) ClusterInfo {
	info := ClusterInfo{
		ID:       c.ID,
		Name:     c.Name,
		Commands: c.AcceptedCommands,
	}
	info.DataVersion, _ = i.fw.DataVersion(id, c.ID)

	for _, meta := range c.Attributes {
		value, err := i.fw.ReadAttribute(id, c.ID, meta.ID)
		info.Attributes = append(info.Attributes, AttributeInfo{
			Meta:  meta,
			Unit:  GetAttributeUnit(c.ID, meta.ID),
			Value: value,
			Err:   err,
		})
	}
	return info
}

// ReadAttribute reads an attribute value using a path.
func (i *Inspector) ReadAttribute(path *Path) (host.Value, *model.AttributeMetadata, error) {
	meta, err := i.resolve(path)
	if err != nil {
		return host.Value{}, nil, err
	}
	value, err := i.fw.ReadAttribute(path.EndpointID, path.ClusterID, path.AttributeID)
	if err != nil {
		return host.Value{}, meta, err
	}
	return value, meta, nil
}

// WriteAttribute parses input for the attribute's type and writes it.
func (i *Inspector) WriteAttribute(path *Path, input string) error {
	meta, err := i.resolve(path)
	if err != nil {
		return err
	}
	data, err := EncodeValue(meta, input)
	if err != nil {
		return err
	}
	return i.fw.WriteAttribute(path.EndpointID, path.ClusterID, path.AttributeID, data)
}

func (i *Inspector) resolve(path *Path) (*model.AttributeMetadata, error) {
	if path.IsPartial {
		return nil, fmt.Errorf("%w: %s", ErrPartialPath, path.Raw)
	}
	ep, ok := i.fw.EndpointType(path.EndpointID)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrEndpointNotFound, path.EndpointID)
	}
	meta, err := ep.FindAttribute(path.ClusterID, path.AttributeID)
	switch {
	case errors.Is(err, model.ErrClusterNotFound):
		return nil, fmt.Errorf("%w: 0x%04X", ErrClusterNotFound, uint32(path.ClusterID))
	case err != nil:
		return nil, fmt.Errorf("%w: 0x%04X", ErrAttributeNotFound, uint16(path.AttributeID))
	}
	return meta, nil
}

// EncodeValue converts user input into the little-endian bytes of a scalar
// attribute. "null" is accepted for nullable attributes.
func EncodeValue(meta *model.AttributeMetadata, input string) ([]byte, error) {
	if meta.Type.IsList() {
		return nil, fmt.Errorf("%w: %s is a list", ErrInvalidValue, meta.Name)
	}

	buf := make([]byte, meta.Size)
	if strings.EqualFold(input, "null") {
		if !meta.Mask.IsNullable() {
			return nil, fmt.Errorf("%w: %s is not nullable", ErrInvalidValue, meta.Name)
		}
		for j := range buf {
			buf[j] = 0xFF
		}
		return buf, nil
	}

	v, err := parseUint(input, int(meta.Size)*8)
	if err != nil {
		return nil, fmt.Errorf("%w: %q for %s: %v", ErrInvalidValue, input, meta.Name, err)
	}
	switch meta.Size {
	case 1:
		buf[0] = uint8(v)
	case 2:
		binary.LittleEndian.PutUint16(buf, uint16(v))
	case 4:
		binary.LittleEndian.PutUint32(buf, uint32(v))
	default:
		return nil, fmt.Errorf("%w: unsupported width %d", ErrInvalidValue, meta.Size)
	}
	return buf, nil
}
