// Package inspect provides endpoint inspection and attribute manipulation
// utilities on top of a host framework.
//
// The inspect package offers a unified interface for:
//   - Parsing path expressions (e.g., "1/humidity/measuredValue")
//   - Resolving cluster and attribute names to numeric IDs
//   - Reading and writing attributes through the framework
//   - Formatting output for display
package inspect

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Nilao18/matter-ophelia4/pkg/model"
)

// Path errors.
var (
	ErrEmptyPath     = errors.New("empty path")
	ErrInvalidPath   = errors.New("invalid path format")
	ErrInvalidNumber = errors.New("invalid numeric value in path")
)

// Path represents a parsed inspection path.
// Format: endpoint[/cluster[/attribute]]
type Path struct {
	// EndpointID is the endpoint number.
	EndpointID model.EndpointID

	// ClusterID is the cluster (when present).
	ClusterID model.ClusterID

	// AttributeID is the attribute within the cluster.
	AttributeID model.AttributeID

	// IsPartial indicates the path stops at the endpoint or cluster.
	IsPartial bool

	// HasCluster indicates a cluster segment was given.
	HasCluster bool

	// Raw stores the original input string.
	Raw string
}

// ParsePath parses a path string into a Path struct.
//
// Supported formats:
//   - "endpoint/cluster/attribute"
//   - "endpoint/cluster" - partial (for listing attributes)
//   - "endpoint" - partial (for listing clusters)
//
// Numeric values can be decimal or hex (0x prefix).
// Names are resolved via the name tables.
func ParsePath(input string) (*Path, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrEmptyPath
	}

	if strings.HasPrefix(input, "/") || strings.HasSuffix(input, "/") || strings.Contains(input, "//") {
		return nil, ErrInvalidPath
	}

	parts := strings.Split(input, "/")
	if len(parts) > 3 {
		return nil, ErrInvalidPath
	}

	p := &Path{Raw: input}

	epID, err := parseUint(parts[0], 16)
	if err != nil {
		return nil, fmt.Errorf("endpoint: %w: %s", ErrInvalidNumber, parts[0])
	}
	p.EndpointID = model.EndpointID(epID)

	if len(parts) == 1 {
		p.IsPartial = true
		return p, nil
	}

	clusterID, err := parseClusterID(parts[1])
	if err != nil {
		return nil, fmt.Errorf("cluster: %w", err)
	}
	p.ClusterID = clusterID
	p.HasCluster = true

	if len(parts) == 2 {
		p.IsPartial = true
		return p, nil
	}

	attrID, err := parseAttributeID(parts[2], p.ClusterID)
	if err != nil {
		return nil, fmt.Errorf("attribute: %w", err)
	}
	p.AttributeID = attrID

	return p, nil
}

// String returns the path in numeric form.
func (p *Path) String() string {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(int(p.EndpointID)))

	if !p.HasCluster {
		return sb.String()
	}
	fmt.Fprintf(&sb, "/0x%04X", uint32(p.ClusterID))

	if p.IsPartial {
		return sb.String()
	}
	fmt.Fprintf(&sb, "/0x%04X", uint16(p.AttributeID))
	return sb.String()
}

func parseClusterID(s string) (model.ClusterID, error) {
	if id, err := parseUint(s, 32); err == nil {
		return model.ClusterID(id), nil
	}
	if id, ok := ResolveClusterName(s); ok {
		return id, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrInvalidNumber, s)
}

func parseAttributeID(s string, cluster model.ClusterID) (model.AttributeID, error) {
	if id, err := parseUint(s, 16); err == nil {
		return model.AttributeID(id), nil
	}
	if id, ok := ResolveAttributeName(cluster, s); ok {
		return id, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrInvalidNumber, s)
}

// parseUint parses a decimal or 0x-prefixed hex number.
func parseUint(s string, bits int) (uint64, error) {
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s, base = s[2:], 16
	}
	v, err := strconv.ParseUint(s, base, bits)
	if err != nil {
		return 0, err
	}
	return v, nil
}
