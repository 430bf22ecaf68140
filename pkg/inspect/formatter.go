package inspect

import (
	"fmt"
	"strings"

	"github.com/Nilao18/matter-ophelia4/pkg/host"
	"github.com/Nilao18/matter-ophelia4/pkg/model"
)

// Formatter formats inspection output.
type Formatter struct {
	// ShowMetadata includes type and mask information
	ShowMetadata bool

	// ShowIDs includes numeric IDs alongside names
	ShowIDs bool

	// IndentWidth is the number of spaces per indent level
	IndentWidth int
}

// NewFormatter creates a new Formatter with default settings.
func NewFormatter() *Formatter {
	return &Formatter{
		ShowMetadata: true,
		ShowIDs:      false,
		IndentWidth:  2,
	}
}

// Indent returns the content with indentation.
func (f *Formatter) Indent(depth int, content string) string {
	width := f.IndentWidth
	if width == 0 {
		width = 2
	}
	return strings.Repeat(" ", depth*width) + content
}

// FormatValue formats an attribute value for display, including unit
// conversions. Nullable scalars with all bits set print as null.
func (f *Formatter) FormatValue(meta *model.AttributeMetadata, value host.Value, unit string) string {
	if value.Type.IsList() {
		return value.String()
	}
	if meta != nil && meta.Mask.IsNullable() && isNull(value.Data) {
		return "null"
	}

	n, ok := value.Uint()
	if !ok {
		return fmt.Sprintf("0x%x", value.Data)
	}
	if value.Type == model.DataTypeBoolean {
		return fmt.Sprintf("%t", n != 0)
	}
	return formatUintWithUnit(n, unit)
}

func isNull(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	for _, b := range data {
		if b != 0xFF {
			return false
		}
	}
	return true
}

// formatUintWithUnit formats a scalar with optional unit and human-readable conversion.
func formatUintWithUnit(v uint64, unit string) string {
	switch unit {
	case "":
		return fmt.Sprintf("%d", v)
	case "%RH":
		return fmt.Sprintf("%d (%s)", v, FormatHumidity(uint16(v)))
	default:
		return fmt.Sprintf("%d %s", v, unit)
	}
}

// FormatHumidity formats a measured value in hundredths of a percent.
func FormatHumidity(v uint16) string {
	return fmt.Sprintf("%d.%02d %%RH", v/100, v%100)
}

// FormatMask formats an attribute mask for display.
func FormatMask(mask model.AttributeMask) string {
	var access string
	switch {
	case mask.CanRead() && mask.CanWrite():
		access = "read-write"
	case mask.CanWrite():
		access = "write"
	default:
		access = "read-only"
	}
	if mask.IsNullable() {
		access += ", nullable"
	}
	if mask.IsExternal() {
		access += ", external"
	}
	return access
}

// FormatFeatureMap formats a feature map bitmask.
func FormatFeatureMap(fm uint32) string {
	if fm == 0 {
		return "0x0 (none)"
	}
	return fmt.Sprintf("0x%08x", fm)
}

// AttributeRow represents a formatted attribute for display.
type AttributeRow struct {
	ID     model.AttributeID
	Name   string
	Value  string
	Type   string
	Access string
}

// Row converts attribute info into a display row.
func (f *Formatter) Row(info AttributeInfo) AttributeRow {
	row := AttributeRow{
		ID:     info.Meta.ID,
		Name:   info.Meta.Name,
		Type:   info.Meta.Type.String(),
		Access: FormatMask(info.Meta.Mask),
	}
	switch {
	case info.Err != nil:
		row.Value = "error: " + info.Err.Error()
	case info.Meta.ID == model.AttrIDFeatureMap:
		n, _ := info.Value.Uint()
		row.Value = FormatFeatureMap(uint32(n))
	default:
		row.Value = f.FormatValue(&info.Meta, info.Value, info.Unit)
	}
	return row
}

// FormatAttributeTable formats a list of attributes as a table.
func (f *Formatter) FormatAttributeTable(rows []AttributeRow) string {
	if len(rows) == 0 {
		return "  (no attributes)"
	}

	var sb strings.Builder
	for _, row := range rows {
		if f.ShowIDs {
			fmt.Fprintf(&sb, "  [0x%04X] %s: %s", uint16(row.ID), row.Name, row.Value)
		} else {
			fmt.Fprintf(&sb, "  %s: %s", row.Name, row.Value)
		}
		if f.ShowMetadata && row.Type != "" {
			fmt.Fprintf(&sb, " (%s, %s)", row.Type, row.Access)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatCluster formats a cluster with its attributes.
func (f *Formatter) FormatCluster(c ClusterInfo) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (0x%04X) version=%d\n", c.Name, uint32(c.ID), c.DataVersion)

	rows := make([]AttributeRow, 0, len(c.Attributes))
	for _, a := range c.Attributes {
		rows = append(rows, f.Row(a))
	}
	sb.WriteString(f.FormatAttributeTable(rows))

	if len(c.Commands) > 0 {
		ids := make([]string, len(c.Commands))
		for i, cmd := range c.Commands {
			ids[i] = fmt.Sprintf("0x%02X", uint32(cmd))
		}
		sb.WriteString(f.Indent(1, "commands: "+strings.Join(ids, ", ")) + "\n")
	}
	return sb.String()
}

// FormatEndpoint formats an endpoint tree.
func (f *Formatter) FormatEndpoint(ep EndpointInfo) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Endpoint %d\n", ep.ID)
	for _, c := range ep.Clusters {
		for _, line := range strings.Split(strings.TrimRight(f.FormatCluster(c), "\n"), "\n") {
			sb.WriteString(f.Indent(1, line) + "\n")
		}
	}
	return sb.String()
}
