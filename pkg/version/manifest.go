package version

import (
	"embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/Nilao18/matter-ophelia4/pkg/model"
	"gopkg.in/yaml.v3"
)

//go:embed manifests/*.yaml
var manifestFS embed.FS

// Manifest describes what each device type of a data model version requires.
type Manifest struct {
	Version     string                    `yaml:"version"`
	Description string                    `yaml:"description"`
	DeviceTypes map[string]DeviceTypeSpec `yaml:"device_types"`
}

// DeviceTypeSpec describes a single device type.
type DeviceTypeSpec struct {
	ID       uint32                 `yaml:"id"`
	Revision uint8                  `yaml:"revision"`
	Clusters map[string]ClusterSpec `yaml:"clusters"`
}

// ClusterSpec describes a server cluster a device type requires.
type ClusterSpec struct {
	ID         uint32        `yaml:"id"`
	Revision   uint16        `yaml:"revision"`
	Attributes AttributeSpec `yaml:"attributes"`
	Commands   CommandSpec   `yaml:"commands"`
}

// AttributeSpec lists the mandatory and optional attributes of a cluster.
type AttributeSpec struct {
	Mandatory []AttrDef `yaml:"mandatory"`
	Optional  []AttrDef `yaml:"optional"`
}

// AttrDef is a named attribute with its ID.
type AttrDef struct {
	ID   uint16 `yaml:"id"`
	Name string `yaml:"name"`
}

// CommandSpec lists the mandatory and optional commands of a cluster.
type CommandSpec struct {
	Mandatory []CmdDef `yaml:"mandatory"`
	Optional  []CmdDef `yaml:"optional"`
}

// CmdDef is a named command with its ID.
type CmdDef struct {
	ID   uint32 `yaml:"id"`
	Name string `yaml:"name"`
}

// ---------------------------------------------------------------------------
// Cache
// ---------------------------------------------------------------------------

var (
	cacheMu sync.RWMutex
	cache   = make(map[string]*Manifest)
)

// LoadManifest loads a manifest by version string (e.g. "1.3").
func LoadManifest(ver string) (*Manifest, error) {
	cacheMu.RLock()
	if m, ok := cache[ver]; ok {
		cacheMu.RUnlock()
		return m, nil
	}
	cacheMu.RUnlock()

	data, err := manifestFS.ReadFile("manifests/" + ver + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("manifest version %q not found: %w", ver, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %q: %w", ver, err)
	}

	cacheMu.Lock()
	cache[ver] = &m
	cacheMu.Unlock()

	return &m, nil
}

// LoadCurrentManifest loads the manifest for the current data model version.
func LoadCurrentManifest() (*Manifest, error) {
	return LoadManifest(Current)
}

// AvailableManifests returns the version strings of all embedded manifests.
func AvailableManifests() ([]string, error) {
	entries, err := manifestFS.ReadDir("manifests")
	if err != nil {
		return nil, fmt.Errorf("reading manifests directory: %w", err)
	}

	var versions []string
	for _, e := range entries {
		name := e.Name()
		if strings.HasSuffix(name, ".yaml") {
			versions = append(versions, strings.TrimSuffix(name, ".yaml"))
		}
	}
	sort.Strings(versions)
	return versions, nil
}

// DeviceTypeByID looks up a device type by its numeric ID.
func (m *Manifest) DeviceTypeByID(id model.DeviceTypeID) (string, *DeviceTypeSpec, bool) {
	for name, dt := range m.DeviceTypes {
		if dt.ID == uint32(id) {
			return name, &dt, true
		}
	}
	return "", nil, false
}

// ---------------------------------------------------------------------------
// Validation
// ---------------------------------------------------------------------------

// ValidationResult holds the outcome of checking an endpoint against a manifest.
type ValidationResult struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

// ValidateEndpoint checks whether an endpoint descriptor satisfies every
// device type it declares. Revision mismatches and unknown device types are
// warnings; missing clusters, attributes or commands are errors.
func ValidateEndpoint(m *Manifest, ep *model.EndpointType, deviceTypes []model.DeviceType) ValidationResult {
	var result ValidationResult

	for _, dt := range deviceTypes {
		name, spec, ok := m.DeviceTypeByID(dt.ID)
		if !ok {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("device type %s not in manifest %s", dt, m.Version))
			continue
		}
		if dt.Revision != spec.Revision {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("device type %s revision mismatch: endpoint has %d, manifest expects %d",
					name, dt.Revision, spec.Revision))
		}

		for _, clusterName := range sortedKeys(spec.Clusters) {
			cs := spec.Clusters[clusterName]
			c, present := ep.FindCluster(model.ClusterID(cs.ID))
			if !present {
				result.Errors = append(result.Errors,
					fmt.Sprintf("%s: mandatory cluster %s (0x%04X) missing", name, clusterName, cs.ID))
				continue
			}
			result = checkCluster(result, clusterName, cs, c)
		}
	}

	result.Valid = len(result.Errors) == 0
	return result
}

func checkCluster(result ValidationResult, name string, spec ClusterSpec, c *model.Cluster) ValidationResult {
	if rev, ok := c.FindAttribute(model.AttrIDClusterRevision); ok && rev.Default.Set {
		if uint16(rev.Default.Value) != spec.Revision {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("cluster %s revision mismatch: endpoint has %d, manifest expects %d",
					name, rev.Default.Value, spec.Revision))
		}
	}

	for _, attr := range spec.Attributes.Mandatory {
		if _, ok := c.FindAttribute(model.AttributeID(attr.ID)); !ok {
			result.Errors = append(result.Errors,
				fmt.Sprintf("cluster %s missing mandatory attribute %s (0x%04X)", name, attr.Name, attr.ID))
		}
	}

	accepted := make(map[model.CommandID]bool, len(c.AcceptedCommands))
	for _, id := range c.AcceptedCommands {
		accepted[id] = true
	}
	for _, cmd := range spec.Commands.Mandatory {
		if !accepted[model.CommandID(cmd.ID)] {
			result.Errors = append(result.Errors,
				fmt.Sprintf("cluster %s missing mandatory command %s (0x%02X)", name, cmd.Name, cmd.ID))
		}
	}
	return result
}

func sortedKeys(m map[string]ClusterSpec) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
