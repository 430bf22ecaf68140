// Package version provides data model version parsing and the embedded
// device type manifests used to check an endpoint descriptor locally.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Current is the data model version the endpoint tables implement.
const Current = "1.3"

// ModelVersion represents a parsed "major.minor" data model version.
type ModelVersion struct {
	Major uint16
	Minor uint16
}

// Parse parses a "major.minor" version string.
func Parse(s string) (ModelVersion, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 2 {
		return ModelVersion{}, fmt.Errorf("invalid version %q: expected major.minor", s)
	}

	major, err := strconv.ParseUint(parts[0], 10, 16)
	if err != nil || parts[0] == "" {
		return ModelVersion{}, fmt.Errorf("invalid version %q: bad major component", s)
	}

	minor, err := strconv.ParseUint(parts[1], 10, 16)
	if err != nil || parts[1] == "" {
		return ModelVersion{}, fmt.Errorf("invalid version %q: bad minor component", s)
	}

	return ModelVersion{Major: uint16(major), Minor: uint16(minor)}, nil
}

// String returns the version as "major.minor".
func (v ModelVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Compatible returns true if the other version has the same major version.
func (v ModelVersion) Compatible(other ModelVersion) bool {
	return v.Major == other.Major
}
