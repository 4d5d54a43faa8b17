// Copyright 2026 The Berth Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package compose

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// VolumeEntry is one normalized volume attachment. Short-syntax strings and
// long-form mappings share this view; SetSource writes back through the
// original node, so the shape the tenant used survives.
type VolumeEntry struct {
	// Source is the host path, project-relative path, or bare volume name.
	// Empty for anonymous volumes.
	Source string
	// Target is the container mount path.
	Target string
	// Mode carries short-syntax access options such as "ro", "" when unset.
	Mode string
	// Type is the long-form mount type (bind, volume, tmpfs), "" for short
	// syntax.
	Type string

	node *yaml.Node
	long bool
}

// IsLong reports whether the entry came from the long mapping form.
func (e *VolumeEntry) IsLong() bool { return e.long }

// SetSource rewrites the entry's source in place, keeping target and mode.
func (e *VolumeEntry) SetSource(source string) {
	e.Source = source
	if e.long {
		mappingSet(e.node, "source", strNode(source))
		return
	}
	v := source + ":" + e.Target
	if e.Mode != "" {
		v += ":" + e.Mode
	}
	e.node.Value = v
	e.node.Tag = "!!str"
}

// ParseVolume normalizes one volumes-list element, either a short-syntax
// source:target[:mode] string or a long-form mapping.
func ParseVolume(n *yaml.Node) (*VolumeEntry, error) {
	n = resolve(n)
	switch {
	case n == nil || isNull(n):
		return nil, fmt.Errorf("volume entry is missing")
	case n.Kind == yaml.ScalarNode:
		return parseShortVolume(n)
	case n.Kind == yaml.MappingNode:
		return parseLongVolume(n)
	default:
		return nil, fmt.Errorf("volume entry must be a string or mapping")
	}
}

func parseShortVolume(n *yaml.Node) (*VolumeEntry, error) {
	parts := strings.Split(n.Value, ":")
	switch len(parts) {
	case 1:
		if parts[0] == "" {
			return nil, fmt.Errorf("volume entry is empty")
		}
		return &VolumeEntry{Target: parts[0], node: n}, nil
	case 2, 3:
		if parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("invalid volume %q", n.Value)
		}
		e := &VolumeEntry{Source: parts[0], Target: parts[1], node: n}
		if len(parts) == 3 {
			if parts[2] == "" {
				return nil, fmt.Errorf("invalid volume %q", n.Value)
			}
			e.Mode = parts[2]
		}
		return e, nil
	default:
		return nil, fmt.Errorf("invalid volume %q", n.Value)
	}
}

func parseLongVolume(n *yaml.Node) (*VolumeEntry, error) {
	target := scalarValue(mappingGet(n, "target"))
	if target == "" {
		return nil, fmt.Errorf("long-form volume entry has no target")
	}
	return &VolumeEntry{
		Source: scalarValue(mappingGet(n, "source")),
		Target: target,
		Type:   scalarValue(mappingGet(n, "type")),
		node:   n,
		long:   true,
	}, nil
}
