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
	"strconv"
	"strings"

	"github.com/docker/go-connections/nat"
	"gopkg.in/yaml.v3"
)

// PortEntry is one normalized port publication: the container-side target
// and protocol plus whatever host-side value the tenant declared. Short
// syntax ranges expand to one entry per port.
type PortEntry struct {
	// Target is the container-side port.
	Target string
	// Published is the host-side port as declared, "" when the tenant left
	// it to the runtime.
	Published string
	// Protocol is tcp unless the entry says otherwise.
	Protocol string
}

// ShortString renders the entry in compose short syntax, with the protocol
// suffix only when it is not tcp.
func (e PortEntry) ShortString() string {
	s := e.Target
	if e.Published != "" {
		s = e.Published + ":" + e.Target
	}
	if e.Protocol != "" && e.Protocol != "tcp" {
		s += "/" + e.Protocol
	}
	return s
}

// ParsePorts normalizes one ports-list element in any of its three shapes:
// a bare port number, a short-syntax string, or a long-form mapping. Scalar
// strings go through docker's port-spec parser, so ranges and host
// addresses behave exactly as the runtime would read them.
func ParsePorts(n *yaml.Node) ([]PortEntry, error) {
	n = resolve(n)
	switch {
	case n == nil || isNull(n):
		return nil, fmt.Errorf("port entry is missing")
	case n.Kind == yaml.ScalarNode && n.Tag == "!!int":
		p, err := strconv.Atoi(n.Value)
		if err != nil || p < 1 || p > 65535 {
			return nil, fmt.Errorf("invalid port %q", n.Value)
		}
		return []PortEntry{{Target: n.Value, Protocol: "tcp"}}, nil
	case n.Kind == yaml.ScalarNode:
		return parsePortSpec(n.Value)
	case n.Kind == yaml.MappingNode:
		return parseLongPort(n)
	default:
		return nil, fmt.Errorf("port entry must be a number, string, or mapping")
	}
}

func parsePortSpec(spec string) ([]PortEntry, error) {
	mappings, err := nat.ParsePortSpec(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid port %q: %w", spec, err)
	}
	entries := make([]PortEntry, 0, len(mappings))
	for _, m := range mappings {
		entries = append(entries, PortEntry{
			Target:    m.Port.Port(),
			Published: m.Binding.HostPort,
			Protocol:  strings.ToLower(m.Port.Proto()),
		})
	}
	return entries, nil
}

func parseLongPort(n *yaml.Node) ([]PortEntry, error) {
	target := scalarValue(mappingGet(n, "target"))
	if target == "" {
		return nil, fmt.Errorf("long-form port entry has no target")
	}
	if p, err := strconv.Atoi(target); err != nil || p < 1 || p > 65535 {
		return nil, fmt.Errorf("invalid port target %q", target)
	}
	proto := strings.ToLower(scalarValue(mappingGet(n, "protocol")))
	if proto == "" {
		proto = "tcp"
	}
	return []PortEntry{{
		Target:    target,
		Published: scalarValue(mappingGet(n, "published")),
		Protocol:  proto,
	}}, nil
}
