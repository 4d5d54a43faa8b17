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
	"strings"

	"gopkg.in/yaml.v3"
)

// Service is a node-backed view of one named service entry. Accessors are
// shape-tolerant: they return zero values for fields that are absent or not
// in a shape they recognize, so a malformed entry can still be inspected.
// Mutators are no-ops unless the service body is a mapping.
type Service struct {
	// Name is the service's key in the services mapping.
	Name string

	node *yaml.Node
}

// IsMapping reports whether the service body is a mapping. Null or scalar
// bodies are not valid service definitions.
func (s *Service) IsMapping() bool { return isMapping(s.node) }

// Has reports whether the service declares the given option key.
func (s *Service) Has(option string) bool { return mappingHas(s.node, option) }

// IsList reports whether the given option holds a sequence.
func (s *Service) IsList(option string) bool { return isSequence(mappingGet(s.node, option)) }

// Keys returns the service's option keys in declaration order.
func (s *Service) Keys() []string { return mappingKeys(s.node) }

// Scalar returns the scalar value under key, or "" when the key is absent or
// not a scalar.
func (s *Service) Scalar(key string) string { return scalarValue(mappingGet(s.node, key)) }

// SetScalar sets key to a string scalar, appending the key when absent.
func (s *Service) SetScalar(key, value string) {
	if !s.IsMapping() {
		return
	}
	mappingSet(s.node, key, strNode(value))
}

// Image returns the declared image reference, or "".
func (s *Service) Image() string { return s.Scalar("image") }

// NetworkMode returns the declared network_mode, or "".
func (s *Service) NetworkMode() string { return s.Scalar("network_mode") }

// HasBuild reports whether the service declares a build directive.
func (s *Service) HasBuild() bool { return s.Has("build") }

// BuildContext returns the build context for either build shape. ok is false
// when the service has no build directive; an object build without a context
// key returns "" with ok true.
func (s *Service) BuildContext() (context string, ok bool) {
	b := resolve(mappingGet(s.node, "build"))
	switch {
	case b == nil:
		return "", false
	case b.Kind == yaml.ScalarNode:
		return b.Value, true
	case b.Kind == yaml.MappingNode:
		return scalarValue(mappingGet(b, "context")), true
	default:
		return "", true
	}
}

// SetBuildContext rewrites the build context in place, keeping the string or
// object shape the tenant used. An object build without a context gains one.
func (s *Service) SetBuildContext(context string) {
	b := resolve(mappingGet(s.node, "build"))
	switch {
	case b == nil:
		return
	case b.Kind == yaml.ScalarNode:
		b.Value = context
		b.Tag = "!!str"
	case b.Kind == yaml.MappingNode:
		mappingSet(b, "context", strNode(context))
	}
}

// DependsOn returns the names of services this one depends on, covering both
// the list form and the long mapping form.
func (s *Service) DependsOn() []string {
	dep := resolve(mappingGet(s.node, "depends_on"))
	switch {
	case isSequence(dep):
		names := make([]string, 0, len(dep.Content))
		for _, item := range dep.Content {
			if v := scalarValue(item); v != "" {
				names = append(names, v)
			}
		}
		return names
	case isMapping(dep):
		return mappingKeys(dep)
	default:
		return nil
	}
}

// PortNodes returns the raw entries of the ports list in declaration order,
// or nil when ports is absent or not a list.
func (s *Service) PortNodes() []*yaml.Node {
	ports := resolve(mappingGet(s.node, "ports"))
	if !isSequence(ports) {
		return nil
	}
	return ports.Content
}

// SetPorts replaces the service's ports list with short-syntax entries.
func (s *Service) SetPorts(entries []PortEntry) {
	if !s.IsMapping() || !s.Has("ports") {
		return
	}
	seq := newSequence()
	for _, e := range entries {
		seq.Content = append(seq.Content, quotedNode(e.ShortString()))
	}
	mappingSet(s.node, "ports", seq)
}

// VolumeNodes returns the raw entries of the volumes list in declaration
// order, or nil when volumes is absent or not a list.
func (s *Service) VolumeNodes() []*yaml.Node {
	volumes := resolve(mappingGet(s.node, "volumes"))
	if !isSequence(volumes) {
		return nil
	}
	return volumes.Content
}

// ResourceLimits returns the declared deploy resource limits, "" for
// whichever of cpus and memory is absent.
func (s *Service) ResourceLimits() (cpus, memory string) {
	limits := s.limitsNode()
	return scalarValue(mappingGet(limits, "cpus")), scalarValue(mappingGet(limits, "memory"))
}

// SetResourceLimits writes deploy resource limits, creating the chain of
// mappings as needed and preserving sibling deploy settings.
func (s *Service) SetResourceLimits(cpus, memory string) {
	if !s.IsMapping() {
		return
	}
	deploy := ensureMapping(s.node, "deploy")
	resources := ensureMapping(deploy, "resources")
	limits := ensureMapping(resources, "limits")
	mappingSet(limits, "cpus", strNode(cpus))
	mappingSet(limits, "memory", strNode(memory))
}

func (s *Service) limitsNode() *yaml.Node {
	deploy := resolve(mappingGet(s.node, "deploy"))
	resources := resolve(mappingGet(deploy, "resources"))
	return resolve(mappingGet(resources, "limits"))
}

// Labels returns the service's labels field.
func (s *Service) Labels() Dict { return Dict{service: s.node, key: "labels"} }

// Environment returns the service's environment field.
func (s *Service) Environment() Dict { return Dict{service: s.node, key: "environment"} }

// Dict is a view of a service field that compose allows as either a list of
// "key=value" strings or a key/value mapping, such as labels and
// environment.
type Dict struct {
	service *yaml.Node
	key     string
}

func (d Dict) node() *yaml.Node { return resolve(mappingGet(d.service, d.key)) }

// Has reports whether an entry named name is present in either shape. List
// entries match on the name before "=", or on the whole entry for bare
// pass-through names.
func (d Dict) Has(name string) bool {
	n := d.node()
	switch {
	case isMapping(n):
		return mappingHas(n, name)
	case isSequence(n):
		for _, item := range n.Content {
			v := scalarValue(item)
			if v == name || strings.HasPrefix(v, name+"=") {
				return true
			}
		}
	}
	return false
}

// Get returns the value for name, with ok false when absent. Bare list
// entries have no value and return "".
func (d Dict) Get(name string) (string, bool) {
	n := d.node()
	switch {
	case isMapping(n):
		if v := mappingGet(n, name); v != nil {
			return scalarValue(v), true
		}
	case isSequence(n):
		for _, item := range n.Content {
			v := scalarValue(item)
			if v == name {
				return "", true
			}
			if strings.HasPrefix(v, name+"=") {
				return v[len(name)+1:], true
			}
		}
	}
	return "", false
}

// Set writes name=value respecting the field's existing shape: mapping
// entries are set as keys, list entries appended or replaced in place. A
// missing field is created as a mapping.
func (d Dict) Set(name, value string) {
	svc := resolve(d.service)
	if svc == nil || svc.Kind != yaml.MappingNode {
		return
	}
	n := d.node()
	switch {
	case isSequence(n):
		for _, item := range n.Content {
			item := resolve(item)
			v := scalarValue(item)
			if v == name || strings.HasPrefix(v, name+"=") {
				item.Value = name + "=" + value
				item.Tag = "!!str"
				return
			}
		}
		n.Content = append(n.Content, strNode(name+"="+value))
	case isMapping(n):
		mappingSet(n, name, strNode(value))
	default:
		m := newMapping()
		mappingSet(m, name, strNode(value))
		mappingSet(svc, d.key, m)
	}
}

// Networks returns the service's networks field.
func (s *Service) Networks() ServiceNetworks { return ServiceNetworks{service: s.node} }

// ServiceNetworks is a view of a service's networks field, which compose
// allows as a list of names or a mapping with per-network settings such as
// aliases.
type ServiceNetworks struct {
	service *yaml.Node
}

func (n ServiceNetworks) node() *yaml.Node { return resolve(mappingGet(n.service, "networks")) }

// Names returns the attached network names in declaration order.
func (n ServiceNetworks) Names() []string {
	node := n.node()
	switch {
	case isSequence(node):
		names := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			if v := scalarValue(item); v != "" {
				names = append(names, v)
			}
		}
		return names
	case isMapping(node):
		return mappingKeys(node)
	default:
		return nil
	}
}

// Has reports whether name is attached.
func (n ServiceNetworks) Has(name string) bool {
	for _, have := range n.Names() {
		if have == name {
			return true
		}
	}
	return false
}

// Ensure attaches name, preserving the existing shape, entries, and aliases.
// A missing field is created as a list.
func (n ServiceNetworks) Ensure(name string) {
	svc := resolve(n.service)
	if svc == nil || svc.Kind != yaml.MappingNode || n.Has(name) {
		return
	}
	node := n.node()
	switch {
	case isSequence(node):
		node.Content = append(node.Content, strNode(name))
	case isMapping(node):
		mappingSet(node, name, nullNode())
	default:
		seq := newSequence()
		seq.Content = append(seq.Content, strNode(name))
		mappingSet(svc, "networks", seq)
	}
}
