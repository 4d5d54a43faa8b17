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
	"bytes"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Document is one parsed declaration. All accessors and mutators operate on
// the underlying yaml node tree; anything they do not touch is preserved
// verbatim, including unknown top-level sections.
type Document struct {
	doc  *yaml.Node // document node
	body *yaml.Node // top-level mapping
}

// Clone returns an independent deep copy of the document.
func (d *Document) Clone() *Document {
	doc := cloneNode(d.doc, map[*yaml.Node]*yaml.Node{})
	return &Document{doc: doc, body: resolve(doc.Content[0])}
}

// Marshal re-emits the document as YAML. Two-space indentation matches the
// way compose files are conventionally written.
func (d *Document) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d.doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// HasVersion reports whether the declaration carries the legacy top-level
// schema version marker.
func (d *Document) HasVersion() bool { return mappingHas(d.body, "version") }

// DeleteVersion removes the schema version marker and reports whether it was
// present.
func (d *Document) DeleteVersion() bool { return mappingDelete(d.body, "version") }

// Services returns the declared services in document order. The slice is
// empty when the services section is missing, empty, or not a mapping.
func (d *Document) Services() []*Service {
	section := resolve(mappingGet(d.body, "services"))
	if !isMapping(section) {
		return nil
	}
	svcs := make([]*Service, 0, len(section.Content)/2)
	for i := 0; i+1 < len(section.Content); i += 2 {
		svcs = append(svcs, &Service{
			Name: section.Content[i].Value,
			node: resolve(section.Content[i+1]),
		})
	}
	return svcs
}

// Service returns the named service when declared.
func (d *Document) Service(name string) (*Service, bool) {
	for _, s := range d.Services() {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// ServiceNames returns the service names in document order.
func (d *Document) ServiceNames() []string {
	svcs := d.Services()
	names := make([]string, 0, len(svcs))
	for _, s := range svcs {
		names = append(names, s.Name)
	}
	return names
}

// Network is a node-backed view of one top-level network entry.
type Network struct {
	// Name is the network's key in the networks mapping.
	Name string

	node *yaml.Node
}

// Networks returns the top-level network declarations in document order.
func (d *Document) Networks() []*Network {
	section := resolve(mappingGet(d.body, "networks"))
	if !isMapping(section) {
		return nil
	}
	nets := make([]*Network, 0, len(section.Content)/2)
	for i := 0; i+1 < len(section.Content); i += 2 {
		nets = append(nets, &Network{
			Name: section.Content[i].Value,
			node: resolve(section.Content[i+1]),
		})
	}
	return nets
}

// External reports the network's external flag and whether it was declared.
// The legacy object form (external with a name override) counts as declared
// true, as does any value that is not a readable bool.
func (n *Network) External() (value, declared bool) {
	ext := resolve(mappingGet(n.node, "external"))
	if ext == nil {
		return false, false
	}
	if ext.Kind == yaml.ScalarNode {
		if v, err := strconv.ParseBool(ext.Value); err == nil {
			return v, true
		}
	}
	return true, true
}

// Driver returns the declared network driver, or "" when unset.
func (n *Network) Driver() string { return scalarValue(mappingGet(n.node, "driver")) }

// EnsureExternalNetwork declares name under the top-level networks section
// with external set to true, creating the section or the entry as needed and
// preserving any other keys on an existing entry.
func (d *Document) EnsureExternalNetwork(name string) {
	section := ensureMapping(d.body, "networks")
	entry := ensureMapping(section, name)
	mappingSet(entry, "external", boolNode(true))
}

// SetExtension writes the top-level generation-metadata block under key,
// replacing any input-supplied block of the same name. Input extensions are
// never trusted; this is the one block the platform stamps itself.
func (d *Document) SetExtension(key, generated string) {
	ext := newMapping()
	mappingSet(ext, "custom", boolNode(true))
	mappingSet(ext, "generated", strNode(generated))
	mappingSet(d.body, key, ext)
}
