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
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var (
	// ErrEmptyDocument is returned for input with no YAML content at all:
	// empty text, whitespace or comments only, or an explicit null.
	ErrEmptyDocument = errors.New("declaration is empty")

	// ErrNotMapping is returned when the input parses but its top level is
	// not a mapping, such as a bare scalar or a sequence.
	ErrNotMapping = errors.New("declaration must be a mapping of top-level sections")
)

// Parse decodes raw declaration text into a Document. It checks shape only:
// the text must be well-formed YAML whose top level is a mapping. Policy
// checks happen elsewhere.
func Parse(data []byte) (*Document, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, ErrEmptyDocument
	}
	body := resolve(doc.Content[0])
	if isNull(body) {
		return nil, ErrEmptyDocument
	}
	if body.Kind != yaml.MappingNode {
		return nil, ErrNotMapping
	}
	return &Document{doc: &doc, body: body}, nil
}
