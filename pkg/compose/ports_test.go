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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// yamlNode parses a single YAML value the way it would appear as a list
// element in a declaration.
func yamlNode(t *testing.T, input string) *yaml.Node {
	t.Helper()
	var n yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(input), &n))
	require.NotEmpty(t, n.Content)
	return n.Content[0]
}

func TestParsePorts(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []PortEntry
	}{
		{
			name:  "bare number",
			input: "80",
			want:  []PortEntry{{Target: "80", Protocol: "tcp"}},
		},
		{
			name:  "container only string",
			input: `"3000"`,
			want:  []PortEntry{{Target: "3000", Protocol: "tcp"}},
		},
		{
			name:  "host and container",
			input: `"8080:80"`,
			want:  []PortEntry{{Target: "80", Published: "8080", Protocol: "tcp"}},
		},
		{
			name:  "host address prefix",
			input: `"127.0.0.1:8080:80"`,
			want:  []PortEntry{{Target: "80", Published: "8080", Protocol: "tcp"}},
		},
		{
			name:  "udp suffix",
			input: `"53:53/udp"`,
			want:  []PortEntry{{Target: "53", Published: "53", Protocol: "udp"}},
		},
		{
			name:  "range expands",
			input: `"3000-3002:4000-4002"`,
			want: []PortEntry{
				{Target: "4000", Published: "3000", Protocol: "tcp"},
				{Target: "4001", Published: "3001", Protocol: "tcp"},
				{Target: "4002", Published: "3002", Protocol: "tcp"},
			},
		},
		{
			name:  "long form",
			input: "target: 80\npublished: 8080\nprotocol: UDP",
			want:  []PortEntry{{Target: "80", Published: "8080", Protocol: "udp"}},
		},
		{
			name:  "long form defaults to tcp",
			input: "target: 9000",
			want:  []PortEntry{{Target: "9000", Protocol: "tcp"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePorts(yamlNode(t, tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePorts_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "zero", input: "0"},
		{name: "above range", input: "70000"},
		{name: "negative", input: "-80"},
		{name: "not a port", input: `"abc"`},
		{name: "garbage mapping ratio", input: `"80:abc"`},
		{name: "long form without target", input: "published: 8080"},
		{name: "long form bad target", input: "target: abc"},
		{name: "long form target above range", input: "target: 70000"},
		{name: "null entry", input: "~"},
		{name: "nested list", input: "- 80"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePorts(yamlNode(t, tt.input))
			assert.Error(t, err)
		})
	}
}

func TestPortEntry_ShortString(t *testing.T) {
	assert.Equal(t, "80", PortEntry{Target: "80", Protocol: "tcp"}.ShortString())
	assert.Equal(t, "10000:80", PortEntry{Target: "80", Published: "10000", Protocol: "tcp"}.ShortString())
	assert.Equal(t, "10001:53/udp", PortEntry{Target: "53", Published: "10001", Protocol: "udp"}.ShortString())
	assert.Equal(t, "9000", PortEntry{Target: "9000"}.ShortString())
}
