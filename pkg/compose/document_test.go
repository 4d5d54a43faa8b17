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
)

func mustParse(t *testing.T, input string) *Document {
	t.Helper()
	doc, err := Parse([]byte(input))
	require.NoError(t, err)
	return doc
}

func TestDocument_Services(t *testing.T) {
	doc := mustParse(t, "services:\n  web:\n    image: nginx\n  db:\n    image: mysql\n")

	svcs := doc.Services()
	require.Len(t, svcs, 2)
	assert.Equal(t, "web", svcs[0].Name)
	assert.Equal(t, "db", svcs[1].Name)

	s, ok := doc.Service("db")
	require.True(t, ok)
	assert.Equal(t, "mysql", s.Image())

	_, ok = doc.Service("ghost")
	assert.False(t, ok)
}

func TestDocument_ServicesMissingSection(t *testing.T) {
	doc := mustParse(t, "volumes:\n  data: {}\n")
	assert.Empty(t, doc.Services())
	assert.Empty(t, doc.ServiceNames())
}

func TestDocument_ServicesSectionNotMapping(t *testing.T) {
	doc := mustParse(t, "services:\n  - web\n  - db\n")
	assert.Empty(t, doc.Services())
}

func TestDocument_Version(t *testing.T) {
	doc := mustParse(t, "version: \"3.8\"\nservices:\n  web:\n    image: nginx\n")
	assert.True(t, doc.HasVersion())
	assert.True(t, doc.DeleteVersion())
	assert.False(t, doc.HasVersion())
	assert.False(t, doc.DeleteVersion())

	out, err := doc.Marshal()
	require.NoError(t, err)
	assert.NotContains(t, string(out), "version:")
}

func TestDocument_Clone(t *testing.T) {
	doc := mustParse(t, "services:\n  web:\n    image: nginx\n")
	clone := doc.Clone()

	s, ok := clone.Service("web")
	require.True(t, ok)
	s.SetScalar("image", "caddy")

	orig, _ := doc.Service("web")
	assert.Equal(t, "nginx", orig.Image())
	assert.Equal(t, "caddy", s.Image())
}

func TestDocument_CloneKeepsAliasSharing(t *testing.T) {
	doc := mustParse(t, "services:\n  web: &base\n    image: nginx\n  mirror: *base\n")
	clone := doc.Clone()

	web, ok := clone.Service("web")
	require.True(t, ok)
	mirror, ok := clone.Service("mirror")
	require.True(t, ok)

	assert.Equal(t, "nginx", mirror.Image())
	web.SetScalar("image", "caddy")
	assert.Equal(t, "caddy", mirror.Image())
}

func TestDocument_Networks(t *testing.T) {
	doc := mustParse(t, `services:
  web:
    image: nginx
networks:
  internal:
    driver: bridge
  shared:
    external: true
  quoted:
    external: "true"
  disabled:
    external: false
  named:
    external:
      name: legacy
`)

	nets := doc.Networks()
	require.Len(t, nets, 5)

	byName := map[string]*Network{}
	for _, n := range nets {
		byName[n.Name] = n
	}

	value, declared := byName["internal"].External()
	assert.False(t, declared)
	assert.False(t, value)
	assert.Equal(t, "bridge", byName["internal"].Driver())

	value, declared = byName["shared"].External()
	assert.True(t, declared)
	assert.True(t, value)

	value, declared = byName["quoted"].External()
	assert.True(t, declared)
	assert.True(t, value)

	value, declared = byName["disabled"].External()
	assert.True(t, declared)
	assert.False(t, value)

	// The legacy object form counts as external.
	value, declared = byName["named"].External()
	assert.True(t, declared)
	assert.True(t, value)
}

func TestDocument_EnsureExternalNetwork_CreatesSection(t *testing.T) {
	doc := mustParse(t, "services:\n  web:\n    image: nginx\n")
	doc.EnsureExternalNetwork("berth-public")

	nets := doc.Networks()
	require.Len(t, nets, 1)
	assert.Equal(t, "berth-public", nets[0].Name)
	value, declared := nets[0].External()
	assert.True(t, declared)
	assert.True(t, value)
}

func TestDocument_EnsureExternalNetwork_KeepsSiblings(t *testing.T) {
	doc := mustParse(t, `services:
  web:
    image: nginx
networks:
  internal: {}
  berth-public:
    driver: bridge
`)
	doc.EnsureExternalNetwork("berth-public")

	nets := doc.Networks()
	require.Len(t, nets, 2)
	assert.Equal(t, "internal", nets[0].Name)
	assert.Equal(t, "berth-public", nets[1].Name)
	assert.Equal(t, "bridge", nets[1].Driver())
	value, declared := nets[1].External()
	assert.True(t, declared)
	assert.True(t, value)
}

func TestDocument_SetExtension_ReplacesTenantBlock(t *testing.T) {
	doc := mustParse(t, "x-berth:\n  custom: false\n  spoofed: yes\nservices:\n  web:\n    image: nginx\n")
	doc.SetExtension("x-berth", "2026-01-02T03:04:05Z")

	out, err := doc.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(out), "custom: true")
	assert.Contains(t, string(out), "2026-01-02T03:04:05Z")
	assert.NotContains(t, string(out), "spoofed")
}
