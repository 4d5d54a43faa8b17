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

package confine

import (
	"fmt"
	"strconv"
	"strings"

	"k8s.io/apimachinery/pkg/util/validation"

	"github.com/berth-host/berth/pkg/compose"
	"github.com/berth-host/berth/pkg/policy"
)

// PortMapping records one external-port assignment made while rewriting a
// declaration.
type PortMapping struct {
	// Service is the declaring service's name.
	Service string
	// Internal is the container-side port, unchanged from the declaration.
	Internal int
	// External is the host port assigned from the caller's starting port.
	External int
	// Protocol is tcp or udp.
	Protocol string
}

// Transformation is a successful rewrite: the confined document and every
// port assignment that was made, in service-then-port declaration order.
type Transformation struct {
	Document     *compose.Document
	PortMappings []PortMapping
}

// transformer is the default Transformer. It assumes a validated document;
// the only error paths left are contract guards on its own arguments, and
// the input document is never modified.
type transformer struct{}

func (t *transformer) Transform(doc *compose.Document, project string, startPort int) (*Transformation, error) {
	if doc == nil {
		return nil, fmt.Errorf("transform: declaration is nil")
	}
	if errs := validation.IsDNS1123Label(project); len(errs) > 0 {
		return nil, fmt.Errorf("transform: invalid project name %q: %s", project, errs[0])
	}
	if startPort < 1 || startPort > 65535 {
		return nil, fmt.Errorf("transform: starting port %d is out of range", startPort)
	}

	out := doc.Clone()
	services := out.Services()
	if len(services) == 0 {
		return nil, fmt.Errorf("transform: declaration has no services")
	}

	next := startPort
	var mappings []PortMapping
	for _, s := range services {
		if !s.IsMapping() {
			return nil, fmt.Errorf("transform: service %q is not a valid service definition", s.Name)
		}
		t.nameAndLabel(s, project)
		t.applyDefaults(s)
		ported, nextFree, err := t.remapPorts(s, next)
		if err != nil {
			return nil, fmt.Errorf("transform: service %q: %w", s.Name, err)
		}
		next = nextFree
		mappings = append(mappings, ported...)
		if err := t.confineMounts(s); err != nil {
			return nil, fmt.Errorf("transform: service %q: %w", s.Name, err)
		}
	}

	out.DeleteVersion()
	out.EnsureExternalNetwork(policy.SharedNetworkName)
	return &Transformation{Document: out, PortMappings: mappings}, nil
}

func (t *transformer) nameAndLabel(s *compose.Service, project string) {
	s.SetScalar("container_name", project+"-"+s.Name)
	labels := s.Labels()
	labels.Set(policy.ManagedLabel, "true")
	labels.Set(policy.ProjectLabel, project)
}

// applyDefaults fills in the platform defaults a tenant may omit. Every one
// of them yields to an existing tenant value: restart only when absent,
// resource limits only when none are declared, TZ only when unset.
func (t *transformer) applyDefaults(s *compose.Service) {
	if !s.Has("restart") {
		s.SetScalar("restart", policy.DefaultRestartPolicy)
	}
	if cpus, memory := s.ResourceLimits(); cpus == "" && memory == "" {
		s.SetResourceLimits(policy.DefaultCPULimit, policy.DefaultMemoryLimit)
	}
	if env := s.Environment(); !env.Has("TZ") {
		env.Set("TZ", policy.DefaultTimezone)
	}
	s.Networks().Ensure(policy.SharedNetworkName)
}

// remapPorts discards tenant-declared host ports and assigns sequential
// externals starting at next, keeping container ports and protocols. It
// returns the assignments and the first port still free.
func (t *transformer) remapPorts(s *compose.Service, next int) ([]PortMapping, int, error) {
	nodes := s.PortNodes()
	if len(nodes) == 0 {
		return nil, next, nil
	}
	var (
		mappings  []PortMapping
		rewritten []compose.PortEntry
	)
	for _, n := range nodes {
		entries, err := compose.ParsePorts(n)
		if err != nil {
			return nil, next, err
		}
		for _, e := range entries {
			internal, err := strconv.Atoi(e.Target)
			if err != nil {
				return nil, next, fmt.Errorf("invalid port target %q", e.Target)
			}
			if next > 65535 {
				return nil, next, fmt.Errorf("external port space exhausted at %d", next)
			}
			mappings = append(mappings, PortMapping{
				Service:  s.Name,
				Internal: internal,
				External: next,
				Protocol: e.Protocol,
			})
			rewritten = append(rewritten, compose.PortEntry{
				Target:    e.Target,
				Published: strconv.Itoa(next),
				Protocol:  e.Protocol,
			})
			next++
		}
	}
	s.SetPorts(rewritten)
	return mappings, next, nil
}

// confineMounts roots the service's volume sources and build context under
// the project directory. Database-role services keep state under the data
// prefix, everything else under the web root.
func (t *transformer) confineMounts(s *compose.Service) error {
	prefix := policy.Classify(s.Image(), s.HasBuild()).VolumePrefix()
	for _, n := range s.VolumeNodes() {
		e, err := compose.ParseVolume(n)
		if err != nil {
			return err
		}
		if e.Source == "" {
			continue
		}
		if e.IsLong() && e.Type != "" && e.Type != "bind" {
			continue
		}
		if confined := confinePath(prefix, e.Source); confined != e.Source {
			e.SetSource(confined)
		}
	}
	if context, ok := s.BuildContext(); ok {
		if confined := confinePath(policy.AppVolumePrefix, context); confined != context {
			s.SetBuildContext(confined)
		}
	}
	return nil
}

// confinePath roots p under the confinement prefix. Paths already under the
// prefix come back unchanged, so re-running the transform cannot stack
// prefixes. "." and "./" mean the project root and map to the bare prefix.
func confinePath(prefix, p string) string {
	if p == prefix || strings.HasPrefix(p, prefix+"/") {
		return p
	}
	trimmed := strings.TrimPrefix(p, "./")
	trimmed = strings.TrimPrefix(trimmed, "/")
	if trimmed == "" || trimmed == "." {
		return prefix
	}
	return prefix + "/" + trimmed
}
