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
	"path"
	"regexp"
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/berth-host/berth/pkg/compose"
	"github.com/berth-host/berth/pkg/policy"
)

// Code identifies the policy rule family a violation came from. Codes are
// stable across releases; messages are not.
type Code string

const (
	CodeStructure     Code = "structure"
	CodeServiceName   Code = "service-name"
	CodeBlockedOption Code = "blocked-option"
	CodeNetworkMode   Code = "network-mode"
	CodePorts         Code = "ports"
	CodeVolumeSource  Code = "volume-source"
	CodeBuildContext  Code = "build-context"
	CodeDependsOn     Code = "depends-on"
	CodeResourceLimit Code = "resource-limit"
	CodeNetwork       Code = "network"
)

// Violation is one policy rule broken by the declaration.
type Violation struct {
	// Code names the rule family that fired.
	Code Code
	// Subject is the service or network the rule fired on, "" for
	// document-level violations.
	Subject string
	// Message is the human-readable rule violation. It already names the
	// subject and the offending option or value.
	Message string
}

func (v Violation) String() string { return v.Message }

// Report is the outcome of validating one declaration: every violation
// found, in document order, never cut short at the first.
type Report struct {
	Violations []Violation
}

// Valid reports whether the declaration passed every policy check.
func (r *Report) Valid() bool { return len(r.Violations) == 0 }

// Messages returns the violation messages in found order.
func (r *Report) Messages() []string {
	msgs := make([]string, 0, len(r.Violations))
	for _, v := range r.Violations {
		msgs = append(msgs, v.Message)
	}
	return msgs
}

func (r *Report) add(code Code, subject, format string, args ...any) {
	r.Violations = append(r.Violations, Violation{
		Code:    code,
		Subject: subject,
		Message: fmt.Sprintf(format, args...),
	})
}

// serviceNameRegex matches valid compose service names. Names become
// container-name suffixes, so anything looser would leak into runtime
// identifiers.
var serviceNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

// validator is the default Validator. The policy tables it enforces are
// injected at construction so tests can run it against reduced tables.
type validator struct {
	blocked sets.Set[string]
	denied  []string
}

func newValidator() *validator {
	return &validator{
		blocked: policy.BlockedServiceOptions,
		denied:  policy.DeniedVolumeSources,
	}
}

// Validate walks the whole declaration and accumulates every violation. It
// never short-circuits: a tenant sees all problems at once.
func (v *validator) Validate(doc *compose.Document) *Report {
	report := &Report{}
	if doc == nil {
		report.add(CodeStructure, "", "declaration is missing")
		return report
	}
	services := doc.Services()
	if len(services) == 0 {
		report.add(CodeStructure, "", "declaration defines no services")
	}
	siblings := sets.New[string]()
	for _, s := range services {
		siblings.Insert(s.Name)
	}
	for _, s := range services {
		v.checkService(report, s, siblings)
	}
	v.checkDependencyCycles(report, services)
	for _, n := range doc.Networks() {
		v.checkNetwork(report, n)
	}
	return report
}

func (v *validator) checkService(r *Report, s *compose.Service, siblings sets.Set[string]) {
	if !s.IsMapping() {
		r.add(CodeStructure, s.Name, "service %q is not a valid service definition", s.Name)
		return
	}
	if !serviceNameRegex.MatchString(s.Name) {
		r.add(CodeServiceName, s.Name, "service name %q contains invalid characters", s.Name)
	}
	for _, key := range s.Keys() {
		if v.blocked.Has(key) {
			r.add(CodeBlockedOption, s.Name, "service %q: option %q is not allowed", s.Name, key)
		}
	}
	v.checkNetworkMode(r, s, siblings)
	v.checkPorts(r, s)
	v.checkVolumes(r, s)
	v.checkBuild(r, s)
	v.checkDependsOn(r, s, siblings)
	v.checkLimits(r, s)
}

// checkNetworkMode rejects host and none outright and any mode joining a
// foreign container's namespace. Joining a sibling service declared in the
// same document stays inside the tenant's own sandbox and is allowed.
func (v *validator) checkNetworkMode(r *Report, s *compose.Service, siblings sets.Set[string]) {
	mode := s.NetworkMode()
	switch {
	case mode == "":
	case mode == "host" || mode == "none":
		r.add(CodeNetworkMode, s.Name, "service %q: network_mode %q is not allowed", s.Name, mode)
	case strings.HasPrefix(mode, "service:"):
		if ref := strings.TrimPrefix(mode, "service:"); !siblings.Has(ref) {
			r.add(CodeNetworkMode, s.Name, "service %q: network_mode references unknown service %q", s.Name, ref)
		}
	case strings.HasPrefix(mode, "container:"):
		r.add(CodeNetworkMode, s.Name, "service %q: network_mode %q is not allowed", s.Name, mode)
	}
}

func (v *validator) checkPorts(r *Report, s *compose.Service) {
	if !s.Has("ports") {
		return
	}
	if !s.IsList("ports") {
		r.add(CodePorts, s.Name, "service %q: ports must be a list", s.Name)
		return
	}
	for _, n := range s.PortNodes() {
		if _, err := compose.ParsePorts(n); err != nil {
			r.add(CodePorts, s.Name, "service %q: %v", s.Name, err)
		}
	}
}

func (v *validator) checkVolumes(r *Report, s *compose.Service) {
	if !s.Has("volumes") {
		return
	}
	if !s.IsList("volumes") {
		r.add(CodeVolumeSource, s.Name, "service %q: volumes must be a list", s.Name)
		return
	}
	for _, n := range s.VolumeNodes() {
		e, err := compose.ParseVolume(n)
		if err != nil {
			r.add(CodeVolumeSource, s.Name, "service %q: %v", s.Name, err)
			continue
		}
		if !strings.HasPrefix(e.Source, "/") {
			continue
		}
		if denied, root := v.deniedSource(e.Source); denied {
			r.add(CodeVolumeSource, s.Name, "service %q: volume source %q mounts protected host path %s", s.Name, e.Source, root)
		}
	}
}

// deniedSource matches an absolute source against the deny list, cleaning
// the path first so "/etc/../root" cannot slip past a prefix check.
func (v *validator) deniedSource(source string) (bool, string) {
	cleaned := path.Clean(source)
	for _, root := range v.denied {
		if cleaned == root || strings.HasPrefix(cleaned, root+"/") {
			return true, root
		}
	}
	return false, ""
}

func (v *validator) checkBuild(r *Report, s *compose.Service) {
	context, ok := s.BuildContext()
	if !ok || context == "" {
		return
	}
	cleaned := path.Clean(context)
	switch {
	case path.IsAbs(cleaned):
		r.add(CodeBuildContext, s.Name, "service %q: build context %q must be a relative path", s.Name, context)
	case cleaned == ".." || strings.HasPrefix(cleaned, "../"):
		r.add(CodeBuildContext, s.Name, "service %q: build context %q escapes the project directory", s.Name, context)
	}
}

func (v *validator) checkDependsOn(r *Report, s *compose.Service, siblings sets.Set[string]) {
	for _, dep := range s.DependsOn() {
		if dep == s.Name {
			r.add(CodeDependsOn, s.Name, "service %q: depends_on references itself", s.Name)
			continue
		}
		if !siblings.Has(dep) {
			r.add(CodeDependsOn, s.Name, "service %q: depends_on references unknown service %q", s.Name, dep)
		}
	}
}

func (v *validator) checkLimits(r *Report, s *compose.Service) {
	cpus, memory := s.ResourceLimits()
	if cpus != "" {
		over, err := policy.ExceedsCPULimit(cpus)
		switch {
		case err != nil:
			r.add(CodeResourceLimit, s.Name, "service %q: %v", s.Name, err)
		case over:
			r.add(CodeResourceLimit, s.Name, "service %q: cpus limit %s is above the platform maximum %s", s.Name, cpus, policy.MaxCPULimit)
		}
	}
	if memory != "" {
		over, err := policy.ExceedsMemoryLimit(memory)
		switch {
		case err != nil:
			r.add(CodeResourceLimit, s.Name, "service %q: %v", s.Name, err)
		case over:
			r.add(CodeResourceLimit, s.Name, "service %q: memory limit %s is above the platform maximum %s", s.Name, memory, policy.MaxMemoryLimit)
		}
	}
}

// checkDependencyCycles walks the depends_on graph and reports the first
// cycle by its member chain. Self-references and unknown names are already
// reported per service and are excluded from the walk.
func (v *validator) checkDependencyCycles(r *Report, services []*compose.Service) {
	siblings := sets.New[string]()
	for _, s := range services {
		siblings.Insert(s.Name)
	}
	deps := make(map[string][]string, len(services))
	for _, s := range services {
		for _, d := range s.DependsOn() {
			if d != s.Name && siblings.Has(d) {
				deps[s.Name] = append(deps[s.Name], d)
			}
		}
	}

	const (
		white = iota
		grey
		black
	)
	color := make(map[string]int, len(services))
	var stack []string
	var cycle []string
	var visit func(name string) bool
	visit = func(name string) bool {
		color[name] = grey
		stack = append(stack, name)
		for _, dep := range deps[name] {
			switch color[dep] {
			case grey:
				for i, n := range stack {
					if n == dep {
						cycle = append(cycle, stack[i:]...)
						break
					}
				}
				return true
			case white:
				if visit(dep) {
					return true
				}
			}
		}
		stack = stack[:len(stack)-1]
		color[name] = black
		return false
	}
	for _, s := range services {
		if color[s.Name] == white && visit(s.Name) {
			r.add(CodeDependsOn, "", "services %s form a dependency cycle", strings.Join(cycle, " -> "))
			return
		}
	}
}

func (v *validator) checkNetwork(r *Report, n *compose.Network) {
	if ext, declared := n.External(); declared && ext && n.Name != policy.SharedNetworkName {
		r.add(CodeNetwork, n.Name, "network %q: only the platform network %q may be external", n.Name, policy.SharedNetworkName)
	}
	switch driver := n.Driver(); driver {
	case "", "bridge":
	case "host", "macvlan":
		r.add(CodeNetwork, n.Name, "network %q: driver %q is not allowed", n.Name, driver)
	}
}
