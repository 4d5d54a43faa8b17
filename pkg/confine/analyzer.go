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
	"github.com/berth-host/berth/pkg/compose"
	"github.com/berth-host/berth/pkg/policy"
)

// Analysis partitions a declaration's services into tenant application code
// and supporting infrastructure.
type Analysis struct {
	// InfrastructureOnly is true when the declaration has services and
	// every one of them is recognized infrastructure: nothing in it is
	// deployable tenant code.
	InfrastructureOnly bool
	// InfrastructureServices lists the recognized supporting services in
	// declaration order.
	InfrastructureServices []string
	// AppServices lists the application-role services in declaration order.
	AppServices []string
	// TotalServices counts every declared service.
	TotalServices int
}

// analyzer is the default completeness analyzer.
type analyzer struct{}

// Analyze classifies every service by its image and build directive. A
// build directive always makes a service application-role, whatever image
// it also names. Validity is not required: entries that are not even
// mappings count as application services, since nothing is known about
// them.
func (a *analyzer) Analyze(doc *compose.Document) *Analysis {
	res := &Analysis{}
	if doc == nil {
		return res
	}
	for _, s := range doc.Services() {
		res.TotalServices++
		if s.IsMapping() && policy.Classify(s.Image(), s.HasBuild()).IsInfrastructure() {
			res.InfrastructureServices = append(res.InfrastructureServices, s.Name)
		} else {
			res.AppServices = append(res.AppServices, s.Name)
		}
	}
	res.InfrastructureOnly = res.TotalServices > 0 && len(res.AppServices) == 0
	return res
}
