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

package policy

import (
	"strings"

	"github.com/distribution/reference"
)

// Role classifies a service for confinement and completeness purposes.
type Role int

const (
	// RoleApplication is any service carrying tenant code: it declares a
	// build directive or an image the policy tables do not recognize.
	RoleApplication Role = iota
	// RoleDataStore is a recognized database, cache, or broker image with
	// no build directive.
	RoleDataStore
	// RoleAuxiliary is recognized supporting infrastructure that is neither
	// tenant code nor a data store, such as admin panels and monitoring.
	RoleAuxiliary
)

func (r Role) String() string {
	switch r {
	case RoleDataStore:
		return "datastore"
	case RoleAuxiliary:
		return "auxiliary"
	default:
		return "application"
	}
}

// IsInfrastructure reports whether the role is a supporting service rather
// than tenant code.
func (r Role) IsInfrastructure() bool { return r != RoleApplication }

// VolumePrefix returns the confinement prefix for the role's volume sources.
func (r Role) VolumePrefix() string {
	if r == RoleDataStore {
		return DataVolumePrefix
	}
	return AppVolumePrefix
}

// Classify returns the role for a service. A build directive always wins:
// services building tenant code are application-role no matter what image
// they also name.
func Classify(image string, hasBuild bool) Role {
	if hasBuild {
		return RoleApplication
	}
	return ClassifyImage(image)
}

// ClassifyImage returns the role an image reference alone would give a
// service.
func ClassifyImage(image string) Role {
	switch {
	case image == "":
		return RoleApplication
	case matchesAny(image, DataStoreImages):
		return RoleDataStore
	case matchesAny(image, AuxiliaryImages):
		return RoleAuxiliary
	default:
		return RoleApplication
	}
}

// normalizeImage reduces an image reference to its familiar repository name,
// dropping registry host, tag, and digest. Unparseable references are
// matched as written.
func normalizeImage(image string) string {
	named, err := reference.ParseNormalizedNamed(image)
	if err != nil {
		return strings.ToLower(image)
	}
	return reference.FamiliarName(named)
}

func matchesAny(image string, patterns []string) bool {
	name := normalizeImage(image)
	for _, p := range patterns {
		if strings.Contains(name, p) {
			return true
		}
	}
	return false
}
