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
	"path"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// The validator matches denied sources by prefix against cleaned paths, so
// every table entry must itself be an absolute, already-clean path. A
// trailing slash or a relative entry would silently never match.
func TestDeniedVolumeSources_AreCleanAbsolutePaths(t *testing.T) {
	for _, root := range DeniedVolumeSources {
		assert.True(t, path.IsAbs(root), "entry %q must be absolute", root)
		assert.Equal(t, path.Clean(root), root, "entry %q must be a clean path", root)
	}
}

func TestDeniedVolumeSources_CoverRuntimeSocket(t *testing.T) {
	covered := func(p string) bool {
		for _, root := range DeniedVolumeSources {
			if p == root || strings.HasPrefix(p, root+"/") {
				return true
			}
		}
		return false
	}
	assert.True(t, covered("/var/run/docker.sock"))
	assert.True(t, covered("/run/docker.sock"))
	assert.True(t, covered("/var/lib/docker/overlay2"))
}

func TestBlockedServiceOptions_CoverHostCapabilities(t *testing.T) {
	for _, option := range []string{
		"privileged", "cap_add", "devices", "pid", "security_opt", "sysctls",
	} {
		assert.True(t, BlockedServiceOptions.Has(option), "option %q must be blocked", option)
	}
	assert.False(t, BlockedServiceOptions.Has("cap_drop"), "dropping capabilities is harmless")
}

/// Confinement prefixes must be distinct relative paths: the transformer
// decides "already confined" by prefix, and the two roles must never alias
// each other's trees.
func TestConfinementPrefixes(t *testing.T) {
	assert.True(t, strings.HasPrefix(AppVolumePrefix, "./"))
	assert.True(t, strings.HasPrefix(DataVolumePrefix, "./"))
	assert.NotEqual(t, AppVolumePrefix, DataVolumePrefix)
	assert.False(t, strings.HasPrefix(AppVolumePrefix, DataVolumePrefix+"/"))
	assert.False(t, strings.HasPrefix(DataVolumePrefix, AppVolumePrefix+"/"))
}

func TestDefaultLimitsWithinMaximums(t *testing.T) {
	overCPU, err := ExceedsCPULimit(DefaultCPULimit)
	assert.NoError(t, err)
	assert.False(t, overCPU)

	overMem, err := ExceedsMemoryLimit(DefaultMemoryLimit)
	assert.NoError(t, err)
	assert.False(t, overMem)
}

func TestExternalPortRange(t *testing.T) {
	assert.Greater(t, ExternalPortRangeStart, 1023, "range must stay clear of privileged ports")
	assert.Greater(t, ExternalPortRangeEnd, ExternalPortRangeStart)
	assert.LessOrEqual(t, ExternalPortRangeEnd, 65535)
}
