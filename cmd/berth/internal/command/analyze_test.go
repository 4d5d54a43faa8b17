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

package command_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze_WarnsOnInfrastructureOnly(t *testing.T) {
	file := writeDeclaration(t, t.TempDir(), "compose.yaml", `services:
  db:
    image: postgres:16
  cache:
    image: redis:7
`)

	output, err := execBerth(t, "analyze", "-f", file)
	require.NoError(t, err)
	assert.Contains(t, output, "2 services (0 app, 2 infrastructure)")
	assert.Contains(t, output, "no deployable application")
}

func TestAnalyze_MixedDeclaration(t *testing.T) {
	file := writeDeclaration(t, t.TempDir(), "compose.yaml", `services:
  web:
    build: .
  db:
    image: postgres:16
`)

	output, err := execBerth(t, "analyze", "-f", file)
	require.NoError(t, err)
	assert.Contains(t, output, "2 services (1 app, 1 infrastructure)")
	assert.NotContains(t, output, "no deployable application")
}

func TestAnalyze_JSONOutput(t *testing.T) {
	file := writeDeclaration(t, t.TempDir(), "compose.yaml", `services:
  db:
    image: postgres:16
`)

	output, err := execBerth(t, "analyze", "-f", file, "-o", "json")
	require.NoError(t, err)

	var result struct {
		Type               string   `json:"type"`
		Total              int      `json:"totalServices"`
		Applications       []string `json:"appServices"`
		Infrastructure     []string `json:"infrastructureServices"`
		InfrastructureOnly bool     `json:"isInfrastructureOnly"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &result), "output should be valid JSON, got: %s", output)
	assert.Equal(t, "analyze", result.Type)
	assert.Equal(t, 1, result.Total)
	assert.Empty(t, result.Applications)
	assert.Equal(t, []string{"db"}, result.Infrastructure)
	assert.True(t, result.InfrastructureOnly)
}
