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
	"testing"

	"github.com/stretchr/testify/assert"
)

func analyze(t *testing.T, input string) *Analysis {
	t.Helper()
	return (&analyzer{}).Analyze(mustParse(t, input))
}

func TestAnalyze_InfrastructureOnly(t *testing.T) {
	res := analyze(t, `services:
  db:
    image: postgres:16
  redis:
    image: redis:7
`)
	assert.True(t, res.InfrastructureOnly)
	assert.Equal(t, []string{"db", "redis"}, res.InfrastructureServices)
	assert.Empty(t, res.AppServices)
	assert.Equal(t, 2, res.TotalServices)
}

func TestAnalyze_BuildServiceFlipsIt(t *testing.T) {
	res := analyze(t, `services:
  db:
    image: postgres:16
  redis:
    image: redis:7
  app:
    build: .
`)
	assert.False(t, res.InfrastructureOnly)
	assert.Equal(t, []string{"db", "redis"}, res.InfrastructureServices)
	assert.Equal(t, []string{"app"}, res.AppServices)
	assert.Equal(t, 3, res.TotalServices)
}

func TestAnalyze_UnrecognizedImageIsApplication(t *testing.T) {
	res := analyze(t, `services:
  db:
    image: postgres:16
  web:
    image: nginx
`)
	assert.False(t, res.InfrastructureOnly)
	assert.Equal(t, []string{"web"}, res.AppServices)
}

func TestAnalyze_BuildBeatsInfrastructureImage(t *testing.T) {
	// A service that builds its own image is tenant code, even when the
	// image it publishes under looks like a data store.
	res := analyze(t, `services:
  db:
    image: mysql:8.0
    build: ./db
`)
	assert.False(t, res.InfrastructureOnly)
	assert.Equal(t, []string{"db"}, res.AppServices)
	assert.Empty(t, res.InfrastructureServices)
}

func TestAnalyze_AuxiliaryToolsAreInfrastructure(t *testing.T) {
	res := analyze(t, `services:
  db:
    image: mariadb:11
  panel:
    image: phpmyadmin
  mail:
    image: axllent/mailpit
`)
	assert.True(t, res.InfrastructureOnly)
	assert.Equal(t, []string{"db", "panel", "mail"}, res.InfrastructureServices)
}

func TestAnalyze_DoesNotRequireValidity(t *testing.T) {
	// A null service body is invalid, but the analyzer still counts it; with
	// nothing known about it, it lands on the application side.
	res := analyze(t, `services:
  db:
    image: postgres:16
  broken:
`)
	assert.False(t, res.InfrastructureOnly)
	assert.Equal(t, []string{"broken"}, res.AppServices)
	assert.Equal(t, 2, res.TotalServices)
}

func TestAnalyze_Empty(t *testing.T) {
	res := analyze(t, "services: {}\n")
	assert.False(t, res.InfrastructureOnly)
	assert.Zero(t, res.TotalServices)

	res = (&analyzer{}).Analyze(nil)
	assert.False(t, res.InfrastructureOnly)
	assert.Zero(t, res.TotalServices)
}
