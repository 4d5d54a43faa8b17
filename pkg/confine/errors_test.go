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
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/berth-host/berth/pkg/compose"
)

func TestParseError_Unwraps(t *testing.T) {
	err := error(&ParseError{Err: compose.ErrNotMapping})
	assert.ErrorIs(t, err, compose.ErrNotMapping)
	assert.True(t, IsParseError(err))
	assert.Contains(t, err.Error(), "parse declaration")

	wrapped := fmt.Errorf("deploy request: %w", err)
	assert.True(t, IsParseError(wrapped))
}

func TestViolationsError_Message(t *testing.T) {
	one := &ViolationsError{Report: &Report{Violations: []Violation{
		{Code: CodeBlockedOption, Subject: "web", Message: `service "web": option "privileged" is not allowed`},
	}}}
	assert.Equal(t, `policy violation: service "web": option "privileged" is not allowed`, one.Error())

	two := &ViolationsError{Report: &Report{Violations: []Violation{
		{Subject: "web", Message: "first"},
		{Subject: "db", Message: "second"},
	}}}
	assert.Equal(t, "2 policy violations: first; second", two.Error())
}

func TestAsViolations(t *testing.T) {
	report := &Report{Violations: []Violation{{Subject: "web", Message: "boom"}}}
	wrapped := fmt.Errorf("deploy request: %w", &ViolationsError{Report: report})

	got, ok := AsViolations(wrapped)
	assert.True(t, ok)
	assert.Same(t, report, got)

	_, ok = AsViolations(errors.New("unrelated"))
	assert.False(t, ok)
}
