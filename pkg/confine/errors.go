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
	"strings"
)

// ParseError reports declaration text that never became a document: YAML
// syntax errors, empty input, or a non-mapping top level. It is always
// fatal and always a single message.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse declaration: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IsParseError reports whether err is a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// ViolationsError rejects a declaration that parsed but failed policy. It
// carries the full report: every violation found, never just the first.
type ViolationsError struct {
	Report *Report
}

func (e *ViolationsError) Error() string {
	msgs := e.Report.Messages()
	if len(msgs) == 1 {
		return "policy violation: " + msgs[0]
	}
	return fmt.Sprintf("%d policy violations: %s", len(msgs), strings.Join(msgs, "; "))
}

// AsViolations unpacks the violation report from err, if it carries one.
func AsViolations(err error) (*Report, bool) {
	var ve *ViolationsError
	if errors.As(err, &ve) {
		return ve.Report, true
	}
	return nil, false
}
