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
	"fmt"
	"strconv"

	"github.com/docker/go-units"
)

// ParseCPU parses a compose cpus quantity such as "1.5". The value must be
// a positive decimal.
func ParseCPU(v string) (float64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return 0, fmt.Errorf("invalid cpus value %q", v)
	}
	return f, nil
}

// ParseMemory parses a compose memory quantity such as "512M" into bytes.
// Suffixes are binary, the way docker reads RAM sizes.
func ParseMemory(v string) (int64, error) {
	b, err := units.RAMInBytes(v)
	if err != nil || b <= 0 {
		return 0, fmt.Errorf("invalid memory value %q", v)
	}
	return b, nil
}

// ExceedsCPULimit reports whether a declared cpus value is above the
// platform maximum. Unparseable values are an error.
func ExceedsCPULimit(v string) (bool, error) {
	f, err := ParseCPU(v)
	if err != nil {
		return false, err
	}
	ceiling, _ := strconv.ParseFloat(MaxCPULimit, 64)
	return f > ceiling, nil
}

// ExceedsMemoryLimit reports whether a declared memory value is above the
// platform maximum. Unparseable values are an error.
func ExceedsMemoryLimit(v string) (bool, error) {
	b, err := ParseMemory(v)
	if err != nil {
		return false, err
	}
	ceiling, _ := units.RAMInBytes(MaxMemoryLimit)
	return b > ceiling, nil
}
