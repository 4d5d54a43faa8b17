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

// Package confine turns tenant-submitted compose declarations into
// declarations that are safe to run on a shared host.
//
// The package is built as a four-stage pipeline: Parse reads the raw text,
// Validate accumulates every policy violation against the platform's fixed
// security policy, Transform rewrites a valid declaration into a namespaced,
// path-confined, port-remapped equivalent, and Serialize re-emits it with
// the generation-metadata block. Pipeline composes the stages into one
// Process call that stops at the first failing stage. A separate
// completeness analyzer classifies services into application code and
// supporting infrastructure; it warns, it never blocks.
//
// Every stage is a pure function of its inputs: no I/O, no shared mutable
// state, no clocks except the injectable serializer timestamp. One Pipeline
// can serve any number of concurrent deploy requests.
package confine
