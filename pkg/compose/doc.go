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

// Package compose is a node-backed model of tenant compose declarations.
//
// The package keeps the parsed yaml node tree as the single source of truth
// and layers typed views on top of it: Document for the top level, Service
// for one service entry, and small view types (PortEntry, VolumeEntry, Dict,
// ServiceNetworks) for the fields compose allows in more than one shape.
// Reads normalize the shapes; writes go back through the original nodes.
// Key order, comments, and scalar styles of everything untouched survive a
// parse/serialize round trip by construction.
package compose
