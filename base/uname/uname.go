// Copyright 2025 Google LLC
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

// Package uname provides unique names.
package uname

import "fmt"

// Unique generates names made of a root followed by an index.
// Names registered as taken are skipped.
type Unique struct {
	taken map[string]bool
	next  map[string]int
}

// New name generator.
func New() *Unique {
	return &Unique{
		taken: make(map[string]bool),
		next:  make(map[string]int),
	}
}

// Register marks a name as taken.
func (n *Unique) Register(name string) {
	n.taken[name] = true
}

// Taken returns true if a name has been generated or registered.
func (n *Unique) Taken(name string) bool {
	return n.taken[name]
}

// Name returns the next available name for a given root,
// that is root0, root1, ... minus the names already taken.
func (n *Unique) Name(root string) string {
	for {
		index := n.next[root]
		n.next[root] = index + 1
		name := fmt.Sprintf("%s%d", root, index)
		if n.taken[name] {
			continue
		}
		n.taken[name] = true
		return name
	}
}
