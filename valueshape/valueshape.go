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

// Package valueshape attaches shape descriptors to the values of a program.
package valueshape

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/gx-org/symshape/shapeordata"
)

// Table maps values to their shape descriptor.
// Iterating over the table follows the order in which values have been added.
//
// A table is not safe for concurrent use.
type Table[V comparable] struct {
	values []V
	descs  map[V]shapeordata.ShapeOrData
}

// New returns an empty table.
func New[V comparable]() *Table[V] {
	return &Table[V]{descs: make(map[V]shapeordata.ShapeOrData)}
}

// Store attaches a descriptor to a value.
// A descriptor already attached to the value is replaced.
func (t *Table[V]) Store(v V, desc shapeordata.ShapeOrData) {
	if _, in := t.descs[v]; !in {
		t.values = append(t.values, v)
	}
	t.descs[v] = desc
}

// Load returns the descriptor attached to a value.
func (t *Table[V]) Load(v V) (shapeordata.ShapeOrData, bool) {
	desc, ok := t.descs[v]
	return desc, ok
}

// Delete removes the descriptor attached to a value.
func (t *Table[V]) Delete(v V) {
	if _, in := t.descs[v]; !in {
		return
	}
	delete(t.descs, v)
	t.values = slices.DeleteFunc(t.values, func(x V) bool { return x == v })
}

// Len returns the number of values in the table.
func (t *Table[V]) Len() int {
	return len(t.values)
}

// All returns an iterator over the values and their descriptors.
func (t *Table[V]) All() iter.Seq2[V, shapeordata.ShapeOrData] {
	return func(yield func(V, shapeordata.ShapeOrData) bool) {
		for _, v := range t.values {
			if !yield(v, t.descs[v]) {
				return
			}
		}
	}
}

// Values returns an iterator over the values of the table.
func (t *Table[V]) Values() iter.Seq[V] {
	return slices.Values(t.values)
}

// String representation of the table, one value per line.
func (t *Table[V]) String() string {
	var s strings.Builder
	for v, desc := range t.All() {
		fmt.Fprintf(&s, "%v => %s\n", v, desc)
	}
	return s.String()
}
