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

package dimexpr

import "github.com/gx-org/symshape/base/uname"

// SymbolGen generates fresh symbols.
type SymbolGen struct {
	root  string
	names *uname.Unique
}

// NewSymbolGen returns a generator of symbols named root0, root1, ...
func NewSymbolGen(root string) *SymbolGen {
	return &SymbolGen{root: root, names: uname.New()}
}

// Register symbols already in use so that they are never generated.
func (g *SymbolGen) Register(syms ...Symbol) {
	for _, sym := range syms {
		g.names.Register(string(sym))
	}
}

// Next returns a symbol that has not been generated or registered before.
func (g *SymbolGen) Next() Symbol {
	return Symbol(g.names.Name(g.root))
}
