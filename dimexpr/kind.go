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

// Kind of a dimension expression.
type Kind uint

// Kinds of dimension expressions.
const (
	InvalidKind Kind = iota
	ConstantKind
	SymbolKind
	AddKind
	SubKind
	MulKind
	DivKind
	MaxKind
	MinKind
	BroadcastKind
)

// IsBinary returns true if expressions of that kind have two operands.
func (k Kind) IsBinary() bool {
	return k >= AddKind && k <= BroadcastKind
}

// String returns a string representation of a kind.
func (k Kind) String() string {
	switch k {
	case ConstantKind:
		return "constant"
	case SymbolKind:
		return "symbol"
	case AddKind:
		return "add"
	case SubKind:
		return "sub"
	case MulKind:
		return "mul"
	case DivKind:
		return "div"
	case MaxKind:
		return "max"
	case MinKind:
		return "min"
	case BroadcastKind:
		return "broadcast"
	default:
		return "invalid"
	}
}
