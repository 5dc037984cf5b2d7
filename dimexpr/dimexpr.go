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

// Package dimexpr implements symbolic expressions for the length of an array axis.
//
// A dimension expression is either a constant, a named symbol, or an operator
// applied to two dimension expressions. Expressions are immutable values:
// all the variants are comparable, so the == operator compares two expressions
// structurally and an expression can be used as a map key.
package dimexpr

import (
	"fmt"
	"go/token"
	"strconv"
)

type (
	// DimExpr is a symbolic expression for the length of an axis.
	// The set of implementations is closed: Constant, Symbol, AddExpr, SubExpr,
	// MulExpr, DivExpr, MaxExpr, MinExpr, and BroadcastExpr.
	DimExpr interface {
		// Kind of the expression.
		Kind() Kind

		// String representation of the expression.
		// The representation can be read back with Parse.
		String() string

		dimExpr()
	}

	// Constant is a known axis length.
	// Negative values are stored as any other value.
	Constant int64

	// Symbol is an unknown axis length identified by its name.
	Symbol string

	// AddExpr is the sum of two axis lengths.
	AddExpr struct{ X, Y DimExpr }

	// SubExpr is the difference of two axis lengths.
	SubExpr struct{ X, Y DimExpr }

	// MulExpr is the product of two axis lengths.
	MulExpr struct{ X, Y DimExpr }

	// DivExpr is the quotient of two axis lengths.
	DivExpr struct{ X, Y DimExpr }

	// MaxExpr is the largest of two axis lengths.
	MaxExpr struct{ X, Y DimExpr }

	// MinExpr is the smallest of two axis lengths.
	MinExpr struct{ X, Y DimExpr }

	// BroadcastExpr is the length of an axis after broadcasting two axes together.
	BroadcastExpr struct{ X, Y DimExpr }
)

var (
	_ DimExpr = Constant(0)
	_ DimExpr = Symbol("")
	_ DimExpr = AddExpr{}
	_ DimExpr = SubExpr{}
	_ DimExpr = MulExpr{}
	_ DimExpr = DivExpr{}
	_ DimExpr = MaxExpr{}
	_ DimExpr = MinExpr{}
	_ DimExpr = BroadcastExpr{}
)

func (Constant) dimExpr()      {}
func (Symbol) dimExpr()        {}
func (AddExpr) dimExpr()       {}
func (SubExpr) dimExpr()       {}
func (MulExpr) dimExpr()       {}
func (DivExpr) dimExpr()       {}
func (MaxExpr) dimExpr()       {}
func (MinExpr) dimExpr()       {}
func (BroadcastExpr) dimExpr() {}

// Kind returns ConstantKind.
func (Constant) Kind() Kind { return ConstantKind }

// Kind returns SymbolKind.
func (Symbol) Kind() Kind { return SymbolKind }

// Kind returns AddKind.
func (AddExpr) Kind() Kind { return AddKind }

// Kind returns SubKind.
func (SubExpr) Kind() Kind { return SubKind }

// Kind returns MulKind.
func (MulExpr) Kind() Kind { return MulKind }

// Kind returns DivKind.
func (DivExpr) Kind() Kind { return DivKind }

// Kind returns MaxKind.
func (MaxExpr) Kind() Kind { return MaxKind }

// Kind returns MinKind.
func (MinExpr) Kind() Kind { return MinKind }

// Kind returns BroadcastKind.
func (BroadcastExpr) Kind() Kind { return BroadcastKind }

// Value of the constant.
func (c Constant) Value() int64 { return int64(c) }

func (c Constant) String() string {
	return strconv.FormatInt(int64(c), 10)
}

// Name of the symbol.
func (s Symbol) Name() string { return string(s) }

// String returns the name of the symbol.
// Names that are not identifiers are quoted.
func (s Symbol) String() string {
	if !token.IsIdentifier(string(s)) {
		return strconv.Quote(string(s))
	}
	return string(s)
}

func (e AddExpr) String() string {
	return infix(e.X, "+", e.Y)
}

func (e SubExpr) String() string {
	return infix(e.X, "-", e.Y)
}

func (e MulExpr) String() string {
	return infix(e.X, "*", e.Y)
}

func (e DivExpr) String() string {
	return infix(e.X, "/", e.Y)
}

func (e MaxExpr) String() string {
	return call("max", e.X, e.Y)
}

func (e MinExpr) String() string {
	return call("min", e.X, e.Y)
}

func (e BroadcastExpr) String() string {
	return call("broadcast", e.X, e.Y)
}

func infix(x DimExpr, op string, y DimExpr) string {
	return fmt.Sprintf("%s %s %s", operandString(x), op, operandString(y))
}

func call(fun string, x, y DimExpr) string {
	return fmt.Sprintf("%s(%s, %s)", fun, toString(x), toString(y))
}

// operandString wraps arithmetic operands in parentheses so that the
// string representation keeps the shape of the tree.
func operandString(x DimExpr) string {
	switch x.(type) {
	case AddExpr, SubExpr, MulExpr, DivExpr:
		return "(" + x.String() + ")"
	}
	return toString(x)
}

func toString(x DimExpr) string {
	if x == nil {
		return "<nil>"
	}
	return x.String()
}

// Equal returns true if x and y are structurally equal:
// both trees have the same kind at every position with the same constants and symbols.
// Commutative operators are not normalized: Add(a, b) is not equal to Add(b, a).
func Equal(x, y DimExpr) bool {
	return x == y
}

// Operands returns the operands of an expression.
// Constants and symbols have no operands.
func Operands(x DimExpr) []DimExpr {
	switch xT := x.(type) {
	case AddExpr:
		return []DimExpr{xT.X, xT.Y}
	case SubExpr:
		return []DimExpr{xT.X, xT.Y}
	case MulExpr:
		return []DimExpr{xT.X, xT.Y}
	case DivExpr:
		return []DimExpr{xT.X, xT.Y}
	case MaxExpr:
		return []DimExpr{xT.X, xT.Y}
	case MinExpr:
		return []DimExpr{xT.X, xT.Y}
	case BroadcastExpr:
		return []DimExpr{xT.X, xT.Y}
	default:
		return nil
	}
}

// newBinary returns a lazy node of a given kind without any folding.
func newBinary(kind Kind, x, y DimExpr) DimExpr {
	switch kind {
	case AddKind:
		return AddExpr{X: x, Y: y}
	case SubKind:
		return SubExpr{X: x, Y: y}
	case MulKind:
		return MulExpr{X: x, Y: y}
	case DivKind:
		return DivExpr{X: x, Y: y}
	case MaxKind:
		return MaxExpr{X: x, Y: y}
	case MinKind:
		return MinExpr{X: x, Y: y}
	case BroadcastKind:
		return BroadcastExpr{X: x, Y: y}
	default:
		panic(fmt.Sprintf("%s is not a binary kind", kind))
	}
}

// Walk traverses an expression in pre-order.
// The children of a node are skipped if f returns false.
func Walk(x DimExpr, f func(DimExpr) bool) {
	if x == nil || !f(x) {
		return
	}
	for _, op := range Operands(x) {
		Walk(op, f)
	}
}

// Symbols returns the symbols referenced by an expression,
// in the order of their first occurrence.
func Symbols(x DimExpr) []Symbol {
	var syms []Symbol
	seen := make(map[Symbol]bool)
	Walk(x, func(node DimExpr) bool {
		sym, ok := node.(Symbol)
		if ok && !seen[sym] {
			seen[sym] = true
			syms = append(syms, sym)
		}
		return true
	})
	return syms
}
