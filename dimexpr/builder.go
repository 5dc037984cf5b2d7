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

import "github.com/pkg/errors"

// Builder builds dimension expressions.
//
// Binary operations are folded into a constant when both operands are constants.
// Folding only looks at the operands given to the call: sub-trees are never
// examined or rewritten.
//
// The zero value is a builder discarding constraints.
type Builder struct {
	sink *[]Constraint
}

// NewBuilder returns a new builder appending its constraints to sink.
// Constraints are discarded if sink is nil.
// The builder never reads or removes elements from the sink.
func NewBuilder(sink *[]Constraint) *Builder {
	return &Builder{sink: sink}
}

// Recording returns true if the builder records its constraints.
func (b *Builder) Recording() bool {
	return b.sink != nil
}

func constants(x, y DimExpr) (Constant, Constant, bool) {
	cx, xOk := x.(Constant)
	if !xOk {
		return 0, 0, false
	}
	cy, yOk := y.(Constant)
	if !yOk {
		return 0, 0, false
	}
	return cx, cy, true
}

// Add returns x+y.
func (b *Builder) Add(x, y DimExpr) DimExpr {
	if cx, cy, ok := constants(x, y); ok {
		return cx + cy
	}
	return AddExpr{X: x, Y: y}
}

// Sub returns x-y.
func (b *Builder) Sub(x, y DimExpr) DimExpr {
	if cx, cy, ok := constants(x, y); ok {
		return cx - cy
	}
	return SubExpr{X: x, Y: y}
}

// Mul returns x*y.
func (b *Builder) Mul(x, y DimExpr) DimExpr {
	if cx, cy, ok := constants(x, y); ok {
		return cx * cy
	}
	return MulExpr{X: x, Y: y}
}

// Div returns x/y. Constant division truncates toward zero.
// Returns an error wrapping ErrDivisionByZero if x is a constant and y is the constant 0.
func (b *Builder) Div(x, y DimExpr) (DimExpr, error) {
	cx, cy, ok := constants(x, y)
	if !ok {
		return DivExpr{X: x, Y: y}, nil
	}
	if cy == 0 {
		return nil, errors.Wrapf(ErrDivisionByZero, "cannot fold %s / %s", cx, cy)
	}
	return cx / cy, nil
}

// Max returns the largest of x and y.
func (b *Builder) Max(x, y DimExpr) DimExpr {
	if cx, cy, ok := constants(x, y); ok {
		return max(cx, cy)
	}
	return MaxExpr{X: x, Y: y}
}

// Min returns the smallest of x and y.
func (b *Builder) Min(x, y DimExpr) DimExpr {
	if cx, cy, ok := constants(x, y); ok {
		return min(cx, cy)
	}
	return MinExpr{X: x, Y: y}
}

// Broadcast returns the length of an axis broadcasting x and y together.
//
// Two equal constants fold into that constant and the constant 1 folds into
// the other constant. Two different constants, neither of them being 1,
// cannot be broadcast: a lazy expression is returned and it is up to a
// consistency check to report it.
func (b *Builder) Broadcast(x, y DimExpr) DimExpr {
	cx, cy, ok := constants(x, y)
	switch {
	case !ok:
	case cx == cy:
		return cx
	case cx == 1:
		return cy
	case cy == 1:
		return cx
	}
	return BroadcastExpr{X: x, Y: y}
}

// CstrEq records that x and y must be equal.
// Nothing is recorded if the builder has no sink.
func (b *Builder) CstrEq(x, y DimExpr) {
	if b.sink == nil {
		return
	}
	*b.sink = append(*b.sink, EqualConstraint{X: x, Y: y})
}

// Sum returns the sum of all the expressions, folding from left to right.
// The sum of no expression is 0.
func (b *Builder) Sum(xs ...DimExpr) DimExpr {
	if len(xs) == 0 {
		return Constant(0)
	}
	r := xs[0]
	for _, x := range xs[1:] {
		r = b.Add(r, x)
	}
	return r
}

// Product returns the product of all the expressions, folding from left to right.
// The product of no expression is 1.
func (b *Builder) Product(xs ...DimExpr) DimExpr {
	if len(xs) == 0 {
		return Constant(1)
	}
	r := xs[0]
	for _, x := range xs[1:] {
		r = b.Mul(r, x)
	}
	return r
}

// BroadcastAll broadcasts all the expressions, folding from left to right.
// Broadcasting no expression returns 1.
func (b *Builder) BroadcastAll(xs ...DimExpr) DimExpr {
	if len(xs) == 0 {
		return Constant(1)
	}
	r := xs[0]
	for _, x := range xs[1:] {
		r = b.Broadcast(r, x)
	}
	return r
}

// build returns the node of a given kind built with the folding rules of the builder.
func (b *Builder) build(kind Kind, x, y DimExpr) (DimExpr, error) {
	switch kind {
	case AddKind:
		return b.Add(x, y), nil
	case SubKind:
		return b.Sub(x, y), nil
	case MulKind:
		return b.Mul(x, y), nil
	case DivKind:
		return b.Div(x, y)
	case MaxKind:
		return b.Max(x, y), nil
	case MinKind:
		return b.Min(x, y), nil
	case BroadcastKind:
		return b.Broadcast(x, y), nil
	default:
		return nil, errors.Errorf("cannot build an expression of kind %s", kind)
	}
}
