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

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
)

// Bindings maps symbol names to concrete axis lengths.
type Bindings map[string]int64

// Key returns a canonical string representation of the bindings,
// "name1=val1,name2=val2" with names sorted alphabetically.
// Returns an empty string for empty or nil bindings.
func (bs Bindings) Key() string {
	if len(bs) == 0 {
		return ""
	}
	names := maps.Keys(bs)
	slices.Sort(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s=%d", name, bs[name])
	}
	return strings.Join(parts, ",")
}

// Clone returns a copy of the bindings.
func (bs Bindings) Clone() Bindings {
	if bs == nil {
		return nil
	}
	return maps.Clone(bs)
}

// Merge adds the bindings from other.
// Returns an error if a symbol is bound to different values.
func (bs Bindings) Merge(other Bindings) error {
	for name, val := range other {
		if existing, ok := bs[name]; ok && existing != val {
			return errors.Errorf("conflicting values for symbol %s: %d vs %d", name, existing, val)
		}
		bs[name] = val
	}
	return nil
}

// Eval computes the value of an expression given values for its symbols.
//
// Operators are evaluated with the same rules as the Builder folds constants,
// except that an incompatible broadcast returns an error wrapping
// ErrIncompatibleBroadcast.
func Eval(x DimExpr, bs Bindings) (int64, error) {
	switch xT := x.(type) {
	case Constant:
		return int64(xT), nil
	case Symbol:
		val, ok := bs[string(xT)]
		if !ok {
			return 0, errors.Wrapf(ErrUnboundSymbol, "cannot evaluate %s", xT)
		}
		return val, nil
	case nil:
		return 0, errors.Errorf("cannot evaluate a nil expression")
	}
	ops := Operands(x)
	vx, err := Eval(ops[0], bs)
	if err != nil {
		return 0, err
	}
	vy, err := Eval(ops[1], bs)
	if err != nil {
		return 0, err
	}
	switch x.Kind() {
	case BroadcastKind:
		if vx != vy && vx != 1 && vy != 1 {
			return 0, errors.Wrapf(ErrIncompatibleBroadcast, "%s evaluates to broadcast(%d, %d)", x, vx, vy)
		}
	case DivKind:
		if vy == 0 {
			return 0, errors.Wrapf(ErrDivisionByZero, "%s evaluates to %d / 0", x, vx)
		}
	}
	val, err := discard.build(x.Kind(), Constant(vx), Constant(vy))
	if err != nil {
		return 0, err
	}
	return ConstantValue(val)
}

// Substitute replaces symbols in an expression.
// The expression is rebuilt with b, so new constant operands are folded
// and constraints recorded by b are kept.
// Symbols absent from the replacement map are left unchanged.
func Substitute(b *Builder, x DimExpr, repl map[Symbol]DimExpr) (DimExpr, error) {
	switch xT := x.(type) {
	case Constant:
		return xT, nil
	case Symbol:
		if r, ok := repl[xT]; ok {
			return r, nil
		}
		return xT, nil
	case nil:
		return nil, nil
	}
	ops := Operands(x)
	sx, err := Substitute(b, ops[0], repl)
	if err != nil {
		return nil, err
	}
	sy, err := Substitute(b, ops[1], repl)
	if err != nil {
		return nil, err
	}
	return b.build(x.Kind(), sx, sy)
}
