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

package dimexpr_test

import (
	"testing"

	"github.com/gx-org/symshape/dimexpr"
)

var (
	s0 = dimexpr.Symbol("S0")
	s1 = dimexpr.Symbol("S1")
	c1 = dimexpr.Constant(1)
)

func TestEqualIsOrderSensitive(t *testing.T) {
	b := dimexpr.NewBuilder(nil)
	div := func(x, y dimexpr.DimExpr) dimexpr.DimExpr {
		r, err := b.Div(x, y)
		if err != nil {
			t.Fatal(err)
		}
		return r
	}
	ops := []struct {
		name string
		f    func(x, y dimexpr.DimExpr) dimexpr.DimExpr
	}{
		{name: "add", f: b.Add},
		{name: "sub", f: b.Sub},
		{name: "mul", f: b.Mul},
		{name: "div", f: div},
		{name: "max", f: b.Max},
		{name: "min", f: b.Min},
		{name: "broadcast", f: b.Broadcast},
	}
	for _, op := range ops {
		if got := op.f(s0, s1); !dimexpr.Equal(got, op.f(s0, s1)) {
			t.Errorf("%s: %s is not equal to itself", op.name, got)
		}
		if got := op.f(s0, s1); dimexpr.Equal(got, op.f(s1, s0)) {
			t.Errorf("%s: %s is equal to %s", op.name, got, op.f(s1, s0))
		}
		if got := op.f(s0, c1); got != op.f(dimexpr.Symbol("S0"), c1) {
			t.Errorf("%s: %s is not equal to the same expression built from a new symbol", op.name, got)
		}
	}
}

func TestInfixOperators(t *testing.T) {
	s0s1, err := dimexpr.Div(s0, s1)
	if err != nil {
		t.Fatal(err)
	}
	s1s0, err := dimexpr.Div(s1, s0)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		got, same, other dimexpr.DimExpr
	}{
		{
			got:   dimexpr.Add(s0, s1),
			same:  dimexpr.AddExpr{X: s0, Y: s1},
			other: dimexpr.Add(s1, s0),
		},
		{
			got:   dimexpr.Sub(s0, s1),
			same:  dimexpr.SubExpr{X: s0, Y: s1},
			other: dimexpr.Sub(s1, s0),
		},
		{
			got:   dimexpr.Mul(s0, s1),
			same:  dimexpr.MulExpr{X: s0, Y: s1},
			other: dimexpr.Mul(s1, s0),
		},
		{
			got:   s0s1,
			same:  dimexpr.DivExpr{X: s0, Y: s1},
			other: s1s0,
		},
	}
	for i, test := range tests {
		if test.got != test.same {
			t.Errorf("test %d: got %s but want %s", i, test.got, test.same)
		}
		if test.got == test.other {
			t.Errorf("test %d: %s should not be equal to %s", i, test.got, test.other)
		}
	}
	naive := dimexpr.Mul(dimexpr.Add(s0, s1), c1)
	want := dimexpr.MulExpr{X: dimexpr.AddExpr{X: s0, Y: s1}, Y: c1}
	if naive != want {
		t.Errorf("got %s but want %s", naive, want)
	}
}

func TestEqualIsAnEquivalence(t *testing.T) {
	exprs := []dimexpr.DimExpr{
		s0,
		s1,
		c1,
		dimexpr.Constant(-1),
		dimexpr.AddExpr{X: s0, Y: s1},
		dimexpr.AddExpr{X: s1, Y: s0},
		dimexpr.SubExpr{X: s0, Y: s1},
		dimexpr.MaxExpr{X: s0, Y: c1},
		dimexpr.MinExpr{X: s0, Y: c1},
		dimexpr.BroadcastExpr{X: s0, Y: c1},
		dimexpr.BroadcastExpr{X: dimexpr.AddExpr{X: s0, Y: s1}, Y: c1},
	}
	// Rebuild every expression from its string so that no value is shared.
	copies := make([]dimexpr.DimExpr, len(exprs))
	for i, x := range exprs {
		copies[i] = dimexpr.MustParse(x.String())
	}
	for i, x := range exprs {
		for j, y := range copies {
			got := dimexpr.Equal(x, y)
			if got != (i == j) {
				t.Errorf("Equal(%s, %s) = %t but want %t", x, y, got, i == j)
			}
			if got != dimexpr.Equal(y, x) {
				t.Errorf("Equal(%s, %s) is not symmetric", x, y)
			}
		}
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		x    dimexpr.DimExpr
		want dimexpr.Kind
		str  string
	}{
		{x: c1, want: dimexpr.ConstantKind, str: "constant"},
		{x: s0, want: dimexpr.SymbolKind, str: "symbol"},
		{x: dimexpr.AddExpr{X: s0, Y: s1}, want: dimexpr.AddKind, str: "add"},
		{x: dimexpr.SubExpr{X: s0, Y: s1}, want: dimexpr.SubKind, str: "sub"},
		{x: dimexpr.MulExpr{X: s0, Y: s1}, want: dimexpr.MulKind, str: "mul"},
		{x: dimexpr.DivExpr{X: s0, Y: s1}, want: dimexpr.DivKind, str: "div"},
		{x: dimexpr.MaxExpr{X: s0, Y: s1}, want: dimexpr.MaxKind, str: "max"},
		{x: dimexpr.MinExpr{X: s0, Y: s1}, want: dimexpr.MinKind, str: "min"},
		{x: dimexpr.BroadcastExpr{X: s0, Y: s1}, want: dimexpr.BroadcastKind, str: "broadcast"},
	}
	for i, test := range tests {
		got := test.x.Kind()
		if got != test.want {
			t.Errorf("test %d: %s: got kind %s but want %s", i, test.x, got, test.want)
		}
		if got.String() != test.str {
			t.Errorf("test %d: got %q but want %q", i, got.String(), test.str)
		}
		wantBinary := i >= 2
		if got.IsBinary() != wantBinary {
			t.Errorf("test %d: %s.IsBinary() = %t but want %t", i, got, got.IsBinary(), wantBinary)
		}
		wantOperands := 0
		if wantBinary {
			wantOperands = 2
		}
		if len(dimexpr.Operands(test.x)) != wantOperands {
			t.Errorf("test %d: incorrect number of operands for %s: %v", i, test.x, dimexpr.Operands(test.x))
		}
	}
}

func TestSymbols(t *testing.T) {
	x := dimexpr.MustParse("broadcast(S1 + S0, max(S1, 4)) * S2")
	got := dimexpr.Symbols(x)
	want := []dimexpr.Symbol{"S1", "S0", "S2"}
	if len(got) != len(want) {
		t.Fatalf("got %v but want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("symbol %d: got %s but want %s", i, got[i], want[i])
		}
	}
	if syms := dimexpr.Symbols(dimexpr.Constant(3)); len(syms) != 0 {
		t.Errorf("got %v but want no symbols", syms)
	}
}

func TestWalkSkipsChildren(t *testing.T) {
	x := dimexpr.MustParse("(S0 + S1) * max(S2, S3)")
	var visited []string
	dimexpr.Walk(x, func(node dimexpr.DimExpr) bool {
		visited = append(visited, node.String())
		return node.Kind() != dimexpr.MaxKind
	})
	want := []string{"(S0 + S1) * max(S2, S3)", "S0 + S1", "S0", "S1", "max(S2, S3)"}
	if len(visited) != len(want) {
		t.Fatalf("got %q but want %q", visited, want)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Errorf("node %d: got %q but want %q", i, visited[i], want[i])
		}
	}
}
