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

package shapeordata_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/backend/shape"
	"github.com/gx-org/symshape/dimexpr"
	"github.com/gx-org/symshape/shapeordata"
	"github.com/pkg/errors"
)

var (
	s0 = dimexpr.Symbol("S0")
	s1 = dimexpr.Symbol("S1")
)

func exprs(xs ...dimexpr.DimExpr) []dimexpr.DimExpr {
	return xs
}

func TestShapeOnly(t *testing.T) {
	dims := exprs(s0, dimexpr.Constant(2))
	sd := shapeordata.New(dims)
	if diff := cmp.Diff(dims, sd.Shape()); diff != "" {
		t.Errorf("incorrect shape (-want +got):\n%s", diff)
	}
	if sd.HasData() {
		t.Errorf("%s should not have data", sd)
	}
	if data, ok := sd.Data(); ok || data != nil {
		t.Errorf("got data %v, %t but want nil, false", data, ok)
	}
	if sd.Rank() != 2 {
		t.Errorf("got rank %d but want 2", sd.Rank())
	}
	if got, want := sd.String(), "{shape: [S0, 2], data: nil}"; got != want {
		t.Errorf("got %q but want %q", got, want)
	}
	// The descriptor does not alias the slice given to the constructor.
	dims[0] = s1
	if sd.Dim(0) != s0 {
		t.Errorf("descriptor has been modified by its input: %s", sd)
	}
	sd.Shape()[1] = s1
	if sd.Dim(1) != dimexpr.Constant(2) {
		t.Errorf("descriptor has been modified by its output: %s", sd)
	}
}

func panics(f func()) (panicked bool) {
	defer func() {
		panicked = recover() != nil
	}()
	f()
	return false
}

func TestPanics(t *testing.T) {
	sd := shapeordata.New(exprs(s0, dimexpr.Constant(2)))
	tests := []struct {
		name string
		f    func()
	}{
		{name: "negative axis", f: func() { sd.Dim(-1) }},
		{name: "axis equal to rank", f: func() { sd.Dim(2) }},
		{name: "axis of a scalar", f: func() { shapeordata.New(nil).Dim(0) }},
		{name: "nil backend shape", f: func() { shapeordata.FromShape(nil) }},
	}
	for _, test := range tests {
		if !panics(test.f) {
			t.Errorf("%s: no panic", test.name)
		}
	}
	if panics(func() { sd.Dim(1) }) {
		t.Errorf("axis 1 of %s panicked", sd)
	}
}

func TestMakeConsistent(t *testing.T) {
	sd := shapeordata.MakeConsistent(exprs(s0, dimexpr.Constant(2)))
	data, ok := sd.Data()
	if !ok {
		t.Fatalf("%s has no data", sd)
	}
	if diff := cmp.Diff(exprs(s0, dimexpr.Constant(2)), data); diff != "" {
		t.Errorf("incorrect data (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(exprs(dimexpr.Constant(2)), sd.Shape()); diff != "" {
		t.Errorf("incorrect shape (-want +got):\n%s", diff)
	}
	if got, want := sd.String(), "{shape: [2], data: [S0, 2]}"; got != want {
		t.Errorf("got %q but want %q", got, want)
	}
	empty := shapeordata.MakeConsistent(nil)
	if diff := cmp.Diff(exprs(dimexpr.Constant(0)), empty.Shape()); diff != "" {
		t.Errorf("incorrect shape (-want +got):\n%s", diff)
	}
	if !empty.HasData() {
		t.Errorf("%s should have data", empty)
	}
}

func TestEqual(t *testing.T) {
	x := shapeordata.New(exprs(s0, dimexpr.Constant(2)))
	tests := []struct {
		other shapeordata.ShapeOrData
		want  bool
	}{
		{other: shapeordata.New(exprs(dimexpr.Symbol("S0"), dimexpr.Constant(2))), want: true},
		{other: shapeordata.New(exprs(dimexpr.Constant(2), s0))},
		{other: shapeordata.New(exprs(s0))},
		{other: shapeordata.MakeConsistent(exprs(s0, dimexpr.Constant(2)))},
	}
	for i, test := range tests {
		if got := x.Equal(test.other); got != test.want {
			t.Errorf("test %d: %s.Equal(%s) = %t but want %t", i, x, test.other, got, test.want)
		}
		if got := cmp.Equal(x, test.other); got != test.want {
			t.Errorf("test %d: cmp.Equal(%s, %s) = %t but want %t", i, x, test.other, got, test.want)
		}
	}
	dataX := shapeordata.MakeConsistent(exprs(s0, s1))
	if !dataX.Equal(shapeordata.MakeConsistent(exprs(s0, s1))) {
		t.Errorf("%s is not equal to itself", dataX)
	}
	if dataX.Equal(shapeordata.MakeConsistent(exprs(s1, s0))) {
		t.Errorf("%s is equal to a descriptor with a different data order", dataX)
	}
}

func TestBackendShape(t *testing.T) {
	sh := &shape.Shape{DType: dtype.Float32, AxisLengths: []int{-1, 2}}
	sd := shapeordata.FromShape(sh)
	want := shapeordata.New(exprs(dimexpr.Constant(-1), dimexpr.Constant(2)))
	if !sd.Equal(want) {
		t.Errorf("got %s but want %s", sd, want)
	}
	if !sd.IsStatic() {
		t.Errorf("%s should be static", sd)
	}
	got, err := sd.ToShape(dtype.Int64)
	if err != nil {
		t.Fatal(err)
	}
	if got.DType != dtype.Int64 {
		t.Errorf("got data type %s but want %s", got.DType, dtype.Int64)
	}
	if diff := cmp.Diff(sh.AxisLengths, got.AxisLengths); diff != "" {
		t.Errorf("incorrect axis lengths (-want +got):\n%s", diff)
	}

	dynamic := shapeordata.New(exprs(s0, dimexpr.Constant(2)))
	if dynamic.IsStatic() {
		t.Errorf("%s should not be static", dynamic)
	}
	if _, err := dynamic.ToShape(dtype.Float32); !errors.Is(err, dimexpr.ErrTypeMismatch) {
		t.Errorf("got error %v but want %v", err, dimexpr.ErrTypeMismatch)
	}
}

func TestEval(t *testing.T) {
	bindings := dimexpr.Bindings{"S0": 3}
	sd := shapeordata.MakeConsistent(exprs(s0, dimexpr.MustParse("S0 * 2")))
	gotShape, err := sd.Eval(bindings)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int64{2}, gotShape); diff != "" {
		t.Errorf("incorrect shape (-want +got):\n%s", diff)
	}
	gotData, err := sd.EvalData(bindings)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int64{3, 6}, gotData); diff != "" {
		t.Errorf("incorrect data (-want +got):\n%s", diff)
	}
	if _, err := sd.EvalData(nil); !errors.Is(err, dimexpr.ErrUnboundSymbol) {
		t.Errorf("got error %v but want %v", err, dimexpr.ErrUnboundSymbol)
	}
	if _, err := shapeordata.New(exprs(s0)).EvalData(bindings); err == nil {
		t.Errorf("evaluating unknown data should return an error")
	}
}
