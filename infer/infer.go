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

// Package infer computes the shape descriptors of the outputs of common
// array operators given the descriptors of their inputs.
//
// Rules build their expressions with a dimexpr.Builder: constants are folded
// and the equalities an operator requires between its inputs are recorded
// as constraints of the builder.
package infer

import (
	"github.com/gx-org/backend/shape"
	"github.com/gx-org/symshape/dimexpr"
	"github.com/gx-org/symshape/shapeordata"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// DynamicAxis is the axis length used by concrete shapes for an axis of unknown length.
const DynamicAxis = -1

// Input returns the descriptor of a program input given its concrete shape.
// Every dynamic axis is given a fresh symbol generated by gen.
func Input(gen *dimexpr.SymbolGen, sh *shape.Shape) shapeordata.ShapeOrData {
	dims := make([]dimexpr.DimExpr, len(sh.AxisLengths))
	for i, axLen := range sh.AxisLengths {
		if axLen == DynamicAxis {
			dims[i] = gen.Next()
			continue
		}
		dims[i] = dimexpr.Constant(axLen)
	}
	return shapeordata.New(dims)
}

// ShapeOf returns the descriptor of the value returned by reading the shape of x.
// The output is a value of rank 1 listing the axis lengths of x.
func ShapeOf(x shapeordata.ShapeOrData) shapeordata.ShapeOrData {
	return shapeordata.MakeConsistent(x.Shape())
}

func normaliseAxis(axis, rank int) (int, error) {
	if axis < 0 {
		axis += rank
	}
	if axis < 0 || axis >= rank {
		return 0, errors.Errorf("axis %d out of range for rank %d", axis, rank)
	}
	return axis, nil
}

// Reshape returns the descriptor of x reshaped to target.
//
// The data of target lists the axis lengths of the output.
// A length of 0 copies the length of the input axis at the same index.
// At most one length can be -1: that length is inferred from the size of x.
// Otherwise, the size of x and the size of the output are constrained to be equal.
func Reshape(b *dimexpr.Builder, x, target shapeordata.ShapeOrData) (shapeordata.ShapeOrData, error) {
	dims, ok := target.Data()
	if !ok {
		return shapeordata.ShapeOrData{}, errors.Errorf("cannot reshape %s: target shape %s has no data", x, target)
	}
	out := make([]dimexpr.DimExpr, len(dims))
	inferAxis := -1
	var known []dimexpr.DimExpr
	for i, dim := range dims {
		switch {
		case dimexpr.IsConstant(dim, DynamicAxis):
			if inferAxis >= 0 {
				return shapeordata.ShapeOrData{}, errors.Errorf("cannot reshape %s to %s: axes %d and %d are both inferred", x, target, inferAxis, i)
			}
			inferAxis = i
			continue
		case dimexpr.IsConstant(dim, 0):
			if i >= x.Rank() {
				return shapeordata.ShapeOrData{}, errors.Errorf("cannot reshape %s to %s: axis %d copies an axis out of range", x, target, i)
			}
			out[i] = x.Dim(i)
		default:
			out[i] = dim
		}
		known = append(known, out[i])
	}
	size := b.Product(x.Shape()...)
	if inferAxis >= 0 {
		inferred, err := b.Div(size, b.Product(known...))
		if err != nil {
			return shapeordata.ShapeOrData{}, errors.WithMessagef(err, "cannot infer axis %d reshaping %s to %s", inferAxis, x, target)
		}
		out[inferAxis] = inferred
	} else {
		b.CstrEq(size, b.Product(out...))
	}
	res := shapeordata.New(out)
	klog.V(2).Infof("reshape %s to %s: %s", x, target, res)
	return res, nil
}

// broadcastAxes broadcasts two lists of axes aligned on their last axis.
func broadcastAxes(b *dimexpr.Builder, x, y []dimexpr.DimExpr) []dimexpr.DimExpr {
	rank := max(len(x), len(y))
	out := make([]dimexpr.DimExpr, rank)
	for i := 1; i <= rank; i++ {
		xi, yi := len(x)-i, len(y)-i
		switch {
		case xi < 0:
			out[rank-i] = y[yi]
		case yi < 0:
			out[rank-i] = x[xi]
		default:
			out[rank-i] = b.Broadcast(x[xi], y[yi])
		}
	}
	return out
}

// Elementwise returns the descriptor of the output of an element-wise binary
// operator, broadcasting the axes of x and y from the last one.
func Elementwise(b *dimexpr.Builder, x, y shapeordata.ShapeOrData) shapeordata.ShapeOrData {
	res := shapeordata.New(broadcastAxes(b, x.Shape(), y.Shape()))
	klog.V(2).Infof("elementwise %s and %s: %s", x, y, res)
	return res
}

// Concat returns the descriptor of the concatenation of xs along an axis.
//
// All the other axes are constrained to be equal to the axes of the first value.
// When all the values are lists of axis lengths with a known content,
// the content of the output is known as well.
func Concat(b *dimexpr.Builder, axis int, xs ...shapeordata.ShapeOrData) (shapeordata.ShapeOrData, error) {
	if len(xs) == 0 {
		return shapeordata.ShapeOrData{}, errors.Errorf("cannot concatenate zero values")
	}
	rank := xs[0].Rank()
	axis, err := normaliseAxis(axis, rank)
	if err != nil {
		return shapeordata.ShapeOrData{}, err
	}
	for i, x := range xs[1:] {
		if x.Rank() != rank {
			return shapeordata.ShapeOrData{}, errors.Errorf("cannot concatenate %s with %s: value %d has rank %d but want %d", xs[0], x, i+1, x.Rank(), rank)
		}
	}
	if data, ok := concatData(xs); ok {
		return shapeordata.MakeConsistent(data), nil
	}
	out := xs[0].Shape()
	lengths := make([]dimexpr.DimExpr, len(xs))
	for i, x := range xs {
		lengths[i] = x.Dim(axis)
		if i == 0 {
			continue
		}
		for j := range rank {
			if j != axis {
				b.CstrEq(out[j], x.Dim(j))
			}
		}
	}
	out[axis] = b.Sum(lengths...)
	res := shapeordata.New(out)
	klog.V(2).Infof("concat %v along axis %d: %s", xs, axis, res)
	return res, nil
}

func concatData(xs []shapeordata.ShapeOrData) ([]dimexpr.DimExpr, bool) {
	var all []dimexpr.DimExpr
	for _, x := range xs {
		data, ok := x.Data()
		if !ok {
			return nil, false
		}
		all = append(all, data...)
	}
	return all, true
}

// MatMul returns the descriptor of the matrix multiplication of x and y.
//
// Both values must have a rank of at least 2. The contracted axes are
// constrained to be equal and the leading batch axes are broadcast.
func MatMul(b *dimexpr.Builder, x, y shapeordata.ShapeOrData) (shapeordata.ShapeOrData, error) {
	if x.Rank() < 2 || y.Rank() < 2 {
		return shapeordata.ShapeOrData{}, errors.Errorf("cannot multiply %s by %s: matrix multiplication requires a rank of at least 2", x, y)
	}
	xs, ys := x.Shape(), y.Shape()
	xr, yr := len(xs), len(ys)
	b.CstrEq(xs[xr-1], ys[yr-2])
	out := broadcastAxes(b, xs[:xr-2], ys[:yr-2])
	out = append(out, xs[xr-2], ys[yr-1])
	res := shapeordata.New(out)
	klog.V(2).Infof("matmul %s by %s: %s", x, y, res)
	return res, nil
}
