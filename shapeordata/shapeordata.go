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

// Package shapeordata describes what is symbolically known about a value:
// its shape and, for values listing axis lengths, its data.
package shapeordata

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/backend/shape"
	"github.com/gx-org/symshape/dimexpr"
	"github.com/pkg/errors"
)

// ShapeOrData is the symbolic shape of a value and, optionally,
// the symbolic content of that value when the value itself lists axis lengths
// (for example the output of an operator reading the shape of another value).
//
// A ShapeOrData is never modified once it has been built.
type ShapeOrData struct {
	shape   []dimexpr.DimExpr
	data    []dimexpr.DimExpr
	hasData bool
}

// New returns a descriptor with a shape and no data.
func New(shape []dimexpr.DimExpr) ShapeOrData {
	return ShapeOrData{shape: slices.Clone(shape)}
}

// MakeConsistent returns the descriptor of a value of rank 1 with a known content.
// The data is set to data and the shape to [len(data)].
func MakeConsistent(data []dimexpr.DimExpr) ShapeOrData {
	return ShapeOrData{
		shape:   []dimexpr.DimExpr{dimexpr.Constant(len(data))},
		data:    slices.Clone(data),
		hasData: true,
	}
}

// FromShape returns the descriptor of a value with a concrete shape.
// Every axis length is converted into a constant, including negative lengths.
// FromShape panics if sh is nil.
func FromShape(sh *shape.Shape) ShapeOrData {
	dims := make([]dimexpr.DimExpr, len(sh.AxisLengths))
	for i, axLen := range sh.AxisLengths {
		dims[i] = dimexpr.Constant(axLen)
	}
	return ShapeOrData{shape: dims}
}

// Shape returns the axis lengths of the value.
func (sd ShapeOrData) Shape() []dimexpr.DimExpr {
	return slices.Clone(sd.shape)
}

// Rank returns the number of axes of the value.
func (sd ShapeOrData) Rank() int {
	return len(sd.shape)
}

// Dim returns the length of the ith axis.
// Dim panics if i is not in [0, Rank()).
func (sd ShapeOrData) Dim(i int) dimexpr.DimExpr {
	return sd.shape[i]
}

// Data returns the content of the value if it is known.
func (sd ShapeOrData) Data() ([]dimexpr.DimExpr, bool) {
	if !sd.hasData {
		return nil, false
	}
	return slices.Clone(sd.data), true
}

// HasData returns true if the content of the value is known.
func (sd ShapeOrData) HasData() bool {
	return sd.hasData
}

// Equal returns true if both descriptors have structurally equal shapes and data.
func (sd ShapeOrData) Equal(other ShapeOrData) bool {
	if sd.hasData != other.hasData {
		return false
	}
	return slices.Equal(sd.shape, other.shape) && slices.Equal(sd.data, other.data)
}

// IsStatic returns true if all the axis lengths are constants.
func (sd ShapeOrData) IsStatic() bool {
	for _, dim := range sd.shape {
		if !dimexpr.Is[dimexpr.Constant](dim) {
			return false
		}
	}
	return true
}

// ToShape returns the concrete shape of the value given its data type.
// Returns an error if an axis length is not a constant.
func (sd ShapeOrData) ToShape(dt dtype.DataType) (*shape.Shape, error) {
	axes := make([]int, len(sd.shape))
	for i, dim := range sd.shape {
		val, err := dimexpr.ConstantValue(dim)
		if err != nil {
			return nil, errors.Wrapf(err, "axis %d of %s is not static", i, sd)
		}
		axes[i] = int(val)
	}
	return &shape.Shape{
		DType:       dt,
		AxisLengths: axes,
	}, nil
}

// Eval computes the axis lengths given values for the symbols.
func (sd ShapeOrData) Eval(bs dimexpr.Bindings) ([]int64, error) {
	return evalAll(sd.shape, bs)
}

// EvalData computes the content of the value given values for the symbols.
// Returns an error if the data of the value is unknown.
func (sd ShapeOrData) EvalData(bs dimexpr.Bindings) ([]int64, error) {
	if !sd.hasData {
		return nil, errors.Errorf("cannot evaluate the data of %s: data is unknown", sd)
	}
	return evalAll(sd.data, bs)
}

func evalAll(exprs []dimexpr.DimExpr, bs dimexpr.Bindings) ([]int64, error) {
	vals := make([]int64, len(exprs))
	for i, expr := range exprs {
		var err error
		vals[i], err = dimexpr.Eval(expr, bs)
		if err != nil {
			return nil, errors.WithMessagef(err, "axis %d", i)
		}
	}
	return vals, nil
}

// Exprs returns all the expressions of the descriptor: the shape followed by the data.
func (sd ShapeOrData) Exprs() []dimexpr.DimExpr {
	return slices.Concat(sd.shape, sd.data)
}

func exprsString(exprs []dimexpr.DimExpr) string {
	strs := make([]string, len(exprs))
	for i, expr := range exprs {
		strs[i] = expr.String()
	}
	return "[" + strings.Join(strs, ", ") + "]"
}

// String representation of the descriptor.
func (sd ShapeOrData) String() string {
	data := "nil"
	if sd.hasData {
		data = exprsString(sd.data)
	}
	return fmt.Sprintf("{shape: %s, data: %s}", exprsString(sd.shape), data)
}
