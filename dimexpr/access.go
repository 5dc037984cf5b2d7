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
	"reflect"

	"github.com/pkg/errors"
)

var (
	// ErrTypeMismatch is returned when an expression is not of the requested kind.
	ErrTypeMismatch = errors.New("dimension expression type mismatch")
	// ErrDivisionByZero is returned when dividing a constant by the constant zero.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrIncompatibleBroadcast is returned when evaluating the broadcast of two
	// different lengths, neither of them being 1.
	ErrIncompatibleBroadcast = errors.New("incompatible broadcast")
	// ErrUnboundSymbol is returned when evaluating a symbol without a value.
	ErrUnboundSymbol = errors.New("unbound symbol")
	// ErrParse is returned when a string is not a valid dimension expression.
	ErrParse = errors.New("invalid dimension expression")
)

// Is returns true if x is of type T.
func Is[T DimExpr](x DimExpr) bool {
	_, ok := x.(T)
	return ok
}

// As returns x as a T.
// Returns an error wrapping ErrTypeMismatch if x is not a T.
func As[T DimExpr](x DimExpr) (T, error) {
	t, ok := x.(T)
	if !ok {
		return t, errors.Wrapf(ErrTypeMismatch, "%s is %s, not %s", toString(x), typeName(x), reflect.TypeFor[T]().Name())
	}
	return t, nil
}

func typeName(x DimExpr) string {
	if x == nil {
		return "nil"
	}
	return reflect.TypeOf(x).Name()
}

// ConstantValue returns the value of a constant expression.
func ConstantValue(x DimExpr) (int64, error) {
	c, err := As[Constant](x)
	if err != nil {
		return 0, err
	}
	return c.Value(), nil
}

// SymbolName returns the name of a symbol expression.
func SymbolName(x DimExpr) (string, error) {
	s, err := As[Symbol](x)
	if err != nil {
		return "", err
	}
	return s.Name(), nil
}

// IsConstant returns true if x is the constant c.
func IsConstant(x DimExpr, c int64) bool {
	xc, ok := x.(Constant)
	return ok && int64(xc) == c
}
