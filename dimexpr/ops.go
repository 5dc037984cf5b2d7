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

// Operators without a constraint sink.
// They fold constants exactly as a Builder does.

var discard Builder

// Add returns x+y.
func Add(x, y DimExpr) DimExpr { return discard.Add(x, y) }

// Sub returns x-y.
func Sub(x, y DimExpr) DimExpr { return discard.Sub(x, y) }

// Mul returns x*y.
func Mul(x, y DimExpr) DimExpr { return discard.Mul(x, y) }

// Div returns x/y.
func Div(x, y DimExpr) (DimExpr, error) { return discard.Div(x, y) }
