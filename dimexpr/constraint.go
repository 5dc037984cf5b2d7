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

import "fmt"

type (
	// Constraint is an obligation between dimension expressions recorded
	// while building expressions. Constraints are not checked when recorded.
	Constraint interface {
		fmt.Stringer
		constraint()
	}

	// EqualConstraint requires two expressions to have the same value at runtime.
	EqualConstraint struct {
		X, Y DimExpr
	}
)

var _ Constraint = EqualConstraint{}

func (EqualConstraint) constraint() {}

func (c EqualConstraint) String() string {
	return fmt.Sprintf("%s == %s", toString(c.X), toString(c.Y))
}
