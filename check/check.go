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

// Package check reports inconsistencies between dimension expressions:
// broadcasts that cannot succeed and equality constraints that cannot hold.
package check

import (
	"fmt"

	"github.com/gx-org/symshape/dimexpr"
	"github.com/gx-org/symshape/shapeordata"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"k8s.io/klog/v2"
)

// Violation is an inconsistency found by Check.
type Violation struct {
	// Expr is the inconsistent expression.
	Expr dimexpr.DimExpr
	// Constraint is the constraint that does not hold.
	// It is nil if the violation is not about a constraint.
	Constraint dimexpr.Constraint

	err error
}

func (v *Violation) Error() string {
	if v.Constraint != nil {
		return fmt.Sprintf("constraint %s does not hold: %v", v.Constraint, v.err)
	}
	return fmt.Sprintf("%s: %v", v.Expr, v.err)
}

// Unwrap returns the cause of the violation.
func (v *Violation) Unwrap() error {
	return v.err
}

// ErrNotEqual is the cause of a violation when two expressions evaluate to different values.
var ErrNotEqual = errors.New("expressions are not equal")

// Option configures a check.
type Option func(*checker)

// WithBindings evaluates the expressions with concrete values for some symbols.
// Without bindings, only the expressions without any symbol are evaluated.
func WithBindings(bs dimexpr.Bindings) Option {
	return func(c *checker) {
		c.bindings = bs
	}
}

type checker struct {
	bindings dimexpr.Bindings
	visited  map[dimexpr.DimExpr]bool // expression to its consistency
	reported map[dimexpr.BroadcastExpr]bool
	errs     error
}

// Check returns all the inconsistencies found in a set of constraints and descriptors.
// Every expression is evaluated: expressions depending on a symbol without a value
// are skipped and any other evaluation failure, such as a division by zero, is reported.
// The returned error combines one *Violation per inconsistency
// (use multierr.Errors to list them) or is nil if no inconsistency has been found.
func Check(constraints []dimexpr.Constraint, descs []shapeordata.ShapeOrData, opts ...Option) error {
	c := &checker{
		visited:  make(map[dimexpr.DimExpr]bool),
		reported: make(map[dimexpr.BroadcastExpr]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	for _, desc := range descs {
		for _, expr := range desc.Exprs() {
			c.checkExpr(expr)
		}
	}
	for _, cstr := range constraints {
		c.checkConstraint(cstr)
	}
	return c.errs
}

func (c *checker) append(v *Violation) {
	klog.V(1).Infof("shape inconsistency: %v", v)
	c.errs = multierr.Append(c.errs, v)
}

// checkExpr checks an expression and returns false if a violation has been found.
// Each expression is only checked once.
func (c *checker) checkExpr(x dimexpr.DimExpr) bool {
	if ok, seen := c.visited[x]; seen {
		return ok
	}
	ok := c.checkBroadcasts(x)
	if ok {
		if _, _, err := c.eval(x); err != nil {
			c.append(&Violation{Expr: x, err: err})
			ok = false
		}
	}
	c.visited[x] = ok
	return ok
}

// checkBroadcasts reports the broadcasts of two incompatible constants in an expression.
func (c *checker) checkBroadcasts(x dimexpr.DimExpr) bool {
	ok := true
	dimexpr.Walk(x, func(node dimexpr.DimExpr) bool {
		bcast, isBcast := node.(dimexpr.BroadcastExpr)
		if !isBcast || !incompatible(bcast) {
			return true
		}
		ok = false
		if c.reported[bcast] {
			return false
		}
		c.reported[bcast] = true
		c.append(&Violation{
			Expr: bcast,
			err:  errors.Wrapf(dimexpr.ErrIncompatibleBroadcast, "cannot broadcast %s with %s", bcast.X, bcast.Y),
		})
		return false
	})
	return ok
}

func incompatible(bcast dimexpr.BroadcastExpr) bool {
	cx, xOk := bcast.X.(dimexpr.Constant)
	cy, yOk := bcast.Y.(dimexpr.Constant)
	return xOk && yOk && cx != cy && cx != 1 && cy != 1
}

// eval evaluates an expression.
// The returned boolean is false if the expression depends on a symbol without a value.
func (c *checker) eval(x dimexpr.DimExpr) (int64, bool, error) {
	val, err := dimexpr.Eval(x, c.bindings)
	if errors.Is(err, dimexpr.ErrUnboundSymbol) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return val, true, nil
}

func (c *checker) checkConstraint(cstr dimexpr.Constraint) {
	eq, ok := cstr.(dimexpr.EqualConstraint)
	if !ok {
		c.append(&Violation{Constraint: cstr, err: errors.Errorf("constraint type %T not supported", cstr)})
		return
	}
	xOk := c.checkExpr(eq.X)
	yOk := c.checkExpr(eq.Y)
	if !xOk || !yOk || eq.X == eq.Y {
		return
	}
	vx, xKnown, err := c.eval(eq.X)
	if err != nil || !xKnown {
		return
	}
	vy, yKnown, err := c.eval(eq.Y)
	if err != nil || !yKnown {
		return
	}
	if vx != vy {
		c.append(&Violation{
			Expr:       eq.X,
			Constraint: eq,
			err:        errors.Wrapf(ErrNotEqual, "%s evaluates to %d but %s evaluates to %d", eq.X, vx, eq.Y, vy),
		})
	}
}
