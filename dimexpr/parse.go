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
	"go/ast"
	"go/parser"
	"go/token"
	"strconv"

	"github.com/pkg/errors"
)

var callKinds = map[string]Kind{
	"max":       MaxKind,
	"min":       MinKind,
	"broadcast": BroadcastKind,
}

var binaryKinds = map[token.Token]Kind{
	token.ADD: AddKind,
	token.SUB: SubKind,
	token.MUL: MulKind,
	token.QUO: DivKind,
}

// Parse a dimension expression from its string representation.
//
// The syntax is a subset of Go expressions: integer literals, identifiers or
// quoted strings for symbols, the binary operators + - * /, and the calls max(x, y), min(x, y), and
// broadcast(x, y). Expressions are built as written, without folding constants,
// so that Parse(x.String()) is equal to x.
func Parse(src string) (DimExpr, error) {
	expr, err := parser.ParseExpr(src)
	if err != nil {
		return nil, errors.Wrapf(ErrParse, "%q: %v", src, err)
	}
	x, err := fromAST(expr)
	if err != nil {
		return nil, errors.Wrapf(ErrParse, "%q: %v", src, err)
	}
	return x, nil
}

// MustParse parses a dimension expression and panics if src is invalid.
func MustParse(src string) DimExpr {
	x, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return x
}

func fromAST(expr ast.Expr) (DimExpr, error) {
	switch exprT := expr.(type) {
	case *ast.ParenExpr:
		return fromAST(exprT.X)
	case *ast.Ident:
		return Symbol(exprT.Name), nil
	case *ast.BasicLit:
		if exprT.Kind == token.STRING {
			return quotedSymbol(exprT)
		}
		return intLiteral(exprT, "")
	case *ast.UnaryExpr:
		lit, ok := exprT.X.(*ast.BasicLit)
		if exprT.Op != token.SUB || !ok {
			return nil, errors.Errorf("unary operator %s only supported on integer literals", exprT.Op)
		}
		return intLiteral(lit, "-")
	case *ast.BinaryExpr:
		kind, ok := binaryKinds[exprT.Op]
		if !ok {
			return nil, errors.Errorf("operator %s not supported", exprT.Op)
		}
		return binaryFromAST(kind, exprT.X, exprT.Y)
	case *ast.CallExpr:
		return callFromAST(exprT)
	default:
		return nil, errors.Errorf("expression %T not supported", exprT)
	}
}

func intLiteral(lit *ast.BasicLit, sign string) (DimExpr, error) {
	if lit.Kind != token.INT {
		return nil, errors.Errorf("literal %s is not an integer", lit.Value)
	}
	val, err := strconv.ParseInt(sign+lit.Value, 0, 64)
	if err != nil {
		return nil, err
	}
	return Constant(val), nil
}

func quotedSymbol(lit *ast.BasicLit) (DimExpr, error) {
	name, err := strconv.Unquote(lit.Value)
	if err != nil {
		return nil, err
	}
	return Symbol(name), nil
}

func callFromAST(expr *ast.CallExpr) (DimExpr, error) {
	fun, ok := expr.Fun.(*ast.Ident)
	if !ok {
		return nil, errors.Errorf("call to %T not supported", expr.Fun)
	}
	kind, ok := callKinds[fun.Name]
	if !ok {
		return nil, errors.Errorf("function %s not supported", fun.Name)
	}
	if len(expr.Args) != 2 {
		return nil, errors.Errorf("%s requires 2 arguments but got %d", fun.Name, len(expr.Args))
	}
	return binaryFromAST(kind, expr.Args[0], expr.Args[1])
}

func binaryFromAST(kind Kind, xExpr, yExpr ast.Expr) (DimExpr, error) {
	x, err := fromAST(xExpr)
	if err != nil {
		return nil, err
	}
	y, err := fromAST(yExpr)
	if err != nil {
		return nil, err
	}
	return newBinary(kind, x, y), nil
}
