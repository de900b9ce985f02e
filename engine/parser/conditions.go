package parser

import (
	"strings"

	"github.com/deepakr2k1/uniquery/engine/lqr"
	"github.com/deepakr2k1/uniquery/uniquery"

	"github.com/pingcap/tidb/parser/ast"
	"github.com/pingcap/tidb/parser/opcode"
)

// buildCondition recurses over a WHERE expression tree: AND/OR
// flatten into n-ary operand lists, NOT wraps one operand,
// parenthesized nodes are transparent, and each leaf keeps its raw
// operator and decoded literal.
func buildCondition(expr ast.ExprNode) (*lqr.Condition, error) {
	expr = unwrapParens(expr)

	switch e := expr.(type) {
	case *ast.BinaryOperationExpr:
		switch e.Op {
		case opcode.LogicAnd, opcode.LogicOr:
			kind := lqr.CondAnd
			if e.Op == opcode.LogicOr {
				kind = lqr.CondOr
			}
			operandExprs := flattenLogic(e, e.Op)
			operands := make([]*lqr.Condition, 0, len(operandExprs))
			for _, oe := range operandExprs {
				c, err := buildCondition(oe)
				if err != nil {
					return nil, err
				}
				operands = append(operands, c)
			}
			return &lqr.Condition{Kind: kind, Operands: operands}, nil
		default:
			return buildComparisonLeaf(e)
		}

	case *ast.PatternInExpr:
		leaf := &lqr.Condition{Kind: lqr.CondLeaf, Operator: "IN"}
		col, ok := columnName(e.Expr)
		if !ok {
			return nil, uniquery.ParseErrorf("IN condition requires a column on the left side")
		}
		leaf.Column = col
		for _, v := range e.List {
			leaf.Values = append(leaf.Values, literalValue(v))
		}
		return wrapNot(leaf, e.Not), nil

	case *ast.PatternLikeOrIlikeExpr:
		col, ok := columnName(e.Expr)
		if !ok {
			return nil, uniquery.ParseErrorf("LIKE condition requires a column on the left side")
		}
		leaf := &lqr.Condition{Kind: lqr.CondLeaf, Column: col, Operator: "LIKE", Value: literalValue(e.Pattern)}
		return wrapNot(leaf, e.Not), nil

	case *ast.BetweenExpr:
		col, ok := columnName(e.Expr)
		if !ok {
			return nil, uniquery.ParseErrorf("BETWEEN condition requires a column on the left side")
		}
		leaf := &lqr.Condition{Kind: lqr.CondLeaf, Column: col, Operator: "BETWEEN", Low: literalValue(e.Left), High: literalValue(e.Right)}
		return wrapNot(leaf, e.Not), nil

	case *ast.IsNullExpr:
		col, ok := columnName(e.Expr)
		if !ok {
			return nil, uniquery.ParseErrorf("IS NULL condition requires a column")
		}
		leaf := &lqr.Condition{Kind: lqr.CondIsNull, Column: col}
		return wrapNot(leaf, e.Not), nil

	case *ast.UnaryOperationExpr:
		if e.Op == opcode.Not {
			operand, err := buildCondition(e.V)
			if err != nil {
				return nil, err
			}
			return &lqr.Condition{Kind: lqr.CondNot, Operand: operand}, nil
		}
		return nil, uniquery.ParseErrorf("unsupported condition expression %T", expr)

	default:
		return nil, uniquery.ParseErrorf("unsupported condition expression %T", expr)
	}
}

func wrapNot(leaf *lqr.Condition, not bool) *lqr.Condition {
	if !not {
		return leaf
	}
	return &lqr.Condition{Kind: lqr.CondNot, Operand: leaf}
}

func buildComparisonLeaf(e *ast.BinaryOperationExpr) (*lqr.Condition, error) {
	op, ok := comparisonOp(e.Op)
	if !ok {
		return nil, uniquery.ParseErrorf("unsupported WHERE operator %s", e.Op)
	}
	col, ok := columnName(e.L)
	if !ok {
		return nil, uniquery.ParseErrorf("WHERE condition left side must be a column reference")
	}
	_, rhsIsColumn := columnName(unwrapParens(e.R))
	return &lqr.Condition{Kind: lqr.CondLeaf, Column: col, Operator: op, Value: literalValue(e.R), ValueIsColumn: rhsIsColumn}, nil
}

// flattenLogic collects the n-ary chain of same-operator operands out
// of a left-deep AND/OR tree, stopping at any operand that is not
// itself the same operator (including one hidden behind parentheses,
// which is a deliberate nesting boundary, not erased).
func flattenLogic(expr *ast.BinaryOperationExpr, op opcode.Op) []ast.ExprNode {
	var operands []ast.ExprNode
	var walk func(ast.ExprNode)
	walk = func(e ast.ExprNode) {
		if bin, ok := e.(*ast.BinaryOperationExpr); ok && bin.Op == op {
			walk(bin.L)
			walk(bin.R)
			return
		}
		operands = append(operands, e)
	}
	walk(expr.L)
	walk(expr.R)
	return operands
}

// buildHaving accepts exactly one aggregate comparison leaf; anything
// compound or non-aggregate is rejected.
func buildHaving(expr ast.ExprNode) (*lqr.HavingLeaf, error) {
	expr = unwrapParens(expr)

	bin, ok := expr.(*ast.BinaryOperationExpr)
	if !ok {
		return nil, uniquery.UnsupportedHavingf("HAVING must be a single aggregate comparison")
	}
	if bin.Op == opcode.LogicAnd || bin.Op == opcode.LogicOr {
		return nil, uniquery.UnsupportedHavingf("compound HAVING (AND/OR) is not supported")
	}

	agg, ok := unwrapParens(bin.L).(*ast.AggregateFuncExpr)
	if !ok {
		return nil, uniquery.UnsupportedHavingf("HAVING left side must be an aggregate function")
	}
	op, ok := comparisonOp(bin.Op)
	if !ok {
		return nil, uniquery.UnsupportedHavingf("unsupported HAVING operator %s", bin.Op)
	}

	col := "*"
	if len(agg.Args) > 0 {
		if c, ok := columnName(agg.Args[0]); ok {
			col = c
		}
	}

	return &lqr.HavingLeaf{
		AggregationFunction: strings.ToUpper(agg.F),
		Column:              col,
		Operator:            op,
		Value:               literalValue(bin.R),
	}, nil
}
