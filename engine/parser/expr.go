package parser

import (
	"fmt"
	"strings"

	"github.com/pingcap/tidb/parser/ast"
	"github.com/pingcap/tidb/parser/format"
	"github.com/pingcap/tidb/parser/opcode"
	"github.com/pingcap/tidb/parser/test_driver"
)

// columnName renders a (possibly table-qualified) column reference as
// "alias.column" or "column", the form every lqr field that names a
// column uses.
func columnName(expr ast.ExprNode) (string, bool) {
	col, ok := unwrapParens(expr).(*ast.ColumnNameExpr)
	if !ok {
		return "", false
	}
	if col.Name.Table.O != "" {
		return col.Name.Table.O + "." + col.Name.Name.O, true
	}
	return col.Name.Name.O, true
}

// literalValue decodes a literal expression node to its underlying Go
// primitive, or falls back to its textual form for anything else.
func literalValue(expr ast.ExprNode) any {
	expr = unwrapParens(expr)
	switch e := expr.(type) {
	case *test_driver.ValueExpr:
		return decodeDatum(e)
	case *ast.UnaryOperationExpr:
		if e.Op == opcode.Minus {
			if n, ok := literalValue(e.V).(int64); ok {
				return -n
			}
			if n, ok := literalValue(e.V).(float64); ok {
				return -n
			}
		}
		return literalValue(e.V)
	case *ast.ColumnNameExpr:
		name, _ := columnName(e)
		return name
	default:
		var b strings.Builder
		if err := expr.Restore(format.NewRestoreCtx(format.DefaultRestoreFlags, &b)); err == nil {
			return b.String()
		}
		return fmt.Sprintf("%v", expr)
	}
}

func decodeDatum(val *test_driver.ValueExpr) any {
	d := val.Datum
	switch d.Kind() {
	case test_driver.KindInt64:
		return d.GetInt64()
	case test_driver.KindUint64:
		return d.GetUint64()
	case test_driver.KindFloat32, test_driver.KindFloat64:
		return d.GetFloat64()
	case test_driver.KindString:
		return d.GetString()
	case test_driver.KindBytes:
		return string(d.GetBytes())
	case test_driver.KindNull:
		return nil
	default:
		return fmt.Sprintf("%v", d.GetValue())
	}
}

// literalString is literalValue narrowed to strings, used for the
// RELATION(...) pseudo-call's arguments, which are always quoted text
// or bareword identifiers.
func literalString(expr ast.ExprNode) string {
	switch v := literalValue(expr).(type) {
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

func unwrapParens(expr ast.ExprNode) ast.ExprNode {
	for {
		p, ok := expr.(*ast.ParenthesesExpr)
		if !ok {
			return expr
		}
		expr = p.Expr
	}
}

// comparisonOp maps a tidb opcode to the condition operator
// vocabulary. Only the six binary comparisons are in scope; anything
// else (arithmetic, bitwise, string concat) is not a condition operator.
func comparisonOp(op opcode.Op) (string, bool) {
	switch op {
	case opcode.EQ:
		return "=", true
	case opcode.NE:
		return "!=", true
	case opcode.LT:
		return "<", true
	case opcode.GT:
		return ">", true
	case opcode.LE:
		return "<=", true
	case opcode.GE:
		return ">=", true
	default:
		return "", false
	}
}
