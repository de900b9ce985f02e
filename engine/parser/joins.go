package parser

import (
	"strings"

	"github.com/deepakr2k1/uniquery/engine/lqr"
	"github.com/deepakr2k1/uniquery/uniquery"

	"github.com/pingcap/tidb/parser/ast"
)

// extractFrom walks a (possibly joined) FROM clause left-to-right,
// returning the base table and the ordered list of joins. tidb parses
// a chain of JOINs as a left-deep *ast.Join tree, so the base table is
// found by recursing down the Left spine.
func extractFrom(node ast.ResultSetNode) (lqr.TableRef, []lqr.Join, error) {
	join, ok := node.(*ast.Join)
	if !ok {
		ref, ok := tableRefFromNode(node)
		if !ok {
			return lqr.TableRef{}, nil, uniquery.ParseErrorf("unsupported FROM clause source %T", node)
		}
		return ref, nil, nil
	}
	if join.Right == nil {
		return extractFrom(join.Left)
	}

	base, joins, err := extractFrom(join.Left)
	if err != nil {
		return lqr.TableRef{}, nil, err
	}

	rightRef, ok := tableRefFromNode(join.Right)
	if !ok {
		return lqr.TableRef{}, nil, uniquery.ParseErrorf("unsupported JOIN target %T", join.Right)
	}

	j := lqr.Join{Type: joinType(join.Tp), Table: rightRef}

	if relation, ok := recognizeRelation(join.On); ok {
		relation.TargetTable = rightRef.Name
		relation.TargetAlias = rightRef.Alias
		j.Relation = relation
	} else {
		jc, err := joinConditionFromOn(join.On)
		if err != nil {
			return lqr.TableRef{}, nil, err
		}
		j.On = jc
	}

	return base, append(joins, j), nil
}

func tableRefFromNode(node ast.ResultSetNode) (lqr.TableRef, bool) {
	ts, ok := node.(*ast.TableSource)
	if !ok {
		return lqr.TableRef{}, false
	}
	tn, ok := ts.Source.(*ast.TableName)
	if !ok {
		return lqr.TableRef{}, false
	}
	alias := ts.AsName.O
	if alias == "" {
		alias = tn.Name.O
	}
	return lqr.TableRef{Name: tn.Name.O, Alias: alias}, true
}

func joinType(tp ast.JoinType) lqr.JoinType {
	switch tp {
	case ast.LeftJoin:
		return lqr.LeftJoin
	case ast.RightJoin:
		return lqr.RightJoin
	default:
		return lqr.InnerJoin
	}
}

// joinConditionFromOn requires the ON clause to be a single equality
// comparison between two qualified column references.
func joinConditionFromOn(on *ast.OnCondition) (*lqr.JoinCondition, error) {
	if on == nil {
		return nil, uniquery.UnsupportedJoinOnf("JOIN requires an ON clause")
	}
	bin, ok := unwrapParens(on.Expr).(*ast.BinaryOperationExpr)
	if !ok {
		return nil, uniquery.UnsupportedJoinOnf("JOIN ON clause must be a single comparison")
	}
	op, ok := comparisonOp(bin.Op)
	if !ok || op != "=" {
		return nil, uniquery.UnsupportedJoinOnf("unsupported JOIN ON operator")
	}
	left, ok := columnName(bin.L)
	if !ok || !strings.Contains(left, ".") {
		return nil, uniquery.UnsupportedJoinOnf("JOIN ON clause left side must be a qualified column")
	}
	right, ok := columnName(bin.R)
	if !ok || !strings.Contains(right, ".") {
		return nil, uniquery.UnsupportedJoinOnf("JOIN ON clause right side must be a qualified column")
	}
	return &lqr.JoinCondition{Left: left, Operator: op, Right: right}, nil
}

// recognizeRelation detects the Cypher-dialect RELATION(label[, var])
// pseudo-call in an ON clause.
func recognizeRelation(on *ast.OnCondition) (*lqr.RelationJoin, bool) {
	if on == nil {
		return nil, false
	}
	call, ok := unwrapParens(on.Expr).(*ast.FuncCallExpr)
	if !ok || !strings.EqualFold(call.FnName.O, "RELATION") || len(call.Args) == 0 {
		return nil, false
	}

	// Label alternation ("A OR B" -> "A|B") and depth suffixes are the
	// Cypher generator's concern; the parser keeps the raw pattern,
	// quotes stripped.
	label := strings.Trim(literalString(call.Args[0]), `'"`)

	variable := ""
	if len(call.Args) > 1 {
		if col, ok := columnName(call.Args[1]); ok {
			variable = col
		} else {
			variable = literalString(call.Args[1])
		}
	}

	return &lqr.RelationJoin{Relationship: variable, Label: label}, true
}
