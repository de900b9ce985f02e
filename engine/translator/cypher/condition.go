package cypher

import (
	"fmt"
	"strings"

	"github.com/deepakr2k1/uniquery/engine/lqr"
	"github.com/deepakr2k1/uniquery/uniquery"
)

// printCondition serializes a Condition tree to Cypher's infix WHERE
// surface, walking the tree directly so each operator is printed in
// its Cypher spelling rather than textually rewritten afterwards.
func printCondition(c *lqr.Condition) (string, error) {
	switch c.Kind {
	case lqr.CondAnd:
		return joinOperands(c.Operands, "AND")
	case lqr.CondOr:
		return joinOperands(c.Operands, "OR")

	case lqr.CondNot:
		inner, err := printCondition(c.Operand)
		if err != nil {
			return "", err
		}
		return "NOT " + inner, nil

	case lqr.CondIsNull:
		return c.Column + " IS NULL", nil

	case lqr.CondLeaf:
		return printLeaf(c)

	default:
		return "", uniquery.TranslationErrorf("unsupported condition kind %q in Cypher target", c.Kind)
	}
}

func joinOperands(operands []*lqr.Condition, op string) (string, error) {
	parts := make([]string, 0, len(operands))
	for _, o := range operands {
		p, err := printCondition(o)
		if err != nil {
			return "", err
		}
		parts = append(parts, p)
	}
	return strings.Join(parts, " "+op+" "), nil
}

// cypherOp maps the parser's comparison vocabulary to Cypher's, where
// "!=" is spelled "<>".
func cypherOp(op string) string {
	if op == "!=" {
		return "<>"
	}
	return op
}

func printLeaf(c *lqr.Condition) (string, error) {
	switch c.Operator {
	case "IN":
		vals := make([]string, 0, len(c.Values))
		for _, v := range c.Values {
			vals = append(vals, printValue(v, false))
		}
		return fmt.Sprintf("%s IN [%s]", c.Column, strings.Join(vals, ", ")), nil

	case "BETWEEN":
		return fmt.Sprintf("%s >= %s AND %s <= %s", c.Column, printValue(c.Low, false), c.Column, printValue(c.High, false)), nil

	case "LIKE":
		pattern, _ := c.Value.(string)
		return fmt.Sprintf("%s =~ %s", c.Column, printValue(likeToCypherRegex(pattern), false)), nil

	default:
		return fmt.Sprintf("%s %s %s", c.Column, cypherOp(c.Operator), printValue(c.Value, c.ValueIsColumn)), nil
	}
}

// printValue renders a leaf's comparand: bare for a column reference or
// a number, single-quoted for a string literal.
func printValue(v any, isColumn bool) string {
	if isColumn {
		return fmt.Sprintf("%v", v)
	}
	switch val := v.(type) {
	case string:
		return "'" + val + "'"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%v", val)
	}
}

// likeToCypherRegex converts a SQL LIKE pattern to Cypher's =~ regex
// syntax, the same escaping rules the MQL generator uses for $regex.
func likeToCypherRegex(pattern string) string {
	var b strings.Builder
	b.WriteByte('^')
	for _, r := range pattern {
		switch r {
		case '%':
			b.WriteString(".*")
		case '_':
			b.WriteByte('.')
		default:
			if strings.ContainsRune(`.*+?()[]{}|^$\`, r) {
				b.WriteByte('\\')
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('$')
	return b.String()
}
