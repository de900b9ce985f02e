package mql

import (
	"strings"

	"github.com/deepakr2k1/uniquery/engine/lqr"
	"github.com/deepakr2k1/uniquery/mapping"
	"github.com/deepakr2k1/uniquery/uniquery"

	"go.mongodb.org/mongo-driver/bson"
)

// translateCondition recursively translates a Condition tree into a
// bson.M filter, keying by field name directly.
func translateCondition(c *lqr.Condition) (bson.M, error) {
	if c == nil {
		return bson.M{}, nil
	}

	switch c.Kind {
	case lqr.CondAnd:
		return combine("$and", c.Operands)
	case lqr.CondOr:
		return combine("$or", c.Operands)

	case lqr.CondNot:
		if c.Operand != nil && c.Operand.Kind == lqr.CondIsNull {
			return bson.M{c.Operand.Column: bson.M{"$ne": nil}}, nil
		}
		return nil, uniquery.TranslationErrorf("NOT is only supported wrapping IS NULL")

	case lqr.CondIsNull:
		return bson.M{c.Column: nil}, nil

	case lqr.CondLeaf:
		return translateLeaf(c)

	default:
		return nil, uniquery.TranslationErrorf("unsupported condition kind %q", c.Kind)
	}
}

func combine(key string, operands []*lqr.Condition) (bson.M, error) {
	parts := make([]bson.M, 0, len(operands))
	for _, op := range operands {
		part, err := translateCondition(op)
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}
	return bson.M{key: parts}, nil
}

func translateLeaf(c *lqr.Condition) (bson.M, error) {
	switch c.Operator {
	case "IN":
		return bson.M{c.Column: bson.M{"$in": c.Values}}, nil

	case "BETWEEN":
		return bson.M{c.Column: bson.M{"$gte": c.Low, "$lte": c.High}}, nil

	case "LIKE":
		pattern, _ := c.Value.(string)
		return bson.M{c.Column: bson.M{"$regex": likeToRegex(pattern)}}, nil

	case "=":
		// The bare-value form is preferred over {"$eq": value} for
		// compactness.
		return bson.M{c.Column: c.Value}, nil

	default:
		op, ok := mapping.MongoOperator[c.Operator]
		if !ok {
			return nil, uniquery.TranslationErrorf("unsupported condition operator %q", c.Operator)
		}
		return bson.M{c.Column: bson.M{op: c.Value}}, nil
	}
}

// likeToRegex converts a SQL LIKE pattern to an anchored regex: "%"
// becomes ".*", "_" becomes ".", everything else is escaped verbatim.
func likeToRegex(pattern string) string {
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

// stripAlias removes a "alias." prefix from every leaf column in cond
// that is qualified with baseAlias, so a filter translated after a
// join still refers to base-collection field names.
func stripAlias(cond *lqr.Condition, baseAlias string) *lqr.Condition {
	if cond == nil {
		return nil
	}
	prefix := baseAlias + "."
	out := *cond
	switch cond.Kind {
	case lqr.CondAnd, lqr.CondOr:
		out.Operands = make([]*lqr.Condition, len(cond.Operands))
		for i, op := range cond.Operands {
			out.Operands[i] = stripAlias(op, baseAlias)
		}
	case lqr.CondNot:
		out.Operand = stripAlias(cond.Operand, baseAlias)
	default:
		out.Column = strings.TrimPrefix(cond.Column, prefix)
	}
	return &out
}
