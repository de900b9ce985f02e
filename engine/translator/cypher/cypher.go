// Package cypher translates an LQR SELECT into a Cypher query string.
// Unlike the MQL generator, the output is text: Cypher has no
// structured driver descriptor in this design, so the generator
// assembles newline-separated clauses terminated by a single ";".
package cypher

import (
	"strconv"
	"strings"

	"github.com/deepakr2k1/uniquery/engine/lqr"
	"github.com/deepakr2k1/uniquery/uniquery"
)

// Translate implements to_cypher(lqr) -> string | TranslationError.
// Only SELECT (and its RELATION(...) join extension) is in scope;
// every other LQR variant is a TranslationError here.
func Translate(q *lqr.Query) (string, error) {
	if q.Operation != lqr.Select {
		return "", uniquery.TranslationErrorf("Cypher target only supports SELECT, got %q", q.Operation)
	}
	if len(q.Aggregate) > 0 {
		return "", uniquery.UnsupportedForCypherf("GROUP BY is not supported in the Cypher target")
	}
	if q.Having != nil {
		return "", uniquery.UnsupportedForCypherf("HAVING is not supported in the Cypher target")
	}
	for _, item := range q.Projection {
		if item.AggregationFunction != "" {
			return "", uniquery.UnsupportedForCypherf("aggregation functions are not supported in the Cypher target")
		}
	}

	var clauses []string
	clauses = append(clauses, "MATCH "+matchPath(q.Table, q.Joins))

	if q.Filter != nil {
		where, err := printCondition(q.Filter)
		if err != nil {
			return "", err
		}
		clauses = append(clauses, "WHERE "+where)
	}

	clauses = append(clauses, returnClause(q))

	if len(q.OrderBy) > 0 {
		clauses = append(clauses, "ORDER BY "+orderByClause(q.OrderBy))
	}
	if q.Limit != nil {
		clauses = append(clauses, "LIMIT "+strconv.Itoa(*q.Limit))
	}

	return strings.Join(clauses, "\n") + ";", nil
}

// matchPath assembles the single MATCH path: a plain node pattern when
// there are no joins, else a chain of
// (alias:Label)-[rel:TYPE]->(alias:Label) hops in join order.
func matchPath(base lqr.TableRef, joins []lqr.Join) string {
	var b strings.Builder
	b.WriteString(nodePattern(base))
	for _, j := range joins {
		b.WriteString("-[")
		if j.Relation != nil {
			b.WriteString(j.Relation.Relationship)
			b.WriteString(":")
			b.WriteString(relationLabel(j.Relation.Label))
		}
		b.WriteString("]->")
		b.WriteString(nodePattern(j.Table))
	}
	return b.String()
}

func nodePattern(t lqr.TableRef) string {
	return "(" + t.Alias + ":" + t.Name + ")"
}

// relationLabel rewrites "A OR B" to "A|B" and strips surrounding
// quotes; an embedded *m..n depth suffix, if any, passes through
// verbatim.
func relationLabel(label string) string {
	label = strings.Trim(label, `'"`)
	label = strings.ReplaceAll(label, " OR ", "|")
	label = strings.ReplaceAll(label, " or ", "|")
	return label
}

// returnClause builds "RETURN [DISTINCT ] items". When the projection
// list is empty, emit every known alias in path order (base, then each
// join's relationship alias and target alias).
func returnClause(q *lqr.Query) string {
	var items []string
	if len(q.Projection) == 0 {
		items = append(items, q.Table.Alias)
		for _, j := range q.Joins {
			if j.Relation != nil {
				items = append(items, j.Relation.Relationship)
			}
			items = append(items, j.Table.Alias)
		}
	} else {
		for _, item := range q.Projection {
			if item.Alias != "" {
				items = append(items, item.Name+" AS "+item.Alias)
			} else {
				items = append(items, item.Name)
			}
		}
	}

	prefix := "RETURN "
	if q.Distinct {
		prefix += "DISTINCT "
	}
	return prefix + strings.Join(items, ", ")
}

func orderByClause(items []lqr.OrderItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		order := item.Order
		if order == "" {
			order = lqr.Asc
		}
		parts = append(parts, item.Column+" "+string(order))
	}
	return strings.Join(parts, ", ")
}
