package mql

import (
	"strings"

	"github.com/deepakr2k1/uniquery/engine/lqr"
	"github.com/deepakr2k1/uniquery/uniquery"

	"go.mongodb.org/mongo-driver/bson"
)

// translateAggregate assembles the AGGREGATE pipeline in a fixed stage
// order: lookups with unwinds, then project or group, having, match,
// sort, and limit. Each stage is skipped when empty.
func translateAggregate(q *lqr.Query) (*Op, error) {
	var pipeline []bson.M

	for _, j := range q.Joins {
		pipeline = append(pipeline, lookupStage(q.Table, j), unwindStage(j))
	}

	switch {
	case len(q.Joins) > 0:
		pipeline = append(pipeline, projectStage(q.Table, q.Projection))
	case len(q.Aggregate) > 0 || hasAggregateProjection(q.Projection):
		pipeline = append(pipeline, groupStage(q.Aggregate, q.Projection))
	}

	if q.Having != nil {
		stage, err := havingStage(q.Having, q.Projection)
		if err != nil {
			return nil, err
		}
		pipeline = append(pipeline, stage)
	}

	if q.Filter != nil {
		filterCond := q.Filter
		if len(q.Joins) > 0 {
			filterCond = stripAlias(filterCond, q.Table.Alias)
		}
		filter, err := translateCondition(filterCond)
		if err != nil {
			return nil, err
		}
		pipeline = append(pipeline, bson.M{"$match": filter})
	}

	if len(q.OrderBy) > 0 {
		pipeline = append(pipeline, bson.M{"$sort": sortSpec(q.OrderBy)})
	}

	if q.Limit != nil {
		pipeline = append(pipeline, bson.M{"$limit": int64(*q.Limit)})
	}

	return &Op{Operation: Aggregate, Collection: collection(q.Table.Name), Pipeline: pipeline}, nil
}

// lookupStage builds one $lookup per join: localField/foreignField are
// inferred from the ON clause by matching each side's alias prefix
// against the base table and the join's own alias.
func lookupStage(base lqr.TableRef, j lqr.Join) bson.M {
	local, foreign := joinFields(base, j)
	return bson.M{
		"$lookup": bson.M{
			"from":         collection(j.Table.Name),
			"localField":   local,
			"foreignField": foreign,
			"as":           j.Table.Alias,
		},
	}
}

func joinFields(base lqr.TableRef, j lqr.Join) (local, foreign string) {
	if j.On == nil {
		return "", ""
	}
	leftAlias, leftCol := splitAlias(j.On.Left)
	rightAlias, rightCol := splitAlias(j.On.Right)

	switch {
	case leftAlias == base.Alias && rightAlias == j.Table.Alias:
		return leftCol, rightCol
	case rightAlias == base.Alias && leftAlias == j.Table.Alias:
		return rightCol, leftCol
	case rightAlias == j.Table.Alias:
		return j.On.Left, rightCol
	case leftAlias == j.Table.Alias:
		return j.On.Right, leftCol
	default:
		// Neither side's prefix matches a known alias; fall back to the
		// fully-qualified strings.
		return j.On.Left, j.On.Right
	}
}

func splitAlias(qualified string) (alias, column string) {
	alias, column, ok := strings.Cut(qualified, ".")
	if !ok {
		return "", qualified
	}
	return alias, column
}

func unwindStage(j lqr.Join) bson.M {
	if j.Type == lqr.LeftJoin {
		return bson.M{"$unwind": bson.M{"path": "$" + j.Table.Alias, "preserveNullAndEmptyArrays": true}}
	}
	return bson.M{"$unwind": "$" + j.Table.Alias}
}

// projectStage maps each projection item to its source field. A
// non-aliased item keeps its dotted name as the key, preserving the
// user's requested names in the output.
func projectStage(base lqr.TableRef, items []lqr.ProjectionItem) bson.M {
	fields := bson.M{}
	for _, item := range items {
		alias, field := splitAlias(item.Name)
		var value string
		if alias == base.Alias || alias == "" {
			value = "$" + field
		} else {
			value = "$" + alias + "." + field
		}
		key := item.Name
		if item.Alias != "" {
			key = item.Alias
		}
		fields[key] = value
	}
	return bson.M{"$project": fields}
}

// groupStage builds the $group stage: _id from the group keys, one
// accumulator per aggregate projection item.
func groupStage(keys []string, items []lqr.ProjectionItem) bson.M {
	id := bson.M{}
	for _, key := range keys {
		id[key] = "$" + key
	}

	doc := bson.M{"_id": id}
	for _, item := range items {
		if item.AggregationFunction == "" {
			continue
		}
		key := item.Alias
		if key == "" {
			key = strings.ToLower(item.AggregationFunction) + "_" + item.Name
		}
		doc[key] = aggregateExpr(item)
	}
	return bson.M{"$group": doc}
}

func aggregateExpr(item lqr.ProjectionItem) bson.M {
	switch item.AggregationFunction {
	case "COUNT":
		return bson.M{"$sum": 1}
	case "SUM":
		return bson.M{"$sum": "$" + item.Name}
	case "AVG":
		return bson.M{"$avg": "$" + item.Name}
	case "MIN":
		return bson.M{"$min": "$" + item.Name}
	case "MAX":
		return bson.M{"$max": "$" + item.Name}
	default:
		return bson.M{"$sum": 1}
	}
}

// havingStage emits a $match on the aggregate's alias (or its
// synthesized name), using the same operator table as WHERE.
func havingStage(h *lqr.HavingLeaf, items []lqr.ProjectionItem) (bson.M, error) {
	alias := strings.ToLower(h.AggregationFunction) + "_" + h.Column
	for _, item := range items {
		if item.AggregationFunction == h.AggregationFunction && item.Name == h.Column && item.Alias != "" {
			alias = item.Alias
			break
		}
	}
	leaf := &lqr.Condition{Kind: lqr.CondLeaf, Column: alias, Operator: h.Operator, Value: h.Value}
	filter, err := translateLeaf(leaf)
	if err != nil {
		return nil, uniquery.TranslationErrorf("HAVING: %v", err)
	}
	return bson.M{"$match": filter}, nil
}
