package mql

import (
	"github.com/deepakr2k1/uniquery/engine/lqr"
	"github.com/deepakr2k1/uniquery/uniquery"

	"go.mongodb.org/mongo-driver/bson"
)

// Translate converts an LQR value into its MongoOp equivalent.
func Translate(q *lqr.Query) (*Op, error) {
	switch q.Operation {
	case lqr.CreateDatabase:
		return &Op{Operation: CreateDatabase, DatabaseName: q.DatabaseName}, nil
	case lqr.UseDatabase:
		return &Op{Operation: UseDatabase, DatabaseName: q.DatabaseName}, nil
	case lqr.DropDatabase:
		return &Op{Operation: DropDatabase, DatabaseName: q.DatabaseName}, nil
	case lqr.ShowDatabases:
		return &Op{Operation: ShowDatabases}, nil

	case lqr.CreateTable:
		return &Op{Operation: CreateCollection, Collection: collection(q.TableName)}, nil
	case lqr.AlterTable:
		return nil, uniquery.TranslationErrorf("ALTER_TABLE has no MongoDB equivalent: not supported")
	case lqr.DropTable:
		return &Op{Operation: DropCollection, Collection: collection(q.TableName)}, nil
	case lqr.RenameTable:
		return &Op{Operation: RenameCollection, Collection: collection(q.OldName), NewName: collection(q.NewName)}, nil
	case lqr.ShowTables:
		return &Op{Operation: ShowCollections}, nil
	case lqr.ShowTable:
		return &Op{Operation: ShowCollection, Collection: collection(q.TableName)}, nil

	case lqr.CreateIndex:
		return &Op{Operation: CreateIndex, Collection: collection(q.TableName), IndexName: q.IndexName, IndexColumns: q.IndexColumns}, nil
	case lqr.DropIndex:
		return &Op{Operation: DropIndex, Collection: collection(q.TableName), IndexName: q.IndexName}, nil

	case lqr.InsertData:
		return translateInsert(q)
	case lqr.UpdateData:
		return translateUpdate(q)
	case lqr.DeleteData:
		return translateDelete(q)

	case lqr.Select:
		return translateSelect(q)

	default:
		return nil, uniquery.TranslationErrorf("unsupported LQR operation %q", q.Operation)
	}
}

func translateInsert(q *lqr.Query) (*Op, error) {
	docs := make([]bson.M, 0, len(q.Values))
	for _, row := range q.Values {
		doc := bson.M{}
		for i, col := range q.InsertColumns {
			if i < len(row) {
				doc[col] = row[i]
			}
		}
		docs = append(docs, doc)
	}
	return &Op{Operation: InsertData, Collection: collection(q.TableName), Documents: docs}, nil
}

func translateUpdate(q *lqr.Query) (*Op, error) {
	updates := bson.M{}
	for i, col := range q.UpdateColumns {
		if i < len(q.UpdateValues) {
			updates[col] = q.UpdateValues[i]
		}
	}
	filter, err := translateCondition(q.Filter)
	if err != nil {
		return nil, err
	}
	return &Op{Operation: UpdateData, Collection: collection(q.TableName), Updates: updates, Filter: filter}, nil
}

func translateDelete(q *lqr.Query) (*Op, error) {
	filter, err := translateCondition(q.Filter)
	if err != nil {
		return nil, err
	}
	return &Op{Operation: DeleteData, Collection: collection(q.TableName), Filter: filter}, nil
}

// translateSelect picks the output shape: joins, GROUP BY, or any
// aggregate projection force an AGGREGATE pipeline, else FIND.
func translateSelect(q *lqr.Query) (*Op, error) {
	if len(q.Joins) > 0 || len(q.Aggregate) > 0 || hasAggregateProjection(q.Projection) {
		return translateAggregate(q)
	}
	return translateFind(q)
}

func hasAggregateProjection(items []lqr.ProjectionItem) bool {
	for _, item := range items {
		if item.AggregationFunction != "" {
			return true
		}
	}
	return false
}

func translateFind(q *lqr.Query) (*Op, error) {
	filter, err := translateCondition(q.Filter)
	if err != nil {
		return nil, err
	}

	op := &Op{
		Operation:  Find,
		Collection: collection(q.Table.Name),
		Filter:     filter,
		Projection: projectionMap(q.Projection),
	}

	if len(q.OrderBy) > 0 {
		op.Sort = sortSpec(q.OrderBy)
	}
	if q.Limit != nil {
		n := int64(*q.Limit)
		op.Limit = &n
	}
	return op, nil
}

// projectionMap returns nil for the bare "*" projection, otherwise a
// field -> 1 map keyed by alias when present.
func projectionMap(items []lqr.ProjectionItem) bson.M {
	if len(items) == 1 && items[0].Name == "*" && items[0].Alias == "" {
		return nil
	}
	proj := bson.M{}
	for _, item := range items {
		key := item.Alias
		if key == "" {
			key = item.Name
		}
		proj[key] = 1
	}
	return proj
}

func sortSpec(items []lqr.OrderItem) bson.D {
	sort := make(bson.D, 0, len(items))
	for _, item := range items {
		dir := 1
		if item.Order == lqr.Desc {
			dir = -1
		}
		sort = append(sort, bson.E{Key: item.Column, Value: dir})
	}
	return sort
}
