package drivers

import (
	"context"
	"fmt"

	"github.com/deepakr2k1/uniquery/engine/translator/mql"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Document wraps a *mongo.Database behind the Driver contract. Run
// operates on the structured mql.Op value rather than a JSON query
// string decoded ad hoc per call.
type Document struct {
	db  *mongo.Database
	ctx context.Context
}

// WrapDocument wraps an already-open database handle.
func WrapDocument(db *mongo.Database) *Document {
	return &Document{db: db, ctx: context.Background()}
}

func (d *Document) WithContext(ctx context.Context) *Document {
	return &Document{db: d.db, ctx: ctx}
}

// Run dispatches on op.Operation, the same shape engine/translator/mql
// produces.
func (d *Document) Run(query any) ([]map[string]any, error) {
	op, ok := query.(*mql.Op)
	if !ok {
		return nil, fmt.Errorf("document driver expects a *mql.Op, got %T", query)
	}

	switch op.Operation {
	case mql.Find:
		return d.find(op)
	case mql.Aggregate:
		return d.aggregate(op)
	case mql.InsertData:
		return d.insert(op)
	case mql.UpdateData:
		return d.update(op)
	case mql.DeleteData:
		return d.delete(op)
	case mql.CreateCollection:
		return nil, d.db.CreateCollection(d.ctx, op.Collection)
	case mql.DropCollection:
		return nil, d.db.Collection(op.Collection).Drop(d.ctx)
	case mql.RenameCollection:
		return d.renameCollection(op)
	case mql.ShowCollections:
		return d.showCollections()
	case mql.ShowCollection:
		return d.showCollection(op)
	case mql.CreateIndex:
		return d.createIndex(op)
	case mql.DropIndex:
		_, err := d.db.Collection(op.Collection).Indexes().DropOne(d.ctx, op.IndexName)
		return nil, err
	case mql.CreateDatabase, mql.UseDatabase:
		// Mongo databases are created implicitly on first write; nothing
		// to do for CREATE/USE beyond acknowledging the name.
		return nil, nil
	case mql.DropDatabase:
		return nil, d.db.Drop(d.ctx)
	case mql.ShowDatabases:
		return d.showDatabases()
	default:
		return nil, fmt.Errorf("unsupported MongoOp operation %q", op.Operation)
	}
}

func (d *Document) Close() error {
	return nil
}

func (d *Document) find(op *mql.Op) ([]map[string]any, error) {
	opts := options.Find()
	if op.Projection != nil {
		opts.SetProjection(op.Projection)
	}
	if len(op.Sort) > 0 {
		opts.SetSort(op.Sort)
	}
	if op.Limit != nil {
		opts.SetLimit(*op.Limit)
	}

	cursor, err := d.db.Collection(op.Collection).Find(d.ctx, op.Filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find error: %w", err)
	}
	defer cursor.Close(d.ctx)
	return decodeCursor(d.ctx, cursor)
}

func (d *Document) aggregate(op *mql.Op) ([]map[string]any, error) {
	cursor, err := d.db.Collection(op.Collection).Aggregate(d.ctx, op.Pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate error: %w", err)
	}
	defer cursor.Close(d.ctx)
	return decodeCursor(d.ctx, cursor)
}

func (d *Document) insert(op *mql.Op) ([]map[string]any, error) {
	docs := make([]any, len(op.Documents))
	for i, doc := range op.Documents {
		docs[i] = doc
	}
	result, err := d.db.Collection(op.Collection).InsertMany(d.ctx, docs)
	if err != nil {
		return nil, fmt.Errorf("insert error: %w", err)
	}
	return []map[string]any{{
		"inserted_ids":  result.InsertedIDs,
		"rows_affected": len(result.InsertedIDs),
	}}, nil
}

func (d *Document) update(op *mql.Op) ([]map[string]any, error) {
	result, err := d.db.Collection(op.Collection).UpdateMany(d.ctx, op.Filter, bson.M{"$set": op.Updates})
	if err != nil {
		return nil, fmt.Errorf("update error: %w", err)
	}
	return []map[string]any{{"rows_affected": result.ModifiedCount}}, nil
}

func (d *Document) delete(op *mql.Op) ([]map[string]any, error) {
	result, err := d.db.Collection(op.Collection).DeleteMany(d.ctx, op.Filter)
	if err != nil {
		return nil, fmt.Errorf("delete error: %w", err)
	}
	return []map[string]any{{"rows_affected": result.DeletedCount}}, nil
}

func (d *Document) renameCollection(op *mql.Op) ([]map[string]any, error) {
	cmd := bson.D{
		{Key: "renameCollection", Value: d.db.Name() + "." + op.Collection},
		{Key: "to", Value: d.db.Name() + "." + op.NewName},
	}
	err := d.db.Client().Database("admin").RunCommand(d.ctx, cmd).Err()
	return nil, err
}

func (d *Document) showCollections() ([]map[string]any, error) {
	names, err := d.db.ListCollectionNames(d.ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	rows := make([]map[string]any, 0, len(names))
	for _, n := range names {
		rows = append(rows, map[string]any{"name": n})
	}
	return rows, nil
}

func (d *Document) showCollection(op *mql.Op) ([]map[string]any, error) {
	names, err := d.db.ListCollectionNames(d.ctx, bson.M{"name": op.Collection})
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("collection %q not found", op.Collection)
	}
	return []map[string]any{{"name": names[0]}}, nil
}

func (d *Document) createIndex(op *mql.Op) ([]map[string]any, error) {
	keys := bson.D{}
	for _, col := range op.IndexColumns {
		keys = append(keys, bson.E{Key: col, Value: 1})
	}
	model := mongo.IndexModel{Keys: keys}
	if op.IndexName != "" {
		model.Options = options.Index().SetName(op.IndexName)
	}
	name, err := d.db.Collection(op.Collection).Indexes().CreateOne(d.ctx, model)
	if err != nil {
		return nil, err
	}
	return []map[string]any{{"name": name}}, nil
}

func (d *Document) showDatabases() ([]map[string]any, error) {
	names, err := d.db.Client().ListDatabaseNames(d.ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	rows := make([]map[string]any, 0, len(names))
	for _, n := range names {
		rows = append(rows, map[string]any{"name": n})
	}
	return rows, nil
}

func decodeCursor(ctx context.Context, cursor *mongo.Cursor) ([]map[string]any, error) {
	var results []map[string]any
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			continue
		}
		row := make(map[string]any, len(doc))
		for k, v := range doc {
			row[k] = v
		}
		results = append(results, row)
	}
	return results, cursor.Err()
}
