// Package mql translates an LQR value into a MongoOp: a structured
// value, not a JSON string. Mongo-shaped leaves are built with
// bson.M/bson.D, the idiomatic Go representation of a document, rather
// than a hand-rolled map type.
package mql

import "go.mongodb.org/mongo-driver/bson"

// Operation tags the MongoOp variant.
type Operation string

const (
	CreateDatabase   Operation = "CREATE_DATABASE"
	UseDatabase      Operation = "USE_DATABASE"
	DropDatabase     Operation = "DROP_DATABASE"
	ShowDatabases    Operation = "SHOW_DATABASES"
	CreateCollection Operation = "CREATE_COLLECTION"
	DropCollection   Operation = "DROP_COLLECTION"
	RenameCollection Operation = "RENAME_COLLECTION"
	ShowCollections  Operation = "SHOW_COLLECTIONS"
	ShowCollection   Operation = "SHOW_COLLECTION"
	CreateIndex      Operation = "CREATE_INDEX"
	DropIndex        Operation = "DROP_INDEX"
	InsertData       Operation = "INSERT_DATA"
	UpdateData       Operation = "UPDATE_DATA"
	DeleteData       Operation = "DELETE_DATA"
	Find             Operation = "FIND"
	Aggregate        Operation = "AGGREGATE"
)

// Op is the MongoOp value: only the fields relevant to Operation are
// populated. JSON tags give native-mode input, which arrives as JSON
// text, a field naming to target.
type Op struct {
	Operation Operation `json:"operation"`

	DatabaseName string `json:"database_name,omitempty"` // *_DATABASE ops

	Collection   string   `json:"collection,omitempty"`    // *_COLLECTION, CREATE_INDEX/DROP_INDEX, FIND, AGGREGATE
	NewName      string   `json:"new_name,omitempty"`      // RENAME_COLLECTION
	IndexName    string   `json:"index_name,omitempty"`    // CREATE_INDEX/DROP_INDEX
	IndexColumns []string `json:"index_columns,omitempty"` // CREATE_INDEX

	Documents []bson.M `json:"documents,omitempty"` // INSERT_DATA
	Updates   bson.M   `json:"updates,omitempty"`   // UPDATE_DATA: column -> value
	Filter    bson.M   `json:"filter,omitempty"`    // UPDATE_DATA/DELETE_DATA/FIND

	Projection bson.M `json:"projection,omitempty"` // FIND; nil means "no projection" (SELECT *)
	Sort       bson.D `json:"sort,omitempty"`       // FIND; AGGREGATE uses a $sort stage instead
	Limit      *int64 `json:"limit,omitempty"`      // FIND; AGGREGATE uses a $limit stage instead

	Pipeline []bson.M `json:"pipeline,omitempty"` // AGGREGATE, stages in emission order
}
