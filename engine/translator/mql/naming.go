package mql

import "github.com/jinzhu/inflection"

// collection derives a MongoDB collection name from a SQL table name,
// pluralizing so singular model-style table names land on conventional
// collection names. Already-plural names pass through unchanged.
func collection(table string) string {
	return inflection.Plural(table)
}
