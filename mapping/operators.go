// Package mapping holds the small lookup tables the MQL generator
// reads rather than hand-coding operator strings inline.
package mapping

// MongoOperator maps a Condition leaf's comparison operator to its
// MongoDB query operator. Only the six binary comparisons are listed;
// IN, BETWEEN, LIKE, and IS NULL have structural shapes of their own
// and are built directly by the generator rather than through this
// table.
var MongoOperator = map[string]string{
	"=":  "$eq",
	"!=": "$ne",
	">":  "$gt",
	">=": "$gte",
	"<":  "$lt",
	"<=": "$lte",
}
