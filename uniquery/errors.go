// Package uniquery holds the error taxonomy shared by the parser, the
// target generators, and the façade.
package uniquery

import (
	"fmt"
	"strings"
)

// ErrorKind tags which stage of the pipeline raised an Error and why.
type ErrorKind string

const (
	KindParseError           ErrorKind = "PARSE_ERROR"
	KindUnsupportedStatement ErrorKind = "UNSUPPORTED_STATEMENT"
	KindUnsupportedJoinOn    ErrorKind = "UNSUPPORTED_JOIN_ON"
	KindUnsupportedHaving    ErrorKind = "UNSUPPORTED_HAVING"
	KindUnsupportedForCypher ErrorKind = "UNSUPPORTED_FOR_CYPHER"
	KindTranslationError     ErrorKind = "TRANSLATION_ERROR"
	KindConnectionError      ErrorKind = "CONNECTION_ERROR"
	KindExecutionError       ErrorKind = "EXECUTION_ERROR"
)

// Error is the single error type every pipeline stage raises. Each
// carries a kind, a message, and an optional cause; Cause is nil for
// the purely structural kinds (ParseError, UnsupportedStatement, ...)
// and set for the two external kinds (ConnectionError, ExecutionError).
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

func newf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// ParseErrorf reports a SQL text that does not fit the supported surface.
func ParseErrorf(format string, args ...any) *Error {
	return newf(KindParseError, format, args...)
}

// UnsupportedStatementf reports a recognized root node outside scope.
func UnsupportedStatementf(format string, args ...any) *Error {
	return newf(KindUnsupportedStatement, format, args...)
}

// UnsupportedJoinOnf reports a JOIN ON clause that is not a single
// equality between two qualified columns.
func UnsupportedJoinOnf(format string, args ...any) *Error {
	return newf(KindUnsupportedJoinOn, format, args...)
}

// UnsupportedHavingf reports a HAVING clause that is compound or
// references a non-aggregate.
func UnsupportedHavingf(format string, args ...any) *Error {
	return newf(KindUnsupportedHaving, format, args...)
}

// UnsupportedForCypherf reports an LQR shape the Cypher generator
// cannot express (GROUP BY, HAVING, projection aggregates).
func UnsupportedForCypherf(format string, args ...any) *Error {
	return newf(KindUnsupportedForCypher, format, args...)
}

// TranslationErrorf reports a valid LQR the target dialect cannot express.
func TranslationErrorf(format string, args ...any) *Error {
	return newf(KindTranslationError, format, args...)
}

// ConnectionErrorf wraps a driver open failure.
func ConnectionErrorf(cause error, format string, args ...any) *Error {
	return &Error{Kind: KindConnectionError, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// ExecutionErrorf wraps a driver run failure.
func ExecutionErrorf(cause error, format string, args ...any) *Error {
	return &Error{Kind: KindExecutionError, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether err is a *Error of the given kind.
func Is(err error, kind ErrorKind) bool {
	var e *Error
	if as, ok := err.(*Error); ok {
		e = as
	} else {
		return false
	}
	return e.Kind == kind
}

// keywords is the set of surface tokens the parser recognizes, used to
// build "did you mean" hints on an unrecognized root statement.
var keywords = []string{
	"SELECT", "INSERT", "UPDATE", "DELETE", "CREATE", "DROP", "ALTER",
	"RENAME", "USE", "SHOW", "FROM", "WHERE", "JOIN", "INNER", "LEFT",
	"RIGHT", "FULL", "ON", "GROUP", "HAVING", "ORDER", "LIMIT", "DISTINCT",
	"AND", "OR", "NOT", "IN", "LIKE", "BETWEEN", "IS", "NULL", "INDEX",
	"TABLE", "DATABASE", "VALUES", "SET", "COLUMN", "CONSTRAINT",
}

// SuggestKeyword returns the closest recognized keyword to unknown
// (case-insensitive), or "" if nothing is within edit distance 2.
func SuggestKeyword(unknown string) string {
	unknown = strings.ToUpper(unknown)

	best := ""
	bestDist := 3
	for _, kw := range keywords {
		d := levenshtein(unknown, kw)
		if d < bestDist {
			bestDist = d
			best = kw
		}
	}
	return best
}

func levenshtein(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	row := make([]int, len(b)+1)
	for j := range row {
		row[j] = j
	}
	for i := 1; i <= len(a); i++ {
		prev := row[0]
		row[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur := min3(row[j]+1, row[j-1]+1, prev+cost)
			prev = row[j]
			row[j] = cur
		}
	}
	return row[len(b)]
}

func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}
