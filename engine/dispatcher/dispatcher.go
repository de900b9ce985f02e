// Package dispatcher composes the parser and the two generators behind
// a single query engine façade: one entry point that classifies the
// input, picks a code path by dialect, and hands the result to a
// driver.
package dispatcher

import (
	"encoding/json"
	"fmt"

	"github.com/deepakr2k1/uniquery/engine/parser"
	"github.com/deepakr2k1/uniquery/engine/translator/cypher"
	"github.com/deepakr2k1/uniquery/engine/translator/mql"
	"github.com/deepakr2k1/uniquery/uniquery"

	"go.uber.org/zap"
)

// Dialect is one of the three target query languages.
type Dialect string

const (
	SQL    Dialect = "sql"
	MQL    Dialect = "mql"
	Cypher Dialect = "cypher"
)

// OutputFormat is a pure presentation flag; it never changes
// translation semantics.
type OutputFormat string

const (
	OutputTable OutputFormat = "table"
	OutputJSON  OutputFormat = "json"
	OutputRaw   OutputFormat = "raw"
)

// Driver is the contract a database adapter satisfies. Engine only
// ever calls Run; open/close are connection lifecycle concerns owned
// by the CLI session.
type Driver interface {
	Run(query any) ([]map[string]any, error)
	Close() error
}

// Engine is the query engine façade. Zero value is not usable; build
// one with New.
type Engine struct {
	dialect Dialect
	driver  Driver
	log     *zap.Logger

	native bool
	output OutputFormat
}

// New builds an Engine for the given dialect and driver. A nil logger
// defaults to a no-op logger.
func New(dialect Dialect, driver Driver, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{dialect: dialect, driver: driver, log: log, output: OutputTable}
}

// SetNative toggles native-mode pass-through.
func (e *Engine) SetNative(native bool) {
	e.native = native
}

// SetOutput sets the output formatter's display mode. Pure UI state;
// does not affect translation.
func (e *Engine) SetOutput(format OutputFormat) {
	e.output = format
}

// Output returns the currently configured output format.
func (e *Engine) Output() OutputFormat {
	return e.output
}

// Execute runs the full pipeline: parse -> translate -> driver.Run, or
// the native-mode bypass.
func (e *Engine) Execute(input string) ([]map[string]any, error) {
	query, err := e.prepare(input)
	if err != nil {
		e.log.Warn("query preparation failed", zap.String("dialect", string(e.dialect)), zap.Bool("native", e.native), zap.Error(err))
		return nil, err
	}

	e.log.Debug("executing query", zap.String("dialect", string(e.dialect)))
	rows, err := e.driver.Run(query)
	if err != nil {
		e.log.Warn("driver execution failed", zap.Error(err))
		return nil, uniquery.ExecutionErrorf(err, "driver run failed")
	}
	return rows, nil
}

// prepare implements steps 1-2: native-mode bypass, or parse+translate.
func (e *Engine) prepare(input string) (any, error) {
	if e.native {
		return e.prepareNative(input)
	}

	e.log.Debug("parsing query", zap.String("dialect", string(e.dialect)))
	q, err := parser.Parse(input)
	if err != nil {
		return nil, err
	}

	switch e.dialect {
	case SQL:
		return input, nil
	case MQL:
		e.log.Debug("translating to MQL")
		return mql.Translate(q)
	case Cypher:
		e.log.Debug("translating to Cypher")
		return cypher.Translate(q)
	default:
		return nil, uniquery.TranslationErrorf("unknown target dialect %q", e.dialect)
	}
}

// prepareNative implements step 1: MQL native mode parses the input
// text as JSON into a MongoOp; Cypher/SQL native mode passes the text
// through untouched.
func (e *Engine) prepareNative(input string) (any, error) {
	if e.dialect != MQL {
		return input, nil
	}
	var op mql.Op
	if err := json.Unmarshal([]byte(input), &op); err != nil {
		return nil, uniquery.ParseErrorf("native MQL input is not valid JSON: %v", err)
	}
	return &op, nil
}

// String renders the engine's mode flags for diagnostics, e.g. the
// REPL's "info" command.
func (e *Engine) String() string {
	return fmt.Sprintf("uniquery engine: dialect=%s native=%t output=%s", e.dialect, e.native, e.output)
}
