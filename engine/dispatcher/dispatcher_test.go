package dispatcher_test

import (
	"testing"

	"github.com/deepakr2k1/uniquery/engine/dispatcher"
	"github.com/deepakr2k1/uniquery/engine/translator/mql"
	"github.com/deepakr2k1/uniquery/uniquery"

	"github.com/stretchr/testify/require"
)

// fakeDriver records the last query handed to Run so tests can assert
// on the exact value the façade produced, without a real database.
type fakeDriver struct {
	lastQuery any
	rows      []map[string]any
	err       error
}

func (f *fakeDriver) Run(query any) ([]map[string]any, error) {
	f.lastQuery = query
	return f.rows, f.err
}

func (f *fakeDriver) Close() error { return nil }

func TestExecute_MQLTranslation(t *testing.T) {
	driver := &fakeDriver{rows: []map[string]any{{"name": "Alice"}}}
	e := dispatcher.New(dispatcher.MQL, driver, nil)

	rows, err := e.Execute("SELECT name FROM employees WHERE id = 1")
	require.NoError(t, err)
	require.Equal(t, driver.rows, rows)

	op, ok := driver.lastQuery.(*mql.Op)
	require.True(t, ok)
	require.Equal(t, mql.Find, op.Operation)
}

func TestExecute_CypherTranslation(t *testing.T) {
	driver := &fakeDriver{}
	e := dispatcher.New(dispatcher.Cypher, driver, nil)

	_, err := e.Execute("SELECT p.name FROM Person p")
	require.NoError(t, err)

	text, ok := driver.lastQuery.(string)
	require.True(t, ok)
	require.Equal(t, "MATCH (p:Person)\nRETURN p.name;", text)
}

func TestExecute_SQLPassThrough(t *testing.T) {
	driver := &fakeDriver{}
	e := dispatcher.New(dispatcher.SQL, driver, nil)

	sql := "SELECT name FROM employees"
	_, err := e.Execute(sql)
	require.NoError(t, err)
	require.Equal(t, sql, driver.lastQuery)
}

func TestExecute_NativeModeMQLParsesJSON(t *testing.T) {
	driver := &fakeDriver{}
	e := dispatcher.New(dispatcher.MQL, driver, nil)
	e.SetNative(true)

	_, err := e.Execute(`{"operation":"FIND","collection":"employees"}`)
	require.NoError(t, err)

	op, ok := driver.lastQuery.(*mql.Op)
	require.True(t, ok)
	require.Equal(t, mql.Find, op.Operation)
	require.Equal(t, "employees", op.Collection)
}

func TestExecute_NativeModeCypherPassesThrough(t *testing.T) {
	driver := &fakeDriver{}
	e := dispatcher.New(dispatcher.Cypher, driver, nil)
	e.SetNative(true)

	raw := "MATCH (p:Person) RETURN p;"
	_, err := e.Execute(raw)
	require.NoError(t, err)
	require.Equal(t, raw, driver.lastQuery)
}

func TestExecute_DriverErrorWrapsAsExecutionError(t *testing.T) {
	driver := &fakeDriver{err: assertError{}}
	e := dispatcher.New(dispatcher.SQL, driver, nil)

	_, err := e.Execute("SELECT name FROM employees")
	require.Error(t, err)
	require.True(t, uniquery.Is(err, uniquery.KindExecutionError))
}

type assertError struct{}

func (assertError) Error() string { return "boom" }

func TestSetOutputIsPureState(t *testing.T) {
	driver := &fakeDriver{}
	e := dispatcher.New(dispatcher.SQL, driver, nil)
	e.SetOutput(dispatcher.OutputJSON)
	require.Equal(t, dispatcher.OutputJSON, e.Output())
}
