package parser_test

import (
	"testing"

	"github.com/deepakr2k1/uniquery/engine/lqr"
	"github.com/deepakr2k1/uniquery/engine/parser"
	"github.com/deepakr2k1/uniquery/uniquery"

	"github.com/stretchr/testify/require"
)

func TestParse_CreateDatabase(t *testing.T) {
	q, err := parser.Parse("CREATE DATABASE shop")
	require.NoError(t, err)
	require.Equal(t, lqr.CreateDatabase, q.Operation)
	require.Equal(t, "shop", q.DatabaseName)
}

func TestParse_ShowTables(t *testing.T) {
	q, err := parser.Parse("SHOW TABLES")
	require.NoError(t, err)
	require.Equal(t, lqr.ShowTables, q.Operation)
}

func TestParse_ShowTableName(t *testing.T) {
	q, err := parser.Parse("SHOW TABLE employees")
	require.NoError(t, err)
	require.Equal(t, lqr.ShowTable, q.Operation)
	require.Equal(t, "employees", q.TableName)
}

func TestParse_TypoGetsKeywordHint(t *testing.T) {
	_, err := parser.Parse("SELCT * FROM employees")
	require.Error(t, err)
	require.True(t, uniquery.Is(err, uniquery.KindParseError))
	require.Contains(t, err.Error(), "SELECT")
}

func TestParse_CreateTableWithForeignKey(t *testing.T) {
	q, err := parser.Parse(`CREATE TABLE orders (
		id INT PRIMARY KEY,
		customer_id INT NOT NULL,
		FOREIGN KEY (customer_id) REFERENCES customers(id)
	)`)
	require.NoError(t, err)
	require.Equal(t, lqr.CreateTable, q.Operation)
	require.Equal(t, "orders", q.TableName)
	require.Len(t, q.Columns, 2)
	require.Len(t, q.Constraints, 1)
	require.Equal(t, []string{"customer_id"}, q.Constraints[0].Columns)
	require.Equal(t, "customers", q.Constraints[0].RefTable)
}

func TestParse_AlterTableRenameLiftsToTopLevel(t *testing.T) {
	q, err := parser.Parse("ALTER TABLE employees RENAME TO staff")
	require.NoError(t, err)
	require.Equal(t, lqr.RenameTable, q.Operation)
	require.Equal(t, "employees", q.OldName)
	require.Equal(t, "staff", q.NewName)
}

func TestParse_InsertMultiRow(t *testing.T) {
	q, err := parser.Parse("INSERT INTO employees (id, name) VALUES (1, 'Alice'), (2, 'Bob')")
	require.NoError(t, err)
	require.Equal(t, lqr.InsertData, q.Operation)
	require.Equal(t, []string{"id", "name"}, q.InsertColumns)
	require.Len(t, q.Values, 2)
	for _, row := range q.Values {
		require.Len(t, row, len(q.InsertColumns))
	}
}

func TestParse_UpdateAlwaysPopulatesFilter(t *testing.T) {
	q, err := parser.Parse("UPDATE employees SET salary = 6000 WHERE id = 1")
	require.NoError(t, err)
	require.Equal(t, lqr.UpdateData, q.Operation)
	require.NotNil(t, q.Filter)
}

func TestParse_SelectAssemblyOrder(t *testing.T) {
	q, err := parser.Parse(`
		SELECT department, SUM(salary)
		FROM employees
		WHERE salary > 1000
		GROUP BY department
		HAVING SUM(salary) > 5000
		ORDER BY department
		LIMIT 10
	`)
	require.NoError(t, err)
	require.Equal(t, lqr.Select, q.Operation)
	require.NotNil(t, q.Filter)
	require.Equal(t, []string{"department"}, q.Aggregate)
	require.NotNil(t, q.Having)
	require.Equal(t, "SUM", q.Having.AggregationFunction)
	require.Len(t, q.OrderBy, 1)
	require.NotNil(t, q.Limit)
	require.Equal(t, 10, *q.Limit)
}

func TestParse_JoinOnEqualityOnly(t *testing.T) {
	q, err := parser.Parse("SELECT e.id FROM employees e JOIN departments d ON e.department_id = d.id")
	require.NoError(t, err)
	require.Len(t, q.Joins, 1)
	require.Equal(t, lqr.InnerJoin, q.Joins[0].Type)
	require.NotNil(t, q.Joins[0].On)
	require.Equal(t, "e.department_id", q.Joins[0].On.Left)
	require.Equal(t, "d.id", q.Joins[0].On.Right)
}

func TestParse_CompoundJoinOnIsUnsupported(t *testing.T) {
	_, err := parser.Parse("SELECT e.id FROM employees e JOIN departments d ON e.department_id = d.id AND e.active = 1")
	require.Error(t, err)
	require.True(t, uniquery.Is(err, uniquery.KindUnsupportedJoinOn))
}

func TestParse_CompoundHavingIsUnsupported(t *testing.T) {
	_, err := parser.Parse("SELECT department, SUM(salary) FROM employees GROUP BY department HAVING SUM(salary) > 1000 AND COUNT(*) > 1")
	require.Error(t, err)
	require.True(t, uniquery.Is(err, uniquery.KindUnsupportedHaving))
}

func TestParse_RelationJoinForCypher(t *testing.T) {
	q, err := parser.Parse("SELECT p.name FROM Person p JOIN Company c ON RELATION('WORKS_AT', w)")
	require.NoError(t, err)
	require.Len(t, q.Joins, 1)
	require.NotNil(t, q.Joins[0].Relation)
	require.Equal(t, "w", q.Joins[0].Relation.Relationship)
	require.Equal(t, "WORKS_AT", q.Joins[0].Relation.Label)
}

func TestParse_NotInWrapsGenericNot(t *testing.T) {
	q, err := parser.Parse("SELECT * FROM employees WHERE department NOT IN ('Sales', 'Marketing')")
	require.NoError(t, err)
	require.Equal(t, lqr.CondNot, q.Filter.Kind)
	require.Equal(t, lqr.CondLeaf, q.Filter.Operand.Kind)
	require.Equal(t, "IN", q.Filter.Operand.Operator)
}

func TestParse_NestedAndOrPreservesShape(t *testing.T) {
	q, err := parser.Parse("SELECT * FROM employees WHERE (department = 'Marketing' OR department = 'Sales') AND salary > 5000")
	require.NoError(t, err)
	require.Equal(t, lqr.CondAnd, q.Filter.Kind)
	require.Len(t, q.Filter.Operands, 2)
	require.Equal(t, lqr.CondOr, q.Filter.Operands[0].Kind)
	require.Len(t, q.Filter.Operands[0].Operands, 2)
}

func TestParse_UnsupportedStatement(t *testing.T) {
	_, err := parser.Parse("EXPLAIN SELECT * FROM employees")
	require.Error(t, err)
	require.True(t, uniquery.Is(err, uniquery.KindUnsupportedStatement))
}

func TestParse_Deterministic(t *testing.T) {
	a, err := parser.Parse("SELECT name FROM employees WHERE id = 1")
	require.NoError(t, err)
	b, err := parser.Parse("SELECT name FROM employees WHERE id = 1")
	require.NoError(t, err)
	require.Equal(t, a, b)
}
