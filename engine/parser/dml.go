package parser

import (
	"github.com/deepakr2k1/uniquery/engine/lqr"
	"github.com/deepakr2k1/uniquery/uniquery"

	"github.com/pingcap/tidb/parser/ast"
)

// convertInsert extracts the column list and each row of VALUES as its
// own row-vector, preserving row order for multi-row inserts.
func convertInsert(stmt *ast.InsertStmt) (*lqr.Query, error) {
	table, ok := tableRefFromNode(stmt.Table.TableRefs.Left)
	if !ok {
		return nil, uniquery.ParseErrorf("INSERT target must be a single table")
	}

	columns := make([]string, 0, len(stmt.Columns))
	for _, col := range stmt.Columns {
		columns = append(columns, col.Name.O)
	}

	if len(stmt.Lists) == 0 {
		return nil, uniquery.ParseErrorf("INSERT without VALUES is not supported")
	}

	values := make([][]any, 0, len(stmt.Lists))
	for _, row := range stmt.Lists {
		rowValues := make([]any, 0, len(row))
		for _, expr := range row {
			rowValues = append(rowValues, literalValue(expr))
		}
		values = append(values, rowValues)
	}

	return &lqr.Query{
		Operation:     lqr.InsertData,
		TableName:     table.Name,
		InsertColumns: columns,
		Values:        values,
	}, nil
}

// convertUpdate turns SET assignments into parallel columns/values
// arrays; a WHERE clause, when present, always populates the Condition
// filter.
func convertUpdate(stmt *ast.UpdateStmt) (*lqr.Query, error) {
	table, ok := tableRefFromNode(stmt.TableRefs.TableRefs.Left)
	if !ok {
		return nil, uniquery.ParseErrorf("UPDATE target must be a single table")
	}

	q := &lqr.Query{Operation: lqr.UpdateData, TableName: table.Name}
	for _, assign := range stmt.List {
		q.UpdateColumns = append(q.UpdateColumns, assign.Column.Name.O)
		q.UpdateValues = append(q.UpdateValues, literalValue(assign.Expr))
	}

	if stmt.Where != nil {
		cond, err := buildCondition(stmt.Where)
		if err != nil {
			return nil, err
		}
		q.Filter = cond
	}

	return q, nil
}

// convertDelete extracts the target table and the optional WHERE filter.
func convertDelete(stmt *ast.DeleteStmt) (*lqr.Query, error) {
	table, ok := tableRefFromNode(stmt.TableRefs.TableRefs.Left)
	if !ok {
		return nil, uniquery.ParseErrorf("DELETE target must be a single table")
	}

	q := &lqr.Query{Operation: lqr.DeleteData, TableName: table.Name}

	if stmt.Where != nil {
		cond, err := buildCondition(stmt.Where)
		if err != nil {
			return nil, err
		}
		q.Filter = cond
	}

	return q, nil
}
