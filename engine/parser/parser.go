// Package parser turns SQL text into an LQR value. It delegates
// tokenization and tree-building to pingcap/tidb's SQL grammar and
// classifies the resulting root node.
package parser

import (
	"strings"

	"github.com/deepakr2k1/uniquery/engine/lqr"
	"github.com/deepakr2k1/uniquery/uniquery"

	tidbparser "github.com/pingcap/tidb/parser"
	"github.com/pingcap/tidb/parser/ast"
	"github.com/pingcap/tidb/parser/test_driver"
)

// Parse converts one SQL statement into its LQR representation. It is
// a pure function: no I/O, no global state, deterministic for a given
// input string.
func Parse(sql string) (*lqr.Query, error) {
	if q, ok := matchShowCommand(sql); ok {
		return q, nil
	}

	p := tidbparser.New()
	stmts, _, err := p.Parse(sql, "", "")
	if err != nil {
		if hint := rootKeywordHint(sql); hint != "" {
			return nil, uniquery.ParseErrorf("%v (did you mean %s?)", err, hint)
		}
		return nil, uniquery.ParseErrorf("%v", err)
	}
	if len(stmts) == 0 {
		return nil, uniquery.ParseErrorf("empty statement")
	}
	return convert(stmts[0])
}

// matchShowCommand classifies the SHOW family by its trailing tokens.
// "SHOW TABLE <name>" is not part of the MySQL grammar, so the whole
// family is matched here before the grammar engine runs; unrecognized
// SHOW forms fall through to it (and to convertShow for the variants
// it does know).
func matchShowCommand(sql string) (*lqr.Query, bool) {
	fields := strings.Fields(strings.TrimSuffix(strings.TrimSpace(sql), ";"))
	if len(fields) < 2 || !strings.EqualFold(fields[0], "SHOW") {
		return nil, false
	}
	switch {
	case len(fields) == 2 && strings.EqualFold(fields[1], "DATABASES"):
		return &lqr.Query{Operation: lqr.ShowDatabases}, true
	case len(fields) == 2 && strings.EqualFold(fields[1], "TABLES"):
		return &lqr.Query{Operation: lqr.ShowTables}, true
	case len(fields) == 3 && strings.EqualFold(fields[1], "TABLE"):
		return &lqr.Query{Operation: lqr.ShowTable, TableName: fields[2]}, true
	default:
		return nil, false
	}
}

// rootKeywordHint suggests the closest recognized keyword for the
// statement's leading token when the grammar rejects the input.
func rootKeywordHint(sql string) string {
	fields := strings.Fields(strings.TrimSpace(sql))
	if len(fields) == 0 {
		return ""
	}
	hint := uniquery.SuggestKeyword(fields[0])
	if strings.EqualFold(hint, fields[0]) {
		// The leading token already is a keyword; the error is elsewhere.
		return ""
	}
	return hint
}

func convert(stmt ast.StmtNode) (*lqr.Query, error) {
	switch s := stmt.(type) {
	case *ast.SelectStmt:
		return convertSelect(s)
	case *ast.InsertStmt:
		return convertInsert(s)
	case *ast.UpdateStmt:
		return convertUpdate(s)
	case *ast.DeleteStmt:
		return convertDelete(s)

	case *ast.CreateDatabaseStmt:
		return &lqr.Query{Operation: lqr.CreateDatabase, DatabaseName: s.Name.O}, nil
	case *ast.DropDatabaseStmt:
		return &lqr.Query{Operation: lqr.DropDatabase, DatabaseName: s.Name.O}, nil
	case *ast.UseStmt:
		return &lqr.Query{Operation: lqr.UseDatabase, DatabaseName: s.DBName}, nil
	case *ast.ShowStmt:
		return convertShow(s)

	case *ast.CreateTableStmt:
		return convertCreateTable(s)
	case *ast.DropTableStmt:
		return convertDropTable(s)
	case *ast.RenameTableStmt:
		return convertRenameTable(s)
	case *ast.AlterTableStmt:
		return convertAlterTable(s)
	case *ast.CreateIndexStmt:
		return convertCreateIndex(s)
	case *ast.DropIndexStmt:
		return convertDropIndex(s)

	default:
		return nil, uniquery.UnsupportedStatementf("unsupported statement type %T", stmt)
	}
}

// convertShow handles the SHOW variants that reach the grammar engine,
// such as SHOW CREATE TABLE; the bareword forms are matched textually
// in matchShowCommand before parsing.
func convertShow(s *ast.ShowStmt) (*lqr.Query, error) {
	switch s.Tp {
	case ast.ShowDatabases:
		return &lqr.Query{Operation: lqr.ShowDatabases}, nil
	case ast.ShowTables:
		return &lqr.Query{Operation: lqr.ShowTables}, nil
	case ast.ShowCreateTable:
		return &lqr.Query{Operation: lqr.ShowTable, TableName: s.Table.Name.O}, nil
	default:
		return nil, uniquery.UnsupportedStatementf("unsupported SHOW variant %v", s.Tp)
	}
}

// convertSelect builds a SELECT LQR by parsing each clause
// independently and in order, then assembling them.
func convertSelect(stmt *ast.SelectStmt) (*lqr.Query, error) {
	q := &lqr.Query{Operation: lqr.Select, Distinct: stmt.Distinct}

	// 1. Source table + joins.
	if stmt.From == nil {
		return nil, uniquery.ParseErrorf("SELECT without FROM is not supported")
	}
	table, joins, err := extractFrom(stmt.From.TableRefs)
	if err != nil {
		return nil, err
	}
	q.Table = table
	q.Joins = joins

	// 2. Projection.
	if stmt.Fields != nil {
		items, err := buildProjection(stmt.Fields.Fields)
		if err != nil {
			return nil, err
		}
		q.Projection = items
	}

	// 3. Filter (WHERE).
	if stmt.Where != nil {
		cond, err := buildCondition(stmt.Where)
		if err != nil {
			return nil, err
		}
		q.Filter = cond
	}

	// 4. GROUP BY.
	if stmt.GroupBy != nil {
		for _, item := range stmt.GroupBy.Items {
			col, ok := columnName(item.Expr)
			if !ok {
				return nil, uniquery.ParseErrorf("GROUP BY item must be a column reference")
			}
			q.Aggregate = append(q.Aggregate, col)
		}
	}

	// 5. HAVING.
	if stmt.Having != nil {
		having, err := buildHaving(stmt.Having.Expr)
		if err != nil {
			return nil, err
		}
		q.Having = having
	}

	// 6. ORDER BY.
	if stmt.OrderBy != nil {
		for _, item := range stmt.OrderBy.Items {
			col, ok := columnName(item.Expr)
			if !ok {
				return nil, uniquery.ParseErrorf("ORDER BY item must be a column reference")
			}
			order := lqr.Asc
			if item.Desc {
				order = lqr.Desc
			}
			q.OrderBy = append(q.OrderBy, lqr.OrderItem{Column: col, Order: order})
		}
	}

	// 7. LIMIT.
	if stmt.Limit != nil && stmt.Limit.Count != nil {
		if val, ok := stmt.Limit.Count.(*test_driver.ValueExpr); ok {
			n := int(val.Datum.GetInt64())
			q.Limit = &n
		}
	}

	return q, nil
}

// buildProjection produces one ProjectionItem per select expression.
func buildProjection(fields []*ast.SelectField) ([]lqr.ProjectionItem, error) {
	var items []lqr.ProjectionItem
	for _, f := range fields {
		if f.WildCard != nil {
			items = append(items, lqr.ProjectionItem{Name: "*"})
			continue
		}

		if agg, ok := unwrapParens(f.Expr).(*ast.AggregateFuncExpr); ok {
			name := "*"
			if len(agg.Args) > 0 {
				if col, ok := columnName(agg.Args[0]); ok {
					name = col
				}
			}
			items = append(items, lqr.ProjectionItem{
				AggregationFunction: strings.ToUpper(agg.F),
				Name:                name,
				Alias:               f.AsName.O,
			})
			continue
		}

		col, ok := columnName(f.Expr)
		if !ok {
			col = literalString(f.Expr)
		}
		items = append(items, lqr.ProjectionItem{Name: col, Alias: f.AsName.O})
	}
	return items, nil
}
