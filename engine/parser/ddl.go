package parser

import (
	"fmt"

	"github.com/deepakr2k1/uniquery/engine/lqr"
	"github.com/deepakr2k1/uniquery/uniquery"

	"github.com/pingcap/tidb/parser/ast"
)

// convertCreateTable extracts the column list and table-level FOREIGN
// KEY constraints. Each column option is recorded as a plain string
// (NOT NULL, UNIQUE, DEFAULT <value>, ...) rather than an enum; option
// kinds outside that list are recorded as "CONSTRAINT".
func convertCreateTable(s *ast.CreateTableStmt) (*lqr.Query, error) {
	q := &lqr.Query{Operation: lqr.CreateTable, TableName: s.Table.Name.O}

	for _, col := range s.Cols {
		cd := lqr.ColumnDef{Name: col.Name.Name.O, Type: col.Tp.String()}
		for _, opt := range col.Options {
			cd.Constraints = append(cd.Constraints, columnOptionText(opt))
		}
		q.Columns = append(q.Columns, cd)
	}

	for _, c := range s.Constraints {
		if c.Tp != ast.ConstraintForeignKey {
			continue
		}
		q.Constraints = append(q.Constraints, foreignKeyFromConstraint(c))
	}

	return q, nil
}

func foreignKeyFromConstraint(c *ast.Constraint) lqr.ForeignKey {
	fk := lqr.ForeignKey{}
	for _, k := range c.Keys {
		fk.Columns = append(fk.Columns, k.Column.Name.O)
	}
	if c.Refer != nil && c.Refer.Table != nil {
		fk.RefTable = c.Refer.Table.Name.O
		for _, k := range c.Refer.IndexPartSpecifications {
			fk.RefColumns = append(fk.RefColumns, k.Column.Name.O)
		}
	}
	return fk
}

func columnOptionText(opt *ast.ColumnOption) string {
	switch opt.Tp {
	case ast.ColumnOptionNotNull:
		return "NOT NULL"
	case ast.ColumnOptionNull:
		return "NULL"
	case ast.ColumnOptionPrimaryKey:
		return "PRIMARY KEY"
	case ast.ColumnOptionUniqKey:
		return "UNIQUE"
	case ast.ColumnOptionAutoIncrement:
		return "AUTO_INCREMENT"
	case ast.ColumnOptionDefaultValue:
		return fmt.Sprintf("DEFAULT %v", literalValue(opt.Expr))
	default:
		return "CONSTRAINT"
	}
}

func convertDropTable(s *ast.DropTableStmt) (*lqr.Query, error) {
	if len(s.Tables) == 0 {
		return nil, uniquery.ParseErrorf("DROP TABLE without a target table")
	}
	return &lqr.Query{Operation: lqr.DropTable, TableName: s.Tables[0].Name.O}, nil
}

func convertRenameTable(s *ast.RenameTableStmt) (*lqr.Query, error) {
	if len(s.TableToTables) == 0 {
		return nil, uniquery.ParseErrorf("RENAME TABLE without a source/target pair")
	}
	pair := s.TableToTables[0]
	return &lqr.Query{
		Operation: lqr.RenameTable,
		OldName:   pair.OldTable.Name.O,
		NewName:   pair.NewTable.Name.O,
	}, nil
}

// convertAlterTable produces one AlterAction per ALTER step, with a
// RENAME TO step lifted to its own top-level RENAME_TABLE variant.
func convertAlterTable(s *ast.AlterTableStmt) (*lqr.Query, error) {
	var actions []lqr.AlterAction

	for _, spec := range s.Specs {
		switch spec.Tp {
		case ast.AlterTableRenameTable:
			if spec.NewTable == nil {
				return nil, uniquery.ParseErrorf("RENAME TO without a new table name")
			}
			return &lqr.Query{
				Operation: lqr.RenameTable,
				OldName:   s.Table.Name.O,
				NewName:   spec.NewTable.Name.O,
			}, nil

		case ast.AlterTableAddColumns:
			for _, col := range spec.NewColumns {
				action := lqr.AlterAction{Type: lqr.AddColumn, Column: col.Name.Name.O, ColType: col.Tp.String()}
				for _, opt := range col.Options {
					if opt.Tp == ast.ColumnOptionDefaultValue {
						v := fmt.Sprintf("%v", literalValue(opt.Expr))
						action.Default = &v
					}
				}
				actions = append(actions, action)
			}

		case ast.AlterTableDropColumn:
			actions = append(actions, lqr.AlterAction{Type: lqr.DropColumn, Column: spec.OldColumnName.Name.O})

		case ast.AlterTableRenameColumn:
			actions = append(actions, lqr.AlterAction{
				Type:    lqr.RenameColumn,
				OldName: spec.OldColumnName.Name.O,
				NewName: spec.NewColumnName.Name.O,
			})

		case ast.AlterTableAlterColumn:
			if len(spec.NewColumns) == 0 {
				return nil, uniquery.UnsupportedStatementf("ALTER COLUMN without a column definition")
			}
			col := spec.NewColumns[0]
			if len(col.Options) > 0 && col.Options[0].Tp == ast.ColumnOptionDefaultValue {
				actions = append(actions, lqr.AlterAction{
					Type:         lqr.SetDefault,
					Column:       col.Name.Name.O,
					DefaultValue: literalValue(col.Options[0].Expr),
				})
			} else {
				actions = append(actions, lqr.AlterAction{Type: lqr.DropDefault, Column: col.Name.Name.O})
			}

		case ast.AlterTableAddConstraint:
			action, err := addConstraintAction(spec.Constraint)
			if err != nil {
				return nil, err
			}
			actions = append(actions, action)

		case ast.AlterTableDropPrimaryKey:
			actions = append(actions, lqr.AlterAction{Type: lqr.DropCons, ConstraintName: "PRIMARY"})

		case ast.AlterTableDropForeignKey:
			actions = append(actions, lqr.AlterAction{Type: lqr.DropCons, ConstraintName: spec.Name})

		default:
			return nil, uniquery.UnsupportedStatementf("unsupported ALTER TABLE action %v", spec.Tp)
		}
	}

	return &lqr.Query{Operation: lqr.AlterTable, TableName: s.Table.Name.O, Actions: actions}, nil
}

func addConstraintAction(c *ast.Constraint) (lqr.AlterAction, error) {
	switch c.Tp {
	case ast.ConstraintPrimaryKey:
		var cols []string
		for _, k := range c.Keys {
			cols = append(cols, k.Column.Name.O)
		}
		return lqr.AlterAction{Type: lqr.AddConstraint, ConstraintType: "PRIMARY_KEY", ConstraintCols: cols}, nil
	case ast.ConstraintForeignKey:
		fk := foreignKeyFromConstraint(c)
		return lqr.AlterAction{Type: lqr.AddConstraint, ConstraintType: "FOREIGN_KEY", References: &fk}, nil
	default:
		return lqr.AlterAction{}, uniquery.UnsupportedStatementf("unsupported ADD CONSTRAINT kind %v", c.Tp)
	}
}

func convertCreateIndex(s *ast.CreateIndexStmt) (*lqr.Query, error) {
	cols := make([]string, 0, len(s.IndexPartSpecifications))
	for _, p := range s.IndexPartSpecifications {
		cols = append(cols, p.Column.Name.O)
	}
	return &lqr.Query{
		Operation:    lqr.CreateIndex,
		IndexName:    s.IndexName,
		TableName:    s.Table.Name.O,
		IndexColumns: cols,
	}, nil
}

func convertDropIndex(s *ast.DropIndexStmt) (*lqr.Query, error) {
	return &lqr.Query{
		Operation: lqr.DropIndex,
		IndexName: s.IndexName,
		TableName: s.Table.Name.O,
	}, nil
}
