// Package drivers holds reference adapters for the three database
// backends: relational, document, and graph. Each wraps a handle the
// caller has already opened and exposes Run and Close; the engine
// façade only ever calls Run, leaving connection lifecycle to the
// caller.
package drivers

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Relational wraps a *sql.DB (MySQL, via go-sql-driver/mysql) behind
// the Driver contract.
type Relational struct {
	db  *sql.DB
	ctx context.Context
}

// WrapRelational opens no connection of its own; db is assumed already
// open by the caller's connection-profile store.
func WrapRelational(db *sql.DB) *Relational {
	return &Relational{db: db, ctx: context.Background()}
}

// WithContext returns a copy of r bound to ctx for a single call.
func (r *Relational) WithContext(ctx context.Context) *Relational {
	return &Relational{db: r.db, ctx: ctx}
}

// Run executes a SQL statement, the SQL dialect's pass-through text.
// SELECT/SHOW statements are queried for rows; everything else is
// exec'd and reports affected/inserted-id metadata.
func (r *Relational) Run(query any) ([]map[string]any, error) {
	sqlText, ok := query.(string)
	if !ok {
		return nil, fmt.Errorf("relational driver expects a SQL string, got %T", query)
	}

	upper := strings.ToUpper(strings.TrimSpace(sqlText))
	if strings.HasPrefix(upper, "SELECT") || strings.HasPrefix(upper, "SHOW") {
		rows, err := r.db.QueryContext(r.ctx, sqlText)
		if err != nil {
			return nil, fmt.Errorf("query error: %w", err)
		}
		defer rows.Close()
		return rowsToMaps(rows)
	}

	result, err := r.db.ExecContext(r.ctx, sqlText)
	if err != nil {
		return nil, fmt.Errorf("exec error: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	lastInsertID, _ := result.LastInsertId()
	return []map[string]any{{
		"rows_affected": rowsAffected,
		"inserted_id":   lastInsertID,
	}}, nil
}

// Close closes the underlying connection pool.
func (r *Relational) Close() error {
	return r.db.Close()
}

func rowsToMaps(rows *sql.Rows) ([]map[string]any, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var results []map[string]any
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make(map[string]any, len(columns))
		for i, col := range columns {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = values[i]
			}
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
