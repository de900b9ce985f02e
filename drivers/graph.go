package drivers

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Graph wraps a neo4j.DriverWithContext behind the Driver contract.
type Graph struct {
	driver   neo4j.DriverWithContext
	database string
	ctx      context.Context
}

// WrapGraph wraps an already-open driver bound to database.
func WrapGraph(driver neo4j.DriverWithContext, database string) *Graph {
	return &Graph{driver: driver, database: database, ctx: context.Background()}
}

func (g *Graph) WithContext(ctx context.Context) *Graph {
	return &Graph{driver: g.driver, database: g.database, ctx: ctx}
}

// Run executes a Cypher statement and flattens the result into row
// maps.
func (g *Graph) Run(query any) ([]map[string]any, error) {
	statement, ok := query.(string)
	if !ok {
		return nil, fmt.Errorf("graph driver expects a Cypher string, got %T", query)
	}

	config := neo4j.ExecuteQueryWithDatabase(g.database)
	result, err := neo4j.ExecuteQuery[*neo4j.EagerResult](g.ctx, g.driver, statement, nil,
		neo4j.EagerResultTransformer, config)
	if err != nil {
		return nil, fmt.Errorf("unable to execute query: %w", err)
	}

	keys := result.Keys
	rows := make([]map[string]any, 0, len(result.Records))
	for _, record := range result.Records {
		row := make(map[string]any, len(keys))
		for i, key := range keys {
			row[key] = record.Values[i]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Close closes the underlying driver connection pool.
func (g *Graph) Close() error {
	return g.driver.Close(g.ctx)
}
