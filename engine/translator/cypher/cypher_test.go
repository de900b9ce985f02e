package cypher_test

import (
	"testing"

	"github.com/deepakr2k1/uniquery/engine/parser"
	"github.com/deepakr2k1/uniquery/engine/translator/cypher"

	"github.com/stretchr/testify/require"
)

func translate(t *testing.T, sql string) string {
	t.Helper()
	q, err := parser.Parse(sql)
	require.NoError(t, err)
	out, err := cypher.Translate(q)
	require.NoError(t, err)
	return out
}

func TestTranslate_BasicSelect(t *testing.T) {
	got := translate(t, "SELECT p.name FROM Person p")
	require.Equal(t, "MATCH (p:Person)\nRETURN p.name;", got)
}

func TestTranslate_SelectWithAlias(t *testing.T) {
	got := translate(t, "SELECT p.name AS person_name FROM Person p")
	require.Equal(t, "MATCH (p:Person)\nRETURN p.name AS person_name;", got)
}

func TestTranslate_SelectDistinct(t *testing.T) {
	got := translate(t, "SELECT DISTINCT p.name FROM Person p")
	require.Equal(t, "MATCH (p:Person)\nRETURN DISTINCT p.name;", got)
}

func TestTranslate_SingleRelationship(t *testing.T) {
	got := translate(t, `
		SELECT p.name, c.name
		FROM Person p
		JOIN Company c ON RELATION('WORKS_AT', w)
	`)
	require.Equal(t, "MATCH (p:Person)-[w:WORKS_AT]->(c:Company)\nRETURN p.name, c.name;", got)
}

func TestTranslate_MultipleRelationships(t *testing.T) {
	got := translate(t, `
		SELECT p.name, f.name, c.name
		FROM Person p
		JOIN Person f ON RELATION('FRIEND', _f)
		JOIN Company c ON RELATION('WORKS_AT', w)
	`)
	require.Equal(t, "MATCH (p:Person)-[_f:FRIEND]->(f:Person)-[w:WORKS_AT]->(c:Company)\nRETURN p.name, f.name, c.name;", got)
}

func TestTranslate_RelationshipWithDepth(t *testing.T) {
	got := translate(t, `
		SELECT p.name, f.name
		FROM Person p
		JOIN Person f ON RELATION('FRIEND*1..3', _f)
	`)
	require.Equal(t, "MATCH (p:Person)-[_f:FRIEND*1..3]->(f:Person)\nRETURN p.name, f.name;", got)
}

func TestTranslate_WhereClause(t *testing.T) {
	got := translate(t, `
		SELECT p.name
		FROM Person p
		WHERE p.age > 30
	`)
	require.Equal(t, "MATCH (p:Person)\nWHERE p.age > 30\nRETURN p.name;", got)
}

func TestTranslate_LikeBecomesQuotedRegex(t *testing.T) {
	got := translate(t, `
		SELECT p.name
		FROM Person p
		WHERE p.name LIKE 'A%'
	`)
	require.Equal(t, "MATCH (p:Person)\nWHERE p.name =~ '^A.*$'\nRETURN p.name;", got)
}

func TestTranslate_OrderByDefaultDirection(t *testing.T) {
	got := translate(t, `
		SELECT p.name
		FROM Person p
		ORDER BY p.name
	`)
	require.Equal(t, "MATCH (p:Person)\nRETURN p.name\nORDER BY p.name ASC;", got)
}

func TestTranslate_OrderByMultipleFields(t *testing.T) {
	got := translate(t, `
		SELECT p.name, p.age
		FROM Person p
		ORDER BY p.age DESC, p.name ASC
	`)
	require.Equal(t, "MATCH (p:Person)\nRETURN p.name, p.age\nORDER BY p.age DESC, p.name ASC;", got)
}

func TestTranslate_Limit(t *testing.T) {
	got := translate(t, `
		SELECT p.name
		FROM Person p
		LIMIT 10
	`)
	require.Equal(t, "MATCH (p:Person)\nRETURN p.name\nLIMIT 10;", got)
}

func TestTranslate_RelationshipWithOr(t *testing.T) {
	got := translate(t, `
		SELECT p.name
		FROM Person p
		JOIN Person f ON RELATION('FRIEND OR COLLEAGUE', _f)
	`)
	require.Equal(t, "MATCH (p:Person)-[_f:FRIEND|COLLEAGUE]->(f:Person)\nRETURN p.name;", got)
}

func TestTranslate_ComplexQuery(t *testing.T) {
	got := translate(t, `
		SELECT DISTINCT p.name as person_name, f.name as friend_name, c.name AS company_name
		FROM Person p
		RIGHT JOIN Person f ON RELATION('FRIEND*3..3', _f)
		RIGHT JOIN Company c ON RELATION('WORKS_AT', w)
		WHERE c.name = 'ACME Corp' AND p.name != f.name
		ORDER BY p.name
		LIMIT 5
	`)
	want := "MATCH (p:Person)-[_f:FRIEND*3..3]->(f:Person)-[w:WORKS_AT]->(c:Company)\n" +
		"WHERE c.name = 'ACME Corp' AND p.name <> f.name\n" +
		"RETURN DISTINCT p.name AS person_name, f.name AS friend_name, c.name AS company_name\n" +
		"ORDER BY p.name ASC\n" +
		"LIMIT 5;"
	require.Equal(t, want, got)
}

func TestTranslate_GroupByUnsupported(t *testing.T) {
	q, err := parser.Parse("SELECT department, COUNT(*) FROM employees GROUP BY department")
	require.NoError(t, err)
	_, err = cypher.Translate(q)
	require.Error(t, err)
}

func TestTranslate_NonSelectIsTranslationError(t *testing.T) {
	q, err := parser.Parse("DELETE FROM employees WHERE id = 1")
	require.NoError(t, err)
	_, err = cypher.Translate(q)
	require.Error(t, err)
}
