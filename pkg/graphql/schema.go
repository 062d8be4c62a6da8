// Package graphql holds the schema plumbing shared by every GraphQL type:
// the Decimal scalar, Relay-style connections and the HTTP handler.
package graphql

import (
	"github.com/graphql-go/graphql"
)

// NewSchema creates a new GraphQL schema from the root query and mutation.
// mutation may be nil.
func NewSchema(query, mutation *graphql.Object) (graphql.Schema, error) {
	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
}
