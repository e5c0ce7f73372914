// Package graphql assembles the root GraphQL schema from the query modules.
package graphql

import (
	"github.com/graphql-go/graphql"
	core "github.com/ortelius/pdvd-changelog/internal/changelog"
	"github.com/ortelius/pdvd-changelog/graphql/modules/changelog"
)

// CreateSchema builds the schema served at /api/v1/graphql.
func CreateSchema(svc *core.Service) (graphql.Schema, error) {
	rootQuery := graphql.NewObject(graphql.ObjectConfig{
		Name:   "Query",
		Fields: changelog.GetQueryFields(svc),
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: rootQuery,
	})
}
