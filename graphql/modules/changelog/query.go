// Package changelog defines the GraphQL queries for release and organization changelogs.
package changelog

import (
	"github.com/graphql-go/graphql"
	core "github.com/ortelius/pdvd-changelog/internal/changelog"
)

// GetQueryFields returns the changelog queries to be mounted in the root schema.
func GetQueryFields(svc *core.Service) graphql.Fields {
	return graphql.Fields{
		"componentChangelog": &graphql.Field{
			Type: ComponentChangelogUnion,
			Args: graphql.FieldConfigArgument{
				"release1": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				"release2": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				"orgUuid":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				"mode":     &graphql.ArgumentConfig{Type: ModeEnum, DefaultValue: string(core.ModeNone)},
				"timeZone": &graphql.ArgumentConfig{Type: graphql.String},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return ResolveComponentChangelog(p.Context, svc, p.Args)
			},
		},
		"componentChangelogByDate": &graphql.Field{
			Type: ComponentChangelogUnion,
			Args: graphql.FieldConfigArgument{
				"componentUuid": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				"branchUuid":    &graphql.ArgumentConfig{Type: graphql.ID},
				"orgUuid":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				"mode":          &graphql.ArgumentConfig{Type: ModeEnum, DefaultValue: string(core.ModeNone)},
				"timeZone":      &graphql.ArgumentConfig{Type: graphql.String},
				"dateFrom":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"dateTo":        &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return ResolveComponentChangelogByDate(p.Context, svc, p.Args)
			},
		},
		"organizationChangelogByDate": &graphql.Field{
			Type: OrganizationChangelogUnion,
			Args: graphql.FieldConfigArgument{
				"orgUuid":         &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				"perspectiveUuid": &graphql.ArgumentConfig{Type: graphql.ID},
				"dateFrom":        &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"dateTo":          &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"mode":            &graphql.ArgumentConfig{Type: ModeEnum, DefaultValue: string(core.ModeNone)},
				"timeZone":        &graphql.ArgumentConfig{Type: graphql.String},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return ResolveOrganizationChangelogByDate(p.Context, svc, p.Args)
			},
		},
	}
}
