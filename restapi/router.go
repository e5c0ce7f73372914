// Package restapi provides the main router and initialization for REST API endpoints.
package restapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"
	core "github.com/ortelius/pdvd-changelog/internal/changelog"
	"github.com/ortelius/pdvd-changelog/restapi/modules/changelog"
)

// SetupRoutes configures the changelog REST routes and the GraphQL endpoint.
// CORS is handled globally in internal/api/fiber.go.
func SetupRoutes(app *fiber.App, svc *core.Service, schema graphql.Schema) {
	// API Group /api/v1
	api := app.Group("/api/v1")

	api.Post("/graphql", GraphQLHandler(schema))

	changelogGroup := api.Group("/changelog")
	changelogGroup.Get("/releases", changelog.GetComponentChangelog(svc))
	changelogGroup.Get("/components/:componentUuid", changelog.GetComponentChangelogByDate(svc))
	changelogGroup.Get("/orgs/:orgUuid", changelog.GetOrganizationChangelogByDate(svc))
}
