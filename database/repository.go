package database

import (
	"context"
	"time"

	"github.com/arangodb/go-driver/v2/arangodb"
	"github.com/google/uuid"
	"github.com/ortelius/pdvd-changelog/internal/changelog"
	"github.com/ortelius/pdvd-changelog/model"
	"github.com/pkg/errors"
)

// releaseProjection merges the SBOM entries and findings linked to a release
// into the release document.
const releaseProjection = `
	MERGE(r, {
		artifacts: (
			FOR a IN 1..1 OUTBOUND r release2artifact
				RETURN { purl: a.purl, name: a.name, version: a.version }
		),
		findings: (
			FOR f IN 1..1 OUTBOUND r release2finding
				RETURN {
					kind: f.kind,
					id: f.id,
					purl: f.purl,
					location: f.location,
					severity: f.severity,
					rule_id: f.rule_id,
					aliases: f.aliases
				}
		)
	})
`

// Repository is the read-only changelog.Repository backed by ArangoDB
type Repository struct {
	db arangodb.Database
}

// NewRepository wraps an initialized connection
func NewRepository(conn DBConnection) *Repository {
	return &Repository{db: conn.Database}
}

var _ changelog.Repository = (*Repository)(nil)

// GetRelease returns a release with its artifacts, findings and commits
func (r *Repository) GetRelease(ctx context.Context, id uuid.UUID) (*model.Release, error) {
	query := `
		FOR r IN release
			FILTER r._key == @key
			LIMIT 1
			RETURN ` + releaseProjection
	return queryOne[model.Release](ctx, r.db, "release", id, query, map[string]interface{}{"key": id.String()})
}

// GetBranch returns a branch by key
func (r *Repository) GetBranch(ctx context.Context, id uuid.UUID) (*model.Branch, error) {
	query := `
		FOR b IN branch
			FILTER b._key == @key
			LIMIT 1
			RETURN b
	`
	return queryOne[model.Branch](ctx, r.db, "branch", id, query, map[string]interface{}{"key": id.String()})
}

// GetComponent returns a component by key
func (r *Repository) GetComponent(ctx context.Context, id uuid.UUID) (*model.Component, error) {
	query := `
		FOR c IN component
			FILTER c._key == @key
			LIMIT 1
			RETURN c
	`
	return queryOne[model.Component](ctx, r.db, "component", id, query, map[string]interface{}{"key": id.String()})
}

// ListBranchesOfComponent returns every branch of a component ordered by name
func (r *Repository) ListBranchesOfComponent(ctx context.Context, component uuid.UUID) ([]model.Branch, error) {
	query := `
		FOR b IN branch
			FILTER b.component == @component
			SORT b.name, b._key
			RETURN b
	`
	branches, err := queryAll[model.Branch](ctx, r.db, query, map[string]interface{}{"component": component.String()})
	if err != nil {
		return nil, errors.Wrapf(err, "could not list branches of component %s", component)
	}
	return branches, nil
}

// ListReleasesOfBranch returns the releases of a branch created within
// [from, to], oldest first
func (r *Repository) ListReleasesOfBranch(ctx context.Context, branch uuid.UUID, from, to time.Time) ([]model.Release, error) {
	query := `
		FOR r IN release
			FILTER r.branch == @branch
			FILTER DATE_TIMESTAMP(r.created_at) >= @from AND DATE_TIMESTAMP(r.created_at) <= @to
			SORT DATE_TIMESTAMP(r.created_at), r._key
			RETURN ` + releaseProjection
	releases, err := queryAll[model.Release](ctx, r.db, query, map[string]interface{}{
		"branch": branch.String(),
		"from":   from.UnixMilli(),
		"to":     to.UnixMilli(),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "could not list releases of branch %s", branch)
	}
	return releases, nil
}

// ListComponentsOfOrg returns the components of an organization, restricted
// to a perspective when one is given
func (r *Repository) ListComponentsOfOrg(ctx context.Context, org uuid.UUID, perspective *uuid.UUID) ([]model.Component, error) {
	query := `
		FOR c IN component
			FILTER c.org == @org
			FILTER @perspective == null OR @perspective IN (c.perspectives || [])
			SORT c.name, c._key
			RETURN c
	`
	bindVars := map[string]interface{}{"org": org.String(), "perspective": nil}
	if perspective != nil {
		bindVars["perspective"] = perspective.String()
	}
	components, err := queryAll[model.Component](ctx, r.db, query, bindVars)
	if err != nil {
		return nil, errors.Wrapf(err, "could not list components of org %s", org)
	}
	return components, nil
}

func queryAll[T any](ctx context.Context, db arangodb.Database, query string, bindVars map[string]interface{}) ([]T, error) {
	cursor, err := db.Query(ctx, query, &arangodb.QueryOptions{BindVars: bindVars})
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	var result []T
	for cursor.HasMore() {
		var doc T
		if _, err := cursor.ReadDocument(ctx, &doc); err != nil {
			return nil, err
		}
		result = append(result, doc)
	}
	return result, nil
}

func queryOne[T any](ctx context.Context, db arangodb.Database, kind string, id uuid.UUID, query string, bindVars map[string]interface{}) (*T, error) {
	docs, err := queryAll[T](ctx, db, query, bindVars)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read %s %s", kind, id)
	}
	if len(docs) == 0 {
		return nil, changelog.NotFound(kind, id.String())
	}
	return &docs[0], nil
}
