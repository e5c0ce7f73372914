package changelog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ortelius/pdvd-changelog/model"
)

// Repository is the read-only view of releases, branches, components and
// organizations the engine consumes. Lookups of unknown identifiers return
// an *Error with CodeNotFound.
type Repository interface {
	GetRelease(ctx context.Context, id uuid.UUID) (*model.Release, error)
	GetBranch(ctx context.Context, id uuid.UUID) (*model.Branch, error)
	GetComponent(ctx context.Context, id uuid.UUID) (*model.Component, error)
	ListBranchesOfComponent(ctx context.Context, component uuid.UUID) ([]model.Branch, error)
	// ListReleasesOfBranch returns the releases of branch created within
	// [from, to], both bounds inclusive, with artifacts, findings and commits loaded.
	ListReleasesOfBranch(ctx context.Context, branch uuid.UUID, from, to time.Time) ([]model.Release, error)
	// ListComponentsOfOrg returns the components of org, restricted to
	// perspective when it is not nil.
	ListComponentsOfOrg(ctx context.Context, org uuid.UUID, perspective *uuid.UUID) ([]model.Component, error)
}
