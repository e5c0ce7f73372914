package changelog

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/ortelius/pdvd-changelog/model"
)

// lineage is the walk of one branch, ascending by (created_at, uuid).
// releases[0] is the baseline the rest of the walk is compared against.
type lineage struct {
	branch   model.Branch
	releases []model.Release
}

func (l lineage) first() model.Release { return l.releases[0] }
func (l lineage) last() model.Release { return l.releases[len(l.releases)-1] }

// componentScope is a component with the lineages selected for one request.
type componentScope struct {
	component model.Component
	branches  map[uuid.UUID]model.Branch
	lineages  []lineage
}

func newComponentScope(component model.Component) *componentScope {
	return &componentScope{component: component, branches: map[uuid.UUID]model.Branch{}}
}

// first is the earliest baseline across lineages, nil when nothing was selected.
func (s *componentScope) first() *model.Release {
	var first *model.Release
	for _, l := range s.lineages {
		r := l.first()
		if first == nil || r.Before(*first) {
			first = &r
		}
	}
	return first
}

// last is the latest release across lineages, nil when nothing was selected.
func (s *componentScope) last() *model.Release {
	last, _ := s.latest()
	return last
}

// latest is the component's newest release with its predecessor in the same
// lineage, which is nil for a single-release lineage.
func (s *componentScope) latest() (*model.Release, *model.Release) {
	var latest, previous *model.Release
	for _, l := range s.lineages {
		r := l.last()
		if latest != nil && !latest.Before(r) {
			continue
		}
		latest, previous = &r, nil
		if n := len(l.releases); n > 1 {
			previous = &l.releases[n-2]
		}
	}
	return latest, previous
}

// attribution labels release r, compared against previous when it is not nil.
func (s *componentScope) attribution(r model.Release, previous *model.Release) ComponentAttribution {
	a := ComponentAttribution{
		ComponentUUID:  s.component.UUID,
		ComponentName:  s.component.Name,
		ReleaseUUID:    r.UUID,
		ReleaseVersion: r.Version,
		BranchUUID:     r.Branch,
		BranchName:     s.branches[r.Branch].Name,
		createdAt:      r.CreatedAt,
	}
	if previous != nil {
		a.ComparedToVersion = previous.Version
	}
	return a
}

func sortReleases(releases []model.Release) {
	sort.SliceStable(releases, func(i, j int) bool { return releases[i].Before(releases[j]) })
}

func sortBranches(branches []model.Branch) {
	sort.SliceStable(branches, func(i, j int) bool {
		if branches[i].Name != branches[j].Name {
			return branches[i].Name < branches[j].Name
		}
		return branches[i].UUID.String() < branches[j].UUID.String()
	})
}

func sortComponents(components []model.Component) {
	sort.SliceStable(components, func(i, j int) bool {
		if components[i].Name != components[j].Name {
			return components[i].Name < components[j].Name
		}
		return components[i].UUID.String() < components[j].UUID.String()
	})
}

// sequencePair selects the walk between two releases of one component.
// Releases on the same branch walk every release between them inclusively;
// releases on different branches form a two release walk.
func (s *Service) sequencePair(ctx context.Context, req ReleasePairRequest) (*componentScope, error) {
	if req.Release1 == req.Release2 {
		return nil, newError(CodeInvalidArgument, map[string]string{"release": req.Release1.String()},
			"release1 and release2 are the same release")
	}

	r1, err := s.repo.GetRelease(ctx, req.Release1)
	if err != nil {
		return nil, cancelled(ctx, err)
	}
	r2, err := s.repo.GetRelease(ctx, req.Release2)
	if err != nil {
		return nil, cancelled(ctx, err)
	}

	details := map[string]string{"release1": r1.UUID.String(), "release2": r2.UUID.String()}
	if r1.Org != r2.Org {
		return nil, newError(CodePermissionDenied, details, "releases belong to different organizations")
	}
	if req.OrgUUID != uuid.Nil && r1.Org != req.OrgUUID {
		details["org"] = req.OrgUUID.String()
		return nil, newError(CodePermissionDenied, details, "releases do not belong to the requested organization")
	}
	if r1.Component != r2.Component {
		return nil, newError(CodeInvalidArgument, details, "releases belong to different components")
	}

	earlier, later := *r1, *r2
	if later.Before(earlier) {
		earlier, later = later, earlier
	}

	component, err := s.repo.GetComponent(ctx, earlier.Component)
	if err != nil {
		return nil, cancelled(ctx, err)
	}
	scope := newComponentScope(*component)

	for _, id := range []uuid.UUID{earlier.Branch, later.Branch} {
		if _, ok := scope.branches[id]; ok {
			continue
		}
		branch, err := s.repo.GetBranch(ctx, id)
		if err != nil {
			return nil, cancelled(ctx, err)
		}
		scope.branches[id] = *branch
	}

	if earlier.Branch != later.Branch {
		scope.lineages = []lineage{{branch: scope.branches[later.Branch], releases: []model.Release{earlier, later}}}
		return scope, nil
	}

	releases, err := s.repo.ListReleasesOfBranch(ctx, earlier.Branch, earlier.CreatedAt, later.CreatedAt)
	if err != nil {
		return nil, cancelled(ctx, err)
	}
	walk := []model.Release{earlier, later}
	for _, r := range releases {
		if r.UUID == earlier.UUID || r.UUID == later.UUID || r.Branch != earlier.Branch {
			continue
		}
		if earlier.Before(r) && r.Before(later) {
			walk = append(walk, r)
		}
	}
	sortReleases(walk)
	scope.lineages = []lineage{{branch: scope.branches[earlier.Branch], releases: walk}}
	return scope, nil
}

// sequenceComponent selects, for every branch of component (or only branch
// when given), the releases created within [from, to]. Branches without
// releases in range are left out.
func (s *Service) sequenceComponent(ctx context.Context, component model.Component, branch *uuid.UUID, from, to time.Time) (*componentScope, error) {
	branches, err := s.repo.ListBranchesOfComponent(ctx, component.UUID)
	if err != nil {
		return nil, cancelled(ctx, err)
	}

	if branch != nil {
		var selected []model.Branch
		for _, b := range branches {
			if b.UUID == *branch {
				selected = append(selected, b)
			}
		}
		if len(selected) == 0 {
			return nil, newError(CodeInvalidArgument,
				map[string]string{"branch": branch.String(), "component": component.UUID.String()},
				"branch does not belong to component")
		}
		branches = selected
	}
	sortBranches(branches)

	scope := newComponentScope(component)
	for _, b := range branches {
		if err := ctx.Err(); err != nil {
			return nil, cancelled(ctx, err)
		}
		scope.branches[b.UUID] = b

		releases, err := s.repo.ListReleasesOfBranch(ctx, b.UUID, from, to)
		if err != nil {
			return nil, cancelled(ctx, err)
		}
		walk := make([]model.Release, 0, len(releases))
		for _, r := range releases {
			if r.CreatedAt.Before(from) || r.CreatedAt.After(to) {
				continue
			}
			walk = append(walk, r)
		}
		if len(walk) == 0 {
			continue
		}
		sortReleases(walk)
		scope.lineages = append(scope.lineages, lineage{branch: b, releases: walk})
	}
	return scope, nil
}
