package changelog

import (
	"time"

	"github.com/google/uuid"
	"github.com/ortelius/pdvd-changelog/model"
)

// assembler turns component scopes into result shapes. It only decides which
// computations run and how their outputs nest.
type assembler struct {
	loc *time.Location
}

func (a assembler) releaseInfo(r model.Release) ReleaseInfo {
	r.ParseAndSetVersion()
	return ReleaseInfo{
		UUID:         r.UUID,
		Version:      r.Version,
		VersionMajor: r.VersionMajor,
		VersionMinor: r.VersionMinor,
		VersionPatch: r.VersionPatch,
		Lifecycle:    r.Lifecycle,
		CreatedDate:  a.formatTime(r.CreatedAt),
	}
}

func (a assembler) releaseInfoPtr(r *model.Release) *ReleaseInfo {
	if r == nil {
		return nil
	}
	info := a.releaseInfo(*r)
	return &info
}

func (a assembler) formatTime(t time.Time) string {
	return t.In(a.loc).Format(time.RFC3339)
}

// component builds the component level result for mode.
func (a assembler) component(mode Mode, scope *componentScope) ComponentChangelog {
	if mode == ModeAggregated {
		changes := newChangeSet()
		changes.addScope(scope)
		return a.aggregated(scope, changes)
	}
	return a.none(scope)
}

// none lists, per branch, every release after the baseline with its own
// commits and its diff against the preceding release. Branches with fewer
// than two releases have no rows and are left out.
func (a assembler) none(scope *componentScope) *NoneChangelog {
	result := &NoneChangelog{
		ComponentUUID: scope.component.UUID,
		ComponentName: scope.component.Name,
		OrgUUID:       scope.component.Org,
		FirstRelease:  a.releaseInfoPtr(scope.first()),
		LastRelease:   a.releaseInfoPtr(scope.last()),
		Branches:      make([]BranchReleases, 0, len(scope.lineages)),
	}

	for _, l := range scope.lineages {
		if len(l.releases) < 2 {
			continue
		}
		branch := BranchReleases{
			BranchUUID:    l.branch.UUID,
			BranchName:    l.branch.Name,
			ComponentUUID: scope.component.UUID,
			ComponentName: scope.component.Name,
			Releases:      make([]ReleaseChanges, 0, len(l.releases)-1),
		}
		for i := 1; i < len(l.releases); i++ {
			previous, current := l.releases[i-1], l.releases[i]
			artifacts := DiffArtifacts(previous.Artifacts, current.Artifacts)
			branch.Releases = append(branch.Releases, ReleaseChanges{
				Release:    a.releaseInfo(current),
				ComparedTo: a.releaseInfo(previous),
				Commits:    parseCommits(current.Commits),
				SbomChanges: ReleaseSbomChanges{
					Added:   toReleaseSbomArtifacts(artifacts.Added),
					Removed: toReleaseSbomArtifacts(artifacts.Removed),
				},
				FindingChanges: releaseFindingChanges(DiffFindings(previous.Findings, current.Findings)),
			})
		}
		result.Branches = append(result.Branches, branch)
	}
	return result
}

// aggregated summarises every branch and attaches the component's change set.
func (a assembler) aggregated(scope *componentScope, changes *changeSet) *AggregatedChangelog {
	result := &AggregatedChangelog{
		ComponentUUID:  scope.component.UUID,
		ComponentName:  scope.component.Name,
		OrgUUID:        scope.component.Org,
		FirstRelease:   a.releaseInfoPtr(scope.first()),
		LastRelease:    a.releaseInfoPtr(scope.last()),
		Branches:       make([]BranchSummary, 0, len(scope.lineages)),
		SbomChanges:    changes.sbomChanges(),
		FindingChanges: changes.findingChanges(false),
	}

	for _, l := range scope.lineages {
		summary := BranchSummary{
			BranchUUID:    l.branch.UUID,
			BranchName:    l.branch.Name,
			ComponentUUID: scope.component.UUID,
			ComponentName: scope.component.Name,
			FirstRelease:  a.releaseInfo(l.first()),
			LastRelease:   a.releaseInfo(l.last()),
			Releases:      make([]ReleaseInfo, 0, len(l.releases)),
		}
		var commits []CodeCommit
		for i, r := range l.releases {
			summary.Releases = append(summary.Releases, a.releaseInfo(r))
			if i > 0 {
				commits = append(commits, parseCommits(r.Commits)...)
			}
		}
		summary.CommitsByType = groupCommits(commits)
		result.Branches = append(result.Branches, summary)
	}
	return result
}

// componentUnit is the outcome of one component's pipeline during an
// organization fan-out.
type componentUnit struct {
	scope   *componentScope
	none    *NoneChangelog
	summary *AggregatedChangelog
	changes *changeSet
}

// unit runs the per component part of an organization request.
func (a assembler) unit(mode Mode, scope *componentScope) componentUnit {
	u := componentUnit{scope: scope}
	if mode == ModeAggregated {
		u.changes = newChangeSet()
		u.changes.addScope(scope)
		u.summary = a.aggregated(scope, u.changes)
	} else {
		u.none = a.none(scope)
	}
	return u
}

// organization joins the units. Components without per-release rows, or
// without selected releases in AGGREGATED mode, are left out of the component lists.
func (a assembler) organization(mode Mode, org uuid.UUID, from, to time.Time, units []componentUnit, warnings []Warning) OrganizationChangelog {
	if warnings == nil {
		warnings = make([]Warning, 0)
	}

	if mode != ModeAggregated {
		result := &NoneOrganizationChangelog{
			OrgUUID:    org,
			DateFrom:   a.formatTime(from),
			DateTo:     a.formatTime(to),
			Components: make([]NoneChangelog, 0, len(units)),
			Warnings:   warnings,
		}
		for _, u := range units {
			if len(u.none.Branches) > 0 {
				result.Components = append(result.Components, *u.none)
			}
		}
		return result
	}

	merged := newChangeSet()
	result := &AggregatedOrganizationChangelog{
		OrgUUID:    org,
		DateFrom:   a.formatTime(from),
		DateTo:     a.formatTime(to),
		Components: make([]AggregatedChangelog, 0, len(units)),
		Warnings:   warnings,
	}
	for _, u := range units {
		merged.merge(u.changes)
		if len(u.scope.lineages) > 0 {
			result.Components = append(result.Components, *u.summary)
		}
	}
	result.SbomChanges = merged.sbomChanges()
	result.FindingChanges = merged.findingChanges(true)
	return result
}
