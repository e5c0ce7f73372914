package changelog

import (
	"sort"

	"github.com/google/uuid"
	"github.com/ortelius/pdvd-changelog/model"
)

type artifactChange struct {
	artifact   model.Artifact
	addedIn    []ComponentAttribution
	removedIn  []ComponentAttribution
	netAdded   int
	netRemoved int
}

type findingChange struct {
	finding    model.Finding
	appearedIn []ComponentAttribution
	resolvedIn []ComponentAttribution
	// presentIn holds the latest release of every component containing the finding.
	presentIn []ComponentAttribution
	// startIn holds the baseline of every lineage containing the finding.
	startIn     []ComponentAttribution
	netAppeared int
	netResolved int
}

// componentBounds keeps the finding keys of a component's earliest and latest release.
type componentBounds struct {
	component uuid.UUID
	first     map[string]bool
	last      map[string]bool
}

// changeSet accumulates attributed changes of one or more components.
type changeSet struct {
	artifacts map[string]*artifactChange
	findings  map[string]*findingChange
	bounds    []componentBounds
}

func newChangeSet() *changeSet {
	return &changeSet{
		artifacts: map[string]*artifactChange{},
		findings:  map[string]*findingChange{},
	}
}

func (cs *changeSet) artifact(a model.Artifact) *artifactChange {
	c, ok := cs.artifacts[a.Purl]
	if !ok {
		c = &artifactChange{artifact: a.WithDisplayFields()}
		cs.artifacts[a.Purl] = c
	}
	return c
}

func (cs *changeSet) finding(f model.Finding) *findingChange {
	c, ok := cs.findings[f.Key()]
	if !ok {
		c = &findingChange{finding: f}
		cs.findings[f.Key()] = c
	}
	return c
}

// addScope walks every lineage of scope. A release is credited with an
// addition when the item is in it but not in the preceding release of the
// walk, and with a removal for the converse. Items already in the baseline
// get no credit; they are only tracked as present at start or end.
func (cs *changeSet) addScope(scope *componentScope) {
	for _, l := range scope.lineages {
		first, last := l.first(), l.last()

		boundary := DiffArtifacts(first.Artifacts, last.Artifacts)
		for _, a := range boundary.Added {
			cs.artifact(a).netAdded++
		}
		for _, a := range boundary.Removed {
			cs.artifact(a).netRemoved++
		}
		findingBoundary := DiffFindings(first.Findings, last.Findings)
		for _, f := range findingBoundary.Appeared {
			cs.finding(f).netAppeared++
		}
		for _, f := range findingBoundary.Resolved {
			cs.finding(f).netResolved++
		}

		for i := 1; i < len(l.releases); i++ {
			previous, current := l.releases[i-1], l.releases[i]
			credit := scope.attribution(current, &previous)

			artifacts := DiffArtifacts(previous.Artifacts, current.Artifacts)
			for _, a := range artifacts.Added {
				c := cs.artifact(a)
				c.addedIn = append(c.addedIn, credit)
			}
			for _, a := range artifacts.Removed {
				c := cs.artifact(a)
				c.removedIn = append(c.removedIn, credit)
			}

			findings := DiffFindings(previous.Findings, current.Findings)
			for _, f := range findings.Appeared {
				c := cs.finding(f)
				c.appearedIn = append(c.appearedIn, credit)
			}
			for _, f := range findings.Resolved {
				c := cs.finding(f)
				c.resolvedIn = append(c.resolvedIn, credit)
			}
		}

		start := scope.attribution(first, nil)
		for _, f := range indexFindings(first.Findings) {
			c := cs.finding(f)
			c.startIn = append(c.startIn, start)
		}
	}

	if latest, previous := scope.latest(); latest != nil {
		end := scope.attribution(*latest, previous)
		for _, f := range indexFindings(latest.Findings) {
			c := cs.finding(f)
			c.presentIn = append(c.presentIn, end)
		}
	}

	if first, last := scope.first(), scope.last(); first != nil && last != nil {
		cs.bounds = append(cs.bounds, componentBounds{
			component: scope.component.UUID,
			first:     findingKeys(first.Findings),
			last:      findingKeys(last.Findings),
		})
	}
}

// merge folds other into cs. Attribution lists are concatenated, never deduplicated.
func (cs *changeSet) merge(other *changeSet) {
	for _, o := range other.artifacts {
		c := cs.artifact(o.artifact)
		c.addedIn = append(c.addedIn, o.addedIn...)
		c.removedIn = append(c.removedIn, o.removedIn...)
		c.netAdded += o.netAdded
		c.netRemoved += o.netRemoved
	}
	for _, o := range other.findings {
		c := cs.finding(o.finding)
		c.appearedIn = append(c.appearedIn, o.appearedIn...)
		c.resolvedIn = append(c.resolvedIn, o.resolvedIn...)
		c.presentIn = append(c.presentIn, o.presentIn...)
		c.startIn = append(c.startIn, o.startIn...)
		c.netAppeared += o.netAppeared
		c.netResolved += o.netResolved
	}
	cs.bounds = append(cs.bounds, other.bounds...)
}

// sbomChanges lists every artifact credited to at least one release.
func (cs *changeSet) sbomChanges() SbomChangesWithAttribution {
	result := SbomChangesWithAttribution{Artifacts: make([]ArtifactWithAttribution, 0)}
	for _, c := range cs.artifacts {
		if len(c.addedIn) == 0 && len(c.removedIn) == 0 {
			continue
		}
		result.Artifacts = append(result.Artifacts, ArtifactWithAttribution{
			Purl:         c.artifact.Purl,
			Name:         c.artifact.Name,
			Version:      c.artifact.Version,
			AddedIn:      sortedAttributions(c.addedIn),
			RemovedIn:    sortedAttributions(c.removedIn),
			IsNetAdded:   c.netAdded > 0 && c.netRemoved == 0,
			IsNetRemoved: c.netRemoved > 0 && c.netAdded == 0,
		})
		if len(c.addedIn) > 0 {
			result.TotalAdded++
		}
		if len(c.removedIn) > 0 {
			result.TotalRemoved++
		}
	}
	sort.Slice(result.Artifacts, func(i, j int) bool { return result.Artifacts[i].Purl < result.Artifacts[j].Purl })
	return result
}

// findingChanges lists every finding seen at a lineage boundary or credited to
// a release, split by kind. Findings that never changed keep empty attribution
// lists and count in neither total. withOrgContext adds the organization level flags.
func (cs *changeSet) findingChanges(withOrgContext bool) FindingChangesWithAttribution {
	result := FindingChangesWithAttribution{
		Vulnerabilities: make([]VulnerabilityWithAttribution, 0),
		Violations:      make([]ViolationWithAttribution, 0),
		Weaknesses:      make([]WeaknessWithAttribution, 0),
	}

	all := make([]*findingChange, 0, len(cs.findings))
	for _, c := range cs.findings {
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool { return findingLess(all[i].finding, all[j].finding) })

	for _, c := range all {
		attribution := FindingAttribution{
			AppearedIn:     sortedAttributions(c.appearedIn),
			ResolvedIn:     sortedAttributions(c.resolvedIn),
			PresentIn:      sortedAttributions(c.presentIn),
			IsNetAppeared:  c.netAppeared > 0 && c.netResolved == 0,
			IsNetResolved:  c.netResolved > 0 && c.netAppeared == 0,
			IsStillPresent: len(c.presentIn) > 0,
		}
		if withOrgContext {
			attribution.OrgContext = cs.orgContext(c)
		}
		if len(c.appearedIn) > 0 {
			result.TotalAppeared++
		}
		if len(c.resolvedIn) > 0 {
			result.TotalResolved++
		}

		switch c.finding.Kind {
		case model.FindingVulnerability:
			result.Vulnerabilities = append(result.Vulnerabilities,
				VulnerabilityWithAttribution{Vulnerability: vulnerabilityOf(c.finding), FindingAttribution: attribution})
		case model.FindingViolation:
			result.Violations = append(result.Violations,
				ViolationWithAttribution{Violation: violationOf(c.finding), FindingAttribution: attribution})
		case model.FindingWeakness:
			result.Weaknesses = append(result.Weaknesses,
				WeaknessWithAttribution{Weakness: weaknessOf(c.finding), FindingAttribution: attribution})
		}
	}
	return result
}

// sortedAttributions orders by component, branch, release time and release id.
func sortedAttributions(in []ComponentAttribution) []ComponentAttribution {
	out := append(make([]ComponentAttribution, 0, len(in)), in...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch {
		case a.ComponentName != b.ComponentName:
			return a.ComponentName < b.ComponentName
		case a.ComponentUUID != b.ComponentUUID:
			return a.ComponentUUID.String() < b.ComponentUUID.String()
		case a.BranchName != b.BranchName:
			return a.BranchName < b.BranchName
		case a.BranchUUID != b.BranchUUID:
			return a.BranchUUID.String() < b.BranchUUID.String()
		case !a.createdAt.Equal(b.createdAt):
			return a.createdAt.Before(b.createdAt)
		default:
			return a.ReleaseUUID.String() < b.ReleaseUUID.String()
		}
	})
	return out
}
