package changelog

import (
	"sort"

	"github.com/google/uuid"
)

// orgContext derives the organization level flags of a finding from its
// attribution lists across every component merged into cs.
func (cs *changeSet) orgContext(c *findingChange) *OrgLevelContext {
	resolved := len(c.resolvedIn) > 0
	stillPresent := len(c.presentIn) > 0

	names := make([]string, 0)
	seen := map[uuid.UUID]bool{}
	for _, a := range c.presentIn {
		if seen[a.ComponentUUID] {
			continue
		}
		seen[a.ComponentUUID] = true
		names = append(names, a.ComponentName)
	}
	sort.Strings(names)

	return &OrgLevelContext{
		IsNewToOrganization:        len(c.startIn) == 0,
		WasPreviouslyReported:      previouslyReported(c),
		IsPartiallyResolved:        resolved && stillPresent,
		IsFullyResolved:            resolved && !stillPresent,
		IsInheritedInAllComponents: cs.inheritedEverywhere(c.finding.Key()),
		ComponentCount:             len(seen),
		AffectedComponentNames:     names,
	}
}

// previouslyReported is true when some component gained the finding after
// another component already had it, either in a baseline release or from an
// earlier appearance.
func previouslyReported(c *findingChange) bool {
	for _, a := range c.appearedIn {
		for _, s := range c.startIn {
			if s.ComponentUUID != a.ComponentUUID && s.createdAt.Before(a.createdAt) {
				return true
			}
		}
		for _, other := range c.appearedIn {
			if other.ComponentUUID != a.ComponentUUID && other.createdAt.Before(a.createdAt) {
				return true
			}
		}
	}
	return false
}

// inheritedEverywhere is true when every component with releases in the
// window has the finding in both its earliest and latest release.
func (cs *changeSet) inheritedEverywhere(key string) bool {
	if len(cs.bounds) == 0 {
		return false
	}
	for _, b := range cs.bounds {
		if !b.first[key] || !b.last[key] {
			return false
		}
	}
	return true
}
