package changelog

import (
	"sort"

	"github.com/ortelius/pdvd-changelog/model"
)

// FindingDiff is the difference between the findings of two releases,
// keyed by (kind, natural id, purl or location).
type FindingDiff struct {
	Appeared []model.Finding
	Resolved []model.Finding
	// Present holds findings found unchanged in both releases.
	Present []model.Finding
}

// DiffFindings compares the findings of an earlier and a later release.
// Every list is sorted by kind, id and subject.
func DiffFindings(earlier, later []model.Finding) FindingDiff {
	before := indexFindings(earlier)
	after := indexFindings(later)

	diff := FindingDiff{
		Appeared: make([]model.Finding, 0),
		Resolved: make([]model.Finding, 0),
		Present:  make([]model.Finding, 0),
	}
	for key, f := range after {
		if _, ok := before[key]; ok {
			diff.Present = append(diff.Present, f)
		} else {
			diff.Appeared = append(diff.Appeared, f)
		}
	}
	for key, f := range before {
		if _, ok := after[key]; !ok {
			diff.Resolved = append(diff.Resolved, f)
		}
	}
	sortFindings(diff.Appeared)
	sortFindings(diff.Resolved)
	sortFindings(diff.Present)
	return diff
}

func indexFindings(findings []model.Finding) map[string]model.Finding {
	index := make(map[string]model.Finding, len(findings))
	for _, f := range findings {
		if _, seen := index[f.Key()]; !seen {
			index[f.Key()] = f
		}
	}
	return index
}

func findingKeys(findings []model.Finding) map[string]bool {
	keys := make(map[string]bool, len(findings))
	for _, f := range findings {
		keys[f.Key()] = true
	}
	return keys
}

func findingLess(a, b model.Finding) bool {
	if a.Kind != b.Kind {
		return a.Kind < b.Kind
	}
	if a.ID != b.ID {
		return a.ID < b.ID
	}
	return a.Subject() < b.Subject()
}

func sortFindings(findings []model.Finding) {
	sort.Slice(findings, func(i, j int) bool { return findingLess(findings[i], findings[j]) })
}

func vulnerabilityOf(f model.Finding) Vulnerability {
	aliases := append(make([]string, 0, len(f.Aliases)), f.Aliases...)
	sort.Strings(aliases)
	return Vulnerability{VulnID: f.ID, Purl: f.Purl, Severity: f.Severity, Aliases: aliases}
}

func violationOf(f model.Finding) Violation {
	return Violation{Type: f.ID, Purl: f.Purl}
}

func weaknessOf(f model.Finding) Weakness {
	return Weakness{CweID: f.ID, Severity: f.Severity, RuleID: f.RuleID, Location: f.Location}
}

// releaseFindingChanges splits a pairwise diff into per kind lists.
func releaseFindingChanges(diff FindingDiff) ReleaseFindingChanges {
	changes := ReleaseFindingChanges{
		AppearedCount:           len(diff.Appeared),
		ResolvedCount:           len(diff.Resolved),
		AppearedVulnerabilities: make([]Vulnerability, 0),
		ResolvedVulnerabilities: make([]Vulnerability, 0),
		AppearedViolations:      make([]Violation, 0),
		ResolvedViolations:      make([]Violation, 0),
		AppearedWeaknesses:      make([]Weakness, 0),
		ResolvedWeaknesses:      make([]Weakness, 0),
	}
	for _, f := range diff.Appeared {
		switch f.Kind {
		case model.FindingVulnerability:
			changes.AppearedVulnerabilities = append(changes.AppearedVulnerabilities, vulnerabilityOf(f))
		case model.FindingViolation:
			changes.AppearedViolations = append(changes.AppearedViolations, violationOf(f))
		case model.FindingWeakness:
			changes.AppearedWeaknesses = append(changes.AppearedWeaknesses, weaknessOf(f))
		}
	}
	for _, f := range diff.Resolved {
		switch f.Kind {
		case model.FindingVulnerability:
			changes.ResolvedVulnerabilities = append(changes.ResolvedVulnerabilities, vulnerabilityOf(f))
		case model.FindingViolation:
			changes.ResolvedViolations = append(changes.ResolvedViolations, violationOf(f))
		case model.FindingWeakness:
			changes.ResolvedWeaknesses = append(changes.ResolvedWeaknesses, weaknessOf(f))
		}
	}
	return changes
}
