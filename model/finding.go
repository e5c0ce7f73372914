// Package model - Finding is a vulnerability, policy violation or weakness attached to a release.
package model

import "strings"

// FindingKind is the variant of a finding.
type FindingKind string

// Finding variants.
const (
	FindingVulnerability FindingKind = "VULNERABILITY"
	FindingViolation     FindingKind = "VIOLATION"
	FindingWeakness      FindingKind = "WEAKNESS"
)

// Finding is a normalized finding record.
//
//   - VULNERABILITY: ID is the vulnerability id, Purl the affected package, Aliases the alias ids.
//   - VIOLATION: ID is the violation type, Purl the affected package.
//   - WEAKNESS: ID is the CWE id, Location the code location, RuleID/Severity optional.
type Finding struct {
	Kind     FindingKind `json:"kind"`
	ID       string      `json:"id"`
	Purl     string      `json:"purl,omitempty"`
	Location string      `json:"location,omitempty"`
	Severity string      `json:"severity,omitempty"`
	RuleID   string      `json:"rule_id,omitempty"`
	Aliases  []string    `json:"aliases,omitempty"`
}

// Subject is the affected purl for vulnerabilities and violations, the code
// location for weaknesses.
func (f Finding) Subject() string {
	if f.Kind == FindingWeakness {
		return f.Location
	}
	return f.Purl
}

// Key is the identity used for diffing: two findings are the same only if
// variant, natural id and subject all match.
func (f Finding) Key() string {
	return strings.Join([]string{string(f.Kind), f.ID, f.Subject()}, "|")
}
