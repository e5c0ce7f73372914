// Package changelog defines the GraphQL types for release and organization changelogs.
package changelog

import (
	"github.com/graphql-go/graphql"
	core "github.com/ortelius/pdvd-changelog/internal/changelog"
)

func list(t graphql.Type) graphql.Output {
	return graphql.NewList(graphql.NewNonNull(t))
}

// ModeEnum selects the per-release breakdown or the aggregated summary.
var ModeEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "ChangelogMode",
	Values: graphql.EnumValueConfigMap{
		"NONE":       &graphql.EnumValueConfig{Value: string(core.ModeNone)},
		"AGGREGATED": &graphql.EnumValueConfig{Value: string(core.ModeAggregated)},
	},
})

// ReleaseInfoType identifies a release.
var ReleaseInfoType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ChangelogReleaseInfo",
	Fields: graphql.Fields{
		"uuid":         &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"version":      &graphql.Field{Type: graphql.String},
		"versionMajor": &graphql.Field{Type: graphql.Int},
		"versionMinor": &graphql.Field{Type: graphql.Int},
		"versionPatch": &graphql.Field{Type: graphql.Int},
		"lifecycle":    &graphql.Field{Type: graphql.String},
		"createdDate":  &graphql.Field{Type: graphql.String},
	},
})

// CodeCommitType is a commit with its conventional change type.
var CodeCommitType = graphql.NewObject(graphql.ObjectConfig{
	Name: "CodeCommit",
	Fields: graphql.Fields{
		"commitId":   &graphql.Field{Type: graphql.String},
		"commitUri":  &graphql.Field{Type: graphql.String},
		"message":    &graphql.Field{Type: graphql.String},
		"author":     &graphql.Field{Type: graphql.String},
		"email":      &graphql.Field{Type: graphql.String},
		"changeType": &graphql.Field{Type: graphql.String},
		"scope":      &graphql.Field{Type: graphql.String},
		"breaking":   &graphql.Field{Type: graphql.Boolean},
	},
})

// CommitsByTypeType groups commits of one change type.
var CommitsByTypeType = graphql.NewObject(graphql.ObjectConfig{
	Name: "CommitsByType",
	Fields: graphql.Fields{
		"changeType": &graphql.Field{Type: graphql.String},
		"commits":    &graphql.Field{Type: list(CodeCommitType)},
	},
})

// SbomArtifactType is an artifact in a per-release diff.
var SbomArtifactType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ReleaseSbomArtifact",
	Fields: graphql.Fields{
		"purl":    &graphql.Field{Type: graphql.String},
		"name":    &graphql.Field{Type: graphql.String},
		"version": &graphql.Field{Type: graphql.String},
	},
})

// SbomChangesType is the artifact diff of a release.
var SbomChangesType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ReleaseSbomChanges",
	Fields: graphql.Fields{
		"added":   &graphql.Field{Type: list(SbomArtifactType)},
		"removed": &graphql.Field{Type: list(SbomArtifactType)},
	},
})

var vulnerabilityFields = graphql.Fields{
	"vulnId":   &graphql.Field{Type: graphql.String},
	"purl":     &graphql.Field{Type: graphql.String},
	"severity": &graphql.Field{Type: graphql.String},
	"aliases":  &graphql.Field{Type: graphql.NewList(graphql.String)},
}

var violationFields = graphql.Fields{
	"type": &graphql.Field{Type: graphql.String},
	"purl": &graphql.Field{Type: graphql.String},
}

var weaknessFields = graphql.Fields{
	"cweId":    &graphql.Field{Type: graphql.String},
	"severity": &graphql.Field{Type: graphql.String},
	"ruleId":   &graphql.Field{Type: graphql.String},
	"location": &graphql.Field{Type: graphql.String},
}

// VulnerabilityType is a vulnerability in a per-release diff.
var VulnerabilityType = graphql.NewObject(graphql.ObjectConfig{
	Name:   "ChangelogVulnerability",
	Fields: vulnerabilityFields,
})

// ViolationType is a policy violation in a per-release diff.
var ViolationType = graphql.NewObject(graphql.ObjectConfig{
	Name:   "ChangelogViolation",
	Fields: violationFields,
})

// WeaknessType is a weakness in a per-release diff.
var WeaknessType = graphql.NewObject(graphql.ObjectConfig{
	Name:   "ChangelogWeakness",
	Fields: weaknessFields,
})

// FindingChangesType is the finding diff of a release.
var FindingChangesType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ReleaseFindingChanges",
	Fields: graphql.Fields{
		"appearedCount":           &graphql.Field{Type: graphql.Int},
		"resolvedCount":           &graphql.Field{Type: graphql.Int},
		"appearedVulnerabilities": &graphql.Field{Type: list(VulnerabilityType)},
		"resolvedVulnerabilities": &graphql.Field{Type: list(VulnerabilityType)},
		"appearedViolations":      &graphql.Field{Type: list(ViolationType)},
		"resolvedViolations":      &graphql.Field{Type: list(ViolationType)},
		"appearedWeaknesses":      &graphql.Field{Type: list(WeaknessType)},
		"resolvedWeaknesses":      &graphql.Field{Type: list(WeaknessType)},
	},
})

// ReleaseChangesType is one row of a per-release breakdown.
var ReleaseChangesType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ReleaseChanges",
	Fields: graphql.Fields{
		"release":        &graphql.Field{Type: ReleaseInfoType},
		"comparedTo":     &graphql.Field{Type: ReleaseInfoType},
		"commits":        &graphql.Field{Type: list(CodeCommitType)},
		"sbomChanges":    &graphql.Field{Type: SbomChangesType},
		"findingChanges": &graphql.Field{Type: FindingChangesType},
	},
})

func branchFields(extra graphql.Fields) graphql.Fields {
	fields := graphql.Fields{
		"branchUuid":    &graphql.Field{Type: graphql.ID},
		"branchName":    &graphql.Field{Type: graphql.String},
		"componentUuid": &graphql.Field{Type: graphql.ID},
		"componentName": &graphql.Field{Type: graphql.String},
	}
	for k, v := range extra {
		fields[k] = v
	}
	return fields
}

// BranchReleasesType is the per-release breakdown of a branch.
var BranchReleasesType = graphql.NewObject(graphql.ObjectConfig{
	Name: "BranchReleases",
	Fields: branchFields(graphql.Fields{
		"releases": &graphql.Field{Type: list(ReleaseChangesType)},
	}),
})

// BranchSummaryType is the aggregated view of a branch.
var BranchSummaryType = graphql.NewObject(graphql.ObjectConfig{
	Name: "BranchSummary",
	Fields: branchFields(graphql.Fields{
		"firstRelease":  &graphql.Field{Type: ReleaseInfoType},
		"lastRelease":   &graphql.Field{Type: ReleaseInfoType},
		"releases":      &graphql.Field{Type: list(ReleaseInfoType)},
		"commitsByType": &graphql.Field{Type: list(CommitsByTypeType)},
	}),
})

// AttributionType names the release responsible for a change.
var AttributionType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ComponentAttribution",
	Fields: graphql.Fields{
		"componentUuid":     &graphql.Field{Type: graphql.ID},
		"componentName":     &graphql.Field{Type: graphql.String},
		"releaseUuid":       &graphql.Field{Type: graphql.ID},
		"releaseVersion":    &graphql.Field{Type: graphql.String},
		"branchUuid":        &graphql.Field{Type: graphql.ID},
		"branchName":        &graphql.Field{Type: graphql.String},
		"comparedToVersion": &graphql.Field{Type: graphql.String},
	},
})

// ArtifactWithAttributionType is an artifact that changed in scope.
var ArtifactWithAttributionType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ArtifactWithAttribution",
	Fields: graphql.Fields{
		"purl":         &graphql.Field{Type: graphql.String},
		"name":         &graphql.Field{Type: graphql.String},
		"version":      &graphql.Field{Type: graphql.String},
		"addedIn":      &graphql.Field{Type: list(AttributionType)},
		"removedIn":    &graphql.Field{Type: list(AttributionType)},
		"isNetAdded":   &graphql.Field{Type: graphql.Boolean},
		"isNetRemoved": &graphql.Field{Type: graphql.Boolean},
	},
})

// SbomChangesWithAttributionType is the merged artifact change set.
var SbomChangesWithAttributionType = graphql.NewObject(graphql.ObjectConfig{
	Name: "SbomChangesWithAttribution",
	Fields: graphql.Fields{
		"artifacts":    &graphql.Field{Type: list(ArtifactWithAttributionType)},
		"totalAdded":   &graphql.Field{Type: graphql.Int},
		"totalRemoved": &graphql.Field{Type: graphql.Int},
	},
})

// OrgContextType carries organization level flags of a finding.
var OrgContextType = graphql.NewObject(graphql.ObjectConfig{
	Name: "OrgLevelContext",
	Fields: graphql.Fields{
		"isNewToOrganization":        &graphql.Field{Type: graphql.Boolean},
		"wasPreviouslyReported":      &graphql.Field{Type: graphql.Boolean},
		"isPartiallyResolved":        &graphql.Field{Type: graphql.Boolean},
		"isFullyResolved":            &graphql.Field{Type: graphql.Boolean},
		"isInheritedInAllComponents": &graphql.Field{Type: graphql.Boolean},
		"componentCount":             &graphql.Field{Type: graphql.Int},
		"affectedComponentNames":     &graphql.Field{Type: graphql.NewList(graphql.String)},
	},
})

func withAttribution(fields graphql.Fields) graphql.Fields {
	result := graphql.Fields{
		"appearedIn":     &graphql.Field{Type: list(AttributionType)},
		"resolvedIn":     &graphql.Field{Type: list(AttributionType)},
		"presentIn":      &graphql.Field{Type: list(AttributionType)},
		"isNetAppeared":  &graphql.Field{Type: graphql.Boolean},
		"isNetResolved":  &graphql.Field{Type: graphql.Boolean},
		"isStillPresent": &graphql.Field{Type: graphql.Boolean},
		"orgContext":     &graphql.Field{Type: OrgContextType},
	}
	for k, v := range fields {
		result[k] = &graphql.Field{Type: v.Type}
	}
	return result
}

// FindingChangesWithAttributionType is the merged finding change set.
var FindingChangesWithAttributionType = graphql.NewObject(graphql.ObjectConfig{
	Name: "FindingChangesWithAttribution",
	Fields: graphql.Fields{
		"vulnerabilities": &graphql.Field{Type: list(graphql.NewObject(graphql.ObjectConfig{
			Name:   "VulnerabilityWithAttribution",
			Fields: withAttribution(vulnerabilityFields),
		}))},
		"violations": &graphql.Field{Type: list(graphql.NewObject(graphql.ObjectConfig{
			Name:   "ViolationWithAttribution",
			Fields: withAttribution(violationFields),
		}))},
		"weaknesses": &graphql.Field{Type: list(graphql.NewObject(graphql.ObjectConfig{
			Name:   "WeaknessWithAttribution",
			Fields: withAttribution(weaknessFields),
		}))},
		"totalAppeared": &graphql.Field{Type: graphql.Int},
		"totalResolved": &graphql.Field{Type: graphql.Int},
	},
})

// WarningType records a component left out of an organization result.
var WarningType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ChangelogWarning",
	Fields: graphql.Fields{
		"componentUuid": &graphql.Field{Type: graphql.ID},
		"componentName": &graphql.Field{Type: graphql.String},
		"code":          &graphql.Field{Type: graphql.String},
		"message":       &graphql.Field{Type: graphql.String},
	},
})

var componentFields = graphql.Fields{
	"componentUuid": &graphql.Field{Type: graphql.ID},
	"componentName": &graphql.Field{Type: graphql.String},
	"orgUuid":       &graphql.Field{Type: graphql.ID},
	"firstRelease":  &graphql.Field{Type: ReleaseInfoType},
	"lastRelease":   &graphql.Field{Type: ReleaseInfoType},
}

func merged(base graphql.Fields, extra graphql.Fields) graphql.Fields {
	result := graphql.Fields{}
	for k, v := range base {
		result[k] = &graphql.Field{Type: v.Type}
	}
	for k, v := range extra {
		result[k] = v
	}
	return result
}

// NoneChangelogType is the per-release breakdown of a component.
var NoneChangelogType = graphql.NewObject(graphql.ObjectConfig{
	Name: string(core.KindNone),
	Fields: merged(componentFields, graphql.Fields{
		"branches": &graphql.Field{Type: list(BranchReleasesType)},
	}),
})

// AggregatedChangelogType is the attributed summary of a component.
var AggregatedChangelogType = graphql.NewObject(graphql.ObjectConfig{
	Name: string(core.KindAggregated),
	Fields: merged(componentFields, graphql.Fields{
		"branches":       &graphql.Field{Type: list(BranchSummaryType)},
		"sbomChanges":    &graphql.Field{Type: SbomChangesWithAttributionType},
		"findingChanges": &graphql.Field{Type: FindingChangesWithAttributionType},
	}),
})

var orgFields = graphql.Fields{
	"orgUuid":  &graphql.Field{Type: graphql.ID},
	"dateFrom": &graphql.Field{Type: graphql.String},
	"dateTo":   &graphql.Field{Type: graphql.String},
	"warnings": &graphql.Field{Type: list(WarningType)},
}

// NoneOrganizationChangelogType lists the per-release breakdown of every component.
var NoneOrganizationChangelogType = graphql.NewObject(graphql.ObjectConfig{
	Name: string(core.KindNoneOrganization),
	Fields: merged(orgFields, graphql.Fields{
		"components": &graphql.Field{Type: list(NoneChangelogType)},
	}),
})

// AggregatedOrganizationChangelogType merges every component with organization context.
var AggregatedOrganizationChangelogType = graphql.NewObject(graphql.ObjectConfig{
	Name: string(core.KindAggregatedOrganization),
	Fields: merged(orgFields, graphql.Fields{
		"components":     &graphql.Field{Type: list(AggregatedChangelogType)},
		"sbomChanges":    &graphql.Field{Type: SbomChangesWithAttributionType},
		"findingChanges": &graphql.Field{Type: FindingChangesWithAttributionType},
	}),
})

// ComponentChangelogUnion is the result of component level queries.
var ComponentChangelogUnion = graphql.NewUnion(graphql.UnionConfig{
	Name:        "ComponentChangelog",
	Types:       []*graphql.Object{NoneChangelogType, AggregatedChangelogType},
	ResolveType: resolveByTypename(NoneChangelogType, AggregatedChangelogType),
})

// OrganizationChangelogUnion is the result of organization level queries.
var OrganizationChangelogUnion = graphql.NewUnion(graphql.UnionConfig{
	Name:        "OrganizationChangelog",
	Types:       []*graphql.Object{NoneOrganizationChangelogType, AggregatedOrganizationChangelogType},
	ResolveType: resolveByTypename(NoneOrganizationChangelogType, AggregatedOrganizationChangelogType),
})

// resolveByTypename picks the union member named by the "__typename" key.
func resolveByTypename(types ...*graphql.Object) graphql.ResolveTypeFn {
	return func(p graphql.ResolveTypeParams) *graphql.Object {
		source, ok := p.Value.(map[string]interface{})
		if !ok {
			return nil
		}
		for _, t := range types {
			if source["__typename"] == t.Name() {
				return t
			}
		}
		return nil
	}
}
